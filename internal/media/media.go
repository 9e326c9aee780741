// Package media stores uploaded product images on a media host and returns
// their public URLs.
package media

import (
	"context"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
)

// File is a single image handed to an Uploader.
type File struct {
	Name        string
	ContentType string
	Size        int64
	Body        io.ReadSeeker
}

// Uploader stores a file and returns the URL it is publicly reachable at.
type Uploader interface {
	Upload(ctx context.Context, f File) (string, error)
}

// objectKey returns a collision free key that keeps the original extension.
func objectKey(prefix, filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	return path.Join(prefix, uuid.NewString()+ext)
}
