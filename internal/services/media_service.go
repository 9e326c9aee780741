package services

import (
	"context"
	"fmt"
	"io"
	"log"
	"strings"

	"catalog/internal/apperror"
	"catalog/internal/media"

	"golang.org/x/sync/errgroup"
)

// Upload is one file received from a client.
type Upload struct {
	Filename    string
	ContentType string
	Size        int64
	Open        func() (io.ReadSeekCloser, error)
}

// UploadResult reports the outcome of a single file, in submission order.
type UploadResult struct {
	Filename string `json:"filename"`
	URL      string `json:"url,omitempty"`
	Error    string `json:"error,omitempty"`
}

// MediaService sends images to the media host.
type MediaService struct {
	uploader    media.Uploader
	concurrency int
}

// NewMediaService creates a MediaService running at most concurrency
// uploads at a time.
func NewMediaService(uploader media.Uploader, concurrency int) *MediaService {
	if concurrency < 1 {
		concurrency = 1
	}
	return &MediaService{uploader: uploader, concurrency: concurrency}
}

// UploadAll uploads every file and returns one result per file in the order
// given. An empty batch fails before the media host is contacted. When any
// file fails the results are still returned, together with an upload error.
func (s *MediaService) UploadAll(ctx context.Context, files []Upload) ([]UploadResult, error) {
	if len(files) == 0 {
		return nil, apperror.Validation("No image files uploaded", map[string]string{"image": "at least one file is required"})
	}

	results := make([]UploadResult, len(files))
	var g errgroup.Group
	g.SetLimit(s.concurrency)
	for i, f := range files {
		g.Go(func() error {
			results[i] = s.uploadOne(ctx, f)
			return ctx.Err()
		})
	}
	if err := g.Wait(); err != nil {
		return results, apperror.Wrap(apperror.KindUpload, err, "Upload interrupted")
	}

	failed := 0
	for _, r := range results {
		if r.Error != "" {
			failed++
		}
	}
	if failed > 0 {
		return results, apperror.New(apperror.KindUpload, fmt.Sprintf("%d of %d images failed to upload", failed, len(files)))
	}
	return results, nil
}

func (s *MediaService) uploadOne(ctx context.Context, f Upload) UploadResult {
	result := UploadResult{Filename: f.Filename}

	if !strings.HasPrefix(f.ContentType, "image/") {
		result.Error = fmt.Sprintf("unsupported content type %q", f.ContentType)
		return result
	}

	body, err := f.Open()
	if err != nil {
		result.Error = "could not read file"
		log.Printf("Error opening upload %s: %v", f.Filename, err)
		return result
	}
	defer body.Close()

	url, err := s.uploader.Upload(ctx, media.File{
		Name:        f.Filename,
		ContentType: f.ContentType,
		Size:        f.Size,
		Body:        body,
	})
	if err != nil {
		result.Error = "media host rejected the upload"
		log.Printf("Error uploading %s: %v", f.Filename, err)
		return result
	}
	result.URL = url
	return result
}

// URLs returns the URLs of the successful results, in order.
func URLs(results []UploadResult) []string {
	urls := make([]string, 0, len(results))
	for _, r := range results {
		if r.URL != "" {
			urls = append(urls, r.URL)
		}
	}
	return urls
}
