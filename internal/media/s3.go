package media

import (
	"context"
	"fmt"
	"strings"

	"catalog/internal/config"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
)

// S3Uploader puts images into an S3-compatible bucket.
type S3Uploader struct {
	client    s3iface.S3API
	bucket    string
	publicURL string
}

// NewS3Uploader builds an uploader from static credentials. A custom
// endpoint (MinIO, R2, ...) switches the client to path-style addressing.
func NewS3Uploader(cfg config.S3Config) (*S3Uploader, error) {
	awsCfg := &aws.Config{
		Region: aws.String(cfg.Region),
	}
	if cfg.AccessKey != "" {
		awsCfg.Credentials = credentials.NewStaticCredentials(cfg.AccessKey, cfg.SecretKey, "")
	}
	if cfg.Endpoint != "" {
		awsCfg.Endpoint = aws.String(cfg.Endpoint)
		awsCfg.S3ForcePathStyle = aws.Bool(true)
	}

	sess, err := session.NewSession(awsCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create S3 session: %w", err)
	}

	return NewS3UploaderWithClient(s3.New(sess), cfg), nil
}

// NewS3UploaderWithClient uses an existing S3 client.
func NewS3UploaderWithClient(client s3iface.S3API, cfg config.S3Config) *S3Uploader {
	publicURL := strings.TrimRight(cfg.PublicURL, "/")
	switch {
	case publicURL != "":
	case cfg.Endpoint != "":
		publicURL = fmt.Sprintf("%s/%s", strings.TrimRight(cfg.Endpoint, "/"), cfg.Bucket)
	default:
		publicURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
	}
	return &S3Uploader{client: client, bucket: cfg.Bucket, publicURL: publicURL}
}

// Upload stores f under products/ and returns its public URL.
func (u *S3Uploader) Upload(ctx context.Context, f File) (string, error) {
	key := objectKey("products", f.Name)

	_, err := u.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        f.Body,
		ContentType: aws.String(f.ContentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to put %s into bucket %s: %w", f.Name, u.bucket, err)
	}
	return u.publicURL + "/" + key, nil
}
