package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"regexp"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/google/uuid"

	"github.com/Maoli-LLC/Aeon-Website-sub000/internal/config"
)

// S3Storage implements Storage using S3-compatible object storage.
type S3Storage struct {
	client *s3.Client
	cfg    config.StorageConfig
}

// NewS3 creates an S3Storage from config.
func NewS3(cfg config.StorageConfig) (*S3Storage, error) {
	if !cfg.Enabled() {
		return nil, fmt.Errorf("storage: bucket and credentials are required")
	}

	opts := []func(*s3.Options){
		func(o *s3.Options) {
			o.Region = cfg.Region
			o.Credentials = credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")
		},
	}
	if cfg.Endpoint != "" {
		opts = append(opts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = cfg.PathStyle
		})
	}

	return &S3Storage{client: s3.New(s3.Options{}, opts...), cfg: cfg}, nil
}

// Put uploads the content under a generated key and returns its public
// URL. Uploads are publicly readable; they are site assets, not secrets.
func (s *S3Storage) Put(ctx context.Context, r io.Reader, size int64, filename, contentType string) (string, error) {
	key := s.buildKey(filename)

	input := &s3.PutObjectInput{
		Bucket:        aws.String(s.cfg.Bucket),
		Key:           aws.String(key),
		Body:          r,
		ContentLength: aws.Int64(size),
		ContentType:   aws.String(contentType),
		ACL:           types.ObjectCannedACLPublicRead,
	}
	if _, err := s.client.PutObject(ctx, input); err != nil {
		return "", fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}

	return s.publicURL(key), nil
}

// Delete removes an uploaded file.
func (s *S3Storage) Delete(ctx context.Context, key string) error {
	input := &s3.DeleteObjectInput{
		Bucket: aws.String(s.cfg.Bucket),
		Key:    aws.String(key),
	}
	if _, err := s.client.DeleteObject(ctx, input); err != nil {
		return fmt.Errorf("%w: %v", ErrDeleteFailed, err)
	}
	return nil
}

// buildKey generates a collision-free key preserving the original
// extension: uploads/{uuid}{ext}
func (s *S3Storage) buildKey(filename string) string {
	ext := strings.ToLower(path.Ext(sanitizeFilename(filename)))
	return "uploads/" + uuid.New().String() + ext
}

func (s *S3Storage) publicURL(key string) string {
	if s.cfg.PublicURL != "" {
		return strings.TrimSuffix(s.cfg.PublicURL, "/") + "/" + key
	}
	if s.cfg.Endpoint != "" {
		endpoint := strings.TrimSuffix(s.cfg.Endpoint, "/")
		if s.cfg.PathStyle {
			return fmt.Sprintf("%s/%s/%s", endpoint, s.cfg.Bucket, key)
		}
		return fmt.Sprintf("%s/%s", endpoint, key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.cfg.Bucket, s.cfg.Region, key)
}

var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9\-_.]`)

// sanitizeFilename strips path separators and unsafe characters so user
// supplied names cannot influence the storage key beyond the extension.
func sanitizeFilename(name string) string {
	name = strings.Trim(name, " /\\")
	name = strings.ReplaceAll(name, "..", "")
	return unsafeFilenameChars.ReplaceAllString(name, "_")
}

// Ensure S3Storage implements Storage.
var _ Storage = (*S3Storage)(nil)
