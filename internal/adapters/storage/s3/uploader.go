// Package s3 stores uploaded images in an S3-compatible bucket.
package s3

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/SscSPs/user_account_service/internal/core/ports/services"
	"github.com/SscSPs/user_account_service/internal/platform/config"
)

// objectPutter is the subset of *s3.Client the uploader needs.
type objectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Uploader implements services.ImageUploader on top of S3 PutObject.
type Uploader struct {
	client        objectPutter
	bucket        string
	keyPrefix     string
	publicBaseURL string
	now           func() time.Time
}

var _ services.ImageUploader = (*Uploader)(nil)

// NewUploader builds an S3 client from cfg. Static credentials are used when
// both keys are set, otherwise the default AWS credential chain applies.
// A non-empty BaseEndpoint switches to path-style addressing for MinIO and friends.
func NewUploader(ctx context.Context, cfg config.S3Config) (*Uploader, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("s3 bucket must be set")
	}

	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.BaseEndpoint)
			o.UsePathStyle = true
		}
	})

	return newUploader(client, cfg), nil
}

func newUploader(client objectPutter, cfg config.S3Config) *Uploader {
	base := cfg.PublicBaseURL
	if base == "" {
		if cfg.BaseEndpoint != "" {
			base = strings.TrimRight(cfg.BaseEndpoint, "/") + "/" + cfg.Bucket
		} else {
			base = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
		}
	}
	return &Uploader{
		client:        client,
		bucket:        cfg.Bucket,
		keyPrefix:     strings.Trim(cfg.KeyPrefix, "/"),
		publicBaseURL: strings.TrimRight(base, "/"),
		now:           time.Now,
	}
}

// Upload stores the file at localPath and returns its public URL. An empty
// path yields an empty URL and no error. The local file is removed either way.
func (u *Uploader) Upload(ctx context.Context, localPath string) (string, error) {
	if localPath == "" {
		return "", nil
	}
	defer os.Remove(localPath)

	f, err := os.Open(localPath)
	if err != nil {
		return "", fmt.Errorf("failed to open upload %s: %w", localPath, err)
	}
	defer f.Close()

	ext := strings.ToLower(filepath.Ext(localPath))
	key := u.objectKey(ext)

	input := &s3.PutObjectInput{
		Bucket: aws.String(u.bucket),
		Key:    aws.String(key),
		Body:   f,
	}
	if ct := mime.TypeByExtension(ext); ct != "" {
		input.ContentType = aws.String(ct)
	}

	if _, err := u.client.PutObject(ctx, input); err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", key, err)
	}
	return u.publicBaseURL + "/" + key, nil
}

func (u *Uploader) objectKey(ext string) string {
	d := u.now().UTC()
	name := fmt.Sprintf("%04d/%02d/%02d/%s%s", d.Year(), d.Month(), d.Day(), uuid.NewString(), ext)
	if u.keyPrefix == "" {
		return name
	}
	return path.Join(u.keyPrefix, name)
}
