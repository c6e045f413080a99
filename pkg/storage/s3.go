package storage

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/xcursi322/prakt/config"
	"github.com/xcursi322/prakt/pkg/logger"
)

const defaultPresignTTL = time.Hour

// s3Disk is the S3-compatible object storage driver. With S3_URL set the
// bucket is treated as public and URLs are plain; otherwise every URL is a
// presigned GET valid for S3_PRESIGN_TTL.
type s3Disk struct {
	client     *s3.Client
	presign    *s3.PresignClient
	bucket     string
	publicURL  string
	presignTTL time.Duration
}

func newS3Disk(ctx context.Context) (*s3Disk, error) {
	bucket := config.Get("S3_BUCKET", "")
	region := config.Get("S3_REGION", "us-east-1")
	key := config.Get("S3_KEY", "")
	secret := config.Get("S3_SECRET", "")
	endpoint := config.Get("S3_ENDPOINT", "") // leave empty for real AWS

	if bucket == "" {
		return nil, fmt.Errorf("storage/s3: S3_BUCKET is not configured")
	}

	opts := []func(*awscfg.LoadOptions) error{
		awscfg.WithRegion(region),
	}
	// Static credentials (required for MinIO / R2 / Spaces)
	if key != "" && secret != "" {
		opts = append(opts, awscfg.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(key, secret, ""),
		))
	}

	cfg, err := awscfg.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("storage/s3: load config: %w", err)
	}

	var clientOpts []func(*s3.Options)
	if endpoint != "" {
		clientOpts = append(clientOpts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true // required for MinIO
		})
	}

	ttl, err := time.ParseDuration(config.Get("S3_PRESIGN_TTL", ""))
	if err != nil || ttl <= 0 {
		ttl = defaultPresignTTL
	}

	client := s3.NewFromConfig(cfg, clientOpts...)
	return &s3Disk{
		client:     client,
		presign:    s3.NewPresignClient(client),
		bucket:     bucket,
		publicURL:  strings.TrimRight(config.Get("S3_URL", ""), "/"),
		presignTTL: ttl,
	}, nil
}

func (d *s3Disk) Name() string { return "s3" }

func (d *s3Disk) Put(ctx context.Context, path string, r io.Reader, contentType string) error {
	in := &s3.PutObjectInput{
		Bucket: aws.String(d.bucket),
		Key:    aws.String(clean(path)),
		Body:   r,
	}
	if contentType != "" {
		in.ContentType = aws.String(contentType)
	}
	if _, err := d.client.PutObject(ctx, in); err != nil {
		return fmt.Errorf("storage/s3: put %s: %w", path, err)
	}
	return nil
}

func (d *s3Disk) URL(path string) string {
	key := clean(path)
	if d.publicURL != "" {
		return d.publicURL + "/" + key
	}

	req, err := d.presign.PresignGetObject(context.Background(), &s3.GetObjectInput{
		Bucket: aws.String(d.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(d.presignTTL))
	if err != nil {
		logger.Warn("storage/s3: presign failed", "key", key, "error", err)
		return ""
	}
	return req.URL
}
