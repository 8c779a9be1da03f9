// Package objectstore wraps the S3-compatible object store holding the zone
// buckets. Operations are synchronous, single-shot calls: no retry, no
// caching, last write wins.
package objectstore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"

	"lake-demo/internal/config"
	"lake-demo/internal/domain"
	"lake-demo/internal/frame"
)

// Store is the object storage contract the pipeline depends on.
type Store interface {
	EnsureBucket(ctx context.Context, bucket string) error
	Upload(ctx context.Context, bucket, key string, data []byte, contentType string) error
	Download(ctx context.Context, bucket, key string) ([]byte, error)
	List(ctx context.Context, bucket, prefix string) ([]string, error)
	Exists(ctx context.Context, bucket, key string) (bool, error)
	Ping(ctx context.Context) error
}

// s3API is the subset of the S3 client the wrapper uses.
type s3API interface {
	CreateBucket(ctx context.Context, in *s3.CreateBucketInput, opts ...func(*s3.Options)) (*s3.CreateBucketOutput, error)
	HeadBucket(ctx context.Context, in *s3.HeadBucketInput, opts ...func(*s3.Options)) (*s3.HeadBucketOutput, error)
	PutObject(ctx context.Context, in *s3.PutObjectInput, opts ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, in *s3.GetObjectInput, opts ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	HeadObject(ctx context.Context, in *s3.HeadObjectInput, opts ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
	ListObjectsV2(ctx context.Context, in *s3.ListObjectsV2Input, opts ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
	ListBuckets(ctx context.Context, in *s3.ListBucketsInput, opts ...func(*s3.Options)) (*s3.ListBucketsOutput, error)
}

// Client talks to one S3-compatible endpoint.
type Client struct {
	api    s3API
	logger *slog.Logger
}

// New builds a client for the configured endpoint using static credentials
// and path-style addressing, which MinIO requires.
func New(cfg *config.Config, logger *slog.Logger) *Client {
	scheme := "http"
	if cfg.S3UseSSL {
		scheme = "https"
	}
	api := s3.New(s3.Options{
		Region: cfg.S3Region,
		Credentials: credentials.NewStaticCredentialsProvider(
			cfg.S3KeyID, cfg.S3Secret, "",
		),
		BaseEndpoint: aws.String(fmt.Sprintf("%s://%s", scheme, cfg.S3Endpoint)),
		UsePathStyle: true,
	})
	return &Client{api: api, logger: logger}
}

// NewWithAPI builds a client over an existing S3 API, used by tests.
func NewWithAPI(api s3API, logger *slog.Logger) *Client {
	return &Client{api: api, logger: logger}
}

// EnsureBucket creates the bucket if it does not exist. Repeated calls
// against an existing bucket succeed without duplicating it.
func (c *Client) EnsureBucket(ctx context.Context, bucket string) error {
	_, err := c.api.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(bucket)})
	if err == nil {
		return nil
	}
	_, err = c.api.CreateBucket(ctx, &s3.CreateBucketInput{Bucket: aws.String(bucket)})
	if err != nil {
		var owned *types.BucketAlreadyOwnedByYou
		var exists *types.BucketAlreadyExists
		if errors.As(err, &owned) || errors.As(err, &exists) {
			return nil
		}
		return fmt.Errorf("create bucket %q: %w", bucket, err)
	}
	c.logger.Info("bucket created", "bucket", bucket)
	return nil
}

// Upload ensures the bucket exists and writes the payload under key.
func (c *Client) Upload(ctx context.Context, bucket, key string, data []byte, contentType string) error {
	if err := c.EnsureBucket(ctx, bucket); err != nil {
		return err
	}
	_, err := c.api.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("put %s/%s: %w", bucket, key, err)
	}
	c.logger.Info("object uploaded", "bucket", bucket, "key", key, "bytes", len(data))
	return nil
}

// Download reads the object under bucket/key. A missing bucket or key fails
// with a NotFoundError.
func (c *Client) Download(ctx context.Context, bucket, key string) ([]byte, error) {
	out, err := c.api.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if isNotFound(err) {
			return nil, domain.ErrNotFound("object %s/%s not found", bucket, key)
		}
		return nil, fmt.Errorf("get %s/%s: %w", bucket, key, err)
	}
	defer out.Body.Close()
	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s/%s: %w", bucket, key, err)
	}
	return data, nil
}

// List returns the keys under the prefix, or a NotFoundError when the
// bucket does not exist.
func (c *Client) List(ctx context.Context, bucket, prefix string) ([]string, error) {
	var keys []string
	var token *string
	for {
		out, err := c.api.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
			Bucket:            aws.String(bucket),
			Prefix:            aws.String(prefix),
			ContinuationToken: token,
		})
		if err != nil {
			if isNotFound(err) {
				return nil, domain.ErrNotFound("bucket %q not found", bucket)
			}
			return nil, fmt.Errorf("list %s/%s: %w", bucket, prefix, err)
		}
		for _, obj := range out.Contents {
			keys = append(keys, aws.ToString(obj.Key))
		}
		if out.IsTruncated == nil || !*out.IsTruncated {
			return keys, nil
		}
		token = out.NextContinuationToken
	}
}

// Exists reports whether an object exists at bucket/key.
func (c *Client) Exists(ctx context.Context, bucket, key string) (bool, error) {
	_, err := c.api.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("head %s/%s: %w", bucket, key, err)
	}
	return true, nil
}

// Ping checks connectivity to the endpoint.
func (c *Client) Ping(ctx context.Context) error {
	if _, err := c.api.ListBuckets(ctx, &s3.ListBucketsInput{}); err != nil {
		return domain.ErrConnectivity(err, "object store unreachable")
	}
	return nil
}

func isNotFound(err error) bool {
	var noKey *types.NoSuchKey
	var noBucket *types.NoSuchBucket
	if errors.As(err, &noKey) || errors.As(err, &noBucket) {
		return true
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchKey", "NoSuchBucket", "NotFound":
			return true
		}
	}
	return false
}

// UploadFrame serializes a frame in the given format and uploads it. An
// unsupported format fails before any network call.
func UploadFrame(ctx context.Context, s Store, f *frame.Frame, bucket, key, format string) error {
	data, err := frame.Encode(f, format)
	if err != nil {
		return err
	}
	return s.Upload(ctx, bucket, key, data, frame.ContentType(format))
}

// DownloadFrame downloads an object and deserializes it in the given format.
func DownloadFrame(ctx context.Context, s Store, bucket, key, format string) (*frame.Frame, error) {
	if err := frame.ValidateFormat(format); err != nil {
		return nil, err
	}
	data, err := s.Download(ctx, bucket, key)
	if err != nil {
		return nil, err
	}
	return frame.Decode(data, format)
}
