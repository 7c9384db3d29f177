package source

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

const maxDownloadRetries = 3

// S3Config holds configuration for an S3Source.
type S3Config struct {
	// Endpoint is the S3 endpoint (e.g., "s3.amazonaws.com",
	// "minio.example.com:9000").
	Endpoint string

	// Bucket is the S3 bucket name.
	Bucket string

	// Prefix is the key prefix to filter objects (optional).
	Prefix string

	// AccessKey and SecretKey authenticate against the endpoint.
	AccessKey string
	SecretKey string

	// UseSSL enables HTTPS connections to the S3 endpoint.
	UseSSL bool

	// IncludePatterns and ExcludePatterns filter object keys relative
	// to Prefix, with the same glob semantics as the filesystem source.
	IncludePatterns []string
	ExcludePatterns []string
}

// S3Source traverses an S3 bucket and yields its objects.
type S3Source struct {
	config S3Config
	client *minio.Client
}

// NewS3Source creates an S3 content source. The client is lazy; no
// connection is made until Traverse.
func NewS3Source(cfg S3Config) (*S3Source, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("s3 endpoint is required")
	}
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("s3 bucket is required")
	}
	for _, pattern := range append(append([]string{}, cfg.IncludePatterns...), cfg.ExcludePatterns...) {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid pattern %q", pattern)
		}
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("creating s3 client for endpoint %s: %w", cfg.Endpoint, err)
	}

	return &S3Source{config: cfg, client: client}, nil
}

// Type returns "s3" as the source type.
func (s *S3Source) Type() string {
	return "s3"
}

// Traverse lists all objects under the configured prefix and yields an
// item for every matching object.
func (s *S3Source) Traverse(ctx context.Context) (<-chan Item, <-chan error) {
	items := make(chan Item)
	errs := make(chan error, 1)

	go func() {
		defer close(items)
		defer close(errs)

		opts := minio.ListObjectsOptions{
			Prefix:    s.config.Prefix,
			Recursive: true,
		}

		for object := range s.client.ListObjects(ctx, s.config.Bucket, opts) {
			select {
			case <-ctx.Done():
				errs <- ctx.Err()
				return
			default:
			}

			if object.Err != nil {
				errs <- fmt.Errorf("listing objects: %w", object.Err)
				return
			}

			// Directory placeholders end with a slash.
			if strings.HasSuffix(object.Key, "/") {
				continue
			}

			relPath := objectRelPath(object.Key, s.config.Prefix)

			if matchesAnyPattern(relPath, s.config.ExcludePatterns) {
				continue
			}
			if len(s.config.IncludePatterns) > 0 && !matchesAnyPattern(relPath, s.config.IncludePatterns) {
				continue
			}

			content, err := s.downloadObject(ctx, object.Key)
			if err != nil {
				errs <- fmt.Errorf("downloading object %s: %w", object.Key, err)
				return
			}

			select {
			case items <- Item{Path: relPath, Content: content}:
			case <-ctx.Done():
				errs <- ctx.Err()
				return
			}
		}
	}()

	return items, errs
}

// downloadObject fetches one object, retrying transient failures with
// exponential backoff.
func (s *S3Source) downloadObject(ctx context.Context, key string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= maxDownloadRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(backoff(attempt - 1)):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		obj, err := s.client.GetObject(ctx, s.config.Bucket, key, minio.GetObjectOptions{})
		if err != nil {
			lastErr = err
			continue
		}
		content, err := io.ReadAll(obj)
		obj.Close()
		if err == nil {
			return content, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			return nil, lastErr
		}
	}
	return nil, fmt.Errorf("after %d attempts: %w", maxDownloadRetries+1, lastErr)
}

// backoff returns a duration for attempt n (0-indexed) with jitter.
func backoff(attempt int) time.Duration {
	base := time.Duration(1<<uint(attempt)) * time.Second
	if base > 30*time.Second {
		base = 30 * time.Second
	}
	jitter := time.Duration(rand.Int64N(int64(base) / 2))
	return base + jitter
}

// objectRelPath strips the listing prefix from an object key.
func objectRelPath(key, prefix string) string {
	if prefix == "" {
		return key
	}
	rel := strings.TrimPrefix(key, prefix)
	return strings.TrimPrefix(rel, "/")
}

// matchesAnyPattern checks if a path matches any of the given glob
// patterns.
func matchesAnyPattern(path string, patterns []string) bool {
	for _, pattern := range patterns {
		matched, err := doublestar.Match(pattern, path)
		if err != nil {
			continue
		}
		if matched {
			return true
		}
	}
	return false
}
