// Package export stores rendered report documents.
package export

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Sink receives a fully rendered document. Implementations must not leave a
// partial object behind when Write fails.
type Sink interface {
	Write(ctx context.Context, data []byte, contentType string) (string, error)
}

// NewSink picks a sink from the destination: s3://bucket/key uploads to S3,
// anything else is a local path.
func NewSink(ctx context.Context, destination, region string) (Sink, error) {
	if !strings.HasPrefix(destination, "s3://") {
		return NewFileSink(destination), nil
	}

	bucket, key, err := parseS3URL(destination)
	if err != nil {
		return nil, err
	}

	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}
	return NewS3Sink(s3.NewFromConfig(cfg), bucket, key), nil
}

func parseS3URL(destination string) (string, string, error) {
	u, err := url.Parse(destination)
	if err != nil {
		return "", "", fmt.Errorf("invalid s3 destination %q: %w", destination, err)
	}
	key := strings.TrimPrefix(u.Path, "/")
	if u.Host == "" || key == "" {
		return "", "", fmt.Errorf("invalid s3 destination %q: expected s3://bucket/key", destination)
	}
	return u.Host, key, nil
}

type FileSink struct {
	path string
}

func NewFileSink(path string) *FileSink {
	return &FileSink{path: path}
}

// Write goes through a temp file in the target directory and renames it into
// place.
func (s *FileSink) Write(_ context.Context, data []byte, _ string) (string, error) {
	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	cleanup := func() {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
	}

	if _, err := tmp.Write(data); err != nil {
		cleanup()
		return "", fmt.Errorf("failed to write %s: %w", s.path, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return "", fmt.Errorf("failed to close %s: %w", s.path, err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		_ = os.Remove(tmpName)
		return "", fmt.Errorf("failed to move export into place: %w", err)
	}

	return s.path, nil
}
