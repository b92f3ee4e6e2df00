package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// ErrS3NotConfigured is returned when S3 operations are attempted
// without proper configuration.
var ErrS3NotConfigured = errors.New("S3 storage is not configured")

// DefaultOutputDir is used when no output directory is configured.
const DefaultOutputDir = "output"

// LocalOutput is the host's default output directory.
// It implements media.OutputPathResolver.
type LocalOutput struct {
	dir string
}

// NewLocalOutput creates a new LocalOutput instance.
// If dir is empty, DefaultOutputDir is used. Relative paths are made
// absolute against the working directory and the directory is created
// if it doesn't exist.
func NewLocalOutput(dir string) (*LocalOutput, error) {
	if dir == "" {
		dir = DefaultOutputDir
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve output directory: %w", err)
	}

	if err := os.MkdirAll(abs, 0750); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	return &LocalOutput{dir: abs}, nil
}

// OutputDirectory returns the absolute output directory path.
func (s *LocalOutput) OutputDirectory() string {
	return s.dir
}

// NoopPublisher is used when S3 is not configured.
type NoopPublisher struct{}

// Publish is not supported by NoopPublisher and returns ErrS3NotConfigured.
func (NoopPublisher) Publish(_ context.Context, _ string, _ io.Reader) (string, error) {
	return "", ErrS3NotConfigured
}

// Enabled always returns false.
func (NoopPublisher) Enabled() bool {
	return false
}

// PublishFile opens path and publishes it under its base name.
func PublishFile(ctx context.Context, p Publisher, path string) (string, error) {
	f, err := os.Open(path) // #nosec G304 - path is produced by the muxer
	if err != nil {
		return "", fmt.Errorf("open video: %w", err)
	}
	defer func() { _ = f.Close() }()

	return p.Publish(ctx, filepath.Base(path), f)
}
