// Package storage provides the host output directory and optional
// publishing of finished videos to S3.
package storage

import (
	"context"
	"io"
)

// Publisher makes a finished video available outside the host.
type Publisher interface {
	// Publish uploads data under key and returns its public URL.
	// Returns ErrS3NotConfigured if no remote storage is configured.
	Publish(ctx context.Context, key string, data io.Reader) (url string, err error)

	// Enabled reports whether Publish can succeed.
	Enabled() bool
}
