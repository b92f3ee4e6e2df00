// Package bootstrap provides dependency initialization for directmux.
package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/maauso/directmux/internal/config"
	"github.com/maauso/directmux/internal/media"
	"github.com/maauso/directmux/internal/node"
	"github.com/maauso/directmux/internal/storage"
)

// Dependencies holds all initialized dependencies.
type Dependencies struct {
	Output    *storage.LocalOutput
	Publisher storage.Publisher
	Muxer     *media.VideoMuxer
	Node      *node.DirectFFmpegMuxer
}

// Option configures dependency construction.
type Option func(*options)

type options struct {
	muxerOpts []media.Option
}

// WithMuxerOptions passes extra options to the VideoMuxer.
func WithMuxerOptions(opts ...media.Option) Option {
	return func(o *options) {
		o.muxerOpts = append(o.muxerOpts, opts...)
	}
}

// NewDependencies creates and initializes all dependencies for the application.
func NewDependencies(ctx context.Context, cfg *config.Config, logger *slog.Logger, opts ...Option) (*Dependencies, error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	// Host default output directory
	output, err := storage.NewLocalOutput(cfg.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}
	logger.Info("output directory configured",
		slog.String("output_dir", output.OutputDirectory()),
	)

	publisher, err := initPublisher(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	muxerOpts := append([]media.Option{media.WithLogger(logger)}, o.muxerOpts...)
	muxer := media.NewVideoMuxer(cfg.FFmpegPath, output, muxerOpts...)

	return &Dependencies{
		Output:    output,
		Publisher: publisher,
		Muxer:     muxer,
		Node:      node.NewDirectFFmpegMuxer(muxer),
	}, nil
}

// initPublisher creates the S3 publisher when configured.
func initPublisher(ctx context.Context, cfg *config.Config, logger *slog.Logger) (storage.Publisher, error) {
	if !cfg.S3Enabled() {
		return storage.NoopPublisher{}, nil
	}

	s3Cfg := storage.S3Config{
		Bucket:          cfg.S3Bucket,
		Region:          cfg.S3Region,
		Prefix:          cfg.S3Prefix,
		Endpoint:        cfg.S3Endpoint,
		AccessKeyID:     cfg.AWSAccessKeyID,
		SecretAccessKey: cfg.AWSSecretAccessKey,
	}
	publisher, err := storage.NewS3Publisher(ctx, s3Cfg)
	if err != nil {
		return nil, fmt.Errorf("create S3 publisher: %w", err)
	}
	logger.Info("S3 publishing configured",
		slog.String("bucket", cfg.S3Bucket),
		slog.String("region", cfg.S3Region),
	)
	return publisher, nil
}
