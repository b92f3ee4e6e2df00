package media

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strconv"
	"time"
)

// FallbackErrorMessage is reported when ffmpeg fails without writing to stderr.
const FallbackErrorMessage = "FFmpeg failed to process"

// ErrEncodingFailed matches every *EncodingError via errors.Is.
var ErrEncodingFailed = errors.New("ffmpeg encoding failed")

// EncodingError is returned when ffmpeg exits with a non-zero status.
// Missing inputs, a missing ffmpeg binary and codec failures all surface
// through this one type.
type EncodingError struct {
	Args     []string
	ExitCode int
	Stderr   string
}

// Message returns the diagnostic text reported to the host.
func (e *EncodingError) Message() string {
	if e.Stderr == "" {
		return FallbackErrorMessage
	}
	return e.Stderr
}

func (e *EncodingError) Error() string {
	return e.Message()
}

// Is reports whether target is ErrEncodingFailed.
func (e *EncodingError) Is(target error) bool {
	return target == ErrEncodingFailed
}

// ExecRunner implements Runner with os/exec.
type ExecRunner struct{}

// Run starts name with args, waits for it and captures stdout and stderr.
// A process that cannot be started is reported with ExitCode -1 and the
// start error as Stderr.
func (ExecRunner) Run(ctx context.Context, name string, args []string) Execution {
	// #nosec G204 - args are passed as a list, never through a shell
	cmd := exec.CommandContext(ctx, name, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	res := Execution{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}
	if err == nil {
		return res
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		res.ExitCode = exitErr.ExitCode()
		return res
	}

	res.ExitCode = -1
	if res.Stderr == "" {
		res.Stderr = err.Error()
	}
	return res
}

// VideoMuxer implements Muxer using the ffmpeg CLI.
type VideoMuxer struct {
	// ffmpegPath is the path to the ffmpeg binary. Defaults to "ffmpeg".
	ffmpegPath string
	resolver   OutputPathResolver
	runner     Runner
	now        func() time.Time
	logger     *slog.Logger
}

// Compile-time check that VideoMuxer implements Muxer.
var _ Muxer = (*VideoMuxer)(nil)

// Option configures a VideoMuxer.
type Option func(*VideoMuxer)

// WithRunner replaces the process runner.
func WithRunner(r Runner) Option {
	return func(m *VideoMuxer) {
		if r != nil {
			m.runner = r
		}
	}
}

// WithClock replaces the wall clock used for output filenames.
func WithClock(now func() time.Time) Option {
	return func(m *VideoMuxer) {
		if now != nil {
			m.now = now
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(m *VideoMuxer) {
		if l != nil {
			m.logger = l
		}
	}
}

// NewVideoMuxer creates a new VideoMuxer.
// If ffmpegPath is empty, it defaults to "ffmpeg" (found via PATH).
func NewVideoMuxer(ffmpegPath string, resolver OutputPathResolver, opts ...Option) *VideoMuxer {
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}
	m := &VideoMuxer{
		ffmpegPath: ffmpegPath,
		resolver:   resolver,
		runner:     ExecRunner{},
		now:        time.Now,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Mux resolves the output path, runs ffmpeg and reports the written file.
// A partially written file is left on disk when ffmpeg fails.
func (m *VideoMuxer) Mux(ctx context.Context, req Request) (*Result, error) {
	dir, err := ResolveOutputDir(req.CustomOutputPath, m.resolver)
	if err != nil {
		return nil, err
	}

	outputPath := OutputPath(dir, req.FilenamePrefix, m.now())
	args := BuildMuxArgs(req, outputPath)

	m.logger.Debug("running ffmpeg",
		slog.String("ffmpeg", m.ffmpegPath),
		slog.Any("args", args),
	)

	res := m.runner.Run(ctx, m.ffmpegPath, args)
	if res.ExitCode != 0 {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("ffmpeg cancelled: %w", ctx.Err())
		}
		encErr := &EncodingError{
			Args:     args,
			ExitCode: res.ExitCode,
			Stderr:   res.Stderr,
		}
		m.logger.Warn("ffmpeg failed",
			slog.Int("exit_code", res.ExitCode),
			slog.String("output_path", outputPath),
			slog.String("stderr", res.Stderr),
		)
		return nil, encErr
	}

	m.logger.Info("video muxed",
		slog.String("output_path", outputPath),
		slog.Float64("pre_delay", req.PreDelay),
		slog.Float64("post_delay", req.PostDelay),
	)

	return &Result{OutputPath: outputPath}, nil
}

// BuildMuxArgs returns the ffmpeg arguments that loop the still image as
// the video stream and delay and pad the audio. The output ends with the
// padded audio.
func BuildMuxArgs(req Request, outputPath string) []string {
	delay := DelayMillis(req.PreDelay)
	filter := fmt.Sprintf("[1:a]adelay=%d|%d,apad=pad_dur=%s[a]",
		delay, delay, formatSeconds(req.PostDelay))

	return []string{
		"-y",         // Overwrite output file without asking
		"-loop", "1", // Loop the still image
		"-i", req.ImagePath,
		"-i", req.AudioPath,
		"-filter_complex", filter, // Delay both channels, pad the tail
		"-map", "0:v",
		"-map", "[a]",
		"-c:v", "libx264",
		"-tune", "stillimage",
		"-pix_fmt", "yuv420p", // Pixel format for compatibility
		"-c:a", "aac",
		"-shortest", // Stop at the padded audio, the image loops forever
		outputPath,
	}
}

// DelayMillis converts seconds to whole milliseconds, truncating any
// fractional millisecond.
func DelayMillis(seconds float64) int64 {
	return int64(seconds * 1000)
}

func formatSeconds(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
