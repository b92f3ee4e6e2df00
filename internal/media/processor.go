// Package media combines a still image and an audio track into a video
// using the ffmpeg CLI.
package media

import "context"

// Muxer defines the interface for still-image video muxing.
type Muxer interface {
	// Mux encodes the request into a new .mp4 in the resolved output
	// directory. On success it returns the written path. A non-zero ffmpeg
	// exit is reported as *EncodingError.
	Mux(ctx context.Context, req Request) (*Result, error)
}

// OutputPathResolver supplies the host's default output directory.
type OutputPathResolver interface {
	OutputDirectory() string
}

// OutputPathResolverFunc adapts a function to OutputPathResolver.
type OutputPathResolverFunc func() string

// OutputDirectory calls f.
func (f OutputPathResolverFunc) OutputDirectory() string {
	return f()
}

// Runner executes an external command with a discrete argument list.
// Implementations must not interpret args through a shell.
type Runner interface {
	Run(ctx context.Context, name string, args []string) Execution
}

// Execution is the captured outcome of a Runner call.
type Execution struct {
	// ExitCode is the process exit status. It is -1 when the process
	// could not be started or was killed by a signal.
	ExitCode int
	Stdout   string
	Stderr   string
}

// Request describes a single mux invocation.
type Request struct {
	// ImagePath is the still image looped as the video stream.
	ImagePath string
	// AudioPath is the audio track. Neither path is checked for existence.
	AudioPath string
	// PreDelay is the silence in seconds inserted before the audio.
	PreDelay float64
	// PostDelay is the silence in seconds appended after the audio.
	PostDelay float64
	// FilenamePrefix is prepended to the generated filename.
	FilenamePrefix string
	// CustomOutputPath is a directory, or "default"/blank for the host
	// output directory.
	CustomOutputPath string
}

// Result is the outcome of a successful mux.
type Result struct {
	// OutputPath is the cleaned path of the written video.
	OutputPath string
}
