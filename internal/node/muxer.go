package node

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/maauso/directmux/internal/media"
)

// ErrorPrefix marks a failure in the host's string result slot.
const ErrorPrefix = "Error: "

// ErrInvalidInputs is returned when inputs violate the declared schema.
var ErrInvalidInputs = errors.New("invalid node inputs")

// Inputs holds the node input values.
type Inputs struct {
	ImagePath        string  `json:"image_path"`
	AudioPath        string  `json:"audio_path"`
	PreDelay         float64 `json:"pre_delay" validate:"gte=0"`
	PostDelay        float64 `json:"post_delay" validate:"gte=0"`
	FilenamePrefix   string  `json:"filename_prefix"`
	CustomOutputPath string  `json:"custom_output_path"`
}

// DefaultInputs returns Inputs populated with the declared defaults.
func DefaultInputs() Inputs {
	return Inputs{
		PreDelay:         DefaultPreDelay,
		PostDelay:        DefaultPostDelay,
		FilenamePrefix:   DefaultFilenamePrefix,
		CustomOutputPath: DefaultCustomOutputPath,
	}
}

// Request converts the inputs to a media.Request.
func (in Inputs) Request() media.Request {
	return media.Request{
		ImagePath:        in.ImagePath,
		AudioPath:        in.AudioPath,
		PreDelay:         in.PreDelay,
		PostDelay:        in.PostDelay,
		FilenamePrefix:   in.FilenamePrefix,
		CustomOutputPath: in.CustomOutputPath,
	}
}

// UI is the side-channel text shown by the host.
type UI struct {
	Text []string `json:"text"`
}

// Output is the payload returned to the host after execution.
type Output struct {
	UI     UI       `json:"ui"`
	Result []string `json:"result"`
}

// FormatOutput converts a mux outcome to the host payload.
// Both slots carry the output path on success, or "Error: <message>".
func FormatOutput(res *media.Result, err error) Output {
	s := ""
	switch {
	case err != nil:
		s = ErrorPrefix + err.Error()
	case res != nil:
		s = res.OutputPath
	}
	return Output{
		UI:     UI{Text: []string{s}},
		Result: []string{s},
	}
}

// IsError reports whether a result string carries a failure.
func IsError(s string) bool {
	return strings.HasPrefix(s, ErrorPrefix)
}

// DirectFFmpegMuxer is the host node wrapping a media.Muxer.
type DirectFFmpegMuxer struct {
	muxer     media.Muxer
	validator *validator.Validate
}

// NewDirectFFmpegMuxer creates the node.
func NewDirectFFmpegMuxer(m media.Muxer) *DirectFFmpegMuxer {
	return &DirectFFmpegMuxer{
		muxer:     m,
		validator: validator.New(),
	}
}

// Definition returns the node schema.
func (n *DirectFFmpegMuxer) Definition() Definition {
	return NewDefinition()
}

// Validate checks inputs against the declared bounds.
func (n *DirectFFmpegMuxer) Validate(in Inputs) error {
	if err := n.validator.Struct(in); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidInputs, err)
	}
	return nil
}

// Run validates the inputs and muxes the video.
func (n *DirectFFmpegMuxer) Run(ctx context.Context, in Inputs) (*media.Result, error) {
	if err := n.Validate(in); err != nil {
		return nil, err
	}
	return n.muxer.Mux(ctx, in.Request())
}

// Execute runs the node and reports its outcome in the host format.
// Failures never escape as Go errors.
func (n *DirectFFmpegMuxer) Execute(ctx context.Context, in Inputs) Output {
	return FormatOutput(n.Run(ctx, in))
}
