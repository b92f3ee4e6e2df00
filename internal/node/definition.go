// Package node exposes the VideoMuxer as a host graph node: its typed
// input schema, its outputs, and the string payload the host UI expects.
package node

import "encoding/json"

// Node identity as registered with the host.
const (
	Name        = "DirectFFmpegMuxer"
	DisplayName = "Direct FFmpeg Muxer"
	Category    = "🔥FFmpeg"
	Function    = "mux_video"
)

// Input defaults and bounds.
const (
	DefaultPreDelay         = 2.0
	DefaultPostDelay        = 1.0
	DefaultFilenamePrefix   = "ComfyUI"
	DefaultCustomOutputPath = "default"
	MinDelay                = 0.0
	DelayStep               = 0.1
)

// Type names understood by the host.
const (
	TypeString = "STRING"
	TypeFloat  = "FLOAT"
)

// InputSpec describes one typed input field.
// It encodes as the host's ["TYPE", {options}] tuple.
type InputSpec struct {
	Type    string
	Default any
	Min     *float64
	Step    *float64
}

// MarshalJSON implements json.Marshaler.
func (s InputSpec) MarshalJSON() ([]byte, error) {
	opts := map[string]any{"default": s.Default}
	if s.Min != nil {
		opts["min"] = *s.Min
	}
	if s.Step != nil {
		opts["step"] = *s.Step
	}
	return json.Marshal([]any{s.Type, opts})
}

// InputTypes groups the node inputs.
type InputTypes struct {
	Required map[string]InputSpec `json:"required"`
}

// Definition is the node schema rendered by the host.
type Definition struct {
	Name        string              `json:"name"`
	DisplayName string              `json:"display_name"`
	Category    string              `json:"category"`
	Function    string              `json:"function"`
	Input       InputTypes          `json:"input"`
	InputOrder  map[string][]string `json:"input_order"`
	Output      []string            `json:"output"`
	OutputName  []string            `json:"output_name"`
	// OutputNode marks the node as producing user-visible output.
	OutputNode bool `json:"output_node"`
}

// NewDefinition returns the DirectFFmpegMuxer schema.
func NewDefinition() Definition {
	minDelay, step := MinDelay, DelayStep
	delay := func(def float64) InputSpec {
		return InputSpec{Type: TypeFloat, Default: def, Min: &minDelay, Step: &step}
	}

	return Definition{
		Name:        Name,
		DisplayName: DisplayName,
		Category:    Category,
		Function:    Function,
		Input: InputTypes{
			Required: map[string]InputSpec{
				"image_path":         {Type: TypeString, Default: ""},
				"audio_path":         {Type: TypeString, Default: ""},
				"pre_delay":          delay(DefaultPreDelay),
				"post_delay":         delay(DefaultPostDelay),
				"filename_prefix":    {Type: TypeString, Default: DefaultFilenamePrefix},
				"custom_output_path": {Type: TypeString, Default: DefaultCustomOutputPath},
			},
		},
		InputOrder: map[string][]string{
			"required": {
				"image_path",
				"audio_path",
				"pre_delay",
				"post_delay",
				"filename_prefix",
				"custom_output_path",
			},
		},
		Output:     []string{TypeString},
		OutputName: []string{"video_path"},
		OutputNode: true,
	}
}
