// Package command implements the directmux command line.
package command

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/maauso/directmux/internal/bootstrap"
	"github.com/maauso/directmux/internal/config"
	"github.com/maauso/directmux/internal/node"
)

// ErrMuxFailed is returned after an "Error: ..." result has been printed.
var ErrMuxFailed = errors.New("mux failed")

// NewRootCommand builds the directmux command. Configuration comes from
// the environment, with --ffmpeg overriding FFMPEG_PATH.
func NewRootCommand(opts ...bootstrap.Option) *cobra.Command {
	in := node.DefaultInputs()
	var ffmpegPath string

	cmd := &cobra.Command{
		Use:   "directmux",
		Short: "Combine a still image and an audio track into an mp4",
		Long: `directmux loops a still image over an audio track with silence
padding before and after it, writes <prefix>_<timestamp>.mp4 and prints
the output path, or "Error: <message>" when ffmpeg fails.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if ffmpegPath != "" {
				cfg.FFmpegPath = ffmpegPath
			}

			// Logs go to stderr so stdout only carries the result
			logger := cfg.NewLoggerTo(os.Stderr)

			deps, err := bootstrap.NewDependencies(cmd.Context(), cfg, logger, opts...)
			if err != nil {
				return fmt.Errorf("initialize dependencies: %w", err)
			}

			out := deps.Node.Execute(cmd.Context(), in)
			fmt.Fprintln(cmd.OutOrStdout(), out.Result[0])
			if node.IsError(out.Result[0]) {
				return ErrMuxFailed
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&in.ImagePath, "image", in.ImagePath, "still image to loop as the video stream")
	f.StringVar(&in.AudioPath, "audio", in.AudioPath, "audio track")
	f.Float64Var(&in.PreDelay, "pre-delay", in.PreDelay, "seconds of silence before the audio")
	f.Float64Var(&in.PostDelay, "post-delay", in.PostDelay, "seconds of silence after the audio")
	f.StringVar(&in.FilenamePrefix, "prefix", in.FilenamePrefix, "output filename prefix")
	f.StringVarP(&in.CustomOutputPath, "output", "o", in.CustomOutputPath, `output directory, or "default" for OUTPUT_DIR`)
	f.StringVar(&ffmpegPath, "ffmpeg", "", "ffmpeg binary (overrides FFMPEG_PATH)")

	return cmd
}

// Execute runs the root command.
func Execute() error {
	return NewRootCommand().Execute()
}
