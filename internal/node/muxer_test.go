package node

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/maauso/directmux/internal/media"
)

// mockMuxer implements media.Muxer for testing.
type mockMuxer struct {
	mock.Mock
}

func (m *mockMuxer) Mux(ctx context.Context, req media.Request) (*media.Result, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*media.Result), args.Error(1)
}

func TestDefaultInputs(t *testing.T) {
	in := DefaultInputs()
	assert.Equal(t, 2.0, in.PreDelay)
	assert.Equal(t, 1.0, in.PostDelay)
	assert.Equal(t, "ComfyUI", in.FilenamePrefix)
	assert.Equal(t, "default", in.CustomOutputPath)
	assert.Empty(t, in.ImagePath)
	assert.Empty(t, in.AudioPath)
}

func TestFormatOutput(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		out := FormatOutput(&media.Result{OutputPath: "/out/a_20240102030405.mp4"}, nil)
		assert.Equal(t, []string{"/out/a_20240102030405.mp4"}, out.Result)
		assert.Equal(t, out.Result, out.UI.Text)
	})

	t.Run("encoding failure", func(t *testing.T) {
		out := FormatOutput(nil, &media.EncodingError{ExitCode: 1, Stderr: "boom"})
		assert.Equal(t, []string{"Error: boom"}, out.Result)
		assert.Equal(t, []string{"Error: boom"}, out.UI.Text)
	})

	t.Run("empty stderr", func(t *testing.T) {
		out := FormatOutput(nil, &media.EncodingError{ExitCode: 1})
		assert.Equal(t, "Error: FFmpeg failed to process", out.Result[0])
	})

	t.Run("other error", func(t *testing.T) {
		out := FormatOutput(nil, errors.New("disk gone"))
		assert.Equal(t, "Error: disk gone", out.Result[0])
	})
}

func TestIsError(t *testing.T) {
	assert.True(t, IsError("Error: boom"))
	assert.False(t, IsError("/out/Error.mp4"))
	assert.False(t, IsError("Error:boom"))
	assert.False(t, IsError(""))
}

func TestDirectFFmpegMuxer_Execute(t *testing.T) {
	in := DefaultInputs()
	in.ImagePath = "cover.png"
	in.AudioPath = "voice.wav"

	t.Run("success", func(t *testing.T) {
		m := &mockMuxer{}
		n := NewDirectFFmpegMuxer(m)
		m.On("Mux", mock.Anything, in.Request()).
			Return(&media.Result{OutputPath: "/out/ComfyUI_20240102030405.mp4"}, nil)

		out := n.Execute(context.Background(), in)
		assert.Equal(t, "/out/ComfyUI_20240102030405.mp4", out.Result[0])
		assert.Equal(t, out.Result, out.UI.Text)
		m.AssertExpectations(t)
	})

	t.Run("failure", func(t *testing.T) {
		m := &mockMuxer{}
		n := NewDirectFFmpegMuxer(m)
		m.On("Mux", mock.Anything, mock.Anything).
			Return(nil, &media.EncodingError{ExitCode: 1, Stderr: "boom"})

		out := n.Execute(context.Background(), in)
		assert.Equal(t, "Error: boom", out.Result[0])
		assert.True(t, IsError(out.UI.Text[0]))
	})

	t.Run("negative delay rejected", func(t *testing.T) {
		m := &mockMuxer{}
		n := NewDirectFFmpegMuxer(m)

		bad := in
		bad.PreDelay = -1

		_, err := n.Run(context.Background(), bad)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidInputs)

		out := n.Execute(context.Background(), bad)
		assert.True(t, IsError(out.Result[0]))
		m.AssertNotCalled(t, "Mux", mock.Anything, mock.Anything)
	})
}

func TestInputs_Request(t *testing.T) {
	in := Inputs{
		ImagePath:        "i.png",
		AudioPath:        "a.wav",
		PreDelay:         0.5,
		PostDelay:        0.25,
		FilenamePrefix:   "p",
		CustomOutputPath: "/tmp/out",
	}
	assert.Equal(t, media.Request{
		ImagePath:        "i.png",
		AudioPath:        "a.wav",
		PreDelay:         0.5,
		PostDelay:        0.25,
		FilenamePrefix:   "p",
		CustomOutputPath: "/tmp/out",
	}, in.Request())
}
