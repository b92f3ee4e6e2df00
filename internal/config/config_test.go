package config

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/sethvargo/go-envconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := LoadWithLookuper(envconfig.MapLookuper(map[string]string{}))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "output", cfg.OutputDir)
	assert.Equal(t, "ffmpeg", cfg.FFmpegPath)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.S3Enabled())
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("OUTPUT_DIR", "/srv/comfy/output")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "/srv/comfy/output", cfg.OutputDir)
}

func TestLoad_CustomValues(t *testing.T) {
	cfg, err := LoadWithLookuper(envconfig.MapLookuper(map[string]string{
		"PORT":                  "3000",
		"OUTPUT_DIR":            "/custom/output",
		"FFMPEG_PATH":           "/opt/ffmpeg/bin/ffmpeg",
		"S3_BUCKET":             "my-bucket",
		"S3_REGION":             "us-east-1",
		"S3_PREFIX":             "videos/",
		"S3_ENDPOINT":           "http://localhost:4566",
		"AWS_ACCESS_KEY_ID":     "access-key",
		"AWS_SECRET_ACCESS_KEY": "secret-key",
		"LOG_FORMAT":            "json",
		"LOG_LEVEL":             "debug",
	}))
	require.NoError(t, err)

	assert.Equal(t, 3000, cfg.Port)
	assert.Equal(t, "/custom/output", cfg.OutputDir)
	assert.Equal(t, "/opt/ffmpeg/bin/ffmpeg", cfg.FFmpegPath)
	assert.Equal(t, "my-bucket", cfg.S3Bucket)
	assert.Equal(t, "us-east-1", cfg.S3Region)
	assert.Equal(t, "videos/", cfg.S3Prefix)
	assert.Equal(t, "http://localhost:4566", cfg.S3Endpoint)
	assert.Equal(t, "access-key", cfg.AWSAccessKeyID)
	assert.Equal(t, "secret-key", cfg.AWSSecretAccessKey)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.True(t, cfg.S3Enabled())
}

func TestLoad_InvalidInteger(t *testing.T) {
	// go-envconfig returns an error when parsing fails
	_, err := LoadWithLookuper(envconfig.MapLookuper(map[string]string{
		"PORT": "not-a-number",
	}))
	require.Error(t, err)
}

func TestLoad_ValidationErrors(t *testing.T) {
	_, err := LoadWithLookuper(envconfig.MapLookuper(map[string]string{
		"PORT": "70000",
	}))
	assert.ErrorIs(t, err, ErrInvalidPort)

	_, err = LoadWithLookuper(envconfig.MapLookuper(map[string]string{
		"S3_BUCKET": "bucket",
	}))
	assert.ErrorIs(t, err, ErrS3RegionRequired)
}

func TestConfig_S3Enabled(t *testing.T) {
	tests := []struct {
		name     string
		bucket   string
		region   string
		expected bool
	}{
		{"both set", "bucket", "region", true},
		{"only bucket", "bucket", "", false},
		{"only region", "", "region", false},
		{"neither set", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				S3Bucket: tt.bucket,
				S3Region: tt.region,
			}
			assert.Equal(t, tt.expected, cfg.S3Enabled())
		})
	}
}

func TestConfig_String(t *testing.T) {
	cfg := &Config{
		Port:               8080,
		OutputDir:          "/tmp/test",
		S3Bucket:           "bucket",
		S3Region:           "region",
		AWSAccessKeyID:     "access-key",
		AWSSecretAccessKey: "secret-key",
		LogFormat:          "json",
		LogLevel:           "info",
	}

	str := cfg.String()

	// Should contain non-sensitive values
	assert.Contains(t, str, "8080")
	assert.Contains(t, str, "/tmp/test")
	assert.Contains(t, str, "bucket")

	// Should NOT contain sensitive values
	assert.NotContains(t, str, "secret-key")
	assert.NotContains(t, str, "access-key")
}

func TestConfig_NewLogger(t *testing.T) {
	for _, format := range []string{"json", "text", "JSON", ""} {
		cfg := &Config{LogFormat: format, LogLevel: "debug"}
		logger := cfg.NewLogger()
		require.NotNil(t, logger)
		assert.True(t, logger.Enabled(context.Background(), slog.LevelDebug))
	}
}

func TestConfig_NewLoggerTo_JSON(t *testing.T) {
	var buf bytes.Buffer
	cfg := &Config{LogFormat: "json", LogLevel: "info"}

	logger := cfg.NewLoggerTo(&buf)
	logger.Info("test message")
	logger.Debug("hidden")

	assert.Contains(t, buf.String(), `"msg":"test message"`)
	assert.NotContains(t, buf.String(), "hidden")
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"ERROR", slog.LevelError},
		{"unknown", slog.LevelInfo}, // defaults to info
		{"", slog.LevelInfo},        // defaults to info
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseLogLevel(tt.input))
		})
	}
}
