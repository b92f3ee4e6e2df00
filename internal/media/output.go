package media

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// DefaultOutputPath selects the host output directory when used as a
// custom output path. Matching is case-insensitive.
const DefaultOutputPath = "default"

// timestampLayout formats local time as YYYYMMDDHHMMSS.
const timestampLayout = "20060102150405"

// ErrNoOutputDirectory is returned when the default output directory is
// requested but no resolver (or an empty one) is configured.
var ErrNoOutputDirectory = errors.New("no default output directory configured")

// IsDefaultOutputPath reports whether p selects the host output directory.
func IsDefaultOutputPath(p string) bool {
	p = strings.TrimSpace(p)
	return p == "" || strings.EqualFold(p, DefaultOutputPath)
}

// ResolveOutputDir returns the directory a video is written to and creates
// it (with parents) if needed. Existing directories are not an error.
func ResolveOutputDir(custom string, resolver OutputPathResolver) (string, error) {
	var dir string
	if IsDefaultOutputPath(custom) {
		if resolver != nil {
			dir = resolver.OutputDirectory()
		}
		if dir == "" {
			return "", ErrNoOutputDirectory
		}
	} else {
		abs, err := filepath.Abs(custom)
		if err != nil {
			return "", fmt.Errorf("resolve output path %q: %w", custom, err)
		}
		dir = abs
	}

	if err := os.MkdirAll(dir, 0750); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}
	return dir, nil
}

// OutputFileName returns "<prefix>_<YYYYMMDDHHMMSS>.mp4" for t.
// Two calls within the same second with the same prefix collide.
func OutputFileName(prefix string, t time.Time) string {
	return fmt.Sprintf("%s_%s.mp4", prefix, t.Format(timestampLayout))
}

// OutputPath joins dir and the generated filename into a cleaned path.
func OutputPath(dir, prefix string, t time.Time) string {
	return filepath.Join(dir, OutputFileName(prefix, t))
}
