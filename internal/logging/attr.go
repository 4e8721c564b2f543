package logging

import (
	"log/slog"
	"time"

	"github.com/dustin/go-humanize"
)

// Attribute helpers return the empty Attr for zero inputs, which slog drops,
// so call sites can pass them unconditionally.

// Error creates an attribute for err under the key "error".
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}

	return slog.Any("error", err)
}

// File creates an attribute for a file path.
func File(path string) slog.Attr {
	if path == "" {
		return slog.Attr{}
	}

	return slog.String("file", path)
}

// Size creates a human readable size attribute.
func Size(n int64) slog.Attr {
	return slog.String("size", humanize.IBytes(uint64(max(0, n)))) //nolint:gosec
}

// Elapsed records the time since start.
func Elapsed(start time.Time) slog.Attr {
	return slog.Duration("elapsed", time.Since(start))
}
