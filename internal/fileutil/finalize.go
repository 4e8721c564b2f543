// Package fileutil writes output files atomically next to their destination.
package fileutil

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const (
	ownerReadWrite = 0o600
	executableBits = 0o111
)

// Perm is the mode given to an output derived from src: owner read/write,
// plus the executable bits when src had any.
func Perm(src os.FileInfo) os.FileMode {
	perm := os.FileMode(ownerReadWrite)

	if src != nil && src.Mode()&executableBits != 0 {
		perm |= executableBits
	}

	return perm
}

// WriteFile writes data to outPath through a temp file in the same directory
// and renames it into place, so readers never observe a partial output.
// The output gets Perm(src) and, when preserveTimestamps is set, src's modification time.
// It returns the size of the written file.
func WriteFile(outPath string, data []byte, src os.FileInfo, preserveTimestamps bool) (size int64, err error) {
	tmp, err := os.CreateTemp(filepath.Dir(outPath), ".tmp-*")
	if err != nil {
		return 0, fmt.Errorf("creating temporary file: %w", err)
	}

	name := tmp.Name()

	defer func() {
		tmp.Close() //nolint:errcheck,gosec

		if err != nil {
			os.Remove(name) //nolint:errcheck,gosec
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return 0, fmt.Errorf("writing temporary file: %w", err)
	}

	if err = tmp.Chmod(Perm(src)); err != nil {
		return 0, fmt.Errorf("setting file permissions: %w", err)
	}

	if err = tmp.Sync(); err != nil {
		return 0, fmt.Errorf("syncing temporary file: %w", err)
	}

	if err = tmp.Close(); err != nil {
		return 0, fmt.Errorf("closing temporary file: %w", err)
	}

	if err = os.Rename(name, outPath); err != nil {
		return 0, fmt.Errorf("renaming output file: %w", err)
	}

	var modTime time.Time
	if src != nil {
		modTime = src.ModTime()
	}

	return FinalizeOutput(outPath, preserveTimestamps && src != nil, modTime)
}

// FinalizeOutput optionally preserves timestamps and returns the output file size.
func FinalizeOutput(outPath string, preserveTimestamps bool, modTime time.Time) (int64, error) {
	if preserveTimestamps {
		if err := os.Chtimes(outPath, modTime, modTime); err != nil {
			return 0, fmt.Errorf("preserving timestamps: %w", err)
		}
	}

	info, err := os.Stat(outPath)
	if err != nil {
		return 0, fmt.Errorf("stat output %q: %w", outPath, err)
	}

	return info.Size(), nil
}

// Exists reports whether path names an existing file system entry.
func Exists(path string) bool {
	_, err := os.Lstat(path)

	return err == nil
}
