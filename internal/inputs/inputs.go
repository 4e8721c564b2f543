// Package inputs turns positional arguments into the list of files to process.
package inputs

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/idelchi/veil/internal/engine"
)

// ErrNoFiles is returned when the arguments resolve to nothing.
var ErrNoFiles = errors.New("no files matched")

// Matcher holds exclude patterns in path.Match syntax.
type Matcher struct {
	patterns []string
}

// NewMatcher compiles patterns, stripping a leading "./" so they match cleaned paths.
func NewMatcher(patterns []string) (*Matcher, error) {
	m := &Matcher{patterns: make([]string, 0, len(patterns))}

	for _, p := range patterns {
		p = strings.TrimPrefix(p, "./")

		if _, err := path.Match(p, ""); err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", p, err)
		}

		m.patterns = append(m.patterns, p)
	}

	return m, nil
}

// Match reports whether the slash-separated name, or its base name, matches any pattern.
func (m *Matcher) Match(name string) bool {
	base := path.Base(name)

	for _, p := range m.patterns {
		if ok, _ := path.Match(p, name); ok {
			return true
		}

		if ok, _ := path.Match(p, base); ok {
			return true
		}
	}

	return false
}

// Resolve expands args into files. Explicit files are taken as-is.
// Directories are walked: in decrypt mode only files ending in the encrypted suffix are kept,
// otherwise those files are skipped. Excludes apply to walked files only.
// scanned counts every file seen before filtering.
func Resolve(args, excludes []string, decrypt bool) (files []string, scanned int, err error) {
	matcher, err := NewMatcher(excludes)
	if err != nil {
		return nil, 0, err
	}

	seen := make(map[string]struct{})

	add := func(file string) {
		if _, ok := seen[file]; ok {
			return
		}

		seen[file] = struct{}{}
		files = append(files, file)
	}

	for _, arg := range args {
		arg = filepath.Clean(arg)

		info, err := os.Stat(arg)
		if err != nil {
			return nil, 0, fmt.Errorf("stat %q: %w", arg, err)
		}

		if !info.IsDir() {
			scanned++

			add(arg)

			continue
		}

		walked, total, err := walkDir(arg, matcher, decrypt)
		if err != nil {
			return nil, 0, err
		}

		scanned += total

		for _, file := range walked {
			add(file)
		}
	}

	if len(files) == 0 {
		return nil, scanned, fmt.Errorf("%w: %v", ErrNoFiles, args)
	}

	return files, scanned, nil
}

func walkDir(root string, matcher *Matcher, decrypt bool) (files []string, total int, err error) {
	err = filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if !d.Type().IsRegular() {
			return nil
		}

		total++

		if strings.HasSuffix(p, engine.Suffix) != decrypt {
			return nil
		}

		if matcher.Match(filepath.ToSlash(p)) {
			return nil
		}

		files = append(files, p)

		return nil
	})
	if err != nil {
		return nil, 0, fmt.Errorf("walking %q: %w", root, err)
	}

	return files, total, nil
}
