package inputs_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/goccy/go-yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idelchi/veil/internal/inputs"
)

type matchCase struct {
	Pattern string `yaml:"pattern"`
	Path    string `yaml:"path"`
	Match   bool   `yaml:"match"`
}

type matchGroup struct {
	Name        string      `yaml:"name"`
	Description string      `yaml:"description,omitempty"`
	Cases       []matchCase `yaml:"cases"`
}

func TestMatcher(t *testing.T) {
	t.Parallel()

	data, err := os.ReadFile("testdata/matcher.yml")
	require.NoError(t, err)

	var groups []matchGroup
	require.NoError(t, yaml.Unmarshal(data, &groups))
	require.NotEmpty(t, groups)

	for _, group := range groups {
		t.Run(group.Name, func(t *testing.T) {
			t.Parallel()

			for _, tc := range group.Cases {
				matcher, err := inputs.NewMatcher([]string{tc.Pattern})
				require.NoError(t, err)

				assert.Equal(t, tc.Match, matcher.Match(tc.Path), "pattern %q path %q", tc.Pattern, tc.Path)
			}
		})
	}
}

func TestNewMatcherRejectsBadPattern(t *testing.T) {
	t.Parallel()

	_, err := inputs.NewMatcher([]string{"[unterminated"})
	require.Error(t, err)
}

// tree creates files under a fresh temp dir and returns its root.
func tree(t *testing.T, files ...string) string {
	t.Helper()

	root := t.TempDir()

	for _, f := range files {
		p := filepath.Join(root, filepath.FromSlash(f))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(f), 0o600))
	}

	return root
}

func rel(t *testing.T, root string, files []string) []string {
	t.Helper()

	out := make([]string, 0, len(files))

	for _, f := range files {
		r, err := filepath.Rel(root, f)
		require.NoError(t, err)

		out = append(out, filepath.ToSlash(r))
	}

	return out
}

func TestResolveEncryptWalk(t *testing.T) {
	t.Parallel()

	root := tree(t, "a.txt", "sub/b.txt", "sub/c.txt.enc", "skip.log")

	files, scanned, err := inputs.Resolve([]string{root}, []string{"*.log"}, false)
	require.NoError(t, err)

	assert.Equal(t, 4, scanned)
	assert.ElementsMatch(t, []string{"a.txt", "sub/b.txt"}, rel(t, root, files))
}

func TestResolveDecryptWalk(t *testing.T) {
	t.Parallel()

	root := tree(t, "a.txt", "a.txt.enc", "sub/b.bin.enc")

	files, scanned, err := inputs.Resolve([]string{root}, nil, true)
	require.NoError(t, err)

	assert.Equal(t, 3, scanned)
	assert.ElementsMatch(t, []string{"a.txt.enc", "sub/b.bin.enc"}, rel(t, root, files))
}

func TestResolveExplicitFilesBypassFilters(t *testing.T) {
	t.Parallel()

	root := tree(t, "notes.log")
	file := filepath.Join(root, "notes.log")

	files, _, err := inputs.Resolve([]string{file}, []string{"*.log"}, true)
	require.NoError(t, err)

	assert.Equal(t, []string{file}, files)
}

func TestResolveDeduplicates(t *testing.T) {
	t.Parallel()

	root := tree(t, "a.txt")
	file := filepath.Join(root, "a.txt")

	files, scanned, err := inputs.Resolve([]string{file, root, filepath.Join(root, ".", "a.txt")}, nil, false)
	require.NoError(t, err)

	assert.Equal(t, 3, scanned)
	assert.Equal(t, []string{file}, files)
}

func TestResolveNoMatches(t *testing.T) {
	t.Parallel()

	root := tree(t, "a.txt")

	_, _, err := inputs.Resolve([]string{root}, nil, true)
	require.ErrorIs(t, err, inputs.ErrNoFiles)
}

func TestResolveMissing(t *testing.T) {
	t.Parallel()

	_, _, err := inputs.Resolve([]string{filepath.Join(t.TempDir(), "missing")}, nil, false)
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadPatterns(t *testing.T) {
	t.Parallel()

	file := filepath.Join(t.TempDir(), "exclude.jsonc")
	content := `[
  // build output
  "build/*",
  "*.log", // logs
]`
	require.NoError(t, os.WriteFile(file, []byte(content), 0o600))

	patterns, err := inputs.LoadPatterns(file)
	require.NoError(t, err)

	assert.Equal(t, []string{"build/*", "*.log"}, patterns)
}

func TestLoadPatternsInvalid(t *testing.T) {
	t.Parallel()

	file := filepath.Join(t.TempDir(), "exclude.jsonc")
	require.NoError(t, os.WriteFile(file, []byte(`{"not": "a list"}`), 0o600))

	_, err := inputs.LoadPatterns(file)
	require.Error(t, err)
}
