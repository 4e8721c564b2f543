package logic_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/goccy/go-yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idelchi/veil/internal/config"
	"github.com/idelchi/veil/internal/engine"
	"github.com/idelchi/veil/internal/logic"
	"github.com/idelchi/veil/internal/passphrase"
	"github.com/idelchi/veil/internal/processor"
)

type staticPassword struct {
	password string
	err      error
	confirm  []bool
}

func (s *staticPassword) Obtain(confirm bool) ([]byte, error) {
	s.confirm = append(s.confirm, confirm)

	if s.err != nil {
		return nil, s.err
	}

	return []byte(s.password), nil
}

type harness struct {
	env    logic.Env
	stdout *bytes.Buffer
	stderr *bytes.Buffer
	pw     *staticPassword
}

func newHarness(password string) *harness {
	params := engine.DefaultParams()
	params.Iterations = 1000

	h := &harness{
		stdout: &bytes.Buffer{},
		stderr: &bytes.Buffer{},
		pw:     &staticPassword{password: password},
	}

	h.env = logic.Env{
		Passwords: h.pw,
		Stdout:    h.stdout,
		Stderr:    h.stderr,
		Params:    &params,
	}

	return h
}

func newConfig(t *testing.T, decrypt bool, files ...string) *config.Config {
	t.Helper()

	cfg := &config.Config{
		Parallel:  2,
		MaxSize:   "100MB",
		MinLength: 6,
		Strict:    true,
		LogLevel:  "info",
		LogFormat: "text",
		Decrypt:   decrypt,
		Files:     files,
	}
	require.NoError(t, cfg.Validate())

	return cfg
}

func populate(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("alpha"), 0o600))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sub", "b.txt"), []byte("beta"), 0o600))

	return dir
}

func TestRunRoundTrip(t *testing.T) {
	t.Parallel()

	dir := populate(t)

	h := newHarness("correct-horse-battery")

	cfg := newConfig(t, false, dir)
	cfg.Stats = true
	cfg.Delete = true

	require.NoError(t, logic.Run(context.Background(), cfg, h.env))

	assert.Equal(t, []bool{true}, h.pw.confirm, "encryption asks for confirmation")
	assert.Contains(t, h.stderr.String(), "Processed: 2")
	assert.FileExists(t, filepath.Join(dir, "a.txt.enc"))
	assert.NoFileExists(t, filepath.Join(dir, "a.txt"))

	h = newHarness("correct-horse-battery")

	require.NoError(t, logic.Run(context.Background(), newConfig(t, true, dir), h.env))

	assert.Equal(t, []bool{false}, h.pw.confirm)

	got, err := os.ReadFile(filepath.Join(dir, "sub", "b.txt"))
	require.NoError(t, err)
	assert.Equal(t, "beta", string(got))
}

func TestRunWrongPassword(t *testing.T) {
	t.Parallel()

	dir := populate(t)

	require.NoError(t, logic.Run(context.Background(), newConfig(t, false, dir), newHarness("correct-horse-battery").env))

	h := newHarness("wrong")
	cfg := newConfig(t, true, dir)
	cfg.Force = true

	err := logic.Run(context.Background(), cfg, h.env)
	require.ErrorIs(t, err, processor.ErrDecryptFailed)
	assert.Contains(t, h.stderr.String(), processor.DecryptFailedMessage)
}

func TestRunDryRun(t *testing.T) {
	t.Parallel()

	dir := populate(t)

	h := newHarness("")
	cfg := newConfig(t, false, dir)
	cfg.Dry = true
	cfg.Stats = true

	require.NoError(t, logic.Run(context.Background(), cfg, h.env))

	assert.Empty(t, h.pw.confirm, "dry run must not ask for a password")
	assert.Contains(t, h.stdout.String(), "a.txt.enc")
	assert.Contains(t, h.stderr.String(), "Processed: 2")
	assert.NoFileExists(t, filepath.Join(dir, "a.txt.enc"))
}

func TestRunRejectsShortPassword(t *testing.T) {
	t.Parallel()

	dir := populate(t)

	err := logic.Run(context.Background(), newConfig(t, false, dir), newHarness("abc").env)
	require.ErrorIs(t, err, passphrase.ErrTooShort)
	assert.NoFileExists(t, filepath.Join(dir, "a.txt.enc"))
}

func TestRunDecryptAcceptsShortPassword(t *testing.T) {
	t.Parallel()

	dir := populate(t)

	cfg := newConfig(t, false, dir)
	cfg.MinLength = 1

	require.NoError(t, logic.Run(context.Background(), cfg, newHarness("abc").env))
	require.NoError(t, os.Remove(filepath.Join(dir, "a.txt")))
	require.NoError(t, os.Remove(filepath.Join(dir, "sub", "b.txt")))

	require.NoError(t, logic.Run(context.Background(), newConfig(t, true, dir), newHarness("abc").env))
}

func TestRunWarnsOnWeakPassword(t *testing.T) {
	t.Parallel()

	h := newHarness("aaaaaa")

	require.NoError(t, logic.Run(context.Background(), newConfig(t, false, populate(t)), h.env))
	assert.Contains(t, h.stderr.String(), "Weak")
}

func TestRunPasswordError(t *testing.T) {
	t.Parallel()

	h := newHarness("")
	h.pw.err = passphrase.ErrMismatch

	err := logic.Run(context.Background(), newConfig(t, false, populate(t)), h.env)
	require.ErrorIs(t, err, passphrase.ErrMismatch)
}

func TestRunExcludeFrom(t *testing.T) {
	t.Parallel()

	dir := populate(t)

	patterns := filepath.Join(t.TempDir(), "exclude.jsonc")
	require.NoError(t, os.WriteFile(patterns, []byte(`["b.txt", // skip
]`), 0o600))

	h := newHarness("correct-horse-battery")
	cfg := newConfig(t, false, dir)
	cfg.ExcludeFrom = patterns
	cfg.Stats = true

	require.NoError(t, logic.Run(context.Background(), cfg, h.env))

	assert.Contains(t, h.stderr.String(), "Excluded:  1")
	assert.FileExists(t, filepath.Join(dir, "a.txt.enc"))
	assert.NoFileExists(t, filepath.Join(dir, "sub", "b.txt.enc"))
}

func TestRunInspect(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	h := newHarness("")

	eng, err := engine.New(*h.env.Params)
	require.NoError(t, err)

	blob, err := eng.Encrypt([]byte("0123456789"), []byte("pw"))
	require.NoError(t, err)

	good := filepath.Join(dir, "good.txt.enc")
	require.NoError(t, os.WriteFile(good, blob, 0o600))

	bad := filepath.Join(dir, "bad.enc")
	require.NoError(t, os.WriteFile(bad, []byte("short"), 0o600))

	err = logic.RunInspect(newConfig(t, true, good, bad), h.env)
	require.Error(t, err)

	var reports []logic.Report
	require.NoError(t, yaml.Unmarshal(h.stdout.Bytes(), &reports))
	require.Len(t, reports, 2)

	assert.Equal(t, good, reports[0].File)
	assert.Len(t, reports[0].Salt, 2*engine.SaltSize)
	assert.Len(t, reports[0].Nonce, 2*engine.NonceSize)
	assert.Equal(t, "10 B", reports[0].Plaintext)
	assert.Equal(t, "good.txt", reports[0].Original)
	assert.Empty(t, reports[0].Error)

	assert.Equal(t, bad, reports[1].File)
	assert.Contains(t, reports[1].Error, "malformed")
	assert.Empty(t, h.pw.confirm, "inspect must not ask for a password")
}

func TestRunStrength(t *testing.T) {
	t.Parallel()

	h := newHarness("abc")

	require.NoError(t, logic.RunStrength(newConfig(t, false, "."), h.env))

	out := h.stdout.String()
	assert.Contains(t, out, "Weak")
	assert.Contains(t, out, "add a number")
	assert.Contains(t, out, "encryption will refuse it")

	h = newHarness("Tr0ub4dor&3-horse")

	require.NoError(t, logic.RunStrength(newConfig(t, false, "."), h.env))
	assert.Contains(t, h.stdout.String(), "Strong")
}
