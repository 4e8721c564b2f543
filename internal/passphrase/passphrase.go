package passphrase

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"unicode/utf8"

	"golang.org/x/term"
)

// EnvVar is consulted when no password file is configured.
const EnvVar = "VEIL_PASSWORD"

var (
	// ErrEmpty is returned when the obtained password is empty.
	ErrEmpty = errors.New("password cannot be empty")
	// ErrMismatch is returned when the confirmation differs from the first entry.
	ErrMismatch = errors.New("passwords do not match")
	// ErrTooShort is returned by CheckLength.
	ErrTooShort = errors.New("password too short")
	// ErrNoTerminal is returned when a prompt is needed but no terminal is available.
	ErrNoTerminal = errors.New("no terminal available for password prompt")
)

// Source resolves a password, in order of precedence, from a file, EnvVar or an interactive prompt.
type Source struct {
	// File is an optional path to a file holding the password.
	File string

	// readPassword prompts for a hidden entry.
	readPassword func(prompt string) ([]byte, error)
}

// NewSource returns a Source reading from file when it is non-empty.
func NewSource(file string) *Source {
	return &Source{
		File:         file,
		readPassword: readPassword,
	}
}

// Obtain returns the password. With confirm set, an interactive prompt asks twice.
// The caller owns the returned slice and should Zero it when done.
func (s *Source) Obtain(confirm bool) ([]byte, error) {
	var (
		password []byte
		err      error
	)

	switch {
	case s.File != "":
		password, err = fromFile(s.File)
	case os.Getenv(EnvVar) != "":
		password = []byte(os.Getenv(EnvVar))
	case confirm:
		password, err = s.promptWithConfirm("Enter password: ", "Confirm password: ")
	default:
		password, err = s.readPassword("Enter password: ")
	}

	if err != nil {
		return nil, err
	}

	if len(password) == 0 {
		return nil, ErrEmpty
	}

	return password, nil
}

func (s *Source) promptWithConfirm(prompt, confirmPrompt string) ([]byte, error) {
	password, err := s.readPassword(prompt)
	if err != nil {
		return nil, err
	}

	confirmation, err := s.readPassword(confirmPrompt)
	if err != nil {
		Zero(password)

		return nil, err
	}

	defer Zero(confirmation)

	if !bytes.Equal(password, confirmation) {
		Zero(password)

		return nil, ErrMismatch
	}

	return password, nil
}

// fromFile reads a password file, dropping one trailing line ending.
func fromFile(path string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("reading password file: %w", err)
	}

	trimmed := bytes.TrimSuffix(data, []byte("\n"))
	trimmed = bytes.TrimSuffix(trimmed, []byte("\r"))

	password := bytes.Clone(trimmed)
	Zero(data)

	return password, nil
}

// CheckLength fails with ErrTooShort when password has fewer than minimum characters.
func CheckLength(password []byte, minimum int) error {
	if n := utf8.RuneCount(password); n < minimum {
		return fmt.Errorf("%w: %d characters, need at least %d", ErrTooShort, n, minimum)
	}

	return nil
}

// Zero overwrites a secret in place.
func Zero(b []byte) {
	for i := range b {
		b[i] = 0
	}

	runtime.KeepAlive(b)
}

// readPassword prompts on stderr and reads a hidden entry from stdin, or from the
// controlling terminal when stdin is piped.
func readPassword(prompt string) ([]byte, error) {
	fd := int(os.Stdin.Fd()) //nolint:gosec

	if !term.IsTerminal(fd) {
		ttyPath := "/dev/tty"
		if runtime.GOOS == "windows" {
			ttyPath = "CON"
		}

		tty, err := os.Open(ttyPath)
		if err != nil {
			return nil, fmt.Errorf("%w: stdin is piped and %s is unavailable, set %s or use --password-file",
				ErrNoTerminal, ttyPath, EnvVar)
		}
		defer tty.Close()

		fd = int(tty.Fd()) //nolint:gosec
	}

	fmt.Fprint(os.Stderr, prompt)

	password, err := term.ReadPassword(fd)

	fmt.Fprintln(os.Stderr)

	if err != nil {
		return nil, fmt.Errorf("reading password: %w", err)
	}

	return password, nil
}
