package processor

import "errors"

// DecryptFailedMessage is the only detail users get when a container does not open.
// The container cannot tell a wrong password from a damaged file.
const DecryptFailedMessage = "decryption failed: wrong password or corrupted file"

var (
	// ErrDecryptFailed replaces authentication and format errors in user-facing results.
	ErrDecryptFailed = errors.New(DecryptFailedMessage)
	// ErrTooLarge is returned for inputs above the configured size limit.
	ErrTooLarge = errors.New("file too large")
	// ErrNotEncrypted is returned in strict mode for decrypt inputs without the encrypted suffix.
	ErrNotEncrypted = errors.New("not an encrypted file")
	// ErrOutputExists is returned when the output is present and overwriting was not requested.
	ErrOutputExists = errors.New("output already exists")
)
