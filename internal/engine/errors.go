package engine

import "errors"

var (
	// ErrMalformedContainer is returned when a blob is too short to hold the salt and nonce.
	ErrMalformedContainer = errors.New("malformed container")
	// ErrAuthentication is returned when the authentication tag does not verify.
	// A wrong password and corrupted data are deliberately indistinguishable.
	ErrAuthentication = errors.New("authentication failed")
	// ErrCrypto is returned when the random source or the cipher primitive fails.
	ErrCrypto = errors.New("crypto failure")
	// ErrInvalidParams is returned by New for parameters outside the supported format.
	ErrInvalidParams = errors.New("invalid engine parameters")
)
