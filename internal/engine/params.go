package engine

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

const (
	// DefaultIterations is the PBKDF2 work factor of the container format.
	DefaultIterations = 100_000
	// KeySize is the AES-256 key length in bytes.
	KeySize = 32
	// SaltSize is the length of the PBKDF2 salt at the start of a container.
	SaltSize = 16
	// NonceSize is the length of the AES-GCM nonce following the salt.
	NonceSize = 12
	// TagSize is the length of the GCM authentication tag appended to the ciphertext.
	TagSize = 16
)

// Params fixes the shape of the containers an Engine produces and accepts.
// A container can only be opened with the Params that sealed it.
type Params struct {
	// Iterations is the PBKDF2 iteration count.
	Iterations int `validate:"min=1"`
	// KeyLength is the derived key length in bytes. Only AES-256 is supported.
	KeyLength int `validate:"eq=32"`
	// SaltSize is the number of random salt bytes per container.
	SaltSize int `validate:"min=16,max=64"`
	// NonceSize is the AES-GCM nonce length. Only the standard 12 bytes are supported.
	NonceSize int `validate:"eq=12"`
}

// DefaultParams returns the parameters of the stable container format.
func DefaultParams() Params {
	return Params{
		Iterations: DefaultIterations,
		KeyLength:  KeySize,
		SaltSize:   SaltSize,
		NonceSize:  NonceSize,
	}
}

// Validate checks the parameters against the struct tags.
func (p Params) Validate() error {
	if err := validator.New().Struct(p); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidParams, err)
	}

	return nil
}

// HeaderSize is the number of bytes preceding the ciphertext in a container.
func (p Params) HeaderSize() int {
	return p.SaltSize + p.NonceSize
}
