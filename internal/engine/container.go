package engine

import "fmt"

// Container is a structural view of an encrypted blob. The fields alias the blob.
type Container struct {
	Salt       []byte
	Nonce      []byte
	Ciphertext []byte
}

// Parse splits blob into its fields without any cryptography.
func (e *Engine) Parse(blob []byte) (Container, error) {
	header := e.params.HeaderSize()

	if len(blob) < header {
		return Container{}, fmt.Errorf("%w: %d bytes, need at least %d", ErrMalformedContainer, len(blob), header)
	}

	return Container{
		Salt:       blob[:e.params.SaltSize],
		Nonce:      blob[e.params.SaltSize:header],
		Ciphertext: blob[header:],
	}, nil
}

// PlaintextSize is the length the plaintext will have once the container is opened.
// It is negative when the ciphertext is too short to hold a tag.
func (c Container) PlaintextSize() int {
	return len(c.Ciphertext) - TagSize
}
