// Package engine implements password-based file encryption.
//
// A key is derived from the password with PBKDF2-SHA256 over a fresh random
// salt, and the data is sealed with AES-256-GCM. The result is a
// self-describing container:
//
//	salt(16) || nonce(12) || ciphertext || tag(16)
//
// Nothing besides the password is needed to open a container. Every call is
// independent and holds no state, so an Engine is safe for concurrent use.
package engine
