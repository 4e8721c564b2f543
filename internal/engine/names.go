package engine

import "strings"

const (
	// Suffix marks encrypted files.
	Suffix = ".enc"
	// FallbackSuffix is appended on decryption when the name does not carry Suffix.
	FallbackSuffix = ".decrypted"
)

// EncryptedName returns the file name for the encrypted form of name.
func EncryptedName(name string) string {
	return name + Suffix
}

// OriginalName guesses the plaintext file name from an encrypted one.
// Containers carry no file name, so a name without Suffix gets FallbackSuffix instead.
func OriginalName(name string) string {
	if strings.HasSuffix(name, Suffix) {
		return strings.TrimSuffix(name, Suffix)
	}

	return name + FallbackSuffix
}
