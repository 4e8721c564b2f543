// Package passphrase obtains passwords from a file, the environment or the terminal,
// and scores their strength.
package passphrase
