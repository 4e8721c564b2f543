// Package commands provides the command-line interface for veil.
//
// It implements commands for:
//   - encryption
//   - decryption
//   - container inspection
//   - password strength reports
//
// The package handles command-line parsing, configuration validation,
// and environment variable binding through cobra and viper.
package commands
