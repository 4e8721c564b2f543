// Package ui provides colored text formatting and a progress spinner for terminal output.
//
// Formatters fall back to plain text when NO_COLOR is set or the output is not a terminal.
package ui
