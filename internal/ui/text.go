package ui

import (
	"fmt"
	"os"

	"github.com/fatih/color"
)

// Formatter applies semantic formatting to text.
type Formatter struct {
	color  *color.Color
	prefix string
	suffix string
}

// Sprint formats the arguments and returns the resulting string.
func (f Formatter) Sprint(a ...any) string {
	return f.wrap(fmt.Sprint(a...))
}

// Sprintf formats according to a format specifier and returns the resulting string.
func (f Formatter) Sprintf(format string, a ...any) string {
	return f.wrap(fmt.Sprintf(format, a...))
}

func (f Formatter) wrap(text string) string {
	if noColor() {
		return f.prefix + text + f.suffix
	}

	return f.color.Sprint(text)
}

func noColor() bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return true
	}

	return color.NoColor
}

// Semantic formatters.
var (
	// Success marks completed work.
	Success = Formatter{color.New(color.FgGreen), "", ""}

	// Error marks failures.
	Error = Formatter{color.New(color.FgRed), "", ""}

	// Warning marks advisories, such as a weak password.
	Warning = Formatter{color.New(color.FgYellow), "", ""}

	// Info marks hints.
	Info = Formatter{color.New(color.FgCyan), "", ""}

	// Path formats file paths, quoted when color is unavailable.
	Path = Formatter{color.New(color.FgYellow), `"`, `"`}

	// Muted formats secondary detail, parenthesized when color is unavailable.
	Muted = Formatter{color.New(color.FgHiBlack), "(", ")"}
)
