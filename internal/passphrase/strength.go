package passphrase

import (
	"unicode"
	"unicode/utf8"
)

// Level is a coarse password strength rating.
type Level int

const (
	Weak Level = iota
	Fair
	Good
	Strong
)

func (l Level) String() string {
	switch l {
	case Weak:
		return "Weak"
	case Fair:
		return "Fair"
	case Good:
		return "Good"
	case Strong:
		return "Strong"
	default:
		return "Unknown"
	}
}

// MaxScore is the number of rules Evaluate checks.
const MaxScore = 5

// Strength is the outcome of Evaluate.
type Strength struct {
	// Score counts satisfied rules, 0 to 5.
	Score int
	Level Level
	// Suggestions lists the recommendations the password does not meet.
	Suggestions []string
}

// Evaluate scores a password. One point each for at least 6 characters, at least 10
// characters, mixed case, a digit and a symbol.
func Evaluate(password []byte) Strength {
	var upper, lower, digit, symbol bool

	for rest := password; len(rest) > 0; {
		r, size := utf8.DecodeRune(rest)
		rest = rest[size:]

		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		case !unicode.IsLetter(r):
			symbol = true
		}
	}

	length := utf8.RuneCount(password)

	var (
		score       int
		suggestions []string
	)

	for _, rule := range []struct {
		ok         bool
		suggestion string
	}{
		{length >= 6, ""},
		{length >= 10, "use at least 10 characters"},
		{upper && lower, "mix uppercase and lowercase letters"},
		{digit, "add a number"},
		{symbol, "add a symbol"},
	} {
		if rule.ok {
			score++
		} else if rule.suggestion != "" {
			suggestions = append(suggestions, rule.suggestion)
		}
	}

	return Strength{
		Score:       score,
		Level:       levelFor(score),
		Suggestions: suggestions,
	}
}

func levelFor(score int) Level {
	switch {
	case score <= 1:
		return Weak
	case score == 2:
		return Fair
	case score == 3:
		return Good
	default:
		return Strong
	}
}
