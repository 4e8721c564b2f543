package logic

import (
	"fmt"

	"github.com/idelchi/veil/internal/config"
	"github.com/idelchi/veil/internal/passphrase"
	"github.com/idelchi/veil/internal/ui"
)

// RunStrength rates the configured password and lists what would improve it.
func RunStrength(cfg *config.Config, env Env) error {
	env = env.withDefaults(cfg)

	password, err := env.Passwords.Obtain(false)
	if err != nil {
		return fmt.Errorf("obtaining password: %w", err)
	}
	defer passphrase.Zero(password)

	strength := passphrase.Evaluate(password)

	fmt.Fprintf(env.Stdout, "Strength: %s %s\n", levelFormatter(strength.Level).Sprint(strength.Level),
		ui.Muted.Sprintf("%d/%d", strength.Score, passphrase.MaxScore))

	for _, suggestion := range strength.Suggestions {
		fmt.Fprintf(env.Stdout, "  %s %s\n", ui.Info.Sprint("→"), suggestion)
	}

	if err := passphrase.CheckLength(password, cfg.MinLength); err != nil {
		fmt.Fprintf(env.Stdout, "%s %v, encryption will refuse it\n", ui.Warning.Sprint("Warning:"), err)
	}

	return nil
}

func levelFormatter(level passphrase.Level) ui.Formatter {
	switch level {
	case passphrase.Weak:
		return ui.Error
	case passphrase.Fair:
		return ui.Warning
	default:
		return ui.Success
	}
}
