// Package logic implements the command logic behind the CLI: encryption, decryption,
// container inspection and password strength reports.
package logic

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/idelchi/veil/internal/config"
	"github.com/idelchi/veil/internal/engine"
	"github.com/idelchi/veil/internal/inputs"
	"github.com/idelchi/veil/internal/logging"
	"github.com/idelchi/veil/internal/passphrase"
	"github.com/idelchi/veil/internal/processor"
	"github.com/idelchi/veil/internal/ui"
)

// Passwords supplies the password for a run. *passphrase.Source implements it.
type Passwords interface {
	Obtain(confirm bool) ([]byte, error)
}

// Env carries the collaborators of a command. Zero fields fall back to the process defaults.
type Env struct {
	Passwords Passwords
	Log       *slog.Logger
	Stdout    io.Writer
	Stderr    io.Writer

	// Params overrides the engine parameters. The CLI always uses engine.DefaultParams.
	Params *engine.Params
}

func (e Env) withDefaults(cfg *config.Config) Env {
	if e.Passwords == nil {
		e.Passwords = passphrase.NewSource(cfg.PasswordFile)
	}

	if e.Log == nil {
		e.Log = logging.Discard()
	}

	if e.Stdout == nil {
		e.Stdout = os.Stdout
	}

	if e.Stderr == nil {
		e.Stderr = os.Stderr
	}

	if e.Params == nil {
		params := engine.DefaultParams()
		e.Params = &params
	}

	return e
}

// Run is the main logic of the application: it encrypts or decrypts cfg.Files.
func Run(ctx context.Context, cfg *config.Config, env Env) error {
	env = env.withDefaults(cfg)

	stats, done, err := preamble(cfg, env)
	if done || err != nil {
		return err
	}

	password, err := obtainPassword(cfg, env)
	if err != nil {
		return err
	}
	defer passphrase.Zero(password)

	eng, err := engine.New(*env.Params, engine.WithLogger(env.Log))
	if err != nil {
		return fmt.Errorf("creating engine: %w", err)
	}

	proc := processor.New(cfg, eng, password,
		processor.WithLogger(env.Log),
		processor.WithOutput(env.Stdout, env.Stderr),
	)

	// Progress lines own the terminal unless quiet, so the spinner only runs then.
	spinner := ui.StartSpinner(asFile(env.Stderr), progressMessage(cfg), cfg.Quiet)

	summary, err := proc.ProcessFiles(ctx)

	spinner.Stop()

	stats.Processed = summary.Processed
	stats.Errored = summary.Errored
	stats.TotalSize = summary.TotalSize
	stats.Duration = time.Since(stats.start)

	if cfg.Stats {
		stats.Print(env.Stderr)
	}

	env.Log.Info("run finished",
		slog.Bool("decrypt", cfg.Decrypt),
		slog.Int("processed", stats.Processed),
		slog.Int("errors", stats.Errored),
		logging.Elapsed(stats.start),
	)

	if err != nil {
		return fmt.Errorf("running logic: %w", err)
	}

	return nil
}

// preamble resolves files and handles dry run. Returns done=true if dry run was executed.
func preamble(cfg *config.Config, env Env) (Stats, bool, error) {
	stats := Stats{start: time.Now()}

	scanned, err := resolveFiles(cfg)
	if err != nil {
		return stats, false, fmt.Errorf("resolving files: %w", err)
	}

	stats.Scanned = scanned
	stats.Excluded = scanned - len(cfg.Files)

	if cfg.Dry {
		dryRun(cfg, env, stats)

		return stats, true, nil
	}

	return stats, false, nil
}

// resolveFiles expands cfg.Files in place and returns the number of files scanned.
func resolveFiles(cfg *config.Config) (int, error) {
	excludes := append([]string{}, cfg.Exclude...)

	if cfg.ExcludeFrom != "" {
		patterns, err := inputs.LoadPatterns(cfg.ExcludeFrom)
		if err != nil {
			return 0, fmt.Errorf("loading exclude patterns: %w", err)
		}

		excludes = append(excludes, patterns...)
	}

	files, scanned, err := inputs.Resolve(cfg.Files, excludes, cfg.Decrypt)
	if err != nil {
		return scanned, err
	}

	cfg.Files = files

	return scanned, nil
}

// obtainPassword asks for the password and applies the encryption policy:
// a minimum length and a warning for weak passwords.
func obtainPassword(cfg *config.Config, env Env) ([]byte, error) {
	password, err := env.Passwords.Obtain(!cfg.Decrypt)
	if err != nil {
		return nil, fmt.Errorf("obtaining password: %w", err)
	}

	if cfg.Decrypt {
		return password, nil
	}

	if err := passphrase.CheckLength(password, cfg.MinLength); err != nil {
		passphrase.Zero(password)

		return nil, err
	}

	if strength := passphrase.Evaluate(password); strength.Level == passphrase.Weak && !cfg.Quiet {
		fmt.Fprintf(env.Stderr, "%s password strength is %s, run %s for suggestions\n",
			ui.Warning.Sprint("Warning:"), strength.Level, ui.Info.Sprint("veil strength"))
	}

	return password, nil
}

// dryRun previews what would be processed without touching any file.
func dryRun(cfg *config.Config, env Env, stats Stats) {
	for _, file := range cfg.Files {
		if !cfg.Quiet {
			fmt.Fprintf(env.Stdout, "Processed %s -> %s %s\n",
				ui.Path.Sprint(file), ui.Path.Sprint(processor.OutputPath(file, cfg.Decrypt)), ui.Muted.Sprint("dry run"))
		}

		stats.Processed++

		if cfg.Stats {
			if info, err := os.Stat(file); err == nil {
				stats.TotalSize += info.Size()
			}
		}
	}

	stats.Duration = time.Since(stats.start)

	if cfg.Stats {
		stats.Print(env.Stderr)
	}
}

func progressMessage(cfg *config.Config) string {
	verb := "Encrypting"
	if cfg.Decrypt {
		verb = "Decrypting"
	}

	if len(cfg.Files) == 1 {
		return verb + " 1 file..."
	}

	return fmt.Sprintf("%s %d files...", verb, len(cfg.Files))
}

func asFile(w io.Writer) *os.File {
	f, _ := w.(*os.File)

	return f
}
