package commands

import (
	"fmt"
	"log/slog"
	"runtime"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/idelchi/veil/internal/config"
	"github.com/idelchi/veil/internal/logging"
	"github.com/idelchi/veil/internal/logic"
)

// EnvPrefix is prepended to every configuration key when read from the environment.
const EnvPrefix = "VEIL"

// app is the state shared by the commands of one invocation.
type app struct {
	cfg   *config.Config
	viper *viper.Viper
	log   *slog.Logger
}

// NewRootCommand creates the root command with common configuration.
// It sets up environment variable binding and flag handling.
func NewRootCommand(cfg *config.Config, version string) *cobra.Command {
	a := &app{
		cfg:   cfg,
		viper: viper.New(),
		log:   logging.Discard(),
	}

	root := &cobra.Command{
		Use:   "veil [flags] command [flags] [paths...]",
		Short: "Password-based file encryption",
		Long: `Encrypts and decrypts files with a password, entirely locally.

Keys are derived with PBKDF2-SHA256 (100000 iterations) and files are sealed with
AES-256-GCM. Encrypted files carry the ".enc" suffix and hold salt, nonce and ciphertext.

The password is read from --password-file, the VEIL_PASSWORD environment variable,
or an interactive prompt. Every flag can also be set as VEIL_<FLAG> or in the --config file.`,
		Version:           version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.load(cmd)
		},
	}

	flags := root.PersistentFlags()

	flags.String("config", "", "Path to a YAML configuration file")
	flags.BoolP("show", "s", false, "Show the configuration and exit")
	flags.IntP("parallel", "j", runtime.NumCPU(), "Number of parallel workers, defaults to number of CPUs")
	flags.BoolP("quiet", "q", false, "Suppress non-error output")
	flags.BoolP("delete", "d", false, "Delete the original file after successful encryption/decryption")
	flags.BoolP("force", "f", false, "Overwrite existing output files")
	flags.Bool("stats", false, "Print statistics after processing")
	flags.Bool("dry", false, "Show what would be processed without writing anything")
	flags.Bool("preserve-timestamps", false, "Give outputs the modification time of their inputs")
	flags.Duration("timeout", 0, "Abandon a single file after this long, 0 disables")
	flags.String("max-size", "100MB", "Refuse input files larger than this")
	flags.Bool("strict", true, "Decrypt only files ending in .enc")
	flags.Int("min-length", 6, "Minimum password length accepted for encryption")
	flags.StringP("password-file", "p", "", "Read the password from this file")
	flags.StringSliceP("exclude", "e", nil, "Skip walked files matching these patterns")
	flags.String("exclude-from", "", "Read exclude patterns from a JSONC file")
	flags.String("log-level", "warn", "Diagnostic log level (debug, info, warn, error)")
	flags.String("log-format", "text", "Diagnostic log format (text, json)")

	root.AddCommand(
		newEncryptCommand(a),
		newDecryptCommand(a),
		newInspectCommand(a),
		newStrengthCommand(a),
	)

	return root
}

// load binds flags, environment and config file into the configuration.
func (a *app) load(cmd *cobra.Command) error {
	v := a.viper

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("binding flags: %w", err)
	}

	if file := v.GetString("config"); file != "" {
		v.SetConfigFile(file)

		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config file %q: %w", file, err)
		}
	}

	if err := v.Unmarshal(a.cfg); err != nil {
		return fmt.Errorf("parsing config: %w", err)
	}

	return nil
}

// preRun returns a PreRunE handler that resolves positional args into cfg.Files
// and validates the configuration.
func (a *app) preRun(decrypt bool) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a.cfg.Decrypt = decrypt

		if len(args) == 0 {
			a.cfg.Files = []string{"."}
		} else {
			a.cfg.Files = args
		}

		if err := a.cfg.Validate(); err != nil {
			return err
		}

		log, err := logging.New(cmd.ErrOrStderr(), a.cfg.LogLevel, a.cfg.LogFormat)
		if err != nil {
			return err
		}

		a.log = log

		return nil
	}
}

// run wraps a command body so that --show prints the configuration instead.
func (a *app) run(fn func(*cobra.Command, logic.Env) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		if a.cfg.Show {
			out, err := a.cfg.YAML()
			if err != nil {
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), out)

			return nil
		}

		return fn(cmd, logic.Env{
			Log:    a.log,
			Stdout: cmd.OutOrStdout(),
			Stderr: cmd.ErrOrStderr(),
		})
	}
}
