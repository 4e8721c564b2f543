package commands

import (
	"github.com/spf13/cobra"

	"github.com/idelchi/veil/internal/logic"
)

func newDecryptCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "decrypt [flags] [paths...]",
		Aliases: []string{"dec"},
		Short:   "Decrypt files",
		Long: `Decrypt .enc files next to the original, stripping the suffix.

Directories are walked for files ending in .enc. With --strict=false, explicit
files without the suffix are accepted and written to <name>.decrypted.`,
		Args:    cobra.ArbitraryArgs,
		PreRunE: a.preRun(true),
		RunE: a.run(func(cmd *cobra.Command, env logic.Env) error {
			return logic.Run(cmd.Context(), a.cfg, env)
		}),
	}
}
