package commands

import (
	"github.com/spf13/cobra"

	"github.com/idelchi/veil/internal/logic"
)

func newEncryptCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "encrypt [flags] [paths...]",
		Aliases: []string{"enc"},
		Short:   "Encrypt files",
		Long: `Encrypt files into <name>.enc next to the original.

Directories are walked. Files already ending in .enc are skipped while walking.
Without paths the current directory is used.`,
		Args:    cobra.ArbitraryArgs,
		PreRunE: a.preRun(false),
		RunE: a.run(func(cmd *cobra.Command, env logic.Env) error {
			return logic.Run(cmd.Context(), a.cfg, env)
		}),
	}
}
