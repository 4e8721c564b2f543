package commands

import (
	"github.com/spf13/cobra"

	"github.com/idelchi/veil/internal/logic"
)

func newStrengthCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "strength",
		Short:   "Rate a password",
		Args:    cobra.NoArgs,
		PreRunE: a.preRun(false),
		RunE: a.run(func(_ *cobra.Command, env logic.Env) error {
			return logic.RunStrength(a.cfg, env)
		}),
	}
}
