package commands

import (
	"github.com/spf13/cobra"

	"github.com/idelchi/veil/internal/logic"
)

func newInspectCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect [flags] [paths...]",
		Short: "Describe the structure of encrypted files",
		Long: `Print salt, nonce and payload size of encrypted files as YAML.

No password is needed and nothing is decrypted, so a container that looks valid
may still fail to open.`,
		Args:    cobra.ArbitraryArgs,
		PreRunE: a.preRun(true),
		RunE: a.run(func(_ *cobra.Command, env logic.Env) error {
			return logic.RunInspect(a.cfg, env)
		}),
	}
}
