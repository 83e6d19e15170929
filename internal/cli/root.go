// Package cli implements sessionctl, the operator tool for minting and
// inspecting session tokens.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/accumanage/portal/internal/config"
)

// ConfigLoader supplies the auth configuration to subcommands.
type ConfigLoader func() (*config.Config, error)

// NewRootCommand builds the sessionctl command tree.
func NewRootCommand(load ConfigLoader) *cobra.Command {
	root := &cobra.Command{
		Use:           "sessionctl",
		Short:         "Mint and inspect portal session tokens",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newMintCommand(load))
	root.AddCommand(newInspectCommand(load))
	return root
}
