package cli

import (
	"github.com/spf13/cobra"
	"github.com/trebuchet-org/txledger/internal/cli/render"
)

// NewNetworksCmd creates the networks command
func NewNetworksCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "networks",
		Short: "List networks from networks.toml",
		Long: `List the networks configured in networks.toml in the data directory,
with the number of pending transactions tracked on each.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.ListNetworks.Run(cmd.Context())
			if err != nil {
				return err
			}

			if app.Config.JSON {
				return render.WriteStructured(cmd.OutOrStdout(), render.FormatJSON, result.Networks)
			}
			return render.NewNetworksRenderer(cmd.OutOrStdout()).RenderNetworksList(result)
		},
	}
}
