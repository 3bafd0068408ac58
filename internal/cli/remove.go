package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/trebuchet-org/txledger/internal/cli/render"
	"github.com/trebuchet-org/txledger/internal/usecase"
)

// NewRemoveCmd creates the remove command
func NewRemoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "remove [hash...]",
		Aliases: []string{"rm"},
		Short:   "Stop tracking transactions",
		Long: `Remove transactions from the ledger of the active chain. Hashes that are
not tracked are ignored. Without arguments the transactions are picked
interactively.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			hashes, err := parseHashes(args)
			if err != nil {
				return err
			}

			result, err := app.RemoveTransaction.Run(cmd.Context(), usecase.RemoveTransactionParams{Hashes: hashes})
			if err != nil {
				return err
			}

			if app.Config.JSON {
				return render.WriteStructured(cmd.OutOrStdout(), render.FormatJSON, map[string]any{
					"chainId": result.ChainID,
					"removed": result.Removed,
				})
			}

			if len(result.Removed) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Nothing to remove")
				return nil
			}
			for _, h := range result.Removed {
				fmt.Fprintln(cmd.OutOrStdout(), render.FormatSuccess(fmt.Sprintf("Removed %s from chain %d", h.Hex(), result.ChainID)))
			}
			return nil
		},
	}

	return cmd
}
