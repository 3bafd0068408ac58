package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/trebuchet-org/txledger/internal/cli/render"
	"github.com/trebuchet-org/txledger/internal/usecase"
)

// NewFinalizeCmd creates the finalize command
func NewFinalizeCmd() *cobra.Command {
	var (
		status string
		block  uint64
	)

	cmd := &cobra.Command{
		Use:   "finalize <hash>",
		Short: "Mark a pending transaction as mined",
		Long: `Set the terminal status of a pending transaction. Records that are already
final keep their status, and unknown hashes are ignored.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			hash, err := parseHash(args[0])
			if err != nil {
				return err
			}
			st, err := parseStatus(status)
			if err != nil {
				return err
			}

			record, err := app.FinalizeTransaction.Run(cmd.Context(), usecase.FinalizeTransactionParams{
				Hash:        hash,
				Status:      st,
				BlockNumber: block,
			})
			if err != nil {
				return err
			}
			if record == nil {
				fmt.Fprintln(cmd.OutOrStdout(), render.FormatWarning(fmt.Sprintf("No transaction %s is tracked on chain %d", hash.Hex(), app.Config.ActiveChain())))
				return nil
			}

			return render.NewTransactionsRenderer(cmd.OutOrStdout(), outputFormat(app.Config.JSON, "")).RenderRecord("Finalized", record)
		},
	}

	cmd.Flags().StringVar(&status, "status", "success", "Final status: success or failed")
	cmd.Flags().Uint64Var(&block, "block", 0, "Block the transaction was mined in")

	return cmd
}
