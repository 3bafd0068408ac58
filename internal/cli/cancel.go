package cli

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"
	"github.com/trebuchet-org/txledger/internal/cli/render"
	"github.com/trebuchet-org/txledger/internal/usecase"
)

// NewCancelCmd creates the cancel command
func NewCancelCmd() *cobra.Command {
	var old string

	cmd := &cobra.Command{
		Use:   "cancel [old-hash] <new-hash>",
		Short: "Replace a tracked transaction with its cancellation",
		Long: `Record that a transaction was replaced by a cancellation. The record moves
to the replacement hash and is flagged as cancelled; its intent is kept.

Without an old hash the pending transaction is picked interactively.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			if len(args) == 2 {
				old = args[0]
			}
			newHash, err := parseHash(args[len(args)-1])
			if err != nil {
				return err
			}

			var oldHash common.Hash
			if old != "" {
				if oldHash, err = parseHash(old); err != nil {
					return err
				}
			}

			record, err := app.CancelTransaction.Run(cmd.Context(), usecase.CancelTransactionParams{
				OldHash: oldHash,
				NewHash: newHash,
			})
			if err != nil {
				return err
			}

			return render.NewTransactionsRenderer(cmd.OutOrStdout(), outputFormat(app.Config.JSON, "")).RenderRecord("Cancelled as", record)
		},
	}

	cmd.Flags().StringVar(&old, "old", "", "Hash of the transaction being replaced")

	return cmd
}
