package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/trebuchet-org/txledger/internal/cli/render"
	"github.com/trebuchet-org/txledger/internal/domain/models"
	"github.com/trebuchet-org/txledger/internal/usecase"
)

// NewListCmd creates the list command
func NewListCmd() *cobra.Command {
	var (
		allChains bool
		status    string
		kind      string
		from      string
		output    string
	)

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List tracked transactions",
		Long: `List transactions in the ledger. Without --all only the active chain is
shown; with no active chain every chain is listed.`,
		Example: `  # Pending transactions on Base
  txledger list -n base --status pending

  # Every approval on every chain, as YAML
  txledger list --all --type approve -o yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			params := usecase.ListTransactionsParams{AllChains: allChains}

			if status != "" {
				params.Status = models.TransactionStatus(strings.ToUpper(status))
				if !params.Status.IsValid() {
					return fmt.Errorf("invalid status: %s (valid: pending, success, failed)", status)
				}
			}
			if kind != "" {
				k, ok := models.ParseTransactionKind(kind)
				if !ok {
					return fmt.Errorf("invalid type: %s (valid: approve, claim, send, wrap)", kind)
				}
				params.Kind = k
			}
			if from != "" {
				addr, err := parseAddress("from", from)
				if err != nil {
					return err
				}
				params.From = &addr
			}

			switch output {
			case "", render.FormatTable, render.FormatJSON, render.FormatYAML:
			default:
				return fmt.Errorf("invalid output format: %s (valid: table, json, yaml)", output)
			}

			result, err := app.ListTransactions.Run(cmd.Context(), params)
			if err != nil {
				return err
			}

			return render.NewTransactionsRenderer(cmd.OutOrStdout(), outputFormat(app.Config.JSON, output)).RenderList(result)
		},
	}

	cmd.Flags().BoolVarP(&allChains, "all", "a", false, "List every chain, not just the active one")
	cmd.Flags().StringVar(&status, "status", "", "Filter by status (pending, success, failed)")
	cmd.Flags().StringVar(&kind, "type", "", "Filter by type (approve, claim, send, wrap)")
	cmd.Flags().StringVar(&from, "from", "", "Filter by sender address")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output format: table, json or yaml")

	return cmd
}
