package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/trebuchet-org/txledger/internal/usecase"
)

// NewApprovalCmd creates the approval command
func NewApprovalCmd() *cobra.Command {
	return newPendingCheckCmd(
		"approval",
		"Report whether an approval is pending for a token and spender",
		func(uc *usecase.CheckApproval) func(context.Context, usecase.ApprovalQuery) (bool, error) {
			return uc.HasPendingApproval
		},
	)
}

// NewRevocationCmd creates the revocation command
func NewRevocationCmd() *cobra.Command {
	return newPendingCheckCmd(
		"revocation",
		"Report whether a revocation is pending for a token and spender",
		func(uc *usecase.CheckApproval) func(context.Context, usecase.ApprovalQuery) (bool, error) {
			return uc.HasPendingRevocation
		},
	)
}

func newPendingCheckCmd(
	name, short string,
	pick func(*usecase.CheckApproval) func(context.Context, usecase.ApprovalQuery) (bool, error),
) *cobra.Command {
	return &cobra.Command{
		Use:   name + " <token> <spender>",
		Short: short,
		Long: short + ` on the active chain.
Prints true or false. Without an active chain the answer is false.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			token, err := parseAddress("token", args[0])
			if err != nil {
				return err
			}
			spender, err := parseAddress("spender", args[1])
			if err != nil {
				return err
			}

			pending, err := pick(app.CheckApproval)(cmd.Context(), usecase.ApprovalQuery{Token: token, Spender: spender})
			if err != nil {
				return err
			}

			if app.Config.JSON {
				fmt.Fprintf(cmd.OutOrStdout(), "{\"pending\": %t}\n", pending)
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), pending)
			return nil
		},
	}
}
