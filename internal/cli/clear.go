package cli

import (
	"fmt"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/trebuchet-org/txledger/internal/cli/render"
)

// NewClearCmd creates the clear command
func NewClearCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Drop every transaction of the active chain",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			chainID := app.Config.ActiveChain()
			if chainID == 0 {
				return fmt.Errorf("an active chain is required (use --chain or --network)")
			}

			if !yes {
				if app.Config.NonInteractive {
					return fmt.Errorf("refusing to clear chain %d without --yes in non-interactive mode", chainID)
				}
				if !confirmPrompt(fmt.Sprintf("Clear every tracked transaction on chain %d", chainID)) {
					fmt.Fprintln(cmd.OutOrStdout(), "Clear cancelled.")
					return nil
				}
			}

			n, err := app.ClearTransactions.Run(cmd.Context(), chainID)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), render.FormatSuccess(fmt.Sprintf("Cleared %d transaction(s) on chain %d", n, chainID)))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")

	return cmd
}

// confirmPrompt asks the user a yes/no question and returns their choice.
func confirmPrompt(label string) bool {
	prompt := promptui.Prompt{
		Label:     label,
		IsConfirm: true,
	}

	_, err := prompt.Run()
	return err == nil
}
