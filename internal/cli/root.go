package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/trebuchet-org/txledger/internal/app"
	"github.com/trebuchet-org/txledger/internal/config"
)

// contextKey is the type for context keys
type contextKey string

const (
	// appKey is the context key for the app instance
	appKey contextKey = "app"

	// noTimeoutAnnotation marks long-running commands that ignore --timeout
	noTimeoutAnnotation = "txledger/no-timeout"
)

// session holds what PersistentPreRunE sets up so it can be released after
// the command, whether it succeeded or not
type session struct {
	cleanup func()
	cancel  context.CancelFunc
}

func (s *session) close() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	if s.cleanup != nil {
		s.cleanup()
		s.cleanup = nil
	}
}

// Execute runs the root command and releases the ledger backend afterwards
func Execute(ctx context.Context) error {
	s := &session{}
	defer s.close()
	return newRootCmd(s).ExecuteContext(ctx)
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	return newRootCmd(&session{})
}

func newRootCmd(s *session) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "txledger",
		Short: "Track submitted EVM transactions until they are mined",
		Long: `txledger keeps a per-chain ledger of transactions a wallet has submitted
and answers whether an approval or revocation for a token and spender is
still in flight. A watcher polls receipts over RPC and finalizes records
once they are mined.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Skip for help/version commands
			if cmd.Name() == "version" || cmd.Name() == "help" || cmd.Name() == "completion" {
				return nil
			}

			v := config.SetupViper(cmd)

			appInstance, cleanup, err := app.InitApp(v)
			if err != nil {
				return fmt.Errorf("failed to initialize app: %w", err)
			}
			s.cleanup = cleanup

			ctx := context.WithValue(cmd.Context(), appKey, appInstance)

			if _, skip := cmd.Annotations[noTimeoutAnnotation]; !skip && appInstance.Config.Timeout > 0 {
				ctx, s.cancel = context.WithTimeout(ctx, appInstance.Config.Timeout)
			}

			cmd.SetContext(ctx)
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			s.close()
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringP("chain", "c", "", "Active chain ID (decimal or 0x-prefixed hex)")
	rootCmd.PersistentFlags().StringP("network", "n", "", "Network from networks.toml (sets the chain and RPC URL)")
	rootCmd.PersistentFlags().String("data-dir", "", "Ledger directory (default ~/.txledger)")
	rootCmd.PersistentFlags().String("backend", "", "Ledger storage: memory, file or sqlite (default file)")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug output")
	rootCmd.PersistentFlags().Bool("non-interactive", false, "Disable interactive prompts")
	rootCmd.PersistentFlags().Bool("json", false, "Output in JSON format")
	rootCmd.PersistentFlags().Duration("timeout", 5*time.Minute, "Deadline for each command (watch ignores it)")

	rootCmd.AddGroup(&cobra.Group{
		ID:    "ledger",
		Title: "Ledger Commands",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "query",
		Title: "Query Commands",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "management",
		Title: "Management Commands",
	})

	for _, cmd := range []*cobra.Command{
		NewAddCmd(),
		NewFinalizeCmd(),
		NewCancelCmd(),
		NewRemoveCmd(),
		NewWatchCmd(),
	} {
		cmd.GroupID = "ledger"
		rootCmd.AddCommand(cmd)
	}

	for _, cmd := range []*cobra.Command{
		NewListCmd(),
		NewApprovalCmd(),
		NewRevocationCmd(),
	} {
		cmd.GroupID = "query"
		rootCmd.AddCommand(cmd)
	}

	for _, cmd := range []*cobra.Command{
		NewNetworksCmd(),
		NewClearCmd(),
	} {
		cmd.GroupID = "management"
		rootCmd.AddCommand(cmd)
	}

	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

// getApp retrieves the app instance from the command context
func getApp(cmd *cobra.Command) (*app.App, error) {
	appInstance := cmd.Context().Value(appKey)
	if appInstance == nil {
		return nil, fmt.Errorf("app not initialized")
	}

	app, ok := appInstance.(*app.App)
	if !ok {
		return nil, fmt.Errorf("invalid app instance")
	}

	return app, nil
}
