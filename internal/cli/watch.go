package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/trebuchet-org/txledger/internal/cli/render"
	"github.com/trebuchet-org/txledger/internal/usecase"
)

// NewWatchCmd creates the watch command
func NewWatchCmd() *cobra.Command {
	var (
		once        bool
		interval    time.Duration
		metricsAddr string
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Poll receipts of pending transactions and finalize them",
		Long: `Poll the RPC endpoint of the active network for receipts of pending
transactions and record their outcome. Runs until interrupted unless
--once is given.`,
		Example: `  # Single pass over pending transactions on mainnet
  txledger watch -n mainnet --once

  # Keep watching and expose Prometheus metrics
  txledger watch -n base --metrics-addr :9464`,
		Args:        cobra.NoArgs,
		Annotations: map[string]string{noTimeoutAnnotation: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if metricsAddr == "" {
				metricsAddr = app.Config.MetricsAddr
			}
			if metricsAddr != "" {
				serveCtx, cancelServe := context.WithCancel(ctx)
				defer cancelServe()
				go func() {
					if err := app.Metrics.Serve(serveCtx, metricsAddr, app.Log); err != nil {
						app.Log.Error("metrics server stopped", "error", err)
					}
				}()
			}

			result, err := app.WatchTransactions.Run(ctx, usecase.WatchTransactionsParams{
				Once:     once,
				Interval: interval,
			})
			if err != nil {
				return err
			}

			return renderWatchResult(cmd, app.Config.JSON, result)
		},
	}

	cmd.Flags().BoolVar(&once, "once", false, "Run a single pass and exit")
	cmd.Flags().DurationVar(&interval, "interval", 0, "Polling interval (default from config, 12s)")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address")

	return cmd
}

func renderWatchResult(cmd *cobra.Command, jsonOutput bool, result *usecase.WatchResult) error {
	out := cmd.OutOrStdout()

	if jsonOutput {
		return render.WriteStructured(out, render.FormatJSON, map[string]any{
			"chainId":      result.ChainID,
			"passes":       result.Passes,
			"checked":      result.Checked,
			"stillPending": result.StillPending,
			"errors":       result.Errors,
			"finalized":    result.Finalized,
		})
	}

	for _, r := range result.Finalized {
		fmt.Fprintf(out, "%s  %s  %s\n", render.ShortHash(r.Hash), render.StatusLabel(&r), render.Describe(r.Info))
	}
	summary := fmt.Sprintf("Chain %d: %d finalized, %d still pending", result.ChainID, len(result.Finalized), result.StillPending)
	if result.Errors > 0 {
		fmt.Fprintln(out, render.FormatWarning(fmt.Sprintf("%s, %d receipt lookups failed", summary, result.Errors)))
		return nil
	}
	fmt.Fprintln(out, render.FormatSuccess(summary))
	return nil
}
