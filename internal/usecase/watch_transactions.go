package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/trebuchet-org/txledger/internal/domain"
	"github.com/trebuchet-org/txledger/internal/domain/config"
	"github.com/trebuchet-org/txledger/internal/domain/models"
)

// DefaultPollInterval is used when neither params nor config set an interval
const DefaultPollInterval = 12 * time.Second

// WatchTransactionsParams controls the confirmation watcher
type WatchTransactionsParams struct {
	// Once runs a single pass instead of polling until the context ends
	Once     bool
	Interval time.Duration
}

// WatchResult accumulates what the watcher did
type WatchResult struct {
	ChainID      uint64
	Passes       int
	Checked      int
	StillPending int
	Errors       int
	Finalized    []models.TransactionRecord
}

// WatchTransactions polls receipts of pending transactions and finalizes them
type WatchTransactions struct {
	config  *config.RuntimeConfig
	store   TransactionStore
	fetcher ReceiptFetcher
	sink    ProgressSink
	metrics LedgerMetrics
	clock   Clock
}

// NewWatchTransactions creates a new WatchTransactions use case
func NewWatchTransactions(
	cfg *config.RuntimeConfig,
	store TransactionStore,
	fetcher ReceiptFetcher,
	sink ProgressSink,
	metrics LedgerMetrics,
	clock Clock,
) *WatchTransactions {
	return &WatchTransactions{
		config:  cfg,
		store:   store,
		fetcher: fetcher,
		sink:    sink,
		metrics: metrics,
		clock:   clock,
	}
}

// Run watches the active chain. Cancellation of ctx ends the watch without error.
func (uc *WatchTransactions) Run(ctx context.Context, params WatchTransactionsParams) (*WatchResult, error) {
	chainID := uc.config.ActiveChain()
	if chainID == 0 {
		return nil, domain.ErrNoActiveChain
	}
	if uc.config.Network == nil || uc.config.Network.RPCURL == "" {
		return nil, fmt.Errorf("watching requires a network with an RPC URL (use --network)")
	}

	if err := uc.fetcher.Connect(ctx, uc.config.Network.RPCURL, chainID); err != nil {
		return nil, err
	}
	defer uc.fetcher.Close()

	interval := params.Interval
	if interval <= 0 {
		interval = uc.config.PollInterval
	}
	if interval <= 0 {
		interval = DefaultPollInterval
	}

	result := &WatchResult{ChainID: chainID}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if err := uc.pass(ctx, chainID, result); err != nil {
			return result, err
		}
		if params.Once {
			break
		}

		select {
		case <-ctx.Done():
			return result, nil
		case <-ticker.C:
		}
	}

	uc.sink.OnProgress(ctx, ProgressEvent{
		Stage:   "complete",
		Current: result.Checked,
		Total:   result.Checked,
		Message: fmt.Sprintf("%d finalized, %d still pending", len(result.Finalized), result.StillPending),
	})
	return result, nil
}

// pass checks every pending record of the chain once
func (uc *WatchTransactions) pass(ctx context.Context, chainID uint64, result *WatchResult) error {
	pending, err := uc.store.ListTransactions(ctx, domain.TransactionFilter{
		ChainID: chainID,
		Status:  models.TransactionStatusPending,
	})
	if err != nil {
		return fmt.Errorf("failed to load pending transactions: %w", err)
	}

	result.Passes++
	result.StillPending = 0
	uc.metrics.PendingObserved(chainID, len(pending))

	for i, record := range pending {
		if ctx.Err() != nil {
			return nil
		}

		uc.sink.OnProgress(ctx, ProgressEvent{
			Stage:   "checking",
			Current: i + 1,
			Total:   len(pending),
			Message: fmt.Sprintf("Checking %s", record.Hash.Hex()),
			Spinner: true,
		})
		result.Checked++

		receipt, err := uc.fetcher.FetchReceipt(ctx, record.Hash)
		if err != nil {
			result.Errors++
			uc.sink.Error(fmt.Sprintf("receipt lookup for %s failed: %v", record.Hash.Hex(), err))
			result.StillPending++
			continue
		}
		if receipt == nil {
			result.StillPending++
			continue
		}
		if receipt.ConfirmedTime.IsZero() {
			receipt.ConfirmedTime = uc.clock()
		}

		// the record may have been removed or finalized since the pass started
		current, err := uc.store.GetTransaction(ctx, chainID, record.Hash)
		if err != nil {
			if isNotFound(err) {
				continue
			}
			return err
		}
		if !current.IsPending() {
			continue
		}

		if err := uc.store.FinalizeTransaction(ctx, chainID, record.Hash, *receipt); err != nil {
			return fmt.Errorf("failed to finalize %s: %w", record.Hash.Hex(), err)
		}
		uc.metrics.TransactionFinalized(chainID, receipt.Status)

		finalized, err := uc.store.GetTransaction(ctx, chainID, record.Hash)
		if err != nil {
			if isNotFound(err) {
				continue
			}
			return err
		}
		result.Finalized = append(result.Finalized, *finalized)
		uc.sink.Info(fmt.Sprintf("%s %s", record.Hash.Hex(), receipt.Status))
	}

	uc.metrics.PendingObserved(chainID, result.StillPending)
	return nil
}
