package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/txledger/internal/domain"
	"github.com/trebuchet-org/txledger/internal/domain/config"
	"github.com/trebuchet-org/txledger/internal/domain/models"
)

// CancelTransactionParams describes a replacement submitted for a pending transaction
type CancelTransactionParams struct {
	ChainID uint64
	// OldHash is the hash being replaced. When zero the user picks a pending record.
	OldHash common.Hash
	NewHash common.Hash
}

// CancelTransaction replaces a tracked transaction with its cancellation
type CancelTransaction struct {
	config   *config.RuntimeConfig
	store    TransactionStore
	selector TransactionSelector
	metrics  LedgerMetrics
}

// NewCancelTransaction creates a new CancelTransaction use case
func NewCancelTransaction(cfg *config.RuntimeConfig, store TransactionStore, selector TransactionSelector, metrics LedgerMetrics) *CancelTransaction {
	return &CancelTransaction{
		config:   cfg,
		store:    store,
		selector: selector,
		metrics:  metrics,
	}
}

// Run performs the cancellation
func (uc *CancelTransaction) Run(ctx context.Context, params CancelTransactionParams) (*models.TransactionRecord, error) {
	chainID, err := resolveChain(uc.config, params.ChainID)
	if err != nil {
		return nil, err
	}
	if params.NewHash == (common.Hash{}) {
		return nil, fmt.Errorf("%w: replacement hash is empty", domain.ErrInvalidHash)
	}

	oldHash := params.OldHash
	if oldHash == (common.Hash{}) {
		if uc.config.NonInteractive {
			return nil, fmt.Errorf("%w: no transaction to cancel given", domain.ErrInvalidHash)
		}
		pending, err := uc.store.ListTransactions(ctx, domain.TransactionFilter{
			ChainID: chainID,
			Status:  models.TransactionStatusPending,
		})
		if err != nil {
			return nil, err
		}
		if len(pending) == 0 {
			return nil, fmt.Errorf("no pending transactions on chain %d", chainID)
		}
		selected, err := uc.selector.SelectTransaction(ctx, pending, "Select transaction to cancel")
		if err != nil {
			return nil, err
		}
		oldHash = selected.Hash
	}
	if oldHash == params.NewHash {
		return nil, fmt.Errorf("%w: replacement hash equals the original", domain.ErrInvalidHash)
	}

	record, err := uc.store.CancelTransaction(ctx, chainID, oldHash, params.NewHash)
	if err != nil {
		return nil, fmt.Errorf("failed to cancel transaction: %w", err)
	}
	uc.metrics.TransactionCancelled(chainID)

	return record, nil
}

func isNotFound(err error) bool {
	return errors.Is(err, domain.ErrNotFound)
}
