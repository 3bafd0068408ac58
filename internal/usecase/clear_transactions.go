package usecase

import (
	"context"
	"fmt"

	"github.com/trebuchet-org/txledger/internal/domain"
	"github.com/trebuchet-org/txledger/internal/domain/config"
)

// ClearTransactions drops every record of a chain
type ClearTransactions struct {
	config *config.RuntimeConfig
	store  TransactionStore
}

// NewClearTransactions creates a new ClearTransactions use case
func NewClearTransactions(cfg *config.RuntimeConfig, store TransactionStore) *ClearTransactions {
	return &ClearTransactions{config: cfg, store: store}
}

// Run clears the chain and returns how many records were dropped
func (uc *ClearTransactions) Run(ctx context.Context, chainID uint64) (int, error) {
	chainID, err := resolveChain(uc.config, chainID)
	if err != nil {
		return 0, err
	}

	records, err := uc.store.ListTransactions(ctx, domain.TransactionFilter{ChainID: chainID})
	if err != nil {
		return 0, err
	}
	if err := uc.store.ClearTransactions(ctx, chainID); err != nil {
		return 0, fmt.Errorf("failed to clear chain %d: %w", chainID, err)
	}
	return len(records), nil
}
