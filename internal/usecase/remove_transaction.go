package usecase

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/samber/lo"
	"github.com/trebuchet-org/txledger/internal/domain"
	"github.com/trebuchet-org/txledger/internal/domain/config"
	"github.com/trebuchet-org/txledger/internal/domain/models"
)

// RemoveTransactionParams contains parameters for removing transactions
type RemoveTransactionParams struct {
	ChainID uint64
	// Hashes to remove. When empty the user picks from the chain's records.
	Hashes []common.Hash
}

// RemoveTransactionResult lists the removed keys
type RemoveTransactionResult struct {
	ChainID uint64
	Removed []common.Hash
}

// RemoveTransaction deletes records from the ledger
type RemoveTransaction struct {
	config   *config.RuntimeConfig
	store    TransactionStore
	selector TransactionMultiSelector
}

// NewRemoveTransaction creates a new RemoveTransaction use case
func NewRemoveTransaction(cfg *config.RuntimeConfig, store TransactionStore, selector TransactionMultiSelector) *RemoveTransaction {
	return &RemoveTransaction{
		config:   cfg,
		store:    store,
		selector: selector,
	}
}

// Run removes the requested records
func (uc *RemoveTransaction) Run(ctx context.Context, params RemoveTransactionParams) (*RemoveTransactionResult, error) {
	chainID, err := resolveChain(uc.config, params.ChainID)
	if err != nil {
		return nil, err
	}

	hashes := params.Hashes
	if len(hashes) == 0 {
		if uc.config.NonInteractive {
			return nil, fmt.Errorf("%w: no transaction hash given", domain.ErrInvalidHash)
		}
		records, err := uc.store.ListTransactions(ctx, domain.TransactionFilter{ChainID: chainID})
		if err != nil {
			return nil, err
		}
		if len(records) == 0 {
			return &RemoveTransactionResult{ChainID: chainID}, nil
		}
		selected, err := uc.selector.SelectTransactions(ctx, records, "Select transactions to remove")
		if err != nil {
			return nil, err
		}
		hashes = lo.Map(selected, func(r models.TransactionRecord, _ int) common.Hash { return r.Hash })
	}

	hashes = lo.Uniq(hashes)
	for _, hash := range hashes {
		if err := uc.store.RemoveTransaction(ctx, chainID, hash); err != nil {
			return nil, fmt.Errorf("failed to remove %s: %w", hash.Hex(), err)
		}
	}

	return &RemoveTransactionResult{ChainID: chainID, Removed: hashes}, nil
}
