package usecase

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/txledger/internal/domain"
	"github.com/trebuchet-org/txledger/internal/domain/config"
	"github.com/trebuchet-org/txledger/internal/domain/models"
)

// FinalizeTransactionParams reports a mined transaction
type FinalizeTransactionParams struct {
	ChainID     uint64
	Hash        common.Hash
	Status      models.TransactionStatus
	BlockNumber uint64
}

// FinalizeTransaction moves a pending record to its terminal status
type FinalizeTransaction struct {
	config  *config.RuntimeConfig
	store   TransactionStore
	clock   Clock
	metrics LedgerMetrics
}

// NewFinalizeTransaction creates a new FinalizeTransaction use case
func NewFinalizeTransaction(cfg *config.RuntimeConfig, store TransactionStore, clock Clock, metrics LedgerMetrics) *FinalizeTransaction {
	return &FinalizeTransaction{
		config:  cfg,
		store:   store,
		clock:   clock,
		metrics: metrics,
	}
}

// Run finalizes the record. The returned record is nil when nothing was tracked
// under the hash.
func (uc *FinalizeTransaction) Run(ctx context.Context, params FinalizeTransactionParams) (*models.TransactionRecord, error) {
	chainID, err := resolveChain(uc.config, params.ChainID)
	if err != nil {
		return nil, err
	}
	if !params.Status.IsTerminal() {
		return nil, fmt.Errorf("%w: %q is not a final status", domain.ErrInvalidStatus, params.Status)
	}

	before, err := uc.store.GetTransaction(ctx, chainID, params.Hash)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}

	receipt := models.Receipt{
		Status:        params.Status,
		BlockNumber:   params.BlockNumber,
		ConfirmedTime: uc.clock(),
	}
	if err := uc.store.FinalizeTransaction(ctx, chainID, params.Hash, receipt); err != nil {
		return nil, fmt.Errorf("failed to finalize transaction: %w", err)
	}
	if before.IsPending() {
		uc.metrics.TransactionFinalized(chainID, params.Status)
	}

	return uc.store.GetTransaction(ctx, chainID, params.Hash)
}
