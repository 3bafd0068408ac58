package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/txledger/internal/domain"
	"github.com/trebuchet-org/txledger/internal/domain/config"
	"github.com/trebuchet-org/txledger/internal/domain/models"
)

// AddTransactionParams describes a freshly submitted transaction
type AddTransactionParams struct {
	ChainID  uint64 // defaults to the active chain
	Hash     common.Hash
	From     common.Address
	Nonce    uint64
	Info     models.TransactionInfo
	Deadline *time.Time
}

// AddTransaction records a submitted transaction as pending
type AddTransaction struct {
	config  *config.RuntimeConfig
	store   TransactionStore
	clock   Clock
	metrics LedgerMetrics
}

// NewAddTransaction creates a new AddTransaction use case
func NewAddTransaction(cfg *config.RuntimeConfig, store TransactionStore, clock Clock, metrics LedgerMetrics) *AddTransaction {
	return &AddTransaction{
		config:  cfg,
		store:   store,
		clock:   clock,
		metrics: metrics,
	}
}

// Run validates the submission and stores it
func (uc *AddTransaction) Run(ctx context.Context, params AddTransactionParams) (*models.TransactionRecord, error) {
	chainID, err := resolveChain(uc.config, params.ChainID)
	if err != nil {
		return nil, err
	}
	if params.Hash == (common.Hash{}) {
		return nil, fmt.Errorf("%w: hash is empty", domain.ErrInvalidHash)
	}
	if params.Info == nil {
		return nil, fmt.Errorf("transaction info is required")
	}

	record := models.TransactionRecord{
		ID:         params.Hash.Hex(),
		Hash:       params.Hash,
		ChainID:    chainID,
		Nonce:      params.Nonce,
		From:       params.From,
		Info:       params.Info,
		AddedTime:  uc.clock(),
		Deadline:   params.Deadline,
		Status:     models.TransactionStatusPending,
		OriginType: models.OriginInternal,
	}

	if err := uc.store.AddTransaction(ctx, chainID, params.Hash, record); err != nil {
		return nil, fmt.Errorf("failed to add transaction: %w", err)
	}
	uc.metrics.TransactionAdded(chainID)

	return &record, nil
}

// resolveChain picks the explicit chain or falls back to the active one
func resolveChain(cfg *config.RuntimeConfig, explicit uint64) (uint64, error) {
	if explicit != 0 {
		return explicit, nil
	}
	if chainID := cfg.ActiveChain(); chainID != 0 {
		return chainID, nil
	}
	return 0, domain.ErrNoActiveChain
}
