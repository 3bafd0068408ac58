package transactions

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/txledger/internal/domain"
	"github.com/trebuchet-org/txledger/internal/domain/models"
	"github.com/trebuchet-org/txledger/internal/ledger"
	"github.com/trebuchet-org/txledger/internal/usecase"
)

// Repository is the in-memory TransactionStore backed by a ledger.Ledger
type Repository struct {
	ledger *ledger.Ledger
}

// NewRepository creates a repository over l
func NewRepository(l *ledger.Ledger) *Repository {
	return &Repository{ledger: l}
}

// AddTransaction stores a pending record
func (r *Repository) AddTransaction(ctx context.Context, chainID uint64, hash common.Hash, record models.TransactionRecord) error {
	r.ledger.Add(chainID, hash, record)
	return nil
}

// RemoveTransaction deletes a record if present
func (r *Repository) RemoveTransaction(ctx context.Context, chainID uint64, hash common.Hash) error {
	r.ledger.Remove(chainID, hash)
	return nil
}

// FinalizeTransaction sets the terminal status of a pending record
func (r *Repository) FinalizeTransaction(ctx context.Context, chainID uint64, hash common.Hash, receipt models.Receipt) error {
	return r.ledger.Finalize(chainID, hash, receipt)
}

// CancelTransaction replaces the record at oldHash with a cancelled copy at newHash
func (r *Repository) CancelTransaction(ctx context.Context, chainID uint64, oldHash, newHash common.Hash) (*models.TransactionRecord, error) {
	record, err := r.ledger.Cancel(chainID, oldHash, newHash)
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// GetTransaction retrieves a record by key
func (r *Repository) GetTransaction(ctx context.Context, chainID uint64, hash common.Hash) (*models.TransactionRecord, error) {
	record, ok := r.ledger.Get(chainID, hash)
	if !ok {
		return nil, &domain.RecordNotFoundError{ChainID: chainID, Hash: hash}
	}
	return &record, nil
}

// ListTransactions retrieves records matching the filter
func (r *Repository) ListTransactions(ctx context.Context, filter domain.TransactionFilter) ([]models.TransactionRecord, error) {
	return r.ledger.List(filter), nil
}

// ClearTransactions drops every record of a chain
func (r *Repository) ClearTransactions(ctx context.Context, chainID uint64) error {
	r.ledger.ClearAll(chainID)
	return nil
}

// HasPendingApproval reports a pending non-zero approval on chainID
func (r *Repository) HasPendingApproval(ctx context.Context, chainID uint64, token, spender common.Address) (bool, error) {
	return r.ledger.HasPendingApproval(chainID, token, spender), nil
}

// HasPendingRevocation reports a pending zero approval on chainID
func (r *Repository) HasPendingRevocation(ctx context.Context, chainID uint64, token, spender common.Address) (bool, error) {
	return r.ledger.HasPendingRevocation(chainID, token, spender), nil
}

// Ensure the repository implements the interface
var _ usecase.TransactionStore = (*Repository)(nil)
