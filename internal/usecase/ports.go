package usecase

import (
	"context"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/txledger/internal/domain"
	"github.com/trebuchet-org/txledger/internal/domain/models"
)

// TransactionStore is the read/write interface to the transaction ledger.
// Implementations must apply each mutation atomically.
type TransactionStore interface {
	// AddTransaction stores record as pending under (chainID, hash), replacing any existing record
	AddTransaction(ctx context.Context, chainID uint64, hash common.Hash, record models.TransactionRecord) error
	// RemoveTransaction deletes a record; missing records are not an error
	RemoveTransaction(ctx context.Context, chainID uint64, hash common.Hash) error
	// FinalizeTransaction sets the terminal status of a pending record; missing records are ignored
	FinalizeTransaction(ctx context.Context, chainID uint64, hash common.Hash, receipt models.Receipt) error
	// CancelTransaction moves a record to newHash and marks it cancelled
	CancelTransaction(ctx context.Context, chainID uint64, oldHash, newHash common.Hash) (*models.TransactionRecord, error)
	GetTransaction(ctx context.Context, chainID uint64, hash common.Hash) (*models.TransactionRecord, error)
	ListTransactions(ctx context.Context, filter domain.TransactionFilter) ([]models.TransactionRecord, error)
	ClearTransactions(ctx context.Context, chainID uint64) error
	HasPendingApproval(ctx context.Context, chainID uint64, token, spender common.Address) (bool, error)
	HasPendingRevocation(ctx context.Context, chainID uint64, token, spender common.Address) (bool, error)
}

// ReceiptFetcher reads transaction outcomes from a chain
type ReceiptFetcher interface {
	Connect(ctx context.Context, rpcURL string, chainID uint64) error
	// FetchReceipt returns nil without error when the transaction is not mined yet
	FetchReceipt(ctx context.Context, hash common.Hash) (*models.Receipt, error)
	Close()
}

// TransactionSelector handles interactive selection of a single transaction
type TransactionSelector interface {
	SelectTransaction(ctx context.Context, records []models.TransactionRecord, prompt string) (*models.TransactionRecord, error)
}

// TransactionMultiSelector handles interactive selection of several transactions
type TransactionMultiSelector interface {
	SelectTransactions(ctx context.Context, records []models.TransactionRecord, prompt string) ([]models.TransactionRecord, error)
}

// LedgerMetrics receives counters about ledger activity
type LedgerMetrics interface {
	TransactionAdded(chainID uint64)
	TransactionFinalized(chainID uint64, status models.TransactionStatus)
	TransactionCancelled(chainID uint64)
	PendingObserved(chainID uint64, pending int)
}

// NopMetrics discards all metrics
type NopMetrics struct{}

func (NopMetrics) TransactionAdded(uint64)                               {}
func (NopMetrics) TransactionFinalized(uint64, models.TransactionStatus) {}
func (NopMetrics) TransactionCancelled(uint64)                           {}
func (NopMetrics) PendingObserved(uint64, int)                           {}

// Clock returns the current time
type Clock func() time.Time

// Progress tracking interfaces

// ProgressEvent represents a progress update
type ProgressEvent struct {
	Stage   string
	Current int
	Total   int
	Message string
	Spinner bool
}

// ProgressSink receives progress events
type ProgressSink interface {
	OnProgress(ctx context.Context, event ProgressEvent)
	Info(message string)
	Error(message string)
}

// NopProgress is a no-op implementation of ProgressSink
type NopProgress struct{}

func (NopProgress) OnProgress(context.Context, ProgressEvent) {}
func (NopProgress) Info(string)                               {}
func (NopProgress) Error(string)                              {}

// Use case result types

// TransactionListResult contains the result of listing transactions
type TransactionListResult struct {
	Transactions []models.TransactionRecord
	Summary      TransactionSummary
}

// TransactionSummary provides summary statistics
type TransactionSummary struct {
	Total     int
	ByChain   map[uint64]int
	ByStatus  map[models.TransactionStatus]int
	Cancelled int
}
