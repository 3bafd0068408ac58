package usecase

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/samber/lo"
	"github.com/trebuchet-org/txledger/internal/domain"
	"github.com/trebuchet-org/txledger/internal/domain/config"
	"github.com/trebuchet-org/txledger/internal/domain/models"
)

// ListTransactionsParams contains parameters for listing transactions
type ListTransactionsParams struct {
	// AllChains ignores the active chain
	AllChains bool
	Status    models.TransactionStatus
	Kind      models.TransactionKind
	From      *common.Address
}

// ListTransactions is the use case for listing tracked transactions
type ListTransactions struct {
	config *config.RuntimeConfig
	store  TransactionStore
	sink   ProgressSink
}

// NewListTransactions creates a new ListTransactions use case
func NewListTransactions(cfg *config.RuntimeConfig, store TransactionStore, sink ProgressSink) *ListTransactions {
	return &ListTransactions{
		config: cfg,
		store:  store,
		sink:   sink,
	}
}

// Run executes the list transactions use case
func (uc *ListTransactions) Run(ctx context.Context, params ListTransactionsParams) (*TransactionListResult, error) {
	uc.sink.OnProgress(ctx, ProgressEvent{
		Stage:   "loading",
		Message: "Loading transactions from ledger",
		Spinner: true,
	})

	filter := domain.TransactionFilter{
		Status: params.Status,
		Kind:   params.Kind,
		From:   params.From,
	}
	if !params.AllChains {
		filter.ChainID = uc.config.ActiveChain()
	}

	records, err := uc.store.ListTransactions(ctx, filter)
	if err != nil {
		return nil, err
	}

	uc.sink.OnProgress(ctx, ProgressEvent{
		Stage:   "complete",
		Current: len(records),
		Total:   len(records),
		Message: "Transactions loaded",
	})

	return &TransactionListResult{
		Transactions: records,
		Summary:      calculateSummary(records),
	}, nil
}

// calculateSummary calculates summary statistics for transactions
func calculateSummary(records []models.TransactionRecord) TransactionSummary {
	return TransactionSummary{
		Total: len(records),
		ByChain: lo.CountValuesBy(records, func(r models.TransactionRecord) uint64 {
			return r.ChainID
		}),
		ByStatus: lo.CountValuesBy(records, func(r models.TransactionRecord) models.TransactionStatus {
			return r.Status
		}),
		Cancelled: lo.CountBy(records, func(r models.TransactionRecord) bool {
			return r.Cancelled
		}),
	}
}
