package app

import (
	"log/slog"

	"github.com/trebuchet-org/txledger/internal/adapters/metrics"
	"github.com/trebuchet-org/txledger/internal/domain/config"
	"github.com/trebuchet-org/txledger/internal/usecase"
)

// App is the main application container that holds all use cases
type App struct {
	// Configuration
	Config *config.RuntimeConfig
	Log    *slog.Logger

	// Use cases
	AddTransaction      *usecase.AddTransaction
	RemoveTransaction   *usecase.RemoveTransaction
	FinalizeTransaction *usecase.FinalizeTransaction
	CancelTransaction   *usecase.CancelTransaction
	ListTransactions    *usecase.ListTransactions
	ClearTransactions   *usecase.ClearTransactions
	CheckApproval       *usecase.CheckApproval
	WatchTransactions   *usecase.WatchTransactions
	ListNetworks        *usecase.ListNetworks

	// Adapters needed directly by commands
	Metrics *metrics.PrometheusMetrics
}

// NewApp creates a new application instance with all use cases
func NewApp(
	cfg *config.RuntimeConfig,
	log *slog.Logger,
	addTransaction *usecase.AddTransaction,
	removeTransaction *usecase.RemoveTransaction,
	finalizeTransaction *usecase.FinalizeTransaction,
	cancelTransaction *usecase.CancelTransaction,
	listTransactions *usecase.ListTransactions,
	clearTransactions *usecase.ClearTransactions,
	checkApproval *usecase.CheckApproval,
	watchTransactions *usecase.WatchTransactions,
	listNetworks *usecase.ListNetworks,
	promMetrics *metrics.PrometheusMetrics,
) (*App, error) {
	return &App{
		Config:              cfg,
		Log:                 log,
		AddTransaction:      addTransaction,
		RemoveTransaction:   removeTransaction,
		FinalizeTransaction: finalizeTransaction,
		CancelTransaction:   cancelTransaction,
		ListTransactions:    listTransactions,
		ClearTransactions:   clearTransactions,
		CheckApproval:       checkApproval,
		WatchTransactions:   watchTransactions,
		ListNetworks:        listNetworks,
		Metrics:             promMetrics,
	}, nil
}
