//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"
	"github.com/spf13/viper"
	"github.com/trebuchet-org/txledger/internal/adapters"
	"github.com/trebuchet-org/txledger/internal/config"
	"github.com/trebuchet-org/txledger/internal/logging"
	"github.com/trebuchet-org/txledger/internal/usecase"
)

// InitApp creates a fully wired App instance. The cleanup releases the
// ledger backend.
func InitApp(v *viper.Viper) (*App, func(), error) {
	wire.Build(
		config.Provider,
		logging.LoggingSet,

		// Adapters
		adapters.AllAdapters,

		// Use cases
		usecase.NewAddTransaction,
		usecase.NewRemoveTransaction,
		usecase.NewFinalizeTransaction,
		usecase.NewCancelTransaction,
		usecase.NewListTransactions,
		usecase.NewClearTransactions,
		usecase.NewCheckApproval,
		usecase.NewWatchTransactions,
		usecase.NewListNetworks,

		// App
		NewApp,
	)
	return nil, nil, nil
}
