package adapters

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/wire"
	"github.com/trebuchet-org/txledger/internal/adapters/blockchain"
	"github.com/trebuchet-org/txledger/internal/adapters/interactive"
	"github.com/trebuchet-org/txledger/internal/adapters/metrics"
	"github.com/trebuchet-org/txledger/internal/adapters/progress"
	"github.com/trebuchet-org/txledger/internal/adapters/repository/transactions"
	"github.com/trebuchet-org/txledger/internal/domain/config"
	"github.com/trebuchet-org/txledger/internal/ledger"
	"github.com/trebuchet-org/txledger/internal/usecase"
)

// ProvideTransactionStore opens the ledger backend selected in the config.
// The cleanup closes the SQLite handle when that backend is used.
func ProvideTransactionStore(cfg *config.RuntimeConfig, log *slog.Logger) (usecase.TransactionStore, func(), error) {
	switch cfg.Backend {
	case config.BackendMemory:
		return transactions.NewRepository(ledger.New()), func() {}, nil
	case config.BackendFile, "":
		repo, err := transactions.NewFileRepository(cfg.DataDir, log)
		if err != nil {
			return nil, nil, err
		}
		return repo, func() {}, nil
	case config.BackendSQLite:
		repo, err := transactions.NewSQLRepository(cfg.DataDir, cfg.Debug, log)
		if err != nil {
			return nil, nil, err
		}
		return repo, func() {
			if err := repo.Close(); err != nil {
				log.Warn("failed to close ledger database", "error", err)
			}
		}, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}

// ProvideClock provides the wall clock
func ProvideClock() usecase.Clock {
	return time.Now
}

// ProvideProgressSink picks the spinner for interactive terminals, structured
// logs for non-interactive runs and nothing when the output is JSON
func ProvideProgressSink(cfg *config.RuntimeConfig, log *slog.Logger) usecase.ProgressSink {
	switch {
	case cfg.JSON:
		return progress.NewNopSink()
	case cfg.NonInteractive:
		return progress.NewLogSink(log)
	default:
		return progress.NewSpinnerSink()
	}
}

// StorageSet provides the ledger store
var StorageSet = wire.NewSet(
	ProvideTransactionStore,
	ProvideClock,
)

// InteractiveSet provides interactive implementations
var InteractiveSet = wire.NewSet(
	interactive.NewSelectorAdapter,
	wire.Bind(new(usecase.TransactionSelector), new(*interactive.SelectorAdapter)),

	interactive.NewMultiSelectorAdapter,
	wire.Bind(new(usecase.TransactionMultiSelector), new(*interactive.MultiSelectorAdapter)),
)

// BlockchainSet provides blockchain-based implementations
var BlockchainSet = wire.NewSet(
	blockchain.NewReceiptFetcherAdapter,
	wire.Bind(new(usecase.ReceiptFetcher), new(*blockchain.ReceiptFetcherAdapter)),
)

// MetricsSet provides the Prometheus collectors
var MetricsSet = wire.NewSet(
	metrics.NewPrometheusMetrics,
	wire.Bind(new(usecase.LedgerMetrics), new(*metrics.PrometheusMetrics)),
)

// AllAdapters includes all adapter sets
var AllAdapters = wire.NewSet(
	ProvideProgressSink,
	StorageSet,
	InteractiveSet,
	BlockchainSet,
	MetricsSet,
)
