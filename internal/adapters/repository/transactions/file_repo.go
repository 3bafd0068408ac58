package transactions

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/txledger/internal/domain/models"
	"github.com/trebuchet-org/txledger/internal/ledger"
	"github.com/trebuchet-org/txledger/internal/usecase"
)

const TransactionsFile = "transactions.json"

// FileRepository keeps the ledger in memory and mirrors every mutation to a
// JSON file in the data directory
type FileRepository struct {
	*Repository

	log  *slog.Logger
	path string
	// mu serializes "mutate + save" so the file never lags behind a later write
	mu sync.Mutex
}

// NewFileRepository opens (or creates) the ledger file in dataDir
func NewFileRepository(dataDir string, log *slog.Logger) (*FileRepository, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	r := &FileRepository{
		Repository: NewRepository(ledger.New()),
		log:        log.With("component", "FileRepository"),
		path:       filepath.Join(dataDir, TransactionsFile),
	}

	if err := r.load(); err != nil {
		return nil, fmt.Errorf("failed to load ledger: %w", err)
	}

	return r, nil
}

// Path returns the location of the ledger file
func (r *FileRepository) Path() string {
	return r.path
}

// load reads the ledger file; a missing file is an empty ledger
func (r *FileRepository) load() error {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	var snap ledger.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return fmt.Errorf("failed to parse %s: %w", r.path, err)
	}
	r.ledger.Restore(snap)

	r.log.Debug("loaded ledger", "path", r.path, "chains", len(snap))
	return nil
}

// save writes the whole ledger to disk
func (r *FileRepository) save() error {
	data, err := json.MarshalIndent(r.ledger.Snapshot(), "", "  ")
	if err != nil {
		return err
	}

	// Write to temp file first
	tmpPath := r.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return err
	}

	// Atomic rename
	return os.Rename(tmpPath, r.path)
}

// mutate applies fn and persists the result
func (r *FileRepository) mutate(fn func() error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := fn(); err != nil {
		return err
	}
	if err := r.save(); err != nil {
		return fmt.Errorf("failed to save ledger: %w", err)
	}
	return nil
}

// AddTransaction stores a pending record
func (r *FileRepository) AddTransaction(ctx context.Context, chainID uint64, hash common.Hash, record models.TransactionRecord) error {
	return r.mutate(func() error {
		return r.Repository.AddTransaction(ctx, chainID, hash, record)
	})
}

// RemoveTransaction deletes a record if present
func (r *FileRepository) RemoveTransaction(ctx context.Context, chainID uint64, hash common.Hash) error {
	return r.mutate(func() error {
		return r.Repository.RemoveTransaction(ctx, chainID, hash)
	})
}

// FinalizeTransaction sets the terminal status of a pending record
func (r *FileRepository) FinalizeTransaction(ctx context.Context, chainID uint64, hash common.Hash, receipt models.Receipt) error {
	return r.mutate(func() error {
		return r.Repository.FinalizeTransaction(ctx, chainID, hash, receipt)
	})
}

// CancelTransaction replaces the record at oldHash with a cancelled copy at newHash
func (r *FileRepository) CancelTransaction(ctx context.Context, chainID uint64, oldHash, newHash common.Hash) (*models.TransactionRecord, error) {
	var record *models.TransactionRecord
	err := r.mutate(func() error {
		var err error
		record, err = r.Repository.CancelTransaction(ctx, chainID, oldHash, newHash)
		return err
	})
	if err != nil {
		return nil, err
	}
	return record, nil
}

// ClearTransactions drops every record of a chain
func (r *FileRepository) ClearTransactions(ctx context.Context, chainID uint64) error {
	return r.mutate(func() error {
		return r.Repository.ClearTransactions(ctx, chainID)
	})
}

// Ensure the repository implements the interface
var _ usecase.TransactionStore = (*FileRepository)(nil)
