package transactions

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/glebarez/sqlite"
	"github.com/trebuchet-org/txledger/internal/domain"
	"github.com/trebuchet-org/txledger/internal/domain/models"
	"github.com/trebuchet-org/txledger/internal/ledger"
	"github.com/trebuchet-org/txledger/internal/usecase"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

const SQLiteFile = "transactions.db"

// transactionRow is the table layout of one ledger record
type transactionRow struct {
	ChainID       uint64 `gorm:"primaryKey;autoIncrement:false"`
	Hash          string `gorm:"primaryKey;size:66"`
	RecordID      string `gorm:"size:66"`
	Nonce         uint64
	FromAddress   string `gorm:"size:42;index"`
	Kind          string `gorm:"size:16;index"`
	Info          []byte
	AddedTime     time.Time
	Deadline      *time.Time
	Status        string `gorm:"size:16;index"`
	Cancelled     bool
	OriginType    string `gorm:"size:16"`
	ConfirmedTime *time.Time
	BlockNumber   uint64
}

func (transactionRow) TableName() string {
	return "transactions"
}

func rowFromRecord(chainID uint64, hash common.Hash, r models.TransactionRecord) (transactionRow, error) {
	info, err := models.MarshalInfo(r.Info)
	if err != nil {
		return transactionRow{}, err
	}
	var kind string
	if r.Info != nil {
		kind = string(r.Info.Kind())
	}
	return transactionRow{
		ChainID:       chainID,
		Hash:          hash.Hex(),
		RecordID:      r.ID,
		Nonce:         r.Nonce,
		FromAddress:   r.From.Hex(),
		Kind:          kind,
		Info:          info,
		AddedTime:     r.AddedTime,
		Deadline:      r.Deadline,
		Status:        string(r.Status),
		Cancelled:     r.Cancelled,
		OriginType:    string(r.OriginType),
		ConfirmedTime: r.ConfirmedTime,
		BlockNumber:   r.BlockNumber,
	}, nil
}

func (row transactionRow) toRecord() (models.TransactionRecord, error) {
	info, err := models.UnmarshalInfo(row.Info)
	if err != nil {
		return models.TransactionRecord{}, fmt.Errorf("record %s: %w", row.Hash, err)
	}
	return models.TransactionRecord{
		ID:            row.RecordID,
		Hash:          common.HexToHash(row.Hash),
		ChainID:       row.ChainID,
		Nonce:         row.Nonce,
		From:          common.HexToAddress(row.FromAddress),
		Info:          info,
		AddedTime:     row.AddedTime,
		Deadline:      row.Deadline,
		Status:        models.TransactionStatus(row.Status),
		Cancelled:     row.Cancelled,
		OriginType:    models.OriginType(row.OriginType),
		ConfirmedTime: row.ConfirmedTime,
		BlockNumber:   row.BlockNumber,
	}, nil
}

// SQLRepository stores the ledger in a SQLite database through gorm
type SQLRepository struct {
	db  *gorm.DB
	log *slog.Logger
}

// NewSQLRepository opens the ledger database in dataDir and migrates the schema
func NewSQLRepository(dataDir string, debug bool, log *slog.Logger) (*SQLRepository, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return OpenSQLRepository(filepath.Join(dataDir, SQLiteFile), debug, log)
}

// OpenSQLRepository opens the ledger database at dsn
func OpenSQLRepository(dsn string, debug bool, log *slog.Logger) (*SQLRepository, error) {
	level := logger.Silent
	if debug {
		level = logger.Info
	}

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(level),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.AutoMigrate(&transactionRow{}); err != nil {
		return nil, fmt.Errorf("migrate schema: %w", err)
	}

	log = log.With("component", "SQLRepository")
	log.Debug("opened ledger database", "dsn", dsn)

	return &SQLRepository{db: db, log: log}, nil
}

// Close releases database resources
func (r *SQLRepository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func keyScope(chainID uint64, hash common.Hash) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("chain_id = ? AND hash = ?", chainID, hash.Hex())
	}
}

func upsert(tx *gorm.DB, row *transactionRow) error {
	return tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(row).Error
}

// AddTransaction stores a pending record, replacing any record at the same key
func (r *SQLRepository) AddTransaction(ctx context.Context, chainID uint64, hash common.Hash, record models.TransactionRecord) error {
	record.Status = models.TransactionStatusPending
	row, err := rowFromRecord(chainID, hash, record)
	if err != nil {
		return err
	}
	return upsert(r.db.WithContext(ctx), &row)
}

// RemoveTransaction deletes a record if present
func (r *SQLRepository) RemoveTransaction(ctx context.Context, chainID uint64, hash common.Hash) error {
	return r.db.WithContext(ctx).Scopes(keyScope(chainID, hash)).Delete(&transactionRow{}).Error
}

// FinalizeTransaction sets the terminal status of a pending record
func (r *SQLRepository) FinalizeTransaction(ctx context.Context, chainID uint64, hash common.Hash, receipt models.Receipt) error {
	if !receipt.Status.IsTerminal() {
		return fmt.Errorf("%w: cannot finalize with %q", domain.ErrInvalidStatus, receipt.Status)
	}

	updates := map[string]any{"status": string(receipt.Status)}
	if receipt.BlockNumber != 0 {
		updates["block_number"] = receipt.BlockNumber
	}
	if !receipt.ConfirmedTime.IsZero() {
		updates["confirmed_time"] = receipt.ConfirmedTime
	}

	return r.db.WithContext(ctx).
		Model(&transactionRow{}).
		Scopes(keyScope(chainID, hash)).
		Where("status = ?", string(models.TransactionStatusPending)).
		Updates(updates).Error
}

// CancelTransaction replaces the record at oldHash with a cancelled copy at newHash
func (r *SQLRepository) CancelTransaction(ctx context.Context, chainID uint64, oldHash, newHash common.Hash) (*models.TransactionRecord, error) {
	var replaced models.TransactionRecord

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row transactionRow
		if err := tx.Scopes(keyScope(chainID, oldHash)).First(&row).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &domain.RecordNotFoundError{ChainID: chainID, Hash: oldHash}
			}
			return err
		}
		if err := tx.Scopes(keyScope(chainID, oldHash)).Delete(&transactionRow{}).Error; err != nil {
			return err
		}

		row.Hash = newHash.Hex()
		row.Cancelled = true
		if err := upsert(tx, &row); err != nil {
			return err
		}

		var err error
		replaced, err = row.toRecord()
		return err
	})
	if err != nil {
		return nil, err
	}
	return &replaced, nil
}

// GetTransaction retrieves a record by key
func (r *SQLRepository) GetTransaction(ctx context.Context, chainID uint64, hash common.Hash) (*models.TransactionRecord, error) {
	var row transactionRow
	if err := r.db.WithContext(ctx).Scopes(keyScope(chainID, hash)).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &domain.RecordNotFoundError{ChainID: chainID, Hash: hash}
		}
		return nil, err
	}
	record, err := row.toRecord()
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// ListTransactions retrieves records matching the filter
func (r *SQLRepository) ListTransactions(ctx context.Context, filter domain.TransactionFilter) ([]models.TransactionRecord, error) {
	q := r.db.WithContext(ctx).Model(&transactionRow{})
	if filter.ChainID != 0 {
		q = q.Where("chain_id = ?", filter.ChainID)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", string(filter.Status))
	}
	if filter.Kind != "" {
		q = q.Where("kind = ?", string(filter.Kind))
	}
	if filter.From != nil {
		q = q.Where("from_address = ?", filter.From.Hex())
	}

	records, err := r.find(q)
	if err != nil {
		return nil, err
	}
	ledger.SortRecords(records)
	return records, nil
}

// ClearTransactions drops every record of a chain
func (r *SQLRepository) ClearTransactions(ctx context.Context, chainID uint64) error {
	return r.db.WithContext(ctx).Where("chain_id = ?", chainID).Delete(&transactionRow{}).Error
}

// HasPendingApproval reports a pending non-zero approval on chainID
func (r *SQLRepository) HasPendingApproval(ctx context.Context, chainID uint64, token, spender common.Address) (bool, error) {
	return r.anyPendingApproval(ctx, chainID, ledger.IsApprovalFor(token, spender))
}

// HasPendingRevocation reports a pending zero approval on chainID
func (r *SQLRepository) HasPendingRevocation(ctx context.Context, chainID uint64, token, spender common.Address) (bool, error) {
	return r.anyPendingApproval(ctx, chainID, ledger.IsRevocationFor(token, spender))
}

// anyPendingApproval narrows to pending approvals in SQL and applies match to the decoded info
func (r *SQLRepository) anyPendingApproval(ctx context.Context, chainID uint64, match ledger.InfoPredicate) (bool, error) {
	if chainID == 0 {
		return false, nil
	}

	q := r.db.WithContext(ctx).Model(&transactionRow{}).
		Where("chain_id = ? AND status = ? AND kind = ?",
			chainID, string(models.TransactionStatusPending), string(models.KindApprove))

	records, err := r.find(q)
	if err != nil {
		return false, err
	}
	for _, record := range records {
		if match(record.Info) {
			return true, nil
		}
	}
	return false, nil
}

func (r *SQLRepository) find(q *gorm.DB) ([]models.TransactionRecord, error) {
	var rows []transactionRow
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}

	records := make([]models.TransactionRecord, 0, len(rows))
	for _, row := range rows {
		record, err := row.toRecord()
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}

// Ensure the repository implements the interface
var _ usecase.TransactionStore = (*SQLRepository)(nil)
