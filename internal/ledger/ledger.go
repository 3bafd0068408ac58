// Package ledger holds the in-memory transaction ledger: a chainId -> hash
// mapping of transaction records with pending-state queries on top.
package ledger

import (
	"fmt"
	"iter"
	"sort"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/txledger/internal/domain"
	"github.com/trebuchet-org/txledger/internal/domain/models"
)

// InfoPredicate selects records by their intent payload
type InfoPredicate func(info models.TransactionInfo) bool

// Snapshot is a detached copy of the whole ledger, keyed by chain then hash
type Snapshot map[uint64]map[common.Hash]models.TransactionRecord

// Ledger is safe for concurrent use. Records are copied on the way in and out.
type Ledger struct {
	mu     sync.RWMutex
	chains map[uint64]map[common.Hash]*models.TransactionRecord
}

// New creates an empty ledger
func New() *Ledger {
	return &Ledger{chains: make(map[uint64]map[common.Hash]*models.TransactionRecord)}
}

// Add stores record under (chainID, hash) as pending. An existing record at
// the same key is replaced.
func (l *Ledger) Add(chainID uint64, hash common.Hash, record models.TransactionRecord) {
	l.mu.Lock()
	defer l.mu.Unlock()

	r := record.Clone()
	r.ChainID = chainID
	r.Hash = hash
	r.Status = models.TransactionStatusPending
	l.getOrCreate(chainID)[hash] = &r
}

// Remove deletes the record at (chainID, hash) if present
func (l *Ledger) Remove(chainID uint64, hash common.Hash) {
	l.mu.Lock()
	defer l.mu.Unlock()

	txs := l.chains[chainID]
	if txs == nil {
		return
	}
	delete(txs, hash)
	l.cleanupIfEmpty(chainID)
}

// Finalize moves a pending record to the receipt's terminal status. It is a
// no-op when the record is missing or already final.
func (l *Ledger) Finalize(chainID uint64, hash common.Hash, receipt models.Receipt) error {
	if !receipt.Status.IsTerminal() {
		return fmt.Errorf("%w: cannot finalize with %q", domain.ErrInvalidStatus, receipt.Status)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	r := l.chains[chainID][hash]
	if r == nil || !r.IsPending() {
		return nil
	}
	r.Status = receipt.Status
	if receipt.BlockNumber != 0 {
		r.BlockNumber = receipt.BlockNumber
	}
	if !receipt.ConfirmedTime.IsZero() {
		t := receipt.ConfirmedTime
		r.ConfirmedTime = &t
	}
	return nil
}

// Cancel re-keys the record at oldHash under newHash and marks it cancelled.
func (l *Ledger) Cancel(chainID uint64, oldHash, newHash common.Hash) (models.TransactionRecord, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	txs := l.chains[chainID]
	old := txs[oldHash]
	if old == nil {
		return models.TransactionRecord{}, &domain.RecordNotFoundError{ChainID: chainID, Hash: oldHash}
	}

	replacement := old.Clone()
	replacement.Hash = newHash
	replacement.Cancelled = true

	delete(txs, oldHash)
	txs[newHash] = &replacement
	return replacement.Clone(), nil
}

// ClearAll drops every record of a chain
func (l *Ledger) ClearAll(chainID uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.chains, chainID)
}

// Get returns a copy of the record at (chainID, hash)
func (l *Ledger) Get(chainID uint64, hash common.Hash) (models.TransactionRecord, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	r := l.chains[chainID][hash]
	if r == nil {
		return models.TransactionRecord{}, false
	}
	return r.Clone(), true
}

// List returns copies of the records matching filter, ordered as SortRecords does
func (l *Ledger) List(filter domain.TransactionFilter) []models.TransactionRecord {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var out []models.TransactionRecord
	for chainID, txs := range l.chains {
		if filter.ChainID != 0 && chainID != filter.ChainID {
			continue
		}
		for _, r := range txs {
			if filter.Matches(r) {
				out = append(out, r.Clone())
			}
		}
	}
	SortRecords(out)
	return out
}

// Pending yields the pending records of chainID whose info satisfies match.
// A nil match selects every pending record. Matches are copied under the read
// lock and yielded after it is released, so the consumer may use the ledger.
func (l *Ledger) Pending(chainID uint64, match InfoPredicate) iter.Seq[models.TransactionRecord] {
	return func(yield func(models.TransactionRecord) bool) {
		for _, r := range l.pending(chainID, match) {
			if !yield(r) {
				return
			}
		}
	}
}

func (l *Ledger) pending(chainID uint64, match InfoPredicate) []models.TransactionRecord {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var out []models.TransactionRecord
	for _, r := range l.chains[chainID] {
		if !r.IsPending() {
			continue
		}
		if match != nil && !match(r.Info) {
			continue
		}
		out = append(out, r.Clone())
	}
	return out
}

// HasPendingApproval reports whether a non-zero approval of spender on token is
// in flight on the active chain
func (l *Ledger) HasPendingApproval(activeChain uint64, token, spender common.Address) bool {
	return l.hasPending(activeChain, IsApprovalFor(token, spender))
}

// HasPendingRevocation reports whether a zero approval of spender on token is
// in flight on the active chain
func (l *Ledger) HasPendingRevocation(activeChain uint64, token, spender common.Address) bool {
	return l.hasPending(activeChain, IsRevocationFor(token, spender))
}

func (l *Ledger) hasPending(chainID uint64, match InfoPredicate) bool {
	if chainID == 0 {
		return false
	}
	for range l.Pending(chainID, match) {
		return true
	}
	return false
}

// Snapshot returns a detached copy of every record
func (l *Ledger) Snapshot() Snapshot {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make(Snapshot, len(l.chains))
	for chainID, txs := range l.chains {
		m := make(map[common.Hash]models.TransactionRecord, len(txs))
		for hash, r := range txs {
			m[hash] = r.Clone()
		}
		out[chainID] = m
	}
	return out
}

// Restore replaces the ledger contents with snap. Statuses are kept as stored.
func (l *Ledger) Restore(snap Snapshot) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.chains = make(map[uint64]map[common.Hash]*models.TransactionRecord, len(snap))
	for chainID, txs := range snap {
		for hash, rec := range txs {
			r := rec.Clone()
			r.ChainID = chainID
			r.Hash = hash
			l.getOrCreate(chainID)[hash] = &r
		}
	}
}

func (l *Ledger) getOrCreate(chainID uint64) map[common.Hash]*models.TransactionRecord {
	txs := l.chains[chainID]
	if txs == nil {
		txs = make(map[common.Hash]*models.TransactionRecord)
		l.chains[chainID] = txs
	}
	return txs
}

func (l *Ledger) cleanupIfEmpty(chainID uint64) {
	if len(l.chains[chainID]) == 0 {
		delete(l.chains, chainID)
	}
}

// IsApprovalFor matches approvals of spender on token with a non-zero amount
func IsApprovalFor(token, spender common.Address) InfoPredicate {
	return func(info models.TransactionInfo) bool {
		approve, ok := info.(models.ApproveInfo)
		return ok && approve.Targets(token, spender) && !approve.IsRevocation()
	}
}

// IsRevocationFor matches approvals of spender on token with a zero amount
func IsRevocationFor(token, spender common.Address) InfoPredicate {
	return func(info models.TransactionInfo) bool {
		approve, ok := info.(models.ApproveInfo)
		return ok && approve.Targets(token, spender) && approve.IsRevocation()
	}
}

// SortRecords orders records by chain, added time, then hash
func SortRecords(records []models.TransactionRecord) {
	sort.Slice(records, func(i, j int) bool {
		if records[i].ChainID != records[j].ChainID {
			return records[i].ChainID < records[j].ChainID
		}
		if !records[i].AddedTime.Equal(records[j].AddedTime) {
			return records[i].AddedTime.Before(records[j].AddedTime)
		}
		return records[i].Hash.Cmp(records[j].Hash) < 0
	})
}
