package domain

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/txledger/internal/domain/models"
)

// TransactionFilter defines filtering options for transactions.
// Zero values match everything.
type TransactionFilter struct {
	ChainID uint64
	Status  models.TransactionStatus
	Kind    models.TransactionKind
	From    *common.Address
}

// Matches reports whether a record satisfies the filter
func (f TransactionFilter) Matches(r *models.TransactionRecord) bool {
	if f.ChainID != 0 && r.ChainID != f.ChainID {
		return false
	}
	if f.Status != "" && r.Status != f.Status {
		return false
	}
	if f.Kind != "" && (r.Info == nil || r.Info.Kind() != f.Kind) {
		return false
	}
	if f.From != nil && r.From != *f.From {
		return false
	}
	return true
}
