package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// ErrUnknownTransactionKind is returned when decoding an info payload of an unknown type
var ErrUnknownTransactionKind = errors.New("unknown transaction kind")

// TransactionKind is the discriminant of a TransactionInfo payload
type TransactionKind string

const (
	KindApprove TransactionKind = "APPROVE"
	KindClaim   TransactionKind = "CLAIM"
	KindSend    TransactionKind = "SEND"
	KindWrap    TransactionKind = "WRAP"
)

// AllKinds lists every transaction kind in display order
func AllKinds() []TransactionKind {
	return []TransactionKind{KindApprove, KindClaim, KindSend, KindWrap}
}

// ParseTransactionKind parses a kind name case-insensitively
func ParseTransactionKind(s string) (TransactionKind, bool) {
	k := TransactionKind(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range AllKinds() {
		if k == known {
			return k, true
		}
	}
	return "", false
}

// TransactionInfo describes the intent of a transaction. The set of
// implementations is closed to this package.
type TransactionInfo interface {
	Kind() TransactionKind
	clone() TransactionInfo
}

// ApproveInfo is an ERC20 approval. A zero amount is a revocation.
type ApproveInfo struct {
	TokenAddress   common.Address
	Spender        common.Address
	ApprovalAmount *uint256.Int
}

func (ApproveInfo) Kind() TransactionKind { return KindApprove }

func (i ApproveInfo) clone() TransactionInfo {
	i.ApprovalAmount = cloneAmount(i.ApprovalAmount)
	return i
}

// IsRevocation reports whether the approval sets the allowance to zero
func (i ApproveInfo) IsRevocation() bool {
	return i.ApprovalAmount == nil || i.ApprovalAmount.IsZero()
}

// Targets reports whether the approval is for the given token and spender
func (i ApproveInfo) Targets(token, spender common.Address) bool {
	return i.TokenAddress == token && i.Spender == spender
}

// ClaimInfo is a reward or airdrop claim
type ClaimInfo struct {
	Recipient common.Address
}

func (ClaimInfo) Kind() TransactionKind { return KindClaim }

func (i ClaimInfo) clone() TransactionInfo { return i }

// SendInfo is a native or token transfer
type SendInfo struct {
	TokenAddress common.Address // zero address for the native currency
	Recipient    common.Address
	Amount       *uint256.Int
}

func (SendInfo) Kind() TransactionKind { return KindSend }

func (i SendInfo) clone() TransactionInfo {
	i.Amount = cloneAmount(i.Amount)
	return i
}

// WrapInfo wraps or unwraps the native currency
type WrapInfo struct {
	Unwrapped bool
	Amount    *uint256.Int
}

func (WrapInfo) Kind() TransactionKind { return KindWrap }

func (i WrapInfo) clone() TransactionInfo {
	i.Amount = cloneAmount(i.Amount)
	return i
}

func cloneAmount(a *uint256.Int) *uint256.Int {
	if a == nil {
		return nil
	}
	return a.Clone()
}

// infoJSON is the tagged wire form of every TransactionInfo variant
type infoJSON struct {
	Type           TransactionKind `json:"type"`
	TokenAddress   *common.Address `json:"tokenAddress,omitempty"`
	Spender        *common.Address `json:"spender,omitempty"`
	Recipient      *common.Address `json:"recipient,omitempty"`
	ApprovalAmount string          `json:"approvalAmount,omitempty"`
	Amount         string          `json:"amount,omitempty"`
	Unwrapped      bool            `json:"unwrapped,omitempty"`
}

func amountString(a *uint256.Int) string {
	if a == nil {
		return "0"
	}
	return a.Dec()
}

func parseAmount(s string) (*uint256.Int, error) {
	if s == "" {
		return new(uint256.Int), nil
	}
	a, err := uint256.FromDecimal(s)
	if err != nil {
		return nil, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return a, nil
}

// MarshalInfo encodes a TransactionInfo with its type discriminant
func MarshalInfo(info TransactionInfo) ([]byte, error) {
	if info == nil {
		return []byte("null"), nil
	}

	out := infoJSON{Type: info.Kind()}
	switch v := info.(type) {
	case ApproveInfo:
		out.TokenAddress = &v.TokenAddress
		out.Spender = &v.Spender
		out.ApprovalAmount = amountString(v.ApprovalAmount)
	case ClaimInfo:
		out.Recipient = &v.Recipient
	case SendInfo:
		out.TokenAddress = &v.TokenAddress
		out.Recipient = &v.Recipient
		out.Amount = amountString(v.Amount)
	case WrapInfo:
		out.Unwrapped = v.Unwrapped
		out.Amount = amountString(v.Amount)
	default:
		return nil, fmt.Errorf("unsupported transaction info %T", info)
	}
	return json.Marshal(out)
}

// UnmarshalInfo decodes a tagged TransactionInfo payload
func UnmarshalInfo(data []byte) (TransactionInfo, error) {
	if len(data) == 0 || string(data) == "null" {
		return nil, nil
	}

	var raw infoJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode transaction info: %w", err)
	}

	addr := func(a *common.Address) common.Address {
		if a == nil {
			return common.Address{}
		}
		return *a
	}

	switch raw.Type {
	case KindApprove:
		amount, err := parseAmount(raw.ApprovalAmount)
		if err != nil {
			return nil, err
		}
		return ApproveInfo{
			TokenAddress:   addr(raw.TokenAddress),
			Spender:        addr(raw.Spender),
			ApprovalAmount: amount,
		}, nil
	case KindClaim:
		return ClaimInfo{Recipient: addr(raw.Recipient)}, nil
	case KindSend:
		amount, err := parseAmount(raw.Amount)
		if err != nil {
			return nil, err
		}
		return SendInfo{
			TokenAddress: addr(raw.TokenAddress),
			Recipient:    addr(raw.Recipient),
			Amount:       amount,
		}, nil
	case KindWrap:
		amount, err := parseAmount(raw.Amount)
		if err != nil {
			return nil, err
		}
		return WrapInfo{Unwrapped: raw.Unwrapped, Amount: amount}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownTransactionKind, raw.Type)
	}
}

// recordAlias drops the methods of TransactionRecord to avoid recursion
type recordAlias TransactionRecord

type recordJSON struct {
	recordAlias
	Info json.RawMessage `json:"info"`
}

// MarshalJSON includes the tagged info payload
func (r TransactionRecord) MarshalJSON() ([]byte, error) {
	info, err := MarshalInfo(r.Info)
	if err != nil {
		return nil, err
	}
	return json.Marshal(recordJSON{recordAlias: recordAlias(r), Info: info})
}

// UnmarshalJSON decodes a record including its tagged info payload
func (r *TransactionRecord) UnmarshalJSON(data []byte) error {
	var raw recordJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	info, err := UnmarshalInfo(raw.Info)
	if err != nil {
		return err
	}
	*r = TransactionRecord(raw.recordAlias)
	r.Info = info
	return nil
}
