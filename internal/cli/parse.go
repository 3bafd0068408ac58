package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/trebuchet-org/txledger/internal/domain"
	"github.com/trebuchet-org/txledger/internal/domain/models"
)

// parseHash accepts a 0x-prefixed 32-byte hex hash
func parseHash(raw string) (common.Hash, error) {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "0x") && !strings.HasPrefix(s, "0X") {
		return common.Hash{}, fmt.Errorf("%w: %q must start with 0x", domain.ErrInvalidHash, raw)
	}
	body := s[2:]
	if len(body) != 2*common.HashLength || !isHex(body) {
		return common.Hash{}, fmt.Errorf("%w: %q is not 32 bytes of hex", domain.ErrInvalidHash, raw)
	}
	return common.HexToHash(s), nil
}

func parseHashes(args []string) ([]common.Hash, error) {
	hashes := make([]common.Hash, 0, len(args))
	for _, arg := range args {
		h, err := parseHash(arg)
		if err != nil {
			return nil, err
		}
		hashes = append(hashes, h)
	}
	return hashes, nil
}

// parseAddress accepts a 0x-prefixed 20-byte hex address
func parseAddress(name, raw string) (common.Address, error) {
	if raw == "" {
		return common.Address{}, fmt.Errorf("--%s is required", name)
	}
	if !common.IsHexAddress(raw) {
		return common.Address{}, fmt.Errorf("%w: --%s %q", domain.ErrInvalidAddress, name, raw)
	}
	return common.HexToAddress(raw), nil
}

// parseAmount accepts a decimal or 0x-hex integer, or "max" for the largest uint256
func parseAmount(raw string) (*uint256.Int, error) {
	s := strings.TrimSpace(strings.ReplaceAll(raw, "_", ""))
	switch strings.ToLower(s) {
	case "":
		return nil, fmt.Errorf("amount is empty")
	case "max", "unlimited":
		return new(uint256.Int).SetAllOne(), nil
	}
	if strings.HasPrefix(s, "0x") {
		v, err := uint256.FromHex(s)
		if err != nil {
			return nil, fmt.Errorf("invalid amount %q: %w", raw, err)
		}
		return v, nil
	}
	v, err := uint256.FromDecimal(s)
	if err != nil {
		return nil, fmt.Errorf("invalid amount %q: %w", raw, err)
	}
	return v, nil
}

// parseStatus accepts success or failed in any case
func parseStatus(raw string) (models.TransactionStatus, error) {
	status := models.TransactionStatus(strings.ToUpper(strings.TrimSpace(raw)))
	if !status.IsTerminal() {
		return "", fmt.Errorf("%w: %q (expected success or failed)", domain.ErrInvalidStatus, raw)
	}
	return status, nil
}

// parseDeadline accepts RFC 3339, unix seconds, or a duration from now such as 30m
func parseDeadline(raw string, now time.Time) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, nil
	}
	if secs, err := strconv.ParseInt(raw, 10, 64); err == nil {
		t := time.Unix(secs, 0).UTC()
		return &t, nil
	}
	if d, err := time.ParseDuration(raw); err == nil && d > 0 {
		t := now.Add(d)
		return &t, nil
	}
	return nil, fmt.Errorf("invalid deadline %q (use RFC 3339, unix seconds or a duration like 30m)", raw)
}

func isHex(s string) bool {
	for _, c := range s {
		switch {
		case c >= '0' && c <= '9', c >= 'a' && c <= 'f', c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}
