package cli

import (
	"strings"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/txledger/internal/domain"
	"github.com/trebuchet-org/txledger/internal/domain/models"
)

func TestParseHash(t *testing.T) {
	h, err := parseHash(hashA)
	require.NoError(t, err)
	assert.Equal(t, common.HexToHash(hashA), h)

	for _, raw := range []string{"", "0x", "1111111111111111111111111111111111111111111111111111111111111111", "0x1234", hashA + "00", "0x" + strings.Repeat("g", 64)} {
		_, err := parseHash(raw)
		assert.ErrorIs(t, err, domain.ErrInvalidHash, raw)
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"0", "0"},
		{"10000", "10000"},
		{"1_000_000", "1000000"},
		{"0x10", "16"},
		{"max", "115792089237316195423570985008687907853269984665640564039457584007913129639935"},
		{"Unlimited", "115792089237316195423570985008687907853269984665640564039457584007913129639935"},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			v, err := parseAmount(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, v.Dec())
		})
	}

	for _, raw := range []string{"", "-1", "1.5", "0xzz", "1e18"} {
		_, err := parseAmount(raw)
		assert.Error(t, err, raw)
	}
}

func TestParseStatus(t *testing.T) {
	s, err := parseStatus("Success")
	require.NoError(t, err)
	assert.Equal(t, models.TransactionStatusSuccess, s)

	s, err = parseStatus("failed")
	require.NoError(t, err)
	assert.Equal(t, models.TransactionStatusFailed, s)

	_, err = parseStatus("pending")
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)
}

func TestParseDeadline(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	d, err := parseDeadline("", now)
	require.NoError(t, err)
	assert.Nil(t, d)

	d, err = parseDeadline("2024-05-02T00:00:00Z", now)
	require.NoError(t, err)
	assert.True(t, d.Equal(time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC)))

	d, err = parseDeadline("1714564800", now)
	require.NoError(t, err)
	assert.Equal(t, int64(1714564800), d.Unix())

	d, err = parseDeadline("30m", now)
	require.NoError(t, err)
	assert.True(t, d.Equal(now.Add(30*time.Minute)))

	_, err = parseDeadline("tomorrow", now)
	assert.Error(t, err)
	_, err = parseDeadline("-5m", now)
	assert.Error(t, err)
}

func TestOutputFormat(t *testing.T) {
	assert.Equal(t, "table", outputFormat(false, ""))
	assert.Equal(t, "yaml", outputFormat(false, "yaml"))
	assert.Equal(t, "json", outputFormat(true, "yaml"))
}
