package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/txledger/internal/domain"
	"github.com/trebuchet-org/txledger/internal/domain/config"
)

const networksTOML = `
[networks.mainnet]
chain_id = 1
rpc_url = "${TEST_MAINNET_RPC}"

[networks.base]
chain_id = 8453
rpc_url = "https://mainnet.base.org"
`

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestProvider(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		dir := t.TempDir()
		v := SetupViper(nil)
		v.Set("data_dir", dir)

		cfg, err := Provider(v)
		require.NoError(t, err)
		assert.Equal(t, dir, cfg.DataDir)
		assert.Equal(t, config.BackendFile, cfg.Backend)
		assert.Equal(t, 5*time.Minute, cfg.Timeout)
		assert.Equal(t, 12*time.Second, cfg.PollInterval)
		assert.Nil(t, cfg.Network)
		assert.Zero(t, cfg.ActiveChain())
		assert.Empty(t, cfg.Networks)
	})

	t.Run("network resolves with env expansion", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, NetworksFileName), networksTOML)
		t.Setenv("TEST_MAINNET_RPC", "http://localhost:8545")

		v := viper.New()
		v.Set("data_dir", dir)
		v.Set("backend", "memory")
		v.Set("network", "mainnet")

		cfg, err := Provider(v)
		require.NoError(t, err)
		require.NotNil(t, cfg.Network)
		assert.Equal(t, "mainnet", cfg.Network.Name)
		assert.Equal(t, "http://localhost:8545", cfg.Network.RPCURL)
		assert.Equal(t, uint64(1), cfg.ActiveChain())
		assert.Len(t, cfg.Networks, 2)
	})

	t.Run("explicit chain wins without network", func(t *testing.T) {
		v := viper.New()
		v.Set("data_dir", t.TempDir())
		v.Set("backend", "sqlite")
		v.Set("chain", "0x2105")

		cfg, err := Provider(v)
		require.NoError(t, err)
		assert.Equal(t, uint64(8453), cfg.ActiveChain())
		assert.Equal(t, config.BackendSQLite, cfg.Backend)
	})

	t.Run("chain and network must agree", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, NetworksFileName), networksTOML)

		v := viper.New()
		v.Set("data_dir", dir)
		v.Set("backend", "memory")
		v.Set("chain", "1")
		v.Set("network", "base")

		_, err := Provider(v)
		assert.ErrorContains(t, err, "does not match")
	})

	t.Run("unknown network lists available ones", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, NetworksFileName), networksTOML)

		v := viper.New()
		v.Set("data_dir", dir)
		v.Set("backend", "memory")
		v.Set("network", "sepolia")

		_, err := Provider(v)
		assert.ErrorContains(t, err, "available: base, mainnet")
	})

	t.Run("unknown backend", func(t *testing.T) {
		v := viper.New()
		v.Set("data_dir", t.TempDir())
		v.Set("backend", "postgres")

		_, err := Provider(v)
		assert.ErrorContains(t, err, "unknown storage backend")
	})
}

func TestSetupViper(t *testing.T) {
	t.Run("env overrides config file", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, "config.json"), `{"backend": "sqlite", "poll_interval": "30s"}`)
		t.Setenv("TXLEDGER_DATA_DIR", dir)
		t.Setenv("TXLEDGER_BACKEND", "memory")

		v := SetupViper(nil)
		assert.Equal(t, "memory", v.GetString("backend"))
		assert.Equal(t, 30*time.Second, v.GetDuration("poll_interval"))
	})

	t.Run("changed flags override env", func(t *testing.T) {
		t.Setenv("TXLEDGER_DATA_DIR", t.TempDir())
		t.Setenv("TXLEDGER_NON_INTERACTIVE", "false")

		cmd := &cobra.Command{Use: "test"}
		cmd.Flags().Bool("non-interactive", false, "")
		require.NoError(t, cmd.Flags().Set("non-interactive", "true"))

		v := SetupViper(cmd)
		assert.True(t, v.GetBool("non_interactive"))
	})
}

func TestParseChainID(t *testing.T) {
	tests := []struct {
		in      string
		want    uint64
		wantErr bool
	}{
		{in: "1", want: 1},
		{in: "8453", want: 8453},
		{in: "0x2105", want: 8453},
		{in: " 10 ", want: 10},
		{in: "0", wantErr: true},
		{in: "base", wantErr: true},
		{in: "-1", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseChainID(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrInvalidChainID)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadNetworks(t *testing.T) {
	t.Run("missing chain id", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, NetworksFileName), "[networks.broken]\nrpc_url = \"http://x\"\n")

		_, err := LoadNetworks(dir)
		assert.ErrorIs(t, err, domain.ErrInvalidChainID)
	})

	t.Run("env file feeds expansion", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, ".env"), "TXLEDGER_TEST_ONLY_RPC=http://from-dotenv:8545\n")
		writeFile(t, filepath.Join(dir, NetworksFileName), "[networks.local]\nchain_id = 31337\nrpc_url = \"${TXLEDGER_TEST_ONLY_RPC}\"\n")
		t.Cleanup(func() { os.Unsetenv("TXLEDGER_TEST_ONLY_RPC") })

		LoadEnvFiles(dir)
		networks, err := LoadNetworks(dir)
		require.NoError(t, err)
		require.Contains(t, networks, "local")
		assert.Equal(t, "http://from-dotenv:8545", networks["local"].RPCURL)
		assert.Equal(t, uint64(31337), networks["local"].ChainID)
	})
}
