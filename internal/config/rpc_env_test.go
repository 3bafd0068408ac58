package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectEnvVar(t *testing.T) {
	tests := []struct {
		name       string
		rawValue   string
		wantEnvVar string
		wantIsVar  bool
	}{
		{
			name:       "simple env var",
			rawValue:   "${BASE_RPC_URL}",
			wantEnvVar: "BASE_RPC_URL",
			wantIsVar:  true,
		},
		{
			name:       "env var with underscores",
			rawValue:   "${BASE_SEPOLIA_RPC_URL}",
			wantEnvVar: "BASE_SEPOLIA_RPC_URL",
			wantIsVar:  true,
		},
		{
			name:       "hardcoded URL",
			rawValue:   "https://mainnet.base.org",
			wantEnvVar: "",
			wantIsVar:  false,
		},
		{
			name:       "env var with path suffix",
			rawValue:   "${MY_VAR}/path",
			wantEnvVar: "",
			wantIsVar:  false,
		},
		{
			name:       "empty string",
			rawValue:   "",
			wantEnvVar: "",
			wantIsVar:  false,
		},
		{
			name:       "localhost URL",
			rawValue:   "http://localhost:8545",
			wantEnvVar: "",
			wantIsVar:  false,
		},
		{
			name:       "env var starting with underscore",
			rawValue:   "${_MY_VAR}",
			wantEnvVar: "_MY_VAR",
			wantIsVar:  true,
		},
		{
			name:       "partial env var syntax - missing closing brace",
			rawValue:   "${UNCLOSED",
			wantEnvVar: "",
			wantIsVar:  false,
		},
		{
			name:       "dollar without braces",
			rawValue:   "$MY_VAR",
			wantEnvVar: "",
			wantIsVar:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			envVar, isVar := DetectEnvVar(tt.rawValue)
			assert.Equal(t, tt.wantEnvVar, envVar)
			assert.Equal(t, tt.wantIsVar, isVar)
		})
	}
}

func TestGenerateEnvVarName(t *testing.T) {
	tests := []struct {
		name        string
		networkName string
		want        string
	}{
		{
			name:        "simple network",
			networkName: "base",
			want:        "BASE_RPC_URL",
		},
		{
			name:        "network with dash",
			networkName: "base-sepolia",
			want:        "BASE_SEPOLIA_RPC_URL",
		},
		{
			name:        "already uppercase",
			networkName: "MAINNET",
			want:        "MAINNET_RPC_URL",
		},
		{
			name:        "mixed case with dash",
			networkName: "Arbitrum-One",
			want:        "ARBITRUM_ONE_RPC_URL",
		},
		{
			name:        "network with dot",
			networkName: "polygon.zkevm",
			want:        "POLYGON_ZKEVM_RPC_URL",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GenerateEnvVarName(tt.networkName)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNetworkRPCFromEnvironment(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, NetworksFileName), `[networks.base-sepolia]
chain_id = 84532

[networks.optimism]
chain_id = 10
rpc_url = "${TXLEDGER_TEST_OP_RPC}"

[networks.local]
chain_id = 31337
rpc_url = "http://127.0.0.1:8545"
`)
	t.Setenv("BASE_SEPOLIA_RPC_URL", "https://sepolia.base.org")
	t.Setenv("TXLEDGER_TEST_OP_RPC", "https://mainnet.optimism.io")

	networks, err := LoadNetworks(dir)
	require.NoError(t, err)

	assert.Equal(t, "https://sepolia.base.org", networks["base-sepolia"].RPCURL)
	assert.Equal(t, "BASE_SEPOLIA_RPC_URL", networks["base-sepolia"].RPCEnvVar)

	assert.Equal(t, "https://mainnet.optimism.io", networks["optimism"].RPCURL)
	assert.Equal(t, "TXLEDGER_TEST_OP_RPC", networks["optimism"].RPCEnvVar)

	assert.Equal(t, "http://127.0.0.1:8545", networks["local"].RPCURL)
	assert.Empty(t, networks["local"].RPCEnvVar)
}
