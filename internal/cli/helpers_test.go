package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeNetworks(t *testing.T, dir string) {
	t.Helper()
	content := `[networks.mainnet]
chain_id = 1
rpc_url = "http://127.0.0.1:8545"

[networks.base]
chain_id = 8453
rpc_url = "http://127.0.0.1:9545"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "networks.toml"), []byte(content), 0644))
}
