package render

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/trebuchet-org/txledger/internal/usecase"
)

// NetworksRenderer renders network lists
type NetworksRenderer struct {
	out io.Writer
}

// NewNetworksRenderer creates a new networks renderer
func NewNetworksRenderer(out io.Writer) *NetworksRenderer {
	return &NetworksRenderer{out: out}
}

// RenderNetworksList renders the configured networks
func (r *NetworksRenderer) RenderNetworksList(result *usecase.ListNetworksResult) error {
	if len(result.Networks) == 0 {
		fmt.Fprintln(r.out, "No networks configured in networks.toml")
		return nil
	}

	fmt.Fprintln(r.out, "🌐 Available Networks:")
	fmt.Fprintln(r.out)

	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.Style().Options.DrawBorder = false
	t.Style().Options.SeparateColumns = false
	t.Style().Options.SeparateHeader = false
	t.AppendHeader(table.Row{"", "NETWORK", "CHAIN ID", "PENDING", "RPC"})

	for _, n := range result.Networks {
		marker := ""
		if n.Active {
			marker = successStyle.Sprint("●")
		}
		rpc := n.RPCURL
		switch {
		case rpc == "" && n.RPCEnvVar != "":
			rpc = timestampStyle.Sprintf("(set %s)", n.RPCEnvVar)
		case rpc == "":
			rpc = timestampStyle.Sprint("(not set)")
		}
		t.AppendRow(table.Row{marker, n.Name, n.ChainID, n.Pending, rpc})
	}

	fmt.Fprintln(r.out, t.Render())
	return nil
}
