package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/trebuchet-org/txledger/internal/cli/render"
	"github.com/trebuchet-org/txledger/internal/domain/models"
	"github.com/trebuchet-org/txledger/internal/usecase"
)

type addOptions struct {
	from      string
	nonce     uint64
	kind      string
	token     string
	spender   string
	amount    string
	recipient string
	unwrap    bool
	deadline  string
}

// NewAddCmd creates the add command
func NewAddCmd() *cobra.Command {
	opts := &addOptions{}

	cmd := &cobra.Command{
		Use:   "add <hash>",
		Short: "Record a submitted transaction as pending",
		Long: `Record a transaction that was just submitted. The record is stored as
pending on the active chain until it is finalized, cancelled or removed.`,
		Example: `  # Approve 10000 USDC units for Permit2 on mainnet
  txledger add 0xabc... -n mainnet --type approve --from 0x123... --nonce 4 \
    --token 0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48 \
    --spender 0x000000000022D473030F116dDEE9F6B43aC78BA3 --amount 10000

  # Revoke the same allowance
  txledger add 0xdef... -n mainnet --type approve --token ... --spender ... --amount 0

  # Unwrap 1 WETH
  txledger add 0x123... -c 1 --type wrap --unwrap --amount 1000000000000000000`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			hash, err := parseHash(args[0])
			if err != nil {
				return err
			}

			info, err := opts.info(cmd)
			if err != nil {
				return err
			}

			params := usecase.AddTransactionParams{
				Hash:  hash,
				Nonce: opts.nonce,
				Info:  info,
			}
			if opts.from != "" {
				if params.From, err = parseAddress("from", opts.from); err != nil {
					return err
				}
			}
			if params.Deadline, err = parseDeadline(opts.deadline, time.Now()); err != nil {
				return err
			}

			record, err := app.AddTransaction.Run(cmd.Context(), params)
			if err != nil {
				return err
			}

			return render.NewTransactionsRenderer(cmd.OutOrStdout(), outputFormat(app.Config.JSON, "")).
				RenderRecord("Added", record)
		},
	}

	cmd.Flags().StringVar(&opts.kind, "type", "", "Transaction type: approve, claim, send or wrap")
	cmd.Flags().StringVar(&opts.from, "from", "", "Sender address")
	cmd.Flags().Uint64Var(&opts.nonce, "nonce", 0, "Sender nonce")
	cmd.Flags().StringVar(&opts.token, "token", "", "Token address (approve, send)")
	cmd.Flags().StringVar(&opts.spender, "spender", "", "Spender address (approve)")
	cmd.Flags().StringVar(&opts.amount, "amount", "", "Raw token amount; 0 revokes an approval, max is unlimited")
	cmd.Flags().StringVar(&opts.recipient, "recipient", "", "Recipient address (claim, send)")
	cmd.Flags().BoolVar(&opts.unwrap, "unwrap", false, "Record an unwrap instead of a wrap (wrap)")
	cmd.Flags().StringVar(&opts.deadline, "deadline", "", "Deadline as RFC 3339, unix seconds or a duration from now")
	_ = cmd.MarkFlagRequired("type")

	return cmd
}

// info builds the intent payload for the selected type
func (o *addOptions) info(cmd *cobra.Command) (models.TransactionInfo, error) {
	kind, ok := models.ParseTransactionKind(o.kind)
	if !ok {
		return nil, fmt.Errorf("%w: %q (valid: approve, claim, send, wrap)", models.ErrUnknownTransactionKind, o.kind)
	}

	requireAmount := func() error {
		if !cmd.Flags().Changed("amount") {
			return fmt.Errorf("--amount is required for %s", o.kind)
		}
		return nil
	}

	switch kind {
	case models.KindApprove:
		token, err := parseAddress("token", o.token)
		if err != nil {
			return nil, err
		}
		spender, err := parseAddress("spender", o.spender)
		if err != nil {
			return nil, err
		}
		if err := requireAmount(); err != nil {
			return nil, err
		}
		amount, err := parseAmount(o.amount)
		if err != nil {
			return nil, err
		}
		return models.ApproveInfo{TokenAddress: token, Spender: spender, ApprovalAmount: amount}, nil

	case models.KindClaim:
		recipient, err := parseAddress("recipient", o.recipient)
		if err != nil {
			return nil, err
		}
		return models.ClaimInfo{Recipient: recipient}, nil

	case models.KindSend:
		token, err := parseAddress("token", o.token)
		if err != nil {
			return nil, err
		}
		recipient, err := parseAddress("recipient", o.recipient)
		if err != nil {
			return nil, err
		}
		if err := requireAmount(); err != nil {
			return nil, err
		}
		amount, err := parseAmount(o.amount)
		if err != nil {
			return nil, err
		}
		return models.SendInfo{TokenAddress: token, Recipient: recipient, Amount: amount}, nil

	case models.KindWrap:
		if err := requireAmount(); err != nil {
			return nil, err
		}
		amount, err := parseAmount(o.amount)
		if err != nil {
			return nil, err
		}
		return models.WrapInfo{Unwrapped: o.unwrap, Amount: amount}, nil
	}

	return nil, models.ErrUnknownTransactionKind
}

// outputFormat resolves --output against the global --json flag
func outputFormat(jsonFlag bool, output string) string {
	if jsonFlag {
		return render.FormatJSON
	}
	if output == "" {
		return render.FormatTable
	}
	return output
}
