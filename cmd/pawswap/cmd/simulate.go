package cmd

import (
	"fmt"
	"strings"
	"time"

	"cosmossdk.io/math"
	"github.com/spf13/cobra"

	"github.com/paw-chain/pawswap/testutil"
	"github.com/paw-chain/pawswap/x/amm/types"
)

// NewSimulateCmd executes a sequence of trades against an in-memory pool
// and reports the outcome of each step.
func NewSimulateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "simulate [trade...]",
		Short: "Run a trade sequence against an in-memory pool",
		Long: `Run a sequence of trades against an in-memory pool seeded with the
given reserves. Each trade is DIRECTION:AMOUNT where DIRECTION is b2t
(sell base for tokens) or t2b (sell tokens for base). All trades are
exact-input with a minimum accepted amount of 1.`,
		Example: `  pawswap simulate b2t:100 t2b:50 --base-reserve 1000 --token-reserve 2000`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := poolParams(cmd)
			if err != nil {
				return err
			}

			baseReserve, err := cmd.Flags().GetInt64(FlagBaseReserve)
			if err != nil {
				return err
			}
			tokenReserve, err := cmd.Flags().GetInt64(FlagTokenReserve)
			if err != nil {
				return err
			}
			if baseReserve < params.MinBootstrapBase.Int64() {
				return fmt.Errorf("base reserve %d below bootstrap minimum %s", baseReserve, params.MinBootstrapBase)
			}

			f, err := testutil.NewFixture(types.Address("pool"), params)
			if err != nil {
				return err
			}
			if err := f.Bootstrap(types.Address("lp"), math.NewInt(baseReserve), math.NewInt(tokenReserve)); err != nil {
				return err
			}

			trader := types.Address("trader")
			deadline := time.Now().Add(time.Minute)

			for i, arg := range args {
				direction, amount, err := parseTrade(arg)
				if err != nil {
					return err
				}

				var out math.Int
				switch direction {
				case "b2t":
					f.Bank.Fund(trader, amount)
					out, err = f.Keeper.BaseToTokenSwapInput(amount, math.OneInt(), deadline, trader)
				case "t2b":
					f.Token.Fund(trader, amount)
					out, err = f.Keeper.TokenToBaseSwapInput(amount, math.OneInt(), deadline, trader)
				}
				if err != nil {
					return fmt.Errorf("trade %d (%s): %w", i+1, arg, err)
				}

				base, token := f.Keeper.Reserves()
				cmd.Printf("%d: %s -> %s (reserves %s base / %s token)\n",
					i+1, arg, out, base, token)
			}

			base, token := f.Keeper.Reserves()
			cmd.Printf("final reserves: %s base / %s token\n", base, token)
			return nil
		},
	}

	cmd.Flags().Int64(FlagBaseReserve, 0, "initial base asset reserve")
	cmd.Flags().Int64(FlagTokenReserve, 0, "initial token reserve")
	_ = cmd.MarkFlagRequired(FlagBaseReserve)
	_ = cmd.MarkFlagRequired(FlagTokenReserve)

	return cmd
}

func parseTrade(s string) (string, math.Int, error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 || (parts[0] != "b2t" && parts[0] != "t2b") {
		return "", math.Int{}, fmt.Errorf("invalid trade %q, want b2t:AMOUNT or t2b:AMOUNT", s)
	}
	amount, ok := math.NewIntFromString(parts[1])
	if !ok || !amount.IsPositive() {
		return "", math.Int{}, fmt.Errorf("invalid trade amount %q", parts[1])
	}
	return parts[0], amount, nil
}
