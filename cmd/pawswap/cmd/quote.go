package cmd

import (
	"fmt"

	"cosmossdk.io/math"
	"github.com/spf13/cobra"

	"github.com/paw-chain/pawswap/x/amm/keeper"
)

const (
	FlagDirection = "direction"
	FlagKind      = "kind"
)

// NewQuoteCmd prices a hypothetical swap against given reserves without
// executing anything.
func NewQuoteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quote [amount]",
		Short: "Price a swap against given reserves",
		Long: `Price a swap against a pool with the given reserves.

With --kind=input the amount is the exact quantity sold and the quote is
the quantity bought; with --kind=output the amount is the exact quantity
bought and the quote is the quantity that must be sold.`,
		Example: `  pawswap quote 100 --base-reserve 1000 --token-reserve 2000
  pawswap quote 181 --direction base_to_token --kind output --base-reserve 1000 --token-reserve 2000`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, ok := math.NewIntFromString(args[0])
			if !ok {
				return fmt.Errorf("invalid amount %q", args[0])
			}

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
			direction, err := cmd.Flags().GetString(FlagDirection)
			if err != nil {
				return err
			}
			kind, err := cmd.Flags().GetString(FlagKind)
			if err != nil {
				return err
			}

			reserveIn, reserveOut := math.NewInt(baseReserve), math.NewInt(tokenReserve)
			switch direction {
			case "base_to_token":
			case "token_to_base":
				reserveIn, reserveOut = reserveOut, reserveIn
			default:
				return fmt.Errorf("invalid direction %q", direction)
			}

			var quote math.Int
			switch kind {
			case "input":
				quote, err = keeper.InputPrice(amount, reserveIn, reserveOut, params)
			case "output":
				quote, err = keeper.OutputPrice(amount, reserveIn, reserveOut, params)
			default:
				return fmt.Errorf("invalid kind %q", kind)
			}
			if err != nil {
				return err
			}

			cmd.Println(quote.String())
			return nil
		},
	}

	cmd.Flags().Int64(FlagBaseReserve, 0, "pool base asset reserve")
	cmd.Flags().Int64(FlagTokenReserve, 0, "pool token reserve")
	cmd.Flags().String(FlagDirection, "base_to_token", "swap direction (base_to_token or token_to_base)")
	cmd.Flags().String(FlagKind, "input", "quote kind (input for exact sell, output for exact buy)")
	_ = cmd.MarkFlagRequired(FlagBaseReserve)
	_ = cmd.MarkFlagRequired(FlagTokenReserve)

	return cmd
}
