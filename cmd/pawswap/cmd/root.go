package cmd

import (
	"errors"
	"strings"

	"cosmossdk.io/math"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/paw-chain/pawswap/x/amm/types"
)

// Flag names shared across subcommands.
const (
	FlagConfig       = "config"
	FlagFeeNumerator = "fee-numerator"
	FlagFeeDenom     = "fee-denominator"
	FlagMinBootstrap = "min-bootstrap-base"
	FlagBaseReserve  = "base-reserve"
	FlagTokenReserve = "token-reserve"
)

// NewRootCmd creates the root command for the pawswap CLI.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "pawswap",
		Short: "Constant-product pool engine utilities",
		Long: `pawswap prices and simulates trades against constant-product
liquidity pools and serves a read-only query API over them.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().String(FlagConfig, "", "config file (default ./pawswap.yaml)")
	rootCmd.PersistentFlags().Int64(FlagFeeNumerator, 997, "fee numerator applied to swap inputs")
	rootCmd.PersistentFlags().Int64(FlagFeeDenom, 1000, "fee denominator applied to swap inputs")
	rootCmd.PersistentFlags().Int64(FlagMinBootstrap, 1000, "minimum base deposit bootstrapping an empty pool")

	rootCmd.AddCommand(
		NewQuoteCmd(),
		NewSimulateCmd(),
		NewServeCmd(),
	)

	return rootCmd
}

// loadConfig builds a viper instance from the optional config file, with
// environment variables under the PAWSWAP prefix taking precedence.
func loadConfig(cmd *cobra.Command) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix("PAWSWAP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cfgFile, _ := cmd.Flags().GetString(FlagConfig); cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
		return v, nil
	}

	v.SetConfigName("pawswap")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return v, nil
		}
		return nil, err
	}
	return v, nil
}

// poolParams reads the fee and bootstrap flags into pool parameters.
func poolParams(cmd *cobra.Command) (types.Params, error) {
	feeNum, err := cmd.Flags().GetInt64(FlagFeeNumerator)
	if err != nil {
		return types.Params{}, err
	}
	feeDen, err := cmd.Flags().GetInt64(FlagFeeDenom)
	if err != nil {
		return types.Params{}, err
	}
	minBootstrap, err := cmd.Flags().GetInt64(FlagMinBootstrap)
	if err != nil {
		return types.Params{}, err
	}

	p := types.Params{
		FeeNumerator:     math.NewInt(feeNum),
		FeeDenominator:   math.NewInt(feeDen),
		MinBootstrapBase: math.NewInt(minBootstrap),
	}
	return p, p.Validate()
}
