package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/paw-chain/pawswap/api"
	"github.com/paw-chain/pawswap/testutil"
	"github.com/paw-chain/pawswap/x/amm/keeper"
	"github.com/paw-chain/pawswap/x/amm/types"
)

// NewServeCmd starts the query API over pools seeded from the config file.
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the pool query API",
		Long: `Serve the read-only pool query API. Pools are seeded from the config
file, for example:

  server:
    host: 0.0.0.0
    port: "5000"
    rate_limit_rps: 100
  pools:
    - id: paw-usdc
      base_reserve: 1000000
      token_reserve: 2000000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			params, err := poolParams(cmd)
			if err != nil {
				return err
			}

			logger := log.NewLogger(os.Stderr)

			pools, err := seedPools(v, params)
			if err != nil {
				return err
			}

			cfg := serverConfig(v)
			srv, err := api.NewServer(pools, cfg, logger)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return srv.Start(ctx)
		},
	}
	return cmd
}

// seedPools builds one bootstrapped in-memory pool per configured entry.
func seedPools(v *viper.Viper, params types.Params) (map[string]*keeper.Keeper, error) {
	entries, ok := v.Get("pools").([]any)
	if !ok || len(entries) == 0 {
		return nil, fmt.Errorf("config defines no pools")
	}

	pools := make(map[string]*keeper.Keeper, len(entries))
	for i, entry := range entries {
		m := cast.ToStringMap(entry)
		id := cast.ToString(m["id"])
		if id == "" {
			return nil, fmt.Errorf("pool %d has no id", i)
		}

		base := math.NewInt(cast.ToInt64(m["base_reserve"]))
		token := math.NewInt(cast.ToInt64(m["token_reserve"]))

		f, err := testutil.NewFixture(types.Address(id), params)
		if err != nil {
			return nil, fmt.Errorf("pool %s: %w", id, err)
		}
		if err := f.Bootstrap(types.Address(id+"-lp"), base, token); err != nil {
			return nil, fmt.Errorf("pool %s: %w", id, err)
		}
		pools[id] = f.Keeper
	}
	return pools, nil
}

func serverConfig(v *viper.Viper) *api.Config {
	cfg := api.DefaultConfig()
	if host := cast.ToString(v.Get("server.host")); host != "" {
		cfg.Host = host
	}
	if port := cast.ToString(v.Get("server.port")); port != "" {
		cfg.Port = port
	}
	if rps := cast.ToInt(v.Get("server.rate_limit_rps")); rps > 0 {
		cfg.RateLimitRPS = rps
	}
	if origins := cast.ToStringSlice(v.Get("server.cors_origins")); len(origins) > 0 {
		cfg.CORSOrigins = origins
	}
	return cfg
}
