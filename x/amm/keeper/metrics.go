package keeper

import (
	"math/big"
	"sync"

	"cosmossdk.io/math"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the pool engine
type Metrics struct {
	SwapsTotal       *prometheus.CounterVec
	SwapVolume       *prometheus.CounterVec
	LiquidityAdded   *prometheus.CounterVec
	LiquidityRemoved *prometheus.CounterVec
	PoolReserves     *prometheus.GaugeVec
	OwnershipSupply  *prometheus.GaugeVec
}

var (
	poolMetricsOnce sync.Once
	poolMetrics     *Metrics
)

// PoolMetrics creates and registers pool metrics (singleton pattern)
func PoolMetrics() *Metrics {
	poolMetricsOnce.Do(func() {
		poolMetrics = &Metrics{
			SwapsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "pawswap",
					Subsystem: "amm",
					Name:      "swaps_total",
					Help:      "Total number of swaps executed",
				},
				[]string{"pool", "direction", "status"},
			),
			SwapVolume: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "pawswap",
					Subsystem: "amm",
					Name:      "swap_volume_total",
					Help:      "Total swap input volume in asset base units",
				},
				[]string{"pool", "asset"},
			),
			LiquidityAdded: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "pawswap",
					Subsystem: "amm",
					Name:      "liquidity_added_total",
					Help:      "Total liquidity added in asset base units",
				},
				[]string{"pool", "asset"},
			),
			LiquidityRemoved: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "pawswap",
					Subsystem: "amm",
					Name:      "liquidity_removed_total",
					Help:      "Total liquidity removed in asset base units",
				},
				[]string{"pool", "asset"},
			),
			PoolReserves: promauto.NewGaugeVec(
				prometheus.GaugeOpts{
					Namespace: "pawswap",
					Subsystem: "amm",
					Name:      "pool_reserves",
					Help:      "Current pool reserves per asset",
				},
				[]string{"pool", "asset"},
			),
			OwnershipSupply: promauto.NewGaugeVec(
				prometheus.GaugeOpts{
					Namespace: "pawswap",
					Subsystem: "amm",
					Name:      "ownership_units_total",
					Help:      "Total issued ownership units",
				},
				[]string{"pool"},
			),
		}
	})
	return poolMetrics
}

const (
	directionBaseToToken = "base_to_token"
	directionTokenToBase = "token_to_base"

	statusSuccess = "success"
	statusFailed  = "failed"

	assetBase  = "base"
	assetToken = "token"
)

// metricValue converts an Int to a metric sample. Amounts for 18-decimal
// assets routinely exceed the int64 range, so the conversion must not go
// through Int64.
func metricValue(x math.Int) float64 {
	if x.IsInt64() {
		return float64(x.Int64())
	}
	f, _ := new(big.Float).SetInt(x.BigInt()).Float64()
	return f
}

func (k *Keeper) recordSwap(direction, status string) {
	if k.metrics != nil {
		k.metrics.SwapsTotal.WithLabelValues(k.addr.String(), direction, status).Inc()
	}
}

func (k *Keeper) recordReserves() {
	if k.metrics == nil {
		return
	}
	base, token := k.Reserves()
	pool := k.addr.String()
	k.metrics.PoolReserves.WithLabelValues(pool, assetBase).Set(metricValue(base))
	k.metrics.PoolReserves.WithLabelValues(pool, assetToken).Set(metricValue(token))
	k.metrics.OwnershipSupply.WithLabelValues(pool).Set(metricValue(k.shares.TotalIssued()))
}
