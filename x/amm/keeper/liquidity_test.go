package keeper_test

import (
	"testing"
	"time"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/paw-chain/pawswap/testutil"
	"github.com/paw-chain/pawswap/x/amm/types"
)

func TestBootstrapLiquidity(t *testing.T) {
	f, err := testutil.NewFixture(poolAddr, feeParams(), fixedClock())
	require.NoError(t, err)

	f.Bank.Fund(lp, math.NewInt(5000))
	f.Token.Fund(lp, math.NewInt(9000))

	units, err := f.Keeper.AddLiquidity(lp, math.NewInt(5000), math.NewInt(9000), math.OneInt(), deadline())
	require.NoError(t, err)

	// First deposit mints units equal to the base amount and takes
	// exactly maxTokens.
	require.Equal(t, math.NewInt(5000), units)
	require.Equal(t, math.NewInt(5000), f.Keeper.TotalOwnership())
	require.Equal(t, math.NewInt(5000), f.Keeper.OwnershipOf(lp))

	base, token := f.Keeper.Reserves()
	require.Equal(t, math.NewInt(5000), base)
	require.Equal(t, math.NewInt(9000), token)
	require.True(t, f.Token.BalanceOf(lp).IsZero())
}

func TestBootstrapBelowFloor(t *testing.T) {
	f, err := testutil.NewFixture(poolAddr, feeParams(), fixedClock())
	require.NoError(t, err)

	f.Bank.Fund(lp, math.NewInt(999))
	f.Token.Fund(lp, math.NewInt(2000))

	_, err = f.Keeper.AddLiquidity(lp, math.NewInt(999), math.NewInt(2000), math.OneInt(), deadline())
	require.ErrorIs(t, err, types.ErrInvalidAmount)

	require.Equal(t, math.NewInt(999), f.Bank.BalanceOf(lp))
	require.True(t, f.Keeper.TotalOwnership().IsZero())
}

func TestAddLiquidityProportional(t *testing.T) {
	f := newPool(t)
	f.Bank.Fund(trader, math.NewInt(500))
	f.Token.Fund(trader, math.NewInt(1001))

	units, err := f.Keeper.AddLiquidity(trader, math.NewInt(500), math.NewInt(1001), math.OneInt(), deadline())
	require.NoError(t, err)

	// Token charge is ceiling-biased (500*2000/1000 + 1), minted units
	// floored (500*1000/1000).
	require.Equal(t, math.NewInt(500), units)
	require.Equal(t, math.NewInt(500), f.Keeper.OwnershipOf(trader))
	require.Equal(t, math.NewInt(1500), f.Keeper.TotalOwnership())

	base, token := f.Keeper.Reserves()
	require.Equal(t, math.NewInt(1500), base)
	require.Equal(t, math.NewInt(3001), token)
	require.True(t, f.Token.BalanceOf(trader).IsZero())

	events := f.Keeper.EventManager().Events()
	last := events[len(events)-1]
	require.Equal(t, types.EventTypeAddLiquidity, last.Type)
	require.Contains(t, last.Attributes, types.NewAttribute(types.AttributeKeyProvider, trader.String()))
	require.Contains(t, last.Attributes, types.NewAttribute(types.AttributeKeyBaseAmount, "500"))
	require.Contains(t, last.Attributes, types.NewAttribute(types.AttributeKeyTokenAmount, "1001"))
	require.Contains(t, last.Attributes, types.NewAttribute(types.AttributeKeyUnits, "500"))
}

func TestAddLiquidityExceedsMaxTokens(t *testing.T) {
	f := newPool(t)
	f.Bank.Fund(trader, math.NewInt(500))
	f.Token.Fund(trader, math.NewInt(1001))

	_, err := f.Keeper.AddLiquidity(trader, math.NewInt(500), math.NewInt(1000), math.OneInt(), deadline())
	require.ErrorIs(t, err, types.ErrExceedsMaxTokens)

	// The provisionally received base is returned.
	require.Equal(t, math.NewInt(500), f.Bank.BalanceOf(trader))
	require.Equal(t, math.NewInt(1001), f.Token.BalanceOf(trader))

	base, token := f.Keeper.Reserves()
	require.Equal(t, math.NewInt(1000), base)
	require.Equal(t, math.NewInt(2000), token)
}

func TestAddLiquidityBelowMinimumUnits(t *testing.T) {
	f := newPool(t)
	f.Bank.Fund(trader, math.NewInt(500))
	f.Token.Fund(trader, math.NewInt(1001))

	_, err := f.Keeper.AddLiquidity(trader, math.NewInt(500), math.NewInt(1001), math.NewInt(501), deadline())
	require.ErrorIs(t, err, types.ErrBelowMinimumLiquidity)
	require.Equal(t, math.NewInt(500), f.Bank.BalanceOf(trader))
}

func TestAddLiquidityRequiresPositiveMinUnits(t *testing.T) {
	f := newPool(t)
	f.Bank.Fund(trader, math.NewInt(500))
	f.Token.Fund(trader, math.NewInt(1001))

	_, err := f.Keeper.AddLiquidity(trader, math.NewInt(500), math.NewInt(1001), math.ZeroInt(), deadline())
	require.ErrorIs(t, err, types.ErrInvalidAmount)
}

func TestAddLiquidityTokenPullFails(t *testing.T) {
	f := newPool(t)
	f.Bank.Fund(trader, math.NewInt(500))
	// No token funding: the pull must fail and the base deposit revert.

	_, err := f.Keeper.AddLiquidity(trader, math.NewInt(500), math.NewInt(1001), math.OneInt(), deadline())
	require.ErrorIs(t, err, types.ErrTransferFailed)
	require.Equal(t, math.NewInt(500), f.Bank.BalanceOf(trader))

	base, _ := f.Keeper.Reserves()
	require.Equal(t, math.NewInt(1000), base)
}

func TestAddLiquidityDeadlineExpired(t *testing.T) {
	f := newPool(t)
	f.Bank.Fund(trader, math.NewInt(500))

	_, err := f.Keeper.AddLiquidity(trader, math.NewInt(500), math.NewInt(1001), math.OneInt(), testTime)
	require.ErrorIs(t, err, types.ErrDeadlineExpired)
}

func TestRemoveLiquidity(t *testing.T) {
	f := newPool(t)
	f.Bank.Fund(trader, math.NewInt(500))
	f.Token.Fund(trader, math.NewInt(1001))
	_, err := f.Keeper.AddLiquidity(trader, math.NewInt(500), math.NewInt(1001), math.OneInt(), deadline())
	require.NoError(t, err)

	// Reserves are now 1500/3001 with 1500 units issued. Burning 500
	// units pays floor(500*1500/1500)=500 base and floor(500*3001/1500)=1000 tokens.
	baseOut, tokenOut, err := f.Keeper.RemoveLiquidity(trader, math.NewInt(500), math.OneInt(), math.OneInt(), deadline())
	require.NoError(t, err)
	require.Equal(t, math.NewInt(500), baseOut)
	require.Equal(t, math.NewInt(1000), tokenOut)

	require.Equal(t, math.NewInt(500), f.Bank.BalanceOf(trader))
	require.Equal(t, math.NewInt(1000), f.Token.BalanceOf(trader))
	require.True(t, f.Keeper.OwnershipOf(trader).IsZero())
	require.Equal(t, math.NewInt(1000), f.Keeper.TotalOwnership())

	base, token := f.Keeper.Reserves()
	require.Equal(t, math.NewInt(1000), base)
	require.Equal(t, math.NewInt(2001), token)

	events := f.Keeper.EventManager().Events()
	last := events[len(events)-1]
	require.Equal(t, types.EventTypeRemoveLiquidity, last.Type)
	require.Contains(t, last.Attributes, types.NewAttribute(types.AttributeKeyBaseAmount, "500"))
	require.Contains(t, last.Attributes, types.NewAttribute(types.AttributeKeyTokenAmount, "1000"))
	require.Contains(t, last.Attributes, types.NewAttribute(types.AttributeKeyUnits, "500"))
}

func TestRemoveLiquidityBelowMinimums(t *testing.T) {
	f := newPool(t)

	_, _, err := f.Keeper.RemoveLiquidity(lp, math.NewInt(500), math.NewInt(501), math.OneInt(), deadline())
	require.ErrorIs(t, err, types.ErrBelowMinimumBase)

	_, _, err = f.Keeper.RemoveLiquidity(lp, math.NewInt(500), math.OneInt(), math.NewInt(1001), deadline())
	require.ErrorIs(t, err, types.ErrBelowMinimumTokens)

	// Nothing was burned or paid out.
	require.Equal(t, math.NewInt(1000), f.Keeper.OwnershipOf(lp))
	base, token := f.Keeper.Reserves()
	require.Equal(t, math.NewInt(1000), base)
	require.Equal(t, math.NewInt(2000), token)
}

func TestRemoveLiquidityEmptyPool(t *testing.T) {
	f, err := testutil.NewFixture(poolAddr, feeParams(), fixedClock())
	require.NoError(t, err)

	_, _, err = f.Keeper.RemoveLiquidity(lp, math.OneInt(), math.OneInt(), math.OneInt(), deadline())
	require.ErrorIs(t, err, types.ErrNoLiquidity)
}

func TestRemoveLiquidityInsufficientOwnership(t *testing.T) {
	f := newPool(t)

	_, _, err := f.Keeper.RemoveLiquidity(trader, math.NewInt(10), math.OneInt(), math.OneInt(), deadline())
	require.ErrorIs(t, err, types.ErrInsufficientOwnership)

	base, token := f.Keeper.Reserves()
	require.Equal(t, math.NewInt(1000), base)
	require.Equal(t, math.NewInt(2000), token)
}

func TestRemoveLiquidityInvalidAmounts(t *testing.T) {
	f := newPool(t)

	_, _, err := f.Keeper.RemoveLiquidity(lp, math.ZeroInt(), math.OneInt(), math.OneInt(), deadline())
	require.ErrorIs(t, err, types.ErrInvalidAmount)

	_, _, err = f.Keeper.RemoveLiquidity(lp, math.NewInt(10), math.ZeroInt(), math.OneInt(), deadline())
	require.ErrorIs(t, err, types.ErrInvalidAmount)

	_, _, err = f.Keeper.RemoveLiquidity(lp, math.NewInt(10), math.OneInt(), math.NewInt(-1), deadline())
	require.ErrorIs(t, err, types.ErrInvalidAmount)
}

// Amounts for 18-decimal assets exceed the int64 range; the full
// deposit/swap/withdraw cycle, metrics recording included, must handle
// them.
func TestOperationsAtEighteenDecimalMagnitudes(t *testing.T) {
	f, err := testutil.NewFixture(poolAddr, feeParams(), fixedClock())
	require.NoError(t, err)

	supply := math.NewIntWithDecimal(2, 19)
	f.Bank.Fund(lp, supply)
	f.Token.Fund(lp, supply)

	units, err := f.Keeper.AddLiquidity(lp, supply, supply, math.OneInt(), deadline())
	require.NoError(t, err)
	require.Equal(t, supply, units)

	tradeSize := math.NewIntWithDecimal(1, 18)
	f.Bank.Fund(trader, tradeSize)
	bought, err := f.Keeper.BaseToTokenSwapInput(tradeSize, math.OneInt(), deadline(), trader)
	require.NoError(t, err)
	require.True(t, bought.IsPositive())

	baseOut, tokenOut, err := f.Keeper.RemoveLiquidity(lp, tradeSize, math.OneInt(), math.OneInt(), deadline())
	require.NoError(t, err)
	require.True(t, baseOut.IsPositive())
	require.True(t, tokenOut.IsPositive())
}

// A deposit followed by a full withdrawal of the minted units never pays
// out more than was put in.
func TestLiquidityRoundTripNeverProfits(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		baseReserve := rapid.Int64Range(1000, 1_000_000).Draw(rt, "baseReserve")
		tokenReserve := rapid.Int64Range(1, 1_000_000).Draw(rt, "tokenReserve")
		depositBase := rapid.Int64Range(1, 1_000_000).Draw(rt, "depositBase")

		f, err := testutil.NewFixture(poolAddr, feeParams(), fixedClock())
		require.NoError(rt, err)
		require.NoError(rt, f.Bootstrap(lp, math.NewInt(baseReserve), math.NewInt(tokenReserve)))

		f.Bank.Fund(trader, math.NewInt(depositBase))
		maxTokens := math.NewInt(depositBase).Mul(math.NewInt(tokenReserve)).Quo(math.NewInt(baseReserve)).AddRaw(1)
		f.Token.Fund(trader, maxTokens)

		units, err := f.Keeper.AddLiquidity(trader, math.NewInt(depositBase), maxTokens, math.OneInt(), testTime.Add(time.Hour))
		if err != nil {
			// Dust deposits can floor to zero units and are rejected.
			require.ErrorIs(rt, err, types.ErrBelowMinimumLiquidity)
			return
		}
		tokenCharged := maxTokens.Sub(f.Token.BalanceOf(trader))

		baseOut, tokenOut, err := f.Keeper.RemoveLiquidity(trader, units, math.OneInt(), math.OneInt(), testTime.Add(time.Hour))
		if err != nil {
			// Tiny positions can round both payouts down to zero.
			return
		}

		require.True(rt, baseOut.LTE(math.NewInt(depositBase)),
			"withdrew %s base for %d deposited", baseOut, depositBase)
		require.True(rt, tokenOut.LTE(tokenCharged),
			"withdrew %s tokens for %s deposited", tokenOut, tokenCharged)
	})
}
