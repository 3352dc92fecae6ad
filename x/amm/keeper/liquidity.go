package keeper

import (
	"time"

	"cosmossdk.io/math"

	"github.com/paw-chain/pawswap/x/amm/types"
)

// AddLiquidity deposits baseSent base asset plus the matching token amount
// and mints ownership units to the provider.
//
// On an empty pool the provider bootstraps the price: the deposit must meet
// the configured dust floor, exactly maxTokens tokens are taken, and units
// minted equal the base deposited. On a funded pool the token amount is
// ceiling-biased (+1) and the minted units floored, both in the pool's
// favor; maxTokens and minUnits are the caller's slippage bounds.
func (k *Keeper) AddLiquidity(provider types.Address, baseSent, maxTokens, minUnits math.Int, deadline time.Time) (math.Int, error) {
	if err := k.checkDeadline(deadline); err != nil {
		return math.ZeroInt(), err
	}
	if provider.Empty() {
		return math.ZeroInt(), types.ErrInvalidRecipient.Wrap("provider is the null identity")
	}
	if !baseSent.IsPositive() {
		return math.ZeroInt(), types.ErrInvalidAmount.Wrapf("base amount must be positive, got %s", baseSent)
	}
	if !maxTokens.IsPositive() {
		return math.ZeroInt(), types.ErrInvalidAmount.Wrapf("token amount must be positive, got %s", maxTokens)
	}

	totalUnits := k.shares.TotalIssued()

	if totalUnits.IsZero() {
		if baseSent.LT(k.params.MinBootstrapBase) {
			return math.ZeroInt(), types.ErrInvalidAmount.Wrapf(
				"bootstrap deposit %s below minimum %s", baseSent, k.params.MinBootstrapBase)
		}

		if err := k.native.Send(provider, k.addr, baseSent); err != nil {
			return math.ZeroInt(), types.ErrTransferFailed.Wrapf("receive base: %v", err)
		}
		if !k.token.TransferFrom(provider, k.addr, maxTokens) {
			k.refundBase(provider, baseSent, types.ErrTransferFailed)
			return math.ZeroInt(), types.ErrTransferFailed.Wrapf("token pull of %s from %s", maxTokens, provider)
		}

		// First deposit fixes the initial exchange rate; units minted
		// equal the base deposited.
		k.shares.Mint(provider, baseSent)

		k.emitAddLiquidity(provider, baseSent, maxTokens, baseSent)
		k.recordLiquidity(true, baseSent, maxTokens)
		return baseSent, nil
	}

	if !minUnits.IsPositive() {
		return math.ZeroInt(), types.ErrInvalidAmount.Wrapf("minimum units must be positive, got %s", minUnits)
	}

	if err := k.native.Send(provider, k.addr, baseSent); err != nil {
		return math.ZeroInt(), types.ErrTransferFailed.Wrapf("receive base: %v", err)
	}

	baseReserve := k.preTradeBase(baseSent)
	tokenReserve := k.token.BalanceOf(k.addr)

	tokenAmount := baseSent.Mul(tokenReserve).Quo(baseReserve).AddRaw(1)
	unitsMinted := baseSent.Mul(totalUnits).Quo(baseReserve)

	if tokenAmount.GT(maxTokens) {
		k.refundBase(provider, baseSent, types.ErrExceedsMaxTokens)
		return math.ZeroInt(), types.ErrExceedsMaxTokens.Wrapf("requires %s tokens, maximum allowed %s", tokenAmount, maxTokens)
	}
	if unitsMinted.LT(minUnits) {
		k.refundBase(provider, baseSent, types.ErrBelowMinimumLiquidity)
		return math.ZeroInt(), types.ErrBelowMinimumLiquidity.Wrapf("would mint %s units, minimum accepted %s", unitsMinted, minUnits)
	}

	if !k.token.TransferFrom(provider, k.addr, tokenAmount) {
		k.refundBase(provider, baseSent, types.ErrTransferFailed)
		return math.ZeroInt(), types.ErrTransferFailed.Wrapf("token pull of %s from %s", tokenAmount, provider)
	}

	k.shares.Mint(provider, unitsMinted)

	k.emitAddLiquidity(provider, baseSent, tokenAmount, unitsMinted)
	k.recordLiquidity(true, baseSent, tokenAmount)
	return unitsMinted, nil
}

// RemoveLiquidity burns unitsToBurn ownership units from the provider and
// pays out the proportional share of both reserves, floored toward the
// pool. minBase and minTokens are the caller's withdrawal floors.
func (k *Keeper) RemoveLiquidity(provider types.Address, unitsToBurn, minBase, minTokens math.Int, deadline time.Time) (math.Int, math.Int, error) {
	if err := k.checkDeadline(deadline); err != nil {
		return math.ZeroInt(), math.ZeroInt(), err
	}
	if provider.Empty() {
		return math.ZeroInt(), math.ZeroInt(), types.ErrInvalidRecipient.Wrap("provider is the null identity")
	}
	if !unitsToBurn.IsPositive() || !minBase.IsPositive() || !minTokens.IsPositive() {
		return math.ZeroInt(), math.ZeroInt(), types.ErrInvalidAmount.Wrapf(
			"units %s and minimums %s/%s must be positive", unitsToBurn, minBase, minTokens)
	}

	totalUnits := k.shares.TotalIssued()
	if totalUnits.IsZero() {
		return math.ZeroInt(), math.ZeroInt(), types.ErrNoLiquidity.Wrap("pool has no issued ownership units")
	}

	baseReserve, tokenReserve := k.Reserves()

	baseOut := unitsToBurn.Mul(baseReserve).Quo(totalUnits)
	tokenOut := unitsToBurn.Mul(tokenReserve).Quo(totalUnits)

	if baseOut.LT(minBase) {
		return math.ZeroInt(), math.ZeroInt(), types.ErrBelowMinimumBase.Wrapf("would pay %s base, minimum accepted %s", baseOut, minBase)
	}
	if tokenOut.LT(minTokens) {
		return math.ZeroInt(), math.ZeroInt(), types.ErrBelowMinimumTokens.Wrapf("would pay %s tokens, minimum accepted %s", tokenOut, minTokens)
	}

	if err := k.shares.Burn(provider, unitsToBurn); err != nil {
		return math.ZeroInt(), math.ZeroInt(), types.ErrInsufficientOwnership.Wrapf("burn %s units from %s: %v", unitsToBurn, provider, err)
	}

	if err := k.native.Send(k.addr, provider, baseOut); err != nil {
		k.shares.Mint(provider, unitsToBurn)
		return math.ZeroInt(), math.ZeroInt(), types.ErrTransferFailed.Wrapf("send base to %s: %v", provider, err)
	}
	if !k.token.Transfer(provider, tokenOut) {
		// Re-fund the base payout and restore the burned units.
		if err := k.native.Send(provider, k.addr, baseOut); err != nil {
			k.logger.Error("failed to reclaim base payout after aborted withdrawal",
				"provider", provider.String(),
				"amount", baseOut.String(),
				"error", err,
			)
		}
		k.shares.Mint(provider, unitsToBurn)
		return math.ZeroInt(), math.ZeroInt(), types.ErrTransferFailed.Wrapf("token transfer of %s to %s", tokenOut, provider)
	}

	k.emitRemoveLiquidity(provider, baseOut, tokenOut, unitsToBurn)
	k.recordLiquidity(false, baseOut, tokenOut)
	return baseOut, tokenOut, nil
}

func (k *Keeper) emitAddLiquidity(provider types.Address, baseAmount, tokenAmount, units math.Int) {
	k.events.EmitEvent(types.NewEvent(
		types.EventTypeAddLiquidity,
		types.NewAttribute(types.AttributeKeyPool, k.addr.String()),
		types.NewAttribute(types.AttributeKeyProvider, provider.String()),
		types.NewAttribute(types.AttributeKeyBaseAmount, baseAmount.String()),
		types.NewAttribute(types.AttributeKeyTokenAmount, tokenAmount.String()),
		types.NewAttribute(types.AttributeKeyUnits, units.String()),
	))
}

func (k *Keeper) emitRemoveLiquidity(provider types.Address, baseAmount, tokenAmount, units math.Int) {
	k.events.EmitEvent(types.NewEvent(
		types.EventTypeRemoveLiquidity,
		types.NewAttribute(types.AttributeKeyPool, k.addr.String()),
		types.NewAttribute(types.AttributeKeyProvider, provider.String()),
		types.NewAttribute(types.AttributeKeyBaseAmount, baseAmount.String()),
		types.NewAttribute(types.AttributeKeyTokenAmount, tokenAmount.String()),
		types.NewAttribute(types.AttributeKeyUnits, units.String()),
	))
}

func (k *Keeper) recordLiquidity(added bool, baseAmount, tokenAmount math.Int) {
	if k.metrics == nil {
		return
	}
	pool := k.addr.String()
	vec := k.metrics.LiquidityRemoved
	if added {
		vec = k.metrics.LiquidityAdded
	}
	vec.WithLabelValues(pool, assetBase).Add(metricValue(baseAmount))
	vec.WithLabelValues(pool, assetToken).Add(metricValue(tokenAmount))
	k.recordReserves()
}
