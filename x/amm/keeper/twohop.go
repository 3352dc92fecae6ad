package keeper

import (
	"time"

	"cosmossdk.io/math"

	"github.com/paw-chain/pawswap/x/amm/types"
)

// Two-hop token-to-token swaps. Hop (a) trades this pool's token into base
// asset, hop (b) forwards the base to the counterpart pool's base-to-token
// transfer variant with the ultimate recipient. If hop (b) fails the token
// pull from hop (a) is reverted, so from the caller's perspective the
// composed operation is all-or-nothing and both pools end as they began.

// TokenToTokenSwapInput sells an exact amount of this pool's token for the
// counterpart pool's token, credited to the buyer.
func (k *Keeper) TokenToTokenSwapInput(tokensSold, minTokensBought, minBaseBought math.Int, deadline time.Time, buyer types.Address, counterpart types.CounterpartPool) (math.Int, error) {
	return k.tokenToTokenInput(tokensSold, minTokensBought, minBaseBought, deadline, buyer, buyer, counterpart)
}

// TokenToTokenTransferInput sells an exact amount of this pool's token for
// the counterpart pool's token, credited to an explicit recipient.
func (k *Keeper) TokenToTokenTransferInput(tokensSold, minTokensBought, minBaseBought math.Int, deadline time.Time, buyer, recipient types.Address, counterpart types.CounterpartPool) (math.Int, error) {
	if err := k.checkRecipient(buyer, recipient); err != nil {
		return math.ZeroInt(), err
	}
	return k.tokenToTokenInput(tokensSold, minTokensBought, minBaseBought, deadline, buyer, recipient, counterpart)
}

// TokenToTokenSwapOutput buys an exact amount of the counterpart pool's
// token, spending at most maxTokensSold of this pool's token and at most
// maxBaseSold base asset through the middle hop. Returns the tokens spent.
func (k *Keeper) TokenToTokenSwapOutput(tokensBought, maxTokensSold, maxBaseSold math.Int, deadline time.Time, buyer types.Address, counterpart types.CounterpartPool) (math.Int, error) {
	return k.tokenToTokenOutput(tokensBought, maxTokensSold, maxBaseSold, deadline, buyer, buyer, counterpart)
}

// TokenToTokenTransferOutput buys an exact amount of the counterpart
// pool's token for an explicit recipient.
func (k *Keeper) TokenToTokenTransferOutput(tokensBought, maxTokensSold, maxBaseSold math.Int, deadline time.Time, buyer, recipient types.Address, counterpart types.CounterpartPool) (math.Int, error) {
	if err := k.checkRecipient(buyer, recipient); err != nil {
		return math.ZeroInt(), err
	}
	return k.tokenToTokenOutput(tokensBought, maxTokensSold, maxBaseSold, deadline, buyer, recipient, counterpart)
}

func (k *Keeper) checkCounterpart(counterpart types.CounterpartPool) error {
	if counterpart == nil {
		return types.ErrInvalidCounterpartPool.Wrap("counterpart pool is nil")
	}
	if counterpart.Addr().Empty() {
		return types.ErrInvalidCounterpartPool.Wrap("counterpart pool has a null identity")
	}
	if counterpart.Addr() == k.addr {
		return types.ErrInvalidCounterpartPool.Wrap("counterpart pool must not be this pool")
	}
	return nil
}

func (k *Keeper) tokenToTokenInput(tokensSold, minTokensBought, minBaseBought math.Int, deadline time.Time, buyer, recipient types.Address, counterpart types.CounterpartPool) (math.Int, error) {
	if err := k.checkDeadline(deadline); err != nil {
		return math.ZeroInt(), err
	}
	if err := k.checkCounterpart(counterpart); err != nil {
		return math.ZeroInt(), err
	}
	if buyer.Empty() {
		return math.ZeroInt(), types.ErrInvalidRecipient.Wrap("buyer is the null identity")
	}
	if !tokensSold.IsPositive() || !minTokensBought.IsPositive() || !minBaseBought.IsPositive() {
		return math.ZeroInt(), types.ErrInvalidAmount.Wrapf(
			"tokens sold %s and minimums %s/%s must be positive", tokensSold, minTokensBought, minBaseBought)
	}

	baseReserve, tokenReserve := k.Reserves()

	baseBought, err := InputPrice(tokensSold, tokenReserve, baseReserve, k.params)
	if err != nil {
		return math.ZeroInt(), err
	}
	if baseBought.LT(minBaseBought) {
		return math.ZeroInt(), types.ErrBelowMinimumAccepted.Wrapf("middle hop yields %s base, minimum accepted %s", baseBought, minBaseBought)
	}

	// Hop (a): pull the input tokens into this pool.
	if !k.token.TransferFrom(buyer, k.addr, tokensSold) {
		return math.ZeroInt(), types.ErrTransferFailed.Wrapf("token pull of %s from %s", tokensSold, buyer)
	}

	// Hop (b): forward the base to the counterpart pool. This pool pays,
	// the ultimate recipient receives.
	tokensBought, err := counterpart.BaseToTokenTransferInput(baseBought, minTokensBought, deadline, k.addr, recipient)
	if err != nil {
		k.returnTokens(buyer, tokensSold, err)
		return math.ZeroInt(), types.ErrInvalidCounterpartPool.Wrapf("second hop failed: %v", err)
	}

	k.emitBasePurchase(buyer, counterpart.Addr(), tokensSold, baseBought)
	k.recordSwap(directionTokenToBase, statusSuccess)
	k.recordReserves()
	return tokensBought, nil
}

func (k *Keeper) tokenToTokenOutput(tokensBought, maxTokensSold, maxBaseSold math.Int, deadline time.Time, buyer, recipient types.Address, counterpart types.CounterpartPool) (math.Int, error) {
	if err := k.checkDeadline(deadline); err != nil {
		return math.ZeroInt(), err
	}
	if err := k.checkCounterpart(counterpart); err != nil {
		return math.ZeroInt(), err
	}
	if buyer.Empty() {
		return math.ZeroInt(), types.ErrInvalidRecipient.Wrap("buyer is the null identity")
	}
	if !tokensBought.IsPositive() || !maxTokensSold.IsPositive() || !maxBaseSold.IsPositive() {
		return math.ZeroInt(), types.ErrInvalidAmount.Wrapf(
			"tokens bought %s and maximums %s/%s must be positive", tokensBought, maxTokensSold, maxBaseSold)
	}

	// Ask the counterpart what the final hop costs in base asset.
	baseBought, err := counterpart.BaseToTokenOutputPrice(tokensBought)
	if err != nil {
		return math.ZeroInt(), types.ErrInvalidCounterpartPool.Wrapf("counterpart price query failed: %v", err)
	}
	if baseBought.GT(maxBaseSold) {
		return math.ZeroInt(), types.ErrExceedsMaxBase.Wrapf("middle hop requires %s base, maximum allowed %s", baseBought, maxBaseSold)
	}

	baseReserve, tokenReserve := k.Reserves()

	tokensSold, err := OutputPrice(baseBought, tokenReserve, baseReserve, k.params)
	if err != nil {
		return math.ZeroInt(), err
	}
	if tokensSold.GT(maxTokensSold) {
		return math.ZeroInt(), types.ErrExceedsMaxTokens.Wrapf("requires %s tokens, maximum allowed %s", tokensSold, maxTokensSold)
	}

	if !k.token.TransferFrom(buyer, k.addr, tokensSold) {
		return math.ZeroInt(), types.ErrTransferFailed.Wrapf("token pull of %s from %s", tokensSold, buyer)
	}

	if _, err := counterpart.BaseToTokenTransferOutput(tokensBought, baseBought, deadline, k.addr, recipient); err != nil {
		k.returnTokens(buyer, tokensSold, err)
		return math.ZeroInt(), types.ErrInvalidCounterpartPool.Wrapf("second hop failed: %v", err)
	}

	k.emitBasePurchase(buyer, counterpart.Addr(), tokensSold, baseBought)
	k.recordSwap(directionTokenToBase, statusSuccess)
	k.recordReserves()
	return tokensSold, nil
}
