package keeper

import (
	"time"

	"cosmossdk.io/math"

	"github.com/paw-chain/pawswap/x/amm/types"
)

// Swap entry points. Each call is a single atomic step: validate, quote
// against pre-trade reserves, enforce the caller's slippage bound, settle
// through the ledger collaborators, emit. A failed downstream transfer is
// compensated before the error is returned, so the ledgers never observe a
// half-applied swap.

// BaseToTokenSwapInput sells an exact base amount for at least minTokens,
// credited to the buyer.
func (k *Keeper) BaseToTokenSwapInput(baseSold, minTokens math.Int, deadline time.Time, buyer types.Address) (math.Int, error) {
	return k.baseToTokenInput(baseSold, minTokens, deadline, buyer, buyer)
}

// BaseToTokenTransferInput sells an exact base amount for at least
// minTokens, credited to an explicit recipient.
func (k *Keeper) BaseToTokenTransferInput(baseSold, minTokens math.Int, deadline time.Time, buyer, recipient types.Address) (math.Int, error) {
	if err := k.checkRecipient(buyer, recipient); err != nil {
		return math.ZeroInt(), err
	}
	return k.baseToTokenInput(baseSold, minTokens, deadline, buyer, recipient)
}

// BaseToTokenSwapOutput buys an exact token amount for at most maxBase,
// credited to the buyer. Returns the base actually spent; the remainder of
// maxBase is refunded before the tokens settle.
func (k *Keeper) BaseToTokenSwapOutput(tokensBought, maxBase math.Int, deadline time.Time, buyer types.Address) (math.Int, error) {
	return k.baseToTokenOutput(tokensBought, maxBase, deadline, buyer, buyer)
}

// BaseToTokenTransferOutput buys an exact token amount for at most maxBase,
// credited to an explicit recipient.
func (k *Keeper) BaseToTokenTransferOutput(tokensBought, maxBase math.Int, deadline time.Time, buyer, recipient types.Address) (math.Int, error) {
	if err := k.checkRecipient(buyer, recipient); err != nil {
		return math.ZeroInt(), err
	}
	return k.baseToTokenOutput(tokensBought, maxBase, deadline, buyer, recipient)
}

// TokenToBaseSwapInput sells an exact token amount for at least minBase,
// credited to the buyer.
func (k *Keeper) TokenToBaseSwapInput(tokensSold, minBase math.Int, deadline time.Time, buyer types.Address) (math.Int, error) {
	return k.tokenToBaseInput(tokensSold, minBase, deadline, buyer, buyer)
}

// TokenToBaseTransferInput sells an exact token amount for at least
// minBase, credited to an explicit recipient.
func (k *Keeper) TokenToBaseTransferInput(tokensSold, minBase math.Int, deadline time.Time, buyer, recipient types.Address) (math.Int, error) {
	if err := k.checkRecipient(buyer, recipient); err != nil {
		return math.ZeroInt(), err
	}
	return k.tokenToBaseInput(tokensSold, minBase, deadline, buyer, recipient)
}

// TokenToBaseSwapOutput buys an exact base amount for at most maxTokens,
// credited to the buyer. Returns the tokens actually spent.
func (k *Keeper) TokenToBaseSwapOutput(baseBought, maxTokens math.Int, deadline time.Time, buyer types.Address) (math.Int, error) {
	return k.tokenToBaseOutput(baseBought, maxTokens, deadline, buyer, buyer)
}

// TokenToBaseTransferOutput buys an exact base amount for at most
// maxTokens, credited to an explicit recipient.
func (k *Keeper) TokenToBaseTransferOutput(baseBought, maxTokens math.Int, deadline time.Time, buyer, recipient types.Address) (math.Int, error) {
	if err := k.checkRecipient(buyer, recipient); err != nil {
		return math.ZeroInt(), err
	}
	return k.tokenToBaseOutput(baseBought, maxTokens, deadline, buyer, recipient)
}

// Receive treats an unsolicited base-asset transfer as an implicit
// base-to-token exact-input swap with a minimum accepted output of 1 and
// the sender as both buyer and recipient.
func (k *Keeper) Receive(sender types.Address, baseAmount math.Int) (math.Int, error) {
	return k.baseToTokenInput(baseAmount, math.OneInt(), k.clock().Add(time.Minute), sender, sender)
}

func (k *Keeper) baseToTokenInput(baseSold, minTokens math.Int, deadline time.Time, buyer, recipient types.Address) (math.Int, error) {
	if err := k.checkDeadline(deadline); err != nil {
		return math.ZeroInt(), err
	}
	if buyer.Empty() {
		return math.ZeroInt(), types.ErrInvalidRecipient.Wrap("buyer is the null identity")
	}
	if !baseSold.IsPositive() || !minTokens.IsPositive() {
		return math.ZeroInt(), types.ErrInvalidAmount.Wrapf("base sold %s and minimum tokens %s must be positive", baseSold, minTokens)
	}

	// The base asset arrives atomically with the call.
	if err := k.native.Send(buyer, k.addr, baseSold); err != nil {
		k.recordSwap(directionBaseToToken, statusFailed)
		return math.ZeroInt(), types.ErrTransferFailed.Wrapf("receive base: %v", err)
	}

	baseReserve := k.preTradeBase(baseSold)
	tokenReserve := k.token.BalanceOf(k.addr)

	tokensBought, err := InputPrice(baseSold, baseReserve, tokenReserve, k.params)
	if err != nil {
		k.refundBase(buyer, baseSold, err)
		k.recordSwap(directionBaseToToken, statusFailed)
		return math.ZeroInt(), err
	}
	if tokensBought.LT(minTokens) {
		k.refundBase(buyer, baseSold, types.ErrBelowMinimumAccepted)
		k.recordSwap(directionBaseToToken, statusFailed)
		return math.ZeroInt(), types.ErrBelowMinimumAccepted.Wrapf("expected at least %s tokens, got %s", minTokens, tokensBought)
	}

	if !k.token.Transfer(recipient, tokensBought) {
		k.refundBase(buyer, baseSold, types.ErrTransferFailed)
		k.recordSwap(directionBaseToToken, statusFailed)
		return math.ZeroInt(), types.ErrTransferFailed.Wrapf("token transfer of %s to %s", tokensBought, recipient)
	}

	k.emitTokenPurchase(buyer, recipient, baseSold, tokensBought)
	k.recordSwap(directionBaseToToken, statusSuccess)
	if k.metrics != nil {
		k.metrics.SwapVolume.WithLabelValues(k.addr.String(), assetBase).Add(metricValue(baseSold))
	}
	k.recordReserves()
	return tokensBought, nil
}

func (k *Keeper) baseToTokenOutput(tokensBought, maxBase math.Int, deadline time.Time, buyer, recipient types.Address) (math.Int, error) {
	if err := k.checkDeadline(deadline); err != nil {
		return math.ZeroInt(), err
	}
	if buyer.Empty() {
		return math.ZeroInt(), types.ErrInvalidRecipient.Wrap("buyer is the null identity")
	}
	if !tokensBought.IsPositive() || !maxBase.IsPositive() {
		return math.ZeroInt(), types.ErrInvalidAmount.Wrapf("tokens bought %s and maximum base %s must be positive", tokensBought, maxBase)
	}

	// The caller provisionally sends maxBase; the excess over the required
	// input is refunded below.
	if err := k.native.Send(buyer, k.addr, maxBase); err != nil {
		k.recordSwap(directionBaseToToken, statusFailed)
		return math.ZeroInt(), types.ErrTransferFailed.Wrapf("receive base: %v", err)
	}

	baseReserve := k.preTradeBase(maxBase)
	tokenReserve := k.token.BalanceOf(k.addr)

	baseSold, err := OutputPrice(tokensBought, baseReserve, tokenReserve, k.params)
	if err != nil {
		k.refundBase(buyer, maxBase, err)
		k.recordSwap(directionBaseToToken, statusFailed)
		return math.ZeroInt(), err
	}
	if baseSold.GT(maxBase) {
		k.refundBase(buyer, maxBase, types.ErrExceedsMaxBase)
		k.recordSwap(directionBaseToToken, statusFailed)
		return math.ZeroInt(), types.ErrExceedsMaxBase.Wrapf("requires %s base, maximum allowed %s", baseSold, maxBase)
	}

	// Refund before settling the output side. If the refund itself fails
	// the buyer has still parted with the full maxBase, so the
	// compensation must return all of it.
	if refund := maxBase.Sub(baseSold); refund.IsPositive() {
		if err := k.native.Send(k.addr, buyer, refund); err != nil {
			k.refundBase(buyer, maxBase, err)
			k.recordSwap(directionBaseToToken, statusFailed)
			return math.ZeroInt(), types.ErrTransferFailed.Wrapf("refund excess base: %v", err)
		}
	}

	if !k.token.Transfer(recipient, tokensBought) {
		k.refundBase(buyer, baseSold, types.ErrTransferFailed)
		k.recordSwap(directionBaseToToken, statusFailed)
		return math.ZeroInt(), types.ErrTransferFailed.Wrapf("token transfer of %s to %s", tokensBought, recipient)
	}

	k.emitTokenPurchase(buyer, recipient, baseSold, tokensBought)
	k.recordSwap(directionBaseToToken, statusSuccess)
	if k.metrics != nil {
		k.metrics.SwapVolume.WithLabelValues(k.addr.String(), assetBase).Add(metricValue(baseSold))
	}
	k.recordReserves()
	return baseSold, nil
}

func (k *Keeper) tokenToBaseInput(tokensSold, minBase math.Int, deadline time.Time, buyer, recipient types.Address) (math.Int, error) {
	if err := k.checkDeadline(deadline); err != nil {
		return math.ZeroInt(), err
	}
	if buyer.Empty() {
		return math.ZeroInt(), types.ErrInvalidRecipient.Wrap("buyer is the null identity")
	}
	if !tokensSold.IsPositive() || !minBase.IsPositive() {
		return math.ZeroInt(), types.ErrInvalidAmount.Wrapf("tokens sold %s and minimum base %s must be positive", tokensSold, minBase)
	}

	baseReserve, tokenReserve := k.Reserves()

	baseBought, err := InputPrice(tokensSold, tokenReserve, baseReserve, k.params)
	if err != nil {
		k.recordSwap(directionTokenToBase, statusFailed)
		return math.ZeroInt(), err
	}
	if baseBought.LT(minBase) {
		k.recordSwap(directionTokenToBase, statusFailed)
		return math.ZeroInt(), types.ErrBelowMinimumAccepted.Wrapf("expected at least %s base, got %s", minBase, baseBought)
	}

	if !k.token.TransferFrom(buyer, k.addr, tokensSold) {
		k.recordSwap(directionTokenToBase, statusFailed)
		return math.ZeroInt(), types.ErrTransferFailed.Wrapf("token pull of %s from %s", tokensSold, buyer)
	}
	if err := k.native.Send(k.addr, recipient, baseBought); err != nil {
		k.returnTokens(buyer, tokensSold, err)
		k.recordSwap(directionTokenToBase, statusFailed)
		return math.ZeroInt(), types.ErrTransferFailed.Wrapf("send base to %s: %v", recipient, err)
	}

	k.emitBasePurchase(buyer, recipient, tokensSold, baseBought)
	k.recordSwap(directionTokenToBase, statusSuccess)
	if k.metrics != nil {
		k.metrics.SwapVolume.WithLabelValues(k.addr.String(), assetToken).Add(metricValue(tokensSold))
	}
	k.recordReserves()
	return baseBought, nil
}

func (k *Keeper) tokenToBaseOutput(baseBought, maxTokens math.Int, deadline time.Time, buyer, recipient types.Address) (math.Int, error) {
	if err := k.checkDeadline(deadline); err != nil {
		return math.ZeroInt(), err
	}
	if buyer.Empty() {
		return math.ZeroInt(), types.ErrInvalidRecipient.Wrap("buyer is the null identity")
	}
	if !baseBought.IsPositive() || !maxTokens.IsPositive() {
		return math.ZeroInt(), types.ErrInvalidAmount.Wrapf("base bought %s and maximum tokens %s must be positive", baseBought, maxTokens)
	}

	baseReserve, tokenReserve := k.Reserves()

	tokensSold, err := OutputPrice(baseBought, tokenReserve, baseReserve, k.params)
	if err != nil {
		k.recordSwap(directionTokenToBase, statusFailed)
		return math.ZeroInt(), err
	}
	if tokensSold.GT(maxTokens) {
		k.recordSwap(directionTokenToBase, statusFailed)
		return math.ZeroInt(), types.ErrExceedsMaxTokens.Wrapf("requires %s tokens, maximum allowed %s", tokensSold, maxTokens)
	}

	if !k.token.TransferFrom(buyer, k.addr, tokensSold) {
		k.recordSwap(directionTokenToBase, statusFailed)
		return math.ZeroInt(), types.ErrTransferFailed.Wrapf("token pull of %s from %s", tokensSold, buyer)
	}
	if err := k.native.Send(k.addr, recipient, baseBought); err != nil {
		k.returnTokens(buyer, tokensSold, err)
		k.recordSwap(directionTokenToBase, statusFailed)
		return math.ZeroInt(), types.ErrTransferFailed.Wrapf("send base to %s: %v", recipient, err)
	}

	k.emitBasePurchase(buyer, recipient, tokensSold, baseBought)
	k.recordSwap(directionTokenToBase, statusSuccess)
	if k.metrics != nil {
		k.metrics.SwapVolume.WithLabelValues(k.addr.String(), assetToken).Add(metricValue(tokensSold))
	}
	k.recordReserves()
	return tokensSold, nil
}

// refundBase returns base asset to its sender after an aborted swap.
func (k *Keeper) refundBase(to types.Address, amount math.Int, cause error) {
	if err := k.native.Send(k.addr, to, amount); err != nil {
		k.logger.Error("failed to return base asset after aborted swap",
			"recipient", to.String(),
			"amount", amount.String(),
			"cause", cause,
			"error", err,
		)
	}
}

// returnTokens returns pulled tokens to their owner after an aborted swap.
func (k *Keeper) returnTokens(to types.Address, amount math.Int, cause error) {
	if !k.token.Transfer(to, amount) {
		k.logger.Error("failed to return tokens after aborted swap",
			"recipient", to.String(),
			"amount", amount.String(),
			"cause", cause,
		)
	}
}

func (k *Keeper) emitTokenPurchase(buyer, recipient types.Address, baseSold, tokensBought math.Int) {
	k.events.EmitEvent(types.NewEvent(
		types.EventTypeTokenPurchase,
		types.NewAttribute(types.AttributeKeyPool, k.addr.String()),
		types.NewAttribute(types.AttributeKeyBuyer, buyer.String()),
		types.NewAttribute(types.AttributeKeyRecipient, recipient.String()),
		types.NewAttribute(types.AttributeKeyBaseSold, baseSold.String()),
		types.NewAttribute(types.AttributeKeyTokensBought, tokensBought.String()),
	))
}

func (k *Keeper) emitBasePurchase(buyer, recipient types.Address, tokensSold, baseBought math.Int) {
	k.events.EmitEvent(types.NewEvent(
		types.EventTypeBasePurchase,
		types.NewAttribute(types.AttributeKeyPool, k.addr.String()),
		types.NewAttribute(types.AttributeKeyBuyer, buyer.String()),
		types.NewAttribute(types.AttributeKeyRecipient, recipient.String()),
		types.NewAttribute(types.AttributeKeyTokensSold, tokensSold.String()),
		types.NewAttribute(types.AttributeKeyBaseBought, baseBought.String()),
	))
}
