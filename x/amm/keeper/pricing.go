package keeper

import (
	"cosmossdk.io/math"

	"github.com/paw-chain/pawswap/x/amm/types"
)

// Pure constant-product pricing. All arithmetic is on math.Int (arbitrary
// precision), so the intermediate products reserve*reserve*feeDenominator
// cannot overflow. Rounding always favors the pool: InputPrice floors the
// output, OutputPrice rounds the required input up.

// InputPrice returns the output amount bought with an exact input amount
// against the given pre-trade reserves, fee included.
//
// out = floor(in*feeNum*reserveOut / (reserveIn*feeDen + in*feeNum))
func InputPrice(amountIn, reserveIn, reserveOut math.Int, p types.Params) (math.Int, error) {
	if !amountIn.IsPositive() {
		return math.ZeroInt(), types.ErrInvalidAmount.Wrapf("input amount must be positive, got %s", amountIn)
	}
	if !reserveIn.IsPositive() || !reserveOut.IsPositive() {
		return math.ZeroInt(), types.ErrInsufficientReserves.Wrapf("reserves must be positive, got %s/%s", reserveIn, reserveOut)
	}

	amountInWithFee := amountIn.Mul(p.FeeNumerator)
	numerator := amountInWithFee.Mul(reserveOut)
	denominator := reserveIn.Mul(p.FeeDenominator).Add(amountInWithFee)
	return numerator.Quo(denominator), nil
}

// OutputPrice returns the input amount required to buy an exact output
// amount against the given pre-trade reserves, fee included.
//
// in = floor(reserveIn*out*feeDen / ((reserveOut-out)*feeNum)) + 1
//
// The +1 rounds the required input up in the pool's favor; without it a
// trader could extract value through rounding arbitrage against the
// exact-input formula.
func OutputPrice(amountOut, reserveIn, reserveOut math.Int, p types.Params) (math.Int, error) {
	if !amountOut.IsPositive() {
		return math.ZeroInt(), types.ErrInvalidAmount.Wrapf("output amount must be positive, got %s", amountOut)
	}
	if !reserveIn.IsPositive() || !reserveOut.IsPositive() {
		return math.ZeroInt(), types.ErrInsufficientReserves.Wrapf("reserves must be positive, got %s/%s", reserveIn, reserveOut)
	}
	if amountOut.GTE(reserveOut) {
		return math.ZeroInt(), types.ErrInsufficientLiquidity.Wrapf("requested output %s >= reserve %s", amountOut, reserveOut)
	}

	numerator := reserveIn.Mul(amountOut).Mul(p.FeeDenominator)
	denominator := reserveOut.Sub(amountOut).Mul(p.FeeNumerator)
	return numerator.Quo(denominator).AddRaw(1), nil
}

// BaseToTokenInputPrice quotes the tokens bought with an exact base input.
func (k *Keeper) BaseToTokenInputPrice(baseSold math.Int) (math.Int, error) {
	base, token := k.Reserves()
	return InputPrice(baseSold, base, token, k.params)
}

// BaseToTokenOutputPrice quotes the base required to buy an exact token
// output. Satisfies the CounterpartPool price query used by two-hop swaps.
func (k *Keeper) BaseToTokenOutputPrice(tokensBought math.Int) (math.Int, error) {
	base, token := k.Reserves()
	return OutputPrice(tokensBought, base, token, k.params)
}

// TokenToBaseInputPrice quotes the base bought with an exact token input.
func (k *Keeper) TokenToBaseInputPrice(tokensSold math.Int) (math.Int, error) {
	base, token := k.Reserves()
	return InputPrice(tokensSold, token, base, k.params)
}

// TokenToBaseOutputPrice quotes the tokens required to buy an exact base
// output.
func (k *Keeper) TokenToBaseOutputPrice(baseBought math.Int) (math.Int, error) {
	base, token := k.Reserves()
	return OutputPrice(baseBought, token, base, k.params)
}
