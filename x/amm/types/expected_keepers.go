package types

import (
	"time"

	sdkmath "cosmossdk.io/math"
)

// TokenLedger defines the expected paired-token ledger. The pool is the
// implicit sender of Transfer calls; TransferFrom pulls tokens the owner
// has made available to the pool. Both report success as a boolean, and a
// false return aborts the whole pool operation.
type TokenLedger interface {
	BalanceOf(holder Address) sdkmath.Int
	Transfer(to Address, amount sdkmath.Int) bool
	TransferFrom(from, to Address, amount sdkmath.Int) bool
}

// NativeLedger defines the expected base-asset ledger. Base asset moves
// without an approval step.
type NativeLedger interface {
	BalanceOf(holder Address) sdkmath.Int
	Send(from, to Address, amount sdkmath.Int) error
}

// LiquidityLedger defines the expected ownership-unit ledger. Burn fails
// when the holder owns fewer units than requested.
type LiquidityLedger interface {
	TotalIssued() sdkmath.Int
	BalanceOf(holder Address) sdkmath.Int
	Mint(to Address, amount sdkmath.Int)
	Burn(from Address, amount sdkmath.Int) error
}

// CounterpartPool is the interface a two-hop swap requires of the second
// pool. The engine itself satisfies it, so two pools sharing a native
// ledger compose directly.
type CounterpartPool interface {
	Addr() Address
	BaseToTokenTransferInput(baseSold, minTokens sdkmath.Int, deadline time.Time, buyer, recipient Address) (sdkmath.Int, error)
	BaseToTokenTransferOutput(tokensBought, maxBase sdkmath.Int, deadline time.Time, buyer, recipient Address) (sdkmath.Int, error)
	BaseToTokenOutputPrice(tokensBought sdkmath.Int) (sdkmath.Int, error)
}
