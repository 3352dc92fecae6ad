package keeper

import (
	"cosmossdk.io/math"
)

// Reserves returns the pool's current base and token reserves: the native
// balance held by the pool and the pool's balance on the token ledger.
// No side effects.
func (k *Keeper) Reserves() (base, token math.Int) {
	return k.native.BalanceOf(k.addr), k.token.BalanceOf(k.addr)
}

// preTradeBase returns the base reserve as it stood before justReceived
// arrived. Base-input swaps receive the base asset atomically with the
// call, so quoting against the raw balance would double-count the input.
func (k *Keeper) preTradeBase(justReceived math.Int) math.Int {
	return k.native.BalanceOf(k.addr).Sub(justReceived)
}
