package testutil

import (
	"time"

	"cosmossdk.io/log"
	"cosmossdk.io/math"

	"github.com/paw-chain/pawswap/x/amm/keeper"
	"github.com/paw-chain/pawswap/x/amm/types"
)

// Fixture bundles a pool engine with its in-memory ledgers.
type Fixture struct {
	Keeper *keeper.Keeper
	Bank   *Bank
	Token  *Token
	Shares *Shares
	Addr   types.Address
}

// NewFixture creates a pool over fresh in-memory ledgers. Additional pools
// sharing the same bank can be created with NewPool for two-hop scenarios.
func NewFixture(addr types.Address, params types.Params, opts ...keeper.Option) (*Fixture, error) {
	bank := NewBank()
	return NewPool(addr, bank, params, opts...)
}

// NewPool creates a pool with its own token and ownership ledgers over a
// shared native ledger.
func NewPool(addr types.Address, bank *Bank, params types.Params, opts ...keeper.Option) (*Fixture, error) {
	token := NewToken()
	shares := NewShares()

	k, err := keeper.NewKeeper(addr, token.Bound(addr), bank, shares, params, log.NewNopLogger(), opts...)
	if err != nil {
		return nil, err
	}
	return &Fixture{Keeper: k, Bank: bank, Token: token, Shares: shares, Addr: addr}, nil
}

// Bootstrap funds the provider and seeds the pool with the given reserves,
// minting ownership units equal to the base amount.
func (f *Fixture) Bootstrap(provider types.Address, base, token math.Int) error {
	f.Bank.Fund(provider, base)
	f.Token.Fund(provider, token)
	_, err := f.Keeper.AddLiquidity(provider, base, token, math.OneInt(), time.Now().Add(time.Hour))
	return err
}
