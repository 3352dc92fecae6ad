// Package testutil provides deterministic in-memory implementations of the
// pool engine's ledger collaborators. They back the keeper tests, the HTTP
// quote service and the CLI simulator.
package testutil

import (
	"fmt"

	"cosmossdk.io/math"

	"github.com/paw-chain/pawswap/x/amm/types"
)

// Bank is an in-memory native-asset ledger.
type Bank struct {
	balances map[types.Address]math.Int
}

// NewBank returns an empty native ledger.
func NewBank() *Bank {
	return &Bank{balances: make(map[types.Address]math.Int)}
}

// Fund credits an account out of thin air.
func (b *Bank) Fund(addr types.Address, amount math.Int) {
	b.balances[addr] = b.BalanceOf(addr).Add(amount)
}

func (b *Bank) BalanceOf(addr types.Address) math.Int {
	if bal, ok := b.balances[addr]; ok {
		return bal
	}
	return math.ZeroInt()
}

func (b *Bank) Send(from, to types.Address, amount math.Int) error {
	if from.Empty() || to.Empty() {
		return fmt.Errorf("send: null identity")
	}
	if amount.IsNegative() {
		return fmt.Errorf("send: negative amount %s", amount)
	}
	bal := b.BalanceOf(from)
	if bal.LT(amount) {
		return fmt.Errorf("send: %s holds %s, needs %s", from, bal, amount)
	}
	b.balances[from] = bal.Sub(amount)
	b.balances[to] = b.BalanceOf(to).Add(amount)
	return nil
}

// Token is an in-memory fungible token ledger. Bind it to a pool address to
// obtain the pool-side TokenLedger view.
type Token struct {
	balances map[types.Address]math.Int
}

// NewToken returns an empty token ledger.
func NewToken() *Token {
	return &Token{balances: make(map[types.Address]math.Int)}
}

// Fund credits a holder out of thin air.
func (t *Token) Fund(addr types.Address, amount math.Int) {
	t.balances[addr] = t.BalanceOf(addr).Add(amount)
}

func (t *Token) BalanceOf(addr types.Address) math.Int {
	if bal, ok := t.balances[addr]; ok {
		return bal
	}
	return math.ZeroInt()
}

func (t *Token) move(from, to types.Address, amount math.Int) bool {
	if from.Empty() || to.Empty() || amount.IsNegative() {
		return false
	}
	bal := t.BalanceOf(from)
	if bal.LT(amount) {
		return false
	}
	t.balances[from] = bal.Sub(amount)
	t.balances[to] = t.BalanceOf(to).Add(amount)
	return true
}

// Bound returns the ledger as seen by one holder, who becomes the implicit
// sender of Transfer calls.
func (t *Token) Bound(owner types.Address) *BoundToken {
	return &BoundToken{ledger: t, owner: owner}
}

// BoundToken is a Token view implementing types.TokenLedger for one owner.
type BoundToken struct {
	ledger *Token
	owner  types.Address
}

func (b *BoundToken) BalanceOf(addr types.Address) math.Int {
	return b.ledger.BalanceOf(addr)
}

func (b *BoundToken) Transfer(to types.Address, amount math.Int) bool {
	return b.ledger.move(b.owner, to, amount)
}

func (b *BoundToken) TransferFrom(from, to types.Address, amount math.Int) bool {
	return b.ledger.move(from, to, amount)
}

// Shares is an in-memory ownership-unit ledger.
type Shares struct {
	balances map[types.Address]math.Int
	total    math.Int
}

// NewShares returns an empty ownership ledger.
func NewShares() *Shares {
	return &Shares{balances: make(map[types.Address]math.Int), total: math.ZeroInt()}
}

func (s *Shares) TotalIssued() math.Int {
	return s.total
}

func (s *Shares) BalanceOf(addr types.Address) math.Int {
	if bal, ok := s.balances[addr]; ok {
		return bal
	}
	return math.ZeroInt()
}

func (s *Shares) Mint(to types.Address, amount math.Int) {
	s.balances[to] = s.BalanceOf(to).Add(amount)
	s.total = s.total.Add(amount)
}

func (s *Shares) Burn(from types.Address, amount math.Int) error {
	bal := s.BalanceOf(from)
	if bal.LT(amount) {
		return fmt.Errorf("burn: %s holds %s units, needs %s", from, bal, amount)
	}
	s.balances[from] = bal.Sub(amount)
	s.total = s.total.Sub(amount)
	return nil
}
