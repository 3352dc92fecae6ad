package keeper

import (
	"time"

	"cosmossdk.io/log"
	"cosmossdk.io/math"

	"github.com/paw-chain/pawswap/x/amm/types"
)

// Keeper is the pool engine for a single base/token pair. It owns no asset
// state of its own: reserves are derived from the native and token ledgers,
// ownership from the liquidity ledger. Every entry point runs to completion
// or leaves all three ledgers untouched.
type Keeper struct {
	addr   types.Address
	token  types.TokenLedger
	native types.NativeLedger
	shares types.LiquidityLedger
	params types.Params

	clock   func() time.Time
	logger  log.Logger
	events  *types.EventManager
	metrics *Metrics
}

// Option configures optional keeper dependencies.
type Option func(*Keeper)

// WithClock overrides the time source used for deadline checks.
func WithClock(clock func() time.Time) Option {
	return func(k *Keeper) { k.clock = clock }
}

// WithMetrics overrides the Prometheus metrics sink.
func WithMetrics(m *Metrics) Option {
	return func(k *Keeper) { k.metrics = m }
}

// NewKeeper creates a pool engine bound permanently to one paired token
// ledger. The binding is immutable; construction fails on a null pool
// identity, missing collaborators, or invalid params.
func NewKeeper(
	addr types.Address,
	token types.TokenLedger,
	native types.NativeLedger,
	shares types.LiquidityLedger,
	params types.Params,
	logger log.Logger,
	opts ...Option,
) (*Keeper, error) {
	if addr.Empty() {
		return nil, types.ErrInvalidRecipient.Wrap("pool address must not be the null identity")
	}
	if token == nil || native == nil || shares == nil {
		return nil, types.ErrInvalidCounterpartPool.Wrap("pool requires token, native and liquidity ledgers")
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.NewNopLogger()
	}

	k := &Keeper{
		addr:    addr,
		token:   token,
		native:  native,
		shares:  shares,
		params:  params,
		clock:   time.Now,
		logger:  logger.With("module", types.ModuleName, "pool", addr.String()),
		events:  types.NewEventManager(),
		metrics: PoolMetrics(),
	}
	for _, opt := range opts {
		opt(k)
	}
	return k, nil
}

// Addr returns the pool's own identity.
func (k *Keeper) Addr() types.Address {
	return k.addr
}

// Params returns the pool configuration.
func (k *Keeper) Params() types.Params {
	return k.params
}

// TotalOwnership returns the total issued ownership units.
func (k *Keeper) TotalOwnership() math.Int {
	return k.shares.TotalIssued()
}

// OwnershipOf returns the ownership units held by an account.
func (k *Keeper) OwnershipOf(account types.Address) math.Int {
	return k.shares.BalanceOf(account)
}

// EventManager exposes the events emitted by this pool, in order.
func (k *Keeper) EventManager() *types.EventManager {
	return k.events
}

// checkDeadline fails once the current time reaches the caller's deadline.
func (k *Keeper) checkDeadline(deadline time.Time) error {
	if now := k.clock(); !now.Before(deadline) {
		return types.ErrDeadlineExpired.Wrapf("deadline %s, now %s", deadline.Format(time.RFC3339), now.Format(time.RFC3339))
	}
	return nil
}

// checkRecipient validates the explicit recipient of a transfer-variant
// swap: non-null, not the caller, not the pool itself.
func (k *Keeper) checkRecipient(buyer, recipient types.Address) error {
	if recipient.Empty() {
		return types.ErrInvalidRecipient.Wrap("recipient is the null identity")
	}
	if recipient == buyer {
		return types.ErrInvalidRecipient.Wrap("recipient must differ from the caller")
	}
	if recipient == k.addr {
		return types.ErrInvalidRecipient.Wrap("recipient must not be the pool itself")
	}
	return nil
}
