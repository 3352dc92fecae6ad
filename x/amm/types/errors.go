package types

import (
	"cosmossdk.io/errors"
)

// Pool engine sentinel errors
var (
	ErrDeadlineExpired        = errors.Register(ModuleName, 1, "deadline expired")
	ErrInvalidAmount          = errors.Register(ModuleName, 2, "invalid amount")
	ErrInsufficientReserves   = errors.Register(ModuleName, 3, "insufficient reserves")
	ErrInsufficientLiquidity  = errors.Register(ModuleName, 4, "insufficient liquidity in pool")
	ErrExceedsMaxTokens       = errors.Register(ModuleName, 5, "required tokens exceed maximum")
	ErrExceedsMaxBase         = errors.Register(ModuleName, 6, "required base amount exceeds maximum")
	ErrBelowMinimumLiquidity  = errors.Register(ModuleName, 7, "minted units below minimum required")
	ErrBelowMinimumBase       = errors.Register(ModuleName, 8, "base amount below minimum required")
	ErrBelowMinimumTokens     = errors.Register(ModuleName, 9, "token amount below minimum required")
	ErrBelowMinimumAccepted   = errors.Register(ModuleName, 10, "output amount less than minimum accepted")
	ErrInvalidRecipient       = errors.Register(ModuleName, 11, "invalid recipient")
	ErrInvalidCounterpartPool = errors.Register(ModuleName, 12, "invalid counterpart pool")
	ErrTransferFailed         = errors.Register(ModuleName, 13, "asset transfer failed")
	ErrNoLiquidity            = errors.Register(ModuleName, 14, "pool has no liquidity")
	ErrInsufficientOwnership  = errors.Register(ModuleName, 15, "insufficient ownership units")
)
