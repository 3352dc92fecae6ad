package types

import (
	"cosmossdk.io/math"
)

// Params holds the pool configuration fixed at construction time.
// The swap fee is expressed as a numerator/denominator pair applied on the
// integer domain: an input of x trades as x*FeeNumerator/FeeDenominator.
type Params struct {
	FeeNumerator     math.Int
	FeeDenominator   math.Int
	MinBootstrapBase math.Int
}

// DefaultParams returns the default pool parameters: a 0.3% fee (997/1000)
// and a bootstrap dust floor of 1,000,000 base units.
func DefaultParams() Params {
	return Params{
		FeeNumerator:     math.NewInt(997),
		FeeDenominator:   math.NewInt(1000),
		MinBootstrapBase: math.NewInt(1_000_000),
	}
}

// Validate validates the set of params
func (p Params) Validate() error {
	if p.FeeNumerator.IsNil() || p.FeeDenominator.IsNil() || p.MinBootstrapBase.IsNil() {
		return ErrInvalidAmount.Wrap("params contain nil values")
	}
	if !p.FeeDenominator.IsPositive() {
		return ErrInvalidAmount.Wrapf("fee denominator must be positive, got %s", p.FeeDenominator)
	}
	if !p.FeeNumerator.IsPositive() || p.FeeNumerator.GTE(p.FeeDenominator) {
		return ErrInvalidAmount.Wrapf("fee numerator must be in (0, %s), got %s", p.FeeDenominator, p.FeeNumerator)
	}
	if !p.MinBootstrapBase.IsPositive() {
		return ErrInvalidAmount.Wrapf("minimum bootstrap base must be positive, got %s", p.MinBootstrapBase)
	}
	return nil
}
