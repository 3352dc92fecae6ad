package types_test

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	"github.com/paw-chain/pawswap/x/amm/types"
)

func TestDefaultParams(t *testing.T) {
	p := types.DefaultParams()
	require.NoError(t, p.Validate())
	require.Equal(t, math.NewInt(997), p.FeeNumerator)
	require.Equal(t, math.NewInt(1000), p.FeeDenominator)
	require.Equal(t, math.NewInt(1_000_000), p.MinBootstrapBase)
}

func TestParamsValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*types.Params)
	}{
		{"nil fee numerator", func(p *types.Params) { p.FeeNumerator = math.Int{} }},
		{"nil fee denominator", func(p *types.Params) { p.FeeDenominator = math.Int{} }},
		{"nil bootstrap floor", func(p *types.Params) { p.MinBootstrapBase = math.Int{} }},
		{"zero fee denominator", func(p *types.Params) { p.FeeDenominator = math.ZeroInt() }},
		{"zero fee numerator", func(p *types.Params) { p.FeeNumerator = math.ZeroInt() }},
		{"negative fee numerator", func(p *types.Params) { p.FeeNumerator = math.NewInt(-1) }},
		{"fee numerator equals denominator", func(p *types.Params) { p.FeeNumerator = math.NewInt(1000) }},
		{"fee numerator above denominator", func(p *types.Params) { p.FeeNumerator = math.NewInt(1001) }},
		{"zero bootstrap floor", func(p *types.Params) { p.MinBootstrapBase = math.ZeroInt() }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := types.DefaultParams()
			tc.mutate(&p)
			require.ErrorIs(t, p.Validate(), types.ErrInvalidAmount)
		})
	}
}

func TestAddressEmpty(t *testing.T) {
	require.True(t, types.Address("").Empty())
	require.False(t, types.Address("pool").Empty())
	require.Equal(t, "pool", types.Address("pool").String())
}
