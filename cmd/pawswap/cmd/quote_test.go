package cmd_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/paw-chain/pawswap/cmd/pawswap/cmd"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	root := cmd.NewRootCmd()
	out := &bytes.Buffer{}
	root.SetOut(out)
	root.SetErr(out)
	root.SetArgs(args)

	err := root.Execute()
	return out.String(), err
}

func TestQuoteExactInput(t *testing.T) {
	out, err := execute(t, "quote", "100", "--base-reserve", "1000", "--token-reserve", "2000")
	require.NoError(t, err)
	require.Equal(t, "181", strings.TrimSpace(out))
}

func TestQuoteExactOutput(t *testing.T) {
	out, err := execute(t, "quote", "181",
		"--base-reserve", "1000", "--token-reserve", "2000", "--kind", "output")
	require.NoError(t, err)
	require.Equal(t, "100", strings.TrimSpace(out))
}

func TestQuoteTokenToBase(t *testing.T) {
	out, err := execute(t, "quote", "100",
		"--base-reserve", "1000", "--token-reserve", "2000", "--direction", "token_to_base")
	require.NoError(t, err)
	require.Equal(t, "47", strings.TrimSpace(out))
}

func TestQuoteRejectsBadInput(t *testing.T) {
	_, err := execute(t, "quote", "abc", "--base-reserve", "1000", "--token-reserve", "2000")
	require.Error(t, err)

	_, err = execute(t, "quote", "100",
		"--base-reserve", "1000", "--token-reserve", "2000", "--direction", "sideways")
	require.Error(t, err)

	// Unachievable fee settings are rejected before pricing.
	_, err = execute(t, "quote", "100",
		"--base-reserve", "1000", "--token-reserve", "2000", "--fee-numerator", "1001")
	require.Error(t, err)
}

func TestSimulateSequence(t *testing.T) {
	out, err := execute(t, "simulate", "b2t:100", "t2b:181",
		"--base-reserve", "1000", "--token-reserve", "2000", "--min-bootstrap-base", "1000")
	require.NoError(t, err)
	require.Contains(t, out, "1: b2t:100 -> 181")
	require.Contains(t, out, "final reserves:")
}

func TestSimulateRejectsBadTrade(t *testing.T) {
	_, err := execute(t, "simulate", "sideways:100",
		"--base-reserve", "1000", "--token-reserve", "2000")
	require.Error(t, err)
}
