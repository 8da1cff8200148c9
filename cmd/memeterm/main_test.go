package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append(args, "--env-file", filepath.Join(t.TempDir(), "missing.env")))
	err := cmd.Execute()
	return out.String(), err
}

func TestQuoteCommand(t *testing.T) {
	out, err := runCmd(t, "quote", "buy", "DOGEJR", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "DogeCoin Jr (DOGEJR)")
	assert.Contains(t, out, "8,130.08 DOGEJR")
	assert.Contains(t, out, "slippage 1%")

	out, err = runCmd(t, "quote", "sell", "DOGEJR", "7500", "--slippage-bps", "50")
	require.NoError(t, err)
	assert.Contains(t, out, "0.9225 SOL")
	assert.Contains(t, out, "slippage 0.5%")
}

func TestQuoteCommandErrors(t *testing.T) {
	_, err := runCmd(t, "quote", "hold", "DOGEJR", "1")
	assert.Error(t, err)

	_, err = runCmd(t, "quote", "buy", "NOPE", "1")
	assert.Error(t, err)

	_, err = runCmd(t, "quote", "buy", "DOGEJR")
	assert.Error(t, err)

	_, err = runCmd(t, "quote", "buy", "DOGEJR", "1", "--config", filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}
