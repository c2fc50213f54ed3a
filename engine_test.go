package lambdaq

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dekarrin/lambdaq/internal/config"
	"github.com/dekarrin/lambdaq/internal/printer"
	"github.com/dekarrin/lambdaq/internal/reduce"
)

func newTestEngine(t *testing.T, in string) (*Engine, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	cfg := config.Config{PrintMode: printer.Named, Strategy: reduce.ByValue}
	eng, err := New(strings.NewReader(in), &out, cfg, true, "")
	require.NoError(t, err)
	return eng, &out
}

func Test_RunUntilQuit_PrintsNumberedTrace(t *testing.T) {
	eng, out := newTestEngine(t, "(λx. x) (λx. y)\n")
	require.NoError(t, eng.RunUntilQuit(nil))
	require.NoError(t, eng.Close())

	got := out.String()
	assert.Contains(t, got, ">> (λx. x) (λx. y)")
	assert.Contains(t, got, "0. (λx. x) (λx. y)")
	assert.Contains(t, got, "1. λx. y")
}

func Test_RunUntilQuit_StuckTermPrintsBanner(t *testing.T) {
	eng, out := newTestEngine(t, "x y\n")
	require.NoError(t, eng.RunUntilQuit(nil))
	require.NoError(t, eng.Close())

	got := out.String()
	assert.Contains(t, got, "stuck!")
	assert.Contains(t, got, "0. x y")
}

func Test_RunUntilQuit_ParseErrorPrintsBanner(t *testing.T) {
	eng, out := newTestEngine(t, "(λx. x\n")
	require.NoError(t, eng.RunUntilQuit(nil))
	require.NoError(t, eng.Close())

	assert.Contains(t, out.String(), "!!")
}

func Test_RunUntilQuit_StartCommandsRunBeforeInput(t *testing.T) {
	eng, out := newTestEngine(t, "")
	require.NoError(t, eng.RunUntilQuit([]string{"λx. x"}))
	require.NoError(t, eng.Close())

	assert.Contains(t, out.String(), ">> λx. x")
}
