package debruijn

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dekarrin/lambdaq/internal/syntax"
	"github.com/dekarrin/lambdaq/internal/term"
)

func resolved(t *testing.T, src string) term.Term {
	t.Helper()
	tm, err := syntax.ParseComplete(src)
	require.NoError(t, err)
	Resolve(&tm)
	return tm
}

func Test_Resolve_Identity(t *testing.T) {
	tm := resolved(t, "λx. x")
	_, body, err := tm.AsAbstraction()
	require.NoError(t, err)
	_, idx, err := body.AsVariable()
	require.NoError(t, err)
	assert.Equal(t, 1, idx)
}

func Test_Resolve_KCombinator(t *testing.T) {
	tm := resolved(t, "λx y. x")
	_, body, err := tm.AsAbstraction()
	require.NoError(t, err)
	_, inner, err := body.AsAbstraction()
	require.NoError(t, err)
	_, idx, err := inner.AsVariable()
	require.NoError(t, err)
	assert.Equal(t, 2, idx)
}

func Test_Resolve_NestedScope(t *testing.T) {
	tm := resolved(t, "λx.λy.λz. w x y z")
	_, b1, _ := tm.AsAbstraction()
	_, b2, _ := b1.AsAbstraction()
	_, body, _ := b2.AsAbstraction()

	left, z, _ := body.AsApplication()
	_, zIdx, _ := z.AsVariable()
	assert.Equal(t, 1, zIdx)

	left, y, _ := left.AsApplication()
	_, yIdx, _ := y.AsVariable()
	assert.Equal(t, 2, yIdx)

	wTerm, x, _ := left.AsApplication()
	_, xIdx, _ := x.AsVariable()
	assert.Equal(t, 3, xIdx)

	_, wIdx, _ := wTerm.AsVariable()
	assert.Equal(t, 4, wIdx)
}

func Test_Resolve_FreeVariableStability(t *testing.T) {
	tm := resolved(t, "b (λx.λy. b)")
	bOuter, rest, err := tm.AsApplication()
	require.NoError(t, err)
	_, outerIdx, err := bOuter.AsVariable()
	require.NoError(t, err)
	assert.Equal(t, 1, outerIdx)

	_, inner1, _ := rest.AsAbstraction()
	_, inner2, _ := inner1.AsAbstraction()
	_, innerIdx, err := inner2.AsVariable()
	require.NoError(t, err)
	assert.Equal(t, 3, innerIdx)
}

func Test_Resolve_ThreeDistinctFreeVars(t *testing.T) {
	tm := resolved(t, "a b c")
	ab, c, _ := tm.AsApplication()
	a, b, _ := ab.AsApplication()

	_, aIdx, _ := a.AsVariable()
	_, bIdx, _ := b.AsVariable()
	_, cIdx, _ := c.AsVariable()
	assert.Equal(t, 1, aIdx)
	assert.Equal(t, 2, bIdx)
	assert.Equal(t, 3, cIdx)
}

func Test_Resolve_Idempotent(t *testing.T) {
	tm := resolved(t, "λx y z. x z (y z)")
	before := tm
	Resolve(&tm)
	assert.Equal(t, before, tm)
}

func Test_Shift_IntoNestedBinders(t *testing.T) {
	tm := resolved(t, "λx.λy. x (y w)")
	shifted := Shift(2, tm)

	_, b1, _ := shifted.AsAbstraction()
	_, body, _ := b1.AsAbstraction()

	x, yw, _ := body.AsApplication()
	_, xIdx, _ := x.AsVariable()
	assert.Equal(t, 2, xIdx, "bound variable untouched by a shift below its own cutoff-relative index")

	y, w, _ := yw.AsApplication()
	_, yIdx, _ := y.AsVariable()
	assert.Equal(t, 1, yIdx)
	_, wIdx, _ := w.AsVariable()
	assert.Equal(t, 5, wIdx, "free variable w: 3 + shift of 2")
}

func Test_Substitute_RedexBody(t *testing.T) {
	// (λx. x) y, resolved: Abstraction(Variable(1)) applied to free Variable(1)
	tm := resolved(t, "(λx. x) y")
	_, argument, err := tm.AsApplication()
	require.NoError(t, err)

	applicator, _, err := tm.AsApplication()
	require.NoError(t, err)
	_, body, err := applicator.AsAbstraction()
	require.NoError(t, err)

	shiftedArg := Shift(1, argument)
	substituted := Substitute(1, shiftedArg, body)
	result := Shift(-1, substituted)

	_, idx, err := result.AsVariable()
	require.NoError(t, err)
	assert.Equal(t, 1, idx)
}
