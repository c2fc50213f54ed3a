package syntax

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dekarrin/lambdaq/internal/term"
)

func Test_Parse_Variable(t *testing.T) {
	tm, rest, err := Parse("x")
	require.NoError(t, err)
	assert.Equal(t, "", rest)

	sym, idx, err := tm.AsVariable()
	require.NoError(t, err)
	assert.Equal(t, "x", sym)
	assert.Equal(t, 0, idx)
}

func Test_Parse_Identity(t *testing.T) {
	tm, err := ParseComplete("λx. x")
	require.NoError(t, err)

	param, body, err := tm.AsAbstraction()
	require.NoError(t, err)
	assert.Equal(t, "x", param)

	sym, _, err := body.AsVariable()
	require.NoError(t, err)
	assert.Equal(t, "x", sym)
}

func Test_Parse_MultiParamDesugarsToCurried(t *testing.T) {
	tm, err := ParseComplete("λx y. x")
	require.NoError(t, err)

	outerParam, outerBody, err := tm.AsAbstraction()
	require.NoError(t, err)
	assert.Equal(t, "x", outerParam)
	assert.Equal(t, term.Abstraction, outerBody.Kind())

	innerParam, _, err := outerBody.AsAbstraction()
	require.NoError(t, err)
	assert.Equal(t, "y", innerParam)
}

func Test_Parse_CurriedAbstractionsNestDirectly(t *testing.T) {
	// Two separate lambda sigils, the second nested in the first's body,
	// rather than a single multi-parameter abstraction.
	tm, err := ParseComplete("λx. λy. x y")
	require.NoError(t, err)

	outerParam, outerBody, err := tm.AsAbstraction()
	require.NoError(t, err)
	assert.Equal(t, "x", outerParam)

	innerParam, innerBody, err := outerBody.AsAbstraction()
	require.NoError(t, err)
	assert.Equal(t, "y", innerParam)
	assert.Equal(t, term.Application, innerBody.Kind())
}

func Test_Parse_KCombinator(t *testing.T) {
	tm, err := ParseComplete("λx y. x")
	require.NoError(t, err)
	assert.Equal(t, term.Abstraction, tm.Kind())
}

func Test_Parse_SCombinator(t *testing.T) {
	tm, err := ParseComplete("λx y z. x z (y z)")
	require.NoError(t, err)

	_, body1, err := tm.AsAbstraction()
	require.NoError(t, err)
	_, body2, err := body1.AsAbstraction()
	require.NoError(t, err)
	_, body3, err := body2.AsAbstraction()
	require.NoError(t, err)
	assert.Equal(t, term.Application, body3.Kind())
}

func Test_Parse_ApplicationLeftAssociative(t *testing.T) {
	tm, err := ParseComplete("x y z")
	require.NoError(t, err)

	applicator, argument, err := tm.AsApplication()
	require.NoError(t, err)
	assert.Equal(t, term.Application, applicator.Kind())

	argSym, _, err := argument.AsVariable()
	require.NoError(t, err)
	assert.Equal(t, "z", argSym)

	innerApplicator, innerArgument, err := applicator.AsApplication()
	require.NoError(t, err)
	sym1, _, err := innerApplicator.AsVariable()
	require.NoError(t, err)
	assert.Equal(t, "x", sym1)
	sym2, _, err := innerArgument.AsVariable()
	require.NoError(t, err)
	assert.Equal(t, "y", sym2)
}

func Test_Parse_Parenthesization(t *testing.T) {
	tm, err := ParseComplete("(λx. x) (λx. x)")
	require.NoError(t, err)

	applicator, argument, err := tm.AsApplication()
	require.NoError(t, err)
	assert.Equal(t, term.Abstraction, applicator.Kind())
	assert.Equal(t, term.Abstraction, argument.Kind())
}

func Test_Parse_NestedParensAtSamePosition(t *testing.T) {
	// application -> atom -> parens -> term -> application, the one edge
	// the guard must never block since it always makes genuine progress.
	tm, err := ParseComplete("(x y) z")
	require.NoError(t, err)

	applicator, _, err := tm.AsApplication()
	require.NoError(t, err)
	assert.Equal(t, term.Application, applicator.Kind())
}

func Test_Parse_DivergentTerm(t *testing.T) {
	tm, err := ParseComplete("(λx. x x) (λx. x x)")
	require.NoError(t, err)
	assert.Equal(t, term.Application, tm.Kind())
}

func Test_Parse_TypedAbstraction(t *testing.T) {
	tm, err := ParseComplete("λx: Bool. x")
	require.NoError(t, err)
	assert.Equal(t, term.TypedAbstraction, tm.Kind())

	param, body, err := tm.AsAbstraction()
	require.NoError(t, err)
	assert.Equal(t, "x", param)
	sym, _, err := body.AsVariable()
	require.NoError(t, err)
	assert.Equal(t, "x", sym)

	paramType := tm.ParamType()
	typeSym, _, err := paramType.AsVariable()
	require.NoError(t, err)
	assert.Equal(t, "Bool", typeSym)
}

func Test_Parse_TypedAbstractionMultiParam(t *testing.T) {
	tm, err := ParseComplete("λx: Bool, y: Nat. x")
	require.NoError(t, err)

	outerParam, outerBody, err := tm.AsAbstraction()
	require.NoError(t, err)
	assert.Equal(t, "x", outerParam)
	assert.Equal(t, term.TypedAbstraction, outerBody.Kind())

	innerParam, _, err := outerBody.AsAbstraction()
	require.NoError(t, err)
	assert.Equal(t, "y", innerParam)
}

func Test_Parse_TypedParamTypeCanBeNestedTerm(t *testing.T) {
	// The type annotation itself recurses through termOf while the
	// enclosing abstraction's guard slot is still set to ntAbstraction;
	// a parenthesized function-type-shaped annotation must still parse.
	tm, err := ParseComplete("λx: (λy. y). x")
	require.NoError(t, err)

	_, _, err = tm.AsAbstraction()
	require.NoError(t, err)
	assert.Equal(t, term.Abstraction, tm.ParamType().Kind())
}

func Test_Parse_EmptyInputFails(t *testing.T) {
	_, err := ParseComplete("")
	assert.Error(t, err)
}

func Test_Parse_TrailingInputFails(t *testing.T) {
	_, err := ParseComplete("x y extra (")
	assert.Error(t, err)

	_, err = ParseComplete("x )")
	assert.Error(t, err)
}

func Test_Parse_AlternateLambdaSigils(t *testing.T) {
	for _, src := range []string{"λx. x", "@x. x", "\\x. x"} {
		tm, err := ParseComplete(src)
		require.NoError(t, err, src)
		assert.Equal(t, term.Abstraction, tm.Kind(), src)
	}
}
