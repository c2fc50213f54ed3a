package printer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dekarrin/lambdaq/internal/debruijn"
	"github.com/dekarrin/lambdaq/internal/syntax"
	"github.com/dekarrin/lambdaq/internal/term"
)

func parseResolved(t *testing.T, src string) term.Term {
	t.Helper()
	tm, err := syntax.ParseComplete(src)
	require.NoError(t, err)
	debruijn.Resolve(&tm)
	return tm
}

func Test_Format_Indexed_EndToEndScenarios(t *testing.T) {
	testCases := []struct {
		name string
		src  string
		want string
	}{
		{"identity", "λx. x", "λ 1"},
		{"k combinator", "λx y. x", "λ λ 2"},
		{"s combinator", "λx y z. x z (y z)", "λ λ λ 3 1 (2 1)"},
		{"single free variable", "a", "1"},
		{"three distinct free vars", "a b c", "1 2 3"},
		{"repeated free var", "b (λx.λy. b)", "1 (λ λ 3)"},
		{"nested scope", "λx.λy.λz. w x y z", "λ λ λ 4 3 2 1"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tm := parseResolved(t, tc.src)
			assert.Equal(t, tc.want, Format(tm, Indexed))
		})
	}
}

func Test_Format_ShiftedTerm(t *testing.T) {
	tm := parseResolved(t, "λx.λy. x (y w)")
	shifted := debruijn.Shift(2, tm)
	assert.Equal(t, "λ λ 2 (1 5)", Format(shifted, Indexed))
}

func Test_Format_Named_StripsOutermostAndChainedParens(t *testing.T) {
	tm, err := syntax.ParseComplete("λx. λy. x y")
	require.NoError(t, err)
	assert.Equal(t, "λx. λy. x y", Format(tm, Named))
}

func Test_Format_Named_AssociativityOfApplication(t *testing.T) {
	abc, err := syntax.ParseComplete("a b c")
	require.NoError(t, err)
	assert.Equal(t, "a b c", Format(abc, Named))

	aBC, err := syntax.ParseComplete("a (b c)")
	require.NoError(t, err)
	assert.Equal(t, "a (b c)", Format(aBC, Named))
}

func Test_Format_Named_ApplicatorAbstractionNeedsParens(t *testing.T) {
	tm, err := syntax.ParseComplete("(λx. x) y")
	require.NoError(t, err)
	assert.Equal(t, "(λx. x) y", Format(tm, Named))
}

func Test_Format_NamelessLocals_BoundAsIndexFreeAsName(t *testing.T) {
	tm := parseResolved(t, "b (λx.λy. b)")
	assert.Equal(t, "b (λ λ b)", Format(tm, NamelessLocals))
}

func Test_Format_PrintModeCommutativity(t *testing.T) {
	// Indexed output must depend only on tree shape and indices, not on
	// the original symbols: two alpha-varying-only terms print identically.
	a := parseResolved(t, "λx. x")
	b := parseResolved(t, "λq. q")
	assert.Equal(t, Format(a, Indexed), Format(b, Indexed))
}

func Test_Format_TypedAbstraction(t *testing.T) {
	tm, err := syntax.ParseComplete("λx: Bool. x")
	require.NoError(t, err)
	assert.Equal(t, "λx:Bool. x", Format(tm, Named))
}

func Test_ParsePrintRoundTrip(t *testing.T) {
	sources := []string{
		"λx. x",
		"λx y. x",
		"λx y z. x z (y z)",
		"a b c",
		"a (b c)",
		"(λx. x) y",
	}

	for _, src := range sources {
		t.Run(src, func(t *testing.T) {
			tm, err := syntax.ParseComplete(src)
			require.NoError(t, err)

			printed := Format(tm, Named)
			reparsed, err := syntax.ParseComplete(printed)
			require.NoError(t, err, "printed form %q must re-parse", printed)

			assert.Equal(t, tm, reparsed)
		})
	}
}
