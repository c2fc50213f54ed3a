package syntax

import "github.com/dekarrin/lambdaq/internal/combinator"

// nonterminal tags the grammar productions that participate in the
// left-recursion guard.
type nonterminal int

const (
	ntVariable nonterminal = iota
	ntAbstraction
	ntApplication
	ntParens
)

// guard implements the left-recursion breaker described for this grammar: a
// single slot holding at most one currently-attempted nonterminal tag. It is
// not a set of everything on the call stack — entering a tag overwrites
// whatever tag was previously pending, and the previous value is restored
// when the call returns. A production is rejected only when it is asked to
// attempt itself again while it is still the most recently entered
// production at this exact call chain; once any other tag has been entered
// in between (an abstraction's body, a parenthesized subterm, an
// application's next argument), the slot no longer reads as the original
// tag and re-entry is allowed again. This is what lets application ->
// parens -> application nest to any depth while still refusing
// application -> application with nothing in between, which is the only
// case that would actually spin without consuming input.
//
// The pending value is threaded as an explicit argument through the grammar
// constructors rather than held in language-runtime thread-local state, so
// concurrent parses never share a guard.
type guard struct {
	pending *nonterminal
}

func newGuard() *guard {
	return &guard{}
}

// enter wraps build's result so that, on invocation, it fails immediately
// with "infinite recursion" if tag is the currently pending nonterminal;
// otherwise it makes tag pending for the duration of the inner parser's run
// and restores whatever was pending before on every return path.
func enter[O any](g *guard, tag nonterminal, build func() combinator.Parser[O]) combinator.Parser[O] {
	return func(in combinator.Input) (out O, rest combinator.Input, err error) {
		if g.pending != nil && *g.pending == tag {
			return out, in, combinator.ParseError{
				Message: "infinite recursion",
				Start:   in.Pos(),
				End:     in.Pos(),
			}
		}

		previous := g.pending
		g.pending = &tag
		defer func() { g.pending = previous }()

		p := build()
		return p(in)
	}
}
