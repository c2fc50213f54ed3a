// Package reduce implements β-reduction over resolved (De Bruijn indexed)
// terms: single-step contraction in two evaluation strategies, iteration to
// a normal form, and a tracing variant that records each intermediate term.
package reduce

import (
	"github.com/dekarrin/lambdaq/internal/debruijn"
	"github.com/dekarrin/lambdaq/internal/term"
)

// Strategy selects an evaluation order.
type Strategy int

const (
	// ByValue reduces only the leftmost-outermost redex whose applicator
	// and argument are both already values, and never descends under a
	// binder.
	ByValue Strategy = iota
	// Normalize reduces anywhere, including under binders, recursing into
	// both sides of an application eagerly rather than stopping at the
	// first non-value.
	Normalize
)

// Once performs a single contraction step on t in place, returning whether
// anything changed. It implements the leftmost-outermost search described
// for both strategies: on an Application (L A), it first tries to make
// progress in L, then in A, and only contracts the node itself once both
// sides are in the shape the strategy requires.
func Once(t *term.Term, s Strategy) bool {
	switch t.Kind() {
	case term.Variable:
		return false

	case term.Abstraction, term.TypedAbstraction:
		if s != Normalize {
			return false
		}
		body := t.Body()
		if !Once(&body, s) {
			return false
		}
		t.SetBody(body)
		return true

	case term.Application:
		applicator := t.Applicator()
		argument := t.Argument()

		if s == ByValue {
			if !term.IsValue(applicator) {
				if Once(&applicator, s) {
					t.SetApplicator(applicator)
					return true
				}
				return false
			}
			if !term.IsValue(argument) {
				if Once(&argument, s) {
					t.SetArgument(argument)
					return true
				}
				return false
			}
		} else {
			if Once(&applicator, s) {
				t.SetApplicator(applicator)
				return true
			}
			if Once(&argument, s) {
				t.SetArgument(argument)
				return true
			}
		}

		if applicator.Kind() != term.Abstraction && applicator.Kind() != term.TypedAbstraction {
			return false
		}

		_, body, _ := applicator.AsAbstraction()
		contractum := contract(body, argument)

		// Swap-with-dummy: t is replaced wholesale by the contractum, so
		// there is no stale applicator/argument left referencing the
		// pre-contraction node.
		*t = contractum
		return true
	}

	return false
}

// contract performs (λ.body) argument -> body[argument/1], the shift-
// substitute-shift sequence from the specification: the argument is
// shifted into the body's binder before substitution, and the result is
// shifted back down to account for the binder that was just consumed.
func contract(body, argument term.Term) term.Term {
	shiftedArg := debruijn.Shift(1, argument)
	substituted := debruijn.Substitute(1, shiftedArg, body)
	return debruijn.Shift(-1, substituted)
}

// Reduce iterates Once until it returns false, reporting whether at least
// one step occurred.
func Reduce(t *term.Term, s Strategy) bool {
	progressed := false
	for Once(t, s) {
		progressed = true
	}
	return progressed
}

// Trace iterates Once, recording a formatted snapshot of t after every
// successful step, until no further step is available. The returned slice
// is empty if t was already irreducible.
func Trace(t *term.Term, s Strategy, format func(term.Term) string) []string {
	var snapshots []string
	for Once(t, s) {
		snapshots = append(snapshots, format(*t))
	}
	return snapshots
}
