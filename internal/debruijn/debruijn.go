// Package debruijn converts a parsed, symbol-only Term into one whose
// Variable occurrences carry De Bruijn indices, and implements the index
// arithmetic (shift, substitute) the reducer needs to contract redexes
// without capturing free variables.
package debruijn

import "github.com/dekarrin/lambdaq/internal/term"

// Resolve walks t in place, replacing every Variable's index = 0 with its
// De Bruijn index: a positive distance to its binder for bound occurrences,
// or a stable index greater than the current scope for free ones. Resolving
// an already-resolved term is idempotent: it is only ever called once, at
// the parser/reducer boundary, so it never has to cope with a mix of
// resolved and unresolved variables in the same tree.
func Resolve(t *term.Term) {
	r := &resolver{bindings: make(map[string][]int)}
	r.walk(t, 0)
}

type resolver struct {
	bindings map[string][]int
	free     int
}

// walk resolves every Variable under t, given that t sits at currentScope
// binders deep.
func (r *resolver) walk(t *term.Term, currentScope int) {
	switch t.Kind() {
	case term.Variable:
		sym, _, _ := t.AsVariable()
		stack := r.bindings[sym]

		var bindingScope int
		if len(stack) > 0 {
			bindingScope = stack[len(stack)-1]
		} else {
			r.free++
			bindingScope = -r.free
			r.bindings[sym] = append(stack, bindingScope)
		}

		// A positive binding scope came from an enclosing Abstraction: the
		// index is a 1-based distance to that binder. A non-positive one
		// is a free-variable slot (possibly looked up again deeper in the
		// tree than where it was first assigned); it keeps using the same
		// current_scope-relative formula every time so that each printed
		// occurrence still reflects this point's actual binder depth while
		// the underlying free-slot identity stays the one assigned on
		// first sight.
		var idx int
		if bindingScope > 0 {
			idx = currentScope - bindingScope + 1
		} else {
			idx = currentScope - bindingScope
		}
		*t = t.WithIndex(idx)

	case term.Abstraction, term.TypedAbstraction:
		param, body, _ := t.AsAbstraction()
		nextScope := currentScope + 1
		r.bindings[param] = append(r.bindings[param], nextScope)
		r.walk(&body, nextScope)
		t.SetBody(body)
		r.bindings[param] = r.bindings[param][:len(r.bindings[param])-1]

	case term.Application:
		applicator, argument, _ := t.AsApplication()
		r.walk(&applicator, currentScope)
		r.walk(&argument, currentScope)
		t.SetApplicator(applicator)
		t.SetArgument(argument)
	}
}

// Shift adds k (which may be negative) to the index of every free-relative-
// to-cutoff Variable in t: every occurrence whose index is >= the initial
// cutoff of 1, incremented by 1 on each descent into an Abstraction. A
// negative shift that would take an index below zero saturates at zero
// instead; well-formed reductions never reach that case.
func Shift(k int, t term.Term) term.Term {
	return shift(k, 1, t)
}

func shift(k, cutoff int, t term.Term) term.Term {
	switch t.Kind() {
	case term.Variable:
		sym, idx, _ := t.AsVariable()
		if idx >= cutoff {
			idx += k
			if idx < 0 {
				idx = 0
			}
		}
		return term.NewVariable(sym, idx)

	case term.Abstraction:
		param, body, _ := t.AsAbstraction()
		return term.NewAbstraction(param, shift(k, cutoff+1, body))

	case term.TypedAbstraction:
		param, body, _ := t.AsAbstraction()
		return term.NewTypedAbstraction(param, t.ParamType(), shift(k, cutoff+1, body))

	case term.Application:
		applicator, argument, _ := t.AsApplication()
		return term.NewApplication(shift(k, cutoff, applicator), shift(k, cutoff, argument))
	}

	return t
}

// Substitute replaces every Variable with index == target in t by a fresh
// copy of replacement. Descending into an Abstraction shifts replacement by
// +1 and increments target by 1, so replacement's free variables remain
// valid once they land one binder deeper; both are restored on the way back
// out via ordinary call-stack discipline, not an explicit undo.
func Substitute(target int, replacement term.Term, t term.Term) term.Term {
	switch t.Kind() {
	case term.Variable:
		_, idx, _ := t.AsVariable()
		if idx == target {
			return replacement
		}
		return t

	case term.Abstraction:
		param, body, _ := t.AsAbstraction()
		return term.NewAbstraction(param, Substitute(target+1, Shift(1, replacement), body))

	case term.TypedAbstraction:
		param, body, _ := t.AsAbstraction()
		return term.NewTypedAbstraction(param, t.ParamType(), Substitute(target+1, Shift(1, replacement), body))

	case term.Application:
		applicator, argument, _ := t.AsApplication()
		return term.NewApplication(
			Substitute(target, replacement, applicator),
			Substitute(target, replacement, argument),
		)
	}

	return t
}
