// Package syntax implements the lambda-calculus grammar on top of the
// generic combinator kernel in internal/combinator, and the left-recursion
// guard that lets a mutually-recursive term/application/atom grammar be
// written as ordinary recursive-descent without looping.
//
// Grammar:
//
//	term        := abstraction | application | atom
//	atom        := '(' term ')' | abstraction | variable
//	abstraction := param-group+ term
//	param-group := lambda param+ '.'
//	             | lambda typed-param (',' typed-param)* '.'
//	typed-param := symbol ':' term
//	application := atom atom+
//	variable    := symbol
//
// An abstraction may chain any number of param-groups before its body, so
// "λx. λy. body" and "λx y. body" both desugar, by right fold, into the same
// nested single-parameter Abstraction chain. Multi-argument application
// left-folds into nested binary applications.
package syntax

import (
	"fmt"
	"strings"

	c "github.com/dekarrin/lambdaq/internal/combinator"
	"github.com/dekarrin/lambdaq/internal/term"
)

var lambdaSigil = c.OneOf([]c.Parser[string]{
	c.Literal("λ"),
	c.Literal("@"),
	c.Literal("\\"),
})

// variable recognizes a bare symbol as a Variable term with an unresolved
// (zero) index.
func variable(g *guard) c.Parser[term.Term] {
	return enter(g, ntVariable, func() c.Parser[term.Term] {
		return c.Map(c.Symbol, func(sym string) term.Term {
			return term.NewVariable(sym, 0)
		})
	})
}

// typedParam recognizes "symbol : term" and returns the param name together
// with its (uninterpreted) type term.
type typedParam struct {
	name string
	typ  term.Term
}

func typedParamOf(g *guard) c.Parser[typedParam] {
	return c.Map(
		c.Then(c.ThenSkip(c.Symbol, c.Literal(":")), termOf(g)),
		func(p c.Pair[string, term.Term]) typedParam {
			return typedParam{name: p.Left, typ: p.Right}
		},
	)
}

// param is one parameter slot in a lambda's parameter list: a bare name, or
// a name with a type annotation.
type param struct {
	name    string
	typ     term.Term
	hasType bool
}

// paramGroup recognizes one "lambda param-list '.'" group, either the typed
// form (comma-separated "name : type" entries) or the plain form
// (whitespace-separated bare names). A single abstraction may chain any
// number of these groups, one per lambda sigil, which is what lets
// "λx. λy. λz. body" and "λx y z. body" both desugar to the same nested
// single-parameter Abstraction chain.
func paramGroup(g *guard) c.Parser[[]param] {
	typedGroup := c.Map(
		c.AtLeast(c.ThenSkip(typedParamOf(g), c.Optional(c.Literal(","), "")), 1),
		func(ps []typedParam) []param {
			out := make([]param, len(ps))
			for i, p := range ps {
				out[i] = param{name: p.name, typ: p.typ, hasType: true}
			}
			return out
		},
	)

	plainGroup := c.Map(c.AtLeast(c.Symbol, 1), func(names []string) []param {
		out := make([]param, len(names))
		for i, n := range names {
			out[i] = param{name: n}
		}
		return out
	})

	return c.ThenSkip(
		c.SkipThen(lambdaSigil, c.OrElse(typedGroup, plainGroup)),
		c.Literal("."),
	)
}

// abstraction recognizes one or more chained lambda-sigil groups followed by
// a body term, and desugars the combined parameter list into nested
// single-parameter Abstraction (or TypedAbstraction) nodes by right fold.
// Chaining multiple groups under a single guarded call, rather than letting
// a second sigil re-enter abstraction through termOf, is what lets directly
// nested curried lambdas parse without tripping the left-recursion guard:
// the guard only ever sees one Abstraction attempt for the whole chain.
func abstraction(g *guard) c.Parser[term.Term] {
	return enter(g, ntAbstraction, func() c.Parser[term.Term] {
		return c.Map(
			c.Then(c.AtLeast(paramGroup(g), 1), termOf(g)),
			func(p c.Pair[[][]param, term.Term]) term.Term {
				var params []param
				for _, group := range p.Left {
					params = append(params, group...)
				}
				return foldParams(params, p.Right)
			},
		)
	})
}

func foldParams(params []param, body term.Term) term.Term {
	result := body
	for i := len(params) - 1; i >= 0; i-- {
		p := params[i]
		if p.hasType {
			result = term.NewTypedAbstraction(p.name, p.typ, result)
		} else {
			result = term.NewAbstraction(p.name, result)
		}
	}
	return result
}

// parens recognizes a fully parenthesized term. Only this alternative of
// atom carries the ntParens guard tag; abstraction and variable already
// guard themselves, so wrapping the whole of atom in a tag would guard
// them twice under the wrong name.
func parens(g *guard) c.Parser[term.Term] {
	return enter(g, ntParens, func() c.Parser[term.Term] {
		return c.Between(c.Literal("("), termOf(g), c.Literal(")"))
	})
}

// atom recognizes a parenthesized term, an abstraction, or a bare variable.
// It is the left-recursion guard's linchpin: application's first child is
// atom, never term directly, so application -> atom -> term (via parens) is
// the only recursive edge back to term, and that edge is guarded.
func atom(g *guard) c.Parser[term.Term] {
	return c.OneOf([]c.Parser[term.Term]{parens(g), abstraction(g), variable(g)})
}

// application recognizes two or more atoms in a row and left-folds them
// into nested binary Application nodes. It requires at least two atoms;
// term falls through to atom directly when there is only one, so a bare
// atom is never misparsed as a degenerate application.
func application(g *guard) c.Parser[term.Term] {
	return enter(g, ntApplication, func() c.Parser[term.Term] {
		return c.TryMap(c.AtLeast(atom(g), 2), func(atoms []term.Term) (term.Term, error) {
			result := atoms[0]
			for _, next := range atoms[1:] {
				result = term.NewApplication(result, next)
			}
			return result, nil
		})
	})
}

// termOf is the grammar's top-level dispatch. It is deliberately not itself
// a guarded production: the guard only needs to break the four productions
// that can recurse into termOf at the same input position (abstraction and
// application's bodies, parens' contents), not the dispatch that chooses
// among them.
func termOf(g *guard) c.Parser[term.Term] {
	return c.OneOf([]c.Parser[term.Term]{abstraction(g), application(g), atom(g)})
}

// Parse reads one lambda term from the front of src and returns it along
// with whatever text remains unconsumed. It never checks that the
// remainder is empty or blank; per the core/REPL split, that check belongs
// to the caller (see lambdaq.Engine), not the parser.
func Parse(src string) (term.Term, string, error) {
	g := newGuard()
	t, rest, err := termOf(g)(c.NewInput(src))
	if err != nil {
		return term.Term{}, "", err
	}
	return t, rest.Remaining(), nil
}

// ParseComplete is Parse plus the REPL-level trailing-input check described
// in the spec: any non-empty, non-whitespace residual after a successful
// parse is reported as a failure.
func ParseComplete(src string) (term.Term, error) {
	t, rest, err := Parse(src)
	if err != nil {
		return term.Term{}, err
	}
	if trimmed := strings.TrimSpace(rest); trimmed != "" {
		return term.Term{}, fmt.Errorf("unexpected trailing input: %q", trimmed)
	}
	return t, nil
}
