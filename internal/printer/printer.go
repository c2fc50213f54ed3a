// Package printer formats a Term back into surface syntax, in three modes
// that trade off symbol names against De Bruijn indices, with precedence-
// aware parenthesization matching the grammar in internal/syntax.
package printer

import (
	"strconv"
	"strings"

	"github.com/dekarrin/lambdaq/internal/term"
)

// Mode selects which of the three surface syntaxes Format produces.
type Mode int

const (
	// Named prints original symbols for every variable, bound or free.
	Named Mode = iota
	// Indexed prints every variable as its De Bruijn index and omits
	// parameter names from abstractions entirely.
	Indexed
	// NamelessLocals prints bound occurrences as their index (like
	// Indexed) and free occurrences by name (like Named).
	NamelessLocals
)

// Format renders t in the given mode. The outermost abstraction, if any,
// never gets wrapping parentheses; an abstraction appearing directly in
// another abstraction's body also prints without them, so a chain of
// binders reads as "λx. λy. body" rather than "λx. (λy. body)".
func Format(t term.Term, m Mode) string {
	var sb strings.Builder
	writeTerm(&sb, t, m, 0, false)
	return sb.String()
}

// depth is the current binder depth (number of enclosing abstractions),
// used by NamelessLocals to decide whether an occurrence is bound or free.
// parenthesize requests wrapping parens around whatever gets written,
// governed by the caller's precedence position.
func writeTerm(sb *strings.Builder, t term.Term, m Mode, depth int, parenthesize bool) {
	switch t.Kind() {
	case term.Variable:
		writeVariable(sb, t, m, depth)

	case term.Abstraction, term.TypedAbstraction:
		if parenthesize {
			sb.WriteByte('(')
			writeAbstraction(sb, t, m, depth)
			sb.WriteByte(')')
		} else {
			writeAbstraction(sb, t, m, depth)
		}

	case term.Application:
		if parenthesize {
			sb.WriteByte('(')
			writeApplication(sb, t, m, depth)
			sb.WriteByte(')')
		} else {
			writeApplication(sb, t, m, depth)
		}
	}
}

func writeVariable(sb *strings.Builder, t term.Term, m Mode, depth int) {
	sym, idx, _ := t.AsVariable()

	switch m {
	case Named:
		sb.WriteString(sym)
	case Indexed:
		sb.WriteString(strconv.Itoa(idx))
	case NamelessLocals:
		if idx > 0 && idx <= depth {
			sb.WriteString(strconv.Itoa(idx))
		} else {
			sb.WriteString(sym)
		}
	}
}

// writeAbstraction never wraps itself in parens; its caller decides that.
// An abstraction's body, in turn, is never parenthesized just because it is
// an abstraction: the grammar lets lambda extend as far right as possible,
// so printing strips those parens back out.
func writeAbstraction(sb *strings.Builder, t term.Term, m Mode, depth int) {
	sb.WriteByte('λ')

	if m == Named {
		sb.WriteString(t.Param())
		if t.Kind() == term.TypedAbstraction {
			sb.WriteByte(':')
			writeTerm(sb, t.ParamType(), m, depth, false)
		}
		sb.WriteString(". ")
	} else {
		// Indexed and NamelessLocals both drop the binder's own name; only
		// occurrences, not binders, distinguish the two modes.
		sb.WriteByte(' ')
	}

	body := t.Body()
	writeTerm(sb, body, m, depth+1, false)
}

// writeApplication is left-associative: "(a b) c" prints as "a b c", but an
// argument that is itself an Application must be parenthesized ("a (b c)")
// to preserve that associativity on re-parse.
func writeApplication(sb *strings.Builder, t term.Term, m Mode, depth int) {
	applicator, argument, _ := t.AsApplication()

	writeTerm(sb, applicator, m, depth, applicator.Kind() == term.Abstraction || applicator.Kind() == term.TypedAbstraction)
	sb.WriteByte(' ')
	writeTerm(sb, argument, m, depth, argument.Kind() != term.Variable)
}
