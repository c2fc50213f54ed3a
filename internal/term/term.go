// Package term defines the lambda-calculus term tree shared by the parser,
// the De Bruijn resolver, the reducer, and the pretty-printer.
package term

import "fmt"

// Kind identifies which variant of Term a value holds.
type Kind int

const (
	// Variable is a reference to a binder (bound) or an unbound name (free).
	Variable Kind = iota
	// Abstraction is a one-parameter lambda, λ<param>. <body>.
	Abstraction
	// Application is a function applied to an argument, (applicator argument).
	Application
	// TypedAbstraction is an Abstraction carrying a parameter-type annotation
	// for the simply-typed surface syntax. The untyped reducer treats it
	// identically to Abstraction.
	TypedAbstraction
)

func (k Kind) String() string {
	switch k {
	case Variable:
		return "Variable"
	case Abstraction:
		return "Abstraction"
	case Application:
		return "Application"
	case TypedAbstraction:
		return "TypedAbstraction"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ErrWrongKind is returned by a projection function when the Term does not
// hold the variant being projected to. Reducer and printer code only ever
// calls the projections from inside a kind-guarded branch, so in practice
// this error is a contract-violation signal, not a user-facing condition.
type ErrWrongKind struct {
	Want Kind
	Got  Kind
}

func (e ErrWrongKind) Error() string {
	return fmt.Sprintf("term is not a %s (is a %s)", e.Want, e.Got)
}

// Term is a node in a lambda-calculus syntax tree. The zero Term is a
// Variable with an empty symbol and index 0 (unresolved); it is not a
// meaningful term on its own.
//
// Terms are exclusively owned, tree-shaped values: Abstraction and
// Application children are never aliased, and there is no cycle or
// back-pointer anywhere in a Term.
type Term struct {
	kind Kind

	// Variable fields.
	symbol string
	index  int

	// Abstraction / TypedAbstraction fields.
	param        string
	paramType    *Term
	body         *Term

	// Application fields.
	applicator *Term
	argument   *Term
}

// NewVariable constructs a Term holding a Variable. index should be 0 for a
// term that has not yet been through De Bruijn resolution.
func NewVariable(symbol string, index int) Term {
	return Term{kind: Variable, symbol: symbol, index: index}
}

// NewAbstraction constructs a Term holding an Abstraction.
func NewAbstraction(param string, body Term) Term {
	b := body
	return Term{kind: Abstraction, param: param, body: &b}
}

// NewTypedAbstraction constructs a Term holding a TypedAbstraction.
func NewTypedAbstraction(param string, paramType Term, body Term) Term {
	b := body
	pt := paramType
	return Term{kind: TypedAbstraction, param: param, paramType: &pt, body: &b}
}

// NewApplication constructs a Term holding an Application.
func NewApplication(applicator, argument Term) Term {
	a := applicator
	arg := argument
	return Term{kind: Application, applicator: &a, argument: &arg}
}

// Kind reports which variant t holds.
func (t Term) Kind() Kind {
	return t.kind
}

// IsValue reports whether t is in weak head normal form for call-by-value:
// true for any Abstraction (typed or not), false otherwise. This predicate
// defines the call-by-value evaluation stopping condition.
func IsValue(t Term) bool {
	return t.kind == Abstraction || t.kind == TypedAbstraction
}

// Symbol returns the Variable's name. Valid only when Kind() == Variable.
func (t Term) Symbol() string {
	return t.symbol
}

// Index returns the Variable's De Bruijn index, or 0 if unresolved. Valid
// only when Kind() == Variable.
func (t Term) Index() int {
	return t.index
}

// WithIndex returns a copy of t (which must be a Variable) with its index
// set to idx.
func (t Term) WithIndex(idx int) Term {
	t.index = idx
	return t
}

// Param returns the bound name of an Abstraction or TypedAbstraction.
func (t Term) Param() string {
	return t.param
}

// ParamType returns the parameter-type annotation of a TypedAbstraction.
// Valid only when Kind() == TypedAbstraction.
func (t Term) ParamType() Term {
	return *t.paramType
}

// Body returns the body of an Abstraction or TypedAbstraction.
func (t Term) Body() Term {
	return *t.body
}

// SetBody replaces the body of an Abstraction or TypedAbstraction in place.
func (t *Term) SetBody(body Term) {
	t.body = &body
}

// Applicator returns the left-hand side of an Application.
func (t Term) Applicator() Term {
	return *t.applicator
}

// Argument returns the right-hand side of an Application.
func (t Term) Argument() Term {
	return *t.argument
}

// SetApplicator replaces the applicator of an Application in place.
func (t *Term) SetApplicator(applicator Term) {
	t.applicator = &applicator
}

// SetArgument replaces the argument of an Application in place.
func (t *Term) SetArgument(argument Term) {
	t.argument = &argument
}

// AsVariable projects t to its Variable fields. It fails with ErrWrongKind
// if t is not a Variable.
func (t Term) AsVariable() (symbol string, index int, err error) {
	if t.kind != Variable {
		return "", 0, ErrWrongKind{Want: Variable, Got: t.kind}
	}
	return t.symbol, t.index, nil
}

// AsAbstraction projects t to its Abstraction fields (param name and body).
// It fails with ErrWrongKind if t is neither Abstraction nor
// TypedAbstraction, since the untyped reducer treats the two identically.
func (t Term) AsAbstraction() (param string, body Term, err error) {
	if t.kind != Abstraction && t.kind != TypedAbstraction {
		return "", Term{}, ErrWrongKind{Want: Abstraction, Got: t.kind}
	}
	return t.param, *t.body, nil
}

// AsApplication projects t to its Application fields. It fails with
// ErrWrongKind if t is not an Application.
func (t Term) AsApplication() (applicator, argument Term, err error) {
	if t.kind != Application {
		return Term{}, Term{}, ErrWrongKind{Want: Application, Got: t.kind}
	}
	return *t.applicator, *t.argument, nil
}

// RequireFullyTyped reports whether every Abstraction in t's tree carries a
// type annotation, i.e. is a TypedAbstraction. Used to enforce simply-typed
// surface syntax when the untyped form is not allowed.
func RequireFullyTyped(t Term) bool {
	switch t.kind {
	case Variable:
		return true
	case Abstraction:
		return false
	case TypedAbstraction:
		return RequireFullyTyped(*t.body)
	case Application:
		return RequireFullyTyped(*t.applicator) && RequireFullyTyped(*t.argument)
	default:
		return false
	}
}

// Dummy returns a sentinel Variable term used by the reducer to temporarily
// stand in for a subtree that has been taken out for rewriting. It is never
// observable outside of a single reduction step.
func Dummy() Term {
	return NewVariable("\x00dummy", -1)
}
