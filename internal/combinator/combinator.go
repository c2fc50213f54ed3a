// Package combinator is a small parser combinator kernel. A Parser[O] is a
// value that, given an Input, yields either (O, remaining Input) or a
// ParseError. All combinators in this package are backtracking: on failure
// they leave the Input they were given untouched, and OrElse is the only
// place a clone is taken before a speculative attempt.
package combinator

import "fmt"

// Input is a positioned, read-only view over a source text. It is cheap to
// copy: backtracking is implemented by taking a copy before a speculative
// parse and discarding the copy on success.
type Input struct {
	text string
	pos  int
}

// NewInput creates an Input positioned at the start of text.
func NewInput(text string) Input {
	return Input{text: text}
}

// Pos returns the current byte offset into the original text.
func (in Input) Pos() int {
	return in.pos
}

// Remaining returns the unconsumed suffix of the original text.
func (in Input) Remaining() string {
	return in.text[in.pos:]
}

// AtEnd reports whether the Input has no remaining bytes.
func (in Input) AtEnd() bool {
	return in.pos >= len(in.text)
}

func (in Input) advance(n int) Input {
	in.pos += n
	return in
}

// ParseError carries a message and the byte range in the original text that
// triggered it. A zero-length range (Start == End) means the failure was
// detected at a single position, such as unexpected end of input.
type ParseError struct {
	Message string
	Start   int
	End     int
}

func (e ParseError) Error() string {
	return fmt.Sprintf("at byte %d: %s", e.Start, e.Message)
}

func errAt(in Input, msg string) error {
	return ParseError{Message: msg, Start: in.pos, End: in.pos}
}

func errSpan(start Input, end Input, msg string) error {
	return ParseError{Message: msg, Start: start.pos, End: end.pos}
}

// Parser is a function from an Input to either a parsed output and the
// remaining Input, or an error. A Parser must never consume input on the
// failing path: on error, the returned Input is unspecified and callers
// must use the Input they passed in.
type Parser[O any] func(Input) (O, Input, error)

// Map reshapes the output of p via the pure function f.
func Map[A, B any](p Parser[A], f func(A) B) Parser[B] {
	return func(in Input) (B, Input, error) {
		a, rest, err := p(in)
		if err != nil {
			var zero B
			return zero, in, err
		}
		return f(a), rest, nil
	}
}

// TryMap is like Map but f may itself fail, in which case the whole parser
// fails without consuming input.
func TryMap[A, B any](p Parser[A], f func(A) (B, error)) Parser[B] {
	return func(in Input) (B, Input, error) {
		a, rest, err := p(in)
		if err != nil {
			var zero B
			return zero, in, err
		}
		b, err := f(a)
		if err != nil {
			var zero B
			return zero, in, err
		}
		return b, rest, nil
	}
}

// Pair is the result of Then: the output of the left parser paired with the
// output of the right one.
type Pair[A, B any] struct {
	Left  A
	Right B
}

// Then runs p then q in sequence, succeeding only if both succeed, and
// returns both results as a Pair.
func Then[A, B any](p Parser[A], q Parser[B]) Parser[Pair[A, B]] {
	return func(in Input) (Pair[A, B], Input, error) {
		a, rest, err := p(in)
		if err != nil {
			return Pair[A, B]{}, in, err
		}
		b, rest2, err := q(rest)
		if err != nil {
			return Pair[A, B]{}, in, err
		}
		return Pair[A, B]{Left: a, Right: b}, rest2, nil
	}
}

// SkipThen runs p then q, discarding p's result and returning q's.
func SkipThen[A, B any](p Parser[A], q Parser[B]) Parser[B] {
	return Map(Then(p, q), func(pr Pair[A, B]) B {
		return pr.Right
	})
}

// ThenSkip runs p then q, discarding q's result and returning p's.
func ThenSkip[A, B any](p Parser[A], q Parser[B]) Parser[A] {
	return Map(Then(p, q), func(pr Pair[A, B]) A {
		return pr.Left
	})
}

// OrElse tries p on a copy of the input; if p fails, the copy is discarded
// and q is tried on the original, unconsumed input. Whichever succeeds wins.
func OrElse[O any](p, q Parser[O]) Parser[O] {
	return func(in Input) (O, Input, error) {
		if out, rest, err := p(in); err == nil {
			return out, rest, nil
		}
		return q(in)
	}
}

// OneOf left-folds OrElse over a non-empty slice of alternatives, trying
// each in order and returning the first to succeed.
func OneOf[O any](ps []Parser[O]) Parser[O] {
	if len(ps) == 0 {
		panic("combinator.OneOf: empty alternative list")
	}
	combined := ps[0]
	for _, p := range ps[1:] {
		combined = OrElse(combined, p)
	}
	return combined
}

// AtLeast repeats p greedily, stopping at the first failure, and succeeds
// iff it collected at least n matches. The residual Input is whatever was
// left right before the failing attempt (or after the last successful one,
// if p never fails before running out of input).
func AtLeast[O any](p Parser[O], n int) Parser[[]O] {
	return func(in Input) ([]O, Input, error) {
		var out []O
		cur := in

		for {
			val, rest, err := p(cur)
			if err != nil {
				break
			}
			out = append(out, val)
			cur = rest
		}

		if len(out) < n {
			return nil, in, errAt(in, fmt.Sprintf("expected at least %d match(es), got %d", n, len(out)))
		}
		return out, cur, nil
	}
}

// Between runs l, then p, then r in sequence, returning only p's result.
func Between[L, O, R any](l Parser[L], p Parser[O], r Parser[R]) Parser[O] {
	return SkipThen(l, ThenSkip(p, r))
}

// Optional tries p; if it fails, it succeeds with the given fallback without
// consuming input.
func Optional[O any](p Parser[O], fallback O) Parser[O] {
	return func(in Input) (O, Input, error) {
		if out, rest, err := p(in); err == nil {
			return out, rest, nil
		}
		return fallback, in, nil
	}
}
