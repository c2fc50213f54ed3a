package combinator

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// seekWhitespace advances in past any leading run of Unicode whitespace.
// literal and Symbol both call this before attempting a match so that
// combinators never have to thread whitespace-skipping through the grammar
// by hand.
func seekWhitespace(in Input) Input {
	for !in.AtEnd() {
		r, size := utf8.DecodeRuneInString(in.Remaining())
		if r == utf8.RuneError || !unicode.IsSpace(r) {
			break
		}
		in = in.advance(size)
	}
	return in
}

// Literal succeeds if the input, after skipping leading whitespace, begins
// with exactly s. It consumes s and returns it.
func Literal(s string) Parser[string] {
	return func(in Input) (string, Input, error) {
		skipped := seekWhitespace(in)
		rest := skipped.Remaining()
		if len(rest) < len(s) || rest[:len(s)] != s {
			return "", in, errAt(skipped, fmt.Sprintf("expected %q", s))
		}
		return s, skipped.advance(len(s)), nil
	}
}

// Symbol consumes one ASCII alphabetic character followed by zero or more
// ASCII alphanumerics, '-', or '_', after skipping leading whitespace. The
// matched text is normalized to Unicode NFC before being returned, so that
// two canonically-equivalent but byte-distinct spellings of the same
// identifier are treated as the same symbol by everything downstream (the
// De Bruijn resolver's free-variable map in particular).
func Symbol(in Input) (string, Input, error) {
	skipped := seekWhitespace(in)
	rest := skipped.Remaining()

	if len(rest) == 0 || !isSymbolStart(rest[0]) {
		return "", in, errAt(skipped, "expected a symbol")
	}

	n := 1
	for n < len(rest) && isSymbolCont(rest[n]) {
		n++
	}

	matched := rest[:n]
	return norm.NFC.String(matched), skipped.advance(n), nil
}

func isSymbolStart(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isSymbolCont(b byte) bool {
	return isSymbolStart(b) || (b >= '0' && b <= '9') || b == '-' || b == '_'
}
