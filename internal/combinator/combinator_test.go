package combinator

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Literal(t *testing.T) {
	testCases := []struct {
		name      string
		input     string
		literal   string
		expectOk  bool
		expectRem string
	}{
		{name: "exact match", input: "lambda", literal: "lambda", expectOk: true, expectRem: ""},
		{name: "match with leading whitespace", input: "   lambda", literal: "lambda", expectOk: true, expectRem: ""},
		{name: "match with trailing text", input: "lambda x", literal: "lambda", expectOk: true, expectRem: " x"},
		{name: "no match", input: "mu", literal: "lambda", expectOk: false},
		{name: "empty input", input: "", literal: "lambda", expectOk: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			out, rest, err := Literal(tc.literal)(NewInput(tc.input))
			if !tc.expectOk {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.literal, out)
			assert.Equal(t, tc.expectRem, rest.Remaining())
		})
	}
}

func Test_Symbol(t *testing.T) {
	testCases := []struct {
		name      string
		input     string
		expectOk  bool
		expectSym string
		expectRem string
	}{
		{name: "simple", input: "x", expectOk: true, expectSym: "x", expectRem: ""},
		{name: "multi char with digits and underscore", input: "x1_foo rest", expectOk: true, expectSym: "x1_foo", expectRem: " rest"},
		{name: "hyphenated", input: "foo-bar.", expectOk: true, expectSym: "foo-bar", expectRem: "."},
		{name: "cannot start with digit", input: "1abc", expectOk: false},
		{name: "empty", input: "", expectOk: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			out, rest, err := Symbol(NewInput(tc.input))
			if !tc.expectOk {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.expectSym, out)
			assert.Equal(t, tc.expectRem, rest.Remaining())
		})
	}
}

func Test_OrElse_DoesNotConsumeOnFailingBranch(t *testing.T) {
	p := OrElse(Literal("a"), Literal("b"))

	out, rest, err := p(NewInput("b"))
	assert.NoError(t, err)
	assert.Equal(t, "b", out)
	assert.Equal(t, "", rest.Remaining())

	_, _, err = p(NewInput("c"))
	assert.Error(t, err)
}

func Test_AtLeast(t *testing.T) {
	digit := func(in Input) (string, Input, error) {
		return Literal(strconv.Itoa(0))(in)
	}

	out, rest, err := AtLeast(digit, 1)(NewInput("000x"))
	assert.NoError(t, err)
	assert.Equal(t, []string{"0", "0", "0"}, out)
	assert.Equal(t, "x", rest.Remaining())

	_, _, err = AtLeast(digit, 1)(NewInput("x"))
	assert.Error(t, err)

	out, rest, err = AtLeast(digit, 0)(NewInput("x"))
	assert.NoError(t, err)
	assert.Empty(t, out)
	assert.Equal(t, "x", rest.Remaining())
}

func Test_Between(t *testing.T) {
	p := Between(Literal("("), Symbol, Literal(")"))

	out, rest, err := p(NewInput("(foo)bar"))
	assert.NoError(t, err)
	assert.Equal(t, "foo", out)
	assert.Equal(t, "bar", rest.Remaining())

	_, _, err = p(NewInput("(foo"))
	assert.Error(t, err)
}

func Test_Then_SkipThen_ThenSkip(t *testing.T) {
	pair := Then(Literal("a"), Literal("b"))
	out, rest, err := pair(NewInput("ab"))
	assert.NoError(t, err)
	assert.Equal(t, Pair[string, string]{Left: "a", Right: "b"}, out)
	assert.Equal(t, "", rest.Remaining())

	skipLeft := SkipThen(Literal("a"), Literal("b"))
	sOut, _, err := skipLeft(NewInput("ab"))
	assert.NoError(t, err)
	assert.Equal(t, "b", sOut)

	skipRight := ThenSkip(Literal("a"), Literal("b"))
	sOut, _, err = skipRight(NewInput("ab"))
	assert.NoError(t, err)
	assert.Equal(t, "a", sOut)
}

func Test_Map(t *testing.T) {
	p := Map(Symbol, func(s string) int { return len(s) })
	out, _, err := p(NewInput("abcd"))
	assert.NoError(t, err)
	assert.Equal(t, 4, out)
}

func Test_OneOf(t *testing.T) {
	p := OneOf([]Parser[string]{Literal("a"), Literal("b"), Literal("c")})

	for _, lit := range []string{"a", "b", "c"} {
		out, _, err := p(NewInput(lit))
		assert.NoError(t, err)
		assert.Equal(t, lit, out)
	}

	_, _, err := p(NewInput("d"))
	assert.Error(t, err)
}

func Test_BacktrackingLeavesInputUntouched(t *testing.T) {
	in := NewInput("xyz")
	_, _, err := Literal("q")(in)
	assert.Error(t, err)
	assert.Equal(t, "xyz", in.Remaining(), "failed parser must not mutate caller's Input")
}
