package term

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_IsValue(t *testing.T) {
	testCases := []struct {
		name   string
		term   Term
		expect bool
	}{
		{name: "variable is not a value", term: NewVariable("x", 1), expect: false},
		{name: "abstraction is a value", term: NewAbstraction("x", NewVariable("x", 1)), expect: true},
		{
			name:   "typed abstraction is a value",
			term:   NewTypedAbstraction("x", NewVariable("Bool", 0), NewVariable("x", 1)),
			expect: true,
		},
		{
			name: "application is not a value",
			term: NewApplication(
				NewAbstraction("x", NewVariable("x", 1)),
				NewVariable("y", 1),
			),
			expect: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expect, IsValue(tc.term))
		})
	}
}

func Test_Projections_Succeed(t *testing.T) {
	assert := assert.New(t)

	v := NewVariable("x", 3)
	sym, idx, err := v.AsVariable()
	assert.NoError(err)
	assert.Equal("x", sym)
	assert.Equal(3, idx)

	abs := NewAbstraction("x", NewVariable("x", 1))
	param, body, err := abs.AsAbstraction()
	assert.NoError(err)
	assert.Equal("x", param)
	assert.Equal(NewVariable("x", 1), body)

	typedAbs := NewTypedAbstraction("x", NewVariable("Bool", 0), NewVariable("x", 1))
	param, body, err = typedAbs.AsAbstraction()
	assert.NoError(err, "untyped projection must accept TypedAbstraction too")
	assert.Equal("x", param)
	assert.Equal(NewVariable("x", 1), body)

	app := NewApplication(NewVariable("f", 1), NewVariable("a", 1))
	fn, arg, err := app.AsApplication()
	assert.NoError(err)
	assert.Equal(NewVariable("f", 1), fn)
	assert.Equal(NewVariable("a", 1), arg)
}

func Test_Projections_FailOnWrongKind(t *testing.T) {
	assert := assert.New(t)

	v := NewVariable("x", 1)

	_, _, err := v.AsAbstraction()
	assert.Error(err)
	var kindErr ErrWrongKind
	assert.ErrorAs(err, &kindErr)
	assert.Equal(Abstraction, kindErr.Want)
	assert.Equal(Variable, kindErr.Got)

	_, _, err = v.AsApplication()
	assert.Error(err)

	abs := NewAbstraction("x", v)
	_, _, err = abs.AsVariable()
	assert.Error(err)
}

func Test_MutateInPlace(t *testing.T) {
	assert := assert.New(t)

	abs := NewAbstraction("x", NewVariable("x", 1))
	abs.SetBody(NewVariable("y", 2))
	_, body, err := abs.AsAbstraction()
	assert.NoError(err)
	assert.Equal(NewVariable("y", 2), body)

	app := NewApplication(NewVariable("f", 1), NewVariable("a", 1))
	app.SetArgument(NewVariable("b", 2))
	_, arg, err := app.AsApplication()
	assert.NoError(err)
	assert.Equal(NewVariable("b", 2), arg)
}
