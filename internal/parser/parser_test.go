package parser

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/gradient/internal/autodiff"
	"github.com/born-ml/gradient/internal/expr"
)

func TestParse_ValueAndGradient(t *testing.T) {
	tests := []struct {
		src   string
		env   expr.Env
		value float64
		grad  []float64
	}{
		{"x*x + y", expr.Env{"x": 3, "y": 4}, 13, []float64{6, 1}},
		{"x^3", expr.Env{"x": 2}, 8, []float64{12}},
		{"x**3", expr.Env{"x": 2}, 8, []float64{12}},
		{"log(exp(x))", expr.Env{"x": 7}, 7, []float64{1}},
		{"1/x", expr.Env{"x": 4}, 0.25, []float64{-0.0625}},
		{"10 - x", expr.Env{"x": 4}, 6, []float64{-1}},
		{"2 * x + 1", expr.Env{"x": 4}, 9, []float64{2}},
		{"-x^2", expr.Env{"x": 3}, -9, []float64{-6}},
		{"(x + y) * (x - y)", expr.Env{"x": 3, "y": 2}, 5, []float64{6, -4}},
		{"2^3^2", nil, 512, []float64{}},
		{"x / 2 / 2", expr.Env{"x": 8}, 2, []float64{0.25}},
		{"pow(x, y)", expr.Env{"x": 2, "y": 3}, 8, []float64{12, 8 * math.Ln2}},
		{"x^y", expr.Env{"x": 2, "y": 3}, 8, []float64{12, 0}},
		{"1.5e1 * x", expr.Env{"x": 1}, 15, []float64{15}},
		{"2x", nil, 0, nil},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			s := expr.NewSession()
			n, err := Parse(s, tt.src)
			if tt.grad == nil {
				require.ErrorIs(t, err, ErrSyntax)
				return
			}
			require.NoError(t, err)

			v, g, err := autodiff.ValueAndGradient(n, tt.env)
			require.NoError(t, err)
			assert.InDelta(t, tt.value, v, 1e-9)
			assert.InDeltaSlice(t, tt.grad, []float64(g), 1e-9)
		})
	}
}

func TestParse_LeavesDeclaredInOrderOfAppearance(t *testing.T) {
	s := expr.NewSession()
	sc := NewScope(s)

	_, err := sc.Parse("b * a + b")
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a"}, s.Leaves())
	assert.Equal(t, []string{"b", "a"}, sc.Names())

	// Reusing the scope resolves known names to the same leaves.
	n, err := sc.Parse("a + c")
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a", "c"}, s.Leaves())

	g, err := autodiff.Gradient(n, expr.Env{"a": 1, "b": 1, "c": 1})
	require.NoError(t, err)
	assert.Equal(t, expr.Vector{0, 1, 1}, g)
}

func TestParse_ConstantExpression(t *testing.T) {
	s := expr.NewSession()
	n, err := Parse(s, "exp(0) + log(1)")
	require.NoError(t, err)

	v, err := autodiff.Evaluate(n, nil)
	require.NoError(t, err)
	assert.InDelta(t, 1, v, 1e-12)
	assert.Equal(t, 0, s.Count())

	bad, err := Parse(s, "log(-2)")
	require.NoError(t, err)
	_, err = autodiff.Evaluate(bad, nil)
	require.ErrorIs(t, err, expr.ErrDomain)
}

func TestParse_FailureDeclaresNothing(t *testing.T) {
	s := expr.NewSession()
	_, err := Parse(s, "x + y +")
	require.ErrorIs(t, err, ErrSyntax)
	assert.Equal(t, 0, s.Count())
	assert.Empty(t, s.Leaves())

	sc := NewScope(s)
	_, err = sc.Parse("a * b")
	require.NoError(t, err)

	for _, src := range []string{"a + c +", "c * (d", "sin(c)", "pow(c)"} {
		_, err = sc.Parse(src)
		require.ErrorIs(t, err, ErrSyntax, src)
	}
	assert.Equal(t, []string{"a", "b"}, s.Leaves())
	assert.Equal(t, []string{"a", "b"}, sc.Names())
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		src string
		pos int
	}{
		{"", 0},
		{"x +", 3},
		{"(x", 2},
		{"x $ y", 2},
		{"sin(x)", 0},
		{"exp(x, y)", 0},
		{"pow(x)", 0},
		{"x )", 2},
		{".", 0},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			_, err := Parse(expr.NewSession(), tt.src)
			require.ErrorIs(t, err, ErrSyntax)

			var perr *Error
			require.True(t, errors.As(err, &perr))
			assert.Equal(t, tt.pos, perr.Position)
		})
	}
}

func TestLexer_Numbers(t *testing.T) {
	l := newLexer("3.25 1e-3 2E+2 .5 7e")
	var got []string
	for {
		tok, err := l.next()
		require.NoError(t, err)
		if tok.typ == tokenEOF {
			break
		}
		got = append(got, tok.value)
	}
	assert.Equal(t, []string{"3.25", "1e-3", "2E+2", ".5", "7", "e"}, got)
}
