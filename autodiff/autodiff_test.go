package autodiff_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/gradient/autodiff"
)

func TestPublicAPI_DefaultSession(t *testing.T) {
	s := autodiff.DefaultSession()
	before := s.Count()

	x := autodiff.Declare("x")
	y := autodiff.Declare("y")
	assert.Equal(t, before, x.Index())
	assert.Equal(t, before+2, s.Count())

	f := autodiff.Add(autodiff.Mul(x, autodiff.Expr(x)), autodiff.Expr(y))
	env := autodiff.Env{"x": 3, "y": 4}

	v, g, err := autodiff.ValueAndGradient(f, env)
	require.NoError(t, err)
	assert.InDelta(t, 13, v, 1e-12)
	require.Len(t, g, s.Count())
	assert.InDelta(t, 6, g[x.Index()], 1e-12)
	assert.InDelta(t, 1, g[y.Index()], 1e-12)
}

func TestPublicAPI_Session(t *testing.T) {
	s := autodiff.NewSession()
	x := s.Declare("x")

	f := autodiff.Div(autodiff.RSub(1, x), autodiff.Expr(autodiff.Exp(autodiff.Expr(x))))
	report, err := autodiff.CheckGradient(f, autodiff.Env{"x": 0.3}, 0)
	require.NoError(t, err)
	assert.Less(t, report.MaxDiff, 1e-6)

	_, err = autodiff.Evaluate(autodiff.Log(autodiff.Expr(x)), autodiff.Env{"x": -1})
	assert.ErrorIs(t, err, autodiff.ErrDomain)
	_, err = autodiff.Gradient(x, autodiff.Env{})
	assert.ErrorIs(t, err, autodiff.ErrMissingBinding)
	_, err = autodiff.From(struct{}{})
	assert.ErrorIs(t, err, autodiff.ErrUnsupportedOperand)
}

func TestPublicAPI_Parse(t *testing.T) {
	s := autodiff.NewSession()
	n, err := autodiff.Parse(s, "x^2 * y")
	require.NoError(t, err)

	g, err := autodiff.Gradient(n, autodiff.Env{"x": 3, "y": 2})
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{12, 9}, []float64(g), 1e-12)

	_, err = autodiff.Parse(s, "x +")
	assert.ErrorIs(t, err, autodiff.ErrSyntax)
}

func TestPublicAPI_Memo(t *testing.T) {
	s := autodiff.NewSession()
	x := s.Declare("x")
	m := autodiff.NewMemo(autodiff.Pow(x, autodiff.Scalar(2)))
	shared := m.Wrap()
	f := autodiff.Mul(shared, autodiff.Expr(shared))

	v, err := autodiff.Evaluate(f, autodiff.Env{"x": 2})
	require.NoError(t, err)
	assert.InDelta(t, 16, v, 1e-12)
	assert.Equal(t, 1, m.Stats().Hits)
}
