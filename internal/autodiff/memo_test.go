package autodiff

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/gradient/internal/autodiff/ops"
	"github.com/born-ml/gradient/internal/expr"
)

// countingNode wraps n and counts evaluator and differentiator calls.
func countingNode(n *expr.Node, evals, grads *int) *expr.Node {
	return expr.NewNode(n.Session(),
		func(env expr.Env) (float64, error) {
			*evals++
			return n.Eval(env)
		},
		func(env expr.Env) (expr.Vector, error) {
			*grads++
			return n.Grad(env)
		},
	)
}

func TestMemo_SharedSubexpressionComputedOnce(t *testing.T) {
	s := expr.NewSession()
	x := s.Declare("x")

	var evals, grads int
	sq := countingNode(ops.Mul(x, ops.Expr(x)), &evals, &grads)
	m := NewMemo(sq)
	shared := m.Wrap()

	f := ops.Add(shared, ops.Expr(shared))
	env := expr.Env{"x": 3}

	v, g, err := ValueAndGradient(f, env)
	require.NoError(t, err)
	assert.InDelta(t, 18, v, 1e-12)
	assert.InDeltaSlice(t, []float64{12}, g, 1e-12)
	assert.Equal(t, 1, evals)
	assert.Equal(t, 1, grads)

	stats := m.Stats()
	assert.Equal(t, 2, stats.Hits)
	assert.Equal(t, 2, stats.Misses)
	assert.Equal(t, 2, stats.Entries)
}

func TestMemo_WithoutMemoRecomputes(t *testing.T) {
	s := expr.NewSession()
	x := s.Declare("x")

	var evals, grads int
	sq := countingNode(ops.Mul(x, ops.Expr(x)), &evals, &grads)
	f := ops.Add(sq, ops.Expr(sq))

	_, err := Evaluate(f, expr.Env{"x": 3})
	require.NoError(t, err)
	assert.Equal(t, 2, evals)
}

func TestMemo_InvalidatedByNewLeaf(t *testing.T) {
	s := expr.NewSession()
	x := s.Declare("x")
	m := NewMemo(ops.Mul(x, ops.Scalar(2)))
	env := expr.Env{"x": 1}

	g, err := m.Grad(env)
	require.NoError(t, err)
	assert.Equal(t, expr.Vector{2}, g)

	s.Declare("y")
	g, err = m.Grad(env)
	require.NoError(t, err)
	assert.Equal(t, expr.Vector{2, 0}, g)
	assert.Equal(t, 0, m.Stats().Hits)
}

func TestMemo_DistinctEnvironments(t *testing.T) {
	s := expr.NewSession()
	x := s.Declare("x")
	m := NewMemo(ops.Mul(x, ops.Expr(x)))

	a, err := m.Eval(expr.Env{"x": 2})
	require.NoError(t, err)
	b, err := m.Eval(expr.Env{"x": 3})
	require.NoError(t, err)
	assert.Equal(t, 4.0, a)
	assert.Equal(t, 9.0, b)
	assert.Equal(t, 0, m.Stats().Hits)
}

func TestMemo_ErrorsNotCached(t *testing.T) {
	s := expr.NewSession()
	x := s.Declare("x")
	m := NewMemo(x)

	_, err := m.Eval(expr.Env{})
	require.ErrorIs(t, err, expr.ErrMissingBinding)
	assert.Equal(t, 0, m.Stats().Entries)
}

func TestMemo_ReturnedGradientIsACopy(t *testing.T) {
	s := expr.NewSession()
	x := s.Declare("x")
	m := NewMemo(x)
	env := expr.Env{"x": 1}

	g, err := m.Grad(env)
	require.NoError(t, err)
	g[0] = 42

	g2, err := m.Grad(env)
	require.NoError(t, err)
	assert.Equal(t, expr.Vector{1}, g2)
}

func TestMemo_Reset(t *testing.T) {
	s := expr.NewSession()
	x := s.Declare("x")
	m := NewMemo(x)

	_, err := m.Eval(expr.Env{"x": 1})
	require.NoError(t, err)
	m.Reset()
	assert.Equal(t, MemoStats{}, m.Stats())
}

func TestFingerprint(t *testing.T) {
	a := fingerprint(expr.Env{"b": 2, "a": 1}, 3)
	b := fingerprint(expr.Env{"a": 1, "b": 2}, 3)
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, fingerprint(expr.Env{"a": 1, "b": 2}, 4))
	assert.NotEqual(t, a, fingerprint(expr.Env{"a": 1, "b": 2.5}, 3))
}
