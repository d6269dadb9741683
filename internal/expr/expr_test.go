package expr

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSession_DeclareAssignsIndices(t *testing.T) {
	s := NewSession()
	x := s.Declare("x")
	y := s.Declare("y")

	assert.True(t, x.IsLeaf())
	assert.Equal(t, 0, x.Index())
	assert.Equal(t, 1, y.Index())
	assert.Equal(t, "y", y.Name())
	assert.Equal(t, 2, s.Count())
	assert.Equal(t, []string{"x", "y"}, s.Leaves())
}

func TestLeaf_GradientIsOneHot(t *testing.T) {
	s := NewSession()
	x := s.Declare("x")
	y := s.Declare("y")
	env := Env{"x": 5, "y": 2}

	gx, err := x.Grad(env)
	require.NoError(t, err)
	assert.Equal(t, Vector{1, 0}, gx)

	gy, err := y.Grad(env)
	require.NoError(t, err)
	assert.Equal(t, Vector{0, 1}, gy)
}

func TestLeaf_GradientGrowsWithLaterDeclarations(t *testing.T) {
	s := NewSession()
	x := s.Declare("x")

	g, err := x.Grad(Env{"x": 1})
	require.NoError(t, err)
	assert.Equal(t, Vector{1}, g)

	s.Declare("z")
	g2, err := x.Grad(Env{"x": 1})
	require.NoError(t, err)
	assert.Equal(t, Vector{1, 0}, g2)
	assert.Equal(t, Vector{1}, g, "earlier gradient must not be mutated")
}

func TestLeaf_MissingBinding(t *testing.T) {
	s := NewSession()
	x := s.Declare("x")

	_, err := x.Eval(Env{})
	require.ErrorIs(t, err, ErrMissingBinding)
	assert.Contains(t, err.Error(), `"x"`)

	_, err = x.Grad(Env{"y": 1})
	require.ErrorIs(t, err, ErrMissingBinding)
}

func TestLeaf_ExtraBindingsIgnored(t *testing.T) {
	s := NewSession()
	x := s.Declare("x")

	v, err := x.Eval(Env{"x": 2, "unused": 9})
	require.NoError(t, err)
	assert.Equal(t, 2.0, v)
}

func TestConst(t *testing.T) {
	s := NewSession()
	s.Declare("a")
	c := s.Const(3.5)

	v, err := c.Eval(nil)
	require.NoError(t, err)
	assert.Equal(t, 3.5, v)

	g, err := c.Grad(nil)
	require.NoError(t, err)
	assert.Equal(t, Vector{0}, g)

	s.Declare("b")
	g, err = c.Grad(nil)
	require.NoError(t, err)
	assert.Equal(t, Vector{0, 0}, g)
	assert.False(t, c.IsLeaf())
	assert.Equal(t, -1, c.Index())
}

func TestSession_ConcurrentDeclare(t *testing.T) {
	s := NewSession()
	const n = 64

	var wg sync.WaitGroup
	indices := make([]int, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			indices[i] = s.Declare("v").Index()
		}(i)
	}
	wg.Wait()

	assert.Equal(t, n, s.Count())
	seen := make(map[int]bool)
	for _, idx := range indices {
		assert.False(t, seen[idx], "duplicate index %d", idx)
		seen[idx] = true
	}
}

func TestSessions_AreIndependent(t *testing.T) {
	a := NewSession()
	b := NewSession()
	a.Declare("x")
	b.Declare("x")
	b.Declare("y")

	assert.Equal(t, 1, a.Count())
	assert.Equal(t, 2, b.Count())
	assert.NotEqual(t, a.ID(), b.ID())
}

func TestVector_Ops(t *testing.T) {
	v := Vector{1, 2}

	assert.Equal(t, Vector{2, 4}, v.Scale(2))
	assert.Equal(t, Vector{2, 2, 3}, v.Add(Vector{1, 0, 3}))
	assert.Equal(t, Vector{1, 2, 0, 0}, v.Pad(4))
	assert.Equal(t, v, v.Pad(1))
	assert.True(t, v.Equal(v.Clone()))
	assert.False(t, v.Equal(Vector{1}))
	assert.Equal(t, Vector{0, 0, 0}, Zeros(3))
	assert.Equal(t, Vector{0, 1, 0}, OneHot(1, 3))
	assert.Panics(t, func() { OneHot(3, 3) })
}

func TestConstant_IsDetached(t *testing.T) {
	c := Constant(2.5)
	assert.True(t, c.Detached())
	assert.Same(t, Default(), c.Session())
	assert.Equal(t, -1, c.Index())

	v, err := c.Eval(nil)
	require.NoError(t, err)
	assert.Equal(t, 2.5, v)

	g, err := c.Grad(nil)
	require.NoError(t, err)
	assert.Empty(t, g)

	s := NewSession()
	assert.False(t, s.Const(1).Detached())
	assert.False(t, s.Declare("x").Detached())
}
