// Package autodiff evaluates and differentiates expression nodes.
//
// Nodes are built with internal/expr (leaves) and internal/autodiff/ops
// (composites). Differentiation is forward mode: each node's differentiator
// computes the full gradient alongside the value in a single pass over the
// closures captured at construction time.
//
// Usage:
//
//	s := expr.NewSession()
//	x := s.Declare("x")
//	y := s.Declare("y")
//	f := ops.Add(ops.Mul(x, ops.Expr(x)), ops.Expr(y)) // x² + y
//
//	v, _ := autodiff.Evaluate(f, expr.Env{"x": 3, "y": 4}) // 13
//	g, _ := autodiff.Gradient(f, expr.Env{"x": 3, "y": 4}) // [6 1]
package autodiff

import (
	"fmt"

	"github.com/born-ml/gradient/internal/expr"
)

// Evaluate returns the value of n at env.
func Evaluate(n *expr.Node, env expr.Env) (float64, error) {
	if n == nil {
		return 0, fmt.Errorf("evaluate: nil node")
	}
	v, err := n.Eval(env)
	if err != nil {
		return 0, fmt.Errorf("evaluate: %w", err)
	}
	return v, nil
}

// Gradient returns the partial derivatives of n with respect to every leaf
// declared in n's session, in declaration order.
//
// The length is the session's leaf count when Gradient is called. Leaves
// declared after n was built get a zero entry.
func Gradient(n *expr.Node, env expr.Env) (expr.Vector, error) {
	if n == nil {
		return nil, fmt.Errorf("gradient: nil node")
	}
	g, err := n.Grad(env)
	if err != nil {
		return nil, fmt.Errorf("gradient: %w", err)
	}
	return g.Pad(n.Session().Count()), nil
}

// ValueAndGradient returns both the value and the gradient of n at env.
func ValueAndGradient(n *expr.Node, env expr.Env) (float64, expr.Vector, error) {
	v, err := Evaluate(n, env)
	if err != nil {
		return 0, nil, err
	}
	g, err := Gradient(n, env)
	if err != nil {
		return 0, nil, err
	}
	return v, g, nil
}

// Partial returns the derivative of n with respect to the leaf named name.
// When the name was declared more than once, the entries are summed, matching
// the value a single environment binding feeds to every such leaf.
func Partial(n *expr.Node, env expr.Env, name string) (float64, error) {
	g, err := Gradient(n, env)
	if err != nil {
		return 0, err
	}
	found := false
	var d float64
	for i, leaf := range n.Session().Leaves() {
		if leaf != name {
			continue
		}
		found = true
		if i < len(g) {
			d += g[i]
		}
	}
	if !found {
		return 0, fmt.Errorf("partial: no leaf %q declared in %s", name, n.Session())
	}
	return d, nil
}
