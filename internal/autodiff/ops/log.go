package ops

import (
	"fmt"
	"math"

	"github.com/born-ml/gradient/internal/expr"
)

// Log returns the natural logarithm of x.
//
// Forward:
//
//	value = ln(x(env))
//
// Gradient:
//
//	grad = (1 / x(env)) * x'(env)
//
// Both fail with ErrDomain when x(env) <= 0. A scalar x yields a detached
// node whose evaluation reports the same domain error.
func Log(x Operand) *expr.Node {
	if !x.IsNode() {
		c := x.Value()
		return expr.NewNode(nil,
			func(expr.Env) (float64, error) {
				return logOf(c)
			},
			func(expr.Env) (expr.Vector, error) {
				if _, err := logOf(c); err != nil {
					return nil, err
				}
				return expr.Vector{}, nil
			},
		)
	}
	n := x.Node()
	fx, gx := n.Evaluator(), n.Differentiator()

	return expr.NewNode(owner(n),
		func(env expr.Env) (float64, error) {
			v, err := fx(env)
			if err != nil {
				return 0, err
			}
			return logOf(v)
		},
		func(env expr.Env) (expr.Vector, error) {
			v, err := fx(env)
			if err != nil {
				return nil, err
			}
			if _, err := logOf(v); err != nil {
				return nil, err
			}
			dx, err := gx(env)
			if err != nil {
				return nil, err
			}
			return dx.Scale(1 / v), nil
		},
	)
}

func logOf(v float64) (float64, error) {
	if v <= 0 {
		return 0, fmt.Errorf("log of %g: %w", v, expr.ErrDomain)
	}
	return math.Log(v), nil
}
