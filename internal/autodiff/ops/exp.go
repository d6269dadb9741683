package ops

import (
	"math"

	"github.com/born-ml/gradient/internal/expr"
)

// Exp returns e ^ x.
//
// Forward:
//
//	value = exp(x(env))
//
// Gradient:
//
//	grad = exp(x(env)) * x'(env)
//
// A scalar x yields a detached constant node, so the result composes with
// nodes of any session.
func Exp(x Operand) *expr.Node {
	if !x.IsNode() {
		return expr.Constant(math.Exp(x.Value()))
	}
	n := x.Node()
	fx, gx := n.Evaluator(), n.Differentiator()

	return expr.NewNode(owner(n),
		func(env expr.Env) (float64, error) {
			v, err := fx(env)
			if err != nil {
				return 0, err
			}
			return math.Exp(v), nil
		},
		func(env expr.Env) (expr.Vector, error) {
			v, err := fx(env)
			if err != nil {
				return nil, err
			}
			dx, err := gx(env)
			if err != nil {
				return nil, err
			}
			return dx.Scale(math.Exp(v)), nil
		},
	)
}
