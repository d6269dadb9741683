package ops

import "github.com/born-ml/gradient/internal/expr"

// Mul returns a * b.
//
// Forward:
//
//	value = a(env) * b(env)
//
// Gradient (product rule):
//
//	grad = a'(env) * b(env) + a(env) * b'(env)
//
// A scalar b has a zero gradient and scales a's gradient.
func Mul(a *expr.Node, b Operand) *expr.Node {
	s := sessionOf(a, b)
	fa, ga := a.Evaluator(), a.Differentiator()

	if !b.IsNode() {
		c := b.Value()
		return expr.NewNode(s,
			func(env expr.Env) (float64, error) {
				x, err := fa(env)
				if err != nil {
					return 0, err
				}
				return x * c, nil
			},
			func(env expr.Env) (expr.Vector, error) {
				da, err := ga(env)
				if err != nil {
					return nil, err
				}
				return da.Scale(c), nil
			},
		)
	}

	fb, gb := b.Node().Evaluator(), b.Node().Differentiator()
	return expr.NewNode(s,
		func(env expr.Env) (float64, error) {
			x, err := fa(env)
			if err != nil {
				return 0, err
			}
			y, err := fb(env)
			if err != nil {
				return 0, err
			}
			return x * y, nil
		},
		func(env expr.Env) (expr.Vector, error) {
			x, err := fa(env)
			if err != nil {
				return nil, err
			}
			y, err := fb(env)
			if err != nil {
				return nil, err
			}
			da, err := ga(env)
			if err != nil {
				return nil, err
			}
			db, err := gb(env)
			if err != nil {
				return nil, err
			}
			return da.Scale(y).Add(db.Scale(x)), nil
		},
	)
}

// RMul returns c * a. Multiplication commutes, so it delegates to Mul.
func RMul(c float64, a *expr.Node) *expr.Node {
	return Mul(a, Scalar(c))
}
