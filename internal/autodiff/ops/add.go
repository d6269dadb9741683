package ops

import "github.com/born-ml/gradient/internal/expr"

// Add returns a + b.
//
// Forward:
//
//	value = a(env) + b(env)
//
// Gradient (sum rule):
//
//	grad = a'(env) + b'(env)
//
// A scalar b contributes a zero gradient, so a's gradient passes through.
func Add(a *expr.Node, b Operand) *expr.Node {
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
				return x + c, nil
			},
			ga,
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
			return x + y, nil
		},
		func(env expr.Env) (expr.Vector, error) {
			da, err := ga(env)
			if err != nil {
				return nil, err
			}
			db, err := gb(env)
			if err != nil {
				return nil, err
			}
			return da.Add(db), nil
		},
	)
}

// RAdd returns c + a. Addition commutes, so it delegates to Add.
func RAdd(c float64, a *expr.Node) *expr.Node {
	return Add(a, Scalar(c))
}
