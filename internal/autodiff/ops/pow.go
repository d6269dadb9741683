package ops

import (
	"fmt"
	"math"

	"github.com/born-ml/gradient/internal/expr"
)

// Pow returns base ^ p.
//
// Forward:
//
//	value = base(env) ^ p
//
// Gradient (power rule, constant exponent):
//
//	grad = p * base(env)^(p-1) * base'(env)
//
// When p is a node, its evaluated value stands in for the constant and the
// exponent's own sensitivity is not included. Use GeneralPow for the full
// derivative of a variable exponent.
func Pow(base *expr.Node, p Operand) *expr.Node {
	s := sessionOf(base, p)
	fb, gb := base.Evaluator(), base.Differentiator()
	fp := exponent(p)

	return expr.NewNode(s,
		func(env expr.Env) (float64, error) {
			b, err := fb(env)
			if err != nil {
				return 0, err
			}
			e, err := fp(env)
			if err != nil {
				return 0, err
			}
			return math.Pow(b, e), nil
		},
		func(env expr.Env) (expr.Vector, error) {
			b, err := fb(env)
			if err != nil {
				return nil, err
			}
			e, err := fp(env)
			if err != nil {
				return nil, err
			}
			db, err := gb(env)
			if err != nil {
				return nil, err
			}
			return powerRule(db, b, e), nil
		},
	)
}

// GeneralPow returns base ^ g with the complete derivative for a variable
// exponent:
//
//	grad = g * base^(g-1) * base' + base^g * ln(base) * g'
//
// The second term needs ln(base), so a non-positive base fails with ErrDomain
// whenever g' is non-zero. A scalar g is the same as Pow.
func GeneralPow(base *expr.Node, g Operand) *expr.Node {
	if !g.IsNode() {
		return Pow(base, g)
	}
	s := sessionOf(base, g)
	fb, gb := base.Evaluator(), base.Differentiator()
	fg, gg := g.Node().Evaluator(), g.Node().Differentiator()

	return expr.NewNode(s,
		func(env expr.Env) (float64, error) {
			b, err := fb(env)
			if err != nil {
				return 0, err
			}
			e, err := fg(env)
			if err != nil {
				return 0, err
			}
			return math.Pow(b, e), nil
		},
		func(env expr.Env) (expr.Vector, error) {
			b, err := fb(env)
			if err != nil {
				return nil, err
			}
			e, err := fg(env)
			if err != nil {
				return nil, err
			}
			db, err := gb(env)
			if err != nil {
				return nil, err
			}
			de, err := gg(env)
			if err != nil {
				return nil, err
			}
			grad := powerRule(db, b, e)
			if isZero(de) {
				return grad, nil
			}
			if b <= 0 {
				return nil, fmt.Errorf("variable exponent on base %g: %w", b, expr.ErrDomain)
			}
			return grad.Add(de.Scale(math.Pow(b, e) * math.Log(b))), nil
		},
	)
}

// exponent returns the evaluator of p, treating a scalar as a constant function.
func exponent(p Operand) expr.EvalFunc {
	if p.IsNode() {
		return p.Node().Evaluator()
	}
	c := p.Value()
	return func(expr.Env) (float64, error) {
		return c, nil
	}
}

// powerRule returns db scaled by e*b^(e-1). A zero exponent gives a zero
// derivative even where b^(e-1) is infinite.
func powerRule(db expr.Vector, b, e float64) expr.Vector {
	if e == 0 {
		return expr.Zeros(len(db))
	}
	return db.Scale(e * math.Pow(b, e-1))
}

func isZero(v expr.Vector) bool {
	for _, x := range v {
		if x != 0 {
			return false
		}
	}
	return true
}
