package ops

import "github.com/born-ml/gradient/internal/expr"

// Sub returns a - b, composed as a + (-1 * b).
func Sub(a *expr.Node, b Operand) *expr.Node {
	return Add(a, negate(b))
}

// RSub returns c - a, composed as (a * -1) + c.
func RSub(c float64, a *expr.Node) *expr.Node {
	return Add(Mul(a, Scalar(-1)), Scalar(c))
}

func negate(b Operand) Operand {
	if !b.IsNode() {
		return Scalar(-1 * b.Value())
	}
	return Expr(Mul(b.Node(), Scalar(-1)))
}
