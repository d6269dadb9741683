package ops

import (
	"math"

	"github.com/born-ml/gradient/internal/expr"
)

// Div returns a / b, composed as a * b^-1.
//
// There is no separate quotient rule; the gradient comes from the product
// and power rules:
//
//	d(a/b) = a' * b^-1 + a * (-1 * b^-2 * b')
func Div(a *expr.Node, b Operand) *expr.Node {
	return Mul(a, reciprocal(b))
}

// RDiv returns c / a, composed as a^-1 * c.
func RDiv(c float64, a *expr.Node) *expr.Node {
	return Mul(Pow(a, Scalar(-1)), Scalar(c))
}

func reciprocal(b Operand) Operand {
	if !b.IsNode() {
		return Scalar(math.Pow(b.Value(), -1))
	}
	return Expr(Pow(b.Node(), Scalar(-1)))
}
