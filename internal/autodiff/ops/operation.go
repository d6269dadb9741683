// Package ops builds composite expression nodes for forward-mode
// differentiation.
//
// Each operator composes the evaluators and differentiators of its operands
// according to the matching calculus rule:
//   - Add: value a+b, gradient a'+b'
//   - Mul: value a*b, gradient a'*b + a*b'
//   - Sub: Add(a, Mul(b, -1))
//   - Div: Mul(a, Pow(b, -1))
//   - Pow: value a^p, gradient p*a^(p-1)*a' (exponent treated as constant)
//   - GeneralPow: Pow plus the exponent term a^g*ln(a)*g'
//   - Exp: value e^x, gradient e^x*x'
//   - Log: value ln(x), gradient x'/x
//
// The right-hand side of a binary operator is an Operand, which is either a
// Scalar constant or an Expr node.
package ops

import (
	"fmt"

	"github.com/born-ml/gradient/internal/expr"
)

// Operand is a scalar constant or an expression node.
// The zero value is the scalar 0.
type Operand struct {
	node  *expr.Node
	value float64
}

// Scalar wraps a constant.
func Scalar(v float64) Operand {
	return Operand{value: v}
}

// Expr wraps a node.
func Expr(n *expr.Node) Operand {
	if n == nil {
		panic("ops: nil node operand")
	}
	return Operand{node: n}
}

// From converts a dynamic value into an Operand. Numbers become scalars and
// nodes become node operands; anything else is ErrUnsupportedOperand.
func From(v any) (Operand, error) {
	switch x := v.(type) {
	case Operand:
		return x, nil
	case *expr.Node:
		if x == nil {
			return Operand{}, fmt.Errorf("nil node: %w", expr.ErrUnsupportedOperand)
		}
		return Expr(x), nil
	case float64:
		return Scalar(x), nil
	case float32:
		return Scalar(float64(x)), nil
	case int:
		return Scalar(float64(x)), nil
	case int32:
		return Scalar(float64(x)), nil
	case int64:
		return Scalar(float64(x)), nil
	default:
		return Operand{}, fmt.Errorf("%T: %w", v, expr.ErrUnsupportedOperand)
	}
}

// IsNode reports whether the operand holds a node.
func (o Operand) IsNode() bool {
	return o.node != nil
}

// Node returns the wrapped node, or nil for a scalar.
func (o Operand) Node() *expr.Node {
	return o.node
}

// Value returns the scalar constant. It is 0 for node operands.
func (o Operand) Value() float64 {
	return o.value
}

// String describes the operand.
func (o Operand) String() string {
	if o.node != nil {
		return o.node.String()
	}
	return fmt.Sprintf("%g", o.value)
}

// sessionOf returns the session shared by a and b. A detached operand adopts
// the other operand's session; the result is nil only when both are detached.
// Mixing leaves from two sessions would produce gradients over two unrelated
// index spaces, so it panics like a shape mismatch.
func sessionOf(a *expr.Node, b Operand) *expr.Session {
	if a == nil {
		panic("ops: nil node")
	}
	switch {
	case b.node == nil || b.node.Detached():
		return owner(a)
	case a.Detached():
		return b.node.Session()
	case a.Session() != b.node.Session():
		panic(fmt.Sprintf("ops: operands belong to different sessions (%s, %s)", a.Session().ID(), b.node.Session().ID()))
	}
	return a.Session()
}

// owner returns n's session, or nil when n is detached.
func owner(n *expr.Node) *expr.Session {
	if n.Detached() {
		return nil
	}
	return n.Session()
}
