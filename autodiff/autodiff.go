// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package autodiff provides forward-mode automatic differentiation of scalar
// expressions.
//
// Leaves are declared by name, combined with arithmetic and transcendental
// operators, then evaluated or differentiated at an environment binding each
// leaf name to a value. Gradients are dense vectors with one entry per leaf
// declared in the session, in declaration order.
//
// Example:
//
//	import "github.com/born-ml/gradient/autodiff"
//
//	func main() {
//	    x := autodiff.Declare("x")
//	    y := autodiff.Declare("y")
//	    f := autodiff.Add(autodiff.Mul(x, autodiff.Expr(x)), autodiff.Expr(y)) // x² + y
//
//	    env := autodiff.Env{"x": 3, "y": 4}
//	    v, _ := autodiff.Evaluate(f, env) // 13
//	    g, _ := autodiff.Gradient(f, env) // [6 1]
//	}
package autodiff

import (
	"github.com/born-ml/gradient/internal/autodiff"
	"github.com/born-ml/gradient/internal/autodiff/ops"
	"github.com/born-ml/gradient/internal/expr"
	"github.com/born-ml/gradient/internal/parser"
)

// Node is an immutable expression.
type Node = expr.Node

// Env binds leaf names to values.
type Env = expr.Env

// Vector is a dense gradient.
type Vector = expr.Vector

// Session is a leaf registry.
type Session = expr.Session

// Operand is a scalar constant or a node.
type Operand = ops.Operand

// Memo caches a node's value and gradient per environment.
type Memo = autodiff.Memo

// GradientReport compares analytical and numerical derivatives.
type GradientReport = autodiff.GradientReport

// Scope resolves names to leaves when parsing.
type Scope = parser.Scope

// Errors returned by evaluation and parsing.
var (
	ErrMissingBinding     = expr.ErrMissingBinding
	ErrDomain             = expr.ErrDomain
	ErrUnsupportedOperand = expr.ErrUnsupportedOperand
	ErrSyntax             = parser.ErrSyntax
)

// NewSession creates an independent leaf registry.
func NewSession() *Session {
	return expr.NewSession()
}

// DefaultSession returns the process-wide registry used by Declare.
func DefaultSession() *Session {
	return expr.Default()
}

// Declare registers a leaf named name in the default session.
func Declare(name string) *Node {
	return expr.Default().Declare(name)
}

// Scalar wraps a constant operand.
func Scalar(v float64) Operand {
	return ops.Scalar(v)
}

// Expr wraps a node operand.
func Expr(n *Node) Operand {
	return ops.Expr(n)
}

// From converts a number or node into an Operand.
func From(v any) (Operand, error) {
	return ops.From(v)
}

// Add returns a + b.
func Add(a *Node, b Operand) *Node { return ops.Add(a, b) }

// Sub returns a - b.
func Sub(a *Node, b Operand) *Node { return ops.Sub(a, b) }

// Mul returns a * b.
func Mul(a *Node, b Operand) *Node { return ops.Mul(a, b) }

// Div returns a / b.
func Div(a *Node, b Operand) *Node { return ops.Div(a, b) }

// RAdd returns c + a.
func RAdd(c float64, a *Node) *Node { return ops.RAdd(c, a) }

// RSub returns c - a.
func RSub(c float64, a *Node) *Node { return ops.RSub(c, a) }

// RMul returns c * a.
func RMul(c float64, a *Node) *Node { return ops.RMul(c, a) }

// RDiv returns c / a.
func RDiv(c float64, a *Node) *Node { return ops.RDiv(c, a) }

// Pow returns base ^ p, treating the exponent as a constant when differentiating.
func Pow(base *Node, p Operand) *Node { return ops.Pow(base, p) }

// GeneralPow returns base ^ g including the exponent's own derivative.
func GeneralPow(base *Node, g Operand) *Node { return ops.GeneralPow(base, g) }

// Exp returns e ^ x.
func Exp(x Operand) *Node { return ops.Exp(x) }

// Log returns ln(x).
func Log(x Operand) *Node { return ops.Log(x) }

// Evaluate returns the value of n at env.
func Evaluate(n *Node, env Env) (float64, error) {
	return autodiff.Evaluate(n, env)
}

// Gradient returns the gradient of n at env, sized to the current leaf count.
func Gradient(n *Node, env Env) (Vector, error) {
	return autodiff.Gradient(n, env)
}

// ValueAndGradient returns the value and gradient of n at env.
func ValueAndGradient(n *Node, env Env) (float64, Vector, error) {
	return autodiff.ValueAndGradient(n, env)
}

// NewMemo wraps n in a per-environment cache.
func NewMemo(n *Node) *Memo {
	return autodiff.NewMemo(n)
}

// CheckGradient compares the gradient of n against finite differences.
func CheckGradient(n *Node, env Env, epsilon float64) (*GradientReport, error) {
	return autodiff.CheckGradient(n, env, epsilon)
}

// NewScope creates a parsing scope over s.
func NewScope(s *Session) *Scope {
	return parser.NewScope(s)
}

// Parse parses an infix expression, declaring its names in s.
func Parse(s *Session, src string) (*Node, error) {
	return parser.Parse(s, src)
}
