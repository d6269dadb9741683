// Package parser turns infix text such as "x*x + log(y)" into expression
// nodes.
//
// Grammar, loosest binding first:
//
//	expr    = term { ("+" | "-") term }
//	term    = unary { ("*" | "/") unary }
//	unary   = "-" unary | power
//	power   = primary [ ("^" | "**") unary ]
//	primary = number | name | call | "(" expr ")"
//	call    = ("exp" | "log") "(" expr ")" | "pow" "(" expr "," expr ")"
//
// "^" is right associative and binds tighter than unary minus, so -x^2 is
// -(x^2). It maps to ops.Pow, which treats a variable exponent as a constant
// when differentiating; pow(a, b) maps to ops.GeneralPow instead.
//
// Names are resolved through a Scope. Once the whole input has parsed, the
// first occurrence of each unknown name declares a new leaf in the scope's
// session; input with a syntax error declares nothing.
package parser

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/born-ml/gradient/internal/autodiff/ops"
	"github.com/born-ml/gradient/internal/expr"
)

// ErrSyntax is wrapped by every parse error.
var ErrSyntax = errors.New("syntax error")

// Error is a parse failure at a byte offset in the input.
type Error struct {
	Position int
	Message  string
}

func syntaxError(pos int, msg string) *Error {
	return &Error{Position: pos, Message: msg}
}

func (e *Error) Error() string {
	return fmt.Sprintf("syntax error at position %d: %s", e.Position, e.Message)
}

// Unwrap lets errors.Is match ErrSyntax.
func (e *Error) Unwrap() error {
	return ErrSyntax
}

// Scope maps names to leaves of one session. It is reused across parses so
// that the same name keeps referring to the same leaf.
type Scope struct {
	session *expr.Session
	leaves  map[string]*expr.Node
	order   []string
}

// NewScope creates an empty scope over s.
func NewScope(s *expr.Session) *Scope {
	return &Scope{
		session: s,
		leaves:  make(map[string]*expr.Node),
	}
}

// Session returns the scope's session.
func (sc *Scope) Session() *expr.Session {
	return sc.session
}

// Leaf returns the leaf for name, declaring it on first use.
func (sc *Scope) Leaf(name string) *expr.Node {
	if n, ok := sc.leaves[name]; ok {
		return n
	}
	n := sc.session.Declare(name)
	sc.leaves[name] = n
	sc.order = append(sc.order, name)
	return n
}

// Names returns the names declared through the scope, in declaration order.
func (sc *Scope) Names() []string {
	out := make([]string, len(sc.order))
	copy(out, sc.order)
	return out
}

// Parse parses src in a fresh scope over s.
func Parse(s *expr.Session, src string) (*expr.Node, error) {
	return NewScope(s).Parse(src)
}

// Parse parses src, declaring unknown names in the scope.
// Constant expressions yield a constant node. Leaves are declared only once
// the whole input parsed, so a syntax error leaves the session untouched.
func (sc *Scope) Parse(src string) (*expr.Node, error) {
	p := &parser{lexer: newLexer(src)}
	if err := p.advance(); err != nil {
		return nil, err
	}
	if p.current.typ == tokenEOF {
		return nil, syntaxError(0, "empty expression")
	}

	tree, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if p.current.typ != tokenEOF {
		return nil, p.unexpected()
	}
	return sc.node(sc.build(tree)), nil
}

func (sc *Scope) node(v ops.Operand) *expr.Node {
	if v.IsNode() {
		return v.Node()
	}
	return sc.session.Const(v.Value())
}

// build turns a syntax tree into nodes, declaring names in the order they
// appear in the source.
func (sc *Scope) build(a astNode) ops.Operand {
	switch a := a.(type) {
	case numberLit:
		return ops.Scalar(a.value)

	case nameRef:
		return ops.Expr(sc.Leaf(a.name))

	case negation:
		v := sc.build(a.operand)
		if !v.IsNode() {
			return ops.Scalar(-v.Value())
		}
		return ops.Expr(ops.Mul(v.Node(), ops.Scalar(-1)))

	case binary:
		left := sc.build(a.left)
		right := sc.build(a.right)
		return combine(a.op, left, right)

	case call:
		// Constants become nodes of the scope's session so that the result
		// composes with the rest of the expression.
		first := sc.node(sc.build(a.args[0]))
		switch a.fn {
		case "exp":
			return ops.Expr(ops.Exp(ops.Expr(first)))
		case "log":
			return ops.Expr(ops.Log(ops.Expr(first)))
		default:
			return ops.Expr(ops.GeneralPow(first, sc.build(a.args[1])))
		}
	}
	panic(fmt.Sprintf("parser: unknown syntax node %T", a))
}

// arity lists the built-in functions.
var arity = map[string]int{"exp": 1, "log": 1, "pow": 2}

// astNode is a parsed expression that has not been turned into nodes yet.
type astNode any

type numberLit struct {
	value float64
}

type nameRef struct {
	name string
}

type negation struct {
	operand astNode
}

type binary struct {
	op          tokenType
	left, right astNode
}

type call struct {
	fn   string
	args []astNode
}

type parser struct {
	lexer   *lexer
	current token
}

func (p *parser) advance() error {
	tok, err := p.lexer.next()
	if err != nil {
		return err
	}
	p.current = tok
	return nil
}

func (p *parser) expect(t tokenType) error {
	if p.current.typ != t {
		return syntaxError(p.current.pos, fmt.Sprintf("expected %s, found %s", t, p.describe()))
	}
	return p.advance()
}

func (p *parser) unexpected() error {
	return syntaxError(p.current.pos, "unexpected "+p.describe())
}

func (p *parser) describe() string {
	if p.current.typ == tokenEOF {
		return tokenEOF.String()
	}
	return strconv.Quote(p.current.value)
}

func (p *parser) parseExpr() (astNode, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for p.current.typ == tokenPlus || p.current.typ == tokenMinus {
		op := p.current.typ
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		left = binary{op: op, left: left, right: right}
	}
	return left, nil
}

func (p *parser) parseTerm() (astNode, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.current.typ == tokenMult || p.current.typ == tokenDiv {
		op := p.current.typ
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = binary{op: op, left: left, right: right}
	}
	return left, nil
}

func (p *parser) parseUnary() (astNode, error) {
	if p.current.typ == tokenMinus {
		if err := p.advance(); err != nil {
			return nil, err
		}
		v, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return negation{operand: v}, nil
	}
	return p.parsePower()
}

func (p *parser) parsePower() (astNode, error) {
	base, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	if p.current.typ != tokenPow {
		return base, nil
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	exponent, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	return binary{op: tokenPow, left: base, right: exponent}, nil
}

func (p *parser) parsePrimary() (astNode, error) {
	tok := p.current
	switch tok.typ {
	case tokenNumber:
		v, err := strconv.ParseFloat(tok.value, 64)
		if err != nil {
			return nil, syntaxError(tok.pos, fmt.Sprintf("invalid number %q", tok.value))
		}
		return numberLit{value: v}, p.advance()

	case tokenName:
		if err := p.advance(); err != nil {
			return nil, err
		}
		if p.current.typ == tokenParenOpen {
			return p.parseCall(tok)
		}
		return nameRef{name: tok.value}, nil

	case tokenParenOpen:
		if err := p.advance(); err != nil {
			return nil, err
		}
		v, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		return v, p.expect(tokenParenClose)

	default:
		return nil, p.unexpected()
	}
}

func (p *parser) parseCall(name token) (astNode, error) {
	if err := p.expect(tokenParenOpen); err != nil {
		return nil, err
	}
	args, err := p.parseArgs()
	if err != nil {
		return nil, err
	}

	want, ok := arity[name.value]
	if !ok {
		return nil, syntaxError(name.pos, fmt.Sprintf("unknown function %q", name.value))
	}
	if len(args) != want {
		return nil, syntaxError(name.pos, fmt.Sprintf("%s takes %d argument(s), got %d", name.value, want, len(args)))
	}
	return call{fn: name.value, args: args}, nil
}

func (p *parser) parseArgs() ([]astNode, error) {
	var args []astNode
	if p.current.typ == tokenParenClose {
		return args, p.advance()
	}
	for {
		v, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		args = append(args, v)
		if p.current.typ != tokenComma {
			break
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
	}
	return args, p.expect(tokenParenClose)
}

// combine applies a binary operator. Two scalars fold to a scalar; a scalar
// on the left uses the reflected operator.
func combine(op tokenType, left, right ops.Operand) ops.Operand {
	if !left.IsNode() && !right.IsNode() {
		a, b := left.Value(), right.Value()
		switch op {
		case tokenPlus:
			return ops.Scalar(a + b)
		case tokenMinus:
			return ops.Scalar(a - b)
		case tokenMult:
			return ops.Scalar(a * b)
		case tokenDiv:
			return ops.Scalar(a / b)
		default:
			return ops.Scalar(math.Pow(a, b))
		}
	}

	if !left.IsNode() {
		c, n := left.Value(), right.Node()
		switch op {
		case tokenPlus:
			return ops.Expr(ops.RAdd(c, n))
		case tokenMinus:
			return ops.Expr(ops.RSub(c, n))
		case tokenMult:
			return ops.Expr(ops.RMul(c, n))
		case tokenDiv:
			return ops.Expr(ops.RDiv(c, n))
		default:
			return ops.Expr(ops.Pow(n.Session().Const(c), right))
		}
	}

	n := left.Node()
	switch op {
	case tokenPlus:
		return ops.Expr(ops.Add(n, right))
	case tokenMinus:
		return ops.Expr(ops.Sub(n, right))
	case tokenMult:
		return ops.Expr(ops.Mul(n, right))
	case tokenDiv:
		return ops.Expr(ops.Div(n, right))
	default:
		return ops.Expr(ops.Pow(n, right))
	}
}
