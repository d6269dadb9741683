package expr

import "fmt"

// EvalFunc computes a node's value in an environment.
type EvalFunc func(env Env) (float64, error)

// GradFunc computes a node's gradient in an environment.
type GradFunc func(env Env) (Vector, error)

// Env maps leaf names to values. Names not referenced by an expression are ignored.
type Env map[string]float64

// Lookup returns the value bound to name or ErrMissingBinding.
func (e Env) Lookup(name string) (float64, error) {
	v, ok := e[name]
	if !ok {
		return 0, fmt.Errorf("leaf %q: %w", name, ErrMissingBinding)
	}
	return v, nil
}

// Node is an immutable expression: either a leaf bound to a name, or a
// composite whose closures capture its operands' closures.
//
// Composites keep no references to child nodes; a subexpression used twice is
// evaluated twice.
type Node struct {
	session *Session
	eval    EvalFunc
	grad    GradFunc

	leaf  bool
	name  string
	index int
}

// NewNode builds a composite node from its closures.
// It is used by the operator layer. A nil session makes the node detached:
// it depends on no leaf and joins the session of whatever it is combined with.
func NewNode(s *Session, eval EvalFunc, grad GradFunc) *Node {
	return &Node{
		session: s,
		eval:    eval,
		grad:    grad,
		index:   -1,
	}
}

// Session returns the registry the node's leaves belong to. Detached nodes
// report the default session.
func (n *Node) Session() *Session {
	if n.session == nil {
		return Default()
	}
	return n.session
}

// Detached reports whether n belongs to no session.
func (n *Node) Detached() bool {
	return n.session == nil
}

// IsLeaf reports whether n was declared as a leaf.
func (n *Node) IsLeaf() bool {
	return n.leaf
}

// Name returns the leaf name, or "" for composites.
func (n *Node) Name() string {
	return n.name
}

// Index returns the leaf index, or -1 for composites.
func (n *Node) Index() int {
	return n.index
}

// Eval returns the node's value in env.
func (n *Node) Eval(env Env) (float64, error) {
	return n.eval(env)
}

// Grad returns the node's gradient in env. The vector is as long as the
// session's leaf count at call time, except for detached nodes, whose
// gradient is empty until combined with a session's nodes.
func (n *Node) Grad(env Env) (Vector, error) {
	return n.grad(env)
}

// Evaluator returns the evaluation closure for composition.
func (n *Node) Evaluator() EvalFunc {
	return n.eval
}

// Differentiator returns the differentiation closure for composition.
func (n *Node) Differentiator() GradFunc {
	return n.grad
}

// String describes the node for diagnostics.
func (n *Node) String() string {
	if n.leaf {
		return fmt.Sprintf("leaf %q #%d", n.name, n.index)
	}
	return "composite"
}
