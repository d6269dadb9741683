package autodiff

import (
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/born-ml/gradient/internal/expr"
)

// Memo caches a node's value and gradient per environment.
//
// Nodes themselves never cache: a subexpression reused in a larger tree is
// recomputed at every reference. Wrapping the shared subexpression in a Memo
// and composing with Wrap() computes it once per environment.
//
// Gradient entries are keyed by the live leaf count as well, so a leaf
// declared after caching produces a fresh, longer vector.
type Memo struct {
	node *expr.Node

	mu     sync.Mutex
	values map[string]float64
	grads  map[string]expr.Vector
	hits   int
	misses int
}

// MemoStats reports cache activity.
type MemoStats struct {
	Hits    int
	Misses  int
	Entries int
}

// NewMemo wraps n.
func NewMemo(n *expr.Node) *Memo {
	return &Memo{
		node:   n,
		values: make(map[string]float64),
		grads:  make(map[string]expr.Vector),
	}
}

// Wrap returns a node that reads through the cache. It belongs to the same
// session as the wrapped node.
func (m *Memo) Wrap() *expr.Node {
	if m.node.Detached() {
		return expr.NewNode(nil, m.Eval, m.Grad)
	}
	return expr.NewNode(m.node.Session(), m.Eval, m.Grad)
}

// Eval returns the cached value, computing it on a miss.
// Errors are not cached.
func (m *Memo) Eval(env expr.Env) (float64, error) {
	key := fingerprint(env, 0)

	m.mu.Lock()
	if v, ok := m.values[key]; ok {
		m.hits++
		m.mu.Unlock()
		return v, nil
	}
	m.misses++
	m.mu.Unlock()

	v, err := m.node.Eval(env)
	if err != nil {
		return 0, err
	}

	m.mu.Lock()
	m.values[key] = v
	m.mu.Unlock()
	return v, nil
}

// Grad returns a copy of the cached gradient, computing it on a miss.
func (m *Memo) Grad(env expr.Env) (expr.Vector, error) {
	key := fingerprint(env, m.node.Session().Count())

	m.mu.Lock()
	if g, ok := m.grads[key]; ok {
		m.hits++
		m.mu.Unlock()
		return g.Clone(), nil
	}
	m.misses++
	m.mu.Unlock()

	g, err := m.node.Grad(env)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.grads[key] = g.Clone()
	m.mu.Unlock()
	return g, nil
}

// Stats returns hit, miss and entry counts.
func (m *Memo) Stats() MemoStats {
	m.mu.Lock()
	defer m.mu.Unlock()
	return MemoStats{
		Hits:    m.hits,
		Misses:  m.misses,
		Entries: len(m.values) + len(m.grads),
	}
}

// Reset drops every cached entry and zeroes the counters.
func (m *Memo) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values = make(map[string]float64)
	m.grads = make(map[string]expr.Vector)
	m.hits, m.misses = 0, 0
}

// fingerprint renders env as sorted name=value pairs followed by the leaf count.
// Unused bindings are part of the key; they only cost an extra miss.
func fingerprint(env expr.Env, leaves int) string {
	names := make([]string, 0, len(env))
	for name := range env {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	for _, name := range names {
		b.WriteString(strconv.Quote(name))
		b.WriteByte('=')
		b.WriteString(strconv.FormatFloat(env[name], 'g', -1, 64))
		b.WriteByte(';')
	}
	b.WriteByte('#')
	b.WriteString(strconv.Itoa(leaves))
	return b.String()
}
