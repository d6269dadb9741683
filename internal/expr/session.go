package expr

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// Session is the leaf registry. It assigns each declared leaf the next index
// and remembers leaf names in declaration order. The count only grows.
//
// A Session is safe for concurrent declaration; it is the only shared
// mutable state in an expression.
type Session struct {
	id    uuid.UUID
	mu    sync.Mutex
	names []string // leaf names, indexed by leaf index
}

var defaultSession = NewSession()

// NewSession creates an empty registry.
func NewSession() *Session {
	return &Session{
		id:    uuid.New(),
		names: make([]string, 0, 8),
	}
}

// Default returns the process-wide session.
func Default() *Session {
	return defaultSession
}

// ID identifies the session in diagnostics.
func (s *Session) ID() uuid.UUID {
	return s.id
}

// Count returns the number of leaves declared so far.
func (s *Session) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.names)
}

// Leaves returns the leaf names in declaration order.
// The same name may appear more than once.
func (s *Session) Leaves() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

// Declare registers a new leaf bound to name and returns its node.
//
// The leaf's gradient is a one-hot vector sized by the leaf count at the
// time it is requested, not at declaration.
func (s *Session) Declare(name string) *Node {
	s.mu.Lock()
	index := len(s.names)
	s.names = append(s.names, name)
	s.mu.Unlock()

	return &Node{
		session: s,
		leaf:    true,
		name:    name,
		index:   index,
		eval: func(env Env) (float64, error) {
			return env.Lookup(name)
		},
		grad: func(env Env) (Vector, error) {
			if _, err := env.Lookup(name); err != nil {
				return nil, err
			}
			return OneHot(index, s.Count()), nil
		},
	}
}

// Const returns a node with a fixed value and a zero gradient.
func (s *Session) Const(value float64) *Node {
	return &Node{
		session: s,
		index:   -1,
		eval: func(Env) (float64, error) {
			return value, nil
		},
		grad: func(Env) (Vector, error) {
			return Zeros(s.Count()), nil
		},
	}
}

// Constant returns a detached node with a fixed value. Its own gradient is
// empty; combined with nodes of a session it contributes zeros.
func Constant(value float64) *Node {
	return NewNode(nil,
		func(Env) (float64, error) {
			return value, nil
		},
		func(Env) (Vector, error) {
			return Vector{}, nil
		},
	)
}

// String returns a short description for diagnostics.
func (s *Session) String() string {
	return fmt.Sprintf("session %s (%d leaves)", s.id, s.Count())
}
