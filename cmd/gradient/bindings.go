package main

import (
	"github.com/google/btree"

	"github.com/born-ml/gradient/internal/expr"
)

type binding struct {
	name  string
	value float64
}

// bindings holds the REPL environment ordered by name.
type bindings struct {
	tree *btree.BTreeG[binding]
}

func newBindings() *bindings {
	return &bindings{
		tree: btree.NewG[binding](8, func(a, b binding) bool {
			return a.name < b.name
		}),
	}
}

func (b *bindings) set(name string, value float64) {
	b.tree.ReplaceOrInsert(binding{name: name, value: value})
}

func (b *bindings) unset(name string) bool {
	_, ok := b.tree.Delete(binding{name: name})
	return ok
}

func (b *bindings) len() int {
	return b.tree.Len()
}

// each visits bindings in name order.
func (b *bindings) each(fn func(name string, value float64)) {
	b.tree.Ascend(func(item binding) bool {
		fn(item.name, item.value)
		return true
	})
}

func (b *bindings) env() expr.Env {
	env := make(expr.Env, b.len())
	b.each(func(name string, value float64) {
		env[name] = value
	})
	return env
}
