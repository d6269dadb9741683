// Package expr defines the expression node, the leaf registry and the dense
// gradient vectors used by forward-mode differentiation.
//
// A Node carries two closures over an evaluation environment:
//   - an evaluator returning the node's scalar value
//   - a differentiator returning the gradient with respect to every leaf
//
// Leaves are declared through a Session, which hands out monotonically
// increasing indices and never shrinks. Gradient vectors are sized by the
// session's leaf count at the moment the differentiator runs, so a node built
// before a later declaration still yields a correctly sized gradient.
//
// Composite nodes are built by the operator layer in internal/autodiff/ops.
package expr
