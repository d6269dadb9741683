// Package optim minimizes expressions with first-order optimizers driven by
// forward-mode gradients.
//
// This package provides:
//   - Optimizer interface: updates leaf bindings from per-name gradients
//   - SGD: gradient descent with optional momentum
//   - Adam: Adaptive Moment Estimation
//   - Minimize: the evaluate, differentiate, step loop
//
// Example usage:
//
//	s := expr.NewSession()
//	x := s.Declare("x")
//	f := ops.Pow(ops.Sub(x, ops.Scalar(3)), ops.Scalar(2))
//
//	opt := optim.NewAdam([]string{"x"}, optim.AdamConfig{LR: 0.1})
//	res, err := optim.Minimize(f, expr.Env{"x": 0}, opt, optim.MinimizeConfig{MaxSteps: 500})
package optim

import "github.com/born-ml/gradient/internal/expr"

// Optimizer updates parameter bindings in place.
type Optimizer interface {
	// Step applies one update to params. grads holds the derivative of the
	// objective for each parameter name; parameters without a gradient are
	// left unchanged.
	Step(params expr.Env, grads map[string]float64)

	// Params returns the names being optimized.
	Params() []string

	// GetLR returns the current learning rate.
	GetLR() float64
}

// Config is the base configuration for all optimizers.
type Config struct {
	LR float64 // Learning rate
}

// GradByName folds a gradient vector into per-name derivatives using the
// session's declaration order. Leaves sharing a name are summed, because a
// single binding feeds all of them.
func GradByName(s *expr.Session, grad expr.Vector) map[string]float64 {
	out := make(map[string]float64)
	for i, name := range s.Leaves() {
		if i >= len(grad) {
			break
		}
		out[name] += grad[i]
	}
	return out
}
