package optim

import "github.com/born-ml/gradient/internal/expr"

// SGD implements gradient descent with optional momentum.
//
// Update rule without momentum:
//
//	param = param - lr * gradient
//
// Update rule with momentum:
//
//	velocity = momentum * velocity + gradient
//	param = param - lr * velocity
type SGD struct {
	params     []string
	lr         float64
	momentum   float64
	velocities map[string]float64
}

// SGDConfig holds configuration for SGD optimizer.
type SGDConfig struct {
	LR       float64 // Learning rate (default: 0.01)
	Momentum float64 // Momentum factor (default: 0.0, range: [0, 1))
}

// NewSGD creates a new SGD optimizer over the named parameters.
func NewSGD(params []string, config SGDConfig) *SGD {
	if config.LR == 0 {
		config.LR = 0.01
	}

	return &SGD{
		params:     params,
		lr:         config.LR,
		momentum:   config.Momentum,
		velocities: make(map[string]float64),
	}
}

// Step performs a single optimization step.
func (s *SGD) Step(params expr.Env, grads map[string]float64) {
	for _, name := range s.params {
		g, ok := grads[name]
		if !ok {
			continue
		}
		if s.momentum == 0 {
			params[name] -= s.lr * g
			continue
		}
		v := s.momentum*s.velocities[name] + g
		s.velocities[name] = v
		params[name] -= s.lr * v
	}
}

// Params returns the optimized names.
func (s *SGD) Params() []string {
	return s.params
}

// GetLR returns the current learning rate.
func (s *SGD) GetLR() float64 {
	return s.lr
}

// SetLR updates the learning rate.
func (s *SGD) SetLR(lr float64) {
	s.lr = lr
}
