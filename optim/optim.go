// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package optim

import (
	"github.com/born-ml/gradient/internal/expr"
	"github.com/born-ml/gradient/internal/optim"
)

// Optimizer interface defines the common interface for all optimizers.
type Optimizer = optim.Optimizer

// Config represents the base configuration for optimizers.
type Config = optim.Config

// SGD (Stochastic Gradient Descent)

// SGD represents the SGD optimizer with optional momentum.
type SGD = optim.SGD

// SGDConfig contains configuration for SGD optimizer.
type SGDConfig = optim.SGDConfig

// NewSGD creates a new SGD optimizer over the named leaves.
//
// Example:
//
//	optimizer := optim.NewSGD([]string{"x", "y"}, optim.SGDConfig{
//	    LR:       0.01,
//	    Momentum: 0.9,
//	})
func NewSGD(params []string, config SGDConfig) *SGD {
	return optim.NewSGD(params, config)
}

// Adam (Adaptive Moment Estimation)

// Adam represents the Adam optimizer.
type Adam = optim.Adam

// AdamConfig contains configuration for Adam optimizer.
type AdamConfig = optim.AdamConfig

// NewAdam creates a new Adam optimizer with bias correction.
func NewAdam(params []string, config AdamConfig) *Adam {
	return optim.NewAdam(params, config)
}

// MinimizeConfig controls the optimization loop.
type MinimizeConfig = optim.MinimizeConfig

// Result reports where Minimize stopped.
type Result = optim.Result

// Minimize runs opt against f starting from start.
func Minimize(f *expr.Node, start expr.Env, opt Optimizer, config MinimizeConfig) (*Result, error) {
	return optim.Minimize(f, start, opt, config)
}

// GradByName folds a gradient vector into per-name derivatives, summing
// leaves that share a name.
func GradByName(s *expr.Session, grad expr.Vector) map[string]float64 {
	return optim.GradByName(s, grad)
}
