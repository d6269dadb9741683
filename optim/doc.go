// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package optim provides first-order optimizers for expressions built with
// the autodiff package.
//
// # Overview
//
// This package contains:
//   - SGD: gradient descent with momentum
//   - Adam: Adaptive Moment Estimation with bias correction
//   - Minimize: evaluate, differentiate and step until the gradient vanishes
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/gradient/autodiff"
//	    "github.com/born-ml/gradient/optim"
//	)
//
//	func main() {
//	    s := autodiff.NewSession()
//	    f, _ := autodiff.Parse(s, "(x - 3)^2 + (y + 1)^2")
//
//	    opt := optim.NewAdam([]string{"x", "y"}, optim.AdamConfig{LR: 0.05})
//	    res, err := optim.Minimize(f, autodiff.Env{"x": 0, "y": 0}, opt, optim.MinimizeConfig{})
//	}
package optim
