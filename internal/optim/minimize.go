package optim

import (
	"fmt"
	"math"

	"github.com/born-ml/gradient/internal/autodiff"
	"github.com/born-ml/gradient/internal/expr"
)

// MinimizeConfig controls the optimization loop.
type MinimizeConfig struct {
	MaxSteps  int     // Step budget (default: 1000)
	Tolerance float64 // Stop once the gradient norm over the parameters is below this (default: 1e-8)
}

// Result reports where Minimize stopped.
type Result struct {
	Params    expr.Env
	Value     float64
	GradNorm  float64
	Steps     int
	Converged bool
}

// Minimize repeatedly evaluates f, differentiates it and lets opt update the
// parameters. start is copied; bindings that are not optimizer parameters
// stay fixed.
func Minimize(f *expr.Node, start expr.Env, opt Optimizer, config MinimizeConfig) (*Result, error) {
	if config.MaxSteps <= 0 {
		config.MaxSteps = 1000
	}
	if config.Tolerance <= 0 {
		config.Tolerance = 1e-8
	}

	params := make(expr.Env, len(start))
	for k, v := range start {
		params[k] = v
	}
	for _, name := range opt.Params() {
		if _, ok := params[name]; !ok {
			return nil, fmt.Errorf("minimize: parameter %q: %w", name, expr.ErrMissingBinding)
		}
	}

	res := &Result{Params: params}
	for step := 0; ; step++ {
		value, grad, err := autodiff.ValueAndGradient(f, params)
		if err != nil {
			return nil, fmt.Errorf("minimize: step %d: %w", step, err)
		}
		grads := GradByName(f.Session(), grad)

		res.Value = value
		res.GradNorm = norm(grads, opt.Params())
		res.Steps = step
		if res.GradNorm < config.Tolerance {
			res.Converged = true
			return res, nil
		}
		if step == config.MaxSteps {
			return res, nil
		}
		opt.Step(params, grads)
	}
}

func norm(grads map[string]float64, names []string) float64 {
	var sum float64
	for _, name := range names {
		g := grads[name]
		sum += g * g
	}
	return math.Sqrt(sum)
}
