package autodiff

import (
	"fmt"
	"math"

	"github.com/born-ml/gradient/internal/expr"
)

// DefaultCheckEpsilon is the finite-difference step used when CheckGradient
// is given a non-positive epsilon.
const DefaultCheckEpsilon = 1e-6

// LeafCheck compares the analytical and numerical derivative for one leaf.
type LeafCheck struct {
	Name       string
	Analytical float64
	Numerical  float64
	Diff       float64
}

// GradientReport is the result of CheckGradient.
type GradientReport struct {
	Leaves  []LeafCheck
	MaxDiff float64
}

// CheckGradient compares Gradient(n, env) against central finite differences:
//
//	(f(x+h) - f(x-h)) / 2h
//
// One check is produced per distinct leaf name bound in env; leaves with the
// same name are perturbed together and their gradient entries summed. Leaves
// absent from env are skipped since n cannot depend on them without failing.
func CheckGradient(n *expr.Node, env expr.Env, epsilon float64) (*GradientReport, error) {
	if epsilon <= 0 {
		epsilon = DefaultCheckEpsilon
	}
	grad, err := Gradient(n, env)
	if err != nil {
		return nil, err
	}

	analytical := make(map[string]float64)
	var order []string
	for i, name := range n.Session().Leaves() {
		if _, ok := env[name]; !ok {
			continue
		}
		if _, seen := analytical[name]; !seen {
			order = append(order, name)
		}
		if i < len(grad) {
			analytical[name] += grad[i]
		}
	}

	report := &GradientReport{Leaves: make([]LeafCheck, 0, len(order))}
	for _, name := range order {
		num, err := centralDifference(n, env, name, epsilon)
		if err != nil {
			return nil, fmt.Errorf("check %q: %w", name, err)
		}
		diff := math.Abs(analytical[name] - num)
		report.Leaves = append(report.Leaves, LeafCheck{
			Name:       name,
			Analytical: analytical[name],
			Numerical:  num,
			Diff:       diff,
		})
		report.MaxDiff = math.Max(report.MaxDiff, diff)
	}
	return report, nil
}

func centralDifference(n *expr.Node, env expr.Env, name string, h float64) (float64, error) {
	shifted := make(expr.Env, len(env))
	for k, v := range env {
		shifted[k] = v
	}
	x := env[name]

	shifted[name] = x + h
	fPlus, err := n.Eval(shifted)
	if err != nil {
		return 0, err
	}
	shifted[name] = x - h
	fMinus, err := n.Eval(shifted)
	if err != nil {
		return 0, err
	}
	return (fPlus - fMinus) / (2 * h), nil
}
