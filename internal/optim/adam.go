package optim

import (
	"math"

	"github.com/born-ml/gradient/internal/expr"
)

// Adam implements the Adam (Adaptive Moment Estimation) optimizer.
//
// Update rule:
//
//	m_t = beta1 * m_{t-1} + (1-beta1) * gradient       // First moment
//	v_t = beta2 * v_{t-1} + (1-beta2) * gradient²      // Second moment
//	m_hat = m_t / (1 - beta1^t)                        // Bias correction
//	v_hat = v_t / (1 - beta2^t)                        // Bias correction
//	param = param - lr * m_hat / (sqrt(v_hat) + eps)  // Parameter update
//
// Reference: "Adam: A Method for Stochastic Optimization" (Kingma & Ba, 2014)
type Adam struct {
	params []string
	lr     float64
	beta1  float64
	beta2  float64
	eps    float64
	t      int                // Timestep for bias correction
	m      map[string]float64 // First moment estimates
	v      map[string]float64 // Second moment estimates
}

// AdamConfig holds configuration for Adam optimizer.
type AdamConfig struct {
	LR    float64    // Learning rate (default: 0.001)
	Betas [2]float64 // Coefficients for computing running averages (default: [0.9, 0.999])
	Eps   float64    // Term for numerical stability (default: 1e-8)
}

// NewAdam creates a new Adam optimizer, filling unset hyperparameters with
// their defaults.
func NewAdam(params []string, config AdamConfig) *Adam {
	if config.LR == 0 {
		config.LR = 0.001
	}
	if config.Betas[0] == 0 {
		config.Betas[0] = 0.9
	}
	if config.Betas[1] == 0 {
		config.Betas[1] = 0.999
	}
	if config.Eps == 0 {
		config.Eps = 1e-8
	}

	return &Adam{
		params: params,
		lr:     config.LR,
		beta1:  config.Betas[0],
		beta2:  config.Betas[1],
		eps:    config.Eps,
		m:      make(map[string]float64),
		v:      make(map[string]float64),
	}
}

// Step performs a single optimization step.
func (a *Adam) Step(params expr.Env, grads map[string]float64) {
	a.t++

	biasCorrection1 := 1.0 - math.Pow(a.beta1, float64(a.t))
	biasCorrection2 := 1.0 - math.Pow(a.beta2, float64(a.t))

	for _, name := range a.params {
		g, ok := grads[name]
		if !ok {
			continue
		}

		m := a.beta1*a.m[name] + (1.0-a.beta1)*g
		v := a.beta2*a.v[name] + (1.0-a.beta2)*g*g
		a.m[name], a.v[name] = m, v

		mHat := m / biasCorrection1
		vHat := v / biasCorrection2
		params[name] -= a.lr * mHat / (math.Sqrt(vHat) + a.eps)
	}
}

// Params returns the optimized names.
func (a *Adam) Params() []string {
	return a.params
}

// GetLR returns the current learning rate.
func (a *Adam) GetLR() float64 {
	return a.lr
}

// SetLR updates the learning rate.
func (a *Adam) SetLR(lr float64) {
	a.lr = lr
}

// GetTimestep returns the current timestep.
func (a *Adam) GetTimestep() int {
	return a.t
}
