package nn

import "math"

// Sigmoid is the logistic activation used by every non-input neuron.
//
// Applies σ(x) = 1 / (1 + exp(-x)), squashing x into (0, 1).
func Sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}

// SigmoidDerivative returns σ'(x) expressed through the activation a = σ(x):
//
//	σ'(x) = a * (1 - a)
//
// It takes the activation, not the pre-activation. The shortcut only holds
// for the sigmoid.
func SigmoidDerivative(activation float64) float64 {
	return activation * (1 - activation)
}
