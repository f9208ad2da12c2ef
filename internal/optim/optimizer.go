// Package optim implements the parameter update rule for xornet networks.
//
// Only plain gradient descent is provided:
//
//	weight -= lr * gradient
//	bias   -= lr * delta
//
// There is no momentum, no adaptive rate and no clipping.
//
// Example usage:
//
//	sgd, err := optim.NewSGD(0.5)
//	if err != nil {
//	    return err
//	}
//	for _, s := range nn.XOR() {
//	    nn.Forward(net, s.Inputs)
//	    nn.Backward(net, s.Expected)
//	    sgd.Step(net)
//	}
package optim

import (
	"errors"
	"math"

	"github.com/born-ml/xornet/internal/nn"
)

// Learning rate bounds exposed to interactive callers.
const (
	MinLR     = 0.01
	MaxLR     = 2.0
	DefaultLR = 0.5
)

// ErrInvalidLearningRate is returned for negative or non-finite rates.
var ErrInvalidLearningRate = errors.New("invalid learning rate")

// Optimizer applies the gradients left by nn.Backward to a network.
type Optimizer interface {
	// Step updates every weight and non-input bias in place.
	Step(net *nn.Network)

	// LR returns the current learning rate.
	LR() float64
}

// ClampLR limits lr to [MinLR, MaxLR]. NaN maps to DefaultLR.
func ClampLR(lr float64) float64 {
	if math.IsNaN(lr) {
		return DefaultLR
	}
	return math.Max(MinLR, math.Min(MaxLR, lr))
}
