package optim

import (
	"fmt"
	"math"

	"github.com/born-ml/xornet/internal/nn"
)

// SGD is per-sample gradient descent with a fixed learning rate.
//
// Update rule:
//
//	weight = weight - lr * gradient
//	bias   = bias - lr * delta   (layers 1..N-1)
//
// Example:
//
//	sgd, _ := optim.NewSGD(0.5)
//	sgd.Step(net)
type SGD struct {
	lr float64
}

// NewSGD creates an SGD optimizer. lr must be finite and non-negative;
// 0 is accepted and makes every Step a no-op.
func NewSGD(lr float64) (*SGD, error) {
	if lr < 0 || math.IsNaN(lr) || math.IsInf(lr, 0) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidLearningRate, lr)
	}
	return &SGD{lr: lr}, nil
}

// Step applies one gradient descent update to net.
func (s *SGD) Step(net *nn.Network) {
	UpdateWeights(net, s.lr)
}

// LR returns the learning rate.
func (s *SGD) LR() float64 {
	return s.lr
}

// UpdateWeights applies weight -= lr*gradient to every weight and
// bias -= lr*delta to every non-input neuron. It reads whatever gradients and
// deltas the last nn.Backward call left behind.
func UpdateWeights(net *nn.Network, lr float64) {
	weights := net.Weights()
	for i := range weights {
		weights[i].Value -= lr * weights[i].Gradient
	}

	layers := net.Layers()
	for l := 1; l < len(layers); l++ {
		neurons := layers[l].Neurons
		for p := range neurons {
			neurons[p].Bias -= lr * neurons[p].Delta
		}
	}
}
