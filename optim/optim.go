// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package optim

import (
	"github.com/born-ml/xornet/internal/nn"
	"github.com/born-ml/xornet/internal/optim"
)

// Optimizer interface defines the common interface for optimizers.
type Optimizer = optim.Optimizer

// SGD (Stochastic Gradient Descent)

// SGD represents plain per-sample gradient descent.
type SGD = optim.SGD

// Learning rate bounds.
const (
	MinLR     = optim.MinLR
	MaxLR     = optim.MaxLR
	DefaultLR = optim.DefaultLR
)

// ErrInvalidLearningRate is returned by NewSGD for negative or non-finite rates.
var ErrInvalidLearningRate = optim.ErrInvalidLearningRate

// NewSGD creates a new SGD optimizer.
//
// Example:
//
//	sgd, err := optim.NewSGD(0.5)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	sgd.Step(net)
func NewSGD(lr float64) (*SGD, error) {
	return optim.NewSGD(lr)
}

// UpdateWeights applies one gradient descent update to net.
func UpdateWeights(net *nn.Network, lr float64) {
	optim.UpdateWeights(net, lr)
}

// ClampLR limits lr to [MinLR, MaxLR].
func ClampLR(lr float64) float64 {
	return optim.ClampLR(lr)
}
