// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package optim provides the parameter update rule for xornet networks.
//
// # Overview
//
// This package contains:
//   - UpdateWeights: weight -= lr*gradient, bias -= lr*delta
//   - SGD: the same rule behind the Optimizer interface
//   - ClampLR: limits a learning rate to [0.01, 2.0]
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/xornet/nn"
//	    "github.com/born-ml/xornet/optim"
//	)
//
//	sgd, _ := optim.NewSGD(0.5)
//	for _, s := range nn.XOR() {
//	    nn.Forward(net, s.Inputs)
//	    nn.Backward(net, s.Expected)
//	    sgd.Step(net)
//	}
//
// There is no momentum, weight decay or adaptive learning rate.
package optim
