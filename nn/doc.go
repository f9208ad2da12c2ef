// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides the network model of the xornet training engine.
//
// # Overview
//
// This package contains:
//   - Network: fully connected sigmoid network, built once per session
//   - Forward / Backward: activation and error propagation
//   - ComputeLoss: mean summed squared error
//   - XOR: the 4-row training table
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/xornet/nn"
//	    "github.com/born-ml/xornet/optim"
//	)
//
//	func main() {
//	    net, err := nn.NewNetwork([]int{2, 4, 3, 2, 1})
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    for _, s := range nn.XOR() {
//	        nn.Forward(net, s.Inputs)
//	        nn.Backward(net, s.Expected)
//	        optim.UpdateWeights(net, 0.5)
//	    }
//	}
//
// # Identity
//
// Neurons are named i<layer>_<pos>, h<layer>_<pos> and o<layer>_<pos>;
// weights are named w_<from>_<to>. Ids never change, Reinitialize included:
//
//	w, ok := net.WeightByID("w_i0_0_h1_0")
//
// # Errors
//
// NewNetwork fails with ErrInvalidArchitecture for fewer than two layers or a
// non-positive size. Forward and Backward fail with ErrShapeMismatch when a
// vector does not match the input or output layer.
package nn
