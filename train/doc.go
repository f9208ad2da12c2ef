// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package train drives xornet networks through XOR training.
//
// # Overview
//
// This package contains:
//   - TrainStep: one online pass over the four XOR rows
//   - Session: learning rate, step count and loss trend around one network
//   - RunTrials: independent networks trained concurrently
//   - Trace: per-neuron calculations of a forward pass
//
// # Basic Usage
//
//	net, _ := nn.NewNetwork([]int{2, 4, 3, 2, 1})
//	s, _ := train.NewSession(net, train.WithTracker(train.NewTracker(10)))
//
//	for i := 0; i < 2000; i++ {
//	    sum, err := s.Step()
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    if sum.Trend.Direction == train.Converged {
//	        break
//	    }
//	}
//
// A Session is not safe for concurrent use. Independent sessions may run in
// parallel since they share no state.
package train
