// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"github.com/born-ml/xornet/internal/nn"
)

// Network is a layered, fully connected sigmoid network.
type Network = nn.Network

// Layer is an ordered group of neurons.
type Layer = nn.Layer

// LayerType classifies a layer as input, hidden or output.
type LayerType = nn.LayerType

// Layer types.
const (
	Input  = nn.Input
	Hidden = nn.Hidden
	Output = nn.Output
)

// Neuron is a single unit of a layer.
type Neuron = nn.Neuron

// NeuronRef addresses a neuron by layer and position.
type NeuronRef = nn.NeuronRef

// Weight connects two neurons of adjacent layers.
type Weight = nn.Weight

// Sample is one row of a training table.
type Sample = nn.Sample

// Snapshot is a detached, JSON-encodable copy of a network's state.
type Snapshot = nn.Snapshot

// Option configures network construction.
type Option = nn.Option

// Errors

// ArchitectureError reports an architecture that cannot build a network.
type ArchitectureError = nn.ArchitectureError

// ShapeError reports a vector that does not fit a layer.
type ShapeError = nn.ShapeError

// Sentinel errors.
var (
	ErrInvalidArchitecture = nn.ErrInvalidArchitecture
	ErrShapeMismatch       = nn.ErrShapeMismatch
)

// NewNetwork builds a network with one layer per architecture entry.
//
// Example:
//
//	net, err := nn.NewNetwork([]int{2, 4, 3, 2, 1}, nn.WithSeed(42))
func NewNetwork(architecture []int, opts ...Option) (*Network, error) {
	return nn.NewNetwork(architecture, opts...)
}

// WithSeed makes initialization deterministic.
func WithSeed(seed uint64) Option {
	return nn.WithSeed(seed)
}

// Forward runs inputs through the network and returns the outputs.
func Forward(net *Network, inputs []float64) ([]float64, error) {
	return nn.Forward(net, inputs)
}

// Backward computes deltas and weight gradients against expected.
func Backward(net *Network, expected []float64) error {
	return nn.Backward(net, expected)
}

// ComputeLoss returns the mean summed squared error over data (XOR when nil).
func ComputeLoss(net *Network, data []Sample) (float64, error) {
	return nn.ComputeLoss(net, data)
}

// Reinitialize redraws weights and biases in place and clears pass state.
func Reinitialize(net *Network) {
	nn.Reinitialize(net)
}

// XOR returns the 4-row XOR table.
func XOR() []Sample {
	return nn.XOR()
}

// Sigmoid returns 1 / (1 + exp(-x)).
func Sigmoid(x float64) float64 {
	return nn.Sigmoid(x)
}

// SigmoidDerivative returns a * (1 - a) for an activation a.
func SigmoidDerivative(activation float64) float64 {
	return nn.SigmoidDerivative(activation)
}
