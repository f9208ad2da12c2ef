// Package nn implements the xornet training engine's network model.
//
// This package provides:
//   - Network: layered, fully connected sigmoid network with id lookups
//   - Forward / Backward: propagation of activations and error terms
//   - ComputeLoss: mean summed squared error over a sample table
//   - XOR: the fixed 4-row training table
//
// Parameter updates live in the optim package.
package nn

import (
	"fmt"
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"
)

// Weight is a directed connection between neurons of adjacent layers.
//
// Gradient is scratch space written by Backward and consumed by the
// optimizer. It is stale after the next Forward.
type Weight struct {
	ID       string  `json:"id"`
	FromID   string  `json:"from"`
	ToID     string  `json:"to"`
	Value    float64 `json:"value"`
	Gradient float64 `json:"gradient"`

	from NeuronRef
	to   NeuronRef
}

// From returns the arena position of the source neuron.
func (w *Weight) From() NeuronRef { return w.from }

// To returns the arena position of the target neuron.
func (w *Weight) To() NeuronRef { return w.to }

// Network is a fully connected, strictly layered sigmoid network.
//
// Neurons and weights live in arenas owned by the Network and are addressed
// by position or by id. Training mutates the Network in place and
// Reinitialize redraws its parameters without changing any identity, so ids
// and pointers handed out earlier stay valid for the Network's lifetime.
//
// A Network is not safe for concurrent use.
type Network struct {
	layers       []Layer
	weights      []Weight
	architecture []int

	neuronIndex map[string]NeuronRef
	weightIndex map[string]int

	// Per neuron ordinal (layerStart[l] + position): arena indices of the
	// weights entering and leaving that neuron.
	layerStart []int
	incoming   [][]int
	outgoing   [][]int

	rng *rand.Rand
}

// NewNetwork builds a network with one layer per entry of architecture.
//
// Layer 0 is the input layer and the last one the output layer. Every neuron
// of layer i is connected to every neuron of layer i+1. Weights are drawn from
// a 2x scaled Xavier distribution and non-input biases from a 0.1x scaled one.
//
// Example:
//
//	net, err := nn.NewNetwork([]int{2, 4, 3, 2, 1}, nn.WithSeed(42))
func NewNetwork(architecture []int, opts ...Option) (*Network, error) {
	if err := validateArchitecture(architecture); err != nil {
		return nil, err
	}

	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.rng == nil {
		o.rng = defaultRand()
	}

	n := &Network{
		layers:       make([]Layer, len(architecture)),
		architecture: append([]int(nil), architecture...),
		neuronIndex:  make(map[string]NeuronRef),
		weightIndex:  make(map[string]int),
		layerStart:   make([]int, len(architecture)),
		rng:          o.rng,
	}

	total := 0
	for i, size := range architecture {
		n.layers[i] = newLayer(i, size, len(architecture))
		n.layerStart[i] = total
		total += size
		for p := range n.layers[i].Neurons {
			n.neuronIndex[n.layers[i].Neurons[p].ID] = NeuronRef{Layer: i, Position: p}
		}
	}
	n.incoming = make([][]int, total)
	n.outgoing = make([][]int, total)

	n.initBiases()
	n.connect()

	return n, nil
}

func validateArchitecture(architecture []int) error {
	if len(architecture) < 2 {
		return &ArchitectureError{
			Architecture: append([]int(nil), architecture...),
			Reason:       "network must have at least 2 layers (input and output)",
		}
	}
	for i, size := range architecture {
		if size <= 0 {
			return &ArchitectureError{
				Architecture: append([]int(nil), architecture...),
				Reason:       fmt.Sprintf("layer %d has non-positive size %d", i, size),
			}
		}
	}
	return nil
}

// connect creates the weights between every adjacent pair of layers in
// (from, to) row-major order and fills the adjacency index.
func (n *Network) connect() {
	count := 0
	for i := 0; i < len(n.architecture)-1; i++ {
		count += n.architecture[i] * n.architecture[i+1]
	}
	n.weights = make([]Weight, 0, count)

	for l := 0; l < len(n.layers)-1; l++ {
		from, to := &n.layers[l], &n.layers[l+1]
		fanIn, fanOut := from.Size(), to.Size()
		for a := range from.Neurons {
			for b := range to.Neurons {
				src, dst := &from.Neurons[a], &to.Neurons[b]
				w := Weight{
					ID:     "w_" + src.ID + "_" + dst.ID,
					FromID: src.ID,
					ToID:   dst.ID,
					Value:  initWeight(n.rng, fanIn, fanOut),
					from:   NeuronRef{Layer: l, Position: a},
					to:     NeuronRef{Layer: l + 1, Position: b},
				}
				idx := len(n.weights)
				n.weights = append(n.weights, w)
				n.weightIndex[w.ID] = idx
				n.outgoing[n.ordinal(w.from)] = append(n.outgoing[n.ordinal(w.from)], idx)
				n.incoming[n.ordinal(w.to)] = append(n.incoming[n.ordinal(w.to)], idx)
			}
		}
	}
}

// initBiases draws every non-input bias; input biases are forced to 0.
func (n *Network) initBiases() {
	for i := range n.layers {
		layer := &n.layers[i]
		for p := range layer.Neurons {
			if i == 0 {
				layer.Neurons[p].Bias = 0
				continue
			}
			layer.Neurons[p].Bias = initBias(n.rng, n.architecture[i-1], n.architecture[i])
		}
	}
}

// Reinitialize redraws every weight and non-input bias with the construction
// formulas and zeroes gradients, activations, pre-activations and deltas.
// Topology, ids and arena positions are left untouched.
func (n *Network) Reinitialize() {
	for i := range n.weights {
		w := &n.weights[i]
		fanIn := n.architecture[w.from.Layer]
		fanOut := n.architecture[w.to.Layer]
		w.Value = initWeight(n.rng, fanIn, fanOut)
		w.Gradient = 0
	}
	for i := range n.layers {
		for p := range n.layers[i].Neurons {
			n.layers[i].Neurons[p].reset()
		}
	}
	n.initBiases()
}

// Reinitialize is the functional form of (*Network).Reinitialize.
func Reinitialize(n *Network) {
	n.Reinitialize()
}

func (n *Network) ordinal(ref NeuronRef) int {
	return n.layerStart[ref.Layer] + ref.Position
}

func (n *Network) neuron(ref NeuronRef) *Neuron {
	return &n.layers[ref.Layer].Neurons[ref.Position]
}

// Architecture returns a copy of the layer sizes.
func (n *Network) Architecture() []int {
	return append([]int(nil), n.architecture...)
}

// Layers returns the network's layers. The slice is shared with the Network;
// callers may read it but must not resize it.
func (n *Network) Layers() []Layer {
	return n.layers
}

// Layer returns layer i, or nil when i is out of range.
func (n *Network) Layer(i int) *Layer {
	if i < 0 || i >= len(n.layers) {
		return nil
	}
	return &n.layers[i]
}

// Weights returns the flat weight arena. The slice is shared with the Network.
func (n *Network) Weights() []Weight {
	return n.weights
}

// InputSize returns the number of input neurons.
func (n *Network) InputSize() int { return n.architecture[0] }

// OutputSize returns the number of output neurons.
func (n *Network) OutputSize() int { return n.architecture[len(n.architecture)-1] }

// TotalNeurons returns the neuron count over all layers.
func (n *Network) TotalNeurons() int { return len(n.incoming) }

// TotalWeights returns the number of weights.
func (n *Network) TotalWeights() int { return len(n.weights) }

// NeuronByID looks up a neuron in O(1).
func (n *Network) NeuronByID(id string) (*Neuron, bool) {
	ref, ok := n.neuronIndex[id]
	if !ok {
		return nil, false
	}
	return n.neuron(ref), true
}

// WeightByID looks up a weight in O(1).
func (n *Network) WeightByID(id string) (*Weight, bool) {
	idx, ok := n.weightIndex[id]
	if !ok {
		return nil, false
	}
	return &n.weights[idx], true
}

// IncomingWeights returns the weights ending at neuron id, ordered by source
// position. Input neurons and unknown ids yield nil.
func (n *Network) IncomingWeights(id string) []*Weight {
	ref, ok := n.neuronIndex[id]
	if !ok {
		return nil
	}
	return n.collect(n.incoming[n.ordinal(ref)])
}

// OutgoingWeights returns the weights starting at neuron id, ordered by
// target position. Output neurons and unknown ids yield nil.
func (n *Network) OutgoingWeights(id string) []*Weight {
	ref, ok := n.neuronIndex[id]
	if !ok {
		return nil
	}
	return n.collect(n.outgoing[n.ordinal(ref)])
}

func (n *Network) collect(indices []int) []*Weight {
	if len(indices) == 0 {
		return nil
	}
	out := make([]*Weight, len(indices))
	for i, idx := range indices {
		out[i] = &n.weights[idx]
	}
	return out
}

// WeightMatrix returns a copy of the weights leaving layer as a
// size(layer) x size(layer+1) matrix: element (a, b) connects neuron a of
// layer to neuron b of the next layer.
func (n *Network) WeightMatrix(layer int) (*mat.Dense, error) {
	if layer < 0 || layer >= len(n.layers)-1 {
		return nil, fmt.Errorf("weight matrix: layer %d has no outgoing weights (network has %d layers)",
			layer, len(n.layers))
	}
	rows, cols := n.architecture[layer], n.architecture[layer+1]
	m := mat.NewDense(rows, cols, nil)
	for a := 0; a < rows; a++ {
		for _, idx := range n.outgoing[n.layerStart[layer]+a] {
			w := &n.weights[idx]
			m.Set(a, w.to.Position, w.Value)
		}
	}
	return m, nil
}
