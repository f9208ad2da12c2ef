package nn

import "fmt"

// LayerType classifies a layer by its position in the network.
type LayerType int

// Layer types.
const (
	Input LayerType = iota
	Hidden
	Output
)

// String returns "input", "hidden" or "output".
func (t LayerType) String() string {
	switch t {
	case Input:
		return "input"
	case Hidden:
		return "hidden"
	case Output:
		return "output"
	default:
		return fmt.Sprintf("LayerType(%d)", int(t))
	}
}

// MarshalText encodes the type by name.
func (t LayerType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText decodes a name produced by MarshalText.
func (t *LayerType) UnmarshalText(text []byte) error {
	switch string(text) {
	case "input":
		*t = Input
	case "hidden":
		*t = Hidden
	case "output":
		*t = Output
	default:
		return fmt.Errorf("unknown layer type %q", text)
	}
	return nil
}

// prefix is the neuron id prefix for layers of this type.
func (t LayerType) prefix() string {
	switch t {
	case Input:
		return "i"
	case Output:
		return "o"
	default:
		return "h"
	}
}

// LayerTypeAt derives the type of layer index in a network of total layers:
// 0 is the input layer, total-1 the output layer, everything else hidden.
func LayerTypeAt(index, total int) LayerType {
	switch index {
	case 0:
		return Input
	case total - 1:
		return Output
	default:
		return Hidden
	}
}

// Neuron is a single unit of a layer.
//
// Input neurons pass their value through unchanged and never carry a bias.
// Delta is only meaningful between a Backward call and the next Forward.
type Neuron struct {
	ID            string  `json:"id"`
	LayerIndex    int     `json:"layer"`
	Position      int     `json:"position"`
	Bias          float64 `json:"bias"`
	Activation    float64 `json:"activation"`
	PreActivation float64 `json:"pre_activation"`
	Delta         float64 `json:"delta"`
}

// reset clears the per-pass state and keeps the bias.
func (n *Neuron) reset() {
	n.Activation = 0
	n.PreActivation = 0
	n.Delta = 0
}

// NeuronRef addresses a neuron inside a Network's arena.
type NeuronRef struct {
	Layer    int
	Position int
}

// Layer is an ordered group of neurons of one type.
type Layer struct {
	Index   int       `json:"index"`
	Type    LayerType `json:"type"`
	Neurons []Neuron  `json:"neurons"`
}

// newLayer creates size zeroed neurons for layer index of a total-layer network.
func newLayer(index, size, total int) Layer {
	typ := LayerTypeAt(index, total)
	neurons := make([]Neuron, size)
	for i := range neurons {
		neurons[i] = Neuron{
			ID:         fmt.Sprintf("%s%d_%d", typ.prefix(), index, i),
			LayerIndex: index,
			Position:   i,
		}
	}
	return Layer{Index: index, Type: typ, Neurons: neurons}
}

// Size returns the number of neurons in the layer.
func (l *Layer) Size() int {
	return len(l.Neurons)
}

// Activations returns a copy of the layer's activations in neuron order.
func (l *Layer) Activations() []float64 {
	out := make([]float64, len(l.Neurons))
	for i := range l.Neurons {
		out[i] = l.Neurons[i].Activation
	}
	return out
}
