package nn

// Snapshot is a detached copy of a network's full state, ready to be encoded
// as JSON for a renderer. There is no way to build a Network from it.
type Snapshot struct {
	Architecture []int    `json:"architecture"`
	Layers       []Layer  `json:"layers"`
	Weights      []Weight `json:"weights"`
}

// Snapshot copies the current state of every layer and weight.
func (n *Network) Snapshot() Snapshot {
	layers := make([]Layer, len(n.layers))
	for i, l := range n.layers {
		layers[i] = Layer{
			Index:   l.Index,
			Type:    l.Type,
			Neurons: append([]Neuron(nil), l.Neurons...),
		}
	}
	return Snapshot{
		Architecture: n.Architecture(),
		Layers:       layers,
		Weights:      append([]Weight(nil), n.weights...),
	}
}
