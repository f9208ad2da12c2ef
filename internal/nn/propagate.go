package nn

// Forward runs inputs through the network and returns the output layer's
// activations in neuron order.
//
// Every neuron's Activation and PreActivation are overwritten. Input neurons
// take their value unchanged; every later neuron computes
//
//	z = bias + Σ source.Activation * w.Value
//	a = σ(z)
//
// layer by layer, in order. A length mismatch between inputs and the input
// layer returns a *ShapeError and leaves the network untouched.
func Forward(n *Network, inputs []float64) ([]float64, error) {
	in := &n.layers[0]
	if len(inputs) != in.Size() {
		return nil, &ShapeError{Layer: "input", Expected: in.Size(), Got: len(inputs)}
	}

	for i := range in.Neurons {
		in.Neurons[i].Activation = inputs[i]
		in.Neurons[i].PreActivation = inputs[i]
	}

	for l := 1; l < len(n.layers); l++ {
		prev := n.layers[l-1].Neurons
		layer := n.layers[l].Neurons
		for p := range layer {
			neuron := &layer[p]
			sum := neuron.Bias
			for _, idx := range n.incoming[n.layerStart[l]+p] {
				w := &n.weights[idx]
				sum += prev[w.from.Position].Activation * w.Value
			}
			neuron.PreActivation = sum
			neuron.Activation = Sigmoid(sum)
		}
	}

	return n.layers[len(n.layers)-1].Activations(), nil
}

// Backward backpropagates the error against expected through the activations
// left by the preceding Forward call on the same sample.
//
// Output neurons get delta = (a - y) * a(1-a). Hidden layers, from the output
// side towards the input side, get delta = a(1-a) * Σ w.Value * target.Delta
// over their outgoing weights. Input deltas are not computed. Once every
// delta is settled, a second pass sets w.Gradient = source.Activation *
// target.Delta for every weight.
func Backward(n *Network, expected []float64) error {
	last := len(n.layers) - 1
	out := n.layers[last].Neurons
	if len(expected) != len(out) {
		return &ShapeError{Layer: "output", Expected: len(out), Got: len(expected)}
	}

	for i := range out {
		a := out[i].Activation
		out[i].Delta = (a - expected[i]) * SigmoidDerivative(a)
	}

	for l := last - 1; l > 0; l-- {
		next := n.layers[l+1].Neurons
		layer := n.layers[l].Neurons
		for p := range layer {
			var sum float64
			for _, idx := range n.outgoing[n.layerStart[l]+p] {
				w := &n.weights[idx]
				sum += w.Value * next[w.to.Position].Delta
			}
			layer[p].Delta = SigmoidDerivative(layer[p].Activation) * sum
		}
	}

	for i := range n.weights {
		w := &n.weights[i]
		w.Gradient = n.neuron(w.from).Activation * n.neuron(w.to).Delta
	}

	return nil
}
