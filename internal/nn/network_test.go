package nn

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var defaultArch = []int{2, 4, 3, 2, 1}

func TestNewNetwork_Topology(t *testing.T) {
	net, err := NewNetwork(defaultArch, WithSeed(1))
	require.NoError(t, err)

	assert.Equal(t, 12, net.TotalNeurons())
	assert.Equal(t, 2*4+4*3+3*2+2*1, net.TotalWeights())
	assert.Equal(t, defaultArch, net.Architecture())
	assert.Equal(t, 2, net.InputSize())
	assert.Equal(t, 1, net.OutputSize())
	require.Len(t, net.Layers(), len(defaultArch))

	ids := make(map[string]bool)
	for i, layer := range net.Layers() {
		assert.Equal(t, i, layer.Index)
		assert.Equal(t, defaultArch[i], layer.Size())
		assert.Equal(t, LayerTypeAt(i, len(defaultArch)), layer.Type)
		for p, neuron := range layer.Neurons {
			assert.Equal(t, i, neuron.LayerIndex)
			assert.Equal(t, p, neuron.Position)
			assert.False(t, ids[neuron.ID], "duplicate neuron id %s", neuron.ID)
			ids[neuron.ID] = true
		}
	}

	pairs := make(map[[2]string]bool)
	for _, w := range net.Weights() {
		assert.False(t, ids[w.ID], "weight id %s collides", w.ID)
		ids[w.ID] = true

		from, ok := net.NeuronByID(w.FromID)
		require.True(t, ok)
		to, ok := net.NeuronByID(w.ToID)
		require.True(t, ok)
		assert.Equal(t, from.LayerIndex+1, to.LayerIndex)

		key := [2]string{w.FromID, w.ToID}
		assert.False(t, pairs[key], "duplicate connection %v", key)
		pairs[key] = true
	}
	assert.Len(t, pairs, net.TotalWeights())
}

func TestNewNetwork_IDs(t *testing.T) {
	net, err := NewNetwork([]int{2, 2, 1}, WithSeed(1))
	require.NoError(t, err)

	assert.Equal(t, "i0_0", net.Layer(0).Neurons[0].ID)
	assert.Equal(t, "h1_1", net.Layer(1).Neurons[1].ID)
	assert.Equal(t, "o2_0", net.Layer(2).Neurons[0].ID)

	_, ok := net.WeightByID("w_i0_1_h1_0")
	assert.True(t, ok)
	_, ok = net.WeightByID("w_h1_1_o2_0")
	assert.True(t, ok)
	_, ok = net.WeightByID("w_i0_0_o2_0")
	assert.False(t, ok, "no skip connections")
}

func TestLayerTypeAt(t *testing.T) {
	assert.Equal(t, Input, LayerTypeAt(0, 5))
	assert.Equal(t, Hidden, LayerTypeAt(1, 5))
	assert.Equal(t, Hidden, LayerTypeAt(3, 5))
	assert.Equal(t, Output, LayerTypeAt(4, 5))
	assert.Equal(t, Output, LayerTypeAt(1, 2))
	assert.Equal(t, "hidden", Hidden.String())
}

func TestNewNetwork_InvalidArchitecture(t *testing.T) {
	tests := []struct {
		name string
		arch []int
	}{
		{"nil", nil},
		{"single layer", []int{2}},
		{"zero size", []int{2, 0, 1}},
		{"negative size", []int{2, -3, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			net, err := NewNetwork(tt.arch)
			assert.Nil(t, net)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidArchitecture))

			var archErr *ArchitectureError
			require.ErrorAs(t, err, &archErr)
			assert.Equal(t, len(tt.arch), len(archErr.Architecture))
		})
	}
}

func TestNewNetwork_Initialization(t *testing.T) {
	net, err := NewNetwork(defaultArch, WithSeed(7))
	require.NoError(t, err)

	for _, neuron := range net.Layer(0).Neurons {
		assert.Equal(t, 0.0, neuron.Bias, "input bias must be 0")
	}

	for l := 1; l < len(defaultArch); l++ {
		bound := 0.1 * XavierLimit(defaultArch[l-1], defaultArch[l])
		for _, neuron := range net.Layer(l).Neurons {
			assert.LessOrEqual(t, math.Abs(neuron.Bias), bound)
		}
	}

	nonZero := 0
	for _, w := range net.Weights() {
		fanIn := defaultArch[w.From().Layer]
		fanOut := defaultArch[w.To().Layer]
		assert.LessOrEqual(t, math.Abs(w.Value), 2*XavierLimit(fanIn, fanOut))
		assert.Equal(t, 0.0, w.Gradient)
		if w.Value != 0 {
			nonZero++
		}
	}
	assert.Equal(t, net.TotalWeights(), nonZero)
}

func TestNewNetwork_SeedIsDeterministic(t *testing.T) {
	a, err := NewNetwork(defaultArch, WithSeed(99))
	require.NoError(t, err)
	b, err := NewNetwork(defaultArch, WithSeed(99))
	require.NoError(t, err)
	c, err := NewNetwork(defaultArch, WithSeed(100))
	require.NoError(t, err)

	assert.Equal(t, a.Snapshot(), b.Snapshot())
	assert.NotEqual(t, a.Snapshot().Weights, c.Snapshot().Weights)
}

func TestAdjacencyIndex(t *testing.T) {
	net, err := NewNetwork(defaultArch, WithSeed(3))
	require.NoError(t, err)

	in := net.IncomingWeights("h2_1")
	require.Len(t, in, 4)
	for i, w := range in {
		assert.Equal(t, "h2_1", w.ToID)
		assert.Equal(t, i, w.From().Position)
	}

	out := net.OutgoingWeights("h2_1")
	require.Len(t, out, 2)
	for _, w := range out {
		assert.Equal(t, "h2_1", w.FromID)
	}

	assert.Nil(t, net.IncomingWeights("i0_0"))
	assert.Nil(t, net.OutgoingWeights("o4_0"))
	assert.Nil(t, net.IncomingWeights("missing"))

	// Pointers from the index alias the arena.
	out[0].Value = 123
	w, ok := net.WeightByID(out[0].ID)
	require.True(t, ok)
	assert.Equal(t, 123.0, w.Value)
}

func TestLookups_Missing(t *testing.T) {
	net, err := NewNetwork([]int{2, 1}, WithSeed(1))
	require.NoError(t, err)

	_, ok := net.NeuronByID("h1_0")
	assert.False(t, ok)
	_, ok = net.WeightByID("w_x")
	assert.False(t, ok)
	assert.Nil(t, net.Layer(2))
	assert.Nil(t, net.Layer(-1))
}

func TestReinitialize(t *testing.T) {
	net, err := NewNetwork(defaultArch, WithSeed(11))
	require.NoError(t, err)

	// Dirty every piece of per-pass state.
	for _, s := range XOR() {
		_, err := Forward(net, s.Inputs)
		require.NoError(t, err)
		require.NoError(t, Backward(net, s.Expected))
	}

	before := net.Snapshot()
	firstLayer := net.Layer(1)
	firstWeight := &net.Weights()[0]

	Reinitialize(net)
	after := net.Snapshot()

	require.Len(t, after.Weights, len(before.Weights))
	changed := 0
	for i := range after.Weights {
		assert.Equal(t, before.Weights[i].ID, after.Weights[i].ID)
		assert.Equal(t, before.Weights[i].FromID, after.Weights[i].FromID)
		assert.Equal(t, before.Weights[i].ToID, after.Weights[i].ToID)
		assert.Equal(t, 0.0, after.Weights[i].Gradient)
		if after.Weights[i].Value != before.Weights[i].Value {
			changed++
		}
	}
	assert.Greater(t, changed, len(after.Weights)/2)

	for l, layer := range after.Layers {
		for p, neuron := range layer.Neurons {
			assert.Equal(t, before.Layers[l].Neurons[p].ID, neuron.ID)
			assert.Equal(t, 0.0, neuron.Activation)
			assert.Equal(t, 0.0, neuron.PreActivation)
			assert.Equal(t, 0.0, neuron.Delta)
			if l == 0 {
				assert.Equal(t, 0.0, neuron.Bias)
			} else {
				bound := 0.1 * XavierLimit(defaultArch[l-1], defaultArch[l])
				assert.LessOrEqual(t, math.Abs(neuron.Bias), bound)
			}
		}
	}

	// Same arena, same pointers.
	assert.Same(t, firstLayer, net.Layer(1))
	assert.Same(t, firstWeight, &net.Weights()[0])
}

func TestWeightMatrix(t *testing.T) {
	net, err := NewNetwork(defaultArch, WithSeed(5))
	require.NoError(t, err)

	m, err := net.WeightMatrix(1)
	require.NoError(t, err)
	r, c := m.Dims()
	assert.Equal(t, 4, r)
	assert.Equal(t, 3, c)

	w, ok := net.WeightByID("w_h1_2_h2_1")
	require.True(t, ok)
	assert.Equal(t, w.Value, m.At(2, 1))

	_, err = net.WeightMatrix(4)
	assert.Error(t, err)
	_, err = net.WeightMatrix(-1)
	assert.Error(t, err)
}

func TestSnapshot_IsDetachedAndEncodable(t *testing.T) {
	net, err := NewNetwork([]int{2, 2, 1}, WithSeed(2))
	require.NoError(t, err)

	snap := net.Snapshot()
	snap.Layers[1].Neurons[0].Bias = 42
	snap.Weights[0].Value = 42
	assert.NotEqual(t, 42.0, net.Layer(1).Neurons[0].Bias)
	assert.NotEqual(t, 42.0, net.Weights()[0].Value)

	data, err := json.Marshal(net.Snapshot())
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Contains(t, decoded, "architecture")
	assert.Contains(t, string(data), `"type":"hidden"`)
	assert.Contains(t, string(data), `"id":"w_i0_0_h1_0"`)

	var back Snapshot
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, Output, back.Layers[len(back.Layers)-1].Type)
	assert.Equal(t, net.Weights()[0].Value, back.Weights[0].Value)
}

func TestLayerTypeText(t *testing.T) {
	for _, lt := range []LayerType{Input, Hidden, Output} {
		text, err := lt.MarshalText()
		require.NoError(t, err)
		var back LayerType
		require.NoError(t, back.UnmarshalText(text))
		assert.Equal(t, lt, back)
	}
	var bad LayerType
	assert.Error(t, bad.UnmarshalText([]byte("middle")))
}
