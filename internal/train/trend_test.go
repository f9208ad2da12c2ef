package train

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeTrend(t *testing.T) {
	cfg := DefaultTrendConfig()

	tests := []struct {
		name     string
		current  float64
		previous float64
		want     Direction
	}{
		{"improving", 0.20, 0.25, Improving},
		{"worsening", 0.25, 0.20, Worsening},
		{"stable below threshold", 0.2500, 0.2505, Stable},
		{"converged wins over worsening", 0.009, 0.001, Converged},
		{"converged", 0.005, 0.2, Converged},
		{"at converged threshold", 0.01, 0.2, Improving},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			trend := ComputeTrend(tt.current, tt.previous, cfg)
			assert.Equal(t, tt.want, trend.Direction)
			assert.Equal(t, tt.current, trend.Current)
			assert.Equal(t, tt.previous, trend.Previous)
			assert.InDelta(t, tt.current-tt.previous, trend.Change, 1e-15)
		})
	}
}

func TestComputeTrend_CustomConfig(t *testing.T) {
	cfg := TrendConfig{ChangeThreshold: 0.1, ConvergedThreshold: 0}
	assert.Equal(t, Stable, ComputeTrend(0.3, 0.35, cfg).Direction)
	assert.Equal(t, Improving, ComputeTrend(0.1, 0.35, cfg).Direction)
}

func TestDirectionString(t *testing.T) {
	assert.Equal(t, "improving", Improving.String())
	assert.Equal(t, "worsening", Worsening.String())
	assert.Equal(t, "stable", Stable.String())
	assert.Equal(t, "converged", Converged.String())

	text, err := Converged.MarshalText()
	assert.NoError(t, err)
	assert.Equal(t, "converged", string(text))
}
