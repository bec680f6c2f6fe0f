package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMinima(t *testing.T) {
	tests := []struct {
		name    string
		profile []float64
		want    []int
	}{
		{"double well", []float64{3, 1, 2, 0.5, 4}, []int{1, 3}},
		{"single well", []float64{2, 1, 2}, []int{1}},
		{"monotonic decreasing", []float64{5, 4, 3, 2, 1}, nil},
		{"monotonic increasing", []float64{1, 2, 3, 4, 5}, nil},
		{"endpoint low is not a minimum", []float64{0, 1, 2, 1.5}, nil},
		{"plateau at bottom", []float64{3, 1, 1, 1, 3}, nil},
		{"two-point plateau", []float64{3, 1, 1, 3}, nil},
		{"too short", []float64{1, 2}, nil},
		{"empty", nil, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Minima(tt.profile))
		})
	}
}

func TestMinimaNeverReturnsEndpoints(t *testing.T) {
	profile := []float64{-10, 5, 1, 5, -10}
	got := Minima(profile)
	assert.Equal(t, []int{2}, got)
	for _, i := range got {
		assert.Greater(t, i, 0)
		assert.Less(t, i, len(profile)-1)
		assert.Less(t, profile[i], profile[i-1])
		assert.Less(t, profile[i], profile[i+1])
	}
}
