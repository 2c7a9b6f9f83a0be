package telemetry

import (
	"math"
	"testing"
)

func TestSummarize(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   Summary
	}{
		{"empty slice", nil, Summary{}},
		{"single element", []float64{5}, Summary{N: 1, Mean: 5, Min: 5, P10: 5, P50: 5, P90: 5, Max: 5}},
		{"unsorted", []float64{5, 1, 4, 2, 3}, Summary{N: 5, Mean: 3, Std: math.Sqrt(2.5), Min: 1, P10: 1, P50: 3, P90: 5, Max: 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Summarize(tt.values)
			if got.N != tt.want.N || got.Min != tt.want.Min || got.Max != tt.want.Max {
				t.Errorf("Summarize(%v) = %+v, want %+v", tt.values, got, tt.want)
			}
			for _, pair := range [][2]float64{
				{got.Mean, tt.want.Mean}, {got.Std, tt.want.Std},
				{got.P10, tt.want.P10}, {got.P50, tt.want.P50}, {got.P90, tt.want.P90},
			} {
				if math.Abs(pair[0]-pair[1]) > 0.001 {
					t.Errorf("Summarize(%v) = %+v, want %+v", tt.values, got, tt.want)
					break
				}
			}
		})
	}
}

func TestSummarizeDoesNotReorderInput(t *testing.T) {
	values := []float64{3, 1, 2}
	Summarize(values)
	if values[0] != 3 || values[1] != 1 || values[2] != 2 {
		t.Errorf("input reordered: %v", values)
	}
}
