package timeseries

import (
	"math"
	"testing"
)

func TestRollingMean(t *testing.T) {
	tests := []struct {
		name    string
		values  []float64
		window  int
		want    []float64 // NaN marks a missing output
		wantErr bool
	}{
		{
			name:   "window of three",
			values: []float64{100, 102, 101, 103, 104},
			window: 3,
			want:   []float64{math.NaN(), math.NaN(), 101, 102, 102.666667},
		},
		{
			name:   "window of one is identity",
			values: []float64{5, 7, 9},
			window: 1,
			want:   []float64{5, 7, 9},
		},
		{
			name:   "window larger than input",
			values: []float64{1, 2},
			window: 4,
			want:   []float64{math.NaN(), math.NaN()},
		},
		{
			name:   "empty input",
			values: nil,
			window: 2,
			want:   []float64{},
		},
		{
			name:    "non-positive window",
			values:  []float64{1, 2},
			window:  0,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := RollingMean(tt.values, tt.window)
			if tt.wantErr {
				if err == nil {
					t.Error("Expected error but got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if len(got) != len(tt.values) {
				t.Fatalf("Expected output length %d, got %d", len(tt.values), len(got))
			}
			for i := range tt.want {
				if math.IsNaN(tt.want[i]) {
					if !math.IsNaN(got[i]) {
						t.Errorf("Output %d: expected missing marker, got %f", i, got[i])
					}
					continue
				}
				if got[i]-tt.want[i] > 0.0001 || got[i]-tt.want[i] < -0.0001 {
					t.Errorf("Output %d: expected %f, got %f", i, tt.want[i], got[i])
				}
			}
		})
	}
}
