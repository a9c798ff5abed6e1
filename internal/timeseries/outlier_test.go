package timeseries

import (
	"errors"
	"testing"

	"auctionpulse/internal/domain"
)

func TestSuppressOutliers(t *testing.T) {
	t.Run("insufficient data", func(t *testing.T) {
		_, err := SuppressOutliers([]float64{42})
		if err == nil {
			t.Fatal("Expected error for single-element input")
		}
		if !errors.Is(err, domain.ErrInsufficientData) {
			t.Errorf("Expected ErrInsufficientData, got %v", err)
		}
	})

	t.Run("tame input unchanged", func(t *testing.T) {
		in := []float64{10, 11, 12, 11, 10, 12, 11}
		out, err := SuppressOutliers(in)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		for i := range in {
			if out[i] != in[i] {
				t.Errorf("Value %d changed: %f -> %f", i, in[i], out[i])
			}
		}
	})

	t.Run("extreme value replaced", func(t *testing.T) {
		in := []float64{10, 11, 12, 11, 10, 12, 11, 10, 12, 1000}
		out, err := SuppressOutliers(in)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if len(out) != len(in) {
			t.Fatalf("Length changed: %d -> %d", len(in), len(out))
		}
		if out[len(out)-1] >= 1000 {
			t.Errorf("Expected spike to be suppressed, got %f", out[len(out)-1])
		}
		// The tame values stay inside their original neighborhood.
		for i := 0; i < len(out)-1; i++ {
			if out[i] < 9 || out[i] > 13 {
				t.Errorf("Tame value %d moved out of range: %f", i, out[i])
			}
		}
	})

	t.Run("idempotent once values are within bounds", func(t *testing.T) {
		// With every value inside mean +/- 2 stdev, suppression is the
		// identity, so applying it twice equals applying it once.
		in := []float64{10, 11, 12, 11, 10, 12, 11}
		once, err := SuppressOutliers(in)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		twice, err := SuppressOutliers(once)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		for i := range once {
			if once[i] != twice[i] {
				t.Errorf("Not idempotent at %d: %f vs %f", i, once[i], twice[i])
			}
		}
	})

	t.Run("deterministic", func(t *testing.T) {
		in := []float64{5, 9, 7, 300, 6, 8}
		a, err := SuppressOutliers(in)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		b, err := SuppressOutliers(in)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		for i := range a {
			if a[i] != b[i] {
				t.Errorf("Nondeterministic output at %d: %f vs %f", i, a[i], b[i])
			}
		}
	})
}
