package timeseries

import (
	"math/rand"
	"testing"
	"time"

	"auctionpulse/internal/domain"
)

// The jitter makes synthetic values nondeterministic, so these tests seed
// the random source and assert structural invariants rather than exact
// synthetic prices.

func testWindow() Window {
	return Window{
		Start: time.Date(2021, time.May, 21, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2021, time.May, 21, 6, 0, 0, 0, time.UTC),
	}
}

func seriesAround(w Window, hoursBefore, hoursAfter int) *domain.Series {
	s := domain.NewEmptySeries(hoursBefore + hoursAfter)
	for i := hoursBefore; i > 0; i-- {
		s.Append(w.Start.Add(-time.Duration(i-1)*time.Hour), 1000, 50)
	}
	for i := 0; i < hoursAfter; i++ {
		s.Append(w.End.Add(time.Duration(i)*time.Hour), 1600, 80)
	}
	return s
}

func TestRepairGap(t *testing.T) {
	w := testWindow()

	t.Run("bridges the outage", func(t *testing.T) {
		s := seriesAround(w, 5, 5)
		rng := rand.New(rand.NewSource(42))
		out := RepairGap(s, w, rng)

		hours := int(w.End.Sub(w.Start).Hours())
		if out.Len() != s.Len()+hours {
			t.Fatalf("Expected length %d, got %d", s.Len()+hours, out.Len())
		}
		if len(out.Prices) != len(out.Quantities) || len(out.Prices) != len(out.Times) {
			t.Fatal("Parallel slices diverged")
		}
		for i := 1; i < out.Len(); i++ {
			if out.Times[i].Before(out.Times[i-1]) {
				t.Fatalf("Timestamps not monotonic at %d: %v < %v", i, out.Times[i], out.Times[i-1])
			}
		}
		// The boundary samples appear exactly once each around the splice.
		if out.Prices[4] != 1000 {
			t.Errorf("Expected lastGood price 1000 before splice, got %v", out.Prices[4])
		}
		if out.Prices[5+hours] != 1600 {
			t.Errorf("Expected firstGood price 1600 after splice, got %v", out.Prices[5+hours])
		}
	})

	t.Run("input series untouched", func(t *testing.T) {
		s := seriesAround(w, 3, 3)
		before := s.Clone()
		RepairGap(s, w, rand.New(rand.NewSource(1)))
		for i := 0; i < s.Len(); i++ {
			if s.Prices[i] != before.Prices[i] || s.Quantities[i] != before.Quantities[i] {
				t.Fatalf("RepairGap mutated its input at %d", i)
			}
		}
	})

	t.Run("seeded runs agree", func(t *testing.T) {
		s := seriesAround(w, 4, 4)
		a := RepairGap(s, w, rand.New(rand.NewSource(7)))
		b := RepairGap(s, w, rand.New(rand.NewSource(7)))
		if a.Len() != b.Len() {
			t.Fatalf("Seeded runs produced different lengths: %d vs %d", a.Len(), b.Len())
		}
		for i := 0; i < a.Len(); i++ {
			if a.Prices[i] != b.Prices[i] || a.Quantities[i] != b.Quantities[i] {
				t.Errorf("Seeded runs diverged at %d", i)
			}
		}
	})

	t.Run("no-op when series starts after outage", func(t *testing.T) {
		s := domain.NewEmptySeries(3)
		for i := 0; i < 3; i++ {
			s.Append(w.End.Add(time.Duration(i)*time.Hour), 100, 10)
		}
		if out := RepairGap(s, w, rand.New(rand.NewSource(1))); out != s {
			t.Error("Expected the input series back unchanged")
		}
	})

	t.Run("no-op when series predates outage entirely", func(t *testing.T) {
		s := domain.NewEmptySeries(3)
		for i := 0; i < 3; i++ {
			s.Append(w.Start.Add(-time.Duration(10-i)*time.Hour), 100, 10)
		}
		if out := RepairGap(s, w, rand.New(rand.NewSource(1))); out != s {
			t.Error("Expected the input series back unchanged")
		}
	})

	t.Run("no-op when series ends inside outage", func(t *testing.T) {
		s := domain.NewEmptySeries(3)
		s.Append(w.Start.Add(-time.Hour), 100, 10)
		s.Append(w.Start, 100, 10)
		s.Append(w.Start.Add(time.Hour), 100, 10)
		if out := RepairGap(s, w, rand.New(rand.NewSource(1))); out != s {
			t.Error("Expected the input series back unchanged")
		}
	})

	t.Run("empty series", func(t *testing.T) {
		s := domain.NewEmptySeries(0)
		if out := RepairGap(s, w, rand.New(rand.NewSource(1))); out != s {
			t.Error("Expected the empty series back unchanged")
		}
	})
}

func TestOutageWindow(t *testing.T) {
	w := OutageWindow(time.UTC)
	if !w.Start.Before(w.End) {
		t.Fatalf("Outage window inverted: %v .. %v", w.Start, w.End)
	}
	if w.Start.Location() != time.UTC || w.End.Location() != time.UTC {
		t.Error("Window boundaries not in the requested location")
	}
}
