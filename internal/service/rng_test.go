package service

import "testing"

// stubRand replays fixed sequences. Exhausted sequences fall back to 0.5 for
// Float64 and 0 for Intn so tests only spell out the draws they care about.
type stubRand struct {
	floats []float64
	ints   []int
	fi, ii int
}

func (r *stubRand) Float64() float64 {
	if r.fi < len(r.floats) {
		v := r.floats[r.fi]
		r.fi++
		return v
	}
	return 0.5
}

func (r *stubRand) Intn(n int) int {
	if r.ii < len(r.ints) {
		v := r.ints[r.ii]
		r.ii++
		return v % n
	}
	return 0
}

func TestWeightedPick(t *testing.T) {
	weights := []float64{0.1, 0.4, 0.2, 0.1}

	cases := []struct {
		name string
		roll float64
		want int
	}{
		{"low roll hits first bucket", 0.0, 0},
		{"second bucket", 0.3, 1},
		{"third bucket", 0.7, 2},
		{"high roll hits last bucket", 0.99, 3},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := weightedPick(&stubRand{floats: []float64{tc.roll}}, weights)
			if got != tc.want {
				t.Fatalf("weightedPick(roll=%v) = %d, want %d", tc.roll, got, tc.want)
			}
		})
	}

	t.Run("degenerate weights pick last index", func(t *testing.T) {
		got := weightedPick(&stubRand{}, []float64{0, 0, 0})
		if got != 2 {
			t.Fatalf("weightedPick with zero weights = %d, want 2", got)
		}
	})
}

func TestNewRandIsDeterministicPerSeed(t *testing.T) {
	a, b := NewRand(42), NewRand(42)
	for i := 0; i < 10; i++ {
		if a.Float64() != b.Float64() {
			t.Fatalf("same seed diverged at draw %d", i)
		}
	}
}
