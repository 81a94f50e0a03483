package engine

import (
	"math/rand"
	"testing"
)

func TestPseudoRandReproducible(t *testing.T) {
	t.Parallel()
	a, b := NewPseudoRand(1234), NewPseudoRand(1234)
	for i := 0; i < 100; i++ {
		if x, y := a.Uint64(), b.Uint64(); x != y {
			t.Fatalf("unexpected divergence at %d: got=%d want=%d", i, x, y)
		}
	}
}

func TestPseudoRandZeroSeed(t *testing.T) {
	t.Parallel()
	r := NewPseudoRand(0)
	for i := 0; i < 10; i++ {
		if r.Uint64() == 0 && r.Uint64() == 0 {
			t.Fatal("generator stuck at zero")
		}
	}
}

func TestPseudoRandInt63(t *testing.T) {
	t.Parallel()
	r := rand.New(NewPseudoRand(99))
	counts := make([]int, 6)
	for i := 0; i < 6000; i++ {
		n := r.Intn(len(counts))
		counts[n]++
	}
	for i, c := range counts {
		if c < 800 || c > 1200 {
			t.Errorf("unexpected bucket %d count: got=%d want~1000", i, c)
		}
	}
	if v := NewPseudoRand(5).Int63(); v < 0 {
		t.Errorf("unexpected negative value: got=%d", v)
	}
}
