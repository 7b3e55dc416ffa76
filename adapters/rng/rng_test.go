package rng

import "testing"

func TestNewStreamDeterminism(t *testing.T) {
	a := NewStream(53)
	b := NewStream(53)

	for i := 0; i < 100; i++ {
		va, vb := a.Float64(), b.Float64()
		if va != vb {
			t.Fatalf("draw %d diverged: %v != %v", i, va, vb)
		}
		if va < 0 || va >= 1 {
			t.Fatalf("draw %d out of [0,1): %v", i, va)
		}
	}
}

func TestNewStreamSeedsDiffer(t *testing.T) {
	a := NewStream(53)
	b := NewStream(54)

	same := true
	for i := 0; i < 10; i++ {
		if a.Float64() != b.Float64() {
			same = false
			break
		}
	}
	if same {
		t.Error("different seeds produced identical streams")
	}
}
