package core

import (
	"testing"
)

// TestComputeSequenceDigestDeterministic tests that equal sequences digest equally
func TestComputeSequenceDigestDeterministic(t *testing.T) {
	a := ComputeSequenceDigest([]string{"1.5", "2.5", "3.5"})
	b := ComputeSequenceDigest([]string{"1.5", "2.5", "3.5"})
	if !a.Equals(b) {
		t.Errorf("Equal sequences produced different digests: %s vs %s", a, b)
	}
}

// TestComputeSequenceDigestOrderSensitive tests that order changes the digest
func TestComputeSequenceDigestOrderSensitive(t *testing.T) {
	a := ComputeSequenceDigest([]string{"1", "2"})
	b := ComputeSequenceDigest([]string{"2", "1"})
	if a.Equals(b) {
		t.Error("Reordered sequence produced the same digest")
	}
}

// TestComputeSequenceDigestBoundaries tests that value boundaries cannot collide
func TestComputeSequenceDigestBoundaries(t *testing.T) {
	a := ComputeSequenceDigest([]string{"1", "23"})
	b := ComputeSequenceDigest([]string{"12", "3"})
	if a.Equals(b) {
		t.Error("Shifted value boundaries produced the same digest")
	}
}
