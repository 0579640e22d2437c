package service

import "testing"

func TestSampleIndicesDistinctAndInRange(t *testing.T) {
	for trial := 0; trial < 50; trial++ {
		picks, err := sampleIndices(20, 5)
		if err != nil {
			t.Fatalf("sampling failed: %v", err)
		}
		if len(picks) != 5 {
			t.Fatalf("expected 5 picks, got %d", len(picks))
		}
		seen := make(map[int]bool)
		for _, idx := range picks {
			if idx < 0 || idx >= 20 {
				t.Fatalf("pick %d out of range", idx)
			}
			if seen[idx] {
				t.Fatalf("duplicate pick %d", idx)
			}
			seen[idx] = true
		}
	}
}

func TestSampleIndicesExhaustsPool(t *testing.T) {
	picks, err := sampleIndices(5, 5)
	if err != nil {
		t.Fatalf("sampling failed: %v", err)
	}
	seen := make(map[int]bool)
	for _, idx := range picks {
		seen[idx] = true
	}
	if len(seen) != 5 {
		t.Fatalf("expected a permutation of 0..4, got %v", picks)
	}
}

func TestSampleIndicesRejectsOversample(t *testing.T) {
	if _, err := sampleIndices(3, 5); err == nil {
		t.Fatal("expected error sampling 5 of 3")
	}
	if _, err := sampleIndices(5, -1); err == nil {
		t.Fatal("expected error for negative k")
	}
}
