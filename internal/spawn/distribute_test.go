package spawn

import (
	"errors"
	"testing"
)

func TestDistributeSumsExactly(t *testing.T) {
	weights := []WeightEntry{
		{Type: 1, Weight: 0.5},
		{Type: 2, Weight: 0.3},
		{Type: 3, Weight: 0.2},
	}

	for _, total := range []int{0, 1, 7, 100} {
		counts, err := Distribute(total, weights)
		if err != nil {
			t.Fatalf("Distribute(%d) returned error: %v", total, err)
		}
		sum := 0
		for _, n := range counts {
			if n < 0 {
				t.Errorf("Distribute(%d) produced negative count %d", total, n)
			}
			sum += n
		}
		if sum != total {
			t.Errorf("Distribute(%d) counts sum to %d", total, sum)
		}
	}
}

func TestDistributeExactProportions(t *testing.T) {
	counts, err := Distribute(10, []WeightEntry{
		{Type: 1, Weight: 0.5},
		{Type: 2, Weight: 0.3},
		{Type: 3, Weight: 0.2},
	})
	if err != nil {
		t.Fatal(err)
	}
	if counts[0] != 5 || counts[1] != 3 || counts[2] != 2 {
		t.Errorf("expected [5 3 2], got %v", counts)
	}
}

func TestDistributeRemainderToLargestWeight(t *testing.T) {
	// Each rounds to 3, sum 9, the missing 1 goes to the largest weight.
	counts, err := Distribute(10, []WeightEntry{
		{Type: 1, Weight: 0.34},
		{Type: 2, Weight: 0.33},
		{Type: 3, Weight: 0.33},
	})
	if err != nil {
		t.Fatal(err)
	}
	if counts[0] != 4 || counts[1] != 3 || counts[2] != 3 {
		t.Errorf("expected [4 3 3], got %v", counts)
	}
}

func TestDistributeTieGoesToFirstEncountered(t *testing.T) {
	counts, err := Distribute(1, []WeightEntry{
		{Type: 1, Weight: 1},
		{Type: 2, Weight: 1},
	})
	if err != nil {
		t.Fatal(err)
	}
	// Both round to 1 (0.5 rounds up), sum 2, difference -1 lands on
	// the first entry.
	if counts[0]+counts[1] != 1 {
		t.Errorf("counts %v do not sum to 1", counts)
	}
}

func TestDistributeUnnormalizedWeights(t *testing.T) {
	// Raw weights, not proportions - must be normalized internally.
	counts, err := Distribute(6, []WeightEntry{
		{Type: 1, Weight: 10},
		{Type: 2, Weight: 20},
	})
	if err != nil {
		t.Fatal(err)
	}
	if counts[0] != 2 || counts[1] != 4 {
		t.Errorf("expected [2 4], got %v", counts)
	}
}

func TestDistributeRejectsBadInput(t *testing.T) {
	cases := []struct {
		name    string
		total   int
		entries []WeightEntry
	}{
		{"no entries", 5, nil},
		{"negative total", -1, []WeightEntry{{Type: 1, Weight: 1}}},
		{"zero weight", 5, []WeightEntry{{Type: 1, Weight: 0}}},
		{"negative weight", 5, []WeightEntry{{Type: 1, Weight: -2}}},
		{"duplicate type", 5, []WeightEntry{{Type: 1, Weight: 1}, {Type: 1, Weight: 2}}},
		{"unset type", 5, []WeightEntry{{Type: TypeNone, Weight: 1}}},
	}
	for _, tc := range cases {
		if _, err := Distribute(tc.total, tc.entries); !errors.Is(err, ErrInvalidCommand) {
			t.Errorf("%s: expected ErrInvalidCommand, got %v", tc.name, err)
		}
	}
}
