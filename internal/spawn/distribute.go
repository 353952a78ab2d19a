package spawn

import (
	"fmt"
	"math"
)

// Distribute splits total across the weighted types so the counts sum
// exactly to total. Weights are normalized to proportions, each count
// is the rounded (half-up, via math.Round) share, and the rounding
// difference lands on the largest-weight type, first one on ties. If
// that adjustment would push a count negative, the count clamps to
// zero and the shortfall is taken from the remaining largest types.
func Distribute(total int, entries []WeightEntry) ([]int, error) {
	if total < 0 {
		return nil, fmt.Errorf("%w: negative total %d", ErrInvalidCommand, total)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: no weight entries", ErrInvalidCommand)
	}

	var sum float64
	seen := make(map[ObjectType]bool, len(entries))
	for _, e := range entries {
		if e.Type == TypeNone {
			return nil, fmt.Errorf("%w: weighted type unset", ErrInvalidCommand)
		}
		if seen[e.Type] {
			return nil, fmt.Errorf("%w: duplicate weighted type %d", ErrInvalidCommand, e.Type)
		}
		seen[e.Type] = true
		if e.Weight <= 0 {
			return nil, fmt.Errorf("%w: weight %v for type %d", ErrInvalidCommand, e.Weight, e.Type)
		}
		sum += e.Weight
	}

	counts := make([]int, len(entries))
	rounded := 0
	largest := 0
	for i, e := range entries {
		counts[i] = int(math.Round(float64(total) * e.Weight / sum))
		rounded += counts[i]
		if e.Weight > entries[largest].Weight {
			largest = i
		}
	}

	counts[largest] += total - rounded
	if counts[largest] < 0 {
		deficit := -counts[largest]
		counts[largest] = 0
		for deficit > 0 {
			best := -1
			for i := range entries {
				if counts[i] > 0 && (best == -1 || entries[i].Weight > entries[best].Weight) {
					best = i
				}
			}
			if best == -1 {
				break
			}
			take := deficit
			if counts[best] < take {
				take = counts[best]
			}
			counts[best] -= take
			deficit -= take
		}
	}
	return counts, nil
}
