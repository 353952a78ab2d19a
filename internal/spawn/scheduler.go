package spawn

import "math/rand"

// sequentialState paces one sequential command across ticks. The full
// multiset of types is shuffled once at command start; the cursor then
// chases floor(elapsed/interval) so a long tick emits every due spawn
// at once and none are skipped.
type sequentialState struct {
	order    []ObjectType
	cursor   int
	elapsed  float32
	interval float32
}

func newSequentialState(cmd Command, rng *rand.Rand) *sequentialState {
	order := make([]ObjectType, 0, cmd.TotalCount())
	for i, t := range cmd.Types {
		for n := 0; n < cmd.Counts[i]; n++ {
			order = append(order, t)
		}
	}
	rng.Shuffle(len(order), func(i, j int) {
		order[i], order[j] = order[j], order[i]
	})
	return &sequentialState{
		order:    order,
		interval: cmd.Duration / float32(len(order)),
	}
}

// advance accumulates tick time and returns the types due since the
// last call, in shuffled order.
func (s *sequentialState) advance(dt float32) []ObjectType {
	s.elapsed += dt
	due := int(s.elapsed / s.interval)
	if due > len(s.order) {
		due = len(s.order)
	}
	if due <= s.cursor {
		return nil
	}
	batch := s.order[s.cursor:due]
	s.cursor = due
	return batch
}

func (s *sequentialState) done() bool {
	return s.cursor >= len(s.order)
}
