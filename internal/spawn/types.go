package spawn

import (
	"errors"
	"fmt"
)

// ObjectType tags a pooled prefab category. TypeNone is the invalid
// sentinel and must never be spawned or pooled.
type ObjectType int

const TypeNone ObjectType = 0

// Command describes one spawn request. Commands are immutable after
// enqueue; Types and Counts are parallel and Duration only applies to
// non-immediate (sequential) commands.
type Command struct {
	Immediate bool
	Types     []ObjectType
	Counts    []int
	Duration  float32
}

// TotalCount returns the number of instances the command will spawn.
func (c Command) TotalCount() int {
	total := 0
	for _, n := range c.Counts {
		total += n
	}
	return total
}

func (c Command) validate() error {
	if len(c.Types) == 0 {
		return fmt.Errorf("%w: no types", ErrInvalidCommand)
	}
	if len(c.Types) != len(c.Counts) {
		return fmt.Errorf("%w: %d types but %d counts", ErrInvalidCommand, len(c.Types), len(c.Counts))
	}
	for i, t := range c.Types {
		if t == TypeNone {
			return fmt.Errorf("%w: type at index %d is unset", ErrInvalidCommand, i)
		}
		if c.Counts[i] <= 0 {
			return fmt.Errorf("%w: count %d for type %d", ErrInvalidCommand, c.Counts[i], t)
		}
	}
	if !c.Immediate && c.Duration <= 0 {
		return fmt.Errorf("%w: duration %v", ErrInvalidCommand, c.Duration)
	}
	return nil
}

// WeightEntry assigns a relative proportion to a type for weighted
// distribution. Weights must be positive and types unique.
type WeightEntry struct {
	Type   ObjectType
	Weight float64
}

var (
	ErrInvalidCommand   = errors.New("invalid spawn command")
	ErrPoolExhausted    = errors.New("pool exhausted")
	ErrMissingSpawnArea = errors.New("missing spawn area")
)
