package spawn

import (
	"math/rand"

	"proto3d/internal/logging"
	"proto3d/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// PlacementMode selects where sampled positions land relative to the
// spawn area.
type PlacementMode int

const (
	// PlaceVolume samples a uniform point inside the area's bounds.
	PlaceVolume PlacementMode = iota
	// PlaceSurface samples a volume point and projects it to the
	// nearest point on the area's boundary.
	PlaceSurface
)

// AreaProvider is the placement backend: a bounding volume with a
// closest-point query. components.BoxCollider and components.SpawnArea
// both satisfy it.
type AreaProvider interface {
	Bounds() physics.AABB
	ClosestPoint(p rl.Vector3) rl.Vector3
}

// Sampler produces spawn poses from a bounding volume with optional
// per-axis rotation locks. Without an area it degrades to the anchor
// position with zero rotation.
type Sampler struct {
	Area   AreaProvider
	Mode   PlacementMode
	Anchor rl.Vector3

	// A locked axis always gets rotation 0.
	LockX, LockY, LockZ bool

	rng *rand.Rand
	log logging.Sink
}

func NewSampler(rng *rand.Rand, sink logging.Sink) *Sampler {
	if sink == nil {
		sink = logging.Nop{}
	}
	return &Sampler{rng: rng, log: sink}
}

// Sample returns a position and euler rotation for the next spawn.
func (s *Sampler) Sample() (rl.Vector3, rl.Vector3) {
	if s.Area == nil {
		s.log.Log(logging.LevelError, "placement.missing_area", "falling back to anchor", false)
		return s.Anchor, rl.Vector3{}
	}

	bounds := s.Area.Bounds()
	pos := rl.Vector3{
		X: bounds.Min.X + s.rng.Float32()*(bounds.Max.X-bounds.Min.X),
		Y: bounds.Min.Y + s.rng.Float32()*(bounds.Max.Y-bounds.Min.Y),
		Z: bounds.Min.Z + s.rng.Float32()*(bounds.Max.Z-bounds.Min.Z),
	}
	if s.Mode == PlaceSurface {
		pos = s.Area.ClosestPoint(pos)
	}
	return pos, s.sampleRotation()
}

func (s *Sampler) sampleRotation() rl.Vector3 {
	var rot rl.Vector3
	if !s.LockX {
		rot.X = s.rng.Float32() * 360
	}
	if !s.LockY {
		rot.Y = s.rng.Float32() * 360
	}
	if !s.LockZ {
		rot.Z = s.rng.Float32() * 360
	}
	return rot
}
