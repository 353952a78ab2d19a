package spawn

import (
	"math/rand"
	"testing"

	"proto3d/internal/logging"
	"proto3d/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// fixedArea is a stand-in placement backend over a plain AABB.
type fixedArea struct {
	bounds physics.AABB
}

func (f fixedArea) Bounds() physics.AABB { return f.bounds }

func (f fixedArea) ClosestPoint(p rl.Vector3) rl.Vector3 {
	return f.bounds.ClosestPointOnSurface(p)
}

func testArea() fixedArea {
	return fixedArea{bounds: physics.NewAABBFromCenter(rl.Vector3{Y: 5}, rl.Vector3{X: 4, Y: 2, Z: 6})}
}

func TestSampleVolumeStaysInBounds(t *testing.T) {
	s := NewSampler(rand.New(rand.NewSource(1)), nil)
	s.Area = testArea()
	s.Mode = PlaceVolume

	for i := 0; i < 100; i++ {
		pos, _ := s.Sample()
		if !s.Area.Bounds().Contains(pos) {
			t.Fatalf("sample %d outside bounds: %v", i, pos)
		}
	}
}

func TestSampleSurfaceLandsOnBoundary(t *testing.T) {
	s := NewSampler(rand.New(rand.NewSource(2)), nil)
	area := testArea()
	s.Area = area
	s.Mode = PlaceSurface

	b := area.Bounds()
	const eps = 1e-4
	onFace := func(v, lo, hi float32) bool {
		d := v - lo
		if d < 0 {
			d = -d
		}
		if d < eps {
			return true
		}
		d = v - hi
		if d < 0 {
			d = -d
		}
		return d < eps
	}

	for i := 0; i < 100; i++ {
		pos, _ := s.Sample()
		if !onFace(pos.X, b.Min.X, b.Max.X) && !onFace(pos.Y, b.Min.Y, b.Max.Y) && !onFace(pos.Z, b.Min.Z, b.Max.Z) {
			t.Fatalf("sample %d not on any face: %v", i, pos)
		}
	}
}

func TestSampleRotationLocks(t *testing.T) {
	s := NewSampler(rand.New(rand.NewSource(3)), nil)
	s.Area = testArea()
	s.LockX = true
	s.LockZ = true

	for i := 0; i < 50; i++ {
		_, rot := s.Sample()
		if rot.X != 0 || rot.Z != 0 {
			t.Fatalf("locked axes rotated: %v", rot)
		}
		if rot.Y < 0 || rot.Y >= 360 {
			t.Fatalf("unlocked axis out of range: %v", rot.Y)
		}
	}
}

func TestSampleMissingAreaFallsBack(t *testing.T) {
	rec := &logging.Recorder{}
	s := NewSampler(rand.New(rand.NewSource(4)), rec)
	s.Anchor = rl.Vector3{X: 7, Y: 8, Z: 9}

	pos, rot := s.Sample()
	if pos != s.Anchor {
		t.Errorf("expected anchor fallback, got %v", pos)
	}
	if rot != (rl.Vector3{}) {
		t.Errorf("expected identity rotation, got %v", rot)
	}
	if rec.Count(logging.LevelError, "placement.missing_area") != 1 {
		t.Error("missing area was not logged")
	}
}
