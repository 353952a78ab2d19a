package physics

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func TestAABBFromCenter(t *testing.T) {
	box := NewAABBFromCenter(rl.Vector3{X: 1, Y: 2, Z: 3}, rl.Vector3{X: 2, Y: 4, Z: 6})

	if box.Min != (rl.Vector3{X: 0, Y: 0, Z: 0}) {
		t.Errorf("Min = %v, want origin", box.Min)
	}
	if box.Max != (rl.Vector3{X: 2, Y: 4, Z: 6}) {
		t.Errorf("Max = %v, want (2,4,6)", box.Max)
	}
	if box.Center() != (rl.Vector3{X: 1, Y: 2, Z: 3}) {
		t.Errorf("Center = %v", box.Center())
	}
	if box.Size() != (rl.Vector3{X: 2, Y: 4, Z: 6}) {
		t.Errorf("Size = %v", box.Size())
	}
}

func TestAABBIntersects(t *testing.T) {
	a := NewAABBFromCenter(rl.Vector3{}, rl.Vector3{X: 2, Y: 2, Z: 2})

	overlapping := NewAABBFromCenter(rl.Vector3{X: 1.5}, rl.Vector3{X: 2, Y: 2, Z: 2})
	if !a.Intersects(overlapping) {
		t.Error("expected overlap on X")
	}

	touching := NewAABBFromCenter(rl.Vector3{X: 2}, rl.Vector3{X: 2, Y: 2, Z: 2})
	if !a.Intersects(touching) {
		t.Error("face contact should count as intersecting")
	}

	separate := NewAABBFromCenter(rl.Vector3{X: 5}, rl.Vector3{X: 2, Y: 2, Z: 2})
	if a.Intersects(separate) {
		t.Error("boxes 3 units apart should not intersect")
	}
}

func TestAABBContains(t *testing.T) {
	box := NewAABBFromCenter(rl.Vector3{}, rl.Vector3{X: 2, Y: 2, Z: 2})

	if !box.Contains(rl.Vector3{}) {
		t.Error("center should be inside")
	}
	if !box.Contains(rl.Vector3{X: 1, Y: 1, Z: 1}) {
		t.Error("corner should be inside")
	}
	if box.Contains(rl.Vector3{X: 1.1}) {
		t.Error("point past the face should be outside")
	}
}

func TestAABBResolvePushesOutSmallestAxis(t *testing.T) {
	ground := NewAABBFromCenter(rl.Vector3{}, rl.Vector3{X: 10, Y: 1, Z: 10})

	// Sitting slightly into the top of the ground: push up.
	body := NewAABBFromCenter(rl.Vector3{Y: 0.75}, rl.Vector3{X: 1, Y: 1, Z: 1})
	push := body.Resolve(ground)
	if push.Y <= 0 {
		t.Fatalf("push = %v, want +Y", push)
	}
	if push.X != 0 || push.Z != 0 {
		t.Errorf("push = %v, want Y only", push)
	}
	if push.Y != 0.25 {
		t.Errorf("push.Y = %v, want 0.25", push.Y)
	}
}

func TestAABBResolveNoOverlap(t *testing.T) {
	a := NewAABBFromCenter(rl.Vector3{}, rl.Vector3{X: 1, Y: 1, Z: 1})
	b := NewAABBFromCenter(rl.Vector3{X: 3}, rl.Vector3{X: 1, Y: 1, Z: 1})

	if push := a.Resolve(b); push != rl.Vector3Zero() {
		t.Errorf("push = %v, want zero", push)
	}
}

func TestClosestPointOnSurfaceExterior(t *testing.T) {
	box := NewAABBFromCenter(rl.Vector3{}, rl.Vector3{X: 2, Y: 2, Z: 2})

	p := box.ClosestPointOnSurface(rl.Vector3{X: 5, Y: 0, Z: 0})
	if p != (rl.Vector3{X: 1, Y: 0, Z: 0}) {
		t.Errorf("exterior point clamped to %v, want (1,0,0)", p)
	}
}

func TestClosestPointOnSurfaceInterior(t *testing.T) {
	box := NewAABBFromCenter(rl.Vector3{}, rl.Vector3{X: 2, Y: 2, Z: 2})

	// Near the +X face: projected through it.
	p := box.ClosestPointOnSurface(rl.Vector3{X: 0.9, Y: 0.1, Z: 0})
	if p != (rl.Vector3{X: 1, Y: 0.1, Z: 0}) {
		t.Errorf("interior point projected to %v, want (1,0.1,0)", p)
	}

	// A surface point must stay on the surface.
	onFace := box.ClosestPointOnSurface(rl.Vector3{X: 1, Y: 0.5, Z: 0.5})
	if onFace != (rl.Vector3{X: 1, Y: 0.5, Z: 0.5}) {
		t.Errorf("surface point moved to %v", onFace)
	}
}
