package geom

import rl "github.com/gen2brain/raylib-go/raylib"

type AABB struct {
	Min rl.Vector3
	Max rl.Vector3
}

// NewAABBFromCenter creates an AABB from a center point and full size dimensions.
func NewAABBFromCenter(center, size rl.Vector3) AABB {
	half := rl.Vector3{X: size.X / 2, Y: size.Y / 2, Z: size.Z / 2}
	return AABB{
		Min: rl.Vector3Subtract(center, half),
		Max: rl.Vector3Add(center, half),
	}
}

func (a AABB) Center() rl.Vector3 {
	return rl.Vector3{
		X: (a.Min.X + a.Max.X) / 2,
		Y: (a.Min.Y + a.Max.Y) / 2,
		Z: (a.Min.Z + a.Max.Z) / 2,
	}
}

func (a AABB) Size() rl.Vector3 {
	return rl.Vector3Subtract(a.Max, a.Min)
}

func (a AABB) Intersects(b AABB) bool {
	return a.Min.X <= b.Max.X && a.Max.X >= b.Min.X &&
		a.Min.Y <= b.Max.Y && a.Max.Y >= b.Min.Y &&
		a.Min.Z <= b.Max.Z && a.Max.Z >= b.Min.Z
}

func (a AABB) Contains(p rl.Vector3) bool {
	return p.X >= a.Min.X && p.X <= a.Max.X &&
		p.Y >= a.Min.Y && p.Y <= a.Max.Y &&
		p.Z >= a.Min.Z && p.Z <= a.Max.Z
}

// ClosestPointOnSurface returns the nearest point on the box boundary.
// Exterior points are clamped onto the box; interior points are pushed
// out through the nearest face. Spawn placement uses this for surface
// sampling.
func (a AABB) ClosestPointOnSurface(p rl.Vector3) rl.Vector3 {
	clamped := rl.Vector3{
		X: clamp(p.X, a.Min.X, a.Max.X),
		Y: clamp(p.Y, a.Min.Y, a.Max.Y),
		Z: clamp(p.Z, a.Min.Z, a.Max.Z),
	}
	if clamped != p {
		return clamped
	}

	// Point is inside: project to the face with the smallest distance.
	dxMin := p.X - a.Min.X
	dxMax := a.Max.X - p.X
	dyMin := p.Y - a.Min.Y
	dyMax := a.Max.Y - p.Y
	dzMin := p.Z - a.Min.Z
	dzMax := a.Max.Z - p.Z

	min := dxMin
	result := rl.Vector3{X: a.Min.X, Y: p.Y, Z: p.Z}

	if dxMax < min {
		min = dxMax
		result = rl.Vector3{X: a.Max.X, Y: p.Y, Z: p.Z}
	}
	if dyMin < min {
		min = dyMin
		result = rl.Vector3{X: p.X, Y: a.Min.Y, Z: p.Z}
	}
	if dyMax < min {
		min = dyMax
		result = rl.Vector3{X: p.X, Y: a.Max.Y, Z: p.Z}
	}
	if dzMin < min {
		min = dzMin
		result = rl.Vector3{X: p.X, Y: p.Y, Z: a.Min.Z}
	}
	if dzMax < min {
		result = rl.Vector3{X: p.X, Y: p.Y, Z: a.Max.Z}
	}

	return result
}

// Resolve returns the minimum translation vector to push 'a' out of 'b'.
// Returns zero vector if no overlap.
func (a AABB) Resolve(b AABB) rl.Vector3 {
	if !a.Intersects(b) {
		return rl.Vector3Zero()
	}

	// Penetration depth in each direction
	dx1 := b.Max.X - a.Min.X // push a in +X
	dx2 := a.Max.X - b.Min.X // push a in -X
	dy1 := b.Max.Y - a.Min.Y // push a in +Y
	dy2 := a.Max.Y - b.Min.Y // push a in -Y
	dz1 := b.Max.Z - a.Min.Z // push a in +Z
	dz2 := a.Max.Z - b.Min.Z // push a in -Z

	// Find the axis with minimum penetration, that is the push-out direction
	min := dx1
	result := rl.Vector3{X: dx1}

	if dx2 < min {
		min = dx2
		result = rl.Vector3{X: -dx2}
	}
	if dy1 < min {
		min = dy1
		result = rl.Vector3{Y: dy1}
	}
	if dy2 < min {
		min = dy2
		result = rl.Vector3{Y: -dy2}
	}
	if dz1 < min {
		min = dz1
		result = rl.Vector3{Z: dz1}
	}
	if dz2 < min {
		result = rl.Vector3{Z: -dz2}
	}

	return result
}

// clamp restricts a value to a range
func clamp(v, min, max float32) float32 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
