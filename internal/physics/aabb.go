package physics

import (
	"proto3d/internal/geom"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// AABB lives in internal/geom so that leaf packages (e.g. components)
// can use it without importing physics, which itself depends on
// components. The alias keeps physics.AABB valid for all callers.
type AABB = geom.AABB

// NewAABBFromCenter creates an AABB from a center point and full size dimensions.
func NewAABBFromCenter(center, size rl.Vector3) AABB {
	return geom.NewAABBFromCenter(center, size)
}
