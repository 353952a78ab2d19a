package components

import (
	"proto3d/internal/engine"
	"proto3d/internal/geom"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// SpawnArea marks a region of the scene where objects may be placed.
// It never participates in collision detection, it only provides bounds
// for position sampling.
type SpawnArea struct {
	engine.BaseComponent
	Size   rl.Vector3
	Offset rl.Vector3
}

func NewSpawnArea(size rl.Vector3) *SpawnArea {
	return &SpawnArea{
		Size:   size,
		Offset: rl.Vector3{},
	}
}

// GetCenter returns the world-space center of the area
func (a *SpawnArea) GetCenter() rl.Vector3 {
	g := a.GetGameObject()
	return rl.Vector3Add(g.WorldPosition(), a.Offset)
}

// Bounds returns the axis-aligned extents of the area volume.
func (a *SpawnArea) Bounds() geom.AABB {
	g := a.GetGameObject()
	scale := g.WorldScale()
	size := rl.Vector3{
		X: a.Size.X * scale.X,
		Y: a.Size.Y * scale.Y,
		Z: a.Size.Z * scale.Z,
	}
	return geom.NewAABBFromCenter(a.GetCenter(), size)
}

// ClosestPoint projects a point onto the area's surface.
func (a *SpawnArea) ClosestPoint(p rl.Vector3) rl.Vector3 {
	return a.Bounds().ClosestPointOnSurface(p)
}
