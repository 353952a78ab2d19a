package components

import (
	"math"

	"proto3d/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type Camera struct {
	engine.BaseComponent
	FOV        float32
	Near       float32
	Far        float32
	Projection rl.CameraProjection
	IsMain     bool // If true, this is the active game camera

	// Target overrides the rotation-derived look direction when set.
	// The orbit camera script points this at its focus object.
	Target    rl.Vector3
	HasTarget bool
}

func NewCamera() *Camera {
	return &Camera{
		FOV:        45.0,
		Near:       0.1,
		Far:        1000.0,
		Projection: rl.CameraPerspective,
		IsMain:     false,
	}
}

// LookAt pins the camera to a world-space target point.
func (c *Camera) LookAt(target rl.Vector3) {
	c.Target = target
	c.HasTarget = true
}

// ClearTarget returns the camera to rotation-derived aiming.
func (c *Camera) ClearTarget() {
	c.HasTarget = false
}

func (c *Camera) GetRaylibCamera() rl.Camera3D {
	g := c.GetGameObject()
	if g == nil {
		return rl.Camera3D{}
	}

	eyePos := g.WorldPosition()

	var target rl.Vector3
	if c.HasTarget {
		target = c.Target
	} else {
		// Look forward based on object's rotation (yaw only)
		rot := g.WorldRotation()
		yawRad := float64(rot.Y) * math.Pi / 180.0
		forward := rl.Vector3{
			X: float32(-math.Sin(yawRad)),
			Y: 0,
			Z: float32(-math.Cos(yawRad)),
		}
		target = rl.Vector3Add(eyePos, forward)
	}

	return rl.Camera3D{
		Position:   eyePos,
		Target:     target,
		Up:         rl.Vector3{X: 0, Y: 1, Z: 0},
		Fovy:       c.FOV,
		Projection: c.Projection,
	}
}
