package scripts

import (
	"math"

	"proto3d/internal/components"
	"proto3d/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// OrbitCamera orbits its GameObject around a focus point. Right mouse
// drag rotates, the wheel zooms; motion is smoothed toward the input
// targets so the rig never snaps.
type OrbitCamera struct {
	engine.BaseComponent
	Focus    rl.Vector3
	// FocusRef, when set, overrides Focus with a tracked object's
	// position every frame.
	FocusRef engine.GameObjectRef
	Distance float32
	MinDist  float32
	MaxDist  float32
	Yaw      float32 // degrees
	Pitch    float32 // degrees, clamped
	MinPitch float32
	MaxPitch float32

	RotateSpeed float32 // degrees per pixel of drag
	ZoomSpeed   float32 // distance per wheel notch
	Damping     float32 // fraction of remaining delta applied per second

	targetYaw   float32
	targetPitch float32
	targetDist  float32
	started     bool
}

func NewOrbitCamera(focus rl.Vector3, distance float32) *OrbitCamera {
	return &OrbitCamera{
		Focus:       focus,
		Distance:    distance,
		MinDist:     2,
		MaxDist:     60,
		Pitch:       30,
		MinPitch:    -10,
		MaxPitch:    85,
		RotateSpeed: 0.35,
		ZoomSpeed:   1.5,
		Damping:     12,
	}
}

// ApplyInput feeds raw drag and wheel deltas into the rig targets.
// Separated from Update so it stays testable without a window.
func (o *OrbitCamera) ApplyInput(dragX, dragY, wheel float32) {
	o.targetYaw += dragX * o.RotateSpeed
	o.targetPitch += dragY * o.RotateSpeed
	o.targetDist -= wheel * o.ZoomSpeed

	o.targetPitch = clampf(o.targetPitch, o.MinPitch, o.MaxPitch)
	o.targetDist = clampf(o.targetDist, o.MinDist, o.MaxDist)
}

// Advance moves the smoothed state toward the input targets and
// repositions the rig.
func (o *OrbitCamera) Advance(deltaTime float32) {
	if !o.started {
		o.targetYaw = o.Yaw
		o.targetPitch = o.Pitch
		o.targetDist = o.Distance
		o.started = true
	}

	blend := o.Damping * deltaTime
	if blend > 1 {
		blend = 1
	}

	if rig := o.GetGameObject(); rig != nil && o.FocusRef.IsValid() {
		if target := o.FocusRef.Get(rig.Scene); target != nil {
			o.Focus = target.WorldPosition()
		}
	}
	o.Yaw += (o.targetYaw - o.Yaw) * blend
	o.Pitch += (o.targetPitch - o.Pitch) * blend
	o.Distance += (o.targetDist - o.Distance) * blend

	g := o.GetGameObject()
	if g == nil {
		return
	}
	g.Transform.Position = o.Position()
	if cam := engine.GetComponent[*components.Camera](g); cam != nil {
		cam.LookAt(o.Focus)
	}
}

// Position computes the rig's world position from yaw/pitch/distance.
func (o *OrbitCamera) Position() rl.Vector3 {
	yaw := float64(o.Yaw) * math.Pi / 180
	pitch := float64(o.Pitch) * math.Pi / 180
	return rl.Vector3{
		X: o.Focus.X + o.Distance*float32(math.Cos(pitch)*math.Sin(yaw)),
		Y: o.Focus.Y + o.Distance*float32(math.Sin(pitch)),
		Z: o.Focus.Z + o.Distance*float32(math.Cos(pitch)*math.Cos(yaw)),
	}
}

func (o *OrbitCamera) Update(deltaTime float32) {
	var dragX, dragY float32
	if rl.IsMouseButtonDown(rl.MouseRightButton) {
		delta := rl.GetMouseDelta()
		dragX, dragY = delta.X, delta.Y
	}
	o.ApplyInput(dragX, dragY, rl.GetMouseWheelMove())
	o.Advance(deltaTime)
}

func clampf(v, min, max float32) float32 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func init() {
	engine.RegisterScript("OrbitCamera", orbitCameraFactory, orbitCameraSerializer)
}

func orbitCameraFactory(props map[string]any) engine.Component {
	cam := NewOrbitCamera(rl.Vector3{
		X: floatProp(props, "focusX", 0),
		Y: floatProp(props, "focusY", 0),
		Z: floatProp(props, "focusZ", 0),
	}, floatProp(props, "distance", 15))
	cam.Yaw = floatProp(props, "yaw", 0)
	cam.Pitch = floatProp(props, "pitch", 30)
	return cam
}

func orbitCameraSerializer(c engine.Component) map[string]any {
	o, ok := c.(*OrbitCamera)
	if !ok {
		return nil
	}
	return map[string]any{
		"focusX":   o.Focus.X,
		"focusY":   o.Focus.Y,
		"focusZ":   o.Focus.Z,
		"distance": o.Distance,
		"yaw":      o.Yaw,
		"pitch":    o.Pitch,
	}
}
