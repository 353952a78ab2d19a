package scripts

import (
	"fmt"

	"proto3d/internal/components"
	"proto3d/internal/config"
	"proto3d/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// CraneBuilder assembles a tower crane out of box children at Start:
// mast segments, jib, counter-jib, counterweight, cable and hook. The
// whole rig is static scenery; only the hook gets a collider so pooled
// objects can land on it.
type CraneBuilder struct {
	engine.BaseComponent
	Config config.CraneConfig

	built bool
}

func NewCraneBuilder(cfg config.CraneConfig) *CraneBuilder {
	return &CraneBuilder{Config: cfg}
}

func (c *CraneBuilder) Start() {
	if c.built {
		return
	}
	c.built = true

	g := c.GetGameObject()
	if g == nil {
		return
	}

	const segment = 2.0
	segments := int(c.Config.MastHeight / segment)
	if segments < 1 {
		segments = 1
	}

	for i := 0; i < segments; i++ {
		mast := c.box(fmt.Sprintf("mast_%d", i), rl.Vector3{X: 1, Y: segment, Z: 1}, rl.Yellow)
		mast.Transform.Position = rl.Vector3{Y: float32(i)*segment + segment/2}
		g.AddChild(mast)
	}

	top := float32(segments) * segment

	jib := c.box("jib", rl.Vector3{X: c.Config.JibLength, Y: 0.6, Z: 0.6}, rl.Yellow)
	jib.Transform.Position = rl.Vector3{X: c.Config.JibLength / 2, Y: top}
	g.AddChild(jib)

	counter := c.box("counter_jib", rl.Vector3{X: c.Config.CounterJib, Y: 0.6, Z: 0.6}, rl.Yellow)
	counter.Transform.Position = rl.Vector3{X: -c.Config.CounterJib / 2, Y: top}
	g.AddChild(counter)

	weight := c.box("counterweight", rl.Vector3{X: 1.2, Y: 1.2, Z: 1.2}, rl.Gray)
	weight.Transform.Position = rl.Vector3{X: -c.Config.CounterJib + 0.6, Y: top - 0.9}
	g.AddChild(weight)

	cable := c.box("cable", rl.Vector3{X: 0.08, Y: c.Config.CableLength, Z: 0.08}, rl.DarkGray)
	cable.Transform.Position = rl.Vector3{X: c.Config.JibLength - 1, Y: top - c.Config.CableLength/2}
	g.AddChild(cable)

	hook := c.box("hook", rl.Vector3{X: 0.5, Y: 0.5, Z: 0.5}, rl.Red)
	hook.Transform.Position = rl.Vector3{X: c.Config.JibLength - 1, Y: top - c.Config.CableLength - 0.25}
	hook.AddComponent(components.NewBoxCollider(rl.Vector3{X: 0.5, Y: 0.5, Z: 0.5}))
	g.AddChild(hook)
}

// PartCount returns how many pieces a crane with this config builds,
// for sizing and tests.
func (c *CraneBuilder) PartCount() int {
	segments := int(c.Config.MastHeight / 2.0)
	if segments < 1 {
		segments = 1
	}
	return segments + 5 // jib, counter-jib, counterweight, cable, hook
}

func (c *CraneBuilder) box(name string, size rl.Vector3, color rl.Color) *engine.GameObject {
	part := engine.NewGameObject(name)
	part.AddComponent(components.NewModelRenderer(
		rl.LoadModelFromMesh(rl.GenMeshCube(size.X, size.Y, size.Z)), color))
	return part
}

func init() {
	engine.RegisterScript("CraneBuilder", craneBuilderFactory, craneBuilderSerializer)
}

func craneBuilderFactory(props map[string]any) engine.Component {
	return NewCraneBuilder(config.CraneConfig{
		MastHeight:  floatProp(props, "mastHeight", 12),
		JibLength:   floatProp(props, "jibLength", 9),
		CounterJib:  floatProp(props, "counterJib", 4),
		CableLength: floatProp(props, "cableLength", 5),
	})
}

func craneBuilderSerializer(c engine.Component) map[string]any {
	cb, ok := c.(*CraneBuilder)
	if !ok {
		return nil
	}
	return map[string]any{
		"mastHeight":  cb.Config.MastHeight,
		"jibLength":   cb.Config.JibLength,
		"counterJib":  cb.Config.CounterJib,
		"cableLength": cb.Config.CableLength,
	}
}
