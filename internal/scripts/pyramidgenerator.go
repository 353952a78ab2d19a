package scripts

import (
	"fmt"

	"proto3d/internal/components"
	"proto3d/internal/config"
	"proto3d/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// PyramidGenerator stacks square layers of boxes at Start, shrinking
// by one box per layer up to a single capstone. With Physics enabled
// every box gets a rigidbody so the pyramid can be knocked over.
type PyramidGenerator struct {
	engine.BaseComponent
	Config config.PyramidConfig

	built bool
}

func NewPyramidGenerator(cfg config.PyramidConfig) *PyramidGenerator {
	return &PyramidGenerator{Config: cfg}
}

func (p *PyramidGenerator) Start() {
	if p.built {
		return
	}
	p.built = true

	g := p.GetGameObject()
	if g == nil {
		return
	}

	spacing := p.Config.Spacing
	if spacing <= 0 {
		spacing = 1
	}

	for layer := 0; layer < p.Config.BaseSize; layer++ {
		side := p.Config.BaseSize - layer
		offset := float32(side-1) / 2 * spacing
		y := float32(layer)*spacing + 0.5

		for ix := 0; ix < side; ix++ {
			for iz := 0; iz < side; iz++ {
				block := engine.NewGameObject(fmt.Sprintf("pyramid_%d_%d_%d", layer, ix, iz))
				block.Transform.Position = rl.Vector3{
					X: float32(ix)*spacing - offset,
					Y: y,
					Z: float32(iz)*spacing - offset,
				}
				block.AddComponent(components.NewModelRenderer(
					rl.LoadModelFromMesh(rl.GenMeshCube(1, 1, 1)), rl.Beige))
				block.AddComponent(components.NewBoxCollider(rl.Vector3{X: 1, Y: 1, Z: 1}))
				if p.Config.Physics {
					block.AddComponent(components.NewRigidbody())
				}
				g.AddChild(block)
			}
		}
	}
}

// BlockCount returns the total box count for a base size, the square
// pyramidal number.
func BlockCount(baseSize int) int {
	total := 0
	for side := 1; side <= baseSize; side++ {
		total += side * side
	}
	return total
}

func init() {
	engine.RegisterScript("PyramidGenerator", pyramidGeneratorFactory, pyramidGeneratorSerializer)
}

func pyramidGeneratorFactory(props map[string]any) engine.Component {
	return NewPyramidGenerator(config.PyramidConfig{
		BaseSize: intProp(props, "baseSize", 6),
		Spacing:  floatProp(props, "spacing", 1.05),
		Physics:  boolProp(props, "physics", false),
	})
}

func pyramidGeneratorSerializer(c engine.Component) map[string]any {
	p, ok := c.(*PyramidGenerator)
	if !ok {
		return nil
	}
	return map[string]any{
		"baseSize": p.Config.BaseSize,
		"spacing":  p.Config.Spacing,
		"physics":  p.Config.Physics,
	}
}
