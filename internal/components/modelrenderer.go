package components

import (
	"proto3d/internal/assets"
	"proto3d/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type ModelRenderer struct {
	engine.BaseComponent
	Model    rl.Model
	Color    rl.Color
	shader   rl.Shader
	fromFile bool // true if loaded via asset manager

	// Scene-file metadata so generated meshes round-trip.
	MeshType string
	MeshSize []float32
	FilePath string
}

func NewModelRenderer(model rl.Model, color rl.Color) *ModelRenderer {
	return &ModelRenderer{
		Model:    model,
		Color:    color,
		fromFile: false,
	}
}

// NewCubeRenderer builds a renderer around a generated cube mesh.
func NewCubeRenderer(size rl.Vector3, color rl.Color) *ModelRenderer {
	mr := NewModelRenderer(rl.LoadModelFromMesh(rl.GenMeshCube(size.X, size.Y, size.Z)), color)
	mr.MeshType = "cube"
	mr.MeshSize = []float32{size.X, size.Y, size.Z}
	return mr
}

// NewSphereRenderer builds a renderer around a generated sphere mesh.
func NewSphereRenderer(radius float32, color rl.Color) *ModelRenderer {
	mr := NewModelRenderer(rl.LoadModelFromMesh(rl.GenMeshSphere(radius, 16, 16)), color)
	mr.MeshType = "sphere"
	mr.MeshSize = []float32{radius}
	return mr
}

func NewModelRendererFromFile(path string, color rl.Color) *ModelRenderer {
	return &ModelRenderer{
		Model:    assets.LoadModel(path),
		Color:    color,
		fromFile: true,
		FilePath: path,
	}
}

func (m *ModelRenderer) SetShader(shader rl.Shader) {
	m.shader = shader
	m.Model.Materials.Shader = shader
	m.Model.Materials.Maps.Color = m.Color
}

func (m *ModelRenderer) Draw() {
	g := m.GetGameObject()
	if g == nil || !g.Active {
		return
	}

	// Build scale matrix
	scale := g.WorldScale()
	scaleMatrix := rl.MatrixScale(scale.X, scale.Y, scale.Z)

	// Build rotation matrix from Euler angles
	rot := g.WorldRotation()
	rotX := rl.MatrixRotateX(rot.X * rl.Deg2rad)
	rotY := rl.MatrixRotateY(rot.Y * rl.Deg2rad)
	rotZ := rl.MatrixRotateZ(rot.Z * rl.Deg2rad)
	rotMatrix := rl.MatrixMultiply(rl.MatrixMultiply(rotX, rotY), rotZ)

	// Build translation matrix
	pos := g.WorldPosition()
	transMatrix := rl.MatrixTranslate(pos.X, pos.Y, pos.Z)

	// Combine: scale -> rotate -> translate
	m.Model.Transform = rl.MatrixMultiply(rl.MatrixMultiply(scaleMatrix, rotMatrix), transMatrix)

	rl.DrawModel(m.Model, rl.Vector3Zero(), 1.0, rl.White)
}

func (m *ModelRenderer) Unload() {
	// Only unload if not from asset manager (asset manager handles its own cleanup)
	if !m.fromFile {
		rl.UnloadModel(m.Model)
	}
}
