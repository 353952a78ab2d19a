package world

import (
	"fmt"
	"math/rand"

	"proto3d/internal/assets"
	"proto3d/internal/components"
	"proto3d/internal/config"
	"proto3d/internal/engine"
	"proto3d/internal/logging"
	"proto3d/internal/physics"
	"proto3d/internal/spawn"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const FloorSize = 60.0

// World ties the scene graph, physics and the spawner together. It is
// the engine.WorldAccess implementation handed to pools and scripts.
type World struct {
	Scene        *engine.Scene
	Renderer     *Renderer
	PhysicsWorld *physics.PhysicsWorld

	Spawner    *spawn.Spawner
	SpawnAreas []*components.SpawnArea
	Weights    []spawn.WeightEntry

	Light *engine.GameObject
	Floor *engine.GameObject

	rng        *rand.Rand
	log        logging.Sink
	typeByName map[string]spawn.ObjectType
	nameByType map[spawn.ObjectType]string
}

func New(rng *rand.Rand, sink logging.Sink) *World {
	if sink == nil {
		sink = logging.Nop{}
	}
	return &World{
		Scene:        engine.NewScene("Main"),
		Renderer:     NewRenderer(),
		PhysicsWorld: physics.NewPhysicsWorld(),
		rng:          rng,
		log:          sink,
		typeByName:   make(map[string]spawn.ObjectType),
		nameByType:   make(map[spawn.ObjectType]string),
	}
}

// Initialize loads the lighting shader, the shadowmap and the floor.
// Requires an open raylib window.
func (w *World) Initialize() {
	w.Renderer.Initialize(FloorSize)
	w.createFloor()
	w.Scene.Start()
}

func (w *World) createFloor() {
	floor := engine.NewGameObject("Floor")

	mr := components.NewModelRenderer(
		rl.LoadModelFromMesh(rl.GenMeshPlane(FloorSize, FloorSize, 1, 1)),
		rl.LightGray,
	)
	mr.MeshType = "plane"
	mr.MeshSize = []float32{FloorSize, FloorSize}
	mr.SetShader(w.Renderer.Shader)
	floor.AddComponent(mr)

	col := components.NewBoxCollider(rl.Vector3{X: FloorSize, Y: 1, Z: FloorSize})
	col.Offset = rl.Vector3{Y: -0.5}
	floor.AddComponent(col)

	w.Floor = floor
	w.Scene.AddGameObject(floor)
	w.PhysicsWorld.AddObject(floor)
}

// BuildSpawner turns a spawn table into a pool, a sampler and a spawner.
// The pool pre-instantiates every prefab; its instances enter the scene
// deactivated. Must run after Initialize so prefabs can pick up the
// lighting shader.
func (w *World) BuildSpawner(cfg *config.SpawnConfig, area spawn.AreaProvider) error {
	entries := make([]spawn.PoolEntry, 0, len(cfg.Pool))
	for i, spec := range cfg.Pool {
		t := spawn.ObjectType(i + 1)
		w.typeByName[spec.Name] = t
		w.nameByType[t] = spec.Name
		entries = append(entries, spawn.PoolEntry{
			Type:   t,
			Count:  spec.Count,
			Prefab: w.prefabFor(spec),
		})
	}

	pool := spawn.NewTypedPool(entries, w.log)
	if err := pool.Initialize(w); err != nil {
		return fmt.Errorf("build spawner: %w", err)
	}

	sampler := spawn.NewSampler(w.rng, w.log)
	sampler.Area = area
	if cfg.Placement.Mode == "surface" {
		sampler.Mode = spawn.PlaceSurface
	}
	sampler.LockX = cfg.Placement.LockX
	sampler.LockY = cfg.Placement.LockY
	sampler.LockZ = cfg.Placement.LockZ

	w.Spawner = spawn.NewSpawner(pool, sampler, w.rng, w.log)
	w.Spawner.ForceWhenEmpty = cfg.ForceWhenEmpty

	w.Weights = w.Weights[:0]
	for _, ws := range cfg.Weights {
		t, ok := w.typeByName[ws.Name]
		if !ok {
			return fmt.Errorf("build spawner: weight for unknown prefab %q", ws.Name)
		}
		w.Weights = append(w.Weights, spawn.WeightEntry{Type: t, Weight: ws.Weight})
	}
	return nil
}

// prefabFor builds the factory closure for one pool category.
func (w *World) prefabFor(spec config.PoolSpec) func() *engine.GameObject {
	serial := 0
	return func() *engine.GameObject {
		serial++
		g := engine.NewGameObject(fmt.Sprintf("%s_%d", spec.Name, serial))
		g.Tags = append(g.Tags, spec.Tags...)

		color := assets.LookupColor(spec.Color)
		switch spec.Shape {
		case "sphere":
			radius := spec.Size[0]
			mr := components.NewSphereRenderer(radius, color)
			mr.SetShader(w.Renderer.Shader)
			g.AddComponent(mr)
			g.AddComponent(components.NewSphereCollider(radius))
		default:
			size := rl.Vector3{X: spec.Size[0], Y: spec.Size[1], Z: spec.Size[2]}
			mr := components.NewCubeRenderer(size, color)
			mr.SetShader(w.Renderer.Shader)
			g.AddComponent(mr)
			g.AddComponent(components.NewBoxCollider(size))
		}

		if spec.Physics {
			g.AddComponent(components.NewRigidbody())
		}
		return g
	}
}

// TypeByName resolves a pool category name to its object type.
// Returns spawn.TypeNone for unknown names.
func (w *World) TypeByName(name string) spawn.ObjectType {
	return w.typeByName[name]
}

// NameByType is the inverse lookup of TypeByName.
func (w *World) NameByType(t spawn.ObjectType) string {
	return w.nameByType[t]
}

// PoolNames lists categories in pool order.
func (w *World) PoolNames() []string {
	names := make([]string, 0, len(w.nameByType))
	for t := spawn.ObjectType(1); ; t++ {
		name, ok := w.nameByType[t]
		if !ok {
			break
		}
		names = append(names, name)
	}
	return names
}

// Update steps scripts first, then physics, so script-driven kinematics
// move before collision resolution sees them.
func (w *World) Update(deltaTime float32) {
	w.Scene.Update(deltaTime)
	w.PhysicsWorld.Update(deltaTime)
}

// --- engine.WorldAccess ---

func (w *World) GetCollidableObjects() []*engine.GameObject {
	var result []*engine.GameObject
	for _, g := range w.Scene.AllObjects() {
		if engine.GetComponent[*components.BoxCollider](g) != nil ||
			engine.GetComponent[*components.SphereCollider](g) != nil {
			result = append(result, g)
		}
	}
	return result
}

func (w *World) SpawnObject(g *engine.GameObject) {
	w.Scene.AddGameObject(g)
	w.PhysicsWorld.AddObject(g)
}

func (w *World) Destroy(g *engine.GameObject) {
	w.PhysicsWorld.RemoveObject(g)
	w.Scene.RemoveGameObject(g)
}

func (w *World) Raycast(origin, direction rl.Vector3, maxDistance float32) (engine.RaycastResult, bool) {
	hit, ok := w.PhysicsWorld.Raycast(origin, direction, maxDistance)
	if !ok {
		return engine.RaycastResult{}, false
	}
	return engine.RaycastResult{
		GameObject: hit.GameObject,
		Point:      hit.Point,
		Normal:     hit.Normal,
		Distance:   hit.Distance,
	}, true
}

// --- Rendering ---

// Draw renders the shadow pass, then the lit camera pass. Caller wraps
// the camera pass in BeginMode3D/EndMode3D.
func (w *World) DrawShadowMap() {
	w.Renderer.DrawShadowMap(w.Scene.AllObjects())
}

func (w *World) DrawWithShadows(camera rl.Camera3D) {
	w.Renderer.DrawWithShadows(camera, w.Scene.AllObjects())
}

func (w *World) Unload() {
	w.Renderer.Unload(w.Scene.AllObjects())
}
