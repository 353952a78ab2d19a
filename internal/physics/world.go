package physics

import (
	"log"
	"unsafe"

	"proto3d/internal/components"
	"proto3d/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Spatial grid cell size - objects within same or neighboring cells are checked
const CellSize = 5.0

// Cell key for spatial hashing
type CellKey struct {
	X, Y, Z int
}

func posToCell(pos rl.Vector3) CellKey {
	return CellKey{
		X: int(pos.X / CellSize),
		Y: int(pos.Y / CellSize),
		Z: int(pos.Z / CellSize),
	}
}

// CollisionPair represents two objects that are colliding
type CollisionPair struct {
	A, B *engine.GameObject
}

// makePair creates a consistent collision pair (smaller pointer first)
func makePair(a, b *engine.GameObject) CollisionPair {
	ptrA, ptrB := uintptr(unsafe.Pointer(a)), uintptr(unsafe.Pointer(b))
	if ptrA > ptrB {
		return CollisionPair{A: b, B: a}
	}
	return CollisionPair{A: a, B: b}
}

type PhysicsWorld struct {
	Gravity    rl.Vector3
	Objects    []*engine.GameObject // dynamic rigidbodies
	Kinematics []*engine.GameObject // kinematic rigidbodies (script-driven platforms, seesaw planks)
	Statics    []*engine.GameObject // no rigidbody (walls, floor)
	grid       map[CellKey][]*engine.GameObject

	// Collision tracking for callbacks
	activeCollisions  map[CollisionPair]bool // collisions from last frame
	currentCollisions map[CollisionPair]bool // collisions this frame

	// Normal forces - accumulated during collision resolution, applied before gravity
	normalForces map[*engine.GameObject]rl.Vector3

	lastLoggedCount int // prevents duplicate logs at same object count
}

func NewPhysicsWorld() *PhysicsWorld {
	return &PhysicsWorld{
		Gravity:           rl.Vector3{X: 0, Y: -20.0, Z: 0},
		Objects:           make([]*engine.GameObject, 0),
		Kinematics:        make([]*engine.GameObject, 0),
		Statics:           make([]*engine.GameObject, 0),
		grid:              make(map[CellKey][]*engine.GameObject),
		activeCollisions:  make(map[CollisionPair]bool),
		currentCollisions: make(map[CollisionPair]bool),
		normalForces:      make(map[*engine.GameObject]rl.Vector3),
	}
}

// rebuildGrid clears and repopulates the spatial hash grid
func (p *PhysicsWorld) rebuildGrid() {
	for k := range p.grid {
		delete(p.grid, k)
	}
	for _, obj := range p.Objects {
		cell := posToCell(obj.Transform.Position)
		p.grid[cell] = append(p.grid[cell], obj)
	}
}

// getNeighborObjects returns all objects in same cell and 26 neighboring cells
func (p *PhysicsWorld) getNeighborObjects(obj *engine.GameObject) []*engine.GameObject {
	cell := posToCell(obj.Transform.Position)
	var neighbors []*engine.GameObject

	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			for dz := -1; dz <= 1; dz++ {
				key := CellKey{cell.X + dx, cell.Y + dy, cell.Z + dz}
				neighbors = append(neighbors, p.grid[key]...)
			}
		}
	}
	return neighbors
}

func (p *PhysicsWorld) AddObject(g *engine.GameObject) {
	rb := engine.GetComponent[*components.Rigidbody](g)
	if rb == nil {
		p.Statics = append(p.Statics, g)
	} else if rb.IsKinematic {
		p.Kinematics = append(p.Kinematics, g)
	} else {
		p.Objects = append(p.Objects, g)
	}
}

func (p *PhysicsWorld) RemoveObject(g *engine.GameObject) {
	for i, obj := range p.Objects {
		if obj == g {
			p.Objects = append(p.Objects[:i], p.Objects[i+1:]...)
			return
		}
	}
	for i, obj := range p.Kinematics {
		if obj == g {
			p.Kinematics = append(p.Kinematics[:i], p.Kinematics[i+1:]...)
			return
		}
	}
	for i, obj := range p.Statics {
		if obj == g {
			p.Statics = append(p.Statics[:i], p.Statics[i+1:]...)
			return
		}
	}
}

// DynamicObjectCount returns the number of dynamic physics objects
func (p *PhysicsWorld) DynamicObjectCount() int {
	return len(p.Objects)
}

func (p *PhysicsWorld) Update(deltaTime float32) {
	// Reset current frame collisions
	p.currentCollisions = make(map[CollisionPair]bool)

	// 1. Apply forces (gravity + normal forces from previous frame) and integrate velocity
	for _, obj := range p.Objects {
		if !obj.Active {
			continue
		}
		rb := engine.GetComponent[*components.Rigidbody](obj)
		if rb == nil {
			continue
		}

		if rb.IsSleeping {
			continue
		}

		if rb.UseGravity {
			gravityAccel := rl.Vector3Scale(p.Gravity, deltaTime)

			// Apply normal force from last frame to counter gravity (prevents sinking)
			if normalForce, hasNormal := p.normalForces[obj]; hasNormal {
				normalAccel := rl.Vector3Scale(normalForce, deltaTime/rb.Mass)
				gravityAccel = rl.Vector3Add(gravityAccel, normalAccel)
			}

			rb.Velocity = rl.Vector3Add(rb.Velocity, gravityAccel)
		}

		// Integrate position
		obj.Transform.Position = rl.Vector3Add(
			obj.Transform.Position,
			rl.Vector3Scale(rb.Velocity, deltaTime),
		)

		// Integrate rotation
		obj.Transform.Rotation = rl.Vector3Add(
			obj.Transform.Rotation,
			rl.Vector3Scale(rb.AngularVelocity, deltaTime),
		)

		// Apply angular damping (time-based so it's framerate independent)
		damping := float32(1.0) - (1.0-rb.AngularDamping)*deltaTime*60
		if damping < 0 {
			damping = 0
		}
		rb.AngularVelocity = rl.Vector3Scale(rb.AngularVelocity, damping)

		rb.TrySleep(deltaTime)
	}

	// Clear normal forces - they will be recalculated during collision resolution
	p.normalForces = make(map[*engine.GameObject]rl.Vector3)

	if len(p.Objects)%100 == 0 && len(p.Objects) > 0 && len(p.Objects) != p.lastLoggedCount {
		p.lastLoggedCount = len(p.Objects)
		log.Printf("Physics: %d dynamic objects", len(p.Objects))
	}

	// 2. Broad-phase collision detection: spatial hashing
	p.rebuildGrid()

	// Track checked pairs to avoid duplicate checks
	checked := make(map[[2]uintptr]bool)

	for _, obj := range p.Objects {
		if !obj.Active {
			continue
		}
		neighbors := p.getNeighborObjects(obj)
		for _, other := range neighbors {
			if obj == other || !other.Active {
				continue
			}
			ptrA, ptrB := uintptr(unsafe.Pointer(obj)), uintptr(unsafe.Pointer(other))
			if ptrA > ptrB {
				ptrA, ptrB = ptrB, ptrA
			}
			key := [2]uintptr{ptrA, ptrB}
			if checked[key] {
				continue
			}
			checked[key] = true
			p.resolveCollision(obj, other)
		}
	}

	// 3. Kinematic vs Dynamic collision (kinematic pushes dynamic)
	for _, kinematic := range p.Kinematics {
		if !kinematic.Active {
			continue
		}
		for _, obj := range p.Objects {
			if obj.Active {
				p.resolveKinematicCollision(kinematic, obj)
			}
		}
	}

	// 4. Rigidbody vs Static collision
	for _, obj := range p.Objects {
		if !obj.Active {
			continue
		}
		for _, static := range p.Statics {
			p.resolveStaticCollision(obj, static)
		}
	}

	// 5. Kinematic vs Static collision
	for _, kinematic := range p.Kinematics {
		if !kinematic.Active {
			continue
		}
		for _, static := range p.Statics {
			p.resolveKinematicStaticCollision(kinematic, static)
		}
	}

	// 6. Dispatch collision callbacks
	p.dispatchCollisionCallbacks()
}

// recordCollision marks a collision pair as active this frame and wakes sleeping objects
func (p *PhysicsWorld) recordCollision(a, b *engine.GameObject) {
	pair := makePair(a, b)
	p.currentCollisions[pair] = true

	// Wake sleeping rigidbodies only if collision has significant relative velocity.
	// This prevents micro-collisions from waking settled stacks.
	rbA := engine.GetComponent[*components.Rigidbody](a)
	rbB := engine.GetComponent[*components.Rigidbody](b)

	if rbA != nil && rbB != nil {
		relVel := rl.Vector3Subtract(rbA.Velocity, rbB.Velocity)
		relSpeed := rl.Vector3Length(relVel)

		wakeThreshold := float32(components.SleepVelocityThreshold * 2.0)

		if relSpeed > wakeThreshold {
			if rbA.IsSleeping {
				rbA.Wake()
			}
			if rbB.IsSleeping {
				rbB.Wake()
			}
		}
	}
}

// dispatchCollisionCallbacks sends OnCollisionEnter/Exit to handlers
func (p *PhysicsWorld) dispatchCollisionCallbacks() {
	// Find new collisions (enter)
	for pair := range p.currentCollisions {
		if !p.activeCollisions[pair] {
			p.notifyCollisionEnter(pair.A, pair.B)
			p.notifyCollisionEnter(pair.B, pair.A)
		}
	}

	// Find ended collisions (exit)
	for pair := range p.activeCollisions {
		if !p.currentCollisions[pair] {
			p.notifyCollisionExit(pair.A, pair.B)
			p.notifyCollisionExit(pair.B, pair.A)
		}
	}

	// Swap buffers
	p.activeCollisions = p.currentCollisions
}

func (p *PhysicsWorld) notifyCollisionEnter(obj, other *engine.GameObject) {
	for _, comp := range obj.Components() {
		if handler, ok := comp.(engine.CollisionHandler); ok {
			handler.OnCollisionEnter(other)
		}
	}
}

func (p *PhysicsWorld) notifyCollisionExit(obj, other *engine.GameObject) {
	for _, comp := range obj.Components() {
		if handler, ok := comp.(engine.CollisionHandler); ok {
			handler.OnCollisionExit(other)
		}
	}
}
