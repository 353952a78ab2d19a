package spawn

import (
	"fmt"

	"proto3d/internal/components"
	"proto3d/internal/engine"
	"proto3d/internal/logging"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// PoolEntry configures pre-instantiation for one object type.
type PoolEntry struct {
	Type   ObjectType
	Count  int
	Prefab func() *engine.GameObject
}

// TypedPool owns pre-instantiated objects keyed by type. Instances are
// created once at Initialize and live for the pool's lifetime; acquire
// and release only move them between the per-type free list and the
// active set, never allocate.
type TypedPool struct {
	entries []PoolEntry
	free    map[ObjectType][]*engine.GameObject
	active  map[ObjectType][]*engine.GameObject // oldest first
	typeOf  map[*engine.GameObject]ObjectType
	isFree  map[*engine.GameObject]bool
	log     logging.Sink
}

func NewTypedPool(entries []PoolEntry, sink logging.Sink) *TypedPool {
	if sink == nil {
		sink = logging.Nop{}
	}
	return &TypedPool{
		entries: entries,
		free:    make(map[ObjectType][]*engine.GameObject),
		active:  make(map[ObjectType][]*engine.GameObject),
		typeOf:  make(map[*engine.GameObject]ObjectType),
		isFree:  make(map[*engine.GameObject]bool),
		log:     sink,
	}
}

// Initialize instantiates every prefab Count times, deactivated and
// attached to the world. Calling it twice is an error.
func (p *TypedPool) Initialize(world engine.WorldAccess) error {
	if len(p.typeOf) > 0 {
		return fmt.Errorf("pool already initialized")
	}
	for _, e := range p.entries {
		if e.Type == TypeNone {
			return fmt.Errorf("pool entry with unset type")
		}
		if e.Count <= 0 || e.Prefab == nil {
			return fmt.Errorf("pool entry for type %d: count %d, prefab %v", e.Type, e.Count, e.Prefab != nil)
		}
		for i := 0; i < e.Count; i++ {
			g := e.Prefab()
			g.SetActive(false)
			if world != nil {
				world.SpawnObject(g)
			}
			p.free[e.Type] = append(p.free[e.Type], g)
			p.typeOf[g] = e.Type
			p.isFree[g] = true
		}
		p.log.Log(logging.LevelInfo, "pool.initialized", fmt.Sprintf("type=%d count=%d", e.Type, e.Count), false)
	}
	return nil
}

// Acquire removes one free instance of t and activates it at the given
// pose. With an empty free list it fails unless force is set, in which
// case the oldest active instance of that type is recycled in place.
func (p *TypedPool) Acquire(t ObjectType, pos, rot rl.Vector3, force bool) *engine.GameObject {
	var g *engine.GameObject

	if list := p.free[t]; len(list) > 0 {
		g = list[len(list)-1]
		p.free[t] = list[:len(list)-1]
	} else if force && len(p.active[t]) > 0 {
		// Recycle the oldest active instance of this type.
		g = p.active[t][0]
		p.active[t] = p.active[t][1:]
		p.log.Log(logging.LevelWarning, "pool.recycled", fmt.Sprintf("type=%d", t), false)
	} else {
		p.log.Log(logging.LevelError, "pool.exhausted", fmt.Sprintf("type=%d", t), false)
		return nil
	}

	p.isFree[g] = false
	p.active[t] = append(p.active[t], g)

	g.Transform.Position = pos
	g.Transform.Rotation = rot
	if rb := engine.GetComponent[*components.Rigidbody](g); rb != nil {
		rb.Velocity = rl.Vector3{}
		rb.AngularVelocity = rl.Vector3{}
		rb.Wake()
	}
	g.SetActive(true)
	return g
}

// Release deactivates an active instance and returns it to its free
// list. Foreign or already-free instances are a logged no-op.
func (p *TypedPool) Release(g *engine.GameObject) bool {
	if g == nil {
		p.log.Log(logging.LevelWarning, "pool.release_invalid", "nil instance", false)
		return false
	}
	t, owned := p.typeOf[g]
	if !owned {
		p.log.Log(logging.LevelWarning, "pool.release_invalid", g.Name, false)
		return false
	}
	if p.isFree[g] {
		p.log.Log(logging.LevelWarning, "pool.release_invalid", fmt.Sprintf("%s already free", g.Name), false)
		return false
	}

	list := p.active[t]
	for i, a := range list {
		if a == g {
			p.active[t] = append(list[:i], list[i+1:]...)
			break
		}
	}
	g.SetActive(false)
	p.isFree[g] = true
	p.free[t] = append(p.free[t], g)
	return true
}

// Owns reports whether g belongs to this pool.
func (p *TypedPool) Owns(g *engine.GameObject) bool {
	_, ok := p.typeOf[g]
	return ok
}

// FreeCount returns the number of free instances for a type.
func (p *TypedPool) FreeCount(t ObjectType) int {
	return len(p.free[t])
}

// ActiveCount returns the number of active instances for a type.
func (p *TypedPool) ActiveCount(t ObjectType) int {
	return len(p.active[t])
}

// HasType reports whether the pool was configured with type t.
func (p *TypedPool) HasType(t ObjectType) bool {
	for _, e := range p.entries {
		if e.Type == t {
			return true
		}
	}
	return false
}
