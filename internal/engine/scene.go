package engine

type Scene struct {
	Name        string
	GameObjects []*GameObject
	World       WorldAccess // back-reference, set by the world that owns this scene
	uidMap      map[uint64]*GameObject
}

func NewScene(name string) *Scene {
	return &Scene{
		Name:        name,
		GameObjects: make([]*GameObject, 0),
		uidMap:      make(map[uint64]*GameObject),
	}
}

func (s *Scene) AddGameObject(g *GameObject) {
	s.GameObjects = append(s.GameObjects, g)
	g.Scene = s
	if s.uidMap == nil {
		s.uidMap = make(map[uint64]*GameObject)
	}
	s.uidMap[g.UID] = g
}

// RemoveGameObject removes g and all of its children from the scene.
func (s *Scene) RemoveGameObject(g *GameObject) {
	for _, child := range g.Children {
		s.RemoveGameObject(child)
	}
	for i, obj := range s.GameObjects {
		if obj == g {
			s.GameObjects = append(s.GameObjects[:i], s.GameObjects[i+1:]...)
			break
		}
	}
	delete(s.uidMap, g.UID)
	g.Scene = nil
}

// FindByUID is an O(1) lookup used by GameObjectRef resolution.
func (s *Scene) FindByUID(uid uint64) *GameObject {
	return s.uidMap[uid]
}

func (s *Scene) FindByName(name string) *GameObject {
	for _, g := range s.GameObjects {
		if g.Name == name {
			return g
		}
	}
	return nil
}

func (s *Scene) FindByTag(tag string) []*GameObject {
	var result []*GameObject
	for _, g := range s.GameObjects {
		if g.HasTag(tag) {
			result = append(result, g)
		}
	}
	return result
}

// AllObjects returns every object in the scene including nested
// children, depth first. Script-built hierarchies (the crane) only
// register their root, so renderers walk this instead of GameObjects.
func (s *Scene) AllObjects() []*GameObject {
	var result []*GameObject
	var walk func(g *GameObject)
	walk = func(g *GameObject) {
		result = append(result, g)
		for _, child := range g.Children {
			walk(child)
		}
	}
	for _, g := range s.GameObjects {
		walk(g)
	}
	return result
}

func (s *Scene) Start() {
	for _, g := range s.GameObjects {
		g.Start()
	}
}

func (s *Scene) Update(deltaTime float32) {
	for _, g := range s.GameObjects {
		g.Update(deltaTime)
	}
}
