package scripts

import (
	"proto3d/internal/components"
	"proto3d/internal/config"
	"proto3d/internal/engine"
	"proto3d/internal/spawn"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// MergeGame is the watermelon-style prototype: pooled spheres of
// ranked kinds, two same-rank spheres merge on contact into one sphere
// of the next rank at the contact midpoint. Chain merges follow
// naturally because the merged sphere can immediately collide again.
// Code-managed: the host wires the spawner and rank types.
type MergeGame struct {
	engine.BaseComponent
	Spawner *spawn.Spawner
	Config  config.MergeConfig

	// RankTypes[i] is the pool type for rank i, smallest first.
	RankTypes []spawn.ObjectType

	Score   int
	TopOut  engine.Event
	over    bool
	pending []mergePair
}

type mergePair struct {
	a, b *engine.GameObject
}

// MergeBody sits on every pooled merge sphere and reports contacts to
// the manager.
type MergeBody struct {
	engine.BaseComponent
	Manager *MergeGame
	Rank    int
}

func (m *MergeBody) OnCollisionEnter(other *engine.GameObject) {
	if m.Manager == nil {
		return
	}
	otherBody := engine.GetComponent[*MergeBody](other)
	if otherBody == nil || otherBody.Rank != m.Rank {
		return
	}
	m.Manager.requestMerge(m.GetGameObject(), other)
}

func (m *MergeBody) OnCollisionExit(other *engine.GameObject) {}

func NewMergeGame(spawner *spawn.Spawner, cfg config.MergeConfig, rankTypes []spawn.ObjectType) *MergeGame {
	return &MergeGame{
		Spawner:   spawner,
		Config:    cfg,
		RankTypes: rankTypes,
	}
}

// requestMerge queues a same-rank contact. Both collision callbacks of
// a pair fire in the same physics step, so duplicates are filtered
// when the queue drains.
func (m *MergeGame) requestMerge(a, b *engine.GameObject) {
	if m.over || a == nil || b == nil {
		return
	}
	for _, p := range m.pending {
		if (p.a == a && p.b == b) || (p.a == b && p.b == a) {
			return
		}
	}
	m.pending = append(m.pending, mergePair{a: a, b: b})
}

func (m *MergeGame) Update(deltaTime float32) {
	if m.over {
		return
	}
	for _, p := range m.pending {
		m.merge(p.a, p.b)
	}
	m.pending = m.pending[:0]
	m.checkTopOut()
}

func (m *MergeGame) merge(a, b *engine.GameObject) {
	// A chain merge may have recalled one of them already.
	if !a.Active || !b.Active {
		return
	}
	bodyA := engine.GetComponent[*MergeBody](a)
	if bodyA == nil || bodyA.Rank+1 >= len(m.RankTypes) {
		return // max rank never merges
	}
	nextRank := bodyA.Rank + 1

	mid := rl.Vector3Scale(rl.Vector3Add(a.Transform.Position, b.Transform.Position), 0.5)
	m.Spawner.Recall(a)
	m.Spawner.Recall(b)

	g := m.Spawner.Pool().Acquire(m.RankTypes[nextRank], mid, rl.Vector3{}, false)
	if g == nil {
		return
	}
	m.Spawner.Track(g)
	m.Attach(g, nextRank)
	m.Score += (nextRank + 1) * m.Config.ScorePerRank
}

// Attach tags a pooled sphere with its rank so contacts report here.
func (m *MergeGame) Attach(g *engine.GameObject, rank int) {
	body := engine.GetComponent[*MergeBody](g)
	if body == nil {
		body = &MergeBody{}
		g.AddComponent(body)
	}
	body.Manager = m
	body.Rank = rank
}

// Drop acquires a sphere of the given rank at pos and tracks it.
// Returns nil when the rank's pool is exhausted.
func (m *MergeGame) Drop(rank int, pos rl.Vector3) *engine.GameObject {
	if m.over || rank < 0 || rank >= len(m.RankTypes) {
		return nil
	}
	g := m.Spawner.Pool().Acquire(m.RankTypes[rank], pos, rl.Vector3{}, false)
	if g == nil {
		return nil
	}
	m.Spawner.Track(g)
	m.Attach(g, rank)
	return g
}

// checkTopOut ends the run when a resting sphere sits above the line.
func (m *MergeGame) checkTopOut() {
	for _, g := range m.Spawner.SpawnedObjects() {
		if g.Transform.Position.Y < m.Config.TopOutHeight {
			continue
		}
		rb := engine.GetComponent[*components.Rigidbody](g)
		if rb != nil && rb.IsSleeping {
			m.over = true
			m.TopOut.Invoke()
			return
		}
	}
}

// Over reports whether the run has ended.
func (m *MergeGame) Over() bool {
	return m.over
}

// RadiusFor returns the sphere radius for a rank.
func (m *MergeGame) RadiusFor(rank int) float32 {
	return m.Config.BaseRadius + float32(rank)*m.Config.RadiusStep
}
