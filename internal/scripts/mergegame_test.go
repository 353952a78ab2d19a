package scripts

import (
	"math/rand"
	"testing"

	"proto3d/internal/components"
	"proto3d/internal/config"
	"proto3d/internal/engine"
	"proto3d/internal/spawn"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func mergePrefab(rank int) func() *engine.GameObject {
	return func() *engine.GameObject {
		g := engine.NewGameObject("fruit")
		g.AddComponent(components.NewRigidbody())
		g.AddComponent(&MergeBody{Rank: rank})
		return g
	}
}

func testMergeGame(t *testing.T) *MergeGame {
	t.Helper()
	ranks := []spawn.ObjectType{1, 2, 3}
	entries := make([]spawn.PoolEntry, len(ranks))
	for i, rt := range ranks {
		entries[i] = spawn.PoolEntry{Type: rt, Count: 10, Prefab: mergePrefab(i)}
	}
	pool := spawn.NewTypedPool(entries, nil)
	if err := pool.Initialize(nil); err != nil {
		t.Fatal(err)
	}
	rng := rand.New(rand.NewSource(11))
	spawner := spawn.NewSpawner(pool, spawn.NewSampler(rng, nil), rng, nil)

	cfg := config.MergeConfig{Kinds: 3, TopOutHeight: 10, BaseRadius: 0.4, RadiusStep: 0.25, ScorePerRank: 5}
	return NewMergeGame(spawner, cfg, ranks)
}

// dropFruit acquires a rank sphere, wires its body to the manager and
// tracks it, the way the host seeds the play area.
func dropFruit(m *MergeGame, rank int, pos rl.Vector3) *engine.GameObject {
	g := m.Spawner.Pool().Acquire(m.RankTypes[rank], pos, rl.Vector3{}, false)
	m.Spawner.Track(g)
	body := engine.GetComponent[*MergeBody](g)
	body.Manager = m
	body.Rank = rank
	return g
}

func TestMergeSameRankProducesNextRank(t *testing.T) {
	m := testMergeGame(t)
	a := dropFruit(m, 0, rl.Vector3{})
	b := dropFruit(m, 0, rl.Vector3{X: 0.5})

	engine.GetComponent[*MergeBody](a).OnCollisionEnter(b)
	engine.GetComponent[*MergeBody](b).OnCollisionEnter(a) // both callbacks fire
	m.Update(0.016)

	if a.Active || b.Active {
		t.Error("merged sources still active")
	}
	if m.Spawner.SpawnedCount() != 1 {
		t.Fatalf("expected exactly one merged instance, got %d", m.Spawner.SpawnedCount())
	}

	merged := m.Spawner.SpawnedObjects()[0]
	body := engine.GetComponent[*MergeBody](merged)
	if body.Rank != 1 {
		t.Errorf("merged rank %d, expected 1", body.Rank)
	}
	if merged.Transform.Position.X != 0.25 {
		t.Errorf("merged instance not at contact midpoint: %v", merged.Transform.Position)
	}
	if m.Score != 2*m.Config.ScorePerRank {
		t.Errorf("score %d after one merge, expected %d", m.Score, 2*m.Config.ScorePerRank)
	}
}

func TestMergeIgnoresDifferentRanks(t *testing.T) {
	m := testMergeGame(t)
	a := dropFruit(m, 0, rl.Vector3{})
	b := dropFruit(m, 1, rl.Vector3{X: 1})

	engine.GetComponent[*MergeBody](a).OnCollisionEnter(b)
	m.Update(0.016)

	if !a.Active || !b.Active {
		t.Error("cross-rank contact merged")
	}
}

func TestMaxRankNeverMerges(t *testing.T) {
	m := testMergeGame(t)
	a := dropFruit(m, 2, rl.Vector3{})
	b := dropFruit(m, 2, rl.Vector3{X: 1})

	engine.GetComponent[*MergeBody](a).OnCollisionEnter(b)
	m.Update(0.016)

	if !a.Active || !b.Active {
		t.Error("max rank spheres merged")
	}
}

func TestMergeDuplicateContactsCollapse(t *testing.T) {
	m := testMergeGame(t)
	a := dropFruit(m, 0, rl.Vector3{})
	b := dropFruit(m, 0, rl.Vector3{X: 0.5})

	m.requestMerge(a, b)
	m.requestMerge(b, a)
	m.requestMerge(a, b)
	m.Update(0.016)

	if m.Spawner.SpawnedCount() != 1 {
		t.Errorf("duplicate contacts produced %d instances", m.Spawner.SpawnedCount())
	}
}

func TestTopOutEndsRun(t *testing.T) {
	m := testMergeGame(t)
	g := dropFruit(m, 0, rl.Vector3{Y: 11})
	engine.GetComponent[*components.Rigidbody](g).IsSleeping = true

	fired := 0
	m.TopOut.AddListener(func() { fired++ })
	m.Update(0.016)
	m.Update(0.016)

	if fired != 1 {
		t.Errorf("top out fired %d times, expected once", fired)
	}
	if !m.Over() {
		t.Error("run not marked over")
	}
}

func TestRadiusForGrowsWithRank(t *testing.T) {
	m := testMergeGame(t)
	if m.RadiusFor(0) != 0.4 || m.RadiusFor(2) != 0.9 {
		t.Errorf("radii: %v %v", m.RadiusFor(0), m.RadiusFor(2))
	}
}
