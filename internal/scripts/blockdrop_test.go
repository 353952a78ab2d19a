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

const (
	blockType spawn.ObjectType = 1
	bombType  spawn.ObjectType = 2
)

func blockPrefab() *engine.GameObject {
	g := engine.NewGameObject("block")
	g.AddComponent(components.NewRigidbody())
	return g
}

func bombPrefab() *engine.GameObject {
	g := engine.NewGameObject("bomb")
	g.Tags = []string{"bomb"}
	g.AddComponent(components.NewRigidbody())
	return g
}

func testBlockDrop(t *testing.T, bombChance float64) (*BlockDrop, *spawn.Spawner) {
	t.Helper()
	pool := spawn.NewTypedPool([]spawn.PoolEntry{
		{Type: blockType, Count: 30, Prefab: blockPrefab},
		{Type: bombType, Count: 10, Prefab: bombPrefab},
	}, nil)
	if err := pool.Initialize(nil); err != nil {
		t.Fatal(err)
	}
	rng := rand.New(rand.NewSource(7))
	spawner := spawn.NewSpawner(pool, spawn.NewSampler(rng, nil), rng, nil)

	cfg := config.BlockDropConfig{DropInterval: 1, BombChance: bombChance, BombRadius: 2, ScorePerCell: 10}
	return NewBlockDrop(spawner, cfg, blockType, bombType, rng), spawner
}

func settle(g *engine.GameObject) {
	engine.GetComponent[*components.Rigidbody](g).IsSleeping = true
}

func TestBlockDropSpawnsOnInterval(t *testing.T) {
	b, s := testBlockDrop(t, 0)

	for i := 0; i < 10; i++ {
		b.Update(0.5) // 5 seconds total
	}
	if got := s.SpawnedCount(); got != 5 {
		t.Errorf("expected 5 drops after 5s at 1s interval, got %d", got)
	}
}

func TestBlockDropScoresSettledBlocks(t *testing.T) {
	b, s := testBlockDrop(t, 0)

	b.Update(1) // one drop
	for _, g := range s.SpawnedObjects() {
		settle(g)
	}
	b.Update(0.01)

	if b.Score != 10 {
		t.Errorf("score %d after one settled block, expected 10", b.Score)
	}

	// A settled block scores only once.
	b.Update(0.01)
	if b.Score != 10 {
		t.Errorf("score %d after re-check, block scored twice", b.Score)
	}
}

func TestBombClearsRadius(t *testing.T) {
	b, s := testBlockDrop(t, 0)
	pool := s.Pool()

	near := pool.Acquire(blockType, rl.Vector3{X: 1}, rl.Vector3{}, false)
	far := pool.Acquire(blockType, rl.Vector3{X: 50}, rl.Vector3{}, false)
	bomb := pool.Acquire(bombType, rl.Vector3{}, rl.Vector3{}, false)
	s.Track(near)
	s.Track(far)
	s.Track(bomb)
	settle(near)
	settle(far)
	settle(bomb)

	b.Update(0.01)

	if near.Active {
		t.Error("block inside bomb radius survived")
	}
	if !far.Active {
		t.Error("block outside bomb radius was cleared")
	}
	if bomb.Active {
		t.Error("bomb itself was not recalled")
	}
	// near and far score as settled (+20), then the bomb clears near (+10).
	if b.Score != 20+10 {
		t.Errorf("score %d after explosion, expected 30", b.Score)
	}
}

func TestBlockDropEndsWithTimer(t *testing.T) {
	b, s := testBlockDrop(t, 0)
	b.Timer = NewGameTimer(0.5)
	over := 0
	b.GameOver.AddListener(func() { over++ })

	b.Timer.Update(1) // expire
	b.Update(1)
	b.Update(1)

	if over != 1 {
		t.Errorf("game over fired %d times, expected once", over)
	}
	if !b.Over() {
		t.Error("over state not set")
	}
	if s.SpawnedCount() != 0 {
		t.Error("blocks dropped after the run ended")
	}
}
