package scripts

import (
	"math/rand"

	"proto3d/internal/components"
	"proto3d/internal/config"
	"proto3d/internal/engine"
	"proto3d/internal/spawn"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// BlockDrop is the falling-blocks-with-bombs prototype. A block drops
// from above the play area on a fixed interval; bombs clear every
// block in their radius when they come to rest. Blocks and bombs come
// from the spawner pool. Code-managed: the host wires the spawner,
// types and timer.
type BlockDrop struct {
	engine.BaseComponent
	Spawner   *spawn.Spawner
	Config    config.BlockDropConfig
	BlockType spawn.ObjectType
	BombType  spawn.ObjectType
	Timer     *GameTimer

	// DropOrigin is the center of the drop line; blocks appear at a
	// random X around it.
	DropOrigin rl.Vector3
	DropWidth  float32

	Score   int
	GameOver engine.Event

	rng     *rand.Rand
	clock   float32
	settled map[*engine.GameObject]bool
	over    bool
}

func NewBlockDrop(spawner *spawn.Spawner, cfg config.BlockDropConfig, blockType, bombType spawn.ObjectType, rng *rand.Rand) *BlockDrop {
	return &BlockDrop{
		Spawner:    spawner,
		Config:     cfg,
		BlockType:  blockType,
		BombType:   bombType,
		DropOrigin: rl.Vector3{Y: 14},
		DropWidth:  8,
		rng:        rng,
		settled:    make(map[*engine.GameObject]bool),
	}
}

func (b *BlockDrop) Update(deltaTime float32) {
	if b.over || b.Spawner == nil {
		return
	}
	if b.Timer != nil && b.Timer.Done() {
		b.finish()
		return
	}

	b.clock += deltaTime
	if b.clock >= b.Config.DropInterval {
		b.clock -= b.Config.DropInterval
		b.drop()
	}

	b.scoreSettledBlocks()
}

func (b *BlockDrop) drop() {
	t := b.BlockType
	if b.rng.Float64() < b.Config.BombChance {
		t = b.BombType
	}
	// Bypass the sampler: drops come from the drop line, not the
	// shared spawn area.
	pos := rl.Vector3{
		X: b.DropOrigin.X + (b.rng.Float32()-0.5)*b.DropWidth,
		Y: b.DropOrigin.Y,
		Z: b.DropOrigin.Z,
	}
	g := b.Spawner.Pool().Acquire(t, pos, rl.Vector3{}, false)
	if g != nil {
		b.Spawner.Track(g)
	}
}

// scoreSettledBlocks scores each block once it comes to rest; bombs
// explode instead.
func (b *BlockDrop) scoreSettledBlocks() {
	for _, g := range b.Spawner.SpawnedObjects() {
		if b.settled[g] {
			continue
		}
		rb := engine.GetComponent[*components.Rigidbody](g)
		if rb == nil || !rb.IsSleeping {
			continue
		}
		b.settled[g] = true

		if g.HasTag("bomb") {
			b.explode(g)
		} else {
			b.Score += b.Config.ScorePerCell
		}
	}
}

// explode recalls the bomb and every settled block within its radius.
func (b *BlockDrop) explode(bomb *engine.GameObject) {
	center := bomb.Transform.Position
	cleared := 0
	for _, g := range b.Spawner.SpawnedObjects() {
		if g == bomb {
			continue
		}
		if rl.Vector3Distance(g.Transform.Position, center) <= b.Config.BombRadius {
			delete(b.settled, g)
			if b.Spawner.Recall(g) {
				cleared++
			}
		}
	}
	delete(b.settled, bomb)
	b.Spawner.Recall(bomb)
	b.Score += cleared * b.Config.ScorePerCell
}

func (b *BlockDrop) finish() {
	b.over = true
	b.GameOver.Invoke()
}

// Over reports whether the run has ended.
func (b *BlockDrop) Over() bool {
	return b.over
}
