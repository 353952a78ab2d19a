package scripts

import (
	"proto3d/internal/engine"
	"proto3d/internal/spawn"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// AutoSpawnCaller fires spawn commands from key presses and an optional
// repeating timer, and drives the spawner's tick. It is code-managed:
// the host constructs it with its spawner, it never loads from a scene
// file.
type AutoSpawnCaller struct {
	engine.BaseComponent
	Spawner *spawn.Spawner

	// Types cycled by the number keys; Weights drive the weighted keys.
	Types   []spawn.ObjectType
	Weights []spawn.WeightEntry

	SpawnCount int
	Duration   float32

	// RepeatEvery > 0 fires a weighted sequential command on a loop.
	RepeatEvery float32
	repeatClock float32

	// ReadInput disables raylib key polling for headless runs.
	ReadInput bool
}

func NewAutoSpawnCaller(spawner *spawn.Spawner, types []spawn.ObjectType) *AutoSpawnCaller {
	return &AutoSpawnCaller{
		Spawner:    spawner,
		Types:      types,
		SpawnCount: 10,
		Duration:   3,
		ReadInput:  true,
	}
}

func (a *AutoSpawnCaller) Update(deltaTime float32) {
	if a.Spawner == nil {
		return
	}

	if a.RepeatEvery > 0 && len(a.Weights) > 0 {
		a.repeatClock += deltaTime
		if a.repeatClock >= a.RepeatEvery && !a.Spawner.IsSpawning() {
			a.repeatClock = 0
			a.Spawner.SpawnWeightedSequential(a.SpawnCount, a.Weights, a.Duration)
		}
	}

	if a.ReadInput {
		a.pollKeys()
	}

	a.Spawner.Update(deltaTime)
}

func (a *AutoSpawnCaller) pollKeys() {
	for i, t := range a.Types {
		if i < 9 && rl.IsKeyPressed(int32(rl.KeyOne)+int32(i)) {
			a.Spawner.SpawnImmediate(t, a.SpawnCount)
		}
	}
	switch {
	case rl.IsKeyPressed(rl.KeyQ) && len(a.Types) > 0:
		a.Spawner.SpawnSequential(a.Types[0], a.SpawnCount, a.Duration)
	case rl.IsKeyPressed(rl.KeyW) && len(a.Weights) > 0:
		a.Spawner.SpawnWeightedImmediate(a.SpawnCount, a.Weights)
	case rl.IsKeyPressed(rl.KeyE) && len(a.Weights) > 0:
		a.Spawner.SpawnWeightedSequential(a.SpawnCount, a.Weights, a.Duration)
	case rl.IsKeyPressed(rl.KeyR):
		a.Spawner.RecallAll()
	case rl.IsKeyPressed(rl.KeyT):
		a.Spawner.RecallLatest(1)
	case rl.IsKeyPressed(rl.KeyS):
		a.Spawner.StopSequential()
	}
}
