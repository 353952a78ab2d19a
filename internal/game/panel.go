package game

import (
	"fmt"

	"proto3d/internal/logging"
	"proto3d/internal/spawn"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// panel is the spawn debug overlay. Every spawner operation is
// reachable from here; its settings persist between runs.
type panel struct {
	game *Game
}

func newPanel(g *Game) *panel {
	p := &panel{game: g}
	return p
}

func (p *panel) toggle() {
	settings := p.game.Save.Panel()
	settings.Visible = !settings.Visible
	p.persist()
}

func (p *panel) persist() {
	if err := p.game.Save.SavePanel(); err != nil {
		p.game.log.Log(logging.LevelWarning, "panel.save", err, false)
	}
}

func (p *panel) draw() {
	settings := p.game.Save.Panel()
	if !settings.Visible {
		return
	}

	g := p.game
	spawner := g.World.Spawner
	sampler := spawner.Sampler()

	const width = 280
	x := float32(rl.GetScreenWidth()) - width - 10
	y := float32(10)

	names := g.World.PoolNames()
	statLines := 3 + len(names)
	height := float32(208+28*min(len(names), 9)+18*statLines) + 150
	rl.DrawRectangleRec(rl.Rectangle{X: x - 10, Y: y - 10, Width: width + 20, Height: height}, colorBgPanel)

	drawTextEx(uiFontBold, "Spawner", int32(x), int32(y), 18, colorTextPrimary)
	y += 28

	// Command parameters
	count := gui.Slider(rl.Rectangle{X: x + 60, Y: y, Width: width - 100, Height: 18},
		"count", fmt.Sprintf("%d", settings.SpawnCount), float32(settings.SpawnCount), 1, 50)
	if int(count) != settings.SpawnCount {
		settings.SpawnCount = int(count)
		g.caller.SpawnCount = settings.SpawnCount
		p.persist()
	}
	y += 26

	duration := gui.Slider(rl.Rectangle{X: x + 60, Y: y, Width: width - 100, Height: 18},
		"dur", fmt.Sprintf("%.1fs", settings.Duration), settings.Duration, 0.5, 10)
	if duration != settings.Duration {
		settings.Duration = duration
		g.caller.Duration = duration
		p.persist()
	}
	y += 30

	surface := gui.CheckBox(rl.Rectangle{X: x, Y: y, Width: 18, Height: 18},
		"Surface placement", settings.SurfaceMode)
	if surface != settings.SurfaceMode {
		settings.SurfaceMode = surface
		if surface {
			sampler.Mode = spawn.PlaceSurface
		} else {
			sampler.Mode = spawn.PlaceVolume
		}
		p.persist()
	}
	y += 24

	force := gui.CheckBox(rl.Rectangle{X: x, Y: y, Width: 18, Height: 18},
		"Recycle when exhausted", settings.ForceWhenEmpty)
	if force != settings.ForceWhenEmpty {
		settings.ForceWhenEmpty = force
		spawner.ForceWhenEmpty = force
		p.persist()
	}
	y += 30

	// One immediate-spawn button per pool category
	for i, name := range names {
		if i >= 9 {
			break
		}
		t := spawn.ObjectType(i + 1)
		label := fmt.Sprintf("%s  (%d free)", name, spawner.Pool().FreeCount(t))
		if gui.Button(rl.Rectangle{X: x, Y: y, Width: width - 20, Height: 22}, label) {
			spawner.SpawnImmediate(t, settings.SpawnCount)
		}
		y += 28
	}
	y += 4

	half := (width - 26) / 2
	if gui.Button(rl.Rectangle{X: x, Y: y, Width: half, Height: 22}, "Weighted now") {
		spawner.SpawnWeightedImmediate(settings.SpawnCount, g.World.Weights)
	}
	if gui.Button(rl.Rectangle{X: x + half + 6, Y: y, Width: half, Height: 22}, "Weighted paced") {
		spawner.SpawnWeightedSequential(settings.SpawnCount, g.World.Weights, settings.Duration)
	}
	y += 28
	if gui.Button(rl.Rectangle{X: x, Y: y, Width: half, Height: 22}, "Recall all") {
		spawner.RecallAll()
	}
	if gui.Button(rl.Rectangle{X: x + half + 6, Y: y, Width: half, Height: 22}, "Recall one") {
		spawner.RecallLatest(1)
	}
	y += 28
	if gui.Button(rl.Rectangle{X: x, Y: y, Width: half, Height: 22}, "Stop paced") {
		spawner.StopSequential()
	}
	y += 34

	// Pool and queue stats
	state := "idle"
	if spawner.IsSpawning() {
		state = "spawning"
	}
	drawTextEx(uiFontMono, fmt.Sprintf("%s  active %d", state, spawner.SpawnedCount()), int32(x), int32(y), 15, colorTextSecondary)
	y += 18
	for i, name := range names {
		t := spawn.ObjectType(i + 1)
		line := fmt.Sprintf("%-8s free %2d  out %2d", name, spawner.Pool().FreeCount(t), spawner.Pool().ActiveCount(t))
		drawTextEx(uiFontMono, line, int32(x), int32(y), 15, colorTextMuted)
		y += 18
	}
}
