package game

import (
	"fmt"
	"math/rand"
	"time"

	"proto3d/internal/components"
	"proto3d/internal/config"
	"proto3d/internal/engine"
	"proto3d/internal/logging"
	"proto3d/internal/save"
	"proto3d/internal/scripts"
	"proto3d/internal/spawn"
	"proto3d/internal/world"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/quasilyte/gdata/v2"
)

// Mode selects which prototype runs on top of the shared spawner.
type Mode int

const (
	ModePlayground Mode = iota
	ModeBlockDrop
	ModeMerge
	ModeSeesaw
)

func (m Mode) String() string {
	switch m {
	case ModeBlockDrop:
		return "block drop"
	case ModeMerge:
		return "merge"
	case ModeSeesaw:
		return "seesaw"
	default:
		return "playground"
	}
}

// Options configure a game run. Zero values fall back to built-in
// defaults and a time-based seed.
type Options struct {
	SpawnConfigPath string
	GameConfigPath  string
	ScenePath       string
	Seed            int64
}

type Game struct {
	World    *world.World
	Save     *save.Manager
	SpawnCfg *config.SpawnConfig
	GameCfg  *config.GameConfig

	cameraRig *engine.GameObject
	orbit     *scripts.OrbitCamera
	camera    *components.Camera

	caller *scripts.AutoSpawnCaller
	panel  *panel

	mode      Mode
	modeHost  *engine.GameObject
	blockDrop *scripts.BlockDrop
	merge     *scripts.MergeGame
	seesaw    *scripts.Seesaw

	rng   *rand.Rand
	log   *logging.Logger
	opts  Options
	debug bool

	// Frame timing (ms)
	updateMs float64
	shadowMs float64
	drawMs   float64
}

func New(opts Options) *Game {
	logger := logging.Default()

	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	spawnCfg := config.DefaultSpawnConfig()
	if opts.SpawnConfigPath != "" {
		if cfg, err := config.LoadSpawnConfig(opts.SpawnConfigPath); err != nil {
			logger.Log(logging.LevelWarning, "config.spawn", err, true)
		} else {
			spawnCfg = cfg
		}
	}

	gameCfg := config.DefaultGameConfig()
	if opts.GameConfigPath != "" {
		if cfg, err := config.LoadGameConfig(opts.GameConfigPath); err != nil {
			logger.Log(logging.LevelWarning, "config.game", err, true)
		} else {
			gameCfg = cfg
		}
	}

	storage, err := gdata.Open(gdata.Config{AppName: "proto3d"})
	if err != nil {
		logger.Log(logging.LevelWarning, "save.open", err, true)
		storage = nil
	}

	return &Game{
		World:    world.New(rng, logger),
		Save:     save.NewManager(storage),
		SpawnCfg: spawnCfg,
		GameCfg:  gameCfg,
		rng:      rng,
		log:      logger,
		opts:     opts,
	}
}

func (g *Game) Run() error {
	rl.SetConfigFlags(rl.FlagWindowHighdpi)
	rl.InitWindow(1280, 720, "proto3d spawner playground")
	defer rl.CloseWindow()

	rl.SetTargetFPS(120)
	initRayguiStyle()

	g.World.Initialize()
	defer g.World.Unload()

	if g.opts.ScenePath != "" {
		if err := g.World.LoadScene(g.opts.ScenePath); err != nil {
			g.log.Log(logging.LevelWarning, "scene.load", err, true)
		}
	}
	g.ensureSpawnArea()

	area := g.World.SpawnAreas[0]
	if err := g.World.BuildSpawner(g.SpawnCfg, area); err != nil {
		return fmt.Errorf("run: %w", err)
	}
	g.applyPanelSettings()

	g.createCameraRig()
	g.createSpawnController()
	g.panel = newPanel(g)
	g.switchMode(ModePlayground)

	for !rl.WindowShouldClose() {
		g.update()
		g.draw()
	}
	return nil
}

// ensureSpawnArea adds a default spawn volume above the floor when the
// scene does not define one.
func (g *Game) ensureSpawnArea() {
	if len(g.World.SpawnAreas) > 0 {
		return
	}
	holder := engine.NewGameObject("SpawnVolume")
	holder.Transform.Position = rl.Vector3{Y: 9}
	area := components.NewSpawnArea(rl.Vector3{X: 16, Y: 6, Z: 16})
	holder.AddComponent(area)
	g.World.Scene.AddGameObject(holder)
	g.World.SpawnAreas = append(g.World.SpawnAreas, area)
}

// applyPanelSettings pushes persisted panel state onto the spawner.
func (g *Game) applyPanelSettings() {
	p := g.Save.Panel()
	sampler := g.World.Spawner.Sampler()
	if p.SurfaceMode {
		sampler.Mode = spawn.PlaceSurface
	} else {
		sampler.Mode = spawn.PlaceVolume
	}
	g.World.Spawner.ForceWhenEmpty = p.ForceWhenEmpty
}

func (g *Game) createCameraRig() {
	g.cameraRig = engine.NewGameObject("CameraRig")
	g.cameraRig.Tags = append(g.cameraRig.Tags, "runtime")

	g.orbit = scripts.NewOrbitCamera(rl.Vector3{Y: 3}, 24)
	g.orbit.Yaw = 35
	g.cameraRig.AddComponent(g.orbit)

	g.camera = components.NewCamera()
	g.camera.IsMain = true
	g.cameraRig.AddComponent(g.camera)

	g.cameraRig.Start()
	g.World.Scene.AddGameObject(g.cameraRig)
}

// createSpawnController attaches the key-driven spawn caller. It stays
// alive across mode switches because it also drives the spawner tick.
func (g *Game) createSpawnController() {
	types := make([]spawn.ObjectType, 0)
	for i := range g.SpawnCfg.Pool {
		types = append(types, spawn.ObjectType(i+1))
	}

	g.caller = scripts.NewAutoSpawnCaller(g.World.Spawner, types)
	g.caller.Weights = g.World.Weights
	g.caller.SpawnCount = g.Save.Panel().SpawnCount
	g.caller.Duration = g.Save.Panel().Duration

	holder := engine.NewGameObject("SpawnController")
	holder.Tags = append(holder.Tags, "runtime")
	holder.AddComponent(g.caller)
	holder.Start()
	g.World.Scene.AddGameObject(holder)
}

// switchMode recalls everything and rebuilds the per-mode host object.
func (g *Game) switchMode(mode Mode) {
	g.World.Spawner.StopSequential()
	g.World.Spawner.RecallAll()
	if g.modeHost != nil {
		g.World.Destroy(g.modeHost)
		g.modeHost = nil
	}
	g.blockDrop = nil
	g.merge = nil
	g.seesaw = nil
	g.mode = mode

	// Key spawning works in the sandbox and for loading the seesaw.
	g.caller.ReadInput = mode == ModePlayground || mode == ModeSeesaw

	switch mode {
	case ModeBlockDrop:
		g.startBlockDrop()
	case ModeMerge:
		g.startMerge()
	case ModeSeesaw:
		g.startSeesaw()
	}
}

func (g *Game) startBlockDrop() {
	host := engine.NewGameObject("BlockDropHost")
	host.Tags = append(host.Tags, "runtime")

	timer := scripts.NewGameTimer(g.GameCfg.TimerSec)
	host.AddComponent(timer)

	bd := scripts.NewBlockDrop(
		g.World.Spawner,
		g.GameCfg.BlockDrop,
		g.World.TypeByName("crate"),
		g.World.TypeByName("bomb"),
		g.rng,
	)
	bd.Timer = timer
	bd.GameOver.AddListener(func() {
		if g.Save.RecordBlockDrop(bd.Score) {
			g.log.Log(logging.LevelInfo, "blockdrop.best", bd.Score, false)
		}
	})
	host.AddComponent(bd)

	host.Start()
	g.World.Scene.AddGameObject(host)
	g.modeHost = host
	g.blockDrop = bd
}

func (g *Game) startMerge() {
	ranks := make([]spawn.ObjectType, 0, g.GameCfg.Merge.Kinds)
	for i := 0; i < g.GameCfg.Merge.Kinds; i++ {
		t := g.World.TypeByName(fmt.Sprintf("orb%d", i))
		if t == spawn.TypeNone {
			break
		}
		ranks = append(ranks, t)
	}

	host := engine.NewGameObject("MergeHost")
	host.Tags = append(host.Tags, "runtime")

	mg := scripts.NewMergeGame(g.World.Spawner, g.GameCfg.Merge, ranks)
	mg.TopOut.AddListener(func() {
		if g.Save.RecordMerge(mg.Score) {
			g.log.Log(logging.LevelInfo, "merge.best", mg.Score, false)
		}
	})
	host.AddComponent(mg)

	host.Start()
	g.World.Scene.AddGameObject(host)
	g.modeHost = host
	g.merge = mg
}

func (g *Game) startSeesaw() {
	cfg := g.GameCfg.Seesaw

	host := engine.NewGameObject("Seesaw")
	host.Tags = append(host.Tags, "runtime")
	host.Transform.Position = rl.Vector3{Y: 1.5}

	mr := components.NewCubeRenderer(rl.Vector3{X: cfg.PlankLength, Y: 0.4, Z: 2}, rl.Brown)
	mr.SetShader(g.World.Renderer.Shader)
	host.AddComponent(mr)
	host.AddComponent(components.NewBoxCollider(rl.Vector3{X: cfg.PlankLength, Y: 0.4, Z: 2}))

	rb := components.NewRigidbody()
	rb.IsKinematic = true
	rb.UseGravity = false
	host.AddComponent(rb)

	sw := scripts.NewSeesaw(cfg)
	sw.Balanced.AddListener(func() {
		g.Save.RecordSeesawWin()
		g.log.Log(logging.LevelInfo, "seesaw.won", true, false)
	})
	host.AddComponent(sw)

	host.Start()
	g.World.SpawnObject(host)
	g.modeHost = host
	g.seesaw = sw
}

func (g *Game) update() {
	updateStart := time.Now()
	deltaTime := rl.GetFrameTime()

	g.pollModeKeys()

	if g.mode == ModeMerge && g.merge != nil && rl.IsKeyPressed(rl.KeySpace) {
		pos := rl.Vector3{
			X: -4 + g.rng.Float32()*8,
			Y: g.GameCfg.Merge.TopOutHeight + 2,
			Z: 0,
		}
		g.merge.Drop(g.rng.Intn(3), pos)
	}

	g.World.Update(deltaTime)

	// Light controls
	lightSpeed := deltaTime
	if rl.IsKeyDown(rl.KeyLeft) {
		g.World.Renderer.MoveLightDir(-lightSpeed, 0, 0)
	}
	if rl.IsKeyDown(rl.KeyRight) {
		g.World.Renderer.MoveLightDir(lightSpeed, 0, 0)
	}
	if rl.IsKeyDown(rl.KeyUp) {
		g.World.Renderer.MoveLightDir(0, 0, lightSpeed)
	}
	if rl.IsKeyDown(rl.KeyDown) {
		g.World.Renderer.MoveLightDir(0, 0, -lightSpeed)
	}

	if rl.IsKeyPressed(rl.KeyF1) {
		g.panel.toggle()
	}
	if rl.IsKeyPressed(rl.KeyF9) {
		g.debug = !g.debug
	}

	g.updateMs = float64(time.Since(updateStart).Microseconds()) / 1000.0
}

func (g *Game) pollModeKeys() {
	switch {
	case rl.IsKeyPressed(rl.KeyF2):
		g.switchMode(ModePlayground)
	case rl.IsKeyPressed(rl.KeyF3):
		g.switchMode(ModeBlockDrop)
	case rl.IsKeyPressed(rl.KeyF4):
		g.switchMode(ModeMerge)
	case rl.IsKeyPressed(rl.KeyF5):
		g.switchMode(ModeSeesaw)
	}
}

func (g *Game) draw() {
	camera := g.camera.GetRaylibCamera()

	shadowStart := time.Now()
	g.World.DrawShadowMap()
	g.shadowMs = float64(time.Since(shadowStart).Microseconds()) / 1000.0

	rl.BeginDrawing()
	rl.ClearBackground(rl.NewColor(20, 20, 30, 255))

	drawStart := time.Now()
	rl.BeginMode3D(camera)
	g.World.DrawWithShadows(camera)
	rl.EndMode3D()
	g.drawMs = float64(time.Since(drawStart).Microseconds()) / 1000.0

	g.drawHUD()
	g.panel.draw()
	rl.EndDrawing()
}

func (g *Game) drawHUD() {
	rl.DrawText(fmt.Sprintf("mode: %s   F2 playground  F3 block drop  F4 merge  F5 seesaw  F1 panel", g.mode), 10, 10, 18, rl.RayWhite)
	rl.DrawFPS(10, 34)

	y := int32(58)
	scores := g.Save.Scores()
	switch g.mode {
	case ModePlayground:
		rl.DrawText("1-9 spawn  Q sequential  W/E weighted  R recall all  T recall one  S stop", 10, y, 16, colorTextSecondary)
	case ModeBlockDrop:
		if g.blockDrop != nil {
			state := fmt.Sprintf("score %d   best %d", g.blockDrop.Score, scores.BlockDrop)
			if g.blockDrop.Timer != nil && !g.blockDrop.Over() {
				state += fmt.Sprintf("   %.0fs left", g.blockDrop.Timer.Remaining)
			}
			if g.blockDrop.Over() {
				state += "   game over, F3 to restart"
			}
			rl.DrawText(state, 10, y, 16, colorTextSecondary)
		}
	case ModeMerge:
		if g.merge != nil {
			state := fmt.Sprintf("SPACE drop   score %d   best %d", g.merge.Score, scores.Merge)
			if g.merge.Over() {
				state += "   topped out, F4 to restart"
			}
			rl.DrawText(state, 10, y, 16, colorTextSecondary)
		}
	case ModeSeesaw:
		if g.seesaw != nil {
			state := fmt.Sprintf("1-9 drop weights on the plank   tilt %+.1f deg", g.seesaw.Tilt)
			if g.seesaw.Won() {
				state += "   balanced!"
			} else if scores.SeesawWin {
				state += "   (solved before)"
			}
			rl.DrawText(state, 10, y, 16, colorTextSecondary)
		}
	}

	if g.debug {
		rl.DrawText(fmt.Sprintf("update  %.2f ms", g.updateMs), 10, 90, 16, rl.Green)
		rl.DrawText(fmt.Sprintf("shadows %.2f ms", g.shadowMs), 10, 110, 16, rl.Green)
		rl.DrawText(fmt.Sprintf("draw    %.2f ms", g.drawMs), 10, 130, 16, rl.Green)
		rl.DrawText(fmt.Sprintf("bodies  %d", g.World.PhysicsWorld.DynamicObjectCount()), 10, 150, 16, rl.Green)
	}
}
