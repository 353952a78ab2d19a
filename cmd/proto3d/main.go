package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"
	"strings"

	"proto3d/internal/game"
)

func main() {
	// Change working directory to executable location for deployed builds.
	// Skip this for "go run" which puts the binary in a temp directory.
	if execPath, err := os.Executable(); err == nil {
		execDir := filepath.Dir(execPath)
		// Detect "go run" by checking if executable is in a temp/go-build directory
		if !strings.Contains(execDir, "go-build") {
			os.Chdir(execDir)
		}
	}

	spawnCfg := flag.String("spawn-config", "assets/config/spawn.yaml", "spawn table YAML, built-in defaults when missing")
	gameCfg := flag.String("game-config", "assets/config/games.yaml", "minigame tuning YAML, built-in defaults when missing")
	scene := flag.String("scene", "assets/scenes/playground.json", "scene file to load, empty for a bare floor")
	seed := flag.Int64("seed", 0, "spawner RNG seed, 0 seeds from the clock")
	flag.Parse()

	g := game.New(game.Options{
		SpawnConfigPath: *spawnCfg,
		GameConfigPath:  *gameCfg,
		ScenePath:       *scene,
		Seed:            *seed,
	})
	if err := g.Run(); err != nil {
		log.Fatal(err)
	}
}
