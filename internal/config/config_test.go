package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "spawn.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadSpawnConfig(t *testing.T) {
	path := writeConfig(t, `
pool:
  - name: cube
    shape: cube
    size: [1, 1, 1]
    color: Red
    count: 20
    physics: true
  - name: ball
    shape: sphere
    size: [0.5, 0, 0]
    count: 10
weights:
  - name: cube
    weight: 0.7
  - name: ball
    weight: 0.3
placement:
  mode: surface
  lockY: true
sequentialDuration: 5
`)

	cfg, err := LoadSpawnConfig(path)
	if err != nil {
		t.Fatalf("LoadSpawnConfig: %v", err)
	}
	if len(cfg.Pool) != 2 {
		t.Fatalf("expected 2 pool entries, got %d", len(cfg.Pool))
	}
	if cfg.Pool[0].Count != 20 || !cfg.Pool[0].Physics {
		t.Errorf("cube entry parsed wrong: %+v", cfg.Pool[0])
	}
	if cfg.Placement.Mode != "surface" || !cfg.Placement.LockY || cfg.Placement.LockX {
		t.Errorf("placement parsed wrong: %+v", cfg.Placement)
	}
	if cfg.SequentialDuration != 5 {
		t.Errorf("sequentialDuration = %v", cfg.SequentialDuration)
	}
}

func TestLoadSpawnConfigDefaults(t *testing.T) {
	path := writeConfig(t, `
pool:
  - name: cube
    count: 5
`)
	cfg, err := LoadSpawnConfig(path)
	if err != nil {
		t.Fatalf("LoadSpawnConfig: %v", err)
	}
	if cfg.Pool[0].Shape != "cube" || cfg.Pool[0].Color != "White" {
		t.Errorf("pool defaults not applied: %+v", cfg.Pool[0])
	}
	if cfg.Placement.Mode != "volume" {
		t.Errorf("placement mode default not applied: %q", cfg.Placement.Mode)
	}
	if cfg.SequentialDuration != 3 {
		t.Errorf("sequentialDuration default not applied: %v", cfg.SequentialDuration)
	}
}

func TestLoadSpawnConfigRejectsBadInput(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{"empty pool", `pool: []`},
		{"zero count", "pool:\n  - name: cube\n    count: 0"},
		{"duplicate name", "pool:\n  - name: cube\n    count: 1\n  - name: cube\n    count: 2"},
		{"bad shape", "pool:\n  - name: cube\n    shape: cone\n    count: 1"},
		{"weight for unknown", "pool:\n  - name: cube\n    count: 1\nweights:\n  - name: ghost\n    weight: 1"},
		{"non-positive weight", "pool:\n  - name: cube\n    count: 1\nweights:\n  - name: cube\n    weight: 0"},
		{"bad placement mode", "pool:\n  - name: cube\n    count: 1\nplacement:\n  mode: orbit"},
	}
	for _, tc := range cases {
		if _, err := LoadSpawnConfig(writeConfig(t, tc.content)); err == nil {
			t.Errorf("%s: config was accepted", tc.name)
		}
	}
}

func TestLoadGameConfigFallsBackToDefaults(t *testing.T) {
	path := writeConfig(t, `
blockDrop:
  dropInterval: 0.8
`)
	cfg, err := LoadGameConfig(path)
	if err != nil {
		t.Fatalf("LoadGameConfig: %v", err)
	}
	if cfg.BlockDrop.DropInterval != 0.8 {
		t.Errorf("override not applied: %v", cfg.BlockDrop.DropInterval)
	}
	// Untouched sections keep their defaults.
	def := DefaultGameConfig()
	if cfg.Merge.Kinds != def.Merge.Kinds || cfg.Seesaw.PlankLength != def.Seesaw.PlankLength {
		t.Error("defaults lost for sections missing from the file")
	}
}
