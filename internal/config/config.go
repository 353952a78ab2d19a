package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// SpawnConfig drives the playground spawner: which prefabs get pooled,
// their weights for weighted spawning, and placement settings.
type SpawnConfig struct {
	Pool      []PoolSpec    `yaml:"pool"`
	Weights   []WeightSpec  `yaml:"weights"`
	Placement PlacementSpec `yaml:"placement"`
	// Duration for sequential spawn commands fired from the debug panel.
	SequentialDuration float32 `yaml:"sequentialDuration"`
	// ForceWhenEmpty recycles the oldest active instance instead of
	// skipping the spawn when a pool runs dry.
	ForceWhenEmpty bool `yaml:"forceWhenEmpty"`
}

// PoolSpec describes one pooled prefab category.
type PoolSpec struct {
	Name  string     `yaml:"name"`
	Shape string     `yaml:"shape"` // "cube" or "sphere"
	Size  [3]float32 `yaml:"size"`  // cube dimensions; X doubles as sphere radius
	Color string     `yaml:"color"`
	Count int        `yaml:"count"`
	// Physics enables a rigidbody + collider on the pooled instances.
	Physics bool `yaml:"physics"`
	// Tags carry over to every pooled instance ("bomb" marks bombs).
	Tags []string `yaml:"tags"`
}

// WeightSpec assigns a relative spawn proportion to a pooled prefab.
type WeightSpec struct {
	Name   string  `yaml:"name"`
	Weight float64 `yaml:"weight"`
}

// PlacementSpec selects the placement mode and rotation locks.
type PlacementSpec struct {
	Mode  string `yaml:"mode"` // "volume" or "surface"
	LockX bool   `yaml:"lockX"`
	LockY bool   `yaml:"lockY"`
	LockZ bool   `yaml:"lockZ"`
}

// GameConfig carries per-minigame tuning.
type GameConfig struct {
	BlockDrop BlockDropConfig `yaml:"blockDrop"`
	Merge     MergeConfig     `yaml:"merge"`
	Seesaw    SeesawConfig    `yaml:"seesaw"`
	Crane     CraneConfig     `yaml:"crane"`
	Pyramid   PyramidConfig   `yaml:"pyramid"`
	TimerSec  float32         `yaml:"timerSeconds"`
}

type BlockDropConfig struct {
	DropInterval float32 `yaml:"dropInterval"`
	BombChance   float64 `yaml:"bombChance"`
	BombRadius   float32 `yaml:"bombRadius"`
	ScorePerCell int     `yaml:"scorePerCell"`
}

type MergeConfig struct {
	Kinds        int     `yaml:"kinds"`
	TopOutHeight float32 `yaml:"topOutHeight"`
	BaseRadius   float32 `yaml:"baseRadius"`
	RadiusStep   float32 `yaml:"radiusStep"`
	ScorePerRank int     `yaml:"scorePerRank"`
}

type SeesawConfig struct {
	PlankLength      float32 `yaml:"plankLength"`
	MaxTiltDeg       float32 `yaml:"maxTiltDeg"`
	BalanceTolerance float32 `yaml:"balanceTolerance"`
	WinHoldSeconds   float32 `yaml:"winHoldSeconds"`
}

type CraneConfig struct {
	MastHeight  float32 `yaml:"mastHeight"`
	JibLength   float32 `yaml:"jibLength"`
	CounterJib  float32 `yaml:"counterJib"`
	CableLength float32 `yaml:"cableLength"`
}

type PyramidConfig struct {
	BaseSize int     `yaml:"baseSize"`
	Spacing  float32 `yaml:"spacing"`
	Physics  bool    `yaml:"physics"`
}

// LoadSpawnConfig reads and validates a spawn table from a YAML file.
func LoadSpawnConfig(path string) (*SpawnConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read spawn config %s: %w", path, err)
	}
	var cfg SpawnConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse spawn config %s: %w", path, err)
	}
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid spawn config %s: %w", path, err)
	}
	return &cfg, nil
}

// LoadGameConfig reads per-minigame tuning from a YAML file.
func LoadGameConfig(path string) (*GameConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read game config %s: %w", path, err)
	}
	cfg := DefaultGameConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse game config %s: %w", path, err)
	}
	return cfg, nil
}

// DefaultGameConfig returns the tuning used when no file is present.
func DefaultGameConfig() *GameConfig {
	return &GameConfig{
		BlockDrop: BlockDropConfig{DropInterval: 1.2, BombChance: 0.15, BombRadius: 2.5, ScorePerCell: 10},
		Merge:     MergeConfig{Kinds: 6, TopOutHeight: 10, BaseRadius: 0.4, RadiusStep: 0.25, ScorePerRank: 5},
		Seesaw:    SeesawConfig{PlankLength: 8, MaxTiltDeg: 25, BalanceTolerance: 3, WinHoldSeconds: 2},
		Crane:     CraneConfig{MastHeight: 12, JibLength: 9, CounterJib: 4, CableLength: 5},
		Pyramid:   PyramidConfig{BaseSize: 6, Spacing: 1.05},
		TimerSec:  90,
	}
}

// DefaultSpawnConfig returns the spawn table used when no file is
// present. Merge ranks come last so minigames can slice them off by
// name prefix.
func DefaultSpawnConfig() *SpawnConfig {
	cfg := &SpawnConfig{
		Pool: []PoolSpec{
			{Name: "crate", Shape: "cube", Size: [3]float32{1, 1, 1}, Color: "Orange", Count: 40, Physics: true},
			{Name: "ball", Shape: "sphere", Size: [3]float32{0.5}, Color: "SkyBlue", Count: 40, Physics: true},
			{Name: "slab", Shape: "cube", Size: [3]float32{1.6, 0.4, 1.6}, Color: "Lime", Count: 20, Physics: true},
			{Name: "bomb", Shape: "sphere", Size: [3]float32{0.45}, Color: "Maroon", Count: 10, Physics: true, Tags: []string{"bomb"}},
			{Name: "orb0", Shape: "sphere", Size: [3]float32{0.4}, Color: "Yellow", Count: 24, Physics: true},
			{Name: "orb1", Shape: "sphere", Size: [3]float32{0.65}, Color: "Gold", Count: 16, Physics: true},
			{Name: "orb2", Shape: "sphere", Size: [3]float32{0.9}, Color: "Orange", Count: 12, Physics: true},
			{Name: "orb3", Shape: "sphere", Size: [3]float32{1.15}, Color: "Red", Count: 8, Physics: true},
			{Name: "orb4", Shape: "sphere", Size: [3]float32{1.4}, Color: "Purple", Count: 6, Physics: true},
			{Name: "orb5", Shape: "sphere", Size: [3]float32{1.65}, Color: "Magenta", Count: 4, Physics: true},
		},
		Weights: []WeightSpec{
			{Name: "crate", Weight: 5},
			{Name: "ball", Weight: 3},
			{Name: "slab", Weight: 2},
		},
	}
	cfg.applyDefaults()
	return cfg
}

func (c *SpawnConfig) applyDefaults() {
	if c.SequentialDuration <= 0 {
		c.SequentialDuration = 3
	}
	if c.Placement.Mode == "" {
		c.Placement.Mode = "volume"
	}
	for i := range c.Pool {
		if c.Pool[i].Shape == "" {
			c.Pool[i].Shape = "cube"
		}
		if c.Pool[i].Size == [3]float32{} {
			c.Pool[i].Size = [3]float32{1, 1, 1}
		}
		if c.Pool[i].Color == "" {
			c.Pool[i].Color = "White"
		}
	}
}

func (c *SpawnConfig) validate() error {
	if len(c.Pool) == 0 {
		return fmt.Errorf("pool must list at least one prefab")
	}
	names := make(map[string]bool, len(c.Pool))
	for _, p := range c.Pool {
		if p.Name == "" {
			return fmt.Errorf("pool entry without a name")
		}
		if names[p.Name] {
			return fmt.Errorf("duplicate pool entry %q", p.Name)
		}
		names[p.Name] = true
		if p.Count <= 0 {
			return fmt.Errorf("pool entry %q: count must be positive, got %d", p.Name, p.Count)
		}
		if p.Shape != "cube" && p.Shape != "sphere" {
			return fmt.Errorf("pool entry %q: unknown shape %q", p.Name, p.Shape)
		}
	}
	for _, w := range c.Weights {
		if !names[w.Name] {
			return fmt.Errorf("weight for unknown prefab %q", w.Name)
		}
		if w.Weight <= 0 {
			return fmt.Errorf("weight for %q must be positive, got %v", w.Name, w.Weight)
		}
	}
	if c.Placement.Mode != "volume" && c.Placement.Mode != "surface" {
		return fmt.Errorf("unknown placement mode %q", c.Placement.Mode)
	}
	return nil
}
