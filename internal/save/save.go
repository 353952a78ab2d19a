package save

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// Scores holds the best results per minigame. Stored globally, not per
// user profile.
type Scores struct {
	BlockDrop int  `yaml:"blockDrop"`
	Merge     int  `yaml:"merge"`
	SeesawWin bool `yaml:"seesawWin"`
}

// PanelSettings remembers the debug spawn panel state between runs.
type PanelSettings struct {
	Visible        bool    `yaml:"visible"`
	SpawnCount     int     `yaml:"spawnCount"`
	Duration       float32 `yaml:"duration"`
	SurfaceMode    bool    `yaml:"surfaceMode"`
	ForceWhenEmpty bool    `yaml:"forceWhenEmpty"`
}

func DefaultPanelSettings() *PanelSettings {
	return &PanelSettings{
		SpawnCount: 10,
		Duration:   3,
	}
}

const (
	saveObject = "proto3d"
	scoresProp = "scores"
	panelProp  = "panel"
)

// Manager loads and saves scores and panel settings through gdata.
// A nil gdata manager degrades to in-memory state: loads return
// defaults, saves succeed silently.
type Manager struct {
	storage *gdata.Manager
	scores  *Scores
	panel   *PanelSettings
}

func NewManager(storage *gdata.Manager) *Manager {
	m := &Manager{
		storage: storage,
		scores:  &Scores{},
		panel:   DefaultPanelSettings(),
	}
	if err := m.load(); err != nil {
		log.Printf("Save: load failed: %v (using defaults)", err)
	}
	return m
}

func (m *Manager) Scores() *Scores { return m.scores }

func (m *Manager) Panel() *PanelSettings { return m.panel }

// RecordBlockDrop keeps the score if it beats the stored best and
// persists it. Reports whether a new best was set.
func (m *Manager) RecordBlockDrop(score int) bool {
	if score <= m.scores.BlockDrop {
		return false
	}
	m.scores.BlockDrop = score
	m.saveScores()
	return true
}

// RecordMerge keeps the score if it beats the stored best.
func (m *Manager) RecordMerge(score int) bool {
	if score <= m.scores.Merge {
		return false
	}
	m.scores.Merge = score
	m.saveScores()
	return true
}

// RecordSeesawWin marks the seesaw puzzle as solved.
func (m *Manager) RecordSeesawWin() {
	if m.scores.SeesawWin {
		return
	}
	m.scores.SeesawWin = true
	m.saveScores()
}

// SavePanel persists the debug panel state.
func (m *Manager) SavePanel() error {
	if m.storage == nil {
		return nil
	}
	data, err := yaml.Marshal(m.panel)
	if err != nil {
		return fmt.Errorf("marshal panel settings: %w", err)
	}
	if err := m.storage.SaveObjectProp(saveObject, panelProp, data); err != nil {
		return fmt.Errorf("save panel settings: %w", err)
	}
	return nil
}

func (m *Manager) saveScores() {
	if m.storage == nil {
		return
	}
	data, err := yaml.Marshal(m.scores)
	if err != nil {
		log.Printf("Save: marshal scores: %v", err)
		return
	}
	if err := m.storage.SaveObjectProp(saveObject, scoresProp, data); err != nil {
		log.Printf("Save: write scores: %v", err)
	}
}

func (m *Manager) load() error {
	if m.storage == nil {
		return nil
	}
	if m.storage.ObjectPropExists(saveObject, scoresProp) {
		data, err := m.storage.LoadObjectProp(saveObject, scoresProp)
		if err != nil {
			return fmt.Errorf("load scores: %w", err)
		}
		var s Scores
		if err := yaml.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("unmarshal scores: %w", err)
		}
		m.scores = &s
	}
	if m.storage.ObjectPropExists(saveObject, panelProp) {
		data, err := m.storage.LoadObjectProp(saveObject, panelProp)
		if err != nil {
			return fmt.Errorf("load panel settings: %w", err)
		}
		p := DefaultPanelSettings()
		if err := yaml.Unmarshal(data, p); err != nil {
			return fmt.Errorf("unmarshal panel settings: %w", err)
		}
		m.panel = p
	}
	return nil
}
