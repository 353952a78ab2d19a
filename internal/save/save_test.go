package save

import "testing"

func TestNilStorageDegradesToMemory(t *testing.T) {
	m := NewManager(nil)

	if m.Scores().BlockDrop != 0 {
		t.Errorf("fresh scores not zero: %+v", m.Scores())
	}
	if !m.RecordBlockDrop(120) {
		t.Error("first score should be a new best")
	}
	if m.RecordBlockDrop(90) {
		t.Error("lower score should not replace the best")
	}
	if m.Scores().BlockDrop != 120 {
		t.Errorf("best score %d, expected 120", m.Scores().BlockDrop)
	}
	if err := m.SavePanel(); err != nil {
		t.Errorf("SavePanel without storage must succeed: %v", err)
	}
}

func TestRecordMergeAndSeesaw(t *testing.T) {
	m := NewManager(nil)

	if !m.RecordMerge(50) || m.Scores().Merge != 50 {
		t.Error("merge score not recorded")
	}
	m.RecordSeesawWin()
	if !m.Scores().SeesawWin {
		t.Error("seesaw win not recorded")
	}
}

func TestDefaultPanelSettings(t *testing.T) {
	p := NewManager(nil).Panel()
	if p.SpawnCount != 10 || p.Duration != 3 {
		t.Errorf("unexpected panel defaults: %+v", p)
	}
	if p.Visible || p.SurfaceMode || p.ForceWhenEmpty {
		t.Errorf("panel toggles should default off: %+v", p)
	}
}
