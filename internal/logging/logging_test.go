package logging

import "testing"

func TestLevelString(t *testing.T) {
	if LevelDebug.String() != "DEBUG" {
		t.Errorf("Expected DEBUG, got %s", LevelDebug.String())
	}
	if LevelError.String() != "ERROR" {
		t.Errorf("Expected ERROR, got %s", LevelError.String())
	}
	if Level(42).String() != "LEVEL(42)" {
		t.Errorf("Unexpected string for unknown level: %s", Level(42).String())
	}
}

func TestRecorderCapturesEntries(t *testing.T) {
	rec := &Recorder{}

	rec.Log(LevelError, "pool_exhausted", 3, false)
	rec.Log(LevelWarning, "recall_invalid", nil, false)
	rec.Log(LevelError, "pool_exhausted", 5, true)

	if len(rec.Entries) != 3 {
		t.Fatalf("Expected 3 entries, got %d", len(rec.Entries))
	}

	if rec.Count(LevelError, "pool_exhausted") != 2 {
		t.Errorf("Expected 2 pool_exhausted errors, got %d", rec.Count(LevelError, "pool_exhausted"))
	}

	if rec.Count(LevelWarning, "recall_invalid") != 1 {
		t.Errorf("Expected 1 recall_invalid warning, got %d", rec.Count(LevelWarning, "recall_invalid"))
	}

	if !rec.Entries[2].Force {
		t.Error("Force flag not recorded")
	}
}

func TestNopSinkDoesNothing(t *testing.T) {
	// Must not panic with arbitrary values
	var n Nop
	n.Log(LevelError, "anything", struct{ X int }{1}, true)
}
