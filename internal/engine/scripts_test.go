package engine

import "testing"

// Mock script for testing
type MockScript struct {
	BaseComponent
	Speed  float32
	Health int
}

func mockFactory(props map[string]any) Component {
	script := &MockScript{}
	if v, ok := props["speed"].(float64); ok {
		script.Speed = float32(v)
	}
	if v, ok := props["health"].(float64); ok {
		script.Health = int(v)
	}
	return script
}

func mockSerializer(c Component) map[string]any {
	s, ok := c.(*MockScript)
	if !ok {
		return nil
	}
	return map[string]any{
		"speed":  s.Speed,
		"health": s.Health,
	}
}

func TestRegisterScript(t *testing.T) {
	scriptRegistry = map[string]scriptEntry{}

	RegisterScript("MockScript", mockFactory, mockSerializer)

	if _, exists := scriptRegistry["MockScript"]; !exists {
		t.Error("Script not registered")
	}
}

func TestRegisterScriptDuplicate(t *testing.T) {
	scriptRegistry = map[string]scriptEntry{}

	RegisterScript("Duplicate", mockFactory, mockSerializer)

	// Should panic on duplicate registration
	defer func() {
		if r := recover(); r == nil {
			t.Error("Expected panic on duplicate registration")
		}
	}()

	RegisterScript("Duplicate", mockFactory, mockSerializer)
}

func TestCreateScript(t *testing.T) {
	scriptRegistry = map[string]scriptEntry{}

	RegisterScript("MockScript", mockFactory, mockSerializer)

	props := map[string]any{
		"speed":  float64(10.5),
		"health": float64(100),
	}

	component := CreateScript("MockScript", props)
	if component == nil {
		t.Fatal("CreateScript returned nil")
	}

	script, ok := component.(*MockScript)
	if !ok {
		t.Fatal("CreateScript didn't return MockScript")
	}

	if script.Speed != 10.5 {
		t.Errorf("Expected Speed 10.5, got %f", script.Speed)
	}

	if script.Health != 100 {
		t.Errorf("Expected Health 100, got %d", script.Health)
	}
}

func TestCreateScriptNotFound(t *testing.T) {
	scriptRegistry = map[string]scriptEntry{}

	component := CreateScript("DoesNotExist", nil)
	if component != nil {
		t.Error("CreateScript should return nil for non-existent script")
	}
}

func TestSerializeScript(t *testing.T) {
	scriptRegistry = map[string]scriptEntry{}

	RegisterScript("MockScript", mockFactory, mockSerializer)

	script := &MockScript{
		Speed:  15.0,
		Health: 200,
	}

	name, props, ok := SerializeScript(script)
	if !ok {
		t.Fatal("SerializeScript failed")
	}

	if name != "MockScript" {
		t.Errorf("Expected name 'MockScript', got '%s'", name)
	}

	if props["speed"] != float32(15.0) {
		t.Errorf("Expected speed 15.0, got %v", props["speed"])
	}

	if props["health"] != 200 {
		t.Errorf("Expected health 200, got %v", props["health"])
	}
}

func TestGetRegisteredScripts(t *testing.T) {
	scriptRegistry = map[string]scriptEntry{}

	RegisterScript("ScriptC", mockFactory, mockSerializer)
	RegisterScript("ScriptA", mockFactory, mockSerializer)
	RegisterScript("ScriptB", mockFactory, mockSerializer)

	scripts := GetRegisteredScripts()

	if len(scripts) != 3 {
		t.Errorf("Expected 3 scripts, got %d", len(scripts))
	}

	if scripts[0] != "ScriptA" || scripts[1] != "ScriptB" || scripts[2] != "ScriptC" {
		t.Errorf("Scripts not in sorted order: %v", scripts)
	}
}
