package scripts

// Prop readers shared by the script factories. Scene files decode
// through encoding/json, so numbers arrive as float64.

func floatProp(props map[string]any, key string, fallback float32) float32 {
	if v, ok := props[key].(float64); ok {
		return float32(v)
	}
	return fallback
}

func intProp(props map[string]any, key string, fallback int) int {
	if v, ok := props[key].(float64); ok {
		return int(v)
	}
	return fallback
}

func boolProp(props map[string]any, key string, fallback bool) bool {
	if v, ok := props[key].(bool); ok {
		return v
	}
	return fallback
}
