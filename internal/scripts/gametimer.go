package scripts

import "proto3d/internal/engine"

// GameTimer counts down and fires Expired exactly once when the time
// runs out. Paused timers accumulate nothing.
type GameTimer struct {
	engine.BaseComponent
	Duration  float32
	Remaining float32
	Paused    bool
	Expired   engine.Event

	expired bool
}

func NewGameTimer(seconds float32) *GameTimer {
	return &GameTimer{Duration: seconds, Remaining: seconds}
}

func (t *GameTimer) Update(deltaTime float32) {
	if t.Paused || t.expired {
		return
	}
	t.Remaining -= deltaTime
	if t.Remaining <= 0 {
		t.Remaining = 0
		t.expired = true
		t.Expired.Invoke()
	}
}

func (t *GameTimer) Pause()  { t.Paused = true }
func (t *GameTimer) Resume() { t.Paused = false }

// Reset rearms the timer at its full duration.
func (t *GameTimer) Reset() {
	t.Remaining = t.Duration
	t.expired = false
	t.Paused = false
}

// Done reports whether the countdown has expired.
func (t *GameTimer) Done() bool {
	return t.expired
}

func init() {
	engine.RegisterScript("GameTimer", gameTimerFactory, gameTimerSerializer)
}

func gameTimerFactory(props map[string]any) engine.Component {
	return NewGameTimer(floatProp(props, "seconds", 60))
}

func gameTimerSerializer(c engine.Component) map[string]any {
	t, ok := c.(*GameTimer)
	if !ok {
		return nil
	}
	return map[string]any{
		"seconds": t.Duration,
	}
}
