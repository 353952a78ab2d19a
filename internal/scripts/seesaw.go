package scripts

import (
	"proto3d/internal/components"
	"proto3d/internal/config"
	"proto3d/internal/engine"
)

// Seesaw tilts a kinematic plank from the torque of bodies resting on
// it and fires Balanced after the tilt stays inside the tolerance for
// the configured hold time. The plank pivots around its Z axis.
type Seesaw struct {
	engine.BaseComponent
	Config config.SeesawConfig

	// TiltRate converts torque into tilt speed, degrees per second per
	// unit torque.
	TiltRate float32

	Tilt     float32 // current Z tilt in degrees
	Balanced engine.Event

	loads    map[*engine.GameObject]bool
	holdTime float32
	won      bool
}

func NewSeesaw(cfg config.SeesawConfig) *Seesaw {
	return &Seesaw{
		Config:   cfg,
		TiltRate: 4,
		loads:    make(map[*engine.GameObject]bool),
	}
}

func (s *Seesaw) OnCollisionEnter(other *engine.GameObject) {
	if engine.GetComponent[*components.Rigidbody](other) != nil {
		s.loads[other] = true
	}
}

func (s *Seesaw) OnCollisionExit(other *engine.GameObject) {
	delete(s.loads, other)
}

// Torque sums mass times lever arm over the current loads. Positive
// torque tips the right side down.
func (s *Seesaw) Torque() float32 {
	g := s.GetGameObject()
	if g == nil {
		return 0
	}
	pivot := g.WorldPosition()
	half := s.Config.PlankLength / 2

	var torque float32
	for load := range s.loads {
		if !load.Active {
			delete(s.loads, load)
			continue
		}
		rb := engine.GetComponent[*components.Rigidbody](load)
		if rb == nil {
			continue
		}
		arm := load.Transform.Position.X - pivot.X
		if arm > half {
			arm = half
		} else if arm < -half {
			arm = -half
		}
		torque += rb.Mass * arm
	}
	return torque
}

func (s *Seesaw) Update(deltaTime float32) {
	g := s.GetGameObject()
	if g == nil {
		return
	}

	s.Tilt += s.Torque() * s.TiltRate * deltaTime
	if s.Tilt > s.Config.MaxTiltDeg {
		s.Tilt = s.Config.MaxTiltDeg
	} else if s.Tilt < -s.Config.MaxTiltDeg {
		s.Tilt = -s.Config.MaxTiltDeg
	}
	g.Transform.Rotation.Z = s.Tilt

	s.checkBalance(deltaTime)
}

func (s *Seesaw) checkBalance(deltaTime float32) {
	if s.won {
		return
	}
	tilt := s.Tilt
	if tilt < 0 {
		tilt = -tilt
	}
	// Balance only counts with weight on the plank.
	if len(s.loads) == 0 || tilt > s.Config.BalanceTolerance {
		s.holdTime = 0
		return
	}
	s.holdTime += deltaTime
	if s.holdTime >= s.Config.WinHoldSeconds {
		s.won = true
		s.Balanced.Invoke()
	}
}

// Won reports whether the balance condition has been met.
func (s *Seesaw) Won() bool {
	return s.won
}

func init() {
	engine.RegisterScript("Seesaw", seesawFactory, seesawSerializer)
}

func seesawFactory(props map[string]any) engine.Component {
	return NewSeesaw(config.SeesawConfig{
		PlankLength:      floatProp(props, "plankLength", 8),
		MaxTiltDeg:       floatProp(props, "maxTiltDeg", 25),
		BalanceTolerance: floatProp(props, "balanceTolerance", 3),
		WinHoldSeconds:   floatProp(props, "winHoldSeconds", 2),
	})
}

func seesawSerializer(c engine.Component) map[string]any {
	s, ok := c.(*Seesaw)
	if !ok {
		return nil
	}
	return map[string]any{
		"plankLength":      s.Config.PlankLength,
		"maxTiltDeg":       s.Config.MaxTiltDeg,
		"balanceTolerance": s.Config.BalanceTolerance,
		"winHoldSeconds":   s.Config.WinHoldSeconds,
	}
}
