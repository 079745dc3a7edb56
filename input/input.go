// Package input implements the pose input surface: four independent
// bounded controls, one per user-settable joint angle, that merge any
// single change into a complete four-angle update and hand it to a
// registered consumer. The surface holds no kinematic knowledge.
package input

import (
	"sync"

	"github.com/pkg/errors"

	"github.com/armviz/armviz/arm"
	"github.com/armviz/armviz/utils"
)

// Control is one bounded numeric control. Yaw controls wrap their value
// modulo 360; pitch controls clamp to [Min, Max]. Step is advisory for the
// widget rendering the control.
type Control struct {
	Name  string  `json:"name"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Step  float64 `json:"step"`
	Wrap  bool    `json:"wrap"`
	Value float64 `json:"value"`
}

// bound applies the widget's own domain enforcement. No other validation
// happens past this point; values are trusted downstream.
func (c *Control) bound(v float64) float64 {
	if c.Wrap {
		return utils.ModAngDeg(v)
	}
	return utils.Clamp(v, c.Min, c.Max)
}

// Consumer receives a complete four-angle update on every control change.
type Consumer func(arm.JointAngles)

// Surface owns the four joint controls in chain order (j0..j3). Changing
// one control never clamps or rescales another.
type Surface struct {
	mu       sync.Mutex
	controls [4]Control
	consumer Consumer
}

// NewSurface builds the surface with the fixed control domains, preset to
// the home pose.
func NewSurface() *Surface {
	home := arm.HomePose()
	return &Surface{
		controls: [4]Control{
			{Name: arm.BaseYaw, Min: 0, Max: 360, Step: 1, Wrap: true, Value: home.J0},
			{Name: arm.ShoulderPitch, Min: -90, Max: 90, Step: 1, Value: home.J1},
			{Name: arm.ElbowPitch, Min: -90, Max: 90, Step: 1, Value: home.J2},
			{Name: arm.WristPitch, Min: -90, Max: 90, Step: 1, Value: home.J3},
		},
	}
}

// RegisterConsumer sets the single consumer notified on every change.
func (s *Surface) RegisterConsumer(fn Consumer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.consumer = fn
}

// Controls returns a snapshot of the controls, for widget construction.
func (s *Surface) Controls() []Control {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Control, len(s.controls))
	copy(out, s.controls[:])
	return out
}

// Angles returns the current four-angle value of the surface.
func (s *Surface) Angles() arm.JointAngles {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.anglesLocked()
}

func (s *Surface) anglesLocked() arm.JointAngles {
	return arm.JointAngles{
		J0: s.controls[0].Value,
		J1: s.controls[1].Value,
		J2: s.controls[2].Value,
		J3: s.controls[3].Value,
	}
}

// Set changes one control's value, merging it with the other three
// unchanged values, and emits the complete update to the consumer
// synchronously. An unknown control name is an error.
func (s *Surface) Set(name string, value float64) error {
	s.mu.Lock()
	var found bool
	for i := range s.controls {
		if s.controls[i].Name == name {
			s.controls[i].Value = s.controls[i].bound(value)
			found = true
			break
		}
	}
	if !found {
		s.mu.Unlock()
		return errors.Errorf("no control named %q", name)
	}
	update := s.anglesLocked()
	consumer := s.consumer
	s.mu.Unlock()

	if consumer != nil {
		consumer(update)
	}
	return nil
}
