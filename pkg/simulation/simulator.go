package simulation

import (
	"github.com/go-gl/mathgl/mgl64"

	"gravity-sim-3d/pkg/physics"
)

// Defaults for interactively placed bodies.
const (
	initMass    = 1e20
	initDensity = 3344 // lunar-regolith density, same as the stock moon body
	nudgeStep   = 0.5
)

// speedForKey maps the digit keys 0-4 to the allowed speed multipliers.
var speedForKey = map[int]float64{0: 1.0, 1: 0.5, 2: 2.0, 3: 5.0, 4: 10.0}

// Simulator is the simulation context: the ordered body list plus the
// global speed and pause state every subsystem reads.
type Simulator struct {
	Name   string
	Bodies []*physics.Body
	Speed  float64
	Paused bool

	newMesh physics.MeshFactory
}

// NewSimulator builds the body list from a scenario configuration.
func NewSimulator(cfg EnvironmentConfig, factory physics.MeshFactory) *Simulator {
	s := &Simulator{Name: cfg.Name, Speed: 1.0, newMesh: factory}
	for _, bc := range cfg.Bodies {
		b := physics.NewBody(
			mgl64.Vec3{bc.Pos[0], bc.Pos[1], bc.Pos[2]},
			mgl64.Vec3{bc.Vel[0], bc.Vel[1], bc.Vel[2]},
			bc.Mass, bc.Density, factory)
		b.Color = parseColor(bc.Color)
		b.HasTrail = bc.Trail
		b.Launched = true
		s.Bodies = append(s.Bodies, b)
	}
	return s
}

// Step advances one displayed frame.
func (s *Simulator) Step() {
	physics.Step(s.Bodies, s.Speed, s.Paused)
}

// SetSpeedKey applies a speed digit key and reports whether the key was
// one of the bindings.
func (s *Simulator) SetSpeedKey(digit int) bool {
	v, ok := speedForKey[digit]
	if ok {
		s.Speed = v
	}
	return ok
}

// Release frees every body's GPU resources.
func (s *Simulator) Release() {
	for _, b := range s.Bodies {
		b.Release()
	}
}

// --- Interactive placement ---

// Nudge is an arrow-key reposition direction for the pending body.
type Nudge int

const (
	NudgeUp Nudge = iota
	NudgeDown
	NudgeLeft
	NudgeRight
)

// Pending returns the body currently being placed, or nil. Only the most
// recently appended body can ever be pending.
func (s *Simulator) Pending() *physics.Body {
	if n := len(s.Bodies); n > 0 && s.Bodies[n-1].Initializing {
		return s.Bodies[n-1]
	}
	return nil
}

// BeginPlacement spawns a new body at the origin with the default mass.
// It stays out of force interactions until launched.
func (s *Simulator) BeginPlacement() *physics.Body {
	b := physics.NewBody(mgl64.Vec3{}, mgl64.Vec3{}, initMass, initDensity, s.newMesh)
	b.Initializing = true
	s.Bodies = append(s.Bodies, b)
	return b
}

// LaunchPending flips the pending body into the simulation.
func (s *Simulator) LaunchPending() {
	if b := s.Pending(); b != nil {
		b.Initializing = false
		b.Launched = true
	}
}

// NudgePending repositions the pending body by one arrow step. An
// unshifted up or down press moves Y and always also moves Z; shift
// restricts the pair to Z only.
func (s *Simulator) NudgePending(dir Nudge, shift bool) {
	b := s.Pending()
	if b == nil {
		return
	}
	switch dir {
	case NudgeRight:
		b.Pos[0] += nudgeStep
	case NudgeLeft:
		b.Pos[0] -= nudgeStep
	case NudgeUp:
		if !shift {
			b.Pos[1] += nudgeStep
		}
		b.Pos[2] += nudgeStep
	case NudgeDown:
		if !shift {
			b.Pos[1] -= nudgeStep
		}
		b.Pos[2] -= nudgeStep
	}
}

// GrowPending compounds the pending body's mass while the grow button is
// held, then refreshes the derived radius and rebuilds the sphere. This
// is the only mass mutation outside construction.
func (s *Simulator) GrowPending(dt float64) {
	b := s.Pending()
	if b == nil {
		return
	}
	b.Mass *= 1 + 1.0*dt
	b.UpdateRadius()
	b.RebuildMesh()
}
