package spring

import "slices"

// Linear is a damped spring over an n-dimensional numeric vector. Each
// coordinate follows the oscillator independently; coordinates never
// interact. The dimension n is fixed when the spring is constructed and the
// position, velocity and goal vectors keep that length for the spring's
// whole lifetime.
type Linear struct {
	damping   float64
	frequency float64
	pos       []float64
	vel       []float64
	goal      []float64
	th        Thresholds
}

// NewLinear constructs a spring at pos heading for goal. The damping ratio
// must be finite and ≥ 0; the frequency (Hz) must be finite and ≥ 0 —
// infinite frequency means "jump immediately" and is the caller's job to
// short-circuit before constructing a spring. The initial velocity is zero.
func NewLinear(damping, frequency float64, pos, goal []float64, th Thresholds) (*Linear, error) {
	if err := validateParams(damping, frequency); err != nil {
		return nil, err
	}
	if len(pos) != len(goal) {
		return nil, errLengthChange
	}
	return &Linear{
		damping:   damping,
		frequency: frequency,
		pos:       slices.Clone(pos),
		vel:       make([]float64, len(pos)),
		goal:      slices.Clone(goal),
		th:        th,
	}, nil
}

// SetGoal retargets the spring. Position and velocity carry over, which is
// what makes mid-flight retargeting continuous. Setting the same goal twice
// with no intervening Step is a no-op. Panics if len(goal) differs from the
// spring's dimension.
func (s *Linear) SetGoal(goal []float64) {
	if len(goal) != len(s.goal) {
		panic(errLengthChange)
	}
	copy(s.goal, goal)
}

// SetDampingRatio replaces the damping ratio.
func (s *Linear) SetDampingRatio(damping float64) error {
	if err := validateParams(damping, s.frequency); err != nil {
		return err
	}
	s.damping = damping
	return nil
}

// SetFrequency replaces the undamped frequency in Hz.
func (s *Linear) SetFrequency(frequency float64) error {
	if err := validateParams(s.damping, frequency); err != nil {
		return err
	}
	s.frequency = frequency
	return nil
}

// Step advances the spring by dt seconds in place and returns the updated
// position. The returned slice aliases the spring's state; callers that
// keep it must copy.
func (s *Linear) Step(dt float64) []float64 {
	k := solve(s.damping, s.frequency, dt)
	for i := range s.pos {
		o := s.pos[i] - s.goal[i]
		v := s.vel[i]
		s.pos[i] = s.goal[i] + o*k.pp + v*k.pv
		s.vel[i] = o*k.vp + v*k.vv
	}
	return s.pos
}

// CanSleep reports whether the spring has converged: both the velocity
// magnitude and the distance to the goal are below their thresholds. The
// caller is expected to retire the spring and snap to the exact goal.
func (s *Linear) CanSleep() bool {
	return magnitudeSq(s.vel) < s.th.Velocity*s.th.Velocity &&
		distanceSq(s.pos, s.goal) < s.th.Offset*s.th.Offset
}

// Position returns the current position vector. The slice aliases the
// spring's state.
func (s *Linear) Position() []float64 { return s.pos }

// Velocity returns the current velocity vector. The slice aliases the
// spring's state.
func (s *Linear) Velocity() []float64 { return s.vel }

// Goal returns the current goal vector. The slice aliases the spring's
// state.
func (s *Linear) Goal() []float64 { return s.goal }
