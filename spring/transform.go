package spring

import (
	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
)

// Pose is a rigid transform: a translation plus an orientation.
type Pose struct {
	Pos r3.Vec
	Rot quat.Number
}

// Transform is the composite spring for rigid transforms. It owns one
// Linear spring for the translation and one Rotation spring for the
// orientation; the two always share the same damping ratio and frequency.
type Transform struct {
	lin *Linear
	rot *Rotation
}

// NewTransform constructs a composite spring from pos heading for goal.
func NewTransform(damping, frequency float64, pos, goal Pose, th Thresholds) (*Transform, error) {
	lin, err := NewLinear(damping, frequency,
		[]float64{pos.Pos.X, pos.Pos.Y, pos.Pos.Z},
		[]float64{goal.Pos.X, goal.Pos.Y, goal.Pos.Z}, th)
	if err != nil {
		return nil, err
	}
	rot, err := NewRotation(damping, frequency, pos.Rot, goal.Rot, th)
	if err != nil {
		return nil, err
	}
	return &Transform{lin: lin, rot: rot}, nil
}

// SetGoal retargets both sub-springs; position and velocity carry over.
func (s *Transform) SetGoal(goal Pose) {
	s.lin.SetGoal([]float64{goal.Pos.X, goal.Pos.Y, goal.Pos.Z})
	s.rot.SetGoal(goal.Rot)
}

// SetDampingRatio replaces the damping ratio of both sub-springs.
func (s *Transform) SetDampingRatio(damping float64) error {
	if err := s.lin.SetDampingRatio(damping); err != nil {
		return err
	}
	return s.rot.SetDampingRatio(damping)
}

// SetFrequency replaces the frequency of both sub-springs.
func (s *Transform) SetFrequency(frequency float64) error {
	if err := s.lin.SetFrequency(frequency); err != nil {
		return err
	}
	return s.rot.SetFrequency(frequency)
}

// Step advances both sub-springs by dt seconds and returns the composed
// pose.
func (s *Transform) Step(dt float64) Pose {
	p := s.lin.Step(dt)
	q := s.rot.Step(dt)
	return Pose{Pos: r3.Vec{X: p[0], Y: p[1], Z: p[2]}, Rot: q}
}

// CanSleep reports whether both sub-springs have converged.
func (s *Transform) CanSleep() bool {
	return s.lin.CanSleep() && s.rot.CanSleep()
}

// Position returns the current composed pose.
func (s *Transform) Position() Pose {
	p := s.lin.Position()
	return Pose{Pos: r3.Vec{X: p[0], Y: p[1], Z: p[2]}, Rot: s.rot.Position()}
}

// Linear returns the translation sub-spring.
func (s *Transform) Linear() *Linear { return s.lin }

// Rotation returns the orientation sub-spring.
func (s *Transform) Rotation() *Rotation { return s.rot }
