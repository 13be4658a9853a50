package spring

import (
	"math"

	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
)

// rotationEpsilon is the axis magnitude below which a relative rotation is
// treated as the identity instead of dividing by a vanishing sine.
const rotationEpsilon = 1e-9

// Rotation is a damped spring over orientations. State is a unit quaternion
// rather than a flat vector: naively springing quaternion components does
// not give physically correct motion, so each step re-linearizes the
// problem in the tangent space at the goal. The rotational offset
// log(p·g⁻¹) is recomputed from the quaternions every step — never
// integrated incrementally — which keeps the oscillator model valid for
// arbitrarily large rotations without accumulating drift.
type Rotation struct {
	damping   float64
	frequency float64
	pos       quat.Number
	goal      quat.Number
	vel       r3.Vec // angular velocity, axis-scaled radians/s
	th        Thresholds
}

// NewRotation constructs a rotation spring at orientation pos heading for
// goal. Both quaternions are normalized on entry; parameter constraints
// match NewLinear.
func NewRotation(damping, frequency float64, pos, goal quat.Number, th Thresholds) (*Rotation, error) {
	if err := validateParams(damping, frequency); err != nil {
		return nil, err
	}
	return &Rotation{
		damping:   damping,
		frequency: frequency,
		pos:       normalize(pos),
		goal:      normalize(goal),
		th:        th,
	}, nil
}

// SetGoal retargets the spring toward a new orientation. Current
// orientation and angular velocity carry over.
func (s *Rotation) SetGoal(goal quat.Number) {
	s.goal = normalize(goal)
}

// SetDampingRatio replaces the damping ratio.
func (s *Rotation) SetDampingRatio(damping float64) error {
	if err := validateParams(damping, s.frequency); err != nil {
		return err
	}
	s.damping = damping
	return nil
}

// SetFrequency replaces the undamped frequency in Hz.
func (s *Rotation) SetFrequency(frequency float64) error {
	if err := validateParams(s.damping, frequency); err != nil {
		return err
	}
	s.frequency = frequency
	return nil
}

// Step advances the spring by dt seconds and returns the updated
// orientation. The per-branch closed-form equations are identical to the
// linear solver's, applied to the tangent-space offset vector with the goal
// at the origin.
func (s *Rotation) Step(dt float64) quat.Number {
	k := solve(s.damping, s.frequency, dt)
	off := logMap(quat.Mul(s.pos, quat.Conj(s.goal)))

	next := r3.Add(r3.Scale(k.pp, off), r3.Scale(k.pv, s.vel))
	s.vel = r3.Add(r3.Scale(k.vp, off), r3.Scale(k.vv, s.vel))
	s.pos = normalize(quat.Mul(expMap(next), s.goal))
	return s.pos
}

// CanSleep reports whether both the angular offset to the goal and the
// angular velocity are below their thresholds.
func (s *Rotation) CanSleep() bool {
	off := logMap(quat.Mul(s.pos, quat.Conj(s.goal)))
	return r3.Norm(off) < s.th.RotationOffset &&
		r3.Norm(s.vel) < s.th.RotationVelocity
}

// OffsetAngle returns the remaining angular distance to the goal in
// radians.
func (s *Rotation) OffsetAngle() float64 {
	return r3.Norm(logMap(quat.Mul(s.pos, quat.Conj(s.goal))))
}

// Position returns the current orientation.
func (s *Rotation) Position() quat.Number { return s.pos }

// Velocity returns the current angular velocity as an axis-scaled vector.
func (s *Rotation) Velocity() r3.Vec { return s.vel }

// Goal returns the goal orientation.
func (s *Rotation) Goal() quat.Number { return s.goal }

// logMap maps a unit quaternion to its rotation vector (axis times angle),
// picking the representation with angle in [0, π] so the spring always
// takes the short way around. A near-identity rotation maps to the zero
// vector rather than dividing by a vanishing axis norm.
func logMap(q quat.Number) r3.Vec {
	if q.Real < 0 {
		q = quat.Scale(-1, q)
	}
	sin := math.Sqrt(q.Imag*q.Imag + q.Jmag*q.Jmag + q.Kmag*q.Kmag)
	if sin < rotationEpsilon {
		return r3.Vec{}
	}
	scale := 2 * math.Atan2(sin, q.Real) / sin
	return r3.Vec{X: q.Imag * scale, Y: q.Jmag * scale, Z: q.Kmag * scale}
}

// expMap maps a rotation vector back onto the manifold as a unit
// quaternion. The zero vector maps to the identity.
func expMap(v r3.Vec) quat.Number {
	angle := r3.Norm(v)
	if angle < rotationEpsilon {
		return quat.Number{Real: 1}
	}
	scale := math.Sin(angle/2) / angle
	return quat.Number{
		Real: math.Cos(angle / 2),
		Imag: v.X * scale,
		Jmag: v.Y * scale,
		Kmag: v.Z * scale,
	}
}

// normalize rescales q to unit length; a degenerate zero quaternion becomes
// the identity.
func normalize(q quat.Number) quat.Number {
	n := quat.Abs(q)
	if n < rotationEpsilon || math.IsInf(n, 0) || math.IsNaN(n) {
		return quat.Number{Real: 1}
	}
	return quat.Scale(1/n, q)
}
