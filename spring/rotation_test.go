package spring

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
)

// axisAngle builds a unit quaternion rotating by angle radians about axis.
func axisAngle(axis r3.Vec, angle float64) quat.Number {
	n := r3.Norm(axis)
	if n == 0 {
		return quat.Number{Real: 1}
	}
	s := math.Sin(angle/2) / n
	return quat.Number{
		Real: math.Cos(angle / 2),
		Imag: axis.X * s,
		Jmag: axis.Y * s,
		Kmag: axis.Z * s,
	}
}

// sameOrientation reports whether two unit quaternions describe the same
// rotation within tol radians, accounting for the q / -q double cover.
func sameOrientation(a, b quat.Number, tol float64) bool {
	return r3.Norm(logMap(quat.Mul(a, quat.Conj(b)))) < tol
}

func mustRotation(t *testing.T, d, f float64, pos, goal quat.Number) *Rotation {
	t.Helper()
	s, err := NewRotation(d, f, pos, goal, DefaultThresholds())
	if err != nil {
		t.Fatalf("NewRotation(%v, %v): %v", d, f, err)
	}
	return s
}

func TestLogExpRoundTrip(t *testing.T) {
	vecs := []r3.Vec{
		{},
		{X: 0.3},
		{Y: -1.2, Z: 0.4},
		{X: 1, Y: 1, Z: 1},
		{Z: 3.1}, // just under a half turn
	}
	for _, v := range vecs {
		got := logMap(expMap(v))
		if math.Abs(got.X-v.X) > 1e-9 || math.Abs(got.Y-v.Y) > 1e-9 || math.Abs(got.Z-v.Z) > 1e-9 {
			t.Errorf("logMap(expMap(%v)) = %v", v, got)
		}
	}
}

func TestRotationConverges(t *testing.T) {
	goal := axisAngle(r3.Vec{Z: 1}, math.Pi/2)
	s := mustRotation(t, 1, 2, quat.Number{Real: 1}, goal)

	const dt = 1.0 / 60
	for tick := 0; tick < 2000; tick++ {
		p := s.Step(dt)
		if math.IsNaN(p.Real) || math.IsNaN(p.Imag) || math.IsNaN(p.Jmag) || math.IsNaN(p.Kmag) {
			t.Fatalf("tick %d: non-finite orientation %+v", tick, p)
		}
		if s.CanSleep() {
			if !sameOrientation(s.Position(), goal, 1e-3) {
				t.Fatalf("slept %v rad away from goal", s.OffsetAngle())
			}
			return
		}
	}
	t.Fatal("rotation spring did not sleep within 2000 ticks")
}

// A spring already at its goal must be asleep from the start and stepping
// it must not disturb the orientation.
func TestRotationDegenerateOffset(t *testing.T) {
	q := axisAngle(r3.Vec{X: 1, Y: 2, Z: -1}, 0.7)
	s := mustRotation(t, 0.5, 3, q, q)

	if !s.CanSleep() {
		t.Error("spring with zero offset cannot sleep")
	}
	p := s.Step(1.0 / 60)
	if !sameOrientation(p, q, 1e-9) {
		t.Errorf("orientation drifted at the goal: %+v vs %+v", p, q)
	}
}

// Near-half-turn offsets are the far edge of the tangent space; the spring
// must still converge without picking the long way around.
func TestRotationLargeAngle(t *testing.T) {
	goal := axisAngle(r3.Vec{Y: 1}, 179.5*math.Pi/180)
	s := mustRotation(t, 1, 3, quat.Number{Real: 1}, goal)

	const dt = 1.0 / 60
	prevOffset := s.OffsetAngle()
	for tick := 0; tick < 3000; tick++ {
		s.Step(dt)
		off := s.OffsetAngle()
		if off > prevOffset+1e-9 {
			t.Fatalf("tick %d: offset grew from %v to %v", tick, prevOffset, off)
		}
		prevOffset = off
		if s.CanSleep() {
			return
		}
	}
	t.Fatal("large-angle spring did not settle")
}

// q and -q are the same rotation; a goal handed in with flipped sign must
// produce the identical trajectory.
func TestRotationDoubleCover(t *testing.T) {
	goal := axisAngle(r3.Vec{Z: 1}, 1.1)
	neg := quat.Scale(-1, goal)

	a := mustRotation(t, 0.8, 2, quat.Number{Real: 1}, goal)
	b := mustRotation(t, 0.8, 2, quat.Number{Real: 1}, neg)

	const dt = 1.0 / 60
	for i := 0; i < 120; i++ {
		pa := a.Step(dt)
		pb := b.Step(dt)
		if !sameOrientation(pa, pb, 1e-9) {
			t.Fatalf("step %d: trajectories diverged: %+v vs %+v", i, pa, pb)
		}
	}
}

func TestRotationRetargetKeepsAngularVelocity(t *testing.T) {
	s := mustRotation(t, 0.6, 2, quat.Number{Real: 1}, axisAngle(r3.Vec{Z: 1}, 2))

	const dt = 1.0 / 60
	for i := 0; i < 20; i++ {
		s.Step(dt)
	}
	vel := s.Velocity()
	if r3.Norm(vel) == 0 {
		t.Fatal("expected nonzero mid-flight angular velocity")
	}

	s.SetGoal(axisAngle(r3.Vec{X: 1}, 1))
	if got := s.Velocity(); got != vel {
		t.Errorf("angular velocity jumped on retarget: %v -> %v", vel, got)
	}
}

// The orientation must stay a unit quaternion across many re-linearized
// steps; this is what keeps the "p is always a proper rotation" invariant.
func TestRotationStaysNormalized(t *testing.T) {
	s := mustRotation(t, 0.3, 5, quat.Number{Real: 1}, axisAngle(r3.Vec{X: 1, Z: 2}, 2.5))

	const dt = 1.0 / 90
	for i := 0; i < 5000; i++ {
		p := s.Step(dt)
		if n := quat.Abs(p); math.Abs(n-1) > 1e-9 {
			t.Fatalf("step %d: |q| = %v", i, n)
		}
	}
}
