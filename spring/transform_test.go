package spring

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestTransformConverges(t *testing.T) {
	start := Pose{Rot: quat.Number{Real: 1}}
	goal := Pose{
		Pos: r3.Vec{X: 10, Y: -4, Z: 2},
		Rot: axisAngle(r3.Vec{Z: 1}, math.Pi/3),
	}
	s, err := NewTransform(1, 2, start, goal, DefaultThresholds())
	if err != nil {
		t.Fatalf("NewTransform: %v", err)
	}

	const dt = 1.0 / 60
	for tick := 0; tick < 2000; tick++ {
		s.Step(dt)
		if s.CanSleep() {
			p := s.Position()
			if d := r3.Norm(r3.Sub(p.Pos, goal.Pos)); d > 1e-2 {
				t.Fatalf("slept %v away from goal position", d)
			}
			if !sameOrientation(p.Rot, goal.Rot, 1e-3) {
				t.Fatal("slept away from goal orientation")
			}
			return
		}
	}
	t.Fatal("transform spring did not sleep within 2000 ticks")
}

// The composite only sleeps once both halves have: a converged translation
// with a still-turning orientation must keep the whole spring awake.
func TestTransformSleepIsConjunction(t *testing.T) {
	goal := Pose{
		Pos: r3.Vec{},
		Rot: axisAngle(r3.Vec{X: 1}, 2),
	}
	s, err := NewTransform(1, 4, Pose{Rot: quat.Number{Real: 1}}, goal, DefaultThresholds())
	if err != nil {
		t.Fatalf("NewTransform: %v", err)
	}
	if s.CanSleep() {
		t.Fatal("fresh spring with a rotation offset cannot sleep")
	}
	if !s.Linear().CanSleep() {
		t.Fatal("translation half starts at its goal and must report sleepable")
	}
}

func TestTransformParamSettersReachBothHalves(t *testing.T) {
	s, err := NewTransform(0.5, 1, Pose{Rot: quat.Number{Real: 1}},
		Pose{Pos: r3.Vec{X: 1}, Rot: quat.Number{Real: 1}}, DefaultThresholds())
	if err != nil {
		t.Fatalf("NewTransform: %v", err)
	}

	if err := s.SetDampingRatio(2); err != nil {
		t.Fatalf("SetDampingRatio: %v", err)
	}
	if err := s.SetFrequency(8); err != nil {
		t.Fatalf("SetFrequency: %v", err)
	}
	if err := s.SetDampingRatio(-1); err == nil {
		t.Error("negative damping accepted")
	}
	if err := s.SetFrequency(math.Inf(1)); err == nil {
		t.Error("infinite frequency accepted")
	}
}

func TestTransformRejectsBadParams(t *testing.T) {
	p := Pose{Rot: quat.Number{Real: 1}}
	if _, err := NewTransform(math.NaN(), 1, p, p, DefaultThresholds()); err == nil {
		t.Error("NaN damping accepted")
	}
	if _, err := NewTransform(1, -2, p, p, DefaultThresholds()); err == nil {
		t.Error("negative frequency accepted")
	}
}
