// Package spring implements closed-form damped harmonic oscillator
// animation. Springs advance their state analytically for an arbitrary
// elapsed time rather than integrating in fixed increments, so stepping is
// exact for any dt and never accumulates integration error.
//
// Three spring types are provided: Linear animates flat numeric vectors,
// Rotation animates orientations on the rotation manifold, and Transform
// composes the two into a rigid-body pose.
package spring

import "math"

// Thresholds holds the convergence limits below which a spring reports that
// it can be retired. Offset and Velocity apply to Linear springs in the
// intermediate vector space; the rotation pair is in radians and radians
// per second.
type Thresholds struct {
	Offset           float64
	Velocity         float64
	RotationOffset   float64
	RotationVelocity float64
}

// DefaultThresholds returns the stock sleep limits: 1/3840 position units
// (a quarter pixel at 4K), 0.01 units/s, and 0.01 degrees / 0.16 deg/s for
// rotations.
func DefaultThresholds() Thresholds {
	return Thresholds{
		Offset:           1.0 / 3840.0,
		Velocity:         1e-2,
		RotationOffset:   0.01 * math.Pi / 180,
		RotationVelocity: 0.16 * math.Pi / 180,
	}
}

// validateParams rejects damping ratios and frequencies the solver cannot
// step. Infinite frequency is rejected here too: callers are expected to
// treat it as an instantaneous jump and never construct a spring for it.
func validateParams(damping, frequency float64) error {
	if math.IsNaN(damping) || damping < 0 {
		return errBadDamping
	}
	if math.IsNaN(frequency) || math.IsInf(frequency, 0) || frequency < 0 {
		return errBadFrequency
	}
	return nil
}
