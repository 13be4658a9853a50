package spring

import (
	"errors"
	"math"
)

var (
	errBadDamping   = errors.New("spring: damping ratio must be finite and non-negative")
	errBadFrequency = errors.New("spring: frequency must be finite and non-negative")
	errLengthChange = errors.New("spring: value dimension is fixed at construction")
)

// seriesEpsilon is the cutoff below which the sin/sinh ratio terms of the
// non-critical branches are evaluated as truncated Maclaurin series. The
// direct quotients lose all significance as the damping ratio approaches 1
// or the frequency approaches 0.
const seriesEpsilon = 1e-5

// coeffs is the state transition of one closed-form solver step. With
// o = p - g the offset from the goal and v the velocity:
//
//	o' = o*pp + v*pv
//	v' = o*vp + v*vv
//
// The coefficients depend only on (d, f, dt), so one solve covers every
// coordinate of a multi-dimensional spring.
type coeffs struct {
	pp, pv float64
	vp, vv float64
}

// solve computes the transition coefficients for advancing the oscillator
//
//	f²·(x−g) + 2·d·f·x′ + x″ = 0
//
// by dt seconds, branching on the damping regime. All three branches agree
// in the limit d → 1, and every branch yields finite coefficients for any
// d ≥ 0, f ≥ 0, dt ≥ 0.
func solve(d, f, dt float64) coeffs {
	w := 2 * math.Pi * f // undamped angular frequency

	switch {
	case d == 1: // critically damped
		q := math.Exp(-w * dt)
		t := dt * q
		return coeffs{
			pp: q + t*w,
			pv: t,
			vp: -t * w * w,
			vv: q - t*w,
		}

	case d < 1: // underdamped
		c := math.Sqrt(1 - d*d)
		q := math.Exp(-d * w * dt)
		i := math.Cos(dt * w * c)
		j := math.Sin(dt * w * c)

		// z = sin(dt·w·c)/c and y = sin(dt·w·c)/(w·c). Near the critical
		// boundary (c → 0) or at vanishing frequency (w·c → 0) the direct
		// quotients cancel catastrophically, so switch to their Maclaurin
		// expansions, truncated after the fifth-order term.
		var z float64
		if c > seriesEpsilon {
			z = j / c
		} else {
			a := dt * w
			z = a + ((a*a)*(c*c)*(c*c)/20-c*c)*(a*a*a)/6
		}

		var y float64
		if b := w * c; b > seriesEpsilon {
			y = j / b
		} else {
			b2 := w * c * w * c
			y = dt + ((dt*dt)*b2*b2/20-b2)*(dt*dt*dt)/6
		}

		return coeffs{
			pp: (i + z*d) * q,
			pv: y * q,
			vp: -(z * w) * q,
			vv: (i - z*d) * q,
		}

	default: // overdamped
		c := math.Sqrt(d*d - 1)
		b := w * c // half the gap between the two decay rates

		if b > seriesEpsilon {
			// Standard two-exponential IVP decomposition with rates
			// r1 = -w(d-c) and r2 = -w(d+c).
			r1 := -w * (d - c)
			r2 := -w * (d + c)
			e1 := math.Exp(r1 * dt)
			e2 := math.Exp(r2 * dt)
			den := r2 - r1
			pv := (e2 - e1) / den
			return coeffs{
				pp: (r2*e1 - r1*e2) / den,
				pv: pv,
				vp: -w * w * pv, // r1·r2 = w²
				vv: (r2*e2 - r1*e1) / den,
			}
		}

		// The rate gap vanishes as d → 1⁺ or f → 0, and the decomposition
		// above divides by it. Rewrite the same solution in hyperbolic form,
		// q·(cosh, sinh(dt·w·c)), and guard the sinh ratios with the
		// hyperbolic Maclaurin series exactly as in the underdamped branch.
		q := math.Exp(-d * w * dt)
		u := dt * b
		ch := math.Cosh(u)

		a := dt * w
		z := a + ((a*a)*(c*c)*(c*c)/20+c*c)*(a*a*a)/6
		b2 := b * b
		y := dt + ((dt*dt)*b2*b2/20+b2)*(dt*dt*dt)/6

		return coeffs{
			pp: (ch + z*d) * q,
			pv: y * q,
			vp: -(z * w) * q,
			vv: (ch - z*d) * q,
		}
	}
}
