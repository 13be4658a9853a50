package spring

import (
	"math"
	"testing"
)

// coeffsFinite reports whether every coefficient is a real number.
func coeffsFinite(k coeffs) bool {
	for _, c := range []float64{k.pp, k.pv, k.vp, k.vv} {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

func TestSolveFiniteEverywhere(t *testing.T) {
	dampings := []float64{0, 0.1, 0.5, 0.999, 1 - 1e-7, 1, 1 + 1e-7, 1.001, 2, 10, 1000}
	frequencies := []float64{0, 1e-9, 1e-5, 0.01, 1, 4, 60, 1e4}
	dts := []float64{0, 1e-9, 1e-4, 1.0 / 60, 0.5, 10, 1e4}

	for _, d := range dampings {
		for _, f := range frequencies {
			for _, dt := range dts {
				k := solve(d, f, dt)
				if !coeffsFinite(k) {
					t.Errorf("solve(%v, %v, %v) = %+v, want finite", d, f, dt, k)
				}
			}
		}
	}
}

func TestSolveZeroDtIsIdentity(t *testing.T) {
	for _, d := range []float64{0, 0.5, 1, 2} {
		k := solve(d, 3, 0)
		if math.Abs(k.pp-1) > 1e-12 || math.Abs(k.pv) > 1e-12 ||
			math.Abs(k.vp) > 1e-12 || math.Abs(k.vv-1) > 1e-12 {
			t.Errorf("solve(%v, 3, 0) = %+v, want identity", d, k)
		}
	}
}

// The three damping branches must agree where they meet: stepping with
// d = 1 ± 1e-7 has to land within numerical tolerance of the critical
// branch, or motion near critical damping stutters between regimes.
func TestBranchContinuityAtCritical(t *testing.T) {
	tests := []struct {
		name string
		f    float64
		dt   float64
	}{
		{"typical frame", 4, 1.0 / 60},
		{"slow spring long step", 0.25, 0.5},
		{"fast spring", 60, 1.0 / 240},
		{"tiny frequency", 1e-4, 1.0 / 60},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			crit := solve(1, tt.f, tt.dt)
			under := solve(1-1e-7, tt.f, tt.dt)
			over := solve(1+1e-7, tt.f, tt.dt)

			pairs := []struct {
				name     string
				got, ref coeffs
			}{
				{"underdamped", under, crit},
				{"overdamped", over, crit},
			}
			for _, p := range pairs {
				if delta := maxCoeffDelta(p.got, p.ref); delta > 1e-4 {
					t.Errorf("%s branch deviates from critical by %v: %+v vs %+v",
						p.name, delta, p.got, p.ref)
				}
			}
		})
	}
}

func maxCoeffDelta(a, b coeffs) float64 {
	m := math.Abs(a.pp - b.pp)
	m = math.Max(m, math.Abs(a.pv-b.pv))
	m = math.Max(m, math.Abs(a.vp-b.vp))
	return math.Max(m, math.Abs(a.vv-b.vv))
}

// The Maclaurin guards kick in below seriesEpsilon; the coefficients must
// not jump at the switchover.
func TestSeriesSwitchoverContinuity(t *testing.T) {
	const dt = 1.0 / 60

	// c crosses seriesEpsilon near d = sqrt(1 - eps²).
	dEdge := math.Sqrt(1 - seriesEpsilon*seriesEpsilon)
	lo := solve(dEdge*(1-1e-10), 2, dt)
	hi := solve(dEdge*(1+1e-10), 2, dt)
	if delta := maxCoeffDelta(lo, hi); delta > 1e-9 {
		t.Errorf("underdamped series switchover jumps by %v", delta)
	}

	// w·c crosses seriesEpsilon when the frequency shrinks.
	const d = 0.5
	c := math.Sqrt(1 - d*d)
	fEdge := seriesEpsilon / (2 * math.Pi * c)
	lo = solve(d, fEdge*(1-1e-10), dt)
	hi = solve(d, fEdge*(1+1e-10), dt)
	if delta := maxCoeffDelta(lo, hi); delta > 1e-9 {
		t.Errorf("low-frequency series switchover jumps by %v", delta)
	}

	// Overdamped: w·c crossing seriesEpsilon switches between the
	// exponential-pair and hyperbolic forms.
	const dOver = 1.5
	cOver := math.Sqrt(dOver*dOver - 1)
	fEdge = seriesEpsilon / (2 * math.Pi * cOver)
	lo = solve(dOver, fEdge*(1-1e-10), dt)
	hi = solve(dOver, fEdge*(1+1e-10), dt)
	if delta := maxCoeffDelta(lo, hi); delta > 1e-9 {
		t.Errorf("overdamped series switchover jumps by %v", delta)
	}
}

// Whatever the branch, velocity feedback must satisfy vp = -w²·pv; it
// falls out of the oscillator ODE and ties the four coefficients together.
func TestSolveCoefficientIdentity(t *testing.T) {
	for _, d := range []float64{0, 0.3, 1, 1.7, 5} {
		for _, f := range []float64{0.1, 1, 30} {
			w := 2 * math.Pi * f
			k := solve(d, f, 1.0/60)
			want := -w * w * k.pv
			if math.Abs(k.vp-want) > 1e-6*math.Max(1, math.Abs(want)) {
				t.Errorf("d=%v f=%v: vp = %v, want -w²·pv = %v", d, f, k.vp, want)
			}
		}
	}
}
