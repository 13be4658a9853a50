// Package colorspace converts sRGB colors to and from a perceptually
// uniform CIE L*u*v* representation. Springing raw RGB channels produces
// trajectories that look wrong — equal numeric steps are not equal
// perceived steps — so color springs animate in L*u*v* and convert back per
// frame. The conversion is numerically delicate: both directions carry
// dedicated branches for near-black input and out-of-gamut results.
package colorspace

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// sRGB ↔ CIE XYZ for the D65 white point. The two matrices are exact
// inverses of each other to double precision, which is what lets a
// convert/invert round trip reproduce its input to well under 1e-6.
const (
	xr, xg, xb = 0.41239079926595934, 0.357584339383878, 0.1804807884018343
	yr, yg, yb = 0.21263900587151027, 0.715168678767756, 0.07219231536073371
	zr, zg, zb = 0.01933081871559182, 0.11919477979462598, 0.9505321522496607

	rx, ry, rz = 3.2409699419045226, -1.537383177570094, -0.4986107602930034
	gx, gy, gz = -0.9692436362808796, 1.8759675015077202, 0.04155505740717559
	bx, by, bz = 0.05563007969699366, -0.20397695888897652, 1.0569715142428786
)

// CIE L* constants: below epsilonY the lightness mapping is linear in Y
// rather than a cube root, per the standard's handling near black.
const (
	epsilonY = 216.0 / 24389.0
	kappa    = 24389.0 / 27.0
)

// D65 reference white chromaticity in u'v', derived from the matrix above
// so the forward and inverse chains agree bit for bit.
var refU, refV = func() (float64, float64) {
	x := xr + xg + xb
	y := yr + yg + yb
	z := zr + zg + zb
	d := x + 15*y + 3*z
	return 4 * x / d, 9 * y / d
}()

// ToLUV converts an sRGB color to (L*, u*, v*). Channels are gamma-expanded
// per the piecewise D65 sRGB curve, mapped through the XYZ matrix, then to
// lightness plus two chroma axes. A degenerate denominator (black input)
// yields zero chroma instead of dividing by zero.
func ToLUV(c colorful.Color) (l, u, v float64) {
	r := linearize(c.R)
	g := linearize(c.G)
	b := linearize(c.B)

	x := xr*r + xg*g + xb*b
	y := yr*r + yg*g + yb*b
	z := zr*r + zg*g + zb*b

	if y > epsilonY {
		l = 116*math.Cbrt(y) - 16
	} else {
		l = kappa * y
	}

	d := x + 15*y + 3*z
	if d < 1e-14 {
		return l, 0, 0
	}
	u = 13 * l * (4*x/d - refU)
	v = 13 * l * (9*y/d - refV)
	return l, u, v
}

// FromLUV converts (L*, u*, v*) back to an sRGB color, inverting the full
// ToLUV chain. Sub-black lightness clamps to black. Out-of-gamut results
// are pulled back by shifting the least channel to zero — which preserves
// hue — rather than clipping per channel, then gamma-compressed and clamped
// to [0, 1] as a final guard against representable-but-out-of-range values.
func FromLUV(l, u, v float64) colorful.Color {
	if l <= 0 {
		return colorful.Color{}
	}

	up := u/(13*l) + refU
	vp := v/(13*l) + refV
	if vp < 1e-14 {
		return colorful.Color{}
	}

	var y float64
	if l > kappa*epsilonY {
		t := (l + 16) / 116
		y = t * t * t
	} else {
		y = l / kappa
	}
	x := y * 9 * up / (4 * vp)
	z := y * (12 - 3*up - 20*vp) / (4 * vp)

	r := rx*x + ry*y + rz*z
	g := gx*x + gy*y + gz*z
	b := bx*x + by*y + bz*z

	if m := math.Min(r, math.Min(g, b)); m < 0 {
		r -= m
		g -= m
		b -= m
	}

	return colorful.Color{
		R: clamp01(delinearize(r)),
		G: clamp01(delinearize(g)),
		B: clamp01(delinearize(b)),
	}
}

// linearize applies the piecewise inverse sRGB gamma curve to one channel.
func linearize(c float64) float64 {
	if c <= 0.04045 {
		return c / 12.92
	}
	return math.Pow((c+0.055)/1.055, 2.4)
}

// delinearize applies the piecewise forward sRGB gamma curve to one channel.
func delinearize(c float64) float64 {
	if c <= 0.0031308 {
		return 12.92 * c
	}
	return 1.055*math.Pow(c, 1.0/2.4) - 0.055
}

// clamp01 clamps a channel to the [0, 1] range.
func clamp01(c float64) float64 {
	if c < 0 {
		return 0
	}
	if c > 1 {
		return 1
	}
	return c
}
