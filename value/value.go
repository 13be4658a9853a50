// Package value defines the closed set of animatable value kinds and their
// adapters into the intermediate vector space the spring solvers operate
// on. The set is a tagged variant rather than an open registry: adapter
// lookup is a type switch, and supporting a new kind is a compile-checked
// extension of this package.
package value

import (
	"github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
)

// Kind identifies an animatable value kind.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindFloat
	KindVec2
	KindVec3
	KindRect
	KindColor
	KindRotation
	KindTransform
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindFloat:
		return "Float"
	case KindVec2:
		return "Vec2"
	case KindVec3:
		return "Vec3"
	case KindRect:
		return "Rect"
	case KindColor:
		return "Color"
	case KindRotation:
		return "Rotation"
	case KindTransform:
		return "Transform"
	default:
		return "Invalid"
	}
}

// Value is implemented by every animatable value kind.
type Value interface {
	Kind() Kind
}

// Float is a scalar value.
type Float float64

func (Float) Kind() Kind { return KindFloat }

// Vec2 is a 2D offset.
type Vec2 struct {
	X, Y float64
}

func (Vec2) Kind() Kind { return KindVec2 }

// Vec3 is a 3D offset.
type Vec3 r3.Vec

func (Vec3) Kind() Kind { return KindVec3 }

// Rect is an axis-aligned rectangle held as two 2-component corners, which
// spring as one 4-dimensional value.
type Rect struct {
	Min, Max Vec2
}

func (Rect) Kind() Kind { return KindRect }

// Color is an sRGB color with channels in [0, 1]. Colors animate through
// the perceptually uniform space in package colorspace, not through raw
// channels.
type Color colorful.Color

func (Color) Kind() Kind { return KindColor }

// Rotation is an orientation as a unit quaternion.
type Rotation quat.Number

func (Rotation) Kind() Kind { return KindRotation }

// Transform is a rigid transform: translation plus orientation. The two
// parts animate under one goal/step contract with a shared damping ratio
// and frequency.
type Transform struct {
	Pos Vec3
	Rot Rotation
}

func (Transform) Kind() Kind { return KindTransform }
