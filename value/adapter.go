package value

import (
	"github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/gonum/num/quat"

	"github.com/lissom-motion/lissom/colorspace"
)

// SolverKind selects which spring owns a kind's dynamics.
type SolverKind uint8

const (
	SolverLinear    SolverKind = iota // flat vector in intermediate space
	SolverRotation                    // orientation on the rotation manifold
	SolverTransform                   // composite: linear + rotation
)

// Adapter converts one value kind to and from the solver state space. The
// linear part is a fixed-length vector (Size entries, zero for pure
// rotations); the rotation part is a unit quaternion (identity for pure
// linear kinds). Conversions are chosen so interpolation in the
// intermediate space looks physically and perceptually correct — colors,
// for example, travel through L*u*v* rather than raw channels.
type Adapter struct {
	Kind   Kind
	Solver SolverKind
	Size   int

	ToParts   func(v Value) ([]float64, quat.Number)
	FromParts func(vec []float64, rot quat.Number) Value
}

// AdapterFor returns the adapter for v's kind. The second result is false
// when v is nil or of a kind outside the supported set.
func AdapterFor(v Value) (Adapter, bool) {
	switch v.(type) {
	case Float:
		return floatAdapter, true
	case Vec2:
		return vec2Adapter, true
	case Vec3:
		return vec3Adapter, true
	case Rect:
		return rectAdapter, true
	case Color:
		return colorAdapter, true
	case Rotation:
		return rotationAdapter, true
	case Transform:
		return transformAdapter, true
	default:
		return Adapter{}, false
	}
}

var identity = quat.Number{Real: 1}

var floatAdapter = Adapter{
	Kind:   KindFloat,
	Solver: SolverLinear,
	Size:   1,
	ToParts: func(v Value) ([]float64, quat.Number) {
		return []float64{float64(v.(Float))}, identity
	},
	FromParts: func(vec []float64, _ quat.Number) Value {
		return Float(vec[0])
	},
}

var vec2Adapter = Adapter{
	Kind:   KindVec2,
	Solver: SolverLinear,
	Size:   2,
	ToParts: func(v Value) ([]float64, quat.Number) {
		w := v.(Vec2)
		return []float64{w.X, w.Y}, identity
	},
	FromParts: func(vec []float64, _ quat.Number) Value {
		return Vec2{X: vec[0], Y: vec[1]}
	},
}

var vec3Adapter = Adapter{
	Kind:   KindVec3,
	Solver: SolverLinear,
	Size:   3,
	ToParts: func(v Value) ([]float64, quat.Number) {
		w := v.(Vec3)
		return []float64{w.X, w.Y, w.Z}, identity
	},
	FromParts: func(vec []float64, _ quat.Number) Value {
		return Vec3{X: vec[0], Y: vec[1], Z: vec[2]}
	},
}

var rectAdapter = Adapter{
	Kind:   KindRect,
	Solver: SolverLinear,
	Size:   4,
	ToParts: func(v Value) ([]float64, quat.Number) {
		r := v.(Rect)
		return []float64{r.Min.X, r.Min.Y, r.Max.X, r.Max.Y}, identity
	},
	FromParts: func(vec []float64, _ quat.Number) Value {
		return Rect{
			Min: Vec2{X: vec[0], Y: vec[1]},
			Max: Vec2{X: vec[2], Y: vec[3]},
		}
	},
}

var colorAdapter = Adapter{
	Kind:   KindColor,
	Solver: SolverLinear,
	Size:   3,
	ToParts: func(v Value) ([]float64, quat.Number) {
		l, u, vv := colorspace.ToLUV(colorful.Color(v.(Color)))
		return []float64{l, u, vv}, identity
	},
	FromParts: func(vec []float64, _ quat.Number) Value {
		return Color(colorspace.FromLUV(vec[0], vec[1], vec[2]))
	},
}

var rotationAdapter = Adapter{
	Kind:   KindRotation,
	Solver: SolverRotation,
	Size:   0,
	ToParts: func(v Value) ([]float64, quat.Number) {
		return nil, quat.Number(v.(Rotation))
	},
	FromParts: func(_ []float64, rot quat.Number) Value {
		return Rotation(rot)
	},
}

var transformAdapter = Adapter{
	Kind:   KindTransform,
	Solver: SolverTransform,
	Size:   3,
	ToParts: func(v Value) ([]float64, quat.Number) {
		t := v.(Transform)
		return []float64{t.Pos.X, t.Pos.Y, t.Pos.Z}, quat.Number(t.Rot)
	},
	FromParts: func(vec []float64, rot quat.Number) Value {
		return Transform{
			Pos: Vec3{X: vec[0], Y: vec[1], Z: vec[2]},
			Rot: Rotation(rot),
		}
	},
}
