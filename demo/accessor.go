package demo

import (
	"fmt"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/num/quat"

	"github.com/lissom-motion/lissom/value"
)

// Property names exposed to the driver.
const (
	PropPosition = "position"
	PropSize     = "size"
	PropTint     = "tint"
	PropSpin     = "spin"
)

// worldAccessor adapts the ark component storage to the driver's property
// interface. Each named property maps to one component and one value kind.
type worldAccessor struct {
	pos  *ecs.Map1[Position]
	size *ecs.Map1[Size]
	tint *ecs.Map1[Tint]
	spin *ecs.Map1[Spin]
}

func newWorldAccessor(world *ecs.World) *worldAccessor {
	return &worldAccessor{
		pos:  ecs.NewMap1[Position](world),
		size: ecs.NewMap1[Size](world),
		tint: ecs.NewMap1[Tint](world),
		spin: ecs.NewMap1[Spin](world),
	}
}

// Get reads one named property as an animatable value.
func (a *worldAccessor) Get(e ecs.Entity, property string) (value.Value, error) {
	switch property {
	case PropPosition:
		p := a.pos.Get(e)
		return value.Vec2{X: p.X, Y: p.Y}, nil
	case PropSize:
		s := a.size.Get(e)
		return value.Vec2{X: s.W, Y: s.H}, nil
	case PropTint:
		t := a.tint.Get(e)
		return value.Color{R: t.R, G: t.G, B: t.B}, nil
	case PropSpin:
		s := a.spin.Get(e)
		return value.Rotation(s.Rot), nil
	default:
		return nil, fmt.Errorf("demo: unknown property %q", property)
	}
}

// Set writes one named property back into component storage.
func (a *worldAccessor) Set(e ecs.Entity, property string, v value.Value) error {
	switch property {
	case PropPosition:
		w, ok := v.(value.Vec2)
		if !ok {
			return fmt.Errorf("demo: property %q needs Vec2, got %s", property, v.Kind())
		}
		p := a.pos.Get(e)
		p.X, p.Y = w.X, w.Y
	case PropSize:
		w, ok := v.(value.Vec2)
		if !ok {
			return fmt.Errorf("demo: property %q needs Vec2, got %s", property, v.Kind())
		}
		s := a.size.Get(e)
		s.W, s.H = w.X, w.Y
	case PropTint:
		c, ok := v.(value.Color)
		if !ok {
			return fmt.Errorf("demo: property %q needs Color, got %s", property, v.Kind())
		}
		t := a.tint.Get(e)
		t.R, t.G, t.B = c.R, c.G, c.B
	case PropSpin:
		r, ok := v.(value.Rotation)
		if !ok {
			return fmt.Errorf("demo: property %q needs Rotation, got %s", property, v.Kind())
		}
		s := a.spin.Get(e)
		s.Rot = quat.Number(r)
	default:
		return fmt.Errorf("demo: unknown property %q", property)
	}
	return nil
}
