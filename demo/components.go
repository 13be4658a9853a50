// Package demo is the interactive showcase for the spring driver: an ark
// ECS world of colored boxes whose properties are animated through a
// lissom.Driver keyed by ark entities.
package demo

import "gonum.org/v1/gonum/num/quat"

// Position is an entity's screen position in pixels.
type Position struct {
	X, Y float64
}

// Size is an entity's box extent in pixels, sprung as a 2-vector.
type Size struct {
	W, H float64
}

// Tint is an entity's sRGB fill color with channels in [0, 1].
type Tint struct {
	R, G, B float64
}

// Spin is an entity's orientation. Boxes only rotate about the screen
// normal, but the full quaternion is what the rotation spring animates.
type Spin struct {
	Rot quat.Number
}
