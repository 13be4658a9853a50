package demo

import "log/slog"

// headlessDT is the fixed step used without a real frame clock.
const headlessDT = 1.0 / 60.0

// UpdateHeadless advances one fixed tick without graphics, kicking off a
// fresh scatter whenever everything has settled so the run keeps
// exercising springs.
func (d *Demo) UpdateHeadless() {
	if d.ActiveSprings() == 0 {
		x := d.rng.Float64() * d.width
		y := d.rng.Float64() * d.height
		d.Scatter(x, y)
		if d.rng.Intn(2) == 0 {
			d.Twirl()
		}
		slog.Debug("headless scatter", "tick", d.tick, "x", x, "y", y)
	}
	d.Step(headlessDT)
}
