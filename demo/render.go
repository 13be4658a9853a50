package demo

import (
	"fmt"
	"math"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Update handles one frame of input and simulation in graphical mode.
func (d *Demo) Update() {
	if rl.IsMouseButtonPressed(rl.MouseLeftButton) && rl.GetMouseY() > 60 {
		m := rl.GetMousePosition()
		wx, wy := d.cam.ScreenToScene(m.X, m.Y)
		d.Scatter(float64(wx), float64(wy))
		d.NotifyFirstSettled()
	}
	if rl.IsMouseButtonDown(rl.MouseRightButton) {
		delta := rl.GetMouseDelta()
		d.cam.Pan(-delta.X, -delta.Y)
	}
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		m := rl.GetMousePosition()
		d.cam.ZoomAt(m.X, m.Y, 1+wheel*0.1)
	}
	switch {
	case rl.IsKeyPressed(rl.KeyR):
		d.Twirl()
	case rl.IsKeyPressed(rl.KeyP):
		d.Pulse()
	case rl.IsKeyPressed(rl.KeyG):
		d.Regroup()
	case rl.IsKeyPressed(rl.KeyS):
		d.StopAll()
	case rl.IsKeyPressed(rl.KeyHome):
		d.cam.Reset()
	}

	d.Step(float64(rl.GetFrameTime()))
}

// Draw renders the world and the parameter panel.
func (d *Demo) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(rl.RayWhite)

	query := d.filter.Query()
	for query.Next() {
		pos, size, tint, spin := query.Get()

		half := float32(math.Max(size.W, size.H) / 2)
		if !d.cam.IsVisible(float32(pos.X), float32(pos.Y), half) {
			continue
		}
		sx, sy := d.cam.SceneToScreen(float32(pos.X), float32(pos.Y))
		rect := rl.Rectangle{
			X:      sx,
			Y:      sy,
			Width:  float32(size.W) * d.cam.Zoom,
			Height: float32(size.H) * d.cam.Zoom,
		}
		origin := rl.Vector2{X: rect.Width / 2, Y: rect.Height / 2}
		angle := spinAngle(spin)

		rl.DrawRectanglePro(rect, origin, float32(angle*180/math.Pi), rl.Color{
			R: channelByte(tint.R),
			G: channelByte(tint.G),
			B: channelByte(tint.B),
			A: 255,
		})
	}

	d.drawPanel()

	rl.DrawText("click: scatter  R: twirl  P: pulse  G: snap home  S: stop  wheel: zoom  rdrag: pan",
		10, int32(d.height)-24, 16, rl.Gray)
	rl.DrawText(fmt.Sprintf("springs: %d", d.ActiveSprings()),
		10, int32(d.height)-44, 16, rl.DarkGray)

	rl.EndDrawing()
}

// drawPanel renders the damping/frequency sliders.
func (d *Demo) drawPanel() {
	rl.DrawRectangle(0, 0, int32(d.width), 60, rl.Fade(rl.LightGray, 0.4))

	rl.DrawText("damping", 10, 12, 14, rl.DarkGray)
	d.Damping = float64(gui.SliderBar(
		rl.Rectangle{X: 80, Y: 10, Width: 200, Height: 18},
		"0", "4",
		float32(d.Damping), 0, 4,
	))
	rl.DrawText(fmt.Sprintf("%.2f", d.Damping), 290, 12, 14, rl.DarkGray)

	rl.DrawText("freq (Hz)", 10, 36, 14, rl.DarkGray)
	d.Frequency = float64(gui.SliderBar(
		rl.Rectangle{X: 80, Y: 34, Width: 200, Height: 18},
		"0.1", "10",
		float32(d.Frequency), 0.1, 10,
	))
	rl.DrawText(fmt.Sprintf("%.2f", d.Frequency), 290, 36, 14, rl.DarkGray)
}

// spinAngle extracts the rotation angle about the screen normal. Demo
// orientations only ever rotate about Z, so the X/Y components are
// ignored.
func spinAngle(s *Spin) float64 {
	return 2 * math.Atan2(s.Rot.Kmag, s.Rot.Real)
}

// channelByte converts a [0,1] channel to a display byte.
func channelByte(c float64) uint8 {
	if c < 0 {
		return 0
	}
	if c > 1 {
		return 255
	}
	return uint8(c*255 + 0.5)
}
