// Package camera provides a 2D pan/zoom viewport for the demo scene.
package camera

// Camera maps scene coordinates to screen coordinates. The scene is a
// bounded plane; panning clamps to its edges rather than wrapping.
type Camera struct {
	// Position is the camera center in scene coordinates
	X, Y float32

	// Zoom level (1.0 = 1:1, 2.0 = 2x magnification)
	Zoom float32

	// Viewport dimensions (screen size)
	ViewportW, ViewportH float32

	// Scene dimensions (pan bounds)
	SceneW, SceneH float32

	// Zoom constraints
	MinZoom, MaxZoom float32
}

// New creates a camera centered on the scene with 1:1 zoom.
func New(viewportW, viewportH, sceneW, sceneH float32) *Camera {
	return &Camera{
		X:         sceneW / 2,
		Y:         sceneH / 2,
		Zoom:      1.0,
		ViewportW: viewportW,
		ViewportH: viewportH,
		SceneW:    sceneW,
		SceneH:    sceneH,
		MinZoom:   0.25,
		MaxZoom:   4.0,
	}
}

// SceneToScreen converts scene coordinates to screen coordinates.
func (c *Camera) SceneToScreen(wx, wy float32) (sx, sy float32) {
	sx = c.ViewportW/2 + (wx-c.X)*c.Zoom
	sy = c.ViewportH/2 + (wy-c.Y)*c.Zoom
	return sx, sy
}

// ScreenToScene converts screen coordinates to scene coordinates.
func (c *Camera) ScreenToScene(sx, sy float32) (wx, wy float32) {
	wx = c.X + (sx-c.ViewportW/2)/c.Zoom
	wy = c.Y + (sy-c.ViewportH/2)/c.Zoom
	return wx, wy
}

// IsVisible returns true if a box centered at (wx, wy) with the given
// half-extent could be visible on screen (conservative check for culling).
func (c *Camera) IsVisible(wx, wy, halfExtent float32) bool {
	halfW := c.ViewportW/(2*c.Zoom) + halfExtent
	halfH := c.ViewportH/(2*c.Zoom) + halfExtent
	return absf(wx-c.X) <= halfW && absf(wy-c.Y) <= halfH
}

// Pan moves the camera by the given delta in screen pixels, clamped so the
// center stays inside the scene.
func (c *Camera) Pan(dx, dy float32) {
	c.X = clamp(c.X+dx/c.Zoom, 0, c.SceneW)
	c.Y = clamp(c.Y+dy/c.Zoom, 0, c.SceneH)
}

// SetZoom sets the zoom level, clamped to min/max.
func (c *Camera) SetZoom(zoom float32) {
	c.Zoom = clamp(zoom, c.MinZoom, c.MaxZoom)
}

// ZoomBy multiplies the current zoom by the given factor.
func (c *Camera) ZoomBy(factor float32) {
	c.SetZoom(c.Zoom * factor)
}

// ZoomAt zooms by factor while keeping the scene point under the given
// screen position fixed, which is what makes wheel zoom feel anchored to
// the cursor.
func (c *Camera) ZoomAt(sx, sy, factor float32) {
	wx, wy := c.ScreenToScene(sx, sy)
	c.SetZoom(c.Zoom * factor)
	// Shift the center so (wx, wy) lands back under (sx, sy).
	c.X = clamp(wx-(sx-c.ViewportW/2)/c.Zoom, 0, c.SceneW)
	c.Y = clamp(wy-(sy-c.ViewportH/2)/c.Zoom, 0, c.SceneH)
}

// Reset returns the camera to the default position and zoom.
func (c *Camera) Reset() {
	c.X = c.SceneW / 2
	c.Y = c.SceneH / 2
	c.Zoom = 1.0
}

// absf returns the absolute value of a float32.
func absf(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

// clamp restricts a value to a range.
func clamp(x, min, max float32) float32 {
	if x < min {
		return min
	}
	if x > max {
		return max
	}
	return x
}
