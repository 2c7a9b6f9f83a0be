// Package camera maps the fixed virtual game area onto the window.
package camera

import "math"

// Camera letterboxes a fixed-size game area inside a resizable viewport.
// The game area keeps its aspect ratio and is centered in the window.
type Camera struct {
	// Game area in virtual pixels
	GameW, GameH float32

	// Viewport dimensions (window size)
	ViewportW, ViewportH float32

	// Scale from game pixels to screen pixels
	Scale float32

	// Top-left corner of the game area on screen
	OffsetX, OffsetY float32

	// PixelPerfect rounds the scale down to a whole number when the
	// window is at least as large as the game area.
	PixelPerfect bool
}

// New creates a camera fitting the game area into the viewport.
func New(viewportW, viewportH, gameW, gameH float32, pixelPerfect bool) *Camera {
	c := &Camera{
		GameW:        gameW,
		GameH:        gameH,
		PixelPerfect: pixelPerfect,
	}
	c.Resize(viewportW, viewportH)
	return c
}

// Resize recomputes the scale and offset for a new viewport size.
func (c *Camera) Resize(viewportW, viewportH float32) {
	c.ViewportW = viewportW
	c.ViewportH = viewportH

	scale := float32(1)
	if c.GameW > 0 && c.GameH > 0 {
		scale = float32(math.Min(float64(viewportW/c.GameW), float64(viewportH/c.GameH)))
	}
	if c.PixelPerfect && scale >= 1 {
		scale = float32(math.Floor(float64(scale)))
	}
	if scale <= 0 {
		scale = 1
	}
	c.Scale = scale
	c.OffsetX = (viewportW - c.GameW*scale) / 2
	c.OffsetY = (viewportH - c.GameH*scale) / 2
}

// GameToScreen converts game coordinates to screen coordinates.
func (c *Camera) GameToScreen(gx, gy float32) (sx, sy float32) {
	return c.OffsetX + gx*c.Scale, c.OffsetY + gy*c.Scale
}

// ScreenToGame converts screen coordinates to game coordinates.
// Points in the letterbox bars map outside [0, GameW) x [0, GameH).
func (c *Camera) ScreenToGame(sx, sy float32) (gx, gy float32) {
	return (sx - c.OffsetX) / c.Scale, (sy - c.OffsetY) / c.Scale
}

// Contains reports whether a screen point lies inside the game area.
func (c *Camera) Contains(sx, sy float32) bool {
	gx, gy := c.ScreenToGame(sx, sy)
	return gx >= 0 && gy >= 0 && gx < c.GameW && gy < c.GameH
}

// Dest returns the on-screen rectangle of the game area.
func (c *Camera) Dest() (x, y, w, h float32) {
	return c.OffsetX, c.OffsetY, c.GameW * c.Scale, c.GameH * c.Scale
}
