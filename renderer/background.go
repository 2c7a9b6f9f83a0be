// Package renderer draws the scenery behind the ship.
package renderer

import (
	"math/rand"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// star is one background point. Depth in (0, 1] scales speed and brightness.
type star struct {
	x, y  float32
	depth float32
}

// BackgroundRenderer draws a parallax starfield that streams past while the
// ship is under way and drifts slowly when it is docked.
type BackgroundRenderer struct {
	stars            []star
	screenW, screenH float32
	baseColor        rl.Color

	// Speed is the scroll rate of the nearest layer in pixels per second.
	Speed float32
}

// NewBackgroundRenderer creates a starfield of n stars. The layout is fixed
// by seed so every run shows the same sky.
func NewBackgroundRenderer(screenW, screenH int32, n int, seed int64, baseR, baseG, baseB uint8) *BackgroundRenderer {
	rng := rand.New(rand.NewSource(seed))
	b := &BackgroundRenderer{
		stars:     make([]star, n),
		screenW:   float32(screenW),
		screenH:   float32(screenH),
		baseColor: rl.Color{R: baseR, G: baseG, B: baseB, A: 255},
		Speed:     4,
	}
	for i := range b.stars {
		b.stars[i] = star{
			x:     rng.Float32() * b.screenW,
			y:     rng.Float32() * b.screenH,
			depth: 0.2 + 0.8*rng.Float32()*rng.Float32(),
		}
	}
	return b
}

// Update scrolls the stars left by dt seconds.
func (b *BackgroundRenderer) Update(dt float32) {
	for i := range b.stars {
		s := &b.stars[i]
		s.x -= b.Speed * s.depth * dt
		for s.x < 0 {
			s.x += b.screenW
		}
		if s.x >= b.screenW {
			s.x = 0
		}
	}
}

// Draw renders the background.
func (b *BackgroundRenderer) Draw() {
	rl.DrawRectangle(0, 0, int32(b.screenW), int32(b.screenH), b.baseColor)
	for _, s := range b.stars {
		v := uint8(80 + 175*s.depth)
		rl.DrawPixel(int32(s.x), int32(s.y), rl.Color{R: v, G: v, B: v, A: 255})
	}
}

// Positions returns the current star positions.
func (b *BackgroundRenderer) Positions() [][2]float32 {
	out := make([][2]float32, len(b.stars))
	for i, s := range b.stars {
		out[i] = [2]float32{s.x, s.y}
	}
	return out
}
