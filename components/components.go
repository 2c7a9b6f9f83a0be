// Package components defines the ship and enemy data model shared by the simulation.
package components

// Position represents an entity's position in game space.
type Position struct {
	X, Y float32
}

// Vec2 is a point in game space.
type Vec2 struct {
	X, Y float32
}

// Rect is an axis-aligned rectangle in game space.
type Rect struct {
	X, Y, W, H float32
}

// Contains reports whether p lies inside r.
func (r Rect) Contains(p Vec2) bool {
	return p.X >= r.X && p.X < r.X+r.W && p.Y >= r.Y && p.Y < r.Y+r.H
}

// Center returns the midpoint of r.
func (r Rect) Center() Vec2 {
	return Vec2{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

// Fighter is the combat state of one enemy ship.
// Fighters are never removed from the world; a dead fighter keeps its
// position so the defeated wave can still be drawn.
type Fighter struct {
	Index         int     // creation order within the wave
	HP            int     // 1 alive, 0 dead
	FireCountdown float64 // ticks until the next shot
	Firing        float64 // remaining shot-visual ticks
	FireAt        Vec2    // target of the current shot visual
	FireAtVert    bool    // target panel is vertical
	Missed        bool    // current shot visual is a miss
}

// Alive reports whether the fighter can still fire and be targeted.
func (f *Fighter) Alive() bool {
	return f.HP > 0
}
