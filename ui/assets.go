package ui

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/evac/game"
)

// TextureID names an optional sprite.
type TextureID string

const (
	TextureFighter TextureID = "fighter.png"
)

// Assets loads optional sprites from a directory, one per poll, on the
// render thread. A missing file falls back to primitive drawing; a file
// raylib cannot decode is an error.
type Assets struct {
	dir      string
	queue    []TextureID
	textures map[TextureID]rl.Texture2D
	err      error

	load func(path string) (rl.Texture2D, error)
}

// NewAssets queues every known sprite under dir. An empty dir loads nothing.
func NewAssets(dir string) *Assets {
	a := &Assets{
		dir:      dir,
		textures: make(map[TextureID]rl.Texture2D),
		load:     loadTexture,
	}
	if dir != "" {
		a.queue = []TextureID{TextureFighter}
	}
	return a
}

func loadTexture(path string) (rl.Texture2D, error) {
	tex := rl.LoadTexture(path)
	if !rl.IsTextureValid(tex) {
		return tex, fmt.Errorf("decode %s", path)
	}
	return tex, nil
}

// Pending loads the next queued sprite and returns how many remain. A
// failed sprite stays queued and is retried on the next poll.
func (a *Assets) Pending() int {
	if len(a.queue) == 0 {
		return 0
	}
	id := a.queue[0]
	path := filepath.Join(a.dir, string(id))
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		slog.Debug("sprite not found, using shapes", "path", path)
		a.queue = a.queue[1:]
		a.err = nil
		return len(a.queue)
	}
	tex, err := a.load(path)
	if err != nil {
		a.err = err
		return len(a.queue)
	}
	a.err = nil
	a.textures[id] = tex
	a.queue = a.queue[1:]
	return len(a.queue)
}

// Err returns the last load failure.
func (a *Assets) Err() error {
	return a.err
}

// Texture returns a loaded sprite.
func (a *Assets) Texture(id TextureID) (rl.Texture2D, bool) {
	if a == nil {
		return rl.Texture2D{}, false
	}
	tex, ok := a.textures[id]
	return tex, ok
}

// Unload releases every loaded texture.
func (a *Assets) Unload() {
	for id, tex := range a.textures {
		rl.UnloadTexture(tex)
		delete(a.textures, id)
	}
}

var _ game.Assets = (*Assets)(nil)
