package systems

import (
	"math/rand"
	"testing"

	"github.com/pthm-cable/evac/components"
	"github.com/pthm-cable/evac/config"
)

func init() {
	config.MustInit("")
}

// testEnv returns an env over a private config copy with D = 1.
func testEnv(t *testing.T, seed int64) *Env {
	t.Helper()
	return &Env{
		Cfg:    config.Cfg().Clone(),
		Rng:    rand.New(rand.NewSource(seed)),
		Events: &Events{},
		D:      1,
	}
}

// shipOf builds a ship with one fresh slot per type, in order.
func shipOf(cfg *config.Config, types ...components.PanelType) *Ship {
	sh := &Ship{O2: cfg.Sim.O2Max, HeatScale: 1, EngineFactor: 1}
	for i, t := range types {
		sh.Slots = append(sh.Slots, components.NewSlot(i, t, &cfg.Derived.Panels, &cfg.Derived.Values))
	}
	return sh
}

func countEvents(ev *Events, typ EventType) int {
	n := 0
	for _, e := range ev.All() {
		if e.Type == typ {
			n++
		}
	}
	return n
}

func waveOf(n int) config.WaveConfig {
	return config.WaveConfig{NumShips: n, Damage: 5, Scale: 1}
}

// readyWave spawns n fighters that will all fire on the next resolve.
func readyWave(env *Env, n int, damage float64) *Wave {
	w := NewWave(env.Cfg, config.WaveConfig{NumShips: n, Damage: damage, Scale: 1}, env.Rng)
	for i := 0; i < w.Len(); i++ {
		_, f := w.Fighter(i)
		f.FireCountdown = 0
	}
	return w
}
