package systems

import (
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/evac/components"
	"github.com/pthm-cable/evac/config"
)

// Wave is one batch of enemy fighters, stored as ECS entities.
//
// ships keeps creation order so random picks are reproducible for a seed;
// the filter is used for order-independent passes.
type Wave struct {
	NumShips     int
	Damage       float64
	Scale        float32
	Won          bool
	WinCountdown float64

	world  *ecs.World
	mapper *ecs.Map2[components.Position, components.Fighter]
	filter *ecs.Filter2[components.Position, components.Fighter]
	ships  []ecs.Entity
}

// NewWave spawns a wave just past the right edge of the game area.
func NewWave(cfg *config.Config, wc config.WaveConfig, rng *rand.Rand) *Wave {
	world := ecs.NewWorld()
	w := &Wave{
		NumShips: wc.NumShips,
		Damage:   wc.Damage,
		Scale:    wc.Scale,
		world:    world,
		mapper:   ecs.NewMap2[components.Position, components.Fighter](world),
		filter:   ecs.NewFilter2[components.Position, components.Fighter](world),
		ships:    make([]ecs.Entity, 0, wc.NumShips),
	}

	ec := cfg.Enemy
	shipH := ec.ShipH * wc.Scale
	x0 := cfg.Derived.GameW32 + ec.X0Offset
	span := cfg.Derived.GameH32 - shipH*2
	if span < 0 {
		span = 0
	}
	for i := 0; i < wc.NumShips; i++ {
		pos := components.Position{
			X: x0 - rng.Float32()*ec.SpawnJitter,
			Y: shipH + rng.Float32()*span,
		}
		countdown := ec.InitialCountdown
		if ec.InitialJitter > 0 {
			countdown += rng.Intn(ec.InitialJitter)
		}
		f := components.Fighter{Index: i, HP: ec.HP, FireCountdown: float64(countdown)}
		w.ships = append(w.ships, w.mapper.NewEntity(&pos, &f))
	}
	return w
}

// Len returns the number of fighters, living or dead.
func (w *Wave) Len() int {
	return len(w.ships)
}

// Fighter returns the components of the i-th fighter in creation order.
func (w *Wave) Fighter(i int) (*components.Position, *components.Fighter) {
	return w.mapper.Get(w.ships[i])
}

// Living returns the indices of fighters still alive, in creation order.
func (w *Wave) Living() []int {
	out := make([]int, 0, len(w.ships))
	for i, e := range w.ships {
		_, f := w.mapper.Get(e)
		if f.Alive() {
			out = append(out, i)
		}
	}
	return out
}

// AliveCount returns the number of fighters still alive.
func (w *Wave) AliveCount() int {
	n := 0
	query := w.filter.Query()
	for query.Next() {
		_, f := query.Get()
		if f.Alive() {
			n++
		}
	}
	return n
}

// AllDead reports whether every fighter has been shot down.
func (w *Wave) AllDead() bool {
	query := w.filter.Query()
	for query.Next() {
		_, f := query.Get()
		if f.Alive() {
			query.Close()
			return false
		}
	}
	return true
}

// EachFighter visits every fighter, living or dead.
func (w *Wave) EachFighter(fn func(i int, pos *components.Position, f *components.Fighter)) {
	query := w.filter.Query()
	for query.Next() {
		pos, f := query.Get()
		fn(f.Index, pos, f)
	}
}

// Approach moves living fighters toward the engagement line.
func (w *Wave) Approach(cfg *config.Config, dtMS float32) {
	dist := cfg.Enemy.Speed * dtMS
	x1 := cfg.Enemy.X1
	query := w.filter.Query()
	for query.Next() {
		pos, f := query.Get()
		if !f.Alive() || pos.X <= x1 {
			continue
		}
		pos.X -= dist
		if pos.X < x1 {
			pos.X = x1
		}
	}
}
