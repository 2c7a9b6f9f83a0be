package systems

import (
	"math/rand"

	"github.com/pthm-cable/evac/components"
	"github.com/pthm-cable/evac/config"
)

// Ship is the mutable state the tick systems operate on.
type Ship struct {
	Slots    []components.Slot
	Priority PowerQueue
	O2       float64
	Deaths   int

	HeatScale    float64
	EngineFactor float64
}

// NewShip builds a ship from the configured slot layout.
func NewShip(cfg *config.Config) *Ship {
	sh := &Ship{
		Slots:        make([]components.Slot, len(cfg.Derived.SlotTypes)),
		O2:           cfg.Sim.O2Max,
		HeatScale:    1,
		EngineFactor: 1,
	}
	for i, t := range cfg.Derived.SlotTypes {
		sh.Slots[i] = components.NewSlot(i, t, &cfg.Derived.Panels, &cfg.Derived.Values)
	}
	return sh
}

// Stats aggregates the ship's live slots.
func (sh *Ship) Stats(cfg *config.Config) ShipStats {
	return CalcShipStats(sh.Slots, &cfg.Derived.Panels, cfg.Sim.BaseGen)
}

// LiveSlots returns the indices of intact slots in layout order.
func (sh *Ship) LiveSlots() []int {
	out := make([]int, 0, len(sh.Slots))
	for i := range sh.Slots {
		if sh.Slots[i].Alive() {
			out = append(out, i)
		}
	}
	return out
}

// Cargo returns the total number of passengers aboard.
func (sh *Ship) Cargo() int {
	var n float64
	for i := range sh.Slots {
		n += sh.Slots[i].Cargo
	}
	return int(n)
}

// Env carries the shared inputs of one tick.
type Env struct {
	Cfg    *config.Config
	Rng    *rand.Rand
	Events *Events
	D      float64 // elapsed time as a fraction of a nominal tick
	Now    float64 // sim time in ticks
}

// Destroy zeroes a slot's integrity and drops it from every power list.
// Passengers stay aboard the wreck of a destroyed bay.
func Destroy(env *Env, sh *Ship, idx int, cause Cause) {
	s := &sh.Slots[idx]
	s.HP = 0
	s.Power = components.PowerOff
	s.AutoOff = false
	s.AutoCool = false
	s.Firing = 0
	sh.Priority.Remove(idx)
	sh.Priority.Forget(idx)
	env.Events.Add(Event{Type: EventSlotDestroyed, Slot: idx, Fighter: -1, Cause: cause})
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
