package game

import (
	"github.com/pthm-cable/evac/components"
	"github.com/pthm-cable/evac/config"
	"github.com/pthm-cable/evac/scores"
	"github.com/pthm-cable/evac/systems"
)

// ShipState is the whole mutable state of one playthrough. It is created at
// new game, partly reset at every dock and discarded on win or loss.
type ShipState struct {
	*systems.Ship

	Wave     *systems.Wave
	Chapter  int
	Messages *MessageLog

	// PickedUp marks chapters whose survivors were taken aboard.
	PickedUp map[int]bool
	// Waiting counts survivors picked up but not yet seated in a bay.
	Waiting int

	HeatHelpShown bool
	SimTime       float64 // ticks since the run started
}

// NewShipState builds a fresh ship from the configured layout.
func NewShipState(cfg *config.Config) *ShipState {
	return &ShipState{
		Ship:     systems.NewShip(cfg),
		Messages: NewMessageLog(cfg.Sim.MessageLogSize),
		PickedUp: make(map[int]bool),
	}
}

// Dock returns every live slot to its port values and clears power and
// transient flags. Destroyed slots stay destroyed.
func (st *ShipState) Dock(cfg *config.Config) {
	vals := &cfg.Derived.Values
	for i := range st.Slots {
		s := &st.Slots[i]
		s.Power = components.PowerOff
		s.AutoOff = false
		s.AutoCool = false
		s.HeatDamage = 0
		s.Firing = 0
		s.FireAt = components.Vec2{}
		if !s.Alive() {
			continue
		}
		for _, v := range cfg.Derived.Panels[s.Type].Values {
			if v == components.ValueNone || !vals[v].HasPort {
				continue
			}
			*s.Ref(v) = vals[v].Port
		}
	}
	st.Priority.Clear()
	st.O2 = cfg.Sim.O2Max
}

// CanConvert reports whether a slot may be refitted as a cargo bay.
func (st *ShipState) CanConvert(idx int) bool {
	s := &st.Slots[idx]
	return s.Alive() && s.Type != components.PanelCargo && !s.Converted
}

// ConvertToCargo refits a live slot as an empty cargo bay, keeping its
// integrity. Returns false if the slot is not eligible.
func (st *ShipState) ConvertToCargo(cfg *config.Config, idx int) bool {
	if !st.CanConvert(idx) {
		return false
	}
	hp := st.Slots[idx].HP
	st.Priority.Remove(idx)
	st.Priority.Forget(idx)
	s := components.NewSlot(idx, components.PanelCargo, &cfg.Derived.Panels, &cfg.Derived.Values)
	s.HP = hp
	s.Converted = true
	st.Slots[idx] = s
	return true
}

// Board seats passengers in live cargo bays in layout order. Returns how
// many found a seat.
func (st *ShipState) Board(cfg *config.Config, n int) int {
	capacity := cfg.Derived.Values[components.ValueCargo].Max
	seated := 0
	for i := range st.Slots {
		if n == 0 {
			break
		}
		s := &st.Slots[i]
		if !s.Alive() || s.Type != components.PanelCargo {
			continue
		}
		room := int(capacity - s.Cargo)
		if room <= 0 {
			continue
		}
		if room > n {
			room = n
		}
		s.Cargo += float64(room)
		n -= room
		seated += room
	}
	return seated
}

// Capacity returns the free seats across live cargo bays.
func (st *ShipState) Capacity(cfg *config.Config) int {
	capacity := cfg.Derived.Values[components.ValueCargo].Max
	free := 0
	for i := range st.Slots {
		s := &st.Slots[i]
		if s.Alive() && s.Type == components.PanelCargo {
			free += int(capacity - s.Cargo)
		}
	}
	return free
}

// Score is the result of the run so far. Level counts cleared encounters.
func (st *ShipState) Score(cleared int) scores.Score {
	return scores.Score{Level: cleared, Cargo: st.Cargo(), Deaths: st.Deaths}
}

// Summarize builds the readout for the presenter.
func (st *ShipState) Summarize(cfg *config.Config, stats systems.ShipStats) Summary {
	sum := Summary{
		Chapter:  st.Chapter,
		O2:       st.O2,
		O2Max:    cfg.Sim.O2Max,
		Deaths:   st.Deaths,
		Cargo:    st.Cargo(),
		Stats:    stats,
		Messages: st.Messages.Messages,
	}
	if st.Chapter < len(cfg.Chapters) {
		sum.Name = cfg.Chapters[st.Chapter].Name
	}
	if st.Wave != nil {
		sum.Enemies = st.Wave.Len()
		sum.Living = st.Wave.AliveCount()
	}
	return sum
}
