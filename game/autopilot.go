package game

import (
	"github.com/pthm-cable/evac/components"
	"github.com/pthm-cable/evac/systems"
)

// Autopilot is a fixed policy that flies the ship without input. It is used
// for headless runs and for balancing waves.
type Autopilot struct {
	// Heat fractions at which weapons drop out of overdrive and shut down.
	CoolAt float64
	StopAt float64
	// O2 fraction of the reservoir below which life support is pushed.
	O2Low float64
	// HP below which repair bays are switched on.
	RepairBelow float64
}

// NewAutopilot returns a reasonably cautious pilot.
func NewAutopilot() *Autopilot {
	return &Autopilot{
		CoolAt:      0.5,
		StopAt:      0.85,
		O2Low:       0.4,
		RepairBelow: 70,
	}
}

// Want returns the power level the pilot wants for a slot.
func (a *Autopilot) Want(g *Game, idx int) components.PowerLevel {
	cfg := g.cfg
	st := g.state
	s := &st.Slots[idx]
	heat := s.Heat / cfg.Derived.Values[components.ValueHeat].Max
	top := components.PowerLevel(cfg.Sim.MaxPower - 1)

	if heat >= a.StopAt {
		return components.PowerOff
	}
	level := components.PowerOn
	switch s.Type {
	case components.PanelGen:
		if heat < a.CoolAt {
			level = top
		}
	case components.PanelWeapon:
		if heat < a.CoolAt {
			level = top
		}
	case components.PanelLife:
		if st.O2 < cfg.Sim.O2Max*a.O2Low && heat < a.CoolAt {
			level = top
		}
	case components.PanelRepair:
		level = components.PowerOff
		for i := range st.Slots {
			t := &st.Slots[i]
			if i != idx && t.Alive() && t.Type != components.PanelRepair && t.HP < a.RepairBelow {
				level = components.PowerOn
				break
			}
		}
	}
	if level > top {
		level = top
	}
	return level
}

// Fly adjusts every eligible slot toward the wanted level. Slots the
// simulator switched off for budget reasons are left for it to restore.
func (a *Autopilot) Fly(g *Game) {
	st := g.state
	if st.Wave != nil && st.Wave.Won {
		return
	}
	for i := range st.Slots {
		s := &st.Slots[i]
		if !CanToggle(g.cfg, s) || s.AutoOff {
			continue
		}
		if want := a.Want(g, i); want != s.Power {
			systems.SetPower(st.Ship, i, want)
		}
	}
}
