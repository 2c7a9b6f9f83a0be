package game

import (
	"github.com/pthm-cable/evac/components"
	"github.com/pthm-cable/evac/config"
	"github.com/pthm-cable/evac/systems"
)

// CanToggle reports whether the player may change a slot's power.
// Destroyed slots, slots locked by autocool and unpowered panels are fixed.
func CanToggle(cfg *config.Config, s *components.Slot) bool {
	return s.Alive() && !s.AutoCool && cfg.Derived.Panels[s.Type].Powered
}

// NextPower cycles a power level: the primary button steps up, the
// secondary button steps down, both wrapping around.
func NextPower(p components.PowerLevel, b Button, maxPower int) components.PowerLevel {
	n := int(p)
	if b == ButtonSecondary {
		n = (n + maxPower - 1) % maxPower
	} else {
		n = (n + 1) % maxPower
	}
	return components.PowerLevel(n)
}

// TogglePower applies one click to a slot. Returns false if the slot is not
// eligible.
func TogglePower(cfg *config.Config, sh *systems.Ship, idx int, b Button) bool {
	s := &sh.Slots[idx]
	if !CanToggle(cfg, s) {
		return false
	}
	systems.SetPower(sh, idx, NextPower(s.Power, b, cfg.Sim.MaxPower))
	return true
}

// handleSlotClicks toggles power on every slot clicked this frame.
func (g *Game) handleSlotClicks() {
	if g.dialogs.Active() {
		return
	}
	for i, r := range g.cfg.Derived.SlotRects {
		switch {
		case g.input.ClickConsumed(r, ButtonPrimary):
			g.togglePower(i, ButtonPrimary)
		case g.input.ClickConsumed(r, ButtonSecondary):
			g.togglePower(i, ButtonSecondary)
		}
	}
}

func (g *Game) togglePower(idx int, b Button) {
	if !TogglePower(g.cfg, g.state.Ship, idx, b) {
		return
	}
	g.assertf(g.state.Slots[idx].Power < components.PowerLevel(g.cfg.Sim.MaxPower),
		"slot %d power %d out of range", idx, g.state.Slots[idx].Power)
}

// Layout of the buttons drawn over the game area.

func (g *Game) launchRect() components.Rect {
	return components.Rect{X: g.cfg.Derived.GameW32 - 70, Y: g.cfg.Derived.GameH32 - 22, W: 64, H: 16}
}

func (g *Game) continueRect() components.Rect {
	return components.Rect{X: g.cfg.Derived.GameW32/2 - 40, Y: g.cfg.Derived.GameH32 - 40, W: 80, H: 16}
}

func convertRect(slot components.Rect) components.Rect {
	return components.Rect{X: slot.X + slot.W - 12, Y: slot.Y + 2, W: 10, H: 10}
}
