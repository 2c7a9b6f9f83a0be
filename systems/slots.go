package systems

import (
	"math"

	"github.com/pthm-cable/evac/components"
)

// UpdateSlots advances heat and type effects for every live slot.
func UpdateSlots(env *Env, sh *Ship, wave *Wave) {
	for i := range sh.Slots {
		if !sh.Slots[i].Alive() {
			continue
		}
		if !updateHeat(env, sh, i) {
			continue
		}
		updateEffects(env, sh, i, wave)
	}
}

// updateHeat applies heating, overheat damage and autocool to one slot.
// Returns false if the slot was destroyed.
func updateHeat(env *Env, sh *Ship, idx int) bool {
	cfg := env.Cfg
	s := &sh.Slots[idx]
	if !cfg.Derived.Panels[s.Type].Tracks(components.ValueHeat) {
		return true
	}
	heatMax := cfg.Derived.Values[components.ValueHeat].Max

	prev := s.Heat
	s.Heat += env.D * cfg.Sim.HeatDelta[cfg.PowerIndex(s.Power)] * sh.HeatScale
	if s.Heat < 0 {
		s.Heat = 0
	}
	warn := heatMax * cfg.Sim.HeatHelpFraction
	if prev < warn && s.Heat >= warn {
		env.Events.Add(Event{Type: EventHeatWarning, Slot: idx, Fighter: -1, Amount: s.Heat})
	}

	if s.Heat > heatMax {
		s.Heat = heatMax
		lost := math.Min(-cfg.Sim.OverheatDamage*env.D, s.HP)
		s.HP -= lost
		s.DamagedAt = env.Now
		env.Events.Add(Event{Type: EventOverheat, Slot: idx, Fighter: -1, Amount: lost, Cause: CauseHeat})
		if s.HP <= 0 {
			Destroy(env, sh, idx, CauseHeat)
			return false
		}
		s.HeatDamage += env.D
		if s.HeatDamage > cfg.Sim.AutocoolTicks && !s.AutoCool {
			s.Power = components.PowerOff
			s.AutoCool = true
			sh.Priority.Remove(idx)
			env.Events.Add(Event{Type: EventAutoCool, Slot: idx, Fighter: -1, Amount: s.Heat})
		}
		return true
	}

	s.HeatDamage = 0
	if s.AutoCool && s.Heat < heatMax/2 {
		s.AutoCool = false
	}
	return true
}

func updateEffects(env *Env, sh *Ship, idx int, wave *Wave) {
	cfg := env.Cfg
	s := &sh.Slots[idx]
	p := cfg.PowerIndex(s.Power)
	vals := &cfg.Derived.Values

	switch s.Type {
	case components.PanelShield:
		s.Shield = clamp(s.Shield+cfg.Sim.ShieldDelta[p]*env.D, 0, vals[components.ValueShield].Max)
	case components.PanelEngine:
		s.Evade = clamp(s.Evade+cfg.Sim.EvadeDelta[p]*env.D*sh.EngineFactor, 0, vals[components.ValueEvade].Max)
	case components.PanelLife:
		s.O2 = clamp(s.O2+cfg.Sim.O2ProdDelta[p]*env.D, 0, vals[components.ValueO2].Max)
	case components.PanelGen:
		s.Gen = clamp(s.Gen+cfg.Sim.GenDelta[p]*env.D, 0, vals[components.ValueGen].Max)
	case components.PanelRepair:
		repair(env, sh, idx)
	case components.PanelWeapon:
		if s.Firing > 0 {
			s.Firing = math.Max(0, s.Firing-env.D)
		}
		chargeMax := vals[components.ValueCharge].Max
		if s.Charge >= chargeMax {
			fireWeapon(env, s, idx, wave)
		} else {
			s.Charge = clamp(s.Charge+cfg.Sim.ChargeDelta[p]*env.D, 0, chargeMax)
		}
	}
}

// repair spends the bay's own integrity to heal a random damaged slot.
// The bay never spends its last point of hp.
func repair(env *Env, sh *Ship, idx int) {
	cfg := env.Cfg
	s := &sh.Slots[idx]
	if s.Power == components.PowerOff {
		return
	}
	hpMax := cfg.Derived.Values[components.ValueHP].Max
	var targets []int
	for i := range sh.Slots {
		t := &sh.Slots[i]
		if i == idx || !t.Alive() || t.Type == components.PanelRepair || t.HP >= hpMax {
			continue
		}
		targets = append(targets, i)
	}
	if len(targets) == 0 {
		return
	}
	ti := targets[env.Rng.Intn(len(targets))]
	t := &sh.Slots[ti]

	spend := cfg.Sim.RepairSpend[cfg.PowerIndex(s.Power)] * env.D
	spend = math.Min(spend, s.HP-1)
	spend = math.Min(spend, (hpMax-t.HP)/cfg.Sim.RepairFactor)
	if spend <= 0 {
		return
	}
	s.HP -= spend
	t.HP = math.Min(hpMax, t.HP+spend*cfg.Sim.RepairFactor)
	env.Events.Add(Event{Type: EventRepaired, Slot: ti, Fighter: idx, Amount: spend * cfg.Sim.RepairFactor})
}

// fireWeapon kills a random living fighter. With nothing to shoot the
// charge is kept.
func fireWeapon(env *Env, s *components.Slot, idx int, wave *Wave) {
	if wave == nil {
		return
	}
	living := wave.Living()
	if len(living) == 0 {
		return
	}
	fi := living[env.Rng.Intn(len(living))]
	pos, f := wave.Fighter(fi)
	f.HP = 0
	s.FireAt = components.Vec2{X: pos.X, Y: pos.Y}
	s.Charge = 0
	s.Firing = env.Cfg.Sim.FireTicks
	env.Events.Add(Event{Type: EventWeaponFired, Slot: idx, Fighter: fi})
}

// AdvanceFireVisuals counts down shot visuals on both sides without
// running any combat.
func AdvanceFireVisuals(env *Env, sh *Ship, wave *Wave) {
	for i := range sh.Slots {
		s := &sh.Slots[i]
		if s.Firing > 0 {
			s.Firing = math.Max(0, s.Firing-env.D)
		}
	}
	if wave != nil {
		wave.EachFighter(func(_ int, _ *components.Position, f *components.Fighter) {
			if f.Firing > 0 {
				f.Firing = math.Max(0, f.Firing-env.D)
			}
		})
	}
}
