package systems

import (
	"math"

	"github.com/pthm-cable/evac/components"
)

// ResolveEnemyFire lets every ready fighter take its shot.
//
// A shot first rolls against the ship's evade fraction. A hit drains active
// shields in shuffled order; whatever remains lands on one live slot picked
// by a second, independent draw. Passengers in a cargo bay absorb damage
// before its hull does. Returns true when a shot finds no live slot, which
// means the ship is lost.
func ResolveEnemyFire(env *Env, sh *Ship, wave *Wave, st ShipStats) bool {
	cfg := env.Cfg
	evade := st.Evade / 100
	rects := cfg.Derived.SlotRects

	for fi := 0; fi < wave.Len(); fi++ {
		_, f := wave.Fighter(fi)
		if !f.Alive() {
			continue
		}
		if f.Firing > 0 {
			f.Firing = math.Max(0, f.Firing-env.D)
		}
		f.FireCountdown -= env.D
		if f.Firing > 0 || f.FireCountdown > 0 {
			continue
		}

		env.Events.Add(Event{Type: EventEnemyFired, Slot: -1, Fighter: fi, Amount: wave.Damage})
		damage := wave.Damage
		f.Missed = false
		f.FireAtVert = false
		if env.Rng.Float64() < evade {
			damage = 0
			f.Missed = true
			f.FireAt = components.Vec2{X: cfg.Layout.ShipX, Y: cfg.Layout.ShipY}
			env.Events.Add(Event{Type: EventEnemyMissed, Slot: -1, Fighter: fi})
		}

		if damage > 0 {
			damage = drainShields(env, sh, fi, f, damage)
		}

		if damage > 0 {
			live := sh.LiveSlots()
			if len(live) == 0 {
				env.Events.Add(Event{Type: EventShipLost, Slot: -1, Fighter: fi})
				return true
			}
			ti := live[env.Rng.Intn(len(live))]
			f.FireAt = rects[ti].Center()
			f.FireAtVert = cfg.Derived.Panels[sh.Slots[ti].Type].Vert
			hitSlot(env, sh, ti, damage)
		}

		f.Firing = cfg.Sim.FireTicks
		f.FireCountdown = float64(cfg.Enemy.CooldownMin)
		if cfg.Enemy.CooldownJitter > 0 {
			f.FireCountdown += float64(env.Rng.Intn(cfg.Enemy.CooldownJitter))
		}
	}
	return false
}

// drainShields absorbs damage with active shields in random order and
// returns what is left.
func drainShields(env *Env, sh *Ship, fi int, f *components.Fighter, damage float64) float64 {
	var shields []int
	for i := range sh.Slots {
		s := &sh.Slots[i]
		if s.Alive() && s.Type == components.PanelShield && s.Shield > 0 {
			shields = append(shields, i)
		}
	}
	env.Rng.Shuffle(len(shields), func(i, j int) { shields[i], shields[j] = shields[j], shields[i] })

	aimed := false
	for _, si := range shields {
		if damage <= 0 {
			break
		}
		s := &sh.Slots[si]
		if !aimed {
			f.FireAt = env.Cfg.Derived.SlotRects[si].Center()
			aimed = true
		}
		absorbed := math.Min(damage, s.Shield)
		s.Shield -= absorbed
		damage -= absorbed
		env.Events.Add(Event{Type: EventShieldAbsorbed, Slot: si, Fighter: fi, Amount: absorbed})
	}
	return damage
}

// hitSlot applies leftover damage to one live slot.
func hitSlot(env *Env, sh *Ship, idx int, damage float64) {
	s := &sh.Slots[idx]
	ppd := env.Cfg.Sim.PeoplePerDamage
	if s.Cargo >= 1 && ppd > 0 {
		deaths := math.Min(s.Cargo, math.Ceil(damage*ppd))
		s.Cargo -= deaths
		sh.Deaths += int(deaths)
		damage = math.Max(0, damage-deaths/ppd)
		env.Events.Add(Event{Type: EventPassengersLost, Slot: idx, Fighter: -1, Amount: deaths, Cause: CauseEnemy})
	}
	if damage <= 0 {
		return
	}
	if damage >= s.HP {
		env.Events.Add(Event{Type: EventHullDamage, Slot: idx, Fighter: -1, Amount: s.HP, Cause: CauseEnemy})
		Destroy(env, sh, idx, CauseEnemy)
		return
	}
	s.HP -= damage
	env.Events.Add(Event{Type: EventHullDamage, Slot: idx, Fighter: -1, Amount: damage, Cause: CauseEnemy})
}
