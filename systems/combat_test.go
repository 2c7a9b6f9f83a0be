package systems

import (
	"testing"

	"github.com/pthm-cable/evac/components"
)

func TestResolveEnemyFireShipLost(t *testing.T) {
	env := testEnv(t, 1)
	sh := shipOf(env.Cfg, components.PanelWeapon, components.PanelShield)
	for i := range sh.Slots {
		sh.Slots[i].HP = 0
	}
	wave := readyWave(env, 1, 5)

	if !ResolveEnemyFire(env, sh, wave, sh.Stats(env.Cfg)) {
		t.Fatal("a hit with no live slot must lose the ship")
	}
	if countEvents(env.Events, EventShipLost) != 1 {
		t.Error("expected a ship lost event")
	}
}

func TestResolveEnemyFireShieldAbsorbs(t *testing.T) {
	env := testEnv(t, 1)
	sh := shipOf(env.Cfg, components.PanelShield, components.PanelWeapon)
	sh.Slots[0].Shield = 40
	wave := readyWave(env, 1, 5)

	if ResolveEnemyFire(env, sh, wave, ShipStats{}) {
		t.Fatal("ship should survive")
	}
	if sh.Slots[0].Shield != 35 {
		t.Errorf("shield = %v, want 35", sh.Slots[0].Shield)
	}
	for i, s := range sh.Slots {
		if s.HP != 100 {
			t.Errorf("slot %d took hull damage through an intact shield", i)
		}
	}
	_, f := wave.Fighter(0)
	if f.FireAt != env.Cfg.Derived.SlotRects[0].Center() {
		t.Errorf("shot should be drawn at the shield, got %v", f.FireAt)
	}
}

func TestResolveEnemyFireLeftoverHitsSlot(t *testing.T) {
	env := testEnv(t, 1)
	sh := shipOf(env.Cfg, components.PanelShield, components.PanelWeapon)
	sh.Slots[0].Shield = 2
	wave := readyWave(env, 1, 5)

	ResolveEnemyFire(env, sh, wave, ShipStats{})

	if sh.Slots[0].Shield != 0 {
		t.Errorf("shield = %v, want drained", sh.Slots[0].Shield)
	}
	var lost float64
	for _, s := range sh.Slots {
		lost += 100 - s.HP
	}
	if lost != 3 {
		t.Errorf("hull lost %v, want leftover 3", lost)
	}
}

func TestResolveEnemyFireMiss(t *testing.T) {
	env := testEnv(t, 1)
	sh := shipOf(env.Cfg, components.PanelWeapon)
	wave := readyWave(env, 3, 50)

	ResolveEnemyFire(env, sh, wave, ShipStats{Evade: 100})

	if sh.Slots[0].HP != 100 {
		t.Errorf("hp = %v, every shot should miss", sh.Slots[0].HP)
	}
	if n := countEvents(env.Events, EventEnemyMissed); n != 3 {
		t.Errorf("misses = %d, want 3", n)
	}
	for i := 0; i < wave.Len(); i++ {
		if _, f := wave.Fighter(i); !f.Missed {
			t.Errorf("fighter %d not marked as missed", i)
		}
	}
}

func TestResolveEnemyFirePassengersAbsorb(t *testing.T) {
	env := testEnv(t, 1)
	sh := shipOf(env.Cfg, components.PanelCargo)
	sh.Slots[0].Cargo = 10
	wave := readyWave(env, 1, 5)

	ResolveEnemyFire(env, sh, wave, ShipStats{})

	s := sh.Slots[0]
	if s.Cargo != 7 || sh.Deaths != 3 {
		t.Errorf("cargo=%v deaths=%d, want 7/3", s.Cargo, sh.Deaths)
	}
	if s.HP != 100 {
		t.Errorf("hp = %v, passengers absorb the whole shot", s.HP)
	}
	_, f := wave.Fighter(0)
	if !f.FireAtVert {
		t.Error("cargo bays are vertical panels")
	}
}

func TestResolveEnemyFireDestroysSlot(t *testing.T) {
	env := testEnv(t, 1)
	sh := shipOf(env.Cfg, components.PanelWeapon, components.PanelWeapon)
	sh.Slots[0].HP = 3
	sh.Slots[1].HP = 3
	wave := readyWave(env, 1, 5)

	ResolveEnemyFire(env, sh, wave, ShipStats{})

	if n := len(sh.LiveSlots()); n != 1 {
		t.Fatalf("live slots = %d, want 1", n)
	}
	if countEvents(env.Events, EventSlotDestroyed) != 1 {
		t.Error("expected a destruction event")
	}
	for _, e := range env.Events.All() {
		if e.Type == EventHullDamage && e.Amount != 3 {
			t.Errorf("hull damage amount = %v, capped at the slot's hp", e.Amount)
		}
	}
}

func TestResolveEnemyFireCooldown(t *testing.T) {
	env := testEnv(t, 3)
	sh := shipOf(env.Cfg, components.PanelShield)
	sh.Slots[0].Shield = 100
	wave := readyWave(env, 4, 1)

	ResolveEnemyFire(env, sh, wave, ShipStats{})

	ec := env.Cfg.Enemy
	for i := 0; i < wave.Len(); i++ {
		_, f := wave.Fighter(i)
		if f.FireCountdown < float64(ec.CooldownMin) || f.FireCountdown >= float64(ec.CooldownMin+ec.CooldownJitter) {
			t.Errorf("fighter %d cooldown = %v out of range", i, f.FireCountdown)
		}
		if f.Firing != env.Cfg.Sim.FireTicks {
			t.Errorf("fighter %d firing = %v, want %v", i, f.Firing, env.Cfg.Sim.FireTicks)
		}
	}
}

func TestResolveEnemyFireWaitsForCountdown(t *testing.T) {
	env := testEnv(t, 1)
	sh := shipOf(env.Cfg, components.PanelWeapon)
	wave := readyWave(env, 2, 5)
	_, f0 := wave.Fighter(0)
	f0.FireCountdown = 5
	_, f1 := wave.Fighter(1)
	f1.HP = 0

	ResolveEnemyFire(env, sh, wave, ShipStats{})

	if n := countEvents(env.Events, EventEnemyFired); n != 0 {
		t.Errorf("%d shots fired, want none", n)
	}
	if f0.FireCountdown != 4 {
		t.Errorf("countdown = %v, want 4", f0.FireCountdown)
	}
}

func TestResolveEnemyFireWaitsForVisual(t *testing.T) {
	env := testEnv(t, 1)
	env.D = 0.1
	sh := shipOf(env.Cfg, components.PanelWeapon)
	wave := readyWave(env, 1, 5)
	_, f := wave.Fighter(0)
	f.Firing = 0.25

	ResolveEnemyFire(env, sh, wave, ShipStats{})
	if countEvents(env.Events, EventEnemyFired) != 0 {
		t.Error("fighter fired while its last shot was still drawn")
	}
}
