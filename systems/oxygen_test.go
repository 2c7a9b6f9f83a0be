package systems

import (
	"testing"

	"github.com/pthm-cable/evac/components"
)

// Nobody dies until o2 drops below minus one tick of consumption.
func TestUpdateOxygenDeathNeedsFullDeficit(t *testing.T) {
	env := testEnv(t, 1)
	sh := shipOf(env.Cfg, components.PanelCargo)
	sh.Slots[0].Cargo = 5
	sh.O2 = 1

	UpdateOxygen(env, sh, ShipStats{})
	if sh.O2 != -1 || sh.Deaths != 0 {
		t.Fatalf("first tick o2=%v deaths=%d, want -1/0", sh.O2, sh.Deaths)
	}

	UpdateOxygen(env, sh, ShipStats{})
	if sh.O2 != 0 || sh.Deaths != 1 {
		t.Fatalf("second tick o2=%v deaths=%d, want 0/1", sh.O2, sh.Deaths)
	}
	if sh.Slots[0].Cargo != 4 {
		t.Errorf("cargo = %v, want 4", sh.Slots[0].Cargo)
	}
}

func TestUpdateOxygenOneDeathPerCall(t *testing.T) {
	env := testEnv(t, 1)
	env.D = 10
	sh := shipOf(env.Cfg, components.PanelCargo, components.PanelCargo)
	sh.Slots[0].Cargo = 5
	sh.Slots[1].Cargo = 5
	sh.O2 = 0

	UpdateOxygen(env, sh, ShipStats{})
	if sh.Deaths != 1 {
		t.Errorf("deaths = %d, want exactly 1", sh.Deaths)
	}
	if sh.Cargo() != 9 {
		t.Errorf("cargo = %d, want 9", sh.Cargo())
	}
}

func TestUpdateOxygenEmptyShip(t *testing.T) {
	env := testEnv(t, 1)
	sh := shipOf(env.Cfg, components.PanelCargo)
	sh.O2 = -5

	UpdateOxygen(env, sh, ShipStats{})
	if sh.Deaths != 0 || sh.O2 != 0 {
		t.Errorf("o2=%v deaths=%d, want 0/0", sh.O2, sh.Deaths)
	}
}

func TestUpdateOxygenProductionCapped(t *testing.T) {
	tests := []struct {
		name string
		o2   float64
		prod float64
		want float64
	}{
		{"net gain", 50, 10, 53},
		{"net loss", 50, 2, 49},
		{"capped", 99, 10, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := testEnv(t, 1)
			sh := shipOf(env.Cfg)
			sh.O2 = tt.o2
			UpdateOxygen(env, sh, ShipStats{O2: tt.prod})
			if sh.O2 != tt.want {
				t.Errorf("o2 = %v, want %v", sh.O2, tt.want)
			}
		})
	}
}

func TestDestroyedBayKeepsPassengers(t *testing.T) {
	env := testEnv(t, 1)
	sh := shipOf(env.Cfg, components.PanelCargo)
	sh.Slots[0].Cargo = 3

	Destroy(env, sh, 0, CauseEnemy)
	if sh.Slots[0].Cargo != 3 || sh.Deaths != 0 {
		t.Fatalf("after destroy cargo=%v deaths=%d, want 3/0", sh.Slots[0].Cargo, sh.Deaths)
	}
	if n := countEvents(env.Events, EventPassengersLost); n != 0 {
		t.Errorf("passengers_lost events = %d, want 0", n)
	}
	if sh.Cargo() != 3 {
		t.Errorf("ship cargo = %d, want 3", sh.Cargo())
	}

	// The wreck still needs air.
	sh.O2 = -2 * env.Cfg.Sim.O2Consumption
	UpdateOxygen(env, sh, ShipStats{})
	if sh.Slots[0].Cargo != 2 || sh.Deaths != 1 {
		t.Errorf("after suffocation cargo=%v deaths=%d, want 2/1", sh.Slots[0].Cargo, sh.Deaths)
	}
}
