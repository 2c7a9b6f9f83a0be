package systems

import (
	"testing"

	"github.com/pthm-cable/evac/components"
)

func TestCalcShipStats(t *testing.T) {
	env := testEnv(t, 1)
	cfg := env.Cfg
	sh := shipOf(cfg, components.PanelWeapon, components.PanelEngine, components.PanelGen, components.PanelShield, components.PanelCargo)
	sh.Slots[0].Power = components.PowerOn
	sh.Slots[1].Power = components.PowerOverdrive
	sh.Slots[1].Evade = 10
	sh.Slots[2].Power = components.PowerOverdrive
	sh.Slots[2].Gen = 3
	sh.Slots[3].Shield = 40
	sh.Slots[4].Cargo = 7

	st := CalcShipStats(sh.Slots, &cfg.Derived.Panels, 2)

	if st.Power != 3 {
		t.Errorf("Power = %v, want 3 (generator excluded)", st.Power)
	}
	if st.Gen != 5 {
		t.Errorf("Gen = %v, want base 2 + 3", st.Gen)
	}
	if st.Evade != 10 || st.Shield != 40 || st.Cargo != 7 {
		t.Errorf("unexpected sums: %+v", st)
	}
}

func TestCalcShipStatsSkipsDestroyed(t *testing.T) {
	env := testEnv(t, 1)
	cfg := env.Cfg
	sh := shipOf(cfg, components.PanelShield, components.PanelShield)
	sh.Slots[0].Shield = 30
	sh.Slots[1].Shield = 50
	sh.Slots[1].HP = 0
	sh.Slots[1].Power = components.PowerOn

	st := CalcShipStats(sh.Slots, &cfg.Derived.Panels, 0)
	if st.Shield != 30 {
		t.Errorf("Shield = %v, want 30", st.Shield)
	}
	if st.Power != 0 {
		t.Errorf("Power = %v, destroyed slots must not draw", st.Power)
	}
}

func TestCalcShipStatsIdempotent(t *testing.T) {
	env := testEnv(t, 1)
	cfg := env.Cfg
	sh := NewShip(cfg)
	sh.Slots[0].Power = components.PowerOn
	before := append([]components.Slot(nil), sh.Slots...)

	a := sh.Stats(cfg)
	b := sh.Stats(cfg)
	if a != b {
		t.Errorf("repeated aggregation differs: %+v vs %+v", a, b)
	}
	for i := range before {
		if before[i] != sh.Slots[i] {
			t.Errorf("slot %d mutated by aggregation", i)
		}
	}
}
