package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/evac/components"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestDefaultsLoad(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load defaults: %v", err)
	}
	if cfg.Derived.Tick != time.Second {
		t.Errorf("tick = %v, want 1s", cfg.Derived.Tick)
	}
	if cfg.Sim.MaxPower != 3 {
		t.Errorf("max_power = %d, want 3", cfg.Sim.MaxPower)
	}
	if len(cfg.Derived.SlotTypes) != 9 {
		t.Errorf("slots = %d, want 9", len(cfg.Derived.SlotTypes))
	}
	if cfg.Derived.FinalChapter != len(cfg.Chapters)-1 {
		t.Errorf("final chapter = %d, want %d", cfg.Derived.FinalChapter, len(cfg.Chapters)-1)
	}
	if got := cfg.Derived.Values[components.ValueCargo].Max; got != 20 {
		t.Errorf("cargo max = %v, want 20", got)
	}
}

func TestPorts(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load defaults: %v", err)
	}
	tests := []struct {
		value   components.ValueType
		hasPort bool
		port    float64
	}{
		{components.ValueHeat, true, 0},
		{components.ValueGen, true, 2},
		{components.ValueO2, true, 5},
		{components.ValueHP, false, 0},
		{components.ValueCargo, false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.value.String(), func(t *testing.T) {
			def := cfg.Derived.Values[tt.value]
			if def.HasPort != tt.hasPort || def.Port != tt.port {
				t.Errorf("port = (%v, %v), want (%v, %v)", def.HasPort, def.Port, tt.hasPort, tt.port)
			}
		})
	}
}

func TestPanelRows(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load defaults: %v", err)
	}
	repair := cfg.Derived.Panels[components.PanelRepair]
	if len(repair.Values) != 3 || repair.Values[1] != components.ValueNone {
		t.Errorf("repair rows = %v, want an empty middle row", repair.Values)
	}
	cargo := cfg.Derived.Panels[components.PanelCargo]
	if len(cargo.Values) != 3 || cargo.Values[0] != components.ValueNone || cargo.Values[1] != components.ValueCargo {
		t.Errorf("cargo rows = %v, want an empty first row", cargo.Values)
	}
	if cargo.Powered || !cargo.Vert {
		t.Errorf("cargo bay powered=%v vert=%v", cargo.Powered, cargo.Vert)
	}
	if !cfg.Derived.Panels[components.PanelWeapon].Tracks(components.ValueCharge) {
		t.Error("weapon should track charge")
	}
}

func TestFileOverridesDefaults(t *testing.T) {
	path := writeConfig(t, "sim:\n  tick_ms: 250\nenemy:\n  hp: 3\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Derived.Tick != 250*time.Millisecond {
		t.Errorf("tick = %v, want 250ms", cfg.Derived.Tick)
	}
	if cfg.Enemy.HP != 3 {
		t.Errorf("enemy hp = %d, want 3", cfg.Enemy.HP)
	}
	// Untouched fields keep their defaults.
	if cfg.Sim.MaxPower != 3 {
		t.Errorf("max_power = %d, want 3", cfg.Sim.MaxPower)
	}
}

func TestValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"zero tick", "sim:\n  tick_ms: 0\n", "tick_ms"},
		{"max power", "sim:\n  max_power: 4\n", "max_power"},
		{"unknown value", "values:\n  fuel: { max: 1 }\n", "unknown value type"},
		{"unknown slot", "layout:\n  slots:\n    - { pos: [0, 0], start: bridge }\n", "layout.slots[0]"},
		{"no chapters", "chapters: []\n", "chapters"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestChapterModifierDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load defaults: %v", err)
	}
	for i, ch := range cfg.Chapters {
		if ch.EngineFactor == 0 || ch.HeatScale == 0 || ch.Wave.Scale == 0 {
			t.Errorf("chapter %d has an unset modifier: %+v", i, ch)
		}
	}
}

func TestCloneIsDeep(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load defaults: %v", err)
	}
	c := cfg.Clone()
	c.Chapters[0].Wave.Damage = 999
	c.Layout.Slots[0].Start = "cargo"
	if err := c.Recompute(); err != nil {
		t.Fatalf("recompute: %v", err)
	}

	if cfg.Chapters[0].Wave.Damage == 999 {
		t.Error("clone shares chapters with the original")
	}
	if cfg.Derived.SlotTypes[0] != components.PanelWeapon {
		t.Errorf("original slot 0 = %v, want weapon", cfg.Derived.SlotTypes[0])
	}
	if c.Derived.SlotTypes[0] != components.PanelCargo {
		t.Errorf("clone slot 0 = %v, want cargo", c.Derived.SlotTypes[0])
	}
	if !c.Derived.Values[components.ValueO2].HasPort {
		t.Error("clone lost the o2 port")
	}
}

func TestWriteYAMLRoundtrip(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load defaults: %v", err)
	}
	cfg.Enemy.CooldownMin = 5
	path := filepath.Join(t.TempDir(), "out.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("write: %v", err)
	}
	back, err := Load(path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if back.Enemy.CooldownMin != 5 {
		t.Errorf("cooldown_min = %d, want 5", back.Enemy.CooldownMin)
	}
	if back.Derived.Panels[components.PanelRepair].Values[1] != components.ValueNone {
		t.Error("empty panel row did not survive the roundtrip")
	}
}

func TestPowerIndexClamps(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load defaults: %v", err)
	}
	if got := cfg.PowerIndex(components.PowerOverdrive); got != 2 {
		t.Errorf("overdrive index = %d, want 2", got)
	}
	if got := cfg.PowerIndex(components.PowerLevel(7)); got != 2 {
		t.Errorf("out of range index = %d, want 2", got)
	}
}

func TestNullPanelRowsDecode(t *testing.T) {
	var pc PanelConfig
	if err := yaml.Unmarshal([]byte("values: [heat, null, hp]"), &pc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(pc.Values) != 3 || pc.Values[1] != nil {
		t.Fatalf("values = %v, want a nil middle row", pc.Values)
	}

	out, err := yaml.Marshal(pc)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var back PanelConfig
	if err := yaml.Unmarshal(out, &back); err != nil {
		t.Fatalf("unmarshal again: %v", err)
	}
	if len(back.Values) != 3 || back.Values[1] != nil || *back.Values[2] != "hp" {
		t.Errorf("after roundtrip values = %v", back.Values)
	}
}

func TestPanelRowsSurviveClone(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load defaults: %v", err)
	}
	c := cfg.Clone()
	for pt := components.PanelType(0); pt < components.NumPanelTypes; pt++ {
		want, got := cfg.Derived.Panels[pt].Values, c.Derived.Panels[pt].Values
		if len(got) != len(want) {
			t.Errorf("%v rows = %v, want %v", pt, got, want)
			continue
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("%v row %d = %v, want %v", pt, i, got[i], want[i])
			}
		}
	}
}
