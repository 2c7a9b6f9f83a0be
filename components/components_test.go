package components

import "testing"

func TestParseValueType(t *testing.T) {
	tests := []struct {
		name    string
		want    ValueType
		wantErr bool
	}{
		{"heat", ValueHeat, false},
		{"cargo", ValueCargo, false},
		{"", ValueNone, false},
		{"null", ValueNone, false},
		{"fuel", ValueNone, true},
	}
	for _, tt := range tests {
		got, err := ParseValueType(tt.name)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseValueType(%q) err = %v, wantErr %v", tt.name, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseValueType(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestEveryEnumNameParses(t *testing.T) {
	for v := ValueType(0); v < NumValueTypes; v++ {
		got, err := ParseValueType(v.String())
		if err != nil || got != v {
			t.Errorf("value %d: parse(%q) = %v, %v", v, v.String(), got, err)
		}
	}
	for p := PanelType(0); p < NumPanelTypes; p++ {
		got, err := ParsePanelType(p.String())
		if err != nil || got != p {
			t.Errorf("panel %d: parse(%q) = %v, %v", p, p.String(), got, err)
		}
	}
	if _, err := ParsePanelType("bridge"); err == nil {
		t.Error("expected an error for an unknown panel type")
	}
}

func TestSlotRefCoversEveryValue(t *testing.T) {
	var s Slot
	seen := make(map[*float64]ValueType)
	for v := ValueType(0); v < NumValueTypes; v++ {
		p := s.Ref(v)
		if p == nil {
			t.Fatalf("Ref(%v) = nil", v)
		}
		if prev, ok := seen[p]; ok {
			t.Errorf("%v and %v share a field", prev, v)
		}
		seen[p] = v
	}
	if s.Ref(ValueNone) != nil || s.Value(ValueNone) != 0 {
		t.Error("ValueNone should have no backing field")
	}
}

func TestNewSlotStartsTrackedValues(t *testing.T) {
	var panels [NumPanelTypes]PanelTypeDef
	panels[PanelCargo] = PanelTypeDef{Name: "cargo", Values: []ValueType{ValueHP, ValueNone, ValueCargo}}
	var values [NumValueTypes]ValueDef
	values[ValueHP] = ValueDef{Max: 10, Start: 10}
	values[ValueCargo] = ValueDef{Max: 20, Start: 4}
	values[ValueHeat] = ValueDef{Max: 10, Start: 3}

	s := NewSlot(2, PanelCargo, &panels, &values)
	if s.Idx != 2 || s.Type != PanelCargo {
		t.Errorf("slot = %+v", s)
	}
	if s.HP != 10 || s.Cargo != 4 {
		t.Errorf("hp=%v cargo=%v, want 10 and 4", s.HP, s.Cargo)
	}
	if s.Heat != 0 {
		t.Errorf("untracked heat = %v, want 0", s.Heat)
	}
	if !s.Alive() {
		t.Error("new slot should be alive")
	}
	s.HP = 0
	if s.Alive() {
		t.Error("slot with no hp should be destroyed")
	}
}

func TestRect(t *testing.T) {
	r := Rect{X: 10, Y: 20, W: 30, H: 40}
	tests := []struct {
		p    Vec2
		want bool
	}{
		{Vec2{10, 20}, true},
		{Vec2{39.9, 59.9}, true},
		{Vec2{40, 30}, false},
		{Vec2{9, 30}, false},
	}
	for _, tt := range tests {
		if got := r.Contains(tt.p); got != tt.want {
			t.Errorf("Contains(%v) = %v, want %v", tt.p, got, tt.want)
		}
	}
	if c := r.Center(); c != (Vec2{25, 40}) {
		t.Errorf("Center() = %v, want {25 40}", c)
	}
}
