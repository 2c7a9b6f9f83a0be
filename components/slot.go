package components

// Slot is one installed equipment unit occupying a fixed layout position.
//
// Resource fields are only meaningful when the slot's PanelTypeDef tracks
// them; untracked fields stay at zero. A slot with HP == 0 is destroyed: it
// holds no power and is skipped by every regeneration, targeting and repair
// pass.
type Slot struct {
	Type  PanelType
	Power PowerLevel
	Idx   int

	HP     float64
	Heat   float64
	Shield float64
	Evade  float64
	Charge float64
	Gen    float64
	O2     float64
	Cargo  float64

	HeatDamage   float64 // ticks spent continuously overheated
	AutoOff      bool
	AutoOffPower PowerLevel
	AutoCool     bool
	Converted    bool

	DamagedAt float64 // sim time of the last overheat hit
	FireAt    Vec2
	Firing    float64 // remaining shot-visual ticks
}

// Alive reports whether the slot is intact.
func (s *Slot) Alive() bool {
	return s.HP > 0
}

// Ref returns a pointer to the field backing the given value type.
func (s *Slot) Ref(v ValueType) *float64 {
	switch v {
	case ValueHeat:
		return &s.Heat
	case ValueHP:
		return &s.HP
	case ValueEvade:
		return &s.Evade
	case ValueShield:
		return &s.Shield
	case ValueCharge:
		return &s.Charge
	case ValueGen:
		return &s.Gen
	case ValueO2:
		return &s.O2
	case ValueCargo:
		return &s.Cargo
	}
	return nil
}

// Value returns the current amount of v, or 0 for ValueNone.
func (s *Slot) Value(v ValueType) float64 {
	if p := s.Ref(v); p != nil {
		return *p
	}
	return 0
}

// NewSlot builds a slot of the given type with every tracked value at its start.
func NewSlot(idx int, t PanelType, panels *[NumPanelTypes]PanelTypeDef, values *[NumValueTypes]ValueDef) Slot {
	s := Slot{Type: t, Idx: idx}
	for _, v := range panels[t].Values {
		if p := s.Ref(v); p != nil {
			*p = values[v].Start
		}
	}
	return s
}
