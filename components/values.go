package components

import "fmt"

// ValueType identifies a tracked resource on a slot.
type ValueType uint8

const (
	ValueHeat ValueType = iota
	ValueHP
	ValueEvade
	ValueShield
	ValueCharge
	ValueGen
	ValueO2
	ValueCargo
	NumValueTypes

	// ValueNone marks an unused row in a panel layout.
	ValueNone ValueType = 0xff
)

var valueNames = [NumValueTypes]string{"heat", "hp", "evade", "shield", "charge", "gen", "o2", "cargo"}

func (v ValueType) String() string {
	if v < NumValueTypes {
		return valueNames[v]
	}
	if v == ValueNone {
		return "none"
	}
	return fmt.Sprintf("ValueType(%d)", uint8(v))
}

// ParseValueType maps a config name to a ValueType. An empty name is ValueNone.
func ParseValueType(name string) (ValueType, error) {
	if name == "" || name == "null" {
		return ValueNone, nil
	}
	for i, n := range valueNames {
		if n == name {
			return ValueType(i), nil
		}
	}
	return ValueNone, fmt.Errorf("unknown value type %q", name)
}

// ValueDef is the static descriptor of a resource type.
type ValueDef struct {
	Max     float64
	Start   float64
	Port    float64 // reset value applied when docked
	HasPort bool
	Label   string
}

// PanelType identifies an equipment category.
type PanelType uint8

const (
	PanelEngine PanelType = iota
	PanelShield
	PanelWeapon
	PanelGen
	PanelRepair
	PanelLife
	PanelCargo
	NumPanelTypes
)

var panelNames = [NumPanelTypes]string{"engine", "shield", "weapon", "gen", "repair", "life", "cargo"}

func (p PanelType) String() string {
	if p < NumPanelTypes {
		return panelNames[p]
	}
	return fmt.Sprintf("PanelType(%d)", uint8(p))
}

// ParsePanelType maps a config name to a PanelType.
func ParsePanelType(name string) (PanelType, error) {
	for i, n := range panelNames {
		if n == name {
			return PanelType(i), nil
		}
	}
	return 0, fmt.Errorf("unknown panel type %q", name)
}

// PanelTypeDef is the static descriptor of an equipment category.
type PanelTypeDef struct {
	Name    string
	Values  []ValueType // display rows, ValueNone for an empty row
	Vert    bool
	Powered bool
}

// Tracks reports whether the panel type carries the given value.
func (d *PanelTypeDef) Tracks(v ValueType) bool {
	for _, t := range d.Values {
		if t == v {
			return true
		}
	}
	return false
}

// PowerLevel is a slot's operating mode.
type PowerLevel uint8

const (
	PowerOff PowerLevel = iota
	PowerOn
	PowerOverdrive
)

func (p PowerLevel) String() string {
	switch p {
	case PowerOff:
		return "off"
	case PowerOn:
		return "on"
	case PowerOverdrive:
		return "overdrive"
	}
	return fmt.Sprintf("PowerLevel(%d)", uint8(p))
}
