package systems

import "github.com/pthm-cable/evac/components"

// ShipStats are ship-wide totals derived from the live slots.
type ShipStats struct {
	Power  float64 // draw of powered non-generator slots
	Gen    float64 // base generation plus generator output
	Evade  float64
	Shield float64
	Charge float64
	O2     float64 // life support production
	Cargo  float64 // passengers aboard
}

// CalcShipStats sums the contribution of every live slot.
// It does not mutate its input and costs one pass over the slots.
func CalcShipStats(slots []components.Slot, panels *[components.NumPanelTypes]components.PanelTypeDef, baseGen float64) ShipStats {
	st := ShipStats{Gen: baseGen}
	for i := range slots {
		s := &slots[i]
		if !s.Alive() {
			continue
		}
		for _, v := range panels[s.Type].Values {
			switch v {
			case components.ValueGen:
				st.Gen += s.Gen
			case components.ValueEvade:
				st.Evade += s.Evade
			case components.ValueShield:
				st.Shield += s.Shield
			case components.ValueCharge:
				st.Charge += s.Charge
			case components.ValueO2:
				st.O2 += s.O2
			case components.ValueCargo:
				st.Cargo += s.Cargo
			}
		}
		if s.Type != components.PanelGen && s.Power > 0 {
			st.Power += float64(s.Power)
		}
	}
	return st
}
