package systems

// UpdateOxygen drains the ship reservoir and refills it from life support.
//
// The reservoir may sit below zero for a tick. Only once it drops past one
// full tick of consumption does a passenger die, and at most one per call
// however large the deficit.
func UpdateOxygen(env *Env, sh *Ship, st ShipStats) {
	cfg := env.Cfg
	cons := cfg.Sim.O2Consumption

	sh.O2 -= env.D * cons
	sh.O2 += st.O2 * env.D * cfg.Sim.O2ProdFactor
	if sh.O2 > cfg.Sim.O2Max {
		sh.O2 = cfg.Sim.O2Max
	}
	if sh.O2 >= -cons {
		return
	}

	sh.O2 = 0
	var carriers []int
	for i := range sh.Slots {
		if sh.Slots[i].Cargo >= 1 {
			carriers = append(carriers, i)
		}
	}
	if len(carriers) == 0 {
		return
	}
	ci := carriers[env.Rng.Intn(len(carriers))]
	sh.Slots[ci].Cargo--
	sh.Deaths++
	env.Events.Add(Event{Type: EventPassengersLost, Slot: ci, Fighter: -1, Amount: 1, Cause: CauseOxygen})
}
