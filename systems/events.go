package systems

// EventType identifies something the simulation did during a tick.
type EventType uint8

const (
	EventWeaponFired EventType = iota
	EventEnemyFired
	EventEnemyMissed
	EventShieldAbsorbed
	EventHullDamage
	EventPassengersLost
	EventSlotDestroyed
	EventOverheat
	EventAutoCool
	EventRepaired
	EventAutoOff
	EventAutoRestore
	EventHeatWarning
	EventWaveWon
	EventShipLost
)

var eventNames = [...]string{
	EventWeaponFired:    "weapon_fired",
	EventEnemyFired:     "enemy_fired",
	EventEnemyMissed:    "enemy_missed",
	EventShieldAbsorbed: "shield_absorbed",
	EventHullDamage:     "hull_damage",
	EventPassengersLost: "passengers_lost",
	EventSlotDestroyed:  "slot_destroyed",
	EventOverheat:       "overheat",
	EventAutoCool:       "autocool",
	EventRepaired:       "repaired",
	EventAutoOff:        "autooff",
	EventAutoRestore:    "autorestore",
	EventHeatWarning:    "heat_warning",
	EventWaveWon:        "wave_won",
	EventShipLost:       "ship_lost",
}

func (t EventType) String() string {
	if int(t) < len(eventNames) {
		return eventNames[t]
	}
	return "unknown"
}

// Cause says what inflicted damage.
type Cause uint8

const (
	CauseNone Cause = iota
	CauseHeat
	CauseEnemy
	CauseOxygen
)

func (c Cause) String() string {
	switch c {
	case CauseHeat:
		return "HEAT"
	case CauseEnemy:
		return "ENEMY"
	case CauseOxygen:
		return "OXYGEN"
	}
	return ""
}

// Event is one simulation occurrence. Slot and Fighter are -1 when unused.
type Event struct {
	Type    EventType
	Slot    int
	Fighter int
	Amount  float64
	Cause   Cause
}

// Events collects the events of a tick. A nil *Events discards everything.
type Events struct {
	list []Event
}

// Add records an event.
func (e *Events) Add(ev Event) {
	if e == nil {
		return
	}
	e.list = append(e.list, ev)
}

// All returns the recorded events in emission order.
func (e *Events) All() []Event {
	if e == nil {
		return nil
	}
	return e.list
}

// Reset drops recorded events, keeping the backing array.
func (e *Events) Reset() {
	if e == nil {
		return
	}
	e.list = e.list[:0]
}
