package telemetry

import "github.com/pthm-cable/evac/systems"

// Outcome is how an encounter ended.
type Outcome string

const (
	OutcomeWon     Outcome = "won"
	OutcomeLost    Outcome = "lost"
	OutcomeAborted Outcome = "aborted"
)

// ShipSample is the end-of-encounter ship state the caller supplies to Flush.
type ShipSample struct {
	Cargo      int
	Deaths     int
	O2         float64
	LiveSlots  int
	TotalSlots int
	HullHP     []float64 // hp of every slot, destroyed included
}

// Collector accumulates simulation events over one encounter and produces
// EncounterStats.
type Collector struct {
	chapter   int
	startTime float64
	startDead int

	shots          int
	kills          int
	enemyShots     int
	misses         int
	absorbed       float64
	hullDamage     float64
	heatDamage     float64
	passengersLost int
	slotsLost      int
	overheats      int
	autocools      int
	autooffs       int
	repaired       float64
}

// NewCollector creates a collector for the first encounter.
func NewCollector() *Collector {
	return &Collector{}
}

// Begin resets the counters for a new encounter.
func (c *Collector) Begin(chapter int, simTime float64, deaths int) {
	*c = Collector{chapter: chapter, startTime: simTime, startDead: deaths}
}

// Record folds one simulation event into the counters.
func (c *Collector) Record(e systems.Event) {
	switch e.Type {
	case systems.EventWeaponFired:
		c.shots++
		c.kills++
	case systems.EventEnemyFired:
		c.enemyShots++
	case systems.EventEnemyMissed:
		c.misses++
	case systems.EventShieldAbsorbed:
		c.absorbed += e.Amount
	case systems.EventHullDamage:
		c.hullDamage += e.Amount
	case systems.EventOverheat:
		c.overheats++
		c.heatDamage += e.Amount
	case systems.EventPassengersLost:
		c.passengersLost += int(e.Amount)
	case systems.EventSlotDestroyed:
		c.slotsLost++
	case systems.EventAutoCool:
		c.autocools++
	case systems.EventAutoOff:
		c.autooffs++
	case systems.EventRepaired:
		c.repaired += e.Amount
	}
}

// Flush produces the stats for the finished encounter.
func (c *Collector) Flush(simTime float64, outcome Outcome, ship ShipSample) EncounterStats {
	var hitRate float64
	if c.enemyShots > 0 {
		hitRate = float64(c.enemyShots-c.misses) / float64(c.enemyShots)
	}
	minHP := 0.0
	first := true
	for _, hp := range ship.HullHP {
		if hp <= 0 {
			continue
		}
		if first || hp < minHP {
			minHP = hp
			first = false
		}
	}

	return EncounterStats{
		Chapter:        c.chapter,
		Outcome:        string(outcome),
		StartTime:      c.startTime,
		Duration:       simTime - c.startTime,
		Shots:          c.shots,
		Kills:          c.kills,
		EnemyShots:     c.enemyShots,
		EnemyMisses:    c.misses,
		EnemyHitRate:   hitRate,
		ShieldAbsorbed: c.absorbed,
		HullDamage:     c.hullDamage,
		HeatDamage:     c.heatDamage,
		PassengersLost: c.passengersLost,
		SlotsLost:      c.slotsLost,
		Overheats:      c.overheats,
		Autocools:      c.autocools,
		Autooffs:       c.autooffs,
		Repaired:       c.repaired,
		Cargo:          ship.Cargo,
		Deaths:         ship.Deaths,
		O2:             ship.O2,
		LiveSlots:      ship.LiveSlots,
		TotalSlots:     ship.TotalSlots,
		MinSlotHP:      minHP,
	}
}

// Chapter returns the chapter index of the encounter being collected.
func (c *Collector) Chapter() int {
	return c.chapter
}
