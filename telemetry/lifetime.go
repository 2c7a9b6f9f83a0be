package telemetry

import "github.com/pthm-cable/evac/systems"

// LifetimeStats tracks one slot over a whole run.
type LifetimeStats struct {
	Slot      int
	Type      string
	Installed float64 // sim time the slot entered service

	PoweredTicks   float64
	OverdriveTicks float64

	Shots       int
	DamageTaken float64
	HeatDamage  float64
	Repaired    float64
	Absorbed    float64
	Overheats   int
	Autocools   int
	Autooffs    int

	DestroyedAt float64
	DestroyedBy string
}

// LifetimeTracker manages per-slot lifetime statistics.
type LifetimeTracker struct {
	stats map[int]*LifetimeStats
}

// NewLifetimeTracker creates a new lifetime tracker.
func NewLifetimeTracker() *LifetimeTracker {
	return &LifetimeTracker{
		stats: make(map[int]*LifetimeStats),
	}
}

// Register starts tracking a slot, replacing any earlier record for it.
func (lt *LifetimeTracker) Register(slot int, slotType string, simTime float64) {
	lt.stats[slot] = &LifetimeStats{Slot: slot, Type: slotType, Installed: simTime}
}

// Get returns the lifetime stats for a slot, or nil if not found.
func (lt *LifetimeTracker) Get(slot int) *LifetimeStats {
	return lt.stats[slot]
}

// RecordPower accumulates powered time. level is 0, 1 or 2.
func (lt *LifetimeTracker) RecordPower(slot int, level int, d float64) {
	s := lt.stats[slot]
	if s == nil || level == 0 {
		return
	}
	s.PoweredTicks += d
	if level >= 2 {
		s.OverdriveTicks += d
	}
}

// RecordEvent folds a simulation event into the slot it concerns.
func (lt *LifetimeTracker) RecordEvent(e systems.Event, simTime float64) {
	slot := e.Slot
	if e.Type == systems.EventRepaired {
		// The repairing bay is carried in Fighter.
		if bay := lt.stats[e.Fighter]; bay != nil {
			bay.Repaired += e.Amount
		}
		return
	}
	s := lt.stats[slot]
	if s == nil {
		return
	}
	switch e.Type {
	case systems.EventWeaponFired:
		s.Shots++
	case systems.EventHullDamage:
		s.DamageTaken += e.Amount
	case systems.EventOverheat:
		s.HeatDamage += e.Amount
		s.Overheats++
	case systems.EventShieldAbsorbed:
		s.Absorbed += e.Amount
	case systems.EventAutoCool:
		s.Autocools++
	case systems.EventAutoOff:
		s.Autooffs++
	case systems.EventSlotDestroyed:
		s.DestroyedAt = simTime
		s.DestroyedBy = e.Cause.String()
	}
}

// All returns all tracked stats (for snapshots).
func (lt *LifetimeTracker) All() map[int]*LifetimeStats {
	return lt.stats
}

// Count returns the number of tracked slots.
func (lt *LifetimeTracker) Count() int {
	return len(lt.stats)
}
