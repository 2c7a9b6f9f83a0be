package telemetry

import (
	"log/slog"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// EncounterStats holds aggregated statistics for one encounter.
type EncounterStats struct {
	Chapter   int     `csv:"chapter"`
	Outcome   string  `csv:"outcome"`
	StartTime float64 `csv:"start_time"`
	Duration  float64 `csv:"duration"`

	// Player fire
	Shots int `csv:"shots"`
	Kills int `csv:"kills"`

	// Enemy fire
	EnemyShots     int     `csv:"enemy_shots"`
	EnemyMisses    int     `csv:"enemy_misses"`
	EnemyHitRate   float64 `csv:"enemy_hit_rate"`
	ShieldAbsorbed float64 `csv:"shield_absorbed"`
	HullDamage     float64 `csv:"hull_damage"`

	// Ship management
	HeatDamage float64 `csv:"heat_damage"`
	Overheats  int     `csv:"overheats"`
	Autocools  int     `csv:"autocools"`
	Autooffs   int     `csv:"autooffs"`
	Repaired   float64 `csv:"repaired"`

	// Losses
	PassengersLost int `csv:"passengers_lost"`
	SlotsLost      int `csv:"slots_lost"`

	// Ship state at the end
	Cargo      int     `csv:"cargo"`
	Deaths     int     `csv:"deaths"`
	O2         float64 `csv:"o2"`
	LiveSlots  int     `csv:"live_slots"`
	TotalSlots int     `csv:"total_slots"`
	MinSlotHP  float64 `csv:"min_slot_hp"`
}

// LogValue implements slog.LogValuer for structured logging.
func (s EncounterStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("chapter", s.Chapter),
		slog.String("outcome", s.Outcome),
		slog.Float64("duration", s.Duration),
		slog.Int("shots", s.Shots),
		slog.Int("kills", s.Kills),
		slog.Int("enemy_shots", s.EnemyShots),
		slog.Int("enemy_misses", s.EnemyMisses),
		slog.Float64("enemy_hit_rate", s.EnemyHitRate),
		slog.Float64("shield_absorbed", s.ShieldAbsorbed),
		slog.Float64("hull_damage", s.HullDamage),
		slog.Float64("heat_damage", s.HeatDamage),
		slog.Int("overheats", s.Overheats),
		slog.Int("autocools", s.Autocools),
		slog.Int("autooffs", s.Autooffs),
		slog.Float64("repaired", s.Repaired),
		slog.Int("passengers_lost", s.PassengersLost),
		slog.Int("slots_lost", s.SlotsLost),
		slog.Int("cargo", s.Cargo),
		slog.Int("deaths", s.Deaths),
		slog.Float64("o2", s.O2),
		slog.Int("live_slots", s.LiveSlots),
		slog.Float64("min_slot_hp", s.MinSlotHP),
	)
}

// LogStats logs the encounter stats using slog.
func (s EncounterStats) LogStats() {
	slog.Info("encounter", "stats", s)
}

// Summary describes a sample of values.
type Summary struct {
	N    int     `csv:"n"`
	Mean float64 `csv:"mean"`
	Std  float64 `csv:"std"`
	Min  float64 `csv:"min"`
	P10  float64 `csv:"p10"`
	P50  float64 `csv:"p50"`
	P90  float64 `csv:"p90"`
	Max  float64 `csv:"max"`
}

// Summarize computes mean, deviation and empirical quantiles.
// Returns the zero Summary for an empty sample.
func Summarize(values []float64) Summary {
	n := len(values)
	if n == 0 {
		return Summary{}
	}
	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	mean, std := stat.MeanStdDev(sorted, nil)
	if n < 2 || math.IsNaN(std) {
		std = 0
	}
	return Summary{
		N:    n,
		Mean: mean,
		Std:  std,
		Min:  sorted[0],
		P10:  stat.Quantile(0.10, stat.Empirical, sorted, nil),
		P50:  stat.Quantile(0.50, stat.Empirical, sorted, nil),
		P90:  stat.Quantile(0.90, stat.Empirical, sorted, nil),
		Max:  sorted[n-1],
	}
}

// LogValue implements slog.LogValuer for structured logging.
func (s Summary) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("n", s.N),
		slog.Float64("mean", s.Mean),
		slog.Float64("std", s.Std),
		slog.Float64("p10", s.P10),
		slog.Float64("p50", s.P50),
		slog.Float64("p90", s.P90),
	)
}
