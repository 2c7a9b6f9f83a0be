// Package main tunes wave difficulty with CMA-ES so the autopilot wins a
// target share of campaigns.
package main

import (
	"math"

	"github.com/pthm-cable/evac/config"
)

// ParamSpec defines a single optimizable parameter.
type ParamSpec struct {
	Name    string  // Human-readable name
	Path    string  // Config path for logging
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value
}

// ParamVector holds the set of all optimizable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard set of optimizable parameters.
// Defaults mirror defaults.yaml.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			// Enemy fighters
			{Name: "enemy_speed", Path: "enemy.speed", Min: 0.01, Max: 0.12, Default: 0.04},
			{Name: "cooldown_min", Path: "enemy.cooldown_min", Min: 1, Max: 6, Default: 2},
			{Name: "cooldown_jitter", Path: "enemy.cooldown_jitter", Min: 1, Max: 6, Default: 2},
			{Name: "initial_countdown", Path: "enemy.initial_countdown", Min: 1, Max: 6, Default: 2},
			// Scales every chapter's wave.damage
			{Name: "damage_scale", Path: "chapters[].wave.damage", Min: 0.5, Max: 2.0, Default: 1.0},
			// Ship
			{Name: "base_gen", Path: "sim.base_gen", Min: 1, Max: 3, Default: 2},
			{Name: "overheat_damage", Path: "sim.overheat_damage", Min: -15, Max: -1, Default: -5},
			{Name: "repair_factor", Path: "sim.repair_factor", Min: 1, Max: 6, Default: 3},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// DefaultVector returns the default parameter values as a slice.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return v
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	out := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		out[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return out
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	out := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		out[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return out
}

// Clamp ensures all values are within bounds.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	out := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		out[i] = math.Min(math.Max(v[i], spec.Min), spec.Max)
	}
	return out
}

// ApplyToConfig writes parameter values into cfg and refreshes its
// derived values. damage_scale multiplies the chapter damages already in
// cfg, so apply it to a fresh clone of the base config.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) error {
	c := pv.Clamp(values)

	// Order must match Specs order
	cfg.Enemy.Speed = float32(c[0])
	cfg.Enemy.CooldownMin = int(math.Round(c[1]))
	cfg.Enemy.CooldownJitter = int(math.Round(c[2]))
	cfg.Enemy.InitialCountdown = int(math.Round(c[3]))
	for ch := range cfg.Chapters {
		cfg.Chapters[ch].Wave.Damage *= c[4]
	}
	cfg.Sim.BaseGen = c[5]
	cfg.Sim.OverheatDamage = c[6]
	cfg.Sim.RepairFactor = c[7]

	return cfg.Recompute()
}
