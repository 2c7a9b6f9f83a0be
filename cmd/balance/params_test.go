package main

import (
	"math"
	"testing"

	"github.com/pthm-cable/evac/config"
	"github.com/pthm-cable/evac/game"
	"github.com/pthm-cable/evac/scores"
)

func TestDefaultsMatchConfig(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	pv := NewParamVector()
	before := cfg.Chapters[0].Wave.Damage
	if err := pv.ApplyToConfig(cfg, pv.DefaultVector()); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if cfg.Chapters[0].Wave.Damage != before {
		t.Errorf("default damage scale changed damage: %v -> %v", before, cfg.Chapters[0].Wave.Damage)
	}
	if cfg.Enemy.CooldownMin != 2 || cfg.Sim.BaseGen != 2 {
		t.Errorf("defaults drifted: cooldown_min=%d base_gen=%v", cfg.Enemy.CooldownMin, cfg.Sim.BaseGen)
	}
}

func TestNormalizeRoundtrip(t *testing.T) {
	pv := NewParamVector()
	raw := pv.DefaultVector()
	back := pv.Denormalize(pv.Normalize(raw))
	for i := range raw {
		if math.Abs(raw[i]-back[i]) > 1e-9 {
			t.Errorf("%s: %v -> %v", pv.Specs[i].Name, raw[i], back[i])
		}
	}
}

func TestApplyClampsOutOfRange(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	pv := NewParamVector()
	v := pv.DefaultVector()
	v[1] = -50 // cooldown_min
	v[4] = 100 // damage_scale
	base := cfg.Chapters[0].Wave.Damage
	if err := pv.ApplyToConfig(cfg, v); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if cfg.Enemy.CooldownMin != int(pv.Specs[1].Min) {
		t.Errorf("cooldown_min = %d, want %v", cfg.Enemy.CooldownMin, pv.Specs[1].Min)
	}
	if want := base * pv.Specs[4].Max; cfg.Chapters[0].Wave.Damage != want {
		t.Errorf("damage = %v, want %v", cfg.Chapters[0].Wave.Damage, want)
	}
}

func TestSummarizeRuns(t *testing.T) {
	results := []game.RunResult{
		{Won: true, Score: scores.Score{Cargo: 10, Deaths: 2}},
		{Won: false, Score: scores.Score{Cargo: 4, Deaths: 6}},
		{Err: errFake{}},
	}
	out := summarizeRuns(results)
	if out.Failed != 1 {
		t.Errorf("failed = %d, want 1", out.Failed)
	}
	if out.WinRate != 0.5 {
		t.Errorf("win rate = %v, want 0.5", out.WinRate)
	}
	if out.Cargo.Mean != 7 || out.Deaths.Mean != 4 {
		t.Errorf("means = %v/%v, want 7/4", out.Cargo.Mean, out.Deaths.Mean)
	}
}

func TestFitnessPrefersTargetWinRate(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	fe := NewFitnessEvaluator(NewParamVector(), []int64{1, 2}, cfg, 0.5, 1, 100)
	near := fe.computeFitness(Outcome{WinRate: 0.5}, cfg)
	far := fe.computeFitness(Outcome{WinRate: 1}, cfg)
	if near >= far {
		t.Errorf("fitness at target %v should beat %v", near, far)
	}
}

type errFake struct{}

func (errFake) Error() string { return "fake" }
