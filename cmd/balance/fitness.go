package main

import (
	"math"
	"sync"

	"github.com/pthm-cable/evac/config"
	"github.com/pthm-cable/evac/game"
	"github.com/pthm-cable/evac/telemetry"
)

// Fitness weights. Hitting the target win rate dominates; cargo and deaths
// separate configs with the same win rate.
const (
	weightWinRate = 10.0
	weightCargo   = 1.0
	weightDeaths  = 0.5
	weightFailed  = 100.0 // runs that hit the frame cap
)

// FitnessEvaluator plays autopilot campaigns and scores how close their
// outcome is to the target difficulty.
type FitnessEvaluator struct {
	params     *ParamVector
	seeds      []int64
	baseConfig *config.Config
	target     float64
	workers    int
	maxFrames  int

	mu          sync.Mutex
	bestFitness float64
	bestResults []game.RunResult
	last        Outcome
}

// Outcome aggregates one evaluation over all seeds.
type Outcome struct {
	WinRate float64
	Cargo   telemetry.Summary
	Deaths  telemetry.Summary
	Failed  int
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, seeds []int64, baseCfg *config.Config, target float64, workers, maxFrames int) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:      params,
		seeds:       seeds,
		baseConfig:  baseCfg,
		target:      target,
		workers:     workers,
		maxFrames:   maxFrames,
		bestFitness: math.Inf(1),
	}
}

// BestResults returns the runs from the best evaluation so far.
func (fe *FitnessEvaluator) BestResults() []game.RunResult {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.bestResults
}

// LastOutcome returns the outcome of the most recent evaluation.
func (fe *FitnessEvaluator) LastOutcome() Outcome {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.last
}

// Evaluate computes fitness for raw parameter values (lower = better).
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	cfg := fe.baseConfig.Clone()
	if err := fe.params.ApplyToConfig(cfg, x); err != nil {
		return math.Inf(1)
	}

	// All seeds share one config; runs only read it.
	specs := make([]game.RunSpec, len(fe.seeds))
	for i, seed := range fe.seeds {
		specs[i] = game.RunSpec{Config: cfg, Seed: seed, MaxFrames: fe.maxFrames}
	}
	results := game.RunBatch(specs, fe.workers)

	out := summarizeRuns(results)
	fitness := fe.computeFitness(out, cfg)

	fe.mu.Lock()
	if fitness < fe.bestFitness {
		fe.bestFitness = fitness
		fe.bestResults = results
	}
	fe.last = out
	fe.mu.Unlock()

	return fitness
}

// summarizeRuns folds per-seed results into an Outcome.
func summarizeRuns(results []game.RunResult) Outcome {
	var out Outcome
	cargo := make([]float64, 0, len(results))
	deaths := make([]float64, 0, len(results))
	wins := 0
	for _, r := range results {
		if r.Err != nil {
			out.Failed++
			continue
		}
		if r.Won {
			wins++
		}
		cargo = append(cargo, float64(r.Score.Cargo))
		deaths = append(deaths, float64(r.Score.Deaths))
	}
	if n := len(results) - out.Failed; n > 0 {
		out.WinRate = float64(wins) / float64(n)
	}
	out.Cargo = telemetry.Summarize(cargo)
	out.Deaths = telemetry.Summarize(deaths)
	return out
}

// computeFitness scores an outcome. Cargo and deaths are normalized by the
// number of passengers the campaign offers.
func (fe *FitnessEvaluator) computeFitness(out Outcome, cfg *config.Config) float64 {
	offered := float64(campaignPassengers(cfg))
	if offered == 0 {
		offered = 1
	}
	miss := out.WinRate - fe.target
	return weightWinRate*miss*miss -
		weightCargo*out.Cargo.Mean/offered +
		weightDeaths*out.Deaths.Mean/offered +
		weightFailed*float64(out.Failed)/float64(len(fe.seeds))
}

// campaignPassengers counts everyone the chapters put aboard.
func campaignPassengers(cfg *config.Config) int {
	n := 0
	for _, ch := range cfg.Chapters {
		n += ch.Passengers + ch.Pickup
	}
	return n
}
