package main

import (
	"encoding/csv"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gonum.org/v1/gonum/optimize"

	"github.com/pthm-cable/evac/config"
	"github.com/pthm-cable/evac/telemetry"
)

// formatDuration formats a duration as HhMMmSSs or MmSSs.
func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second

	if h > 0 {
		return fmt.Sprintf("%dh%02dm%02ds", h, m, s)
	}
	return fmt.Sprintf("%dm%02ds", m, s)
}

// bestSummary is written next to best_config.yaml.
type bestSummary struct {
	Fitness float64            `json:"fitness"`
	Params  map[string]float64 `json:"params"`
	WinRate float64            `json:"win_rate"`
	Cargo   telemetry.Summary  `json:"cargo"`
	Deaths  telemetry.Summary  `json:"deaths"`
	Evals   int                `json:"evals"`
}

func main() {
	configPath := flag.String("config", "", "Base config YAML file (empty = use defaults)")
	seeds := flag.Int("seeds", 8, "Number of campaigns per evaluation")
	maxEvals := flag.Int("max-evals", 200, "Maximum number of evaluations")
	population := flag.Int("population", 0, "CMA-ES population size (0 = auto)")
	target := flag.Float64("target-win-rate", 0.5, "Share of autopilot campaigns that should be won")
	workers := flag.Int("workers", 0, "Parallel runs per evaluation (0 = GOMAXPROCS)")
	maxFrames := flag.Int("max-frames", 20000, "Abort a run after this many ticks")
	outputDir := flag.String("output", "", "Output directory for results")
	flag.Parse()

	if *outputDir == "" {
		log.Fatal("--output is required")
	}
	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		log.Fatalf("failed to create output directory: %v", err)
	}

	if err := config.Init(*configPath); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	baseCfg := config.Cfg()

	params := NewParamVector()

	evalSeeds := make([]int64, *seeds)
	for i := range evalSeeds {
		evalSeeds[i] = int64(i*1000 + 42)
	}

	evaluator := NewFitnessEvaluator(params, evalSeeds, baseCfg, *target, *workers, *maxFrames)

	dim := params.Dim()
	initX := params.Normalize(params.DefaultVector())

	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			return evaluator.Evaluate(params.Denormalize(x))
		},
	}

	// Runs already fan out over seeds.
	settings := &optimize.Settings{
		FuncEvaluations: *maxEvals,
		Concurrent:      0,
	}

	popSize := *population
	if popSize == 0 {
		popSize = 4 + int(3.0*float64(dim)/2.0)
	}

	method := &optimize.CmaEsChol{
		InitStepSize: 0.3,
		Population:   popSize,
	}

	logPath := filepath.Join(*outputDir, "balance_log.csv")
	logFile, err := os.Create(logPath)
	if err != nil {
		log.Fatalf("failed to create log file: %v", err)
	}
	defer logFile.Close()

	logWriter := csv.NewWriter(logFile)
	defer logWriter.Flush()

	header := []string{"eval", "fitness", "win_rate", "cargo_mean", "deaths_mean", "failed"}
	for _, spec := range params.Specs {
		header = append(header, spec.Name)
	}
	logWriter.Write(header)

	evalCount := 0
	bestFitness := 1e9
	var bestParams []float64
	var bestOutcome Outcome
	startTime := time.Now()

	originalFunc := problem.Func
	problem.Func = func(x []float64) float64 {
		fitness := originalFunc(x)
		evalCount++
		out := evaluator.LastOutcome()

		// Log clamped values, which are what the runs used
		clamped := params.Clamp(params.Denormalize(x))
		if fitness < bestFitness {
			bestFitness = fitness
			bestParams = clamped
			bestOutcome = out
		}

		row := []string{
			strconv.Itoa(evalCount),
			fmt.Sprintf("%.6f", fitness),
			fmt.Sprintf("%.3f", out.WinRate),
			fmt.Sprintf("%.2f", out.Cargo.Mean),
			fmt.Sprintf("%.2f", out.Deaths.Mean),
			strconv.Itoa(out.Failed),
		}
		for _, v := range clamped {
			row = append(row, fmt.Sprintf("%.6f", v))
		}
		logWriter.Write(row)
		logWriter.Flush()

		elapsed := time.Since(startTime)
		avgPerEval := elapsed / time.Duration(evalCount)
		remaining := time.Duration(*maxEvals-evalCount) * avgPerEval

		fmt.Printf("Eval %d/%d: win=%.2f cargo=%.1f deaths=%.1f (best=%.4f) | elapsed: %s, ETA: %s\n",
			evalCount, *maxEvals, out.WinRate, out.Cargo.Mean, out.Deaths.Mean, bestFitness,
			formatDuration(elapsed), formatDuration(remaining))

		return fitness
	}

	fmt.Printf("Starting CMA-ES balance search with %d parameters, population=%d, max_evals=%d\n",
		dim, popSize, *maxEvals)
	fmt.Printf("Campaigns per evaluation: %d, target win rate: %.2f\n", *seeds, *target)

	result, err := optimize.Minimize(problem, initX, settings, method)
	if err != nil {
		log.Printf("optimization ended: %v", err)
	}
	if bestParams == nil && result != nil {
		bestParams = params.Clamp(params.Denormalize(result.X))
	}
	if bestParams == nil {
		log.Fatal("no evaluation finished")
	}

	totalTime := time.Since(startTime)
	fmt.Printf("\nBalance search complete after %d evaluations in %s\n", evalCount, formatDuration(totalTime))
	fmt.Printf("Best fitness: %.4f (win rate %.2f)\n", bestFitness, bestOutcome.WinRate)

	summary := bestSummary{
		Fitness: bestFitness,
		Params:  make(map[string]float64, dim),
		WinRate: bestOutcome.WinRate,
		Cargo:   bestOutcome.Cargo,
		Deaths:  bestOutcome.Deaths,
		Evals:   evalCount,
	}
	fmt.Println("\nBest parameters:")
	for i, spec := range params.Specs {
		fmt.Printf("  %s: %.6f\n", spec.Name, bestParams[i])
		summary.Params[spec.Name] = bestParams[i]
	}

	bestCfg := baseCfg.Clone()
	if err := params.ApplyToConfig(bestCfg, bestParams); err != nil {
		log.Fatalf("best parameters do not form a valid config: %v", err)
	}
	configOutPath := filepath.Join(*outputDir, "best_config.yaml")
	if err := bestCfg.WriteYAML(configOutPath); err != nil {
		log.Printf("failed to write best config: %v", err)
	} else {
		fmt.Printf("\nBest config saved to: %s\n", configOutPath)
	}

	summaryPath := filepath.Join(*outputDir, "best.json")
	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		log.Printf("failed to marshal summary: %v", err)
	} else if err := os.WriteFile(summaryPath, data, 0644); err != nil {
		log.Printf("failed to write summary: %v", err)
	} else {
		fmt.Printf("Summary saved to: %s\n", summaryPath)
	}

	// Per-encounter stats of the best evaluation, for a closer look.
	if err := writeEncounters(filepath.Join(*outputDir, "best_runs"), evaluator); err != nil {
		log.Printf("failed to write best runs: %v", err)
	}
}

// writeEncounters dumps every encounter of the best evaluation's runs.
func writeEncounters(dir string, fe *FitnessEvaluator) error {
	runs := fe.BestResults()
	if len(runs) == 0 {
		return nil
	}
	om, err := telemetry.NewOutputManager(dir)
	if err != nil {
		return err
	}
	defer om.Close()
	for _, r := range runs {
		for _, e := range r.Encounters {
			if err := om.WriteEncounter(e); err != nil {
				return err
			}
		}
	}
	return nil
}
