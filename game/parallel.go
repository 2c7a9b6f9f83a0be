package game

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/pthm-cable/evac/config"
	"github.com/pthm-cable/evac/scores"
	"github.com/pthm-cable/evac/telemetry"
)

// RunSpec describes one headless autopilot run.
type RunSpec struct {
	Config      *config.Config // read-only, may be shared between runs
	Seed        int64
	MaxChapters int
	MaxFrames   int // safety stop, zero for no limit
}

// RunResult is the outcome of one headless run.
type RunResult struct {
	Seed       int64
	Score      scores.Score
	Won        bool
	Encounters []telemetry.EncounterStats
	Frames     int
	Err        error
}

// RunHeadless plays one run with the autopilot at one tick per frame.
func RunHeadless(spec RunSpec) RunResult {
	res := RunResult{Seed: spec.Seed}
	g, err := NewGame(Options{
		Config:      spec.Config,
		Seed:        spec.Seed,
		Autopilot:   true,
		MaxChapters: spec.MaxChapters,
		Runs:        1,
	})
	if err != nil {
		res.Err = err
		return res
	}
	defer g.Close()

	dt := g.cfg.Derived.Tick
	for !g.Finished() {
		if spec.MaxFrames > 0 && res.Frames >= spec.MaxFrames {
			res.Err = fmt.Errorf("run did not finish in %d frames (mode %s)", spec.MaxFrames, g.Mode())
			break
		}
		g.Frame(dt)
		res.Frames++
	}
	res.Score = g.LastScore()
	res.Won = g.machine.Entered(ModeWin) > 0
	res.Encounters = g.Results()
	return res
}

// RunBatch plays every RunSpec on a pool of workers. Results keep the order
// of specs. workers <= 0 uses GOMAXPROCS.
func RunBatch(specs []RunSpec, workers int) []RunResult {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > len(specs) {
		workers = len(specs)
	}

	results := make([]RunResult, len(specs))
	workChan := make(chan int, len(specs))
	for i := range specs {
		workChan <- i
	}
	close(workChan)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range workChan {
				results[i] = RunHeadless(specs[i])
			}
		}()
	}
	wg.Wait()
	return results
}
