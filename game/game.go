// Package game runs the ship through its campaign: the mode state machine,
// the encounter simulator and the glue to the host's collaborators.
package game

import (
	"fmt"
	"log/slog"
	"math/rand"
	"strconv"
	"time"

	"github.com/pthm-cable/evac/config"
	"github.com/pthm-cable/evac/scores"
	"github.com/pthm-cable/evac/systems"
	"github.com/pthm-cable/evac/telemetry"
)

// Options configures a game. Nil collaborators fall back to headless
// stand-ins: no input, dialogs that confirm their first button, in-memory
// scores and local saves.
type Options struct {
	Config *config.Config // nil uses config.Cfg()
	Seed   int64

	Input     Input
	Dialogs   Dialogs
	Presenter Presenter
	Assets    Assets
	Scores    ScoreStore
	Local     Namespace
	Player    string

	// Autopilot plays the ship without input.
	Autopilot bool
	// Help is called the first time a tutorial hint applies in a run.
	Help func(HelpTopic)

	// MaxChapters ends the campaign early. Zero plays every chapter.
	MaxChapters int
	// Runs stops the game after this many finished runs. Zero is unlimited.
	Runs int

	OutputDir   string
	SnapshotDir string
	LogStats    bool
}

// Game holds the complete game state.
type Game struct {
	cfg  *config.Config
	rng  *rand.Rand
	seed int64

	machine *Machine
	state   *ShipState
	sim     *Simulator
	cleared int // encounters won this run

	input     Input
	dialogs   Dialogs
	presenter Presenter
	assets    Assets
	scores    ScoreStore
	local     Namespace
	help      func(HelpTopic)
	autopilot *Autopilot

	finalChapter int
	maxRuns      int
	runs         int
	finished     bool
	lastScore    scores.Score

	tel     telemetryState
	results []telemetry.EncounterStats
	frames  *FrameStats
}

// NewGame creates a game in the loading mode.
func NewGame(opts Options) (*Game, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Cfg()
	}
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	g := &Game{
		cfg:       cfg,
		rng:       rand.New(rand.NewSource(seed)),
		seed:      seed,
		input:     opts.Input,
		dialogs:   opts.Dialogs,
		presenter: opts.Presenter,
		assets:    opts.Assets,
		scores:    opts.Scores,
		local:     opts.Local,
		help:      opts.Help,
		maxRuns:   opts.Runs,
		frames:    NewFrameStats(0),
	}
	if g.input == nil {
		g.input = noInput{}
	}
	if g.dialogs == nil {
		g.dialogs = autoDialogs{}
	}
	if g.local == nil {
		g.local = memNamespace{}
	}
	if g.scores == nil {
		store, err := scores.NewFileStore("", opts.Player, cfg.Scores.BoardSize)
		if err != nil {
			return nil, err
		}
		g.scores = store
	}
	if opts.Autopilot {
		g.autopilot = NewAutopilot()
	}

	g.finalChapter = cfg.Derived.FinalChapter
	if opts.MaxChapters > 0 && opts.MaxChapters-1 < g.finalChapter {
		g.finalChapter = opts.MaxChapters - 1
	}

	if err := g.initTelemetry(opts); err != nil {
		return nil, err
	}

	machine, err := NewMachine(
		&loadingMode{},
		&introMode{},
		&manageMode{},
		&encounterMode{},
		&specialMode{},
		&endMode{id: ModeWin, outcome: telemetry.OutcomeWon},
		&endMode{id: ModeLose, outcome: telemetry.OutcomeLost},
		&scoresMode{},
	)
	if err != nil {
		return nil, fmt.Errorf("building mode machine: %w", err)
	}
	g.machine = machine
	g.machine.Start(g)
	return g, nil
}

// Frame advances the game by one host frame.
func (g *Game) Frame(dt time.Duration) {
	if g.finished {
		return
	}
	start := time.Now()
	g.machine.Update(g, dt)
	g.frames.Record(SectionUpdate, time.Since(start))
}

// Draw renders the current frame. Does nothing without a presenter.
func (g *Game) Draw() {
	if g.presenter == nil {
		return
	}
	start := time.Now()
	g.machine.Draw(g, g.presenter)
	if g.cfg.Debug {
		g.presenter.DrawText(4, 4, 8, g.frames.String())
	}
	g.frames.Record(SectionDraw, time.Since(start))
}

// FrameStats returns the rolling host frame timings.
func (g *Game) FrameStats() *FrameStats {
	return g.frames
}

// Mode returns the active mode.
func (g *Game) Mode() ModeID {
	return g.machine.Current()
}

// State returns the current playthrough, or nil before the first run.
func (g *Game) State() *ShipState {
	return g.state
}

// Seed returns the seed of the game's random source.
func (g *Game) Seed() int64 {
	return g.seed
}

// Finished reports whether the configured number of runs is complete.
func (g *Game) Finished() bool {
	return g.finished
}

// Runs returns the number of runs started.
func (g *Game) Runs() int {
	return g.runs
}

// LastScore returns the score of the most recently ended run.
func (g *Game) LastScore() scores.Score {
	return g.lastScore
}

// Results returns the stats of every finished encounter.
func (g *Game) Results() []telemetry.EncounterStats {
	return g.results
}

// Close flushes and closes telemetry output.
func (g *Game) Close() error {
	return g.tel.output.Close()
}

// chapter returns the current chapter's configuration.
func (g *Game) chapter() config.ChapterConfig {
	return g.cfg.Chapters[g.state.Chapter]
}

// newRun starts a fresh playthrough.
func (g *Game) newRun() {
	g.state = NewShipState(g.cfg)
	g.sim = nil
	g.cleared = 0
	g.runs++
	g.beginRun()
	slog.Info("run started", "run", g.runs, "seed", g.seed)
}

// endRun scores the finished playthrough and updates local saves.
func (g *Game) endRun(outcome telemetry.Outcome) scores.Score {
	score := g.state.Score(g.cleared)
	g.lastScore = score
	slog.Info("run ended",
		"run", g.runs,
		"outcome", outcome,
		"level", score.Level,
		"cargo", score.Cargo,
		"deaths", score.Deaths,
	)

	runs := 0
	if v, ok := g.local.Get("runs"); ok {
		runs, _ = strconv.Atoi(v)
	}
	g.saveLocal("runs", strconv.Itoa(runs+1))
	if v, ok := g.local.Get("best_level"); !ok || atoi(v) < score.Level {
		g.saveLocal("best_level", strconv.Itoa(score.Level))
	}
	return score
}

// runDone records a completed run and reports whether another should start.
func (g *Game) runDone() bool {
	if g.maxRuns > 0 && g.runs >= g.maxRuns {
		g.finished = true
		return false
	}
	return true
}

func (g *Game) saveLocal(key, value string) {
	if err := g.local.Set(key, value); err != nil {
		slog.Warn("local save failed", "key", key, "error", err)
	}
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

// stats aggregates the current ship.
func (g *Game) stats() systems.ShipStats {
	return g.state.Stats(g.cfg)
}

// drawShip renders the ship and its readout.
func (g *Game) drawShip(p Presenter) {
	stats := g.stats()
	p.DrawShip(g.state, stats)
	p.DrawSummary(g.state.Summarize(g.cfg, stats))
}
