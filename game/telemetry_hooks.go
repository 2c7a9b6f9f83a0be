package game

import (
	"log/slog"

	"github.com/pthm-cable/evac/systems"
	"github.com/pthm-cable/evac/telemetry"
)

// telemetryState gathers per-encounter statistics and run output.
type telemetryState struct {
	collector *telemetry.Collector
	lifetime  *telemetry.LifetimeTracker
	bookmarks *telemetry.BookmarkDetector
	output    *telemetry.OutputManager
	perf      *telemetry.PerfCollector
	records   []telemetry.EventRecord

	logStats    bool
	snapshotDir string
}

func (g *Game) initTelemetry(opts Options) error {
	tc := g.cfg.Telemetry
	outputDir := opts.OutputDir
	if outputDir == "" {
		outputDir = tc.OutputDir
	}
	output, err := telemetry.NewOutputManager(outputDir)
	if err != nil {
		return err
	}
	if err := output.WriteConfig(g.cfg); err != nil {
		output.Close()
		return err
	}

	g.tel = telemetryState{
		collector:   telemetry.NewCollector(),
		lifetime:    telemetry.NewLifetimeTracker(),
		bookmarks:   telemetry.NewBookmarkDetector(tc.HighlightHistory, tc.CloseCallHP),
		output:      output,
		perf:        telemetry.NewPerfCollector(tc.PerfWindow),
		logStats:    opts.LogStats || tc.LogStats,
		snapshotDir: opts.SnapshotDir,
	}
	return nil
}

// beginRun starts lifetime tracking for every slot of the new ship.
func (g *Game) beginRun() {
	g.tel.lifetime = telemetry.NewLifetimeTracker()
	for i := range g.state.Slots {
		g.tel.lifetime.Register(i, g.state.Slots[i].Type.String(), 0)
	}
}

// beginEncounter resets the per-encounter counters.
func (g *Game) beginEncounter() {
	g.tel.collector.Begin(g.state.Chapter, g.state.SimTime, g.state.Deaths)
	g.tel.records = g.tel.records[:0]
}

// recordEvents is the simulator's event hook.
func (g *Game) recordEvents(simTime float64, events []systems.Event) {
	for _, e := range events {
		g.tel.collector.Record(e)
		g.tel.lifetime.RecordEvent(e, simTime)
		if g.tel.output != nil {
			g.tel.records = append(g.tel.records, telemetry.NewEventRecord(simTime, g.state.Chapter, e))
		}
	}
}

// recordPower accumulates powered time for every slot over d ticks.
func (g *Game) recordPower(d float64) {
	for i := range g.state.Slots {
		g.tel.lifetime.RecordPower(i, int(g.state.Slots[i].Power), d)
	}
}

// endEncounter flushes the encounter's stats to every enabled sink.
func (g *Game) endEncounter(outcome telemetry.Outcome) {
	st := g.state
	sample := telemetry.ShipSample{
		Cargo:      st.Cargo(),
		Deaths:     st.Deaths,
		O2:         st.O2,
		LiveSlots:  len(st.LiveSlots()),
		TotalSlots: len(st.Slots),
		HullHP:     make([]float64, len(st.Slots)),
	}
	for i := range st.Slots {
		sample.HullHP[i] = st.Slots[i].HP
	}
	stats := g.tel.collector.Flush(st.SimTime, outcome, sample)
	g.results = append(g.results, stats)

	if g.tel.logStats {
		stats.LogStats()
	}

	out := g.tel.output
	if err := out.WriteEncounter(stats); err != nil {
		slog.Error("failed to write encounter", "error", err)
	}
	if err := out.WriteEvents(g.tel.records); err != nil {
		slog.Error("failed to write events", "error", err)
	}
	g.tel.records = g.tel.records[:0]

	if g.tel.perf.Ready() {
		perfStats := g.tel.perf.Stats()
		if g.tel.logStats {
			perfStats.LogStats()
		}
		if err := out.WritePerf(perfStats, st.SimTime); err != nil {
			slog.Error("failed to write perf", "error", err)
		}
	}

	bookmarks := g.tel.bookmarks.Check(stats)
	for i := range bookmarks {
		bm := bookmarks[i]
		if g.tel.logStats {
			bm.LogBookmark()
		}
		if err := out.WriteBookmark(bm); err != nil {
			slog.Error("failed to write bookmark", "error", err)
		}
		if g.tel.snapshotDir != "" {
			g.saveSnapshot(outcome, &bm)
		}
	}
	if outcome == telemetry.OutcomeLost && len(bookmarks) == 0 && g.tel.snapshotDir != "" {
		g.saveSnapshot(outcome, nil)
	}
}

// saveSnapshot creates and saves a snapshot to disk.
func (g *Game) saveSnapshot(outcome telemetry.Outcome, bookmark *telemetry.Bookmark) {
	snapshot := g.createSnapshot(outcome, bookmark)

	path, err := telemetry.SaveSnapshot(snapshot, g.tel.snapshotDir)
	if err != nil {
		slog.Error("failed to save snapshot", "error", err)
		return
	}
	slog.Info("snapshot saved", "path", path, "chapter", g.state.Chapter)
}

// createSnapshot builds a snapshot from the current state.
func (g *Game) createSnapshot(outcome telemetry.Outcome, bookmark *telemetry.Bookmark) *telemetry.Snapshot {
	st := g.state
	snapshot := &telemetry.Snapshot{
		Version:   telemetry.SnapshotVersion,
		RNGSeed:   g.seed,
		Chapter:   st.Chapter,
		SimTime:   st.SimTime,
		Outcome:   string(outcome),
		O2:        st.O2,
		Deaths:    st.Deaths,
		Cargo:     st.Cargo(),
		Priority:  st.Priority.Items(),
		Suspended: st.Priority.Suspended(),
		Bookmark:  bookmark,
	}

	for i := range st.Slots {
		s := &st.Slots[i]
		snapshot.Slots = append(snapshot.Slots, telemetry.SlotState{
			Idx:       s.Idx,
			Type:      s.Type.String(),
			Power:     int(s.Power),
			HP:        s.HP,
			Heat:      s.Heat,
			Shield:    s.Shield,
			Evade:     s.Evade,
			Charge:    s.Charge,
			Gen:       s.Gen,
			O2:        s.O2,
			Cargo:     s.Cargo,
			AutoOff:   s.AutoOff,
			AutoCool:  s.AutoCool,
			Converted: s.Converted,
			Lifetime:  g.tel.lifetime.Get(i).ToJSON(),
		})
	}

	if st.Wave != nil {
		for i := 0; i < st.Wave.Len(); i++ {
			pos, f := st.Wave.Fighter(i)
			snapshot.Fighters = append(snapshot.Fighters, telemetry.FighterState{
				Index:         f.Index,
				X:             pos.X,
				Y:             pos.Y,
				HP:            f.HP,
				FireCountdown: f.FireCountdown,
			})
		}
	}
	return snapshot
}
