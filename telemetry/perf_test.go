package telemetry

import (
	"testing"
	"time"
)

// fakeClock advances only when told to.
type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestCollector(window int) (*PerfCollector, *fakeClock) {
	clk := &fakeClock{t: time.Unix(0, 0)}
	pc := NewPerfCollector(window)
	pc.now = clk.now
	return pc, clk
}

func TestPerfCollector_BasicTiming(t *testing.T) {
	pc, clk := newTestCollector(10)

	for i := 0; i < 5; i++ {
		pc.StartTick()
		pc.StartPhase(PhaseSlots)
		clk.advance(100 * time.Microsecond)
		pc.StartPhase(PhaseCombat)
		clk.advance(300 * time.Microsecond)
		pc.EndTick()
	}

	stats := pc.Stats()
	if stats.Ticks != 5 {
		t.Errorf("ticks = %d, want 5", stats.Ticks)
	}
	if stats.AvgTick != 400*time.Microsecond {
		t.Errorf("avg tick = %v, want 400µs", stats.AvgTick)
	}
	if stats.PhaseAvg[PhaseSlots] != 100*time.Microsecond {
		t.Errorf("slots avg = %v, want 100µs", stats.PhaseAvg[PhaseSlots])
	}
	if stats.PhaseAvg[PhaseCombat] != 300*time.Microsecond {
		t.Errorf("combat avg = %v, want 300µs", stats.PhaseAvg[PhaseCombat])
	}
	if stats.PhaseAvg[PhasePower] != 0 {
		t.Errorf("power avg = %v, want 0", stats.PhaseAvg[PhasePower])
	}
	if got := stats.TicksPerSecond(); got != 2500 {
		t.Errorf("ticks per second = %v, want 2500", got)
	}
}

func TestPerfCollector_RollingWindow(t *testing.T) {
	pc, clk := newTestCollector(5)

	// Ten ticks of growing length; only the last five stay in the window.
	for i := 1; i <= 10; i++ {
		pc.StartTick()
		pc.StartPhase(PhaseSlots)
		clk.advance(time.Duration(i) * time.Millisecond)
		pc.EndTick()
	}

	stats := pc.Stats()
	if stats.Ticks != 5 {
		t.Errorf("ticks = %d, want 5", stats.Ticks)
	}
	if stats.MinTick != 6*time.Millisecond {
		t.Errorf("min tick = %v, want 6ms", stats.MinTick)
	}
	if stats.MaxTick != 10*time.Millisecond {
		t.Errorf("max tick = %v, want 10ms", stats.MaxTick)
	}
	if stats.AvgTick != 8*time.Millisecond {
		t.Errorf("avg tick = %v, want 8ms", stats.AvgTick)
	}
}

func TestPerfCollector_PhasePercentages(t *testing.T) {
	pc, clk := newTestCollector(10)

	for i := 0; i < 4; i++ {
		pc.StartTick()
		pc.StartPhase(PhaseOxygen)
		clk.advance(time.Millisecond)
		pc.StartPhase(PhaseApproach)
		clk.advance(3 * time.Millisecond)
		pc.EndTick()
	}

	stats := pc.Stats()
	if got := stats.PhasePct[PhaseOxygen]; got != 25 {
		t.Errorf("oxygen pct = %v, want 25", got)
	}
	if got := stats.PhasePct[PhaseApproach]; got != 75 {
		t.Errorf("approach pct = %v, want 75", got)
	}
}

func TestPerfCollector_TimeBeforeFirstPhase(t *testing.T) {
	pc, clk := newTestCollector(4)

	pc.StartTick()
	clk.advance(2 * time.Millisecond) // not inside any phase
	pc.StartPhase(PhasePower)
	clk.advance(2 * time.Millisecond)
	pc.EndTick()

	stats := pc.Stats()
	if stats.AvgTick != 4*time.Millisecond {
		t.Errorf("avg tick = %v, want 4ms", stats.AvgTick)
	}
	if got := stats.PhasePct[PhasePower]; got != 50 {
		t.Errorf("power pct = %v, want 50", got)
	}
}

func TestPerfCollector_EmptyStats(t *testing.T) {
	pc := NewPerfCollector(10)
	stats := pc.Stats()
	if stats.Ticks != 0 || stats.AvgTick != 0 {
		t.Errorf("empty collector stats = %+v", stats)
	}
	if stats.TicksPerSecond() != 0 {
		t.Errorf("ticks per second = %v, want 0", stats.TicksPerSecond())
	}
}

func TestPerfCollector_Ready(t *testing.T) {
	pc, _ := newTestCollector(3)

	tick := func() {
		pc.StartTick()
		pc.StartPhase(PhaseSlots)
		pc.EndTick()
	}

	if pc.Ready() {
		t.Error("ready before any tick")
	}
	tick()
	tick()
	if pc.Ready() {
		t.Error("ready after 2 of 3 ticks")
	}
	tick()
	if !pc.Ready() {
		t.Error("not ready after a full window")
	}
	if pc.Ready() {
		t.Error("ready twice for the same window")
	}
}

func TestPhaseString(t *testing.T) {
	tests := []struct {
		ph   Phase
		want string
	}{
		{PhaseSlots, "slots"},
		{PhaseTelemetry, "telemetry"},
		{NumPhases, "none"},
	}
	for _, tt := range tests {
		if got := tt.ph.String(); got != tt.want {
			t.Errorf("Phase(%d).String() = %q, want %q", tt.ph, got, tt.want)
		}
	}
}

func TestPerfStats_ToCSV(t *testing.T) {
	s := PerfStats{
		Ticks:   3,
		AvgTick: 2 * time.Millisecond,
		MinTick: time.Millisecond,
		MaxTick: 3 * time.Millisecond,
	}
	s.PhasePct[PhaseCombat] = 60
	s.PhasePct[PhaseTelemetry] = 5

	row := s.ToCSV(12.5)
	if row.SimTime != 12.5 || row.Ticks != 3 {
		t.Errorf("row header fields = (%v, %d)", row.SimTime, row.Ticks)
	}
	if row.AvgTickUS != 2000 || row.MinTickUS != 1000 || row.MaxTickUS != 3000 {
		t.Errorf("tick us = (%d, %d, %d)", row.AvgTickUS, row.MinTickUS, row.MaxTickUS)
	}
	if row.TicksPerSec != 500 {
		t.Errorf("ticks per sec = %v, want 500", row.TicksPerSec)
	}
	if row.CombatPct != 60 || row.TelemetryPct != 5 || row.SlotsPct != 0 {
		t.Errorf("phase pct = combat %v telemetry %v slots %v", row.CombatPct, row.TelemetryPct, row.SlotsPct)
	}
}
