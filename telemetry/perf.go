package telemetry

import (
	"log/slog"
	"time"
)

// Phase is one step of the encounter tick.
type Phase uint8

// Tick phases in execution order.
const (
	PhaseSlots Phase = iota
	PhasePower
	PhaseOxygen
	PhaseApproach
	PhaseCombat
	PhaseTelemetry
	NumPhases

	phaseNone Phase = 0xff
)

var phaseNames = [NumPhases]string{"slots", "power", "oxygen", "approach", "combat", "telemetry"}

func (p Phase) String() string {
	if p < NumPhases {
		return phaseNames[p]
	}
	return "none"
}

// tickSample is the timing of one tick.
type tickSample struct {
	total  time.Duration
	phases [NumPhases]time.Duration
}

// PerfCollector times tick phases over a rolling window of ticks.
type PerfCollector struct {
	now func() time.Time

	window  []tickSample
	next    int
	filled  int
	current tickSample

	tickStart  time.Time
	phaseStart time.Time
	phase      Phase

	sinceReport int
}

// NewPerfCollector creates a collector averaging over windowSize ticks.
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 60
	}
	return &PerfCollector{
		now:    time.Now,
		window: make([]tickSample, windowSize),
		phase:  phaseNone,
	}
}

// StartTick begins timing a tick.
func (p *PerfCollector) StartTick() {
	p.tickStart = p.now()
	p.current = tickSample{}
	p.phase = phaseNone
}

// StartPhase closes the running phase, if any, and starts ph.
func (p *PerfCollector) StartPhase(ph Phase) {
	t := p.now()
	p.closePhase(t)
	p.phaseStart = t
	p.phase = ph
}

func (p *PerfCollector) closePhase(t time.Time) {
	if p.phase < NumPhases {
		p.current.phases[p.phase] += t.Sub(p.phaseStart)
	}
}

// EndTick closes the last phase and stores the tick in the window.
func (p *PerfCollector) EndTick() {
	t := p.now()
	p.closePhase(t)
	p.phase = phaseNone
	p.current.total = t.Sub(p.tickStart)

	p.window[p.next] = p.current
	p.next = (p.next + 1) % len(p.window)
	if p.filled < len(p.window) {
		p.filled++
	}
	p.sinceReport++
}

// PerfStats is the window average. Phase arrays are indexed by Phase.
type PerfStats struct {
	Ticks    int
	AvgTick  time.Duration
	MinTick  time.Duration
	MaxTick  time.Duration
	PhaseAvg [NumPhases]time.Duration
	PhasePct [NumPhases]float64
}

// TicksPerSecond is the tick rate the simulation could sustain on its own.
func (s PerfStats) TicksPerSecond() float64 {
	if s.AvgTick <= 0 {
		return 0
	}
	return float64(time.Second) / float64(s.AvgTick)
}

// Stats averages the samples in the window.
func (p *PerfCollector) Stats() PerfStats {
	s := PerfStats{Ticks: p.filled}
	if p.filled == 0 {
		return s
	}

	var total time.Duration
	var phases [NumPhases]time.Duration
	for i, smp := range p.window[:p.filled] {
		total += smp.total
		if i == 0 || smp.total < s.MinTick {
			s.MinTick = smp.total
		}
		if smp.total > s.MaxTick {
			s.MaxTick = smp.total
		}
		for ph, d := range smp.phases {
			phases[ph] += d
		}
	}

	n := time.Duration(p.filled)
	s.AvgTick = total / n
	for ph := range phases {
		s.PhaseAvg[ph] = phases[ph] / n
		if s.AvgTick > 0 {
			s.PhasePct[ph] = float64(s.PhaseAvg[ph]) / float64(s.AvgTick) * 100
		}
	}
	return s
}

// LogStats logs the window at info level.
func (s PerfStats) LogStats() {
	slog.Info("perf", "tick", s)
}

// LogValue implements slog.LogValuer for structured logging.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int("ticks", s.Ticks),
		slog.Int64("avg_tick_us", s.AvgTick.Microseconds()),
		slog.Int64("max_tick_us", s.MaxTick.Microseconds()),
	}
	for ph := Phase(0); ph < NumPhases; ph++ {
		if s.PhasePct[ph] > 0.1 {
			attrs = append(attrs, slog.Float64(ph.String()+"_pct", float64(int(s.PhasePct[ph]*10))/10))
		}
	}
	return slog.GroupValue(attrs...)
}

// PerfStatsCSV is one perf.csv row.
type PerfStatsCSV struct {
	SimTime      float64 `csv:"sim_time"`
	Ticks        int     `csv:"ticks"`
	AvgTickUS    int64   `csv:"avg_tick_us"`
	MinTickUS    int64   `csv:"min_tick_us"`
	MaxTickUS    int64   `csv:"max_tick_us"`
	TicksPerSec  float64 `csv:"ticks_per_sec"`
	SlotsPct     float64 `csv:"slots_pct"`
	PowerPct     float64 `csv:"power_pct"`
	OxygenPct    float64 `csv:"oxygen_pct"`
	ApproachPct  float64 `csv:"approach_pct"`
	CombatPct    float64 `csv:"combat_pct"`
	TelemetryPct float64 `csv:"telemetry_pct"`
}

// ToCSV flattens the stats for perf.csv.
func (s PerfStats) ToCSV(simTime float64) PerfStatsCSV {
	return PerfStatsCSV{
		SimTime:      simTime,
		Ticks:        s.Ticks,
		AvgTickUS:    s.AvgTick.Microseconds(),
		MinTickUS:    s.MinTick.Microseconds(),
		MaxTickUS:    s.MaxTick.Microseconds(),
		TicksPerSec:  s.TicksPerSecond(),
		SlotsPct:     s.PhasePct[PhaseSlots],
		PowerPct:     s.PhasePct[PhasePower],
		OxygenPct:    s.PhasePct[PhaseOxygen],
		ApproachPct:  s.PhasePct[PhaseApproach],
		CombatPct:    s.PhasePct[PhaseCombat],
		TelemetryPct: s.PhasePct[PhaseTelemetry],
	}
}

// Ready reports whether a full window of ticks was recorded since it last
// returned true.
func (p *PerfCollector) Ready() bool {
	if p.sinceReport < len(p.window) {
		return false
	}
	p.sinceReport = 0
	return true
}
