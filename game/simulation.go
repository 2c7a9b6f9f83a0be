package game

import (
	"math"
	"math/rand"
	"time"

	"github.com/pthm-cable/evac/components"
	"github.com/pthm-cable/evac/config"
	"github.com/pthm-cable/evac/systems"
	"github.com/pthm-cable/evac/telemetry"
)

// HelpTopic identifies a one-shot tutorial hint.
type HelpTopic uint8

const (
	HelpOverheat HelpTopic = iota
)

// Hooks lets the host react to simulation signals. Nil fields are ignored.
type Hooks struct {
	Help   func(HelpTopic)
	Events func(simTime float64, events []systems.Event)
}

// TickResult says what a tick asks of the state machine.
type TickResult struct {
	Next   ModeID
	Paused bool // a modal dialog froze the simulation
	Won    bool // the wave was won during this tick
	Lost   bool // enemy fire found nothing left to hit
}

// Simulator advances one encounter.
type Simulator struct {
	State *ShipState
	Final bool // the encounter is the last of the campaign

	cfg     *config.Config
	rng     *rand.Rand
	dialogs Dialogs
	hooks   Hooks
	perf    *telemetry.PerfCollector
	events  systems.Events
}

// NewSimulator creates a simulator over st. dialogs and perf may be nil.
func NewSimulator(cfg *config.Config, rng *rand.Rand, st *ShipState, dialogs Dialogs, perf *telemetry.PerfCollector, hooks Hooks) *Simulator {
	return &Simulator{
		State:   st,
		cfg:     cfg,
		rng:     rng,
		dialogs: dialogs,
		hooks:   hooks,
		perf:    perf,
	}
}

// Tick advances the encounter by dt. Time is measured in nominal ticks, so
// a dt of one configured tick is one full step of every rate.
func (s *Simulator) Tick(dt time.Duration) TickResult {
	res := TickResult{Next: ModeEncounter}
	if s.dialogs != nil && s.dialogs.Active() {
		res.Paused = true
		return res
	}
	st := s.State
	wave := st.Wave

	s.events.Reset()
	env := &systems.Env{
		Cfg:    s.cfg,
		Rng:    s.rng,
		Events: &s.events,
		D:      float64(dt) / float64(s.cfg.Derived.Tick),
		Now:    st.SimTime,
	}
	st.SimTime += env.D
	defer s.publish()

	if wave.Won {
		systems.AdvanceFireVisuals(env, st.Ship, wave)
		wave.WinCountdown -= env.D
		if wave.WinCountdown <= 0 {
			res.Next = ModeSpecial
			if s.Final {
				res.Next = ModeWin
			}
		}
		return res
	}

	if wave.AllDead() {
		s.win(env)
		res.Won = true
		return res
	}

	if s.perf != nil {
		s.perf.StartTick()
		defer s.perf.EndTick()
		s.perf.StartPhase(telemetry.PhaseSlots)
	}
	systems.UpdateSlots(env, st.Ship, wave)

	s.phase(telemetry.PhasePower)
	stats := systems.EnforcePowerBudget(env, st.Ship)

	s.phase(telemetry.PhaseOxygen)
	systems.UpdateOxygen(env, st.Ship, stats)

	s.phase(telemetry.PhaseApproach)
	wave.Approach(s.cfg, float32(dt)/float32(time.Millisecond))

	s.phase(telemetry.PhaseCombat)
	if systems.ResolveEnemyFire(env, st.Ship, wave, stats) {
		res.Lost = true
		res.Next = ModeLose
		return res
	}

	s.phase(telemetry.PhaseTelemetry)
	s.checkInvariants(stats)
	return res
}

func (s *Simulator) phase(ph telemetry.Phase) {
	if s.perf != nil {
		s.perf.StartPhase(ph)
	}
}

// win ends combat: every slot powers down and hot slots are vented to half
// their heat capacity before the countdown to the next scene starts.
func (s *Simulator) win(env *systems.Env) {
	st := s.State
	wave := st.Wave
	wave.Won = true
	wave.WinCountdown = s.cfg.Sim.WinCountdown

	heatHalf := s.cfg.Derived.Values[components.ValueHeat].Max / 2
	for i := range st.Slots {
		sl := &st.Slots[i]
		sl.Power = components.PowerOff
		sl.AutoOff = false
		if sl.Alive() && sl.Heat > heatHalf {
			sl.Heat = heatHalf
		}
	}
	st.Priority.Clear()
	env.Events.Add(systems.Event{Type: systems.EventWaveWon, Slot: -1, Fighter: -1})
}

// publish hands the tick's events to the log and the hooks.
func (s *Simulator) publish() {
	st := s.State
	events := s.events.All()
	for _, e := range events {
		if e.Type == systems.EventHeatWarning && !st.HeatHelpShown {
			st.HeatHelpShown = true
			if s.hooks.Help != nil {
				s.hooks.Help(HelpOverheat)
			}
		}
		st.logEvent(e)
	}
	if s.hooks.Events != nil && len(events) > 0 {
		s.hooks.Events(st.SimTime, events)
	}
}

// checkInvariants verifies the end-of-tick guarantees. The power budget is
// checked against the totals enforcement settled on; a generator destroyed
// by enemy fire afterwards is shed on the next tick.
func (s *Simulator) checkInvariants(stats systems.ShipStats) {
	cfg := s.cfg
	debug := cfg.Debug
	st := s.State
	assertf(debug, stats.Power <= stats.Gen+1e-9, "power draw %.2f exceeds generation %.2f", stats.Power, stats.Gen)

	for i := range st.Slots {
		sl := &st.Slots[i]
		for _, v := range cfg.Derived.Panels[sl.Type].Values {
			if v == components.ValueNone {
				continue
			}
			val, limit := sl.Value(v), cfg.Derived.Values[v].Max
			assertf(debug, val >= 0 && val <= limit && !math.IsNaN(val),
				"slot %d %s=%.3f outside [0,%.0f]", i, v, val, limit)
		}
		if !sl.Alive() {
			assertf(debug, sl.Power == components.PowerOff, "destroyed slot %d holds power", i)
		}
	}
}
