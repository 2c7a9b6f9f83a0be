package game

import (
	"fmt"
	"log/slog"
	"time"
)

// ModeID names a game mode.
type ModeID uint8

const (
	ModeLoading ModeID = iota
	ModeIntro
	ModeManage
	ModeEncounter
	ModeSpecial
	ModeWin
	ModeLose
	ModeScores
	NumModes
)

var modeNames = [NumModes]string{"loading", "intro", "manage", "encounter", "special", "win", "lose", "scores"}

func (m ModeID) String() string {
	if m < NumModes {
		return modeNames[m]
	}
	return fmt.Sprintf("ModeID(%d)", uint8(m))
}

// Mode is the handler for one mode. Update returns the mode to run next
// frame, its own ID to stay.
type Mode interface {
	ID() ModeID
	Enter(g *Game)
	Update(g *Game, dt time.Duration) ModeID
	Draw(g *Game, p Presenter)
}

// transitions lists the modes each mode may hand over to.
var transitions = [NumModes][]ModeID{
	ModeLoading:   {ModeIntro},
	ModeIntro:     {ModeManage},
	ModeManage:    {ModeEncounter},
	ModeEncounter: {ModeSpecial, ModeWin, ModeLose},
	ModeSpecial:   {ModeManage},
	ModeWin:       {ModeScores, ModeIntro},
	ModeLose:      {ModeScores, ModeIntro},
	ModeScores:    {ModeIntro},
}

// CanTransition reports whether from may hand over to to.
func CanTransition(from, to ModeID) bool {
	if from >= NumModes {
		return false
	}
	for _, m := range transitions[from] {
		if m == to {
			return true
		}
	}
	return false
}

// Machine runs exactly one mode at a time. A requested transition is
// applied at the end of the frame that requested it.
type Machine struct {
	modes   [NumModes]Mode
	current ModeID
	pending ModeID

	timeInMode time.Duration
	entered    [NumModes]int
}

// NewMachine registers one handler per mode. Every mode must be covered.
func NewMachine(modes ...Mode) (*Machine, error) {
	m := &Machine{current: ModeLoading, pending: ModeLoading}
	for _, h := range modes {
		id := h.ID()
		if id >= NumModes {
			return nil, fmt.Errorf("mode %s out of range", id)
		}
		if m.modes[id] != nil {
			return nil, fmt.Errorf("mode %s registered twice", id)
		}
		m.modes[id] = h
	}
	for id := ModeID(0); id < NumModes; id++ {
		if m.modes[id] == nil {
			return nil, fmt.Errorf("no handler for mode %s", id)
		}
	}
	return m, nil
}

// Start enters the initial mode.
func (m *Machine) Start(g *Game) {
	m.current = ModeLoading
	m.pending = ModeLoading
	m.timeInMode = 0
	m.entered[ModeLoading]++
	m.modes[ModeLoading].Enter(g)
}

// Update runs the active mode for one frame and then applies its request.
func (m *Machine) Update(g *Game, dt time.Duration) {
	m.timeInMode += dt
	next := m.modes[m.current].Update(g, dt)
	if next != m.current {
		m.pending = next
	}
	m.apply(g)
}

// Request asks for a transition at the end of the current frame.
func (m *Machine) Request(id ModeID) {
	m.pending = id
}

func (m *Machine) apply(g *Game) {
	next := m.pending
	if next == m.current {
		return
	}
	if !CanTransition(m.current, next) {
		assertf(g.cfg.Debug, false, "illegal transition %s -> %s", m.current, next)
		m.pending = m.current
		return
	}
	slog.Debug("mode transition", "from", m.current, "to", next, "time_in_mode", m.timeInMode)
	m.current = next
	m.timeInMode = 0
	m.entered[next]++
	m.modes[next].Enter(g)
}

// Draw renders the active mode.
func (m *Machine) Draw(g *Game, p Presenter) {
	m.modes[m.current].Draw(g, p)
}

// Current returns the active mode.
func (m *Machine) Current() ModeID {
	return m.current
}

// TimeInMode returns how long the active mode has been running.
func (m *Machine) TimeInMode() time.Duration {
	return m.timeInMode
}

// Entered returns how many times a mode has been entered.
func (m *Machine) Entered(id ModeID) int {
	return m.entered[id]
}
