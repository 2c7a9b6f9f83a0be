package game

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/pthm-cable/evac/systems"
	"github.com/pthm-cable/evac/telemetry"
)

// encounterMode runs combat against the chapter's wave.
type encounterMode struct{}

func (m *encounterMode) ID() ModeID { return ModeEncounter }

func (m *encounterMode) Enter(g *Game) {
	st := g.state
	ch := g.chapter()
	st.HeatScale = ch.HeatScale
	st.EngineFactor = ch.EngineFactor
	st.Wave = systems.NewWave(g.cfg, ch.Wave, g.rng)
	st.Messages.Clear()
	st.Messages.Add(fmt.Sprintf("%d fighters incoming", ch.Wave.NumShips), MsgWarning)

	g.sim = NewSimulator(g.cfg, g.rng, st, g.dialogs, g.tel.perf, Hooks{
		Help:   g.help,
		Events: g.recordEvents,
	})
	g.sim.Final = st.Chapter >= g.finalChapter
	g.beginEncounter()
	slog.Info("encounter started", "chapter", st.Chapter, "name", ch.Name, "ships", ch.Wave.NumShips, "damage", ch.Wave.Damage)
}

func (m *encounterMode) Update(g *Game, dt time.Duration) ModeID {
	st := g.state
	if !st.Wave.Won {
		if g.autopilot != nil {
			g.autopilot.Fly(g)
		} else {
			g.handleSlotClicks()
		}
	}

	res := g.sim.Tick(dt)
	if !res.Paused {
		g.recordPower(float64(dt) / float64(g.cfg.Derived.Tick))
	}

	switch res.Next {
	case ModeSpecial, ModeWin:
		g.cleared++
		g.endEncounter(telemetry.OutcomeWon)
	case ModeLose:
		g.endEncounter(telemetry.OutcomeLost)
	}
	return res.Next
}

func (m *encounterMode) Draw(g *Game, p Presenter) {
	g.drawShip(p)
	p.DrawWave(g.state.Wave)
}
