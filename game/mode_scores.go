package game

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/pthm-cable/evac/scores"
	"github.com/pthm-cable/evac/telemetry"
)

// retryDelay is how long a failed score request waits before retrying.
const retryDelay = 2 * time.Second

// endMode closes a run, won or lost, and submits its score.
type endMode struct {
	id      ModeID
	outcome telemetry.Outcome

	score   scores.Score
	req     *scores.Request
	waited  time.Duration
	retries int
}

func (m *endMode) ID() ModeID { return m.id }

func (m *endMode) Enter(g *Game) {
	m.score = g.endRun(m.outcome)
	m.retries = 0
	m.submit(g)
}

func (m *endMode) submit(g *Game) {
	m.req = g.scores.Submit(g.cfg.Scores.Category, m.score)
	m.waited = 0
}

func (m *endMode) Update(g *Game, dt time.Duration) ModeID {
	m.waited += dt
	if !m.req.Pending() && m.req.Err() != nil && m.waited >= retryDelay {
		m.retries++
		slog.Warn("score submit failed, retrying", "error", m.req.Err(), "retries", m.retries)
		m.submit(g)
	}
	if g.autopilot != nil {
		if m.req.Pending() || m.req.Err() != nil {
			return m.id
		}
		return ModeScores
	}
	if !g.dialogs.Active() && g.input.ClickConsumed(g.continueRect(), ButtonPrimary) {
		return ModeScores
	}
	return m.id
}

func (m *endMode) Draw(g *Game, p Presenter) {
	title := "SHIP LOST"
	if m.id == ModeWin {
		title = "THE FLEET IS SAFE"
	}
	p.DrawText(16, 24, 20, title)
	p.DrawText(16, 56, 10, fmt.Sprintf("Encounters cleared: %d\nPassengers delivered: %d\nPassengers lost: %d",
		m.score.Level, m.score.Cargo, m.score.Deaths))

	status := "Score saved"
	switch {
	case m.req.Pending():
		status = "Submitting score..."
	case m.req.Err() != nil:
		status = "Score not saved, retrying"
	}
	p.DrawText(16, 110, 10, status)
	p.DrawButton(g.continueRect(), "Continue", true)
}

// scoresMode fetches and shows the high score board.
type scoresMode struct {
	req    *scores.Request
	waited time.Duration
	done   bool
}

func (m *scoresMode) ID() ModeID { return ModeScores }

func (m *scoresMode) Enter(g *Game) {
	m.done = false
	m.fetch(g)
}

func (m *scoresMode) fetch(g *Game) {
	m.req = g.scores.Fetch(g.cfg.Scores.Category)
	m.waited = 0
}

func (m *scoresMode) Update(g *Game, dt time.Duration) ModeID {
	m.waited += dt
	if m.req.Pending() {
		return ModeScores
	}
	if err := m.req.Err(); err != nil && m.waited >= retryDelay {
		slog.Warn("score fetch failed, retrying", "error", err)
		m.fetch(g)
		return ModeScores
	}

	if g.autopilot != nil {
		if m.req.Err() != nil {
			return ModeScores
		}
		if m.done {
			return ModeScores
		}
		m.done = true
		if g.runDone() {
			return ModeIntro
		}
		return ModeScores
	}
	if !g.dialogs.Active() && g.input.ClickConsumed(g.continueRect(), ButtonPrimary) {
		return ModeIntro
	}
	return ModeScores
}

func (m *scoresMode) Draw(g *Game, p Presenter) {
	p.DrawText(16, 16, 20, "HIGH SCORES")
	switch {
	case m.req.Pending():
		p.DrawText(16, 48, 10, "Fetching scores...")
	case m.req.Err() != nil:
		p.DrawText(16, 48, 10, "Scores unavailable, retrying")
	default:
		y := float32(48)
		for i, e := range m.req.Entries() {
			p.DrawText(16, y, 10, fmt.Sprintf("%2d. %-16s level %d  cargo %3d  lost %3d", i+1, e.Player, e.Level, e.Cargo, e.Deaths))
			y += 12
			if y > g.cfg.Derived.GameH32-56 {
				break
			}
		}
	}
	p.DrawButton(g.continueRect(), "Play again", !m.req.Pending())
}
