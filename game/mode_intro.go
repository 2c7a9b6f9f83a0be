package game

import (
	"fmt"
	"log/slog"
	"time"
)

// loadingMode waits for the host's assets. A failed load is logged and
// polled again; the host decides whether to retry.
type loadingMode struct {
	lastErr error
	pending int
}

func (m *loadingMode) ID() ModeID { return ModeLoading }

func (m *loadingMode) Enter(g *Game) {
	m.lastErr = nil
	slog.Info("loading assets")
}

func (m *loadingMode) Update(g *Game, _ time.Duration) ModeID {
	if g.assets == nil {
		return ModeIntro
	}
	m.pending = g.assets.Pending()
	if err := g.assets.Err(); err != nil {
		if m.lastErr == nil || err.Error() != m.lastErr.Error() {
			slog.Warn("asset load failed", "error", err, "pending", m.pending)
		}
		m.lastErr = err
		return ModeLoading
	}
	m.lastErr = nil
	if m.pending > 0 {
		return ModeLoading
	}
	return ModeIntro
}

func (m *loadingMode) Draw(g *Game, p Presenter) {
	text := fmt.Sprintf("Loading (%d)...", m.pending)
	if m.lastErr != nil {
		text = "Loading failed, retrying..."
	}
	p.DrawText(g.cfg.Derived.GameW32/2-40, g.cfg.Derived.GameH32/2, 10, text)
}

// introMode starts a new run and waits for the player.
type introMode struct{}

func (m *introMode) ID() ModeID { return ModeIntro }

func (m *introMode) Enter(g *Game) {
	g.newRun()
}

func (m *introMode) Update(g *Game, _ time.Duration) ModeID {
	if g.autopilot != nil {
		return ModeManage
	}
	if !g.dialogs.Active() && g.input.ClickConsumed(g.continueRect(), ButtonPrimary) {
		return ModeManage
	}
	return ModeIntro
}

const introText = "The station is falling. Keep the ship in one piece,\n" +
	"keep the bays breathing and get as many people out as you can.\n\n" +
	"Click a panel to raise its power, right-click to lower it."

func (m *introMode) Draw(g *Game, p Presenter) {
	p.DrawText(16, 24, 20, "EVAC")
	p.DrawText(16, 56, 10, introText)
	p.DrawButton(g.continueRect(), "Start", true)
}
