package game

import (
	"fmt"
	"log/slog"
	"time"
)

// specialMode is the narrative beat after a won encounter. Chapters with a
// pickup offer to take survivors aboard at the next waypoint.
type specialMode struct {
	done bool
}

func (m *specialMode) ID() ModeID { return ModeSpecial }

func (m *specialMode) Enter(g *Game) {
	m.done = false
	st := g.state
	ch := g.chapter()
	chapter := st.Chapter

	if ch.Title == "" && ch.Body == "" {
		m.done = true
		return
	}

	finish := func() { m.done = true }
	buttons := []DialogButton{{Label: "Continue", OnConfirm: finish}}
	body := ch.Body
	if ch.Pickup > 0 && !st.PickedUp[chapter] {
		body += fmt.Sprintf("\n\n%d survivors. %d free seats.", ch.Pickup, st.Capacity(g.cfg))
		buttons = []DialogButton{
			{Label: "Take them aboard", OnConfirm: func() {
				st.PickedUp[chapter] = true
				st.Waiting += ch.Pickup
				slog.Info("survivors picked up", "chapter", chapter, "count", ch.Pickup)
				m.done = true
			}},
			{Label: "Leave them", OnConfirm: finish},
		}
	}
	g.dialogs.ShowModal(ch.Title, body, buttons)
}

func (m *specialMode) Update(g *Game, _ time.Duration) ModeID {
	if !m.done || g.dialogs.Active() {
		return ModeSpecial
	}
	g.state.Chapter++
	return ModeManage
}

func (m *specialMode) Draw(g *Game, p Presenter) {
	g.drawShip(p)
}
