package game

import (
	"fmt"
	"log/slog"
	"time"
)

// manageMode is the waypoint between encounters. At a dock the ship is
// reset to port values and new passengers wait to board. Slots may be
// refitted as cargo bays and powered up before launch.
type manageMode struct {
	docked bool
}

func (m *manageMode) ID() ModeID { return ModeManage }

func (m *manageMode) Enter(g *Game) {
	st := g.state
	ch := g.chapter()
	st.Wave = nil
	m.docked = ch.Dock
	if m.docked {
		st.Dock(g.cfg)
		st.Messages.Add(fmt.Sprintf("Docked. %d passengers waiting", ch.Passengers+st.Waiting), MsgInfo)
	}
	slog.Debug("manage", "chapter", st.Chapter, "docked", m.docked, "waiting", m.boarding(g))
}

// boarding returns how many passengers board at launch.
func (m *manageMode) boarding(g *Game) int {
	n := g.state.Waiting
	if m.docked {
		n += g.chapter().Passengers
	}
	return n
}

func (m *manageMode) Update(g *Game, _ time.Duration) ModeID {
	if g.autopilot != nil {
		g.autopilot.Fly(g)
		return m.launch(g)
	}
	if g.dialogs.Active() {
		return ModeManage
	}
	for i, r := range g.cfg.Derived.SlotRects {
		if g.state.CanConvert(i) && g.input.ClickConsumed(convertRect(r), ButtonPrimary) {
			m.convert(g, i)
		}
	}
	g.handleSlotClicks()
	if g.input.ClickConsumed(g.launchRect(), ButtonPrimary) {
		return m.launch(g)
	}
	return ModeManage
}

func (m *manageMode) convert(g *Game, idx int) {
	st := g.state
	from := st.Slots[idx].Type
	if !st.ConvertToCargo(g.cfg, idx) {
		return
	}
	g.tel.lifetime.Register(idx, st.Slots[idx].Type.String(), st.SimTime)
	st.Messages.Add(fmt.Sprintf("%s refitted as cargo bay", from), MsgInfo)
	slog.Info("slot converted", "slot", idx, "from", from)
}

// launch seats waiting passengers and starts the encounter.
func (m *manageMode) launch(g *Game) ModeID {
	st := g.state
	n := m.boarding(g)
	seated := st.Board(g.cfg, n)
	st.Waiting = 0
	if left := n - seated; left > 0 {
		st.Messages.Add(fmt.Sprintf("No room for %d passengers", left), MsgWarning)
	}
	slog.Info("launch", "chapter", st.Chapter, "boarded", seated, "left_behind", n-seated, "cargo", st.Cargo())
	return ModeEncounter
}

func (m *manageMode) Draw(g *Game, p Presenter) {
	g.drawShip(p)
	for i, r := range g.cfg.Derived.SlotRects {
		if g.state.CanConvert(i) {
			p.DrawButton(convertRect(r), "C", true)
		}
	}
	if n := m.boarding(g); n > 0 {
		p.DrawText(g.cfg.Derived.GameW32-120, g.cfg.Derived.GameH32-40, 10,
			fmt.Sprintf("%d to board, %d seats", n, g.state.Capacity(g.cfg)))
	}
	p.DrawButton(g.launchRect(), "Launch", true)
}
