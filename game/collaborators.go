package game

import (
	"github.com/pthm-cable/evac/components"
	"github.com/pthm-cable/evac/scores"
	"github.com/pthm-cable/evac/systems"
)

// Button identifies a pointer button.
type Button uint8

const (
	ButtonPrimary Button = iota
	ButtonSecondary
)

// Input is polled once per frame. A click inside a rect is reported at most
// once per frame.
type Input interface {
	IsPointerOver(r components.Rect) bool
	ClickConsumed(r components.Rect, b Button) bool
}

// DialogButton is one choice in a modal dialog. OnConfirm may be nil.
type DialogButton struct {
	Label     string
	OnConfirm func()
}

// Dialogs shows modal dialogs. While one is active the simulation is frozen.
type Dialogs interface {
	ShowModal(title, body string, buttons []DialogButton)
	Active() bool
}

// Presenter draws the current frame. It only receives state, never decides.
type Presenter interface {
	DrawShip(st *ShipState, stats systems.ShipStats)
	DrawWave(w *systems.Wave)
	DrawSummary(s Summary)
	DrawText(x, y float32, size int, text string)
	DrawButton(r components.Rect, label string, enabled bool)
}

// ScoreStore persists high scores. Requests complete asynchronously and are
// polled by the state machine.
type ScoreStore interface {
	Submit(category string, s scores.Score) *scores.Request
	Fetch(category string) *scores.Request
}

// Namespace is a prefixed key/value store for local saves.
type Namespace interface {
	Get(key string) (string, bool)
	Set(key, value string) error
}

// Assets reports how many assets are still loading.
type Assets interface {
	Pending() int
	Err() error
}

// Summary is the ship and wave readout shown beside the ship.
type Summary struct {
	Chapter  int
	Name     string
	O2       float64
	O2Max    float64
	Deaths   int
	Cargo    int
	Stats    systems.ShipStats
	Enemies  int
	Living   int
	Messages []Message
}

// autoDialogs confirms the first button of every dialog immediately.
// Used when running without a window.
type autoDialogs struct{}

func (autoDialogs) ShowModal(_, _ string, buttons []DialogButton) {
	if len(buttons) > 0 && buttons[0].OnConfirm != nil {
		buttons[0].OnConfirm()
	}
}

func (autoDialogs) Active() bool { return false }

// noInput never reports a click.
type noInput struct{}

func (noInput) IsPointerOver(components.Rect) bool         { return false }
func (noInput) ClickConsumed(components.Rect, Button) bool { return false }

// memNamespace keeps local saves in memory.
type memNamespace map[string]string

func (m memNamespace) Get(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

func (m memNamespace) Set(key, value string) error {
	m[key] = value
	return nil
}
