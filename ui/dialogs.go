package ui

import (
	"strings"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/evac/camera"
	"github.com/pthm-cable/evac/game"
)

type modal struct {
	title   string
	body    string
	buttons []game.DialogButton
}

// Dialogs shows one modal at a time in screen space with raygui. Further
// requests queue behind the open one.
type Dialogs struct {
	queue []modal
	width float32 // in game pixels
}

// NewDialogs creates an empty dialog queue.
func NewDialogs() *Dialogs {
	return &Dialogs{width: 240}
}

// ShowModal queues a dialog.
func (d *Dialogs) ShowModal(title, body string, buttons []game.DialogButton) {
	if len(buttons) == 0 {
		buttons = []game.DialogButton{{Label: "OK"}}
	}
	d.queue = append(d.queue, modal{title: title, body: body, buttons: buttons})
}

// Active reports whether a dialog is open.
func (d *Dialogs) Active() bool {
	return len(d.queue) > 0
}

// Confirm closes the open dialog as if button i was pressed.
func (d *Dialogs) Confirm(i int) {
	if len(d.queue) == 0 {
		return
	}
	m := d.queue[0]
	d.queue = d.queue[1:]
	if i >= 0 && i < len(m.buttons) && m.buttons[i].OnConfirm != nil {
		m.buttons[i].OnConfirm()
	}
}

// Draw renders the open dialog and handles its buttons.
func (d *Dialogs) Draw(cam *camera.Camera) {
	if len(d.queue) == 0 {
		return
	}
	m := d.queue[0]
	s := cam.Scale
	fontSize := int32(10 * s)
	lines := wrapText(m.body, int(d.width/6))
	lineH := float32(fontSize) + 2*s

	w := d.width * s
	h := 24*s + float32(len(lines))*lineH + 28*s
	x := cam.OffsetX + (cam.GameW*s-w)/2
	y := cam.OffsetY + (cam.GameH*s-h)/2

	rl.DrawRectangle(0, 0, int32(cam.ViewportW), int32(cam.ViewportH), rl.Color{A: 140})
	gui.Panel(rl.Rectangle{X: x, Y: y, Width: w, Height: h}, m.title)

	ty := y + 28*s
	for _, line := range lines {
		rl.DrawText(line, int32(x+8*s), int32(ty), fontSize, rl.DarkGray)
		ty += lineH
	}

	bw := (w - 8*s*float32(len(m.buttons)+1)) / float32(len(m.buttons))
	bx := x + 8*s
	for i, b := range m.buttons {
		if gui.Button(rl.Rectangle{X: bx, Y: y + h - 22*s, Width: bw, Height: 16 * s}, b.Label) {
			d.Confirm(i)
			return
		}
		bx += bw + 8*s
	}
}

// wrapText breaks text into lines of at most width runes at word
// boundaries. Existing newlines are kept.
func wrapText(text string, width int) []string {
	if width < 1 {
		width = 1
	}
	var lines []string
	for _, para := range strings.Split(text, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		line := words[0]
		for _, w := range words[1:] {
			if len([]rune(line))+1+len([]rune(w)) > width {
				lines = append(lines, line)
				line = w
				continue
			}
			line += " " + w
		}
		lines = append(lines, line)
	}
	return lines
}

var _ game.Dialogs = (*Dialogs)(nil)
