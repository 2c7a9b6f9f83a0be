package ui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/evac/game"
)

// HUD renders the ship readout above the ship and the combat log below it.
type HUD struct {
	renderer *Renderer
	columns  []hudColumn
}

type hudColumn struct {
	x, width int32
	section  SectionDescriptor
}

func summaryOf(data any) game.Summary { return data.(game.Summary) }

// NewHUD creates a HUD laid out for a game area of the given width.
func NewHUD(gameW int32) *HUD {
	col := gameW / 3
	return &HUD{
		renderer: NewRenderer(),
		columns: []hudColumn{
			{x: 4, width: col - 8, section: SectionDescriptor{
				ID: "life",
				Fields: []FieldDescriptor{
					{ID: "o2", Label: "O2", Widget: WidgetEnergyBar,
						Getter:    func(d any) float32 { return float32(summaryOf(d).O2) },
						MaxGetter: func(d any) float32 { return float32(summaryOf(d).O2Max) }},
					{ID: "power", Label: "POWER", Widget: WidgetText,
						TextGetter: func(d any) string {
							s := summaryOf(d).Stats
							return fmt.Sprintf("%.1f / %.1f", s.Power, s.Gen)
						}},
				},
			}},
			{x: col + 4, width: col - 8, section: SectionDescriptor{
				ID: "people",
				Fields: []FieldDescriptor{
					{ID: "cargo", Label: "ABOARD", Widget: WidgetText, Format: "%.0f",
						Getter: func(d any) float32 { return float32(summaryOf(d).Cargo) }},
					{ID: "deaths", Label: "LOST", Widget: WidgetText, Format: "%.0f",
						Color:  DefaultTheme().Critical,
						Getter: func(d any) float32 { return float32(summaryOf(d).Deaths) }},
				},
			}},
			{x: 2*col + 4, width: col - 8, section: SectionDescriptor{
				ID: "wave",
				Fields: []FieldDescriptor{
					{ID: "chapter", Label: "SECTOR", Widget: WidgetText,
						TextGetter: func(d any) string { return summaryOf(d).Name }},
					{ID: "enemies", Label: "HOSTILE", Widget: WidgetText,
						Visible: func(d any) bool { return summaryOf(d).Enemies > 0 },
						TextGetter: func(d any) string {
							s := summaryOf(d)
							return fmt.Sprintf("%d / %d", s.Living, s.Enemies)
						}},
				},
			}},
		},
	}
}

// Draw renders the readout and the message log.
func (h *HUD) Draw(sum game.Summary, gameH int32) {
	r := h.renderer
	for _, c := range h.columns {
		r.DrawSection(c.x, 4, c.section, sum, c.width)
	}

	y := gameH - int32(len(sum.Messages))*r.Theme.LineHeight - 2
	for _, m := range sum.Messages {
		rl.DrawText(m.Text, 4, y, r.Theme.FontSize, h.priorityColor(m.Priority))
		y += r.Theme.LineHeight
	}
}

func (h *HUD) priorityColor(p game.MsgPriority) rl.Color {
	switch p {
	case game.MsgCritical:
		return h.renderer.Theme.Critical
	case game.MsgWarning:
		return h.renderer.Theme.Warning
	}
	return h.renderer.Theme.Info
}

// PerfPanel renders host frame timings.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y int32) *PerfPanel {
	return &PerfPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
	}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the performance panel in screen pixels.
func (p *PerfPanel) Draw(stats *game.FrameStats) {
	x := p.x
	y := p.y
	total := stats.Total()

	rl.DrawText("Frame", x, y, 16, rl.White)
	y += 20
	rl.DrawText(fmt.Sprintf("Total: %s  FPS: %d", total.Round(time.Microsecond), rl.GetFPS()), x, y, 14, rl.Yellow)
	y += 16

	for _, sec := range stats.Sections() {
		avg := stats.Avg(sec)
		pct := float64(0)
		if total > 0 {
			pct = float64(avg) / float64(total) * 100
		}

		color := rl.LightGray
		if pct > 60 {
			color = rl.Orange
		}
		rl.DrawText(fmt.Sprintf("%-8s %8s %5.1f%%", sec, avg.Round(time.Microsecond), pct), x, y, 12, color)
		y += 14
	}
}
