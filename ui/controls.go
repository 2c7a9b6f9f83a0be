package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// ControlsPanel lists the debug overlays and their keys in screen pixels.
type ControlsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
	visible  bool
}

// NewControlsPanel creates a hidden controls panel.
func NewControlsPanel(x, y, width int32) *ControlsPanel {
	return &ControlsPanel{renderer: NewRenderer(), x: x, y: y, width: width}
}

// IsVisible returns whether the panel is shown.
func (c *ControlsPanel) IsVisible() bool {
	return c.visible
}

// Toggle switches panel visibility.
func (c *ControlsPanel) Toggle() bool {
	c.visible = !c.visible
	return c.visible
}

// height is the panel height for the registry's current contents.
func (c *ControlsPanel) height(overlays *OverlayRegistry) int32 {
	t := c.renderer.Theme
	rows := int32(1) // title
	for _, cat := range overlays.Categories() {
		rows += int32(len(overlays.ByCategory(cat))) + 1
	}
	return rows*t.LineHeight + t.Padding*2
}

// Draw renders the panel and returns the y just below it.
func (c *ControlsPanel) Draw(overlays *OverlayRegistry) int32 {
	if !c.visible {
		return c.y
	}
	r := c.renderer
	t := r.Theme
	h := c.height(overlays)
	r.DrawPanel(c.x, c.y, c.width, h)

	x := c.x + t.Padding
	y := r.DrawSectionHeader(x, c.y+t.Padding, "Overlays [F12]")
	for _, cat := range overlays.Categories() {
		rl.DrawText(categoryLabel(cat), x, y, t.FontSize, t.Info)
		y += t.LineHeight
		for _, d := range overlays.ByCategory(cat) {
			c.drawToggle(x, y, d, overlays.IsEnabled(d.ID))
			y += t.LineHeight
		}
	}
	return c.y + h
}

func (c *ControlsPanel) drawToggle(x, y int32, d OverlayDescriptor, on bool) {
	t := c.renderer.Theme
	box, name := t.Disabled, t.LabelColor
	if on {
		box, name = t.BarFillHigh, rl.White
	}
	rl.DrawRectangle(x, y+2, 6, 6, box)
	rl.DrawText(d.Name, x+10, y, t.FontSize, name)
	if d.KeyLabel != "" {
		key := fmt.Sprintf("[%s]", d.KeyLabel)
		w := rl.MeasureText(key, t.FontSize)
		rl.DrawText(key, c.x+c.width-t.Padding-w, y, t.FontSize, t.Disabled)
	}
}

func categoryLabel(cat string) string {
	switch cat {
	case "ship":
		return "Ship"
	case "enemy":
		return "Enemy"
	case "debug":
		return "Debug"
	}
	return cat
}
