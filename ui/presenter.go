package ui

import (
	"fmt"
	"math"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/evac/camera"
	"github.com/pthm-cable/evac/components"
	"github.com/pthm-cable/evac/config"
	"github.com/pthm-cable/evac/game"
	"github.com/pthm-cable/evac/systems"
)

var powerColors = [...]rl.Color{
	components.PowerOff:       {R: 70, G: 70, B: 70, A: 255},
	components.PowerOn:        {R: 90, G: 190, B: 110, A: 255},
	components.PowerOverdrive: {R: 240, G: 150, B: 50, A: 255},
}

var valueColors = [components.NumValueTypes]rl.Color{
	components.ValueHeat:   {R: 220, G: 80, B: 60, A: 255},
	components.ValueHP:     {R: 120, G: 200, B: 120, A: 255},
	components.ValueEvade:  {R: 120, G: 170, B: 230, A: 255},
	components.ValueShield: {R: 90, G: 140, B: 240, A: 255},
	components.ValueCharge: {R: 240, G: 220, B: 90, A: 255},
	components.ValueGen:    {R: 200, G: 120, B: 240, A: 255},
	components.ValueO2:     {R: 120, G: 220, B: 220, A: 255},
	components.ValueCargo:  {R: 230, G: 230, B: 230, A: 255},
}

// Presenter draws the game into a texture at game resolution and scales it
// to the window.
type Presenter struct {
	cfg      *config.Config
	cam      *camera.Camera
	input    *Input
	assets   *Assets
	overlays *OverlayRegistry
	renderer *Renderer
	hud      *HUD
	perf     *PerfPanel
	controls *ControlsPanel
	target   rl.RenderTexture2D

	simTime float64
}

// NewPresenter creates a presenter. Call after the window is open.
func NewPresenter(cfg *config.Config, cam *camera.Camera, input *Input, assets *Assets) *Presenter {
	w, h := int32(cfg.Screen.GameWidth), int32(cfg.Screen.GameHeight)
	return &Presenter{
		cfg:      cfg,
		cam:      cam,
		input:    input,
		assets:   assets,
		overlays: NewOverlayRegistry(),
		renderer: NewRenderer(),
		hud:      NewHUD(w),
		perf:     NewPerfPanel(10, 10),
		controls: NewControlsPanel(10, 10, 180),
		target:   rl.LoadRenderTexture(w, h),
	}
}

// Unload releases the render texture.
func (p *Presenter) Unload() {
	rl.UnloadRenderTexture(p.target)
}

// Overlays returns the debug overlay registry.
func (p *Presenter) Overlays() *OverlayRegistry {
	return p.overlays
}

// HandleKeys toggles debug overlays.
func (p *Presenter) HandleKeys() {
	if rl.IsKeyPressed(rl.KeyF12) {
		p.controls.Toggle()
	}
	for key := rl.GetKeyPressed(); key != 0; key = rl.GetKeyPressed() {
		p.overlays.HandleKeyPress(key)
	}
}

// BeginFrame starts drawing into the game texture.
func (p *Presenter) BeginFrame() {
	rl.BeginTextureMode(p.target)
	rl.ClearBackground(p.renderer.Theme.Background)
}

// EndFrame scales the game texture to the window and draws screen-space
// panels on top.
func (p *Presenter) EndFrame(dialogs *Dialogs, frames *game.FrameStats) {
	rl.EndTextureMode()

	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)
	x, y, w, h := p.cam.Dest()
	// Render textures are stored upside down.
	src := rl.Rectangle{X: 0, Y: 0, Width: float32(p.target.Texture.Width), Height: -float32(p.target.Texture.Height)}
	rl.DrawTexturePro(p.target.Texture, src, rl.Rectangle{X: x, Y: y, Width: w, Height: h}, rl.Vector2{}, 0, rl.White)

	if dialogs != nil {
		dialogs.Draw(p.cam)
	}
	py := int32(10)
	if p.controls.IsVisible() {
		py = p.controls.Draw(p.overlays) + 10
	}
	if frames != nil && p.overlays.IsEnabled(OverlayFrameTimes) {
		p.perf.SetPosition(10, py)
		p.perf.Draw(frames)
	}
	rl.EndDrawing()
}

// DrawShip draws every slot panel and the weapon shots.
func (p *Presenter) DrawShip(st *game.ShipState, stats systems.ShipStats) {
	p.simTime = st.SimTime
	queue := map[int]int{}
	for i, idx := range st.Priority.Items() {
		queue[idx] = i + 1
	}
	for i := range st.Slots {
		p.drawSlot(&st.Slots[i], p.cfg.Derived.SlotRects[i], queue[i])
	}
	for i := range st.Slots {
		s := &st.Slots[i]
		if s.Firing > 0 {
			c := p.cfg.Derived.SlotRects[i].Center()
			rl.DrawLineEx(rl.Vector2{X: c.X, Y: c.Y}, rl.Vector2{X: s.FireAt.X, Y: s.FireAt.Y}, 2, valueColors[components.ValueCharge])
		}
	}
}

func (p *Presenter) drawSlot(s *components.Slot, r components.Rect, queuePos int) {
	theme := p.renderer.Theme
	def := &p.cfg.Derived.Panels[s.Type]
	x, y, w, h := int32(r.X), int32(r.Y), int32(r.W), int32(r.H)

	if !s.Alive() {
		rl.DrawRectangle(x, y, w, h, rl.Color{R: 25, G: 20, B: 20, A: 255})
		rl.DrawRectangleLines(x, y, w, h, theme.Disabled)
		rl.DrawLine(x, y, x+w, y+h, theme.Critical)
		rl.DrawLine(x+w, y, x, y+h, theme.Critical)
		rl.DrawText(def.Name, x+3, y+3, 8, theme.Disabled)
		return
	}

	border := theme.PanelBorder
	switch {
	case s.AutoCool:
		if math.Mod(p.simTime*4, 2) < 1 {
			border = theme.Critical
		}
	case s.AutoOff:
		border = theme.Warning
	}
	bg := theme.PanelBg
	if p.simTime-s.DamagedAt < 0.5 && s.DamagedAt > 0 {
		bg = rl.Color{R: 80, G: 25, B: 25, A: 240}
	}
	rl.DrawRectangle(x, y, w, h, bg)
	rl.DrawRectangleLines(x, y, w, h, border)
	rl.DrawText(def.Name, x+3, y+2, 8, theme.LabelColor)

	if def.Powered {
		for lvl := 0; lvl < p.cfg.Sim.MaxPower-1; lvl++ {
			c := powerColors[components.PowerOff]
			if int(s.Power) > lvl {
				c = powerColors[s.Power]
			}
			rl.DrawRectangle(x+w-8-int32(lvl)*6, y+3, 4, 4, c)
		}
	}

	row := y + 11
	for _, v := range def.Values {
		if v == components.ValueNone {
			row += 7
			continue
		}
		vd := &p.cfg.Derived.Values[v]
		p.renderer.DrawValueBar(x+3, row, w-6, vd.Label, s.Value(v), vd.Max, valueColors[v])
		row += 7
	}

	if p.overlays.IsEnabled(OverlaySlotInfo) {
		rl.DrawText(fmt.Sprintf("#%d %s %.0f", s.Idx, s.Power, s.HeatDamage), x+2, y+h-8, 8, rl.White)
	}
	if queuePos > 0 && p.overlays.IsEnabled(OverlayPowerQueue) {
		rl.DrawText(fmt.Sprintf("%d", queuePos), x+w-10, y+h-9, 8, theme.Warning)
	}
	if p.overlays.IsEnabled(OverlayHitboxes) {
		rl.DrawRectangleLines(x-1, y-1, w+2, h+2, rl.Magenta)
	}
}

// DrawWave draws the enemy fighters and their shots.
func (p *Presenter) DrawWave(w *systems.Wave) {
	if w == nil {
		return
	}
	theme := p.renderer.Theme
	size := p.cfg.Enemy.ShipH * w.Scale
	tex, hasTex := p.assets.Texture(TextureFighter)

	w.EachFighter(func(i int, pos *components.Position, f *components.Fighter) {
		if f.Firing > 0 {
			c := theme.Critical
			if f.Missed {
				c = theme.Disabled
			}
			rl.DrawLineEx(rl.Vector2{X: pos.X, Y: pos.Y}, rl.Vector2{X: f.FireAt.X, Y: f.FireAt.Y}, 1, c)
		}

		tint := rl.White
		if !f.Alive() {
			tint = theme.Disabled
		}
		if hasTex {
			src := rl.Rectangle{Width: float32(tex.Width), Height: float32(tex.Height)}
			dst := rl.Rectangle{X: pos.X - size/2, Y: pos.Y - size/2, Width: size, Height: size}
			rl.DrawTexturePro(tex, src, dst, rl.Vector2{}, 0, tint)
		} else {
			drawFighter(pos.X, pos.Y, size, f.Alive())
		}

		if f.Alive() && p.overlays.IsEnabled(OverlayFighterTimer) {
			rl.DrawText(fmt.Sprintf("%.1f", f.FireCountdown), int32(pos.X-size/2), int32(pos.Y+size/2), 8, rl.White)
		}
	})
}

// drawFighter draws a fighter pointing at the ship.
func drawFighter(x, y, size float32, alive bool) {
	half := size / 2
	tip := rl.Vector2{X: x - half, Y: y}
	top := rl.Vector2{X: x + half, Y: y - half*0.6}
	bottom := rl.Vector2{X: x + half, Y: y + half*0.6}
	if alive {
		rl.DrawTriangle(tip, bottom, top, rl.Color{R: 200, G: 60, B: 60, A: 255})
		return
	}
	rl.DrawTriangleLines(tip, bottom, top, rl.Color{R: 90, G: 60, B: 60, A: 255})
}

// DrawSummary draws the HUD.
func (p *Presenter) DrawSummary(s game.Summary) {
	p.hud.Draw(s, int32(p.cfg.Screen.GameHeight))
}

// DrawText draws text in game pixels. Newlines start a new line.
func (p *Presenter) DrawText(x, y float32, size int, text string) {
	lineH := float32(size) + 2
	for i, line := range strings.Split(text, "\n") {
		rl.DrawText(line, int32(x), int32(y+float32(i)*lineH), int32(size), p.renderer.Theme.ValueColor)
	}
}

// DrawButton draws a clickable rect. Hover comes from the pointer position.
func (p *Presenter) DrawButton(r components.Rect, label string, enabled bool) {
	p.renderer.DrawButton(r, label, enabled, enabled && p.input.IsPointerOver(r))
	if p.overlays.IsEnabled(OverlayHitboxes) {
		rl.DrawRectangleLines(int32(r.X)-1, int32(r.Y)-1, int32(r.W)+2, int32(r.H)+2, rl.Magenta)
	}
}

var _ game.Presenter = (*Presenter)(nil)
