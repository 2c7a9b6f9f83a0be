package ui

import (
	"log/slog"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/evac/game"
)

// OverlayID uniquely identifies an overlay.
type OverlayID string

// Debug overlay IDs.
const (
	OverlaySlotInfo     OverlayID = "slot_info"
	OverlayPowerQueue   OverlayID = "power_queue"
	OverlayFighterTimer OverlayID = "fighter_timer"
	OverlayFrameTimes   OverlayID = "frame_times"
	OverlayHitboxes     OverlayID = "hitboxes"
)

// overlaysKey stores the enabled overlays between sessions.
const overlaysKey = "overlays"

// OverlayDescriptor defines an overlay that can be toggled.
type OverlayDescriptor struct {
	ID          OverlayID
	Name        string
	Description string
	Key         int32  // 0 = no key
	KeyLabel    string // e.g. "F1"
	Category    string // ship, enemy or debug
	Exclusive   []OverlayID
}

var defaultOverlays = []OverlayDescriptor{
	{OverlaySlotInfo, "Slot Info", "Slot index, power level and heat timer", rl.KeyF1, "F1", "ship", nil},
	{OverlayPowerQueue, "Power Queue", "Activation order used when power runs short", rl.KeyF2, "F2", "ship", nil},
	{OverlayFighterTimer, "Fighter Timers", "Countdown to each fighter's next shot", rl.KeyF3, "F3", "enemy", nil},
	{OverlayHitboxes, "Click Areas", "Outline every clickable rect", rl.KeyF4, "F4", "debug", nil},
	{OverlayFrameTimes, "Frame Times", "Update and draw timings", rl.KeyF5, "F5", "debug", nil},
}

// OverlayRegistry holds the overlays and which of them are on.
type OverlayRegistry struct {
	descriptors []OverlayDescriptor
	enabled     map[OverlayID]bool
}

// NewOverlayRegistry creates a registry with the debug overlays, all off.
func NewOverlayRegistry() *OverlayRegistry {
	r := &OverlayRegistry{enabled: make(map[OverlayID]bool)}
	for _, d := range defaultOverlays {
		r.Register(d)
	}
	return r
}

// Register adds an overlay.
func (r *OverlayRegistry) Register(desc OverlayDescriptor) {
	r.descriptors = append(r.descriptors, desc)
	r.enabled[desc.ID] = false
}

func (r *OverlayRegistry) get(id OverlayID) (OverlayDescriptor, bool) {
	for _, d := range r.descriptors {
		if d.ID == id {
			return d, true
		}
	}
	return OverlayDescriptor{}, false
}

// SetEnabled switches an overlay. Enabling one turns off its exclusives.
func (r *OverlayRegistry) SetEnabled(id OverlayID, on bool) {
	desc, ok := r.get(id)
	if !ok {
		return
	}
	r.enabled[id] = on
	if on {
		for _, other := range desc.Exclusive {
			r.enabled[other] = false
		}
	}
}

// Toggle flips an overlay and returns its new state.
func (r *OverlayRegistry) Toggle(id OverlayID) bool {
	r.SetEnabled(id, !r.enabled[id])
	return r.enabled[id]
}

// IsEnabled returns whether an overlay is active.
func (r *OverlayRegistry) IsEnabled(id OverlayID) bool {
	return r.enabled[id]
}

// All returns the overlays in registration order.
func (r *OverlayRegistry) All() []OverlayDescriptor {
	return r.descriptors
}

// ByCategory returns the overlays of one category.
func (r *OverlayRegistry) ByCategory(category string) []OverlayDescriptor {
	var out []OverlayDescriptor
	for _, d := range r.descriptors {
		if d.Category == category {
			out = append(out, d)
		}
	}
	return out
}

// Categories returns the categories in first-seen order.
func (r *OverlayRegistry) Categories() []string {
	var cats []string
	for _, d := range r.descriptors {
		if !containsString(cats, d.Category) {
			cats = append(cats, d.Category)
		}
	}
	return cats
}

// HandleKeyPress toggles the overlay bound to key. ok is false when no
// overlay uses the key.
func (r *OverlayRegistry) HandleKeyPress(key int32) (id OverlayID, on, ok bool) {
	for _, d := range r.descriptors {
		if d.Key == key {
			return d.ID, r.Toggle(d.ID), true
		}
	}
	return "", false, false
}

// EnabledOverlays returns the active overlays in registration order.
func (r *OverlayRegistry) EnabledOverlays() []OverlayID {
	var out []OverlayID
	for _, d := range r.descriptors {
		if r.enabled[d.ID] {
			out = append(out, d.ID)
		}
	}
	return out
}

// Load restores the overlays saved by Save. Unknown ids are ignored.
func (r *OverlayRegistry) Load(ns game.Namespace) {
	v, ok := ns.Get(overlaysKey)
	if !ok || v == "" {
		return
	}
	for _, id := range strings.Split(v, ",") {
		r.SetEnabled(OverlayID(id), true)
	}
}

// Save stores the active overlays.
func (r *OverlayRegistry) Save(ns game.Namespace) {
	ids := r.EnabledOverlays()
	names := make([]string, len(ids))
	for i, id := range ids {
		names[i] = string(id)
	}
	if err := ns.Set(overlaysKey, strings.Join(names, ",")); err != nil {
		slog.Warn("could not save overlays", "error", err)
	}
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
