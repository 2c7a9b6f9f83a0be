package ui

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/evac/components"
	"github.com/pthm-cable/evac/game"
	"github.com/pthm-cable/evac/storage"
)

func TestClickConsumedOncePerFrame(t *testing.T) {
	var in Input
	a := components.Rect{X: 0, Y: 0, W: 10, H: 10}
	b := components.Rect{X: 5, Y: 5, W: 10, H: 10}

	in.Set(components.Vec2{X: 7, Y: 7}, true, false)
	if !in.ClickConsumed(a, game.ButtonPrimary) {
		t.Fatal("click inside a not reported")
	}
	if in.ClickConsumed(b, game.ButtonPrimary) {
		t.Error("overlapping rect got the same click")
	}
	if in.ClickConsumed(a, game.ButtonSecondary) {
		t.Error("secondary reported without a press")
	}

	in.Set(components.Vec2{X: 7, Y: 7}, true, false)
	if !in.ClickConsumed(b, game.ButtonPrimary) {
		t.Error("new frame did not reset consumption")
	}
}

func TestClickOutsideIsKept(t *testing.T) {
	var in Input
	in.Set(components.Vec2{X: 50, Y: 50}, true, false)
	if in.ClickConsumed(components.Rect{W: 10, H: 10}, game.ButtonPrimary) {
		t.Fatal("click outside reported")
	}
	if !in.ClickConsumed(components.Rect{X: 45, Y: 45, W: 10, H: 10}, game.ButtonPrimary) {
		t.Error("miss consumed the click")
	}
}

func TestDialogQueue(t *testing.T) {
	d := NewDialogs()
	var got []string
	d.ShowModal("first", "", []game.DialogButton{
		{Label: "a", OnConfirm: func() { got = append(got, "a") }},
		{Label: "b", OnConfirm: func() { got = append(got, "b") }},
	})
	d.ShowModal("second", "", nil)

	if !d.Active() {
		t.Fatal("dialog not active")
	}
	d.Confirm(1)
	if !d.Active() {
		t.Fatal("second dialog not shown")
	}
	d.Confirm(0)
	if d.Active() {
		t.Error("dialogs left open")
	}
	if !reflect.DeepEqual(got, []string{"b"}) {
		t.Errorf("confirmed = %v, want [b]", got)
	}
}

func TestWrapText(t *testing.T) {
	tests := []struct {
		text  string
		width int
		want  []string
	}{
		{"one two three", 7, []string{"one two", "three"}},
		{"one two\nthree", 20, []string{"one two", "three"}},
		{"averyveryverylongword x", 5, []string{"averyveryverylongword", "x"}},
		{"a\n\nb", 5, []string{"a", "", "b"}},
	}

	for _, tt := range tests {
		if got := wrapText(tt.text, tt.width); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("wrapText(%q, %d) = %q, want %q", tt.text, tt.width, got, tt.want)
		}
	}
}

func TestOverlayRegistry(t *testing.T) {
	r := NewOverlayRegistry()
	if len(r.All()) == 0 {
		t.Fatal("no default overlays")
	}
	id, on, ok := r.HandleKeyPress(rl.KeyF1)
	if !ok || id != OverlaySlotInfo || !on {
		t.Fatalf("F1 = %s %v %v", id, on, ok)
	}
	if !r.IsEnabled(OverlaySlotInfo) {
		t.Error("slot info not enabled")
	}

	r.Register(OverlayDescriptor{ID: "solo", Name: "Solo", Category: "debug", Exclusive: []OverlayID{OverlaySlotInfo}})
	r.Toggle("solo")
	if r.IsEnabled(OverlaySlotInfo) {
		t.Error("exclusive overlay left slot info on")
	}
	if got := r.EnabledOverlays(); !reflect.DeepEqual(got, []OverlayID{"solo"}) {
		t.Errorf("enabled = %v", got)
	}
	if cats := r.Categories(); !reflect.DeepEqual(cats, []string{"ship", "enemy", "debug"}) {
		t.Errorf("categories = %v", cats)
	}
}

func TestOverlaysPersist(t *testing.T) {
	ns, err := storage.Open("", "evac.")
	if err != nil {
		t.Fatal(err)
	}
	r := NewOverlayRegistry()
	r.SetEnabled(OverlayPowerQueue, true)
	r.SetEnabled(OverlayHitboxes, true)
	r.Save(ns)

	back := NewOverlayRegistry()
	back.Load(ns)
	want := []OverlayID{OverlayPowerQueue, OverlayHitboxes}
	if got := back.EnabledOverlays(); !reflect.DeepEqual(got, want) {
		t.Errorf("restored %v, want %v", got, want)
	}

	// Stale ids from older builds are skipped.
	if err := ns.Set(overlaysKey, "bogus,"+string(OverlaySlotInfo)); err != nil {
		t.Fatal(err)
	}
	fresh := NewOverlayRegistry()
	fresh.Load(ns)
	if got := fresh.EnabledOverlays(); !reflect.DeepEqual(got, []OverlayID{OverlaySlotInfo}) {
		t.Errorf("restored %v, want only slot info", got)
	}
}

func TestAssetsLoadOnePerPoll(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, string(TextureFighter)), []byte("png"), 0o644); err != nil {
		t.Fatal(err)
	}

	fail := true
	a := NewAssets(dir)
	a.load = func(string) (rl.Texture2D, error) {
		if fail {
			return rl.Texture2D{}, errors.New("bad image")
		}
		return rl.Texture2D{ID: 1, Width: 8, Height: 8}, nil
	}

	if n := a.Pending(); n != 1 || a.Err() == nil {
		t.Fatalf("pending = %d err = %v, want 1 and an error", n, a.Err())
	}
	fail = false
	if n := a.Pending(); n != 0 || a.Err() != nil {
		t.Fatalf("pending = %d err = %v after retry", n, a.Err())
	}
	if _, ok := a.Texture(TextureFighter); !ok {
		t.Error("fighter texture missing")
	}
}

func TestAssetsSkipMissingFiles(t *testing.T) {
	a := NewAssets(t.TempDir())
	if n := a.Pending(); n != 0 || a.Err() != nil {
		t.Fatalf("pending = %d err = %v", n, a.Err())
	}
	if _, ok := a.Texture(TextureFighter); ok {
		t.Error("missing sprite reported as loaded")
	}
	if n := NewAssets("").Pending(); n != 0 {
		t.Errorf("empty dir pending = %d", n)
	}
}
