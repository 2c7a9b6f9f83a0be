package renderer

import "testing"

func TestStarfieldWraps(t *testing.T) {
	b := NewBackgroundRenderer(384, 288, 50, 1, 0, 0, 0)
	b.Speed = 1000
	for i := 0; i < 100; i++ {
		b.Update(0.1)
	}
	for i, p := range b.Positions() {
		if p[0] < 0 || p[0] >= 384 || p[1] < 0 || p[1] >= 288 {
			t.Fatalf("star %d left the screen: %v", i, p)
		}
	}
}

func TestStarfieldIsSeeded(t *testing.T) {
	a := NewBackgroundRenderer(384, 288, 20, 7, 0, 0, 0).Positions()
	b := NewBackgroundRenderer(384, 288, 20, 7, 0, 0, 0).Positions()
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("star %d differs for the same seed", i)
		}
	}
}
