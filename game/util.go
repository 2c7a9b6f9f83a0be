package game

import (
	"fmt"
	"log/slog"
)

// assertf flags a broken invariant. Debug builds panic; otherwise the
// violation is logged and play continues.
func assertf(debug, ok bool, format string, args ...any) {
	if ok {
		return
	}
	err := fmt.Errorf(format, args...)
	if debug {
		panic(err)
	}
	slog.Error("invariant violated", "error", err)
}

func (g *Game) assertf(ok bool, format string, args ...any) {
	assertf(g.cfg.Debug, ok, format, args...)
}
