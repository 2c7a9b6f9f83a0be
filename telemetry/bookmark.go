package telemetry

import (
	"fmt"
	"log/slog"
)

// BookmarkType identifies the type of bookmark.
type BookmarkType string

const (
	BookmarkFlawless    BookmarkType = "flawless"
	BookmarkCloseCall   BookmarkType = "close_call"
	BookmarkHeavyLosses BookmarkType = "heavy_losses"
	BookmarkFastClear   BookmarkType = "fast_clear"
	BookmarkToughWave   BookmarkType = "tough_wave"
)

// Bookmark marks a notable encounter.
type Bookmark struct {
	Type        BookmarkType `csv:"type"`
	Chapter     int          `csv:"chapter"`
	SimTime     float64      `csv:"sim_time"`
	Description string       `csv:"description"`
}

// LogBookmark logs the bookmark using slog.
func (b Bookmark) LogBookmark() {
	slog.Info("bookmark",
		"type", string(b.Type),
		"chapter", b.Chapter,
		"sim_time", b.SimTime,
		"description", b.Description,
	)
}

// BookmarkDetector flags encounters worth a second look.
type BookmarkDetector struct {
	// Rolling history (circular buffer)
	history     []EncounterStats
	historySize int
	historyIdx  int
	historyFull bool

	closeCallHP float64
}

// NewBookmarkDetector creates a detector with the given history size.
// closeCallHP is the slot hp at or below which a won encounter counts as a
// close call.
func NewBookmarkDetector(historySize int, closeCallHP float64) *BookmarkDetector {
	if historySize < 3 {
		historySize = 3
	}
	return &BookmarkDetector{
		history:     make([]EncounterStats, historySize),
		historySize: historySize,
		closeCallHP: closeCallHP,
	}
}

// Check analyzes a finished encounter and returns any triggered bookmarks.
func (bd *BookmarkDetector) Check(stats EncounterStats) []Bookmark {
	var bookmarks []Bookmark
	add := func(t BookmarkType, format string, args ...any) {
		bookmarks = append(bookmarks, Bookmark{
			Type:        t,
			Chapter:     stats.Chapter,
			SimTime:     stats.StartTime + stats.Duration,
			Description: fmt.Sprintf(format, args...),
		})
	}

	won := stats.Outcome == string(OutcomeWon)
	if won && stats.HullDamage == 0 && stats.HeatDamage == 0 && stats.PassengersLost == 0 {
		add(BookmarkFlawless, "Chapter %d cleared without a scratch", stats.Chapter)
	}
	if won && (stats.MinSlotHP <= bd.closeCallHP || stats.LiveSlots <= 2) {
		add(BookmarkCloseCall, "Won with %d live slots, weakest at %.0f hp", stats.LiveSlots, stats.MinSlotHP)
	}
	if lost := stats.PassengersLost; lost >= 5 || (lost > 0 && lost*2 >= stats.Cargo+lost) {
		add(BookmarkHeavyLosses, "%d passengers lost, %d still aboard", lost, stats.Cargo)
	}

	if b := bd.checkFastClear(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}
	if b := bd.checkToughWave(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}

	bd.addToHistory(stats)
	return bookmarks
}

func (bd *BookmarkDetector) addToHistory(stats EncounterStats) {
	bd.history[bd.historyIdx] = stats
	bd.historyIdx = (bd.historyIdx + 1) % bd.historySize
	if bd.historyIdx == 0 {
		bd.historyFull = true
	}
}

func (bd *BookmarkDetector) getHistory() []EncounterStats {
	if bd.historyFull {
		return bd.history
	}
	return bd.history[:bd.historyIdx]
}

func (bd *BookmarkDetector) checkFastClear(stats EncounterStats) *Bookmark {
	if stats.Outcome != string(OutcomeWon) || stats.Duration <= 0 {
		return nil
	}
	var total float64
	var n int
	for _, h := range bd.getHistory() {
		if h.Outcome == string(OutcomeWon) {
			total += h.Duration
			n++
		}
	}
	if n < 3 {
		return nil
	}
	avg := total / float64(n)
	if stats.Duration*2 < avg {
		return &Bookmark{
			Type:        BookmarkFastClear,
			Chapter:     stats.Chapter,
			SimTime:     stats.StartTime + stats.Duration,
			Description: fmt.Sprintf("Cleared in %.1f ticks against an average of %.1f", stats.Duration, avg),
		}
	}
	return nil
}

func (bd *BookmarkDetector) checkToughWave(stats EncounterStats) *Bookmark {
	if stats.EnemyShots < 5 {
		return nil
	}
	var shots, hits int
	for _, h := range bd.getHistory() {
		shots += h.EnemyShots
		hits += h.EnemyShots - h.EnemyMisses
	}
	if shots < 10 || hits == 0 {
		return nil
	}
	avg := float64(hits) / float64(shots)
	if stats.EnemyHitRate > avg*2 {
		return &Bookmark{
			Type:        BookmarkToughWave,
			Chapter:     stats.Chapter,
			SimTime:     stats.StartTime + stats.Duration,
			Description: fmt.Sprintf("Enemy hit rate %.2f is %.1fx average (%.2f)", stats.EnemyHitRate, stats.EnemyHitRate/avg, avg),
		}
	}
	return nil
}
