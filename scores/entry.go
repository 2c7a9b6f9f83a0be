// Package scores keeps high-score boards locally or on a shared server.
package scores

import (
	"log/slog"
	"time"
)

// Score is the result of one run.
type Score struct {
	Level  int `json:"level"`
	Cargo  int `json:"cargo"`
	Deaths int `json:"deaths"`
}

// Better reports whether s ranks above o: deeper level first, then more
// passengers delivered, then fewer deaths.
func (s Score) Better(o Score) bool {
	if s.Level != o.Level {
		return s.Level > o.Level
	}
	if s.Cargo != o.Cargo {
		return s.Cargo > o.Cargo
	}
	return s.Deaths < o.Deaths
}

// Entry is one row of a board.
type Entry struct {
	Category string `csv:"category" json:"category"`
	Player   string `csv:"player" json:"player"`
	Level    int    `csv:"level" json:"level"`
	Cargo    int    `csv:"cargo" json:"cargo"`
	Deaths   int    `csv:"deaths" json:"deaths"`
	Time     int64  `csv:"time" json:"time"`
}

// NewEntry stamps a score for a player.
func NewEntry(category, player string, s Score) Entry {
	return Entry{
		Category: category,
		Player:   player,
		Level:    s.Level,
		Cargo:    s.Cargo,
		Deaths:   s.Deaths,
		Time:     time.Now().Unix(),
	}
}

// Score returns the ranked part of the entry.
func (e Entry) Score() Score {
	return Score{Level: e.Level, Cargo: e.Cargo, Deaths: e.Deaths}
}

// LogValue implements slog.LogValuer for structured logging.
func (e Entry) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("category", e.Category),
		slog.String("player", e.Player),
		slog.Int("level", e.Level),
		slog.Int("cargo", e.Cargo),
		slog.Int("deaths", e.Deaths),
	)
}
