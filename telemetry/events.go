// Package telemetry provides encounter statistics, highlights, perf timing and snapshots.
package telemetry

import (
	"log/slog"

	"github.com/pthm-cable/evac/systems"
)

// EventRecord is one simulation event flattened for the event log.
type EventRecord struct {
	SimTime float64 `csv:"sim_time"`
	Chapter int     `csv:"chapter"`
	Type    string  `csv:"type"`
	Slot    int     `csv:"slot"`
	Fighter int     `csv:"fighter"`
	Amount  float64 `csv:"amount"`
	Cause   string  `csv:"cause"`
}

// NewEventRecord converts a simulation event.
func NewEventRecord(simTime float64, chapter int, e systems.Event) EventRecord {
	cause := ""
	if e.Cause != systems.CauseNone {
		cause = e.Cause.String()
	}
	return EventRecord{
		SimTime: simTime,
		Chapter: chapter,
		Type:    e.Type.String(),
		Slot:    e.Slot,
		Fighter: e.Fighter,
		Amount:  e.Amount,
		Cause:   cause,
	}
}

// LogValue implements slog.LogValuer for structured logging.
func (r EventRecord) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Float64("sim_time", r.SimTime),
		slog.Int("chapter", r.Chapter),
		slog.String("type", r.Type),
	}
	if r.Slot >= 0 {
		attrs = append(attrs, slog.Int("slot", r.Slot))
	}
	if r.Fighter >= 0 {
		attrs = append(attrs, slog.Int("fighter", r.Fighter))
	}
	if r.Amount != 0 {
		attrs = append(attrs, slog.Float64("amount", r.Amount))
	}
	if r.Cause != "" {
		attrs = append(attrs, slog.String("cause", r.Cause))
	}
	return slog.GroupValue(attrs...)
}
