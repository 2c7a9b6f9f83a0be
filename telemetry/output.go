package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/evac/config"
)

// csvSink is one CSV file whose header is written with the first record.
type csvSink struct {
	name          string
	file          *os.File
	headerWritten bool
}

func (s *csvSink) write(records any) error {
	if !s.headerWritten {
		// First write includes headers
		if err := gocsv.Marshal(records, s.file); err != nil {
			return fmt.Errorf("writing %s: %w", s.name, err)
		}
		s.headerWritten = true
		return nil
	}
	if err := gocsv.MarshalWithoutHeaders(records, s.file); err != nil {
		return fmt.Errorf("writing %s: %w", s.name, err)
	}
	return nil
}

// OutputManager handles run output with CSV logging.
type OutputManager struct {
	dir        string
	encounters *csvSink
	events     *csvSink
	perf       *csvSink
	bookmarks  *csvSink
}

// NewOutputManager creates a new output manager and initializes the output directory.
// Returns nil if dir is empty (output disabled).
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{
		dir:        dir,
		encounters: &csvSink{name: "encounters.csv"},
		events:     &csvSink{name: "events.csv"},
		perf:       &csvSink{name: "perf.csv"},
		bookmarks:  &csvSink{name: "bookmarks.csv"},
	}

	for _, sink := range om.sinks() {
		f, err := os.Create(filepath.Join(dir, sink.name))
		if err != nil {
			om.Close()
			return nil, fmt.Errorf("creating %s: %w", sink.name, err)
		}
		sink.file = f
	}

	return om, nil
}

func (om *OutputManager) sinks() []*csvSink {
	return []*csvSink{om.encounters, om.events, om.perf, om.bookmarks}
}

// WriteConfig saves the current configuration as YAML.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	configPath := filepath.Join(om.dir, "config.yaml")
	return cfg.WriteYAML(configPath)
}

// WriteEncounter writes an encounter record to encounters.csv.
func (om *OutputManager) WriteEncounter(stats EncounterStats) error {
	if om == nil {
		return nil
	}
	return om.encounters.write([]EncounterStats{stats})
}

// WriteEvents appends event records to events.csv.
func (om *OutputManager) WriteEvents(records []EventRecord) error {
	if om == nil || len(records) == 0 {
		return nil
	}
	return om.events.write(records)
}

// WritePerf writes a performance stats record to perf.csv.
func (om *OutputManager) WritePerf(stats PerfStats, simTime float64) error {
	if om == nil {
		return nil
	}
	return om.perf.write([]PerfStatsCSV{stats.ToCSV(simTime)})
}

// WriteBookmark writes a bookmark record to bookmarks.csv.
func (om *OutputManager) WriteBookmark(b Bookmark) error {
	if om == nil {
		return nil
	}
	return om.bookmarks.write([]Bookmark{b})
}

// Dir returns the output directory path.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close flushes and closes all output files.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}

	var firstErr error
	for _, sink := range om.sinks() {
		if sink == nil || sink.file == nil {
			continue
		}
		if err := sink.file.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		sink.file = nil
	}
	return firstErr
}
