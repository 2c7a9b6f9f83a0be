package telemetry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// SnapshotVersion is incremented when the format changes.
const SnapshotVersion = 1

// Snapshot holds the ship and wave state at the end of an encounter.
type Snapshot struct {
	Version int   `json:"version"`
	RNGSeed int64 `json:"rng_seed"`

	Chapter int     `json:"chapter"`
	SimTime float64 `json:"sim_time"`
	Outcome string  `json:"outcome"`

	O2        float64 `json:"o2"`
	Deaths    int     `json:"deaths"`
	Cargo     int     `json:"cargo"`
	Priority  []int   `json:"priority"`
	Suspended []int   `json:"suspended,omitempty"`

	Slots    []SlotState    `json:"slots"`
	Fighters []FighterState `json:"fighters"`

	Bookmark *Bookmark `json:"bookmark,omitempty"`
}

// SlotState holds one slot's complete state.
type SlotState struct {
	Idx   int    `json:"idx"`
	Type  string `json:"type"`
	Power int    `json:"power"`

	HP     float64 `json:"hp"`
	Heat   float64 `json:"heat"`
	Shield float64 `json:"shield,omitempty"`
	Evade  float64 `json:"evade,omitempty"`
	Charge float64 `json:"charge,omitempty"`
	Gen    float64 `json:"gen,omitempty"`
	O2     float64 `json:"o2,omitempty"`
	Cargo  float64 `json:"cargo,omitempty"`

	AutoOff   bool `json:"autooff,omitempty"`
	AutoCool  bool `json:"autocool,omitempty"`
	Converted bool `json:"converted,omitempty"`

	Lifetime *LifetimeStatsJSON `json:"lifetime,omitempty"`
}

// FighterState holds one enemy fighter's state.
type FighterState struct {
	Index         int     `json:"index"`
	X             float32 `json:"x"`
	Y             float32 `json:"y"`
	HP            int     `json:"hp"`
	FireCountdown float64 `json:"fire_countdown"`
}

// LifetimeStatsJSON is the JSON-serializable form of LifetimeStats.
type LifetimeStatsJSON struct {
	Installed      float64 `json:"installed"`
	PoweredTicks   float64 `json:"powered_ticks"`
	OverdriveTicks float64 `json:"overdrive_ticks"`
	Shots          int     `json:"shots"`
	DamageTaken    float64 `json:"damage_taken"`
	HeatDamage     float64 `json:"heat_damage"`
	Repaired       float64 `json:"repaired"`
	Absorbed       float64 `json:"absorbed"`
	Overheats      int     `json:"overheats"`
	DestroyedAt    float64 `json:"destroyed_at,omitempty"`
	DestroyedBy    string  `json:"destroyed_by,omitempty"`
}

// ToJSON converts LifetimeStats to its JSON form.
func (ls *LifetimeStats) ToJSON() *LifetimeStatsJSON {
	if ls == nil {
		return nil
	}
	return &LifetimeStatsJSON{
		Installed:      ls.Installed,
		PoweredTicks:   ls.PoweredTicks,
		OverdriveTicks: ls.OverdriveTicks,
		Shots:          ls.Shots,
		DamageTaken:    ls.DamageTaken,
		HeatDamage:     ls.HeatDamage,
		Repaired:       ls.Repaired,
		Absorbed:       ls.Absorbed,
		Overheats:      ls.Overheats,
		DestroyedAt:    ls.DestroyedAt,
		DestroyedBy:    ls.DestroyedBy,
	}
}

// SaveSnapshot writes a snapshot to disk.
// Returns the filepath where it was saved.
func SaveSnapshot(snapshot *Snapshot, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create snapshot dir: %w", err)
	}

	name := fmt.Sprintf("snapshot_ch%d_%s", snapshot.Chapter, snapshot.Outcome)
	if snapshot.Bookmark != nil {
		sanitized := strings.ReplaceAll(string(snapshot.Bookmark.Type), " ", "_")
		name += "_" + sanitized
	}
	name += ".json"

	path := filepath.Join(dir, name)

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal snapshot: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write snapshot: %w", err)
	}

	return path, nil
}

// LoadSnapshot reads a snapshot from disk.
func LoadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	var snapshot Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}

	return &snapshot, nil
}
