// Package config provides configuration loading and access for the game.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/evac/components"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all game configuration parameters.
type Config struct {
	Screen    ScreenConfig           `yaml:"screen"`
	Sim       SimConfig              `yaml:"sim"`
	Values    map[string]ValueConfig `yaml:"values"`
	Panels    map[string]PanelConfig `yaml:"panels"`
	Layout    LayoutConfig           `yaml:"layout"`
	Enemy     EnemyConfig            `yaml:"enemy"`
	Chapters  []ChapterConfig        `yaml:"chapters"`
	Scores    ScoresConfig           `yaml:"scores"`
	Storage   StorageConfig          `yaml:"storage"`
	Telemetry TelemetryConfig        `yaml:"telemetry"`
	Debug     bool                   `yaml:"debug"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
// The game runs in a fixed virtual viewport scaled to the window.
type ScreenConfig struct {
	Width      int `yaml:"width"`
	Height     int `yaml:"height"`
	TargetFPS  int `yaml:"target_fps"`
	GameWidth  int `yaml:"game_width"`
	GameHeight int `yaml:"game_height"`
}

// SimConfig holds tick simulator tuning. Per-power arrays are indexed by
// power level (off, on, overdrive). Durations are in ticks unless noted.
type SimConfig struct {
	TickMS           int        `yaml:"tick_ms"`
	MaxPower         int        `yaml:"max_power"`
	BaseGen          float64    `yaml:"base_gen"`
	HeatDelta        [3]float64 `yaml:"heat_delta"`
	ShieldDelta      [3]float64 `yaml:"shield_delta"`
	EvadeDelta       [3]float64 `yaml:"evade_delta"`
	ChargeDelta      [3]float64 `yaml:"charge_delta"`
	O2ProdDelta      [3]float64 `yaml:"o2_prod_delta"`
	GenDelta         [3]float64 `yaml:"gen_delta"`
	OverheatDamage   float64    `yaml:"overheat_damage"` // hp per tick, negative
	AutocoolTicks    float64    `yaml:"autocool_ticks"`
	HeatHelpFraction float64    `yaml:"heat_help_fraction"`
	RepairSpend      [3]float64 `yaml:"repair_spend"` // own hp spent per tick
	RepairFactor     float64    `yaml:"repair_factor"`
	O2Max            float64    `yaml:"o2_max"`
	O2Consumption    float64    `yaml:"o2_consumption"`
	O2ProdFactor     float64    `yaml:"o2_prod_factor"`
	PeoplePerDamage  float64    `yaml:"people_per_damage"`
	FireTicks        float64    `yaml:"fire_ticks"`
	WinCountdown     float64    `yaml:"win_countdown_ticks"`
	MessageLogSize   int        `yaml:"message_log_size"`
}

// ValueConfig describes one resource type.
type ValueConfig struct {
	Max   float64  `yaml:"max"`
	Start float64  `yaml:"start"`
	Port  *float64 `yaml:"port,omitempty"` // nil keeps the value when docked
	Label string   `yaml:"label"`
}

// PanelConfig describes one equipment category.
type PanelConfig struct {
	Name    string    `yaml:"name"`
	Values  []*string `yaml:"values"` // null entries are empty rows
	Vert    bool      `yaml:"vert"`
	Powered bool      `yaml:"powered"`
}

// LayoutConfig is the fixed slot layout of the ship, in game pixels.
type LayoutConfig struct {
	ShipX  float32            `yaml:"ship_x"`
	ShipY  float32            `yaml:"ship_y"`
	PanelW float32            `yaml:"panel_w"`
	PanelH float32            `yaml:"panel_h"`
	Slots  []SlotLayoutConfig `yaml:"slots"`
}

// SlotLayoutConfig places one slot and names its starting type.
type SlotLayoutConfig struct {
	Pos   [2]float32 `yaml:"pos"`
	Start string     `yaml:"start"`
}

// EnemyConfig holds enemy fighter parameters.
type EnemyConfig struct {
	HP               int     `yaml:"hp"`
	ShipH            float32 `yaml:"ship_h"`
	X0Offset         float32 `yaml:"x0_offset"` // spawn x past the right edge
	X1               float32 `yaml:"x1"`        // engagement x
	Speed            float32 `yaml:"speed"`     // pixels per millisecond
	SpawnJitter      float32 `yaml:"spawn_jitter"`
	InitialCountdown int     `yaml:"initial_countdown"`
	InitialJitter    int     `yaml:"initial_jitter"`
	CooldownMin      int     `yaml:"cooldown_min"`
	CooldownJitter   int     `yaml:"cooldown_jitter"`
}

// WaveConfig sizes one enemy wave.
type WaveConfig struct {
	NumShips int     `yaml:"num_ships"`
	Damage   float64 `yaml:"damage"`
	Scale    float32 `yaml:"scale"`
}

// ChapterConfig is one step of the campaign: an optional dock, an encounter
// and the narrative beat that follows it.
type ChapterConfig struct {
	Name         string     `yaml:"name"`
	Dock         bool       `yaml:"dock"`
	Passengers   int        `yaml:"passengers"`
	Wave         WaveConfig `yaml:"wave"`
	EngineFactor float64    `yaml:"engine_factor"`
	HeatScale    float64    `yaml:"heat_scale"`
	Title        string     `yaml:"title"`
	Body         string     `yaml:"body"`
	Pickup       int        `yaml:"pickup"`
}

// ScoresConfig holds high score board settings.
type ScoresConfig struct {
	Category  string `yaml:"category"`
	BoardPath string `yaml:"board_path"`
	BoardSize int    `yaml:"board_size"`
	RemoteURL string `yaml:"remote_url"`
}

// StorageConfig holds local persistence settings.
type StorageConfig struct {
	Prefix string `yaml:"prefix"`
	Path   string `yaml:"path"` // empty keeps data in memory
}

// TelemetryConfig holds run statistics settings.
type TelemetryConfig struct {
	OutputDir        string  `yaml:"output_dir"`
	LogStats         bool    `yaml:"log_stats"`
	PerfWindow       int     `yaml:"perf_window"`
	HighlightHistory int     `yaml:"highlight_history"`
	CloseCallHP      float64 `yaml:"close_call_hp"`
}

// DerivedConfig holds values computed from the loaded config.
type DerivedConfig struct {
	Tick         time.Duration
	Values       [components.NumValueTypes]components.ValueDef
	Panels       [components.NumPanelTypes]components.PanelTypeDef
	SlotTypes    []components.PanelType
	SlotRects    []components.Rect
	GameW32      float32
	GameH32      float32
	FinalChapter int
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Only overwrites fields present in the file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.computeDerived(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Clone returns a deep copy with derived values recomputed.
// Parallel headless runs each mutate their own copy.
func (c *Config) Clone() *Config {
	data, err := yaml.Marshal(c)
	if err != nil {
		panic(fmt.Sprintf("config: clone marshal: %v", err))
	}
	out := &Config{}
	if err := yaml.Unmarshal(data, out); err != nil {
		panic(fmt.Sprintf("config: clone unmarshal: %v", err))
	}
	if err := out.computeDerived(); err != nil {
		panic(fmt.Sprintf("config: clone derive: %v", err))
	}
	return out
}

// Recompute refreshes derived values after fields were changed in place.
func (c *Config) Recompute() error {
	return c.computeDerived()
}

// computeDerived resolves names into lookup tables and validates the result.
func (c *Config) computeDerived() error {
	if c.Sim.TickMS <= 0 {
		return fmt.Errorf("sim.tick_ms must be positive, got %d", c.Sim.TickMS)
	}
	if c.Sim.MaxPower < 1 || c.Sim.MaxPower > 3 {
		return fmt.Errorf("sim.max_power must be in [1,3], got %d", c.Sim.MaxPower)
	}
	if c.Sim.MessageLogSize < 1 {
		c.Sim.MessageLogSize = 2
	}
	c.Derived.Tick = time.Duration(c.Sim.TickMS) * time.Millisecond
	c.Derived.GameW32 = float32(c.Screen.GameWidth)
	c.Derived.GameH32 = float32(c.Screen.GameHeight)

	c.Derived.Values = [components.NumValueTypes]components.ValueDef{}
	for name, vc := range c.Values {
		vt, err := components.ParseValueType(name)
		if err != nil {
			return fmt.Errorf("values: %w", err)
		}
		if vt == components.ValueNone {
			return fmt.Errorf("values: empty value name")
		}
		def := components.ValueDef{Max: vc.Max, Start: vc.Start, Label: vc.Label}
		if vc.Port != nil {
			def.Port = *vc.Port
			def.HasPort = true
		}
		c.Derived.Values[vt] = def
	}
	for vt := components.ValueType(0); vt < components.NumValueTypes; vt++ {
		if c.Derived.Values[vt].Max <= 0 {
			return fmt.Errorf("values: %s has no max", vt)
		}
	}

	c.Derived.Panels = [components.NumPanelTypes]components.PanelTypeDef{}
	seen := 0
	for name, pc := range c.Panels {
		pt, err := components.ParsePanelType(name)
		if err != nil {
			return fmt.Errorf("panels: %w", err)
		}
		def := components.PanelTypeDef{Name: pc.Name, Vert: pc.Vert, Powered: pc.Powered}
		for _, vn := range pc.Values {
			vt := components.ValueNone
			if vn != nil {
				vt, err = components.ParseValueType(*vn)
			}
			if err != nil {
				return fmt.Errorf("panels.%s: %w", name, err)
			}
			def.Values = append(def.Values, vt)
		}
		c.Derived.Panels[pt] = def
		seen++
	}
	if seen != int(components.NumPanelTypes) {
		return fmt.Errorf("panels: expected %d panel types, got %d", components.NumPanelTypes, seen)
	}

	c.Derived.SlotTypes = make([]components.PanelType, len(c.Layout.Slots))
	c.Derived.SlotRects = make([]components.Rect, len(c.Layout.Slots))
	for i, sl := range c.Layout.Slots {
		pt, err := components.ParsePanelType(sl.Start)
		if err != nil {
			return fmt.Errorf("layout.slots[%d]: %w", i, err)
		}
		c.Derived.SlotTypes[i] = pt
		c.Derived.SlotRects[i] = components.Rect{
			X: c.Layout.ShipX + sl.Pos[0],
			Y: c.Layout.ShipY + sl.Pos[1],
			W: c.Layout.PanelW,
			H: c.Layout.PanelH,
		}
	}

	if len(c.Chapters) == 0 {
		return fmt.Errorf("chapters: at least one chapter is required")
	}
	for i := range c.Chapters {
		ch := &c.Chapters[i]
		if ch.EngineFactor == 0 {
			ch.EngineFactor = 1
		}
		if ch.HeatScale == 0 {
			ch.HeatScale = 1
		}
		if ch.Wave.Scale == 0 {
			ch.Wave.Scale = 1
		}
	}
	c.Derived.FinalChapter = len(c.Chapters) - 1
	return nil
}

// PowerIndex clamps a power level into the per-power arrays.
func (c *Config) PowerIndex(p components.PowerLevel) int {
	if int(p) >= len(c.Sim.HeatDelta) {
		return len(c.Sim.HeatDelta) - 1
	}
	return int(p)
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
