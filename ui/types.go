// Package ui draws the game with raylib. Readout panels are described by
// field descriptors so the layout can follow the configured values
// instead of hard-coding every label.
package ui

import rl "github.com/gen2brain/raylib-go/raylib"

// WidgetType specifies how a field should be rendered.
type WidgetType int

const (
	WidgetText      WidgetType = iota // Plain text with format string
	WidgetBar                         // Progress bar [0, 1]
	WidgetEnergyBar                   // current/max bar with color thresholds
	WidgetSection                     // Section header
	WidgetSpacer                      // Vertical spacing
)

// FieldDescriptor defines how to display a single piece of data.
type FieldDescriptor struct {
	ID         string            // Unique identifier for the field
	Label      string            // Display label
	Widget     WidgetType        // How to render
	Format     string            // Printf format for text (e.g., "%.2f")
	Color      rl.Color          // Optional color override
	Visible    func(any) bool    // Optional visibility check (nil = always visible)
	Getter     func(any) float32 // Value extractor (for numeric fields)
	MaxGetter  func(any) float32 // Upper bound for energy bars
	TextGetter func(any) string  // Value extractor (for text fields)
}

// SectionDescriptor defines a group of fields with a header.
type SectionDescriptor struct {
	ID      string            // Unique identifier
	Title   string            // Section header text
	Fields  []FieldDescriptor // Fields in this section
	Visible func(any) bool    // Optional visibility check for entire section
}

// Theme holds UI styling constants. Sizes are in game pixels.
type Theme struct {
	Background     rl.Color
	PanelBg        rl.Color
	PanelBorder    rl.Color
	SectionHeader  rl.Color
	LabelColor     rl.Color
	ValueColor     rl.Color
	BarBg          rl.Color
	BarFill        rl.Color
	BarFillLow     rl.Color
	BarFillMedium  rl.Color
	BarFillHigh    rl.Color
	Disabled       rl.Color
	Info           rl.Color
	Warning        rl.Color
	Critical       rl.Color
	Padding        int32
	LineHeight     int32
	LabelWidth     int32
	BarHeight      int32
	FontSize       int32
	HeaderFontSize int32
}

// DefaultTheme returns the default UI theme.
func DefaultTheme() Theme {
	return Theme{
		Background:     rl.Color{R: 8, G: 10, B: 18, A: 255},
		PanelBg:        rl.Color{R: 20, G: 25, B: 30, A: 240},
		PanelBorder:    rl.Color{R: 60, G: 70, B: 80, A: 255},
		SectionHeader:  rl.Yellow,
		LabelColor:     rl.LightGray,
		ValueColor:     rl.LightGray,
		BarBg:          rl.Color{R: 40, G: 40, B: 40, A: 255},
		BarFill:        rl.Color{R: 100, G: 150, B: 200, A: 255},
		BarFillLow:     rl.Color{R: 200, G: 100, B: 100, A: 255},
		BarFillMedium:  rl.Color{R: 200, G: 180, B: 100, A: 255},
		BarFillHigh:    rl.Color{R: 100, G: 200, B: 100, A: 255},
		Disabled:       rl.Color{R: 80, G: 80, B: 80, A: 255},
		Info:           rl.LightGray,
		Warning:        rl.Color{R: 230, G: 180, B: 60, A: 255},
		Critical:       rl.Color{R: 230, G: 70, B: 70, A: 255},
		Padding:        4,
		LineHeight:     11,
		LabelWidth:     44,
		BarHeight:      6,
		FontSize:       10,
		HeaderFontSize: 10,
	}
}
