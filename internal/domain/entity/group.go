package entity

// Floatable controls whether panels of a group may be dropped as floating panels.
type Floatable string

const (
	FloatableNever     Floatable = ""
	FloatableAlways    Floatable = "true"
	FloatableSingleTab Floatable = "single-tab" // only when the panel holds exactly one tab
)

// TabGroup holds the behavior flags shared by tabs and panels of the same group.
type TabGroup struct {
	Floatable   Floatable `mapstructure:"floatable" json:"floatable,omitempty" toml:"floatable,omitempty"`
	DisableDock bool      `mapstructure:"disable_dock" json:"disable_dock,omitempty" toml:"disable_dock,omitempty"`
	Maximizable bool      `mapstructure:"maximizable" json:"maximizable,omitempty" toml:"maximizable,omitempty"`
	TabLocked   bool      `mapstructure:"tab_locked" json:"tab_locked,omitempty" toml:"tab_locked,omitempty"`
	NewWindow   bool      `mapstructure:"new_window" json:"new_window,omitempty" toml:"new_window,omitempty"`

	// PreferredFloatWidth and PreferredFloatHeight are [min, max] bounds.
	PreferredFloatWidth  [2]float64 `mapstructure:"preferred_float_width" json:"preferred_float_width,omitempty" toml:"preferred_float_width,omitempty"`
	PreferredFloatHeight [2]float64 `mapstructure:"preferred_float_height" json:"preferred_float_height,omitempty" toml:"preferred_float_height,omitempty"`

	WidthFlex  *float64 `mapstructure:"width_flex" json:"width_flex,omitempty" toml:"width_flex,omitempty"`
	HeightFlex *float64 `mapstructure:"height_flex" json:"height_flex,omitempty" toml:"height_flex,omitempty"`
}

// CanFloat reports whether a panel with tabCount tabs may float.
func (g TabGroup) CanFloat(tabCount int) bool {
	switch g.Floatable {
	case FloatableAlways:
		return true
	case FloatableSingleTab:
		return tabCount == 1
	default:
		return false
	}
}
