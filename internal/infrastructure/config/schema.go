package config

import (
	"time"

	"github.com/bnema/tabdock/internal/domain/dock"
	"github.com/bnema/tabdock/internal/domain/entity"
)

// Config is the root of config.toml.
type Config struct {
	Dock DockConfig `mapstructure:"dock" toml:"dock"`
	// Groups maps a group name to the behavior of its tabs and panels.
	Groups   map[string]entity.TabGroup `mapstructure:"groups" toml:"groups"`
	Database DatabaseConfig             `mapstructure:"database" toml:"database"`
	Logging  LoggingConfig              `mapstructure:"logging" toml:"logging"`
	Tracing  TracingConfig              `mapstructure:"tracing" toml:"tracing"`
}

// DockConfig tunes the layout engine and the drag session.
type DockConfig struct {
	// DragThreshold is the pointer travel, in cells or pixels, before a press becomes a drag.
	DragThreshold float64         `mapstructure:"drag_threshold" toml:"drag_threshold"`
	DropZones     DropZonesConfig `mapstructure:"drop_zones" toml:"drop_zones"`
	DividerSize   float64         `mapstructure:"divider_size" toml:"divider_size"`
	FloatHeader   float64         `mapstructure:"float_header" toml:"float_header"`

	ResizeDebounceMs   int `mapstructure:"resize_debounce_ms" toml:"resize_debounce_ms"`
	AutosaveDebounceMs int `mapstructure:"autosave_debounce_ms" toml:"autosave_debounce_ms"`
	// AutosaveLayout is the saved layout name the demo restores and autosaves to.
	// Empty disables autosave.
	AutosaveLayout string `mapstructure:"autosave_layout" toml:"autosave_layout"`
}

// DropZonesConfig holds edge thresholds as fractions of the target size.
type DropZonesConfig struct {
	Edge    float64 `mapstructure:"edge" toml:"edge"`
	Near    float64 `mapstructure:"near" toml:"near"`
	Default float64 `mapstructure:"default" toml:"default"`
}

type DatabaseConfig struct {
	// Path defaults to $XDG_DATA_HOME/tabdock/tabdock.sqlite when empty.
	Path string `mapstructure:"path" toml:"path"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level" toml:"level"`
	Format string `mapstructure:"format" toml:"format"`
	// EnableFileLog writes logs under $XDG_STATE_HOME/tabdock/logs. The demo
	// always logs to file since stderr belongs to the terminal UI.
	EnableFileLog bool `mapstructure:"enable_file_log" toml:"enable_file_log"`
}

type TracingConfig struct {
	// Endpoint is an OTLP/HTTP collector URL. Empty disables tracing.
	Endpoint    string `mapstructure:"endpoint" toml:"endpoint"`
	ServiceName string `mapstructure:"service_name" toml:"service_name"`
	Insecure    bool   `mapstructure:"insecure" toml:"insecure"`
}

// EngineOptions converts the dock section to layout engine options.
func (c DockConfig) EngineOptions() dock.Options {
	opts := dock.DefaultOptions()
	opts.DividerSize = c.DividerSize
	opts.FloatHeader = c.FloatHeader
	return opts
}

// Zones converts the drop zone section, keeping the default rate cap.
func (c DockConfig) Zones() dock.DropZones {
	zones := dock.DefaultDropZones()
	zones.Edge = c.DropZones.Edge
	zones.Near = c.DropZones.Near
	zones.Default = c.DropZones.Default
	return zones
}

func (c DockConfig) ResizeDebounce() time.Duration {
	return time.Duration(c.ResizeDebounceMs) * time.Millisecond
}

func (c DockConfig) AutosaveDebounce() time.Duration {
	return time.Duration(c.AutosaveDebounceMs) * time.Millisecond
}
