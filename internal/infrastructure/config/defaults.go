package config

import "github.com/bnema/tabdock/internal/domain/entity"

// Default configuration constants
const (
	defaultDragThreshold      = 1.0
	defaultDividerSize        = 4.0
	defaultFloatHeader        = 16.0
	defaultResizeDebounceMs   = 100
	defaultAutosaveDebounceMs = 2000
	defaultAutosaveLayout     = "last"

	defaultDropZoneEdge    = 0.075
	defaultDropZoneNear    = 0.15
	defaultDropZoneDefault = 0.3

	defaultLogLevel    = "info"
	defaultLogFormat   = "console"
	defaultServiceName = "tabdock"
)

// Group names written to a fresh config.
const (
	GroupDefault = "default"
	GroupTool    = "tool"
	GroupPinned  = "pinned"
)

// DefaultConfig returns the configuration written on first run.
func DefaultConfig() *Config {
	return &Config{
		Dock: DockConfig{
			DragThreshold: defaultDragThreshold,
			DropZones: DropZonesConfig{
				Edge:    defaultDropZoneEdge,
				Near:    defaultDropZoneNear,
				Default: defaultDropZoneDefault,
			},
			DividerSize:        defaultDividerSize,
			FloatHeader:        defaultFloatHeader,
			ResizeDebounceMs:   defaultResizeDebounceMs,
			AutosaveDebounceMs: defaultAutosaveDebounceMs,
			AutosaveLayout:     defaultAutosaveLayout,
		},
		Groups: DefaultGroups(),
		Logging: LoggingConfig{
			Level:  defaultLogLevel,
			Format: defaultLogFormat,
		},
		Tracing: TracingConfig{
			ServiceName: defaultServiceName,
		},
	}
}

// DefaultGroups returns the groups used by the demo layout.
func DefaultGroups() map[string]entity.TabGroup {
	return map[string]entity.TabGroup{
		GroupDefault: {
			Floatable:   entity.FloatableAlways,
			Maximizable: true,
		},
		GroupTool: {
			Floatable:            entity.FloatableSingleTab,
			Maximizable:          true,
			PreferredFloatWidth:  [2]float64{20, 60},
			PreferredFloatHeight: [2]float64{6, 20},
		},
		GroupPinned: {
			TabLocked: true,
		},
	}
}
