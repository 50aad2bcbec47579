package config

import (
	"errors"
	"fmt"
	"net/url"
	"slices"
	"sort"

	"github.com/bnema/tabdock/internal/domain/entity"
)

var (
	validLogLevels  = []string{"trace", "debug", "info", "warn", "warning", "error", "off", "disabled"}
	validLogFormats = []string{"console", "json"}
	validFloatables = []entity.Floatable{entity.FloatableNever, entity.FloatableAlways, entity.FloatableSingleTab}
)

// validateConfig returns every problem found, joined.
func validateConfig(config *Config) error {
	var errs []error
	errs = append(errs, validateDock(&config.Dock)...)
	errs = append(errs, validateGroups(config.Groups)...)
	errs = append(errs, validateLogging(&config.Logging)...)
	errs = append(errs, validateTracing(&config.Tracing)...)
	return errors.Join(errs...)
}

func validateDock(dock *DockConfig) []error {
	var errs []error
	if dock.DragThreshold < 0 {
		errs = append(errs, errors.New("dock.drag_threshold must be non-negative"))
	}
	if dock.DividerSize < 0 {
		errs = append(errs, errors.New("dock.divider_size must be non-negative"))
	}
	if dock.FloatHeader < 0 {
		errs = append(errs, errors.New("dock.float_header must be non-negative"))
	}
	if dock.ResizeDebounceMs < 0 {
		errs = append(errs, errors.New("dock.resize_debounce_ms must be non-negative"))
	}
	if dock.AutosaveDebounceMs < 0 {
		errs = append(errs, errors.New("dock.autosave_debounce_ms must be non-negative"))
	}

	z := dock.DropZones
	if z.Edge <= 0 || z.Edge >= z.Near || z.Near >= z.Default || z.Default > 0.5 {
		errs = append(errs, fmt.Errorf(
			"dock.drop_zones must satisfy 0 < edge < near < default <= 0.5 (got %g, %g, %g)",
			z.Edge, z.Near, z.Default,
		))
	}
	return errs
}

func validateGroups(groups map[string]entity.TabGroup) []error {
	names := make([]string, 0, len(groups))
	for name := range groups {
		names = append(names, name)
	}
	sort.Strings(names)

	var errs []error
	for _, name := range names {
		g := groups[name]
		if name == "" {
			errs = append(errs, errors.New("groups: group name cannot be empty"))
		}
		if !slices.Contains(validFloatables, g.Floatable) {
			errs = append(errs, fmt.Errorf("groups.%s.floatable must be true, false or \"single-tab\" (got %q)", name, g.Floatable))
		}
		errs = append(errs, validateBounds("groups."+name+".preferred_float_width", g.PreferredFloatWidth)...)
		errs = append(errs, validateBounds("groups."+name+".preferred_float_height", g.PreferredFloatHeight)...)
		if g.WidthFlex != nil && *g.WidthFlex < 0 {
			errs = append(errs, fmt.Errorf("groups.%s.width_flex must be non-negative", name))
		}
		if g.HeightFlex != nil && *g.HeightFlex < 0 {
			errs = append(errs, fmt.Errorf("groups.%s.height_flex must be non-negative", name))
		}
	}
	return errs
}

func validateBounds(key string, bounds [2]float64) []error {
	if bounds[0] < 0 || bounds[1] < 0 {
		return []error{fmt.Errorf("%s must be non-negative", key)}
	}
	if bounds[1] != 0 && bounds[0] > bounds[1] {
		return []error{fmt.Errorf("%s minimum %g exceeds maximum %g", key, bounds[0], bounds[1])}
	}
	return nil
}

func validateLogging(logging *LoggingConfig) []error {
	var errs []error
	if !slices.Contains(validLogLevels, logging.Level) {
		errs = append(errs, fmt.Errorf("logging.level must be one of %v (got %q)", validLogLevels, logging.Level))
	}
	if !slices.Contains(validLogFormats, logging.Format) {
		errs = append(errs, fmt.Errorf("logging.format must be one of %v (got %q)", validLogFormats, logging.Format))
	}
	return errs
}

func validateTracing(tracing *TracingConfig) []error {
	if tracing.Endpoint == "" {
		return nil
	}
	u, err := url.Parse(tracing.Endpoint)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return []error{fmt.Errorf("tracing.endpoint must be an http(s) URL (got %q)", tracing.Endpoint)}
	}
	return nil
}
