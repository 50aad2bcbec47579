package config

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/viper"

	"github.com/bnema/tabdock/internal/domain/entity"
)

// Manager handles configuration loading, watching, and reloading.
type Manager struct {
	config         *Config
	viper          *viper.Viper
	dir            string
	mu             sync.RWMutex
	callbacks      []func(*Config)
	watching       bool
	skipNextReload bool
}

// NewManager creates a configuration manager for the XDG config directory.
func NewManager() (*Manager, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to determine config directory: %w\nCheck XDG_CONFIG_HOME environment variable or HOME directory", err)
	}
	return NewManagerWithDir(configDir)
}

// NewManagerWithDir creates a configuration manager reading config.toml from dir.
func NewManagerWithDir(dir string) (*Manager, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(dir)

	// TABDOCK_DOCK_DRAG_THRESHOLD, TABDOCK_DATABASE_PATH, ...
	v.SetEnvPrefix("TABDOCK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	bindings := map[string][]string{
		"logging.level":    {"TABDOCK_LOG_LEVEL", "TABDOCK_LOGGING_LEVEL"},
		"logging.format":   {"TABDOCK_LOG_FORMAT", "TABDOCK_LOGGING_FORMAT"},
		"tracing.endpoint": {"TABDOCK_TRACING_ENDPOINT", "OTEL_EXPORTER_OTLP_ENDPOINT"},
	}
	for key, envs := range bindings {
		if err := v.BindEnv(append([]string{key}, envs...)...); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", envs[0], err)
		}
	}

	return &Manager{viper: v, dir: dir}, nil
}

// Load loads the configuration from file and environment variables. A
// missing config file is created from DefaultConfig.
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := os.MkdirAll(m.dir, dirPerm); err != nil {
		return fmt.Errorf("failed to ensure config directory: %w", err)
	}

	m.setDefaults()

	if err := m.readConfigFile(); err != nil {
		return err
	}

	config, err := m.unmarshalConfig()
	if err != nil {
		return err
	}
	if err := ensureDatabasePath(config); err != nil {
		return err
	}
	normalizeConfig(config)

	if err := validateConfig(config); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	m.config = config
	return nil
}

func (m *Manager) readConfigFile() error {
	err := m.viper.ReadInConfig()
	if err == nil {
		return nil
	}

	var notFound viper.ConfigFileNotFoundError
	if !errors.As(err, &notFound) {
		return fmt.Errorf("failed to read config file at %s: %w\nCheck the file format (must be valid TOML) and permissions", m.ConfigFile(), err)
	}
	if err := m.createDefaultConfig(); err != nil {
		return fmt.Errorf("failed to create default config at %s: %w\nTry creating the directory manually or check permissions", m.dir, err)
	}
	if err := m.viper.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read newly created config file: %w", err)
	}
	return nil
}

func (m *Manager) unmarshalConfig() (*Config, error) {
	config := &Config{}
	if err := m.viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf(
			"failed to parse config file at %s: %w\nCheck for syntax errors, invalid values, or type mismatches",
			m.ConfigFile(),
			err,
		)
	}
	return config, nil
}

func ensureDatabasePath(config *Config) error {
	if config.Database.Path != "" {
		return nil
	}
	dbPath, err := GetDatabaseFile()
	if err != nil {
		return fmt.Errorf("failed to get database path: %w", err)
	}
	config.Database.Path = dbPath
	return nil
}

func normalizeConfig(config *Config) {
	config.Logging.Level = strings.ToLower(strings.TrimSpace(config.Logging.Level))
	config.Logging.Format = strings.ToLower(strings.TrimSpace(config.Logging.Format))
	if config.Logging.Format == "text" || config.Logging.Format == "pretty" {
		config.Logging.Format = defaultLogFormat
	}
	if config.Tracing.ServiceName == "" {
		config.Tracing.ServiceName = defaultServiceName
	}

	// viper decodes `floatable = true` into "1"
	for name, g := range config.Groups {
		switch strings.ToLower(string(g.Floatable)) {
		case "1", "true", "always":
			g.Floatable = entity.FloatableAlways
		case "0", "false", "never":
			g.Floatable = entity.FloatableNever
		}
		config.Groups[name] = g
	}
}

// Get returns a copy of the current configuration.
func (m *Manager) Get() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.config == nil {
		return DefaultConfig()
	}
	configCopy := *m.config
	configCopy.Groups = maps.Clone(m.config.Groups)
	return &configCopy
}

// Save validates cfg and writes it to config.toml.
func (m *Manager) Save(cfg *Config) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if cfg == nil {
		return fmt.Errorf("config is nil")
	}
	if err := validateConfig(cfg); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	if err := WriteConfigOrdered(cfg, m.ConfigFile()); err != nil {
		return err
	}

	if m.watching {
		// the watcher sees our own write; keep the in-memory copy
		m.skipNextReload = true
		saved := *cfg
		saved.Groups = maps.Clone(cfg.Groups)
		m.config = &saved
		return nil
	}
	return m.reload()
}

// ConfigFile returns the path to the configuration file.
func (m *Manager) ConfigFile() string {
	if used := m.viper.ConfigFileUsed(); used != "" {
		return used
	}
	return filepath.Join(m.dir, configName)
}

func (m *Manager) createDefaultConfig() error {
	path := filepath.Join(m.dir, configName)
	if err := WriteConfigOrdered(DefaultConfig(), path); err != nil {
		return err
	}
	if err := writeSchemaFile(m.dir); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Created default configuration file: %s\n", path)
	return nil
}

// setDefaults sets default configuration values in Viper. Groups have no
// viper default so a config file can drop the built-in ones.
func (m *Manager) setDefaults() {
	defaults := DefaultConfig()

	m.viper.SetDefault("dock.drag_threshold", defaults.Dock.DragThreshold)
	m.viper.SetDefault("dock.drop_zones.edge", defaults.Dock.DropZones.Edge)
	m.viper.SetDefault("dock.drop_zones.near", defaults.Dock.DropZones.Near)
	m.viper.SetDefault("dock.drop_zones.default", defaults.Dock.DropZones.Default)
	m.viper.SetDefault("dock.divider_size", defaults.Dock.DividerSize)
	m.viper.SetDefault("dock.float_header", defaults.Dock.FloatHeader)
	m.viper.SetDefault("dock.resize_debounce_ms", defaults.Dock.ResizeDebounceMs)
	m.viper.SetDefault("dock.autosave_debounce_ms", defaults.Dock.AutosaveDebounceMs)
	m.viper.SetDefault("dock.autosave_layout", defaults.Dock.AutosaveLayout)

	m.viper.SetDefault("database.path", "")

	m.viper.SetDefault("logging.level", defaults.Logging.Level)
	m.viper.SetDefault("logging.format", defaults.Logging.Format)
	m.viper.SetDefault("logging.enable_file_log", defaults.Logging.EnableFileLog)

	m.viper.SetDefault("tracing.endpoint", defaults.Tracing.Endpoint)
	m.viper.SetDefault("tracing.service_name", defaults.Tracing.ServiceName)
	m.viper.SetDefault("tracing.insecure", defaults.Tracing.Insecure)
}
