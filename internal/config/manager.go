package config

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/dshills/tilekeys/internal/logging"
)

// ErrNoConfigFile is returned by Watch when no configuration file was
// found to watch.
var ErrNoConfigFile = errors.New("no configuration file in use")

// Manager handles configuration loading, watching and reloading.
type Manager struct {
	viper     *viper.Viper
	log       zerolog.Logger
	file      string
	mu        sync.RWMutex
	config    *Config
	callbacks []func(*Config)
	watching  bool
}

// Option configures a Manager.
type Option func(*Manager)

// WithFile reads exactly the given file instead of searching the config
// directories. A missing file is then an error.
func WithFile(path string) Option {
	return func(m *Manager) {
		m.file = path
	}
}

// WithLogger sets the logger used for reload reports.
func WithLogger(log zerolog.Logger) Option {
	return func(m *Manager) {
		m.log = log
	}
}

// NewManager creates a configuration manager.
func NewManager(opts ...Option) (*Manager, error) {
	m := &Manager{
		viper:     viper.New(),
		log:       zerolog.Nop(),
		callbacks: make([]func(*Config), 0),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.log = logging.WithComponent(m.log, "config")

	v := m.viper
	v.SetConfigType("toml")
	if m.file != "" {
		v.SetConfigFile(ExpandPath(m.file))
	} else {
		configDir, err := GetConfigDir()
		if err != nil {
			return nil, fmt.Errorf("failed to determine config directory: %w", err)
		}
		v.SetConfigName("config")
		v.AddConfigPath(configDir)
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(strings.ToUpper(AppName))
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.BindEnv("logging.level", "TILEKEYS_LOG_LEVEL"); err != nil {
		return nil, fmt.Errorf("failed to bind TILEKEYS_LOG_LEVEL: %w", err)
	}
	if err := v.BindEnv("logging.format", "TILEKEYS_LOG_FORMAT"); err != nil {
		return nil, fmt.Errorf("failed to bind TILEKEYS_LOG_FORMAT: %w", err)
	}

	return m, nil
}

// Load reads the configuration from file and environment variables.
// Without an explicit file, a missing config file leaves the defaults in
// effect.
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.setDefaults()
	if err := m.readConfigFile(); err != nil {
		return err
	}
	cfg, err := m.decode()
	if err != nil {
		return err
	}
	m.config = cfg
	return nil
}

// Reload re-reads the configuration. On error the previous configuration
// stays in effect. Callbacks are not run; they belong to Watch.
func (m *Manager) Reload() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.reload()
}

// SetLogger replaces the logger used for reload reports.
func (m *Manager) SetLogger(log zerolog.Logger) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.log = logging.WithComponent(log, "config")
}

func (m *Manager) readConfigFile() error {
	err := m.viper.ReadInConfig()
	if err == nil {
		m.log.Debug().Str("file", m.viper.ConfigFileUsed()).Msg("config file read")
		return nil
	}

	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) {
		m.log.Info().Msg("no config file found, using defaults")
		return nil
	}

	file := m.viper.ConfigFileUsed()
	if file == "" {
		file = m.file
	}
	return &ParseError{Path: file, Err: err}
}

func (m *Manager) decode() (*Config, error) {
	cfg := &Config{}
	if err := m.viper.Unmarshal(cfg); err != nil {
		return nil, &ParseError{Path: m.viper.ConfigFileUsed(), Err: err}
	}
	normalize(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// reload must be called with m.mu held for write.
func (m *Manager) reload() error {
	if err := m.readConfigFile(); err != nil {
		return err
	}
	cfg, err := m.decode()
	if err != nil {
		return err
	}
	m.config = cfg
	return nil
}

// Get returns a copy of the current configuration.
// It returns the defaults if Load has not been called.
func (m *Manager) Get() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.config == nil {
		return DefaultConfig()
	}
	return m.config.Clone()
}

// ConfigFileUsed returns the path of the configuration file in use, or ""
// when running on defaults.
func (m *Manager) ConfigFileUsed() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.viper.ConfigFileUsed()
}

// setDefaults sets default configuration values in viper.
func (m *Manager) setDefaults() {
	d := DefaultConfig()

	m.viper.SetDefault("modifier", d.Modifier)
	m.viper.SetDefault("terminal", d.Terminal)
	m.viper.SetDefault("launcher", d.Launcher)
	m.viper.SetDefault("autostart", d.Autostart)
	m.viper.SetDefault("palette", d.Palette)
	m.viper.SetDefault("script", d.Script)

	groups := make([]map[string]any, len(d.Groups))
	for i, g := range d.Groups {
		groups[i] = map[string]any{"name": g.Name, "layout": g.Layout}
	}
	m.viper.SetDefault("groups", groups)

	scratchpads := make([]map[string]any, len(d.Scratchpads))
	for i, sp := range d.Scratchpads {
		dropdowns := make([]map[string]any, len(sp.Dropdowns))
		for j, dd := range sp.Dropdowns {
			dropdowns[j] = map[string]any{
				"name":    dd.Name,
				"command": dd.Command,
				"opacity": dd.Opacity,
				"key":     dd.Key,
			}
		}
		scratchpads[i] = map[string]any{"name": sp.Name, "dropdowns": dropdowns}
	}
	m.viper.SetDefault("scratchpads", scratchpads)

	m.viper.SetDefault("bindings", []map[string]any{})
	m.viper.SetDefault("host.client", d.Host.Client)
	m.viper.SetDefault("logging.level", d.Logging.Level)
	m.viper.SetDefault("logging.format", d.Logging.Format)
}

// Clone returns a deep copy of c.
func (c *Config) Clone() *Config {
	out := *c
	out.Groups = append([]Group(nil), c.Groups...)
	out.Bindings = append([]BindingConfig(nil), c.Bindings...)
	out.Host.Client = append([]string(nil), c.Host.Client...)
	out.Scratchpads = make([]Scratchpad, len(c.Scratchpads))
	for i, sp := range c.Scratchpads {
		out.Scratchpads[i] = Scratchpad{
			Name:      sp.Name,
			Dropdowns: append([]Dropdown(nil), sp.Dropdowns...),
		}
	}
	return &out
}
