package config

import (
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
modifier = "mod1"
terminal = "kitty"

[[groups]]
name = "web"
layout = "max"

[[groups]]
name = "code"

[[scratchpads]]
name = "pad"
[[scratchpads.dropdowns]]
name = "term"
command = "kitty --class dropdown"
opacity = 0.8
key = "grave"

[[bindings]]
keys = "mod1+b"
action = "spawn:firefox"
description = "browser"

[host]
client = ["qtile", "cmd-obj"]

[logging]
level = "debug"
format = "json"
`

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestManagerLoadFile(t *testing.T) {
	path := writeConfig(t, t.TempDir(), sampleConfig)

	m, err := NewManager(WithFile(path))
	require.NoError(t, err)
	require.NoError(t, m.Load())

	cfg := m.Get()
	assert.Equal(t, "mod1", cfg.Modifier)
	assert.Equal(t, "kitty", cfg.Terminal)
	assert.Equal(t, "~/.config/rofi/bin/launcher_text", cfg.Launcher)
	assert.Equal(t, []Group{{Name: "web", Layout: "max"}, {Name: "code"}}, cfg.Groups)
	require.Len(t, cfg.Scratchpads, 1)
	assert.Equal(t, Dropdown{Name: "term", Command: "kitty --class dropdown", Opacity: 0.8, Key: "grave"}, cfg.Scratchpads[0].Dropdowns[0])
	assert.Equal(t, []BindingConfig{{Keys: "mod1+b", Action: "spawn:firefox", Description: "browser"}}, cfg.Bindings)
	assert.Equal(t, []string{"qtile", "cmd-obj"}, cfg.Host.Client)
	assert.Equal(t, LoggingConfig{Level: "debug", Format: "json"}, cfg.Logging)
	assert.Equal(t, path, m.ConfigFileUsed())
}

func TestManagerDefaultsWithoutFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	chdir(t, t.TempDir())

	m, err := NewManager()
	require.NoError(t, err)
	require.NoError(t, m.Load())

	cfg := m.Get()
	assert.Equal(t, DefaultConfig().GroupNames(), cfg.GroupNames())
	assert.Equal(t, 0.9, cfg.Scratchpads[0].Dropdowns[0].Opacity)
	assert.Equal(t, "", m.ConfigFileUsed())
	assert.ErrorIs(t, m.Watch(), ErrNoConfigFile)
}

func TestManagerSearchesConfigDir(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)
	chdir(t, t.TempDir())
	dir := filepath.Join(xdg, "tilekeys")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	writeConfig(t, dir, `terminal = "foot"`)

	m, err := NewManager()
	require.NoError(t, err)
	require.NoError(t, m.Load())
	assert.Equal(t, "foot", m.Get().Terminal)
}

func TestManagerEnvOverride(t *testing.T) {
	path := writeConfig(t, t.TempDir(), sampleConfig)
	t.Setenv("TILEKEYS_TERMINAL", "wezterm")
	t.Setenv("TILEKEYS_LOG_LEVEL", "warn")

	m, err := NewManager(WithFile(path))
	require.NoError(t, err)
	require.NoError(t, m.Load())

	cfg := m.Get()
	assert.Equal(t, "wezterm", cfg.Terminal)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestManagerMissingExplicitFile(t *testing.T) {
	m, err := NewManager(WithFile(filepath.Join(t.TempDir(), "nope.toml")))
	require.NoError(t, err)

	var perr *ParseError
	assert.ErrorAs(t, m.Load(), &perr)
}

func TestManagerInvalidFile(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "modifier = [")

	m, err := NewManager(WithFile(path))
	require.NoError(t, err)
	assert.Error(t, m.Load())
}

func TestManagerReloadKeepsOldOnError(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, sampleConfig)

	m, err := NewManager(WithFile(path))
	require.NoError(t, err)
	require.NoError(t, m.Load())

	var calls atomic.Int32
	m.OnConfigChange(func(*Config) { calls.Add(1) })

	writeConfig(t, dir, `modifier = "nonsense"`)
	require.Error(t, m.Reload())
	assert.Equal(t, "mod1", m.Get().Modifier)
	assert.Equal(t, int32(0), calls.Load())

	writeConfig(t, dir, `modifier = "mod4"`)
	require.NoError(t, m.Reload())
	assert.Equal(t, "mod4", m.Get().Modifier)
	assert.Equal(t, int32(0), calls.Load(), "Reload does not run watch callbacks")
}

func TestManagerWatch(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, sampleConfig)

	m, err := NewManager(WithFile(path))
	require.NoError(t, err)
	require.NoError(t, m.Load())

	changed := make(chan *Config, 16)
	m.OnConfigChange(func(c *Config) {
		select {
		case changed <- c:
		default:
		}
	})
	require.NoError(t, m.Watch())
	require.NoError(t, m.Watch())

	writeConfig(t, dir, `terminal = "foot"`)

	// A single write can surface as several events, the first of which may
	// see a partially written file.
	deadline := time.After(5 * time.Second)
	for {
		select {
		case cfg := <-changed:
			if cfg.Terminal == "foot" {
				return
			}
		case <-deadline:
			t.Fatal("config change was not observed")
		}
	}
}

// chdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}
