package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dshills/spellscan/internal/logging"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if !cfg.Spell.Enabled {
		t.Error("expected checking enabled by default")
	}
	if cfg.Spell.Delay != 200*time.Millisecond || cfg.Spell.Budget != time.Second {
		t.Errorf("unexpected timings: %v %v", cfg.Spell.Delay, cfg.Spell.Budget)
	}
	if cfg.Spell.ExclusionTag != "no-spell-check" {
		t.Errorf("ExclusionTag = %q", cfg.Spell.ExclusionTag)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestFromMap(t *testing.T) {
	cfg, err := FromMap(map[string]any{
		"spell": map[string]any{
			"enabled":         false,
			"delay":           "50ms",
			"budget":          int64(250),
			"dictionary":      "/words",
			"watchDictionary": true,
			"unknown":         "ignored",
		},
		"logging": map[string]any{"level": "debug"},
	})
	if err != nil {
		t.Fatalf("FromMap() error = %v", err)
	}

	if cfg.Spell.Enabled {
		t.Error("Enabled not applied")
	}
	if cfg.Spell.Delay != 50*time.Millisecond {
		t.Errorf("Delay = %v", cfg.Spell.Delay)
	}
	if cfg.Spell.Budget != 250*time.Millisecond {
		t.Errorf("Budget = %v", cfg.Spell.Budget)
	}
	if !cfg.Spell.WatchDictionary || cfg.Spell.Dictionary != "/words" {
		t.Errorf("dictionary settings = %+v", cfg.Spell)
	}
	if cfg.LogLevel() != logging.LevelDebug {
		t.Errorf("LogLevel() = %v", cfg.LogLevel())
	}
}

func TestFromMapErrors(t *testing.T) {
	tests := []struct {
		name string
		data map[string]any
		want error
	}{
		{"wrong type", map[string]any{"spell": map[string]any{"enabled": "yes"}}, ErrTypeMismatch},
		{"bad duration", map[string]any{"spell": map[string]any{"delay": "soon"}}, ErrInvalidConfig},
		{"negative delay", map[string]any{"spell": map[string]any{"delay": "-1s"}}, ErrInvalidConfig},
		{"zero budget", map[string]any{"spell": map[string]any{"budget": int64(0)}}, ErrInvalidConfig},
		{"empty tag", map[string]any{"spell": map[string]any{"exclusionTag": " "}}, ErrInvalidConfig},
		{"watch without dictionary", map[string]any{"spell": map[string]any{"watchDictionary": true}}, ErrInvalidConfig},
		{"bad level", map[string]any{"logging": map[string]any{"level": "loud"}}, ErrInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromMap(tt.data)
			if !errors.Is(err, tt.want) {
				t.Errorf("FromMap() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestLoadFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "spellscan.toml")
	data := `
[spell]
delay = "100ms"
dictionary = "words.dic"
luaChecker = "/abs/rules.lua"
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("SPELLSCAN_SPELL_DELAY", "75ms")
	t.Setenv("SPELLSCAN_LOG_LEVEL", "warn")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Spell.Delay != 75*time.Millisecond {
		t.Errorf("environment should override file, Delay = %v", cfg.Spell.Delay)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("Level = %q", cfg.Logging.Level)
	}
	if cfg.Spell.Dictionary != filepath.Join(dir, "words.dic") {
		t.Errorf("relative path not resolved: %q", cfg.Spell.Dictionary)
	}
	if cfg.Spell.LuaChecker != "/abs/rules.lua" {
		t.Errorf("absolute path changed: %q", cfg.Spell.LuaChecker)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "none.toml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected not-exist error, got %v", err)
	}
}

func TestLoadNoFile(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Spell.ExclusionTag != "no-spell-check" {
		t.Errorf("expected defaults, got %+v", cfg)
	}
}
