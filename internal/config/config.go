package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dshills/spellscan/internal/config/loader"
	"github.com/dshills/spellscan/internal/logging"
	"github.com/dshills/spellscan/internal/spell"
)

// Config is the complete spellscan configuration.
type Config struct {
	Spell   SpellConfig
	Logging LoggingConfig
}

// SpellConfig controls checking.
type SpellConfig struct {
	Enabled            bool
	Delay              time.Duration
	Budget             time.Duration
	ExclusionTag       string
	Dictionary         string
	PersonalDictionary string
	LuaChecker         string
	WatchDictionary    bool
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	Level string
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Spell: SpellConfig{
			Enabled:      true,
			Delay:        spell.DefaultDelay,
			Budget:       spell.DefaultBudget,
			ExclusionTag: spell.DefaultExclusionTagName,
		},
		Logging: LoggingConfig{Level: "info"},
	}
}

// Load reads the config file at path, if any, then the environment, and
// returns the validated result. An empty path skips the file; a path that
// does not exist is an error.
func Load(path string) (Config, error) {
	var sources []loader.Loader
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return Config{}, err
		}
		sources = append(sources, loader.NewTOMLLoader(path))
	}
	sources = append(sources, loader.NewEnvLoader(loader.DefaultEnvPrefix))

	merged, err := LoadSources(sources...)
	if err != nil {
		return Config{}, err
	}
	cfg, err := FromMap(merged)
	if err != nil {
		return Config{}, err
	}
	if path != "" {
		cfg.resolvePaths(filepath.Dir(path))
	}
	return cfg, nil
}

// LoadSources merges sources in order, later ones overriding earlier ones.
func LoadSources(sources ...loader.Loader) (map[string]any, error) {
	merged := make(map[string]any)
	for _, src := range sources {
		m, err := src.Load()
		if err != nil {
			return nil, err
		}
		merged = loader.DeepMerge(merged, m)
	}
	return merged, nil
}

// FromMap builds a validated Config from a settings map, starting from
// Default. Unknown settings are ignored.
func FromMap(m map[string]any) (Config, error) {
	cfg := Default()
	r := reader{data: m}

	r.bool("spell.enabled", &cfg.Spell.Enabled)
	r.duration("spell.delay", &cfg.Spell.Delay)
	r.duration("spell.budget", &cfg.Spell.Budget)
	r.string("spell.exclusionTag", &cfg.Spell.ExclusionTag)
	r.string("spell.dictionary", &cfg.Spell.Dictionary)
	r.string("spell.personalDictionary", &cfg.Spell.PersonalDictionary)
	r.string("spell.luaChecker", &cfg.Spell.LuaChecker)
	r.bool("spell.watchDictionary", &cfg.Spell.WatchDictionary)
	r.string("logging.level", &cfg.Logging.Level)

	if err := errors.Join(r.errs...); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that every setting is usable.
func (c Config) Validate() error {
	var errs []error
	if c.Spell.Delay < 0 {
		errs = append(errs, &ValidationError{Path: "spell.delay", Message: "must not be negative", Value: c.Spell.Delay})
	}
	if c.Spell.Budget <= 0 {
		errs = append(errs, &ValidationError{Path: "spell.budget", Message: "must be positive", Value: c.Spell.Budget})
	}
	if strings.TrimSpace(c.Spell.ExclusionTag) == "" {
		errs = append(errs, &ValidationError{Path: "spell.exclusionTag", Message: "must not be empty", Value: c.Spell.ExclusionTag})
	}
	if c.Spell.WatchDictionary && c.Spell.Dictionary == "" && c.Spell.PersonalDictionary == "" {
		errs = append(errs, &ValidationError{Path: "spell.watchDictionary", Message: "requires a dictionary", Value: true})
	}
	if _, ok := logging.ParseLevel(c.Logging.Level); !ok {
		errs = append(errs, &ValidationError{Path: "logging.level", Message: "unknown level", Value: c.Logging.Level})
	}
	return errors.Join(errs...)
}

// LogLevel returns the parsed logging level.
func (c Config) LogLevel() logging.Level {
	level, _ := logging.ParseLevel(c.Logging.Level)
	return level
}

func (c *Config) resolvePaths(dir string) {
	for _, p := range []*string{&c.Spell.Dictionary, &c.Spell.PersonalDictionary, &c.Spell.LuaChecker} {
		*p = resolvePath(dir, *p)
	}
}

func resolvePath(dir, p string) string {
	if p == "" {
		return p
	}
	if rest, ok := strings.CutPrefix(p, "~/"); ok {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, rest)
		}
	}
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(dir, p)
}

// reader pulls typed values out of a settings map, collecting errors.
type reader struct {
	data map[string]any
	errs []error
}

func (r *reader) get(path string) (any, bool) {
	current := any(r.data)
	for _, part := range strings.Split(path, ".") {
		m, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		if current, ok = m[part]; !ok {
			return nil, false
		}
	}
	return current, true
}

func (r *reader) fail(path, expected string, v any) {
	r.errs = append(r.errs, &TypeError{Path: path, Expected: expected, Actual: fmt.Sprintf("%T", v)})
}

func (r *reader) string(path string, dst *string) {
	v, ok := r.get(path)
	if !ok {
		return
	}
	s, ok := v.(string)
	if !ok {
		r.fail(path, "string", v)
		return
	}
	*dst = s
}

func (r *reader) bool(path string, dst *bool) {
	v, ok := r.get(path)
	if !ok {
		return
	}
	b, ok := v.(bool)
	if !ok {
		r.fail(path, "bool", v)
		return
	}
	*dst = b
}

// duration accepts a duration string, a time.Duration, or a whole number
// of milliseconds.
func (r *reader) duration(path string, dst *time.Duration) {
	v, ok := r.get(path)
	if !ok {
		return
	}
	switch val := v.(type) {
	case time.Duration:
		*dst = val
	case int64:
		*dst = time.Duration(val) * time.Millisecond
	case int:
		*dst = time.Duration(val) * time.Millisecond
	case string:
		d, err := time.ParseDuration(val)
		if err != nil {
			r.errs = append(r.errs, &ValidationError{Path: path, Message: "invalid duration", Value: val})
			return
		}
		*dst = d
	default:
		r.fail(path, "duration", v)
	}
}
