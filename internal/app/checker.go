package app

import (
	"github.com/dshills/spellscan/internal/config"
	"github.com/dshills/spellscan/internal/logging"
	"github.com/dshills/spellscan/internal/plugin/lua"
	"github.com/dshills/spellscan/internal/spell"
	"github.com/dshills/spellscan/internal/spell/dictionary"
)

// BuildChecker creates the checker described by cfg: a dictionary, a Lua
// script, or a script falling back to a dictionary. It returns ErrNoChecker
// when cfg names neither.
func BuildChecker(cfg config.SpellConfig, log *logging.Logger) (spell.Checker, error) {
	var dict *dictionary.Dictionary
	if cfg.Dictionary != "" || cfg.PersonalDictionary != "" {
		d, err := dictionary.Open(cfg.Dictionary, cfg.PersonalDictionary)
		if err != nil {
			return nil, NewOperationError("load dictionary", cfg.Dictionary, err)
		}
		dict = d
	}
	return withScript(dict, cfg.LuaChecker, log)
}

// withScript wraps dict in the Lua checker at script, if any.
func withScript(dict *dictionary.Dictionary, script string, log *logging.Logger) (spell.Checker, error) {
	if script == "" {
		if dict == nil {
			return nil, ErrNoChecker
		}
		return dict, nil
	}

	opts := []lua.CheckerOption{lua.WithCheckerLogger(log)}
	if dict != nil {
		opts = append(opts, lua.WithFallback(dict))
	}
	c, err := lua.LoadChecker(script, opts...)
	if err != nil {
		return nil, NewOperationError("load script", script, err)
	}
	return c, nil
}
