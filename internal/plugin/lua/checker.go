package lua

import (
	"fmt"
	"sync/atomic"

	"github.com/dshills/spellscan/internal/logging"
	"github.com/dshills/spellscan/internal/spell"
	lua "github.com/yuin/gopher-lua"
)

// CheckFunction is the global a script defines to judge words.
const CheckFunction = "check_word"

// Checker is a spell.Checker backed by a Lua script.
//
// A word is reported misspelled only when check_word returns false. Script
// errors and results of any other type count as correct, so a broken rule
// never floods the buffer with decorations. The first script error is logged
// as a warning and later ones at debug level.
type Checker struct {
	state    *State
	fallback spell.Checker
	log      *logging.Logger
	warned   atomic.Bool
}

// CheckerOption configures a Checker.
type CheckerOption func(*Checker)

// WithFallback sets the checker exposed to scripts as known(word). It is
// also used directly when the script defines no check_word.
func WithFallback(c spell.Checker) CheckerOption {
	return func(ch *Checker) {
		ch.fallback = c
	}
}

// WithCheckerLogger sets the logger for script errors.
func WithCheckerLogger(l *logging.Logger) CheckerOption {
	return func(ch *Checker) {
		if l != nil {
			ch.log = l
		}
	}
}

// NewChecker creates a checker on an existing state.
func NewChecker(state *State, opts ...CheckerOption) *Checker {
	c := &Checker{state: state, log: logging.Null()}
	for _, opt := range opts {
		opt(c)
	}

	state.Register("known", func(L *lua.LState) int {
		word := L.CheckString(1)
		L.Push(lua.LBool(c.fallback == nil || c.fallback.CheckWord(word)))
		return 1
	})
	return c
}

// LoadChecker creates a checker from a script file.
func LoadChecker(path string, opts ...CheckerOption) (*Checker, error) {
	state := NewState()
	c := NewChecker(state, opts...)
	if err := state.DoFile(path); err != nil {
		state.Close()
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return c, nil
}

// CheckWord implements spell.Checker.
func (c *Checker) CheckWord(word string) bool {
	if !c.state.HasFunction(CheckFunction) {
		return c.fallback == nil || c.fallback.CheckWord(word)
	}

	results, err := c.state.Call(CheckFunction, lua.LString(word))
	if err != nil {
		if c.warned.CompareAndSwap(false, true) {
			c.log.Warn("%s(%q): %v", CheckFunction, word, err)
		} else {
			c.log.Debug("%s(%q): %v", CheckFunction, word, err)
		}
		return true
	}
	if len(results) == 0 {
		return true
	}
	ok, isBool := results[0].(lua.LBool)
	return !isBool || bool(ok)
}

// Close releases the underlying state.
func (c *Checker) Close() error {
	return c.state.Close()
}
