package spell

import (
	"time"

	"github.com/dshills/spellscan/internal/logging"
)

// Defaults for adapter scheduling.
const (
	DefaultDelay            = 200 * time.Millisecond
	DefaultBudget           = time.Second
	DefaultExclusionTagName = "no-spell-check"
)

// Option configures an Adapter.
type Option func(*Adapter)

// WithDelay sets the debounce delay between the last change and a scan,
// and between consecutive ticks of an unfinished scan.
func WithDelay(d time.Duration) Option {
	return func(a *Adapter) {
		if d >= 0 {
			a.delay = d
		}
	}
}

// WithBudget sets how long a single scan tick may run.
func WithBudget(d time.Duration) Option {
	return func(a *Adapter) {
		if d > 0 {
			a.budget = d
		}
	}
}

// WithExclusionTagName sets the name of the tag whose text is never
// decorated.
func WithExclusionTagName(name string) Option {
	return func(a *Adapter) {
		a.exclusionName = name
	}
}

// WithEnabled sets whether the adapter starts enabled. Adapters are enabled
// by default.
func WithEnabled(enabled bool) Option {
	return func(a *Adapter) {
		a.enabled = enabled
	}
}

// WithLogger sets the adapter's logger.
func WithLogger(l *logging.Logger) Option {
	return func(a *Adapter) {
		if l != nil {
			a.log = l
		}
	}
}
