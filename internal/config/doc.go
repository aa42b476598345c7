// Package config loads spellscan settings.
//
// Settings come from three layers, later layers overriding earlier ones:
//
//	┌─────────────────────────────┐
//	│  3. Environment Variables   │  ← SPELLSCAN_SPELL_DELAY=300ms
//	├─────────────────────────────┤
//	│  2. Config File             │  ← spellscan.toml
//	├─────────────────────────────┤
//	│  1. Built-in Defaults       │
//	└─────────────────────────────┘
//
// A config file looks like:
//
//	[spell]
//	delay = "200ms"
//	budget = "1s"
//	exclusionTag = "no-spell-check"
//	dictionary = "/usr/share/hunspell/en_US.dic"
//	personalDictionary = "~/.spellscan.yaml"
//	watchDictionary = true
//
//	[logging]
//	level = "debug"
//
// Durations are Go duration strings or integer milliseconds. Relative file
// paths are resolved against the config file's directory.
package config
