// Package dictionary provides a word-list spell checker.
//
// A Dictionary is built from plain word lists or hunspell .dic files and
// optionally extended with a personal dictionary kept in YAML:
//
//	words:
//	  - spellscan
//	  - gopher
//	ignore:
//	  - TODO
//
// Lookups are case-insensitive and Unicode-normalized. A Watcher rebuilds
// the dictionary when its source files change on disk.
package dictionary
