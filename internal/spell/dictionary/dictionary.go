package dictionary

import (
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Dictionary is a set of known words. It is safe for concurrent use.
type Dictionary struct {
	mu     sync.RWMutex
	words  map[string]struct{}
	ignore map[string]struct{}
}

// New creates a dictionary holding words.
func New(words ...string) *Dictionary {
	d := &Dictionary{
		words:  make(map[string]struct{}),
		ignore: make(map[string]struct{}),
	}
	d.Add(words...)
	return d
}

// Add adds words to the dictionary.
func (d *Dictionary) Add(words ...string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, w := range words {
		if key := normalize(w); key != "" {
			d.words[key] = struct{}{}
		}
	}
}

// Ignore marks words as always correct. Ignored words are kept apart from
// the word list so Len reports only real entries.
func (d *Dictionary) Ignore(words ...string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, w := range words {
		if key := normalize(w); key != "" {
			d.ignore[key] = struct{}{}
		}
	}
}

// Merge adds every word and ignore entry of other to d.
func (d *Dictionary) Merge(other *Dictionary) {
	if other == nil || other == d {
		return
	}
	other.mu.RLock()
	defer other.mu.RUnlock()
	d.mu.Lock()
	defer d.mu.Unlock()
	for w := range other.words {
		d.words[w] = struct{}{}
	}
	for w := range other.ignore {
		d.ignore[w] = struct{}{}
	}
}

// Len returns the number of words, not counting ignored ones.
func (d *Dictionary) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.words)
}

// Contains reports whether word is in the word list or the ignore list.
func (d *Dictionary) Contains(word string) bool {
	key := normalize(word)
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.has(key)
}

// CheckWord reports whether word is spelled correctly. Single letters and
// words without letters are always accepted, as are possessives of known
// words.
func (d *Dictionary) CheckWord(word string) bool {
	if utf8.RuneCountInString(word) <= 1 || !hasLetter(word) {
		return true
	}
	key := normalize(word)

	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.has(key) {
		return true
	}
	if stem, ok := strings.CutSuffix(key, "'s"); ok && d.has(stem) {
		return true
	}
	return false
}

func (d *Dictionary) has(key string) bool {
	if _, ok := d.words[key]; ok {
		return true
	}
	_, ok := d.ignore[key]
	return ok
}

// normalize folds case and composes word so that lookups ignore case and
// encoding differences.
func normalize(word string) string {
	word = strings.TrimSpace(word)
	if word == "" {
		return ""
	}
	word = strings.ReplaceAll(word, "’", "'")
	return cases.Fold().String(norm.NFC.String(word))
}

func hasLetter(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}
