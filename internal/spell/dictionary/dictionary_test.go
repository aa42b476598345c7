package dictionary

import (
	"testing"

	"github.com/dshills/spellscan/internal/spell"
)

var _ spell.Checker = (*Dictionary)(nil)

func TestCheckWord(t *testing.T) {
	d := New("hello", "Paris", "café", "don't")

	tests := []struct {
		word string
		want bool
	}{
		{"hello", true},
		{"Hello", true},
		{"HELLO", true},
		{"paris", true},
		{"café", true},
		{"cafe\u0301", true}, // decomposed
		{"CAFÉ", true},
		{"don't", true},
		{"don’t", true},
		{"hello's", true},
		{"helo", false},
		{"world", false},
		{"a", true},
		{"é", true},
		{"2024", true},
		{"", true},
	}

	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			if got := d.CheckWord(tt.word); got != tt.want {
				t.Errorf("CheckWord(%q) = %v, expected %v", tt.word, got, tt.want)
			}
		})
	}
}

func TestIgnoreAndMerge(t *testing.T) {
	base := New("alpha")
	extra := New("beta")
	extra.Ignore("TODO")

	base.Merge(extra)
	base.Merge(nil)
	base.Merge(base)

	if base.Len() != 2 {
		t.Errorf("expected 2 words, got %d", base.Len())
	}
	for _, w := range []string{"alpha", "beta", "todo"} {
		if !base.CheckWord(w) {
			t.Errorf("expected %q accepted", w)
		}
	}
	if !base.Contains("Todo") {
		t.Error("ignored words should be contained")
	}
}

func TestBlankWordsSkipped(t *testing.T) {
	d := New("", "  ", "word")
	if d.Len() != 1 {
		t.Errorf("expected 1 word, got %d", d.Len())
	}
}
