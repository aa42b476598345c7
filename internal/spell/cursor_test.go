package spell

import (
	"slices"
	"testing"

	"github.com/dshills/spellscan/internal/engine/buffer"
)

func collectWords(c *Cursor) ([]string, []buffer.Range) {
	var words []string
	var ranges []buffer.Range
	for c.Next() {
		words = append(words, c.Word())
		ranges = append(ranges, c.Range())
	}
	return words, ranges
}

func TestCursorWords(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"simple", "cat dog", []string{"cat", "dog"}},
		{"punctuation", "Hello, world!", []string{"Hello", "world"}},
		{"apostrophe", "It's 'quoted'", []string{"It's", "quoted"}},
		{"numbers skipped", "in 2024 we", []string{"in", "we"}},
		{"unicode", "café naïve", []string{"café", "naïve"}},
		{"empty", "", nil},
		{"only spaces", "   \n\t", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := buffer.NewBufferFromString(tt.text)
			got, _ := collectWords(NewCursor(buf, 0, buf.Len(), nil))
			if !slices.Equal(got, tt.want) {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestCursorRanges(t *testing.T) {
	buf := buffer.NewBufferFromString("one two  three")
	_, ranges := collectWords(NewCursor(buf, 0, buf.Len(), nil))

	want := []buffer.Range{{Start: 0, End: 3}, {Start: 4, End: 7}, {Start: 9, End: 14}}
	if !slices.Equal(ranges, want) {
		t.Errorf("expected %v, got %v", want, ranges)
	}
}

func TestCursorWidensToWordBounds(t *testing.T) {
	buf := buffer.NewBufferFromString("hello world again")

	got, ranges := collectWords(NewCursor(buf, 2, 9, nil))
	if !slices.Equal(got, []string{"hello", "world"}) {
		t.Fatalf("expected whole words, got %q", got)
	}
	if ranges[0].Start != 0 || ranges[1].End != 11 {
		t.Errorf("expected widened ranges, got %v", ranges)
	}
}

func TestCursorIsSinglePass(t *testing.T) {
	buf := buffer.NewBufferFromString("a b")
	c := NewCursor(buf, 0, buf.Len(), nil)
	for c.Next() {
	}
	if c.Next() {
		t.Error("exhausted cursor advanced again")
	}
	if c.Word() != "" {
		t.Errorf("exhausted cursor still reports %q", c.Word())
	}
}

func TestCursorTagAndContainsTag(t *testing.T) {
	buf := buffer.NewBufferFromString("good badd code")
	deco, _ := buf.CreateTag("")
	code, _ := buf.CreateTag("code")
	buf.ApplyTag(code, 10, 12)

	c := NewCursor(buf, 0, buf.Len(), deco)
	for c.Next() {
		switch c.Word() {
		case "badd":
			c.Tag()
			if c.ContainsTag(code) {
				t.Error("badd is not code")
			}
		case "code":
			if !c.ContainsTag(code) {
				t.Error("expected partially tagged word to contain the tag")
			}
		}
		if c.ContainsTag(nil) {
			t.Error("nil tag must never be contained")
		}
	}

	if got := buf.TagRanges(deco); !slices.Equal(got, []buffer.Range{{Start: 5, End: 9}}) {
		t.Errorf("expected decoration on badd, got %v", got)
	}
}
