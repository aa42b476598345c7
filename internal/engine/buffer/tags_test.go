package buffer

import (
	"errors"
	"slices"
	"testing"
)

func TestCreateAndLookupTag(t *testing.T) {
	b := NewBufferFromString("some text")
	rec := &recorder{}
	b.AddObserver(rec)

	tag, err := b.CreateTag("no-spell-check")
	if err != nil {
		t.Fatalf("CreateTag failed: %v", err)
	}
	if b.LookupTag("no-spell-check") != tag {
		t.Error("LookupTag did not return the created tag")
	}
	if _, err := b.CreateTag("no-spell-check"); !errors.Is(err, ErrTagExists) {
		t.Errorf("expected ErrTagExists, got %v", err)
	}

	anon1, _ := b.CreateTag("")
	anon2, _ := b.CreateTag("")
	if anon1.ID() == anon2.ID() {
		t.Error("anonymous tags must have distinct IDs")
	}
	if b.LookupTag("") != nil {
		t.Error("anonymous tags must not be found by name")
	}
	if got := len(b.Tags()); got != 3 {
		t.Errorf("expected 3 tags, got %d", got)
	}
	if rec.events[0] != "added no-spell-check" {
		t.Errorf("expected TagAdded notification, got %v", rec.events)
	}
}

func TestDeleteTag(t *testing.T) {
	b := NewBufferFromString("abc")
	tag, _ := b.CreateTag("x")
	rec := &recorder{}
	b.AddObserver(rec)

	if err := b.DeleteTag(tag); err != nil {
		t.Fatalf("DeleteTag failed: %v", err)
	}
	if err := b.DeleteTag(tag); !errors.Is(err, ErrUnknownTag) {
		t.Errorf("expected ErrUnknownTag, got %v", err)
	}
	if err := b.ApplyTag(tag, 0, 1); !errors.Is(err, ErrUnknownTag) {
		t.Errorf("expected ErrUnknownTag applying a deleted tag, got %v", err)
	}
	if b.LookupTag("x") != nil {
		t.Error("deleted tag still found by name")
	}
	if !slices.Equal(rec.events, []string{"deleted x"}) {
		t.Errorf("unexpected events %v", rec.events)
	}
}

func TestApplyAndRemoveTag(t *testing.T) {
	b := NewBufferFromString("cat dog bird")
	tag, _ := b.CreateTag("err")
	rec := &recorder{}
	b.AddObserver(rec)

	b.ApplyTag(tag, 4, 7)
	b.ApplyTag(tag, 8, 12)
	want := []Range{{4, 7}, {8, 12}}
	if got := b.TagRanges(tag); !slices.Equal(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}

	if !b.HasTag(tag, 0, 5) {
		t.Error("expected tag within [0,5)")
	}
	if b.HasTag(tag, 0, 4) {
		t.Error("did not expect tag within [0,4)")
	}
	if b.HasTag(tag, 7, 8) {
		t.Error("did not expect tag on the space")
	}

	b.RemoveTagRange(tag, 0, 9)
	if got := b.TagRanges(tag); !slices.Equal(got, []Range{{9, 12}}) {
		t.Fatalf("expected [[9:12)], got %v", got)
	}

	wantEvents := []string{"apply err [4:7)", "apply err [8:12)", "remove err [0:9)"}
	if !slices.Equal(rec.events, wantEvents) {
		t.Errorf("expected %v, got %v", wantEvents, rec.events)
	}

	if err := b.ApplyTag(tag, 5, 50); !errors.Is(err, ErrRangeInvalid) {
		t.Errorf("expected ErrRangeInvalid, got %v", err)
	}
}

func TestTagsShiftWithEdits(t *testing.T) {
	b := NewBufferFromString("Hello, World!")
	tag, _ := b.CreateTag("highlight")
	b.ApplyTag(tag, 7, 12)

	b.Insert(0, ">> ")
	if got := b.TagRanges(tag); !slices.Equal(got, []Range{{10, 15}}) {
		t.Fatalf("expected [[10:15)] after insert, got %v", got)
	}

	// Text inserted inside a tagged span is not tagged.
	b.Insert(12, "XX")
	if got := b.TagRanges(tag); !slices.Equal(got, []Range{{10, 12}, {14, 17}}) {
		t.Fatalf("expected split span, got %v", got)
	}

	b.Delete(11, 15)
	if got := b.TagRanges(tag); !slices.Equal(got, []Range{{10, 13}}) {
		t.Fatalf("expected [[10:13)] after delete, got %v", got)
	}
}

func TestTagsAt(t *testing.T) {
	b := NewBufferFromString("abcdef")
	t1, _ := b.CreateTag("one")
	t2, _ := b.CreateTag("two")
	b.ApplyTag(t1, 0, 4)
	b.ApplyTag(t2, 2, 6)

	if got := b.TagsAt(3); !slices.Equal(got, []*Tag{t1, t2}) {
		t.Errorf("expected both tags at 3, got %v", got)
	}
	if got := b.TagsAt(5); !slices.Equal(got, []*Tag{t2}) {
		t.Errorf("expected only two at 5, got %v", got)
	}
	if got := b.TagsAt(6); got != nil {
		t.Errorf("expected nothing at end, got %v", got)
	}
}

func TestForeignTag(t *testing.T) {
	a := NewBufferFromString("aaa")
	b := NewBufferFromString("bbb")
	tag, _ := a.CreateTag("x")

	if err := b.ApplyTag(tag, 0, 1); !errors.Is(err, ErrUnknownTag) {
		t.Errorf("expected ErrUnknownTag, got %v", err)
	}
	if b.HasTag(tag, 0, 1) {
		t.Error("foreign tag must not report coverage")
	}
}
