package loader

import (
	"errors"
	"strings"
	"testing"
	"testing/fstest"
)

func TestTOMLLoaderLoad(t *testing.T) {
	fsys := fstest.MapFS{
		"spellscan.toml": {Data: []byte(`
[spell]
delay = "300ms"
budget = 500
dictionary = "en.dic"

[logging]
level = "debug"
`)},
	}

	config, err := NewTOMLLoaderWithFS(fsys, "spellscan.toml").Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	spell, ok := config["spell"].(map[string]any)
	if !ok {
		t.Fatalf("spell section missing: %v", config)
	}
	if spell["delay"] != "300ms" {
		t.Errorf("delay = %v", spell["delay"])
	}
	if spell["budget"] != int64(500) {
		t.Errorf("budget = %v (%T)", spell["budget"], spell["budget"])
	}
}

func TestTOMLLoaderMissingFile(t *testing.T) {
	config, err := NewTOMLLoaderWithFS(fstest.MapFS{}, "missing.toml").Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if config != nil {
		t.Errorf("expected nil config, got %v", config)
	}
}

func TestTOMLLoaderParseError(t *testing.T) {
	fsys := fstest.MapFS{
		"bad.toml": {Data: []byte("[spell]\ndelay = \n")},
	}

	_, err := NewTOMLLoaderWithFS(fsys, "bad.toml").Load()
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected ParseError, got %v", err)
	}
	if perr.Path != "bad.toml" {
		t.Errorf("Path = %q", perr.Path)
	}
	if perr.Line != 2 {
		t.Errorf("Line = %d, want 2", perr.Line)
	}
	if !strings.Contains(perr.Error(), "bad.toml") {
		t.Errorf("Error() = %q", perr.Error())
	}
}

func TestTOMLLoaderFromReader(t *testing.T) {
	config, err := NewTOMLLoader("").LoadFromReader(strings.NewReader(`enabled = true`))
	if err != nil {
		t.Fatal(err)
	}
	if config["enabled"] != true {
		t.Errorf("enabled = %v", config["enabled"])
	}
}

func TestDeepMerge(t *testing.T) {
	dst := map[string]any{
		"spell":   map[string]any{"delay": "200ms", "budget": "1s"},
		"logging": map[string]any{"level": "info"},
	}
	src := map[string]any{
		"spell":   map[string]any{"delay": "50ms"},
		"logging": "flat",
	}

	got := DeepMerge(dst, src)
	spell := got["spell"].(map[string]any)
	if spell["delay"] != "50ms" || spell["budget"] != "1s" {
		t.Errorf("nested merge wrong: %v", spell)
	}
	if got["logging"] != "flat" {
		t.Errorf("non-map value should replace map: %v", got["logging"])
	}

	if m := DeepMerge(nil, nil); m == nil || len(m) != 0 {
		t.Errorf("DeepMerge(nil, nil) = %v", m)
	}
}
