package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRunReportsMisspellings(t *testing.T) {
	dir := t.TempDir()
	dict := writeFile(t, dir, "words.txt", "the\nquick\nfox\n")
	doc := writeFile(t, dir, "doc.txt", "the quick\nbrwn fox\n")

	code, stdout, stderr := runCLI(t, "-dict", dict, doc)
	if code != exitMisspelled {
		t.Fatalf("exit code = %d, stderr = %s", code, stderr)
	}
	want := doc + ":2:1: brwn\n"
	if stdout != want {
		t.Errorf("stdout = %q, want %q", stdout, want)
	}
}

func TestRunClean(t *testing.T) {
	dir := t.TempDir()
	dict := writeFile(t, dir, "words.txt", "all\ngood\n")
	doc := writeFile(t, dir, "doc.txt", "all good")

	code, stdout, _ := runCLI(t, "-dict", dict, doc)
	if code != exitClean || stdout != "" {
		t.Errorf("code = %d, stdout = %q", code, stdout)
	}
}

func TestRunWithConfigAndScript(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "words.txt", "hello\n")
	writeFile(t, dir, "rules.lua", `function check_word(w) return w == "gopher" or known(w) end`)
	cfgPath := writeFile(t, dir, "spellscan.toml", `
[spell]
delay = "1ms"
dictionary = "words.txt"
luaChecker = "rules.lua"
`)
	doc := writeFile(t, dir, "doc.txt", "hello gopher wrld")

	code, stdout, stderr := runCLI(t, "-config", cfgPath, doc)
	if code != exitMisspelled {
		t.Fatalf("exit code = %d, stderr = %s", code, stderr)
	}
	if !strings.HasSuffix(stdout, ":1:14: wrld\n") {
		t.Errorf("stdout = %q", stdout)
	}
}

func TestRunErrors(t *testing.T) {
	dir := t.TempDir()
	dict := writeFile(t, dir, "words.txt", "x\n")

	tests := []struct {
		name string
		args []string
	}{
		{"no files", []string{"-dict", dict}},
		{"no checker", []string{filepath.Join(dir, "words.txt")}},
		{"missing file", []string{"-dict", dict, filepath.Join(dir, "absent.txt")}},
		{"bad log level", []string{"-dict", dict, "-log-level", "loud", dict}},
		{"unknown flag", []string{"-bogus"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if code, _, _ := runCLI(t, tt.args...); code != exitError {
				t.Errorf("exit code = %d, want %d", code, exitError)
			}
		})
	}
}

func TestRunVersion(t *testing.T) {
	code, _, stderr := runCLI(t, "-version")
	if code != exitClean || !strings.Contains(stderr, "spellscan") {
		t.Errorf("code = %d, stderr = %q", code, stderr)
	}
}
