package dictionary

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load reads a word list from r. Both plain lists (one word per line) and
// hunspell .dic files are accepted: a leading entry count is skipped, affix
// flags after '/' and anything after the first blank are dropped, and lines
// starting with '#' are comments.
func Load(r io.Reader) (*Dictionary, error) {
	d := New()
	scanner := bufio.NewScanner(r)
	first := true
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		if first {
			first = false
			if _, err := strconv.Atoi(text); err == nil {
				continue
			}
		}
		if word := dicWord(text); word != "" {
			d.Add(word)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading word list at line %d: %w", line, err)
	}
	return d, nil
}

// LoadFile reads a word list from the named file.
func LoadFile(path string) (*Dictionary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	d, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

func dicWord(line string) string {
	if i := strings.IndexAny(line, " \t"); i >= 0 {
		line = line[:i]
	}
	if i := strings.IndexByte(line, '/'); i >= 0 {
		line = line[:i]
	}
	return line
}

// personalFile is the YAML layout of a personal dictionary.
type personalFile struct {
	Words  []string `yaml:"words"`
	Ignore []string `yaml:"ignore"`
}

// LoadPersonal reads a YAML personal dictionary from r. An empty document
// yields an empty dictionary.
func LoadPersonal(r io.Reader) (*Dictionary, error) {
	var pf personalFile
	if err := yaml.NewDecoder(r).Decode(&pf); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing personal dictionary: %w", err)
	}
	d := New(pf.Words...)
	d.Ignore(pf.Ignore...)
	return d, nil
}

// LoadPersonalFile reads a YAML personal dictionary from the named file.
func LoadPersonalFile(path string) (*Dictionary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	d, err := LoadPersonal(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

// Open builds a dictionary from a word list and a personal dictionary.
// Either path may be empty, but not both.
func Open(dictPath, personalPath string) (*Dictionary, error) {
	if dictPath == "" && personalPath == "" {
		return nil, ErrNoSources
	}

	d := New()
	if dictPath != "" {
		words, err := LoadFile(dictPath)
		if err != nil {
			return nil, err
		}
		d.Merge(words)
	}
	if personalPath != "" {
		personal, err := LoadPersonalFile(personalPath)
		if err != nil {
			return nil, err
		}
		d.Merge(personal)
	}
	return d, nil
}
