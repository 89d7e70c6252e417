// Package models loads the local model list and handles interactive model
// selection with prefix completion.
package models

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrSelection marks every way model selection can fail: a missing or empty
// list file, or an interactive session that ended without a valid choice.
var ErrSelection = errors.New("model selection error")

// Load reads a model list file: one model name per line, lines starting
// with '#' and blank lines ignored, duplicates dropped keeping the first
// occurrence. File order is display order. A missing file or an empty
// result is an error wrapping ErrSelection.
func Load(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: reading model list %s: %v", ErrSelection, path, err)
	}
	defer f.Close()

	seen := make(map[string]bool)
	var list []string

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if seen[line] {
			continue
		}
		seen[line] = true
		list = append(list, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: reading model list %s: %v", ErrSelection, path, err)
	}

	if len(list) == 0 {
		return nil, fmt.Errorf("%w: no models found in %s", ErrSelection, path)
	}
	return list, nil
}

// Candidates returns the entries of list that start with prefix, in list
// order. Matching is case-sensitive. An empty prefix matches everything.
func Candidates(list []string, prefix string) []string {
	var out []string
	for _, m := range list {
		if strings.HasPrefix(m, prefix) {
			out = append(out, m)
		}
	}
	return out
}

// Resolve applies the selection rules to one line of input: an exact match
// wins immediately (even when it is a proper prefix of another entry),
// then a unique prefix match. The boolean is false for empty or ambiguous
// input, which callers should re-prompt on.
func Resolve(list []string, input string) (string, bool) {
	if input == "" {
		return "", false
	}
	for _, m := range list {
		if m == input {
			return m, true
		}
	}
	if c := Candidates(list, input); len(c) == 1 {
		return c[0], true
	}
	return "", false
}
