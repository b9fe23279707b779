// Package filex resolves command-line file arguments.
package filex

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Collect expands patterns into a list of regular files. A pattern may name a
// file, a directory (walked recursively, dot entries skipped) or a glob.
// Duplicates are dropped; the first occurrence keeps its position.
func Collect(patterns []string) ([]string, error) {
	var out []string
	seen := make(map[string]struct{})

	add := func(p string) {
		p = filepath.Clean(p)
		if _, ok := seen[p]; ok {
			return
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}

	for _, pattern := range patterns {
		paths := []string{pattern}

		if hasMeta(pattern) {
			matches, err := filepath.Glob(pattern)
			if err != nil {
				return nil, fmt.Errorf("glob %q: %w", pattern, err)
			}
			if len(matches) == 0 {
				return nil, fmt.Errorf("%q matches no files", pattern)
			}
			paths = matches
		}

		for _, p := range paths {
			st, err := os.Stat(p)
			if err != nil {
				return nil, fmt.Errorf("stat %s: %w", p, err)
			}
			if !st.IsDir() {
				add(p)
				continue
			}
			if err := walk(p, add); err != nil {
				return nil, err
			}
		}
	}

	return out, nil
}

func walk(root string, add func(string)) error {
	return filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("walk %s: %w", p, err)
		}
		if p != root && strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Type().IsRegular() {
			add(p)
		}
		return nil
	})
}

func hasMeta(p string) bool {
	return strings.ContainsAny(p, `*?[`)
}
