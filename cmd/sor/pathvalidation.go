package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// validateOutputPath rejects a user-supplied output path unless it both (a)
// ends in one of wantExts -- the file kind the calling flag actually writes
// -- and (b) resolves, after cleaning, to somewhere under the current
// working directory or the system temp directory. It is the only path a
// user-supplied write destination reaches in this CLI: --store, --chart,
// and --png each call it with their own extension allowlist.
func validateOutputPath(path string, wantExts ...string) error {
	lower := strings.ToLower(path)
	matched := false
	for _, ext := range wantExts {
		if strings.HasSuffix(lower, ext) {
			matched = true
			break
		}
	}
	if !matched {
		return fmt.Errorf("path %q must end in one of %v", path, wantExts)
	}

	absPath, err := filepath.Abs(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("resolving absolute path: %w", err)
	}
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting working directory: %w", err)
	}

	for _, dir := range []string{cwd, os.TempDir()} {
		absDir, err := filepath.Abs(dir)
		if err != nil {
			continue
		}
		rel, err := filepath.Rel(absDir, absPath)
		if err != nil {
			continue
		}
		if rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) && !filepath.IsAbs(rel) {
			return nil
		}
	}
	return fmt.Errorf("path traversal detected: %q escapes both the working directory and the temp directory", path)
}
