package main

import "strings"

// normalizeFilename reduces a path to its final segment, with any ?query or
// #fragment suffix stripped. Both separators are honored so Windows-style
// paths normalize too.
func normalizeFilename(path string) string {
	if i := strings.LastIndexAny(path, `/\`); i >= 0 {
		path = path[i+1:]
	}
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	return path
}

// CheckWritePath decides whether an Edit/Write may target the path. Only
// generated lockfiles are protected, matched by exact basename; directory
// components never matter here.
func CheckWritePath(filePath string) *Violation {
	if filePath == "" {
		return nil
	}
	if msg, ok := lockfileMessages[normalizeFilename(filePath)]; ok {
		return &Violation{Message: msg}
	}
	return nil
}

// CheckReadPath decides whether a Read may target the path. Sensitive
// subpaths are checked first (they match anywhere in the path), then the
// secret basenames by exact match.
func CheckReadPath(filePath string) *Violation {
	if filePath == "" {
		return nil
	}
	for _, sp := range sensitiveSubpaths {
		if strings.Contains(filePath, sp.Fragment) {
			return &Violation{Message: sp.Message}
		}
	}
	if msg, ok := secretFileMessages[normalizeFilename(filePath)]; ok {
		return &Violation{Message: msg}
	}
	return nil
}
