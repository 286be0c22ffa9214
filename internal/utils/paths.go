// Package utils contains general helpers shared by the bundler packages.
package utils

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

const pathSegmentSeparator = "/"

// NormalizedRelativePath returns fullPath relative to root using forward slashes.
// It returns "." when both resolve to the same directory and the cleaned
// forward-slash form of fullPath when no relative path exists.
func NormalizedRelativePath(root string, fullPath string) string {
	cleanPath := filepath.Clean(fullPath)
	cleanRoot := filepath.Clean(root)
	if cleanPath == cleanRoot {
		return "."
	}
	relativePath, relativeError := filepath.Rel(cleanRoot, cleanPath)
	if relativeError != nil {
		return filepath.ToSlash(cleanPath)
	}
	return filepath.ToSlash(relativePath)
}

// IsDirectoryEntry reports whether entry names a directory, following a
// symbolic link to its target. A dangling link is not a directory.
func IsDirectoryEntry(fullPath string, entry fs.DirEntry) bool {
	if entry.IsDir() {
		return true
	}
	if entry.Type()&fs.ModeSymlink == 0 {
		return false
	}
	targetInfo, statError := os.Stat(fullPath)
	return statError == nil && targetInfo.IsDir()
}

// NormalizeIdentifier converts a user supplied path identifier to the form used for
// relative path comparisons: forward slashes, no leading "./" and no trailing slash.
func NormalizeIdentifier(identifier string) string {
	normalized := strings.ReplaceAll(strings.TrimSpace(identifier), "\\", pathSegmentSeparator)
	for strings.HasPrefix(normalized, "./") {
		normalized = strings.TrimPrefix(normalized, "./")
	}
	if len(normalized) > 1 {
		normalized = strings.TrimSuffix(normalized, pathSegmentSeparator)
	}
	return normalized
}

// ProjectDirectoryName returns the name shown on the root line of the tree.
// The filesystem root has no base name, so the working directory's name is used instead.
func ProjectDirectoryName(absoluteRoot string) string {
	baseName := filepath.Base(absoluteRoot)
	if baseName != "" && baseName != "." && baseName != string(filepath.Separator) {
		return baseName
	}
	workingDirectory, workingDirectoryError := os.Getwd()
	if workingDirectoryError != nil {
		return baseName
	}
	return filepath.Base(workingDirectory)
}

// DeduplicatePatterns removes duplicate patterns from a slice while preserving order.
// The first occurrence of each unique pattern is kept.
func DeduplicatePatterns(patterns []string) []string {
	encounteredPatterns := make(map[string]struct{}, len(patterns))
	result := make([]string, 0, len(patterns))
	for _, pattern := range patterns {
		if _, exists := encounteredPatterns[pattern]; !exists {
			encounteredPatterns[pattern] = struct{}{}
			result = append(result, pattern)
		}
	}
	return result
}
