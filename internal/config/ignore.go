// Package config loads bundler defaults and project ignore files.
package config

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/temirov/bundler/internal/filter"
	"github.com/temirov/bundler/internal/utils"
)

const (
	// binarySectionHeader opens a section of .ignore files that bundler does not use.
	binarySectionHeader = "[binary]"
	// ignoreSectionHeader opens the section listing ignore patterns.
	ignoreSectionHeader = "[ignore]"
)

// LoadIgnoreFilePatterns reads ignore patterns from a single file.
// A missing file yields no patterns and no error.
//
// #nosec G304
func LoadIgnoreFilePatterns(ignoreFilePath string) ([]string, error) {
	fileHandle, openFileError := os.Open(ignoreFilePath)
	if openFileError != nil {
		if os.IsNotExist(openFileError) {
			return nil, nil
		}
		return nil, openFileError
	}
	defer fileHandle.Close()

	var ignorePatterns []string
	inIgnoreSection := true
	scanner := bufio.NewScanner(fileHandle)
	for scanner.Scan() {
		trimmedLine := strings.TrimSpace(scanner.Text())
		if trimmedLine == "" || strings.HasPrefix(trimmedLine, "#") {
			continue
		}
		if strings.EqualFold(trimmedLine, binarySectionHeader) {
			inIgnoreSection = false
			continue
		}
		if strings.EqualFold(trimmedLine, ignoreSectionHeader) {
			inIgnoreSection = true
			continue
		}
		if inIgnoreSection {
			ignorePatterns = append(ignorePatterns, trimmedLine)
		}
	}
	if scanError := scanner.Err(); scanError != nil {
		return nil, scanError
	}
	return ignorePatterns, nil
}

// LoadProjectExcludePatterns converts the root .ignore and .gitignore files of a
// project into exclude globs understood by filter.Filter.
func LoadProjectExcludePatterns(rootDirectoryPath string) ([]string, error) {
	var combinedLines []string
	for _, fileName := range []string{utils.IgnoreFileName, utils.GitIgnoreFileName} {
		filePatterns, loadError := LoadIgnoreFilePatterns(filepath.Join(rootDirectoryPath, fileName))
		if loadError != nil {
			return nil, fmt.Errorf("loading %s from %s: %w", fileName, rootDirectoryPath, loadError)
		}
		combinedLines = append(combinedLines, filePatterns...)
	}
	return filter.GitignorePatterns(combinedLines), nil
}
