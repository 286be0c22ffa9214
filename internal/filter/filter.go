// Package filter decides which filesystem entries are left out of a bundle.
//
// A Filter is built once per run and shared by the tree renderer and the
// content bundler, so both blocks of the output document always agree on
// what was excluded.
package filter

import (
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/temirov/bundler/internal/utils"
)

const errorInvalidPatternFormat = "invalid exclude pattern %q: %w"

// DefaultIgnoredDirectories lists directory names skipped when none are configured.
var DefaultIgnoredDirectories = []string{
	".git",
	"node_modules",
	".venv",
	".idea",
	"dist",
	"build",
	"__pycache__",
}

// DefaultIgnoredExtensions lists suffixes of generated or binary artifacts skipped when none are configured.
var DefaultIgnoredExtensions = []string{
	".log",
	".env",
	".sqlite",
	".db",
	".tmp",
	".bak",
	".zip",
	".tar.gz",
	".pyc",
	".swp",
	".DS_Store",
	".exe",
	".dll",
	".o",
	".so",
	".class",
	".jar",
	".png",
}

// DefaultIgnoredFiles lists file identifiers skipped when none are configured.
var DefaultIgnoredFiles = []string{
	utils.DefaultOutputFileName,
	utils.GitIgnoreFileName,
	".gitattributes",
}

// Options configures a Filter. A nil slice selects the corresponding default list;
// an empty non-nil slice disables that rule set.
type Options struct {
	IgnoredDirectories []string
	IgnoredExtensions  []string
	IgnoredFiles       []string
	ExcludePatterns    []string
	// AlwaysIgnored names are added to the ignored file identifiers whatever IgnoredFiles holds.
	AlwaysIgnored []string
}

// Filter is an immutable set of exclusion rules.
type Filter struct {
	directories     map[string]struct{}
	extensions      []string
	files           map[string]struct{}
	excludePatterns []string
}

// New validates options and builds a Filter.
func New(options Options) (*Filter, error) {
	directories := options.IgnoredDirectories
	if directories == nil {
		directories = DefaultIgnoredDirectories
	}
	extensions := options.IgnoredExtensions
	if extensions == nil {
		extensions = DefaultIgnoredExtensions
	}
	files := options.IgnoredFiles
	if files == nil {
		files = DefaultIgnoredFiles
	}

	builtFilter := &Filter{
		directories: make(map[string]struct{}, len(directories)),
		files:       make(map[string]struct{}, len(files)+len(options.AlwaysIgnored)),
	}
	for _, directoryName := range directories {
		if trimmed := strings.Trim(strings.TrimSpace(directoryName), "/"); trimmed != "" {
			builtFilter.directories[trimmed] = struct{}{}
		}
	}
	for _, extension := range utils.DeduplicatePatterns(extensions) {
		if trimmed := strings.TrimSpace(extension); trimmed != "" {
			builtFilter.extensions = append(builtFilter.extensions, trimmed)
		}
	}
	identifiers := append(append([]string{}, files...), options.AlwaysIgnored...)
	for _, identifier := range identifiers {
		if normalized := utils.NormalizeIdentifier(identifier); normalized != "" {
			builtFilter.files[normalized] = struct{}{}
		}
	}
	for _, pattern := range utils.DeduplicatePatterns(options.ExcludePatterns) {
		normalized := strings.TrimPrefix(utils.NormalizeIdentifier(pattern), "/")
		if normalized == "" {
			continue
		}
		if !doublestar.ValidatePattern(normalized) {
			return nil, fmt.Errorf(errorInvalidPatternFormat, pattern, doublestar.ErrBadPattern)
		}
		builtFilter.excludePatterns = append(builtFilter.excludePatterns, normalized)
	}
	return builtFilter, nil
}

// IsIgnoredDirectory reports whether a directory name prunes its whole subtree.
func (filter *Filter) IsIgnoredDirectory(name string) bool {
	_, ignored := filter.directories[name]
	return ignored
}

// HasIgnoredExtension reports whether name ends with an ignored extension.
func (filter *Filter) HasIgnoredExtension(name string) bool {
	for _, extension := range filter.extensions {
		if strings.HasSuffix(name, extension) {
			return true
		}
	}
	return false
}

// IsIgnoredIdentifier reports whether the basename or the root-relative path is an ignored file identifier.
func (filter *Filter) IsIgnoredIdentifier(name string, relativePath string) bool {
	if _, ignored := filter.files[name]; ignored {
		return true
	}
	_, ignored := filter.files[relativePath]
	return ignored
}

// IsExcludedByPattern reports whether the root-relative path matches an exclude glob.
func (filter *Filter) IsExcludedByPattern(relativePath string) bool {
	for _, pattern := range filter.excludePatterns {
		if matched, _ := doublestar.Match(pattern, relativePath); matched {
			return true
		}
	}
	return false
}

// ShouldSkip reports whether an entry is excluded. name is the entry's basename and
// relativePath its forward-slash path relative to the project root. Callers prune
// skipped directories, so descendants of a skipped directory are never consulted.
// File identifiers and extensions apply to files only; a directory is pruned by
// its name or by an exclude glob.
func (filter *Filter) ShouldSkip(name string, relativePath string, isDirectory bool) bool {
	if isDirectory {
		if filter.IsIgnoredDirectory(name) {
			return true
		}
	} else if filter.IsIgnoredIdentifier(name, relativePath) || filter.HasIgnoredExtension(name) {
		return true
	}
	return filter.IsExcludedByPattern(relativePath)
}

// Describe returns the effective rule sets, directories and identifiers sorted.
func (filter *Filter) Describe() (directories []string, extensions []string, files []string, patterns []string) {
	for directoryName := range filter.directories {
		directories = append(directories, directoryName)
	}
	for identifier := range filter.files {
		files = append(files, identifier)
	}
	sort.Strings(directories)
	sort.Strings(files)
	extensions = append(extensions, filter.extensions...)
	patterns = append(patterns, filter.excludePatterns...)
	return directories, extensions, files, patterns
}

// GitignorePatterns converts .gitignore style lines into exclude globs.
// Negations are dropped. A pattern without an inner slash matches at any depth,
// a leading slash anchors it to the root and a trailing slash is removed.
func GitignorePatterns(lines []string) []string {
	var patterns []string
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") || strings.HasPrefix(trimmed, "!") {
			continue
		}
		trimmed = strings.TrimSuffix(trimmed, "/")
		anchored := strings.HasPrefix(trimmed, "/")
		trimmed = strings.TrimPrefix(trimmed, "/")
		if trimmed == "" {
			continue
		}
		if !anchored && !strings.Contains(trimmed, "/") && !strings.HasPrefix(trimmed, "**") {
			trimmed = path.Join("**", trimmed)
		}
		patterns = append(patterns, trimmed)
	}
	return utils.DeduplicatePatterns(patterns)
}
