// Package commands contains the two traversals that produce a bundle:
// the tree renderer for the structure block and the content bundler for the content block.
package commands

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/temirov/bundler/internal/filter"
	"github.com/temirov/bundler/internal/output"
	"github.com/temirov/bundler/internal/utils"
)

const (
	logSkippingTreeEntry       = "skipping tree entry"
	logUnreadableTreeDirectory = "unable to list directory"
)

// treeEntry is a listed child that survived filtering. A symbolic link to a
// directory is shown as a directory but never expanded, matching the content walk.
type treeEntry struct {
	name        string
	path        string
	isDirectory bool
	descend     bool
}

// TreeRenderer renders the structure block below the project root line.
type TreeRenderer struct {
	// Root is the absolute project root.
	Root   string
	Filter *filter.Filter
	// OutputName is the output document's basename; files with this name are never listed.
	OutputName string
	Logger     *zap.Logger
}

// Render returns the tree lines for every entry below Root.
// Sibling order is the byte order of entry names, so repeated runs over an
// unchanged filesystem produce identical lines.
func (renderer *TreeRenderer) Render() []string {
	return renderer.renderDirectory(renderer.Root, output.TreeRootPrefix)
}

// renderDirectory lists one directory. A listing failure produces a single
// placeholder line and stops descent into that branch.
func (renderer *TreeRenderer) renderDirectory(directoryPath string, prefix string) []string {
	// os.ReadDir returns entries sorted by name.
	directoryEntries, readDirectoryError := os.ReadDir(directoryPath)
	if readDirectoryError != nil {
		renderer.logger().Warn(logUnreadableTreeDirectory, zap.String("path", directoryPath), zap.Error(readDirectoryError))
		return []string{output.FormatUnreadableDirectory(prefix, filepath.Base(directoryPath))}
	}

	var visibleEntries []treeEntry
	for _, directoryEntry := range directoryEntries {
		entryName := directoryEntry.Name()
		entryPath := filepath.Join(directoryPath, entryName)
		relativePath := utils.NormalizedRelativePath(renderer.Root, entryPath)
		isDirectory := utils.IsDirectoryEntry(entryPath, directoryEntry)
		if (!isDirectory && entryName == renderer.OutputName) || renderer.Filter.ShouldSkip(entryName, relativePath, isDirectory) {
			renderer.logger().Debug(logSkippingTreeEntry, zap.String("path", relativePath))
			continue
		}
		visibleEntries = append(visibleEntries, treeEntry{
			name:        entryName,
			path:        entryPath,
			isDirectory: isDirectory,
			descend:     directoryEntry.IsDir(),
		})
	}

	var lines []string
	for entryIndex, entry := range visibleEntries {
		isLast := entryIndex == len(visibleEntries)-1
		linePrefix, childPrefix := output.TreeLinePrefix(prefix, isLast)
		lines = append(lines, output.FormatTreeEntry(linePrefix, entry.name, entry.isDirectory))
		if entry.descend {
			lines = append(lines, renderer.renderDirectory(entry.path, childPrefix)...)
		}
	}
	return lines
}

func (renderer *TreeRenderer) logger() *zap.Logger {
	if renderer.Logger == nil {
		return zap.NewNop()
	}
	return renderer.Logger
}
