package output

import "fmt"

const (
	TreeBranchConnector = "├── "
	TreeLastConnector   = "└── "
	TreeBranchPadding   = "│   "
	TreeLastPadding     = "    "

	// TreeRootPrefix indents the first level below the root line.
	TreeRootPrefix = "    "

	unreadableDirectoryFormat = "[Error reading directory: %s]"
	directorySuffix           = "/"
)

// TreeLinePrefix returns the connector-prefixed start of an entry line and the
// prefix inherited by the entry's children.
func TreeLinePrefix(prefix string, isLast bool) (string, string) {
	if isLast {
		return prefix + TreeLastConnector, prefix + TreeLastPadding
	}
	return prefix + TreeBranchConnector, prefix + TreeBranchPadding
}

// FormatTreeEntry renders one tree line; directories get a trailing slash.
func FormatTreeEntry(linePrefix string, name string, isDirectory bool) string {
	if isDirectory {
		return linePrefix + name + directorySuffix
	}
	return linePrefix + name
}

// FormatUnreadableDirectory renders the placeholder emitted when a directory cannot be listed.
func FormatUnreadableDirectory(prefix string, directoryName string) string {
	return prefix + TreeLastConnector + fmt.Sprintf(unreadableDirectoryFormat, directoryName)
}
