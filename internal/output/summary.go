package output

import (
	"fmt"

	"github.com/temirov/bundler/internal/types"
	"github.com/temirov/bundler/internal/utils"
)

// FormatSummaryLine formats a BundleSummary into a single human-readable line.
func FormatSummaryLine(summary types.BundleSummary) string {
	line := fmt.Sprintf(
		"Summary: %d %s, %s",
		summary.BundledFiles,
		utils.Pluralize(summary.BundledFiles, "file", "files"),
		utils.FormatFileSize(summary.ContentBytes),
	)
	if summary.FailedFiles > 0 {
		line += fmt.Sprintf(", %d unreadable", summary.FailedFiles)
	}
	if summary.TotalTokens > 0 {
		line += fmt.Sprintf(", %d tokens", summary.TotalTokens)
	}
	if summary.Model != "" {
		line += fmt.Sprintf(" (model: %s)", summary.Model)
	}
	return line
}
