package utils

import (
	"fmt"
	"strings"
)

var sizeUnits = []string{"b", "kb", "mb", "gb", "tb", "pb"}

// FormatFileSize converts a byte length into a human-readable lower-case unit string.
func FormatFileSize(byteCount int64) string {
	if byteCount < 0 {
		return "0b"
	}
	scaled := float64(byteCount)
	unitIndex := 0
	for scaled >= 1024 && unitIndex < len(sizeUnits)-1 {
		scaled /= 1024
		unitIndex++
	}
	if unitIndex == 0 {
		return fmt.Sprintf("%db", byteCount)
	}
	if scaled < 10 {
		return strings.TrimSuffix(fmt.Sprintf("%.1f", scaled), ".0") + sizeUnits[unitIndex]
	}
	return fmt.Sprintf("%.0f%s", scaled, sizeUnits[unitIndex])
}

// Pluralize returns singular when count is one and plural otherwise.
func Pluralize(count int, singular string, plural string) string {
	if count == 1 {
		return singular
	}
	return plural
}
