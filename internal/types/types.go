// Package types defines the data structures shared across the bundler packages.
package types

// FileRecord is one entry of the content block: a root-relative path and either
// the decoded content or the error that prevented reading it.
type FileRecord struct {
	RelativePath string
	Content      string
	ReadError    error
}

// Failed reports whether the record carries a read error instead of content.
func (record FileRecord) Failed() bool {
	return record.ReadError != nil
}

// BundleSummary captures aggregate information about one bundling run.
type BundleSummary struct {
	OutputPath   string
	TreeLines    int
	BundledFiles int
	FailedFiles  int
	ContentBytes int64
	TotalTokens  int
	Model        string
}
