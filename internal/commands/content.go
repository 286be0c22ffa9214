package commands

import (
	"fmt"
	"io/fs"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/temirov/bundler/internal/filter"
	"github.com/temirov/bundler/internal/types"
	"github.com/temirov/bundler/internal/utils"
)

const (
	errorWalkRootFormat = "walking %s: %w"

	logSkippingContentPath     = "skipping path"
	logSkippingLinkedDirectory = "skipping symbolic link to directory"
	logUnreadablePath          = "unable to access path"
	logUnreadableFile          = "unable to read file content"
)

// RecordHandler receives each content record in walk order. An error returned
// by the handler aborts the walk and is returned by Bundle.
type RecordHandler func(record types.FileRecord) error

// ContentBundler walks the project root and produces one record per included file.
type ContentBundler struct {
	// Root is the absolute project root.
	Root   string
	Filter *filter.Filter
	// OutputPath is the absolute path of the output document, which is never bundled.
	OutputPath string
	Logger     *zap.Logger
}

// Bundle visits every file under Root depth-first in lexical order. Skipped
// directories are pruned before descent and symbolic links to directories are
// not followed. A file that cannot be read yields a record carrying the read
// error; it never aborts the walk. Only a failure to read Root itself or a
// handler error is returned.
func (bundler *ContentBundler) Bundle(handle RecordHandler) error {
	logger := bundler.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	cleanOutputPath := filepath.Clean(bundler.OutputPath)

	walkError := filepath.WalkDir(bundler.Root, func(walkedPath string, directoryEntry fs.DirEntry, accessError error) error {
		relativePath := utils.NormalizedRelativePath(bundler.Root, walkedPath)
		if accessError != nil {
			if relativePath == "." {
				return accessError
			}
			logger.Warn(logUnreadablePath, zap.String("path", relativePath), zap.Error(accessError))
			if directoryEntry != nil && directoryEntry.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if relativePath == "." {
			return nil
		}

		if directoryEntry.IsDir() {
			if bundler.Filter.ShouldSkip(directoryEntry.Name(), relativePath, true) {
				logger.Debug(logSkippingContentPath, zap.String("path", relativePath))
				return filepath.SkipDir
			}
			return nil
		}

		if utils.IsDirectoryEntry(walkedPath, directoryEntry) {
			logger.Debug(logSkippingLinkedDirectory, zap.String("path", relativePath))
			return nil
		}

		if filepath.Clean(walkedPath) == cleanOutputPath || bundler.Filter.ShouldSkip(directoryEntry.Name(), relativePath, false) {
			logger.Debug(logSkippingContentPath, zap.String("path", relativePath))
			return nil
		}

		record := types.FileRecord{RelativePath: relativePath}
		content, readError := utils.ReadTextFile(walkedPath)
		if readError != nil {
			logger.Warn(logUnreadableFile, zap.String("path", relativePath), zap.Error(readError))
			record.ReadError = readError
		} else {
			record.Content = content
		}
		return handle(record)
	})
	if walkError != nil {
		return fmt.Errorf(errorWalkRootFormat, bundler.Root, walkError)
	}
	return nil
}
