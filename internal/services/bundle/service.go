// Package bundle runs one snapshot: it renders the structure block, appends the
// content block and reports what was written.
package bundle

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/temirov/bundler/internal/commands"
	"github.com/temirov/bundler/internal/filter"
	"github.com/temirov/bundler/internal/output"
	"github.com/temirov/bundler/internal/tokenizer"
	"github.com/temirov/bundler/internal/types"
	"github.com/temirov/bundler/internal/utils"
)

const (
	errorAbsolutePathFormat = "abs failed for '%s': %w"
	errorRootAccessFormat   = "access project root '%s': %w"
	errorRootNotDirectory   = "project root '%s' is not a directory"
	errorCreateOutputFormat = "create output file '%s': %w"
	errorWriteOutputFormat  = "write output file '%s': %w"
	errorCloseOutputFormat  = "close output file '%s': %w"

	logFilterConfiguration = "filter configuration"
	logTokenCountFailed    = "failed to count tokens"
)

// ErrEmptyRoot is returned when no project root is given.
var ErrEmptyRoot = errors.New("project root path is empty")

// Options configures one run. Nil filter collections select the built-in defaults.
type Options struct {
	Root       string
	OutputPath string

	IgnoredDirectories []string
	IgnoredExtensions  []string
	IgnoredFiles       []string
	ExcludePatterns    []string
	// SelfIdentifier names the bundler itself; it is always excluded.
	SelfIdentifier string

	// TokenCounter enables token estimates when non-nil.
	TokenCounter tokenizer.Counter
	TokenModel   string

	Logger *zap.Logger
}

// Run writes the bundle for options.Root to options.OutputPath, replacing any
// previous content. Failing to access the root or to create, write or close the
// output is fatal; unreadable subdirectories and files are recorded inline and
// the run continues.
func Run(options Options) (summary types.BundleSummary, err error) {
	logger := options.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	if options.Root == "" {
		return summary, ErrEmptyRoot
	}
	outputPath := options.OutputPath
	if outputPath == "" {
		outputPath = utils.DefaultOutputFileName
	}

	absoluteRoot, rootError := resolveRoot(options.Root)
	if rootError != nil {
		return summary, rootError
	}
	absoluteOutputPath, absoluteError := filepath.Abs(outputPath)
	if absoluteError != nil {
		return summary, fmt.Errorf(errorAbsolutePathFormat, outputPath, absoluteError)
	}
	outputName := filepath.Base(absoluteOutputPath)

	alwaysIgnored := []string{outputName}
	if options.SelfIdentifier != "" {
		alwaysIgnored = append(alwaysIgnored, options.SelfIdentifier)
	}
	runFilter, filterError := filter.New(filter.Options{
		IgnoredDirectories: options.IgnoredDirectories,
		IgnoredExtensions:  options.IgnoredExtensions,
		IgnoredFiles:       options.IgnoredFiles,
		ExcludePatterns:    options.ExcludePatterns,
		AlwaysIgnored:      alwaysIgnored,
	})
	if filterError != nil {
		return summary, filterError
	}
	logFilter(logger, runFilter)

	// #nosec G304
	outputFile, createError := os.Create(absoluteOutputPath)
	if createError != nil {
		return summary, fmt.Errorf(errorCreateOutputFormat, absoluteOutputPath, createError)
	}
	defer func() {
		if closeError := outputFile.Close(); closeError != nil && err == nil {
			err = fmt.Errorf(errorCloseOutputFormat, absoluteOutputPath, closeError)
		}
	}()
	summary.OutputPath = absoluteOutputPath
	summary.Model = options.TokenModel

	document := output.NewDocument(outputFile)

	renderer := commands.TreeRenderer{
		Root:       absoluteRoot,
		Filter:     runFilter,
		OutputName: outputName,
		Logger:     logger,
	}
	treeLines := renderer.Render()
	summary.TreeLines = len(treeLines)
	document.BeginStructure(utils.ProjectDirectoryName(absoluteRoot))
	document.WriteTreeLines(treeLines)
	document.EndStructure()
	if document.Err() != nil {
		return summary, fmt.Errorf(errorWriteOutputFormat, absoluteOutputPath, document.Err())
	}

	bundler := commands.ContentBundler{
		Root:       absoluteRoot,
		Filter:     runFilter,
		OutputPath: absoluteOutputPath,
		Logger:     logger,
	}
	bundleError := bundler.Bundle(func(record types.FileRecord) error {
		document.WriteFileRecord(record)
		if writeError := document.Err(); writeError != nil {
			return fmt.Errorf(errorWriteOutputFormat, absoluteOutputPath, writeError)
		}
		if record.Failed() {
			summary.FailedFiles++
			return nil
		}
		summary.BundledFiles++
		if options.TokenCounter != nil {
			tokens, countError := tokenizer.CountText(options.TokenCounter, record.Content)
			if countError != nil {
				logger.Warn(logTokenCountFailed, zap.String("path", record.RelativePath), zap.Error(countError))
			} else {
				summary.TotalTokens += tokens
			}
		}
		return nil
	})
	summary.ContentBytes = document.ContentBytes()
	if bundleError != nil {
		return summary, bundleError
	}
	if flushError := document.Flush(); flushError != nil {
		return summary, fmt.Errorf(errorWriteOutputFormat, absoluteOutputPath, flushError)
	}
	return summary, nil
}

// resolveRoot returns the absolute root after checking that it is a readable directory.
func resolveRoot(root string) (string, error) {
	absoluteRoot, absoluteError := filepath.Abs(root)
	if absoluteError != nil {
		return "", fmt.Errorf(errorAbsolutePathFormat, root, absoluteError)
	}
	rootInformation, statError := os.Stat(absoluteRoot)
	if statError != nil {
		return "", fmt.Errorf(errorRootAccessFormat, absoluteRoot, statError)
	}
	if !rootInformation.IsDir() {
		return "", fmt.Errorf(errorRootNotDirectory, absoluteRoot)
	}
	// #nosec G304
	rootHandle, openError := os.Open(absoluteRoot)
	if openError != nil {
		return "", fmt.Errorf(errorRootAccessFormat, absoluteRoot, openError)
	}
	defer rootHandle.Close()
	if _, readError := rootHandle.Readdirnames(1); readError != nil && !errors.Is(readError, io.EOF) {
		return "", fmt.Errorf(errorRootAccessFormat, absoluteRoot, readError)
	}
	return absoluteRoot, nil
}

func logFilter(logger *zap.Logger, runFilter *filter.Filter) {
	directories, extensions, files, patterns := runFilter.Describe()
	logger.Debug(
		logFilterConfiguration,
		zap.Strings("directories", directories),
		zap.Strings("extensions", extensions),
		zap.Strings("files", files),
		zap.Strings("patterns", patterns),
	)
}
