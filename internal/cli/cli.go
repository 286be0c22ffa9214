// Package cli provides the command line interface.
package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/bundler/internal/config"
	"github.com/temirov/bundler/internal/output"
	"github.com/temirov/bundler/internal/services/bundle"
	"github.com/temirov/bundler/internal/services/clipboard"
	"github.com/temirov/bundler/internal/tokenizer"
	"github.com/temirov/bundler/internal/utils"
)

const (
	outputFlagName      = "output"
	outputFlagShorthand = "o"
	ignoreDirFlagName   = "ignore-dir"
	ignoreExtFlagName   = "ignore-ext"
	ignoreFileFlagName  = "ignore-file"
	exclusionFlagName   = "exclude"
	exclusionShorthand  = "e"
	gitignoreFlagName   = "gitignore"
	tokensFlagName      = "tokens"
	modelFlagName       = "model"
	copyFlagName        = "copy"
	configFlagName      = "config"
	verboseFlagName     = "verbose"
	verboseShorthand    = "v"
	versionFlagName     = "version"
	globalFlagName      = "global"
	forceFlagName       = "force"

	versionTemplate      = "bundler version: %s\n"
	defaultRootPath      = "."
	rootUse              = "bundler [root]"
	rootShortDescription = "bundle a project tree and its files into one text document"
	rootLongDescription  = `bundler snapshots a project directory into a single UTF-8 text file.
The document starts with an ASCII tree of the project followed by the content of
every file that survives the ignore rules, each wrapped in START/END markers.
Use -o to choose the output file and --tokens to estimate its model token count.`
	rootUsageExample = `  # Bundle the current directory into bundled_code.txt
  bundler

  # Bundle ./service, skipping generated code, and copy the result
  bundler ./service -o service.txt -e "**/*.pb.go" --copy`

	initUse              = "init"
	initShortDescription = "write a default " + utils.ConfigFileName
	initLongDescription  = `Write a commented bundler.yaml with the built-in defaults.
The file is created in the working directory unless --global is given.`

	outputFlagDescription     = "output file path"
	ignoreDirFlagDescription  = "ignored directory name (repeatable, replaces the built-in list)"
	ignoreExtFlagDescription  = "ignored file extension (repeatable, replaces the built-in list)"
	ignoreFileFlagDescription = "ignored file name or root-relative path (repeatable, replaces the built-in list)"
	exclusionFlagDescription  = "exclude paths matching a glob such as vendor/** (repeatable)"
	gitignoreFlagDescription  = "also exclude patterns listed in the root .gitignore and .ignore"
	tokensFlagDescription     = "count tokens of the bundled content"
	modelFlagDescription      = "tokenizer model to use for token counting"
	copyFlagDescription       = "copy the finished document to the clipboard"
	configFlagDescription     = "configuration file (default ./" + utils.ConfigFileName + ")"
	verboseFlagDescription    = "log every skipped path"
	versionFlagDescription    = "display application version"
	globalFlagDescription     = "write the configuration under the home directory"
	forceFlagDescription      = "overwrite an existing configuration file"

	defaultTokenizerModelName = "gpt-4o"

	logBundleWritten       = "bundle written"
	logConfigurationLoaded = "configuration loaded"
	logTokenizerFailed     = "token counting disabled"
	logClipboardFailed     = "failed to copy bundle to clipboard"
	logClipboardCopied     = "bundle copied to clipboard"
	initCompletedTemplate  = "configuration written to %s\n"

	errorLoggerFormat        = "create logger: %w"
	errorIgnoreFilesFormat   = "load ignore files: %w"
	errorAbsoluteRootFormat  = "abs failed for '%s': %w"
	errorConfigurationFormat = "load configuration: %w"
)

// runSettings holds the effective options of one bundling run after
// configuration files and flags have been merged.
type runSettings struct {
	root               string
	outputPath         string
	ignoredDirectories []string
	ignoredExtensions  []string
	ignoredFiles       []string
	exclusionPatterns  []string
	useGitignore       bool
	tokensEnabled      bool
	tokenModel         string
	copyEnabled        bool
	verbose            bool
	configPath         string
}

// dependencies groups the collaborators a run needs beyond the filesystem.
type dependencies struct {
	clipboard  clipboard.Copier
	newLogger  func(verbose bool) (*zap.Logger, error)
	newCounter func(tokenizer.Config) (tokenizer.Counter, string, error)
	stdout     io.Writer
}

func defaultDependencies() dependencies {
	return dependencies{
		clipboard:  clipboard.NewService(),
		newLogger:  utils.NewApplicationLogger,
		newCounter: tokenizer.NewCounter,
		stdout:     os.Stdout,
	}
}

// Execute runs the bundler application.
func Execute() error {
	rootCommand := createRootCommand(defaultDependencies())
	rootCommand.SetArgs(normalizeBooleanFlagArguments(rootCommand, os.Args[1:]))
	return rootCommand.Execute()
}

// createRootCommand builds the root Cobra command.
func createRootCommand(deps dependencies) *cobra.Command {
	var showVersion bool
	settings := runSettings{
		outputPath: utils.DefaultOutputFileName,
		tokenModel: defaultTokenizerModelName,
	}

	rootCommand := &cobra.Command{
		Use:          rootUse,
		Short:        rootShortDescription,
		Long:         rootLongDescription,
		Example:      rootUsageExample,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(command *cobra.Command, arguments []string) error {
			settings.root = defaultRootPath
			if len(arguments) == 1 {
				settings.root = arguments[0]
			}
			effective, settingsErr := resolveSettings(command, settings)
			if settingsErr != nil {
				return settingsErr
			}
			return runBundle(effective, deps)
		},
		PersistentPreRun: func(command *cobra.Command, arguments []string) {
			if showVersion {
				fmt.Fprintf(deps.stdout, versionTemplate, utils.GetApplicationVersion())
				os.Exit(0)
			}
		},
	}
	rootCommand.SetOut(deps.stdout)

	flagSet := rootCommand.Flags()
	flagSet.StringVarP(&settings.outputPath, outputFlagName, outputFlagShorthand, settings.outputPath, outputFlagDescription)
	flagSet.StringArrayVar(&settings.ignoredDirectories, ignoreDirFlagName, nil, ignoreDirFlagDescription)
	flagSet.StringArrayVar(&settings.ignoredExtensions, ignoreExtFlagName, nil, ignoreExtFlagDescription)
	flagSet.StringArrayVar(&settings.ignoredFiles, ignoreFileFlagName, nil, ignoreFileFlagDescription)
	flagSet.StringArrayVarP(&settings.exclusionPatterns, exclusionFlagName, exclusionShorthand, nil, exclusionFlagDescription)
	registerBooleanFlag(flagSet, &settings.useGitignore, gitignoreFlagName, "", false, gitignoreFlagDescription)
	registerBooleanFlag(flagSet, &settings.tokensEnabled, tokensFlagName, "", false, tokensFlagDescription)
	flagSet.StringVar(&settings.tokenModel, modelFlagName, settings.tokenModel, modelFlagDescription)
	registerBooleanFlag(flagSet, &settings.copyEnabled, copyFlagName, "", false, copyFlagDescription)
	flagSet.StringVar(&settings.configPath, configFlagName, "", configFlagDescription)
	registerBooleanFlag(rootCommand.PersistentFlags(), &settings.verbose, verboseFlagName, verboseShorthand, false, verboseFlagDescription)
	rootCommand.PersistentFlags().BoolVar(&showVersion, versionFlagName, false, versionFlagDescription)

	rootCommand.AddCommand(createInitCommand(deps))
	rootCommand.InitDefaultHelpCmd()
	rootCommand.InitDefaultCompletionCmd()
	return rootCommand
}

// createInitCommand returns the init subcommand.
func createInitCommand(deps dependencies) *cobra.Command {
	var global bool
	var force bool
	initCommand := &cobra.Command{
		Use:   initUse,
		Short: initShortDescription,
		Long:  initLongDescription,
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			target := config.InitTargetLocal
			if global {
				target = config.InitTargetGlobal
			}
			path, initErr := config.InitializeConfiguration(config.InitOptions{Target: target, Force: force})
			if initErr != nil {
				return initErr
			}
			fmt.Fprintf(deps.stdout, initCompletedTemplate, path)
			return nil
		},
	}
	initCommand.Flags().BoolVar(&global, globalFlagName, false, globalFlagDescription)
	initCommand.Flags().BoolVar(&force, forceFlagName, false, forceFlagDescription)
	return initCommand
}

// resolveSettings layers configuration file values under the flags that were
// explicitly set on the command line.
func resolveSettings(command *cobra.Command, flags runSettings) (runSettings, error) {
	loaded, loadErr := config.LoadApplicationConfiguration(config.LoadOptions{ExplicitFilePath: flags.configPath})
	if loadErr != nil {
		return runSettings{}, fmt.Errorf(errorConfigurationFormat, loadErr)
	}

	changed := func(name string) bool {
		return command.Flags().Changed(name)
	}
	effective := flags
	if !changed(outputFlagName) && loaded.Output != "" {
		effective.outputPath = loaded.Output
	}
	if !changed(ignoreDirFlagName) {
		effective.ignoredDirectories = loaded.IgnoreDirs
	}
	if !changed(ignoreExtFlagName) {
		effective.ignoredExtensions = loaded.IgnoreExts
	}
	if !changed(ignoreFileFlagName) {
		effective.ignoredFiles = loaded.IgnoreFiles
	}
	if changed(exclusionFlagName) {
		effective.exclusionPatterns = append(append([]string{}, loaded.Exclude...), flags.exclusionPatterns...)
	} else {
		effective.exclusionPatterns = loaded.Exclude
	}
	if !changed(gitignoreFlagName) {
		effective.useGitignore = config.BoolValue(loaded.UseGitignore, flags.useGitignore)
	}
	if !changed(tokensFlagName) {
		effective.tokensEnabled = config.BoolValue(loaded.Tokens.Enabled, flags.tokensEnabled)
	}
	if !changed(modelFlagName) && loaded.Tokens.Model != "" {
		effective.tokenModel = loaded.Tokens.Model
	}
	if !changed(copyFlagName) {
		effective.copyEnabled = config.BoolValue(loaded.Clipboard, flags.copyEnabled)
	}
	if !changed(verboseFlagName) {
		effective.verbose = config.BoolValue(loaded.Verbose, flags.verbose)
	}
	return effective, nil
}

// runBundle writes one bundle and reports its summary.
func runBundle(settings runSettings, deps dependencies) error {
	logger, loggerErr := deps.newLogger(settings.verbose)
	if loggerErr != nil {
		return fmt.Errorf(errorLoggerFormat, loggerErr)
	}
	defer logger.Sync()

	logger.Debug(logConfigurationLoaded,
		zap.String("root", settings.root),
		zap.String("output", settings.outputPath),
		zap.Bool("gitignore", settings.useGitignore),
		zap.Bool("tokens", settings.tokensEnabled),
	)

	exclusionPatterns := settings.exclusionPatterns
	if settings.useGitignore {
		absoluteRoot, absErr := filepath.Abs(settings.root)
		if absErr != nil {
			return fmt.Errorf(errorAbsoluteRootFormat, settings.root, absErr)
		}
		projectPatterns, ignoreErr := config.LoadProjectExcludePatterns(absoluteRoot)
		if ignoreErr != nil {
			return fmt.Errorf(errorIgnoreFilesFormat, ignoreErr)
		}
		exclusionPatterns = append(append([]string{}, exclusionPatterns...), projectPatterns...)
	}

	options := bundle.Options{
		Root:               settings.root,
		OutputPath:         settings.outputPath,
		IgnoredDirectories: settings.ignoredDirectories,
		IgnoredExtensions:  settings.ignoredExtensions,
		IgnoredFiles:       settings.ignoredFiles,
		ExcludePatterns:    exclusionPatterns,
		SelfIdentifier:     selfIdentifier(),
		Logger:             logger,
	}
	if settings.tokensEnabled {
		counter, modelName, counterErr := deps.newCounter(tokenizer.Config{Model: settings.tokenModel})
		if counterErr != nil {
			logger.Warn(logTokenizerFailed, zap.String("model", settings.tokenModel), zap.Error(counterErr))
		} else {
			options.TokenCounter = counter
			options.TokenModel = modelName
		}
	}

	summary, runErr := bundle.Run(options)
	if runErr != nil {
		return runErr
	}
	logger.Info(logBundleWritten, zap.String("output", summary.OutputPath), zap.Int("tree_lines", summary.TreeLines))
	logger.Info(output.FormatSummaryLine(summary))

	if settings.copyEnabled && deps.clipboard != nil {
		if copyErr := clipboard.CopyFile(deps.clipboard, summary.OutputPath); copyErr != nil {
			logger.Warn(logClipboardFailed, zap.Error(copyErr))
		} else {
			logger.Info(logClipboardCopied)
		}
	}
	return nil
}

// selfIdentifier returns the base name of the running executable, falling back
// to the application name.
func selfIdentifier() string {
	executablePath, executableErr := os.Executable()
	if executableErr != nil {
		return utils.ApplicationName
	}
	return filepath.Base(executablePath)
}
