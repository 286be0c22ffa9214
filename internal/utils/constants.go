package utils

const (
	// DefaultOutputFileName is the document written when no output path is given.
	DefaultOutputFileName = "bundled_code.txt"
	// ApplicationName identifies the bundler itself; it is always excluded from bundles.
	ApplicationName = "bundler"

	// ConfigFileName is the name of the optional defaults file.
	ConfigFileName = "bundler.yaml"
	// GlobalConfigDirectoryName is the directory under the user's home holding the global defaults file.
	GlobalConfigDirectoryName = ".bundler"

	// IgnoreFileName is the name of the project's ignore file.
	IgnoreFileName = ".ignore"
	// GitIgnoreFileName is the name of the Git ignore file.
	GitIgnoreFileName = ".gitignore"

	// LoggerInitializationFailedMessageFormat reports a logger construction failure.
	LoggerInitializationFailedMessageFormat = "failed to initialize logger: %w"
	// ApplicationExecutionFailedMessage prefixes fatal run errors.
	ApplicationExecutionFailedMessage = "bundler failed"
)
