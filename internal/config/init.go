package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/temirov/bundler/internal/filter"
	"github.com/temirov/bundler/internal/utils"
)

// InitTarget identifies where configuration should be initialized.
type InitTarget string

const (
	// InitTargetLocal writes configuration into the working directory.
	InitTargetLocal InitTarget = "local"
	// InitTargetGlobal writes configuration into the global configuration directory.
	InitTargetGlobal InitTarget = "global"

	templateListSeparator = ", "
)

const configurationTemplateFormat = `# bundler defaults. Command line flags override every value below.
output: %s
# Omit a list to keep the built-in defaults; an empty list disables the rule.
# ignore_dirs: [%s]
# ignore_exts: [%s]
# ignore_files: [%s]
exclude: []
gitignore: false
tokens:
  enabled: false
  model: gpt-4o
clipboard: false
verbose: false
`

// DefaultConfigurationTemplate returns the file written by init. The commented
// lists mirror the built-in filter defaults, so uncommenting one keeps every default entry.
func DefaultConfigurationTemplate() string {
	return fmt.Sprintf(
		configurationTemplateFormat,
		utils.DefaultOutputFileName,
		strings.Join(filter.DefaultIgnoredDirectories, templateListSeparator),
		strings.Join(filter.DefaultIgnoredExtensions, templateListSeparator),
		strings.Join(filter.DefaultIgnoredFiles, templateListSeparator),
	)
}

// InitOptions controls how configuration initialization behaves.
type InitOptions struct {
	Target           InitTarget
	Force            bool
	WorkingDirectory string
}

// InitializeConfiguration writes the default configuration to the requested target.
func InitializeConfiguration(options InitOptions) (string, error) {
	target := options.Target
	if target == "" {
		target = InitTargetLocal
	}
	var destinationPath string
	switch target {
	case InitTargetLocal:
		workingDirectory := options.WorkingDirectory
		if workingDirectory == "" {
			current, err := os.Getwd()
			if err != nil {
				return "", fmt.Errorf("determine working directory for configuration: %w", err)
			}
			workingDirectory = current
		}
		destinationPath = filepath.Join(workingDirectory, utils.ConfigFileName)
	case InitTargetGlobal:
		homeDirectory, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory for configuration: %w", err)
		}
		configurationDirectory := filepath.Join(homeDirectory, utils.GlobalConfigDirectoryName)
		if err := os.MkdirAll(configurationDirectory, 0o755); err != nil {
			return "", fmt.Errorf("create configuration directory %s: %w", configurationDirectory, err)
		}
		destinationPath = filepath.Join(configurationDirectory, utils.ConfigFileName)
	default:
		return "", fmt.Errorf("unsupported init target %q", target)
	}

	if _, err := os.Stat(destinationPath); err == nil {
		if !options.Force {
			return "", fmt.Errorf("configuration file already exists at %s", destinationPath)
		}
	} else if !os.IsNotExist(err) {
		return "", fmt.Errorf("inspect configuration path %s: %w", destinationPath, err)
	}

	if err := os.WriteFile(destinationPath, []byte(DefaultConfigurationTemplate()), 0o600); err != nil {
		return "", fmt.Errorf("write configuration to %s: %w", destinationPath, err)
	}

	return destinationPath, nil
}
