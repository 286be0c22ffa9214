package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/temirov/bundler/internal/filter"
	"github.com/temirov/bundler/internal/utils"
)

func boolPointer(value bool) *bool {
	pointer := value
	return &pointer
}

func writeTestFile(t *testing.T, filePath string, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(filePath), 0o755); err != nil {
		t.Fatalf("create directory for %s: %v", filePath, err)
	}
	if err := os.WriteFile(filePath, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", filePath, err)
	}
}

func isolateHome(t *testing.T) string {
	t.Helper()
	homeDir := t.TempDir()
	t.Setenv("HOME", homeDir)
	t.Setenv("USERPROFILE", homeDir)
	return homeDir
}

func TestLoadApplicationConfigurationMergesSources(t *testing.T) {
	testCases := []struct {
		name          string
		globalContent string
		localContent  string
		explicitPath  string
		expected      ApplicationConfiguration
	}{
		{
			name:          "local_overrides_global",
			globalContent: "output: global.txt\nexclude: [\"vendor/**\"]\ntokens:\n  enabled: true\n  model: gpt-4\nclipboard: true\n",
			localContent:  "output: local.txt\nignore_dirs: [tmp]\ntokens:\n  model: gpt-4o\nclipboard: false\n",
			expected: ApplicationConfiguration{
				Output:     "local.txt",
				IgnoreDirs: []string{"tmp"},
				Exclude:    []string{"vendor/**"},
				Tokens:     TokenConfiguration{Enabled: boolPointer(true), Model: "gpt-4o"},
				Clipboard:  boolPointer(false),
			},
		},
		{
			name:          "explicit_path_replaces_local",
			globalContent: "verbose: true\n",
			localContent:  "output: ignored.txt\n",
			explicitPath:  "custom.yaml",
			expected: ApplicationConfiguration{
				Output:       "custom.txt",
				UseGitignore: boolPointer(true),
				Verbose:      boolPointer(true),
				Exclude:      []string{},
			},
		},
		{
			name:         "empty_list_is_kept",
			localContent: "ignore_exts: []\n",
			expected: ApplicationConfiguration{
				IgnoreExts: []string{},
				Exclude:    []string{},
			},
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			homeDir := isolateHome(t)
			workingDir := t.TempDir()
			if testCase.globalContent != "" {
				writeTestFile(t, filepath.Join(homeDir, utils.GlobalConfigDirectoryName, utils.ConfigFileName), testCase.globalContent)
			}
			if testCase.localContent != "" {
				writeTestFile(t, filepath.Join(workingDir, utils.ConfigFileName), testCase.localContent)
			}
			if testCase.explicitPath != "" {
				writeTestFile(t, filepath.Join(workingDir, testCase.explicitPath), "output: custom.txt\ngitignore: true\n")
			}

			loadedConfig, err := LoadApplicationConfiguration(LoadOptions{
				WorkingDirectory: workingDir,
				ExplicitFilePath: testCase.explicitPath,
			})
			if err != nil {
				t.Fatalf("LoadApplicationConfiguration error: %v", err)
			}
			if diff := cmp.Diff(testCase.expected, loadedConfig); diff != "" {
				t.Fatalf("configuration mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLoadApplicationConfigurationWithoutFiles(t *testing.T) {
	isolateHome(t)
	loadedConfig, err := LoadApplicationConfiguration(LoadOptions{WorkingDirectory: t.TempDir()})
	if err != nil {
		t.Fatalf("LoadApplicationConfiguration error: %v", err)
	}
	if loadedConfig.Output != "" || loadedConfig.IgnoreDirs != nil || loadedConfig.Tokens.Enabled != nil {
		t.Fatalf("expected empty configuration, got %+v", loadedConfig)
	}
}

func TestLoadApplicationConfigurationMissingExplicitFile(t *testing.T) {
	isolateHome(t)
	_, err := LoadApplicationConfiguration(LoadOptions{WorkingDirectory: t.TempDir(), ExplicitFilePath: "absent.yaml"})
	if err == nil {
		t.Fatalf("expected error for missing explicit configuration")
	}
}

func TestLoadApplicationConfigurationRejectsMalformedYAML(t *testing.T) {
	isolateHome(t)
	workingDir := t.TempDir()
	writeTestFile(t, filepath.Join(workingDir, utils.ConfigFileName), "output: [unclosed\n")
	if _, err := LoadApplicationConfiguration(LoadOptions{WorkingDirectory: workingDir}); err == nil {
		t.Fatalf("expected error for malformed configuration")
	}
}

func TestBoolValue(t *testing.T) {
	if !BoolValue(nil, true) {
		t.Fatalf("expected fallback for nil value")
	}
	if BoolValue(boolPointer(false), true) {
		t.Fatalf("expected explicit false to win over fallback")
	}
}

func TestInitializeConfigurationCreatesLocalFile(t *testing.T) {
	workingDirectory := t.TempDir()
	path, err := InitializeConfiguration(InitOptions{WorkingDirectory: workingDirectory, Target: InitTargetLocal})
	if err != nil {
		t.Fatalf("InitializeConfiguration error: %v", err)
	}
	expectedPath := filepath.Join(workingDirectory, utils.ConfigFileName)
	if path != expectedPath {
		t.Fatalf("expected path %s, got %s", expectedPath, path)
	}

	isolateHome(t)
	loadedConfig, loadErr := LoadApplicationConfiguration(LoadOptions{WorkingDirectory: workingDirectory})
	if loadErr != nil {
		t.Fatalf("template does not load: %v", loadErr)
	}
	if loadedConfig.Output != utils.DefaultOutputFileName || loadedConfig.Tokens.Model != "gpt-4o" {
		t.Fatalf("unexpected template values: %+v", loadedConfig)
	}
	if loadedConfig.IgnoreDirs != nil {
		t.Fatalf("template must keep built-in directory defaults, got %v", loadedConfig.IgnoreDirs)
	}
}

func TestTemplateListsMatchFilterDefaults(t *testing.T) {
	isolateHome(t)
	workingDirectory := t.TempDir()
	uncommented := strings.ReplaceAll(DefaultConfigurationTemplate(), "# ignore_", "ignore_")
	writeTestFile(t, filepath.Join(workingDirectory, utils.ConfigFileName), uncommented)

	loadedConfig, loadErr := LoadApplicationConfiguration(LoadOptions{WorkingDirectory: workingDirectory})
	if loadErr != nil {
		t.Fatalf("uncommented template does not load: %v", loadErr)
	}
	if diff := cmp.Diff(filter.DefaultIgnoredDirectories, loadedConfig.IgnoreDirs); diff != "" {
		t.Fatalf("ignore_dirs mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(filter.DefaultIgnoredExtensions, loadedConfig.IgnoreExts); diff != "" {
		t.Fatalf("ignore_exts mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(filter.DefaultIgnoredFiles, loadedConfig.IgnoreFiles); diff != "" {
		t.Fatalf("ignore_files mismatch (-want +got):\n%s", diff)
	}
}

func TestInitializeConfigurationHonorsGlobalTarget(t *testing.T) {
	homeDir := isolateHome(t)
	path, err := InitializeConfiguration(InitOptions{Target: InitTargetGlobal})
	if err != nil {
		t.Fatalf("InitializeConfiguration error: %v", err)
	}
	if !strings.HasPrefix(path, homeDir) {
		t.Fatalf("expected configuration under home dir, got %s", path)
	}
	if _, statErr := os.Stat(path); statErr != nil {
		t.Fatalf("expected file to exist at %s: %v", path, statErr)
	}
}

func TestInitializeConfigurationPreventsOverwriteWithoutForce(t *testing.T) {
	workingDirectory := t.TempDir()
	path := filepath.Join(workingDirectory, utils.ConfigFileName)
	writeTestFile(t, path, "existing")
	if _, err := InitializeConfiguration(InitOptions{WorkingDirectory: workingDirectory}); err == nil {
		t.Fatalf("expected error when configuration already exists")
	}
	if _, err := InitializeConfiguration(InitOptions{WorkingDirectory: workingDirectory, Force: true}); err != nil {
		t.Fatalf("expected forced overwrite to succeed: %v", err)
	}
}

func TestLoadIgnoreFilePatterns(t *testing.T) {
	ignorePath := filepath.Join(t.TempDir(), utils.IgnoreFileName)
	writeTestFile(t, ignorePath, "# comment\nsecrets/\n[binary]\n*.png\n[ignore]\n*.bak\n")
	patterns, err := LoadIgnoreFilePatterns(ignorePath)
	if err != nil {
		t.Fatalf("LoadIgnoreFilePatterns error: %v", err)
	}
	if diff := cmp.Diff([]string{"secrets/", "*.bak"}, patterns); diff != "" {
		t.Fatalf("patterns mismatch (-want +got):\n%s", diff)
	}

	missing, missingErr := LoadIgnoreFilePatterns(filepath.Join(t.TempDir(), "absent"))
	if missingErr != nil || missing != nil {
		t.Fatalf("expected no patterns and no error for a missing file, got %v, %v", missing, missingErr)
	}
}

func TestLoadProjectExcludePatterns(t *testing.T) {
	root := t.TempDir()
	writeTestFile(t, filepath.Join(root, utils.IgnoreFileName), "notes.md\n")
	writeTestFile(t, filepath.Join(root, utils.GitIgnoreFileName), "/coverage/\n*.out\nnotes.md\n")
	patterns, err := LoadProjectExcludePatterns(root)
	if err != nil {
		t.Fatalf("LoadProjectExcludePatterns error: %v", err)
	}
	expected := []string{"**/notes.md", "coverage", "**/*.out"}
	if diff := cmp.Diff(expected, patterns); diff != "" {
		t.Fatalf("patterns mismatch (-want +got):\n%s", diff)
	}
}
