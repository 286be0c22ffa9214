package utils_test

import (
	"path/filepath"
	"testing"

	"github.com/temirov/bundler/internal/utils"
)

func TestNormalizedRelativePath(t *testing.T) {
	root := t.TempDir()
	testCases := []struct {
		name     string
		fullPath string
		expected string
	}{
		{name: "root itself", fullPath: root, expected: "."},
		{name: "direct child", fullPath: filepath.Join(root, "a.txt"), expected: "a.txt"},
		{name: "nested child", fullPath: filepath.Join(root, "docs", "secret.md"), expected: "docs/secret.md"},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			result := utils.NormalizedRelativePath(root, testCase.fullPath)
			if result != testCase.expected {
				t.Fatalf("expected %s, got %s", testCase.expected, result)
			}
		})
	}
}

func TestNormalizeIdentifier(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{input: "docs/secret.md", expected: "docs/secret.md"},
		{input: `docs\secret.md`, expected: "docs/secret.md"},
		{input: "./docs/secret.md", expected: "docs/secret.md"},
		{input: " build/ ", expected: "build"},
		{input: "/", expected: "/"},
	}
	for _, testCase := range testCases {
		if result := utils.NormalizeIdentifier(testCase.input); result != testCase.expected {
			t.Errorf("NormalizeIdentifier(%q): expected %q, got %q", testCase.input, testCase.expected, result)
		}
	}
}

func TestProjectDirectoryName(t *testing.T) {
	root := filepath.Join(t.TempDir(), "project")
	if name := utils.ProjectDirectoryName(root); name != "project" {
		t.Fatalf("expected project, got %s", name)
	}
}

func TestDeduplicatePatterns(t *testing.T) {
	actual := utils.DeduplicatePatterns([]string{"a", "b", "a", "c", "b"})
	expected := []string{"a", "b", "c"}
	if len(actual) != len(expected) {
		t.Fatalf("expected %v, got %v", expected, actual)
	}
	for position, value := range actual {
		if value != expected[position] {
			t.Fatalf("expected %s at position %d, got %s", expected[position], position, value)
		}
	}
}
