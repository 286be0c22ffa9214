package clipboard_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/temirov/bundler/internal/services/clipboard"
)

type recordingCopier struct {
	copied string
	err    error
}

func (copier *recordingCopier) Copy(text string) error {
	copier.copied = text
	return copier.err
}

func TestCopyFile(t *testing.T) {
	documentPath := filepath.Join(t.TempDir(), "bundle.txt")
	if err := os.WriteFile(documentPath, []byte("bundle body"), 0o600); err != nil {
		t.Fatalf("write document: %v", err)
	}

	copier := &recordingCopier{}
	if err := clipboard.CopyFile(copier, documentPath); err != nil {
		t.Fatalf("CopyFile error: %v", err)
	}
	if copier.copied != "bundle body" {
		t.Fatalf("unexpected clipboard text %q", copier.copied)
	}
}

func TestCopyFileErrors(t *testing.T) {
	copyFailure := errors.New("no clipboard")
	documentPath := filepath.Join(t.TempDir(), "bundle.txt")
	if err := os.WriteFile(documentPath, []byte("x"), 0o600); err != nil {
		t.Fatalf("write document: %v", err)
	}

	if err := clipboard.CopyFile(&recordingCopier{err: copyFailure}, documentPath); !errors.Is(err, copyFailure) {
		t.Fatalf("expected copy failure, got %v", err)
	}
	if err := clipboard.CopyFile(&recordingCopier{}, filepath.Join(t.TempDir(), "missing.txt")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}
