// Package settings opens the user's settings file for editing.
package settings

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

// Environment variables consulted for the editor command.
const (
	EnvVisual = "VISUAL"
	EnvEditor = "EDITOR"
)

// FileOpener implements domain.SettingsOpener for a file-backed settings
// store. A missing file is seeded with a template first, so the user edits
// a documented example instead of an empty buffer.
type FileOpener struct {
	path string
	seed []byte
}

// NewFileOpener creates a FileOpener for the settings file at path.
func NewFileOpener(path string, seed []byte) *FileOpener {
	return &FileOpener{path: path, seed: seed}
}

// OpenSettings implements domain.SettingsOpener. When neither $VISUAL nor
// $EDITOR is set the file path is printed instead, so the user can open it
// with whatever they prefer.
func (f *FileOpener) OpenSettings(ctx context.Context) error {
	if err := f.ensureFile(); err != nil {
		return err
	}

	editor := os.Getenv(EnvVisual)
	if editor == "" {
		editor = os.Getenv(EnvEditor)
	}
	if editor == "" {
		fmt.Fprintf(os.Stderr, "Settings file: %s\n", f.path)
		return nil
	}

	cmd := exec.CommandContext(ctx, editor, f.path)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("open %s with %s: %w", f.path, editor, err)
	}
	return nil
}

func (f *FileOpener) ensureFile() error {
	if _, err := os.Stat(f.path); err == nil {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return fmt.Errorf("create settings directory: %w", err)
	}
	if err := os.WriteFile(f.path, f.seed, 0o644); err != nil {
		return fmt.Errorf("create settings file: %w", err)
	}
	return nil
}
