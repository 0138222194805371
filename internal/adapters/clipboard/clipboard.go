// Package clipboard adapts the system clipboard.
package clipboard

import (
	"context"
	"fmt"

	"github.com/atotto/clipboard"
)

// System implements domain.Clipboard on the platform clipboard.
type System struct{}

// NewSystem creates the system clipboard adapter.
func NewSystem() *System {
	return &System{}
}

// Write implements domain.Clipboard.
func (s *System) Write(_ context.Context, text string) error {
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("write clipboard: %w", err)
	}
	return nil
}
