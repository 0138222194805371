// Package editor exposes the invoking editor's state to the pipeline.
// Editors integrate by passing flags or exporting environment variables
// before invoking the command; the adapter is a snapshot of both.
package editor

import (
	"fmt"
	"os"
	"regexp"
	"strconv"

	"github.com/miskreant/GitWebLinks/internal/domain"
)

// Environment variables editor integrations export for an invocation.
const (
	EnvActiveFile = "GITWEBLINKS_ACTIVE_FILE"
	EnvSelection  = "GITWEBLINKS_SELECTION"
)

// selectionPattern matches START[:COL][-END[:COL]] with 1-based lines and
// columns.
var selectionPattern = regexp.MustCompile(`^(\d+)(?::(\d+))?(?:-(\d+)(?::(\d+))?)?$`)

// State implements domain.Editor from invocation-time values. Flags take
// precedence over the environment.
type State struct {
	activeFile string
	selection  *domain.SelectedRange
}

// NewState creates a State from the given flag values, falling back to the
// environment for values not set. An unparseable selection is an error, not
// a silently dropped one.
func NewState(activeFile, selection string) (*State, error) {
	if activeFile == "" {
		activeFile = os.Getenv(EnvActiveFile)
	}
	if selection == "" {
		selection = os.Getenv(EnvSelection)
	}

	sel, err := ParseSelection(selection)
	if err != nil {
		return nil, err
	}

	return &State{activeFile: activeFile, selection: sel}, nil
}

// ActiveDocument implements domain.Editor.
func (s *State) ActiveDocument() string {
	return s.activeFile
}

// Selection implements domain.Editor. The returned range is a copy.
func (s *State) Selection() *domain.SelectedRange {
	if s.selection == nil {
		return nil
	}
	sel := *s.selection
	return &sel
}

// ParseSelection parses "START[:COL]-END[:COL]". A bare "START[:COL]" is a
// one-endpoint range with start and end equal. Empty input means no
// selection.
func ParseSelection(raw string) (*domain.SelectedRange, error) {
	if raw == "" {
		return nil, nil
	}

	m := selectionPattern.FindStringSubmatch(raw)
	if m == nil {
		return nil, fmt.Errorf("invalid selection %q, want START[:COL]-END[:COL]", raw)
	}

	sel := &domain.SelectedRange{
		StartLine:   mustAtoi(m[1]),
		StartColumn: optionalAtoi(m[2]),
	}
	if m[3] == "" {
		sel.EndLine = sel.StartLine
		sel.EndColumn = sel.StartColumn
	} else {
		sel.EndLine = mustAtoi(m[3])
		sel.EndColumn = optionalAtoi(m[4])
	}

	if sel.StartLine < 1 || sel.EndLine < 1 {
		return nil, fmt.Errorf("invalid selection %q, lines are 1-based", raw)
	}
	if (m[2] != "" && sel.StartColumn < 1) || (m[4] != "" && sel.EndColumn < 1) {
		return nil, fmt.Errorf("invalid selection %q, columns are 1-based", raw)
	}
	return sel, nil
}

// mustAtoi converts a digits-only submatch.
func mustAtoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

func optionalAtoi(s string) int {
	if s == "" {
		return 0
	}
	return mustAtoi(s)
}
