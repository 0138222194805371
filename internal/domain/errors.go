package domain

import (
	"errors"
	"fmt"
)

// Failure classes of the link pipeline. Each invocation surfaces at most one
// of them to the user, at the stage where it occurs.
var (
	// ErrNoFileSelected indicates no usable local file reference was
	// supplied or could be derived from the active editor.
	ErrNoFileSelected = errors.New("no file selected")

	// ErrNotInRepository indicates the target file has no owning git
	// working copy.
	ErrNotInRepository = errors.New("file is not in a git working copy")

	// ErrNoRemote indicates the repository has no configured remote.
	ErrNoRemote = errors.New("repository has no configured remote")

	// ErrNoMatchingHandler indicates no link handler matches the
	// repository's remote.
	ErrNoMatchingHandler = errors.New("no link handler matches the remote")

	// ErrLinkGeneration indicates the pipeline failed for a reason with no
	// dedicated failure class. The cause is logged, never shown verbatim.
	ErrLinkGeneration = errors.New("link generation failed")
)

// NoRemoteHeadError reports that a handler could not establish a reference
// to link against, typically because the remote's default branch is unknown.
// Root and Remote carry the context the user-facing message needs.
type NoRemoteHeadError struct {
	// Root is the repository root the link was requested for.
	Root string

	// Remote is the name of the remote whose default branch is unknown.
	Remote string
}

// Error implements the error interface.
func (e *NoRemoteHeadError) Error() string {
	return fmt.Sprintf("no default branch known for remote %q in %s", e.Remote, e.Root)
}

// IsReported reports whether err belongs to a failure class whose message
// has already been presented to the user by the pipeline. Callers at the
// command boundary use this to avoid printing a second message.
func IsReported(err error) bool {
	var headErr *NoRemoteHeadError
	return errors.Is(err, ErrNoFileSelected) ||
		errors.Is(err, ErrNotInRepository) ||
		errors.Is(err, ErrNoRemote) ||
		errors.Is(err, ErrNoMatchingHandler) ||
		errors.Is(err, ErrLinkGeneration) ||
		errors.As(err, &headErr)
}
