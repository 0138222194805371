// Package domain defines the core business entities and interfaces for gitweblinks.
// This package contains no external dependencies and represents the innermost layer
// of the CLEAN architecture.
package domain

import (
	"context"
)

// Editor exposes the invoking editor's state. Implementations are snapshots
// taken at invocation time, so the methods never block.
type Editor interface {
	// ActiveDocument returns the path of the document focused in the
	// invoking editor, or "" when none is known.
	ActiveDocument() string

	// Selection returns the live selection in the active document, or nil
	// when there is none.
	Selection() *SelectedRange
}

// RepositoryFinder locates working copies and their remotes. Both lookups
// are strictly local; no network access occurs.
type RepositoryFinder interface {
	// Find returns the repository owning path, walking parent directories
	// the way git itself discovers repositories. Returns ErrNotInRepository
	// when no working copy contains path.
	Find(ctx context.Context, path string) (*Repository, error)

	// WithRemote upgrades repo with its remote metadata. The preferred
	// remote name wins when the repository has it, otherwise the first
	// remote in name order is used. Returns ErrNoRemote when the repository
	// has no remotes.
	WithRemote(ctx context.Context, repo *Repository, preferred string) (*RepositoryWithRemote, error)
}

// RefResolver resolves the git reference a link should pin to.
type RefResolver interface {
	// ResolveRef resolves linkType against the repository's current state.
	// Returns a *NoRemoteHeadError when the remote's default branch cannot
	// be determined.
	ResolveRef(ctx context.Context, repo RepositoryWithRemote, linkType LinkType) (Ref, error)
}

// LinkHandler produces web URLs for one hosting service. Handlers are
// stateless; a URL is purely a function of the arguments and the settings
// the handler was constructed with.
type LinkHandler interface {
	// Name identifies the handler in logs and output.
	Name() string

	// Matches reports whether this handler can produce URLs for remote.
	Matches(remote Remote) bool

	// CreateURL builds the web URL for file at the requested link type.
	// May return a *NoRemoteHeadError; any other error is an unclassified
	// generation failure.
	CreateURL(ctx context.Context, repo RepositoryWithRemote, file FileInfo, opts LinkOptions) (string, error)
}

// HandlerSelector picks the handler for a repository's remote.
type HandlerSelector interface {
	// Select returns the first handler matching the repository's remote,
	// or false when none does. Selection is deterministic: identical
	// remotes always yield the same handler.
	Select(repo RepositoryWithRemote) (LinkHandler, bool)
}

// Clipboard writes text to the system clipboard.
type Clipboard interface {
	// Write places text on the clipboard, replacing its previous content.
	Write(ctx context.Context, text string) error
}

// URLOpener opens a URL with the system's external browser.
type URLOpener interface {
	// Open hands url to the external browser.
	Open(ctx context.Context, url string) error
}

// SettingsOpener opens the user's settings for editing.
type SettingsOpener interface {
	// OpenSettings opens the settings so the user can add or fix server
	// entries.
	OpenSettings(ctx context.Context) error
}

// NotificationAction is the single actionable choice of a notification.
type NotificationAction struct {
	// Title is the label shown to the user.
	Title string

	// Tag identifies the action when the user invokes it.
	Tag string
}

// Notifier presents modal-free messages to the user.
type Notifier interface {
	// Info shows an informational message.
	Info(ctx context.Context, message string)

	// Error shows an error message.
	Error(ctx context.Context, message string)

	// Ask shows message with a single actionable choice and blocks until
	// the user invokes it or dismisses the notification. It returns the
	// action's tag, or "" on dismissal. Callers decide whether to detach.
	Ask(ctx context.Context, message string, action NotificationAction) (string, error)
}

// OutputWriter writes the generated link to an output destination.
type OutputWriter interface {
	// WriteLink writes the URL to the output.
	WriteLink(url string) error
}

// LinkGenerator runs the link pipeline for one invocation.
type LinkGenerator interface {
	// Execute resolves input to a web URL and carries out the requested
	// action.
	Execute(ctx context.Context, input GenerateInput) (*GenerateOutput, error)
}
