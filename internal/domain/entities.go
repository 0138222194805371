// Package domain defines the core business entities and interfaces for gitweblinks.
package domain

// LinkType selects which kind of git reference a generated link is pinned to.
type LinkType string

const (
	// LinkTypeDefer leaves the choice of link type to persisted settings.
	LinkTypeDefer LinkType = ""

	// LinkTypeCommit pins the link to the commit currently checked out.
	LinkTypeCommit LinkType = "commit"

	// LinkTypeBranch pins the link to the branch currently checked out.
	LinkTypeBranch LinkType = "branch"

	// LinkTypeDefaultBranch pins the link to the remote's default branch.
	LinkTypeDefaultBranch LinkType = "default"
)

// LinkAction is the post-generation action applied to a generated URL.
type LinkAction string

const (
	// ActionCopy writes the generated URL to the system clipboard.
	ActionCopy LinkAction = "copy"

	// ActionOpen opens the generated URL in the external browser.
	ActionOpen LinkAction = "open"
)

// Tags identifying the actionable choices of the notification flows.
// Both flows dispatch through one handler keyed by these tags.
const (
	// ActionTagOpen opens the generated URL in the external browser.
	ActionTagOpen = "open"

	// ActionTagSettings opens the user's settings for editing.
	ActionTagSettings = "settings"
)

// Repository identifies a local working copy by its root directory.
type Repository struct {
	// Root is the absolute path of the working copy root.
	Root string
}

// Remote is a named reference to a hosted copy of a repository.
type Remote struct {
	// Name is the remote name, e.g. "origin".
	Name string

	// URL is the remote's fetch URL as configured in the repository.
	URL string
}

// RepositoryWithRemote is a repository together with the remote chosen for
// link generation. Values are only constructed after the remote-presence
// check has passed, so holders can rely on Remote being populated.
type RepositoryWithRemote struct {
	// Root is the absolute path of the working copy root.
	Root string

	// Remote is the remote links are generated for.
	Remote Remote
}

// SelectedRange is a line/column span captured from editor state.
// Lines and columns are 1-based; a zero column means no column was captured
// for that endpoint.
type SelectedRange struct {
	StartLine   int
	StartColumn int
	EndLine     int
	EndColumn   int
}

// Normalized returns the range with its endpoints ordered so that the start
// never comes after the end.
func (r SelectedRange) Normalized() SelectedRange {
	reversed := r.EndLine < r.StartLine ||
		(r.EndLine == r.StartLine && r.StartColumn != 0 && r.EndColumn != 0 && r.EndColumn < r.StartColumn)
	if !reversed {
		return r
	}
	return SelectedRange{
		StartLine:   r.EndLine,
		StartColumn: r.EndColumn,
		EndLine:     r.StartLine,
		EndColumn:   r.StartColumn,
	}
}

// ZeroWidth reports whether the range covers no characters, which is what a
// collapsed cursor produces. A range without captured columns spans whole
// lines and is never zero width.
func (r SelectedRange) ZeroWidth() bool {
	return r.StartLine == r.EndLine && r.StartColumn != 0 && r.StartColumn == r.EndColumn
}

// SingleLine reports whether the range covers a single line.
func (r SelectedRange) SingleLine() bool {
	return r.StartLine == r.EndLine
}

// FileTarget is a validated invocation target: a local file reference that
// passed the scheme gate.
type FileTarget struct {
	// Raw is the reference exactly as supplied by the caller, used when the
	// target has to be named in a message.
	Raw string

	// Path is the absolute, symlink-resolved filesystem path the reference
	// points at.
	Path string
}

// FileInfo names the file a link points at.
type FileInfo struct {
	// RelativePath is the file path from the repository root, in forward
	// slash form.
	RelativePath string

	// Selection is the line range to pin, nil when no selection applies.
	Selection *SelectedRange
}

// LinkOptions carries the link variant requested for one URL. Callers
// resolve the configured default before handlers run, so handlers never see
// LinkTypeDefer.
type LinkOptions struct {
	// Type is the link type to generate.
	Type LinkType
}

// Ref is a resolved git reference for a link to point at.
type Ref struct {
	// Name is the branch name or commit hash.
	Name string

	// Kind is LinkTypeBranch or LinkTypeCommit after resolution.
	Kind LinkType
}

// ResourceInfo groups everything resolution established about one invocation
// target. Values live for a single invocation and are discarded afterwards.
type ResourceInfo struct {
	// Target is the validated file reference.
	Target FileTarget

	// Repository is the owning repository with its chosen remote.
	Repository RepositoryWithRemote

	// Handler is the link handler selected for the remote.
	Handler LinkHandler
}

// GenerateInput contains the parameters of one link request.
type GenerateInput struct {
	// Target is the explicit file reference. Empty means fall back to the
	// active editor document.
	Target string

	// Type selects the link variant; LinkTypeDefer defers to settings.
	Type LinkType

	// IncludeSelection attaches the active selection when the target is the
	// active editor document.
	IncludeSelection bool

	// Action is carried out on the generated URL.
	Action LinkAction
}

// GenerateOutput contains the result of a successful link request.
type GenerateOutput struct {
	// URL is the generated web link. This is the primary output value
	// written to stdout.
	URL string

	// Handler is the name of the handler that produced the URL.
	Handler string

	// File is the linked file relative to the repository root.
	File string
}
