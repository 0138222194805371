// Package usecases contains the application business logic.
// This package orchestrates domain entities and interfaces to fulfill use cases.
package usecases

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/miskreant/GitWebLinks/internal/domain"
)

// Logger defines the logging interface required by the use cases.
// This abstracts the logger dependency to avoid coupling to a specific implementation.
type Logger interface {
	Info(ctx context.Context, msg string, fields map[string]interface{})
	Debug(ctx context.Context, msg string, fields map[string]interface{})
	Warn(ctx context.Context, msg string, fields map[string]interface{})
	Error(ctx context.Context, msg string, err error, fields map[string]interface{})
}

// Options carries the settings values the pipeline consults.
type Options struct {
	// PreferredRemote is the remote name used when the repository has it.
	PreferredRemote string

	// DefaultLinkType substitutes for LinkTypeDefer inputs.
	DefaultLinkType domain.LinkType
}

// PipelineDeps bundles the collaborators of a Pipeline.
type PipelineDeps struct {
	Editor     domain.Editor
	Finder     domain.RepositoryFinder
	Selector   domain.HandlerSelector
	Dispatcher *Dispatcher
	Notifier   domain.Notifier
	Writer     domain.OutputWriter
	Logger     Logger
}

// Pipeline turns one file reference into a web link and carries out the
// requested action. It implements domain.LinkGenerator.
//
// Every failure surfaces exactly one user-facing message through the
// notifier and returns an error the command boundary maps to the exit code.
type Pipeline struct {
	editor     domain.Editor
	finder     domain.RepositoryFinder
	selector   domain.HandlerSelector
	dispatcher *Dispatcher
	notifier   domain.Notifier
	writer     domain.OutputWriter
	logger     Logger
	opts       Options
}

// NewPipeline creates a Pipeline with the given dependencies.
// All dependencies are injected to support testing.
func NewPipeline(deps PipelineDeps, opts Options) *Pipeline {
	return &Pipeline{
		editor:     deps.Editor,
		finder:     deps.Finder,
		selector:   deps.Selector,
		dispatcher: deps.Dispatcher,
		notifier:   deps.Notifier,
		writer:     deps.Writer,
		logger:     deps.Logger,
		opts:       opts,
	}
}

// Execute resolves input to a web URL and performs the requested action.
//
// The stages run in sequence: validate the target, find the owning
// repository, require a remote, select a handler, capture the selection,
// create the URL, then dispatch the action. Each stage short-circuits with
// its own message instead of propagating to the next one.
func (p *Pipeline) Execute(ctx context.Context, input domain.GenerateInput) (*domain.GenerateOutput, error) {
	target, ok := p.resolveTarget(input.Target)
	if !ok {
		p.notifier.Error(ctx, msgNoFileSelected)
		return nil, domain.ErrNoFileSelected
	}

	p.logger.Debug(ctx, "resolved invocation target", map[string]interface{}{
		"target": target.Path,
	})

	repo, err := p.finder.Find(ctx, target.Path)
	if err != nil {
		if errors.Is(err, domain.ErrNotInRepository) {
			p.notifier.Error(ctx, msgNotTracked(target.Raw))
			return nil, err
		}
		return nil, p.failGeneration(ctx, "repository lookup failed", err, map[string]interface{}{
			"target": target.Path,
		})
	}

	withRemote, err := p.finder.WithRemote(ctx, repo, p.opts.PreferredRemote)
	if err != nil {
		if errors.Is(err, domain.ErrNoRemote) {
			p.notifier.Error(ctx, msgNoRemote(repo.Root))
			return nil, err
		}
		return nil, p.failGeneration(ctx, "remote lookup failed", err, map[string]interface{}{
			"root": repo.Root,
		})
	}

	handler, ok := p.selector.Select(*withRemote)
	if !ok {
		p.dispatcher.OfferSettings(ctx, msgNoHandler(withRemote.Remote.URL))
		return nil, fmt.Errorf("%w: %s", domain.ErrNoMatchingHandler, withRemote.Remote.URL)
	}

	info := domain.ResourceInfo{
		Target:     target,
		Repository: *withRemote,
		Handler:    handler,
	}

	p.logger.Debug(ctx, "selected link handler", map[string]interface{}{
		"handler": handler.Name(),
		"remote":  withRemote.Remote.Name,
		"root":    withRemote.Root,
	})

	relPath, err := repositoryRelativePath(info.Repository.Root, target.Path)
	if err != nil {
		return nil, p.failGeneration(ctx, "could not relativize file path", err, map[string]interface{}{
			"root":   info.Repository.Root,
			"target": target.Path,
		})
	}

	file := domain.FileInfo{
		RelativePath: relPath,
		Selection:    p.captureSelection(target, input.IncludeSelection),
	}

	linkType := input.Type
	if linkType == domain.LinkTypeDefer {
		linkType = p.opts.DefaultLinkType
	}

	linkURL, err := info.Handler.CreateURL(ctx, info.Repository, file, domain.LinkOptions{Type: linkType})
	if err != nil {
		var headErr *domain.NoRemoteHeadError
		if errors.As(err, &headErr) {
			p.notifier.Error(ctx, msgNoRemoteHead(headErr.Root, headErr.Remote))
			return nil, err
		}
		return nil, p.failGeneration(ctx, "handler could not create url", err, map[string]interface{}{
			"handler": info.Handler.Name(),
		})
	}

	p.logger.Info(ctx, "web link created", map[string]interface{}{
		"handler": info.Handler.Name(),
		"file":    file.RelativePath,
		"type":    string(linkType),
		"url":     linkURL,
	})

	if err := p.writer.WriteLink(linkURL); err != nil {
		return nil, p.failGeneration(ctx, "could not write link to output", err, nil)
	}

	if err := p.dispatcher.Dispatch(ctx, input.Action, linkURL); err != nil {
		msg := msgCopyFailed
		if input.Action == domain.ActionOpen {
			msg = msgOpenFailed
		}
		p.logger.Error(ctx, "link action failed", err, map[string]interface{}{
			"action": string(input.Action),
		})
		p.notifier.Error(ctx, msg)
		return nil, fmt.Errorf("%w: %w", domain.ErrLinkGeneration, err)
	}

	return &domain.GenerateOutput{
		URL:     linkURL,
		Handler: info.Handler.Name(),
		File:    file.RelativePath,
	}, nil
}

// failGeneration logs the cause, shows the generic failure message and
// returns the wrapped unclassified error.
func (p *Pipeline) failGeneration(ctx context.Context, logMsg string, err error, fields map[string]interface{}) error {
	p.logger.Error(ctx, logMsg, err, fields)
	p.notifier.Error(ctx, msgGeneration)
	return fmt.Errorf("%w: %w", domain.ErrLinkGeneration, err)
}

// resolveTarget picks the invocation target: the explicit reference when one
// is given, otherwise the active editor document. An explicit reference
// always wins so that invoking on a file that is not the focused one links
// the right file. Only local file references pass the gate.
func (p *Pipeline) resolveTarget(explicit string) (domain.FileTarget, bool) {
	raw := explicit
	if raw == "" {
		raw = p.editor.ActiveDocument()
	}
	if raw == "" {
		return domain.FileTarget{}, false
	}

	path, ok := localFilePath(raw)
	if !ok {
		return domain.FileTarget{}, false
	}
	return domain.FileTarget{Raw: raw, Path: canonicalPath(path)}, true
}

// captureSelection returns the selection to attach to the link. A selection
// applies only when requested by the invocation and the target is the active
// editor document by canonical path identity, never when some other open
// document happens to hold one.
func (p *Pipeline) captureSelection(target domain.FileTarget, include bool) *domain.SelectedRange {
	if !include {
		return nil
	}

	active := p.editor.ActiveDocument()
	if active == "" {
		return nil
	}
	activePath, ok := localFilePath(active)
	if !ok || canonicalPath(activePath) != target.Path {
		return nil
	}

	sel := p.editor.Selection()
	if sel == nil {
		return nil
	}
	r := sel.Normalized()
	if r.ZeroWidth() {
		return nil
	}
	return &r
}

// localFilePath extracts the filesystem path from a file reference. Plain
// paths and file: URIs are accepted; every other scheme is rejected. A
// single-character prefix before ':' is a Windows drive letter, not a scheme.
func localFilePath(raw string) (string, bool) {
	idx := strings.Index(raw, ":")
	if idx <= 1 || strings.ContainsAny(raw[:idx], `/\`) {
		return raw, true
	}

	if !strings.EqualFold(raw[:idx], "file") {
		return "", false
	}
	if u, err := url.Parse(raw); err == nil && u.Path != "" {
		return u.Path, true
	}
	return strings.TrimPrefix(raw[idx+1:], "//"), true
}

// canonicalPath returns the absolute, symlink-resolved form of path so that
// identity checks and repository-relative paths agree across symlinked
// trees. Paths that cannot be resolved are returned cleaned and absolute.
func canonicalPath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved
	}
	return filepath.Clean(abs)
}

// repositoryRelativePath returns path relative to the repository root in
// forward slash form.
func repositoryRelativePath(root, path string) (string, error) {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return "", err
	}
	if rel == "." || strings.HasPrefix(rel, "..") {
		return "", fmt.Errorf("file %s is outside the repository at %s", path, root)
	}
	return filepath.ToSlash(rel), nil
}
