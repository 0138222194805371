// Package git provides adapters for interacting with local Git repositories.
// This package implements domain.RepositoryFinder and domain.RefResolver
// using go-git/v5.
package git

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sort"

	gogit "github.com/go-git/go-git/v5"

	"github.com/miskreant/GitWebLinks/internal/domain"
)

// Logger defines the logging interface for the git adapter.
// This interface enables dependency injection and testability.
type Logger interface {
	Debug(ctx context.Context, msg string, fields map[string]interface{})
	Warn(ctx context.Context, msg string, fields map[string]interface{})
}

// shortHashLength is the abbreviated commit hash length used when short
// hashes are enabled.
const shortHashLength = 12

// Finder locates the working copy owning a file and resolves the refs links
// pin to. All operations are strictly local.
type Finder struct {
	logger        Logger
	shortHash     bool
	defaultBranch string
}

// NewFinder creates a Finder. When shortHash is set, commit links use
// abbreviated hashes. defaultBranch is the configured fallback when a
// remote's HEAD is unknown locally; empty means no fallback.
func NewFinder(log Logger, shortHash bool, defaultBranch string) *Finder {
	return &Finder{
		logger:        log,
		shortHash:     shortHash,
		defaultBranch: defaultBranch,
	}
}

// Find returns the repository owning path by walking parent directories the
// way git itself discovers repositories. Returns domain.ErrNotInRepository
// when no working copy contains path.
func (f *Finder) Find(ctx context.Context, path string) (*domain.Repository, error) {
	repo, err := gogit.PlainOpenWithOptions(filepath.Dir(path), &gogit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, gogit.ErrRepositoryNotExists) {
			return nil, fmt.Errorf("%w: %s", domain.ErrNotInRepository, path)
		}
		return nil, fmt.Errorf("open repository for %s: %w", path, err)
	}

	wt, err := repo.Worktree()
	if err != nil {
		// A bare repository has no working copy that could own the file.
		return nil, fmt.Errorf("%w: %s", domain.ErrNotInRepository, path)
	}

	root := wt.Filesystem.Root()
	if resolved, err := filepath.EvalSymlinks(root); err == nil {
		root = resolved
	}

	f.logger.Debug(ctx, "found owning repository", map[string]interface{}{
		"path": path,
		"root": root,
	})

	return &domain.Repository{Root: root}, nil
}

// WithRemote upgrades repo with its remote metadata. The preferred remote
// wins when the repository has it, otherwise the first remote in name order
// is used so the choice is stable across invocations. Returns
// domain.ErrNoRemote when the repository has no usable remotes.
func (f *Finder) WithRemote(ctx context.Context, repo *domain.Repository, preferred string) (*domain.RepositoryWithRemote, error) {
	r, err := gogit.PlainOpen(repo.Root)
	if err != nil {
		return nil, fmt.Errorf("open repository at %s: %w", repo.Root, err)
	}

	remotes, err := r.Remotes()
	if err != nil {
		return nil, fmt.Errorf("list remotes of %s: %w", repo.Root, err)
	}

	urls := make(map[string]string, len(remotes))
	names := make([]string, 0, len(remotes))
	for _, remote := range remotes {
		cfg := remote.Config()
		if len(cfg.URLs) == 0 {
			continue
		}
		urls[cfg.Name] = cfg.URLs[0]
		names = append(names, cfg.Name)
	}

	if len(names) == 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrNoRemote, repo.Root)
	}

	sort.Strings(names)
	name := names[0]
	if _, ok := urls[preferred]; ok {
		name = preferred
	}

	f.logger.Debug(ctx, "selected remote", map[string]interface{}{
		"root":   repo.Root,
		"remote": name,
		"url":    urls[name],
	})

	return &domain.RepositoryWithRemote{
		Root:   repo.Root,
		Remote: domain.Remote{Name: name, URL: urls[name]},
	}, nil
}
