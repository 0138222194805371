package git

import (
	"context"
	"fmt"
	"strings"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	"github.com/miskreant/GitWebLinks/internal/domain"
)

// ResolveRef resolves linkType against the repository's current state.
// Returns a *domain.NoRemoteHeadError when the remote's default branch
// cannot be determined locally.
func (f *Finder) ResolveRef(ctx context.Context, repo domain.RepositoryWithRemote, linkType domain.LinkType) (domain.Ref, error) {
	r, err := gogit.PlainOpen(repo.Root)
	if err != nil {
		return domain.Ref{}, fmt.Errorf("open repository at %s: %w", repo.Root, err)
	}

	switch linkType {
	case domain.LinkTypeCommit:
		return f.commitRef(r, repo)

	case domain.LinkTypeBranch, domain.LinkTypeDefer:
		return f.branchRef(ctx, r, repo)

	case domain.LinkTypeDefaultBranch:
		return f.defaultBranchRef(r, repo)

	default:
		return domain.Ref{}, fmt.Errorf("unknown link type %q", linkType)
	}
}

func (f *Finder) commitRef(r *gogit.Repository, repo domain.RepositoryWithRemote) (domain.Ref, error) {
	head, err := r.Head()
	if err != nil {
		return domain.Ref{}, fmt.Errorf("resolve HEAD of %s: %w", repo.Root, err)
	}

	hash := head.Hash().String()
	if f.shortHash && len(hash) > shortHashLength {
		hash = hash[:shortHashLength]
	}
	return domain.Ref{Name: hash, Kind: domain.LinkTypeCommit}, nil
}

func (f *Finder) branchRef(ctx context.Context, r *gogit.Repository, repo domain.RepositoryWithRemote) (domain.Ref, error) {
	head, err := r.Head()
	if err != nil {
		return domain.Ref{}, fmt.Errorf("resolve HEAD of %s: %w", repo.Root, err)
	}

	if head.Name().IsBranch() {
		return domain.Ref{Name: head.Name().Short(), Kind: domain.LinkTypeBranch}, nil
	}

	// HEAD is detached - link to the commit instead.
	f.logger.Warn(ctx, "HEAD is detached, linking to the commit instead", map[string]interface{}{
		"root": repo.Root,
	})
	return f.commitRef(r, repo)
}

// defaultBranchRef resolves the remote's default branch from the local
// symbolic ref refs/remotes/<remote>/HEAD, which clones record. Falls back
// to the configured default branch.
func (f *Finder) defaultBranchRef(r *gogit.Repository, repo domain.RepositoryWithRemote) (domain.Ref, error) {
	name := plumbing.ReferenceName("refs/remotes/" + repo.Remote.Name + "/HEAD")
	if ref, err := r.Reference(name, false); err == nil && ref.Type() == plumbing.SymbolicReference {
		branch := strings.TrimPrefix(ref.Target().Short(), repo.Remote.Name+"/")
		return domain.Ref{Name: branch, Kind: domain.LinkTypeBranch}, nil
	}

	if f.defaultBranch != "" {
		return domain.Ref{Name: f.defaultBranch, Kind: domain.LinkTypeBranch}, nil
	}

	return domain.Ref{}, &domain.NoRemoteHeadError{Root: repo.Root, Remote: repo.Remote.Name}
}
