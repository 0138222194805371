package handlers

import (
	"context"
	"fmt"

	"github.com/miskreant/GitWebLinks/internal/domain"
)

var bitbucketServers = []Server{{BaseURL: "https://bitbucket.org", SSHHost: "bitbucket.org"}}

// Bitbucket creates links for bitbucket.org.
type Bitbucket struct {
	refs domain.RefResolver
}

// NewBitbucket creates the Bitbucket handler.
func NewBitbucket(refs domain.RefResolver) *Bitbucket {
	return &Bitbucket{refs: refs}
}

// Name implements domain.LinkHandler.
func (h *Bitbucket) Name() string { return "Bitbucket" }

// Matches implements domain.LinkHandler.
func (h *Bitbucket) Matches(remote domain.Remote) bool {
	r, err := parseRemoteURL(remote.URL)
	if err != nil {
		return false
	}
	_, ok := matchServer(bitbucketServers, r)
	return ok
}

// CreateURL implements domain.LinkHandler.
func (h *Bitbucket) CreateURL(ctx context.Context, repo domain.RepositoryWithRemote, file domain.FileInfo, opts domain.LinkOptions) (string, error) {
	r, err := parseRemoteURL(repo.Remote.URL)
	if err != nil {
		return "", err
	}

	ref, err := h.refs.ResolveRef(ctx, repo, opts.Type)
	if err != nil {
		return "", err
	}

	link := fmt.Sprintf("https://bitbucket.org/%s/src/%s/%s",
		r.Path,
		escapePathSegments(ref.Name),
		escapePathSegments(file.RelativePath))
	return link + bitbucketFragment(file.Selection), nil
}

// bitbucketFragment renders "#lines-10" for a single line and
// "#lines-10:20" for a range.
func bitbucketFragment(sel *domain.SelectedRange) string {
	if sel == nil {
		return ""
	}
	if sel.SingleLine() {
		return fmt.Sprintf("#lines-%d", sel.StartLine)
	}
	return fmt.Sprintf("#lines-%d:%d", sel.StartLine, sel.EndLine)
}
