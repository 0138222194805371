package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/miskreant/GitWebLinks/internal/domain"
)

// GitLab creates links for gitlab.com and self-managed GitLab servers.
type GitLab struct {
	refs    domain.RefResolver
	servers []Server
}

// NewGitLab creates the GitLab handler with the user's self-managed servers
// added to the built-in gitlab.com endpoint.
func NewGitLab(refs domain.RefResolver, servers []Server) *GitLab {
	return &GitLab{
		refs:    refs,
		servers: append([]Server{{BaseURL: "https://gitlab.com", SSHHost: "gitlab.com"}}, servers...),
	}
}

// Name implements domain.LinkHandler.
func (h *GitLab) Name() string { return "GitLab" }

// Matches implements domain.LinkHandler.
func (h *GitLab) Matches(remote domain.Remote) bool {
	r, err := parseRemoteURL(remote.URL)
	if err != nil {
		return false
	}
	_, ok := matchServer(h.servers, r)
	return ok
}

// CreateURL implements domain.LinkHandler.
func (h *GitLab) CreateURL(ctx context.Context, repo domain.RepositoryWithRemote, file domain.FileInfo, opts domain.LinkOptions) (string, error) {
	r, err := parseRemoteURL(repo.Remote.URL)
	if err != nil {
		return "", err
	}
	server, ok := matchServer(h.servers, r)
	if !ok {
		return "", fmt.Errorf("remote %s does not belong to a known GitLab server", repo.Remote.URL)
	}

	ref, err := h.refs.ResolveRef(ctx, repo, opts.Type)
	if err != nil {
		return "", err
	}

	link := fmt.Sprintf("%s/%s/-/blob/%s/%s",
		strings.TrimSuffix(server.BaseURL, "/"),
		r.Path,
		escapePathSegments(ref.Name),
		escapePathSegments(file.RelativePath))
	return link + gitlabFragment(file.Selection), nil
}

// gitlabFragment renders "#L10" for a single line and "#L10-20" for a
// range. GitLab omits the second "L".
func gitlabFragment(sel *domain.SelectedRange) string {
	if sel == nil {
		return ""
	}
	if sel.SingleLine() {
		return fmt.Sprintf("#L%d", sel.StartLine)
	}
	return fmt.Sprintf("#L%d-%d", sel.StartLine, sel.EndLine)
}
