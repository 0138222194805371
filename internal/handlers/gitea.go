package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/miskreant/GitWebLinks/internal/domain"
)

// Gitea creates links for gitea.com and self-hosted Gitea or Forgejo
// servers.
type Gitea struct {
	refs    domain.RefResolver
	servers []Server
}

// NewGitea creates the Gitea handler with the user's self-hosted servers
// added to the built-in gitea.com endpoint.
func NewGitea(refs domain.RefResolver, servers []Server) *Gitea {
	return &Gitea{
		refs:    refs,
		servers: append([]Server{{BaseURL: "https://gitea.com", SSHHost: "gitea.com"}}, servers...),
	}
}

// Name implements domain.LinkHandler.
func (h *Gitea) Name() string { return "Gitea" }

// Matches implements domain.LinkHandler.
func (h *Gitea) Matches(remote domain.Remote) bool {
	r, err := parseRemoteURL(remote.URL)
	if err != nil {
		return false
	}
	_, ok := matchServer(h.servers, r)
	return ok
}

// CreateURL implements domain.LinkHandler. Gitea distinguishes branch and
// commit links in the path itself.
func (h *Gitea) CreateURL(ctx context.Context, repo domain.RepositoryWithRemote, file domain.FileInfo, opts domain.LinkOptions) (string, error) {
	r, err := parseRemoteURL(repo.Remote.URL)
	if err != nil {
		return "", err
	}
	server, ok := matchServer(h.servers, r)
	if !ok {
		return "", fmt.Errorf("remote %s does not belong to a known Gitea server", repo.Remote.URL)
	}

	ref, err := h.refs.ResolveRef(ctx, repo, opts.Type)
	if err != nil {
		return "", err
	}

	segment := "src/branch/" + escapePathSegments(ref.Name)
	if ref.Kind == domain.LinkTypeCommit {
		segment = "src/commit/" + ref.Name
	}

	link := fmt.Sprintf("%s/%s/%s/%s",
		strings.TrimSuffix(server.BaseURL, "/"),
		r.Path,
		segment,
		escapePathSegments(file.RelativePath))
	return link + giteaFragment(file.Selection), nil
}

func giteaFragment(sel *domain.SelectedRange) string {
	if sel == nil {
		return ""
	}
	if sel.SingleLine() {
		return fmt.Sprintf("#L%d", sel.StartLine)
	}
	return fmt.Sprintf("#L%d-L%d", sel.StartLine, sel.EndLine)
}
