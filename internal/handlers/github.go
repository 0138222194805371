package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/miskreant/GitWebLinks/internal/domain"
)

// GitHub creates links for github.com and GitHub Enterprise servers.
type GitHub struct {
	refs    domain.RefResolver
	servers []Server
}

// NewGitHub creates the GitHub handler. The servers extend the built-in
// github.com endpoint with the user's GitHub Enterprise entries.
func NewGitHub(refs domain.RefResolver, servers []Server) *GitHub {
	return &GitHub{
		refs:    refs,
		servers: append([]Server{{BaseURL: "https://github.com", SSHHost: "github.com"}}, servers...),
	}
}

// Name implements domain.LinkHandler.
func (h *GitHub) Name() string { return "GitHub" }

// Matches implements domain.LinkHandler.
func (h *GitHub) Matches(remote domain.Remote) bool {
	r, err := parseRemoteURL(remote.URL)
	if err != nil {
		return false
	}
	_, ok := matchServer(h.servers, r)
	return ok
}

// CreateURL implements domain.LinkHandler. The link pins the file to the
// resolved ref; a selection becomes a GitHub line fragment.
func (h *GitHub) CreateURL(ctx context.Context, repo domain.RepositoryWithRemote, file domain.FileInfo, opts domain.LinkOptions) (string, error) {
	r, err := parseRemoteURL(repo.Remote.URL)
	if err != nil {
		return "", err
	}
	server, ok := matchServer(h.servers, r)
	if !ok {
		return "", fmt.Errorf("remote %s does not belong to a known GitHub server", repo.Remote.URL)
	}

	ref, err := h.refs.ResolveRef(ctx, repo, opts.Type)
	if err != nil {
		return "", err
	}

	link := fmt.Sprintf("%s/%s/blob/%s/%s",
		strings.TrimSuffix(server.BaseURL, "/"),
		r.Path,
		escapePathSegments(ref.Name),
		escapePathSegments(file.RelativePath))
	return link + githubFragment(file.Selection), nil
}

// githubFragment renders "#L10" for a single line and "#L10-L20" for a
// range.
func githubFragment(sel *domain.SelectedRange) string {
	if sel == nil {
		return ""
	}
	if sel.SingleLine() {
		return fmt.Sprintf("#L%d", sel.StartLine)
	}
	return fmt.Sprintf("#L%d-L%d", sel.StartLine, sel.EndLine)
}
