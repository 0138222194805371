// Package handlers maps repository remotes to the web URLs of their hosting
// services. Each handler recognizes the remote forms of one service and
// knows how that service addresses files, refs and line ranges.
package handlers

import (
	"github.com/samber/lo"

	"github.com/miskreant/GitWebLinks/internal/domain"
)

// Selector picks the handler for a remote by trying the registered handlers
// in order. It implements domain.HandlerSelector.
type Selector struct {
	handlers []domain.LinkHandler
}

// NewSelector creates a Selector trying handlers in the given order.
func NewSelector(handlers ...domain.LinkHandler) *Selector {
	return &Selector{handlers: handlers}
}

// ServerSet groups the user-configured servers by hosting service.
type ServerSet struct {
	GitHub []Server
	GitLab []Server
	Gitea  []Server
}

// Defaults creates a Selector with every built-in handler. The registration
// order is fixed, so identical remotes always select the same handler.
func Defaults(refs domain.RefResolver, servers ServerSet) *Selector {
	return NewSelector(
		NewGitHub(refs, servers.GitHub),
		NewGitLab(refs, servers.GitLab),
		NewBitbucket(refs),
		NewAzureDevOps(refs),
		NewGitea(refs, servers.Gitea),
	)
}

// Select implements domain.HandlerSelector.
func (s *Selector) Select(repo domain.RepositoryWithRemote) (domain.LinkHandler, bool) {
	return lo.Find(s.handlers, func(h domain.LinkHandler) bool {
		return h.Matches(repo.Remote)
	})
}
