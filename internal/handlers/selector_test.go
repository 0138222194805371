package handlers

import (
	"context"
	"testing"

	"github.com/miskreant/GitWebLinks/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// staticHandler implements domain.LinkHandler with a fixed match result.
type staticHandler struct {
	name    string
	matches bool
}

func (h *staticHandler) Name() string                 { return h.name }
func (h *staticHandler) Matches(_ domain.Remote) bool { return h.matches }

func (h *staticHandler) CreateURL(_ context.Context, _ domain.RepositoryWithRemote, _ domain.FileInfo, _ domain.LinkOptions) (string, error) {
	return "", nil
}

func TestSelector_FirstMatchWins(t *testing.T) {
	// Arrange
	first := &staticHandler{name: "first", matches: true}
	second := &staticHandler{name: "second", matches: true}
	selector := NewSelector(first, second)

	// Act
	handler, ok := selector.Select(repoWithRemote("git@github.com:acme/widgets.git"))

	// Assert
	require.True(t, ok)
	assert.Equal(t, "first", handler.Name())
}

func TestSelector_NoMatch(t *testing.T) {
	// Arrange
	selector := NewSelector(&staticHandler{name: "first"}, &staticHandler{name: "second"})

	// Act
	handler, ok := selector.Select(repoWithRemote("git@github.com:acme/widgets.git"))

	// Assert
	assert.False(t, ok)
	assert.Nil(t, handler)
}

func TestDefaults_SelectsByRemote(t *testing.T) {
	tests := []struct {
		name        string
		remote      string
		wantHandler string
		wantOK      bool
	}{
		{
			name:        "github",
			remote:      "git@github.com:acme/widgets.git",
			wantHandler: "GitHub",
			wantOK:      true,
		},
		{
			name:        "gitlab",
			remote:      "https://gitlab.com/group/project.git",
			wantHandler: "GitLab",
			wantOK:      true,
		},
		{
			name:        "bitbucket",
			remote:      "git@bitbucket.org:team/repo.git",
			wantHandler: "Bitbucket",
			wantOK:      true,
		},
		{
			name:        "azure devops",
			remote:      "git@ssh.dev.azure.com:v3/acme/Widgets/widgets",
			wantHandler: "Azure DevOps",
			wantOK:      true,
		},
		{
			name:        "gitea",
			remote:      "https://gitea.com/acme/widgets.git",
			wantHandler: "Gitea",
			wantOK:      true,
		},
		{
			name:        "configured gitea server",
			remote:      "git@forge.example.com:acme/widgets.git",
			wantHandler: "Gitea",
			wantOK:      true,
		},
		{
			name:   "unknown host",
			remote: "https://git.unknown.example/acme/widgets.git",
		},
	}

	servers := ServerSet{
		Gitea: []Server{{BaseURL: "https://forge.example.com", SSHHost: "forge.example.com"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			selector := Defaults(branchRef("main"), servers)

			// Act
			handler, ok := selector.Select(repoWithRemote(tt.remote))

			// Assert
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				require.NotNil(t, handler)
				assert.Equal(t, tt.wantHandler, handler.Name())
			}
		})
	}
}

func TestDefaults_Deterministic(t *testing.T) {
	// Arrange
	repo := repoWithRemote("git@github.com:acme/widgets.git")

	// Act
	first, ok := Defaults(branchRef("main"), ServerSet{}).Select(repo)
	require.True(t, ok)
	second, ok := Defaults(branchRef("main"), ServerSet{}).Select(repo)
	require.True(t, ok)

	// Assert
	assert.Equal(t, first.Name(), second.Name())
}
