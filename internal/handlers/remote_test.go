package handlers

import (
	"context"
	"testing"

	"github.com/miskreant/GitWebLinks/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubRefResolver implements domain.RefResolver for testing.
type stubRefResolver struct {
	ref domain.Ref
	err error

	calls int
}

func (s *stubRefResolver) ResolveRef(_ context.Context, _ domain.RepositoryWithRemote, _ domain.LinkType) (domain.Ref, error) {
	s.calls++
	if s.err != nil {
		return domain.Ref{}, s.err
	}
	return s.ref, nil
}

func branchRef(name string) *stubRefResolver {
	return &stubRefResolver{ref: domain.Ref{Name: name, Kind: domain.LinkTypeBranch}}
}

func commitRef(hash string) *stubRefResolver {
	return &stubRefResolver{ref: domain.Ref{Name: hash, Kind: domain.LinkTypeCommit}}
}

func repoWithRemote(remote string) domain.RepositoryWithRemote {
	return domain.RepositoryWithRemote{
		Root:   "/work/widgets",
		Remote: domain.Remote{Name: "origin", URL: remote},
	}
}

func TestParseRemoteURL(t *testing.T) {
	tests := []struct {
		name    string
		remote  string
		want    remoteURL
		wantErr bool
	}{
		{
			name:   "https",
			remote: "https://github.com/acme/widgets.git",
			want:   remoteURL{Host: "github.com", Path: "acme/widgets"},
		},
		{
			name:   "https with credentials",
			remote: "https://token@github.com/acme/widgets.git",
			want:   remoteURL{Host: "github.com", Path: "acme/widgets"},
		},
		{
			name:   "http with port",
			remote: "http://git.example.com:8080/acme/widgets",
			want:   remoteURL{Host: "git.example.com:8080", Path: "acme/widgets"},
		},
		{
			name:   "ssh",
			remote: "ssh://git@github.com/acme/widgets.git",
			want:   remoteURL{Host: "github.com", Path: "acme/widgets"},
		},
		{
			name:   "ssh with port",
			remote: "ssh://git@git.example.com:2222/acme/widgets.git",
			want:   remoteURL{Host: "git.example.com", Path: "acme/widgets"},
		},
		{
			name:   "scp form",
			remote: "git@github.com:acme/widgets.git",
			want:   remoteURL{Host: "github.com", Path: "acme/widgets"},
		},
		{
			name:   "nested groups",
			remote: "https://gitlab.com/group/sub/project.git",
			want:   remoteURL{Host: "gitlab.com", Path: "group/sub/project"},
		},
		{
			name:   "trailing slash",
			remote: "https://gitlab.com/group/project/",
			want:   remoteURL{Host: "gitlab.com", Path: "group/project"},
		},
		{
			name:    "local path remote",
			remote:  "/srv/git/widgets.git",
			wantErr: true,
		},
		{
			name:    "empty remote",
			remote:  "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseRemoteURL(tt.remote)

			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "unrecognized remote URL format")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEscapePathSegments(t *testing.T) {
	tests := []struct {
		name string
		path string
		want string
	}{
		{name: "plain path", path: "src/main.go", want: "src/main.go"},
		{name: "spaces", path: "my docs/read me.md", want: "my%20docs/read%20me.md"},
		{name: "hash and question mark", path: "a#b/c?d", want: "a%23b/c%3Fd"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, escapePathSegments(tt.path))
		})
	}
}

func TestMatchServer(t *testing.T) {
	tests := []struct {
		name    string
		servers []Server
		remote  remoteURL
		want    Server
		wantOK  bool
	}{
		{
			name:    "base URL host match is case-insensitive",
			servers: []Server{{BaseURL: "https://GitHub.com"}},
			remote:  remoteURL{Host: "github.com"},
			want:    Server{BaseURL: "https://GitHub.com"},
			wantOK:  true,
		},
		{
			name:    "ssh host with port matches port-less remote host",
			servers: []Server{{BaseURL: "https://git.example.com", SSHHost: "git.example.com:2222"}},
			remote:  remoteURL{Host: "git.example.com"},
			want:    Server{BaseURL: "https://git.example.com", SSHHost: "git.example.com:2222"},
			wantOK:  true,
		},
		{
			name:    "base URL port is significant",
			servers: []Server{{BaseURL: "https://git.example.com:8443"}},
			remote:  remoteURL{Host: "git.example.com"},
			wantOK:  false,
		},
		{
			name:    "no server matches",
			servers: []Server{{BaseURL: "https://github.com", SSHHost: "github.com"}},
			remote:  remoteURL{Host: "gitlab.com"},
			wantOK:  false,
		},
		{
			name:    "first matching server wins",
			servers: []Server{{BaseURL: "https://git.example.com"}, {BaseURL: "https://git.example.com", SSHHost: "other"}},
			remote:  remoteURL{Host: "git.example.com"},
			want:    Server{BaseURL: "https://git.example.com"},
			wantOK:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := matchServer(tt.servers, tt.remote)

			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}
