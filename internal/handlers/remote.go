package handlers

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/samber/lo"
)

// remoteURL is the host and repository path extracted from a remote URL.
type remoteURL struct {
	Host string
	Path string
}

// Remote URL forms accepted by git, per git-fetch(1). Order matters: the
// scp-like form would otherwise swallow the scheme of the first two.
var (
	httpPattern = regexp.MustCompile(`^https?://(?:[^@/]+@)?([^/]+)/(.+)$`)
	sshPattern  = regexp.MustCompile(`^ssh://(?:[^@/]+@)?([^/:]+)(?::\d+)?/(.+)$`)
	scpPattern  = regexp.MustCompile(`^(?:[^@/]+@)?([^@:/]+):(.+)$`)
)

// parseRemoteURL splits a git remote URL into host and repository path.
// Credentials and SSH ports are dropped; a trailing ".git" is trimmed from
// the path.
func parseRemoteURL(remote string) (remoteURL, error) {
	for _, pattern := range []*regexp.Regexp{httpPattern, sshPattern, scpPattern} {
		if m := pattern.FindStringSubmatch(remote); m != nil {
			return remoteURL{Host: m[1], Path: trimRepoPath(m[2])}, nil
		}
	}
	return remoteURL{}, fmt.Errorf("unrecognized remote URL format: %s", remote)
}

func trimRepoPath(path string) string {
	path = strings.TrimSuffix(path, "/")
	path = strings.TrimSuffix(path, ".git")
	return strings.TrimPrefix(path, "/")
}

// escapePathSegments percent-escapes each segment of a slash-separated path
// while keeping the separators.
func escapePathSegments(path string) string {
	segments := lo.Map(strings.Split(path, "/"), func(segment string, _ int) string {
		return url.PathEscape(segment)
	})
	return strings.Join(segments, "/")
}

// Server is one hosting endpoint a handler recognizes: a built-in cloud
// endpoint or a self-hosted one from the user's settings.
type Server struct {
	// BaseURL is the web root links are built on, e.g.
	// "https://github.example.com".
	BaseURL string

	// SSHHost matches SSH remotes for this endpoint, e.g. "git.example.com"
	// or "git.example.com:2222".
	SSHHost string
}

// matchServer returns the server whose web or SSH host matches the parsed
// remote host. Host comparison is case-insensitive.
func matchServer(servers []Server, remote remoteURL) (Server, bool) {
	return lo.Find(servers, func(s Server) bool {
		if host := baseURLHost(s.BaseURL); host != "" && strings.EqualFold(host, remote.Host) {
			return true
		}
		return s.SSHHost != "" && strings.EqualFold(sshHostName(s.SSHHost), remote.Host)
	})
}

func baseURLHost(baseURL string) string {
	u, err := url.Parse(baseURL)
	if err != nil {
		return ""
	}
	return u.Host
}

// sshHostName strips an optional port from a configured SSH host so that it
// compares equal to the port-less host of a parsed remote.
func sshHostName(host string) string {
	if i := strings.Index(host, ":"); i >= 0 {
		return host[:i]
	}
	return host
}
