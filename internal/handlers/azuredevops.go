package handlers

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/miskreant/GitWebLinks/internal/domain"
)

// AzureDevOps creates links for dev.azure.com and legacy visualstudio.com
// remotes. Unlike the other services, Azure DevOps addresses files through
// query parameters instead of path segments and fragments.
type AzureDevOps struct {
	refs domain.RefResolver
}

// NewAzureDevOps creates the Azure DevOps handler.
func NewAzureDevOps(refs domain.RefResolver) *AzureDevOps {
	return &AzureDevOps{refs: refs}
}

// Name implements domain.LinkHandler.
func (h *AzureDevOps) Name() string { return "Azure DevOps" }

// azureRepo identifies a repository inside an Azure DevOps organization.
type azureRepo struct {
	Org     string
	Project string
	Repo    string
}

var (
	azureSSHPathPattern    = regexp.MustCompile(`^v3/([^/]+)/([^/]+)/([^/]+)$`)
	azureWebPathPattern    = regexp.MustCompile(`^([^/]+)/([^/]+)/_git/([^/]+)$`)
	azureLegacyPathPattern = regexp.MustCompile(`^([^/]+)/_git/([^/]+)$`)
)

// parseAzureRemote maps the remote shapes Azure DevOps hands out onto
// organization, project and repository names: v3 SSH paths, dev.azure.com
// web paths and legacy {org}.visualstudio.com paths.
func parseAzureRemote(r remoteURL) (azureRepo, bool) {
	host := strings.ToLower(r.Host)
	switch {
	case host == "ssh.dev.azure.com" || host == "vs-ssh.visualstudio.com":
		if m := azureSSHPathPattern.FindStringSubmatch(r.Path); m != nil {
			return azureRepo{Org: m[1], Project: m[2], Repo: m[3]}, true
		}

	case host == "dev.azure.com":
		if m := azureWebPathPattern.FindStringSubmatch(r.Path); m != nil {
			return azureRepo{Org: m[1], Project: m[2], Repo: m[3]}, true
		}

	case strings.HasSuffix(host, ".visualstudio.com"):
		org := strings.TrimSuffix(host, ".visualstudio.com")
		path := strings.TrimPrefix(r.Path, "DefaultCollection/")
		if m := azureLegacyPathPattern.FindStringSubmatch(path); m != nil {
			return azureRepo{Org: org, Project: m[1], Repo: m[2]}, true
		}
	}
	return azureRepo{}, false
}

// Matches implements domain.LinkHandler.
func (h *AzureDevOps) Matches(remote domain.Remote) bool {
	r, err := parseRemoteURL(remote.URL)
	if err != nil {
		return false
	}
	_, ok := parseAzureRemote(r)
	return ok
}

// CreateURL implements domain.LinkHandler. Links always target the modern
// dev.azure.com form, also for repositories cloned from legacy remotes. The
// ref is carried in the version parameter, prefixed GB for branches and GC
// for commits.
func (h *AzureDevOps) CreateURL(ctx context.Context, repo domain.RepositoryWithRemote, file domain.FileInfo, opts domain.LinkOptions) (string, error) {
	r, err := parseRemoteURL(repo.Remote.URL)
	if err != nil {
		return "", err
	}
	az, ok := parseAzureRemote(r)
	if !ok {
		return "", fmt.Errorf("remote %s is not an Azure DevOps repository", repo.Remote.URL)
	}

	ref, err := h.refs.ResolveRef(ctx, repo, opts.Type)
	if err != nil {
		return "", err
	}

	version := "GB" + ref.Name
	if ref.Kind == domain.LinkTypeCommit {
		version = "GC" + ref.Name
	}

	q := url.Values{}
	q.Set("path", "/"+file.RelativePath)
	q.Set("version", version)
	if sel := file.Selection; sel != nil {
		q.Set("line", strconv.Itoa(sel.StartLine))
		q.Set("lineEnd", strconv.Itoa(sel.EndLine))
		if sel.StartColumn != 0 && sel.EndColumn != 0 {
			q.Set("lineStartColumn", strconv.Itoa(sel.StartColumn))
			q.Set("lineEndColumn", strconv.Itoa(sel.EndColumn))
		}
	}

	return fmt.Sprintf("https://dev.azure.com/%s/%s/_git/%s?%s", az.Org, az.Project, az.Repo, q.Encode()), nil
}
