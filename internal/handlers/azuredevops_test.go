package handlers

import (
	"context"
	"testing"

	"github.com/miskreant/GitWebLinks/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAzureDevOps_Matches(t *testing.T) {
	tests := []struct {
		name   string
		remote string
		want   bool
	}{
		{
			name:   "v3 ssh form",
			remote: "git@ssh.dev.azure.com:v3/acme/Widgets/widgets",
			want:   true,
		},
		{
			name:   "web form with credentials",
			remote: "https://acme@dev.azure.com/acme/Widgets/_git/widgets",
			want:   true,
		},
		{
			name:   "legacy visualstudio.com",
			remote: "https://acme.visualstudio.com/Widgets/_git/widgets",
			want:   true,
		},
		{
			name:   "legacy visualstudio.com with DefaultCollection",
			remote: "https://acme.visualstudio.com/DefaultCollection/Widgets/_git/widgets",
			want:   true,
		},
		{
			name:   "legacy ssh host",
			remote: "vs-ssh.visualstudio.com:v3/acme/Widgets/widgets",
			want:   true,
		},
		{
			name:   "dev.azure.com without _git",
			remote: "https://dev.azure.com/acme/Widgets/widgets",
			want:   false,
		},
		{
			name:   "foreign host",
			remote: "https://github.com/acme/widgets.git",
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewAzureDevOps(branchRef("main"))

			assert.Equal(t, tt.want, h.Matches(domain.Remote{Name: "origin", URL: tt.remote}))
		})
	}
}

func TestAzureDevOps_CreateURL(t *testing.T) {
	tests := []struct {
		name   string
		remote string
		refs   *stubRefResolver
		file   domain.FileInfo
		want   string
	}{
		{
			name: "branch link without selection",
			refs: branchRef("main"),
			file: domain.FileInfo{RelativePath: "src/main.go"},
			want: "https://dev.azure.com/acme/Widgets/_git/widgets?path=%2Fsrc%2Fmain.go&version=GBmain",
		},
		{
			name: "commit link with line selection",
			refs: commitRef("0123456789ab"),
			file: domain.FileInfo{
				RelativePath: "src/main.go",
				Selection:    &domain.SelectedRange{StartLine: 10, EndLine: 20},
			},
			want: "https://dev.azure.com/acme/Widgets/_git/widgets?line=10&lineEnd=20&path=%2Fsrc%2Fmain.go&version=GC0123456789ab",
		},
		{
			name: "selection with columns",
			refs: branchRef("main"),
			file: domain.FileInfo{
				RelativePath: "src/main.go",
				Selection:    &domain.SelectedRange{StartLine: 10, StartColumn: 4, EndLine: 20, EndColumn: 15},
			},
			want: "https://dev.azure.com/acme/Widgets/_git/widgets?line=10&lineEnd=20&lineEndColumn=15&lineStartColumn=4&path=%2Fsrc%2Fmain.go&version=GBmain",
		},
		{
			name:   "legacy remote produces a modern link",
			remote: "https://acme.visualstudio.com/DefaultCollection/Widgets/_git/widgets",
			refs:   branchRef("main"),
			file:   domain.FileInfo{RelativePath: "src/main.go"},
			want:   "https://dev.azure.com/acme/Widgets/_git/widgets?path=%2Fsrc%2Fmain.go&version=GBmain",
		},
		{
			name:   "web remote",
			remote: "https://acme@dev.azure.com/acme/Widgets/_git/widgets",
			refs:   branchRef("main"),
			file:   domain.FileInfo{RelativePath: "src/main.go"},
			want:   "https://dev.azure.com/acme/Widgets/_git/widgets?path=%2Fsrc%2Fmain.go&version=GBmain",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			remote := tt.remote
			if remote == "" {
				remote = "git@ssh.dev.azure.com:v3/acme/Widgets/widgets"
			}
			h := NewAzureDevOps(tt.refs)

			// Act
			got, err := h.CreateURL(context.Background(), repoWithRemote(remote), tt.file, domain.LinkOptions{Type: domain.LinkTypeBranch})

			// Assert
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAzureDevOps_CreateURL_RejectsForeignRemote(t *testing.T) {
	// Arrange
	h := NewAzureDevOps(branchRef("main"))

	// Act
	_, err := h.CreateURL(
		context.Background(),
		repoWithRemote("https://github.com/acme/widgets.git"),
		domain.FileInfo{RelativePath: "main.go"},
		domain.LinkOptions{Type: domain.LinkTypeBranch},
	)

	// Assert
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not an Azure DevOps repository")
}
