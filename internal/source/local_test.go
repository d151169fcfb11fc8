package source

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeProjectDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "css"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<html></html>"), 0o666))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "css", "style.css"), []byte("body{}"), 0o666))
	return dir
}

func TestLocalProviderListFiles(t *testing.T) {
	p := NewLocalProvider(makeProjectDir(t))

	entries, err := p.ListFiles(context.Background())
	require.NoError(t, err)

	byPath := map[string]FileEntry{}
	for _, e := range entries {
		byPath[e.Path] = e
	}

	assert.Equal(t, KindDirectory, byPath["css"].Kind)
	assert.Equal(t, KindFile, byPath["index.html"].Kind)
	assert.Equal(t, uint64(len("<html></html>")), byPath["index.html"].Size)
	assert.Equal(t, KindFile, byPath["css/style.css"].Kind)
}

func TestLocalProviderReadFile(t *testing.T) {
	p := NewLocalProvider(makeProjectDir(t))
	ctx := context.Background()

	content, err := p.ReadFile(ctx, "css/style.css")
	require.NoError(t, err)
	assert.Equal(t, []byte("body{}"), content)

	// Missing files yield empty content, not an error.
	content, err = p.ReadFile(ctx, "nope.css")
	require.NoError(t, err)
	assert.Empty(t, content)
}

func TestLocalProviderMaterializeWorkingCopy(t *testing.T) {
	p := NewLocalProvider(makeProjectDir(t))

	workDir, err := p.MaterializeWorkingCopy(context.Background())
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(workDir) })

	content, err := os.ReadFile(filepath.Join(workDir, "css", "style.css"))
	require.NoError(t, err)
	assert.Equal(t, []byte("body{}"), content)
}

func TestLocalProviderListFilesMissingRoot(t *testing.T) {
	p := NewLocalProvider(filepath.Join(t.TempDir(), "does-not-exist"))

	_, err := p.ListFiles(context.Background())
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestParseRepoURL(t *testing.T) {
	tests := []struct {
		url         string
		owner, repo string
		wantErr     bool
	}{
		{url: "https://github.com/octocat/hello-world", owner: "octocat", repo: "hello-world"},
		{url: "https://github.com/octocat/hello-world.git", owner: "octocat", repo: "hello-world"},
		{url: "https://github.com/octocat/hello-world/tree/main", owner: "octocat", repo: "hello-world"},
		{url: "https://github.com/octocat", wantErr: true},
		{url: "://bad", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			owner, repo, err := ParseRepoURL(tt.url)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.owner, owner)
			assert.Equal(t, tt.repo, repo)
		})
	}
}
