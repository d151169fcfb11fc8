package source

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/go-github/v63/github"
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

const (
	// contentCacheSize bounds the number of fetched file contents kept in
	// memory. Reference scanning and materialization both read the same
	// files, so a small cache avoids paying for each fetch twice.
	contentCacheSize = 512

	// fetchConcurrency bounds parallel content fetches during
	// materialization, to respect GitHub API rate limits.
	fetchConcurrency = 8
)

// GitHubProvider implements Provider on top of the GitHub REST API.
type GitHubProvider struct {
	client  *github.Client
	limiter *rate.Limiter
	cache   *lru.Cache[string, []byte]

	owner  string
	repo   string
	branch string
}

// ParseRepoURL extracts the owner and repository name from a GitHub
// repository URL such as https://github.com/owner/repo or
// https://github.com/owner/repo.git.
func ParseRepoURL(repoURL string) (owner, repo string, err error) {
	u, err := url.Parse(repoURL)
	if err != nil {
		return "", "", fmt.Errorf("invalid repository URL %q: %w", repoURL, err)
	}
	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid GitHub URL format: %q", repoURL)
	}
	return parts[0], strings.TrimSuffix(parts[1], ".git"), nil
}

// NewGitHubProvider creates a provider for the given repository URL and
// branch. token may be empty for anonymous access (subject to much lower
// rate limits).
func NewGitHubProvider(repoURL, branch, token string) (*GitHubProvider, error) {
	owner, repo, err := ParseRepoURL(repoURL)
	if err != nil {
		return nil, err
	}

	client := github.NewClient(nil)
	if token != "" {
		client = client.WithAuthToken(token)
	}

	cache, err := lru.New[string, []byte](contentCacheSize)
	if err != nil {
		return nil, err
	}

	return &GitHubProvider{
		client: client,
		// Stay well under the secondary rate limits for content fetches.
		limiter: rate.NewLimiter(rate.Limit(10), 20),
		cache:   cache,
		owner:   owner,
		repo:    repo,
		branch:  branch,
	}, nil
}

// ListFiles fetches the full recursive tree of the configured branch.
func (p *GitHubProvider) ListFiles(ctx context.Context) ([]FileEntry, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	tree, _, err := p.client.Git.GetTree(ctx, p.owner, p.repo, p.branch, true)
	if err != nil {
		return nil, fmt.Errorf("%w: listing %s/%s@%s: %v", ErrUnavailable, p.owner, p.repo, p.branch, err)
	}

	entries := make([]FileEntry, 0, len(tree.Entries))
	for _, e := range tree.Entries {
		kind := KindFile
		if e.GetType() == "tree" {
			kind = KindDirectory
		}
		entries = append(entries, FileEntry{
			Path: e.GetPath(),
			Kind: kind,
			Size: uint64(e.GetSize()),
		})
	}

	slog.InfoContext(ctx, "listed repository tree",
		"repo", p.owner+"/"+p.repo, "branch", p.branch, "entries", len(entries))
	return entries, nil
}

// ReadFile fetches one file's content. Fetch failures are logged and yield
// empty content rather than an error, matching the Provider contract.
func (p *GitHubProvider) ReadFile(ctx context.Context, path string) ([]byte, error) {
	if content, ok := p.cache.Get(path); ok {
		return content, nil
	}

	if err := p.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	opts := &github.RepositoryContentGetOptions{Ref: p.branch}
	fileContent, _, _, err := p.client.Repositories.GetContents(ctx, p.owner, p.repo, path, opts)
	if err != nil || fileContent == nil {
		slog.WarnContext(ctx, "failed to fetch file content", "path", path, "error", err)
		return nil, nil
	}

	decoded, err := fileContent.GetContent()
	if err != nil {
		slog.WarnContext(ctx, "failed to decode file content", "path", path, "error", err)
		return nil, nil
	}

	content := []byte(decoded)
	p.cache.Add(path, content)
	return content, nil
}

// MaterializeWorkingCopy downloads the whole tree into a temporary
// directory. Individual file fetch failures leave empty files; a listing
// failure is fatal and cleans up the partial directory.
func (p *GitHubProvider) MaterializeWorkingCopy(ctx context.Context) (string, error) {
	entries, err := p.ListFiles(ctx)
	if err != nil {
		return "", err
	}

	workDir, err := os.MkdirTemp("", "greenopt-*")
	if err != nil {
		return "", fmt.Errorf("%w: creating working copy dir: %v", ErrUnavailable, err)
	}

	for _, e := range entries {
		if e.Kind == KindDirectory {
			if err := os.MkdirAll(filepath.Join(workDir, filepath.FromSlash(e.Path)), 0o755); err != nil {
				os.RemoveAll(workDir)
				return "", fmt.Errorf("%w: creating directory %s: %v", ErrUnavailable, e.Path, err)
			}
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(fetchConcurrency)
	for _, e := range entries {
		if !e.IsFile() {
			continue
		}
		g.Go(func() error {
			content, err := p.ReadFile(gctx, e.Path)
			if err != nil {
				return err
			}
			dest := filepath.Join(workDir, filepath.FromSlash(e.Path))
			if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
				return err
			}
			return os.WriteFile(dest, content, 0o666)
		})
	}
	if err := g.Wait(); err != nil {
		os.RemoveAll(workDir)
		return "", fmt.Errorf("%w: materializing working copy: %v", ErrUnavailable, err)
	}

	slog.InfoContext(ctx, "materialized working copy", "dir", workDir, "files", len(entries))
	return workDir, nil
}
