package githubapi

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"path"
	"strings"

	gh "github.com/google/go-github/v66/github"

	"github.com/jeeems/devbot/internal/models"
)

// User-facing failures surfaced verbatim in chat replies.
var (
	ErrNotConfigured = errors.New("GitHub client is not initialized. Check GITHUB_TOKEN.")
	ErrInvalidURL    = errors.New("Please provide a valid GitHub repository URL")
	ErrRepoNotFound  = errors.New("Repository not found or access denied.")
	ErrAuthFailed    = errors.New("Authentication failed. Check your GitHub token.")
)

// Client wraps the GitHub REST API with the operations the bot needs.
type Client struct {
	gh         *gh.Client
	cache      *TreeCache // nil when caching is disabled
	configured bool
}

func NewClient(token string, cache *TreeCache) *Client {
	client := gh.NewClient(nil)
	if token != "" {
		client = client.WithAuthToken(token)
	}
	return &Client{
		gh:         client,
		cache:      cache,
		configured: token != "",
	}
}

// Configured reports whether a PAT was supplied at startup.
func (c *Client) Configured() bool {
	return c.configured
}

// ParseRepoURL extracts owner and repository name from a github.com URL.
func ParseRepoURL(rawURL string) (owner, name string, err error) {
	idx := strings.Index(rawURL, "github.com/")
	if idx < 0 {
		return "", "", ErrInvalidURL
	}

	repoPath := rawURL[idx+len("github.com/"):]
	repoPath = strings.TrimSuffix(repoPath, ".git")
	repoPath = strings.Trim(repoPath, "/")

	parts := strings.Split(repoPath, "/")
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return "", "", ErrInvalidURL
	}

	return parts[0], parts[1], nil
}

// ResolveRepo verifies that the repository is reachable with the configured
// token and returns its metadata plus the branch to use. When the requested
// branch does not exist it falls back to the repository's default branch.
func (c *Client) ResolveRepo(ctx context.Context, owner, name, branch string) (*models.Repo, string, error) {
	if !c.configured {
		return nil, "", ErrNotConfigured
	}

	repo, resp, err := c.gh.Repositories.Get(ctx, owner, name)
	if err != nil {
		return nil, "", mapAPIError(resp, err)
	}

	resolved := branch
	if _, resp, err = c.gh.Repositories.GetBranch(ctx, owner, name, branch, 1); err != nil {
		if resp == nil || resp.StatusCode != http.StatusNotFound {
			return nil, "", mapAPIError(resp, err)
		}
		fallback := repo.GetDefaultBranch()
		if fallback == "" || fallback == branch {
			return nil, "", fmt.Errorf("branch '%s' not found in %s/%s", branch, owner, name)
		}
		log.Printf("Branch '%s' not found in %s/%s, using default branch '%s'", branch, owner, name, fallback)
		resolved = fallback
	}

	return &models.Repo{
		Owner:         owner,
		Name:          name,
		FullName:      repo.GetFullName(),
		DefaultBranch: repo.GetDefaultBranch(),
		HTMLURL:       repo.GetHTMLURL(),
	}, resolved, nil
}

// ListTree returns the full repository tree for a branch, flattened. One Git
// Trees API call replaces a recursive contents walk.
func (c *Client) ListTree(ctx context.Context, repo *models.Repo, branch string) ([]models.TreeEntry, error) {
	if !c.configured {
		return nil, ErrNotConfigured
	}

	key := treeKey(repo.Owner, repo.Name, branch)
	if c.cache != nil {
		if entries, ok := c.cache.Get(ctx, key); ok {
			return entries, nil
		}
	}

	tree, resp, err := c.gh.Git.GetTree(ctx, repo.Owner, repo.Name, branch, true)
	if err != nil {
		return nil, mapAPIError(resp, err)
	}
	if tree.GetTruncated() {
		log.Printf("Tree listing for %s@%s was truncated by the API", repo.FullName, branch)
	}

	entries := make([]models.TreeEntry, 0, len(tree.Entries))
	for _, e := range tree.Entries {
		entry := models.TreeEntry{Path: e.GetPath(), Size: e.GetSize()}
		switch e.GetType() {
		case "blob":
			entry.Type = "file"
		case "tree":
			entry.Type = "dir"
		default:
			continue // submodules etc.
		}
		entries = append(entries, entry)
	}

	if c.cache != nil {
		c.cache.Put(ctx, key, entries)
	}

	return entries, nil
}

// FetchFile downloads and decodes a single file from the repository.
func (c *Client) FetchFile(ctx context.Context, repo *models.Repo, filePath, branch string) (*models.RepoFile, error) {
	if !c.configured {
		return nil, ErrNotConfigured
	}

	fileContent, _, resp, err := c.gh.Repositories.GetContents(ctx, repo.Owner, repo.Name, filePath,
		&gh.RepositoryContentGetOptions{Ref: branch})
	if err != nil {
		return nil, mapAPIError(resp, err)
	}
	if fileContent == nil {
		return nil, fmt.Errorf("'%s' is a directory, not a file", filePath)
	}

	content, err := fileContent.GetContent()
	if err != nil {
		return nil, fmt.Errorf("error reading file: %w", err)
	}

	return &models.RepoFile{
		Name:    fileContent.GetName(),
		Path:    fileContent.GetPath(),
		Size:    fileContent.GetSize(),
		Content: content,
	}, nil
}

// FindFile locates the first tree entry whose base name matches filename.
// It returns the empty string when no file matches.
func FindFile(entries []models.TreeEntry, filename string) string {
	for _, e := range entries {
		if e.Type == "file" && path.Base(e.Path) == filename {
			return e.Path
		}
	}
	return ""
}

func mapAPIError(resp *gh.Response, err error) error {
	if resp != nil {
		switch resp.StatusCode {
		case http.StatusNotFound:
			return ErrRepoNotFound
		case http.StatusUnauthorized:
			return ErrAuthFailed
		}
	}
	return fmt.Errorf("error accessing repository: %w", err)
}
