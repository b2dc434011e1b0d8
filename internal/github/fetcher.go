// Package github syncs canonical markdown content from a GitHub repository
// into the local content directory ahead of an index build.
package github

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gofri/go-github-ratelimit/github_ratelimit"
	"github.com/google/go-github/v81/github"

	"github.com/prepstack/docsearch/internal/content"
)

// Fetcher pulls content files from one repository directory.
type Fetcher struct {
	client   *github.Client
	owner    string
	repo     string
	basePath string
	logger   *slog.Logger
}

// NewFetcher creates a Fetcher with rate-limit handling. If GITHUB_TOKEN is
// set the client is authenticated for higher rate limits.
func NewFetcher(owner, repo, basePath string, logger *slog.Logger) (*Fetcher, error) {
	rateLimiter, err := github_ratelimit.NewRateLimitWaiterClient(nil)
	if err != nil {
		return nil, fmt.Errorf("create rate limiter: %w", err)
	}

	client := github.NewClient(rateLimiter)
	if token := os.Getenv("GITHUB_TOKEN"); token != "" {
		client = client.WithAuthToken(token)
	}

	if logger == nil {
		logger = slog.Default()
	}
	return &Fetcher{
		client:   client,
		owner:    owner,
		repo:     repo,
		basePath: basePath,
		logger:   logger,
	}, nil
}

// Sync downloads every supported content file under the repository path into
// destDir and returns how many files were written. Nested repository paths
// are flattened into the flat content directory, path separators becoming
// dashes so slugs stay unique.
func (f *Fetcher) Sync(ctx context.Context, destDir string) (int, error) {
	paths, err := f.list(ctx, f.basePath, "")
	if err != nil {
		return 0, err
	}

	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return 0, fmt.Errorf("create content dir %s: %w", destDir, err)
	}

	written := 0
	for _, rel := range paths {
		data, err := f.fetch(ctx, rel)
		if err != nil {
			return written, fmt.Errorf("fetch %s: %w", rel, err)
		}
		name := strings.ReplaceAll(rel, "/", "-")
		if err := os.WriteFile(filepath.Join(destDir, name), data, 0o644); err != nil {
			return written, fmt.Errorf("write %s: %w", name, err)
		}
		written++
		f.logger.Debug("synced content file", "path", rel, "name", name)
	}

	f.logger.Info("content sync complete",
		"repo", f.owner+"/"+f.repo, "files", written, "dest", destDir)
	return written, nil
}

// list recursively collects supported content files under fullPath.
func (f *Fetcher) list(ctx context.Context, fullPath, relPath string) ([]string, error) {
	_, dir, _, err := f.client.Repositories.GetContents(ctx, f.owner, f.repo, fullPath, nil)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", fullPath, err)
	}

	var files []string
	for _, item := range dir {
		if item.Type == nil || item.Name == nil {
			continue
		}
		itemRel := path.Join(relPath, *item.Name)

		switch *item.Type {
		case "file":
			if content.IsSupported(*item.Name) {
				files = append(files, itemRel)
			}
		case "dir":
			sub, err := f.list(ctx, path.Join(fullPath, *item.Name), itemRel)
			if err != nil {
				return nil, err
			}
			files = append(files, sub...)
		}
	}
	return files, nil
}

// fetch downloads and decodes one file.
func (f *Fetcher) fetch(ctx context.Context, relPath string) ([]byte, error) {
	fullPath := path.Join(f.basePath, relPath)

	file, _, _, err := f.client.Repositories.GetContents(ctx, f.owner, f.repo, fullPath, nil)
	if err != nil {
		return nil, err
	}
	if file == nil || file.Content == nil {
		return nil, fmt.Errorf("no file content returned")
	}

	data, err := base64.StdEncoding.DecodeString(*file.Content)
	if err != nil {
		return nil, fmt.Errorf("decode content: %w", err)
	}
	return data, nil
}
