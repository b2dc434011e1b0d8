// Package main provides the index builder CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/prepstack/docsearch/internal/config"
	ghclient "github.com/prepstack/docsearch/internal/github"
	"github.com/prepstack/docsearch/internal/indexer"
)

var rootCmd = &cobra.Command{
	Use:   "indexer",
	Short: "Content search index builder",
	Long:  "Builds the search index artifact from a directory of markdown content files.",
}

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the search index artifact from the content directory",
	Long: `Scans the content directory, parses every document's front matter and
body, and writes the search index artifact as pretty-printed JSON.

Any unreadable file or malformed front matter aborts the build; no partial
artifact is written.

Environment variables:
  CONTENT_DIR  Content directory (default: content)
  INDEX_PATH   Artifact output path (default: public/search-index.json)`,
	RunE: runBuild,
}

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Sync content from GitHub, then build the index",
	Long: `Downloads the canonical markdown content from a GitHub repository
directory into the local content directory, then builds the index artifact.

Environment variables:
  GITHUB_OWNER  Repository owner (required)
  GITHUB_REPO   Repository name (required)
  GITHUB_PATH   Directory within the repository (default: content)
  GITHUB_TOKEN  Token for higher rate limits (optional)`,
	RunE: runSync,
}

func init() {
	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(syncCmd)
}

func main() {
	// Load .env file if present (local development), ignore if missing.
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runBuild(cmd *cobra.Command, args []string) error {
	cfg := config.Load()

	pipeline := indexer.NewPipeline(cfg.ContentDir, cfg.IndexPath, nil)
	result, err := pipeline.Build()
	if err != nil {
		return fmt.Errorf("index build failed: %w", err)
	}

	fmt.Println("Build complete!")
	fmt.Printf("  Documents: %d\n", result.Documents)
	fmt.Printf("  Sections:  %d\n", result.Sections)
	fmt.Printf("  Questions: %d\n", result.Questions)
	fmt.Printf("  Duration:  %s\n", result.Duration.Round(time.Millisecond))
	return nil
}

func runSync(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	cfg := config.Load()

	if err := cfg.ValidateSync(); err != nil {
		return err
	}

	fetcher, err := ghclient.NewFetcher(cfg.GitHubOwner, cfg.GitHubRepo, cfg.GitHubPath, nil)
	if err != nil {
		return fmt.Errorf("create fetcher: %w", err)
	}

	fmt.Printf("Syncing content from %s/%s...\n", cfg.GitHubOwner, cfg.GitHubRepo)
	files, err := fetcher.Sync(ctx, cfg.ContentDir)
	if err != nil {
		return fmt.Errorf("content sync failed: %w", err)
	}
	fmt.Printf("Synced %d files\n", files)

	return runBuild(cmd, args)
}
