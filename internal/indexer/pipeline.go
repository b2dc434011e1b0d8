// Package indexer builds the search index artifact from a content directory.
package indexer

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/prepstack/docsearch/internal/content"
	"github.com/prepstack/docsearch/internal/markdown"
)

// BuildResult contains statistics about one index build.
type BuildResult struct {
	Documents int
	Sections  int
	Questions int
	Duration  time.Duration
}

// Pipeline transforms a directory of markdown files into the document array
// written to the search index artifact. Any I/O or front matter error aborts
// the whole build; no partial artifact is ever written.
type Pipeline struct {
	contentDir string
	outputPath string
	extractor  *markdown.Extractor
	logger     *slog.Logger
}

// NewPipeline creates a build pipeline reading from contentDir and writing
// the JSON artifact to outputPath.
func NewPipeline(contentDir, outputPath string, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		contentDir: contentDir,
		outputPath: outputPath,
		extractor:  markdown.NewExtractor(),
		logger:     logger,
	}
}

// Build scans the content directory, assembles every document, and writes the
// artifact. Returns statistics about the build.
func (p *Pipeline) Build() (*BuildResult, error) {
	start := time.Now()

	docs, err := p.BuildDocuments()
	if err != nil {
		return nil, err
	}

	if err := p.write(docs); err != nil {
		return nil, err
	}

	result := &BuildResult{
		Documents: len(docs),
		Duration:  time.Since(start),
	}
	for _, d := range docs {
		result.Sections += len(d.Sections)
		result.Questions += len(d.Questions)
	}

	p.logger.Info("index build complete",
		"documents", result.Documents,
		"sections", result.Sections,
		"questions", result.Questions,
		"output", p.outputPath,
		"duration", result.Duration,
	)
	return result, nil
}

// BuildDocuments produces the sorted document array without writing it.
// Documents sort by order ascending, ties broken by case-sensitive title.
func (p *Pipeline) BuildDocuments() ([]content.Document, error) {
	entries, err := os.ReadDir(p.contentDir)
	if err != nil {
		return nil, fmt.Errorf("read content dir %s: %w", p.contentDir, err)
	}

	var docs []content.Document
	seen := make(map[string]bool)
	for _, entry := range entries {
		if entry.IsDir() || !content.IsSupported(entry.Name()) {
			continue
		}
		slug := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))
		if seen[slug] {
			// Directory listing is sorted, so .md was already indexed and
			// wins over .mdx, matching content.Resolve priority.
			continue
		}
		seen[slug] = true
		doc, err := p.buildDocument(entry.Name())
		if err != nil {
			return nil, fmt.Errorf("build %s: %w", entry.Name(), err)
		}
		docs = append(docs, *doc)
		p.logger.Debug("indexed document",
			"slug", doc.Slug,
			"sections", len(doc.Sections),
			"questions", len(doc.Questions),
		)
	}

	sort.SliceStable(docs, func(i, j int) bool {
		if docs[i].Order != docs[j].Order {
			return docs[i].Order < docs[j].Order
		}
		return docs[i].Title < docs[j].Title
	})

	return docs, nil
}

// buildDocument assembles one document record from a content file.
func (p *Pipeline) buildDocument(name string) (*content.Document, error) {
	source, err := os.ReadFile(filepath.Join(p.contentDir, name))
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	meta, body, err := content.SplitFrontMatter(source)
	if err != nil {
		return nil, err
	}

	extracted, err := p.extractor.Extract(body)
	if err != nil {
		return nil, fmt.Errorf("parse body: %w", err)
	}

	slug := strings.TrimSuffix(name, filepath.Ext(name))
	title := meta.Title
	if title == "" {
		title = slug
	}
	tags := meta.Tags
	if tags == nil {
		tags = []string{}
	}
	questions := extracted.Questions
	if questions == nil {
		questions = []string{}
	}

	sections := make([]content.Section, 0, len(extracted.Sections))
	for _, s := range extracted.Sections {
		sections = append(sections, content.Section{
			ID:      s.ID,
			Title:   s.Title,
			Depth:   s.Depth,
			Content: s.Content,
		})
	}

	return &content.Document{
		Slug:      slug,
		Title:     title,
		Summary:   meta.Summary,
		Tags:      tags,
		Order:     meta.OrderOrDefault(),
		Body:      strings.Join(extracted.Paragraphs, "\n"),
		Questions: questions,
		Sections:  sections,
	}, nil
}

// write serializes the document array, pretty-printed, creating intermediate
// directories as needed.
func (p *Pipeline) write(docs []content.Document) error {
	data, err := json.MarshalIndent(docs, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal index: %w", err)
	}
	data = append(data, '\n')

	if dir := filepath.Dir(p.outputPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(p.outputPath, data, 0o644); err != nil {
		return fmt.Errorf("write index artifact: %w", err)
	}
	return nil
}
