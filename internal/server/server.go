// Package server exposes the index artifact, the search API, document
// rendering, and the revalidation webhook over HTTP.
package server

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"sync/atomic"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/prepstack/docsearch/internal/config"
	"github.com/prepstack/docsearch/internal/content"
	"github.com/prepstack/docsearch/internal/indexer"
	"github.com/prepstack/docsearch/internal/markdown"
	"github.com/prepstack/docsearch/internal/search"
)

// Deps holds the server's dependencies.
type Deps struct {
	Config   *config.Config
	Pipeline *indexer.Pipeline
	Logger   *slog.Logger
}

// Server serves the search artifact and APIs. The loaded search index is
// swapped atomically on revalidation so in-flight queries keep a consistent
// snapshot.
type Server struct {
	cfg       *config.Config
	pipeline  *indexer.Pipeline
	logger    *slog.Logger
	extractor *markdown.Extractor

	index   atomic.Pointer[search.Index]
	renders *renderCache
}

// New creates a Server. Call ReloadIndex before serving to load the artifact;
// a server without a loaded index answers searches with empty results.
func New(deps *Deps) *Server {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		cfg:       deps.Config,
		pipeline:  deps.Pipeline,
		logger:    logger,
		extractor: markdown.NewExtractor(),
		renders:   newRenderCache(),
	}
}

// Router builds the HTTP handler.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/health", s.handleHealth)
	r.Get("/search-index.json", s.handleArtifact)

	r.Route("/api", func(r chi.Router) {
		r.Get("/search", s.handleSearch)
		r.Get("/docs/{slug}", s.handleDoc)
		r.Post("/revalidate", s.handleRevalidate)
	})

	return r
}

// ReloadIndex reads the artifact from disk, expands it, and swaps the live
// search index. The old index is left for in-flight queries to finish on.
func (s *Server) ReloadIndex() error {
	data, err := os.ReadFile(s.cfg.IndexPath)
	if err != nil {
		return fmt.Errorf("read index artifact: %w", err)
	}

	var docs []content.Document
	if err := json.Unmarshal(data, &docs); err != nil {
		return fmt.Errorf("decode index artifact: %w", err)
	}

	idx, err := search.NewIndex(search.Expand(docs))
	if err != nil {
		return fmt.Errorf("build search index: %w", err)
	}

	s.index.Store(idx)
	s.logger.Info("search index loaded", "documents", len(docs), "entries", idx.Size())
	return nil
}
