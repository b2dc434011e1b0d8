package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/go-chi/chi/v5"

	"github.com/prepstack/docsearch/internal/content"
	"github.com/prepstack/docsearch/internal/markdown"
	"github.com/prepstack/docsearch/internal/search"
)

// healthResponse is the JSON body of the /health endpoint.
type healthResponse struct {
	Status    string `json:"status"`
	Index     string `json:"index"`
	Timestamp string `json:"timestamp"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{
		Status:    "ok",
		Index:     "missing",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	if s.index.Load() != nil {
		resp.Index = "loaded"
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleArtifact serves the raw index artifact with an xxhash ETag so
// unchanged snapshots answer conditional GETs with 304.
func (s *Server) handleArtifact(w http.ResponseWriter, r *http.Request) {
	data, err := os.ReadFile(s.cfg.IndexPath)
	if err != nil {
		if os.IsNotExist(err) {
			http.Error(w, "index artifact not built", http.StatusNotFound)
			return
		}
		s.logger.Error("read index artifact", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	etag := fmt.Sprintf(`"%x"`, xxhash.Sum64(data))
	w.Header().Set("ETag", etag)
	if r.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}

// searchResponse is the JSON body of the /api/search endpoint.
type searchResponse struct {
	Query   string          `json:"query"`
	Results []search.Result `json:"results"`
	Total   int             `json:"total"`
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	resp := searchResponse{Query: query, Results: []search.Result{}}

	idx := s.index.Load()
	if idx != nil {
		results, err := idx.Search(query)
		if err != nil {
			s.logger.Error("search failed", "query", query, "error", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		if results != nil {
			resp.Results = results
		}
	}
	resp.Total = len(resp.Results)

	writeJSON(w, http.StatusOK, resp)
}

// docResponse is a rendered document page: HTML with heading anchors that
// match the section ids in the search artifact, plus the heading outline.
type docResponse struct {
	Slug    string                 `json:"slug"`
	Title   string                 `json:"title"`
	Summary string                 `json:"summary"`
	Tags    []string               `json:"tags"`
	HTML    string                 `json:"html"`
	Outline []markdown.OutlineItem `json:"outline"`
}

func (s *Server) handleDoc(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	page, err := s.renders.get(slug, s.renderDoc)
	if err != nil {
		if errors.Is(err, content.ErrNotFound) {
			http.Error(w, "document not found", http.StatusNotFound)
			return
		}
		s.logger.Error("render document", "slug", slug, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, page)
}

// renderDoc builds the cached page for one slug.
func (s *Server) renderDoc(slug string) (*docResponse, error) {
	path, err := content.Resolve(s.cfg.ContentDir, slug)
	if err != nil {
		return nil, err
	}

	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	meta, body, err := content.SplitFrontMatter(source)
	if err != nil {
		return nil, err
	}

	rendered, err := s.extractor.Render(body)
	if err != nil {
		return nil, err
	}

	title := meta.Title
	if title == "" {
		title = slug
	}
	tags := meta.Tags
	if tags == nil {
		tags = []string{}
	}

	return &docResponse{
		Slug:    slug,
		Title:   title,
		Summary: meta.Summary,
		Tags:    tags,
		HTML:    rendered.HTML,
		Outline: rendered.Outline,
	}, nil
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
