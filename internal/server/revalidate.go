package server

import (
	"encoding/json"
	"net/http"
)

// revalidateRequest is the body of the revalidation webhook. The secret may
// come from the X-Revalidate-Secret header instead of the body.
type revalidateRequest struct {
	Secret string   `json:"secret,omitempty"`
	Slugs  []string `json:"slugs,omitempty"`
}

// revalidateResponse reports what the webhook did.
type revalidateResponse struct {
	Purged    int  `json:"purged"`
	Documents int  `json:"documents"`
	Rebuilt   bool `json:"rebuilt"`
}

// handleRevalidate authenticates via shared secret, purges cached renders for
// the given slugs (or everything), rebuilds the index artifact, and reloads
// the live search index so search stays consistent with rendered content.
func (s *Server) handleRevalidate(w http.ResponseWriter, r *http.Request) {
	var req revalidateRequest
	if r.Body != nil {
		// An empty or malformed body is fine as long as the header secret is set.
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	secret := r.Header.Get("X-Revalidate-Secret")
	if secret == "" {
		secret = req.Secret
	}
	if s.cfg.RevalidateSecret == "" || secret != s.cfg.RevalidateSecret {
		http.Error(w, "invalid secret", http.StatusUnauthorized)
		return
	}

	purged := s.renders.purge(req.Slugs)

	result, err := s.pipeline.Build()
	if err != nil {
		s.logger.Error("rebuild index", "error", err)
		http.Error(w, "index rebuild failed", http.StatusInternalServerError)
		return
	}
	if err := s.ReloadIndex(); err != nil {
		s.logger.Error("reload index", "error", err)
		http.Error(w, "index reload failed", http.StatusInternalServerError)
		return
	}

	s.logger.Info("revalidated", "purged", purged, "documents", result.Documents)
	writeJSON(w, http.StatusOK, revalidateResponse{
		Purged:    purged,
		Documents: result.Documents,
		Rebuilt:   true,
	})
}
