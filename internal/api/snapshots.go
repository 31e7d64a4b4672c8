package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/meur/dotasource/internal/serializer"
)

// handleListSnapshots returns snapshot summaries, optionally ?kind= filtered
func (s *Server) handleListSnapshots(w http.ResponseWriter, r *http.Request) {
	kind := r.URL.Query().Get("kind")
	if kind != "" {
		if _, err := serializer.ParseKind(kind); err != nil {
			respondError(w, http.StatusBadRequest, "Invalid kind")
			return
		}
	}

	snapshots, err := s.store.ListSnapshots(kind)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch snapshots")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"snapshots":   snapshots,
		"total_count": len(snapshots),
	})
}

// handleGetSnapshot returns a snapshot with its payload by ID
func (s *Server) handleGetSnapshot(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	snap, err := s.store.GetSnapshot(id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch snapshot")
		return
	}
	if snap == nil {
		respondError(w, http.StatusNotFound, "Snapshot not found")
		return
	}

	respondJSON(w, http.StatusOK, snap)
}

// handleGetLatestSnapshot returns the records of the newest snapshot of a kind
func (s *Server) handleGetLatestSnapshot(w http.ResponseWriter, r *http.Request) {
	kind, err := serializer.ParseKind(chi.URLParam(r, "kind"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid kind")
		return
	}

	snap, err := s.store.GetLatestSnapshot(string(kind))
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch snapshot")
		return
	}
	if snap == nil {
		respondError(w, http.StatusNotFound, "No snapshot for "+string(kind))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Snapshot-Revision", snap.Revision)
	w.WriteHeader(http.StatusOK)
	w.Write(snap.Payload)
}
