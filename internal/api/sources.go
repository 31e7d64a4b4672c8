package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/meur/dotasource/internal/models"
	"github.com/meur/dotasource/internal/serializer"
	"github.com/meur/dotasource/internal/source"
)

// handleListSources returns the registered sources
func (s *Server) handleListSources(w http.ResponseWriter, r *http.Request) {
	infos := []models.SourceInfo{}
	for _, src := range source.All() {
		infos = append(infos, src.Info(s.baseURL))
	}
	respondJSON(w, http.StatusOK, infos)
}

// handleGetSource serves /GetSource?type=<kind>
func (s *Server) handleGetSource(w http.ResponseWriter, r *http.Request) {
	kind := r.URL.Query().Get("type")
	if kind == "" {
		respondError(w, http.StatusBadRequest, "Bad Request: Missing `type` query parameter")
		return
	}
	s.serveSerialized(w, r, kind)
}

// handleSerializeSource serves /api/sources/{kind}
func (s *Server) handleSerializeSource(w http.ResponseWriter, r *http.Request) {
	s.serveSerialized(w, r, chi.URLParam(r, "kind"))
}

func (s *Server) serveSerialized(w http.ResponseWriter, r *http.Request, name string) {
	kind, err := serializer.ParseKind(name)
	if err != nil {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("Bad Request: Source '%s' does not exist", name))
		return
	}

	payload, err := s.loader.Load(r.Context(), kind)
	if err != nil {
		s.log.Error("loading source", zap.String("kind", name), zap.Error(err))
		respondError(w, http.StatusInternalServerError, errorMessage("load", err))
		return
	}

	res, err := payload.Serialize()
	if err != nil {
		s.log.Error("serializing source", zap.String("kind", name), zap.Error(err))
		respondError(w, http.StatusInternalServerError, errorMessage("serialize", err))
		return
	}

	if r.URL.Query().Get("pretty") != "" {
		respondPretty(w, http.StatusOK, res)
		return
	}
	respondJSON(w, http.StatusOK, res)
}

func errorMessage(stage string, err error) string {
	switch {
	case errors.Is(err, source.ErrUpstream):
		return "UpstreamError: " + err.Error()
	case errors.Is(err, serializer.ErrMissingField):
		return "MissingRequiredField: " + err.Error()
	}
	return fmt.Sprintf("%s failed: %v", stage, err)
}
