package docsearch

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/ziadkadry99/pgagent/internal/api"
)

// Recorder logs documentation searches.
type Recorder interface {
	RecordSearch(ctx context.Context, term string, resultCount int) error
}

// RegisterRoutes mounts the documentation API routes. rec may be nil.
func RegisterRoutes(r chi.Router, svc *Service, rec Recorder, log zerolog.Logger) {
	r.Route("/api/documentation", func(r chi.Router) {
		r.Post("/search", handleSearch(svc, rec, log))
		r.Get("/sections", handleSections(svc))
		r.Get("/page", handlePage(svc))
	})
}

func handleSearch(svc *Service, rec Recorder, log zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SearchRequest
		if !api.DecodeOrReject(w, r, &req) {
			return
		}

		results := svc.Search(r.Context(), req.SearchTerm)
		if rec != nil {
			if err := rec.RecordSearch(r.Context(), req.SearchTerm, len(results)); err != nil {
				log.Warn().Err(err).Msg("recording documentation search")
			}
		}
		api.WriteJSON(w, http.StatusOK, map[string]any{"results": results})
	}
}

func handleSections(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		api.WriteJSON(w, http.StatusOK, map[string]any{"sections": svc.Sections(r.Context())})
	}
}

func handlePage(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := svc.Page(r.Context(), r.URL.Query().Get("path"))
		if errors.Is(err, ErrInvalidPath) {
			api.WriteError(w, http.StatusBadRequest, "A documentation path is required")
			return
		}
		if err != nil {
			api.WriteError(w, http.StatusInternalServerError, err.Error())
			return
		}
		api.WriteJSON(w, http.StatusOK, page)
	}
}
