package querygen

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/ziadkadry99/pgagent/internal/api"
)

// Recorder logs generated queries.
type Recorder interface {
	RecordQuery(ctx context.Context, queryText, queryType string) error
}

// RegisterRoutes mounts the query generator API routes. rec may be nil.
func RegisterRoutes(r chi.Router, rec Recorder, log zerolog.Logger) {
	r.Route("/api/query", func(r chi.Router) {
		r.Post("/generate", handleGenerate(rec, log))
		r.Get("/templates", handleTemplates())
	})
}

func handleGenerate(rec Recorder, log zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req Request
		if !api.DecodeOrReject(w, r, &req) {
			return
		}
		if req.QueryType == "" {
			req.QueryType = TypeSelect
		}

		query, err := Generate(req)
		if err != nil {
			api.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}

		if rec != nil {
			if err := rec.RecordQuery(r.Context(), query, string(req.QueryType)); err != nil {
				log.Warn().Err(err).Msg("recording query history")
			}
		}
		api.WriteJSON(w, http.StatusOK, map[string]string{"query": query})
	}
}

func handleTemplates() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		api.WriteJSON(w, http.StatusOK, map[string]any{
			"templates": Templates(),
			"order":     TemplateOrder,
			"joins":     JoinExamples(),
		})
	}
}
