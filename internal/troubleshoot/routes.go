package troubleshoot

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/ziadkadry99/pgagent/internal/api"
)

// Recorder logs analyzed errors.
type Recorder interface {
	RecordError(ctx context.Context, errorText, solution string) error
}

// RegisterRoutes mounts the error analysis API routes. rec may be nil.
func RegisterRoutes(r chi.Router, analyzer *Analyzer, rec Recorder, log zerolog.Logger) {
	r.Route("/api/error", func(r chi.Router) {
		r.Post("/analyze", handleAnalyze(analyzer, rec, log))
		r.Get("/common", handleCommon())
	})
}

func handleAnalyze(analyzer *Analyzer, rec Recorder, log zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req Request
		if !api.DecodeOrReject(w, r, &req) {
			return
		}

		analysis := analyzer.Analyze(r.Context(), req.ErrorText)
		if rec != nil {
			if err := rec.RecordError(r.Context(), req.ErrorText, analysis.Solution); err != nil {
				log.Warn().Err(err).Msg("recording error report")
			}
		}
		api.WriteJSON(w, http.StatusOK, analysis)
	}
}

func handleCommon() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		api.WriteJSON(w, http.StatusOK, CommonErrors())
	}
}
