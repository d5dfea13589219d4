package schema

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/ziadkadry99/pgagent/internal/api"
)

// Recorder stores schema snapshots.
type Recorder interface {
	RecordSchema(ctx context.Context, name string, structure any) error
}

// RegisterRoutes mounts the schema API routes. rec may be nil.
func RegisterRoutes(r chi.Router, analyzer *Analyzer, rec Recorder, log zerolog.Logger) {
	r.Post("/api/schema/analyze", handleAnalyze(analyzer, rec, log))
	r.Post("/api/table/info", handleTableInfo(analyzer, log))
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrTableNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrUnsupportedDatabase), errors.Is(err, ErrInvalidConnString):
		return http.StatusBadRequest
	default:
		return http.StatusBadGateway
	}
}

func handleAnalyze(analyzer *Analyzer, rec Recorder, log zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req AnalyzeRequest
		if !api.DecodeOrReject(w, r, &req) {
			return
		}

		res, err := analyzer.Analyze(r.Context(), req.ConnectionString, req.TableName)
		if err != nil {
			log.Error().Err(err).Str("table", req.TableName).Msg("schema analysis failed")
			api.WriteError(w, statusFor(err), err.Error())
			return
		}

		if rec != nil {
			if err := rec.RecordSchema(r.Context(), req.TableName, res); err != nil {
				log.Warn().Err(err).Msg("recording schema snapshot")
			}
		}
		api.WriteJSON(w, http.StatusOK, res)
	}
}

func handleTableInfo(analyzer *Analyzer, log zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req TableInfoRequest
		if !api.DecodeOrReject(w, r, &req) {
			return
		}

		tables, err := analyzer.Tables(r.Context(), req.ConnectionString)
		if err != nil {
			// The listing degrades to empty; the schema form reports
			// connection problems.
			log.Error().Err(err).Msg("listing tables")
			tables = []TableInfo{}
		}
		if tables == nil {
			tables = []TableInfo{}
		}
		api.WriteJSON(w, http.StatusOK, map[string]any{"tables": tables})
	}
}
