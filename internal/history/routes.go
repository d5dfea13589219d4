package history

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ziadkadry99/pgagent/internal/api"
)

// RegisterRoutes mounts the history API routes.
func RegisterRoutes(r chi.Router, store *Store) {
	r.Route("/api/history", func(r chi.Router) {
		r.Get("/queries", handleList(store.ListQueries))
		r.Get("/errors", handleList(store.ListErrors))
		r.Get("/searches", handleList(store.ListSearches))
		r.Get("/schemas", handleList(store.ListSchemas))
	})
}

func handleList[T any](list func(context.Context, int) ([]T, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := 0
		if v := r.URL.Query().Get("limit"); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				limit = n
			}
		}

		items, err := list(r.Context(), limit)
		if err != nil {
			api.WriteError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if items == nil {
			items = []T{}
		}
		api.WriteJSON(w, http.StatusOK, items)
	}
}
