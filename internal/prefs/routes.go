package prefs

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ziadkadry99/pgagent/internal/api"
	"github.com/ziadkadry99/pgagent/internal/db"
)

// ClientCookie names the cookie that scopes preferences to a browser.
const ClientCookie = "pgagent_client"

// ClientID returns the caller's client id, issuing a new cookie when the
// request carries none.
func ClientID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(ClientCookie); err == nil {
		if _, err := uuid.Parse(c.Value); err == nil {
			return c.Value
		}
	}
	id := uuid.New().String()
	http.SetCookie(w, &http.Cookie{
		Name:     ClientCookie,
		Value:    id,
		Path:     "/",
		MaxAge:   365 * 24 * 60 * 60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

// ForRequest returns the preference service for the request's client.
func ForRequest(database *db.DB, w http.ResponseWriter, r *http.Request) *Service {
	return NewService(NewDBStorage(database, ClientID(w, r)))
}

type updateRequest struct {
	ActiveTab        *string `json:"activeTab" validate:"omitempty,startswith=#,max=128"`
	SidebarCollapsed *bool   `json:"sidebarCollapsed"`
}

// RegisterRoutes mounts the preference API routes.
func RegisterRoutes(r chi.Router, database *db.DB) {
	r.Route("/api/preferences", func(r chi.Router) {
		r.Get("/", handleGet(database))
		r.Put("/", handleUpdate(database))
	})
}

func handleGet(database *db.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap, err := ForRequest(database, w, r).Load(r.Context())
		if err != nil {
			api.WriteError(w, http.StatusInternalServerError, err.Error())
			return
		}
		api.WriteJSON(w, http.StatusOK, snap)
	}
}

func handleUpdate(database *db.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updateRequest
		if !api.DecodeOrReject(w, r, &req) {
			return
		}

		svc := ForRequest(database, w, r)
		if req.ActiveTab != nil {
			if err := svc.SetActiveTab(r.Context(), *req.ActiveTab); err != nil {
				api.WriteError(w, http.StatusInternalServerError, err.Error())
				return
			}
		}
		if req.SidebarCollapsed != nil {
			if err := svc.SetSidebarCollapsed(r.Context(), *req.SidebarCollapsed); err != nil {
				api.WriteError(w, http.StatusInternalServerError, err.Error())
				return
			}
		}

		snap, err := svc.Load(r.Context())
		if err != nil {
			api.WriteError(w, http.StatusInternalServerError, err.Error())
			return
		}
		api.WriteJSON(w, http.StatusOK, snap)
	}
}
