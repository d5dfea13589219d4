package view

import (
	"bytes"
	"encoding/json"
	"errors"
	"html/template"
	"mime"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/ziadkadry99/pgagent/internal/api"
	"github.com/ziadkadry99/pgagent/internal/db"
	"github.com/ziadkadry99/pgagent/internal/forms"
	"github.com/ziadkadry99/pgagent/internal/prefs"
)

// OutcomeHeader reports how a server-side form submission resolved.
const OutcomeHeader = "X-Form-Outcome"

// RegisterRoutes mounts the page routes. Preferences are read from
// database for the requesting client.
func (i *Initializer) RegisterRoutes(r chi.Router, database *db.DB) {
	r.Get("/", i.handleIndex(database))
	r.Get("/static/app.js", serveAppJS)
	r.Post("/ui/forms/{formID}", i.handleForm)
	r.Get("/ui/query-form", handleQueryForm)
	r.Get("/ui/error-examples/{kind}", handleErrorExample)
	r.Get("/documentation/page", i.handleDocPage)
}

func (i *Initializer) handleIndex(database *db.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := i.Page(r.Context(), prefs.ForRequest(database, w, r))
		if err != nil {
			i.log.Error().Err(err).Msg("rendering index")
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write(page)
	}
}

func serveAppJS(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/javascript; charset=utf-8")
	w.Write(appJS)
}

// formValues reads the submitted fields from a urlencoded, multipart or
// flat JSON body.
func formValues(r *http.Request) (url.Values, error) {
	ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if ct == "application/json" {
		var fields map[string]string
		if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
			return nil, errors.New("invalid JSON body")
		}
		values := make(url.Values, len(fields))
		for k, v := range fields {
			values.Set(k, v)
		}
		return values, nil
	}
	if ct == "multipart/form-data" {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			return nil, err
		}
		return r.PostForm, nil
	}
	if err := r.ParseForm(); err != nil {
		return nil, err
	}
	return r.PostForm, nil
}

// handleForm runs the submission controller for one page form and
// answers with the fragment that replaces its result container. A
// submission superseded by a newer one answers 204 with no body.
func (i *Initializer) handleForm(w http.ResponseWriter, r *http.Request) {
	f, ok := PageForms[chi.URLParam(r, "formID")]
	if !ok {
		http.NotFound(w, r)
		return
	}

	values, err := formValues(r)
	if err != nil {
		api.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	scope := prefs.ClientID(w, r)
	var out forms.Buffer
	outcome, err := i.controller.Submit(r.Context(), scope, f, values, &out, forms.NewSubmitButton(f.SubmitLabel))
	w.Header().Set(OutcomeHeader, string(outcome))
	if errors.Is(err, forms.ErrSuperseded) {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if err != nil {
		i.log.Debug().Err(err).Str("form", f.ID).Msg("form submission")
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(out.HTML()))
}

func handleQueryForm(w http.ResponseWriter, r *http.Request) {
	layout, ok := QueryFormLayout(r.URL.Query().Get("query_type"))
	if !ok {
		api.WriteError(w, http.StatusBadRequest, "Unsupported query type")
		return
	}
	api.WriteJSON(w, http.StatusOK, layout)
}

func handleErrorExample(w http.ResponseWriter, r *http.Request) {
	kind := chi.URLParam(r, "kind")
	text, ok := ErrorExample(kind)
	if !ok {
		api.WriteError(w, http.StatusNotFound, "Unknown error example")
		return
	}
	api.WriteJSON(w, http.StatusOK, map[string]string{"kind": kind, "error_text": text})
}

type docPageData struct {
	Title    string
	Content  template.HTML
	Examples []template.HTML
	Related  []relatedLink
}

type relatedLink struct {
	Title string
	URL   string
}

func (i *Initializer) handleDocPage(w http.ResponseWriter, r *http.Request) {
	if i.docs == nil {
		http.NotFound(w, r)
		return
	}
	page, err := i.docs.Page(r.Context(), r.URL.Query().Get("path"))
	if err != nil {
		http.Error(w, "A documentation path is required", http.StatusBadRequest)
		return
	}

	data := docPageData{Title: page.Title}
	if i.markdown != nil {
		data.Content, err = i.markdown.Render(page.Content)
	}
	if i.markdown == nil || err != nil {
		if err != nil {
			i.log.Warn().Err(err).Msg("rendering documentation markdown")
		}
		data.Content = template.HTML("<pre>" + template.HTMLEscapeString(page.Content) + "</pre>")
	}
	for _, ex := range page.Examples {
		data.Examples = append(data.Examples, i.sql(ex))
	}
	for _, l := range page.Related {
		data.Related = append(data.Related, relatedLink(l))
	}

	var buf bytes.Buffer
	if err := pageTmpl.ExecuteTemplate(&buf, "docpage.html", data); err != nil {
		i.log.Error().Err(err).Msg("rendering documentation page")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}
