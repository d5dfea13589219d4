// Package forms implements the asynchronous form-submission pipeline:
// intercept a submitted form, call its JSON endpoint, and replace the
// form's result container with markup from the renderer registered for
// the form's kind.
package forms

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"

	"github.com/ziadkadry99/pgagent/internal/highlight"
	"github.com/ziadkadry99/pgagent/internal/render"
)

var (
	// ErrNotAsync is returned for forms without the async marker.
	ErrNotAsync = errors.New("form is not marked async")
	// ErrSuperseded is returned when a newer submission of the same form
	// replaced this one before it resolved. Its result is discarded.
	ErrSuperseded = errors.New("submission superseded")
)

// maxResponseBytes caps how much of a response body is read.
const maxResponseBytes = 10 << 20

// Outcome classifies how a submission resolved.
type Outcome string

const (
	OutcomeRendered       Outcome = "rendered"
	OutcomeAppError       Outcome = "app_error"
	OutcomeTransportError Outcome = "transport_error"
	OutcomeSuperseded     Outcome = "superseded"
)

var submissionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "pgagent_form_submissions_total",
	Help: "Form submissions by form kind and outcome.",
}, []string{"kind", "outcome"})

type flight struct {
	id     uint64
	cancel context.CancelFunc
}

// Controller submits forms and dispatches responses to renderers.
type Controller struct {
	client    *http.Client
	baseURL   *url.URL
	timeout   time.Duration
	renderers map[Kind]render.Func
	fallback  render.Func
	log       zerolog.Logger

	mu       sync.Mutex
	seq      uint64
	inflight map[string]flight
}

// Option configures a Controller.
type Option func(*Controller)

// WithRenderer registers fn for responses to forms of kind k.
func WithRenderer(k Kind, fn render.Func) Option {
	return func(c *Controller) { c.renderers[k] = fn }
}

// WithDefaultRenderers registers the query, error-analysis, schema and
// documentation renderers. h may be nil.
func WithDefaultRenderers(h highlight.Highlighter) Option {
	return func(c *Controller) {
		c.renderers[KindQuery] = render.Query(h)
		c.renderers[KindErrorAnalysis] = render.ErrorAnalysis
		c.renderers[KindSchema] = render.Schema(h)
		c.renderers[KindDocSearch] = render.DocSearch
	}
}

// WithHTTPClient sets the client used for submissions.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Controller) { c.client = client }
}

// WithBaseURL resolves relative form actions against base.
func WithBaseURL(base *url.URL) Option {
	return func(c *Controller) { c.baseURL = base }
}

// WithTimeout bounds each submission. Zero means no bound.
func WithTimeout(d time.Duration) Option {
	return func(c *Controller) { c.timeout = d }
}

// WithLogger sets the controller's logger.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Controller) { c.log = l }
}

// NewController returns a controller. Forms whose kind has no registered
// renderer get the generic JSON dump.
func NewController(opts ...Option) *Controller {
	c := &Controller{
		client:    &http.Client{},
		renderers: make(map[Kind]render.Func),
		fallback:  render.Generic,
		log:       zerolog.Nop(),
		inflight:  make(map[string]flight),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Submit runs one submission of form f. scope separates independent
// clients; within a scope a new submission of the same form cancels the
// one still in flight. The button, when given, is busy for the duration
// and is always restored by the last submission of the form to finish.
func (c *Controller) Submit(ctx context.Context, scope string, f Form, values url.Values, container Container, button Button) (Outcome, error) {
	if !f.Async {
		return "", ErrNotAsync
	}

	sub := NewSubmission(f, values)
	key := scope + "\x00" + f.ID

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	if c.timeout > 0 {
		var tcancel context.CancelFunc
		ctx, tcancel = context.WithTimeout(ctx, c.timeout)
		defer tcancel()
	}

	id := c.begin(key, cancel)
	if button != nil {
		button.SetBusy()
	}
	defer func() {
		if c.end(key, id) && button != nil {
			button.Restore()
		}
	}()

	body, err := c.do(ctx, sub)
	var (
		markup  template.HTML
		outcome Outcome
	)
	switch {
	case err != nil:
		markup, outcome = render.TransportFailure(err), OutcomeTransportError
	default:
		markup, outcome, err = c.dispatch(sub.Kind, body)
	}

	if !c.deliver(key, id, container, markup) {
		submissionsTotal.WithLabelValues(sub.Kind.String(), string(OutcomeSuperseded)).Inc()
		c.log.Debug().Str("form", f.ID).Msg("discarding superseded submission")
		return OutcomeSuperseded, ErrSuperseded
	}

	submissionsTotal.WithLabelValues(sub.Kind.String(), string(outcome)).Inc()
	if outcome == OutcomeTransportError {
		c.log.Warn().Err(err).Str("form", f.ID).Str("endpoint", sub.Endpoint).Msg("submission failed")
	}
	return outcome, err
}

// dispatch turns a parsed response body into markup.
func (c *Controller) dispatch(kind Kind, body []byte) (template.HTML, Outcome, error) {
	if !json.Valid(body) {
		err := errors.New("invalid JSON response")
		return render.TransportFailure(err), OutcomeTransportError, err
	}
	if msg, ok := render.AppError(body); ok {
		return render.Alert(render.LevelDanger, msg), OutcomeAppError, nil
	}

	fn, ok := c.renderers[kind]
	if !ok {
		fn = c.fallback
	}
	markup, err := fn(body)
	if err != nil {
		return render.TransportFailure(err), OutcomeTransportError, err
	}
	return markup, OutcomeRendered, nil
}

// do performs the HTTP call and returns the raw body.
func (c *Controller) do(ctx context.Context, sub Submission) ([]byte, error) {
	endpoint, err := c.resolve(sub.Endpoint)
	if err != nil {
		return nil, err
	}

	var body io.Reader
	if sub.Method == http.MethodGet || sub.Method == http.MethodHead {
		q := endpoint.Query()
		for k, v := range sub.Fields {
			q.Set(k, v)
		}
		endpoint.RawQuery = q.Encode()
	} else {
		data, err := json.Marshal(sub.Fields)
		if err != nil {
			return nil, fmt.Errorf("encoding fields: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, sub.Method, endpoint.String(), body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	return data, nil
}

func (c *Controller) resolve(action string) (*url.URL, error) {
	u, err := url.Parse(strings.TrimSpace(action))
	if err != nil {
		return nil, fmt.Errorf("parsing form action %q: %w", action, err)
	}
	if c.baseURL != nil && !u.IsAbs() {
		u = c.baseURL.ResolveReference(u)
	}
	return u, nil
}

// begin registers a new flight for key, cancelling any prior one.
func (c *Controller) begin(key string, cancel context.CancelFunc) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	if prev, ok := c.inflight[key]; ok {
		prev.cancel()
	}
	c.seq++
	c.inflight[key] = flight{id: c.seq, cancel: cancel}
	return c.seq
}

// end removes the flight and reports whether it was still current.
func (c *Controller) end(key string, id uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	cur, ok := c.inflight[key]
	if !ok || cur.id != id {
		return false
	}
	delete(c.inflight, key)
	return true
}

// deliver writes markup only if the flight is still current.
func (c *Controller) deliver(key string, id uint64, container Container, markup template.HTML) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	cur, ok := c.inflight[key]
	if !ok || cur.id != id {
		return false
	}
	if container != nil {
		container.Replace(markup)
	}
	return true
}
