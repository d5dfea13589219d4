package forms

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// HandlerTransport serves requests from an in-process handler, letting the
// controller drive the API routes without a network hop.
type HandlerTransport struct {
	Handler http.Handler
}

// RoundTrip implements http.RoundTripper.
func (t HandlerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if err := req.Context().Err(); err != nil {
		return nil, err
	}

	// The request context may belong to a request chi is still routing.
	// Hiding its route context makes the inner request routed from scratch.
	ctx := context.WithValue(req.Context(), chi.RouteCtxKey, (*chi.Context)(nil))
	in := req.Clone(ctx)
	in.RequestURI = req.URL.RequestURI()
	if in.Body == nil {
		in.Body = http.NoBody
	}

	w := newResponseBuffer()
	t.Handler.ServeHTTP(w, in)

	if err := req.Context().Err(); err != nil {
		return nil, err
	}
	return w.response(req), nil
}

// responseBuffer is an http.ResponseWriter that keeps the response in memory.
type responseBuffer struct {
	header      http.Header
	body        bytes.Buffer
	status      int
	wroteHeader bool
}

func newResponseBuffer() *responseBuffer {
	return &responseBuffer{header: make(http.Header), status: http.StatusOK}
}

func (b *responseBuffer) Header() http.Header { return b.header }

func (b *responseBuffer) WriteHeader(status int) {
	if b.wroteHeader {
		return
	}
	b.wroteHeader = true
	b.status = status
}

func (b *responseBuffer) Write(p []byte) (int, error) {
	b.WriteHeader(http.StatusOK)
	return b.body.Write(p)
}

func (b *responseBuffer) response(req *http.Request) *http.Response {
	header := b.header.Clone()
	header.Set("Content-Length", strconv.Itoa(b.body.Len()))
	return &http.Response{
		Status:        strconv.Itoa(b.status) + " " + http.StatusText(b.status),
		StatusCode:    b.status,
		Proto:         "HTTP/1.1",
		ProtoMajor:    1,
		ProtoMinor:    1,
		Header:        header,
		Body:          io.NopCloser(bytes.NewReader(b.body.Bytes())),
		ContentLength: int64(b.body.Len()),
		Request:       req,
	}
}
