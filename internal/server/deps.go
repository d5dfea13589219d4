package server

import (
	"context"
	"fmt"

	"github.com/ziadkadry99/pgagent/internal/config"
	"github.com/ziadkadry99/pgagent/internal/db"
	"github.com/ziadkadry99/pgagent/internal/docsearch"
	"github.com/ziadkadry99/pgagent/internal/highlight"
	"github.com/ziadkadry99/pgagent/internal/history"
	"github.com/ziadkadry99/pgagent/internal/logging"
	"github.com/ziadkadry99/pgagent/internal/schema"
	"github.com/ziadkadry99/pgagent/internal/troubleshoot"
)

// Deps holds the backend services shared by the HTTP server and the MCP
// server.
type Deps struct {
	DB          *db.DB
	History     *history.Store
	Errors      *troubleshoot.Analyzer
	Schema      *schema.Analyzer
	Docs        *docsearch.Service
	Markdown    *docsearch.Markdown
	Highlighter highlight.Highlighter

	closers []func() error
}

// BuildDeps wires the backend services from cfg. The documentation cache
// is Redis when docs.redis_url is set, in-process otherwise.
func BuildDeps(ctx context.Context, cfg *config.Config, database *db.DB) (*Deps, error) {
	d := &Deps{
		DB:       database,
		History:  history.NewStore(database),
		Markdown: docsearch.NewMarkdown(cfg.Highlight.Style),
	}

	var cache docsearch.Cache = docsearch.NewMemoryCache()
	if cfg.Docs.RedisURL != "" {
		rc, err := docsearch.NewRedisCache(ctx, cfg.Docs.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("connecting docs cache: %w", err)
		}
		cache = rc
		d.closers = append(d.closers, rc.Close)
	}

	fetcher := docsearch.NewFetcher(cfg.Docs.UserAgent, logging.New("fetch"),
		docsearch.WithCache(cache, cfg.Docs.CacheTTL()),
		docsearch.WithLimiter(docsearch.NewLimiter(cfg.Docs.RequestsPerMinute)),
	)
	d.Docs = docsearch.NewService(cfg.Docs, fetcher, logging.New("docs"))
	d.Errors = troubleshoot.NewAnalyzer(d.Docs, logging.New("troubleshoot"))
	d.Schema = schema.NewAnalyzer(cfg.Postgres, logging.New("schema"))

	if cfg.Highlight.Enabled {
		d.Highlighter = highlight.NewChroma(cfg.Highlight.Style)
	}
	return d, nil
}

// Close releases connections held by the services. The database is owned
// by the caller.
func (d *Deps) Close() error {
	var first error
	for _, c := range d.closers {
		if err := c(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
