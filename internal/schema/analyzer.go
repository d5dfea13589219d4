// Package schema inspects live PostgreSQL tables and describes their
// structure.
package schema

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/ziadkadry99/pgagent/internal/config"
)

// Analyzer describes tables reachable through user-supplied connection
// strings.
type Analyzer struct {
	connect  Connector
	defaults config.PostgresConfig
	log      zerolog.Logger
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithConnector replaces the pgx connector.
func WithConnector(c Connector) Option {
	return func(a *Analyzer) { a.connect = c }
}

// NewAnalyzer returns an analyzer that fills incomplete connection
// strings from defaults.
func NewAnalyzer(defaults config.PostgresConfig, log zerolog.Logger, opts ...Option) *Analyzer {
	a := &Analyzer{connect: ConnectPostgres, defaults: defaults, log: log}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *Analyzer) open(ctx context.Context, conn string) (Inspector, error) {
	connURL, err := ParseConnString(conn, a.defaults)
	if err != nil {
		return nil, err
	}
	insp, err := a.connect(ctx, connURL)
	if err != nil {
		return nil, fmt.Errorf("Error creating database connection: %w", err)
	}
	return insp, nil
}

// Analyze describes table. table may be qualified as schema.table.
func (a *Analyzer) Analyze(ctx context.Context, conn, table string) (*Analysis, error) {
	insp, err := a.open(ctx, conn)
	if err != nil {
		return nil, err
	}
	defer insp.Close()

	schemaName, name := "", table
	if i := strings.Index(table, "."); i >= 0 {
		schemaName, name = table[:i], table[i+1:]
	}

	schemaName, err = insp.FindSchema(ctx, schemaName, name)
	if errors.Is(err, ErrTableNotFound) {
		return nil, &tableNotFoundError{name: table}
	}
	if err != nil {
		return nil, err
	}

	res := &Analysis{TableName: table}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		res.Columns, err = insp.Columns(gctx, schemaName, name)
		return err
	})
	g.Go(func() (err error) {
		res.PrimaryKey, err = insp.PrimaryKey(gctx, schemaName, name)
		return err
	})
	g.Go(func() (err error) {
		res.ForeignKeys, err = insp.ForeignKeys(gctx, schemaName, name)
		return err
	})
	g.Go(func() (err error) {
		res.Indexes, err = insp.Indexes(gctx, schemaName, name)
		return err
	})
	g.Go(func() error {
		cons, err := insp.Constraints(gctx, schemaName, name)
		if err != nil {
			a.log.Warn().Err(err).Str("table", table).Msg("reading constraints")
			return nil
		}
		res.Constraints = cons
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("Error analyzing schema: %w", err)
	}

	markPrimary(res.Columns, res.PrimaryKey)
	res.CreateTableSQL = BuildCreateTableSQL(table, res.Columns, res.PrimaryKey, res.ForeignKeys, res.Constraints)
	res.SampleDataStructure = SampleDataStructure(res.Columns)

	if res.PrimaryKey == nil {
		res.PrimaryKey = []string{}
	}
	if res.ForeignKeys == nil {
		res.ForeignKeys = []ForeignKey{}
	}
	if res.Indexes == nil {
		res.Indexes = []Index{}
	}
	if res.Constraints == nil {
		res.Constraints = []Constraint{}
	}
	return res, nil
}

// Tables lists the user tables reachable through conn.
func (a *Analyzer) Tables(ctx context.Context, conn string) ([]TableInfo, error) {
	insp, err := a.open(ctx, conn)
	if err != nil {
		return nil, err
	}
	defer insp.Close()
	return insp.Tables(ctx)
}

func markPrimary(cols []Column, pk []string) {
	for i := range cols {
		for _, name := range pk {
			if cols[i].Name == name {
				cols[i].IsPrimary = true
			}
		}
	}
}
