package schema

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PGInspector reads the PostgreSQL system catalogs through a pgx pool.
type PGInspector struct {
	pool *pgxpool.Pool
}

// ConnectPostgres opens a small pool and checks it with a ping.
func ConnectPostgres(ctx context.Context, connURL string) (Inspector, error) {
	cfg, err := pgxpool.ParseConfig(connURL)
	if err != nil {
		return nil, fmt.Errorf("parsing connection URL: %w", err)
	}
	cfg.MaxConns = 4
	cfg.MinConns = 0
	cfg.MaxConnIdleTime = time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	return &PGInspector{pool: pool}, nil
}

// Close releases the pool.
func (p *PGInspector) Close() {
	p.pool.Close()
}

func relation(schema, table string) string {
	return pgx.Identifier{schema, table}.Sanitize()
}

const findSchemaSQL = `
	SELECT n.nspname
	FROM pg_class c
	JOIN pg_namespace n ON n.oid = c.relnamespace
	WHERE c.relname = $1
	  AND c.relkind IN ('r', 'p')
	  AND ($2 = '' OR n.nspname = $2)
	  AND n.nspname NOT IN ('pg_catalog', 'information_schema')
	  AND n.nspname NOT LIKE 'pg_toast%'
	ORDER BY (n.nspname = 'public') DESC, n.nspname
	LIMIT 1`

func (p *PGInspector) FindSchema(ctx context.Context, schema, table string) (string, error) {
	var found string
	err := p.pool.QueryRow(ctx, findSchemaSQL, table, schema).Scan(&found)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrTableNotFound
	}
	if err != nil {
		return "", fmt.Errorf("looking up table: %w", err)
	}
	return found, nil
}

const columnsSQL = `
	SELECT a.attname,
	       format_type(a.atttypid, a.atttypmod),
	       NOT a.attnotnull,
	       pg_get_expr(d.adbin, d.adrelid)
	FROM pg_attribute a
	LEFT JOIN pg_attrdef d ON d.adrelid = a.attrelid AND d.adnum = a.attnum
	WHERE a.attrelid = $1::regclass
	  AND a.attnum > 0
	  AND NOT a.attisdropped
	ORDER BY a.attnum`

func (p *PGInspector) Columns(ctx context.Context, schema, table string) ([]Column, error) {
	rows, err := p.pool.Query(ctx, columnsSQL, relation(schema, table))
	if err != nil {
		return nil, fmt.Errorf("querying columns: %w", err)
	}
	defer rows.Close()

	var cols []Column
	for rows.Next() {
		var c Column
		var def *string
		if err := rows.Scan(&c.Name, &c.Type, &c.Nullable, &def); err != nil {
			return nil, fmt.Errorf("scanning column: %w", err)
		}
		c.Default = "None"
		if def != nil {
			c.Default = *def
		}
		cols = append(cols, c)
	}
	return cols, rows.Err()
}

const primaryKeySQL = `
	SELECT a.attname
	FROM pg_index i
	CROSS JOIN LATERAL unnest(i.indkey::int2[]) WITH ORDINALITY AS k(attnum, ord)
	JOIN pg_attribute a ON a.attrelid = i.indrelid AND a.attnum = k.attnum
	WHERE i.indrelid = $1::regclass AND i.indisprimary
	ORDER BY k.ord`

func (p *PGInspector) PrimaryKey(ctx context.Context, schema, table string) ([]string, error) {
	rows, err := p.pool.Query(ctx, primaryKeySQL, relation(schema, table))
	if err != nil {
		return nil, fmt.Errorf("querying primary key: %w", err)
	}
	pk, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("scanning primary key: %w", err)
	}
	return pk, nil
}

const foreignKeysSQL = `
	SELECT con.conname,
	       tgt.relname,
	       array(SELECT a.attname FROM unnest(con.conkey) WITH ORDINALITY AS k(n, ord)
	             JOIN pg_attribute a ON a.attrelid = con.conrelid AND a.attnum = k.n ORDER BY k.ord),
	       array(SELECT a.attname FROM unnest(con.confkey) WITH ORDINALITY AS k(n, ord)
	             JOIN pg_attribute a ON a.attrelid = con.confrelid AND a.attnum = k.n ORDER BY k.ord)
	FROM pg_constraint con
	JOIN pg_class tgt ON tgt.oid = con.confrelid
	WHERE con.conrelid = $1::regclass AND con.contype = 'f'
	ORDER BY con.conname`

func (p *PGInspector) ForeignKeys(ctx context.Context, schema, table string) ([]ForeignKey, error) {
	rows, err := p.pool.Query(ctx, foreignKeysSQL, relation(schema, table))
	if err != nil {
		return nil, fmt.Errorf("querying foreign keys: %w", err)
	}
	defer rows.Close()

	var fks []ForeignKey
	for rows.Next() {
		var fk ForeignKey
		if err := rows.Scan(&fk.Name, &fk.ReferredTable, &fk.Columns, &fk.ReferredColumns); err != nil {
			return nil, fmt.Errorf("scanning foreign key: %w", err)
		}
		fks = append(fks, fk)
	}
	return fks, rows.Err()
}

const indexesSQL = `
	SELECT ic.relname,
	       i.indisunique,
	       array(SELECT a.attname FROM unnest(i.indkey::int2[]) WITH ORDINALITY AS k(n, ord)
	             JOIN pg_attribute a ON a.attrelid = i.indrelid AND a.attnum = k.n ORDER BY k.ord)
	FROM pg_index i
	JOIN pg_class ic ON ic.oid = i.indexrelid
	WHERE i.indrelid = $1::regclass AND NOT i.indisprimary
	ORDER BY ic.relname`

func (p *PGInspector) Indexes(ctx context.Context, schema, table string) ([]Index, error) {
	rows, err := p.pool.Query(ctx, indexesSQL, relation(schema, table))
	if err != nil {
		return nil, fmt.Errorf("querying indexes: %w", err)
	}
	defer rows.Close()

	var idx []Index
	for rows.Next() {
		var ix Index
		if err := rows.Scan(&ix.Name, &ix.Unique, &ix.Columns); err != nil {
			return nil, fmt.Errorf("scanning index: %w", err)
		}
		idx = append(idx, ix)
	}
	return idx, rows.Err()
}

const constraintsSQL = `
	SELECT c.conname,
	       c.contype::text,
	       a.attname,
	       c.condeferrable,
	       c.condeferred,
	       pg_get_constraintdef(c.oid)
	FROM pg_constraint c
	JOIN pg_attribute a ON a.attrelid = c.conrelid AND a.attnum = ANY(c.conkey)
	WHERE c.conrelid = $1::regclass
	ORDER BY c.conname, a.attnum`

var constraintTypes = map[string]string{
	"c": "CHECK",
	"f": "FOREIGN KEY",
	"p": "PRIMARY KEY",
	"u": "UNIQUE",
	"t": "TRIGGER",
	"x": "EXCLUSION",
}

func constraintType(code string) string {
	if t, ok := constraintTypes[code]; ok {
		return t
	}
	return fmt.Sprintf("UNKNOWN (%s)", code)
}

func (p *PGInspector) Constraints(ctx context.Context, schema, table string) ([]Constraint, error) {
	rows, err := p.pool.Query(ctx, constraintsSQL, relation(schema, table))
	if err != nil {
		return nil, fmt.Errorf("querying constraints: %w", err)
	}
	defer rows.Close()

	var out []Constraint
	for rows.Next() {
		var c Constraint
		var code string
		if err := rows.Scan(&c.Name, &code, &c.Column, &c.Deferrable, &c.Deferred, &c.Definition); err != nil {
			return nil, fmt.Errorf("scanning constraint: %w", err)
		}
		c.Type = constraintType(code)
		out = append(out, c)
	}
	return out, rows.Err()
}

const tablesSQL = `
	SELECT n.nspname,
	       c.relname,
	       (SELECT count(*) FROM pg_attribute a
	         WHERE a.attrelid = c.oid AND a.attnum > 0 AND NOT a.attisdropped),
	       array(SELECT a.attname FROM pg_index i
	             CROSS JOIN LATERAL unnest(i.indkey::int2[]) WITH ORDINALITY AS k(n, ord)
	             JOIN pg_attribute a ON a.attrelid = i.indrelid AND a.attnum = k.n
	             WHERE i.indrelid = c.oid AND i.indisprimary
	             ORDER BY k.ord)
	FROM pg_class c
	JOIN pg_namespace n ON n.oid = c.relnamespace
	WHERE c.relkind IN ('r', 'p')
	  AND n.nspname NOT IN ('pg_catalog', 'information_schema')
	  AND n.nspname NOT LIKE 'pg_toast%'
	ORDER BY n.nspname, c.relname`

func (p *PGInspector) Tables(ctx context.Context) ([]TableInfo, error) {
	rows, err := p.pool.Query(ctx, tablesSQL)
	if err != nil {
		return nil, fmt.Errorf("listing tables: %w", err)
	}
	defer rows.Close()

	var out []TableInfo
	for rows.Next() {
		var t TableInfo
		if err := rows.Scan(&t.Schema, &t.Name, &t.ColumnCount, &t.PrimaryKey); err != nil {
			return nil, fmt.Errorf("scanning table: %w", err)
		}
		t.FullName = fullName(t.Schema, t.Name)
		out = append(out, t)
	}
	return out, rows.Err()
}

func fullName(schema, table string) string {
	if schema == "public" {
		return table
	}
	return schema + "." + table
}
