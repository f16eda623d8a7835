// Package sqldb loads product records from a table in SQLite or PostgreSQL.
package sqldb

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"

	"github.com/cockroachdb/errors"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"catalog/internal/domain"
)

var identRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)?$`)

// Config holds the driver name ("sqlite3" or "postgres"), the data source
// name and the product table.
type Config struct {
	Driver string
	DSN    string
	Table  string
}

// Loader reads the product table. NULL columns become absent values.
type Loader struct {
	cfg Config
	db  *sql.DB
}

// New validates cfg and prepares a connection pool. No connection is made
// until Load.
func New(cfg Config) (*Loader, error) {
	if cfg.Driver == "" {
		cfg.Driver = "sqlite3"
	}
	if cfg.Table == "" {
		cfg.Table = "products"
	}
	if cfg.Driver != "sqlite3" && cfg.Driver != "postgres" {
		return nil, errors.Newf("unsupported driver %q", cfg.Driver)
	}
	if !identRe.MatchString(cfg.Table) {
		return nil, errors.Newf("invalid table name %q", cfg.Table)
	}
	db, err := sql.Open(cfg.Driver, cfg.DSN)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", cfg.Driver)
	}
	return &Loader{cfg: cfg, db: db}, nil
}

// NewWithDB wraps an existing handle; the caller keeps ownership of db.
func NewWithDB(db *sql.DB, table string) (*Loader, error) {
	if table == "" {
		table = "products"
	}
	if !identRe.MatchString(table) {
		return nil, errors.Newf("invalid table name %q", table)
	}
	return &Loader{cfg: Config{Table: table}, db: db}, nil
}

// Load selects every product ordered by id.
func (l *Loader) Load(ctx context.Context) ([]domain.Record, error) {
	query := fmt.Sprintf(
		"SELECT id, category, subcategory, product_name, description FROM %s ORDER BY id", l.cfg.Table)
	rows, err := l.db.QueryContext(ctx, query)
	if err != nil {
		return nil, errors.Wrapf(err, "query %s", l.cfg.Table)
	}
	defer rows.Close()

	var out []domain.Record
	for rows.Next() {
		var (
			r                                domain.Record
			category, sub, name, description sql.NullString
		)
		if err := rows.Scan(&r.ID, &category, &sub, &name, &description); err != nil {
			return nil, errors.Wrapf(err, "scan %s", l.cfg.Table)
		}
		r.Category = fromNull(category)
		r.Subcategory = fromNull(sub)
		r.ProductName = fromNull(name)
		r.Description = fromNull(description)
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrapf(err, "iterate %s", l.cfg.Table)
	}
	return out, nil
}

// Close releases the connection pool.
func (l *Loader) Close() error { return l.db.Close() }

func fromNull(s sql.NullString) domain.Text {
	if !s.Valid {
		return domain.None()
	}
	return domain.Some(s.String)
}
