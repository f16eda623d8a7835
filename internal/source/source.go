// Package source defines the ingestion collaborators that hand the engine a
// validated, in-memory product table.
package source

import (
	"context"

	"github.com/cockroachdb/errors"

	"catalog/internal/config"
	"catalog/internal/domain"
	"catalog/internal/source/csvfile"
	"catalog/internal/source/sqldb"
)

// Loader reads product records from an external system.
type Loader interface {
	Load(ctx context.Context) ([]domain.Record, error)
}

// New selects the loader named by cfg.Type.
func New(cfg config.SourceConfig) (Loader, error) {
	switch cfg.Type {
	case "csv", "":
		if cfg.CSV == nil || cfg.CSV.Path == "" {
			return nil, errors.New("csv source: path missing")
		}
		return csvfile.New(csvfile.Config{Path: cfg.CSV.Path, Delimiter: cfg.CSV.Delimiter}), nil
	case "sql":
		if cfg.SQL == nil || cfg.SQL.DSN == "" {
			return nil, errors.New("sql source: dsn missing")
		}
		return sqldb.New(sqldb.Config{Driver: cfg.SQL.Driver, DSN: cfg.SQL.DSN, Table: cfg.SQL.Table})
	}
	return nil, errors.Newf("unknown source type: %s", cfg.Type)
}
