// Package report composes the engine into named catalog reports and the
// search service used by the CLI and the TUI.
package report

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"

	"catalog/internal/classifier"
	"catalog/internal/config"
	"catalog/internal/domain"
	"catalog/internal/search"
	"catalog/internal/source"
	"catalog/internal/store"
	"catalog/internal/tokenizer"
)

// Service answers report and search requests over one immutable table.
type Service struct {
	table      *store.Table
	tok        *tokenizer.Tokenizer
	classifier *classifier.Classifier
	cfg        *config.AppConfig
	log        zerolog.Logger

	indexOnce sync.Once
	index     *search.Index
	indexErr  error
}

// NewService wires the tokenizer and classifier described by cfg around t.
func NewService(t *store.Table, cfg *config.AppConfig, log zerolog.Logger) *Service {
	if cfg == nil {
		cfg = config.Default()
	}
	tok := tokenizer.New(
		tokenizer.WithStopwords(cfg.Tokenizer.Stopwords),
		tokenizer.WithMinLength(cfg.Tokenizer.MinLength),
	)
	return &Service{
		table:      t,
		tok:        tok,
		classifier: classifier.New(cfg.Classifier.Rules, cfg.Classifier.DefaultLabel),
		cfg:        cfg,
		log:        log,
	}
}

// Open loads the configured source and returns a service over it.
func Open(ctx context.Context, cfg *config.AppConfig, log zerolog.Logger) (*Service, error) {
	loader, err := source.New(cfg.Source)
	if err != nil {
		return nil, err
	}
	return openFrom(ctx, loader, cfg, log)
}

// openFrom reads every record from loader, then releases it when it holds
// resources such as a connection pool.
func openFrom(ctx context.Context, loader source.Loader, cfg *config.AppConfig, log zerolog.Logger) (*Service, error) {
	if c, ok := loader.(io.Closer); ok {
		defer func() {
			if err := c.Close(); err != nil {
				log.Warn().Err(err).Str("source", cfg.Source.Type).Msg("close source")
			}
		}()
	}
	start := time.Now()
	records, err := loader.Load(ctx)
	if err != nil {
		return nil, errors.Wrapf(err, "load %s source", cfg.Source.Type)
	}
	log.Info().
		Str("source", cfg.Source.Type).
		Int("records", len(records)).
		Dur("took", time.Since(start)).
		Msg("catalog loaded")
	return NewService(store.Load(records), cfg, log), nil
}

// Table returns the underlying record store.
func (s *Service) Table() *store.Table { return s.table }

// Tokenizer returns the configured tokenizer.
func (s *Service) Tokenizer() *tokenizer.Tokenizer { return s.tok }

// Index builds the search index on first use. Later calls return the same
// index, or the same build error.
func (s *Service) Index() (*search.Index, error) {
	s.indexOnce.Do(func() {
		fields, err := domain.ParseFields(s.cfg.Search.Fields)
		if err != nil {
			s.indexErr = err
			return
		}
		start := time.Now()
		idx, err := search.Build(s.table, s.tok, fields...)
		if err != nil {
			s.indexErr = errors.Wrap(err, "build search index")
			return
		}
		s.log.Debug().
			Int("records", idx.Len()).
			Int("terms", idx.Terms()).
			Dur("took", time.Since(start)).
			Msg("search index built")
		s.index = idx
	})
	return s.index, s.indexErr
}

// Hits runs a query against the index. A non-positive limit falls back to
// the configured search limit.
func (s *Service) Hits(query string, limit int) ([]search.Hit, error) {
	idx, err := s.Index()
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = s.cfg.Limits.Search
	}
	return idx.Query(query, limit), nil
}

// Search returns the hits as rows of id, score, category and product_name.
func (s *Service) Search(query string, limit int) ([]domain.Row, error) {
	hits, err := s.Hits(query, limit)
	if err != nil {
		return nil, err
	}
	rows := make([]domain.Row, 0, len(hits))
	for _, h := range hits {
		rec := s.table.At(h.Ordinal)
		rows = append(rows, append(h.Row(),
			domain.Cell{Name: "category", Value: domain.FromText(rec.Category)},
			domain.Cell{Name: "product_name", Value: domain.FromText(rec.ProductName)},
		))
	}
	return rows, nil
}

// Run executes the named report.
func (s *Service) Run(name string) ([]domain.Row, error) {
	r, ok := Lookup(name)
	if !ok {
		return nil, errors.Newf("unknown report %q", name)
	}
	start := time.Now()
	rows, err := r.run(s)
	if err != nil {
		return nil, errors.Wrapf(err, "report %s", name)
	}
	s.log.Debug().Str("report", name).Int("rows", len(rows)).Dur("took", time.Since(start)).Msg("report done")
	return rows, nil
}

// Record returns the record at ordinal i.
func (s *Service) Record(i int) domain.Record { return s.table.At(i) }
