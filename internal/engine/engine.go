// Package engine is the single entry point to case progress scoring and
// timeline synthesis. It runs both over one snapshot of a case's records.
package engine

import (
	"context"
	"io"
	"log/slog"

	"github.com/legalaid/caseprogress/internal/catalog"
	"github.com/legalaid/caseprogress/internal/domain"
	"github.com/legalaid/caseprogress/internal/progress"
	"github.com/legalaid/caseprogress/internal/timeline"
)

// Result combines the progress classification and the timeline built from it.
type Result struct {
	Progress progress.Result      `json:"progress"`
	Timeline timeline.Traffic     `json:"timeline"`
	Skipped  []domain.ServiceType `json:"skipped"`

	// Diagnostics explains every record left out, including records whose
	// type the category does not use (which are not in Skipped).
	Diagnostics []progress.Diagnostic `json:"diagnostics"`
}

// ReadyForReview reports the "case ready for review" trigger: no required
// service remains.
func (r *Result) ReadyForReview() bool {
	return r.Progress.ReadyForReview()
}

// Engine is stateless apart from its injected catalog and logger and is safe
// for concurrent use.
type Engine struct {
	catalog *catalog.Catalog
	logger  *slog.Logger
}

type Option func(*Engine)

// WithLogger routes diagnostics about dropped records to logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// New returns an Engine scoring against cat.
func New(cat *catalog.Catalog, opts ...Option) *Engine {
	e := &Engine{
		catalog: cat,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Catalog returns the catalog the engine scores against.
func (e *Engine) Catalog() *catalog.Catalog {
	return e.catalog
}

// ComputeCaseProgress scores records for a case of the given category and
// builds its timeline. Only an unknown category fails the call; malformed
// records are reported in Skipped.
func (e *Engine) ComputeCaseProgress(category domain.CaseCategory, records []domain.ServiceRecord) (*Result, error) {
	outcome, err := progress.Calculate(e.catalog, category, records)
	if err != nil {
		e.logger.Error("case progress failed", "category", string(category), "error", err)
		return nil, err
	}

	traffic, err := timeline.Synthesize(e.catalog, category, records, outcome.Result)
	if err != nil {
		return nil, err
	}

	for _, d := range outcome.Diagnostics {
		level := slog.LevelWarn
		if !d.Malformed() {
			level = slog.LevelInfo
		}
		e.logger.Log(context.Background(), level, "service record dropped",
			"record_id", d.RecordID,
			"service_type", string(d.ServiceType),
			"reason", string(d.Reason),
			"category", string(category),
		)
	}

	return &Result{
		Progress:    outcome.Result,
		Timeline:    traffic,
		Skipped:     outcome.Skipped,
		Diagnostics: outcome.Diagnostics,
	}, nil
}
