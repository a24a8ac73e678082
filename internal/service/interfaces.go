package service

import (
	"context"
	"errors"

	"github.com/legalaid/caseprogress/internal/app"
	"github.com/legalaid/caseprogress/internal/domain"
	"github.com/legalaid/caseprogress/internal/importer"
)

var (
	ErrCaseClosed        = errors.New("case is closed")
	ErrAmbiguousCaseRef  = errors.New("case reference matches more than one case")
	ErrInvalidRecord     = errors.New("invalid service record")
	ErrForeignDependency = errors.New("dependency belongs to another case")
	ErrInvalidTransition = errors.New("invalid record status transition")
	ErrInvalidImport     = errors.New("invalid import file")
)

type CaseService interface {
	Create(ctx context.Context, c *domain.LegalCase) error
	GetByID(ctx context.Context, id string) (*domain.LegalCase, error)
	// Resolve accepts a full case ID or a unique prefix of one.
	Resolve(ctx context.Context, ref string) (*domain.LegalCase, error)
	List(ctx context.Context, includeClosed bool) ([]*domain.LegalCase, error)
	Close(ctx context.Context, id string) error
	Reopen(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

type RecordService interface {
	app.LogRecordUseCase
	app.CompleteRecordUseCase
	Cancel(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.ServiceRecord, error)
	ListByCase(ctx context.Context, caseID string) ([]domain.ServiceRecord, error)
	Delete(ctx context.Context, id string) error
}

type ProgressService interface {
	app.CaseProgressUseCase
}

// ImportResult summarizes a completed case import.
type ImportResult struct {
	Case            *domain.LegalCase
	RecordCount     int
	DependencyCount int
}

type ImportService interface {
	ImportCase(ctx context.Context, filePath string) (*ImportResult, error)
	ImportCaseFromSchema(ctx context.Context, schema *importer.ImportSchema) (*ImportResult, error)
}
