package service

import (
	"context"
	"fmt"
	"time"

	"github.com/legalaid/caseprogress/internal/db"
	"github.com/legalaid/caseprogress/internal/importer"
	"github.com/legalaid/caseprogress/internal/repository"
)

type importService struct {
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewImportService(uow db.UnitOfWork, observers ...UseCaseObserver) ImportService {
	return &importService{uow: uow, observer: useCaseObserverOrNoop(observers)}
}

func (s *importService) ImportCase(ctx context.Context, filePath string) (*ImportResult, error) {
	schema, err := importer.LoadImportSchema(filePath)
	if err != nil {
		return nil, fmt.Errorf("loading import file: %w", err)
	}
	return s.ImportCaseFromSchema(ctx, schema)
}

// ImportCaseFromSchema stores the case and all of its records in one
// transaction; a failure leaves nothing behind.
func (s *importService) ImportCaseFromSchema(ctx context.Context, schema *importer.ImportSchema) (res *ImportResult, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"records": len(schema.Records)}
	defer func() { observeUseCase(ctx, s.observer, "import-case", startedAt, fields, err) }()

	if errs := importer.ValidateImportSchema(schema); len(errs) > 0 {
		return nil, formatValidationErrors(errs)
	}

	generated, err := importer.Convert(schema)
	if err != nil {
		return nil, fmt.Errorf("converting import schema: %w", err)
	}
	fields["case_id"] = generated.Case.ID

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if err := repository.NewSQLiteCaseRepo(tx).Create(ctx, generated.Case); err != nil {
			return fmt.Errorf("creating case: %w", err)
		}
		records := repository.NewSQLiteServiceRecordRepo(tx)
		for _, r := range generated.Records {
			if err := records.Create(ctx, r); err != nil {
				return fmt.Errorf("creating %s record %s: %w", r.ServiceType, r.ID, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &ImportResult{
		Case:            generated.Case,
		RecordCount:     len(generated.Records),
		DependencyCount: generated.DependencyCount(),
	}, nil
}

func formatValidationErrors(errs []error) error {
	msg := fmt.Sprintf("import validation failed (%d errors):", len(errs))
	for _, e := range errs {
		msg += "\n  - " + e.Error()
	}
	return fmt.Errorf("%w: %s", ErrInvalidImport, msg)
}
