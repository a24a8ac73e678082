package service

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/legalaid/caseprogress/internal/db"
	"github.com/legalaid/caseprogress/internal/domain"
	"github.com/legalaid/caseprogress/internal/repository"
	"github.com/oklog/ulid/v2"
)

type recordService struct {
	records  repository.ServiceRecordRepo
	uow      db.UnitOfWork
	entropy  io.Reader
	observer UseCaseObserver
}

func NewRecordService(records repository.ServiceRecordRepo, uow db.UnitOfWork, observers ...UseCaseObserver) RecordService {
	return &recordService{
		records: records,
		uow:     uow,
		entropy: &ulid.LockedMonotonicReader{
			MonotonicReader: ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0),
		},
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *recordService) newID(at time.Time) string {
	return ulid.MustNew(ulid.Timestamp(at), s.entropy).String()
}

// LogRecord validates r, assigns its ID, and stores it with its dependency
// list in one transaction. The case must be open and every dependency must
// be a record of the same case.
func (s *recordService) LogRecord(ctx context.Context, r *domain.ServiceRecord) (err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{
		"case_id":      r.CaseID,
		"service_type": string(r.ServiceType),
	}
	defer func() { observeUseCase(ctx, s.observer, "log-record", startedAt, fields, err) }()

	if err = normalizeRecord(r, startedAt); err != nil {
		return err
	}
	if r.ID == "" {
		r.ID = s.newID(startedAt)
	}
	r.CreatedAt = startedAt.Truncate(time.Second)
	r.DependsOn = dedupeDeps(r.ID, r.DependsOn)
	fields["record_id"] = r.ID
	fields["status"] = string(r.Status)

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txCases := repository.NewSQLiteCaseRepo(tx)
		txRecords := repository.NewSQLiteServiceRecordRepo(tx)

		c, err := txCases.GetByID(ctx, r.CaseID)
		if err != nil {
			return err
		}
		if c.Status == domain.CaseClosed {
			return fmt.Errorf("logging on case %s: %w", c.DisplayID(), ErrCaseClosed)
		}

		for _, dep := range r.DependsOn {
			pred, err := txRecords.GetByID(ctx, dep)
			if err != nil {
				return fmt.Errorf("dependency %s: %w", dep, err)
			}
			if pred.CaseID != r.CaseID {
				return fmt.Errorf("dependency %s: %w", dep, ErrForeignDependency)
			}
		}

		return txRecords.Create(ctx, r)
	})
}

// normalizeRecord fills defaults and rejects records the engine would only
// skip later.
func normalizeRecord(r *domain.ServiceRecord, now time.Time) error {
	if r.CaseID == "" {
		return fmt.Errorf("%w: case ID is required", ErrInvalidRecord)
	}
	if !r.ServiceType.Valid() {
		return fmt.Errorf("%w: unknown service type %q", ErrInvalidRecord, r.ServiceType)
	}
	if r.StartTime.IsZero() {
		r.StartTime = now
	}
	r.StartTime = r.StartTime.UTC().Truncate(time.Second)
	if r.EndTime != nil {
		end := r.EndTime.UTC().Truncate(time.Second)
		r.EndTime = &end
	}
	if r.Status == "" {
		r.Status = domain.RecordInProgress
		if r.EndTime != nil {
			r.Status = domain.RecordCompleted
		}
	}
	if !domain.ValidRecordStatuses[r.Status] {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidRecord, r.Status)
	}
	if r.EndsBeforeStart() {
		return fmt.Errorf("%w: end time %s is before start time %s", ErrInvalidRecord,
			r.EndTime.Format(time.RFC3339), r.StartTime.Format(time.RFC3339))
	}
	return nil
}

// dedupeDeps drops repeats and self references, keeping first-seen order.
func dedupeDeps(self string, deps []string) []string {
	if len(deps) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(deps))
	out := make([]string, 0, len(deps))
	for _, d := range deps {
		if d == "" || d == self || seen[d] {
			continue
		}
		seen[d] = true
		out = append(out, d)
	}
	return out
}

func (s *recordService) Complete(ctx context.Context, id string, end time.Time) (rec *domain.ServiceRecord, err error) {
	startedAt := time.Now().UTC()
	defer func() {
		observeUseCase(ctx, s.observer, "complete-record", startedAt, map[string]any{"record_id": id}, err)
	}()

	end = end.UTC().Truncate(time.Second)
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txRecords := repository.NewSQLiteServiceRecordRepo(tx)
		r, err := txRecords.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if r.Status == domain.RecordCancelled {
			return fmt.Errorf("completing cancelled record %s: %w", id, ErrInvalidTransition)
		}
		if end.Before(r.StartTime) {
			return fmt.Errorf("%w: end time %s is before start time %s", ErrInvalidRecord,
				end.Format(time.RFC3339), r.StartTime.Format(time.RFC3339))
		}
		if err := txRecords.UpdateStatus(ctx, id, domain.RecordCompleted, &end); err != nil {
			return err
		}
		r.Status = domain.RecordCompleted
		r.EndTime = &end
		rec = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *recordService) Cancel(ctx context.Context, id string) (err error) {
	startedAt := time.Now().UTC()
	defer func() {
		observeUseCase(ctx, s.observer, "cancel-record", startedAt, map[string]any{"record_id": id}, err)
	}()

	r, err := s.records.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if r.Status == domain.RecordCompleted {
		return fmt.Errorf("cancelling completed record %s: %w", id, ErrInvalidTransition)
	}
	return s.records.UpdateStatus(ctx, id, domain.RecordCancelled, nil)
}

func (s *recordService) GetByID(ctx context.Context, id string) (*domain.ServiceRecord, error) {
	return s.records.GetByID(ctx, id)
}

func (s *recordService) ListByCase(ctx context.Context, caseID string) ([]domain.ServiceRecord, error) {
	return s.records.ListByCase(ctx, caseID)
}

func (s *recordService) Delete(ctx context.Context, id string) (err error) {
	startedAt := time.Now().UTC()
	defer func() {
		observeUseCase(ctx, s.observer, "delete-record", startedAt, map[string]any{"record_id": id}, err)
	}()
	return s.records.Delete(ctx, id)
}
