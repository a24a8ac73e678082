package repository

import (
	"context"
	"time"

	"github.com/legalaid/caseprogress/internal/domain"
)

type CaseRepo interface {
	Create(ctx context.Context, c *domain.LegalCase) error
	GetByID(ctx context.Context, id string) (*domain.LegalCase, error)
	List(ctx context.Context, includeClosed bool) ([]*domain.LegalCase, error)
	Update(ctx context.Context, c *domain.LegalCase) error
	Delete(ctx context.Context, id string) error
}

// ServiceRecordRepo stores service records together with the record IDs
// each one depends on.
type ServiceRecordRepo interface {
	Create(ctx context.Context, r *domain.ServiceRecord) error
	GetByID(ctx context.Context, id string) (*domain.ServiceRecord, error)
	ListByCase(ctx context.Context, caseID string) ([]domain.ServiceRecord, error)
	UpdateStatus(ctx context.Context, id string, status domain.RecordStatus, end *time.Time) error
	Delete(ctx context.Context, id string) error
}
