package app

import (
	"context"
	"time"

	"github.com/legalaid/caseprogress/internal/domain"
)

type CaseProgressUseCase interface {
	GetCaseProgress(ctx context.Context, req ProgressRequest) (*CaseProgressView, error)
}

type LogRecordUseCase interface {
	LogRecord(ctx context.Context, r *domain.ServiceRecord) error
}

type CompleteRecordUseCase interface {
	Complete(ctx context.Context, id string, end time.Time) (*domain.ServiceRecord, error)
}

// ReviewNotifier is told when a progress computation finds a case with no
// required service remaining. Delivery is up to the implementation.
type ReviewNotifier interface {
	CaseReadyForReview(ctx context.Context, view *CaseProgressView) error
}
