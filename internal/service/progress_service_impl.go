package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/legalaid/caseprogress/internal/app"
	"github.com/legalaid/caseprogress/internal/catalog"
	"github.com/legalaid/caseprogress/internal/domain"
	"github.com/legalaid/caseprogress/internal/engine"
	"github.com/legalaid/caseprogress/internal/repository"
)

// ProgressEngine is the part of *engine.Engine the progress service needs.
type ProgressEngine interface {
	Catalog() *catalog.Catalog
	ComputeCaseProgress(category domain.CaseCategory, records []domain.ServiceRecord) (*engine.Result, error)
}

type progressService struct {
	cases    repository.CaseRepo
	records  repository.ServiceRecordRepo
	engine   ProgressEngine
	notifier app.ReviewNotifier
	observer UseCaseObserver
}

// NewProgressService wires the engine to stored cases. notifier may be nil.
func NewProgressService(
	cases repository.CaseRepo,
	records repository.ServiceRecordRepo,
	eng ProgressEngine,
	notifier app.ReviewNotifier,
	observers ...UseCaseObserver,
) ProgressService {
	return &progressService{
		cases:    cases,
		records:  records,
		engine:   eng,
		notifier: notifier,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *progressService) GetCaseProgress(ctx context.Context, req app.ProgressRequest) (view *app.CaseProgressView, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"case_id": req.CaseID}
	defer func() { observeUseCase(ctx, s.observer, "case-progress", startedAt, fields, err) }()

	if strings.TrimSpace(req.CaseID) == "" {
		return nil, &app.ProgressError{Code: app.ProgressErrInvalidCaseID, Message: "case ID is required"}
	}

	c, err := s.cases.GetByID(ctx, req.CaseID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, &app.ProgressError{Code: app.ProgressErrCaseNotFound, Message: err.Error()}
		}
		return nil, fmt.Errorf("loading case: %w", err)
	}

	records, err := s.records.ListByCase(ctx, c.ID)
	if err != nil {
		return nil, fmt.Errorf("loading service records: %w", err)
	}

	res, err := s.engine.ComputeCaseProgress(c.Category, records)
	if err != nil {
		if errors.Is(err, catalog.ErrUnknownCategory) {
			return nil, &app.ProgressError{Code: app.ProgressErrUnknownCategory, Message: err.Error()}
		}
		return nil, err
	}

	now := startedAt
	if req.Now != nil {
		now = *req.Now
	}
	view = &app.CaseProgressView{
		CaseID:         c.ID,
		CaseTitle:      c.Title,
		ClientName:     c.ClientName,
		Category:       c.Category,
		CaseStatus:     c.Status,
		GeneratedAt:    now,
		RecordCount:    len(records),
		Progress:       res.Progress,
		Services:       serviceLines(s.engine.Catalog(), c.Category, res),
		Timeline:       res.Timeline,
		Skipped:        res.Skipped,
		Diagnostics:    res.Diagnostics,
		ReadyForReview: res.ReadyForReview(),
	}
	fields["total_progress"] = res.Progress.TotalProgress
	fields["skipped"] = len(res.Skipped)

	if view.ReadyForReview && s.notifier != nil {
		if notifyErr := s.notifier.CaseReadyForReview(ctx, view); notifyErr != nil {
			fields["notify_error"] = notifyErr.Error()
		} else {
			fields["review_notified"] = true
		}
	}
	return view, nil
}

// serviceLines lists the category's catalog services, required first, with
// completion taken from the engine result.
func serviceLines(cat *catalog.Catalog, category domain.CaseCategory, res *engine.Result) []app.ServiceLine {
	entry, err := cat.RequiredAndOptional(category)
	if err != nil {
		return []app.ServiceLine{}
	}
	done := make(map[domain.ServiceType]bool)
	for _, st := range res.Progress.CompletedServices {
		done[st] = true
	}
	for _, st := range res.Progress.OptionalServicesCompleted {
		done[st] = true
	}

	lines := make([]app.ServiceLine, 0, len(entry.Required)+len(entry.Optional))
	add := func(st domain.ServiceType, required bool) {
		lines = append(lines, app.ServiceLine{
			ServiceType: st,
			Label:       st.Label(),
			Required:    required,
			Completed:   done[st],
			Weight:      cat.WeightOf(st),
		})
	}
	for _, st := range entry.Required {
		add(st, true)
	}
	for _, st := range entry.Optional {
		add(st, false)
	}
	return lines
}
