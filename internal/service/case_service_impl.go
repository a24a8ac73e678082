package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/legalaid/caseprogress/internal/domain"
	"github.com/legalaid/caseprogress/internal/repository"
)

// minCaseRefLen is the shortest prefix Resolve will match against.
const minCaseRefLen = 4

type caseService struct {
	cases    repository.CaseRepo
	observer UseCaseObserver
}

func NewCaseService(cases repository.CaseRepo, observers ...UseCaseObserver) CaseService {
	return &caseService{cases: cases, observer: useCaseObserverOrNoop(observers)}
}

func (s *caseService) Create(ctx context.Context, c *domain.LegalCase) (err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"category": string(c.Category)}
	defer func() { observeUseCase(ctx, s.observer, "create-case", startedAt, fields, err) }()

	if err = c.Validate(); err != nil {
		return err
	}
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	now := time.Now().UTC().Truncate(time.Second)
	c.CreatedAt = now
	c.UpdatedAt = now
	if c.OpenedAt.IsZero() {
		c.OpenedAt = now
	}
	if c.Status == "" {
		c.Status = domain.CaseOpen
	}
	fields["case_id"] = c.ID
	return s.cases.Create(ctx, c)
}

func (s *caseService) GetByID(ctx context.Context, id string) (*domain.LegalCase, error) {
	return s.cases.GetByID(ctx, id)
}

func (s *caseService) Resolve(ctx context.Context, ref string) (*domain.LegalCase, error) {
	ref = strings.TrimSpace(ref)
	c, err := s.cases.GetByID(ctx, ref)
	if err == nil || len(ref) < minCaseRefLen || !errors.Is(err, repository.ErrNotFound) {
		return c, err
	}

	all, listErr := s.cases.List(ctx, true)
	if listErr != nil {
		return nil, listErr
	}
	var match *domain.LegalCase
	for _, candidate := range all {
		if !strings.HasPrefix(candidate.ID, strings.ToLower(ref)) {
			continue
		}
		if match != nil {
			return nil, fmt.Errorf("%q: %w", ref, ErrAmbiguousCaseRef)
		}
		match = candidate
	}
	if match == nil {
		return nil, err
	}
	return match, nil
}

func (s *caseService) List(ctx context.Context, includeClosed bool) ([]*domain.LegalCase, error) {
	return s.cases.List(ctx, includeClosed)
}

func (s *caseService) Close(ctx context.Context, id string) (err error) {
	startedAt := time.Now().UTC()
	defer func() {
		observeUseCase(ctx, s.observer, "close-case", startedAt, map[string]any{"case_id": id}, err)
	}()

	c, err := s.cases.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if c.Status == domain.CaseClosed {
		return nil
	}
	now := time.Now().UTC().Truncate(time.Second)
	c.Status = domain.CaseClosed
	c.ClosedAt = &now
	c.UpdatedAt = now
	return s.cases.Update(ctx, c)
}

func (s *caseService) Reopen(ctx context.Context, id string) (err error) {
	startedAt := time.Now().UTC()
	defer func() {
		observeUseCase(ctx, s.observer, "reopen-case", startedAt, map[string]any{"case_id": id}, err)
	}()

	c, err := s.cases.GetByID(ctx, id)
	if err != nil {
		return err
	}
	c.Status = domain.CaseOpen
	c.ClosedAt = nil
	c.UpdatedAt = time.Now().UTC().Truncate(time.Second)
	return s.cases.Update(ctx, c)
}

func (s *caseService) Delete(ctx context.Context, id string) (err error) {
	startedAt := time.Now().UTC()
	defer func() {
		observeUseCase(ctx, s.observer, "delete-case", startedAt, map[string]any{"case_id": id}, err)
	}()
	return s.cases.Delete(ctx, id)
}
