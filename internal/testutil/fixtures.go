package testutil

import (
	"crypto/rand"
	"time"

	"github.com/google/uuid"
	"github.com/legalaid/caseprogress/internal/domain"
	"github.com/oklog/ulid/v2"
)

// Case options
type CaseOption func(*domain.LegalCase)

func WithCategory(c domain.CaseCategory) CaseOption {
	return func(lc *domain.LegalCase) {
		lc.Category = c
	}
}

func WithClient(name string) CaseOption {
	return func(lc *domain.LegalCase) {
		lc.ClientName = name
	}
}

func WithOpenedAt(t time.Time) CaseOption {
	return func(lc *domain.LegalCase) {
		lc.OpenedAt = t
	}
}

func Closed(at time.Time) CaseOption {
	return func(lc *domain.LegalCase) {
		lc.Status = domain.CaseClosed
		lc.ClosedAt = &at
	}
}

func NewTestCase(title string, opts ...CaseOption) *domain.LegalCase {
	now := time.Now().UTC().Truncate(time.Second)
	c := &domain.LegalCase{
		ID:         uuid.New().String(),
		Title:      title,
		ClientName: "Test Client",
		Category:   domain.CategoryFamily,
		Status:     domain.CaseOpen,
		OpenedAt:   now.AddDate(0, 0, -14),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Record options
type RecordOption func(*domain.ServiceRecord)

func WithStatus(s domain.RecordStatus) RecordOption {
	return func(r *domain.ServiceRecord) {
		r.Status = s
		if s != domain.RecordCompleted {
			r.EndTime = nil
		}
	}
}

func WithStart(t time.Time) RecordOption {
	return func(r *domain.ServiceRecord) {
		r.StartTime = t
		if r.EndTime != nil {
			end := t.Add(time.Hour)
			r.EndTime = &end
		}
	}
}

func WithEnd(t time.Time) RecordOption {
	return func(r *domain.ServiceRecord) {
		r.EndTime = &t
	}
}

func WithDependsOn(ids ...string) RecordOption {
	return func(r *domain.ServiceRecord) {
		r.DependsOn = ids
	}
}

func WithNotes(n string) RecordOption {
	return func(r *domain.ServiceRecord) {
		r.Notes = n
	}
}

func WithRecordID(id string) RecordOption {
	return func(r *domain.ServiceRecord) {
		r.ID = id
	}
}

// NewTestRecord returns a completed one-hour record starting a week ago.
func NewTestRecord(caseID string, st domain.ServiceType, opts ...RecordOption) *domain.ServiceRecord {
	now := time.Now().UTC().Truncate(time.Second)
	start := now.AddDate(0, 0, -7)
	end := start.Add(time.Hour)
	r := &domain.ServiceRecord{
		ID:          ulid.MustNew(ulid.Timestamp(now), rand.Reader).String(),
		CaseID:      caseID,
		ServiceType: st,
		Status:      domain.RecordCompleted,
		StartTime:   start,
		EndTime:     &end,
		CreatedAt:   now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}
