package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/legalaid/caseprogress/internal/domain"
	"github.com/legalaid/caseprogress/internal/repository"
	"github.com/legalaid/caseprogress/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogRecord_AssignsIDAndDefaults(t *testing.T) {
	_, cases, records, uow := setupRepos(t)
	svc := NewRecordService(records, uow)
	ctx := context.Background()

	c := testutil.NewTestCase("Custody dispute")
	require.NoError(t, cases.Create(ctx, c))

	start := time.Date(2025, 1, 13, 10, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)
	done := &domain.ServiceRecord{CaseID: c.ID, ServiceType: domain.ServiceConsultation, StartTime: start, EndTime: &end}
	require.NoError(t, svc.LogRecord(ctx, done))
	assert.Len(t, done.ID, 26, "ULID")
	assert.Equal(t, domain.RecordCompleted, done.Status)

	open := &domain.ServiceRecord{CaseID: c.ID, ServiceType: domain.ServiceResearch, StartTime: start.Add(2 * time.Hour)}
	require.NoError(t, svc.LogRecord(ctx, open))
	assert.Equal(t, domain.RecordInProgress, open.Status)
	assert.Less(t, done.ID, open.ID, "IDs sort by creation")

	list, err := svc.ListByCase(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, done.ID, list[0].ID)
}

func TestLogRecord_RejectsInvalid(t *testing.T) {
	_, cases, records, uow := setupRepos(t)
	svc := NewRecordService(records, uow)
	ctx := context.Background()

	c := testutil.NewTestCase("Custody dispute")
	require.NoError(t, cases.Create(ctx, c))

	start := time.Date(2025, 1, 13, 10, 0, 0, 0, time.UTC)
	before := start.Add(-time.Hour)

	tests := []struct {
		name string
		rec  domain.ServiceRecord
	}{
		{"unknown service type", domain.ServiceRecord{CaseID: c.ID, ServiceType: "UNKNOWN_TYPE", StartTime: start}},
		{"unknown status", domain.ServiceRecord{CaseID: c.ID, ServiceType: domain.ServiceMediation, Status: "archived", StartTime: start}},
		{"end before start", domain.ServiceRecord{CaseID: c.ID, ServiceType: domain.ServiceMediation, StartTime: start, EndTime: &before}},
		{"missing case", domain.ServiceRecord{ServiceType: domain.ServiceMediation, StartTime: start}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := tt.rec
			assert.ErrorIs(t, svc.LogRecord(ctx, &rec), ErrInvalidRecord)
		})
	}

	list, err := svc.ListByCase(ctx, c.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestLogRecord_ClosedCase(t *testing.T) {
	_, cases, records, uow := setupRepos(t)
	svc := NewRecordService(records, uow)
	ctx := context.Background()

	c := testutil.NewTestCase("Old matter", testutil.Closed(time.Now().UTC()))
	require.NoError(t, cases.Create(ctx, c))

	err := svc.LogRecord(ctx, &domain.ServiceRecord{CaseID: c.ID, ServiceType: domain.ServiceConsultation})
	assert.ErrorIs(t, err, ErrCaseClosed)
}

func TestLogRecord_UnknownCase(t *testing.T) {
	_, _, records, uow := setupRepos(t)
	svc := NewRecordService(records, uow)

	err := svc.LogRecord(context.Background(), &domain.ServiceRecord{CaseID: "missing", ServiceType: domain.ServiceConsultation})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestLogRecord_Dependencies(t *testing.T) {
	_, cases, records, uow := setupRepos(t)
	svc := NewRecordService(records, uow)
	ctx := context.Background()

	mine := testutil.NewTestCase("Mine")
	other := testutil.NewTestCase("Other")
	require.NoError(t, cases.Create(ctx, mine))
	require.NoError(t, cases.Create(ctx, other))

	cons := testutil.NewTestRecord(mine.ID, domain.ServiceConsultation)
	foreign := testutil.NewTestRecord(other.ID, domain.ServiceConsultation)
	require.NoError(t, records.Create(ctx, cons))
	require.NoError(t, records.Create(ctx, foreign))

	med := &domain.ServiceRecord{
		CaseID:      mine.ID,
		ServiceType: domain.ServiceMediation,
		Status:      domain.RecordPending,
		DependsOn:   []string{cons.ID, cons.ID, ""},
	}
	require.NoError(t, svc.LogRecord(ctx, med))
	assert.Equal(t, []string{cons.ID}, med.DependsOn)

	stored, err := svc.GetByID(ctx, med.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{cons.ID}, stored.DependsOn)

	err = svc.LogRecord(ctx, &domain.ServiceRecord{
		CaseID: mine.ID, ServiceType: domain.ServiceMediation, DependsOn: []string{foreign.ID},
	})
	assert.ErrorIs(t, err, ErrForeignDependency)

	err = svc.LogRecord(ctx, &domain.ServiceRecord{
		CaseID: mine.ID, ServiceType: domain.ServiceMediation, DependsOn: []string{"no-such-record"},
	})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestLogRecord_RollsBackOnDependencyWriteFailure(t *testing.T) {
	database, cases, records, _ := setupRepos(t)
	ctx := context.Background()

	c := testutil.NewTestCase("Custody dispute")
	require.NoError(t, cases.Create(ctx, c))
	cons := testutil.NewTestRecord(c.ID, domain.ServiceConsultation)
	require.NoError(t, records.Create(ctx, cons))

	injected := errors.New("disk full")
	// Exec 1 inserts the record, exec 2 its dependency edge.
	uow := &testutil.FailOnNthExecUoW{DB: database, FailOn: 2, Err: injected}
	svc := NewRecordService(records, uow)

	doc := &domain.ServiceRecord{CaseID: c.ID, ServiceType: domain.ServiceDocumentPreparation, DependsOn: []string{cons.ID}}
	assert.ErrorIs(t, svc.LogRecord(ctx, doc), injected)
	assert.Contains(t, uow.Failed(), "record_dependencies")

	list, err := svc.ListByCase(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, list, 1, "the record insert must roll back with its dependency")
	assert.Equal(t, cons.ID, list[0].ID)
}

func TestCompleteAndCancel(t *testing.T) {
	_, cases, records, uow := setupRepos(t)
	obs := &recordingObserver{}
	svc := NewRecordService(records, uow, obs)
	ctx := context.Background()

	c := testutil.NewTestCase("Custody dispute")
	require.NoError(t, cases.Create(ctx, c))
	rec := testutil.NewTestRecord(c.ID, domain.ServiceMediation, testutil.WithStatus(domain.RecordInProgress))
	require.NoError(t, records.Create(ctx, rec))

	_, err := svc.Complete(ctx, rec.ID, rec.StartTime.Add(-time.Minute))
	assert.ErrorIs(t, err, ErrInvalidRecord)

	end := rec.StartTime.Add(90 * time.Minute)
	done, err := svc.Complete(ctx, rec.ID, end)
	require.NoError(t, err)
	assert.Equal(t, domain.RecordCompleted, done.Status)
	require.NotNil(t, done.EndTime)
	assert.True(t, end.Equal(*done.EndTime))

	assert.ErrorIs(t, svc.Cancel(ctx, rec.ID), ErrInvalidTransition)

	pending := testutil.NewTestRecord(c.ID, domain.ServiceCaseReview, testutil.WithStatus(domain.RecordPending))
	require.NoError(t, records.Create(ctx, pending))
	require.NoError(t, svc.Cancel(ctx, pending.ID))
	cancelled, err := svc.GetByID(ctx, pending.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RecordCancelled, cancelled.Status)

	_, err = svc.Complete(ctx, pending.ID, time.Now())
	assert.ErrorIs(t, err, ErrInvalidTransition)

	assert.Len(t, obs.named("complete-record"), 3)
	assert.Len(t, obs.named("cancel-record"), 2)
}

func TestDeleteRecord(t *testing.T) {
	_, cases, records, uow := setupRepos(t)
	svc := NewRecordService(records, uow)
	ctx := context.Background()

	c := testutil.NewTestCase("Custody dispute")
	require.NoError(t, cases.Create(ctx, c))
	rec := testutil.NewTestRecord(c.ID, domain.ServiceConsultation)
	require.NoError(t, records.Create(ctx, rec))

	require.NoError(t, svc.Delete(ctx, rec.ID))
	assert.ErrorIs(t, svc.Delete(ctx, rec.ID), repository.ErrNotFound)
}
