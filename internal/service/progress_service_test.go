package service

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/legalaid/caseprogress/internal/app"
	"github.com/legalaid/caseprogress/internal/catalog"
	"github.com/legalaid/caseprogress/internal/domain"
	"github.com/legalaid/caseprogress/internal/engine"
	"github.com/legalaid/caseprogress/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingNotifier struct {
	calls []string
	err   error
}

func (n *countingNotifier) CaseReadyForReview(_ context.Context, view *app.CaseProgressView) error {
	n.calls = append(n.calls, view.CaseID)
	return n.err
}

func seedFamilyCase(t *testing.T, types ...domain.ServiceType) (ProgressService, *countingNotifier, *recordingObserver, *domain.LegalCase) {
	t.Helper()
	_, cases, records, _ := setupRepos(t)
	ctx := context.Background()

	c := testutil.NewTestCase("Custody dispute", testutil.WithCategory(domain.CategoryFamily))
	require.NoError(t, cases.Create(ctx, c))

	base := time.Date(2025, 1, 13, 10, 0, 0, 0, time.UTC)
	for i, st := range types {
		r := testutil.NewTestRecord(c.ID, st, testutil.WithStart(base.AddDate(0, 0, i)))
		require.NoError(t, records.Create(ctx, r))
	}

	notifier := &countingNotifier{}
	obs := &recordingObserver{}
	svc := NewProgressService(cases, records, engine.New(catalog.Default()), notifier, obs)
	return svc, notifier, obs, c
}

func TestGetCaseProgress_PartialCase(t *testing.T) {
	svc, notifier, obs, c := seedFamilyCase(t, domain.ServiceConsultation, domain.ServiceDocumentPreparation)

	view, err := svc.GetCaseProgress(context.Background(), app.NewProgressRequest(c.ID))
	require.NoError(t, err)

	assert.Equal(t, c.ID, view.CaseID)
	assert.Equal(t, 2, view.RecordCount)
	assert.Equal(t, 64, view.Progress.TotalProgress)
	assert.Equal(t, []domain.ServiceType{domain.ServiceMediation}, view.Progress.RemainingServices)
	assert.False(t, view.ReadyForReview)
	assert.Empty(t, notifier.calls)

	require.Len(t, view.Services, 6)
	assert.Equal(t, app.ServiceLine{
		ServiceType: domain.ServiceConsultation,
		Label:       "Consultation",
		Required:    true,
		Completed:   true,
		Weight:      15,
	}, view.Services[0])
	assert.False(t, view.Services[2].Completed, "mediation still open")
	assert.False(t, view.Services[3].Required)

	events := obs.named("case-progress")
	require.Len(t, events, 1)
	assert.True(t, events[0].Success)
	assert.Equal(t, 64, events[0].Fields["total_progress"])
}

func TestGetCaseProgress_ReadyForReviewNotifiesOncePerCall(t *testing.T) {
	svc, notifier, _, c := seedFamilyCase(t,
		domain.ServiceConsultation, domain.ServiceDocumentPreparation, domain.ServiceMediation)
	ctx := context.Background()

	view, err := svc.GetCaseProgress(ctx, app.NewProgressRequest(c.ID))
	require.NoError(t, err)
	assert.Equal(t, 100, view.Progress.TotalProgress)
	assert.True(t, view.ReadyForReview)
	assert.Equal(t, []string{c.ID}, notifier.calls)

	_, err = svc.GetCaseProgress(ctx, app.NewProgressRequest(c.ID))
	require.NoError(t, err)
	assert.Len(t, notifier.calls, 2)
}

func TestGetCaseProgress_NotifierFailureDoesNotFailQuery(t *testing.T) {
	svc, notifier, obs, c := seedFamilyCase(t,
		domain.ServiceConsultation, domain.ServiceDocumentPreparation, domain.ServiceMediation)
	notifier.err = errors.New("mail relay down")

	view, err := svc.GetCaseProgress(context.Background(), app.NewProgressRequest(c.ID))
	require.NoError(t, err)
	assert.True(t, view.ReadyForReview)

	events := obs.named("case-progress")
	require.Len(t, events, 1)
	assert.Equal(t, "mail relay down", events[0].Fields["notify_error"])
}

func TestGetCaseProgress_Errors(t *testing.T) {
	svc, _, obs, _ := seedFamilyCase(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		caseID string
		code   app.ProgressErrorCode
	}{
		{"empty id", "  ", app.ProgressErrInvalidCaseID},
		{"unknown case", "missing", app.ProgressErrCaseNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.GetCaseProgress(ctx, app.NewProgressRequest(tt.caseID))
			var perr *app.ProgressError
			require.ErrorAs(t, err, &perr)
			assert.Equal(t, tt.code, perr.Code)
		})
	}

	for _, e := range obs.named("case-progress") {
		assert.False(t, e.Success)
	}
}

func TestGetCaseProgress_EmptyCase(t *testing.T) {
	svc, _, _, c := seedFamilyCase(t)
	now := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	req := app.NewProgressRequest(c.ID)
	req.Now = &now

	view, err := svc.GetCaseProgress(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 0, view.Progress.TotalProgress)
	assert.Equal(t, now, view.GeneratedAt)
	assert.Empty(t, view.Timeline.MainBranch.Events)
	assert.Len(t, view.Progress.RemainingServices, 3)
}

func TestLogReviewNotifier(t *testing.T) {
	var buf bytes.Buffer
	n := NewLogReviewNotifier(slog.New(slog.NewTextHandler(&buf, nil)))

	err := n.CaseReadyForReview(context.Background(), &app.CaseProgressView{
		CaseID:   "case-1",
		Category: domain.CategoryFamily,
	})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "case ready for review")
	assert.Contains(t, buf.String(), "case_id=case-1")
}

func TestGetCaseProgress_WrapsStoreErrors(t *testing.T) {
	database, cases, records, _ := setupRepos(t)
	ctx := context.Background()
	c := testutil.NewTestCase("Custody dispute")
	require.NoError(t, cases.Create(ctx, c))

	svc := NewProgressService(cases, records, engine.New(catalog.Default()), nil)
	require.NoError(t, database.Close())

	_, err := svc.GetCaseProgress(ctx, app.NewProgressRequest(c.ID))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading case: ")
	var perr *app.ProgressError
	assert.False(t, errors.As(err, &perr), "a store failure is not a request error")
}
