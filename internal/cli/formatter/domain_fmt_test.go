package formatter

import (
	"testing"
	"time"

	"github.com/legalaid/caseprogress/internal/app"
	"github.com/legalaid/caseprogress/internal/catalog"
	"github.com/legalaid/caseprogress/internal/domain"
	"github.com/legalaid/caseprogress/internal/engine"
	"github.com/legalaid/caseprogress/internal/progress"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var day0 = time.Date(2025, 1, 13, 10, 0, 0, 0, time.UTC)

func rec(id string, st domain.ServiceType, day int, deps ...string) domain.ServiceRecord {
	start := day0.AddDate(0, 0, day)
	end := start.Add(90 * time.Minute)
	return domain.ServiceRecord{
		ID:          id,
		CaseID:      "case-1",
		ServiceType: st,
		Status:      domain.RecordCompleted,
		StartTime:   start,
		EndTime:     &end,
		DependsOn:   deps,
	}
}

func TestFormatCaseList(t *testing.T) {
	cases := []*domain.LegalCase{
		{ID: "4f1c2b7a-0000", Title: "Smith custody", ClientName: "Ana Smith", Category: domain.CategoryFamily, Status: domain.CaseOpen, OpenedAt: day0},
		{ID: "9a8b7c6d-1111", Title: "Lease dispute", Category: domain.CategoryProperty, Status: domain.CaseClosed, OpenedAt: day0.AddDate(0, 0, -3)},
	}
	out := stripANSI(FormatCaseList(cases, day0))

	assert.Contains(t, out, "ID")
	assert.Contains(t, out, "4f1c2b7a")
	assert.NotContains(t, out, "4f1c2b7a-0000")
	assert.Contains(t, out, "Smith custody")
	assert.Contains(t, out, "Ana Smith")
	assert.Contains(t, out, "Family")
	assert.Contains(t, out, "● Open")
	assert.Contains(t, out, "✖ Closed")
	assert.Contains(t, out, "3d ago")
}

func TestFormatCaseList_Empty(t *testing.T) {
	assert.Contains(t, stripANSI(FormatCaseList(nil, day0)), "No cases found.")
}

func TestFormatCaseDetail(t *testing.T) {
	closed := day0.AddDate(0, 1, 0)
	c := &domain.LegalCase{ID: "case-1", Title: "Smith custody", Category: domain.CategoryFamily, Status: domain.CaseClosed, OpenedAt: day0, ClosedAt: &closed}
	out := stripANSI(FormatCaseDetail(c, []domain.ServiceRecord{
		rec("r1", domain.ServiceConsultation, 0),
		rec("r2", domain.ServiceDocumentPreparation, 2, "r1"),
	}))

	assert.Contains(t, out, "SMITH CUSTODY")
	assert.Contains(t, out, "Jan 13, 2025")
	assert.Contains(t, out, "Feb 13, 2025")
	assert.Contains(t, out, "Document Preparation")
	assert.Contains(t, out, "1h 30m")
	assert.Contains(t, out, "2025-01-15 10:00")
}

func TestFormatRecordList_OpenRecordHasNoDuration(t *testing.T) {
	r := rec("r1", domain.ServiceMediation, 0)
	r.Status = domain.RecordInProgress
	r.EndTime = nil
	out := stripANSI(FormatRecordList([]domain.ServiceRecord{r}))
	assert.Contains(t, out, "● In Progress")
	assert.NotContains(t, out, "1h 30m")
	assert.Contains(t, stripANSI(FormatRecordList(nil)), "No service records logged.")
}

func TestFormatTimeline_BranchesAndMergePoints(t *testing.T) {
	res, err := engine.New(catalog.Default()).ComputeCaseProgress(domain.CategoryFamily, []domain.ServiceRecord{
		rec("res-1", domain.ServiceResearch, 0),
		rec("res-2", domain.ServiceResearch, 1, "res-1"),
		rec("cons", domain.ServiceConsultation, 3, "res-2"),
	})
	require.NoError(t, err)

	out := stripANSI(FormatTimeline(res.Timeline))
	assert.Contains(t, out, "Critical Path")
	assert.Contains(t, out, "branch-research")
	assert.Contains(t, out, "RESEARCH")
	assert.Contains(t, out, "✔ Consultation")
	assert.Contains(t, out, "after Research")
	assert.Contains(t, out, "MERGE POINTS")
	assert.Contains(t, out, "← branch-research")
}

func TestFormatTimeline_EmptyMainBranch(t *testing.T) {
	res, err := engine.New(catalog.Default()).ComputeCaseProgress(domain.CategoryFamily, nil)
	require.NoError(t, err)

	out := stripANSI(FormatTimeline(res.Timeline))
	assert.Contains(t, out, "no events yet")
	assert.NotContains(t, out, "MERGE POINTS")
}

func TestFormatCaseProgress(t *testing.T) {
	view := &app.CaseProgressView{
		CaseID:     "4f1c2b7a-0000",
		CaseTitle:  "Smith custody",
		ClientName: "Ana Smith",
		Category:   domain.CategoryFamily,
		CaseStatus: domain.CaseOpen,
		Progress:   progress.Result{TotalProgress: 64},
		Services: []app.ServiceLine{
			{ServiceType: domain.ServiceConsultation, Label: "Consultation", Required: true, Completed: true, Weight: 15},
			{ServiceType: domain.ServiceMediation, Label: "Mediation", Required: true, Weight: 20},
			{ServiceType: domain.ServiceResearch, Label: "Research", Weight: 10},
		},
		RecordCount: 3,
		Skipped:     []domain.ServiceType{"UNKNOWN_TYPE"},
		Diagnostics: []progress.Diagnostic{
			{RecordID: "x", ServiceType: "UNKNOWN_TYPE", Reason: progress.ReasonUnknownServiceType},
			{RecordID: "y", ServiceType: domain.ServiceCourtAppearance, Reason: progress.ReasonOutsideCatalog},
		},
	}
	out := stripANSI(FormatCaseProgress(view))

	assert.Contains(t, out, "SMITH CUSTODY")
	assert.Contains(t, out, "Ana Smith")
	assert.Contains(t, out, " 64%")
	assert.Contains(t, out, "✔ done")
	assert.Contains(t, out, "○ remaining")
	assert.Contains(t, out, "optional")
	assert.Contains(t, out, "Skipped 1 record(s): UNKNOWN_TYPE")
	assert.Contains(t, out, "1 record(s) use services outside")
	assert.NotContains(t, out, "Ready for review")
}

func TestFormatCaseProgress_ReadyBanner(t *testing.T) {
	view := &app.CaseProgressView{
		CaseID:         "case-1",
		CaseTitle:      "Done case",
		Category:       domain.CategoryOther,
		CaseStatus:     domain.CaseOpen,
		Progress:       progress.Result{TotalProgress: 100},
		ReadyForReview: true,
	}
	out := stripANSI(FormatCaseProgress(view))
	assert.Contains(t, out, "Ready for review")
	assert.Contains(t, out, "100%")
}

func TestFormatCatalog(t *testing.T) {
	out := stripANSI(FormatCatalog(catalog.Default()))
	assert.Contains(t, out, "CATEGORY")
	assert.Contains(t, out, "Family")
	assert.Contains(t, out, "Constitutional")
	assert.Contains(t, out, "Consultation, Document Preparation, Mediation")
}

func TestFormatCatalogEntry(t *testing.T) {
	out, err := FormatCatalogEntry(catalog.Default(), domain.CategoryFamily)
	require.NoError(t, err)
	out = stripANSI(out)
	assert.Contains(t, out, "FAMILY")
	// Consultation is 15 of the 55 required weight.
	assert.Contains(t, out, "27%")
	assert.Contains(t, out, "Client Meeting")

	_, err = FormatCatalogEntry(catalog.Default(), "MARITIME")
	assert.ErrorIs(t, err, catalog.ErrUnknownCategory)
}
