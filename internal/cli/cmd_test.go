package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/legalaid/caseprogress/internal/catalog"
	"github.com/legalaid/caseprogress/internal/domain"
	"github.com/legalaid/caseprogress/internal/engine"
	"github.com/legalaid/caseprogress/internal/repository"
	"github.com/legalaid/caseprogress/internal/service"
	"github.com/legalaid/caseprogress/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testApp wires a full App backed by an in-memory DB for CLI integration tests.
func testApp(t *testing.T) *App {
	t.Helper()
	db := testutil.NewTestDB(t)

	caseRepo := repository.NewSQLiteCaseRepo(db)
	recordRepo := repository.NewSQLiteServiceRecordRepo(db)
	uow := testutil.NewTestUoW(db)
	cat := catalog.Default()

	return &App{
		Cases:    service.NewCaseService(caseRepo),
		Records:  service.NewRecordService(recordRepo, uow),
		Progress: service.NewProgressService(caseRepo, recordRepo, engine.New(cat), nil),
		Import:   service.NewImportService(uow),
		Catalog:  cat,
	}
}

// seedCase stores a FAMILY case and returns it.
func seedCase(t *testing.T, app *App, title string) *domain.LegalCase {
	t.Helper()
	c := testutil.NewTestCase(title, testutil.WithClient("Ana Smith"))
	require.NoError(t, app.Cases.Create(context.Background(), c))
	return c
}

// executeCmd runs a cobra command and captures stdout/stderr.
func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func logRecords(t *testing.T, app *App, caseRef string) {
	t.Helper()
	_, err := executeCmd(t, app, "record", "log", "--case", caseRef, "--type", "consultation",
		"--start", "2025-01-13 10:00", "--end", "2025-01-13 11:30")
	require.NoError(t, err)
	_, err = executeCmd(t, app, "record", "log", "--case", caseRef, "--type", "document-preparation",
		"--start", "2025-01-15 10:00", "--end", "2025-01-15 12:00", "--notes", "Petition drafted")
	require.NoError(t, err)
}

// --- case ---

func TestCaseNew_FromFlags(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "case", "new", "--title", "Smith custody", "--client", "Ana Smith", "--category", "family")
	require.NoError(t, err)
	assert.Contains(t, out, "Created case Smith custody [")

	cases, err := app.Cases.List(context.Background(), false)
	require.NoError(t, err)
	require.Len(t, cases, 1)
	assert.Equal(t, domain.CategoryFamily, cases[0].Category)
	assert.Equal(t, "Ana Smith", cases[0].ClientName)
	assert.Equal(t, domain.CaseOpen, cases[0].Status)
}

func TestCaseNew_MissingTitleWithoutTerminal(t *testing.T) {
	app := testApp(t)
	_, err := executeCmd(t, app, "case", "new", "--category", "civil")
	assert.EqualError(t, err, "--title is required")
}

func TestCaseNew_RejectsUnknownCategory(t *testing.T) {
	app := testApp(t)
	_, err := executeCmd(t, app, "case", "new", "--title", "X", "--category", "maritime")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown category")
}

func TestCaseNew_OpenedDate(t *testing.T) {
	app := testApp(t)
	_, err := executeCmd(t, app, "case", "new", "--title", "Lease", "--category", "PROPERTY", "--opened", "2025-01-02T09:00:00Z")
	require.NoError(t, err)

	cases, err := app.Cases.List(context.Background(), false)
	require.NoError(t, err)
	require.Len(t, cases, 1)
	assert.Equal(t, "2025-01-02T09:00:00Z", cases[0].OpenedAt.UTC().Format("2006-01-02T15:04:05Z07:00"))
}

func TestCaseList_HidesClosedUnlessAll(t *testing.T) {
	app := testApp(t)
	seedCase(t, app, "Open matter")
	closed := seedCase(t, app, "Finished matter")

	_, err := executeCmd(t, app, "case", "close", closed.ID)
	require.NoError(t, err)

	out, err := executeCmd(t, app, "case", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Open matter")
	assert.NotContains(t, out, "Finished matter")

	out, err = executeCmd(t, app, "case", "list", "--all")
	require.NoError(t, err)
	assert.Contains(t, out, "Finished matter")
}

func TestCaseShow_ByPrefix(t *testing.T) {
	app := testApp(t)
	c := seedCase(t, app, "Smith custody")
	logRecords(t, app, c.ID)

	out, err := executeCmd(t, app, "case", "show", c.ID[:8])
	require.NoError(t, err)
	assert.Contains(t, out, "SMITH CUSTODY")
	assert.Contains(t, out, "Consultation")
	assert.Contains(t, out, "Document Preparation")
}

func TestCaseCloseAndReopen(t *testing.T) {
	app := testApp(t)
	c := seedCase(t, app, "Smith custody")
	ctx := context.Background()

	out, err := executeCmd(t, app, "case", "close", c.ID)
	require.NoError(t, err)
	assert.Contains(t, out, "Closed case Smith custody")

	_, err = executeCmd(t, app, "record", "log", "--case", c.ID, "--type", "mediation")
	assert.ErrorIs(t, err, service.ErrCaseClosed)

	out, err = executeCmd(t, app, "case", "reopen", c.ID)
	require.NoError(t, err)
	assert.Contains(t, out, "Reopened case")

	got, err := app.Cases.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.CaseOpen, got.Status)
	assert.Nil(t, got.ClosedAt)
}

func TestCaseRemove_NeedsForceWithoutTerminal(t *testing.T) {
	app := testApp(t)
	c := seedCase(t, app, "Smith custody")

	_, err := executeCmd(t, app, "case", "rm", c.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "without --force")

	out, err := executeCmd(t, app, "case", "rm", "--force", c.ID)
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted case Smith custody")

	_, err = app.Cases.GetByID(context.Background(), c.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestCaseShow_UnknownCase(t *testing.T) {
	app := testApp(t)
	_, err := executeCmd(t, app, "case", "show", "does-not-exist")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestCaseImport(t *testing.T) {
	app := testApp(t)
	path := filepath.Join(t.TempDir(), "case.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
  "case": {"title": "Imported custody", "category": "family"},
  "records": [
    {"ref": "intake", "service_type": "consultation", "start": "2025-01-13 10:00", "end": "2025-01-13 11:30"},
    {"ref": "petition", "service_type": "document-preparation", "start": "2025-01-15 10:00", "end": "2025-01-15 12:00", "depends_on": ["intake"]}
  ]
}`), 0o644))

	out, err := executeCmd(t, app, "case", "import", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported case Imported custody")
	assert.Contains(t, out, "2 records, 1 dependencies")

	out, err = executeCmd(t, app, "case", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Imported custody")
}

func TestCaseImport_InvalidFile(t *testing.T) {
	app := testApp(t)
	path := filepath.Join(t.TempDir(), "case.yaml")
	require.NoError(t, os.WriteFile(path, []byte("case:\n  title: \"\"\n"), 0o644))

	_, err := executeCmd(t, app, "case", "import", path)
	assert.ErrorIs(t, err, service.ErrInvalidImport)
}

// --- record ---

func TestRecordLog_RequiresType(t *testing.T) {
	app := testApp(t)
	c := seedCase(t, app, "Smith custody")

	_, err := executeCmd(t, app, "record", "log", "--case", c.ID)
	assert.EqualError(t, err, "--type is required")
}

func TestRecordLog_RejectsEndBeforeStart(t *testing.T) {
	app := testApp(t)
	c := seedCase(t, app, "Smith custody")

	_, err := executeCmd(t, app, "record", "log", "--case", c.ID, "--type", "consultation",
		"--start", "2025-01-13 10:00", "--end", "2025-01-13 09:00")
	assert.ErrorIs(t, err, service.ErrInvalidRecord)
}

func TestRecordLog_DependsOn(t *testing.T) {
	app := testApp(t)
	ctx := context.Background()
	c := seedCase(t, app, "Smith custody")
	logRecords(t, app, c.ID)

	records, err := app.Records.ListByCase(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, records, 2)

	_, err = executeCmd(t, app, "record", "log", "--case", c.ID, "--type", "mediation",
		"--status", "in-progress", "--start", "2025-01-20 10:00",
		"--depends-on", records[0].ID+","+records[1].ID)
	require.NoError(t, err)

	records, err = app.Records.ListByCase(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, domain.RecordInProgress, records[2].Status)
	assert.ElementsMatch(t, []string{records[0].ID, records[1].ID}, records[2].DependsOn)
}

func TestRecordCompleteAndCancel(t *testing.T) {
	app := testApp(t)
	ctx := context.Background()
	c := seedCase(t, app, "Smith custody")

	_, err := executeCmd(t, app, "record", "log", "--case", c.ID, "--type", "mediation", "--start", "2025-01-20 10:00")
	require.NoError(t, err)
	records, err := app.Records.ListByCase(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, records, 1)
	id := records[0].ID
	assert.Equal(t, domain.RecordInProgress, records[0].Status)

	out, err := executeCmd(t, app, "record", "complete", id, "--end", "2025-01-20 12:00")
	require.NoError(t, err)
	assert.Contains(t, out, "Completed Mediation")

	out, err = executeCmd(t, app, "record", "list", "--case", c.ID)
	require.NoError(t, err)
	assert.Contains(t, out, "Completed")
	assert.Contains(t, out, "2h")

	_, err = executeCmd(t, app, "record", "cancel", id)
	assert.ErrorIs(t, err, service.ErrInvalidTransition)
}

func TestRecordComplete_FutureBookingDefaultsEndToStart(t *testing.T) {
	app := testApp(t)
	ctx := context.Background()
	c := seedCase(t, app, "Smith custody")

	start := time.Now().Add(72 * time.Hour).Truncate(time.Minute)
	_, err := executeCmd(t, app, "record", "log", "--case", c.ID, "--type", "mediation",
		"--status", "pending", "--start", start.Format("2006-01-02 15:04"))
	require.NoError(t, err)
	records, err := app.Records.ListByCase(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, records, 1)

	out, err := executeCmd(t, app, "record", "complete", records[0].ID)
	require.NoError(t, err)
	assert.Contains(t, out, "Completed Mediation")

	rec, err := app.Records.GetByID(ctx, records[0].ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RecordCompleted, rec.Status)
	require.NotNil(t, rec.EndTime)
	assert.True(t, rec.EndTime.Equal(rec.StartTime), "end %s, start %s", rec.EndTime, rec.StartTime)
}

func TestRecordRemove(t *testing.T) {
	app := testApp(t)
	ctx := context.Background()
	c := seedCase(t, app, "Smith custody")
	logRecords(t, app, c.ID)

	records, err := app.Records.ListByCase(ctx, c.ID)
	require.NoError(t, err)

	_, err = executeCmd(t, app, "record", "rm", records[0].ID)
	require.NoError(t, err)

	records, err = app.Records.ListByCase(ctx, c.ID)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

// --- progress / timeline ---

func TestProgress_Text(t *testing.T) {
	app := testApp(t)
	c := seedCase(t, app, "Smith custody")
	logRecords(t, app, c.ID)

	out, err := executeCmd(t, app, "progress", c.ID[:8])
	require.NoError(t, err)
	assert.Contains(t, out, "SMITH CUSTODY")
	assert.Contains(t, out, " 64%")
	assert.Contains(t, out, "remaining")
	assert.NotContains(t, out, "Ready for review")
}

func TestProgress_JSON(t *testing.T) {
	app := testApp(t)
	c := seedCase(t, app, "Smith custody")
	logRecords(t, app, c.ID)

	out, err := executeCmd(t, app, "progress", c.ID, "--json", "--at", "2025-02-01T00:00:00Z")
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, c.ID, decoded["caseId"])
	assert.Equal(t, "2025-02-01T00:00:00Z", decoded["generatedAt"])
	assert.Equal(t, false, decoded["readyForReview"])
	prog := decoded["progress"].(map[string]any)
	assert.EqualValues(t, 64, prog["totalProgress"])
	assert.Equal(t, []any{"MEDIATION"}, prog["remainingServices"])
}

func TestProgress_ReadyForReview(t *testing.T) {
	app := testApp(t)
	c := seedCase(t, app, "Smith custody")
	logRecords(t, app, c.ID)
	_, err := executeCmd(t, app, "record", "log", "--case", c.ID, "--type", "mediation",
		"--start", "2025-01-20 10:00", "--end", "2025-01-20 11:00")
	require.NoError(t, err)

	out, err := executeCmd(t, app, "progress", c.ID)
	require.NoError(t, err)
	assert.Contains(t, out, "100%")
	assert.Contains(t, out, "Ready for review")
}

func TestTimeline_Text(t *testing.T) {
	app := testApp(t)
	c := seedCase(t, app, "Smith custody")
	logRecords(t, app, c.ID)

	out, err := executeCmd(t, app, "timeline", c.ID)
	require.NoError(t, err)
	assert.Contains(t, out, "Critical Path")
	assert.Contains(t, out, "Consultation")
	assert.Contains(t, out, "Petition drafted")
}

func TestTimeline_JSON(t *testing.T) {
	app := testApp(t)
	c := seedCase(t, app, "Smith custody")
	logRecords(t, app, c.ID)

	out, err := executeCmd(t, app, "timeline", c.ID, "--json")
	require.NoError(t, err)

	var decoded struct {
		MainBranch struct {
			ID     string `json:"id"`
			Events []struct {
				Title        string   `json:"title"`
				Dependencies []string `json:"dependencies"`
			} `json:"events"`
		} `json:"mainBranch"`
		ParallelBranches []any `json:"parallelBranches"`
		MergePoints      []any `json:"mergePoints"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, "main", decoded.MainBranch.ID)
	require.Len(t, decoded.MainBranch.Events, 2)
	assert.Equal(t, "Consultation", decoded.MainBranch.Events[0].Title)
	assert.Len(t, decoded.MainBranch.Events[1].Dependencies, 1)
	assert.Empty(t, decoded.ParallelBranches)
	assert.Empty(t, decoded.MergePoints)
}

func TestTimeline_BrowseNeedsTerminal(t *testing.T) {
	app := testApp(t)
	c := seedCase(t, app, "Smith custody")

	_, err := executeCmd(t, app, "timeline", c.ID, "--browse")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "interactive terminal")
}

// --- catalog ---

func TestCatalog_AllCategories(t *testing.T) {
	app := testApp(t)
	out, err := executeCmd(t, app, "catalog")
	require.NoError(t, err)
	for _, name := range []string{"Family", "Criminal", "Constitutional", "Other"} {
		assert.Contains(t, out, name)
	}
}

func TestCatalog_OneCategory(t *testing.T) {
	app := testApp(t)
	out, err := executeCmd(t, app, "catalog", "--category", "family")
	require.NoError(t, err)
	assert.Contains(t, out, "FAMILY")
	assert.Contains(t, out, "27%")
	assert.Contains(t, out, "Mediation")
}
