package service

import (
	"context"
	"database/sql"
	"sync"
	"testing"

	"github.com/legalaid/caseprogress/internal/db"
	"github.com/legalaid/caseprogress/internal/repository"
	"github.com/legalaid/caseprogress/internal/testutil"
)

func setupRepos(t *testing.T) (*sql.DB, *repository.SQLiteCaseRepo, *repository.SQLiteServiceRecordRepo, db.UnitOfWork) {
	t.Helper()
	database := testutil.NewTestDB(t)
	return database,
		repository.NewSQLiteCaseRepo(database),
		repository.NewSQLiteServiceRecordRepo(database),
		testutil.NewTestUoW(database)
}

// recordingObserver keeps every event it sees.
type recordingObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (o *recordingObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, e)
}

func (o *recordingObserver) named(name string) []UseCaseEvent {
	o.mu.Lock()
	defer o.mu.Unlock()
	var out []UseCaseEvent
	for _, e := range o.events {
		if e.Name == name {
			out = append(out, e)
		}
	}
	return out
}
