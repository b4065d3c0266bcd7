package service

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/alexanderramin/mipractice/internal/db"
	"github.com/alexanderramin/mipractice/internal/intelligence"
	"github.com/alexanderramin/mipractice/internal/repository"
	"github.com/alexanderramin/mipractice/internal/scenario"
	"github.com/alexanderramin/mipractice/internal/testutil"
)

// testNow is mid-June so month boundaries are easy to straddle.
var testNow = time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

type testEnv struct {
	db       *sql.DB
	sessions repository.PracticeSessionRepo
	turns    repository.TurnRepo
	subs     repository.SubscriptionRepo
	uow      db.UnitOfWork
	observer *recordingObserver
	svc      *practiceSessionService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	database := testutil.NewTestDB(t)
	return newTestEnvWithUoW(t, database, testutil.NewTestUoW(database))
}

func newTestEnvWithUoW(t *testing.T, database *sql.DB, uow db.UnitOfWork) *testEnv {
	t.Helper()
	env := &testEnv{
		db:       database,
		sessions: repository.NewSQLitePracticeSessionRepo(database),
		turns:    repository.NewSQLiteTurnRepo(database),
		subs:     repository.NewSQLiteSubscriptionRepo(database),
		uow:      uow,
		observer: &recordingObserver{},
	}
	svc := NewPracticeSessionService(
		env.sessions,
		env.turns,
		uow,
		scenario.NewSeededGenerator(scenario.DefaultCatalog(), 42),
		intelligence.NewMockPatientService(nil),
		intelligence.NewFeedbackService(nil, nil),
		env.observer,
	).(*practiceSessionService)
	svc.now = func() time.Time { return testNow }
	env.svc = svc
	return env
}

type recordingObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (o *recordingObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, e)
}

func (o *recordingObserver) last() UseCaseEvent {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.events[len(o.events)-1]
}
