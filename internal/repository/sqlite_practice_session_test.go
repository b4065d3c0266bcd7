package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/mipractice/internal/domain"
	"github.com/alexanderramin/mipractice/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPracticeSessionRepo_CreateAndGetByID(t *testing.T) {
	repo := NewSQLitePracticeSessionRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	profile := testutil.NewTestProfile("Morgan", testutil.WithStage(domain.StageAction))
	sess := testutil.NewTestPracticeSession(testutil.WithProfile(profile))
	require.NoError(t, repo.Create(ctx, sess))

	fetched, err := repo.GetByID(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, sess.ID, fetched.ID)
	assert.Equal(t, profile, fetched.Profile)
	assert.Equal(t, "test", fetched.CatalogVersion)
	assert.Equal(t, domain.SessionActive, fetched.Status)
	assert.Nil(t, fetched.EndedAt)
	assert.True(t, sess.StartedAt.Equal(fetched.StartedAt))
}

func TestPracticeSessionRepo_GetByID_NotFound(t *testing.T) {
	repo := NewSQLitePracticeSessionRepo(testutil.NewTestDB(t))

	_, err := repo.GetByID(context.Background(), "nonexistent")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPracticeSessionRepo_Update(t *testing.T) {
	repo := NewSQLitePracticeSessionRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	sess := testutil.NewTestPracticeSession()
	require.NoError(t, repo.Create(ctx, sess))

	require.NoError(t, sess.Complete(`{"summary":"ok"}`, time.Now().UTC()))
	require.NoError(t, repo.Update(ctx, sess))

	fetched, err := repo.GetByID(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.SessionCompleted, fetched.Status)
	assert.Equal(t, `{"summary":"ok"}`, fetched.Feedback)
	require.NotNil(t, fetched.EndedAt)
	assert.True(t, sess.EndedAt.Equal(*fetched.EndedAt))
}

func TestPracticeSessionRepo_UpdateMissing(t *testing.T) {
	repo := NewSQLitePracticeSessionRepo(testutil.NewTestDB(t))

	err := repo.Update(context.Background(), testutil.NewTestPracticeSession())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPracticeSessionRepo_ListNewestFirstWithLimit(t *testing.T) {
	repo := NewSQLitePracticeSessionRepo(testutil.NewTestDB(t))
	ctx := context.Background()
	base := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

	var ids []string
	for i := 0; i < 3; i++ {
		s := testutil.NewTestPracticeSession(testutil.WithStartedAt(base.Add(time.Duration(i) * time.Hour)))
		require.NoError(t, repo.Create(ctx, s))
		ids = append(ids, s.ID)
	}

	all, err := repo.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, ids[2], all[0].ID)
	assert.Equal(t, ids[0], all[2].ID)

	limited, err := repo.List(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestPracticeSessionRepo_CountStartedSince(t *testing.T) {
	repo := NewSQLitePracticeSessionRepo(testutil.NewTestDB(t))
	ctx := context.Background()
	june := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	fixtures := []*domain.PracticeSession{
		testutil.NewTestPracticeSession(testutil.WithStartedAt(june.Add(-time.Nanosecond))),
		testutil.NewTestPracticeSession(testutil.WithStartedAt(june)),
		testutil.NewTestPracticeSession(testutil.WithStartedAt(june.Add(36*time.Hour)), testutil.WithStatus(domain.SessionAbandoned)),
		testutil.NewTestPracticeSession(testutil.WithStartedAt(june.Add(48*time.Hour)), testutil.WithStatus(domain.SessionCompleted)),
	}
	for _, s := range fixtures {
		require.NoError(t, repo.Create(ctx, s))
	}

	n, err := repo.CountStartedSince(ctx, june)
	require.NoError(t, err)
	assert.Equal(t, 3, n, "abandoned and completed sessions still count; May does not")
}

func TestPracticeSessionRepo_Delete(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLitePracticeSessionRepo(database)
	turns := NewSQLiteTurnRepo(database)
	ctx := context.Background()

	sess := testutil.NewTestPracticeSession()
	require.NoError(t, repo.Create(ctx, sess))
	require.NoError(t, turns.Create(ctx, testutil.NewTestTurn(sess.ID, 1, domain.SpeakerClinician, "Hello")))

	deletedAt := sess.StartedAt.Add(time.Hour)
	require.NoError(t, repo.Delete(ctx, sess.ID, deletedAt))

	_, err := repo.GetByID(ctx, sess.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	ids, err := repo.FindIDsByPrefix(ctx, sess.ID[:8], 5)
	require.NoError(t, err)
	assert.Empty(t, ids)

	all, err := repo.List(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, all)

	remaining, err := turns.ListBySession(ctx, sess.ID)
	require.NoError(t, err)
	assert.Empty(t, remaining, "transcript is removed with the session")

	n, err := repo.CountStartedSince(ctx, domain.MonthStart(sess.StartedAt))
	require.NoError(t, err)
	assert.Equal(t, 1, n, "deleted sessions still count toward quota")

	assert.ErrorIs(t, repo.Delete(ctx, sess.ID, deletedAt), ErrNotFound)
	assert.ErrorIs(t, repo.Update(ctx, sess), ErrNotFound)
}

func TestPracticeSessionRepo_FindIDsByPrefix(t *testing.T) {
	repo := NewSQLitePracticeSessionRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	for _, id := range []string{"abc11111", "abc22222", "def33333"} {
		s := testutil.NewTestPracticeSession()
		s.ID = id
		require.NoError(t, repo.Create(ctx, s))
	}

	ids, err := repo.FindIDsByPrefix(ctx, "abc", 5)
	require.NoError(t, err)
	assert.Equal(t, []string{"abc11111", "abc22222"}, ids)

	ids, err = repo.FindIDsByPrefix(ctx, "def", 5)
	require.NoError(t, err)
	assert.Equal(t, []string{"def33333"}, ids)

	ids, err = repo.FindIDsByPrefix(ctx, "zzz", 5)
	require.NoError(t, err)
	assert.Empty(t, ids)
}
