package repository

import (
	"context"
	"sync"
	"testing"

	"github.com/alexanderramin/mipractice/internal/domain"
	"github.com/alexanderramin/mipractice/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTurnRepo_CreateListAndSeq(t *testing.T) {
	database := testutil.NewTestDB(t)
	sessions := NewSQLitePracticeSessionRepo(database)
	repo := NewSQLiteTurnRepo(database)
	ctx := context.Background()

	sess := testutil.NewTestPracticeSession()
	require.NoError(t, sessions.Create(ctx, sess))

	next, err := repo.NextSeq(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, next)

	require.NoError(t, repo.Create(ctx, testutil.NewTestTurn(sess.ID, 2, domain.SpeakerPatient, "Fine.",
		testutil.WithSource(domain.SourceMock))))
	require.NoError(t, repo.Create(ctx, testutil.NewTestTurn(sess.ID, 1, domain.SpeakerClinician, "How are you feeling?",
		testutil.WithIntent(domain.IntentEmotion))))

	next, err = repo.NextSeq(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, next)

	turns, err := repo.ListBySession(ctx, sess.ID)
	require.NoError(t, err)
	require.Len(t, turns, 2)
	assert.Equal(t, 1, turns[0].Seq)
	assert.Equal(t, domain.SpeakerClinician, turns[0].Speaker)
	assert.Equal(t, domain.IntentEmotion, turns[0].Intent)
	assert.Equal(t, domain.SourceMock, turns[1].Source)
}

func TestTurnRepo_DuplicateSeqRejected(t *testing.T) {
	database := testutil.NewTestDB(t)
	sessions := NewSQLitePracticeSessionRepo(database)
	repo := NewSQLiteTurnRepo(database)
	ctx := context.Background()

	sess := testutil.NewTestPracticeSession()
	require.NoError(t, sessions.Create(ctx, sess))

	require.NoError(t, repo.Create(ctx, testutil.NewTestTurn(sess.ID, 1, domain.SpeakerClinician, "a")))
	assert.Error(t, repo.Create(ctx, testutil.NewTestTurn(sess.ID, 1, domain.SpeakerClinician, "b")))
}

func TestTurnRepo_UnknownSessionRejected(t *testing.T) {
	repo := NewSQLiteTurnRepo(testutil.NewTestDB(t))

	err := repo.Create(context.Background(), testutil.NewTestTurn("missing", 1, domain.SpeakerClinician, "hi"))
	assert.Error(t, err, "foreign key enforcement")
}

// TestTurnRepo_ConcurrentSessions verifies writers on separate sessions in
// a shared file database do not interfere with each other's transcripts.
func TestTurnRepo_ConcurrentSessions(t *testing.T) {
	database := testutil.NewFileTestDB(t)
	sessions := NewSQLitePracticeSessionRepo(database)
	repo := NewSQLiteTurnRepo(database)
	ctx := context.Background()

	const n = 4
	ids := make([]string, n)
	for i := range ids {
		s := testutil.NewTestPracticeSession()
		require.NoError(t, sessions.Create(ctx, s))
		ids[i] = s.ID
	}

	var wg sync.WaitGroup
	errs := make(chan error, n*5)
	for _, id := range ids {
		wg.Add(1)
		go func(sessionID string) {
			defer wg.Done()
			for seq := 1; seq <= 5; seq++ {
				if err := repo.Create(ctx, testutil.NewTestTurn(sessionID, seq, domain.SpeakerClinician, "hello")); err != nil {
					errs <- err
				}
			}
		}(id)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	for _, id := range ids {
		turns, err := repo.ListBySession(ctx, id)
		require.NoError(t, err)
		assert.Len(t, turns, 5)
	}
}
