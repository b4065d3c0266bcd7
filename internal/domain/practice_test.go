package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

func TestComplete_FromActive(t *testing.T) {
	s := &PracticeSession{Status: SessionActive}
	require.NoError(t, s.Complete(`{"summary":"ok"}`, testNow))
	assert.Equal(t, SessionCompleted, s.Status)
	assert.Equal(t, `{"summary":"ok"}`, s.Feedback)
	require.NotNil(t, s.EndedAt)
	assert.Equal(t, testNow, *s.EndedAt)
	assert.Equal(t, testNow, s.UpdatedAt)
}

func TestComplete_Twice(t *testing.T) {
	s := &PracticeSession{Status: SessionActive}
	require.NoError(t, s.Complete("", testNow))
	assert.ErrorIs(t, s.Complete("", testNow), ErrSessionNotActive)
}

func TestAbandon_FromCompleted(t *testing.T) {
	s := &PracticeSession{Status: SessionCompleted}
	assert.ErrorIs(t, s.Abandon(testNow), ErrSessionNotActive)
	assert.Nil(t, s.EndedAt)
}

func TestAbandon_FromActive(t *testing.T) {
	s := &PracticeSession{Status: SessionActive}
	require.NoError(t, s.Abandon(testNow))
	assert.Equal(t, SessionAbandoned, s.Status)
	assert.False(t, s.IsActive())
}

func TestDifficultyStages(t *testing.T) {
	assert.Equal(t, []StageOfChange{StagePreparation, StageAction, StageMaintenance}, DifficultyBeginner.Stages())
	assert.Equal(t, []StageOfChange{StageContemplation}, DifficultyIntermediate.Stages())
	assert.Equal(t, []StageOfChange{StagePrecontemplation}, DifficultyAdvanced.Stages())
	assert.Nil(t, Difficulty("Expert").Stages())
}

func TestParseStage(t *testing.T) {
	st, ok := ParseStage(" contemplation ")
	require.True(t, ok)
	assert.Equal(t, StageContemplation, st)

	_, ok = ParseStage("relapse")
	assert.False(t, ok)
}

func TestParseDifficulty(t *testing.T) {
	d, ok := ParseDifficulty("ADVANCED")
	require.True(t, ok)
	assert.Equal(t, DifficultyAdvanced, d)

	_, ok = ParseDifficulty("")
	assert.False(t, ok)
}

func TestBackgroundFor(t *testing.T) {
	tmpl := PatientProfileTemplate{Background: "A {age}-year-old nurse, {age} this spring."}
	assert.Equal(t, "A 41-year-old nurse, 41 this spring.", tmpl.BackgroundFor(41))
}

func TestAgeRangeContains(t *testing.T) {
	r := AgeRange{Min: 30, Max: 40}
	assert.True(t, r.Contains(30))
	assert.True(t, r.Contains(40))
	assert.False(t, r.Contains(29))
	assert.False(t, r.Contains(41))
}
