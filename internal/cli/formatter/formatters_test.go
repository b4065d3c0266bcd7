package formatter

import (
	"bytes"
	"testing"
	"time"

	"github.com/alexanderramin/mipractice/internal/domain"
	"github.com/alexanderramin/mipractice/internal/intelligence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testProfile() domain.PatientProfile {
	return domain.PatientProfile{
		Name:              "Jordan",
		Age:               41,
		Sex:               domain.SexMale,
		Background:        "Jordan is a 41-year-old truck driver.",
		PresentingProblem: "Drinks most evenings",
		Topic:             "Alcohol Use",
		History:           "Two warnings at work.",
		ChiefComplaint:    "Trouble sleeping",
		StageOfChange:     domain.StageContemplation,
	}
}

func TestFormatPatientProfile(t *testing.T) {
	out := FormatPatientProfile(testProfile())
	for _, want := range []string{"Jordan", "41", "Male", "Contemplation", "Alcohol Use", "Trouble sleeping", "truck driver"} {
		assert.Contains(t, out, want)
	}
}

func TestFormatPatientProfile_EmptyFieldShowsDash(t *testing.T) {
	p := testProfile()
	p.History = ""
	assert.Contains(t, FormatPatientProfile(p), "--")
}

func TestFormatTopics(t *testing.T) {
	out := FormatTopics([]string{"Alcohol Use", "Smoking"})
	assert.Contains(t, out, "1.")
	assert.Contains(t, out, "Smoking")
	assert.Contains(t, FormatTopics(nil), "No topics")
}

func TestFormatIntent(t *testing.T) {
	assert.Contains(t, FormatIntent(domain.IntentPlan), "plan")
}

func TestFormatSessionList(t *testing.T) {
	now := time.Date(2026, 2, 7, 12, 0, 0, 0, time.UTC)
	sessions := []*domain.PracticeSession{{
		ID:        "abcdef12-3456",
		Profile:   testProfile(),
		Status:    domain.SessionCompleted,
		StartedAt: now.Add(-10 * time.Minute),
	}}
	out := FormatSessionList(sessions, now)
	assert.Contains(t, out, "abcdef12")
	assert.NotContains(t, out, "3456")
	assert.Contains(t, out, "Jordan")
	assert.Contains(t, out, "Completed")
	assert.Contains(t, out, "10m ago")

	assert.Contains(t, FormatSessionList(nil, now), "No practice sessions")
}

func TestFormatSessionHeader_ShowsDuration(t *testing.T) {
	start := time.Date(2026, 2, 7, 12, 0, 0, 0, time.UTC)
	end := start.Add(25 * time.Minute)
	s := &domain.PracticeSession{ID: "abcdef12", Status: domain.SessionCompleted, StartedAt: start, EndedAt: &end}
	assert.Contains(t, FormatSessionHeader(s), "25m")
}

func TestFormatTranscript(t *testing.T) {
	turns := []domain.Turn{
		{Seq: 1, Speaker: domain.SpeakerClinician, Text: "How are you?"},
		{Seq: 2, Speaker: domain.SpeakerPatient, Text: "Tired.", Source: domain.SourceMock},
		{Seq: 3, Speaker: domain.SpeakerPatient, Text: "Still tired.", Source: domain.SourceLLM},
	}
	out := FormatTranscript(turns, "Jordan")
	assert.Contains(t, out, "You: How are you?")
	assert.Contains(t, out, "Jordan: Tired. (offline)")
	assert.Contains(t, out, "Jordan: Still tired.")
	assert.NotContains(t, out, "Still tired. (offline)")

	assert.Contains(t, FormatTurn(turns[2], ""), "Patient:")
	assert.Contains(t, FormatTranscript(nil, "Jordan"), "No turns")
}

func TestFormatUsage(t *testing.T) {
	free := &domain.Usage{Tier: domain.TierFree, Used: 2, Limit: 3, MonthStart: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)}
	out := FormatUsage(free)
	assert.Contains(t, out, "Free")
	assert.Contains(t, out, "2/3")
	assert.Contains(t, out, "February 2026")

	premium := &domain.Usage{Tier: domain.TierPremium, Used: 7, Limit: -1}
	out = FormatUsage(premium)
	assert.Contains(t, out, "Premium")
	assert.Contains(t, out, "unlimited")
}

func TestFormatSettings(t *testing.T) {
	out := FormatSettings(&domain.Settings{OnboardingComplete: true, DefaultTopic: "Smoking", DefaultDifficulty: domain.DifficultyAdvanced})
	assert.Contains(t, out, "Completed")
	assert.Contains(t, out, "Smoking")
	assert.Contains(t, out, "Advanced")
}

func TestFormatFeedback(t *testing.T) {
	f := &intelligence.Feedback{
		Summary:   "You reflected well.",
		Strengths: []string{"Open questions"},
		Scores:    intelligence.MIScores{Reflections: 3},
		Source:    intelligence.FeedbackSourceDeterministic,
	}
	out := FormatFeedback(f, 80)
	assert.Contains(t, out, "You reflected well.")
	assert.Contains(t, out, "Reflections")
	assert.Contains(t, out, "Offline review")
}

func TestRenderMarkdownWithWidth(t *testing.T) {
	out, err := RenderMarkdownWithWidth("# Title\n\nbody text", 5)
	require.NoError(t, err)
	assert.Contains(t, out, "Title")
	assert.Contains(t, out, "body")

	out, err = RenderMarkdownWithWidth("   ", 80)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestTerminalWidth_FallsBackToColumns(t *testing.T) {
	t.Setenv("COLUMNS", "132")
	assert.Equal(t, 132, TerminalWidth(80))
}

func TestSpinner_StopTwice(t *testing.T) {
	var buf bytes.Buffer
	stop := StartSpinner(&buf, "thinking")
	stop()
	stop()
	assert.Contains(t, buf.String(), "\r\033[K")
}
