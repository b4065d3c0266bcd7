package intelligence

import (
	"context"
	"testing"

	"github.com/alexanderramin/mipractice/internal/dialogue"
	"github.com/alexanderramin/mipractice/internal/domain"
	"github.com/alexanderramin/mipractice/internal/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockLLMClient struct {
	response string
	err      error
	requests []llm.GenerateRequest
}

func (m *mockLLMClient) Generate(_ context.Context, req llm.GenerateRequest) (*llm.GenerateResponse, error) {
	m.requests = append(m.requests, req)
	if m.err != nil {
		return nil, m.err
	}
	return &llm.GenerateResponse{Text: m.response, Model: "llama3.2"}, nil
}

func (m *mockLLMClient) Available(_ context.Context) bool { return m.err == nil }

func testProfile() domain.PatientProfile {
	return domain.PatientProfile{
		Name:              "Jordan",
		Age:               41,
		Sex:               domain.SexMale,
		Background:        "A 41-year-old truck driver who spends long weeks on the road.",
		PresentingProblem: "smoking a pack a day",
		Topic:             "Smoking Cessation",
		History:           "Tried quitting twice.",
		ChiefComplaint:    "My wife wants me to quit.",
		StageOfChange:     domain.StageContemplation,
	}
}

func TestPatientService_LLMReply(t *testing.T) {
	client := &mockLLMClient{response: "I know it's bad for me, but it keeps me awake on long drives."}
	svc := NewPatientService(client, llm.NoopObserver{}, nil)

	reply, err := svc.Reply(context.Background(), testProfile(), nil, "How are you feeling about smoking?")

	require.NoError(t, err)
	assert.Equal(t, domain.SourceLLM, reply.Source)
	assert.Equal(t, domain.IntentEmotion, reply.Intent)
	assert.Equal(t, "I know it's bad for me, but it keeps me awake on long drives.", reply.Text)

	require.Len(t, client.requests, 1)
	req := client.requests[0]
	assert.Equal(t, llm.TaskPatientReply, req.Task)
	assert.Equal(t, "How are you feeling about smoking?", req.UserPrompt)
	assert.Contains(t, req.SystemPrompt, "Jordan")
	assert.Contains(t, req.SystemPrompt, "smoking a pack a day")
	assert.Contains(t, req.SystemPrompt, stageGuidance[domain.StageContemplation])
}

func TestPatientService_PassesHistoryWithRoles(t *testing.T) {
	client := &mockLLMClient{response: "Maybe."}
	svc := NewPatientService(client, nil, nil)
	history := []domain.Turn{
		{Seq: 1, Speaker: domain.SpeakerClinician, Text: "Hi Jordan."},
		{Seq: 2, Speaker: domain.SpeakerPatient, Text: "Hi."},
	}

	_, err := svc.Reply(context.Background(), testProfile(), history, "What brings you in?")
	require.NoError(t, err)

	require.Len(t, client.requests, 1)
	assert.Equal(t, []llm.Message{
		{Role: llm.RoleUser, Content: "Hi Jordan."},
		{Role: llm.RoleAssistant, Content: "Hi."},
	}, client.requests[0].History)
}

type fallbackRecorder struct {
	llm.NoopObserver
	events []llm.FallbackEvent
}

func (r *fallbackRecorder) OnFallback(e llm.FallbackEvent) {
	r.events = append(r.events, e)
}

func TestPatientService_FallbackWhenLLMDown(t *testing.T) {
	client := &mockLLMClient{err: llm.ErrProviderUnavailable}
	rec := &fallbackRecorder{}
	svc := NewPatientService(client, rec, nil)
	profile := testProfile()
	utterance := "What gets in the way for you?"

	reply, err := svc.Reply(context.Background(), profile, nil, utterance)

	require.NoError(t, err)
	assert.Equal(t, domain.SourceMock, reply.Source)
	assert.Equal(t, domain.IntentBarrier, reply.Intent)
	assert.Equal(t, dialogue.Respond(utterance, profile), reply.Text)

	require.Len(t, rec.events, 1)
	assert.Equal(t, llm.TaskPatientReply, rec.events[0].Task)
	assert.Equal(t, "UNAVAILABLE", rec.events[0].Reason)
}

func TestPatientService_FallbackOnEmptyOutput(t *testing.T) {
	client := &mockLLMClient{response: "  \"\"  "}
	rec := &fallbackRecorder{}
	svc := NewPatientService(client, rec, nil)

	reply, err := svc.Reply(context.Background(), testProfile(), nil, "Tell me more.")

	require.NoError(t, err)
	assert.Equal(t, domain.SourceMock, reply.Source)
	assert.NotEmpty(t, reply.Text)
	require.Len(t, rec.events, 1)
	assert.Equal(t, "EMPTY_OUTPUT", rec.events[0].Reason)
}

func TestPatientService_LiveReplyReportsNoFallback(t *testing.T) {
	rec := &fallbackRecorder{}
	svc := NewPatientService(&mockLLMClient{response: "I suppose so."}, rec, nil)

	_, err := svc.Reply(context.Background(), testProfile(), nil, "Is that right?")

	require.NoError(t, err)
	assert.Empty(t, rec.events)
}

func TestPatientService_RewritesThirdPerson(t *testing.T) {
	client := &mockLLMClient{response: `Patient: "The patient is not sure quitting is worth it."`}
	svc := NewPatientService(client, llm.NoopObserver{}, nil)

	reply, err := svc.Reply(context.Background(), testProfile(), nil, "Where are you with quitting?")

	require.NoError(t, err)
	assert.Equal(t, domain.SourceLLM, reply.Source)
	assert.Equal(t, "I am not sure quitting is worth it.", reply.Text)
}

type stubResponder struct{ text string }

func (s stubResponder) Respond(string, domain.PatientProfile) string { return s.text }

func TestMockPatientService_NeverCallsModel(t *testing.T) {
	svc := NewMockPatientService(stubResponder{text: "canned"})

	reply, err := svc.Reply(context.Background(), testProfile(), nil, "What is your plan?")

	require.NoError(t, err)
	assert.Equal(t, "canned", reply.Text)
	assert.Equal(t, domain.SourceMock, reply.Source)
	assert.Equal(t, domain.IntentPlan, reply.Intent)
}

func TestCleanReply(t *testing.T) {
	tests := map[string]string{
		"plain":               "plain",
		"  Patient: hello  ":  "hello",
		`"quoted"`:            "quoted",
		`Me: "both"`:          "both",
		`"`:                   `"`,
		"":                    "",
		"response:   spaced ": "spaced",
	}
	for in, want := range tests {
		assert.Equal(t, want, cleanReply(in), "input %q", in)
	}
}

func TestPatientSystemPrompt_UnknownStageUsesContemplation(t *testing.T) {
	p := testProfile()
	p.StageOfChange = "Unknown"
	assert.Contains(t, patientSystemPrompt(p), stageGuidance[domain.StageContemplation])

	p.StageOfChange = domain.StagePrecontemplation
	prompt := patientSystemPrompt(p)
	assert.Contains(t, prompt, stageGuidance[domain.StagePrecontemplation])
	assert.Contains(t, prompt, "Never refer to yourself as \"the patient\"")
}
