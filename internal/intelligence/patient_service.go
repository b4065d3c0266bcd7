package intelligence

import (
	"context"
	"strings"

	"github.com/alexanderramin/mipractice/internal/dialogue"
	"github.com/alexanderramin/mipractice/internal/domain"
	"github.com/alexanderramin/mipractice/internal/llm"
)

// Responder produces a reply without a language model.
type Responder interface {
	Respond(utterance string, patient domain.PatientProfile) string
}

// PatientService voices the simulated patient.
type PatientService interface {
	// Reply answers utterance given the conversation so far. It falls back
	// to the canned responder on any model failure and never returns an
	// empty reply.
	Reply(ctx context.Context, profile domain.PatientProfile, history []domain.Turn, utterance string) (*PatientReply, error)
}

type patientService struct {
	client    llm.LLMClient // nil means mock only
	observer  llm.Observer
	responder Responder
}

// NewPatientService creates a PatientService backed by an LLM client, using
// responder when the model fails. A nil responder uses the built-in banks.
func NewPatientService(client llm.LLMClient, observer llm.Observer, responder Responder) PatientService {
	if responder == nil {
		responder = dialogue.NewResponder()
	}
	if observer == nil {
		observer = llm.NoopObserver{}
	}
	return &patientService{client: client, observer: observer, responder: responder}
}

// NewMockPatientService creates a PatientService that never calls a model.
func NewMockPatientService(responder Responder) PatientService {
	return NewPatientService(nil, nil, responder)
}

func (s *patientService) Reply(ctx context.Context, profile domain.PatientProfile, history []domain.Turn, utterance string) (*PatientReply, error) {
	intent := dialogue.ClassifyIntent(utterance)

	if s.client != nil {
		text, reason := s.generate(ctx, profile, history, utterance)
		if reason == "" {
			return &PatientReply{Text: text, Intent: intent, Source: domain.SourceLLM}, nil
		}
		llm.ReportFallback(s.observer, llm.FallbackEvent{Task: llm.TaskPatientReply, Reason: reason})
	}

	return &PatientReply{
		Text:   s.responder.Respond(utterance, profile),
		Intent: intent,
		Source: domain.SourceMock,
	}, nil
}

// generate returns the live reply, or a non-empty fallback reason.
func (s *patientService) generate(ctx context.Context, profile domain.PatientProfile, history []domain.Turn, utterance string) (string, string) {
	resp, err := s.client.Generate(ctx, llm.GenerateRequest{
		Task:         llm.TaskPatientReply,
		SystemPrompt: patientSystemPrompt(profile),
		History:      historyMessages(history),
		UserPrompt:   utterance,
	})
	if err != nil {
		return "", llm.ErrorCode(err)
	}

	text := cleanReply(resp.Text)
	if text == "" {
		return "", "EMPTY_OUTPUT"
	}
	return dialogue.ToFirstPerson(text), ""
}

// historyMessages maps clinician turns to user messages and patient turns
// to assistant messages.
func historyMessages(history []domain.Turn) []llm.Message {
	msgs := make([]llm.Message, 0, len(history))
	for _, t := range history {
		role := llm.RoleUser
		if t.Speaker == domain.SpeakerPatient {
			role = llm.RoleAssistant
		}
		msgs = append(msgs, llm.Message{Role: role, Content: t.Text})
	}
	return msgs
}

// replyLabels are speaker prefixes models sometimes emit.
var replyLabels = []string{"patient:", "me:", "response:"}

// cleanReply strips labels and wrapping quotes from model output.
func cleanReply(text string) string {
	text = strings.TrimSpace(text)
	lower := strings.ToLower(text)
	for _, label := range replyLabels {
		if strings.HasPrefix(lower, label) {
			text = strings.TrimSpace(text[len(label):])
			break
		}
	}
	if len(text) >= 2 && text[0] == '"' && text[len(text)-1] == '"' {
		text = strings.TrimSpace(text[1 : len(text)-1])
	}
	return text
}
