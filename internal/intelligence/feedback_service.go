package intelligence

import (
	"context"
	"errors"
	"strings"

	"github.com/alexanderramin/mipractice/internal/domain"
	"github.com/alexanderramin/mipractice/internal/llm"
)

// FeedbackService reviews a finished practice session.
type FeedbackService interface {
	// Review returns feedback on the clinician's turns in transcript.
	Review(ctx context.Context, profile domain.PatientProfile, transcript []domain.Turn) (*Feedback, error)
}

type feedbackService struct {
	client   llm.LLMClient // nil means deterministic only
	observer llm.Observer
}

// NewFeedbackService creates a FeedbackService backed by an LLM client.
// A nil client always produces deterministic feedback.
func NewFeedbackService(client llm.LLMClient, observer llm.Observer) FeedbackService {
	if observer == nil {
		observer = llm.NoopObserver{}
	}
	return &feedbackService{client: client, observer: observer}
}

// feedbackLLMResponse is the JSON structure expected from the LLM.
type feedbackLLMResponse struct {
	Summary      string   `json:"summary"`
	Strengths    []string `json:"strengths"`
	Improvements []string `json:"improvements"`
}

func validateFeedbackResponse(r feedbackLLMResponse) error {
	if strings.TrimSpace(r.Summary) == "" {
		return errors.New("summary is required")
	}
	return nil
}

func (s *feedbackService) Review(ctx context.Context, profile domain.PatientProfile, transcript []domain.Turn) (*Feedback, error) {
	fallback := DeterministicFeedback(transcript)
	if s.client == nil || countClinicianTurns(transcript) == 0 {
		return fallback, nil
	}

	resp, err := s.client.Generate(ctx, llm.GenerateRequest{
		Task:         llm.TaskFeedback,
		SystemPrompt: feedbackSystemPrompt,
		UserPrompt:   feedbackUserPrompt(profile, transcript),
	})
	if err != nil {
		s.reportFallback(llm.ErrorCode(err))
		return fallback, nil
	}

	parsed, err := llm.ExtractJSON(resp.Text, validateFeedbackResponse)
	if err != nil {
		s.reportFallback(llm.ErrorCode(err))
		return fallback, nil
	}

	// Counts always come from the transcript; the model supplies narrative only.
	fb := &Feedback{
		Summary:                   strings.TrimSpace(parsed.Summary),
		Strengths:                 nonEmpty(parsed.Strengths),
		Improvements:              nonEmpty(parsed.Improvements),
		Scores:                    fallback.Scores,
		ReflectionToQuestionRatio: fallback.ReflectionToQuestionRatio,
		Source:                    FeedbackSourceLLM,
	}
	if len(fb.Strengths) == 0 {
		fb.Strengths = fallback.Strengths
	}
	if len(fb.Improvements) == 0 {
		fb.Improvements = fallback.Improvements
	}
	return fb, nil
}

func (s *feedbackService) reportFallback(reason string) {
	llm.ReportFallback(s.observer, llm.FallbackEvent{Task: llm.TaskFeedback, Reason: reason})
}

func nonEmpty(items []string) []string {
	var out []string
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func countClinicianTurns(transcript []domain.Turn) int {
	n := 0
	for _, t := range transcript {
		if t.Speaker == domain.SpeakerClinician {
			n++
		}
	}
	return n
}
