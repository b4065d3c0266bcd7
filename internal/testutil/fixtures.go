package testutil

import (
	"time"

	"github.com/alexanderramin/mipractice/internal/domain"
	"github.com/google/uuid"
)

// Profile options
type ProfileOption func(*domain.PatientProfile)

func WithStage(s domain.StageOfChange) ProfileOption {
	return func(p *domain.PatientProfile) {
		p.StageOfChange = s
	}
}

func WithTopic(topic string) ProfileOption {
	return func(p *domain.PatientProfile) {
		p.Topic = topic
	}
}

func WithBackground(bg string) ProfileOption {
	return func(p *domain.PatientProfile) {
		p.Background = bg
	}
}

func NewTestProfile(name string, opts ...ProfileOption) domain.PatientProfile {
	p := domain.PatientProfile{
		Name:              name,
		Age:               38,
		Sex:               domain.SexFemale,
		Background:        "A 38-year-old nurse working rotating night shifts.",
		PresentingProblem: "drinking to unwind after shifts",
		Topic:             "Alcohol Use",
		History:           "Drinks four to five glasses of wine most nights.",
		ChiefComplaint:    "I can't sleep without a drink.",
		StageOfChange:     domain.StageContemplation,
	}
	for _, opt := range opts {
		opt(&p)
	}
	return p
}

// PracticeSession options
type SessionOption func(*domain.PracticeSession)

func WithStartedAt(t time.Time) SessionOption {
	return func(s *domain.PracticeSession) {
		s.StartedAt = t
		s.CreatedAt = t
		s.UpdatedAt = t
	}
}

func WithStatus(status domain.SessionStatus) SessionOption {
	return func(s *domain.PracticeSession) {
		s.Status = status
		if status != domain.SessionActive && s.EndedAt == nil {
			ended := s.StartedAt.Add(10 * time.Minute)
			s.EndedAt = &ended
		}
	}
}

func WithProfile(p domain.PatientProfile) SessionOption {
	return func(s *domain.PracticeSession) {
		s.Profile = p
	}
}

func NewTestPracticeSession(opts ...SessionOption) *domain.PracticeSession {
	now := time.Now().UTC()
	s := &domain.PracticeSession{
		ID:             uuid.New().String(),
		Profile:        NewTestProfile("Avery"),
		CatalogVersion: "test",
		Status:         domain.SessionActive,
		StartedAt:      now,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Turn options
type TurnOption func(*domain.Turn)

func WithIntent(i domain.ClinicianIntent) TurnOption {
	return func(t *domain.Turn) {
		t.Intent = i
	}
}

func WithSource(src domain.ReplySource) TurnOption {
	return func(t *domain.Turn) {
		t.Source = src
	}
}

func NewTestTurn(sessionID string, seq int, speaker domain.Speaker, text string, opts ...TurnOption) *domain.Turn {
	t := &domain.Turn{
		ID:        uuid.New().String(),
		SessionID: sessionID,
		Seq:       seq,
		Speaker:   speaker,
		Text:      text,
		CreatedAt: time.Now().UTC(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}
