package service

import (
	"context"
	"errors"
	"time"

	"github.com/alexanderramin/mipractice/internal/domain"
	"github.com/alexanderramin/mipractice/internal/intelligence"
)

var (
	// ErrAmbiguousID is returned when a session ID prefix matches several sessions.
	ErrAmbiguousID = errors.New("session id prefix is ambiguous")

	// ErrNoFeedback is returned for sessions that ended without a review.
	ErrNoFeedback = errors.New("session has no feedback")
)

// Exchange is one clinician utterance and the patient's answer.
type Exchange struct {
	Clinician domain.Turn
	Patient   domain.Turn
}

// SessionReview is the outcome of ending a session.
type SessionReview struct {
	Session  *domain.PracticeSession
	Feedback *intelligence.Feedback
}

type PracticeSessionService interface {
	// Start checks the monthly quota, generates a patient and opens a session.
	Start(ctx context.Context, filters domain.ProfileFilters) (*domain.PracticeSession, error)
	// Say records a clinician utterance and the patient's reply.
	Say(ctx context.Context, sessionID, utterance string) (*Exchange, error)
	// End completes the session and stores feedback on the transcript.
	End(ctx context.Context, sessionID string) (*SessionReview, error)
	Abandon(ctx context.Context, sessionID string) error
	// GetByID accepts a full ID or a unique prefix.
	GetByID(ctx context.Context, id string) (*domain.PracticeSession, error)
	Transcript(ctx context.Context, sessionID string) ([]domain.Turn, error)
	// Feedback decodes the stored feedback of a completed session.
	Feedback(ctx context.Context, sessionID string) (*intelligence.Feedback, error)
	List(ctx context.Context, limit int) ([]*domain.PracticeSession, error)
	Delete(ctx context.Context, sessionID string) error
}

type SubscriptionService interface {
	Get(ctx context.Context) (*domain.Subscription, error)
	SetTier(ctx context.Context, tier domain.Tier) error
	Usage(ctx context.Context, now time.Time) (*domain.Usage, error)
}

type SettingsService interface {
	Get(ctx context.Context) (*domain.Settings, error)
	CompleteOnboarding(ctx context.Context) error
	ResetOnboarding(ctx context.Context) error
	SetDefaults(ctx context.Context, topic string, difficulty domain.Difficulty) error
}
