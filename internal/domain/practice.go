package domain

import (
	"errors"
	"time"
)

var (
	// ErrSessionNotActive is returned when a completed or abandoned session
	// receives another turn or is ended twice.
	ErrSessionNotActive = errors.New("practice session is not active")

	// ErrEmptyUtterance is returned for blank clinician input.
	ErrEmptyUtterance = errors.New("utterance is empty")
)

// PracticeSession is one simulated patient encounter.
type PracticeSession struct {
	ID             string
	Profile        PatientProfile
	CatalogVersion string
	Status         SessionStatus
	Feedback       string // JSON-encoded feedback, empty until completed
	StartedAt      time.Time
	EndedAt        *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// IsActive reports whether the session still accepts turns.
func (s *PracticeSession) IsActive() bool {
	return s.Status == SessionActive
}

// Complete transitions an active session to completed.
func (s *PracticeSession) Complete(feedback string, now time.Time) error {
	if !s.IsActive() {
		return ErrSessionNotActive
	}
	s.Status = SessionCompleted
	s.Feedback = feedback
	s.EndedAt = &now
	s.UpdatedAt = now
	return nil
}

// Abandon transitions an active session to abandoned.
func (s *PracticeSession) Abandon(now time.Time) error {
	if !s.IsActive() {
		return ErrSessionNotActive
	}
	s.Status = SessionAbandoned
	s.EndedAt = &now
	s.UpdatedAt = now
	return nil
}

// Turn is one utterance in a practice transcript.
type Turn struct {
	ID        string
	SessionID string
	Seq       int
	Speaker   Speaker
	Text      string
	Intent    ClinicianIntent // set on clinician turns
	Source    ReplySource     // set on patient turns
	CreatedAt time.Time
}
