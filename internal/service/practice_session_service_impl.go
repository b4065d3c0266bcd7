package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/mipractice/internal/db"
	"github.com/alexanderramin/mipractice/internal/domain"
	"github.com/alexanderramin/mipractice/internal/intelligence"
	"github.com/alexanderramin/mipractice/internal/repository"
	"github.com/alexanderramin/mipractice/internal/scenario"
	"github.com/google/uuid"
)

// minPrefixLen is the shortest ID prefix GetByID will try to resolve.
const minPrefixLen = 4

type practiceSessionService struct {
	sessions  repository.PracticeSessionRepo
	turns     repository.TurnRepo
	uow       db.UnitOfWork
	generator *scenario.Generator
	patients  intelligence.PatientService
	reviewer  intelligence.FeedbackService
	observer  UseCaseObserver
	now       func() time.Time
}

func NewPracticeSessionService(
	sessions repository.PracticeSessionRepo,
	turns repository.TurnRepo,
	uow db.UnitOfWork,
	generator *scenario.Generator,
	patients intelligence.PatientService,
	reviewer intelligence.FeedbackService,
	observers ...UseCaseObserver,
) PracticeSessionService {
	return &practiceSessionService{
		sessions:  sessions,
		turns:     turns,
		uow:       uow,
		generator: generator,
		patients:  patients,
		reviewer:  reviewer,
		observer:  useCaseObserverOrNoop(observers),
		now:       time.Now,
	}
}

func (s *practiceSessionService) Start(ctx context.Context, filters domain.ProfileFilters) (session *domain.PracticeSession, err error) {
	fields := map[string]any{
		"topic":      filters.Topic,
		"stage":      string(filters.StageOfChange),
		"difficulty": string(filters.Difficulty),
	}
	defer observe(ctx, s.observer, "session-start", time.Now(), fields, &err)

	now := s.now().UTC()
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txSubs := repository.NewSQLiteSubscriptionRepo(tx)
		txSessions := repository.NewSQLitePracticeSessionRepo(tx)

		usage, err := usageFor(ctx, txSubs, txSessions, now)
		if err != nil {
			return err
		}
		if !usage.CanStart() {
			return fmt.Errorf("%w: %d of %d sessions used this month", domain.ErrQuotaExceeded, usage.Used, usage.Limit)
		}

		session = &domain.PracticeSession{
			ID:             uuid.New().String(),
			Profile:        s.generator.GenerateProfile(filters),
			CatalogVersion: s.generator.Catalog().Version,
			Status:         domain.SessionActive,
			StartedAt:      now,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		return txSessions.Create(ctx, session)
	})
	if err != nil {
		return nil, err
	}

	fields["session_id"] = session.ID
	fields["profile_stage"] = string(session.Profile.StageOfChange)
	return session, nil
}

func (s *practiceSessionService) Say(ctx context.Context, sessionID, utterance string) (ex *Exchange, err error) {
	fields := map[string]any{"session_id": sessionID}
	defer observe(ctx, s.observer, "session-say", time.Now(), fields, &err)

	utterance = strings.TrimSpace(utterance)
	if utterance == "" {
		return nil, domain.ErrEmptyUtterance
	}

	session, err := s.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !session.IsActive() {
		return nil, domain.ErrSessionNotActive
	}

	history, err := s.turns.ListBySession(ctx, session.ID)
	if err != nil {
		return nil, err
	}

	// The reply is produced outside the transaction; a live model may be slow.
	reply, err := s.patients.Reply(ctx, session.Profile, history, utterance)
	if err != nil {
		return nil, fmt.Errorf("generating patient reply: %w", err)
	}
	fields["intent"] = string(reply.Intent)
	fields["source"] = string(reply.Source)

	now := s.now().UTC()
	ex = &Exchange{
		Clinician: domain.Turn{
			ID:        uuid.New().String(),
			SessionID: session.ID,
			Speaker:   domain.SpeakerClinician,
			Text:      utterance,
			Intent:    reply.Intent,
			CreatedAt: now,
		},
		Patient: domain.Turn{
			ID:        uuid.New().String(),
			SessionID: session.ID,
			Speaker:   domain.SpeakerPatient,
			Text:      reply.Text,
			Source:    reply.Source,
			CreatedAt: now,
		},
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txSessions := repository.NewSQLitePracticeSessionRepo(tx)
		txTurns := repository.NewSQLiteTurnRepo(tx)

		current, err := txSessions.GetByID(ctx, session.ID)
		if err != nil {
			return err
		}
		if !current.IsActive() {
			return domain.ErrSessionNotActive
		}

		seq, err := txTurns.NextSeq(ctx, session.ID)
		if err != nil {
			return err
		}
		ex.Clinician.Seq = seq
		ex.Patient.Seq = seq + 1

		if err := txTurns.Create(ctx, &ex.Clinician); err != nil {
			return err
		}
		if err := txTurns.Create(ctx, &ex.Patient); err != nil {
			return err
		}

		current.UpdatedAt = now
		return txSessions.Update(ctx, current)
	})
	if err != nil {
		return nil, err
	}
	return ex, nil
}

func (s *practiceSessionService) End(ctx context.Context, sessionID string) (review *SessionReview, err error) {
	fields := map[string]any{"session_id": sessionID}
	defer observe(ctx, s.observer, "session-end", time.Now(), fields, &err)

	session, err := s.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !session.IsActive() {
		return nil, domain.ErrSessionNotActive
	}

	transcript, err := s.turns.ListBySession(ctx, session.ID)
	if err != nil {
		return nil, err
	}
	fields["turns"] = len(transcript)

	feedback, err := s.reviewer.Review(ctx, session.Profile, transcript)
	if err != nil {
		return nil, fmt.Errorf("reviewing session: %w", err)
	}
	fields["feedback_source"] = feedback.Source

	data, err := json.Marshal(feedback)
	if err != nil {
		return nil, fmt.Errorf("encoding feedback: %w", err)
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txSessions := repository.NewSQLitePracticeSessionRepo(tx)
		current, err := txSessions.GetByID(ctx, session.ID)
		if err != nil {
			return err
		}
		if err := current.Complete(string(data), s.now().UTC()); err != nil {
			return err
		}
		session = current
		return txSessions.Update(ctx, current)
	})
	if err != nil {
		return nil, err
	}
	return &SessionReview{Session: session, Feedback: feedback}, nil
}

func (s *practiceSessionService) Abandon(ctx context.Context, sessionID string) error {
	session, err := s.GetByID(ctx, sessionID)
	if err != nil {
		return err
	}
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txSessions := repository.NewSQLitePracticeSessionRepo(tx)
		current, err := txSessions.GetByID(ctx, session.ID)
		if err != nil {
			return err
		}
		if err := current.Abandon(s.now().UTC()); err != nil {
			return err
		}
		return txSessions.Update(ctx, current)
	})
}

func (s *practiceSessionService) GetByID(ctx context.Context, id string) (*domain.PracticeSession, error) {
	session, err := s.sessions.GetByID(ctx, id)
	if err == nil || !errors.Is(err, repository.ErrNotFound) || len(id) < minPrefixLen {
		return session, err
	}

	ids, findErr := s.sessions.FindIDsByPrefix(ctx, id, 2)
	if findErr != nil {
		return nil, findErr
	}
	switch len(ids) {
	case 0:
		return nil, err
	case 1:
		return s.sessions.GetByID(ctx, ids[0])
	default:
		return nil, fmt.Errorf("%w: %q", ErrAmbiguousID, id)
	}
}

func (s *practiceSessionService) Transcript(ctx context.Context, sessionID string) ([]domain.Turn, error) {
	session, err := s.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return s.turns.ListBySession(ctx, session.ID)
}

func (s *practiceSessionService) Feedback(ctx context.Context, sessionID string) (*intelligence.Feedback, error) {
	session, err := s.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Feedback == "" {
		return nil, ErrNoFeedback
	}
	var fb intelligence.Feedback
	if err := json.Unmarshal([]byte(session.Feedback), &fb); err != nil {
		return nil, fmt.Errorf("decoding feedback: %w", err)
	}
	return &fb, nil
}

func (s *practiceSessionService) List(ctx context.Context, limit int) ([]*domain.PracticeSession, error) {
	return s.sessions.List(ctx, limit)
}

func (s *practiceSessionService) Delete(ctx context.Context, sessionID string) error {
	session, err := s.GetByID(ctx, sessionID)
	if err != nil {
		return err
	}
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return repository.NewSQLitePracticeSessionRepo(tx).Delete(ctx, session.ID, s.now().UTC())
	})
}

// usageFor computes quota consumption for now's UTC month.
func usageFor(ctx context.Context, subs repository.SubscriptionRepo, sessions repository.PracticeSessionRepo, now time.Time) (*domain.Usage, error) {
	sub, err := subs.Get(ctx)
	if err != nil {
		return nil, err
	}
	monthStart := domain.MonthStart(now)
	used, err := sessions.CountStartedSince(ctx, monthStart)
	if err != nil {
		return nil, err
	}
	return &domain.Usage{
		Tier:       sub.Tier,
		Used:       used,
		Limit:      sub.Tier.MonthlyLimit(),
		MonthStart: monthStart,
	}, nil
}
