package repository

import (
	"context"
	"time"

	"github.com/alexanderramin/mipractice/internal/domain"
)

type PracticeSessionRepo interface {
	Create(ctx context.Context, s *domain.PracticeSession) error
	GetByID(ctx context.Context, id string) (*domain.PracticeSession, error)
	FindIDsByPrefix(ctx context.Context, prefix string, limit int) ([]string, error)
	List(ctx context.Context, limit int) ([]*domain.PracticeSession, error)
	CountStartedSince(ctx context.Context, since time.Time) (int, error)
	Update(ctx context.Context, s *domain.PracticeSession) error
	Delete(ctx context.Context, id string, deletedAt time.Time) error
}

type TurnRepo interface {
	Create(ctx context.Context, t *domain.Turn) error
	ListBySession(ctx context.Context, sessionID string) ([]domain.Turn, error)
	NextSeq(ctx context.Context, sessionID string) (int, error)
}

type SubscriptionRepo interface {
	Get(ctx context.Context) (*domain.Subscription, error)
	Upsert(ctx context.Context, s *domain.Subscription) error
}

type SettingsRepo interface {
	Get(ctx context.Context) (*domain.Settings, error)
	Upsert(ctx context.Context, s *domain.Settings) error
}
