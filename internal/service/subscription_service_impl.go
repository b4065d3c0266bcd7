package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/mipractice/internal/domain"
	"github.com/alexanderramin/mipractice/internal/repository"
)

type subscriptionService struct {
	subs     repository.SubscriptionRepo
	sessions repository.PracticeSessionRepo
}

func NewSubscriptionService(subs repository.SubscriptionRepo, sessions repository.PracticeSessionRepo) SubscriptionService {
	return &subscriptionService{subs: subs, sessions: sessions}
}

func (s *subscriptionService) Get(ctx context.Context) (*domain.Subscription, error) {
	return s.subs.Get(ctx)
}

// SetTier switches the local plan. Billing integrations call this after a
// successful payment or cancellation.
func (s *subscriptionService) SetTier(ctx context.Context, tier domain.Tier) error {
	parsed, ok := domain.ParseTier(string(tier))
	if !ok {
		return fmt.Errorf("unknown tier %q (want free or premium)", tier)
	}
	return s.subs.Upsert(ctx, &domain.Subscription{Tier: parsed, UpdatedAt: time.Now().UTC()})
}

func (s *subscriptionService) Usage(ctx context.Context, now time.Time) (*domain.Usage, error) {
	return usageFor(ctx, s.subs, s.sessions, now)
}
