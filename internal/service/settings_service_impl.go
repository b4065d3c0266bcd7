package service

import (
	"context"
	"fmt"

	"github.com/alexanderramin/mipractice/internal/domain"
	"github.com/alexanderramin/mipractice/internal/repository"
)

type settingsService struct {
	settings repository.SettingsRepo
}

func NewSettingsService(settings repository.SettingsRepo) SettingsService {
	return &settingsService{settings: settings}
}

func (s *settingsService) Get(ctx context.Context) (*domain.Settings, error) {
	return s.settings.Get(ctx)
}

func (s *settingsService) CompleteOnboarding(ctx context.Context) error {
	return s.update(ctx, func(st *domain.Settings) error {
		st.OnboardingComplete = true
		return nil
	})
}

func (s *settingsService) ResetOnboarding(ctx context.Context) error {
	return s.update(ctx, func(st *domain.Settings) error {
		st.OnboardingComplete = false
		return nil
	})
}

// SetDefaults stores the filters used when practice starts without flags.
// An empty difficulty clears the default.
func (s *settingsService) SetDefaults(ctx context.Context, topic string, difficulty domain.Difficulty) error {
	if difficulty != "" {
		parsed, ok := domain.ParseDifficulty(string(difficulty))
		if !ok {
			return fmt.Errorf("unknown difficulty %q", difficulty)
		}
		difficulty = parsed
	}
	return s.update(ctx, func(st *domain.Settings) error {
		st.DefaultTopic = topic
		st.DefaultDifficulty = difficulty
		return nil
	})
}

func (s *settingsService) update(ctx context.Context, fn func(*domain.Settings) error) error {
	current, err := s.settings.Get(ctx)
	if err != nil {
		return err
	}
	if err := fn(current); err != nil {
		return err
	}
	return s.settings.Upsert(ctx, current)
}
