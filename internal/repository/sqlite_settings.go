package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/alexanderramin/mipractice/internal/db"
	"github.com/alexanderramin/mipractice/internal/domain"
)

// SQLiteSettingsRepo implements SettingsRepo using a SQLite database.
type SQLiteSettingsRepo struct {
	db db.DBTX
}

// NewSQLiteSettingsRepo creates a new SQLiteSettingsRepo.
func NewSQLiteSettingsRepo(conn db.DBTX) *SQLiteSettingsRepo {
	return &SQLiteSettingsRepo{db: conn}
}

func (r *SQLiteSettingsRepo) Get(ctx context.Context) (*domain.Settings, error) {
	query := `SELECT onboarding_complete, default_topic, default_difficulty
		FROM settings WHERE id = 'default'`

	var s domain.Settings
	var onboarded int
	var difficulty string
	err := r.db.QueryRowContext(ctx, query).Scan(&onboarded, &s.DefaultTopic, &difficulty)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("settings: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning settings: %w", err)
	}
	s.OnboardingComplete = intToBool(onboarded)
	s.DefaultDifficulty = domain.Difficulty(difficulty)
	return &s, nil
}

func (r *SQLiteSettingsRepo) Upsert(ctx context.Context, s *domain.Settings) error {
	query := `INSERT OR REPLACE INTO settings (id, onboarding_complete, default_topic, default_difficulty)
		VALUES ('default', ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		boolToInt(s.OnboardingComplete),
		s.DefaultTopic,
		string(s.DefaultDifficulty),
	)
	if err != nil {
		return fmt.Errorf("upserting settings: %w", err)
	}
	return nil
}
