package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/mipractice/internal/db"
	"github.com/alexanderramin/mipractice/internal/domain"
)

// SQLiteSubscriptionRepo implements SubscriptionRepo over the single
// 'default' subscription row.
type SQLiteSubscriptionRepo struct {
	db db.DBTX
}

// NewSQLiteSubscriptionRepo creates a new SQLiteSubscriptionRepo.
func NewSQLiteSubscriptionRepo(conn db.DBTX) *SQLiteSubscriptionRepo {
	return &SQLiteSubscriptionRepo{db: conn}
}

func (r *SQLiteSubscriptionRepo) Get(ctx context.Context) (*domain.Subscription, error) {
	var tier, updatedAt string
	err := r.db.QueryRowContext(ctx,
		`SELECT tier, updated_at FROM subscription WHERE id = 'default'`,
	).Scan(&tier, &updatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("subscription: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning subscription: %w", err)
	}

	s := &domain.Subscription{Tier: domain.Tier(tier)}
	if updatedAt != "" {
		if s.UpdatedAt, err = time.Parse(timeLayout, updatedAt); err != nil {
			return nil, fmt.Errorf("parsing updated_at: %w", err)
		}
	}
	return s, nil
}

func (r *SQLiteSubscriptionRepo) Upsert(ctx context.Context, s *domain.Subscription) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO subscription (id, tier, updated_at) VALUES ('default', ?, ?)`,
		string(s.Tier), formatTime(s.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("upserting subscription: %w", err)
	}
	return nil
}
