package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/mipractice/internal/db"
	"github.com/alexanderramin/mipractice/internal/domain"
)

// SQLiteTurnRepo implements TurnRepo using a SQLite database.
type SQLiteTurnRepo struct {
	db db.DBTX
}

// NewSQLiteTurnRepo creates a new SQLiteTurnRepo.
func NewSQLiteTurnRepo(conn db.DBTX) *SQLiteTurnRepo {
	return &SQLiteTurnRepo{db: conn}
}

func (r *SQLiteTurnRepo) Create(ctx context.Context, t *domain.Turn) error {
	query := `INSERT INTO turns (id, session_id, seq, speaker, text, intent, source, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		t.ID,
		t.SessionID,
		t.Seq,
		string(t.Speaker),
		t.Text,
		string(t.Intent),
		string(t.Source),
		formatTime(t.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting turn: %w", err)
	}
	return nil
}

// ListBySession returns the session's transcript in seq order.
func (r *SQLiteTurnRepo) ListBySession(ctx context.Context, sessionID string) ([]domain.Turn, error) {
	query := `SELECT id, session_id, seq, speaker, text, intent, source, created_at
		FROM turns WHERE session_id = ? ORDER BY seq`
	rows, err := r.db.QueryContext(ctx, query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("listing turns: %w", err)
	}
	defer rows.Close()

	var turns []domain.Turn
	for rows.Next() {
		var t domain.Turn
		var speaker, intent, source, createdAt string
		if err := rows.Scan(&t.ID, &t.SessionID, &t.Seq, &speaker, &t.Text, &intent, &source, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning turn row: %w", err)
		}
		t.Speaker = domain.Speaker(speaker)
		t.Intent = domain.ClinicianIntent(intent)
		t.Source = domain.ReplySource(source)
		if t.CreatedAt, err = time.Parse(timeLayout, createdAt); err != nil {
			return nil, fmt.Errorf("parsing created_at: %w", err)
		}
		turns = append(turns, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating turns: %w", err)
	}
	return turns, nil
}

// NextSeq returns the seq the session's next turn should use, starting at 1.
func (r *SQLiteTurnRepo) NextSeq(ctx context.Context, sessionID string) (int, error) {
	var next int
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(seq), 0) + 1 FROM turns WHERE session_id = ?`, sessionID,
	).Scan(&next)
	if err != nil {
		return 0, fmt.Errorf("allocating turn seq: %w", err)
	}
	return next, nil
}
