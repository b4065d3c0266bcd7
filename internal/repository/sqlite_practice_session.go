package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/alexanderramin/mipractice/internal/db"
	"github.com/alexanderramin/mipractice/internal/domain"
)

// SQLitePracticeSessionRepo implements PracticeSessionRepo using a SQLite database.
type SQLitePracticeSessionRepo struct {
	db db.DBTX
}

// NewSQLitePracticeSessionRepo creates a new SQLitePracticeSessionRepo.
func NewSQLitePracticeSessionRepo(conn db.DBTX) *SQLitePracticeSessionRepo {
	return &SQLitePracticeSessionRepo{db: conn}
}

const practiceSessionColumns = `id, profile_json, catalog_version, status, feedback, started_at, ended_at, created_at, updated_at`

func (r *SQLitePracticeSessionRepo) Create(ctx context.Context, s *domain.PracticeSession) error {
	profileJSON, err := json.Marshal(s.Profile)
	if err != nil {
		return fmt.Errorf("encoding profile: %w", err)
	}

	query := `INSERT INTO practice_sessions (id, profile_json, topic, stage, catalog_version, status, feedback,
		started_at, ended_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		s.ID,
		string(profileJSON),
		s.Profile.Topic,
		string(s.Profile.StageOfChange),
		s.CatalogVersion,
		string(s.Status),
		s.Feedback,
		formatTime(s.StartedAt),
		nullableTimeToString(s.EndedAt),
		formatTime(s.CreatedAt),
		formatTime(s.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting practice session: %w", err)
	}
	return nil
}

func (r *SQLitePracticeSessionRepo) GetByID(ctx context.Context, id string) (*domain.PracticeSession, error) {
	query := `SELECT ` + practiceSessionColumns + ` FROM practice_sessions WHERE id = ? AND deleted_at IS NULL`
	return r.scanSession(r.db.QueryRowContext(ctx, query, id))
}

// FindIDsByPrefix returns up to limit session IDs starting with prefix.
func (r *SQLitePracticeSessionRepo) FindIDsByPrefix(ctx context.Context, prefix string, limit int) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id FROM practice_sessions
		 WHERE substr(id, 1, ?) = ? AND deleted_at IS NULL ORDER BY id LIMIT ?`,
		len(prefix), prefix, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("finding practice sessions by prefix: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning session id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// List returns the most recently started sessions first. A limit <= 0
// returns every session.
func (r *SQLitePracticeSessionRepo) List(ctx context.Context, limit int) ([]*domain.PracticeSession, error) {
	query := `SELECT ` + practiceSessionColumns + ` FROM practice_sessions WHERE deleted_at IS NULL ORDER BY started_at DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing practice sessions: %w", err)
	}
	defer rows.Close()

	var sessions []*domain.PracticeSession
	for rows.Next() {
		s, err := r.scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating practice sessions: %w", err)
	}
	return sessions, nil
}

// CountStartedSince counts sessions of any status started at or after since.
// Deleted sessions are included: removing a session does not return quota.
func (r *SQLitePracticeSessionRepo) CountStartedSince(ctx context.Context, since time.Time) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM practice_sessions WHERE started_at >= ?`, formatTime(since),
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting practice sessions: %w", err)
	}
	return n, nil
}

func (r *SQLitePracticeSessionRepo) Update(ctx context.Context, s *domain.PracticeSession) error {
	query := `UPDATE practice_sessions SET status = ?, feedback = ?, ended_at = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL`
	res, err := r.db.ExecContext(ctx, query,
		string(s.Status),
		s.Feedback,
		nullableTimeToString(s.EndedAt),
		formatTime(s.UpdatedAt),
		s.ID,
	)
	if err != nil {
		return fmt.Errorf("updating practice session: %w", err)
	}
	return requireAffected(res, "practice session")
}

// Delete removes the session's transcript and tombstones the row, hiding it
// from every read except CountStartedSince. Run it inside a unit of work.
func (r *SQLitePracticeSessionRepo) Delete(ctx context.Context, id string, deletedAt time.Time) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE practice_sessions SET deleted_at = ?, profile_json = '{}', feedback = '', updated_at = ?
		 WHERE id = ? AND deleted_at IS NULL`,
		formatTime(deletedAt), formatTime(deletedAt), id,
	)
	if err != nil {
		return fmt.Errorf("deleting practice session: %w", err)
	}
	if err := requireAffected(res, "practice session"); err != nil {
		return err
	}
	if _, err := r.db.ExecContext(ctx, `DELETE FROM turns WHERE session_id = ?`, id); err != nil {
		return fmt.Errorf("deleting turns for session %s: %w", id, err)
	}
	return nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func (r *SQLitePracticeSessionRepo) scanSession(row rowScanner) (*domain.PracticeSession, error) {
	var s domain.PracticeSession
	var profileJSON, status, startedAt, createdAt, updatedAt string
	var endedAt sql.NullString

	err := row.Scan(&s.ID, &profileJSON, &s.CatalogVersion, &status, &s.Feedback,
		&startedAt, &endedAt, &createdAt, &updatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("practice session: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning practice session: %w", err)
	}

	if err := json.Unmarshal([]byte(profileJSON), &s.Profile); err != nil {
		return nil, fmt.Errorf("decoding profile for session %s: %w", s.ID, err)
	}
	s.Status = domain.SessionStatus(status)
	s.EndedAt = parseNullableTime(endedAt)

	if s.StartedAt, err = time.Parse(timeLayout, startedAt); err != nil {
		return nil, fmt.Errorf("parsing started_at: %w", err)
	}
	if s.CreatedAt, err = time.Parse(timeLayout, createdAt); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if s.UpdatedAt, err = time.Parse(timeLayout, updatedAt); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return &s, nil
}

func requireAffected(res sql.Result, what string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	return nil
}
