package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"studyhub-backend/internal/models"
)

type StudySessionRepo struct {
	pool *pgxpool.Pool
}

func NewStudySessionRepo(pool *pgxpool.Pool) *StudySessionRepo {
	return &StudySessionRepo{pool: pool}
}

const sessionColumns = `id, user_id, subject, topic, date, start_time, duration, notes, progress, client_request_id, created_at`

func scanSession(row pgx.Row, s *models.StudySession) error {
	return row.Scan(
		&s.ID, &s.UserID, &s.Subject, &s.Topic, &s.Date, &s.StartTime,
		&s.Duration, &s.Notes, &s.Progress, &s.ClientRequestID, &s.CreatedAt,
	)
}

// Create inserts a session. When the client supplies a request identifier the
// insert is idempotent: a duplicate submission returns the already-inserted
// row instead of a second record.
func (r *StudySessionRepo) Create(ctx context.Context, s *models.StudySession) error {
	s.ID = uuid.New()

	if s.ClientRequestID != nil {
		query := `
			INSERT INTO study_sessions (id, user_id, subject, topic, date, start_time, duration, notes, progress, client_request_id)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			ON CONFLICT (user_id, client_request_id) WHERE client_request_id IS NOT NULL DO NOTHING
			RETURNING created_at`

		err := r.pool.QueryRow(ctx, query,
			s.ID, s.UserID, s.Subject, s.Topic, s.Date, s.StartTime,
			s.Duration, s.Notes, s.Progress, s.ClientRequestID,
		).Scan(&s.CreatedAt)
		if err == nil {
			return nil
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			return err
		}

		// Conflict: hand back the row the earlier submission created.
		existing := `SELECT ` + sessionColumns + ` FROM study_sessions WHERE user_id = $1 AND client_request_id = $2`
		return scanSession(r.pool.QueryRow(ctx, existing, s.UserID, *s.ClientRequestID), s)
	}

	query := `
		INSERT INTO study_sessions (id, user_id, subject, topic, date, start_time, duration, notes, progress)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at`

	return r.pool.QueryRow(ctx, query,
		s.ID, s.UserID, s.Subject, s.Topic, s.Date, s.StartTime,
		s.Duration, s.Notes, s.Progress,
	).Scan(&s.CreatedAt)
}

func (r *StudySessionRepo) GetByID(ctx context.Context, id, userID uuid.UUID) (*models.StudySession, error) {
	s := &models.StudySession{}
	query := `SELECT ` + sessionColumns + ` FROM study_sessions WHERE id = $1 AND user_id = $2`
	if err := scanSession(r.pool.QueryRow(ctx, query, id, userID), s); err != nil {
		return nil, err
	}
	return s, nil
}

func (r *StudySessionRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.StudySession, error) {
	query := `SELECT ` + sessionColumns + ` FROM study_sessions
		WHERE user_id = $1 ORDER BY date ASC, start_time ASC`
	return r.list(ctx, query, userID)
}

// ListUpcoming returns incomplete sessions dated today or later.
func (r *StudySessionRepo) ListUpcoming(ctx context.Context, userID uuid.UUID) ([]models.StudySession, error) {
	query := `SELECT ` + sessionColumns + ` FROM study_sessions
		WHERE user_id = $1 AND progress < 100 AND date >= CURRENT_DATE
		ORDER BY date ASC, start_time ASC`
	return r.list(ctx, query, userID)
}

func (r *StudySessionRepo) ListBySubject(ctx context.Context, userID uuid.UUID, subject string) ([]models.StudySession, error) {
	query := `SELECT ` + sessionColumns + ` FROM study_sessions
		WHERE user_id = $1 AND subject = $2 ORDER BY date ASC, start_time ASC`
	return r.list(ctx, query, userID, subject)
}

func (r *StudySessionRepo) list(ctx context.Context, query string, args ...interface{}) ([]models.StudySession, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []models.StudySession
	for rows.Next() {
		var s models.StudySession
		if err := scanSession(rows, &s); err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}

type SessionFieldUpdate struct {
	Subject   *string
	Topic     *string
	Date      *time.Time
	StartTime *string
	Duration  *string
	Notes     *string
	Progress  *int
}

func (r *StudySessionRepo) UpdateFields(ctx context.Context, id, userID uuid.UUID, u SessionFieldUpdate) (*models.StudySession, error) {
	query := `
		UPDATE study_sessions SET
			subject    = COALESCE($3, subject),
			topic      = COALESCE($4, topic),
			date       = COALESCE($5, date),
			start_time = COALESCE($6, start_time),
			duration   = COALESCE($7, duration),
			notes      = COALESCE($8, notes),
			progress   = COALESCE($9, progress)
		WHERE id = $1 AND user_id = $2
		RETURNING ` + sessionColumns

	s := &models.StudySession{}
	err := scanSession(r.pool.QueryRow(ctx, query, id, userID,
		u.Subject, u.Topic, u.Date, u.StartTime, u.Duration, u.Notes, u.Progress,
	), s)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// UpdateProgress is also the mark-complete path: completing a session is
// setting its progress to 100.
func (r *StudySessionRepo) UpdateProgress(ctx context.Context, id, userID uuid.UUID, progress int) (*models.StudySession, error) {
	query := `UPDATE study_sessions SET progress = $3 WHERE id = $1 AND user_id = $2 RETURNING ` + sessionColumns

	s := &models.StudySession{}
	if err := scanSession(r.pool.QueryRow(ctx, query, id, userID, progress), s); err != nil {
		return nil, err
	}
	return s, nil
}

// Delete removes the row and returns it, so the handler can hand the caller
// an undo snapshot.
func (r *StudySessionRepo) Delete(ctx context.Context, id, userID uuid.UUID) (*models.StudySession, error) {
	query := `DELETE FROM study_sessions WHERE id = $1 AND user_id = $2 RETURNING ` + sessionColumns

	s := &models.StudySession{}
	if err := scanSession(r.pool.QueryRow(ctx, query, id, userID), s); err != nil {
		return nil, err
	}
	return s, nil
}

func (r *StudySessionRepo) CountByUser(ctx context.Context, userID uuid.UUID) (total, completed int, err error) {
	err = r.pool.QueryRow(ctx,
		`SELECT COUNT(*), COUNT(*) FILTER (WHERE progress = 100) FROM study_sessions WHERE user_id = $1`,
		userID,
	).Scan(&total, &completed)
	return total, completed, err
}
