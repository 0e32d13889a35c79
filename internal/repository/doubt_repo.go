package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"studyhub-backend/internal/models"
)

type DoubtRepo struct {
	pool *pgxpool.Pool
}

func NewDoubtRepo(pool *pgxpool.Pool) *DoubtRepo {
	return &DoubtRepo{pool: pool}
}

// CreateWithFirstMessage inserts the doubt and its initiating user message in
// one transaction, so a doubt never exists with an empty thread.
func (r *DoubtRepo) CreateWithFirstMessage(ctx context.Context, d *models.Doubt) (*models.DoubtMessage, error) {
	if d.ClientRequestID != nil {
		existing := &models.Doubt{}
		err := r.pool.QueryRow(ctx,
			`SELECT id, user_id, question, subject, solved, client_request_id, created_at
			 FROM doubts WHERE user_id = $1 AND client_request_id = $2`,
			d.UserID, *d.ClientRequestID,
		).Scan(&existing.ID, &existing.UserID, &existing.Question, &existing.Subject,
			&existing.Solved, &existing.ClientRequestID, &existing.CreatedAt)
		if err == nil {
			*d = *existing
			msgs, merr := r.ListMessages(ctx, d.ID)
			if merr != nil {
				return nil, merr
			}
			if len(msgs) == 0 {
				return nil, pgx.ErrNoRows
			}
			return &msgs[0], nil
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	d.ID = uuid.New()
	err = tx.QueryRow(ctx,
		`INSERT INTO doubts (id, user_id, question, subject, client_request_id)
		 VALUES ($1, $2, $3, $4, $5) RETURNING solved, created_at`,
		d.ID, d.UserID, d.Question, d.Subject, d.ClientRequestID,
	).Scan(&d.Solved, &d.CreatedAt)
	if err != nil {
		return nil, err
	}

	msg := &models.DoubtMessage{
		ID:      uuid.New(),
		DoubtID: d.ID,
		Sender:  models.SenderUser,
		Content: d.Question,
	}
	err = tx.QueryRow(ctx,
		`INSERT INTO doubt_messages (id, doubt_id, sender, content)
		 VALUES ($1, $2, $3, $4) RETURNING created_at`,
		msg.ID, msg.DoubtID, msg.Sender, msg.Content,
	).Scan(&msg.CreatedAt)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return msg, nil
}

func (r *DoubtRepo) GetByID(ctx context.Context, id, userID uuid.UUID) (*models.Doubt, error) {
	d := &models.Doubt{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, user_id, question, subject, solved, client_request_id, created_at
		 FROM doubts WHERE id = $1 AND user_id = $2`,
		id, userID,
	).Scan(&d.ID, &d.UserID, &d.Question, &d.Subject, &d.Solved, &d.ClientRequestID, &d.CreatedAt)
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (r *DoubtRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Doubt, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, user_id, question, subject, solved, client_request_id, created_at
		 FROM doubts WHERE user_id = $1 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var doubts []models.Doubt
	for rows.Next() {
		var d models.Doubt
		if err := rows.Scan(&d.ID, &d.UserID, &d.Question, &d.Subject, &d.Solved, &d.ClientRequestID, &d.CreatedAt); err != nil {
			return nil, err
		}
		doubts = append(doubts, d)
	}
	return doubts, rows.Err()
}

// ListMessages returns the thread in timestamp order, message id as the
// tiebreaker so same-instant rows keep a stable order.
func (r *DoubtRepo) ListMessages(ctx context.Context, doubtID uuid.UUID) ([]models.DoubtMessage, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, doubt_id, sender, content, created_at
		 FROM doubt_messages WHERE doubt_id = $1 ORDER BY created_at ASC, id ASC`,
		doubtID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var msgs []models.DoubtMessage
	for rows.Next() {
		var m models.DoubtMessage
		if err := rows.Scan(&m.ID, &m.DoubtID, &m.Sender, &m.Content, &m.CreatedAt); err != nil {
			return nil, err
		}
		msgs = append(msgs, m)
	}
	return msgs, rows.Err()
}

func (r *DoubtRepo) AppendMessage(ctx context.Context, m *models.DoubtMessage) error {
	m.ID = uuid.New()
	return r.pool.QueryRow(ctx,
		`INSERT INTO doubt_messages (id, doubt_id, sender, content)
		 VALUES ($1, $2, $3, $4) RETURNING created_at`,
		m.ID, m.DoubtID, m.Sender, m.Content,
	).Scan(&m.CreatedAt)
}

// MarkSolved flips solved to true. There is no reversal path.
func (r *DoubtRepo) MarkSolved(ctx context.Context, id, userID uuid.UUID) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE doubts SET solved = TRUE WHERE id = $1 AND user_id = $2`,
		id, userID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *DoubtRepo) CountByUser(ctx context.Context, userID uuid.UUID) (total, solved int, err error) {
	err = r.pool.QueryRow(ctx,
		`SELECT COUNT(*), COUNT(*) FILTER (WHERE solved) FROM doubts WHERE user_id = $1`,
		userID,
	).Scan(&total, &solved)
	return total, solved, err
}
