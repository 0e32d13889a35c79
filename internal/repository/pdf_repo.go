package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"studyhub-backend/internal/models"
)

type PDFRepo struct {
	pool *pgxpool.Pool
}

func NewPDFRepo(pool *pgxpool.Pool) *PDFRepo {
	return &PDFRepo{pool: pool}
}

func (r *PDFRepo) Create(ctx context.Context, p *models.SavedPDF) error {
	p.ID = uuid.New()
	return r.pool.QueryRow(ctx,
		`INSERT INTO saved_pdfs (id, user_id, title, payload)
		 VALUES ($1, $2, $3, $4) RETURNING created_at`,
		p.ID, p.UserID, p.Title, p.Payload,
	).Scan(&p.CreatedAt)
}

// ListByUser omits payloads; a list view never needs megabytes of base64.
func (r *PDFRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.SavedPDF, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, user_id, title, created_at
		 FROM saved_pdfs WHERE user_id = $1 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pdfs []models.SavedPDF
	for rows.Next() {
		var p models.SavedPDF
		if err := rows.Scan(&p.ID, &p.UserID, &p.Title, &p.CreatedAt); err != nil {
			return nil, err
		}
		pdfs = append(pdfs, p)
	}
	return pdfs, rows.Err()
}

func (r *PDFRepo) GetByID(ctx context.Context, id, userID uuid.UUID) (*models.SavedPDF, error) {
	p := &models.SavedPDF{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, user_id, title, payload, created_at
		 FROM saved_pdfs WHERE id = $1 AND user_id = $2`,
		id, userID,
	).Scan(&p.ID, &p.UserID, &p.Title, &p.Payload, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *PDFRepo) Delete(ctx context.Context, id, userID uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM saved_pdfs WHERE id = $1 AND user_id = $2`, id, userID)
	return err
}

func (r *PDFRepo) CountByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM saved_pdfs WHERE user_id = $1`, userID).Scan(&count)
	return count, err
}
