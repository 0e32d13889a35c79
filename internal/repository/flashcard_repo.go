package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"studyhub-backend/internal/models"
)

type FlashcardRepo struct {
	pool *pgxpool.Pool
}

func NewFlashcardRepo(pool *pgxpool.Pool) *FlashcardRepo {
	return &FlashcardRepo{pool: pool}
}

// Deck operations. card_count is never stored; every read derives it from
// the cards table so it cannot drift.

func (r *FlashcardRepo) CreateDeck(ctx context.Context, d *models.FlashcardDeck) error {
	d.ID = uuid.New()
	return r.pool.QueryRow(ctx,
		`INSERT INTO flashcard_decks (id, user_id, name, subject)
		 VALUES ($1, $2, $3, $4) RETURNING created_at`,
		d.ID, d.UserID, d.Name, d.Subject,
	).Scan(&d.CreatedAt)
}

func (r *FlashcardRepo) GetDeckByID(ctx context.Context, id, userID uuid.UUID) (*models.FlashcardDeck, error) {
	d := &models.FlashcardDeck{}
	query := `
		SELECT d.id, d.user_id, d.name, d.subject, d.created_at,
			(SELECT COUNT(*) FROM flashcards c WHERE c.deck_id = d.id) AS card_count
		FROM flashcard_decks d WHERE d.id = $1 AND d.user_id = $2`

	err := r.pool.QueryRow(ctx, query, id, userID).Scan(
		&d.ID, &d.UserID, &d.Name, &d.Subject, &d.CreatedAt, &d.CardCount,
	)
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (r *FlashcardRepo) ListDecksByUser(ctx context.Context, userID uuid.UUID) ([]models.FlashcardDeck, error) {
	query := `
		SELECT d.id, d.user_id, d.name, d.subject, d.created_at,
			(SELECT COUNT(*) FROM flashcards c WHERE c.deck_id = d.id) AS card_count
		FROM flashcard_decks d WHERE d.user_id = $1 ORDER BY d.created_at DESC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var decks []models.FlashcardDeck
	for rows.Next() {
		var d models.FlashcardDeck
		if err := rows.Scan(&d.ID, &d.UserID, &d.Name, &d.Subject, &d.CreatedAt, &d.CardCount); err != nil {
			return nil, err
		}
		decks = append(decks, d)
	}
	return decks, rows.Err()
}

func (r *FlashcardRepo) DeleteDeck(ctx context.Context, id, userID uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM flashcard_decks WHERE id = $1 AND user_id = $2`, id, userID)
	return err
}

// Card operations

func (r *FlashcardRepo) AddCard(ctx context.Context, c *models.Flashcard) error {
	c.ID = uuid.New()
	return r.pool.QueryRow(ctx,
		`INSERT INTO flashcards (id, deck_id, front, back)
		 VALUES ($1, $2, $3, $4) RETURNING created_at`,
		c.ID, c.DeckID, c.Front, c.Back,
	).Scan(&c.CreatedAt)
}

// CreateCards inserts a generated batch inside one transaction so a failing
// card leaves the deck untouched.
func (r *FlashcardRepo) CreateCards(ctx context.Context, deckID uuid.UUID, generated []models.GeneratedCard) ([]models.Flashcard, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	cards := make([]models.Flashcard, len(generated))
	for i, g := range generated {
		cards[i] = models.Flashcard{
			ID:     uuid.New(),
			DeckID: deckID,
			Front:  g.Front,
			Back:   g.Back,
		}
		err := tx.QueryRow(ctx,
			`INSERT INTO flashcards (id, deck_id, front, back)
			 VALUES ($1, $2, $3, $4) RETURNING created_at`,
			cards[i].ID, deckID, cards[i].Front, cards[i].Back,
		).Scan(&cards[i].CreatedAt)
		if err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return cards, nil
}

func (r *FlashcardRepo) GetCardsByDeck(ctx context.Context, deckID uuid.UUID) ([]models.Flashcard, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, deck_id, front, back, created_at
		 FROM flashcards WHERE deck_id = $1 ORDER BY created_at ASC, id ASC`,
		deckID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cards []models.Flashcard
	for rows.Next() {
		var c models.Flashcard
		if err := rows.Scan(&c.ID, &c.DeckID, &c.Front, &c.Back, &c.CreatedAt); err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, rows.Err()
}

func (r *FlashcardRepo) UpdateCard(ctx context.Context, cardID, userID uuid.UUID, front, back string) (*models.Flashcard, error) {
	c := &models.Flashcard{}
	err := r.pool.QueryRow(ctx,
		`UPDATE flashcards c SET front = $3, back = $4
		 FROM flashcard_decks d
		 WHERE c.id = $1 AND c.deck_id = d.id AND d.user_id = $2
		 RETURNING c.id, c.deck_id, c.front, c.back, c.created_at`,
		cardID, userID, front, back,
	).Scan(&c.ID, &c.DeckID, &c.Front, &c.Back, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *FlashcardRepo) DeleteCard(ctx context.Context, cardID, userID uuid.UUID) error {
	_, err := r.pool.Exec(ctx,
		`DELETE FROM flashcards c USING flashcard_decks d
		 WHERE c.id = $1 AND c.deck_id = d.id AND d.user_id = $2`,
		cardID, userID,
	)
	return err
}

func (r *FlashcardRepo) CountCards(ctx context.Context, deckID uuid.UUID) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM flashcards WHERE deck_id = $1`, deckID).Scan(&count)
	return count, err
}

func (r *FlashcardRepo) CountByUser(ctx context.Context, userID uuid.UUID) (decks, cards int, err error) {
	err = r.pool.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM flashcard_decks WHERE user_id = $1),
			(SELECT COUNT(*) FROM flashcards c JOIN flashcard_decks d ON c.deck_id = d.id WHERE d.user_id = $1)
	`, userID).Scan(&decks, &cards)
	return decks, cards, err
}
