package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fastygo/focus/domain"
	"github.com/fastygo/focus/repository"
)

type journalRepository struct {
	pool *pgxpool.Pool
}

// NewJournalRepository returns a Postgres-backed JournalRepository.
func NewJournalRepository(pool *pgxpool.Pool) repository.JournalRepository {
	return &journalRepository{pool: pool}
}

func (r *journalRepository) GetByID(ctx context.Context, userID, id string) (*domain.Journal, error) {
	const query = `
	SELECT id, user_id, title, content, tag, created_at, updated_at
	FROM journals
	WHERE id = $1 AND user_id = $2
	`
	return scanJournal(r.pool.QueryRow(ctx, query, id, userID))
}

func (r *journalRepository) List(ctx context.Context, filter repository.JournalFilter) ([]domain.Journal, error) {
	const query = `
	SELECT id, user_id, title, content, tag, created_at, updated_at
	FROM journals
	WHERE user_id = $1
	ORDER BY created_at DESC
	LIMIT $2 OFFSET $3
	`
	rows, err := r.pool.Query(ctx, query, filter.UserID, clampLimit(filter.Limit), filter.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	journals := make([]domain.Journal, 0)
	for rows.Next() {
		journal, err := scanJournal(rows)
		if err != nil {
			return nil, err
		}
		journals = append(journals, *journal)
	}
	return journals, rows.Err()
}

func (r *journalRepository) Create(ctx context.Context, journal *domain.Journal) (*domain.Journal, error) {
	if journal == nil {
		return nil, domain.ErrInvalidPayload
	}
	if journal.ID == "" {
		journal.ID = uuid.NewString()
	}

	const query = `
	INSERT INTO journals (id, user_id, title, content, tag)
	VALUES ($1, $2, $3, $4, $5)
	ON CONFLICT (id) DO NOTHING
	RETURNING created_at, updated_at
	`
	if err := r.pool.QueryRow(ctx, query,
		journal.ID,
		journal.UserID,
		journal.Title,
		journal.Content,
		journal.Tag,
	).Scan(&journal.CreatedAt, &journal.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return journal, nil
		}
		return nil, err
	}
	return journal, nil
}

func (r *journalRepository) Update(ctx context.Context, journal *domain.Journal) error {
	if journal == nil {
		return domain.ErrInvalidPayload
	}

	const query = `
	UPDATE journals
	SET title = $3,
		content = $4,
		tag = $5,
		updated_at = NOW()
	WHERE id = $1 AND user_id = $2
	RETURNING created_at, updated_at
	`
	if err := r.pool.QueryRow(ctx, query,
		journal.ID,
		journal.UserID,
		journal.Title,
		journal.Content,
		journal.Tag,
	).Scan(&journal.CreatedAt, &journal.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrJournalNotFound
		}
		return err
	}
	return nil
}

func (r *journalRepository) Delete(ctx context.Context, userID, id string) error {
	const query = `DELETE FROM journals WHERE id = $1 AND user_id = $2`
	tag, err := r.pool.Exec(ctx, query, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrJournalNotFound
	}
	return nil
}

func scanJournal(row pgx.Row) (*domain.Journal, error) {
	var journal domain.Journal
	if err := row.Scan(
		&journal.ID,
		&journal.UserID,
		&journal.Title,
		&journal.Content,
		&journal.Tag,
		&journal.CreatedAt,
		&journal.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrJournalNotFound
		}
		return nil, err
	}
	return &journal, nil
}
