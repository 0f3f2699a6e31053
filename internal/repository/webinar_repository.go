package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/medikita/platform/internal/domain"
)

// WebinarRepository encapsulates webinar persistence.
type WebinarRepository interface {
	Create(ctx context.Context, webinar *domain.Webinar) error
	Update(ctx context.Context, webinar *domain.Webinar) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Webinar, error)
	List(ctx context.Context, publishedOnly bool) ([]domain.Webinar, error)
}

type webinarRepository struct {
	pool *pgxpool.Pool
}

// NewWebinarRepository returns a Postgres-backed implementation.
func NewWebinarRepository(pool *pgxpool.Pool) WebinarRepository {
	return &webinarRepository{pool: pool}
}

const webinarColumns = `id, title_id, title_en, speaker, starts_at, registration_url, published, created_at, updated_at`

func scanWebinar(row pgx.Row, w *domain.Webinar) error {
	return row.Scan(
		&w.ID,
		&w.TitleID,
		&w.TitleEN,
		&w.Speaker,
		&w.StartsAt,
		&w.RegistrationURL,
		&w.Published,
		&w.CreatedAt,
		&w.UpdatedAt,
	)
}

func (r *webinarRepository) Create(ctx context.Context, webinar *domain.Webinar) error {
	const query = `
        INSERT INTO webinars (title_id, title_en, speaker, starts_at, registration_url, published)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		webinar.TitleID,
		webinar.TitleEN,
		webinar.Speaker,
		webinar.StartsAt,
		webinar.RegistrationURL,
		webinar.Published,
	).Scan(&webinar.ID, &webinar.CreatedAt, &webinar.UpdatedAt)
}

func (r *webinarRepository) Update(ctx context.Context, webinar *domain.Webinar) error {
	const query = `
        UPDATE webinars SET title_id=$1, title_en=$2, speaker=$3, starts_at=$4,
            registration_url=$5, published=$6, updated_at=NOW()
        WHERE id=$7`
	cmd, err := r.pool.Exec(ctx, query,
		webinar.TitleID,
		webinar.TitleEN,
		webinar.Speaker,
		webinar.StartsAt,
		webinar.RegistrationURL,
		webinar.Published,
		webinar.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *webinarRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM webinars WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *webinarRepository) GetByID(ctx context.Context, id string) (*domain.Webinar, error) {
	query := fmt.Sprintf(`SELECT %s FROM webinars WHERE id=$1`, webinarColumns)
	var w domain.Webinar
	if err := scanWebinar(r.pool.QueryRow(ctx, query, id), &w); err != nil {
		return nil, err
	}
	return &w, nil
}

func (r *webinarRepository) List(ctx context.Context, publishedOnly bool) ([]domain.Webinar, error) {
	query := fmt.Sprintf(`SELECT %s FROM webinars`, webinarColumns)
	if publishedOnly {
		query += " WHERE published = TRUE"
	}
	// upcoming first, then most recent past events
	query += " ORDER BY (starts_at >= NOW()) DESC, starts_at"

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var webinars []domain.Webinar
	for rows.Next() {
		var w domain.Webinar
		if err := scanWebinar(rows, &w); err != nil {
			return nil, err
		}
		webinars = append(webinars, w)
	}
	return webinars, rows.Err()
}
