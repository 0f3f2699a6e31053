package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/medikita/platform/internal/domain"
)

// PartnerRepository encapsulates partner persistence.
type PartnerRepository interface {
	Create(ctx context.Context, partner *domain.Partner) error
	Update(ctx context.Context, partner *domain.Partner) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Partner, error)
	List(ctx context.Context, activeOnly bool) ([]domain.Partner, error)
}

type partnerRepository struct {
	pool *pgxpool.Pool
}

// NewPartnerRepository returns a Postgres-backed implementation.
func NewPartnerRepository(pool *pgxpool.Pool) PartnerRepository {
	return &partnerRepository{pool: pool}
}

const partnerColumns = `id, name, tier, logo_url, site_url, active, created_at, updated_at`

func scanPartner(row pgx.Row, p *domain.Partner) error {
	return row.Scan(
		&p.ID,
		&p.Name,
		&p.Tier,
		&p.LogoURL,
		&p.SiteURL,
		&p.Active,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
}

func (r *partnerRepository) Create(ctx context.Context, partner *domain.Partner) error {
	const query = `
        INSERT INTO partners (name, tier, logo_url, site_url, active)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		partner.Name,
		partner.Tier,
		partner.LogoURL,
		partner.SiteURL,
		partner.Active,
	).Scan(&partner.ID, &partner.CreatedAt, &partner.UpdatedAt)
}

func (r *partnerRepository) Update(ctx context.Context, partner *domain.Partner) error {
	const query = `
        UPDATE partners SET name=$1, tier=$2, logo_url=$3, site_url=$4, active=$5, updated_at=NOW()
        WHERE id=$6`
	cmd, err := r.pool.Exec(ctx, query,
		partner.Name,
		partner.Tier,
		partner.LogoURL,
		partner.SiteURL,
		partner.Active,
		partner.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *partnerRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM partners WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *partnerRepository) GetByID(ctx context.Context, id string) (*domain.Partner, error) {
	query := fmt.Sprintf(`SELECT %s FROM partners WHERE id=$1`, partnerColumns)
	var p domain.Partner
	if err := scanPartner(r.pool.QueryRow(ctx, query, id), &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *partnerRepository) List(ctx context.Context, activeOnly bool) ([]domain.Partner, error) {
	query := fmt.Sprintf(`SELECT %s FROM partners`, partnerColumns)
	if activeOnly {
		query += " WHERE active = TRUE"
	}
	query += ` ORDER BY CASE tier WHEN 'PLATINUM' THEN 0 WHEN 'GOLD' THEN 1 ELSE 2 END, name`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var partners []domain.Partner
	for rows.Next() {
		var p domain.Partner
		if err := scanPartner(rows, &p); err != nil {
			return nil, err
		}
		partners = append(partners, p)
	}
	return partners, rows.Err()
}
