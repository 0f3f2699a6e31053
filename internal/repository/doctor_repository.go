package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/medikita/platform/internal/domain"
)

// DoctorRepository encapsulates doctor persistence.
type DoctorRepository interface {
	Create(ctx context.Context, doctor *domain.Doctor) error
	Update(ctx context.Context, doctor *domain.Doctor) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Doctor, error)
	List(ctx context.Context, activeOnly bool) ([]domain.Doctor, error)
}

type doctorRepository struct {
	pool *pgxpool.Pool
}

// NewDoctorRepository returns a Postgres-backed implementation.
func NewDoctorRepository(pool *pgxpool.Pool) DoctorRepository {
	return &doctorRepository{pool: pool}
}

const doctorColumns = `id, name, specialty_id, specialty_en, hospital, schedule, photo_url, active, created_at, updated_at`

func scanDoctor(row pgx.Row, d *domain.Doctor) error {
	return row.Scan(
		&d.ID,
		&d.Name,
		&d.SpecialtyID,
		&d.SpecialtyEN,
		&d.Hospital,
		&d.Schedule,
		&d.PhotoURL,
		&d.Active,
		&d.CreatedAt,
		&d.UpdatedAt,
	)
}

func (r *doctorRepository) Create(ctx context.Context, doctor *domain.Doctor) error {
	const query = `
        INSERT INTO doctors (name, specialty_id, specialty_en, hospital, schedule, photo_url, active)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		doctor.Name,
		doctor.SpecialtyID,
		doctor.SpecialtyEN,
		doctor.Hospital,
		doctor.Schedule,
		doctor.PhotoURL,
		doctor.Active,
	).Scan(&doctor.ID, &doctor.CreatedAt, &doctor.UpdatedAt)
}

func (r *doctorRepository) Update(ctx context.Context, doctor *domain.Doctor) error {
	const query = `
        UPDATE doctors SET name=$1, specialty_id=$2, specialty_en=$3, hospital=$4, schedule=$5,
            photo_url=$6, active=$7, updated_at=NOW()
        WHERE id=$8`
	cmd, err := r.pool.Exec(ctx, query,
		doctor.Name,
		doctor.SpecialtyID,
		doctor.SpecialtyEN,
		doctor.Hospital,
		doctor.Schedule,
		doctor.PhotoURL,
		doctor.Active,
		doctor.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *doctorRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM doctors WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *doctorRepository) GetByID(ctx context.Context, id string) (*domain.Doctor, error) {
	query := fmt.Sprintf(`SELECT %s FROM doctors WHERE id=$1`, doctorColumns)
	var d domain.Doctor
	if err := scanDoctor(r.pool.QueryRow(ctx, query, id), &d); err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *doctorRepository) List(ctx context.Context, activeOnly bool) ([]domain.Doctor, error) {
	query := fmt.Sprintf(`SELECT %s FROM doctors`, doctorColumns)
	if activeOnly {
		query += " WHERE active = TRUE"
	}
	query += " ORDER BY name"

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var doctors []domain.Doctor
	for rows.Next() {
		var d domain.Doctor
		if err := scanDoctor(rows, &d); err != nil {
			return nil, err
		}
		doctors = append(doctors, d)
	}
	return doctors, rows.Err()
}
