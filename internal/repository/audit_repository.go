package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// RoleAuditEntry records an out-of-band privilege change.
type RoleAuditEntry struct {
	ID          int64
	Actor       string
	TargetEmail string
	Action      string
	CreatedAt   time.Time
}

// RoleAuditRepository persists the admin-role change trail written by the
// maintenance tooling.
type RoleAuditRepository interface {
	Append(ctx context.Context, entry *RoleAuditEntry) error
	List(ctx context.Context, limit int) ([]RoleAuditEntry, error)
}

type roleAuditRepository struct {
	pool *pgxpool.Pool
}

// NewRoleAuditRepository returns a Postgres-backed implementation.
func NewRoleAuditRepository(pool *pgxpool.Pool) RoleAuditRepository {
	return &roleAuditRepository{pool: pool}
}

func (r *roleAuditRepository) Append(ctx context.Context, entry *RoleAuditEntry) error {
	const query = `
        INSERT INTO admin_role_audit (actor, target_email, action)
        VALUES ($1,$2,$3)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		entry.Actor,
		entry.TargetEmail,
		entry.Action,
	).Scan(&entry.ID, &entry.CreatedAt)
}

func (r *roleAuditRepository) List(ctx context.Context, limit int) ([]RoleAuditEntry, error) {
	if limit <= 0 {
		limit = 50
	}
	const query = `
        SELECT id, actor, target_email, action, created_at
        FROM admin_role_audit ORDER BY created_at DESC LIMIT $1`
	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []RoleAuditEntry
	for rows.Next() {
		var e RoleAuditEntry
		if err := rows.Scan(&e.ID, &e.Actor, &e.TargetEmail, &e.Action, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
