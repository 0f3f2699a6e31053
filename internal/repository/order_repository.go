package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/medikita/platform/internal/domain"
)

// ErrInsufficientStock is returned when an order asks for more units than
// are available for a published product.
var ErrInsufficientStock = errors.New("insufficient stock")

// OrderRepository encapsulates order persistence.
type OrderRepository interface {
	// Create inserts the order with its items and decrements product stock
	// atomically. Fails with ErrInsufficientStock when any line cannot be
	// satisfied.
	Create(ctx context.Context, order *domain.Order) error
	Update(ctx context.Context, order *domain.Order) error
	GetByRef(ctx context.Context, ref string) (*domain.Order, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]domain.Order, error)
	ListAll(ctx context.Context, limit, offset int) ([]domain.Order, error)
	// ListByStatus returns the oldest orders in the given status, used by
	// the invoice reconciler.
	ListByStatus(ctx context.Context, status domain.OrderStatus, limit int) ([]domain.Order, error)
}

type orderRepository struct {
	pool *pgxpool.Pool
}

// NewOrderRepository returns a Postgres-backed implementation.
func NewOrderRepository(pool *pgxpool.Pool) OrderRepository {
	return &orderRepository{pool: pool}
}

const orderColumns = `id, ref, user_id, user_email, total_idr, status, invoice_id, invoice_url, created_at, updated_at`

func scanOrder(row pgx.Row, o *domain.Order) error {
	return row.Scan(
		&o.ID,
		&o.Ref,
		&o.UserID,
		&o.UserEmail,
		&o.TotalIDR,
		&o.Status,
		&o.InvoiceID,
		&o.InvoiceURL,
		&o.CreatedAt,
		&o.UpdatedAt,
	)
}

func (r *orderRepository) Create(ctx context.Context, order *domain.Order) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	const insertOrder = `
        INSERT INTO orders (ref, user_id, user_email, total_idr, status)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id, created_at, updated_at`
	if err := tx.QueryRow(ctx, insertOrder,
		order.Ref,
		order.UserID,
		order.UserEmail,
		order.TotalIDR,
		order.Status,
	).Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt); err != nil {
		return err
	}

	const decrementStock = `
        UPDATE products SET stock_qty = stock_qty - $2, updated_at=NOW()
        WHERE id=$1 AND published = TRUE AND stock_qty >= $2`
	const insertItem = `
        INSERT INTO order_items (order_id, product_id, name_en, price_idr, quantity)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id`

	for i := range order.Items {
		item := &order.Items[i]
		cmd, err := tx.Exec(ctx, decrementStock, item.ProductID, item.Quantity)
		if err != nil {
			return err
		}
		if cmd.RowsAffected() == 0 {
			return ErrInsufficientStock
		}

		item.OrderID = order.ID
		if err := tx.QueryRow(ctx, insertItem,
			item.OrderID,
			item.ProductID,
			item.NameEN,
			item.PriceIDR,
			item.Quantity,
		).Scan(&item.ID); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *orderRepository) Update(ctx context.Context, order *domain.Order) error {
	const query = `
        UPDATE orders SET status=$1, invoice_id=$2, invoice_url=$3, updated_at=NOW()
        WHERE id=$4`
	cmd, err := r.pool.Exec(ctx, query,
		order.Status,
		order.InvoiceID,
		order.InvoiceURL,
		order.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *orderRepository) GetByRef(ctx context.Context, ref string) (*domain.Order, error) {
	query := fmt.Sprintf(`SELECT %s FROM orders WHERE ref=$1`, orderColumns)
	var o domain.Order
	if err := scanOrder(r.pool.QueryRow(ctx, query, ref), &o); err != nil {
		return nil, err
	}

	const itemsQuery = `
        SELECT id, order_id, product_id, name_en, price_idr, quantity
        FROM order_items WHERE order_id=$1 ORDER BY id`
	rows, err := r.pool.Query(ctx, itemsQuery, o.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.NameEN, &item.PriceIDR, &item.Quantity); err != nil {
			return nil, err
		}
		o.Items = append(o.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *orderRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]domain.Order, error) {
	query := fmt.Sprintf(`SELECT %s FROM orders WHERE user_id=$1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`, orderColumns)
	return r.list(ctx, query, userID, normalizeLimit(limit), offset)
}

func (r *orderRepository) ListAll(ctx context.Context, limit, offset int) ([]domain.Order, error) {
	query := fmt.Sprintf(`SELECT %s FROM orders ORDER BY created_at DESC LIMIT $1 OFFSET $2`, orderColumns)
	return r.list(ctx, query, normalizeLimit(limit), offset)
}

func (r *orderRepository) ListByStatus(ctx context.Context, status domain.OrderStatus, limit int) ([]domain.Order, error) {
	query := fmt.Sprintf(`SELECT %s FROM orders WHERE status=$1 ORDER BY created_at LIMIT $2`, orderColumns)
	return r.list(ctx, query, status, normalizeLimit(limit))
}

func (r *orderRepository) list(ctx context.Context, query string, args ...any) ([]domain.Order, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		var o domain.Order
		if err := scanOrder(rows, &o); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

func normalizeLimit(limit int) int {
	if limit <= 0 || limit > 100 {
		return 20
	}
	return limit
}
