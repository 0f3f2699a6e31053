package maintenance

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type foreignKey struct {
	table      string
	constraint string
	definition string
}

// foreignKeys holds the canonical constraint set. Early schema versions
// shipped order_items without ON DELETE CASCADE; the repair command drops
// and recreates each constraint so every environment converges on this
// definition.
var foreignKeys = []foreignKey{
	{
		table:      "order_items",
		constraint: "order_items_order_id_fkey",
		definition: "FOREIGN KEY (order_id) REFERENCES orders (id) ON DELETE CASCADE",
	},
	{
		table:      "order_items",
		constraint: "order_items_product_id_fkey",
		definition: "FOREIGN KEY (product_id) REFERENCES products (id)",
	},
}

// RepairForeignKeys recreates the known foreign key constraints inside a
// single transaction.
func RepairForeignKeys(ctx context.Context, pool *pgxpool.Pool, logger *zap.Logger) error {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin fk repair: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	for _, fk := range foreignKeys {
		drop := fmt.Sprintf(`ALTER TABLE %s DROP CONSTRAINT IF EXISTS %s`, fk.table, fk.constraint)
		if _, err := tx.Exec(ctx, drop); err != nil {
			return fmt.Errorf("drop %s: %w", fk.constraint, err)
		}

		add := fmt.Sprintf(`ALTER TABLE %s ADD CONSTRAINT %s %s`, fk.table, fk.constraint, fk.definition)
		if _, err := tx.Exec(ctx, add); err != nil {
			return fmt.Errorf("add %s: %w", fk.constraint, err)
		}
		logger.Info("foreign key repaired",
			zap.String("table", fk.table),
			zap.String("constraint", fk.constraint))
	}

	return tx.Commit(ctx)
}
