package maintenance

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// rlsTables lists every table the API writes; all of them get row level
// security enabled with a permissive policy for the service role and a
// read-only policy for anonymous access to published rows.
var rlsTables = []string{
	"products",
	"articles",
	"doctors",
	"webinars",
	"partners",
	"orders",
	"order_items",
	"admin_role_audit",
}

// publicReadPolicies maps tables with a public storefront view to the
// predicate anonymous readers are limited to.
var publicReadPolicies = map[string]string{
	"products": "published = TRUE",
	"articles": "published = TRUE",
	"webinars": "published = TRUE",
	"doctors":  "active = TRUE",
	"partners": "active = TRUE",
}

// EnableRowLevelSecurity turns on RLS for every platform table and
// installs the service/anonymous policies. Statements are idempotent so
// the command can run repeatedly.
func EnableRowLevelSecurity(ctx context.Context, pool *pgxpool.Pool, logger *zap.Logger) error {
	for _, table := range rlsTables {
		for _, stmt := range rlsStatements(table) {
			if _, err := pool.Exec(ctx, stmt); err != nil {
				return fmt.Errorf("rls on %s: %w", table, err)
			}
		}
		logger.Info("row level security enabled", zap.String("table", table))
	}
	return nil
}

// rlsStatements builds the statements for a single table. Drop-then-create
// keeps the set idempotent.
func rlsStatements(table string) []string {
	stmts := []string{
		fmt.Sprintf(`ALTER TABLE %s ENABLE ROW LEVEL SECURITY`, table),
		fmt.Sprintf(`DROP POLICY IF EXISTS %s_service_all ON %s`, table, table),
		fmt.Sprintf(`CREATE POLICY %s_service_all ON %s FOR ALL TO service_role USING (TRUE) WITH CHECK (TRUE)`, table, table),
	}
	if predicate, ok := publicReadPolicies[table]; ok {
		stmts = append(stmts,
			fmt.Sprintf(`DROP POLICY IF EXISTS %s_public_read ON %s`, table, table),
			fmt.Sprintf(`CREATE POLICY %s_public_read ON %s FOR SELECT TO anon USING (%s)`, table, table, predicate),
		)
	}
	return stmts
}
