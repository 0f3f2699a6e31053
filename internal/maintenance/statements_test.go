package maintenance

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRLSStatementsForPublicTable(t *testing.T) {
	stmts := rlsStatements("products")
	require.Len(t, stmts, 5)

	assert.Equal(t, "ALTER TABLE products ENABLE ROW LEVEL SECURITY", stmts[0])
	assert.Equal(t, "DROP POLICY IF EXISTS products_service_all ON products", stmts[1])
	assert.Contains(t, stmts[2], "FOR ALL TO service_role")
	assert.Equal(t, "DROP POLICY IF EXISTS products_public_read ON products", stmts[3])
	assert.Contains(t, stmts[4], "FOR SELECT TO anon USING (published = TRUE)")
}

func TestRLSStatementsForInternalTable(t *testing.T) {
	stmts := rlsStatements("admin_role_audit")
	require.Len(t, stmts, 3)
	for _, stmt := range stmts {
		assert.NotContains(t, stmt, "anon")
	}
}

func TestRLSCoversEveryPublicPolicy(t *testing.T) {
	listed := make(map[string]bool, len(rlsTables))
	for _, table := range rlsTables {
		listed[table] = true
	}
	for table := range publicReadPolicies {
		assert.True(t, listed[table], "policy table %s missing from rls set", table)
	}
}

func TestForeignKeyDefinitions(t *testing.T) {
	require.Len(t, foreignKeys, 2)

	byConstraint := make(map[string]foreignKey, len(foreignKeys))
	for _, fk := range foreignKeys {
		assert.Equal(t, "order_items", fk.table)
		byConstraint[fk.constraint] = fk
	}

	orderFK, ok := byConstraint["order_items_order_id_fkey"]
	require.True(t, ok)
	assert.True(t, strings.HasSuffix(orderFK.definition, "ON DELETE CASCADE"))

	productFK, ok := byConstraint["order_items_product_id_fkey"]
	require.True(t, ok)
	assert.NotContains(t, productFK.definition, "CASCADE")
}
