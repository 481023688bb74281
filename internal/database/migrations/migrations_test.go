package migrations

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readSQL(t *testing.T, name string) string {
	t.Helper()
	b, err := fs.ReadFile(sqlFiles, "sql/"+name)
	require.NoError(t, err)
	return string(b)
}

func TestEmbeddedMigrationsArePaired(t *testing.T) {
	entries, err := fs.ReadDir(sqlFiles, "sql")
	require.NoError(t, err)

	ups := map[string]bool{}
	downs := map[string]bool{}
	for _, e := range entries {
		name := e.Name()
		switch {
		case strings.HasSuffix(name, ".up.sql"):
			ups[strings.TrimSuffix(name, ".up.sql")] = true
		case strings.HasSuffix(name, ".down.sql"):
			downs[strings.TrimSuffix(name, ".down.sql")] = true
		default:
			t.Errorf("unexpected file %s", name)
		}
	}
	assert.Equal(t, ups, downs)
	assert.Len(t, ups, 2)
}

func TestOrderIndexBelongsToSecondMigration(t *testing.T) {
	const index = "idx_bookings_razorpay_order_id"

	assert.NotContains(t, readSQL(t, "000001_init_schema.up.sql"), index)
	assert.NotContains(t, readSQL(t, "000001_init_schema.down.sql"), index)

	up := readSQL(t, "000002_bookings_payment_order.up.sql")
	assert.Contains(t, up, "CREATE INDEX IF NOT EXISTS "+index)
	assert.NotContains(t, up, "DROP INDEX")
	assert.Contains(t, readSQL(t, "000002_bookings_payment_order.down.sql"), "DROP INDEX IF EXISTS "+index)
}
