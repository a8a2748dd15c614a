// Package sqlitetest opens the schema on an in-memory SQLite database for
// tests that need real SQL without a container.
package sqlitetest

import (
	"testing"

	"maintenance/internal/adapters/out/postgres"
	"maintenance/internal/adapters/out/postgres/personnelrepo"
	"maintenance/internal/core/domain/model/personnel"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Open returns a migrated database. The pool is pinned to one connection,
// since every new connection to ":memory:" is a new empty database.
func Open(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := postgres.OpenDialector(sqlite.Open(":memory:"))
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	require.NoError(t, postgres.Migrate(db))
	return db
}

// SeedEmployees registers people in the employee table.
func SeedEmployees(t testing.TB, db *gorm.DB, employees ...personnel.Employee) {
	t.Helper()

	for _, e := range employees {
		dto := personnelrepo.FromDomain(e)
		require.NoError(t, db.Create(&dto).Error)
	}
}
