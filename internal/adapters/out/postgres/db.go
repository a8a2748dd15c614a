package postgres

import (
	"fmt"

	"maintenance/internal/adapters/out/postgres/activityrepo"
	"maintenance/internal/adapters/out/postgres/clientrepo"
	"maintenance/internal/adapters/out/postgres/fieldtestrepo"
	"maintenance/internal/adapters/out/postgres/orderrepo"
	"maintenance/internal/adapters/out/postgres/personnelrepo"

	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open connects to PostgreSQL. Errors are translated so repositories can
// match gorm.ErrDuplicatedKey regardless of the driver; connection and driver
// failures come back as errs.Unavailable.
func Open(dsn string) (*gorm.DB, error) {
	return OpenDialector(gorm_postgres.Open(dsn))
}

// OpenDialector is Open for any dialector; tests pass SQLite.
func OpenDialector(dialector gorm.Dialector) (*gorm.DB, error) {
	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err = db.Use(storeErrors{}); err != nil {
		return nil, fmt.Errorf("register store error plugin: %w", err)
	}
	return db, nil
}

// Models lists every persisted DTO in creation order.
func Models() []any {
	return []any{
		&clientrepo.ClientDTO{},
		&clientrepo.SubstationDTO{},
		&clientrepo.ComponentDTO{},
		&orderrepo.OrderDTO{},
		&orderrepo.OrderTechnicianDTO{},
		&orderrepo.OrderSubstationDTO{},
		&orderrepo.OrderComponentDTO{},
		&fieldtestrepo.FieldTestDTO{},
		&activityrepo.EntryDTO{},
		&personnelrepo.EmployeeDTO{},
	}
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("migrate schema: %w", err)
	}
	return nil
}

// DSN builds a libpq keyword/value connection string.
func DSN(host, port, user, password, dbName, sslMode string) string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, password, dbName, sslMode)
}
