package postgres

import (
	"errors"

	"maintenance/internal/pkg/errs"

	"gorm.io/gorm"
)

const storeErrorsName = "maintenance:store_errors"

// storeErrors reports driver and connection failures as errs.Unavailable.
// Missing rows and constraint violations are left for the repositories to
// classify.
type storeErrors struct{}

func (storeErrors) Name() string {
	return storeErrorsName
}

func (storeErrors) Initialize(db *gorm.DB) error {
	cb := db.Callback()
	return errors.Join(
		cb.Create().After("*").Register(storeErrorsName, markUnavailable),
		cb.Query().After("*").Register(storeErrorsName, markUnavailable),
		cb.Update().After("*").Register(storeErrorsName, markUnavailable),
		cb.Delete().After("*").Register(storeErrorsName, markUnavailable),
		cb.Row().After("*").Register(storeErrorsName, markUnavailable),
		cb.Raw().After("*").Register(storeErrorsName, markUnavailable),
	)
}

func markUnavailable(db *gorm.DB) {
	if db.Error == nil {
		return
	}
	db.Error = unavailable("query "+db.Statement.Table, db.Error)
}

// unavailable wraps err unless it is already classified or is one of the
// gorm errors callers match on.
func unavailable(operation string, err error) error {
	switch {
	case err == nil,
		errs.KindOf(err) != errs.KindUnknown,
		errors.Is(err, gorm.ErrRecordNotFound),
		errors.Is(err, gorm.ErrDuplicatedKey),
		errors.Is(err, gorm.ErrForeignKeyViolated),
		errors.Is(err, gorm.ErrMissingWhereClause):
		return err
	}
	return errs.NewUnavailableError(operation, err)
}
