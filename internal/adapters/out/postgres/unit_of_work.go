// Package postgres provides the GORM-based Unit of Work. Repositories
// obtained from a unit after Begin share its transaction; obtained before,
// they run on the plain connection.
//
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() {
//	    _ = uow.Rollback(ctx)
//	}()
//
//	if err := uow.OrderRepository().Update(ctx, o); err != nil {
//	    return err
//	}
//	if err := uow.ActivityLog().Append(ctx, entry); err != nil {
//	    return err
//	}
//	return uow.Commit(ctx)
//
// Rollback after Commit is a no-op that returns gorm.ErrInvalidTransaction,
// which is why handlers defer it unconditionally and drop the error.
package postgres

import (
	"context"

	"maintenance/internal/adapters/out/postgres/activityrepo"
	"maintenance/internal/adapters/out/postgres/clientrepo"
	"maintenance/internal/adapters/out/postgres/fieldtestrepo"
	"maintenance/internal/adapters/out/postgres/orderrepo"
	"maintenance/internal/adapters/out/postgres/personnelrepo"
	"maintenance/internal/core/ports"

	"gorm.io/gorm"
)

// GormUnitOfWorkFactory hands every command its own unit of work.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{db: f.db}
}

// GormUnitOfWork is not safe for concurrent use; concurrent commands each
// create their own.
type GormUnitOfWork struct {
	db *gorm.DB
	tx *gorm.DB
}

// Begin is idempotent: a second call keeps the open transaction.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	tx := uow.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return unavailable("begin transaction", tx.Error)
	}
	uow.tx = tx
	return nil
}

func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return unavailable("commit transaction", err)
}

func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	return err
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

func (uow *GormUnitOfWork) ClientRepository() ports.ClientRepository {
	return clientrepo.NewGormClientRepository(uow.conn())
}

func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn())
}

func (uow *GormUnitOfWork) FieldTestRepository() ports.FieldTestRepository {
	return fieldtestrepo.NewGormFieldTestRepository(uow.conn())
}

func (uow *GormUnitOfWork) PersonnelRepository() ports.PersonnelRepository {
	return personnelrepo.NewGormPersonnelRepository(uow.conn())
}

func (uow *GormUnitOfWork) ActivityLog() ports.ActivityLog {
	return activityrepo.NewGormActivityLog(uow.conn())
}
