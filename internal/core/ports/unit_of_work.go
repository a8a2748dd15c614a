package ports

import (
	"context"
)

// UnitOfWorkFactory creates one UnitOfWork per command.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is a business transaction boundary. Repositories obtained from
// it after Begin are bound to the transaction.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	ClientRepository() ClientRepository
	OrderRepository() OrderRepository
	FieldTestRepository() FieldTestRepository
	PersonnelRepository() PersonnelRepository
	ActivityLog() ActivityLog
}
