// Package commands contains the operations that change state. Every handler
// runs inside one Unit of Work transaction and appends its audit entry before
// committing.
package commands

import (
	"context"

	"maintenance/internal/core/ports"
)

type (
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	ClientRepoFactory interface {
		ClientRepository() ports.ClientRepository
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	FieldTestRepoFactory interface {
		FieldTestRepository() ports.FieldTestRepository
	}

	PersonnelRepoFactory interface {
		PersonnelRepository() ports.PersonnelRepository
	}

	ActivityLogFactory interface {
		ActivityLog() ports.ActivityLog
	}

	// ClientUoW serves hierarchy edits.
	ClientUoW interface {
		TxManager
		ClientRepoFactory
		OrderRepoFactory
		ActivityLogFactory
	}

	ClientUoWFactory interface {
		Create() ClientUoW
	}

	// OrderUoW serves lifecycle transitions, which touch nothing but the order.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
		ActivityLogFactory
	}

	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// UoW serves operations that validate references across aggregates.
	UoW interface {
		TxManager
		ClientRepoFactory
		OrderRepoFactory
		FieldTestRepoFactory
		PersonnelRepoFactory
		ActivityLogFactory
	}

	UoWFactory interface {
		Create() UoW
	}
)
