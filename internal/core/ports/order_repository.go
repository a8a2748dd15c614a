package ports

import (
	"context"

	"maintenance/internal/core/domain/model/kernel"
	"maintenance/internal/core/domain/model/order"
)

// OrderRepository persists order aggregates with their team and scope links.
type OrderRepository interface {
	// Add stores a new order. A number already taken yields errs.ErrConflict
	// wrapping order.ErrNumberTaken.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update stores the order if its version still matches the one it was
	// read with, and bumps the version. A lost race yields errs.ErrConflict.
	Update(ctx context.Context, aggregate *order.Order) error

	// Delete purges the order, its links and its field tests, guarded by version.
	Delete(ctx context.Context, aggregate *order.Order) error

	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)
	GetByNumber(ctx context.Context, number order.Number) (*order.Order, error)

	// LastNumberWithPrefix returns the greatest number of the period, or nil.
	LastNumberWithPrefix(ctx context.Context, prefix string) (*order.Number, error)

	// BudgetNumberTaken reports whether another order already uses budgetNumber.
	BudgetNumberTaken(ctx context.Context, budgetNumber string, except *kernel.UUID) (bool, error)

	CountByClient(ctx context.Context, clientID kernel.UUID) (int64, error)
}
