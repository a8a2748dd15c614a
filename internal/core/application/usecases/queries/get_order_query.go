package queries

import (
	"context"
	"errors"

	"maintenance/internal/core/domain/model/kernel"
	"maintenance/internal/core/domain/model/order"
	"maintenance/internal/core/domain/model/personnel"
	"maintenance/internal/core/domain/services"
	"maintenance/internal/core/ports"
	"maintenance/internal/pkg/errs"
	"maintenance/internal/pkg/guard"
)

var (
	ErrGetOrderQueryIsNotConstructed = errors.New("GetOrderQuery must be created via NewGetOrderQuery constructor")
)

// GetOrderQuery reads one order by id or, when the id is zero, by number.
type GetOrderQuery struct {
	actor   personnel.Actor
	orderID kernel.UUID
	number  order.Number

	guard guard.ConstructorGuard
}

func NewGetOrderQuery(actor personnel.Actor, orderID kernel.UUID) (GetOrderQuery, error) {
	if err := errors.Join(actor.Validate(), orderID.Validate()); err != nil {
		return GetOrderQuery{}, err
	}
	return GetOrderQuery{actor: actor, orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func NewGetOrderByNumberQuery(actor personnel.Actor, number order.Number) (GetOrderQuery, error) {
	var numberErr error
	if number.IsZero() {
		numberErr = errs.NewValueIsRequiredError("order number")
	}
	if err := errors.Join(actor.Validate(), numberErr); err != nil {
		return GetOrderQuery{}, err
	}
	return GetOrderQuery{actor: actor, number: number, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// OrderRepositoryFactory opens a repository on the plain connection.
type OrderRepositoryFactory func() ports.OrderRepository

// GetOrderQueryHandler hides orders outside the actor's scope behind the same
// not-found error a missing order gets.
type GetOrderQueryHandler struct {
	orders OrderRepositoryFactory
}

func NewGetOrderQueryHandler(orders OrderRepositoryFactory) GetOrderQueryHandler {
	return GetOrderQueryHandler{orders: orders}
}

func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (order.Snapshot, error) {
	if err := query.Validate(); err != nil {
		return order.Snapshot{}, err
	}

	repo := h.orders()
	var (
		found *order.Order
		err   error
		key   string
	)
	if query.orderID.Validate() == nil {
		key = query.orderID.String()
		found, err = repo.Get(ctx, query.orderID)
	} else {
		key = query.number.String()
		found, err = repo.GetByNumber(ctx, query.number)
	}
	if err != nil {
		return order.Snapshot{}, err
	}

	team := found.Team()
	if !services.NewAccessScope(query.actor).Admits(team.SupervisorID, team.TechnicianIDs) {
		return order.Snapshot{}, errs.NewObjectNotFoundError("order", key)
	}
	return found.Snapshot(), nil
}
