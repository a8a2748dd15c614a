package queries

import (
	"context"
	"errors"

	"maintenance/internal/core/domain/model/client"
	"maintenance/internal/core/domain/model/kernel"
	"maintenance/internal/core/ports"
	"maintenance/internal/pkg/guard"
)

var (
	ErrGetClientTreeQueryIsNotConstructed = errors.New(
		"GetClientTreeQuery must be created via NewGetClientTreeQuery constructor",
	)
)

// GetClientTreeQuery reads a client with its substations and components,
// components listed in inspection order.
type GetClientTreeQuery struct {
	clientID kernel.UUID
	guard    guard.ConstructorGuard
}

func NewGetClientTreeQuery(clientID kernel.UUID) (GetClientTreeQuery, error) {
	if err := clientID.Validate(); err != nil {
		return GetClientTreeQuery{}, err
	}
	return GetClientTreeQuery{clientID: clientID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetClientTreeQuery) Validate() error {
	return q.guard.Validate(ErrGetClientTreeQueryIsNotConstructed)
}

func (q GetClientTreeQuery) ClientID() kernel.UUID {
	return q.clientID
}

// ClientRepositoryFactory opens a repository on the plain connection.
type ClientRepositoryFactory func() ports.ClientRepository

type GetClientTreeQueryHandler struct {
	clients ClientRepositoryFactory
}

func NewGetClientTreeQueryHandler(clients ClientRepositoryFactory) GetClientTreeQueryHandler {
	return GetClientTreeQueryHandler{clients: clients}
}

func (h GetClientTreeQueryHandler) Handle(ctx context.Context, query GetClientTreeQuery) (client.TreeSnapshot, error) {
	if err := query.Validate(); err != nil {
		return client.TreeSnapshot{}, err
	}

	c, err := h.clients().Get(ctx, query.ClientID())
	if err != nil {
		return client.TreeSnapshot{}, err
	}
	return c.Snapshot(), nil
}
