package commands

import (
	"context"

	"maintenance/internal/core/domain/model/activity"
	"maintenance/internal/core/domain/model/client"
	"maintenance/internal/core/domain/model/kernel"
	"maintenance/internal/core/domain/services"
)

// CreateClientCommandHandler stores a new client tree. It runs the same plan
// as a hierarchy edit against an empty persisted set, so every row is a create.
type CreateClientCommandHandler struct {
	uowFactory ClientUoWFactory
	reconciler services.HierarchyReconciler
	clock      kernel.Clock
}

func NewCreateClientCommandHandler(
	uowFactory ClientUoWFactory,
	reconciler services.HierarchyReconciler,
	clock kernel.Clock,
) CreateClientCommandHandler {
	return CreateClientCommandHandler{uowFactory: uowFactory, reconciler: reconciler, clock: clock}
}

// Handle returns the stored tree.
func (h *CreateClientCommandHandler) Handle(ctx context.Context, cmd CreateClientCommand) (client.TreeSnapshot, error) {
	if err := cmd.Validate(); err != nil {
		return client.TreeSnapshot{}, err
	}
	if err := client.AuthorizeMaintain(cmd.Actor(), "create client"); err != nil {
		return client.TreeSnapshot{}, err
	}

	aggregate, err := client.NewClient(cmd.Profile())
	if err != nil {
		return client.TreeSnapshot{}, err
	}
	plan, err := h.reconciler.Plan(aggregate.ID(), nil, cmd.Substations())
	if err != nil {
		return client.TreeSnapshot{}, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return client.TreeSnapshot{}, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.ClientRepository()
	if err = repo.Add(ctx, aggregate); err != nil {
		return client.TreeSnapshot{}, err
	}
	if err = applyHierarchyPlan(ctx, repo, aggregate.ID(), plan); err != nil {
		return client.TreeSnapshot{}, err
	}

	stored, err := repo.Get(ctx, aggregate.ID())
	if err != nil {
		return client.TreeSnapshot{}, err
	}
	snapshot := stored.Snapshot()

	if err = appendActivity(ctx, uow.ActivityLog(), activity.ActionCreate, activity.EntityClient,
		snapshot.ID.String(), snapshot, cmd.Actor(), h.clock.Now()); err != nil {
		return client.TreeSnapshot{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return client.TreeSnapshot{}, err
	}
	return snapshot, nil
}
