package commands

import (
	"context"

	"maintenance/internal/core/domain/model/activity"
	"maintenance/internal/core/domain/model/client"
	"maintenance/internal/core/domain/model/kernel"
	"maintenance/internal/core/domain/services"
)

// ReconcileClientHierarchyCommandHandler applies a hierarchy edit in one
// transaction. The persisted identities are read before anything is written,
// and any failure rolls back the whole edit.
type ReconcileClientHierarchyCommandHandler struct {
	uowFactory ClientUoWFactory
	reconciler services.HierarchyReconciler
	clock      kernel.Clock
}

func NewReconcileClientHierarchyCommandHandler(
	uowFactory ClientUoWFactory,
	reconciler services.HierarchyReconciler,
	clock kernel.Clock,
) ReconcileClientHierarchyCommandHandler {
	return ReconcileClientHierarchyCommandHandler{uowFactory: uowFactory, reconciler: reconciler, clock: clock}
}

// Handle returns the tree as stored after the edit.
func (h *ReconcileClientHierarchyCommandHandler) Handle(
	ctx context.Context,
	cmd ReconcileClientHierarchyCommand,
) (client.TreeSnapshot, error) {
	if err := cmd.Validate(); err != nil {
		return client.TreeSnapshot{}, err
	}
	if err := client.AuthorizeMaintain(cmd.Actor(), "update client"); err != nil {
		return client.TreeSnapshot{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return client.TreeSnapshot{}, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.ClientRepository()
	aggregate, err := repo.Get(ctx, cmd.ClientID())
	if err != nil {
		return client.TreeSnapshot{}, err
	}
	persisted, err := repo.Hierarchy(ctx, cmd.ClientID())
	if err != nil {
		return client.TreeSnapshot{}, err
	}
	plan, err := h.reconciler.Plan(cmd.ClientID(), persisted, cmd.Substations())
	if err != nil {
		return client.TreeSnapshot{}, err
	}

	if err = aggregate.UpdateProfile(cmd.Profile()); err != nil {
		return client.TreeSnapshot{}, err
	}
	if err = repo.Update(ctx, aggregate); err != nil {
		return client.TreeSnapshot{}, err
	}
	if err = applyHierarchyPlan(ctx, repo, cmd.ClientID(), plan); err != nil {
		return client.TreeSnapshot{}, err
	}

	stored, err := repo.Get(ctx, cmd.ClientID())
	if err != nil {
		return client.TreeSnapshot{}, err
	}
	snapshot := stored.Snapshot()

	if err = appendActivity(ctx, uow.ActivityLog(), activity.ActionUpdate, activity.EntityClient,
		snapshot.ID.String(), snapshot, cmd.Actor(), h.clock.Now()); err != nil {
		return client.TreeSnapshot{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return client.TreeSnapshot{}, err
	}
	return snapshot, nil
}
