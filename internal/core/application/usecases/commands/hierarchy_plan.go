package commands

import (
	"context"

	"maintenance/internal/core/domain/model/kernel"
	"maintenance/internal/core/domain/services"
	"maintenance/internal/core/ports"
)

// applyHierarchyPlan writes a reconciliation plan: removed substations go
// first, then each submitted substation is stored and its components synced.
func applyHierarchyPlan(
	ctx context.Context,
	repo ports.ClientRepository,
	clientID kernel.UUID,
	plan services.HierarchyPlan,
) error {
	if len(plan.DeletedSubstations) > 0 {
		if err := repo.DeleteSubstations(ctx, clientID, plan.DeletedSubstations); err != nil {
			return err
		}
	}

	for _, sub := range plan.Substations {
		var err error
		if sub.Existing {
			err = repo.UpdateSubstation(ctx, sub.Substation)
		} else {
			err = repo.AddSubstation(ctx, sub.Substation)
		}
		if err != nil {
			return err
		}

		if len(sub.DeletedComponents) > 0 {
			if err = repo.DeleteComponents(ctx, sub.Substation.ID(), sub.DeletedComponents); err != nil {
				return err
			}
		}
		for _, comp := range sub.Components {
			if comp.Existing {
				err = repo.UpdateComponent(ctx, comp.Component)
			} else {
				err = repo.AddComponent(ctx, comp.Component)
			}
			if err != nil {
				return err
			}
		}
	}
	return nil
}
