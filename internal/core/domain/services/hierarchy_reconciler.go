package services

import (
	"fmt"
	"slices"

	"maintenance/internal/core/domain/model/client"
	"maintenance/internal/core/domain/model/kernel"
	"maintenance/internal/pkg/errs"
)

// PersistedSubstation is the identity of a stored substation and its components,
// read before the reconciliation writes anything.
type PersistedSubstation struct {
	ID           kernel.UUID
	ComponentIDs []kernel.UUID
}

type HierarchyPlan struct {
	DeletedSubstations []kernel.UUID
	Substations        []SubstationPlan
}

type SubstationPlan struct {
	Substation        *client.Substation
	Existing          bool
	DeletedComponents []kernel.UUID
	Components        []ComponentPlan
}

type ComponentPlan struct {
	Component *client.Component
	Existing  bool
}

// HierarchyReconciler turns a submitted client tree into the writes that make
// the stored tree match it. The plan is computed entirely from the persisted
// identities read up front, so deletions never depend on rows written by the
// same reconciliation.
type HierarchyReconciler struct {
	classifier IdentifierClassifier
}

func NewHierarchyReconciler(classifier IdentifierClassifier) HierarchyReconciler {
	return HierarchyReconciler{classifier: classifier}
}

func (r HierarchyReconciler) Plan(
	clientID kernel.UUID,
	persisted []PersistedSubstation,
	drafts []client.SubstationDraft,
) (HierarchyPlan, error) {
	if err := clientID.Validate(); err != nil {
		return HierarchyPlan{}, err
	}

	ownedSubstations := make([]kernel.UUID, 0, len(persisted))
	componentsOf := make(map[kernel.UUID][]kernel.UUID, len(persisted))
	for _, p := range persisted {
		ownedSubstations = append(ownedSubstations, p.ID)
		componentsOf[p.ID] = p.ComponentIDs
	}

	plan := HierarchyPlan{Substations: make([]SubstationPlan, 0, len(drafts))}
	kept := make([]kernel.UUID, 0, len(drafts))

	for i, draft := range drafts {
		var (
			sub *client.Substation
			err error
		)
		id, existing := r.classifier.Classify(draft.Ref, ownedSubstations)
		if existing {
			if slices.Contains(kept, id) {
				return HierarchyPlan{}, errs.NewValueIsInvalidErrorWithCause(
					"substations", fmt.Errorf("substation %s submitted twice", id))
			}
			kept = append(kept, id)
			sub, err = client.ReviseSubstation(id, clientID, draft.Profile)
		} else {
			sub, err = client.NewSubstation(clientID, draft.Profile)
		}
		if err != nil {
			return HierarchyPlan{}, fmt.Errorf("substation %d: %w", i, err)
		}

		// A new substation owns nothing yet, so every component under it is created.
		var owned []kernel.UUID
		if existing {
			owned = componentsOf[id]
		}
		subPlan, err := r.planComponents(sub, owned, draft.Components)
		if err != nil {
			return HierarchyPlan{}, fmt.Errorf("substation %d: %w", i, err)
		}
		subPlan.Existing = existing
		plan.Substations = append(plan.Substations, subPlan)
	}

	plan.DeletedSubstations = kernel.Set(kept...).Removed(ownedSubstations)
	return plan, nil
}

func (r HierarchyReconciler) planComponents(
	sub *client.Substation,
	owned []kernel.UUID,
	drafts []client.ComponentDraft,
) (SubstationPlan, error) {
	plan := SubstationPlan{Substation: sub, Components: make([]ComponentPlan, 0, len(drafts))}
	kept := make([]kernel.UUID, 0, len(drafts))

	for j, draft := range drafts {
		var (
			comp *client.Component
			err  error
		)
		id, existing := r.classifier.Classify(draft.Ref, owned)
		if existing {
			if slices.Contains(kept, id) {
				return SubstationPlan{}, errs.NewValueIsInvalidErrorWithCause(
					"components", fmt.Errorf("component %s submitted twice", id))
			}
			kept = append(kept, id)
			comp, err = client.ReviseComponent(id, sub.ID(), draft.Name, draft.Kind, draft.Info)
		} else {
			comp, err = client.NewComponent(sub.ID(), draft.Name, draft.Kind, draft.Info)
		}
		if err != nil {
			return SubstationPlan{}, fmt.Errorf("component %d: %w", j, err)
		}
		plan.Components = append(plan.Components, ComponentPlan{Component: comp, Existing: existing})
	}

	plan.DeletedComponents = kernel.Set(kept...).Removed(owned)
	return plan, nil
}
