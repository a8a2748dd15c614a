package commands

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"maintenance/internal/core/domain/model/kernel"
	"maintenance/internal/core/domain/model/personnel"
	"maintenance/internal/core/ports"
	"maintenance/internal/pkg/errs"
)

var (
	ErrInvalidReference      = errors.New("invalid reference")
	ErrDuplicateBudgetNumber = errors.New("budget number is already in use")
)

func invalidReference(param string, ids any) error {
	return errs.NewValueIsInvalidErrorWithCause(param, fmt.Errorf("%w: %v", ErrInvalidReference, ids))
}

func checkClient(ctx context.Context, clients ports.ClientRepository, clientID kernel.UUID) error {
	exists, err := clients.Exists(ctx, clientID)
	if err != nil {
		return err
	}
	if !exists {
		return invalidReference("clientId", clientID)
	}
	return nil
}

func checkPersonnel(ctx context.Context, people ports.PersonnelRepository, ids []personnel.ID) error {
	if len(ids) == 0 {
		return nil
	}
	found, err := people.Existing(ctx, ids)
	if err != nil {
		return err
	}
	if missing := missingOf(ids, found); len(missing) > 0 {
		return invalidReference("personnel", missing)
	}
	return nil
}

func checkSubstations(ctx context.Context, clients ports.ClientRepository, clientID kernel.UUID, ids []kernel.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	owned, err := clients.OwnedSubstations(ctx, clientID, ids)
	if err != nil {
		return err
	}
	if missing := missingOf(ids, owned); len(missing) > 0 {
		return invalidReference("substationIds", missing)
	}
	return nil
}

func checkComponents(ctx context.Context, clients ports.ClientRepository, clientID kernel.UUID, ids []kernel.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	owned, err := clients.OwnedComponents(ctx, clientID, ids)
	if err != nil {
		return err
	}
	if missing := missingOf(ids, owned); len(missing) > 0 {
		return invalidReference("componentIds", missing)
	}
	return nil
}

func checkBudgetNumber(ctx context.Context, orders ports.OrderRepository, budgetNumber string, except *kernel.UUID) error {
	if budgetNumber == "" {
		return nil
	}
	taken, err := orders.BudgetNumberTaken(ctx, budgetNumber, except)
	if err != nil {
		return err
	}
	if taken {
		return errs.NewConflictErrorWithCause("order", budgetNumber, ErrDuplicateBudgetNumber)
	}
	return nil
}

func missingOf[T comparable](wanted, found []T) []T {
	var missing []T
	for _, id := range wanted {
		if !slices.Contains(found, id) {
			missing = append(missing, id)
		}
	}
	return missing
}
