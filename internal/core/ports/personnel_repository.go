package ports

import (
	"context"

	"maintenance/internal/core/domain/model/personnel"
)

// PersonnelRepository reads the employee registry. It is never written by this service.
type PersonnelRepository interface {
	// Existing returns the subset of ids that are registered employees.
	Existing(ctx context.Context, ids []personnel.ID) ([]personnel.ID, error)
}
