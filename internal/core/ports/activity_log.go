package ports

import (
	"context"

	"maintenance/internal/core/domain/model/activity"
)

// ActivityLog is the append-only audit sink. Entries are written inside the
// transaction of the mutation they describe.
type ActivityLog interface {
	Append(ctx context.Context, entry *activity.Entry) error
}
