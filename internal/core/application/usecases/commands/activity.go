package commands

import (
	"context"
	"fmt"
	"time"

	"maintenance/internal/core/domain/model/activity"
	"maintenance/internal/core/domain/model/personnel"
	"maintenance/internal/core/ports"

	"github.com/wI2L/jsondiff"
)

func appendActivity(
	ctx context.Context,
	log ports.ActivityLog,
	action activity.Action,
	entity activity.Entity,
	entityID string,
	payload any,
	actor personnel.Actor,
	at time.Time,
) error {
	entry, err := activity.NewEntry(action, entity, entityID, payload, actor, at)
	if err != nil {
		return err
	}
	return log.Append(ctx, entry)
}

// changeSet records an update as a JSON patch from before to after.
func changeSet(id string, before, after any) (activity.ChangeSet, error) {
	patch, err := jsondiff.Compare(before, after)
	if err != nil {
		return activity.ChangeSet{}, fmt.Errorf("diff %s: %w", id, err)
	}
	return activity.ChangeSet{ID: id, Changes: patch}, nil
}
