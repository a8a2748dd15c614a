package activity

import (
	"errors"
	"time"

	"maintenance/internal/core/domain/model/kernel"
	"maintenance/internal/core/domain/model/personnel"
	"maintenance/internal/pkg/errs"
)

type Action string

const (
	ActionCreate Action = "CRIAR"
	ActionUpdate Action = "ATUALIZAR"
	ActionDelete Action = "EXCLUIR"
)

type Entity string

const (
	EntityClient    Entity = "cliente"
	EntityOrder     Entity = "ordem"
	EntityFieldTest Entity = "ensaio"
)

// Entry is one append-only audit record. Payload is serialized as JSON by the sink.
type Entry struct {
	id       kernel.UUID
	action   Action
	entity   Entity
	entityID string
	payload  any
	actorID  personnel.ID
	at       time.Time
}

func NewEntry(action Action, entity Entity, entityID string, payload any, actor personnel.Actor, at time.Time) (*Entry, error) {
	var actionErr error
	switch action {
	case ActionCreate, ActionUpdate, ActionDelete:
	default:
		actionErr = errs.NewValueIsInvalidError("activity action " + string(action))
	}
	var entityErr error
	if entity == "" {
		entityErr = errs.NewValueIsRequiredError("activity entity")
	}
	if err := errors.Join(actionErr, entityErr, actor.Validate()); err != nil {
		return nil, err
	}
	return &Entry{
		id:       kernel.NewUUID(),
		action:   action,
		entity:   entity,
		entityID: entityID,
		payload:  payload,
		actorID:  actor.ID(),
		at:       at,
	}, nil
}

func (e *Entry) ID() kernel.UUID {
	return e.id
}

func (e *Entry) Action() Action {
	return e.action
}

func (e *Entry) Entity() Entity {
	return e.entity
}

func (e *Entry) EntityID() string {
	return e.entityID
}

func (e *Entry) Payload() any {
	return e.payload
}

func (e *Entry) ActorID() personnel.ID {
	return e.actorID
}

func (e *Entry) At() time.Time {
	return e.at
}

// ChangeSet is the payload of an update: the entity id and a JSON patch from
// the previous state to the new one.
type ChangeSet struct {
	ID      string `json:"id"`
	Changes any    `json:"changes"`
}
