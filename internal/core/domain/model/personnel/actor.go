package personnel

import (
	"errors"
	"fmt"

	"maintenance/internal/pkg/errs"
	"maintenance/internal/pkg/guard"
)

var ErrActorIsNotConstructed = errors.New("actor is not constructed")

// ID is the personnel registration number (matricula).
type ID int64

func NewID(v int64) (ID, error) {
	if v <= 0 {
		return 0, errs.NewValueIsInvalidErrorWithCause("personnelId", fmt.Errorf("%d is not a registration number", v))
	}
	return ID(v), nil
}

func (id ID) Int64() int64 {
	return int64(id)
}

// Actor is the authenticated caller of an operation.
type Actor struct {
	id    ID
	role  Role
	guard guard.ConstructorGuard
}

func NewActor(id int64, role Role) (Actor, error) {
	personnelID, idErr := NewID(id)
	if err := errors.Join(idErr, role.Validate()); err != nil {
		return Actor{}, err
	}
	return Actor{id: personnelID, role: role, guard: guard.NewConstructorGuard()}, nil
}

func (a Actor) ID() ID {
	return a.id
}

func (a Actor) Role() Role {
	return a.role
}

func (a Actor) Validate() error {
	return a.guard.Validate(ErrActorIsNotConstructed)
}

func (a Actor) String() string {
	return fmt.Sprintf("%s#%d", a.role, a.id)
}

// Employee is the read-only personnel record used to validate references.
type Employee struct {
	ID   ID
	Name string
	Role Role
}
