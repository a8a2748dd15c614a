package order

import (
	"errors"
	"strings"
	"time"

	"maintenance/internal/core/domain/model/kernel"
	"maintenance/internal/core/domain/model/personnel"
	"maintenance/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Patch is a generic update of an order. Nil pointers and zero RelationSync
// values leave the field untouched.
type Patch struct {
	Status *Status
	Notes  *string

	ServiceType        *ServiceType
	InitialDescription *string
	ScheduledStart     *time.Time
	ScheduledEnd       *time.Time
	BudgetNumber       *string
	ServiceValue       *decimal.Decimal
	Responsible        *string
	Location           *string
	Email              *string
	Phone              *string
	Conclusion         *string
	Recommendations    *string

	Engineer    kernel.RelationSync[personnel.ID]
	Supervisor  kernel.RelationSync[personnel.ID]
	Technicians kernel.RelationSync[personnel.ID]
	Substations kernel.RelationSync[kernel.UUID]
	Components  kernel.RelationSync[kernel.UUID]
}

// touchesRestricted reports fields outside the operational set (status, notes).
func (p Patch) touchesRestricted() bool {
	return p.ServiceType != nil || p.InitialDescription != nil ||
		p.ScheduledStart != nil || p.ScheduledEnd != nil ||
		p.BudgetNumber != nil || p.ServiceValue != nil ||
		p.Responsible != nil || p.Location != nil || p.Email != nil || p.Phone != nil ||
		p.Conclusion != nil || p.Recommendations != nil ||
		!p.Engineer.IsKeep() || !p.Supervisor.IsKeep() || !p.Technicians.IsKeep() ||
		!p.Substations.IsKeep() || !p.Components.IsKeep()
}

// Apply performs a generic update on behalf of actor. Nothing changes when
// an error is returned.
func (o *Order) Apply(actor personnel.Actor, p Patch) error {
	if err := authorize(actor, "update order", operationalEditors...); err != nil {
		return err
	}
	if p.touchesRestricted() {
		if err := authorize(actor, "update order scope, team or commercial fields", editors...); err != nil {
			return err
		}
	}
	if err := o.ensureEditable(actor, "update"); err != nil {
		return err
	}
	if o.status == Finalized && p.Conclusion != nil && strings.TrimSpace(*p.Conclusion) == "" {
		return ErrMissingConclusion
	}

	status := o.status
	if p.Status != nil && *p.Status != o.status {
		if o.status == Finalized {
			return o.invalidState("change status", ErrAlreadyFinalized)
		}
		next, err := o.status.MoveTo(*p.Status)
		if err != nil {
			return o.invalidState("move to "+p.Status.String(), err)
		}
		status = next
	}

	details := o.details
	setIfPresent(&details.ServiceType, p.ServiceType)
	setIfPresent(&details.InitialDescription, p.InitialDescription)
	setIfPresent(&details.BudgetNumber, p.BudgetNumber)
	setIfPresent(&details.Responsible, p.Responsible)
	setIfPresent(&details.Location, p.Location)
	setIfPresent(&details.Email, p.Email)
	setIfPresent(&details.Phone, p.Phone)
	if p.ScheduledStart != nil {
		start := *p.ScheduledStart
		details.ScheduledStart = &start
	}
	if p.ScheduledEnd != nil {
		end := *p.ScheduledEnd
		details.ScheduledEnd = &end
	}
	if p.ServiceValue != nil {
		details.ServiceValue = decimal.NewNullDecimal(*p.ServiceValue)
	}

	team, err := p.applyTeam(o.team)
	if err != nil {
		return err
	}
	scope := o.scope
	scope.SubstationIDs = p.Substations.Apply(o.scope.SubstationIDs)
	scope.ComponentIDs = p.Components.Apply(o.scope.ComponentIDs)

	if err = errors.Join(details.validate(), team.validate(), scope.validate()); err != nil {
		return err
	}

	o.status = status
	o.details = details
	o.team = team
	o.scope = scope
	setIfPresent(&o.notes, p.Notes)
	setIfPresent(&o.conclusion, p.Conclusion)
	setIfPresent(&o.recommendations, p.Recommendations)
	return nil
}

func (p Patch) applyTeam(current Team) (Team, error) {
	team := cloneTeam(current)

	engineer, err := p.Engineer.ApplyOne(&current.EngineerID)
	if err != nil {
		return Team{}, errs.NewValueIsInvalidErrorWithCause("engineer", err)
	}
	if engineer == nil {
		return Team{}, errs.NewValueIsRequiredError("engineer")
	}
	team.EngineerID = *engineer

	team.SupervisorID, err = p.Supervisor.ApplyOne(current.SupervisorID)
	if err != nil {
		return Team{}, errs.NewValueIsInvalidErrorWithCause("supervisor", err)
	}

	team.TechnicianIDs = p.Technicians.Apply(current.TechnicianIDs)
	return team, nil
}

func setIfPresent[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
