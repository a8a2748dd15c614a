package order

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"maintenance/internal/core/domain/model/kernel"
	"maintenance/internal/core/domain/model/personnel"
	"maintenance/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Details are the descriptive and commercial fields of an order.
type Details struct {
	ServiceType        ServiceType         `json:"serviceType"`
	InitialDescription string              `json:"initialDescription,omitempty"`
	ScheduledStart     *time.Time          `json:"scheduledStart,omitempty"`
	ScheduledEnd       *time.Time          `json:"scheduledEnd,omitempty"`
	BudgetNumber       string              `json:"budgetNumber,omitempty"`
	ServiceValue       decimal.NullDecimal `json:"serviceValue"`
	Responsible        string              `json:"responsible,omitempty"`
	Location           string              `json:"location,omitempty"`
	Email              string              `json:"email,omitempty"`
	Phone              string              `json:"phone,omitempty"`
}

func (d Details) validate() error {
	var scheduleErr error
	if d.ScheduledStart != nil && d.ScheduledEnd != nil && d.ScheduledEnd.Before(*d.ScheduledStart) {
		scheduleErr = errs.NewValueIsInvalidErrorWithCause("scheduledEnd", errors.New("ends before it starts"))
	}
	var valueErr error
	if d.ServiceValue.Valid && d.ServiceValue.Decimal.IsNegative() {
		valueErr = errs.NewValueIsInvalidErrorWithCause("serviceValue", errors.New("is negative"))
	}
	return errors.Join(d.ServiceType.Validate(), scheduleErr, valueErr)
}

// Team is the personnel assigned to an order.
type Team struct {
	EngineerID    personnel.ID   `json:"engineerId"`
	SupervisorID  *personnel.ID  `json:"supervisorId,omitempty"`
	TechnicianIDs []personnel.ID `json:"technicianIds"`
}

func (t Team) validate() error {
	if t.EngineerID <= 0 {
		return errs.NewValueIsRequiredError("engineer")
	}
	return nil
}

// Members lists every distinct person referenced by the team.
func (t Team) Members() []personnel.ID {
	members := []personnel.ID{t.EngineerID}
	if t.SupervisorID != nil {
		members = append(members, *t.SupervisorID)
	}
	for _, id := range t.TechnicianIDs {
		if !slices.Contains(members, id) {
			members = append(members, id)
		}
	}
	return members
}

// Scope is the part of a client's hierarchy an order covers.
type Scope struct {
	ClientID      kernel.UUID   `json:"clientId"`
	SubstationIDs []kernel.UUID `json:"substationIds"`
	ComponentIDs  []kernel.UUID `json:"componentIds"`
}

func (s Scope) validate() error {
	clientErr := s.ClientID.Validate()
	var componentsErr error
	if len(s.ComponentIDs) == 0 {
		componentsErr = errs.NewValueIsInvalidErrorWithCause("componentIds", errors.New("an order needs at least one component"))
	}
	return errors.Join(clientErr, componentsErr)
}

func (s Scope) Covers(componentID kernel.UUID) bool {
	return slices.Contains(s.ComponentIDs, componentID)
}

// Provenance records who moved the order through the approval workflow.
type Provenance struct {
	FinalizationRequestedBy *personnel.ID `json:"finalizationRequestedBy,omitempty"`
	FinalizationRequestedAt *time.Time    `json:"finalizationRequestedAt,omitempty"`
	ReviewedBy              *personnel.ID `json:"reviewedBy,omitempty"`
	ReviewedAt              *time.Time    `json:"reviewedAt,omitempty"`
	ApprovedBy              *personnel.ID `json:"approvedBy,omitempty"`
	ApprovedAt              *time.Time    `json:"approvedAt,omitempty"`
}

// Snapshot is the full state of an order, used to restore it from storage
// and to record it in the activity log.
type Snapshot struct {
	ID     kernel.UUID `json:"id"`
	Number Number      `json:"number"`
	Status Status      `json:"status"`
	Details
	Team
	Scope
	Notes           string `json:"notes,omitempty"`
	Conclusion      string `json:"conclusion,omitempty"`
	Recommendations string `json:"recommendations,omitempty"`
	Provenance
	Version   int       `json:"version"`
	CreatedAt time.Time `json:"createdAt"`
}

// Order is a service order carried through the approval workflow.
type Order struct {
	id              kernel.UUID
	number          Number
	status          Status
	details         Details
	team            Team
	scope           Scope
	notes           string
	conclusion      string
	recommendations string
	provenance      Provenance
	version         int
	createdAt       time.Time
}

func NewOrder(number Number, details Details, team Team, scope Scope, now time.Time) (*Order, error) {
	var numberErr error
	if number.IsZero() {
		numberErr = errs.NewValueIsRequiredError("order number")
	}
	if err := errors.Join(numberErr, details.validate(), team.validate(), scope.validate()); err != nil {
		return nil, err
	}

	return &Order{
		id:        kernel.NewUUID(),
		number:    number,
		status:    Open,
		details:   details,
		team:      cloneTeam(team),
		scope:     cloneScope(scope),
		version:   1,
		createdAt: now,
	}, nil
}

func Restore(s Snapshot) (*Order, error) {
	if err := errors.Join(s.ID.Validate(), s.Status.Validate()); err != nil {
		return nil, err
	}
	return &Order{
		id:              s.ID,
		number:          s.Number,
		status:          s.Status,
		details:         s.Details,
		team:            cloneTeam(s.Team),
		scope:           cloneScope(s.Scope),
		notes:           s.Notes,
		conclusion:      s.Conclusion,
		recommendations: s.Recommendations,
		provenance:      s.Provenance,
		version:         s.Version,
		createdAt:       s.CreatedAt,
	}, nil
}

func (o *Order) Snapshot() Snapshot {
	return Snapshot{
		ID:              o.id,
		Number:          o.number,
		Status:          o.status,
		Details:         o.details,
		Team:            cloneTeam(o.team),
		Scope:           cloneScope(o.scope),
		Notes:           o.notes,
		Conclusion:      o.conclusion,
		Recommendations: o.recommendations,
		Provenance:      o.provenance,
		Version:         o.version,
		CreatedAt:       o.createdAt,
	}
}

func (o *Order) ID() kernel.UUID {
	return o.id
}

func (o *Order) Number() Number {
	return o.number
}

func (o *Order) Status() Status {
	return o.status
}

func (o *Order) Details() Details {
	return o.details
}

func (o *Order) Team() Team {
	return cloneTeam(o.team)
}

func (o *Order) Scope() Scope {
	return cloneScope(o.scope)
}

func (o *Order) Conclusion() string {
	return o.conclusion
}

func (o *Order) Recommendations() string {
	return o.recommendations
}

func (o *Order) Provenance() Provenance {
	return o.provenance
}

// Version is the optimistic concurrency token the order was read with.
func (o *Order) Version() int {
	return o.version
}

func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

func (o *Order) invalidState(action string, cause error) error {
	return errs.NewInvalidStateErrorWithCause("order", o.number.String(), o.status.String(), action, cause)
}

func (o *Order) RequestFinalization(actor personnel.Actor, now time.Time) error {
	if err := authorize(actor, "request finalization", finalizationRequesters...); err != nil {
		return err
	}
	next, err := o.status.RequestFinalization()
	if err != nil {
		return o.invalidState("request finalization", err)
	}

	requester := actor.ID()
	o.status = next
	o.provenance.FinalizationRequestedBy = &requester
	o.provenance.FinalizationRequestedAt = &now
	return nil
}

func (o *Order) Review(actor personnel.Actor, now time.Time) error {
	if err := authorize(actor, "review order", reviewers...); err != nil {
		return err
	}
	next, err := o.status.Review()
	if err != nil {
		return o.invalidState("review", err)
	}

	reviewer := actor.ID()
	o.status = next
	o.provenance.ReviewedBy = &reviewer
	o.provenance.ReviewedAt = &now
	return nil
}

// Approve finalizes the order. The assigned engineer may approve regardless of role.
func (o *Order) Approve(actor personnel.Actor, conclusion, recommendations string, now time.Time) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	if actor.ID() != o.team.EngineerID {
		if err := authorize(actor, "approve order", approvers...); err != nil {
			return err
		}
	}
	next, err := o.status.Approve()
	if err != nil {
		return o.invalidState("approve", err)
	}
	if strings.TrimSpace(conclusion) == "" {
		return ErrMissingConclusion
	}

	approver := actor.ID()
	o.status = next
	o.conclusion = conclusion
	o.recommendations = recommendations
	o.provenance.ApprovedBy = &approver
	o.provenance.ApprovedAt = &now
	return nil
}

func (o *Order) Cancel(actor personnel.Actor) error {
	if err := authorize(actor, "cancel order", cancellers...); err != nil {
		return err
	}
	if o.status == Finalized {
		return o.invalidState("cancel", ErrAlreadyFinalized)
	}
	next, err := o.status.Cancel()
	if err != nil {
		return o.invalidState("cancel", err)
	}
	o.status = next
	return nil
}

// CheckHardDelete validates a purge without changing the order.
func (o *Order) CheckHardDelete(actor personnel.Actor) error {
	if err := authorize(actor, "delete order", hardDeleters...); err != nil {
		return err
	}
	if o.status == Finalized {
		return o.invalidState("delete", ErrAlreadyFinalized)
	}
	return nil
}

// ensureEditable locks a cancelled order for everyone and a finalized one for
// all but elevated roles.
func (o *Order) ensureEditable(actor personnel.Actor, action string) error {
	switch {
	case o.status == Cancelled:
		return o.invalidState(action, ErrOrderLocked)
	case o.status == Finalized && !actor.Role().IsElevated():
		return o.invalidState(action, fmt.Errorf("%w for %s", ErrOrderLocked, actor.Role()))
	}
	return nil
}

// EnsureFieldTestsWritable rejects any change to the field tests of a
// finalized or cancelled order, whoever asks.
func (o *Order) EnsureFieldTestsWritable(action string) error {
	if o.status == Finalized || o.status == Cancelled {
		return o.invalidState(action, ErrOrderLocked)
	}
	return nil
}

func cloneTeam(t Team) Team {
	t.TechnicianIDs = slices.Clone(t.TechnicianIDs)
	if t.TechnicianIDs == nil {
		t.TechnicianIDs = []personnel.ID{}
	}
	return t
}

func cloneScope(s Scope) Scope {
	s.SubstationIDs = slices.Clone(s.SubstationIDs)
	if s.SubstationIDs == nil {
		s.SubstationIDs = []kernel.UUID{}
	}
	s.ComponentIDs = slices.Clone(s.ComponentIDs)
	return s
}
