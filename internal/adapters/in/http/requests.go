package http

import (
	"encoding/json"
	"errors"
	"time"

	"maintenance/internal/core/domain/model/client"
	"maintenance/internal/core/domain/model/fieldtest"
	"maintenance/internal/core/domain/model/kernel"
	"maintenance/internal/core/domain/model/order"
	"maintenance/internal/core/domain/model/personnel"
	"maintenance/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var errExclusiveSyncOps = errors.New("only one of set, connect or disconnect may be given")

type ClientRequest struct {
	Name        string              `json:"name" validate:"required,max=255"`
	Document    string              `json:"document" validate:"max=32"`
	Address     string              `json:"address" validate:"max=255"`
	Contact     string              `json:"contact" validate:"max=255"`
	Email       string              `json:"email" validate:"omitempty,email"`
	Phone       string              `json:"phone" validate:"max=32"`
	Substations []SubstationRequest `json:"substations" validate:"dive"`
}

// SubstationRequest carries the persisted id of the substation, a temporary
// key chosen by the caller, or nothing for a new one.
type SubstationRequest struct {
	ID         string             `json:"id"`
	Name       string             `json:"name" validate:"required,max=255"`
	Location   string             `json:"location" validate:"max=255"`
	Notes      string             `json:"notes"`
	Components []ComponentRequest `json:"components" validate:"dive"`
}

type ComponentRequest struct {
	ID   string          `json:"id"`
	Name string          `json:"name" validate:"required,max=255"`
	Kind string          `json:"kind" validate:"required"`
	Info json.RawMessage `json:"info"`
}

func (r ClientRequest) profile() client.Profile {
	return client.Profile{
		Name:     r.Name,
		Document: r.Document,
		Address:  r.Address,
		Contact:  r.Contact,
		Email:    r.Email,
		Phone:    r.Phone,
	}
}

func (r ClientRequest) drafts() ([]client.SubstationDraft, error) {
	drafts := make([]client.SubstationDraft, 0, len(r.Substations))
	for _, s := range r.Substations {
		components := make([]client.ComponentDraft, 0, len(s.Components))
		for _, c := range s.Components {
			kind, err := client.ParseKind(c.Kind)
			if err != nil {
				return nil, err
			}
			info, err := client.DecodeInfo(kind, c.Info)
			if err != nil {
				return nil, err
			}
			components = append(components, client.ComponentDraft{Ref: c.ID, Name: c.Name, Kind: kind, Info: info})
		}
		drafts = append(drafts, client.SubstationDraft{
			Ref:        s.ID,
			Profile:    client.SubstationProfile{Name: s.Name, Location: s.Location, Notes: s.Notes},
			Components: components,
		})
	}
	return drafts, nil
}

type CreateOrderRequest struct {
	ClientID           string           `json:"clientId" validate:"required,uuid"`
	ServiceType        string           `json:"serviceType" validate:"required"`
	InitialDescription string           `json:"initialDescription"`
	ScheduledStart     *time.Time       `json:"scheduledStart"`
	ScheduledEnd       *time.Time       `json:"scheduledEnd"`
	BudgetNumber       string           `json:"budgetNumber" validate:"max=64"`
	ServiceValue       *decimal.Decimal `json:"serviceValue"`
	Responsible        string           `json:"responsible" validate:"max=255"`
	Location           string           `json:"location" validate:"max=255"`
	Email              string           `json:"email" validate:"omitempty,email"`
	Phone              string           `json:"phone" validate:"max=32"`
	EngineerID         int64            `json:"engineerId" validate:"required,gt=0"`
	SupervisorID       *int64           `json:"supervisorId" validate:"omitempty,gt=0"`
	TechnicianIDs      []int64          `json:"technicianIds" validate:"dive,gt=0"`
	SubstationIDs      []string         `json:"substationIds" validate:"dive,uuid"`
	ComponentIDs       []string         `json:"componentIds" validate:"required,min=1,dive,uuid"`
}

func (r CreateOrderRequest) details() order.Details {
	d := order.Details{
		ServiceType:        order.ServiceType(r.ServiceType),
		InitialDescription: r.InitialDescription,
		ScheduledStart:     r.ScheduledStart,
		ScheduledEnd:       r.ScheduledEnd,
		BudgetNumber:       r.BudgetNumber,
		Responsible:        r.Responsible,
		Location:           r.Location,
		Email:              r.Email,
		Phone:              r.Phone,
	}
	if r.ServiceValue != nil {
		d.ServiceValue = decimal.NewNullDecimal(*r.ServiceValue)
	}
	return d
}

func (r CreateOrderRequest) team() (order.Team, error) {
	team := order.Team{EngineerID: personnel.ID(r.EngineerID)}
	if r.SupervisorID != nil {
		supervisor := personnel.ID(*r.SupervisorID)
		team.SupervisorID = &supervisor
	}
	technicians, err := parseAll(r.TechnicianIDs, personnel.NewID)
	if err != nil {
		return order.Team{}, err
	}
	team.TechnicianIDs = technicians
	return team, nil
}

func (r CreateOrderRequest) scope() (order.Scope, error) {
	clientID, err := kernel.UUIDFromString(r.ClientID)
	if err != nil {
		return order.Scope{}, errs.NewValueIsInvalidErrorWithCause("clientId", err)
	}
	substations, err := parseAll(r.SubstationIDs, kernel.UUIDFromString)
	if err != nil {
		return order.Scope{}, errs.NewValueIsInvalidErrorWithCause("substationIds", err)
	}
	components, err := parseAll(r.ComponentIDs, kernel.UUIDFromString)
	if err != nil {
		return order.Scope{}, errs.NewValueIsInvalidErrorWithCause("componentIds", err)
	}
	return order.Scope{ClientID: clientID, SubstationIDs: substations, ComponentIDs: components}, nil
}

// PersonRelation updates a relation to personnel. A present but empty
// disconnect list clears the relation.
type PersonRelation struct {
	Set        []int64 `json:"set" validate:"dive,gt=0"`
	Connect    []int64 `json:"connect" validate:"dive,gt=0"`
	Disconnect []int64 `json:"disconnect" validate:"dive,gt=0"`
}

func (r *PersonRelation) sync(field string) (kernel.RelationSync[personnel.ID], error) {
	if r == nil {
		return kernel.RelationSync[personnel.ID]{}, nil
	}
	return syncOf(field, r.Set, r.Connect, r.Disconnect, personnel.NewID)
}

type UUIDRelation struct {
	Set        []string `json:"set" validate:"dive,uuid"`
	Connect    []string `json:"connect" validate:"dive,uuid"`
	Disconnect []string `json:"disconnect" validate:"dive,uuid"`
}

func (r *UUIDRelation) sync(field string) (kernel.RelationSync[kernel.UUID], error) {
	if r == nil {
		return kernel.RelationSync[kernel.UUID]{}, nil
	}
	return syncOf(field, r.Set, r.Connect, r.Disconnect, kernel.UUIDFromString)
}

// UpdateOrderRequest leaves absent fields untouched.
type UpdateOrderRequest struct {
	Status             *string          `json:"status"`
	Notes              *string          `json:"notes"`
	ServiceType        *string          `json:"serviceType"`
	InitialDescription *string          `json:"initialDescription"`
	ScheduledStart     *time.Time       `json:"scheduledStart"`
	ScheduledEnd       *time.Time       `json:"scheduledEnd"`
	BudgetNumber       *string          `json:"budgetNumber" validate:"omitempty,max=64"`
	ServiceValue       *decimal.Decimal `json:"serviceValue"`
	Responsible        *string          `json:"responsible" validate:"omitempty,max=255"`
	Location           *string          `json:"location" validate:"omitempty,max=255"`
	Email              *string          `json:"email" validate:"omitempty,email"`
	Phone              *string          `json:"phone" validate:"omitempty,max=32"`
	Conclusion         *string          `json:"conclusion"`
	Recommendations    *string          `json:"recommendations"`

	Engineer    *PersonRelation `json:"engineer"`
	Supervisor  *PersonRelation `json:"supervisor"`
	Technicians *PersonRelation `json:"technicians"`
	Substations *UUIDRelation   `json:"substations"`
	Components  *UUIDRelation   `json:"components"`
}

func (r UpdateOrderRequest) patch() (order.Patch, error) {
	p := order.Patch{
		Notes:              r.Notes,
		InitialDescription: r.InitialDescription,
		ScheduledStart:     r.ScheduledStart,
		ScheduledEnd:       r.ScheduledEnd,
		BudgetNumber:       r.BudgetNumber,
		ServiceValue:       r.ServiceValue,
		Responsible:        r.Responsible,
		Location:           r.Location,
		Email:              r.Email,
		Phone:              r.Phone,
		Conclusion:         r.Conclusion,
		Recommendations:    r.Recommendations,
	}
	if r.Status != nil {
		status, err := order.ParseStatus(*r.Status)
		if err != nil {
			return order.Patch{}, err
		}
		p.Status = &status
	}
	if r.ServiceType != nil {
		serviceType := order.ServiceType(*r.ServiceType)
		if err := serviceType.Validate(); err != nil {
			return order.Patch{}, err
		}
		p.ServiceType = &serviceType
	}

	var engineerErr, supervisorErr, techniciansErr, substationsErr, componentsErr error
	p.Engineer, engineerErr = r.Engineer.sync("engineer")
	p.Supervisor, supervisorErr = r.Supervisor.sync("supervisor")
	p.Technicians, techniciansErr = r.Technicians.sync("technicians")
	p.Substations, substationsErr = r.Substations.sync("substations")
	p.Components, componentsErr = r.Components.sync("components")
	if err := errors.Join(engineerErr, supervisorErr, techniciansErr, substationsErr, componentsErr); err != nil {
		return order.Patch{}, err
	}
	return p, nil
}

type FinalApprovalRequest struct {
	Conclusion      string `json:"conclusion"`
	Recommendations string `json:"recommendations"`
}

type CreateFieldTestRequest struct {
	OrderNumber   string         `json:"orderNumber" validate:"required,numeric"`
	ComponentID   string         `json:"componentId" validate:"required,uuid"`
	Kind          string         `json:"kind" validate:"required"`
	Data          map[string]any `json:"data" validate:"required"`
	PerformedAt   *time.Time     `json:"performedAt"`
	ResponsibleID *int64         `json:"responsibleId" validate:"omitempty,gt=0"`
}

type UpdateFieldTestRequest struct {
	Data          map[string]any `json:"data" validate:"required"`
	PerformedAt   *time.Time     `json:"performedAt"`
	ResponsibleID *int64         `json:"responsibleId" validate:"omitempty,gt=0"`
}

func record(data map[string]any, performedAt *time.Time, responsibleID *int64) fieldtest.Record {
	r := fieldtest.Record{Data: data, PerformedAt: performedAt}
	if responsibleID != nil {
		responsible := personnel.ID(*responsibleID)
		r.ResponsibleID = &responsible
	}
	return r
}

func syncOf[R any, T comparable](
	field string,
	set, connect, disconnect []R,
	parse func(R) (T, error),
) (kernel.RelationSync[T], error) {
	var (
		given int
		sync  kernel.RelationSync[T]
	)
	ops := []struct {
		raw   []R
		build func(...T) kernel.RelationSync[T]
	}{
		{set, kernel.Set[T]},
		{connect, kernel.Connect[T]},
		{disconnect, kernel.Disconnect[T]},
	}
	for _, op := range ops {
		if op.raw == nil {
			continue
		}
		ids, err := parseAll(op.raw, parse)
		if err != nil {
			return kernel.RelationSync[T]{}, errs.NewValueIsInvalidErrorWithCause(field, err)
		}
		given++
		sync = op.build(ids...)
	}
	if given > 1 {
		return kernel.RelationSync[T]{}, errs.NewValueIsInvalidErrorWithCause(field, errExclusiveSyncOps)
	}
	return sync, nil
}

func parseAll[R any, T any](raw []R, parse func(R) (T, error)) ([]T, error) {
	out := make([]T, 0, len(raw))
	for _, r := range raw {
		v, err := parse(r)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
