// Package orderrepo maps order aggregates to the orders table and its three
// link tables. Link rows carry no foreign key into the client hierarchy, so an
// order keeps its history when a component is later removed.
package orderrepo

import (
	"time"

	"maintenance/internal/core/domain/model/kernel"
	"maintenance/internal/core/domain/model/order"
	"maintenance/internal/core/domain/model/personnel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderDTO struct {
	ID                      uuid.UUID           `gorm:"type:uuid;primaryKey"`
	Number                  string              `gorm:"size:16;not null;uniqueIndex"`
	Status                  string              `gorm:"size:32;not null;index"`
	ServiceType             string              `gorm:"size:32;not null"`
	InitialDescription      string
	ScheduledStart          *time.Time          `gorm:"index"`
	ScheduledEnd            *time.Time
	BudgetNumber            *string             `gorm:"size:64;uniqueIndex"`
	ServiceValue            decimal.NullDecimal `gorm:"type:numeric(14,2)"`
	Responsible             string
	Location                string
	Email                   string
	Phone                   string
	ClientID                uuid.UUID           `gorm:"type:uuid;not null;index"`
	EngineerID              int64               `gorm:"not null;index"`
	SupervisorID            *int64              `gorm:"index"`
	Notes                   string
	Conclusion              string
	Recommendations         string
	FinalizationRequestedBy *int64
	FinalizationRequestedAt *time.Time
	ReviewedBy              *int64
	ReviewedAt              *time.Time
	ApprovedBy              *int64
	ApprovedAt              *time.Time
	Version                 int                 `gorm:"not null"`
	CreatedAt               time.Time           `gorm:"index"`
	UpdatedAt               time.Time
}

func (OrderDTO) TableName() string {
	return "orders"
}

// OrderTechnicianDTO links a technician to an order. Position keeps the
// order the ids were given in; the other link tables do the same.
type OrderTechnicianDTO struct {
	OrderID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	PersonnelID int64     `gorm:"primaryKey;autoIncrement:false;index"`
	Position    int
}

func (OrderTechnicianDTO) TableName() string {
	return "order_technicians"
}

type OrderSubstationDTO struct {
	OrderID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	SubstationID uuid.UUID `gorm:"type:uuid;primaryKey"`
	Position     int
}

func (OrderSubstationDTO) TableName() string {
	return "order_substations"
}

type OrderComponentDTO struct {
	OrderID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	ComponentID uuid.UUID `gorm:"type:uuid;primaryKey;index"`
	Position    int
}

func (OrderComponentDTO) TableName() string {
	return "order_components"
}

// links is everything an order owns outside its own row.
type links struct {
	technicians []OrderTechnicianDTO
	substations []OrderSubstationDTO
	components  []OrderComponentDTO
}

func fromDomain(o *order.Order) (OrderDTO, links) {
	s := o.Snapshot()

	var budget *string
	if s.BudgetNumber != "" {
		budget = &s.BudgetNumber
	}

	dto := OrderDTO{
		ID:                      s.ID.Bytes(),
		Number:                  s.Number.String(),
		Status:                  s.Status.String(),
		ServiceType:             string(s.ServiceType),
		InitialDescription:      s.InitialDescription,
		ScheduledStart:          s.ScheduledStart,
		ScheduledEnd:            s.ScheduledEnd,
		BudgetNumber:            budget,
		ServiceValue:            s.ServiceValue,
		Responsible:             s.Responsible,
		Location:                s.Location,
		Email:                   s.Email,
		Phone:                   s.Phone,
		ClientID:                s.ClientID.Bytes(),
		EngineerID:              s.EngineerID.Int64(),
		SupervisorID:            personnelToRaw(s.SupervisorID),
		Notes:                   s.Notes,
		Conclusion:              s.Conclusion,
		Recommendations:         s.Recommendations,
		FinalizationRequestedBy: personnelToRaw(s.FinalizationRequestedBy),
		FinalizationRequestedAt: s.FinalizationRequestedAt,
		ReviewedBy:              personnelToRaw(s.ReviewedBy),
		ReviewedAt:              s.ReviewedAt,
		ApprovedBy:              personnelToRaw(s.ApprovedBy),
		ApprovedAt:              s.ApprovedAt,
		Version:                 s.Version,
		CreatedAt:               s.CreatedAt,
	}

	var l links
	for i, id := range s.TechnicianIDs {
		l.technicians = append(l.technicians, OrderTechnicianDTO{OrderID: dto.ID, PersonnelID: id.Int64(), Position: i})
	}
	for i, id := range s.SubstationIDs {
		l.substations = append(l.substations, OrderSubstationDTO{OrderID: dto.ID, SubstationID: id.Bytes(), Position: i})
	}
	for i, id := range s.ComponentIDs {
		l.components = append(l.components, OrderComponentDTO{OrderID: dto.ID, ComponentID: id.Bytes(), Position: i})
	}
	return dto, l
}

func toDomain(dto OrderDTO, l links) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	clientID, err := kernel.UUIDFromBytes(dto.ClientID[:])
	if err != nil {
		return nil, err
	}
	number, err := order.ParseNumber(dto.Number)
	if err != nil {
		return nil, err
	}
	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	technicians := make([]personnel.ID, 0, len(l.technicians))
	for _, t := range l.technicians {
		technicians = append(technicians, personnel.ID(t.PersonnelID))
	}
	substations := make([]kernel.UUID, 0, len(l.substations))
	for _, s := range l.substations {
		substationID, subErr := kernel.UUIDFromBytes(s.SubstationID[:])
		if subErr != nil {
			return nil, subErr
		}
		substations = append(substations, substationID)
	}
	components := make([]kernel.UUID, 0, len(l.components))
	for _, c := range l.components {
		componentID, compErr := kernel.UUIDFromBytes(c.ComponentID[:])
		if compErr != nil {
			return nil, compErr
		}
		components = append(components, componentID)
	}

	var budget string
	if dto.BudgetNumber != nil {
		budget = *dto.BudgetNumber
	}

	return order.Restore(order.Snapshot{
		ID:     id,
		Number: number,
		Status: status,
		Details: order.Details{
			ServiceType:        order.ServiceType(dto.ServiceType),
			InitialDescription: dto.InitialDescription,
			ScheduledStart:     dto.ScheduledStart,
			ScheduledEnd:       dto.ScheduledEnd,
			BudgetNumber:       budget,
			ServiceValue:       dto.ServiceValue,
			Responsible:        dto.Responsible,
			Location:           dto.Location,
			Email:              dto.Email,
			Phone:              dto.Phone,
		},
		Team: order.Team{
			EngineerID:    personnel.ID(dto.EngineerID),
			SupervisorID:  personnelFromRaw(dto.SupervisorID),
			TechnicianIDs: technicians,
		},
		Scope: order.Scope{
			ClientID:      clientID,
			SubstationIDs: substations,
			ComponentIDs:  components,
		},
		Notes:           dto.Notes,
		Conclusion:      dto.Conclusion,
		Recommendations: dto.Recommendations,
		Provenance: order.Provenance{
			FinalizationRequestedBy: personnelFromRaw(dto.FinalizationRequestedBy),
			FinalizationRequestedAt: dto.FinalizationRequestedAt,
			ReviewedBy:              personnelFromRaw(dto.ReviewedBy),
			ReviewedAt:              dto.ReviewedAt,
			ApprovedBy:              personnelFromRaw(dto.ApprovedBy),
			ApprovedAt:              dto.ApprovedAt,
		},
		Version:   dto.Version,
		CreatedAt: dto.CreatedAt,
	})
}

func personnelToRaw(id *personnel.ID) *int64 {
	if id == nil {
		return nil
	}
	v := id.Int64()
	return &v
}

func personnelFromRaw(v *int64) *personnel.ID {
	if v == nil {
		return nil
	}
	id := personnel.ID(*v)
	return &id
}
