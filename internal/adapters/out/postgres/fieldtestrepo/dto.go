// Package fieldtestrepo persists field tests. A component carries at most one
// test of each kind per order, enforced by a composite unique index.
package fieldtestrepo

import (
	"time"

	"maintenance/internal/core/domain/model/client"
	"maintenance/internal/core/domain/model/fieldtest"
	"maintenance/internal/core/domain/model/kernel"
	"maintenance/internal/core/domain/model/personnel"

	"github.com/google/uuid"
)

type FieldTestDTO struct {
	ID            uuid.UUID      `gorm:"type:uuid;primaryKey"`
	OrderID       uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_field_test_order_component_kind"`
	ComponentID   uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_field_test_order_component_kind"`
	Kind          string         `gorm:"size:64;not null;uniqueIndex:idx_field_test_order_component_kind"`
	Data          map[string]any `gorm:"serializer:json;type:jsonb;not null"`
	PerformedAt   *time.Time
	ResponsibleID *int64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (FieldTestDTO) TableName() string {
	return "field_tests"
}

func fromDomain(test *fieldtest.FieldTest) FieldTestDTO {
	s := test.Snapshot()

	var responsible *int64
	if s.ResponsibleID != nil {
		v := s.ResponsibleID.Int64()
		responsible = &v
	}

	return FieldTestDTO{
		ID:            s.ID.Bytes(),
		OrderID:       s.OrderID.Bytes(),
		ComponentID:   s.ComponentID.Bytes(),
		Kind:          s.Kind.String(),
		Data:          s.Data,
		PerformedAt:   s.PerformedAt,
		ResponsibleID: responsible,
		CreatedAt:     s.CreatedAt,
	}
}

func toDomain(dto FieldTestDTO) (*fieldtest.FieldTest, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}
	componentID, err := kernel.UUIDFromBytes(dto.ComponentID[:])
	if err != nil {
		return nil, err
	}

	var responsible *personnel.ID
	if dto.ResponsibleID != nil {
		v := personnel.ID(*dto.ResponsibleID)
		responsible = &v
	}

	return fieldtest.Restore(fieldtest.Snapshot{
		ID:          id,
		OrderID:     orderID,
		ComponentID: componentID,
		Kind:        client.Kind(dto.Kind),
		Record: fieldtest.Record{
			Data:          dto.Data,
			PerformedAt:   dto.PerformedAt,
			ResponsibleID: responsible,
		},
		CreatedAt: dto.CreatedAt,
	}), nil
}
