package fieldtest

import (
	"errors"
	"maps"
	"time"

	"maintenance/internal/core/domain/model/client"
	"maintenance/internal/core/domain/model/kernel"
	"maintenance/internal/core/domain/model/personnel"
	"maintenance/internal/pkg/errs"
)

var ErrDuplicateFieldTest = errors.New("component already has a field test of this kind in the order")

// Record is the measured content of a field test.
type Record struct {
	Data          map[string]any `json:"data"`
	PerformedAt   *time.Time     `json:"performedAt,omitempty"`
	ResponsibleID *personnel.ID  `json:"responsibleId,omitempty"`
}

func (r Record) validate() error {
	if len(r.Data) == 0 {
		return errs.NewValueIsRequiredError("field test data")
	}
	return nil
}

// FieldTest is one measurement sheet recorded against a component within an order.
type FieldTest struct {
	id          kernel.UUID
	orderID     kernel.UUID
	componentID kernel.UUID
	kind        client.Kind
	record      Record
	createdAt   time.Time
}

type Snapshot struct {
	ID          kernel.UUID `json:"id"`
	OrderID     kernel.UUID `json:"orderId"`
	ComponentID kernel.UUID `json:"componentId"`
	Kind        client.Kind `json:"kind"`
	Record
	CreatedAt time.Time `json:"createdAt"`
}

func NewFieldTest(orderID, componentID kernel.UUID, kind client.Kind, record Record, now time.Time) (*FieldTest, error) {
	if err := errors.Join(orderID.Validate(), componentID.Validate(), kind.Validate(), record.validate()); err != nil {
		return nil, err
	}
	return &FieldTest{
		id:          kernel.NewUUID(),
		orderID:     orderID,
		componentID: componentID,
		kind:        kind,
		record:      cloneRecord(record),
		createdAt:   now,
	}, nil
}

func Restore(s Snapshot) *FieldTest {
	return &FieldTest{
		id:          s.ID,
		orderID:     s.OrderID,
		componentID: s.ComponentID,
		kind:        s.Kind,
		record:      cloneRecord(s.Record),
		createdAt:   s.CreatedAt,
	}
}

func (f *FieldTest) ID() kernel.UUID {
	return f.id
}

func (f *FieldTest) OrderID() kernel.UUID {
	return f.orderID
}

func (f *FieldTest) ComponentID() kernel.UUID {
	return f.componentID
}

func (f *FieldTest) Kind() client.Kind {
	return f.kind
}

func (f *FieldTest) Record() Record {
	return cloneRecord(f.record)
}

// Revise replaces the measured content.
func (f *FieldTest) Revise(record Record) error {
	if err := record.validate(); err != nil {
		return err
	}
	f.record = cloneRecord(record)
	return nil
}

func (f *FieldTest) Snapshot() Snapshot {
	return Snapshot{
		ID:          f.id,
		OrderID:     f.orderID,
		ComponentID: f.componentID,
		Kind:        f.kind,
		Record:      cloneRecord(f.record),
		CreatedAt:   f.createdAt,
	}
}

func cloneRecord(r Record) Record {
	r.Data = maps.Clone(r.Data)
	return r
}
