package commands_test

import (
	"context"
	"testing"
	"time"

	"maintenance/internal/core/application/usecases/commands"
	"maintenance/internal/core/domain/model/activity"
	"maintenance/internal/core/domain/model/client"
	"maintenance/internal/core/domain/model/fieldtest"
	"maintenance/internal/core/domain/model/kernel"
	"maintenance/internal/core/domain/model/order"
	"maintenance/internal/core/domain/model/personnel"
	"maintenance/internal/core/domain/services"
	"maintenance/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, time.January, 20, 9, 30, 0, 0, time.UTC)

var fixedClock = kernel.ClockFunc(func() time.Time { return now })

type MockClientRepository struct{ mock.Mock }

func (m *MockClientRepository) Add(ctx context.Context, c *client.Client) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockClientRepository) Update(ctx context.Context, c *client.Client) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockClientRepository) Get(ctx context.Context, id kernel.UUID) (*client.Client, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*client.Client)
	return c, args.Error(1)
}

func (m *MockClientRepository) Exists(ctx context.Context, id kernel.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockClientRepository) Delete(ctx context.Context, id kernel.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockClientRepository) Hierarchy(ctx context.Context, clientID kernel.UUID) ([]services.PersistedSubstation, error) {
	args := m.Called(ctx, clientID)
	persisted, _ := args.Get(0).([]services.PersistedSubstation)
	return persisted, args.Error(1)
}

func (m *MockClientRepository) AddSubstation(ctx context.Context, s *client.Substation) error {
	return m.Called(ctx, s).Error(0)
}

func (m *MockClientRepository) UpdateSubstation(ctx context.Context, s *client.Substation) error {
	return m.Called(ctx, s).Error(0)
}

func (m *MockClientRepository) DeleteSubstations(ctx context.Context, clientID kernel.UUID, ids []kernel.UUID) error {
	return m.Called(ctx, clientID, ids).Error(0)
}

func (m *MockClientRepository) AddComponent(ctx context.Context, c *client.Component) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockClientRepository) UpdateComponent(ctx context.Context, c *client.Component) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockClientRepository) DeleteComponents(ctx context.Context, substationID kernel.UUID, ids []kernel.UUID) error {
	return m.Called(ctx, substationID, ids).Error(0)
}

func (m *MockClientRepository) OwnedSubstations(ctx context.Context, clientID kernel.UUID, ids []kernel.UUID) ([]kernel.UUID, error) {
	args := m.Called(ctx, clientID, ids)
	owned, _ := args.Get(0).([]kernel.UUID)
	return owned, args.Error(1)
}

func (m *MockClientRepository) OwnedComponents(ctx context.Context, clientID kernel.UUID, ids []kernel.UUID) ([]kernel.UUID, error) {
	args := m.Called(ctx, clientID, ids)
	owned, _ := args.Get(0).([]kernel.UUID)
	return owned, args.Error(1)
}

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) Delete(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) GetByNumber(ctx context.Context, number order.Number) (*order.Order, error) {
	args := m.Called(ctx, number)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) LastNumberWithPrefix(ctx context.Context, prefix string) (*order.Number, error) {
	args := m.Called(ctx, prefix)
	n, _ := args.Get(0).(*order.Number)
	return n, args.Error(1)
}

func (m *MockOrderRepository) BudgetNumberTaken(ctx context.Context, budgetNumber string, except *kernel.UUID) (bool, error) {
	args := m.Called(ctx, budgetNumber, except)
	return args.Bool(0), args.Error(1)
}

func (m *MockOrderRepository) CountByClient(ctx context.Context, clientID kernel.UUID) (int64, error) {
	args := m.Called(ctx, clientID)
	return args.Get(0).(int64), args.Error(1)
}

type MockFieldTestRepository struct{ mock.Mock }

func (m *MockFieldTestRepository) Add(ctx context.Context, f *fieldtest.FieldTest) error {
	return m.Called(ctx, f).Error(0)
}

func (m *MockFieldTestRepository) Update(ctx context.Context, f *fieldtest.FieldTest) error {
	return m.Called(ctx, f).Error(0)
}

func (m *MockFieldTestRepository) Delete(ctx context.Context, id kernel.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockFieldTestRepository) Get(ctx context.Context, id kernel.UUID) (*fieldtest.FieldTest, error) {
	args := m.Called(ctx, id)
	f, _ := args.Get(0).(*fieldtest.FieldTest)
	return f, args.Error(1)
}

func (m *MockFieldTestRepository) Exists(ctx context.Context, orderID, componentID kernel.UUID, kind client.Kind) (bool, error) {
	args := m.Called(ctx, orderID, componentID, kind)
	return args.Bool(0), args.Error(1)
}

type MockPersonnelRepository struct{ mock.Mock }

func (m *MockPersonnelRepository) Existing(ctx context.Context, ids []personnel.ID) ([]personnel.ID, error) {
	args := m.Called(ctx, ids)
	found, _ := args.Get(0).([]personnel.ID)
	return found, args.Error(1)
}

type MockActivityLog struct{ mock.Mock }

func (m *MockActivityLog) Append(ctx context.Context, entry *activity.Entry) error {
	return m.Called(ctx, entry).Error(0)
}

// MockUoW satisfies every unit of work flavour the handlers ask for.
type MockUoW struct {
	mock.Mock
	clients  *MockClientRepository
	orders   *MockOrderRepository
	tests    *MockFieldTestRepository
	people   *MockPersonnelRepository
	activity *MockActivityLog
}

func newMockUoW() *MockUoW {
	return &MockUoW{
		clients:  new(MockClientRepository),
		orders:   new(MockOrderRepository),
		tests:    new(MockFieldTestRepository),
		people:   new(MockPersonnelRepository),
		activity: new(MockActivityLog),
	}
}

func (m *MockUoW) Begin(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockUoW) ClientRepository() ports.ClientRepository       { return m.clients }
func (m *MockUoW) OrderRepository() ports.OrderRepository         { return m.orders }
func (m *MockUoW) FieldTestRepository() ports.FieldTestRepository { return m.tests }
func (m *MockUoW) PersonnelRepository() ports.PersonnelRepository { return m.people }
func (m *MockUoW) ActivityLog() ports.ActivityLog                 { return m.activity }

// expectTx accepts one Begin and Rollback; commit decides whether Commit is expected.
func (m *MockUoW) expectTx(commit bool) {
	m.On("Begin", mock.Anything).Return(nil)
	m.On("Rollback", mock.Anything).Return(nil)
	if commit {
		m.On("Commit", mock.Anything).Return(nil).Once()
	}
}

func (m *MockUoW) assertAll(t *testing.T) {
	t.Helper()
	m.AssertExpectations(t)
	m.clients.AssertExpectations(t)
	m.orders.AssertExpectations(t)
	m.tests.AssertExpectations(t)
	m.people.AssertExpectations(t)
	m.activity.AssertExpectations(t)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	return m.Called().Get(0).(commands.UoW)
}

type MockClientUoWFactory struct{ mock.Mock }

func (m *MockClientUoWFactory) Create() commands.ClientUoW {
	return m.Called().Get(0).(commands.ClientUoW)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	return m.Called().Get(0).(commands.OrderUoW)
}

type recordingMetrics struct {
	transitions map[string][]error
	collisions  int
}

func newRecordingMetrics() *recordingMetrics {
	return &recordingMetrics{transitions: map[string][]error{}}
}

func (r *recordingMetrics) ObserveTransition(name string, err error) {
	r.transitions[name] = append(r.transitions[name], err)
}

func (r *recordingMetrics) ObserveNumberCollision() {
	r.collisions++
}

func (r *recordingMetrics) SetBacklog(map[string]int64) {}

func actor(t *testing.T, id int64, role personnel.Role) personnel.Actor {
	t.Helper()
	a, err := personnel.NewActor(id, role)
	require.NoError(t, err)
	return a
}

const (
	engineerID   personnel.ID = 200
	supervisorID personnel.ID = 300
	technicianID personnel.ID = 400
)

func orderIn(t *testing.T, status order.Status, componentIDs ...kernel.UUID) *order.Order {
	t.Helper()
	if len(componentIDs) == 0 {
		componentIDs = []kernel.UUID{kernel.NewUUID()}
	}
	supervisor := supervisorID
	o, err := order.Restore(order.Snapshot{
		ID:      kernel.NewUUID(),
		Number:  order.NextNumber(now, nil),
		Status:  status,
		Details: order.Details{ServiceType: order.ServicePreventive},
		Team: order.Team{
			EngineerID:    engineerID,
			SupervisorID:  &supervisor,
			TechnicianIDs: []personnel.ID{technicianID},
		},
		Scope:     order.Scope{ClientID: kernel.NewUUID(), ComponentIDs: componentIDs},
		Version:   3,
		CreatedAt: now.Add(-24 * time.Hour),
	})
	require.NoError(t, err)
	return o
}
