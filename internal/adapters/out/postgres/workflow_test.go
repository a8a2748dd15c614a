package postgres_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"maintenance/internal/adapters/out/postgres"
	"maintenance/internal/adapters/out/postgres/sqlitetest"
	"maintenance/internal/core/application/usecases/commands"
	"maintenance/internal/core/domain/model/client"
	"maintenance/internal/core/domain/model/fieldtest"
	"maintenance/internal/core/domain/model/kernel"
	"maintenance/internal/core/domain/model/order"
	"maintenance/internal/core/domain/model/personnel"
	"maintenance/internal/core/domain/services"
	"maintenance/internal/core/ports"
	"maintenance/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type (
	uowFactory       struct{ f ports.UnitOfWorkFactory }
	clientUoWFactory struct{ f ports.UnitOfWorkFactory }
	orderUoWFactory  struct{ f ports.UnitOfWorkFactory }
)

func (u uowFactory) Create() commands.UoW             { return u.f.Create() }
func (u clientUoWFactory) Create() commands.ClientUoW { return u.f.Create() }
func (u orderUoWFactory) Create() commands.OrderUoW   { return u.f.Create() }

// workbench wires the command handlers to one database and a movable clock.
type workbench struct {
	db  *gorm.DB
	now time.Time

	uows       uowFactory
	clientUoWs clientUoWFactory
	orderUoWs  orderUoWFactory
}

func newWorkbench(t *testing.T) *workbench {
	t.Helper()
	db := sqlitetest.Open(t)
	sqlitetest.SeedEmployees(t, db,
		personnel.Employee{ID: 1, Name: "Ana", Role: personnel.RoleAdmin},
		personnel.Employee{ID: 200, Name: "Bruno", Role: personnel.RoleEngineer},
		personnel.Employee{ID: 300, Name: "Carla", Role: personnel.RoleSupervisor},
		personnel.Employee{ID: 400, Name: "Davi", Role: personnel.RoleTechnician},
	)
	f := postgres.NewGormUnitOfWorkFactory(db)
	return &workbench{
		db:         db,
		now:        jan,
		uows:       uowFactory{f},
		clientUoWs: clientUoWFactory{f},
		orderUoWs:  orderUoWFactory{f},
	}
}

func (w *workbench) clock() kernel.Clock {
	return kernel.ClockFunc(func() time.Time { return w.now })
}

func (w *workbench) createClient(t *testing.T) client.TreeSnapshot {
	t.Helper()
	cmd, err := commands.NewCreateClientCommand(actor(t, 1, personnel.RoleAdmin),
		client.Profile{Name: "Metalúrgica Boa Vista"},
		[]client.SubstationDraft{{
			Ref:     "tmp-sub",
			Profile: client.SubstationProfile{Name: "SE Principal"},
			Components: []client.ComponentDraft{
				{Ref: "tmp-1", Name: "TR-01", Kind: client.KindPowerTransformer, Info: &client.PowerTransformerInfo{Power: "1500 kVA"}},
				{Ref: "tmp-2", Name: "Malha SE", Kind: client.KindGroundingGrid, Info: &client.GroundingGridInfo{Location: "Pátio"}},
			},
		}})
	require.NoError(t, err)

	h := commands.NewCreateClientCommandHandler(w.clientUoWs, hierarchyReconciler(), w.clock())
	tree, err := h.Handle(context.Background(), cmd)
	require.NoError(t, err)
	return tree
}

func (w *workbench) createOrder(t *testing.T, tree client.TreeSnapshot, budget string) order.Snapshot {
	t.Helper()
	supervisor := personnel.ID(300)
	cmd, err := commands.NewCreateOrderCommand(actor(t, 200, personnel.RoleEngineer),
		order.Details{ServiceType: order.ServicePreventive, BudgetNumber: budget},
		order.Team{EngineerID: 200, SupervisorID: &supervisor, TechnicianIDs: []personnel.ID{400}},
		order.Scope{ClientID: tree.ID, ComponentIDs: componentIDs(tree)},
	)
	require.NoError(t, err)

	h := commands.NewCreateOrderCommandHandler(w.uows, w.clock(), ports.NopMetrics{}, slog.New(slog.DiscardHandler), 0)
	created, err := h.Handle(context.Background(), cmd)
	require.NoError(t, err)
	return created
}

func hierarchyReconciler() services.HierarchyReconciler {
	return services.NewHierarchyReconciler(services.NewIdentifierClassifier())
}

func componentIDs(tree client.TreeSnapshot) []kernel.UUID {
	var ids []kernel.UUID
	for _, s := range tree.Substations {
		for _, c := range s.Components {
			ids = append(ids, c.ID)
		}
	}
	return ids
}

func componentNamed(t *testing.T, tree client.TreeSnapshot, name string) client.ComponentSnapshot {
	t.Helper()
	for _, s := range tree.Substations {
		for _, c := range s.Components {
			if c.Name == name {
				return c
			}
		}
	}
	require.Failf(t, "component not found", "%q", name)
	return client.ComponentSnapshot{}
}

func TestWorkflow_ReconcileKeepsIdentities(t *testing.T) {
	ctx := context.Background()
	w := newWorkbench(t)
	tree := w.createClient(t)
	require.Len(t, tree.Substations, 1)
	sub := tree.Substations[0]
	trafo := componentNamed(t, tree, "TR-01")
	grid := componentNamed(t, tree, "Malha SE")

	cmd, err := commands.NewReconcileClientHierarchyCommand(actor(t, 200, personnel.RoleEngineer), tree.ID,
		client.Profile{Name: "Metalúrgica Boa Vista S.A."},
		[]client.SubstationDraft{{
			Ref:     sub.ID.String(),
			Profile: client.SubstationProfile{Name: "SE Principal", Location: "Galpão 2"},
			Components: []client.ComponentDraft{
				{Ref: trafo.ID.String(), Name: "TR-01", Kind: client.KindPowerTransformer, Info: &client.PowerTransformerInfo{Power: "2000 kVA"}},
				{Ref: "tmp-3", Name: "Banco 1", Kind: client.KindBattery, Info: &client.BatteryInfo{Quantity: 2}},
			},
		}})
	require.NoError(t, err)
	h := commands.NewReconcileClientHierarchyCommandHandler(w.clientUoWs, hierarchyReconciler(), w.clock())
	edited, err := h.Handle(ctx, cmd)
	require.NoError(t, err)

	assert.Equal(t, "Metalúrgica Boa Vista S.A.", edited.Name)
	require.Len(t, edited.Substations, 1)
	assert.Equal(t, sub.ID, edited.Substations[0].ID)
	assert.Equal(t, "Galpão 2", edited.Substations[0].Location)
	require.Len(t, edited.Substations[0].Components, 2)

	kept := componentNamed(t, edited, "TR-01")
	assert.Equal(t, trafo.ID, kept.ID)
	assert.Equal(t, &client.PowerTransformerInfo{Power: "2000 kVA"}, kept.Info)

	added := componentNamed(t, edited, "Banco 1")
	assert.NotEqual(t, grid.ID, added.ID)
	assert.Equal(t, client.KindBattery, added.Kind)

	var remaining int64
	require.NoError(t, w.db.Table("components").Where("id = ?", grid.ID.String()).Count(&remaining).Error)
	assert.Zero(t, remaining)
}

func TestWorkflow_OrderNumbersRestartEveryMonth(t *testing.T) {
	w := newWorkbench(t)
	tree := w.createClient(t)

	var numbers []string
	for range 3 {
		numbers = append(numbers, w.createOrder(t, tree, "").Number.String())
	}
	w.now = time.Date(2025, time.February, 3, 8, 0, 0, 0, time.UTC)
	numbers = append(numbers, w.createOrder(t, tree, "").Number.String())

	assert.Equal(t, []string{"2501001", "2501002", "2501003", "2502001"}, numbers)
}

func TestWorkflow_DuplicateBudgetNumberIsRejected(t *testing.T) {
	w := newWorkbench(t)
	tree := w.createClient(t)
	w.createOrder(t, tree, "ORC-17")

	cmd, err := commands.NewCreateOrderCommand(actor(t, 1, personnel.RoleAdmin),
		order.Details{ServiceType: order.ServicePreventive, BudgetNumber: "ORC-17"},
		order.Team{EngineerID: 200},
		order.Scope{ClientID: tree.ID, ComponentIDs: componentIDs(tree)},
	)
	require.NoError(t, err)
	h := commands.NewCreateOrderCommandHandler(w.uows, w.clock(), ports.NopMetrics{}, slog.New(slog.DiscardHandler), 0)
	_, err = h.Handle(context.Background(), cmd)

	assert.Equal(t, errs.KindConflict, errs.KindOf(err))
	assert.ErrorIs(t, err, commands.ErrDuplicateBudgetNumber)
}

func TestWorkflow_FullApprovalLifecycle(t *testing.T) {
	ctx := context.Background()
	w := newWorkbench(t)
	tree := w.createClient(t)
	created := w.createOrder(t, tree, "ORC-1")
	require.Equal(t, order.Open, created.Status)

	started := order.InProgress
	update, err := commands.NewUpdateOrderCommand(actor(t, 200, personnel.RoleEngineer), created.ID, order.Patch{Status: &started})
	require.NoError(t, err)
	updater := commands.NewUpdateOrderCommandHandler(w.uows, w.clock(), ports.NopMetrics{})
	updated, err := updater.Handle(ctx, update)
	require.NoError(t, err)
	assert.Equal(t, order.InProgress, updated.Status)

	request, err := commands.NewRequestFinalizationCommand(actor(t, 300, personnel.RoleSupervisor), created.ID)
	require.NoError(t, err)
	requester := commands.NewRequestFinalizationCommandHandler(w.orderUoWs, w.clock(), ports.NopMetrics{})
	requested, err := requester.Handle(ctx, request)
	require.NoError(t, err)
	assert.Equal(t, order.AwaitingReview, requested.Status)
	require.NotNil(t, requested.FinalizationRequestedBy)
	assert.Equal(t, personnel.ID(300), *requested.FinalizationRequestedBy)

	review, err := commands.NewAdminReviewCommand(actor(t, 1, personnel.RoleAdmin), created.ID)
	require.NoError(t, err)
	reviewer := commands.NewAdminReviewCommandHandler(w.orderUoWs, w.clock(), ports.NopMetrics{})
	reviewed, err := reviewer.Handle(ctx, review)
	require.NoError(t, err)
	assert.Equal(t, order.AwaitingApproval, reviewed.Status)

	// the assigned engineer approves without holding an approver role
	approve, err := commands.NewFinalApprovalCommand(actor(t, 200, personnel.RoleEngineer), created.ID,
		"Equipamentos em conformidade.", "Repetir ensaio em 12 meses.")
	require.NoError(t, err)
	approver := commands.NewFinalApprovalCommandHandler(w.orderUoWs, w.clock(), ports.NopMetrics{})
	approved, err := approver.Handle(ctx, approve)
	require.NoError(t, err)
	assert.Equal(t, order.Finalized, approved.Status)
	assert.Equal(t, "Equipamentos em conformidade.", approved.Conclusion)
	require.NotNil(t, approved.ApprovedBy)
	assert.Equal(t, personnel.ID(200), *approved.ApprovedBy)
	assert.Greater(t, approved.Version, created.Version)

	cancel, err := commands.NewCancelOrderCommand(actor(t, 1, personnel.RoleAdmin), created.ID)
	require.NoError(t, err)
	canceller := commands.NewCancelOrderCommandHandler(w.orderUoWs, w.clock(), ports.NopMetrics{})
	_, err = canceller.Handle(ctx, cancel)
	assert.Equal(t, errs.KindInvalidState, errs.KindOf(err))
	assert.ErrorIs(t, err, order.ErrAlreadyFinalized)

	var entries int64
	require.NoError(t, w.db.Table("activity_log").Where("entity_id = ?", created.Number.String()).Count(&entries).Error)
	assert.Equal(t, int64(5), entries, "create, update, request, review and approve")
}

func TestWorkflow_AdminPurgesOrder(t *testing.T) {
	ctx := context.Background()
	w := newWorkbench(t)
	tree := w.createClient(t)
	created := w.createOrder(t, tree, "")

	del, err := commands.NewDeleteOrderHardCommand(actor(t, 1, personnel.RoleAdmin), created.ID)
	require.NoError(t, err)
	h := commands.NewDeleteOrderHardCommandHandler(w.orderUoWs, w.clock(), ports.NopMetrics{})
	deleted, err := h.Handle(ctx, del)
	require.NoError(t, err)
	assert.Equal(t, created.Number, deleted.Number)

	_, err = postgres.NewGormUnitOfWorkFactory(w.db).Create().OrderRepository().Get(ctx, created.ID)
	assert.Equal(t, errs.KindNotFound, errs.KindOf(err))

	// the client is free to go once nothing references it
	drop, err := commands.NewDeleteClientCommand(actor(t, 1, personnel.RoleAdmin), tree.ID)
	require.NoError(t, err)
	dropper := commands.NewDeleteClientCommandHandler(w.clientUoWs, w.clock())
	require.NoError(t, dropper.Handle(ctx, drop))
}

func TestWorkflow_FinalizedOrderLocksFieldTests(t *testing.T) {
	ctx := context.Background()
	w := newWorkbench(t)
	tree := w.createClient(t)
	created := w.createOrder(t, tree, "")
	trafo := componentNamed(t, tree, "TR-01")
	grid := componentNamed(t, tree, "Malha SE")

	record := fieldtest.Record{Data: map[string]any{"resistenciaIsolamento": "2.5 GΩ"}}
	h := commands.NewCreateFieldTestCommandHandler(w.uows, w.clock())

	byEngineer, err := commands.NewCreateFieldTestCommand(actor(t, 200, personnel.RoleEngineer),
		created.Number, trafo.ID, client.KindPowerTransformer, record)
	require.NoError(t, err)
	stored, err := h.Handle(ctx, byEngineer)
	require.NoError(t, err)
	assert.Equal(t, created.ID, stored.OrderID)
	assert.Equal(t, "2.5 GΩ", stored.Data["resistenciaIsolamento"])

	_, err = h.Handle(ctx, byEngineer)
	assert.ErrorIs(t, err, fieldtest.ErrDuplicateFieldTest)

	require.NoError(t, w.db.Table("orders").Where("id = ?", created.ID.String()).
		Update("status", order.Finalized.String()).Error)

	late, err := commands.NewCreateFieldTestCommand(actor(t, 200, personnel.RoleEngineer),
		created.Number, grid.ID, client.KindGroundingGrid, record)
	require.NoError(t, err)
	_, err = h.Handle(ctx, late)
	assert.ErrorIs(t, err, order.ErrOrderLocked)

	update, err := commands.NewUpdateFieldTestCommand(actor(t, 200, personnel.RoleEngineer), stored.ID,
		fieldtest.Record{Data: map[string]any{"resistenciaIsolamento": "0.1 GΩ"}})
	require.NoError(t, err)
	updateHandler := commands.NewUpdateFieldTestCommandHandler(w.uows, w.clock())
	_, err = updateHandler.Handle(ctx, update)
	assert.Equal(t, errs.KindInvalidState, errs.KindOf(err))
	assert.ErrorIs(t, err, order.ErrOrderLocked)

	del, err := commands.NewDeleteFieldTestCommand(actor(t, 1, personnel.RoleAdmin), stored.ID)
	require.NoError(t, err)
	deleteHandler := commands.NewDeleteFieldTestCommandHandler(w.uows, w.clock())
	err = deleteHandler.Handle(ctx, del)
	assert.ErrorIs(t, err, order.ErrOrderLocked)

	var count int64
	require.NoError(t, w.db.Table("field_tests").Where("id = ?", stored.ID.String()).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestWorkflow_ClosedStoreIsUnavailable(t *testing.T) {
	ctx := context.Background()
	w := newWorkbench(t)
	tree := w.createClient(t)
	created := w.createOrder(t, tree, "")

	sqlDB, err := w.db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	cmd, err := commands.NewAdminReviewCommand(actor(t, 1, personnel.RoleAdmin), created.ID)
	require.NoError(t, err)
	reviewHandler := commands.NewAdminReviewCommandHandler(w.orderUoWs, w.clock(), ports.NopMetrics{})
	_, err = reviewHandler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrUnavailable)
	assert.Equal(t, errs.KindUnavailable, errs.KindOf(err))
}
