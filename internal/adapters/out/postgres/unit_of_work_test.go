package postgres_test

import (
	"context"
	"testing"
	"time"

	"maintenance/internal/adapters/out/postgres"
	"maintenance/internal/adapters/out/postgres/activityrepo"
	"maintenance/internal/adapters/out/postgres/sqlitetest"
	"maintenance/internal/core/domain/model/activity"
	"maintenance/internal/core/domain/model/client"
	"maintenance/internal/core/domain/model/fieldtest"
	"maintenance/internal/core/domain/model/kernel"
	"maintenance/internal/core/domain/model/order"
	"maintenance/internal/core/domain/model/personnel"
	"maintenance/internal/core/ports"
	"maintenance/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var jan = time.Date(2025, time.January, 20, 9, 30, 0, 0, time.UTC)

func begin(t *testing.T, db *gorm.DB) ports.UnitOfWork {
	t.Helper()
	uow := postgres.NewGormUnitOfWorkFactory(db).Create()
	require.NoError(t, uow.Begin(context.Background()))
	t.Cleanup(func() {
		_ = uow.Rollback(context.Background())
	})
	return uow
}

// seedTree stores a client with one substation holding a power transformer
// and a grounding grid.
func seedTree(t *testing.T, repo ports.ClientRepository) (*client.Client, *client.Substation, []*client.Component) {
	t.Helper()
	ctx := context.Background()

	c, err := client.NewClient(client.Profile{Name: "Metalúrgica Boa Vista", Document: "12.345.678/0001-90"})
	require.NoError(t, err)
	require.NoError(t, repo.Add(ctx, c))

	sub, err := client.NewSubstation(c.ID(), client.SubstationProfile{Name: "SE Principal", Location: "Galpão 2"})
	require.NoError(t, err)
	require.NoError(t, repo.AddSubstation(ctx, sub))

	trafo, err := client.NewComponent(sub.ID(), "TR-01", client.KindPowerTransformer, &client.PowerTransformerInfo{
		Manufacturer: "WEG", Power: "1500 kVA", PrimaryVoltage: "13.8 kV", SecondaryVoltage: "380 V",
	})
	require.NoError(t, err)
	grid, err := client.NewComponent(sub.ID(), "Malha SE", client.KindGroundingGrid, &client.GroundingGridInfo{
		Location: "Pátio",
	})
	require.NoError(t, err)
	require.NoError(t, repo.AddComponent(ctx, trafo))
	require.NoError(t, repo.AddComponent(ctx, grid))

	return c, sub, []*client.Component{trafo, grid}
}

func newOrder(t *testing.T, number string, clientID kernel.UUID, componentIDs ...kernel.UUID) *order.Order {
	t.Helper()
	n, err := order.ParseNumber(number)
	require.NoError(t, err)
	supervisor := personnel.ID(300)
	o, err := order.NewOrder(n,
		order.Details{
			ServiceType:  order.ServicePreventive,
			BudgetNumber: "ORC-" + number,
			ServiceValue: decimal.NewNullDecimal(decimal.RequireFromString("1250.50")),
		},
		order.Team{EngineerID: 200, SupervisorID: &supervisor, TechnicianIDs: []personnel.ID{400, 401}},
		order.Scope{ClientID: clientID, ComponentIDs: componentIDs},
		jan,
	)
	require.NoError(t, err)
	return o
}

func TestUnitOfWork_RollbackDiscardsWrites(t *testing.T) {
	ctx := context.Background()
	db := sqlitetest.Open(t)
	uow := postgres.NewGormUnitOfWorkFactory(db).Create()

	require.NoError(t, uow.Begin(ctx))
	c, err := client.NewClient(client.Profile{Name: "Acme"})
	require.NoError(t, err)
	require.NoError(t, uow.ClientRepository().Add(ctx, c))
	require.NoError(t, uow.Rollback(ctx))

	exists, err := uow.ClientRepository().Exists(ctx, c.ID())
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestUnitOfWork_CommitPersists(t *testing.T) {
	ctx := context.Background()
	db := sqlitetest.Open(t)
	uow := postgres.NewGormUnitOfWorkFactory(db).Create()

	require.NoError(t, uow.Begin(ctx))
	require.NoError(t, uow.Begin(ctx), "a second Begin keeps the open transaction")
	c, err := client.NewClient(client.Profile{Name: "Acme"})
	require.NoError(t, err)
	require.NoError(t, uow.ClientRepository().Add(ctx, c))
	require.NoError(t, uow.Commit(ctx))

	exists, err := uow.ClientRepository().Exists(ctx, c.ID())
	require.NoError(t, err)
	assert.True(t, exists)

	assert.ErrorIs(t, uow.Commit(ctx), gorm.ErrInvalidTransaction)
	assert.ErrorIs(t, uow.Rollback(ctx), gorm.ErrInvalidTransaction)
}

func TestUnitOfWork_StoreFailuresAreUnavailable(t *testing.T) {
	ctx := context.Background()
	db := sqlitetest.Open(t)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	uow := postgres.NewGormUnitOfWorkFactory(db).Create()

	err = uow.Begin(ctx)
	require.ErrorIs(t, err, errs.ErrUnavailable)
	assert.Equal(t, errs.KindUnavailable, errs.KindOf(err))

	_, err = uow.OrderRepository().Get(ctx, kernel.NewUUID())
	require.ErrorIs(t, err, errs.ErrUnavailable)
	assert.NotErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestUnitOfWork_MissingRowsStayNotFound(t *testing.T) {
	uow := postgres.NewGormUnitOfWorkFactory(sqlitetest.Open(t)).Create()

	_, err := uow.OrderRepository().Get(context.Background(), kernel.NewUUID())

	assert.Equal(t, errs.KindNotFound, errs.KindOf(err))
}

func TestClientRepository_TreeRoundTrip(t *testing.T) {
	ctx := context.Background()
	uow := begin(t, sqlitetest.Open(t))
	repo := uow.ClientRepository()
	c, sub, comps := seedTree(t, repo)

	loaded, err := repo.Get(ctx, c.ID())
	require.NoError(t, err)

	tree := loaded.Snapshot()
	assert.Equal(t, "Metalúrgica Boa Vista", tree.Name)
	require.Len(t, tree.Substations, 1)
	assert.Equal(t, sub.ID(), tree.Substations[0].ID)
	require.Len(t, tree.Substations[0].Components, 2)

	// Inspection order puts the grounding grid first.
	grid, trafo := tree.Substations[0].Components[0], tree.Substations[0].Components[1]
	assert.Equal(t, comps[1].ID(), grid.ID)
	assert.Equal(t, &client.GroundingGridInfo{Location: "Pátio"}, grid.Info)
	assert.Equal(t, comps[0].ID(), trafo.ID)
	assert.Equal(t, &client.PowerTransformerInfo{
		Manufacturer: "WEG", Power: "1500 kVA", PrimaryVoltage: "13.8 kV", SecondaryVoltage: "380 V",
	}, trafo.Info)
}

func TestClientRepository_UpdateComponentClearsForeignAttributes(t *testing.T) {
	ctx := context.Background()
	uow := begin(t, sqlitetest.Open(t))
	repo := uow.ClientRepository()
	c, sub, comps := seedTree(t, repo)

	// Turning the transformer into a surge arrester drops the attributes only
	// the transformer owned.
	revised, err := client.ReviseComponent(comps[0].ID(), sub.ID(), "PR-01", client.KindSurgeArrester,
		&client.SurgeArresterInfo{Manufacturer: "ABB", RatedVoltage: "12 kV"})
	require.NoError(t, err)
	require.NoError(t, repo.UpdateComponent(ctx, revised))

	loaded, err := repo.Get(ctx, c.ID())
	require.NoError(t, err)
	for _, comp := range loaded.Substations()[0].Components() {
		if comp.ID() == comps[0].ID() {
			assert.Equal(t, client.KindSurgeArrester, comp.Kind())
			assert.Empty(t, comp.Attributes().Power)
			assert.Equal(t, "ABB", comp.Attributes().Manufacturer)
		}
	}
}

func TestClientRepository_ChildWritesAreScopedByParent(t *testing.T) {
	ctx := context.Background()
	uow := begin(t, sqlitetest.Open(t))
	repo := uow.ClientRepository()
	c, sub, comps := seedTree(t, repo)
	other, otherSub, otherComps := seedTree(t, repo)

	owned, err := repo.OwnedComponents(ctx, c.ID(), []kernel.UUID{comps[0].ID(), otherComps[0].ID()})
	require.NoError(t, err)
	assert.Equal(t, []kernel.UUID{comps[0].ID()}, owned)

	ownedSubs, err := repo.OwnedSubstations(ctx, c.ID(), []kernel.UUID{sub.ID(), otherSub.ID()})
	require.NoError(t, err)
	assert.Equal(t, []kernel.UUID{sub.ID()}, ownedSubs)

	// Deleting another client's substation through this client is a no-op.
	require.NoError(t, repo.DeleteSubstations(ctx, c.ID(), []kernel.UUID{otherSub.ID()}))
	hierarchy, err := repo.Hierarchy(ctx, other.ID())
	require.NoError(t, err)
	require.Len(t, hierarchy, 1)
	assert.Len(t, hierarchy[0].ComponentIDs, 2)

	// Updating it through the wrong parent reports it missing.
	foreign, err := client.ReviseSubstation(otherSub.ID(), c.ID(), client.SubstationProfile{Name: "Hijack"})
	require.NoError(t, err)
	assert.ErrorIs(t, repo.UpdateSubstation(ctx, foreign), errs.ErrObjectNotFound)
}

func TestClientRepository_DeleteCascades(t *testing.T) {
	ctx := context.Background()
	uow := begin(t, sqlitetest.Open(t))
	repo := uow.ClientRepository()
	c, _, comps := seedTree(t, repo)

	require.NoError(t, repo.Delete(ctx, c.ID()))

	_, err := repo.Get(ctx, c.ID())
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	owned, err := repo.OwnedComponents(ctx, c.ID(), []kernel.UUID{comps[0].ID()})
	require.NoError(t, err)
	assert.Empty(t, owned)
}

func TestOrderRepository_RoundTrip(t *testing.T) {
	ctx := context.Background()
	uow := begin(t, sqlitetest.Open(t))
	c, _, comps := seedTree(t, uow.ClientRepository())
	repo := uow.OrderRepository()

	o := newOrder(t, "2501001", c.ID(), comps[1].ID(), comps[0].ID())
	require.NoError(t, repo.Add(ctx, o))

	loaded, err := repo.Get(ctx, o.ID())
	require.NoError(t, err)
	got := loaded.Snapshot()
	want := o.Snapshot()

	assert.Equal(t, want.Number, got.Number)
	assert.Equal(t, order.Open, got.Status)
	assert.Equal(t, want.ComponentIDs, got.ComponentIDs, "link order is preserved")
	assert.Equal(t, want.TechnicianIDs, got.TechnicianIDs)
	assert.Equal(t, want.SupervisorID, got.SupervisorID)
	assert.Equal(t, "ORC-2501001", got.BudgetNumber)
	assert.True(t, want.ServiceValue.Decimal.Equal(got.ServiceValue.Decimal))
	assert.Equal(t, 1, got.Version)

	byNumber, err := repo.GetByNumber(ctx, o.Number())
	require.NoError(t, err)
	assert.Equal(t, o.ID(), byNumber.ID())
}

func TestOrderRepository_UpdateIsGuardedByVersion(t *testing.T) {
	ctx := context.Background()
	uow := begin(t, sqlitetest.Open(t))
	c, _, comps := seedTree(t, uow.ClientRepository())
	repo := uow.OrderRepository()

	o := newOrder(t, "2501001", c.ID(), comps[0].ID())
	require.NoError(t, repo.Add(ctx, o))

	first, err := repo.Get(ctx, o.ID())
	require.NoError(t, err)
	second, err := repo.Get(ctx, o.ID())
	require.NoError(t, err)

	inProgress := order.InProgress
	require.NoError(t, first.Apply(actor(t, 200, personnel.RoleEngineer), order.Patch{Status: &inProgress}))
	require.NoError(t, repo.Update(ctx, first))

	notes := "late writer"
	require.NoError(t, second.Apply(actor(t, 200, personnel.RoleEngineer), order.Patch{Notes: &notes}))
	err = repo.Update(ctx, second)
	require.ErrorIs(t, err, errs.ErrConflict)

	reloaded, err := repo.Get(ctx, o.ID())
	require.NoError(t, err)
	assert.Equal(t, order.InProgress, reloaded.Status())
	assert.Equal(t, 2, reloaded.Version())
}

func TestOrderRepository_DuplicateNumberIsReportedAsTaken(t *testing.T) {
	ctx := context.Background()
	db := sqlitetest.Open(t)
	factory := postgres.NewGormUnitOfWorkFactory(db)

	setup := factory.Create()
	require.NoError(t, setup.Begin(ctx))
	c, _, comps := seedTree(t, setup.ClientRepository())
	require.NoError(t, setup.OrderRepository().Add(ctx, newOrder(t, "2501001", c.ID(), comps[0].ID())))
	require.NoError(t, setup.Commit(ctx))

	uow := begin(t, db)
	clash := newOrder(t, "2501001", c.ID(), comps[0].ID())
	err := uow.OrderRepository().Add(ctx, clash)
	require.ErrorIs(t, err, errs.ErrConflict)
	assert.ErrorIs(t, err, order.ErrNumberTaken)
}

func TestOrderRepository_LastNumberWithPrefix(t *testing.T) {
	ctx := context.Background()
	uow := begin(t, sqlitetest.Open(t))
	c, _, comps := seedTree(t, uow.ClientRepository())
	repo := uow.OrderRepository()

	last, err := repo.LastNumberWithPrefix(ctx, "2501")
	require.NoError(t, err)
	assert.Nil(t, last)

	for _, n := range []string{"2501998", "2501999", "25011000", "2412999"} {
		require.NoError(t, repo.Add(ctx, newOrder(t, n, c.ID(), comps[0].ID())))
	}

	last, err = repo.LastNumberWithPrefix(ctx, "2501")
	require.NoError(t, err)
	require.NotNil(t, last)
	assert.Equal(t, "25011000", last.String())
}

func TestOrderRepository_BudgetNumberTaken(t *testing.T) {
	ctx := context.Background()
	uow := begin(t, sqlitetest.Open(t))
	c, _, comps := seedTree(t, uow.ClientRepository())
	repo := uow.OrderRepository()

	o := newOrder(t, "2501001", c.ID(), comps[0].ID())
	require.NoError(t, repo.Add(ctx, o))

	taken, err := repo.BudgetNumberTaken(ctx, "ORC-2501001", nil)
	require.NoError(t, err)
	assert.True(t, taken)

	id := o.ID()
	taken, err = repo.BudgetNumberTaken(ctx, "ORC-2501001", &id)
	require.NoError(t, err)
	assert.False(t, taken, "an order does not collide with itself")

	count, err := repo.CountByClient(ctx, c.ID())
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestOrderRepository_DeletePurgesLinksAndFieldTestsOnly(t *testing.T) {
	ctx := context.Background()
	db := sqlitetest.Open(t)
	uow := begin(t, db)
	c, _, comps := seedTree(t, uow.ClientRepository())
	repo := uow.OrderRepository()

	o := newOrder(t, "2501001", c.ID(), comps[0].ID())
	require.NoError(t, repo.Add(ctx, o))
	test, err := fieldtest.NewFieldTest(o.ID(), comps[0].ID(), client.KindPowerTransformer,
		fieldtest.Record{Data: map[string]any{"resistance": "12.4"}}, jan)
	require.NoError(t, err)
	require.NoError(t, uow.FieldTestRepository().Add(ctx, test))

	require.NoError(t, repo.Delete(ctx, o))

	_, err = repo.Get(ctx, o.ID())
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	_, err = uow.FieldTestRepository().Get(ctx, test.ID())
	require.ErrorIs(t, err, errs.ErrObjectNotFound)

	owned, err := uow.ClientRepository().OwnedComponents(ctx, c.ID(), []kernel.UUID{comps[0].ID()})
	require.NoError(t, err)
	assert.Len(t, owned, 1, "hierarchy rows survive")

	// the pool holds a single connection, so read the link table after commit
	require.NoError(t, uow.Commit(ctx))
	var links int64
	require.NoError(t, db.Table("order_components").Where("order_id = ?", o.ID().Bytes()).Count(&links).Error)
	assert.Zero(t, links)
}

func TestFieldTestRepository_UniquePerOrderComponentKind(t *testing.T) {
	ctx := context.Background()
	uow := begin(t, sqlitetest.Open(t))
	c, _, comps := seedTree(t, uow.ClientRepository())
	o := newOrder(t, "2501001", c.ID(), comps[0].ID())
	require.NoError(t, uow.OrderRepository().Add(ctx, o))
	repo := uow.FieldTestRepository()

	responsible := personnel.ID(400)
	record := fieldtest.Record{Data: map[string]any{"insulation": "2.1 GΩ"}, PerformedAt: &jan, ResponsibleID: &responsible}
	first, err := fieldtest.NewFieldTest(o.ID(), comps[0].ID(), client.KindPowerTransformer, record, jan)
	require.NoError(t, err)
	require.NoError(t, repo.Add(ctx, first))

	exists, err := repo.Exists(ctx, o.ID(), comps[0].ID(), client.KindPowerTransformer)
	require.NoError(t, err)
	assert.True(t, exists)

	loaded, err := repo.Get(ctx, first.ID())
	require.NoError(t, err)
	assert.Equal(t, "2.1 GΩ", loaded.Record().Data["insulation"])
	assert.Equal(t, &responsible, loaded.Record().ResponsibleID)

	second, err := fieldtest.NewFieldTest(o.ID(), comps[0].ID(), client.KindPowerTransformer, record, jan)
	require.NoError(t, err)
	err = repo.Add(ctx, second)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	assert.ErrorIs(t, err, fieldtest.ErrDuplicateFieldTest)
}

func TestActivityLog_StoresPayloadAsJSON(t *testing.T) {
	ctx := context.Background()
	db := sqlitetest.Open(t)
	uow := postgres.NewGormUnitOfWorkFactory(db).Create()
	require.NoError(t, uow.Begin(ctx))

	entry, err := activity.NewEntry(activity.ActionUpdate, activity.EntityOrder, "2501001",
		activity.ChangeSet{ID: "2501001", Changes: []map[string]any{{"op": "replace", "path": "/status", "value": "EM_ANDAMENTO"}}},
		actor(t, 200, personnel.RoleEngineer), jan)
	require.NoError(t, err)
	require.NoError(t, uow.ActivityLog().Append(ctx, entry))
	require.NoError(t, uow.Commit(ctx))

	var stored activityrepo.EntryDTO
	require.NoError(t, db.First(&stored, "entity_id = ?", "2501001").Error)
	assert.Equal(t, "ATUALIZAR", stored.Action)
	assert.Equal(t, "ordem", stored.Entity)
	assert.Equal(t, int64(200), stored.ActorID)
	assert.JSONEq(t, `{"id":"2501001","changes":[{"op":"replace","path":"/status","value":"EM_ANDAMENTO"}]}`,
		string(stored.Payload))
}

func TestPersonnelRepository_Existing(t *testing.T) {
	ctx := context.Background()
	db := sqlitetest.Open(t)
	sqlitetest.SeedEmployees(t, db,
		personnel.Employee{ID: 200, Name: "Ana", Role: personnel.RoleEngineer},
		personnel.Employee{ID: 400, Name: "Caio", Role: personnel.RoleTechnician},
	)
	uow := postgres.NewGormUnitOfWorkFactory(db).Create()

	existing, err := uow.PersonnelRepository().Existing(ctx, []personnel.ID{200, 400, 999})
	require.NoError(t, err)
	assert.ElementsMatch(t, []personnel.ID{200, 400}, existing)
}

func actor(t *testing.T, id int64, role personnel.Role) personnel.Actor {
	t.Helper()
	a, err := personnel.NewActor(id, role)
	require.NoError(t, err)
	return a
}
