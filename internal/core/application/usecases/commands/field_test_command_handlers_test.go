package commands_test

import (
	"testing"

	"maintenance/internal/core/application/usecases/commands"
	"maintenance/internal/core/domain/model/activity"
	"maintenance/internal/core/domain/model/client"
	"maintenance/internal/core/domain/model/fieldtest"
	"maintenance/internal/core/domain/model/kernel"
	"maintenance/internal/core/domain/model/order"
	"maintenance/internal/core/domain/model/personnel"
	"maintenance/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func uowFactory(uow *MockUoW) *MockUoWFactory {
	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow)
	return factory
}

var resistance = fieldtest.Record{Data: map[string]any{"resistenciaOhm": 4.7}}

func TestCreateFieldTestCommandHandler_Handle(t *testing.T) {
	componentID := kernel.NewUUID()

	newCmd := func(t *testing.T, o *order.Order, componentID kernel.UUID, role personnel.Role) commands.CreateFieldTestCommand {
		t.Helper()
		cmd, err := commands.NewCreateFieldTestCommand(actor(t, technicianID.Int64(), role), o.Number(), componentID,
			client.KindGroundingGrid, resistance)
		require.NoError(t, err)
		return cmd
	}

	t.Run("records_test", func(t *testing.T) {
		ctx := t.Context()
		o := orderIn(t, order.InProgress, componentID)
		uow := newMockUoW()
		uow.expectTx(true)
		uow.orders.On("GetByNumber", mock.Anything, o.Number()).Return(o, nil).Once()
		uow.tests.On("Exists", mock.Anything, o.ID(), componentID, client.KindGroundingGrid).Return(false, nil).Once()
		uow.tests.On("Add", mock.Anything, mock.AnythingOfType("*fieldtest.FieldTest")).Return(nil).Once()
		uow.activity.On("Append", mock.Anything, entryMatcher(activity.ActionCreate, activity.EntityFieldTest)).Return(nil).Once()

		h := commands.NewCreateFieldTestCommandHandler(uowFactory(uow), fixedClock)
		created, err := h.Handle(ctx, newCmd(t, o, componentID, personnel.RoleTechnician))

		require.NoError(t, err)
		assert.Equal(t, o.ID(), created.OrderID)
		assert.Equal(t, 4.7, created.Data["resistenciaOhm"])
		uow.assertAll(t)
	})

	t.Run("component_outside_scope", func(t *testing.T) {
		ctx := t.Context()
		o := orderIn(t, order.InProgress, componentID)
		uow := newMockUoW()
		uow.expectTx(false)
		uow.orders.On("GetByNumber", mock.Anything, o.Number()).Return(o, nil).Once()

		h := commands.NewCreateFieldTestCommandHandler(uowFactory(uow), fixedClock)
		_, err := h.Handle(ctx, newCmd(t, o, kernel.NewUUID(), personnel.RoleTechnician))

		require.ErrorIs(t, err, commands.ErrInvalidReference)
	})

	t.Run("duplicate_kind", func(t *testing.T) {
		ctx := t.Context()
		o := orderIn(t, order.InProgress, componentID)
		uow := newMockUoW()
		uow.expectTx(false)
		uow.orders.On("GetByNumber", mock.Anything, o.Number()).Return(o, nil).Once()
		uow.tests.On("Exists", mock.Anything, o.ID(), componentID, client.KindGroundingGrid).Return(true, nil).Once()

		h := commands.NewCreateFieldTestCommandHandler(uowFactory(uow), fixedClock)
		_, err := h.Handle(ctx, newCmd(t, o, componentID, personnel.RoleSupervisor))

		require.ErrorIs(t, err, fieldtest.ErrDuplicateFieldTest)
		assert.Equal(t, errs.KindValidationFailed, errs.KindOf(err))
	})

	t.Run("finalized_order_locks_engineer", func(t *testing.T) {
		ctx := t.Context()
		o := orderIn(t, order.Finalized, componentID)
		uow := newMockUoW()
		uow.expectTx(false)
		uow.orders.On("GetByNumber", mock.Anything, o.Number()).Return(o, nil).Once()

		h := commands.NewCreateFieldTestCommandHandler(uowFactory(uow), fixedClock)
		_, err := h.Handle(ctx, newCmd(t, o, componentID, personnel.RoleEngineer))

		require.ErrorIs(t, err, order.ErrOrderLocked)
		assert.Equal(t, errs.KindInvalidState, errs.KindOf(err))
		uow.tests.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
	})

	t.Run("other_role_is_forbidden", func(t *testing.T) {
		factory := new(MockUoWFactory)
		o := orderIn(t, order.InProgress, componentID)

		h := commands.NewCreateFieldTestCommandHandler(factory, fixedClock)
		_, err := h.Handle(t.Context(), newCmd(t, o, componentID, personnel.RoleOther))

		require.ErrorIs(t, err, errs.ErrForbidden)
		factory.AssertNotCalled(t, "Create")
	})
}

func TestUpdateFieldTestCommandHandler_Handle(t *testing.T) {
	componentID := kernel.NewUUID()

	t.Run("cancelled_order_is_locked_for_everyone", func(t *testing.T) {
		ctx := t.Context()
		o := orderIn(t, order.Cancelled, componentID)
		test, err := fieldtest.NewFieldTest(o.ID(), componentID, client.KindGroundingGrid, resistance, now)
		require.NoError(t, err)

		uow := newMockUoW()
		uow.expectTx(false)
		uow.tests.On("Get", mock.Anything, test.ID()).Return(test, nil).Once()
		uow.orders.On("Get", mock.Anything, o.ID()).Return(o, nil).Once()

		cmd, err := commands.NewUpdateFieldTestCommand(actor(t, 1, personnel.RoleAdmin), test.ID(),
			fieldtest.Record{Data: map[string]any{"resistenciaOhm": 5.1}})
		require.NoError(t, err)
		h := commands.NewUpdateFieldTestCommandHandler(uowFactory(uow), fixedClock)
		_, err = h.Handle(ctx, cmd)

		require.ErrorIs(t, err, order.ErrOrderLocked)
		uow.tests.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("finalized_order_is_locked_for_engineer", func(t *testing.T) {
		ctx := t.Context()
		o := orderIn(t, order.Finalized, componentID)
		test, err := fieldtest.NewFieldTest(o.ID(), componentID, client.KindGroundingGrid, resistance, now)
		require.NoError(t, err)

		uow := newMockUoW()
		uow.expectTx(false)
		uow.tests.On("Get", mock.Anything, test.ID()).Return(test, nil).Once()
		uow.orders.On("Get", mock.Anything, o.ID()).Return(o, nil).Once()

		cmd, err := commands.NewUpdateFieldTestCommand(actor(t, engineerID.Int64(), personnel.RoleEngineer), test.ID(),
			fieldtest.Record{Data: map[string]any{"resistenciaOhm": 5.1}})
		require.NoError(t, err)
		h := commands.NewUpdateFieldTestCommandHandler(uowFactory(uow), fixedClock)
		_, err = h.Handle(ctx, cmd)

		require.ErrorIs(t, err, order.ErrOrderLocked)
		assert.Equal(t, errs.KindInvalidState, errs.KindOf(err))
		uow.tests.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}

func TestDeleteFieldTestCommandHandler_Handle(t *testing.T) {
	componentID := kernel.NewUUID()

	t.Run("admin_deletes", func(t *testing.T) {
		ctx := t.Context()
		o := orderIn(t, order.InProgress, componentID)
		test, err := fieldtest.NewFieldTest(o.ID(), componentID, client.KindGroundingGrid, resistance, now)
		require.NoError(t, err)

		uow := newMockUoW()
		uow.expectTx(true)
		uow.tests.On("Get", mock.Anything, test.ID()).Return(test, nil).Once()
		uow.orders.On("Get", mock.Anything, o.ID()).Return(o, nil).Once()
		uow.tests.On("Delete", mock.Anything, test.ID()).Return(nil).Once()
		uow.activity.On("Append", mock.Anything, entryMatcher(activity.ActionDelete, activity.EntityFieldTest)).Return(nil).Once()

		cmd, err := commands.NewDeleteFieldTestCommand(actor(t, 1, personnel.RoleAdmin), test.ID())
		require.NoError(t, err)
		h := commands.NewDeleteFieldTestCommandHandler(uowFactory(uow), fixedClock)

		require.NoError(t, h.Handle(ctx, cmd))
		uow.assertAll(t)
	})

	t.Run("finalized_order_is_locked_for_admin", func(t *testing.T) {
		ctx := t.Context()
		o := orderIn(t, order.Finalized, componentID)
		test, err := fieldtest.NewFieldTest(o.ID(), componentID, client.KindGroundingGrid, resistance, now)
		require.NoError(t, err)

		uow := newMockUoW()
		uow.expectTx(false)
		uow.tests.On("Get", mock.Anything, test.ID()).Return(test, nil).Once()
		uow.orders.On("Get", mock.Anything, o.ID()).Return(o, nil).Once()

		cmd, err := commands.NewDeleteFieldTestCommand(actor(t, 1, personnel.RoleAdmin), test.ID())
		require.NoError(t, err)
		h := commands.NewDeleteFieldTestCommandHandler(uowFactory(uow), fixedClock)
		err = h.Handle(ctx, cmd)

		require.ErrorIs(t, err, order.ErrOrderLocked)
		uow.tests.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("manager_is_forbidden", func(t *testing.T) {
		factory := new(MockUoWFactory)
		cmd, err := commands.NewDeleteFieldTestCommand(actor(t, 1, personnel.RoleManager), kernel.NewUUID())
		require.NoError(t, err)
		h := commands.NewDeleteFieldTestCommandHandler(factory, fixedClock)

		require.ErrorIs(t, h.Handle(t.Context(), cmd), errs.ErrForbidden)
	})
}
