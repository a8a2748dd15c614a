package commands_test

import (
	"testing"

	"maintenance/internal/core/application/usecases/commands"
	"maintenance/internal/core/domain/model/client"
	"maintenance/internal/core/domain/model/fieldtest"
	"maintenance/internal/core/domain/model/kernel"
	"maintenance/internal/core/domain/model/order"
	"maintenance/internal/core/domain/model/personnel"
	"maintenance/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandConstructors_RejectZeroActor(t *testing.T) {
	id := kernel.NewUUID()

	_, err := commands.NewCreateClientCommand(personnel.Actor{}, client.Profile{Name: "x"}, nil)
	require.ErrorIs(t, err, personnel.ErrActorIsNotConstructed)

	_, err = commands.NewReconcileClientHierarchyCommand(personnel.Actor{}, id, client.Profile{Name: "x"}, nil)
	require.ErrorIs(t, err, personnel.ErrActorIsNotConstructed)

	_, err = commands.NewCreateOrderCommand(personnel.Actor{}, order.Details{}, order.Team{}, order.Scope{ClientID: id})
	require.ErrorIs(t, err, personnel.ErrActorIsNotConstructed)

	_, err = commands.NewAdminReviewCommand(personnel.Actor{}, id)
	require.ErrorIs(t, err, personnel.ErrActorIsNotConstructed)

	_, err = commands.NewDeleteFieldTestCommand(personnel.Actor{}, id)
	require.ErrorIs(t, err, personnel.ErrActorIsNotConstructed)
}

func TestNewCreateOrderCommand(t *testing.T) {
	admin := actor(t, 1, personnel.RoleAdmin)

	t.Run("requires_client", func(t *testing.T) {
		_, err := commands.NewCreateOrderCommand(admin, order.Details{}, order.Team{}, order.Scope{})

		require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
	})

	t.Run("keeps_fields", func(t *testing.T) {
		scope := order.Scope{ClientID: kernel.NewUUID(), ComponentIDs: []kernel.UUID{kernel.NewUUID()}}
		team := order.Team{EngineerID: engineerID}

		cmd, err := commands.NewCreateOrderCommand(admin, order.Details{ServiceType: order.ServiceThermography}, team, scope)

		require.NoError(t, err)
		require.NoError(t, cmd.Validate())
		assert.Equal(t, admin, cmd.Actor())
		assert.Equal(t, scope, cmd.Scope())
		assert.Equal(t, team, cmd.Team())
		assert.Equal(t, order.ServiceThermography, cmd.Details().ServiceType)
	})
}

func TestNewCreateFieldTestCommand(t *testing.T) {
	_, err := commands.NewCreateFieldTestCommand(actor(t, 1, personnel.RoleAdmin), order.Number{}, kernel.NewUUID(),
		client.Kind("GERADOR"), fieldtest.Record{})

	require.ErrorIs(t, err, errs.ErrValueIsRequired)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}
