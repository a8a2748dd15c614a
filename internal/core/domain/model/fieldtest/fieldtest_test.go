package fieldtest_test

import (
	"testing"
	"time"

	"maintenance/internal/core/domain/model/client"
	"maintenance/internal/core/domain/model/fieldtest"
	"maintenance/internal/core/domain/model/kernel"
	"maintenance/internal/core/domain/model/personnel"
	"maintenance/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFieldTest(t *testing.T) {
	now := time.Date(2025, time.February, 3, 14, 0, 0, 0, time.UTC)

	t.Run("requires_data", func(t *testing.T) {
		_, err := fieldtest.NewFieldTest(kernel.NewUUID(), kernel.NewUUID(), client.KindSurgeArrester, fieldtest.Record{}, now)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("copies_data", func(t *testing.T) {
		data := map[string]any{"insulationResistance": "12 GOhm"}

		ft, err := fieldtest.NewFieldTest(kernel.NewUUID(), kernel.NewUUID(), client.KindSurgeArrester, fieldtest.Record{Data: data}, now)
		require.NoError(t, err)
		data["insulationResistance"] = "tampered"

		assert.Equal(t, "12 GOhm", ft.Record().Data["insulationResistance"])
		assert.Equal(t, client.KindSurgeArrester, ft.Kind())
	})

	t.Run("revise_keeps_identity", func(t *testing.T) {
		ft, err := fieldtest.NewFieldTest(kernel.NewUUID(), kernel.NewUUID(), client.KindBattery, fieldtest.Record{Data: map[string]any{"v": 12.6}}, now)
		require.NoError(t, err)
		id := ft.ID()

		require.NoError(t, ft.Revise(fieldtest.Record{Data: map[string]any{"v": 12.4}}))
		require.ErrorIs(t, ft.Revise(fieldtest.Record{}), errs.ErrValueIsRequired)

		assert.Equal(t, id, ft.ID())
		assert.InDelta(t, 12.4, ft.Record().Data["v"], 0.001)
	})
}

func TestPolicy(t *testing.T) {
	roles := []personnel.Role{
		personnel.RoleAdmin, personnel.RoleManager, personnel.RoleEngineer,
		personnel.RoleSupervisor, personnel.RoleTechnician, personnel.RoleOther,
	}
	canCreate := []bool{true, true, true, true, true, false}
	canUpdate := []bool{true, true, true, false, true, false}
	canDelete := []bool{true, false, false, false, false, false}

	for i, role := range roles {
		a, err := personnel.NewActor(10, role)
		require.NoError(t, err)

		assert.Equal(t, canCreate[i], fieldtest.AuthorizeCreate(a) == nil, "create %s", role)
		assert.Equal(t, canUpdate[i], fieldtest.AuthorizeUpdate(a) == nil, "update %s", role)
		assert.Equal(t, canDelete[i], fieldtest.AuthorizeDelete(a) == nil, "delete %s", role)
	}
}
