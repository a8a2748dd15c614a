package kernel_test

import (
	"encoding/json"
	"testing"

	"maintenance/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const substationID = "550e8400-e29b-41d4-a716-446655440000"

func TestUUIDFromString(t *testing.T) {
	t.Run("parses_canonical_form", func(t *testing.T) {
		id, err := kernel.UUIDFromString(substationID)

		require.NoError(t, err)
		assert.Equal(t, substationID, id.String())
		require.NoError(t, id.Validate())
	})

	t.Run("parses_alternative_forms", func(t *testing.T) {
		for _, s := range []string{
			"{550e8400-e29b-41d4-a716-446655440000}",
			"urn:uuid:550e8400-e29b-41d4-a716-446655440000",
			"550e8400e29b41d4a716446655440000",
		} {
			id, err := kernel.UUIDFromString(s)

			require.NoError(t, err, s)
			assert.Equal(t, substationID, id.String())
		}
	})

	t.Run("rejects_client_side_temporary_keys", func(t *testing.T) {
		for _, s := range []string{"", "temp-1", "1700000000000", "not-a-uuid"} {
			_, err := kernel.UUIDFromString(s)

			require.Error(t, err, s)
		}
	})
}

func TestUUIDFromBytes(t *testing.T) {
	t.Run("round_trips_through_persisted_bytes", func(t *testing.T) {
		original := kernel.NewUUID()
		raw := original.Bytes()

		restored, err := kernel.UUIDFromBytes(raw[:])

		require.NoError(t, err)
		assert.True(t, original.IsEqual(restored))
	})

	t.Run("rejects_nil_uuid", func(t *testing.T) {
		_, err := kernel.UUIDFromBytes(uuid.Nil[:])

		require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
	})

	t.Run("rejects_short_input", func(t *testing.T) {
		_, err := kernel.UUIDFromBytes([]byte{1, 2, 3})

		require.Error(t, err)
	})
}

func TestUUID_Validate(t *testing.T) {
	var zero kernel.UUID

	require.ErrorIs(t, zero.Validate(), kernel.ErrUUIDIsNotConstructed)
	require.NoError(t, kernel.NewUUID().Validate())
}

func TestUUID_MapKeyAndJSON(t *testing.T) {
	id := kernel.MustUUIDFromString(substationID)
	owned := map[kernel.UUID]struct{}{id: {}}

	_, ok := owned[kernel.MustUUIDFromString(substationID)]
	assert.True(t, ok)

	data, err := json.Marshal(struct {
		ID kernel.UUID `json:"id"`
	}{ID: id})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"`+substationID+`"}`, string(data))

	var decoded struct {
		ID kernel.UUID `json:"id"`
	}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, id.IsEqual(decoded.ID))
}
