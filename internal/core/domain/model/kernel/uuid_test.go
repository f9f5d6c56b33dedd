package kernel_test

import (
	"testing"

	"parcelhub/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUUID(t *testing.T) {
	id := kernel.NewUUID()

	require.NoError(t, id.Validate())
	assert.NotEqual(t, "00000000-0000-0000-0000-000000000000", id.String())
}

func TestUUIDFromString(t *testing.T) {
	t.Run("valid_string_round_trips", func(t *testing.T) {
		original := kernel.NewUUID()

		parsed, err := kernel.UUIDFromString(original.String())

		require.NoError(t, err)
		assert.True(t, parsed.IsEqual(original))
	})

	t.Run("invalid_string_is_rejected", func(t *testing.T) {
		_, err := kernel.UUIDFromString("not-a-uuid")
		require.Error(t, err)
	})
}

func TestUUIDFromBytes(t *testing.T) {
	t.Run("valid_bytes_round_trip", func(t *testing.T) {
		original := kernel.NewUUID()
		raw := original.Bytes()

		parsed, err := kernel.UUIDFromBytes(raw[:])

		require.NoError(t, err)
		assert.True(t, parsed.IsEqual(original))
	})

	t.Run("wrong_length_is_rejected", func(t *testing.T) {
		_, err := kernel.UUIDFromBytes([]byte{1, 2, 3})
		require.Error(t, err)
	})

	t.Run("nil_uuid_bytes_are_rejected", func(t *testing.T) {
		_, err := kernel.UUIDFromBytes(make([]byte, 16))
		require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
	})
}

func TestUUID_Validate(t *testing.T) {
	var zero kernel.UUID

	require.ErrorIs(t, zero.Validate(), kernel.ErrUUIDIsNotConstructed)
}

func TestUUID_IsEqual(t *testing.T) {
	a := kernel.NewUUID()
	b := kernel.NewUUID()
	c := a

	assert.False(t, a.IsEqual(b))
	assert.True(t, a.IsEqual(c))
}
