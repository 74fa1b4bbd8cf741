package commands_test

import (
	"testing"

	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/domain/model/customer"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSaveAddressCommand(t *testing.T) {
	address, err := customer.NewAddress("Casa", "Av. Larco 123, Miraflores")
	require.NoError(t, err)

	t.Run("should create valid command", func(t *testing.T) {
		cmd, err := commands.NewSaveAddressCommand("user-42", "Maria", address)

		require.NoError(t, err)
		assert.NoError(t, cmd.Validate())
		assert.Equal(t, "user-42", cmd.UserID())
		assert.Equal(t, "Maria", cmd.Name())
		assert.Equal(t, "Casa", cmd.Address().Label())
	})

	t.Run("should default display name", func(t *testing.T) {
		cmd, err := commands.NewSaveAddressCommand("user-42", "", address)

		require.NoError(t, err)
		assert.Equal(t, customer.DefaultName, cmd.Name())
	})

	t.Run("should reject empty user", func(t *testing.T) {
		_, err := commands.NewSaveAddressCommand("", "Maria", address)
		assert.ErrorIs(t, err, commands.ErrUserIsRequired)
	})

	t.Run("should reject zero value address", func(t *testing.T) {
		_, err := commands.NewSaveAddressCommand("user-42", "Maria", customer.Address{})
		assert.Error(t, err)
	})

	t.Run("should reject zero value command", func(t *testing.T) {
		var cmd commands.SaveAddressCommand
		assert.ErrorIs(t, cmd.Validate(), commands.ErrSaveAddressCommandIsNotConstructed)
	})
}
