package commands_test

import (
	"testing"

	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStartOrderCommand(t *testing.T) {
	t.Run("should create valid command", func(t *testing.T) {
		customer, err := order.NewCustomer("user-42", "Maria", "Av. Larco 123")
		require.NoError(t, err)

		cmd, err := commands.NewStartOrderCommand("restaurante-central", testItems(t), 18.0, &customer)

		require.NoError(t, err)
		assert.NoError(t, cmd.Validate())
		assert.Equal(t, "restaurante-central", cmd.TenantID())
		assert.Len(t, cmd.Items(), 1)
		assert.Equal(t, 18.0, cmd.Total())
		assert.Equal(t, "user-42", cmd.Customer().UserID())
	})

	t.Run("should reject empty tenant", func(t *testing.T) {
		_, err := commands.NewStartOrderCommand("", testItems(t), 18.0, nil)
		assert.ErrorIs(t, err, commands.ErrTenantIsRequired)
	})

	t.Run("should reject empty items", func(t *testing.T) {
		_, err := commands.NewStartOrderCommand("restaurante-central", nil, 18.0, nil)
		assert.ErrorIs(t, err, commands.ErrItemsAreRequired)
	})

	t.Run("should reject negative total", func(t *testing.T) {
		_, err := commands.NewStartOrderCommand("restaurante-central", testItems(t), -1, nil)
		assert.ErrorIs(t, err, commands.ErrTotalIsInvalid)
	})

	t.Run("should reject zero value command", func(t *testing.T) {
		var cmd commands.StartOrderCommand
		assert.ErrorIs(t, cmd.Validate(), commands.ErrStartOrderCommandIsNotConstructed)
	})
}
