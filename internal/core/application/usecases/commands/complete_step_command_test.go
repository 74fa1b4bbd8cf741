package commands_test

import (
	"testing"

	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCompleteStepCommand(t *testing.T) {
	orderID, err := kernel.OrderIDFromString("ORD-1756710000000")
	require.NoError(t, err)

	t.Run("should create valid command", func(t *testing.T) {
		cmd, err := commands.NewCompleteStepCommand("restaurante-central", orderID, "kitchen-3")

		require.NoError(t, err)
		assert.NoError(t, cmd.Validate())
		assert.Equal(t, "restaurante-central", cmd.TenantID())
		assert.True(t, cmd.OrderID().IsEqual(orderID))
		assert.Equal(t, "kitchen-3", cmd.CompletedBy())
	})

	t.Run("should default actor to system", func(t *testing.T) {
		cmd, err := commands.NewCompleteStepCommand("restaurante-central", orderID, "")

		require.NoError(t, err)
		assert.Equal(t, "system", cmd.CompletedBy())
	})

	t.Run("should reject empty tenant", func(t *testing.T) {
		_, err := commands.NewCompleteStepCommand("", orderID, "kitchen-3")
		assert.ErrorIs(t, err, commands.ErrTenantIsRequired)
	})

	t.Run("should reject unconstructed order id", func(t *testing.T) {
		_, err := commands.NewCompleteStepCommand("restaurante-central", kernel.OrderID{}, "kitchen-3")
		assert.Error(t, err)
	})

	t.Run("should reject zero value command", func(t *testing.T) {
		var cmd commands.CompleteStepCommand
		assert.ErrorIs(t, cmd.Validate(), commands.ErrCompleteStepCommandIsNotConstructed)
	})
}
