package commands_test

import (
	"testing"

	"orderflow/internal/core/application/usecases/commands"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestStartOrderCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()

	t.Run("should place order and return snapshot", func(t *testing.T) {
		repo := new(MockOrderRepository)
		uow := new(MockOrderUoW)
		mock.InOrder(
			uow.On("Begin", ctx).Return(nil).Once(),
			uow.On("OrderRepository").Return(repo).Once(),
			repo.On("Create", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
			uow.On("Commit", ctx).Return(nil).Once(),
			uow.On("Rollback", ctx).Return(nil).Once(),
		)

		factory := new(MockOrderUoWFactory)
		factory.On("Create").Return(uow).Once()

		handler, err := commands.NewStartOrderCommandHandler(
			newTestUpdater(t, factory, new(MockEventPublisher)))
		require.NoError(t, err)

		cmd, err := commands.NewStartOrderCommand("restaurante-central", testItems(t), 18.0, nil)
		require.NoError(t, err)

		snapshot, err := handler.Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, "CREATED", snapshot.Status)
		repo.AssertExpectations(t)
		uow.AssertExpectations(t)
	})

	t.Run("should reject unconstructed command", func(t *testing.T) {
		factory := new(MockOrderUoWFactory)
		handler, err := commands.NewStartOrderCommandHandler(
			newTestUpdater(t, factory, new(MockEventPublisher)))
		require.NoError(t, err)

		_, err = handler.Handle(ctx, commands.StartOrderCommand{})

		assert.ErrorIs(t, err, commands.ErrStartOrderCommandIsNotConstructed)
		factory.AssertNotCalled(t, "Create")
	})
}
