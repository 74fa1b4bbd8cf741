package commands_test

import (
	"testing"

	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCancelOrderCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()

	t.Run("should cancel an in-flight order", func(t *testing.T) {
		token := kernel.NewToken()
		o := orderAt(t, order.Cooking, &token)

		repo := new(MockOrderRepository)
		uow := new(MockOrderUoW)
		mock.InOrder(
			uow.On("Begin", ctx).Return(nil).Once(),
			uow.On("OrderRepository").Return(repo).Once(),
			repo.On("Get", mock.Anything, o.TenantID(), o.ID()).Return(o, nil).Once(),
			repo.On("UpdateWithToken", mock.Anything, o.TenantID(), o.ID(), token, mock.Anything).
				Return(nil).Once(),
			uow.On("Commit", ctx).Return(nil).Once(),
			uow.On("Rollback", ctx).Return(nil).Once(),
		)

		factory := new(MockOrderUoWFactory)
		factory.On("Create").Return(uow).Once()

		handler, err := commands.NewCancelOrderCommandHandler(
			newTestUpdater(t, factory, new(MockEventPublisher)))
		require.NoError(t, err)

		cmd, err := commands.NewCancelOrderCommand(o.TenantID(), o.ID(), "support-1")
		require.NoError(t, err)

		snapshot, err := handler.Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, "CANCELLED", snapshot.Status)
		assert.Equal(t, "cancelled", snapshot.CurrentStep)
		repo.AssertExpectations(t)
	})

	t.Run("should reject unconstructed command", func(t *testing.T) {
		factory := new(MockOrderUoWFactory)
		handler, err := commands.NewCancelOrderCommandHandler(
			newTestUpdater(t, factory, new(MockEventPublisher)))
		require.NoError(t, err)

		_, err = handler.Handle(ctx, commands.CancelOrderCommand{})

		assert.ErrorIs(t, err, commands.ErrCancelOrderCommandIsNotConstructed)
	})
}
