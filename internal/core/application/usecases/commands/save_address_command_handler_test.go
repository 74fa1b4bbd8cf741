package commands_test

import (
	"testing"

	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/domain/model/customer"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSaveAddressCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()

	address, err := customer.NewAddress("Casa", "Av. Larco 123, Miraflores")
	require.NoError(t, err)

	t.Run("should save address through a transaction", func(t *testing.T) {
		repo := new(MockCustomerRepository)
		uow := new(MockCustomerUoW)
		mock.InOrder(
			uow.On("Begin", ctx).Return(nil).Once(),
			uow.On("CustomerRepository").Return(repo).Once(),
			repo.On("SaveAddress", mock.Anything, "user-42", "Maria", address).Return(nil).Once(),
			uow.On("Commit", ctx).Return(nil).Once(),
			uow.On("Rollback", ctx).Return(nil).Once(),
		)

		factory := new(MockCustomerUoWFactory)
		factory.On("Create").Return(uow).Once()

		handler, err := commands.NewSaveAddressCommandHandler(factory)
		require.NoError(t, err)

		cmd, err := commands.NewSaveAddressCommand("user-42", "Maria", address)
		require.NoError(t, err)

		require.NoError(t, handler.Handle(ctx, cmd))
		repo.AssertExpectations(t)
		uow.AssertExpectations(t)
	})

	t.Run("should surface repository error", func(t *testing.T) {
		repo := new(MockCustomerRepository)
		uow := new(MockCustomerUoW)
		mock.InOrder(
			uow.On("Begin", ctx).Return(nil).Once(),
			uow.On("CustomerRepository").Return(repo).Once(),
			repo.On("SaveAddress", mock.Anything, "user-42", "Maria", address).
				Return(assert.AnError).Once(),
			uow.On("Rollback", ctx).Return(nil).Once(),
		)

		factory := new(MockCustomerUoWFactory)
		factory.On("Create").Return(uow).Once()

		handler, err := commands.NewSaveAddressCommandHandler(factory)
		require.NoError(t, err)

		cmd, err := commands.NewSaveAddressCommand("user-42", "Maria", address)
		require.NoError(t, err)

		assert.ErrorIs(t, handler.Handle(ctx, cmd), assert.AnError)
	})

	t.Run("should reject unconstructed command", func(t *testing.T) {
		factory := new(MockCustomerUoWFactory)
		handler, err := commands.NewSaveAddressCommandHandler(factory)
		require.NoError(t, err)

		assert.ErrorIs(t, handler.Handle(ctx, commands.SaveAddressCommand{}),
			commands.ErrSaveAddressCommandIsNotConstructed)
		factory.AssertNotCalled(t, "Create")
	})
}
