package commands

import (
	"context"

	"orderflow/internal/pkg/errs"
)

// SaveAddressCommandHandler persists a customer address save. The append
// and the name overwrite land as a single atomic upsert, so concurrent
// saves for the same user never lose an address.
type SaveAddressCommandHandler struct {
	uowFactory CustomerUoWFactory
}

// NewSaveAddressCommandHandler creates a handler for address saves.
func NewSaveAddressCommandHandler(uowFactory CustomerUoWFactory) (SaveAddressCommandHandler, error) {
	if uowFactory == nil {
		return SaveAddressCommandHandler{}, errs.NewValueIsRequiredError("uowFactory")
	}

	return SaveAddressCommandHandler{uowFactory: uowFactory}, nil
}

// Handle processes the address save command.
func (h *SaveAddressCommandHandler) Handle(ctx context.Context, cmd SaveAddressCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.CustomerRepository()
	if err := repo.SaveAddress(ctx, cmd.UserID(), cmd.Name(), cmd.Address()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
