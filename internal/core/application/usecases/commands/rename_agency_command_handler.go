package commands

import (
	"context"

	"forwarding/internal/core/domain/model/agency"
)

// RenameAgencyCommandHandler applies a name patch to an existing agency.
type RenameAgencyCommandHandler struct {
	uowFactory AgencyUoWFactory
}

// NewRenameAgencyCommandHandler creates a handler for agency renames.
func NewRenameAgencyCommandHandler(uowFactory AgencyUoWFactory) RenameAgencyCommandHandler {
	return RenameAgencyCommandHandler{uowFactory: uowFactory}
}

// Handle processes the rename command and returns the updated agency.
func (h *RenameAgencyCommandHandler) Handle(
	ctx context.Context,
	cmd RenameAgencyCommand,
) (*agency.Agency, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	agencyRepo := uow.AgencyRepository()
	node, err := agencyRepo.Get(ctx, cmd.AgencyID())
	if err != nil {
		return nil, err
	}

	if err = node.Rename(cmd.Name()); err != nil {
		return nil, err
	}

	if err = agencyRepo.Update(ctx, node); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return node, nil
}
