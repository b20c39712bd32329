package commands

import (
	"context"

	"forwarding/internal/core/domain/model/agency"
	"forwarding/internal/core/ports"
)

// CreateAgencyCommandHandler creates agencies and provisions their admin
// user in the external auth collaborator.
//
// Provisioning happens after the commit: a provisioning failure leaves the
// agency in place and is surfaced to the caller, who retries provisioning
// rather than re-creating the agency.
type CreateAgencyCommandHandler struct {
	uowFactory  AgencyUoWFactory
	provisioner ports.UserProvisioner
}

// NewCreateAgencyCommandHandler creates a handler for agency creation.
func NewCreateAgencyCommandHandler(
	uowFactory AgencyUoWFactory,
	provisioner ports.UserProvisioner,
) CreateAgencyCommandHandler {
	return CreateAgencyCommandHandler{
		uowFactory:  uowFactory,
		provisioner: provisioner,
	}
}

// Handle processes the creation command and returns the new agency.
// The parent must exist and be of a type that can have children.
func (h *CreateAgencyCommandHandler) Handle(
	ctx context.Context,
	cmd CreateAgencyCommand,
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

	var created *agency.Agency
	var err error
	if cmd.AgencyType() == agency.Forwarder {
		created, err = agency.NewForwarder(cmd.AgencyID(), cmd.Name())
	} else {
		var parent *agency.Agency
		parent, err = agencyRepo.Get(ctx, *cmd.ParentID())
		if err != nil {
			return nil, err
		}
		created, err = agency.NewChildAgency(cmd.AgencyID(), cmd.Name(), cmd.AgencyType(), parent)
	}
	if err != nil {
		return nil, err
	}

	if err = agencyRepo.Add(ctx, created); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	if err = h.provisioner.ProvisionAgencyAdmin(ctx, created.ID(), created.Name()); err != nil {
		return created, err
	}

	return created, nil
}
