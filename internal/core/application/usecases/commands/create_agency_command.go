package commands

import (
	"errors"

	"forwarding/internal/core/domain/model/agency"
	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/pkg/errs"
	"forwarding/internal/pkg/guard"
)

var ErrCreateAgencyCommandIsNotConstructed = errors.New(
	"CreateAgencyCommand must be created via NewCreateAgencyCommand constructor",
)

// CreateAgencyCommand represents a request to create an agency. A forwarder
// root carries no parent; every other type requires one.
type CreateAgencyCommand struct { //nolint:recvcheck //using for validation
	agencyID   kernel.UUID
	name       string
	agencyType agency.Type
	parentID   *kernel.UUID

	guard guard.ConstructorGuard
}

// NewCreateAgencyCommand creates a command to register a new agency.
func NewCreateAgencyCommand(
	agencyID kernel.UUID,
	name string,
	agencyType agency.Type,
	parentID *kernel.UUID,
) (CreateAgencyCommand, error) {
	cmd := CreateAgencyCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setAgencyID(agencyID),
		cmd.setName(name),
		cmd.setAgencyType(agencyType),
		cmd.setParentID(agencyType, parentID),
	); err != nil {
		return CreateAgencyCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateAgencyCommand) Validate() error {
	return c.guard.Validate(ErrCreateAgencyCommandIsNotConstructed)
}

// AgencyID returns the new agency's id.
func (c CreateAgencyCommand) AgencyID() kernel.UUID {
	return c.agencyID
}

// Name returns the new agency's display name.
func (c CreateAgencyCommand) Name() string {
	return c.name
}

// AgencyType returns the node kind being created.
func (c CreateAgencyCommand) AgencyType() agency.Type {
	return c.agencyType
}

// ParentID returns the parent agency's id, nil for forwarder roots.
func (c CreateAgencyCommand) ParentID() *kernel.UUID {
	return c.parentID
}

func (c *CreateAgencyCommand) setAgencyID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("agency id", err)
	}
	c.agencyID = id
	return nil
}

func (c *CreateAgencyCommand) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	c.name = name
	return nil
}

func (c *CreateAgencyCommand) setAgencyType(agencyType agency.Type) error {
	if err := agencyType.Validate(); err != nil {
		return err
	}
	c.agencyType = agencyType
	return nil
}

func (c *CreateAgencyCommand) setParentID(agencyType agency.Type, parentID *kernel.UUID) error {
	if agencyType == agency.Forwarder {
		if parentID != nil {
			return errs.NewValueIsInvalidError("parent agency id must be empty for a forwarder")
		}
		return nil
	}

	if parentID == nil {
		return errs.NewValueIsRequiredError("parent agency id")
	}
	if err := parentID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("parent agency id", err)
	}
	c.parentID = parentID
	return nil
}
