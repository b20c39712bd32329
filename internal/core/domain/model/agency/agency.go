package agency

import (
	"errors"
	"fmt"

	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/pkg/errs"
)

var (
	// ErrAgencyIsNotConstructed is returned when an Agency instance was not
	// created through one of the factory methods.
	ErrAgencyIsNotConstructed = errors.New(
		"Agency must be created via NewForwarder, NewChildAgency or RestoreAgency")

	// ErrParentCannotHaveChildren is returned when attempting to create a
	// child under a leaf agency.
	ErrParentCannotHaveChildren = errors.New(
		"parent agency must be of FORWARDER or RESELLER type to create children")
)

// Agency represents one node of the agency tree. It is the aggregate root
// for agency identity and hierarchy placement.
//
// Agency follows these invariants:
//   - Must have a valid unique identifier and a non-empty name
//   - A Forwarder has no parent and its forwarder id is its own id
//   - A non-forwarder always has a parent and carries the root ancestor's id
//   - Can only be created through the provided constructors
//
// The parent is held as a weak back-reference (id, never a live pointer), so
// the tree cannot form reference cycles in memory; descendant expansion over
// the store still guards against cyclic data defensively.
type Agency struct {
	// id is the unique identifier for the agency
	id kernel.UUID

	// name is the display name of the agency
	name string

	// agencyType is the node kind: Forwarder, Reseller or Agency
	agencyType Type

	// parentID is the direct parent's id (nil only for forwarder roots)
	parentID *kernel.UUID

	// forwarderID is the root ancestor's id, denormalized for fast scoping
	forwarderID kernel.UUID

	// isConstructed ensures the agency was created via a constructor
	isConstructed bool
}

// NewForwarder creates a root agency. A forwarder has no parent and is its
// own forwarder: the denormalized forwarder id equals the agency's own id.
func NewForwarder(id kernel.UUID, name string) (*Agency, error) {
	a := &Agency{
		agencyType:    Forwarder,
		isConstructed: true,
	}

	if err := errors.Join(
		a.setID(id),
		a.setName(name),
	); err != nil {
		return nil, err
	}

	a.forwarderID = id
	return a, nil
}

// NewChildAgency creates a non-root agency under the given parent.
//
// Business rules enforced here:
//   - The parent must be of a type that can have children (Forwarder or Reseller)
//   - The child type must be Reseller or Agency, never Forwarder
//   - The child inherits the parent's forwarder id
func NewChildAgency(id kernel.UUID, name string, agencyType Type, parent *Agency) (*Agency, error) {
	if err := parent.Validate(); err != nil {
		return nil, err
	}
	if !parent.AgencyType().CanHaveChildren() {
		return nil, ErrParentCannotHaveChildren
	}
	if agencyType == Forwarder {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"agency type", fmt.Errorf("a child agency cannot be a FORWARDER"))
	}

	a := &Agency{
		isConstructed: true,
	}

	if err := errors.Join(
		a.setID(id),
		a.setName(name),
		a.setAgencyType(agencyType),
	); err != nil {
		return nil, err
	}

	parentID := parent.ID()
	a.parentID = &parentID
	a.forwarderID = parent.ForwarderID()
	return a, nil
}

// RestoreAgency reconstructs an agency from persistence without re-running
// creation-time rules. The hierarchy invariants are still checked: a
// forwarder must have no parent, every other type must have one.
func RestoreAgency(
	id kernel.UUID,
	name string,
	agencyType Type,
	parentID *kernel.UUID,
	forwarderID kernel.UUID,
) (*Agency, error) {
	a := &Agency{
		isConstructed: true,
	}

	if err := errors.Join(
		a.setID(id),
		a.setName(name),
		a.setAgencyType(agencyType),
	); err != nil {
		return nil, err
	}

	if agencyType == Forwarder && parentID != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"parent agency", fmt.Errorf("a FORWARDER cannot have a parent"))
	}
	if agencyType != Forwarder && parentID == nil {
		return nil, errs.NewValueIsRequiredError("parent agency")
	}
	if parentID != nil {
		if err := parentID.Validate(); err != nil {
			return nil, err
		}
	}
	if err := forwarderID.Validate(); err != nil {
		return nil, err
	}

	a.parentID = parentID
	a.forwarderID = forwarderID
	return a, nil
}

// Validate ensures the Agency instance was properly constructed.
func (a *Agency) Validate() error {
	if a == nil || !a.isConstructed {
		return ErrAgencyIsNotConstructed
	}
	return nil
}

// IsEqual compares two agencies by their unique identifiers.
func (a *Agency) IsEqual(other *Agency) bool {
	return other != nil && a.id.IsEqual(other.id)
}

// ID returns the agency's unique identifier.
func (a *Agency) ID() kernel.UUID {
	return a.id
}

// Name returns the agency's display name.
func (a *Agency) Name() string {
	return a.name
}

// AgencyType returns the node kind.
func (a *Agency) AgencyType() Type {
	return a.agencyType
}

// ParentID returns the direct parent's id, or nil for forwarder roots.
func (a *Agency) ParentID() *kernel.UUID {
	return a.parentID
}

// ForwarderID returns the root ancestor's id. For a forwarder this is the
// agency's own id.
func (a *Agency) ForwarderID() kernel.UUID {
	return a.forwarderID
}

// IsRoot reports whether the agency is a forwarder root.
func (a *Agency) IsRoot() bool {
	return a.parentID == nil
}

// Rename applies a partial patch to the agency's name.
// An empty name leaves the current name untouched and returns an error.
func (a *Agency) Rename(name string) error {
	return a.setName(name)
}

// setID validates and sets the agency's unique identifier.
// This is a private method used only during construction.
func (a *Agency) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	a.id = id
	return nil
}

// setName validates and sets the agency's name.
func (a *Agency) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	a.name = name
	return nil
}

// setAgencyType validates and sets the node kind.
// This is a private method used only during construction.
func (a *Agency) setAgencyType(agencyType Type) error {
	if err := agencyType.Validate(); err != nil {
		return err
	}
	a.agencyType = agencyType
	return nil
}
