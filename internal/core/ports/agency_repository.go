// Package ports defines repository and collaborator interfaces for the
// forwarding domain. These interfaces establish contracts between the domain
// layer and infrastructure, enabling dependency inversion and testability.
package ports

import (
	"context"

	"forwarding/internal/core/domain/model/agency"
	"forwarding/internal/core/domain/model/kernel"
)

// AgencyRepository defines the persistence contract for the agency hierarchy.
// It is the backing store for recursive descendant expansion used by RBAC
// scoping and by the rate-inheritance resolver.
type AgencyRepository interface {
	// Add persists a new agency aggregate to storage.
	Add(ctx context.Context, aggregate *agency.Agency) error

	// Update persists changes to an existing agency aggregate.
	Update(ctx context.Context, aggregate *agency.Agency) error

	// Get retrieves an agency by its unique identifier.
	// Returns an ObjectNotFoundError for unknown ids.
	Get(ctx context.Context, id kernel.UUID) (*agency.Agency, error)

	// GetChildren retrieves the direct children of an agency.
	// Returns an empty slice when the agency has no children; returns an
	// ObjectNotFoundError when the agency itself does not exist.
	GetChildren(ctx context.Context, id kernel.UUID) ([]*agency.Agency, error)

	// GetParent retrieves the direct parent of an agency.
	// Returns (nil, nil) for forwarder roots; returns an
	// ObjectNotFoundError when the agency itself does not exist.
	GetParent(ctx context.Context, id kernel.UUID) (*agency.Agency, error)
}
