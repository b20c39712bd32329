package ports

import (
	"context"

	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/core/domain/model/parcel"
)

// OrderStatusEventPublisher notifies downstream consumers that parcels of an
// order changed status. The core never talks to the broker directly; the
// kafka adapter implements this port.
type OrderStatusEventPublisher interface {
	// PublishOrderChanged emits one order-changed event.
	PublishOrderChanged(ctx context.Context, orderID kernel.UUID, status parcel.Status) error
}

// UserProvisioner provisions users in the external auth collaborator.
// Called after the owning transaction commits; provisioning failures are
// surfaced to the caller but do not roll the agency back.
type UserProvisioner interface {
	// ProvisionAgencyAdmin creates the AGENCY_ADMIN user for a freshly
	// created agency.
	ProvisionAgencyAdmin(ctx context.Context, agencyID kernel.UUID, agencyName string) error
}
