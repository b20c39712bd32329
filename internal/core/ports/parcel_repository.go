package ports

import (
	"context"
	"time"

	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/core/domain/model/parcel"
)

// ParcelRepository defines the persistence contract for parcel aggregates.
type ParcelRepository interface {
	// Add persists a new parcel aggregate to storage.
	Add(ctx context.Context, aggregate *parcel.Parcel) error

	// Update persists changes to an existing parcel aggregate.
	Update(ctx context.Context, aggregate *parcel.Parcel) error

	// Get retrieves a parcel by its unique identifier.
	// Returns an ObjectNotFoundError for unknown ids.
	Get(ctx context.Context, id kernel.UUID) (*parcel.Parcel, error)

	// GetByHBL retrieves a parcel by its HBL tracking code.
	// Returns an ObjectNotFoundError for unknown codes.
	GetByHBL(ctx context.Context, hbl string) (*parcel.Parcel, error)

	// GetAllByOrder retrieves every parcel belonging to an order.
	// Returns an empty slice for orders without parcels.
	GetAllByOrder(ctx context.Context, orderID kernel.UUID) ([]*parcel.Parcel, error)
}

// StatusEvent is one staged carrier status report awaiting application to
// its parcel.
type StatusEvent struct {
	ID         kernel.UUID
	HBL        string
	Status     parcel.Status
	RecordedAt time.Time
}

// StatusEventRepository manages the staging table carrier feeds are imported
// into. The backfill command drains it in batches.
type StatusEventRepository interface {
	// Add stages a new carrier status report.
	Add(ctx context.Context, event StatusEvent) error

	// GetUnapplied retrieves up to limit staged events in recording order.
	GetUnapplied(ctx context.Context, limit int) ([]StatusEvent, error)

	// MarkApplied flags the given events as applied.
	MarkApplied(ctx context.Context, ids []kernel.UUID) error
}
