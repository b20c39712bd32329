// Package parcelrepo provides data transfer objects and mapping functions
// for parcel persistence, together with the staging table carrier status
// feeds are imported into before the backfill job applies them.
package parcelrepo

import (
	"time"

	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/core/domain/model/parcel"
	"forwarding/internal/core/ports"

	"github.com/google/uuid"
)

// ParcelDTO represents the database structure for persisting parcel
// aggregates. The HBL tracking code is unique across all parcels.
type ParcelDTO struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID  uuid.UUID `gorm:"type:uuid;not null;index"`
	AgencyID uuid.UUID `gorm:"type:uuid;not null;index"`
	HBL      string    `gorm:"column:hbl;not null;uniqueIndex"`
	Status   int       `gorm:"not null"`
}

// TableName specifies the database table name for parcel entities.
func (ParcelDTO) TableName() string {
	return "parcels"
}

// StatusEventDTO represents one staged carrier status report. AppliedAt stays
// null until the backfill job applies the event to its parcel.
type StatusEventDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	HBL        string    `gorm:"column:hbl;not null;index"`
	Status     int       `gorm:"not null"`
	RecordedAt time.Time `gorm:"not null;index"`
	AppliedAt  *time.Time
}

// TableName specifies the database table name for staged status events.
func (StatusEventDTO) TableName() string {
	return "parcel_status_events"
}

// fromDomain converts a parcel aggregate to its database representation.
func fromDomain(aggregate *parcel.Parcel) ParcelDTO {
	return ParcelDTO{
		ID:       aggregate.ID().Bytes(),
		OrderID:  aggregate.OrderID().Bytes(),
		AgencyID: aggregate.AgencyID().Bytes(),
		HBL:      aggregate.HBL(),
		Status:   int(aggregate.Status()),
	}
}

// toDomain converts a database DTO to a parcel aggregate.
func toDomain(dto ParcelDTO) (*parcel.Parcel, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}
	agencyID, err := kernel.UUIDFromBytes(dto.AgencyID[:])
	if err != nil {
		return nil, err
	}

	return parcel.RestoreParcel(id, orderID, agencyID, dto.HBL, parcel.Status(dto.Status))
}

// eventFromPort converts a staged status event to its database representation.
func eventFromPort(event ports.StatusEvent) StatusEventDTO {
	return StatusEventDTO{
		ID:         event.ID.Bytes(),
		HBL:        event.HBL,
		Status:     int(event.Status),
		RecordedAt: event.RecordedAt,
	}
}

// eventToPort converts a database DTO to a staged status event.
func eventToPort(dto StatusEventDTO) (ports.StatusEvent, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return ports.StatusEvent{}, err
	}

	return ports.StatusEvent{
		ID:         id,
		HBL:        dto.HBL,
		Status:     parcel.Status(dto.Status),
		RecordedAt: dto.RecordedAt,
	}, nil
}
