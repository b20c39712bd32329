// Package raterepo provides data transfer objects and mapping functions for
// delivery rate persistence. The lookups here serve one level of the
// inheritance walk at a time; the walk itself lives in the domain services.
package raterepo

import (
	"forwarding/internal/core/domain/model/deliveryrate"
	"forwarding/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// DeliveryRateDTO represents the database structure for persisting delivery
// rate aggregates. A null agency id marks a forwarder-level base rate.
type DeliveryRateDTO struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	AgencyID    *uuid.UUID `gorm:"type:uuid;index:idx_delivery_rates_lookup"`
	CarrierID   uuid.UUID  `gorm:"type:uuid;not null;index:idx_delivery_rates_lookup"`
	CityID      *uuid.UUID `gorm:"type:uuid;index:idx_delivery_rates_lookup"`
	CityType    string     `gorm:"index:idx_delivery_rates_lookup"`
	RateInCents int64      `gorm:"not null"`
	CostInCents int64      `gorm:"not null"`
	IsBaseRate  bool       `gorm:"not null;default:false"`
	IsActive    bool       `gorm:"not null;default:true"`
}

// TableName specifies the database table name for delivery rate entities.
func (DeliveryRateDTO) TableName() string {
	return "delivery_rates"
}

// fromDomain converts a delivery rate aggregate to its database representation.
func fromDomain(aggregate *deliveryrate.DeliveryRate) DeliveryRateDTO {
	var agencyID *uuid.UUID
	if id := aggregate.AgencyID(); id != nil {
		raw := id.Bytes()
		agencyID = &raw
	}

	var cityID *uuid.UUID
	if id := aggregate.CityID(); id != nil {
		raw := id.Bytes()
		cityID = &raw
	}

	return DeliveryRateDTO{
		ID:          aggregate.ID().Bytes(),
		AgencyID:    agencyID,
		CarrierID:   aggregate.CarrierID().Bytes(),
		CityID:      cityID,
		CityType:    string(aggregate.CityType()),
		RateInCents: aggregate.Rate().Amount(),
		CostInCents: aggregate.Cost().Amount(),
		IsBaseRate:  aggregate.IsBaseRate(),
		IsActive:    aggregate.IsActive(),
	}
}

// toDomain converts a database DTO to a delivery rate aggregate.
func toDomain(dto DeliveryRateDTO) (*deliveryrate.DeliveryRate, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var agencyID *kernel.UUID
	if dto.AgencyID != nil {
		aID, agencyErr := kernel.UUIDFromBytes((*dto.AgencyID)[:])
		if agencyErr != nil {
			return nil, agencyErr
		}
		agencyID = &aID
	}

	carrierID, err := kernel.UUIDFromBytes(dto.CarrierID[:])
	if err != nil {
		return nil, err
	}

	var cityID *kernel.UUID
	if dto.CityID != nil {
		cID, cityErr := kernel.UUIDFromBytes((*dto.CityID)[:])
		if cityErr != nil {
			return nil, cityErr
		}
		cityID = &cID
	}

	rate, err := kernel.NewCents(dto.RateInCents)
	if err != nil {
		return nil, err
	}
	cost, err := kernel.NewCents(dto.CostInCents)
	if err != nil {
		return nil, err
	}

	return deliveryrate.RestoreDeliveryRate(
		id, agencyID, carrierID, cityID, deliveryrate.CityType(dto.CityType),
		rate, cost, dto.IsBaseRate, dto.IsActive)
}
