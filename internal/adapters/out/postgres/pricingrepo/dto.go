// Package pricingrepo provides data transfer objects and mapping functions
// for pricing agreement and shipping rate persistence. The composite unique
// index on the agreement tuple is the enforcement mechanism behind the
// one-agreement-per-tuple invariant: concurrent creators race on it inside
// their transactions and the loser surfaces a conflict.
package pricingrepo

import (
	"time"

	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/core/domain/model/pricing"

	"github.com/google/uuid"
)

// AgreementDTO represents the database structure for persisting pricing
// agreement aggregates.
type AgreementDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	SellerAgencyID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_pricing_agreements_tuple"`
	BuyerAgencyID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_pricing_agreements_tuple"`
	ProductID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_pricing_agreements_tuple"`
	ServiceID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_pricing_agreements_tuple"`
	PriceInCents   int64     `gorm:"not null"`
	IsActive       bool      `gorm:"not null;default:true"`
	EffectiveFrom  time.Time `gorm:"not null"`
}

// TableName specifies the database table name for pricing agreement entities.
func (AgreementDTO) TableName() string {
	return "pricing_agreements"
}

// ShippingRateDTO represents the database structure for persisting shipping
// rate aggregates. Each rate links to exactly one agreement.
type ShippingRateDTO struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProductID          uuid.UUID `gorm:"type:uuid;not null"`
	ServiceID          uuid.UUID `gorm:"type:uuid;not null;index"`
	AgencyID           uuid.UUID `gorm:"type:uuid;not null;index"`
	PricingAgreementID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	PriceInCents       int64     `gorm:"not null"`
	Scope              int       `gorm:"not null"`
	IsActive           bool      `gorm:"not null;default:true"`
	EffectiveFrom      time.Time `gorm:"not null"`
}

// TableName specifies the database table name for shipping rate entities.
func (ShippingRateDTO) TableName() string {
	return "shipping_rates"
}

// agreementFromDomain converts an agreement aggregate to its database
// representation.
func agreementFromDomain(aggregate *pricing.Agreement) AgreementDTO {
	return AgreementDTO{
		ID:             aggregate.ID().Bytes(),
		SellerAgencyID: aggregate.SellerAgencyID().Bytes(),
		BuyerAgencyID:  aggregate.BuyerAgencyID().Bytes(),
		ProductID:      aggregate.ProductID().Bytes(),
		ServiceID:      aggregate.ServiceID().Bytes(),
		PriceInCents:   aggregate.Price().Amount(),
		IsActive:       aggregate.IsActive(),
		EffectiveFrom:  aggregate.EffectiveFrom(),
	}
}

// agreementToDomain converts a database DTO to an agreement aggregate.
func agreementToDomain(dto AgreementDTO) (*pricing.Agreement, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	sellerID, err := kernel.UUIDFromBytes(dto.SellerAgencyID[:])
	if err != nil {
		return nil, err
	}
	buyerID, err := kernel.UUIDFromBytes(dto.BuyerAgencyID[:])
	if err != nil {
		return nil, err
	}
	productID, err := kernel.UUIDFromBytes(dto.ProductID[:])
	if err != nil {
		return nil, err
	}
	serviceID, err := kernel.UUIDFromBytes(dto.ServiceID[:])
	if err != nil {
		return nil, err
	}
	price, err := kernel.NewCents(dto.PriceInCents)
	if err != nil {
		return nil, err
	}

	return pricing.RestoreAgreement(
		id, sellerID, buyerID, productID, serviceID, price, dto.IsActive, dto.EffectiveFrom)
}

// rateFromDomain converts a shipping rate aggregate to its database
// representation.
func rateFromDomain(aggregate *pricing.ShippingRate) ShippingRateDTO {
	return ShippingRateDTO{
		ID:                 aggregate.ID().Bytes(),
		ProductID:          aggregate.ProductID().Bytes(),
		ServiceID:          aggregate.ServiceID().Bytes(),
		AgencyID:           aggregate.AgencyID().Bytes(),
		PricingAgreementID: aggregate.AgreementID().Bytes(),
		PriceInCents:       aggregate.Price().Amount(),
		Scope:              int(aggregate.Scope()),
		IsActive:           aggregate.IsActive(),
		EffectiveFrom:      aggregate.EffectiveFrom(),
	}
}

// rateToDomain converts a database DTO to a shipping rate aggregate.
func rateToDomain(dto ShippingRateDTO) (*pricing.ShippingRate, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	productID, err := kernel.UUIDFromBytes(dto.ProductID[:])
	if err != nil {
		return nil, err
	}
	serviceID, err := kernel.UUIDFromBytes(dto.ServiceID[:])
	if err != nil {
		return nil, err
	}
	agencyID, err := kernel.UUIDFromBytes(dto.AgencyID[:])
	if err != nil {
		return nil, err
	}
	agreementID, err := kernel.UUIDFromBytes(dto.PricingAgreementID[:])
	if err != nil {
		return nil, err
	}
	price, err := kernel.NewCents(dto.PriceInCents)
	if err != nil {
		return nil, err
	}

	return pricing.RestoreShippingRate(
		id, productID, serviceID, agencyID, agreementID,
		price, pricing.Scope(dto.Scope), dto.IsActive, dto.EffectiveFrom)
}
