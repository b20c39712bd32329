package pricingrepo

import (
	"context"
	"errors"
	"fmt"

	"forwarding/internal/adapters/out/postgres/storeerrors"
	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/core/domain/model/pricing"
	"forwarding/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormPricingRepository implements PricingRepository using GORM.
type GormPricingRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormPricingRepository creates a new GORM pricing repository.
func NewGormPricingRepository(db *gorm.DB, tracker aggregateTracker) *GormPricingRepository {
	return &GormPricingRepository{
		db:      db,
		tracker: tracker,
	}
}

// AddAgreement saves a new pricing agreement to the database.
// A losing race on the (seller, buyer, product, service) unique index
// surfaces as a ConflictError.
func (r *GormPricingRepository) AddAgreement(ctx context.Context, aggregate *pricing.Agreement) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := agreementFromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return storeerrors.Map(err, "pricing agreement")
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// UpdateAgreement saves an existing pricing agreement to the database.
func (r *GormPricingRepository) UpdateAgreement(ctx context.Context, aggregate *pricing.Agreement) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := agreementFromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&AgreementDTO{}).
		Where("id = ?", dto.ID).
		Select("PriceInCents", "IsActive").
		Updates(&dto)
	if result.Error != nil {
		return storeerrors.Map(result.Error, "pricing agreement")
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("pricing agreement", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// GetAgreement retrieves a pricing agreement by ID.
func (r *GormPricingRepository) GetAgreement(ctx context.Context, id kernel.UUID) (*pricing.Agreement, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto AgreementDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("pricing agreement", id.String())
		}
		return nil, err
	}

	return agreementToDomain(dto)
}

// GetAgreementByTuple retrieves the agreement for one
// (seller, buyer, product, service) tuple.
func (r *GormPricingRepository) GetAgreementByTuple(
	ctx context.Context,
	sellerAgencyID kernel.UUID,
	buyerAgencyID kernel.UUID,
	productID kernel.UUID,
	serviceID kernel.UUID,
) (*pricing.Agreement, error) {
	var dto AgreementDTO
	err := r.db.WithContext(ctx).First(&dto,
		"seller_agency_id = ? AND buyer_agency_id = ? AND product_id = ? AND service_id = ?",
		sellerAgencyID.Bytes(), buyerAgencyID.Bytes(), productID.Bytes(), serviceID.Bytes(),
	).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError(
				"pricing agreement",
				fmt.Sprintf("seller %s, buyer %s, product %s, service %s",
					sellerAgencyID, buyerAgencyID, productID, serviceID))
		}
		return nil, err
	}

	return agreementToDomain(dto)
}

// AddRate saves a new shipping rate to the database.
func (r *GormPricingRepository) AddRate(ctx context.Context, aggregate *pricing.ShippingRate) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := rateFromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return storeerrors.Map(err, "shipping rate")
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// UpdateRate saves an existing shipping rate to the database.
func (r *GormPricingRepository) UpdateRate(ctx context.Context, aggregate *pricing.ShippingRate) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := rateFromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&ShippingRateDTO{}).
		Where("id = ?", dto.ID).
		Select("PriceInCents", "Scope", "IsActive").
		Updates(&dto)
	if result.Error != nil {
		return storeerrors.Map(result.Error, "shipping rate")
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("shipping rate", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// GetRate retrieves a shipping rate by ID.
func (r *GormPricingRepository) GetRate(ctx context.Context, id kernel.UUID) (*pricing.ShippingRate, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ShippingRateDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("shipping rate", id.String())
		}
		return nil, err
	}

	return rateToDomain(dto)
}
