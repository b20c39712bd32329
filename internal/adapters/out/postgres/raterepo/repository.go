package raterepo

import (
	"context"
	"errors"
	"fmt"

	"forwarding/internal/adapters/out/postgres/storeerrors"
	"forwarding/internal/core/domain/model/deliveryrate"
	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormDeliveryRateRepository implements DeliveryRateRepository using GORM.
type GormDeliveryRateRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormDeliveryRateRepository creates a new GORM delivery rate repository.
func NewGormDeliveryRateRepository(db *gorm.DB, tracker aggregateTracker) *GormDeliveryRateRepository {
	return &GormDeliveryRateRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new delivery rate to the database.
func (r *GormDeliveryRateRepository) Add(ctx context.Context, aggregate *deliveryrate.DeliveryRate) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return storeerrors.Map(err, "delivery rate")
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// GetAgencyCityRate retrieves the active city-specific rate owned directly by
// the agency for the carrier.
func (r *GormDeliveryRateRepository) GetAgencyCityRate(
	ctx context.Context,
	agencyID kernel.UUID,
	carrierID kernel.UUID,
	cityID kernel.UUID,
) (*deliveryrate.DeliveryRate, error) {
	var dto DeliveryRateDTO
	err := r.db.WithContext(ctx).First(&dto,
		"agency_id = ? AND carrier_id = ? AND city_id = ? AND is_active = true",
		agencyID.Bytes(), carrierID.Bytes(), cityID.Bytes(),
	).Error
	if err != nil {
		return nil, mapLookupError(err, "agency city rate", agencyID, carrierID)
	}

	return toDomain(dto)
}

// GetAgencyCityTypeRate retrieves the active city-type rate owned directly by
// the agency for the carrier.
func (r *GormDeliveryRateRepository) GetAgencyCityTypeRate(
	ctx context.Context,
	agencyID kernel.UUID,
	carrierID kernel.UUID,
	cityType deliveryrate.CityType,
) (*deliveryrate.DeliveryRate, error) {
	var dto DeliveryRateDTO
	err := r.db.WithContext(ctx).First(&dto,
		"agency_id = ? AND carrier_id = ? AND city_id IS NULL AND city_type = ? AND is_active = true",
		agencyID.Bytes(), carrierID.Bytes(), string(cityType),
	).Error
	if err != nil {
		return nil, mapLookupError(err, "agency city type rate", agencyID, carrierID)
	}

	return toDomain(dto)
}

// GetBaseCityRate retrieves the active forwarder-level city-specific base
// rate for the carrier.
func (r *GormDeliveryRateRepository) GetBaseCityRate(
	ctx context.Context,
	carrierID kernel.UUID,
	cityID kernel.UUID,
) (*deliveryrate.DeliveryRate, error) {
	var dto DeliveryRateDTO
	err := r.db.WithContext(ctx).First(&dto,
		"agency_id IS NULL AND is_base_rate = true AND carrier_id = ? AND city_id = ? AND is_active = true",
		carrierID.Bytes(), cityID.Bytes(),
	).Error
	if err != nil {
		return nil, mapLookupError(err, "base city rate", kernel.UUID{}, carrierID)
	}

	return toDomain(dto)
}

// GetBaseCityTypeRate retrieves the active forwarder-level city-type base
// rate for the carrier.
func (r *GormDeliveryRateRepository) GetBaseCityTypeRate(
	ctx context.Context,
	carrierID kernel.UUID,
	cityType deliveryrate.CityType,
) (*deliveryrate.DeliveryRate, error) {
	var dto DeliveryRateDTO
	err := r.db.WithContext(ctx).First(&dto,
		"agency_id IS NULL AND is_base_rate = true AND carrier_id = ? AND city_id IS NULL AND city_type = ? AND is_active = true",
		carrierID.Bytes(), string(cityType),
	).Error
	if err != nil {
		return nil, mapLookupError(err, "base city type rate", kernel.UUID{}, carrierID)
	}

	return toDomain(dto)
}

// mapLookupError turns a missing row into the ObjectNotFoundError the
// inheritance walk treats as "climb one level".
func mapLookupError(err error, kind string, agencyID, carrierID kernel.UUID) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.NewObjectNotFoundError(
			"delivery rate",
			fmt.Sprintf("%s for agency %s, carrier %s", kind, agencyID, carrierID))
	}
	return err
}
