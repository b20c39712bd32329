package parcelrepo

import (
	"context"
	"errors"
	"time"

	"forwarding/internal/adapters/out/postgres/storeerrors"
	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/core/domain/model/parcel"
	"forwarding/internal/core/ports"
	"forwarding/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormParcelRepository implements ParcelRepository using GORM.
type GormParcelRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormParcelRepository creates a new GORM parcel repository.
func NewGormParcelRepository(db *gorm.DB, tracker aggregateTracker) *GormParcelRepository {
	return &GormParcelRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new parcel to the database.
func (r *GormParcelRepository) Add(ctx context.Context, aggregate *parcel.Parcel) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return storeerrors.Map(err, "parcel")
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing parcel to the database.
func (r *GormParcelRepository) Update(ctx context.Context, aggregate *parcel.Parcel) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&ParcelDTO{}).
		Where("id = ?", dto.ID).
		Select("Status").
		Updates(&dto)
	if result.Error != nil {
		return storeerrors.Map(result.Error, "parcel")
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("parcel", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a parcel by ID.
func (r *GormParcelRepository) Get(ctx context.Context, id kernel.UUID) (*parcel.Parcel, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ParcelDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("parcel", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByHBL retrieves a parcel by its HBL tracking code.
func (r *GormParcelRepository) GetByHBL(ctx context.Context, hbl string) (*parcel.Parcel, error) {
	if hbl == "" {
		return nil, errs.NewValueIsRequiredError("hbl")
	}

	var dto ParcelDTO
	if err := r.db.WithContext(ctx).First(&dto, "hbl = ?", hbl).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("parcel", hbl)
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllByOrder retrieves every parcel belonging to an order.
func (r *GormParcelRepository) GetAllByOrder(ctx context.Context, orderID kernel.UUID) ([]*parcel.Parcel, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dtos []ParcelDTO
	if err := r.db.WithContext(ctx).Find(&dtos, "order_id = ?", orderID.Bytes()).Error; err != nil {
		return nil, err
	}

	parcels := make([]*parcel.Parcel, 0, len(dtos))
	for _, dto := range dtos {
		p, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		parcels = append(parcels, p)
	}

	return parcels, nil
}

// GormStatusEventRepository implements StatusEventRepository using GORM.
type GormStatusEventRepository struct {
	db *gorm.DB
}

// NewGormStatusEventRepository creates a new GORM status event repository.
func NewGormStatusEventRepository(db *gorm.DB) *GormStatusEventRepository {
	return &GormStatusEventRepository{db: db}
}

// Add stages a new carrier status report.
func (r *GormStatusEventRepository) Add(ctx context.Context, event ports.StatusEvent) error {
	if err := event.ID.Validate(); err != nil {
		return err
	}
	if event.HBL == "" {
		return errs.NewValueIsRequiredError("hbl")
	}
	if err := event.Status.Validate(); err != nil {
		return err
	}
	if event.RecordedAt.IsZero() {
		return errs.NewValueIsRequiredError("recorded at")
	}

	dto := eventFromPort(event)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return storeerrors.Map(err, "status event")
	}

	return nil
}

// GetUnapplied retrieves up to limit staged events in recording order.
func (r *GormStatusEventRepository) GetUnapplied(ctx context.Context, limit int) ([]ports.StatusEvent, error) {
	if limit <= 0 {
		return nil, errs.NewValueIsOutOfRangeError("limit", limit, 1, "unbounded")
	}

	var dtos []StatusEventDTO
	err := r.db.WithContext(ctx).
		Where("applied_at IS NULL").
		Order("recorded_at ASC").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, storeerrors.Map(err, "status event")
	}

	events := make([]ports.StatusEvent, 0, len(dtos))
	for _, dto := range dtos {
		event, mapErr := eventToPort(dto)
		if mapErr != nil {
			return nil, mapErr
		}
		events = append(events, event)
	}

	return events, nil
}

// MarkApplied flags the given events as applied.
func (r *GormStatusEventRepository) MarkApplied(ctx context.Context, ids []kernel.UUID) error {
	if len(ids) == 0 {
		return nil
	}

	raw := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if err := id.Validate(); err != nil {
			return err
		}
		raw = append(raw, id.Bytes())
	}

	now := time.Now().UTC()
	err := r.db.WithContext(ctx).
		Model(&StatusEventDTO{}).
		Where("id IN ?", raw).
		Update("applied_at", now).Error
	if err != nil {
		return storeerrors.Map(err, "status event")
	}

	return nil
}
