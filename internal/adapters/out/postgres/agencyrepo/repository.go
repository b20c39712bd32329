package agencyrepo

import (
	"context"
	"errors"

	"forwarding/internal/adapters/out/postgres/storeerrors"
	"forwarding/internal/core/domain/model/agency"
	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormAgencyRepository implements AgencyRepository using GORM.
type GormAgencyRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormAgencyRepository creates a new GORM agency repository.
func NewGormAgencyRepository(db *gorm.DB, tracker aggregateTracker) *GormAgencyRepository {
	return &GormAgencyRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new agency to the database.
func (r *GormAgencyRepository) Add(ctx context.Context, aggregate *agency.Agency) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return storeerrors.Map(err, "agency")
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing agency to the database.
func (r *GormAgencyRepository) Update(ctx context.Context, aggregate *agency.Agency) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&AgencyDTO{}).Where("id = ?", dto.ID).Updates(&dto)
	if result.Error != nil {
		return storeerrors.Map(result.Error, "agency")
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("agency", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an agency by ID.
func (r *GormAgencyRepository) Get(ctx context.Context, id kernel.UUID) (*agency.Agency, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto AgencyDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("agency", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetChildren retrieves the direct children of an agency. The agency itself
// must exist; an agency with no children yields an empty slice.
func (r *GormAgencyRepository) GetChildren(ctx context.Context, id kernel.UUID) ([]*agency.Agency, error) {
	if _, err := r.Get(ctx, id); err != nil {
		return nil, err
	}

	var dtos []AgencyDTO
	if err := r.db.WithContext(ctx).Find(&dtos, "parent_id = ?", id.Bytes()).Error; err != nil {
		return nil, err
	}

	children := make([]*agency.Agency, 0, len(dtos))
	for _, dto := range dtos {
		child, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		children = append(children, child)
	}

	return children, nil
}

// GetParent retrieves the direct parent of an agency, or (nil, nil) for
// forwarder roots.
func (r *GormAgencyRepository) GetParent(ctx context.Context, id kernel.UUID) (*agency.Agency, error) {
	node, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	parentID := node.ParentID()
	if parentID == nil {
		return nil, nil
	}

	return r.Get(ctx, *parentID)
}
