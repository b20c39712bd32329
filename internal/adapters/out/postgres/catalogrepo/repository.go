package catalogrepo

import (
	"context"
	"errors"

	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/core/ports"
	"forwarding/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormCatalogRepository implements CatalogRepository using GORM.
type GormCatalogRepository struct {
	db *gorm.DB
}

// NewGormCatalogRepository creates a new GORM catalog repository.
func NewGormCatalogRepository(db *gorm.DB) *GormCatalogRepository {
	return &GormCatalogRepository{db: db}
}

// GetProduct retrieves a product by ID.
func (r *GormCatalogRepository) GetProduct(ctx context.Context, id kernel.UUID) (*ports.CatalogProduct, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ProductDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("product", id.String())
		}
		return nil, err
	}

	return productToReadModel(dto)
}

// GetService retrieves a service by ID.
func (r *GormCatalogRepository) GetService(ctx context.Context, id kernel.UUID) (*ports.CatalogService, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ServiceDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("service", id.String())
		}
		return nil, err
	}

	return serviceToReadModel(dto)
}
