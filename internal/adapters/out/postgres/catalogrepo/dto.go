// Package catalogrepo reads the product/service catalog. The catalog is
// owned by an external system; this adapter only needs existence, activity
// and the fields flattened into rate views, so it exposes read models rather
// than aggregates.
package catalogrepo

import (
	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/core/ports"

	"github.com/google/uuid"
)

// ProductDTO represents the database structure of a catalog product.
type ProductDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name        string    `gorm:"not null"`
	Description string
	Unit        string
	IsActive    bool `gorm:"not null;default:true"`
}

// TableName specifies the database table name for product entities.
func (ProductDTO) TableName() string {
	return "products"
}

// ServiceDTO represents the database structure of a catalog service.
type ServiceDTO struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name     string    `gorm:"not null"`
	IsActive bool      `gorm:"not null;default:true"`
}

// TableName specifies the database table name for service entities.
func (ServiceDTO) TableName() string {
	return "services"
}

func productToReadModel(dto ProductDTO) (*ports.CatalogProduct, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return &ports.CatalogProduct{
		ID:          id,
		Name:        dto.Name,
		Description: dto.Description,
		Unit:        dto.Unit,
		IsActive:    dto.IsActive,
	}, nil
}

func serviceToReadModel(dto ServiceDTO) (*ports.CatalogService, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return &ports.CatalogService{
		ID:       id,
		Name:     dto.Name,
		IsActive: dto.IsActive,
	}, nil
}
