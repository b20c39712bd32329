package ports

import (
	"context"

	"forwarding/internal/core/domain/model/kernel"
)

// CatalogProduct is the read model for a catalog product. The catalog is an
// external collaborator; pricing only needs existence, activity and the
// fields flattened into rate views.
type CatalogProduct struct {
	ID          kernel.UUID
	Name        string
	Description string
	Unit        string
	IsActive    bool
}

// CatalogService is the read model for a catalog service.
type CatalogService struct {
	ID       kernel.UUID
	Name     string
	IsActive bool
}

// CatalogRepository provides existence and activity checks against the
// product/service catalog. Lookups inside a unit of work observe the same
// snapshot as the writes they guard.
type CatalogRepository interface {
	// GetProduct retrieves a product by id.
	// Returns an ObjectNotFoundError for unknown ids.
	GetProduct(ctx context.Context, id kernel.UUID) (*CatalogProduct, error)

	// GetService retrieves a service by id.
	// Returns an ObjectNotFoundError for unknown ids.
	GetService(ctx context.Context, id kernel.UUID) (*CatalogService, error)
}
