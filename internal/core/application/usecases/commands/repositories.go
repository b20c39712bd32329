// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"forwarding/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// AgencyRepoFactory provides access to the agency repository within a transaction.
	AgencyRepoFactory interface {
		AgencyRepository() ports.AgencyRepository
	}

	// CatalogRepoFactory provides access to the catalog repository within a transaction.
	CatalogRepoFactory interface {
		CatalogRepository() ports.CatalogRepository
	}

	// PricingRepoFactory provides access to the pricing repository within a transaction.
	PricingRepoFactory interface {
		PricingRepository() ports.PricingRepository
	}

	// ParcelRepoFactory provides access to the parcel repository within a transaction.
	ParcelRepoFactory interface {
		ParcelRepository() ports.ParcelRepository
	}

	// StatusEventRepoFactory provides access to the status event staging
	// repository within a transaction.
	StatusEventRepoFactory interface {
		StatusEventRepository() ports.StatusEventRepository
	}

	// AgencyUoW manages transactions for agency-only operations.
	AgencyUoW interface {
		TxManager
		AgencyRepoFactory
	}

	// AgencyUoWFactory creates new agency unit of work instances.
	AgencyUoWFactory interface {
		Create() AgencyUoW
	}

	// PricingUoW manages transactions for agreement+rate operations. The
	// catalog and agency reads it exposes observe the same snapshot as the
	// pricing writes, so existence checks and the dual write form one unit.
	PricingUoW interface {
		TxManager
		AgencyRepoFactory
		CatalogRepoFactory
		PricingRepoFactory
	}

	// PricingUoWFactory creates new pricing unit of work instances.
	PricingUoWFactory interface {
		Create() PricingUoW
	}

	// StatusUoW manages transactions for status event application: draining
	// the staging table and updating parcels happen atomically.
	StatusUoW interface {
		TxManager
		ParcelRepoFactory
		StatusEventRepoFactory
	}

	// StatusUoWFactory creates new status unit of work instances.
	StatusUoWFactory interface {
		Create() StatusUoW
	}
)
