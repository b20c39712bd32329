// Package postgres provides the GORM-based implementation of the Unit of
// Work pattern. A unit of work spans every repository touched by one
// business transaction, so dual writes such as agreement+rate creation are
// all-or-nothing.
//
// Usage:
//
//	factory := NewGormUnitOfWorkFactory(db)
//	uow := factory.Create()
//
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//
//	if err := uow.PricingRepository().AddAgreement(ctx, agreement); err != nil {
//	    uow.Rollback(ctx)
//	    return err
//	}
//	if err := uow.PricingRepository().AddRate(ctx, rate); err != nil {
//	    uow.Rollback(ctx)
//	    return err
//	}
//
//	return uow.Commit(ctx)
//
// Each UnitOfWork instance owns at most one transaction; concurrent
// operations must use separate instances created from the factory.
package postgres

import (
	"context"

	"forwarding/internal/adapters/out/postgres/agencyrepo"
	"forwarding/internal/adapters/out/postgres/catalogrepo"
	"forwarding/internal/adapters/out/postgres/parcelrepo"
	"forwarding/internal/adapters/out/postgres/pricingrepo"
	"forwarding/internal/adapters/out/postgres/raterepo"
	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/core/ports"

	"gorm.io/gorm"
)

// trackedAggregate represents an aggregate modified during the unit of work.
type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate any
}

// GormUnitOfWorkFactory creates UnitOfWork instances using one shared GORM
// database connection. Each business operation gets a fresh unit of work
// instance with proper isolation from other concurrent operations.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

// NewGormUnitOfWorkFactory creates a factory for GORM-based unit of work
// instances.
func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

// Create produces a new UnitOfWork instance ready for transaction management.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

// GormUnitOfWork coordinates database transactions and tracks aggregate
// changes for business operations. Repositories obtained from it bind to the
// active transaction when one exists, and to the main connection otherwise.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	trackedAggregates []trackedAggregate
}

// Begin initiates a new database transaction for the unit of work.
// Repeated calls on the same instance are safe and do not nest transactions.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		return uow.tx.Error
	}

	return nil
}

// Commit finalizes all changes made within the current transaction.
// Returns an error if no active transaction exists or the commit fails.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return err
}

// Rollback discards all changes made within the current transaction.
// Returns an error if no active transaction exists or the rollback fails.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	return err
}

// conn returns the active transaction when one exists, the main connection
// otherwise.
func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

// AgencyRepository provides agency persistence within the unit of work.
func (uow *GormUnitOfWork) AgencyRepository() ports.AgencyRepository {
	return agencyrepo.NewGormAgencyRepository(uow.conn(), uow)
}

// CatalogRepository provides catalog reads within the unit of work, so
// existence checks observe the same snapshot as the writes they guard.
func (uow *GormUnitOfWork) CatalogRepository() ports.CatalogRepository {
	return catalogrepo.NewGormCatalogRepository(uow.conn())
}

// PricingRepository provides agreement and shipping rate persistence within
// the unit of work.
func (uow *GormUnitOfWork) PricingRepository() ports.PricingRepository {
	return pricingrepo.NewGormPricingRepository(uow.conn(), uow)
}

// DeliveryRateRepository provides delivery rate persistence within the unit
// of work.
func (uow *GormUnitOfWork) DeliveryRateRepository() ports.DeliveryRateRepository {
	return raterepo.NewGormDeliveryRateRepository(uow.conn(), uow)
}

// ParcelRepository provides parcel persistence within the unit of work.
func (uow *GormUnitOfWork) ParcelRepository() ports.ParcelRepository {
	return parcelrepo.NewGormParcelRepository(uow.conn(), uow)
}

// StatusEventRepository provides status event staging within the unit of work.
func (uow *GormUnitOfWork) StatusEventRepository() ports.StatusEventRepository {
	return parcelrepo.NewGormStatusEventRepository(uow.conn())
}

// TrackAggregate registers a domain aggregate as modified within this unit
// of work. Called by repository implementations on add and update.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate any) {
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}
