package commands_test

import (
	"context"
	"testing"
	"time"

	"forwarding/internal/core/application/usecases/commands"
	"forwarding/internal/core/domain/model/agency"
	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/core/domain/model/pricing"
	"forwarding/internal/core/ports"
	"forwarding/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockPricingRepository struct{ mock.Mock }

func (m *MockPricingRepository) AddAgreement(ctx context.Context, a *pricing.Agreement) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockPricingRepository) UpdateAgreement(ctx context.Context, a *pricing.Agreement) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockPricingRepository) GetAgreement(ctx context.Context, id kernel.UUID) (*pricing.Agreement, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pricing.Agreement), args.Error(1)
}

func (m *MockPricingRepository) GetAgreementByTuple(
	ctx context.Context, sellerID, buyerID, productID, serviceID kernel.UUID,
) (*pricing.Agreement, error) {
	args := m.Called(ctx, sellerID, buyerID, productID, serviceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pricing.Agreement), args.Error(1)
}

func (m *MockPricingRepository) AddRate(ctx context.Context, r *pricing.ShippingRate) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockPricingRepository) UpdateRate(ctx context.Context, r *pricing.ShippingRate) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockPricingRepository) GetRate(ctx context.Context, id kernel.UUID) (*pricing.ShippingRate, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pricing.ShippingRate), args.Error(1)
}

type MockCatalogRepository struct{ mock.Mock }

func (m *MockCatalogRepository) GetProduct(ctx context.Context, id kernel.UUID) (*ports.CatalogProduct, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ports.CatalogProduct), args.Error(1)
}

func (m *MockCatalogRepository) GetService(ctx context.Context, id kernel.UUID) (*ports.CatalogService, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ports.CatalogService), args.Error(1)
}

type MockAgencyRepository struct{ mock.Mock }

func (m *MockAgencyRepository) Add(ctx context.Context, a *agency.Agency) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAgencyRepository) Update(ctx context.Context, a *agency.Agency) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAgencyRepository) Get(ctx context.Context, id kernel.UUID) (*agency.Agency, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*agency.Agency), args.Error(1)
}

func (m *MockAgencyRepository) GetChildren(ctx context.Context, id kernel.UUID) ([]*agency.Agency, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*agency.Agency), args.Error(1)
}

func (m *MockAgencyRepository) GetParent(ctx context.Context, id kernel.UUID) (*agency.Agency, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*agency.Agency), args.Error(1)
}

type MockPricingUoW struct{ mock.Mock }

func (m *MockPricingUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockPricingUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockPricingUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockPricingUoW) AgencyRepository() ports.AgencyRepository {
	args := m.Called()
	return args.Get(0).(ports.AgencyRepository)
}

func (m *MockPricingUoW) CatalogRepository() ports.CatalogRepository {
	args := m.Called()
	return args.Get(0).(ports.CatalogRepository)
}

func (m *MockPricingUoW) PricingRepository() ports.PricingRepository {
	args := m.Called()
	return args.Get(0).(ports.PricingRepository)
}

type MockPricingUoWFactory struct{ mock.Mock }

func (m *MockPricingUoWFactory) Create() commands.PricingUoW {
	args := m.Called()
	return args.Get(0).(commands.PricingUoW)
}

type pricingHandlerFixture struct {
	cmd         commands.CreatePricingWithRateCommand
	productID   kernel.UUID
	serviceID   kernel.UUID
	sellerID    kernel.UUID
	buyerID     kernel.UUID
	pricingRepo *MockPricingRepository
	catalogRepo *MockCatalogRepository
	agencyRepo  *MockAgencyRepository
	uow         *MockPricingUoW
	factory     *MockPricingUoWFactory
}

func newPricingHandlerFixture(t *testing.T) *pricingHandlerFixture {
	t.Helper()

	f := &pricingHandlerFixture{
		productID:   kernel.NewUUID(),
		serviceID:   kernel.NewUUID(),
		sellerID:    kernel.NewUUID(),
		buyerID:     kernel.NewUUID(),
		pricingRepo: new(MockPricingRepository),
		catalogRepo: new(MockCatalogRepository),
		agencyRepo:  new(MockAgencyRepository),
		uow:         new(MockPricingUoW),
		factory:     new(MockPricingUoWFactory),
	}

	cost, err := kernel.NewCents(500)
	require.NoError(t, err)
	price, err := kernel.NewCents(800)
	require.NoError(t, err)

	f.cmd, err = commands.NewCreatePricingWithRateCommand(
		f.productID, f.serviceID, f.sellerID, f.buyerID, cost, price, true)
	require.NoError(t, err)

	f.factory.On("Create").Return(f.uow).Once()
	return f
}

func (f *pricingHandlerFixture) catalogOK(ctx context.Context) {
	f.catalogRepo.On("GetProduct", ctx, f.productID).
		Return(&ports.CatalogProduct{ID: f.productID, Name: "Box", IsActive: true}, nil).Once()
	f.catalogRepo.On("GetService", ctx, f.serviceID).
		Return(&ports.CatalogService{ID: f.serviceID, Name: "Air", IsActive: true}, nil).Once()
}

func (f *pricingHandlerFixture) agenciesOK(t *testing.T, ctx context.Context) {
	t.Helper()
	seller, err := agency.RestoreAgency(f.sellerID, "Seller", agency.Forwarder, nil, f.sellerID)
	require.NoError(t, err)
	parentID := f.sellerID
	buyer, err := agency.RestoreAgency(f.buyerID, "Buyer", agency.AgencyLeaf, &parentID, f.sellerID)
	require.NoError(t, err)

	f.agencyRepo.On("Get", ctx, f.sellerID).Return(seller, nil).Once()
	f.agencyRepo.On("Get", ctx, f.buyerID).Return(buyer, nil).Once()
}

func TestCreatePricingWithRateCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	f := newPricingHandlerFixture(t)

	f.uow.On("Begin", ctx).Return(nil).Once()
	f.uow.On("CatalogRepository").Return(f.catalogRepo).Once()
	f.uow.On("AgencyRepository").Return(f.agencyRepo).Once()
	f.uow.On("PricingRepository").Return(f.pricingRepo).Once()
	f.catalogOK(ctx)
	f.agenciesOK(t, ctx)
	f.pricingRepo.On("GetAgreementByTuple", ctx, f.sellerID, f.buyerID, f.productID, f.serviceID).
		Return(nil, errs.NewObjectNotFoundError("pricing agreement", "tuple")).Once()
	f.pricingRepo.On("AddAgreement", ctx, mock.AnythingOfType("*pricing.Agreement")).Return(nil).Once()
	f.pricingRepo.On("AddRate", ctx, mock.AnythingOfType("*pricing.ShippingRate")).Return(nil).Once()
	f.uow.On("Commit", ctx).Return(nil).Once()
	f.uow.On("Rollback", ctx).Return(nil).Once()

	fixedNow := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	handler := commands.NewCreatePricingWithRateCommandHandler(f.factory, func() time.Time { return fixedNow })

	result, err := handler.Handle(ctx, f.cmd)
	require.NoError(t, err)

	assert.Equal(t, int64(500), result.Agreement.Price().Amount(), "agreement carries the cost")
	assert.Equal(t, int64(800), result.Rate.Price().Amount(), "rate carries the sell price")
	assert.Equal(t, result.Agreement.ID(), result.Rate.AgreementID())
	assert.Equal(t, f.buyerID, result.Rate.AgencyID())
	assert.Equal(t, pricing.Public, result.Rate.Scope())
	assert.Equal(t, fixedNow, result.Agreement.EffectiveFrom())
	assert.False(t, result.IsInternal)

	f.uow.AssertExpectations(t)
	f.pricingRepo.AssertExpectations(t)
}

func TestCreatePricingWithRateCommandHandler_Handle_InternalAgreement(t *testing.T) {
	ctx := t.Context()
	f := newPricingHandlerFixture(t)

	// Seller and buyer coincide.
	cost, err := kernel.NewCents(500)
	require.NoError(t, err)
	price, err := kernel.NewCents(500)
	require.NoError(t, err)
	f.cmd, err = commands.NewCreatePricingWithRateCommand(
		f.productID, f.serviceID, f.sellerID, f.sellerID, cost, price, true)
	require.NoError(t, err)

	seller, err := agency.RestoreAgency(f.sellerID, "Seller", agency.Forwarder, nil, f.sellerID)
	require.NoError(t, err)

	f.uow.On("Begin", ctx).Return(nil).Once()
	f.uow.On("CatalogRepository").Return(f.catalogRepo).Once()
	f.uow.On("AgencyRepository").Return(f.agencyRepo).Once()
	f.uow.On("PricingRepository").Return(f.pricingRepo).Once()
	f.catalogOK(ctx)
	f.agencyRepo.On("Get", ctx, f.sellerID).Return(seller, nil).Twice()
	f.pricingRepo.On("GetAgreementByTuple", ctx, f.sellerID, f.sellerID, f.productID, f.serviceID).
		Return(nil, errs.NewObjectNotFoundError("pricing agreement", "tuple")).Once()
	f.pricingRepo.On("AddAgreement", ctx, mock.Anything).Return(nil).Once()
	f.pricingRepo.On("AddRate", ctx, mock.Anything).Return(nil).Once()
	f.uow.On("Commit", ctx).Return(nil).Once()
	f.uow.On("Rollback", ctx).Return(nil).Once()

	handler := commands.NewCreatePricingWithRateCommandHandler(f.factory, nil)
	result, err := handler.Handle(ctx, f.cmd)
	require.NoError(t, err)
	assert.True(t, result.IsInternal)
}

func TestCreatePricingWithRateCommandHandler_Handle_DuplicateTuple_Conflict(t *testing.T) {
	ctx := t.Context()
	f := newPricingHandlerFixture(t)

	cost, err := kernel.NewCents(500)
	require.NoError(t, err)
	existing, err := pricing.NewAgreement(
		kernel.NewUUID(), f.sellerID, f.buyerID, f.productID, f.serviceID,
		cost, true, time.Now().UTC())
	require.NoError(t, err)

	f.uow.On("Begin", ctx).Return(nil).Once()
	f.uow.On("CatalogRepository").Return(f.catalogRepo).Once()
	f.uow.On("AgencyRepository").Return(f.agencyRepo).Once()
	f.uow.On("PricingRepository").Return(f.pricingRepo).Once()
	f.catalogOK(ctx)
	f.agenciesOK(t, ctx)
	f.pricingRepo.On("GetAgreementByTuple", ctx, f.sellerID, f.buyerID, f.productID, f.serviceID).
		Return(existing, nil).Once()
	f.uow.On("Rollback", ctx).Return(nil).Once()

	handler := commands.NewCreatePricingWithRateCommandHandler(f.factory, nil)
	_, err = handler.Handle(ctx, f.cmd)
	require.ErrorIs(t, err, errs.ErrConflict)

	f.pricingRepo.AssertNotCalled(t, "AddAgreement", mock.Anything, mock.Anything)
	f.uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestCreatePricingWithRateCommandHandler_Handle_UnknownProduct(t *testing.T) {
	ctx := t.Context()
	f := newPricingHandlerFixture(t)

	f.uow.On("Begin", ctx).Return(nil).Once()
	f.uow.On("CatalogRepository").Return(f.catalogRepo).Once()
	f.catalogRepo.On("GetProduct", ctx, f.productID).
		Return(nil, errs.NewObjectNotFoundError("product", f.productID.String())).Once()
	f.uow.On("Rollback", ctx).Return(nil).Once()

	handler := commands.NewCreatePricingWithRateCommandHandler(f.factory, nil)
	_, err := handler.Handle(ctx, f.cmd)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	assert.Contains(t, err.Error(), f.productID.String())
}

func TestCreatePricingWithRateCommandHandler_Handle_InactiveProduct_Rejected(t *testing.T) {
	ctx := t.Context()
	f := newPricingHandlerFixture(t)

	f.uow.On("Begin", ctx).Return(nil).Once()
	f.uow.On("CatalogRepository").Return(f.catalogRepo).Once()
	f.catalogRepo.On("GetProduct", ctx, f.productID).
		Return(&ports.CatalogProduct{ID: f.productID, Name: "Box", IsActive: false}, nil).Once()
	f.uow.On("Rollback", ctx).Return(nil).Once()

	handler := commands.NewCreatePricingWithRateCommandHandler(f.factory, nil)
	_, err := handler.Handle(ctx, f.cmd)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	assert.Contains(t, err.Error(), "product is not active")

	f.pricingRepo.AssertNotCalled(t, "AddAgreement", mock.Anything, mock.Anything)
	f.uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestCreatePricingWithRateCommandHandler_Handle_InactiveService_Rejected(t *testing.T) {
	ctx := t.Context()
	f := newPricingHandlerFixture(t)

	f.uow.On("Begin", ctx).Return(nil).Once()
	f.uow.On("CatalogRepository").Return(f.catalogRepo).Once()
	f.catalogRepo.On("GetProduct", ctx, f.productID).
		Return(&ports.CatalogProduct{ID: f.productID, Name: "Box", IsActive: true}, nil).Once()
	f.catalogRepo.On("GetService", ctx, f.serviceID).
		Return(&ports.CatalogService{ID: f.serviceID, Name: "Air", IsActive: false}, nil).Once()
	f.uow.On("Rollback", ctx).Return(nil).Once()

	handler := commands.NewCreatePricingWithRateCommandHandler(f.factory, nil)
	_, err := handler.Handle(ctx, f.cmd)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	assert.Contains(t, err.Error(), "service is not active")

	f.pricingRepo.AssertNotCalled(t, "AddAgreement", mock.Anything, mock.Anything)
	f.uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestCreatePricingWithRateCommandHandler_Handle_UnknownSeller_DistinctMessage(t *testing.T) {
	ctx := t.Context()
	f := newPricingHandlerFixture(t)

	f.uow.On("Begin", ctx).Return(nil).Once()
	f.uow.On("CatalogRepository").Return(f.catalogRepo).Once()
	f.uow.On("AgencyRepository").Return(f.agencyRepo).Once()
	f.catalogOK(ctx)
	f.agencyRepo.On("Get", ctx, f.sellerID).
		Return(nil, errs.NewObjectNotFoundError("agency", f.sellerID.String())).Once()
	f.uow.On("Rollback", ctx).Return(nil).Once()

	handler := commands.NewCreatePricingWithRateCommandHandler(f.factory, nil)
	_, err := handler.Handle(ctx, f.cmd)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)

	var notFound *errs.ObjectNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "seller agency", notFound.ParamName)
}

func TestCreatePricingWithRateCommandHandler_Handle_NotConstructedCommand(t *testing.T) {
	f := newPricingHandlerFixture(t)
	handler := commands.NewCreatePricingWithRateCommandHandler(f.factory, nil)

	_, err := handler.Handle(t.Context(), commands.CreatePricingWithRateCommand{})
	require.ErrorIs(t, err, commands.ErrCreatePricingWithRateCommandIsNotConstructed)
}
