package queries_test

import (
	"context"
	"testing"
	"time"

	"forwarding/internal/adapters/out/postgres/catalogrepo"
	"forwarding/internal/adapters/out/postgres/pricingrepo"
	"forwarding/internal/core/application/usecases/queries"
	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/core/domain/model/pricing"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type GetRatesByServiceAndAgencyQueryHandlerTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	handler   queries.GetRatesByServiceAndAgencyQueryHandler
}

func (suite *GetRatesByServiceAndAgencyQueryHandlerTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(
		&catalogrepo.ProductDTO{},
		&catalogrepo.ServiceDTO{},
		&pricingrepo.AgreementDTO{},
		&pricingrepo.ShippingRateDTO{},
	)
	suite.Require().NoError(err)

	suite.handler = queries.NewGetRatesByServiceAndAgencyQueryHandler(db)
}

func (suite *GetRatesByServiceAndAgencyQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *GetRatesByServiceAndAgencyQueryHandlerTestSuite) SetupTest() {
	err := suite.db.Exec(
		"TRUNCATE TABLE products, services, pricing_agreements, shipping_rates CASCADE").Error
	suite.Require().NoError(err)
}

func (suite *GetRatesByServiceAndAgencyQueryHandlerTestSuite) TestHandle_NoRates_ReturnsEmptySlice() {
	query, err := queries.NewGetRatesByServiceAndAgencyQuery(kernel.NewUUID(), kernel.NewUUID())
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.NotNil(result)
	suite.Empty(result)
}

func (suite *GetRatesByServiceAndAgencyQueryHandlerTestSuite) TestHandle_FlattensRateProductAndAgreement() {
	serviceID := kernel.NewUUID()
	buyerID := kernel.NewUUID()

	freight := suite.createProduct("Air Freight", "Per-kilo air freight", "kg")
	handling := suite.createProduct("Handling", "Warehouse handling fee", "parcel")

	freightRate := suite.createRateWithAgreement(freight, serviceID, buyerID, 500, 800, true)
	handlingRate := suite.createRateWithAgreement(handling, serviceID, buyerID, 200, 200, false)

	// A rate for another service must not leak into the view.
	suite.createRateWithAgreement(freight, kernel.NewUUID(), buyerID, 100, 300, true)

	query, err := queries.NewGetRatesByServiceAndAgencyQuery(serviceID, buyerID)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 2)

	suite.Equal("Air Freight", result[0].Name)
	suite.Equal(freightRate.ID(), result[0].ID)
	suite.Equal("Per-kilo air freight", result[0].Description)
	suite.Equal("kg", result[0].Unit)
	suite.Equal(int64(800), result[0].PriceInCents)
	suite.Equal(int64(500), result[0].CostInCents)
	suite.True(result[0].IsActive)

	suite.Equal("Handling", result[1].Name)
	suite.Equal(handlingRate.ID(), result[1].ID)
	suite.Equal(int64(200), result[1].PriceInCents)
	suite.Equal(int64(200), result[1].CostInCents)
	suite.False(result[1].IsActive)
}

func (suite *GetRatesByServiceAndAgencyQueryHandlerTestSuite) TestHandle_OtherAgency_ReturnsEmptySlice() {
	serviceID := kernel.NewUUID()
	product := suite.createProduct("Air Freight", "Per-kilo air freight", "kg")
	suite.createRateWithAgreement(product, serviceID, kernel.NewUUID(), 500, 800, true)

	query, err := queries.NewGetRatesByServiceAndAgencyQuery(serviceID, kernel.NewUUID())
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Empty(result)
}

func (suite *GetRatesByServiceAndAgencyQueryHandlerTestSuite) TestHandle_InvalidQuery_ReturnsError() {
	invalidQuery := queries.GetRatesByServiceAndAgencyQuery{}

	result, err := suite.handler.Handle(context.Background(), invalidQuery)

	suite.Require().Error(err)
	suite.Nil(result)
	suite.Contains(err.Error(), "must be created via NewGetRatesByServiceAndAgencyQuery constructor")
}

func (suite *GetRatesByServiceAndAgencyQueryHandlerTestSuite) TestServicesWithRates_GroupsRatesUnderService() {
	buyerID := kernel.NewUUID()
	sea := suite.createService("Sea Freight")
	air := suite.createService("Air Freight")

	freight := suite.createProduct("Freight", "Per-kilo freight", "kg")
	handling := suite.createProduct("Handling", "Warehouse handling fee", "parcel")

	suite.createRateWithAgreement(freight, sea, buyerID, 300, 400, true)
	suite.createRateWithAgreement(handling, sea, buyerID, 100, 150, true)
	suite.createRateWithAgreement(freight, air, buyerID, 500, 800, true)

	handler := queries.NewGetServicesWithRatesQueryHandler(suite.db)
	query, err := queries.NewGetServicesWithRatesQuery(buyerID)
	suite.Require().NoError(err)

	result, err := handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 2)

	suite.Equal("Air Freight", result[0].ServiceName)
	suite.Equal(air, result[0].ServiceID)
	suite.Require().Len(result[0].Rates, 1)
	suite.Equal(int64(800), result[0].Rates[0].PriceInCents)

	suite.Equal("Sea Freight", result[1].ServiceName)
	suite.Require().Len(result[1].Rates, 2)
	suite.Equal("Freight", result[1].Rates[0].Name)
	suite.Equal("Handling", result[1].Rates[1].Name)
}

func (suite *GetRatesByServiceAndAgencyQueryHandlerTestSuite) TestServicesWithRates_NoRates_ReturnsEmptySlice() {
	handler := queries.NewGetServicesWithRatesQueryHandler(suite.db)
	query, err := queries.NewGetServicesWithRatesQuery(kernel.NewUUID())
	suite.Require().NoError(err)

	result, err := handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.NotNil(result)
	suite.Empty(result)
}

func (suite *GetRatesByServiceAndAgencyQueryHandlerTestSuite) createService(name string) kernel.UUID {
	id := kernel.NewUUID()
	err := suite.db.Create(&catalogrepo.ServiceDTO{
		ID:       id.Bytes(),
		Name:     name,
		IsActive: true,
	}).Error
	suite.Require().NoError(err)
	return id
}

func (suite *GetRatesByServiceAndAgencyQueryHandlerTestSuite) createProduct(
	name, description, unit string,
) kernel.UUID {
	id := kernel.NewUUID()
	err := suite.db.Create(&catalogrepo.ProductDTO{
		ID:          id.Bytes(),
		Name:        name,
		Description: description,
		Unit:        unit,
		IsActive:    true,
	}).Error
	suite.Require().NoError(err)
	return id
}

func (suite *GetRatesByServiceAndAgencyQueryHandlerTestSuite) createRateWithAgreement(
	productID, serviceID, buyerID kernel.UUID,
	costInCents, priceInCents int64,
	isActive bool,
) *pricing.ShippingRate {
	now := time.Now().UTC()

	cost, err := kernel.NewCents(costInCents)
	suite.Require().NoError(err)
	sell, err := kernel.NewCents(priceInCents)
	suite.Require().NoError(err)

	agreement, err := pricing.NewAgreement(
		kernel.NewUUID(), kernel.NewUUID(), buyerID, productID, serviceID, cost, isActive, now)
	suite.Require().NoError(err)

	rate, err := pricing.NewShippingRate(
		kernel.NewUUID(), productID, serviceID, buyerID, agreement.ID(),
		sell, pricing.Public, isActive, now)
	suite.Require().NoError(err)

	repo := pricingrepo.NewGormPricingRepository(suite.db, &mockAggregateTracker{})
	suite.Require().NoError(repo.AddAgreement(context.Background(), agreement))
	suite.Require().NoError(repo.AddRate(context.Background(), rate))

	return rate
}

func TestGetRatesByServiceAndAgencyQueryHandlerTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(GetRatesByServiceAndAgencyQueryHandlerTestSuite))
}

// mockAggregateTracker implements the tracker contract for repositories used
// to seed query tests. Queries never need change tracking.
type mockAggregateTracker struct{}

func (m *mockAggregateTracker) TrackAggregate(_ kernel.UUID, _ any) {}

func (m *mockAggregateTracker) GetTrackedAggregates() []any {
	return []any{}
}
