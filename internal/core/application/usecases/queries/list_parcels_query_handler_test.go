package queries_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"forwarding/internal/adapters/out/postgres/parcelrepo"
	"forwarding/internal/core/application/usecases/queries"
	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/core/domain/model/parcel"
	"forwarding/internal/core/security"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type ListParcelsQueryHandlerTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	handler   queries.ListParcelsQueryHandler
	hblSeq    int
}

func (suite *ListParcelsQueryHandlerTestSuite) SetupSuite() {
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

	err = db.AutoMigrate(&parcelrepo.ParcelDTO{})
	suite.Require().NoError(err)

	suite.handler = queries.NewListParcelsQueryHandler(db)
}

func (suite *ListParcelsQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *ListParcelsQueryHandlerTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE parcels CASCADE").Error
	suite.Require().NoError(err)
}

func (suite *ListParcelsQueryHandlerTestSuite) TestHandle_AllScope_ListsEverything() {
	suite.seedParcel(kernel.NewUUID(), parcel.InAgency)
	suite.seedParcel(kernel.NewUUID(), parcel.InPallet)
	suite.seedParcel(kernel.NewUUID(), parcel.Delivered)

	query, err := queries.NewListParcelsQuery(
		security.Scope{All: true}, queries.ReadyForNothing, 1, 50)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Len(result.Parcels, 3)
	suite.Equal(int64(3), result.Total)
}

func (suite *ListParcelsQueryHandlerTestSuite) TestHandle_AgencyScope_FiltersRows() {
	visible := kernel.NewUUID()
	hidden := kernel.NewUUID()

	mine := suite.seedParcel(visible, parcel.InAgency)
	suite.seedParcel(hidden, parcel.InAgency)

	query, err := queries.NewListParcelsQuery(
		security.Scope{AgencyIDs: []kernel.UUID{visible}}, queries.ReadyForNothing, 1, 50)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(result.Parcels, 1)
	suite.Equal(int64(1), result.Total)
	suite.Equal(mine.ID(), result.Parcels[0].ID)
	suite.Equal(visible, result.Parcels[0].AgencyID)
}

func (suite *ListParcelsQueryHandlerTestSuite) TestHandle_EmptyScope_ReturnsEmptyPage() {
	suite.seedParcel(kernel.NewUUID(), parcel.InAgency)

	query, err := queries.NewListParcelsQuery(
		security.Scope{}, queries.ReadyForNothing, 1, 50)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Empty(result.Parcels)
	suite.Equal(int64(0), result.Total)
}

func (suite *ListParcelsQueryHandlerTestSuite) TestHandle_ReadyForDispatch_SelectsPalletizedParcels() {
	agencyID := kernel.NewUUID()
	palletized := suite.seedParcel(agencyID, parcel.InPallet)
	suite.seedParcel(agencyID, parcel.InAgency)
	suite.seedParcel(agencyID, parcel.ReceivedInDispatch)

	query, err := queries.NewListParcelsQuery(
		security.Scope{All: true}, queries.ReadyForDispatch, 1, 50)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(result.Parcels, 1)
	suite.Equal(palletized.ID(), result.Parcels[0].ID)
	suite.Equal(parcel.InPallet, result.Parcels[0].Status)
}

func (suite *ListParcelsQueryHandlerTestSuite) TestHandle_ReadyForContainer_SelectsReceivedParcels() {
	agencyID := kernel.NewUUID()
	received := suite.seedParcel(agencyID, parcel.ReceivedInDispatch)
	suite.seedParcel(agencyID, parcel.InPallet)

	query, err := queries.NewListParcelsQuery(
		security.Scope{All: true}, queries.ReadyForContainer, 1, 50)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(result.Parcels, 1)
	suite.Equal(received.ID(), result.Parcels[0].ID)
}

func (suite *ListParcelsQueryHandlerTestSuite) TestHandle_Pagination_ReturnsStablePages() {
	agencyID := kernel.NewUUID()
	for range 5 {
		suite.seedParcel(agencyID, parcel.InAgency)
	}

	firstPage, err := queries.NewListParcelsQuery(
		security.Scope{All: true}, queries.ReadyForNothing, 1, 2)
	suite.Require().NoError(err)
	secondPage, err := queries.NewListParcelsQuery(
		security.Scope{All: true}, queries.ReadyForNothing, 2, 2)
	suite.Require().NoError(err)

	first, err := suite.handler.Handle(context.Background(), firstPage)
	suite.Require().NoError(err)
	second, err := suite.handler.Handle(context.Background(), secondPage)
	suite.Require().NoError(err)

	suite.Len(first.Parcels, 2)
	suite.Len(second.Parcels, 2)
	suite.Equal(int64(5), first.Total)
	suite.Equal(int64(5), second.Total)

	// Pages are ordered by HBL, so they never overlap.
	suite.NotEqual(first.Parcels[0].HBL, second.Parcels[0].HBL)
	suite.Less(first.Parcels[1].HBL, second.Parcels[0].HBL)
}

func (suite *ListParcelsQueryHandlerTestSuite) TestHandle_InvalidQuery_ReturnsError() {
	invalidQuery := queries.ListParcelsQuery{}

	_, err := suite.handler.Handle(context.Background(), invalidQuery)

	suite.Require().Error(err)
	suite.Contains(err.Error(), "must be created via NewListParcelsQuery constructor")
}

func (suite *ListParcelsQueryHandlerTestSuite) seedParcel(
	agencyID kernel.UUID,
	status parcel.Status,
) *parcel.Parcel {
	suite.hblSeq++
	p, err := parcel.RestoreParcel(
		kernel.NewUUID(), kernel.NewUUID(), agencyID,
		fmt.Sprintf("LST-%04d", suite.hblSeq), status)
	suite.Require().NoError(err)

	repo := parcelrepo.NewGormParcelRepository(suite.db, &mockAggregateTracker{})
	suite.Require().NoError(repo.Add(context.Background(), p))
	return p
}

func TestListParcelsQueryHandlerTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(ListParcelsQueryHandlerTestSuite))
}
