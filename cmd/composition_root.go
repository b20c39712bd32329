package cmd

import (
	"time"

	"forwarding/internal/adapters/out/authprovider"
	"forwarding/internal/adapters/out/kafka"
	"forwarding/internal/adapters/out/postgres"
	"forwarding/internal/core/application/usecases/commands"
	"forwarding/internal/core/application/usecases/queries"
	"forwarding/internal/core/ports"
	"forwarding/internal/pkg/retry"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB      *gorm.DB
	uowFactory  postgres.GormUnitOfWorkFactory
	publisher   *kafka.OrderStatusPublisher
	provisioner ports.UserProvisioner
}

func NewCompositionRoot(config Config, gormDB *gorm.DB) CompositionRoot {
	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		publisher: kafka.NewOrderStatusPublisher(
			[]string{config.KafkaHost}, config.KafkaOrderChangedTopic),
		provisioner: authprovider.NewHTTPProvisioner(config.AuthProviderURL, 10*time.Second),
	}
}

func (c *CompositionRoot) CreateCreateAgencyCommandHandler() commands.CreateAgencyCommandHandler {
	var f commands.AgencyUoWFactory = FuncAgencyUoWFactory(func() commands.AgencyUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateAgencyCommandHandler(f, c.provisioner)
}

func (c *CompositionRoot) CreateRenameAgencyCommandHandler() commands.RenameAgencyCommandHandler {
	var f commands.AgencyUoWFactory = FuncAgencyUoWFactory(func() commands.AgencyUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRenameAgencyCommandHandler(f)
}

func (c *CompositionRoot) CreateCreatePricingWithRateCommandHandler() commands.CreatePricingWithRateCommandHandler {
	var f commands.PricingUoWFactory = FuncPricingUoWFactory(func() commands.PricingUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreatePricingWithRateCommandHandler(f, nil)
}

func (c *CompositionRoot) CreateUpdateShippingRateCommandHandler() commands.UpdateShippingRateCommandHandler {
	var f commands.PricingUoWFactory = FuncPricingUoWFactory(func() commands.PricingUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateShippingRateCommandHandler(f)
}

func (c *CompositionRoot) CreateApplyStatusEventsCommandHandler() commands.ApplyStatusEventsCommandHandler {
	var f commands.StatusUoWFactory = FuncStatusUoWFactory(func() commands.StatusUoW {
		return c.uowFactory.Create()
	})
	return commands.NewApplyStatusEventsCommandHandler(f, c.publisher, retry.DefaultPolicy())
}

func (c *CompositionRoot) CreateGetRatesByServiceAndAgencyQueryHandler() queries.GetRatesByServiceAndAgencyQueryHandler {
	return queries.NewGetRatesByServiceAndAgencyQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetServicesWithRatesQueryHandler() queries.GetServicesWithRatesQueryHandler {
	return queries.NewGetServicesWithRatesQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateResolveDeliveryRateQueryHandler() queries.ResolveDeliveryRateQueryHandler {
	uow := c.uowFactory.Create()
	return queries.NewResolveDeliveryRateQueryHandler(uow.AgencyRepository(), uow.DeliveryRateRepository())
}

func (c *CompositionRoot) CreateGetOrderStatusSummaryQueryHandler() queries.GetOrderStatusSummaryQueryHandler {
	return queries.NewGetOrderStatusSummaryQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListParcelsQueryHandler() queries.ListParcelsQueryHandler {
	return queries.NewListParcelsQueryHandler(c.gormDB)
}

// CreateAgencyRepository exposes an untracked agency reader for visibility
// scoping at the HTTP boundary.
func (c *CompositionRoot) CreateAgencyRepository() ports.AgencyRepository {
	return c.uowFactory.Create().AgencyRepository()
}

// Close releases outbound adapter resources.
func (c *CompositionRoot) Close() error {
	return c.publisher.Close()
}

type FuncAgencyUoWFactory func() commands.AgencyUoW

func (f FuncAgencyUoWFactory) Create() commands.AgencyUoW {
	return f()
}

type FuncPricingUoWFactory func() commands.PricingUoW

func (f FuncPricingUoWFactory) Create() commands.PricingUoW {
	return f()
}

type FuncStatusUoWFactory func() commands.StatusUoW

func (f FuncStatusUoWFactory) Create() commands.StatusUoW {
	return f()
}
