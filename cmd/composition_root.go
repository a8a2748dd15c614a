package cmd

import (
	"log/slog"

	httpadapter "maintenance/internal/adapters/in/http"
	"maintenance/internal/adapters/out/metrics"
	"maintenance/internal/adapters/out/postgres"
	"maintenance/internal/adapters/out/postgres/clientrepo"
	"maintenance/internal/adapters/out/postgres/orderrepo"
	"maintenance/internal/core/application/usecases/commands"
	"maintenance/internal/core/application/usecases/queries"
	"maintenance/internal/core/domain/model/kernel"
	"maintenance/internal/core/domain/services"
	"maintenance/internal/core/ports"
	"maintenance/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	cfg        Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	clock      kernel.Clock
	metrics    ports.MetricsRecorder
	logger     *slog.Logger
}

func NewCompositionRoot(cfg Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	return CompositionRoot{
		cfg:        cfg,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		clock:      kernel.SystemClock{},
		metrics:    metrics.NewPrometheusRecorder(),
		logger:     logger,
	}
}

func (c *CompositionRoot) uows() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) clientUoWs() commands.ClientUoWFactory {
	return FuncClientUoWFactory(func() commands.ClientUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) orderUoWs() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) hierarchyReconciler() services.HierarchyReconciler {
	return services.NewHierarchyReconciler(services.NewIdentifierClassifier())
}

func (c *CompositionRoot) CreateCreateClientCommandHandler() commands.CreateClientCommandHandler {
	return commands.NewCreateClientCommandHandler(c.clientUoWs(), c.hierarchyReconciler(), c.clock)
}

func (c *CompositionRoot) CreateReconcileClientHierarchyCommandHandler() commands.ReconcileClientHierarchyCommandHandler {
	return commands.NewReconcileClientHierarchyCommandHandler(c.clientUoWs(), c.hierarchyReconciler(), c.clock)
}

func (c *CompositionRoot) CreateDeleteClientCommandHandler() commands.DeleteClientCommandHandler {
	return commands.NewDeleteClientCommandHandler(c.clientUoWs(), c.clock)
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.uows(), c.clock, c.metrics, c.logger, c.cfg.OrderNumberMaxAttempts)
}

func (c *CompositionRoot) CreateUpdateOrderCommandHandler() commands.UpdateOrderCommandHandler {
	return commands.NewUpdateOrderCommandHandler(c.uows(), c.clock, c.metrics)
}

func (c *CompositionRoot) CreateRequestFinalizationCommandHandler() commands.RequestFinalizationCommandHandler {
	return commands.NewRequestFinalizationCommandHandler(c.orderUoWs(), c.clock, c.metrics)
}

func (c *CompositionRoot) CreateAdminReviewCommandHandler() commands.AdminReviewCommandHandler {
	return commands.NewAdminReviewCommandHandler(c.orderUoWs(), c.clock, c.metrics)
}

func (c *CompositionRoot) CreateFinalApprovalCommandHandler() commands.FinalApprovalCommandHandler {
	return commands.NewFinalApprovalCommandHandler(c.orderUoWs(), c.clock, c.metrics)
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	return commands.NewCancelOrderCommandHandler(c.orderUoWs(), c.clock, c.metrics)
}

func (c *CompositionRoot) CreateDeleteOrderHardCommandHandler() commands.DeleteOrderHardCommandHandler {
	return commands.NewDeleteOrderHardCommandHandler(c.orderUoWs(), c.clock, c.metrics)
}

func (c *CompositionRoot) CreateCreateFieldTestCommandHandler() commands.CreateFieldTestCommandHandler {
	return commands.NewCreateFieldTestCommandHandler(c.uows(), c.clock)
}

func (c *CompositionRoot) CreateUpdateFieldTestCommandHandler() commands.UpdateFieldTestCommandHandler {
	return commands.NewUpdateFieldTestCommandHandler(c.uows(), c.clock)
}

func (c *CompositionRoot) CreateDeleteFieldTestCommandHandler() commands.DeleteFieldTestCommandHandler {
	return commands.NewDeleteFieldTestCommandHandler(c.uows(), c.clock)
}

func (c *CompositionRoot) CreateGetClientTreeQueryHandler() queries.GetClientTreeQueryHandler {
	return queries.NewGetClientTreeQueryHandler(func() ports.ClientRepository {
		return clientrepo.NewGormClientRepository(c.gormDB)
	})
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(func() ports.OrderRepository {
		return orderrepo.NewGormOrderRepository(c.gormDB)
	})
}

func (c *CompositionRoot) CreateListOrdersQueryHandler() queries.ListOrdersQueryHandler {
	return queries.NewListOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateCountOrdersByStatusQueryHandler() queries.CountOrdersByStatusQueryHandler {
	return queries.NewCountOrdersByStatusQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateHTTPServer() *httpadapter.Server {
	return httpadapter.NewServer(httpadapter.Handlers{
		CreateClient:        c.CreateCreateClientCommandHandler(),
		ReconcileClient:     c.CreateReconcileClientHierarchyCommandHandler(),
		DeleteClient:        c.CreateDeleteClientCommandHandler(),
		CreateOrder:         c.CreateCreateOrderCommandHandler(),
		UpdateOrder:         c.CreateUpdateOrderCommandHandler(),
		RequestFinalization: c.CreateRequestFinalizationCommandHandler(),
		AdminReview:         c.CreateAdminReviewCommandHandler(),
		FinalApproval:       c.CreateFinalApprovalCommandHandler(),
		CancelOrder:         c.CreateCancelOrderCommandHandler(),
		DeleteOrderHard:     c.CreateDeleteOrderHardCommandHandler(),
		CreateFieldTest:     c.CreateCreateFieldTestCommandHandler(),
		UpdateFieldTest:     c.CreateUpdateFieldTestCommandHandler(),
		DeleteFieldTest:     c.CreateDeleteFieldTestCommandHandler(),
		GetClientTree:       c.CreateGetClientTreeQueryHandler(),
		GetOrder:            c.CreateGetOrderQueryHandler(),
		ListOrders:          c.CreateListOrdersQueryHandler(),
	}, c.logger)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.CreateCountOrdersByStatusQueryHandler(), c.metrics, c.cfg.BacklogJobSpec, c.logger)
}

type FuncClientUoWFactory func() commands.ClientUoW

func (f FuncClientUoWFactory) Create() commands.ClientUoW {
	return f()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
