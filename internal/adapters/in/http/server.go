package http

import (
	"log/slog"
	"net/http"

	"maintenance/internal/core/application/usecases/commands"
	"maintenance/internal/core/application/usecases/queries"
	"maintenance/internal/core/domain/model/personnel"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handlers are the use cases the API exposes.
type Handlers struct {
	CreateClient        commands.CreateClientCommandHandler
	ReconcileClient     commands.ReconcileClientHierarchyCommandHandler
	DeleteClient        commands.DeleteClientCommandHandler
	CreateOrder         commands.CreateOrderCommandHandler
	UpdateOrder         commands.UpdateOrderCommandHandler
	RequestFinalization commands.RequestFinalizationCommandHandler
	AdminReview         commands.AdminReviewCommandHandler
	FinalApproval       commands.FinalApprovalCommandHandler
	CancelOrder         commands.CancelOrderCommandHandler
	DeleteOrderHard     commands.DeleteOrderHardCommandHandler
	CreateFieldTest     commands.CreateFieldTestCommandHandler
	UpdateFieldTest     commands.UpdateFieldTestCommandHandler
	DeleteFieldTest     commands.DeleteFieldTestCommandHandler
	GetClientTree       queries.GetClientTreeQueryHandler
	GetOrder            queries.GetOrderQueryHandler
	ListOrders          queries.ListOrdersQueryHandler
}

// Server maps HTTP requests onto the use cases.
type Server struct {
	h      Handlers
	logger *slog.Logger
}

func NewServer(h Handlers, logger *slog.Logger) *Server {
	return &Server{
		h:      h,
		logger: logger.With("component", "http"),
	}
}

// Router builds the echo instance with every route registered.
func (s *Server) Router() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = NewRequestValidator()
	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		HandleError: true,
		LogValuesFunc: func(ctx echo.Context, v middleware.RequestLoggerValues) error {
			s.logger.InfoContext(ctx.Request().Context(), "Request",
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency,
			)
			return nil
		},
	}))

	e.GET("/health", s.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := e.Group("/api/v1", Authenticate())

	clients := api.Group("/clients", RequireRoles(editors...))
	clients.POST("", s.CreateClient)
	clients.GET("/:clientId", s.GetClientTree)
	clients.PUT("/:clientId", s.ReconcileClient)
	clients.DELETE("/:clientId", s.DeleteClient)

	orders := api.Group("/orders")
	orders.GET("", s.ListOrders, RequireRoles(staff...))
	orders.POST("", s.CreateOrder, RequireRoles(editors...))
	orders.GET("/by-number/:number", s.GetOrderByNumber, RequireRoles(staff...))
	orders.GET("/:orderId", s.GetOrder, RequireRoles(staff...))
	orders.PATCH("/:orderId", s.UpdateOrder, RequireRoles(
		personnel.RoleAdmin, personnel.RoleManager, personnel.RoleEngineer, personnel.RoleSupervisor,
	))
	orders.DELETE("/:orderId", s.CancelOrDeleteOrder, RequireRoles(editors...))
	orders.POST("/:orderId/request-finalization", s.RequestFinalization, RequireRoles(
		personnel.RoleSupervisor, personnel.RoleManager, personnel.RoleAdmin,
	))
	orders.POST("/:orderId/review", s.AdminReview, RequireRoles(personnel.RoleAdmin))
	orders.POST("/:orderId/approve", s.FinalApproval, RequireRoles(
		personnel.RoleEngineer, personnel.RoleManager, personnel.RoleAdmin,
	))

	fieldTests := api.Group("/field-tests")
	fieldTests.POST("", s.CreateFieldTest, RequireRoles(staff...))
	fieldTests.PUT("/:fieldTestId", s.UpdateFieldTest, RequireRoles(
		personnel.RoleAdmin, personnel.RoleManager, personnel.RoleEngineer, personnel.RoleTechnician,
	))
	fieldTests.DELETE("/:fieldTestId", s.DeleteFieldTest, RequireRoles(personnel.RoleAdmin))

	return e
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Healthy")
}
