package http

import (
	"net/http"
	"strings"
	"time"

	"maintenance/internal/core/application/usecases/commands"
	"maintenance/internal/core/application/usecases/queries"
	"maintenance/internal/core/domain/model/kernel"
	"maintenance/internal/core/domain/model/order"
	"maintenance/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// CancelOrDeleteResponse tells whether the order was purged or cancelled.
// Order holds the state before the purge, or the cancelled order.
type CancelOrDeleteResponse struct {
	Deleted bool           `json:"deleted"`
	Order   order.Snapshot `json:"order"`
}

// ListOrders handles GET /api/v1/orders.
//
// Query parameters: status (repeatable or comma separated), clientId,
// serviceType, scheduledFrom and scheduledTo (RFC 3339), search, page, pageSize.
func (s *Server) ListOrders(ctx echo.Context) error {
	actor, _ := actorFrom(ctx)

	var (
		statuses                   []string
		clientID, serviceType      string
		search                     string
		scheduledFrom, scheduledTo time.Time
		page, pageSize             int
	)
	if err := echo.QueryParamsBinder(ctx).
		Strings("status", &statuses).
		String("clientId", &clientID).
		String("serviceType", &serviceType).
		Time("scheduledFrom", &scheduledFrom, time.RFC3339).
		Time("scheduledTo", &scheduledTo, time.RFC3339).
		String("search", &search).
		Int("page", &page).
		Int("pageSize", &pageSize).
		BindError(); err != nil {
		return s.fail(ctx, errs.NewValueIsInvalidErrorWithCause("query", err))
	}

	filter := queries.ListOrdersFilter{
		ServiceType: order.ServiceType(serviceType),
		Search:      search,
	}
	for _, raw := range statuses {
		for _, part := range strings.Split(raw, ",") {
			if part = strings.TrimSpace(part); part == "" {
				continue
			}
			status, err := order.ParseStatus(part)
			if err != nil {
				return s.fail(ctx, err)
			}
			filter.Statuses = append(filter.Statuses, status)
		}
	}
	if clientID != "" {
		id, err := kernel.UUIDFromString(clientID)
		if err != nil {
			return s.fail(ctx, errs.NewValueIsInvalidErrorWithCause("clientId", err))
		}
		filter.ClientID = &id
	}
	if !scheduledFrom.IsZero() {
		filter.ScheduledFrom = &scheduledFrom
	}
	if !scheduledTo.IsZero() {
		filter.ScheduledTo = &scheduledTo
	}

	query, err := queries.NewListOrdersQuery(actor, filter, page, pageSize)
	if err != nil {
		return s.fail(ctx, err)
	}
	response, err := s.h.ListOrders.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, response)
}

// CreateOrder handles POST /api/v1/orders - opens an order with the next number of the month.
func (s *Server) CreateOrder(ctx echo.Context) error {
	actor, _ := actorFrom(ctx)

	var req CreateOrderRequest
	if err := bind(ctx, &req); err != nil {
		return s.fail(ctx, err)
	}
	team, err := req.team()
	if err != nil {
		return s.fail(ctx, err)
	}
	scope, err := req.scope()
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewCreateOrderCommand(actor, req.details(), team, scope)
	if err != nil {
		return s.fail(ctx, err)
	}
	created, err := s.h.CreateOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, created)
}

// GetOrder handles GET /api/v1/orders/:orderId.
func (s *Server) GetOrder(ctx echo.Context) error {
	actor, _ := actorFrom(ctx)
	orderID, err := pathUUID(ctx, "orderId")
	if err != nil {
		return s.fail(ctx, err)
	}

	query, err := queries.NewGetOrderQuery(actor, orderID)
	if err != nil {
		return s.fail(ctx, err)
	}
	return s.getOrder(ctx, query)
}

// GetOrderByNumber handles GET /api/v1/orders/by-number/:number.
func (s *Server) GetOrderByNumber(ctx echo.Context) error {
	actor, _ := actorFrom(ctx)
	number, err := order.ParseNumber(ctx.Param("number"))
	if err != nil {
		return s.fail(ctx, err)
	}

	query, err := queries.NewGetOrderByNumberQuery(actor, number)
	if err != nil {
		return s.fail(ctx, err)
	}
	return s.getOrder(ctx, query)
}

func (s *Server) getOrder(ctx echo.Context, query queries.GetOrderQuery) error {
	found, err := s.h.GetOrder.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, found)
}

// UpdateOrder handles PATCH /api/v1/orders/:orderId.
func (s *Server) UpdateOrder(ctx echo.Context) error {
	actor, _ := actorFrom(ctx)
	orderID, err := pathUUID(ctx, "orderId")
	if err != nil {
		return s.fail(ctx, err)
	}

	var req UpdateOrderRequest
	if err = bind(ctx, &req); err != nil {
		return s.fail(ctx, err)
	}
	patch, err := req.patch()
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewUpdateOrderCommand(actor, orderID, patch)
	if err != nil {
		return s.fail(ctx, err)
	}
	updated, err := s.h.UpdateOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, updated)
}

// CancelOrDeleteOrder handles DELETE /api/v1/orders/:orderId. Admins purge
// the order; everyone else allowed here cancels it.
func (s *Server) CancelOrDeleteOrder(ctx echo.Context) error {
	actor, _ := actorFrom(ctx)
	orderID, err := pathUUID(ctx, "orderId")
	if err != nil {
		return s.fail(ctx, err)
	}
	if err = order.AuthorizeCancelOrDelete(actor); err != nil {
		return s.fail(ctx, err)
	}

	if order.PrefersHardDelete(actor) {
		cmd, cmdErr := commands.NewDeleteOrderHardCommand(actor, orderID)
		if cmdErr != nil {
			return s.fail(ctx, cmdErr)
		}
		deleted, handleErr := s.h.DeleteOrderHard.Handle(ctx.Request().Context(), cmd)
		if handleErr != nil {
			return s.fail(ctx, handleErr)
		}
		return ctx.JSON(http.StatusOK, CancelOrDeleteResponse{Deleted: true, Order: deleted})
	}

	cmd, err := commands.NewCancelOrderCommand(actor, orderID)
	if err != nil {
		return s.fail(ctx, err)
	}
	cancelled, err := s.h.CancelOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, CancelOrDeleteResponse{Deleted: false, Order: cancelled})
}

// RequestFinalization handles POST /api/v1/orders/:orderId/request-finalization.
func (s *Server) RequestFinalization(ctx echo.Context) error {
	actor, _ := actorFrom(ctx)
	orderID, err := pathUUID(ctx, "orderId")
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewRequestFinalizationCommand(actor, orderID)
	if err != nil {
		return s.fail(ctx, err)
	}
	updated, err := s.h.RequestFinalization.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, updated)
}

// AdminReview handles POST /api/v1/orders/:orderId/review.
func (s *Server) AdminReview(ctx echo.Context) error {
	actor, _ := actorFrom(ctx)
	orderID, err := pathUUID(ctx, "orderId")
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewAdminReviewCommand(actor, orderID)
	if err != nil {
		return s.fail(ctx, err)
	}
	updated, err := s.h.AdminReview.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, updated)
}

// FinalApproval handles POST /api/v1/orders/:orderId/approve.
func (s *Server) FinalApproval(ctx echo.Context) error {
	actor, _ := actorFrom(ctx)
	orderID, err := pathUUID(ctx, "orderId")
	if err != nil {
		return s.fail(ctx, err)
	}

	var req FinalApprovalRequest
	if err = bind(ctx, &req); err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewFinalApprovalCommand(actor, orderID, req.Conclusion, req.Recommendations)
	if err != nil {
		return s.fail(ctx, err)
	}
	updated, err := s.h.FinalApproval.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, updated)
}
