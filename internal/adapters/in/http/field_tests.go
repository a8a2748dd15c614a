package http

import (
	"net/http"

	"maintenance/internal/core/application/usecases/commands"
	"maintenance/internal/core/domain/model/client"
	"maintenance/internal/core/domain/model/kernel"
	"maintenance/internal/core/domain/model/order"
	"maintenance/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// CreateFieldTest handles POST /api/v1/field-tests - records a measurement
// sheet for a component in the scope of the order with the given number.
func (s *Server) CreateFieldTest(ctx echo.Context) error {
	actor, _ := actorFrom(ctx)

	var req CreateFieldTestRequest
	if err := bind(ctx, &req); err != nil {
		return s.fail(ctx, err)
	}
	number, err := order.ParseNumber(req.OrderNumber)
	if err != nil {
		return s.fail(ctx, err)
	}
	componentID, err := kernel.UUIDFromString(req.ComponentID)
	if err != nil {
		return s.fail(ctx, errs.NewValueIsInvalidErrorWithCause("componentId", err))
	}
	kind, err := client.ParseKind(req.Kind)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewCreateFieldTestCommand(actor, number, componentID, kind,
		record(req.Data, req.PerformedAt, req.ResponsibleID))
	if err != nil {
		return s.fail(ctx, err)
	}
	created, err := s.h.CreateFieldTest.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, created)
}

// UpdateFieldTest handles PUT /api/v1/field-tests/:fieldTestId.
func (s *Server) UpdateFieldTest(ctx echo.Context) error {
	actor, _ := actorFrom(ctx)
	fieldTestID, err := pathUUID(ctx, "fieldTestId")
	if err != nil {
		return s.fail(ctx, err)
	}

	var req UpdateFieldTestRequest
	if err = bind(ctx, &req); err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewUpdateFieldTestCommand(actor, fieldTestID,
		record(req.Data, req.PerformedAt, req.ResponsibleID))
	if err != nil {
		return s.fail(ctx, err)
	}
	updated, err := s.h.UpdateFieldTest.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, updated)
}

// DeleteFieldTest handles DELETE /api/v1/field-tests/:fieldTestId.
func (s *Server) DeleteFieldTest(ctx echo.Context) error {
	actor, _ := actorFrom(ctx)
	fieldTestID, err := pathUUID(ctx, "fieldTestId")
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewDeleteFieldTestCommand(actor, fieldTestID)
	if err != nil {
		return s.fail(ctx, err)
	}
	if err = s.h.DeleteFieldTest.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}
