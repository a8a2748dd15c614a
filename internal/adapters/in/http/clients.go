package http

import (
	"net/http"

	"maintenance/internal/core/application/usecases/commands"
	"maintenance/internal/core/application/usecases/queries"
	"maintenance/internal/core/domain/model/kernel"
	"maintenance/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

func pathUUID(ctx echo.Context, name string) (kernel.UUID, error) {
	id, err := kernel.UUIDFromString(ctx.Param(name))
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return id, nil
}

// CreateClient handles POST /api/v1/clients - registers a client with its hierarchy.
func (s *Server) CreateClient(ctx echo.Context) error {
	actor, _ := actorFrom(ctx)

	var req ClientRequest
	if err := bind(ctx, &req); err != nil {
		return s.fail(ctx, err)
	}
	drafts, err := req.drafts()
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewCreateClientCommand(actor, req.profile(), drafts)
	if err != nil {
		return s.fail(ctx, err)
	}
	tree, err := s.h.CreateClient.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, tree)
}

// GetClientTree handles GET /api/v1/clients/:clientId.
func (s *Server) GetClientTree(ctx echo.Context) error {
	clientID, err := pathUUID(ctx, "clientId")
	if err != nil {
		return s.fail(ctx, err)
	}
	query, err := queries.NewGetClientTreeQuery(clientID)
	if err != nil {
		return s.fail(ctx, err)
	}
	tree, err := s.h.GetClientTree.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, tree)
}

// ReconcileClient handles PUT /api/v1/clients/:clientId - the body is the
// desired hierarchy; anything persisted and not submitted is removed.
func (s *Server) ReconcileClient(ctx echo.Context) error {
	actor, _ := actorFrom(ctx)
	clientID, err := pathUUID(ctx, "clientId")
	if err != nil {
		return s.fail(ctx, err)
	}

	var req ClientRequest
	if err = bind(ctx, &req); err != nil {
		return s.fail(ctx, err)
	}
	drafts, err := req.drafts()
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewReconcileClientHierarchyCommand(actor, clientID, req.profile(), drafts)
	if err != nil {
		return s.fail(ctx, err)
	}
	tree, err := s.h.ReconcileClient.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, tree)
}

// DeleteClient handles DELETE /api/v1/clients/:clientId.
func (s *Server) DeleteClient(ctx echo.Context) error {
	actor, _ := actorFrom(ctx)
	clientID, err := pathUUID(ctx, "clientId")
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewDeleteClientCommand(actor, clientID)
	if err != nil {
		return s.fail(ctx, err)
	}
	if err = s.h.DeleteClient.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}
