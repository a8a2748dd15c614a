package http

import (
	"net/http"
	"strconv"

	"maintenance/internal/core/domain/model/personnel"
	"maintenance/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// The gateway in front of the service authenticates the caller and forwards
// the identity in these headers.
const (
	HeaderPersonnelID   = "X-Personnel-Id"
	HeaderPersonnelRole = "X-Personnel-Role"
)

const actorKey = "actor"

var (
	staff = []personnel.Role{
		personnel.RoleAdmin, personnel.RoleManager, personnel.RoleEngineer,
		personnel.RoleSupervisor, personnel.RoleTechnician,
	}
	editors = []personnel.Role{personnel.RoleAdmin, personnel.RoleManager, personnel.RoleEngineer}
)

// Authenticate builds the actor from the identity headers.
func Authenticate() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			header := ctx.Request().Header
			id, err := strconv.ParseInt(header.Get(HeaderPersonnelID), 10, 64)
			if err != nil {
				return reject(ctx, http.StatusUnauthorized, errs.KindForbidden, "missing or malformed "+HeaderPersonnelID)
			}
			role, err := personnel.ParseRole(header.Get(HeaderPersonnelRole))
			if err != nil {
				return reject(ctx, http.StatusUnauthorized, errs.KindForbidden, err.Error())
			}
			actor, err := personnel.NewActor(id, role)
			if err != nil {
				return reject(ctx, http.StatusUnauthorized, errs.KindForbidden, err.Error())
			}

			ctx.Set(actorKey, actor)
			return next(ctx)
		}
	}
}

// RequireRoles turns away actors whose role may never reach the route. The
// use cases still run their own, finer checks.
func RequireRoles(roles ...personnel.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			actor, ok := actorFrom(ctx)
			if !ok {
				return reject(ctx, http.StatusUnauthorized, errs.KindForbidden, "no authenticated actor")
			}
			if !actor.Role().In(roles...) {
				return reject(ctx, http.StatusForbidden, errs.KindForbidden,
					errs.NewForbiddenError(actor, ctx.Request().Method+" "+ctx.Path()).Error())
			}
			return next(ctx)
		}
	}
}

func actorFrom(ctx echo.Context) (personnel.Actor, bool) {
	actor, ok := ctx.Get(actorKey).(personnel.Actor)
	return actor, ok
}
