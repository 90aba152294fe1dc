package echoapi

import (
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/charmakemoussa99-ops/gestion-de-l-cole/core/account"
)

// roleMiddleware only lets through callers whose token carries one of
// the given roles.
func roleMiddleware(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			claims, err := getContextClaims(ctx)
			if err != nil {
				return errors.Wrap(err, "getting context claims")
			}
			for _, role := range roles {
				if claims.Role == role {
					return next(ctx)
				}
			}
			return errHttpForbidden
		}
	}
}

func superAdminMiddleware() echo.MiddlewareFunc {
	return roleMiddleware(account.RoleSuperAdmin)
}

func principalMiddleware() echo.MiddlewareFunc {
	return roleMiddleware(account.RolePrincipal)
}

// staffMiddleware covers the whole school staff, principal included.
func staffMiddleware() echo.MiddlewareFunc {
	return roleMiddleware(account.RolePrincipal, account.RoleTeacher, account.RoleSupervisor)
}
