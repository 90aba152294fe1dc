package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/charmakemoussa99-ops/gestion-de-l-cole/core/account"
	"github.com/charmakemoussa99-ops/gestion-de-l-cole/core/school"
)

type accountApi struct {
	svc *school.Service
}

func registerAccountAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *school.Service) {
	api := accountApi{svc: svc}

	ag := g.Group("/accounts")

	// un-authed endpoints
	ag.POST("/login", api.login)

	// authed endpoints
	sg := ag.Group("", jwt)
	sg.GET("", api.query, principalMiddleware())
	sg.POST("", api.create, principalMiddleware())
	sg.DELETE("/:id", api.destroy, principalMiddleware())
	sg.POST("/claim", api.claim, principalMiddleware())

	// principal accounts are managed by the super admin only
	pg := sg.Group("/principals", superAdminMiddleware())
	pg.GET("", api.queryPrincipals)
	pg.POST("", api.createPrincipal)
}

// Handlers

func (api *accountApi) login(ctx echo.Context) error {
	var data LoginRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to LoginRequest")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	claims, err := authenticate(data.Username, data.Password, api.svc)
	if err != nil {
		return err
	}
	token, err := GenerateToken(claims)
	if err != nil {
		return errors.Wrap(err, "generating token")
	}

	return ctx.JSON(http.StatusOK, LoginResponse{Token: token})
}

func (api *accountApi) query(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	accs, err := api.svc.Accounts(viewerOf(claims))
	if err != nil {
		return errors.Wrap(err, "querying accounts")
	}

	pub := make([]account.Public, 0, len(accs))
	for _, acc := range accs {
		pub = append(pub, acc.Public())
	}
	return ctx.JSON(http.StatusOK, pub)
}

func (api *accountApi) create(ctx echo.Context) error {
	var data account.NewAccount
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewAccount")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	acc, err := api.svc.AddStaff(viewerOf(claims), data)
	if err != nil {
		return errors.Wrap(err, "creating staff account")
	}

	return ctx.JSON(http.StatusCreated, acc.Public())
}

func (api *accountApi) destroy(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	// Say No to Suicide! callers cannot delete themselves
	if ctx.Param("id") == claims.Subject {
		return errHttpForbidden
	}

	if err := api.svc.DeleteAccount(viewerOf(claims), ctx.Param("id")); err != nil {
		if errors.Cause(err) == school.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "deleting account")
	}
	return ctx.NoContent(http.StatusNoContent)
}

// claim stamps every unowned record in the shared document with the
// calling principal's tenant identity.
func (api *accountApi) claim(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	n, err := api.svc.ClaimUnowned(claims.Subject)
	if err != nil {
		return errors.Wrap(err, "claiming unowned records")
	}
	return ctx.JSON(http.StatusOK, CountResponse{Count: n})
}

func (api *accountApi) queryPrincipals(ctx echo.Context) error {
	accs, err := api.svc.Principals()
	if err != nil {
		return errors.Wrap(err, "querying principals")
	}

	pub := make([]account.Public, 0, len(accs))
	for _, acc := range accs {
		pub = append(pub, acc.Public())
	}
	return ctx.JSON(http.StatusOK, pub)
}

func (api *accountApi) createPrincipal(ctx echo.Context) error {
	var data account.NewAccount
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewAccount")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	acc, err := api.svc.AddPrincipal(data)
	if err != nil {
		return errors.Wrap(err, "creating principal account")
	}

	return ctx.JSON(http.StatusCreated, acc.Public())
}
