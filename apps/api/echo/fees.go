package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/charmakemoussa99-ops/gestion-de-l-cole/core/fee"
	"github.com/charmakemoussa99-ops/gestion-de-l-cole/core/school"
)

type feeApi struct {
	svc *school.Service
}

func registerFeeAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *school.Service) {
	api := feeApi{svc: svc}

	fg := g.Group("/fees", jwt, staffMiddleware())
	fg.GET("", api.query)
	fg.POST("", api.create)
	fg.DELETE("/:id", api.destroy)
}

// Handlers

func (api *feeApi) query(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	fees, err := api.svc.Fees(viewerOf(claims))
	if err != nil {
		return errors.Wrap(err, "querying fees")
	}
	if fees == nil {
		fees = []fee.Fee{}
	}

	// optional per-student filter
	if studentID := ctx.QueryParam("student_id"); studentID != "" {
		filtered := make([]fee.Fee, 0, len(fees))
		for _, f := range fees {
			if f.StudentID == studentID {
				filtered = append(filtered, f)
			}
		}
		fees = filtered
	}

	return ctx.JSON(http.StatusOK, fees)
}

func (api *feeApi) create(ctx echo.Context) error {
	var data fee.NewFee
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewFee")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	f, err := api.svc.AddFee(viewerOf(claims), data)
	if err != nil {
		return errors.Wrap(err, "creating fee payment")
	}
	return ctx.JSON(http.StatusCreated, f)
}

func (api *feeApi) destroy(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	if err := api.svc.DeleteFee(viewerOf(claims), ctx.Param("id")); err != nil {
		if errors.Cause(err) == school.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "deleting fee payment")
	}
	return ctx.NoContent(http.StatusNoContent)
}
