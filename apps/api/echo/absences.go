package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/charmakemoussa99-ops/gestion-de-l-cole/core/absence"
	"github.com/charmakemoussa99-ops/gestion-de-l-cole/core/school"
)

type absenceApi struct {
	svc *school.Service
}

func registerAbsenceAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *school.Service) {
	api := absenceApi{svc: svc}

	ag := g.Group("/absences", jwt, staffMiddleware())
	ag.GET("", api.query)
	ag.POST("", api.create)
	ag.DELETE("/:id", api.destroy)
}

// Handlers

func (api *absenceApi) query(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	absences, err := api.svc.Absences(viewerOf(claims))
	if err != nil {
		return errors.Wrap(err, "querying absences")
	}
	if absences == nil {
		absences = []absence.Absence{}
	}

	// optional per-student filter
	if studentID := ctx.QueryParam("student_id"); studentID != "" {
		filtered := make([]absence.Absence, 0, len(absences))
		for _, abs := range absences {
			if abs.StudentID == studentID {
				filtered = append(filtered, abs)
			}
		}
		absences = filtered
	}

	return ctx.JSON(http.StatusOK, absences)
}

func (api *absenceApi) create(ctx echo.Context) error {
	var data absence.NewAbsence
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewAbsence")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	abs, err := api.svc.AddAbsence(viewerOf(claims), data)
	if err != nil {
		return errors.Wrap(err, "creating absence")
	}
	return ctx.JSON(http.StatusCreated, abs)
}

func (api *absenceApi) destroy(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	if err := api.svc.DeleteAbsence(viewerOf(claims), ctx.Param("id")); err != nil {
		if errors.Cause(err) == school.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "deleting absence")
	}
	return ctx.NoContent(http.StatusNoContent)
}
