package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/charmakemoussa99-ops/gestion-de-l-cole/core/grade"
	"github.com/charmakemoussa99-ops/gestion-de-l-cole/core/school"
)

type gradeApi struct {
	svc *school.Service
}

func registerGradeAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *school.Service) {
	api := gradeApi{svc: svc}

	gg := g.Group("/grades", jwt, staffMiddleware())
	gg.GET("", api.query)
	gg.PUT("", api.save)
	gg.DELETE("/:id", api.destroy)
}

// Handlers

func (api *gradeApi) query(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	entries, err := api.svc.Grades(viewerOf(claims))
	if err != nil {
		return errors.Wrap(err, "querying grades")
	}
	if entries == nil {
		entries = []grade.Entry{}
	}

	// optional triple filters, used by the grade entry screen
	studentID := ctx.QueryParam("student_id")
	subjectID := ctx.QueryParam("subject_id")
	term := ctx.QueryParam("term")
	if studentID != "" || subjectID != "" || term != "" {
		filtered := make([]grade.Entry, 0, len(entries))
		for _, e := range entries {
			if studentID != "" && e.StudentID != studentID {
				continue
			}
			if subjectID != "" && e.SubjectID != subjectID {
				continue
			}
			if term != "" && e.Term != term {
				continue
			}
			filtered = append(filtered, e)
		}
		entries = filtered
	}

	return ctx.JSON(http.StatusOK, entries)
}

// save replaces the grade entry of a (student, subject, term) triple
// wholesale. Saving an all-empty entry removes the stored one; the
// returned entry then has no ID.
func (api *gradeApi) save(ctx echo.Context) error {
	var data grade.NewEntry
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewEntry")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	entry, err := api.svc.SaveGrade(viewerOf(claims), data)
	if err != nil {
		return errors.Wrap(err, "saving grade entry")
	}
	return ctx.JSON(http.StatusOK, entry)
}

func (api *gradeApi) destroy(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	if err := api.svc.DeleteGrade(viewerOf(claims), ctx.Param("id")); err != nil {
		if errors.Cause(err) == school.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "deleting grade entry")
	}
	return ctx.NoContent(http.StatusNoContent)
}
