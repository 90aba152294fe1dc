package echoapi

import (
	"fmt"
	"net/http"
	"net/mail"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/charmakemoussa99-ops/gestion-de-l-cole/core"
	"github.com/charmakemoussa99-ops/gestion-de-l-cole/core/report"
	"github.com/charmakemoussa99-ops/gestion-de-l-cole/core/school"
	exportsvc "github.com/charmakemoussa99-ops/gestion-de-l-cole/services/export"
)

type reportApi struct {
	reports  *report.Assembler
	emailSvc core.EmailService
}

func registerReportAPI(g *echo.Group, jwt echo.MiddlewareFunc, reports *report.Assembler, emailSvc core.EmailService) {
	api := reportApi{reports: reports, emailSvc: emailSvc}

	rg := g.Group("/reports", jwt, staffMiddleware())
	rg.GET("/:studentID", api.retrieve)
	rg.GET("/:studentID/xlsx", api.download)
	rg.POST("/:studentID/send", api.send)
}

// Handlers

func (api *reportApi) assemble(ctx echo.Context) (report.Card, error) {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return report.Card{}, errors.Wrap(err, "getting context claims")
	}

	card, err := api.reports.Assemble(viewerOf(claims), ctx.Param("studentID"), ctx.QueryParam("term"))
	if err != nil {
		if errors.Cause(err) == school.ErrNotFound {
			return report.Card{}, errHttpNotFound
		}
		return report.Card{}, err
	}
	return card, nil
}

func (api *reportApi) retrieve(ctx echo.Context) error {
	card, err := api.assemble(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, card)
}

func (api *reportApi) download(ctx echo.Context) error {
	card, err := api.assemble(ctx)
	if err != nil {
		return err
	}

	buf, err := exportsvc.BuildWorkbook(card)
	if err != nil {
		return errors.Wrap(err, "building workbook")
	}

	ctx.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf("attachment; filename=%q", exportsvc.Filename(card)))
	return ctx.Blob(http.StatusOK, exportsvc.ContentType, buf.Bytes())
}

// send emails the report card workbook to the student's guardian.
func (api *reportApi) send(ctx echo.Context) error {
	card, err := api.assemble(ctx)
	if err != nil {
		return err
	}
	if card.Student.GuardianEmail == "" {
		return core.NewValidationError(nil,
			core.FieldError{Field: "guardian_email", Error: "aucune adresse email du tuteur"})
	}

	buf, err := exportsvc.BuildWorkbook(card)
	if err != nil {
		return errors.Wrap(err, "building workbook")
	}

	api.emailSvc.SendMessages(&core.EmailMessage{
		To:      []mail.Address{{Name: card.Student.GuardianName, Address: card.Student.GuardianEmail}},
		Subject: fmt.Sprintf("Bulletin de %s - %s", card.Student.Name, card.Term),
		Body: fmt.Sprintf("Bonjour,\n\nVeuillez trouver ci-joint le bulletin de %s pour le %s.\n\nCordialement,\n%s",
			card.Student.Name, card.Term, core.Conf.AppName),
		Attachments: []core.Attachment{{
			Content:     buf,
			ContentType: exportsvc.ContentType,
			Filename:    exportsvc.Filename(card),
		}},
	})

	return ctx.JSON(http.StatusOK, SuccessResponse{Success: "Le bulletin a été envoyé au tuteur."})
}
