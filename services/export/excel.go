package exportsvc

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"
	"github.com/xuri/excelize/v2"

	"github.com/charmakemoussa99-ops/gestion-de-l-cole/core/report"
)

const sheetName = "Bulletin"

// ContentType is the MIME type of the generated workbooks.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Filename names the workbook for one report card.
func Filename(card report.Card) string {
	return fmt.Sprintf("bulletin-%s-%s.xlsx", card.Student.ID, card.Term)
}

// BuildWorkbook renders a report card as an Excel workbook: a header,
// one row per subject and the summary row.
func BuildWorkbook(card report.Card) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, errors.Wrap(err, "renaming sheet")
	}

	// header
	setRow(f, 1, "Bulletin de notes", "", "", "", "", "", "")
	setRow(f, 2, "Élève", card.Student.Name, "Matricule", card.Student.Matricule, "", "", "")
	setRow(f, 3, "Classe", classLabel(card), "Trimestre", card.Term, "", "", "")

	// table header
	setRow(f, 5, "Matière", "Notes", "Moyenne", "Moyenne classe", "Rang", "Appréciation", "Compétence")

	row := 6
	for _, r := range card.Rows {
		setRow(f, row, r.Subject, r.Scores, formatAvg(r.Average), formatAvg(r.ClassAverage), r.Rank, r.Remark, r.Competency)
		row++
	}

	row++
	setRow(f, row, "Moyenne générale", formatAvg(card.Summary.GeneralAverage),
		"Moyenne générale classe", formatAvg(card.Summary.ClassGeneralAverage),
		"Rang", card.Summary.GeneralRank, "")

	buf, err := f.WriteToBuffer()
	return buf, errors.Wrap(err, "writing workbook")
}

func setRow(f *excelize.File, row int, values ...string) {
	for i, v := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			continue
		}
		_ = f.SetCellValue(sheetName, cell, v)
	}
}

func classLabel(card report.Card) string {
	if card.Student.Division == "" {
		return card.Student.Level
	}
	return card.Student.Level + " " + card.Student.Division
}

func formatAvg(avg null.Float64) string {
	if !avg.Valid {
		return report.NoRank
	}
	return strconv.FormatFloat(avg.Float64, 'f', 2, 64)
}
