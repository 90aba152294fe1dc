package exportsvc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"
	"github.com/xuri/excelize/v2"

	"github.com/charmakemoussa99-ops/gestion-de-l-cole/core/grade"
	"github.com/charmakemoussa99-ops/gestion-de-l-cole/core/report"
	"github.com/charmakemoussa99-ops/gestion-de-l-cole/core/student"
)

func testCard() report.Card {
	return report.Card{
		Student: student.Student{ID: "std1", Name: "Awe Lol", Matricule: "M-001", Level: "6e", Division: "A"},
		Term:    grade.Term1,
		Rows: []report.Row{
			{
				SubjectID:    "fr",
				Subject:      "Français",
				Scores:       "15 - 17",
				Average:      null.Float64From(16),
				ClassAverage: null.Float64From(14),
				Rank:         "1er",
				Remark:       "Très bien",
			},
			{SubjectID: "math", Subject: "Mathématiques", Rank: report.NoRank},
		},
		Summary: report.Summary{
			GeneralAverage:      null.Float64From(16),
			ClassGeneralAverage: null.Float64From(14),
			GeneralRank:         "1er",
		},
	}
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "bulletin-std1-1er trimestre.xlsx", Filename(testCard()))
}

func TestBuildWorkbook(t *testing.T) {
	buf, err := BuildWorkbook(testCard())
	require.NoError(t, err)
	require.NotZero(t, buf.Len())

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	require.NoError(t, err)
	require.NotEmpty(t, rows)

	var flat []string
	for _, row := range rows {
		flat = append(flat, row...)
	}
	assert.Contains(t, flat, "Awe Lol")
	assert.Contains(t, flat, "Français")
	assert.Contains(t, flat, "16.00")
	assert.Contains(t, flat, "1er")
	assert.Contains(t, flat, report.NoRank)
}
