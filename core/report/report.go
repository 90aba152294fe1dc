package report

import (
	stderrors "errors"

	"github.com/volatiletech/null/v8"

	"github.com/charmakemoussa99-ops/gestion-de-l-cole/core"
	"github.com/charmakemoussa99-ops/gestion-de-l-cole/core/grade"
	"github.com/charmakemoussa99-ops/gestion-de-l-cole/core/school"
	"github.com/charmakemoussa99-ops/gestion-de-l-cole/core/student"
)

var errInvalidTerm = stderrors.New("invalid term")

type (
	// Row is one subject line on a report card.
	Row struct {
		SubjectID    string       `json:"subject_id"`
		Subject      string       `json:"subject"`
		Scores       string       `json:"scores"`
		Average      null.Float64 `json:"average"`
		ClassAverage null.Float64 `json:"class_average"`
		Rank         string       `json:"rank"`
		Remark       string       `json:"remark"`
		Competency   string       `json:"competency"`
	}

	// Summary is the closing line of a report card.
	Summary struct {
		GeneralAverage      null.Float64 `json:"general_average"`
		ClassGeneralAverage null.Float64 `json:"class_general_average"`
		GeneralRank         string       `json:"general_rank"`
	}

	// Card is a full report card for one student and one term.
	Card struct {
		Student student.Student `json:"student"`
		Term    string          `json:"term"`
		Rows    []Row           `json:"rows"`
		Summary Summary         `json:"summary"`
	}
)

// Assembler builds report cards from the tenant-visible repositories.
type Assembler struct {
	svc *school.Service
}

func NewAssembler(svc *school.Service) *Assembler {
	return &Assembler{svc: svc}
}

// Assemble builds the report card of one student for one term. Class
// benchmarks are recomputed on every call since grade data can change
// between calls; at a class of tens of students this stays cheap.
func (a *Assembler) Assemble(viewer null.String, studentID, term string) (Card, error) {
	if !grade.IsTerm(term) {
		return Card{}, core.NewValidationError(errInvalidTerm, core.FieldError{Field: "term", Error: errInvalidTerm.Error()})
	}

	st, err := a.svc.GetStudent(viewer, studentID)
	if err != nil {
		return Card{}, err
	}
	students, err := a.svc.Students(viewer)
	if err != nil {
		return Card{}, err
	}
	subjects, err := a.svc.Subjects(viewer)
	if err != nil {
		return Card{}, err
	}
	entries, err := a.svc.Grades(viewer)
	if err != nil {
		return Card{}, err
	}

	roster := make([]student.Student, 0, len(students))
	for _, other := range students {
		if other.InClass(st.Level, st.Division) {
			roster = append(roster, other)
		}
	}

	stats := ComputeClassStats(roster, subjects, entries, term)

	card := Card{
		Student: st,
		Term:    term,
		Rows:    make([]Row, 0, len(subjects)),
	}
	for _, sub := range subjects {
		row := Row{
			SubjectID:    sub.ID,
			Subject:      sub.Name,
			ClassAverage: stats.SubjectMeans[sub.ID],
			Rank:         NoRank,
		}
		for _, e := range entries {
			if e.Matches(st.ID, sub.ID, term) {
				row.Scores = e.DisplayScores()
				row.Average = e.Average
				row.Remark = e.Remark
				row.Competency = e.Competency
				break
			}
		}
		if row.Average.Valid {
			row.Rank = FormatRank(Rank(row.Average.Float64, stats.SubjectScores[sub.ID]))
		}
		card.Rows = append(card.Rows, row)
	}

	general := stats.GeneralByStudent[st.ID]
	card.Summary = Summary{
		GeneralAverage:      general,
		ClassGeneralAverage: stats.ClassGeneralAverage,
		GeneralRank:         NoRank,
	}
	if general.Valid {
		card.Summary.GeneralRank = FormatRank(Rank(general.Float64, stats.GeneralScores))
	}
	return card, nil
}
