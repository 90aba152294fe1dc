package grade

import (
	"fmt"
	"strconv"
	"time"

	"github.com/volatiletech/null/v8"

	"github.com/charmakemoussa99-ops/gestion-de-l-cole/core"
)

// Terms
const (
	Term1 = "1er trimestre"
	Term2 = "2e trimestre"
	Term3 = "3e trimestre"
)

// Scores
const (
	ScoreSlots = 5
	ScoreMin   = 0
	ScoreMax   = 20
)

var (
	Terms = []string{Term1, Term2, Term3}

	invalidTermText  = "invalid term"
	invalidScoreText = fmt.Sprintf("scores must be numbers between %d and %d", ScoreMin, ScoreMax)
)

func IsTerm(s string) bool {
	for _, t := range Terms {
		if s == t {
			return true
		}
	}
	return false
}

// Entry holds the scores of one student in one subject for one term.
// At most one Entry exists per (student, subject, term); saving a new
// one replaces it entirely.
type Entry struct {
	ID         string                   `json:"id"`
	Owner      null.String              `json:"owner"`
	StudentID  string                   `json:"student_id"`
	SubjectID  string                   `json:"subject_id"`
	Term       string                   `json:"term"`
	Scores     [ScoreSlots]null.Float64 `json:"scores"`
	Average    null.Float64             `json:"average"`
	Remark     string                   `json:"remark"`
	Competency string                   `json:"competency"`
	CreatedAt  time.Time                `json:"created_at"` // UTC
}

func (e Entry) OwnerRef() null.String { return e.Owner }

// Matches reports whether the entry is keyed by the given triple.
func (e Entry) Matches(studentID, subjectID, term string) bool {
	return e.StudentID == studentID && e.SubjectID == subjectID && e.Term == term
}

// IsEmpty reports whether the entry carries no data at all.
// Empty entries are pruned, never persisted.
func (e Entry) IsEmpty() bool {
	for _, s := range e.Scores {
		if s.Valid {
			return false
		}
	}
	return !e.Average.Valid && e.Remark == "" && e.Competency == ""
}

// DisplayScores joins the present scores for display, e.g. "15 - 17".
func (e Entry) DisplayScores() string {
	var out string
	for _, s := range e.Scores {
		if !s.Valid {
			continue
		}
		if out != "" {
			out += " - "
		}
		out += strconv.FormatFloat(s.Float64, 'f', -1, 64)
	}
	return out
}

// AverageOf returns the mean of the present scores, or null when none
// is present.
func AverageOf(scores []null.Float64) null.Float64 {
	var sum float64
	var n int
	for _, s := range scores {
		if s.Valid {
			sum += s.Float64
			n++
		}
	}
	if n == 0 {
		return null.Float64{}
	}
	return null.Float64From(sum / float64(n))
}

// SubjectAverage looks up the stored average of the entry keyed by the
// given triple among the entries visible to the caller. The stored
// average is authoritative; it is not recomputed here. Null means no data.
func SubjectAverage(entries []Entry, studentID, subjectID, term string) null.Float64 {
	for _, e := range entries {
		if e.Matches(studentID, subjectID, term) {
			return e.Average
		}
	}
	return null.Float64{}
}

// ParseScore parses one raw score input. An empty string is an absent
// score; anything else must be a number within [ScoreMin, ScoreMax].
func ParseScore(raw string) (null.Float64, error) {
	raw = core.CleanString(raw)
	if raw == "" {
		return null.Float64{}, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v < ScoreMin || v > ScoreMax {
		return null.Float64{}, core.NewValidationError(nil, core.FieldError{Field: "scores", Error: invalidScoreText})
	}
	return null.Float64From(v), nil
}

// NewEntry contains the raw inputs needed to save a grade Entry.
// Scores holds up to five raw inputs; "" marks an absent score.
type NewEntry struct {
	StudentID  string   `json:"student_id" validate:"required"`
	SubjectID  string   `json:"subject_id" validate:"required"`
	Term       string   `json:"term" validate:"required"`
	Scores     []string `json:"scores" validate:"max=5"`
	Remark     string   `json:"remark"`
	Competency string   `json:"competency"`
}

func (ne *NewEntry) Validate() error {
	ne.StudentID = core.CleanString(ne.StudentID)
	ne.SubjectID = core.CleanString(ne.SubjectID)
	ne.Term = core.CleanString(ne.Term)
	ne.Remark = core.CleanString(ne.Remark)
	ne.Competency = core.CleanString(ne.Competency)

	if err := core.Validate.Struct(ne); err != nil {
		return err
	}
	if !IsTerm(ne.Term) {
		return core.NewValidationError(nil, core.FieldError{Field: "term", Error: invalidTermText})
	}
	if _, err := ne.ParseScores(); err != nil {
		return err
	}
	return nil
}

// ParseScores parses the raw score inputs into the five fixed slots.
func (ne *NewEntry) ParseScores() ([ScoreSlots]null.Float64, error) {
	var scores [ScoreSlots]null.Float64
	for i, raw := range ne.Scores {
		if i >= ScoreSlots {
			break
		}
		s, err := ParseScore(raw)
		if err != nil {
			return scores, err
		}
		scores[i] = s
	}
	return scores, nil
}
