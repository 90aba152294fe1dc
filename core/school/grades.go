package school

import (
	"github.com/volatiletech/null/v8"

	"github.com/charmakemoussa99-ops/gestion-de-l-cole/core/grade"
)

// Grades lists the grade entries visible to the viewer.
func (s *Service) Grades(viewer null.String) ([]grade.Entry, error) {
	doc, err := s.load()
	if err != nil {
		return nil, err
	}
	return Scope(viewer, doc.Grades), nil
}

// SaveGrade upserts the entry for (student, subject, term): any
// existing entry for the triple is replaced entirely, last write wins.
// An entry that ends up with no score, no remark and no competency
// note is pruned instead of persisted; the returned Entry then has an
// empty ID.
func (s *Service) SaveGrade(viewer null.String, ne grade.NewEntry) (grade.Entry, error) {
	tenant, err := requireTenant(viewer)
	if err != nil {
		return grade.Entry{}, err
	}
	if err := ne.Validate(); err != nil {
		return grade.Entry{}, err
	}
	scores, err := ne.ParseScores()
	if err != nil {
		return grade.Entry{}, err
	}

	doc, err := s.load()
	if err != nil {
		return grade.Entry{}, err
	}

	out := make([]grade.Entry, 0, len(doc.Grades)+1)
	for _, e := range doc.Grades {
		if e.Matches(ne.StudentID, ne.SubjectID, ne.Term) && visible(viewer, e.Owner) {
			continue // replaced below, or pruned
		}
		out = append(out, e)
	}

	entry := grade.Entry{
		ID:         newID(),
		Owner:      null.StringFrom(tenant),
		StudentID:  ne.StudentID,
		SubjectID:  ne.SubjectID,
		Term:       ne.Term,
		Scores:     scores,
		Average:    grade.AverageOf(scores[:]),
		Remark:     ne.Remark,
		Competency: ne.Competency,
		CreatedAt:  now(),
	}
	if entry.IsEmpty() {
		entry = grade.Entry{}
	} else {
		out = append(out, entry)
	}

	doc.Grades = out
	if err := s.replace(doc); err != nil {
		return grade.Entry{}, err
	}
	return entry, nil
}

// DeleteGrade removes one grade entry.
func (s *Service) DeleteGrade(viewer null.String, id string) error {
	doc, err := s.load()
	if err != nil {
		return err
	}
	var found bool
	out := make([]grade.Entry, 0, len(doc.Grades))
	for _, e := range doc.Grades {
		if e.ID == id && visible(viewer, e.Owner) {
			found = true
			continue
		}
		out = append(out, e)
	}
	if !found {
		return ErrNotFound
	}
	doc.Grades = out
	return s.replace(doc)
}
