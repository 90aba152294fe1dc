package school

import (
	"github.com/volatiletech/null/v8"

	"github.com/charmakemoussa99-ops/gestion-de-l-cole/core/absence"
)

// Absences lists the absences visible to the viewer.
func (s *Service) Absences(viewer null.String) ([]absence.Absence, error) {
	doc, err := s.load()
	if err != nil {
		return nil, err
	}
	return Scope(viewer, doc.Absences), nil
}

// AddAbsence records an absence owned by the acting tenant.
func (s *Service) AddAbsence(viewer null.String, na absence.NewAbsence) (absence.Absence, error) {
	tenant, err := requireTenant(viewer)
	if err != nil {
		return absence.Absence{}, err
	}
	if err := na.Validate(); err != nil {
		return absence.Absence{}, err
	}
	doc, err := s.load()
	if err != nil {
		return absence.Absence{}, err
	}
	ab := absence.Absence{
		ID:        newID(),
		Owner:     null.StringFrom(tenant),
		StudentID: na.StudentID,
		Date:      na.Date,
		Hours:     na.Hours,
		Reason:    null.NewString(na.Reason, na.Reason != ""),
		CreatedAt: now(),
	}
	doc.Absences = append(doc.Absences, ab)
	if err := s.replace(doc); err != nil {
		return absence.Absence{}, err
	}
	return ab, nil
}

// DeleteAbsence removes the absence record.
func (s *Service) DeleteAbsence(viewer null.String, id string) error {
	doc, err := s.load()
	if err != nil {
		return err
	}
	var found bool
	out := make([]absence.Absence, 0, len(doc.Absences))
	for _, ab := range doc.Absences {
		if ab.ID == id && visible(viewer, ab.Owner) {
			found = true
			continue
		}
		out = append(out, ab)
	}
	if !found {
		return ErrNotFound
	}
	doc.Absences = out
	return s.replace(doc)
}
