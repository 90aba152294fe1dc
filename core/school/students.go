package school

import (
	"github.com/volatiletech/null/v8"

	"github.com/charmakemoussa99-ops/gestion-de-l-cole/core/student"
)

// Students lists the students visible to the viewer.
func (s *Service) Students(viewer null.String) ([]student.Student, error) {
	doc, err := s.load()
	if err != nil {
		return nil, err
	}
	return Scope(viewer, doc.Students), nil
}

// GetStudent returns one student by ID if the viewer may see it.
func (s *Service) GetStudent(viewer null.String, id string) (student.Student, error) {
	doc, err := s.load()
	if err != nil {
		return student.Student{}, err
	}
	for _, st := range doc.Students {
		if st.ID == id && visible(viewer, st.Owner) {
			return st, nil
		}
	}
	return student.Student{}, ErrNotFound
}

// AddStudent registers a new student owned by the acting tenant.
func (s *Service) AddStudent(viewer null.String, ns student.NewStudent) (student.Student, error) {
	tenant, err := requireTenant(viewer)
	if err != nil {
		return student.Student{}, err
	}
	if err := ns.Validate(); err != nil {
		return student.Student{}, err
	}
	doc, err := s.load()
	if err != nil {
		return student.Student{}, err
	}
	st := student.Student{
		ID:            newID(),
		Owner:         null.StringFrom(tenant),
		Name:          ns.Name,
		Matricule:     ns.Matricule,
		Level:         ns.Level,
		Division:      ns.Division,
		GuardianName:  ns.GuardianName,
		GuardianPhone: ns.GuardianPhone,
		GuardianEmail: ns.GuardianEmail,
		Address:       ns.Address,
		CreatedAt:     now(),
	}
	doc.Students = append(doc.Students, st)
	if err := s.replace(doc); err != nil {
		return student.Student{}, err
	}
	return st, nil
}

// DeleteStudent removes the student record only. Grades, absences and
// fees referencing the student are left in place (orphaned, still
// retrievable by direct query).
func (s *Service) DeleteStudent(viewer null.String, id string) error {
	doc, err := s.load()
	if err != nil {
		return err
	}
	var found bool
	out := make([]student.Student, 0, len(doc.Students))
	for _, st := range doc.Students {
		if st.ID == id && visible(viewer, st.Owner) {
			found = true
			continue
		}
		out = append(out, st)
	}
	if !found {
		return ErrNotFound
	}
	doc.Students = out
	return s.replace(doc)
}
