package school

import (
	"github.com/volatiletech/null/v8"

	"github.com/charmakemoussa99-ops/gestion-de-l-cole/core/subject"
)

// Subjects lists the subjects visible to the viewer.
func (s *Service) Subjects(viewer null.String) ([]subject.Subject, error) {
	doc, err := s.load()
	if err != nil {
		return nil, err
	}
	return Scope(viewer, doc.Subjects), nil
}

// AddSubject adds a subject to the acting tenant's catalogue.
func (s *Service) AddSubject(viewer null.String, ns subject.NewSubject) (subject.Subject, error) {
	tenant, err := requireTenant(viewer)
	if err != nil {
		return subject.Subject{}, err
	}
	if err := ns.Validate(); err != nil {
		return subject.Subject{}, err
	}
	doc, err := s.load()
	if err != nil {
		return subject.Subject{}, err
	}
	sub := subject.Subject{
		ID:        newID(),
		Owner:     null.StringFrom(tenant),
		Name:      ns.Name,
		CreatedAt: now(),
	}
	doc.Subjects = append(doc.Subjects, sub)
	if err := s.replace(doc); err != nil {
		return subject.Subject{}, err
	}
	return sub, nil
}

// DeleteSubject removes the subject record only; grade entries
// referencing it are left in place.
func (s *Service) DeleteSubject(viewer null.String, id string) error {
	doc, err := s.load()
	if err != nil {
		return err
	}
	var found bool
	out := make([]subject.Subject, 0, len(doc.Subjects))
	for _, sub := range doc.Subjects {
		if sub.ID == id && visible(viewer, sub.Owner) {
			found = true
			continue
		}
		out = append(out, sub)
	}
	if !found {
		return ErrNotFound
	}
	doc.Subjects = out
	return s.replace(doc)
}
