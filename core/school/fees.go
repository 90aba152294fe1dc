package school

import (
	"github.com/volatiletech/null/v8"

	"github.com/charmakemoussa99-ops/gestion-de-l-cole/core/fee"
)

// Fees lists the fee payments visible to the viewer.
func (s *Service) Fees(viewer null.String) ([]fee.Fee, error) {
	doc, err := s.load()
	if err != nil {
		return nil, err
	}
	return Scope(viewer, doc.Fees), nil
}

// AddFee records a fee payment owned by the acting tenant. A payment
// whose amount differs from the configured monthly amount is rejected
// with no partial write.
func (s *Service) AddFee(viewer null.String, nf fee.NewFee) (fee.Fee, error) {
	tenant, err := requireTenant(viewer)
	if err != nil {
		return fee.Fee{}, err
	}
	if err := nf.Validate(); err != nil {
		return fee.Fee{}, err
	}
	doc, err := s.load()
	if err != nil {
		return fee.Fee{}, err
	}
	f := fee.Fee{
		ID:        newID(),
		Owner:     null.StringFrom(tenant),
		StudentID: nf.StudentID,
		Month:     nf.Month,
		Amount:    nf.Amount,
		CreatedAt: now(),
	}
	doc.Fees = append(doc.Fees, f)
	if err := s.replace(doc); err != nil {
		return fee.Fee{}, err
	}
	return f, nil
}

// DeleteFee removes the fee record.
func (s *Service) DeleteFee(viewer null.String, id string) error {
	doc, err := s.load()
	if err != nil {
		return err
	}
	var found bool
	out := make([]fee.Fee, 0, len(doc.Fees))
	for _, f := range doc.Fees {
		if f.ID == id && visible(viewer, f.Owner) {
			found = true
			continue
		}
		out = append(out, f)
	}
	if !found {
		return ErrNotFound
	}
	doc.Fees = out
	return s.replace(doc)
}
