package school

import "github.com/volatiletech/null/v8"

// Owned is any record carrying an owner reference.
type Owned interface {
	OwnerRef() null.String
}

// Scope returns the records the given viewer may see.
//
// A null viewer is the super-admin caller: records are returned
// unchanged. This is the only unscoped read path and is reserved for
// principal-account management. Any other viewer sees exactly the
// records whose owner reference is set and equals it; unowned records
// are never default-visible, and an unresolved (empty) viewer matches
// nothing at all.
func Scope[T Owned](viewer null.String, records []T) []T {
	if !viewer.Valid {
		return records
	}
	out := make([]T, 0, len(records))
	for _, rec := range records {
		if visible(viewer, rec.OwnerRef()) {
			out = append(out, rec)
		}
	}
	return out
}

func visible(viewer, owner null.String) bool {
	if !viewer.Valid {
		return true
	}
	return owner.Valid && owner.String != "" && owner.String == viewer.String
}

// ClaimUnowned stamps tenantID on every record across all collections
// lacking an owner reference and returns the number of records changed.
// Super-admin accounts are deliberately tenant-less and are left alone.
// Idempotent: once nothing is unowned it changes nothing and returns 0.
func ClaimUnowned(tenantID string, doc *Document) int {
	var n int
	for i := range doc.Students {
		if !doc.Students[i].Owner.Valid {
			doc.Students[i].Owner = null.StringFrom(tenantID)
			n++
		}
	}
	for i := range doc.Staff {
		if !doc.Staff[i].Owner.Valid && !doc.Staff[i].IsSuperAdmin() {
			doc.Staff[i].Owner = null.StringFrom(tenantID)
			n++
		}
	}
	for i := range doc.Subjects {
		if !doc.Subjects[i].Owner.Valid {
			doc.Subjects[i].Owner = null.StringFrom(tenantID)
			n++
		}
	}
	for i := range doc.Absences {
		if !doc.Absences[i].Owner.Valid {
			doc.Absences[i].Owner = null.StringFrom(tenantID)
			n++
		}
	}
	for i := range doc.Fees {
		if !doc.Fees[i].Owner.Valid {
			doc.Fees[i].Owner = null.StringFrom(tenantID)
			n++
		}
	}
	for i := range doc.Grades {
		if !doc.Grades[i].Owner.Valid {
			doc.Grades[i].Owner = null.StringFrom(tenantID)
			n++
		}
	}
	return n
}
