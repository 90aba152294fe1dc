package student

import (
	"time"

	"github.com/volatiletech/null/v8"

	"github.com/charmakemoussa99-ops/gestion-de-l-cole/core"
)

// Student is one enrolled pupil. Owner is the identifier of the
// institution (principal account) the record belongs to; it is stamped
// at creation and never reassigned.
type Student struct {
	ID            string      `json:"id"`
	Owner         null.String `json:"owner"`
	Name          string      `json:"name"`
	Matricule     string      `json:"matricule"`
	Level         string      `json:"level"`
	Division      string      `json:"division"`
	GuardianName  string      `json:"guardian_name"`
	GuardianPhone string      `json:"guardian_phone"`
	GuardianEmail string      `json:"guardian_email"`
	Address       string      `json:"address"`
	CreatedAt     time.Time   `json:"created_at"` // UTC
}

func (s Student) OwnerRef() null.String { return s.Owner }

// InClass reports whether the student is physically assigned to the
// given level and division. An empty division matches the whole level.
func (s Student) InClass(level, division string) bool {
	if s.Level != level {
		return false
	}
	return division == "" || s.Division == division
}

// NewStudent contains information needed to register a new Student.
type NewStudent struct {
	Name          string `json:"name" validate:"required"`
	Matricule     string `json:"matricule"`
	Level         string `json:"level" validate:"required"`
	Division      string `json:"division"`
	GuardianName  string `json:"guardian_name"`
	GuardianPhone string `json:"guardian_phone"`
	GuardianEmail string `json:"guardian_email" validate:"omitempty,email"`
	Address       string `json:"address"`
}

func (ns *NewStudent) Validate() error {
	ns.Name = core.CleanString(ns.Name)
	ns.Matricule = core.CleanString(ns.Matricule)
	ns.Level = core.CleanString(ns.Level)
	ns.Division = core.CleanString(ns.Division)
	ns.GuardianName = core.CleanString(ns.GuardianName)
	ns.GuardianPhone = core.CleanString(ns.GuardianPhone)
	ns.GuardianEmail = core.CleanString(ns.GuardianEmail, true /* lower */)
	ns.Address = core.CleanString(ns.Address)
	return core.Validate.Struct(ns)
}
