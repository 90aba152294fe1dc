package absence

import (
	"time"

	"github.com/volatiletech/null/v8"

	"github.com/charmakemoussa99-ops/gestion-de-l-cole/core"
)

type Absence struct {
	ID        string      `json:"id"`
	Owner     null.String `json:"owner"`
	StudentID string      `json:"student_id"`
	Date      time.Time   `json:"date"`
	Hours     float64     `json:"hours"`
	Reason    null.String `json:"reason"`
	CreatedAt time.Time   `json:"created_at"` // UTC
}

func (a Absence) OwnerRef() null.String { return a.Owner }

// NewAbsence contains information needed to record an Absence.
type NewAbsence struct {
	StudentID string    `json:"student_id" validate:"required"`
	Date      time.Time `json:"date" validate:"required"`
	Hours     float64   `json:"hours" validate:"required,gt=0"`
	Reason    string    `json:"reason"`
}

func (na *NewAbsence) Validate() error {
	na.StudentID = core.CleanString(na.StudentID)
	na.Reason = core.CleanString(na.Reason)
	return core.Validate.Struct(na)
}
