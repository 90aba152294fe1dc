package fee

import (
	"errors"
	"math"
	"time"

	"github.com/volatiletech/null/v8"

	"github.com/charmakemoussa99-ops/gestion-de-l-cole/core"
)

var errWrongAmount = errors.New("amount does not match the configured monthly fee")

type Fee struct {
	ID        string      `json:"id"`
	Owner     null.String `json:"owner"`
	StudentID string      `json:"student_id"`
	Month     string      `json:"month"`
	Amount    float64     `json:"amount"`
	CreatedAt time.Time   `json:"created_at"` // UTC
}

func (f Fee) OwnerRef() null.String { return f.Owner }

// NewFee contains information needed to record a fee payment.
// Amount must equal the configured monthly amount exactly; anything
// else is rejected before persistence.
type NewFee struct {
	StudentID string  `json:"student_id" validate:"required"`
	Month     string  `json:"month" validate:"required"`
	Amount    float64 `json:"amount" validate:"required"`
}

func (nf *NewFee) Validate() error {
	nf.StudentID = core.CleanString(nf.StudentID)
	nf.Month = core.CleanString(nf.Month)
	if err := core.Validate.Struct(nf); err != nil {
		return err
	}
	if math.Abs(nf.Amount-core.Conf.MonthlyFeeAmount) > 1e-9 {
		return core.NewValidationError(errWrongAmount, core.FieldError{Field: "amount", Error: errWrongAmount.Error()})
	}
	return nil
}
