package subject

import (
	"time"

	"github.com/volatiletech/null/v8"

	"github.com/charmakemoussa99-ops/gestion-de-l-cole/core"
)

// DefaultNames is the catalogue installed when a document holds no
// subjects at all. Seeded subjects start unowned and become visible to
// an institution once claimed.
var DefaultNames = []string{
	"Français",
	"Mathématiques",
	"Physique-Chimie",
	"SVT",
	"Histoire-Géographie",
	"Anglais",
	"Éducation civique",
	"EPS",
}

type Subject struct {
	ID        string      `json:"id"`
	Owner     null.String `json:"owner"`
	Name      string      `json:"name"`
	CreatedAt time.Time   `json:"created_at"` // UTC
}

func (s Subject) OwnerRef() null.String { return s.Owner }

// NewSubject contains information needed to add a Subject to the catalogue.
type NewSubject struct {
	Name string `json:"name" validate:"required"`
}

func (ns *NewSubject) Validate() error {
	ns.Name = core.CleanString(ns.Name)
	return core.Validate.Struct(ns)
}
