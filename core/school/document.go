package school

import (
	"time"

	"github.com/google/uuid"

	"github.com/charmakemoussa99-ops/gestion-de-l-cole/core/absence"
	"github.com/charmakemoussa99-ops/gestion-de-l-cole/core/account"
	"github.com/charmakemoussa99-ops/gestion-de-l-cole/core/fee"
	"github.com/charmakemoussa99-ops/gestion-de-l-cole/core/grade"
	"github.com/charmakemoussa99-ops/gestion-de-l-cole/core/student"
	"github.com/charmakemoussa99-ops/gestion-de-l-cole/core/subject"
)

type (
	// Document is the entire dataset: six collections plus top-level
	// metadata. It is the unit of sharing; callers read the whole
	// document, mutate their in-memory copy and write it back.
	Document struct {
		Version   int       `json:"version"`
		UpdatedAt time.Time `json:"updated_at"` // UTC

		Students []student.Student `json:"students"`
		Staff    []account.Account `json:"staff"`
		Subjects []subject.Subject `json:"subjects"`
		Absences []absence.Absence `json:"absences"`
		Fees     []fee.Fee         `json:"fees"`
		Grades   []grade.Entry     `json:"grades"`
	}

	// Store persists the Document as one versioned blob.
	//
	// Load returns the persisted document, or a structurally
	// initialized empty one. Replace is an atomic whole-document
	// overwrite; there are no partial updates and no locking. The last
	// Replace wins: the system assumes one human operator at a time.
	Store interface {
		Load() (Document, error)
		Replace(Document) error
	}
)

// NewDocument returns a structurally initialized empty document with
// the default subject catalogue seeded.
func NewDocument() Document {
	doc := Document{
		Students: []student.Student{},
		Staff:    []account.Account{},
		Subjects: []subject.Subject{},
		Absences: []absence.Absence{},
		Fees:     []fee.Fee{},
		Grades:   []grade.Entry{},
	}
	seedSubjects(&doc)
	return doc
}

// Normalize makes a loaded document structurally complete: nil
// collections become empty ones and an empty subject catalogue is
// seeded with the default list. Store backends call it on every Load.
func Normalize(doc *Document) {
	if doc.Students == nil {
		doc.Students = []student.Student{}
	}
	if doc.Staff == nil {
		doc.Staff = []account.Account{}
	}
	if doc.Subjects == nil {
		doc.Subjects = []subject.Subject{}
	}
	if doc.Absences == nil {
		doc.Absences = []absence.Absence{}
	}
	if doc.Fees == nil {
		doc.Fees = []fee.Fee{}
	}
	if doc.Grades == nil {
		doc.Grades = []grade.Entry{}
	}
	if len(doc.Subjects) == 0 {
		seedSubjects(doc)
	}
}

// seedSubjects installs the default catalogue, unowned so that any
// institution may claim it. Seed IDs are derived from the subject
// names so they stay stable across Loads of a never-replaced document.
func seedSubjects(doc *Document) {
	now := time.Now().UTC()
	for _, name := range subject.DefaultNames {
		doc.Subjects = append(doc.Subjects, subject.Subject{
			ID:        uuid.NewSHA1(uuid.NameSpaceOID, []byte("subject:"+name)).String(),
			Name:      name,
			CreatedAt: now,
		})
	}
}
