package testutil

import (
	"testing"

	"github.com/volatiletech/null/v8"

	"github.com/charmakemoussa99-ops/gestion-de-l-cole/core/account"
	"github.com/charmakemoussa99-ops/gestion-de-l-cole/core/grade"
	"github.com/charmakemoussa99-ops/gestion-de-l-cole/core/school"
	"github.com/charmakemoussa99-ops/gestion-de-l-cole/core/student"
	inmemstore "github.com/charmakemoussa99-ops/gestion-de-l-cole/storage/docstore/inmem"
)

// NewService returns a school.Service backed by a fresh in-memory store.
func NewService(t *testing.T) (*school.Service, school.Store) {
	t.Helper()
	store := inmemstore.Open()
	return school.NewService(store), store
}

// DefaultPassword passes the account password policy.
const DefaultPassword = "Xaxa!Lol1Mdr"

// CreatePrincipal creates a principal account and returns it along
// with its tenant viewer.
func CreatePrincipal(t *testing.T, svc *school.Service, name, uname, email string) (account.Account, null.String) {
	t.Helper()
	acc, err := svc.AddPrincipal(account.NewAccount{
		Name:            name,
		Username:        uname,
		Email:           email,
		Role:            account.RolePrincipal,
		Password:        DefaultPassword,
		PasswordConfirm: DefaultPassword,
	})
	if err != nil {
		t.Fatalf("CreatePrincipal() failed: %v", err)
	}
	return acc, null.StringFrom(acc.ID)
}

// CreateStaff creates a staff account owned by the given viewer's tenant.
func CreateStaff(t *testing.T, svc *school.Service, viewer null.String, name, uname, email, role string) account.Account {
	t.Helper()
	acc, err := svc.AddStaff(viewer, account.NewAccount{
		Name:            name,
		Username:        uname,
		Email:           email,
		Role:            role,
		Password:        DefaultPassword,
		PasswordConfirm: DefaultPassword,
	})
	if err != nil {
		t.Fatalf("CreateStaff() failed: %v", err)
	}
	return acc
}

// CreateStudent creates a student in the given class.
func CreateStudent(t *testing.T, svc *school.Service, viewer null.String, name, matricule, level, division string) student.Student {
	t.Helper()
	std, err := svc.AddStudent(viewer, student.NewStudent{
		Name:      name,
		Matricule: matricule,
		Level:     level,
		Division:  division,
	})
	if err != nil {
		t.Fatalf("CreateStudent() failed: %v", err)
	}
	return std
}

// SaveGrade saves a grade entry from raw score inputs.
func SaveGrade(t *testing.T, svc *school.Service, viewer null.String, studentID, subjectID, term string, scores ...string) grade.Entry {
	t.Helper()
	entry, err := svc.SaveGrade(viewer, grade.NewEntry{
		StudentID: studentID,
		SubjectID: subjectID,
		Term:      term,
		Scores:    scores,
	})
	if err != nil {
		t.Fatalf("SaveGrade() failed: %v", err)
	}
	return entry
}
