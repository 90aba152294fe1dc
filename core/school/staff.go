package school

import (
	stderrors "errors"

	"github.com/volatiletech/null/v8"

	"github.com/charmakemoussa99-ops/gestion-de-l-cole/core"
	"github.com/charmakemoussa99-ops/gestion-de-l-cole/core/account"
)

var (
	ErrUsernameExists = stderrors.New("an account with this username already exists")
	ErrEmailExists    = stderrors.New("an account with this email already exists")
	ErrNotStaffRole   = stderrors.New("role must be teacher or supervisor")
)

// Accounts lists the accounts visible to the viewer. A principal sees
// its own account and its staff; the null (super-admin) viewer sees
// everything.
func (s *Service) Accounts(viewer null.String) ([]account.Account, error) {
	doc, err := s.load()
	if err != nil {
		return nil, err
	}
	return Scope(viewer, doc.Staff), nil
}

// Principals lists all principal accounts. Super-admin only: this is
// the one unscoped read path.
func (s *Service) Principals() ([]account.Account, error) {
	doc, err := s.load()
	if err != nil {
		return nil, err
	}
	out := make([]account.Account, 0, len(doc.Staff))
	for _, acc := range doc.Staff {
		if acc.IsPrincipal() {
			out = append(out, acc)
		}
	}
	return out, nil
}

// AddStaff creates a teacher or supervisor account owned by the acting
// tenant. The owner link is set here and never reassigned.
func (s *Service) AddStaff(viewer null.String, na account.NewAccount) (account.Account, error) {
	tenant, err := requireTenant(viewer)
	if err != nil {
		return account.Account{}, err
	}
	if err := na.Validate(); err != nil {
		return account.Account{}, err
	}
	if na.Role != account.RoleTeacher && na.Role != account.RoleSupervisor {
		return account.Account{}, core.NewValidationError(ErrNotStaffRole, core.FieldError{Field: "role", Error: ErrNotStaffRole.Error()})
	}
	return s.createAccount(na, null.StringFrom(tenant))
}

// AddPrincipal creates a principal account. Principals are self-owned:
// their account ID is the tenant identifier scoping everything their
// institution creates.
func (s *Service) AddPrincipal(na account.NewAccount) (account.Account, error) {
	na.Role = account.RolePrincipal
	if err := na.Validate(); err != nil {
		return account.Account{}, err
	}
	return s.createAccount(na, null.String{})
}

// AddSuperAdmin creates a super-admin account. Super admins own no
// tenant; they exist to manage principal accounts.
func (s *Service) AddSuperAdmin(na account.NewAccount) (account.Account, error) {
	na.Role = account.RoleSuperAdmin
	if err := na.Validate(); err != nil {
		return account.Account{}, err
	}
	return s.createAccount(na, null.String{})
}

func (s *Service) createAccount(na account.NewAccount, owner null.String) (account.Account, error) {
	doc, err := s.load()
	if err != nil {
		return account.Account{}, err
	}
	if err := checkUniqueness(doc, na.Username, na.Email); err != nil {
		return account.Account{}, err
	}

	tstamp := now()
	acc := account.Account{
		ID:        newID(),
		Owner:     owner,
		Name:      na.Name,
		Username:  na.Username,
		Email:     na.Email,
		Role:      na.Role,
		IsActive:  true,
		CreatedAt: tstamp,
		UpdatedAt: tstamp,
	}
	if acc.IsPrincipal() {
		acc.Owner = null.StringFrom(acc.ID)
	}
	if err := acc.SetPassword(na.Password); err != nil {
		return account.Account{}, err
	}

	doc.Staff = append(doc.Staff, acc)
	if err := s.replace(doc); err != nil {
		return account.Account{}, err
	}
	return acc, nil
}

// DeleteAccount removes an account visible to the viewer.
func (s *Service) DeleteAccount(viewer null.String, id string) error {
	doc, err := s.load()
	if err != nil {
		return err
	}
	var found bool
	out := make([]account.Account, 0, len(doc.Staff))
	for _, acc := range doc.Staff {
		if acc.ID == id && visible(viewer, acc.Owner) {
			found = true
			continue
		}
		out = append(out, acc)
	}
	if !found {
		return ErrNotFound
	}
	doc.Staff = out
	return s.replace(doc)
}

// Authenticate checks the credentials against all accounts and records
// the login time. The lookup is unscoped: tenant identity is an output
// of authentication, not an input.
func (s *Service) Authenticate(usernameOrEmail, pwd string) (account.Account, error) {
	usernameOrEmail = core.CleanString(usernameOrEmail, true /* lower */)

	doc, err := s.load()
	if err != nil {
		return account.Account{}, err
	}
	for i := range doc.Staff {
		acc := &doc.Staff[i]
		if acc.Username != usernameOrEmail && acc.Email != usernameOrEmail {
			continue
		}
		if err := acc.CheckPassword(pwd); err != nil {
			return account.Account{}, ErrNotFound
		}
		acc.LastLogin = now()
		if err := s.replace(doc); err != nil {
			return account.Account{}, err
		}
		return *acc, nil
	}
	return account.Account{}, ErrNotFound
}

func checkUniqueness(doc Document, uname, email string) error {
	for _, acc := range doc.Staff {
		if uname != "" && acc.Username == uname {
			return core.NewValidationError(ErrUsernameExists, core.FieldError{Field: "username", Error: ErrUsernameExists.Error()})
		}
		if email != "" && acc.Email == email {
			return core.NewValidationError(ErrEmailExists, core.FieldError{Field: "email", Error: ErrEmailExists.Error()})
		}
	}
	return nil
}
