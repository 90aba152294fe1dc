package account

import (
	"time"

	"github.com/volatiletech/null/v8"
	"golang.org/x/crypto/bcrypt"

	"github.com/charmakemoussa99-ops/gestion-de-l-cole/core"
)

// Roles
const (
	// RoleSuperAdmin manages principal accounts; it is the only role
	// allowed on the unscoped read path.
	RoleSuperAdmin = "superadmin"

	// RolePrincipal is the institution owner; its account ID is the
	// tenant identifier stamped on every record the institution creates.
	RolePrincipal = "principal"

	RoleTeacher    = "teacher"
	RoleSupervisor = "supervisor"
)

var (
	StaffRoles = []string{RoleTeacher, RoleSupervisor}
	AllRoles   = []string{RoleSuperAdmin, RolePrincipal, RoleTeacher, RoleSupervisor}
)

// Account is a login-capable record: a super admin, a principal or a
// staff member. A principal is self-owned (Owner is its own ID); staff
// accounts carry the creating principal's ID, set once at creation and
// never reassigned.
type Account struct {
	ID           string      `json:"id"`
	Owner        null.String `json:"owner"`
	Name         string      `json:"name"`
	Username     string      `json:"username"`
	Email        string      `json:"email"`
	Role         string      `json:"role"`
	IsActive     bool        `json:"is_active"`
	PasswordHash []byte      `json:"password_hash,omitempty"`
	CreatedAt    time.Time   `json:"created_at"` // UTC
	UpdatedAt    time.Time   `json:"updated_at"` // UTC
	LastLogin    time.Time   `json:"last_login"` // UTC
}

func (a Account) OwnerRef() null.String { return a.Owner }

func (a *Account) SetPassword(pwd string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	a.PasswordHash = hash
	return nil
}

func (a *Account) CheckPassword(pwd string) error {
	return bcrypt.CompareHashAndPassword(a.PasswordHash, []byte(pwd))
}

func (a *Account) IsSuperAdmin() bool { return a.Role == RoleSuperAdmin }
func (a *Account) IsPrincipal() bool  { return a.Role == RolePrincipal }

func (a *Account) IsStaff() bool {
	return a.Role == RoleTeacher || a.Role == RoleSupervisor
}

// TenantID is the identity used to scope the account's reads: a
// principal scopes to itself, staff to their institution. Super admins
// carry no tenant of their own.
func (a *Account) TenantID() null.String {
	if a.IsPrincipal() {
		return null.StringFrom(a.ID)
	}
	if a.IsStaff() {
		return a.Owner
	}
	return null.String{}
}

// Public is the account shape returned by the API; it never carries
// the password hash.
type Public struct {
	ID        string      `json:"id"`
	Owner     null.String `json:"owner"`
	Name      string      `json:"name"`
	Username  string      `json:"username"`
	Email     string      `json:"email"`
	Role      string      `json:"role"`
	IsActive  bool        `json:"is_active"`
	CreatedAt time.Time   `json:"created_at"`
	LastLogin time.Time   `json:"last_login"`
}

func (a Account) Public() Public {
	return Public{
		ID:        a.ID,
		Owner:     a.Owner,
		Name:      a.Name,
		Username:  a.Username,
		Email:     a.Email,
		Role:      a.Role,
		IsActive:  a.IsActive,
		CreatedAt: a.CreatedAt,
		LastLogin: a.LastLogin,
	}
}

// NewAccount contains information needed to create a new Account.
type NewAccount struct {
	Name            string `json:"name" validate:"required"`
	Username        string `json:"username" validate:"required,min=3,alphanum_"`
	Email           string `json:"email" validate:"required,email"`
	Role            string `json:"role" validate:"required,accountrole"`
	Password        string `json:"password" validate:"required"`
	PasswordConfirm string `json:"password_confirm" validate:"required,eqfield=Password"`
}

func (na *NewAccount) Validate() error {
	na.Name = core.CleanString(na.Name)
	na.Username = core.CleanString(na.Username, true /* lower */)
	na.Email = core.CleanString(na.Email, true /* lower */)
	na.Role = core.CleanString(na.Role, true /* lower */)
	return core.Validate.Struct(na)
}
