package echoapi

import (
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/charmakemoussa99-ops/gestion-de-l-cole/core"
	"github.com/charmakemoussa99-ops/gestion-de-l-cole/core/account"
	"github.com/charmakemoussa99-ops/gestion-de-l-cole/core/school"
)

// appJWTConfig is the default JWT auth middleware config.
var appJWTConfig = middleware.JWTConfig{
	SigningKey:    []byte(core.Conf.SecretKey),
	SigningMethod: middleware.AlgorithmHS256,
	ContextKey:    "accountToken",
	Claims:        new(Claims),
}

// Claims represents the authorization claims transmitted via a JWT.
type Claims struct {
	jwt.StandardClaims
	Username string `json:"username,omitempty"`
	Role     string `json:"role,omitempty"`
	Owner    string `json:"owner,omitempty"` // tenant identifier; empty for super admins
}

func GetAccountClaims(acc account.Account) *Claims {
	now := time.Now()
	return &Claims{
		StandardClaims: jwt.StandardClaims{
			Issuer:    core.Conf.AppName,
			Subject:   acc.ID,
			ExpiresAt: now.Add(core.Conf.Server.JWTExpirationDelta).Unix(),
			IssuedAt:  now.Unix(),
		},
		Username: acc.Username,
		Role:     acc.Role,
		Owner:    acc.TenantID().String,
	}
}

func authenticate(uname, pwd string, svc *school.Service) (*Claims, error) {
	acc, err := svc.Authenticate(uname, pwd)
	if err != nil {
		if errors.Cause(err) == school.ErrNotFound {
			return nil, errAuthenticationFailed
		}
		return nil, errors.Wrap(err, "authenticating account")
	}
	if !acc.IsActive {
		return nil, errAccountDeactivated
	}
	return GetAccountClaims(acc), nil
}

// GenerateToken generates a signed JWT token string representing the account Claims.
func GenerateToken(claims *Claims) (string, error) {
	method := jwt.GetSigningMethod(appJWTConfig.SigningMethod)
	token := jwt.NewWithClaims(method, claims)

	ss, err := token.SignedString(appJWTConfig.SigningKey.([]byte))
	if err != nil {
		return "", errors.New("signing token")
	}
	return ss, nil
}

func getContextClaims(ctx echo.Context) (Claims, error) {
	if token, ok := ctx.Get(appJWTConfig.ContextKey).(*jwt.Token); ok {
		if claims, ok := token.Claims.(*Claims); ok {
			return *claims, nil
		}
	}
	return Claims{}, errUnauthorized
}

// viewerOf resolves the tenant identity used to scope the caller's
// reads. Tenant identity is always passed explicitly into the core; a
// caller with no resolvable tenant gets the default-deny empty viewer,
// never the unscoped null one.
func viewerOf(claims Claims) null.String {
	switch claims.Role {
	case account.RolePrincipal:
		return null.StringFrom(claims.Subject)
	case account.RoleTeacher, account.RoleSupervisor:
		return null.StringFrom(claims.Owner)
	default:
		return null.StringFrom("")
	}
}
