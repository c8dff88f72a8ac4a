package auth

import (
	"context"

	"github.com/golang-jwt/jwt/v5"
)

// Role identifies what a user is allowed to do. The numeric values are part
// of the external contract (they travel inside tokens and over the API) and
// carry no ordering semantics: operations declare explicit allow-lists, not
// thresholds.
type Role int

const (
	RoleSystemAdmin           Role = -1
	RoleAdmin                 Role = 0
	RolePayrollAccountManager Role = 1
	RoleCompanyHR             Role = 2
	RoleEmployee              Role = 3
)

var allRoles = []Role{
	RoleSystemAdmin,
	RoleAdmin,
	RolePayrollAccountManager,
	RoleCompanyHR,
	RoleEmployee,
}

// Valid reports whether r is one of the enumerated roles.
func (r Role) Valid() bool {
	for _, known := range allRoles {
		if r == known {
			return true
		}
	}
	return false
}

func (r Role) String() string {
	switch r {
	case RoleSystemAdmin:
		return "SystemAdmin"
	case RoleAdmin:
		return "Admin"
	case RolePayrollAccountManager:
		return "PayrollAccountManager"
	case RoleCompanyHR:
		return "CompanyHR"
	case RoleEmployee:
		return "Employee"
	default:
		return "Unknown"
	}
}

// RoleValues returns the numeric values of all enumerated roles.
func RoleValues() []int {
	values := make([]int, len(allRoles))
	for i, r := range allRoles {
		values[i] = int(r)
	}
	return values
}

// Claims is the signed access-token payload.
type Claims struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     Role   `json:"role"`
	jwt.RegisteredClaims
}

// Credential is the minimal user record authentication needs.
type Credential struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	Role         Role
}

// CredentialStore looks up user records for login. Implementations return
// internal.ErrUserNotFound when the username does not exist.
type CredentialStore interface {
	FindByUsername(ctx context.Context, username string) (*Credential, error)
}

// Payload is returned to a client after a successful login.
type Payload struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	Role         Role   `json:"role"`
}

type claimsCtxKey struct{}

// ContextWithClaims stores verified token claims for downstream resolvers.
func ContextWithClaims(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, claimsCtxKey{}, claims)
}

func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(claimsCtxKey{}).(*Claims)
	return claims, ok
}
