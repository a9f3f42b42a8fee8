package auth

import (
	"context"
	"os"

	"github.com/golang-jwt/jwt/v4"
	"github.com/pkg/errors"
)

// The engine trusts the identity provider: whoever terminates
// authentication hands us a username, a role and an account status,
// either as trusted headers or inside a signed token.
const (
	XUserNameHeader   = "X-User-Name"
	XUserRoleHeader   = "X-User-Role"
	XUserStatusHeader = "X-User-Status"
)

const (
	RoleAdmin     = "admin"
	RoleLibrarian = "librarian"
	RolePatron    = "patron"
)

const (
	StatusActive    = "active"
	StatusInactive  = "inactive"
	StatusSuspended = "suspended"
)

var JWTKey = []byte(os.Getenv("JWT_KEY"))

type Profile struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	Status   string `json:"status"`
}

type Claims struct {
	jwt.RegisteredClaims
	Profile Profile `json:"profile"`
}

type identityKey struct{}

func SetIdentity(ctx context.Context, p Profile) context.Context {
	return context.WithValue(ctx, identityKey{}, p)
}

func Identity(ctx context.Context) (Profile, error) {
	p, ok := ctx.Value(identityKey{}).(Profile)
	if !ok || p.Username == "" {
		return Profile{}, errors.New("no identity in context")
	}
	return p, nil
}

// IsStaff reports whether the profile may perform librarian operations.
func (p Profile) IsStaff() bool {
	return p.Role == RoleAdmin || p.Role == RoleLibrarian
}
