package auth

import (
	"context"

	"github.com/pkg/errors"
)

// Identity headers set by the upstream gateway once it has authenticated the
// caller. This service trusts them as-is.
const (
	XUserNameHeader = "X-User-Name"
	XUserRoleHeader = "X-User-Role"

	RoleAdmin = "ADMIN"
)

type ctxKey int

const (
	userNameKey ctxKey = iota
	userRoleKey
)

var ErrNoAuthContext = errors.New("no auth context")

func SetAuthContext(ctx context.Context, userName, role string) context.Context {
	ctx = context.WithValue(ctx, userNameKey, userName)
	return context.WithValue(ctx, userRoleKey, role)
}

func GetUserName(ctx context.Context) (string, error) {
	name, ok := ctx.Value(userNameKey).(string)
	if !ok || name == "" {
		return "", ErrNoAuthContext
	}
	return name, nil
}

func GetUserRole(ctx context.Context) (string, error) {
	role, ok := ctx.Value(userRoleKey).(string)
	if !ok || role == "" {
		return "", ErrNoAuthContext
	}
	return role, nil
}
