package auth

import (
	"context"
	"os"

	"github.com/golang-jwt/jwt/v4"
)

const (
	XMemberIDHeader   = "X-Member-Id"
	XMemberNameHeader = "X-Member-Name"
)

// JWTKey signs session tokens. Overridable through JWT_KEY for
// deployments; the default only suits local runs.
var JWTKey = []byte(keyFromEnv())

func keyFromEnv() string {
	if key := os.Getenv("JWT_KEY"); key != "" {
		return key
	}
	return "bookhive-dev-key"
}

type Claims struct {
	Profile struct {
		MemberID string `json:"memberId"`
		Name     string `json:"name"`
	} `json:"profile"`
	Email string `json:"email"`
	jwt.RegisteredClaims
}

type ctxKey int

const (
	ctxKeyMemberID ctxKey = iota + 1
	ctxKeyMemberName
)

func SetAuthContext(ctx context.Context, memberID, name string) context.Context {
	ctx = context.WithValue(ctx, ctxKeyMemberID, memberID)
	return context.WithValue(ctx, ctxKeyMemberName, name)
}

func MemberIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(ctxKeyMemberID).(string)
	return id
}

func MemberNameFromContext(ctx context.Context) string {
	name, _ := ctx.Value(ctxKeyMemberName).(string)
	return name
}
