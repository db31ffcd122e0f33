package serverutils

import (
	"context"
	"strings"

	"simple-notes-be/internal/pkg/apperror"
	"simple-notes-be/internal/pkg/identity"

	"github.com/gofiber/fiber/v2"
)

const (
	localsIdentity = "identity"
	localsUserId   = "user_id"
)

// IdentityResolver turns a session id or bearer token into an identity.
type IdentityResolver interface {
	ResolveRequest(ctx context.Context, sessionId, bearer string) (*identity.Identity, error)
}

// AuthMiddleware requires a session cookie or a bearer token. The resolved
// identity is stored in the request locals.
func AuthMiddleware(resolver IdentityResolver, cookieName string) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		sessionId := ctx.Cookies(cookieName)
		bearer := BearerToken(ctx)
		if sessionId == "" && bearer == "" {
			return apperror.Authentication("missing credentials")
		}

		id, err := resolver.ResolveRequest(ctx.UserContext(), sessionId, bearer)
		if err != nil {
			return err
		}

		ctx.Locals(localsIdentity, id)
		ctx.Locals(localsUserId, id.UserId)
		return ctx.Next()
	}
}

// RequireRegistered rejects anonymous identities. It runs after AuthMiddleware
// and before any body parsing.
func RequireRegistered(ctx *fiber.Ctx) error {
	id, err := CurrentIdentity(ctx)
	if err != nil {
		return err
	}
	if id.IsAnonymous {
		return apperror.Authorization("a registered account is required")
	}
	return ctx.Next()
}

func CurrentIdentity(ctx *fiber.Ctx) (*identity.Identity, error) {
	id, ok := ctx.Locals(localsIdentity).(*identity.Identity)
	if !ok || id == nil {
		return nil, apperror.Authentication("not authenticated")
	}
	return id, nil
}

func BearerToken(ctx *fiber.Ctx) string {
	header := ctx.Get(fiber.HeaderAuthorization)
	if len(header) < 7 || !strings.EqualFold(header[:7], "Bearer ") {
		return ""
	}
	return strings.TrimSpace(header[7:])
}
