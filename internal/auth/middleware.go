package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/Kishor-04/JourneySphere---Travel-Agency-Platform/internal/domain"
	"github.com/Kishor-04/JourneySphere---Travel-Agency-Platform/internal/logger"
	"github.com/Kishor-04/JourneySphere---Travel-Agency-Platform/internal/models"
	"github.com/Kishor-04/JourneySphere---Travel-Agency-Platform/internal/utils"
)

type contextKey string

const identityKey contextKey = "identity"

// RevocationChecker reports whether a token id has been revoked.
type RevocationChecker interface {
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// Authenticate verifies the bearer token and stores the caller's Identity in
// the request context. revoked may be nil.
func Authenticate(tokens *TokenService, revoked RevocationChecker, log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rawToken, err := ExtractTokenFromRequest(r)
			if err != nil {
				utils.WriteError(w, log, domain.UnauthorizedError{Msg: "Unauthorized", Err: err})
				return
			}

			identity, err := tokens.Verify(rawToken)
			if err != nil {
				log.LogSecurity("TOKEN_REJECTED", fmt.Sprintf("%s %s: %v", r.Method, r.URL.Path, err))
				utils.WriteError(w, log, domain.UnauthorizedError{Msg: "Invalid token", Err: err})
				return
			}

			if revoked != nil && identity.TokenID != "" {
				isRevoked, err := revoked.IsRevoked(r.Context(), identity.TokenID)
				if err != nil {
					utils.WriteError(w, log, domain.InternalError{Msg: "Failed to verify token", Err: err})
					return
				}
				if isRevoked {
					log.LogSecurity("TOKEN_REVOKED", fmt.Sprintf("user=%s jti=%s", identity.ID, identity.TokenID))
					utils.WriteError(w, log, domain.UnauthorizedError{Msg: "Invalid token"})
					return
				}
			}

			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), identity)))
		})
	}
}

// RequireRole admits only callers whose identity carries role. It must run
// after Authenticate.
func RequireRole(role models.Role, log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := IdentityFrom(r.Context())
			if !ok {
				utils.WriteError(w, log, domain.UnauthorizedError{Msg: "Unauthorized"})
				return
			}
			if identity.Role != role {
				log.LogSecurity("ROLE_DENIED", fmt.Sprintf("user=%s role=%s required=%s path=%s", identity.ID, identity.Role, role, r.URL.Path))
				utils.WriteError(w, log, forbiddenFor(role))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func forbiddenFor(role models.Role) error {
	if role == models.RoleAdmin {
		return domain.ForbiddenError{Msg: "Admin only"}
	}
	return domain.ForbiddenError{}
}

func WithIdentity(ctx context.Context, identity models.Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

// IdentityFrom returns the authenticated caller, if any.
func IdentityFrom(ctx context.Context) (models.Identity, bool) {
	identity, ok := ctx.Value(identityKey).(models.Identity)
	return identity, ok
}

// MustIdentity is IdentityFrom for handlers mounted behind Authenticate.
func MustIdentity(ctx context.Context) (models.Identity, error) {
	identity, ok := IdentityFrom(ctx)
	if !ok {
		return models.Identity{}, domain.UnauthorizedError{Msg: "Unauthorized", Err: errors.New("no identity in context")}
	}
	return identity, nil
}
