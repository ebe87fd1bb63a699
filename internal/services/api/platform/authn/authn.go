// Package authn authenticates HTTP requests with bearer session tokens.
package authn

import (
	"net/http"
	"strings"

	"github.com/pitchsideapp/pitchside/internal/platform/requestctx"
	"github.com/pitchsideapp/pitchside/internal/services/api/platform/apperrors"
	"github.com/pitchsideapp/pitchside/internal/services/api/platform/httpjson"
	"github.com/pitchsideapp/pitchside/internal/services/identity"
)

// TokenVerifier validates a session token and returns its claims.
type TokenVerifier interface {
	VerifyToken(token string) (identity.SessionClaims, error)
}

// bearerToken extracts the token from an Authorization header.
func bearerToken(r *http.Request) string {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if header == "" {
		return ""
	}
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// Middleware verifies the bearer token and stores the actor in context.
// Requests without a token pass through anonymously; handlers that need an
// actor use Require.
func Middleware(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}
			claims, err := verifier.VerifyToken(token)
			if err != nil {
				httpjson.WriteError(w, r, err)
				return
			}
			actor := requestctx.Actor{UserID: claims.UserID, Role: string(claims.Role)}
			next.ServeHTTP(w, r.WithContext(requestctx.WithActor(r.Context(), actor)))
		})
	}
}

// Require rejects unauthenticated requests. When roles are given, the actor
// must hold one of them.
func Require(next http.HandlerFunc, roles ...string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor := requestctx.ActorFromContext(r.Context())
		if actor.UserID == "" {
			httpjson.WriteError(w, r, apperrors.New(apperrors.KindUnauthorized, "authentication required"))
			return
		}
		if len(roles) > 0 {
			allowed := false
			for _, role := range roles {
				if actor.Role == role {
					allowed = true
					break
				}
			}
			if !allowed {
				httpjson.WriteError(w, r, apperrors.New(apperrors.KindForbidden, "insufficient role"))
				return
			}
		}
		next(w, r)
	}
}
