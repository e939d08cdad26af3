package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/saulo-duarte/codecourse-api/internal/config"
)

type contextKey string

const claimsKey contextKey = "user_claims"

var ErrNoClaims = errors.New("no user claims in context")

// UserChecker confirms that the subject of a valid token still exists.
type UserChecker interface {
	Exists(ctx context.Context, userID string) (bool, error)
}

// Middleware authenticates "Authorization: Bearer <token>" requests. A nil checker
// accepts any validly signed token.
func Middleware(checker UserChecker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			log := config.WithContext(r.Context())

			header := r.Header.Get("Authorization")
			if header == "" {
				config.Error(w, http.StatusUnauthorized, "Invalid token")
				return
			}

			tokenType, tokenValue, _ := strings.Cut(header, " ")
			if tokenType != "Bearer" || tokenValue == "" {
				config.Error(w, http.StatusUnauthorized, "Unauthorized Error")
				return
			}

			claims, err := ValidateJWT(tokenValue)
			if err != nil {
				log.WithError(err).Warn("Rejected bearer token")
				config.Error(w, http.StatusUnauthorized, "Invalid token")
				return
			}

			if checker != nil {
				ok, err := checker.Exists(r.Context(), claims.UserID)
				if err != nil {
					log.WithError(err).Error("Failed to look up token subject")
					config.Error(w, http.StatusInternalServerError, "Internal server error")
					return
				}
				if !ok {
					config.Error(w, http.StatusUnauthorized, "Unauthorized Error")
					return
				}
			}

			ctx := context.WithValue(r.Context(), claimsKey, claims)
			ctx = config.WithUserID(ctx, claims.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func GetUserClaimsFromContext(ctx context.Context) (*Claims, error) {
	claims, ok := ctx.Value(claimsKey).(*Claims)
	if !ok || claims == nil {
		return nil, ErrNoClaims
	}
	return claims, nil
}
