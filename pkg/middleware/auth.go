package middleware

import (
	"net/http"
	"strings"

	"travelo-booking/pkg/utils"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Auth validates the bearer token issued by the external identity provider
// and puts the resolved user ID on the request context.
func Auth(secret string, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, email, ok := resolveIdentity(r, secret, logger)
			if !ok {
				utils.ResponseUnauthorized(w, "Missing or invalid authorization token")
				return
			}

			ctx := utils.SetUserContext(r.Context(), userID)
			if email != "" {
				ctx = utils.SetUserEmailContext(ctx, email)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalAuth resolves identity when a token is present but lets the request
// through without one. Guest checkout depends on this.
func OptionalAuth(secret string, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if userID, email, ok := resolveIdentity(r, secret, logger); ok {
				ctx := utils.SetUserContext(r.Context(), userID)
				if email != "" {
					ctx = utils.SetUserEmailContext(ctx, email)
				}
				r = r.WithContext(ctx)
			}
			next.ServeHTTP(w, r)
		})
	}
}

func resolveIdentity(r *http.Request, secret string, logger *zap.Logger) (uuid.UUID, string, bool) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return uuid.Nil, "", false
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return uuid.Nil, "", false
	}

	token, err := jwt.Parse(parts[1], func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		logger.Warn("Invalid bearer token", zap.Error(err))
		return uuid.Nil, "", false
	}

	sub, err := token.Claims.GetSubject()
	if err != nil {
		return uuid.Nil, "", false
	}

	userID, err := uuid.Parse(sub)
	if err != nil {
		logger.Warn("Token subject is not a user ID", zap.String("sub", sub))
		return uuid.Nil, "", false
	}

	return userID, emailClaim(token), true
}

// The identity provider puts the account email in the standard "email"
// claim. Absent or malformed claims resolve to an empty string; the
// confirmation email is then skipped for this user.
func emailClaim(token *jwt.Token) string {
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return ""
	}
	email, _ := claims["email"].(string)
	return email
}
