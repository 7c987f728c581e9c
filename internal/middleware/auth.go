package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

type contextKey string

// AdminIDKey carries the authenticated admin's ID in the request context.
const AdminIDKey contextKey = "admin_id"

// SessionCookieName is the cookie issued alongside the bearer token on login.
const SessionCookieName = "token"

// AuthMiddleware validates the admin session token. The token is read from
// the Authorization header, falling back to the session cookie. Any valid
// admin identity passes; there are no roles beyond "admin".
func AuthMiddleware(jwtSecret string, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString := bearerToken(r)
			if tokenString == "" {
				logger.Debug("Missing credentials")
				RespondWithError(w, http.StatusUnauthorized, "Not authorized to access this route")
				return
			}

			token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return []byte(jwtSecret), nil
			})

			if err != nil || !token.Valid {
				logger.Debug("Token validation failed", zap.Error(err))
				RespondWithError(w, http.StatusUnauthorized, "Not authorized to access this route")
				return
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				logger.Error("Failed to extract claims from token")
				RespondWithError(w, http.StatusUnauthorized, "Not authorized to access this route")
				return
			}

			adminID, ok := claims["admin_id"].(string)
			if !ok || adminID == "" {
				logger.Error("Missing admin_id in token claims")
				RespondWithError(w, http.StatusUnauthorized, "Not authorized to access this route")
				return
			}

			ctx := context.WithValue(r.Context(), AdminIDKey, adminID)

			logger.Debug("Admin authenticated", zap.String("admin_id", adminID))

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// bearerToken extracts the token from the Authorization header or the
// session cookie
func bearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && parts[0] == "Bearer" {
			return parts[1]
		}
		return ""
	}

	if cookie, err := r.Cookie(SessionCookieName); err == nil {
		return cookie.Value
	}

	return ""
}

// GetAdminID extracts the authenticated admin's ID from the request context
func GetAdminID(ctx context.Context) (string, bool) {
	adminID, ok := ctx.Value(AdminIDKey).(string)
	return adminID, ok
}
