package handler

import (
	"context"
	"net/http"
	"strings"

	"bankist/common"
	"bankist/service"
)

type contextKey string

const SessionKey contextKey = "session"

// AuthMiddleware resolves the bearer token to the live session. The token may
// also arrive as the "token" query parameter, which browsers need for websockets.
func AuthMiddleware(auth *service.AuthService, sessions *service.SessionService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString, appErr := bearerToken(r)
			if appErr != nil {
				appErr.Send(w)
				return
			}

			claims, err := auth.ParseToken(tokenString)
			if err != nil {
				common.NewAppError(http.StatusUnauthorized, "Invalid or expired token", err).Send(w)
				return
			}

			sess, err := sessions.Lookup(claims.SessionID)
			if err != nil {
				common.NewAppError(http.StatusUnauthorized, "Session expired, please log in again", err).
					WithReason("session_expired").Send(w)
				return
			}

			ctx := context.WithValue(r.Context(), SessionKey, sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) (string, *common.AppError) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		if token := r.URL.Query().Get("token"); token != "" {
			return token, nil
		}
		return "", common.NewAppError(http.StatusUnauthorized, "Authorization header is required", nil)
	}

	headerParts := strings.Split(authHeader, " ")
	if len(headerParts) != 2 || strings.ToLower(headerParts[0]) != "bearer" {
		return "", common.NewAppError(http.StatusUnauthorized, "Invalid authorization header format", nil)
	}
	return headerParts[1], nil
}

func sessionFrom(r *http.Request) (*service.Session, *common.AppError) {
	sess, ok := r.Context().Value(SessionKey).(*service.Session)
	if !ok || sess == nil {
		return nil, common.NewAppError(http.StatusUnauthorized, "Missing session in request context", nil)
	}
	return sess, nil
}
